package token

import "fmt"

// Token is the position and source text an AST node was built from.
// Lexeme is the node's primary lexeme (an operator, keyword or name).
// Statement is the full source text of the statement the token belongs to;
// it is only needed by nodes that quote their own source, such as assert.
type Token struct {
	Lexeme    string
	Line      int
	Column    int
	Statement string
}

// Pos formats the token position as line:column, or just the line when the
// column is unknown.
func (t Token) Pos() string {
	if t.Column > 0 {
		return fmt.Sprintf("%d:%d", t.Line, t.Column)
	}
	return fmt.Sprintf("%d", t.Line)
}
