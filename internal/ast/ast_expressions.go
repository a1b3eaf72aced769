package ast

import (
	"github.com/funvibe/peregrine/internal/token"
)

// Identifier represents a bare name.
type Identifier struct {
	Token token.Token // the identifier token
	Value string
}

func (i *Identifier) Kind() Kind { return KindIdentifier }
func (i *Identifier) node()      {}
func (i *Identifier) GetToken() token.Token {
	if i == nil {
		return token.Token{}
	}
	return i.Token
}

// IntegerLiteral keeps the literal's source text; the target language
// accepts the same spelling.
type IntegerLiteral struct {
	Token token.Token
	Value string
}

func (il *IntegerLiteral) Kind() Kind            { return KindInteger }
func (il *IntegerLiteral) node()                 {}
func (il *IntegerLiteral) GetToken() token.Token { return il.Token }

type DecimalLiteral struct {
	Token token.Token
	Value string
}

func (dl *DecimalLiteral) Kind() Kind            { return KindDecimal }
func (dl *DecimalLiteral) node()                 {}
func (dl *DecimalLiteral) GetToken() token.Token { return dl.Token }

// StringLiteral holds the string contents without surrounding quotes.
type StringLiteral struct {
	Token token.Token
	Value string
}

func (sl *StringLiteral) Kind() Kind            { return KindString }
func (sl *StringLiteral) node()                 {}
func (sl *StringLiteral) GetToken() token.Token { return sl.Token }

// BoolLiteral holds "True" or "False" as written.
type BoolLiteral struct {
	Token token.Token
	Value string
}

func (bl *BoolLiteral) Kind() Kind            { return KindBool }
func (bl *BoolLiteral) node()                 {}
func (bl *BoolLiteral) GetToken() token.Token { return bl.Token }

type NoneLiteral struct {
	Token token.Token
}

func (nl *NoneLiteral) Kind() Kind            { return KindNone }
func (nl *NoneLiteral) node()                 {}
func (nl *NoneLiteral) GetToken() token.Token { return nl.Token }

// NoLiteral marks an absent optional child. As a match pattern it is the
// wildcard.
type NoLiteral struct {
	Token token.Token
}

func (nl *NoLiteral) Kind() Kind            { return KindNoLiteral }
func (nl *NoLiteral) node()                 {}
func (nl *NoLiteral) GetToken() token.Token { return nl.Token }

type ListLiteral struct {
	Token    token.Token // The '[' token
	Elements []Node
}

func (ll *ListLiteral) Kind() Kind            { return KindListLiteral }
func (ll *ListLiteral) node()                 {}
func (ll *ListLiteral) GetToken() token.Token { return ll.Token }

// DictPair is a single key: value entry.
type DictPair struct {
	Key   Node
	Value Node
}

type DictLiteral struct {
	Token token.Token // The '{' token
	Pairs []DictPair
}

func (dl *DictLiteral) Kind() Kind            { return KindDictLiteral }
func (dl *DictLiteral) node()                 {}
func (dl *DictLiteral) GetToken() token.Token { return dl.Token }

// IndexExpression represents list or dict access, e.g. arr[i]
type IndexExpression struct {
	Token     token.Token // The '[' token
	Container Node
	Key       Node
}

func (ie *IndexExpression) Kind() Kind            { return KindIndex }
func (ie *IndexExpression) node()                 {}
func (ie *IndexExpression) GetToken() token.Token { return ie.Token }

// BinaryExpression represents 'left op right'.
type BinaryExpression struct {
	Token    token.Token // The operator token
	Operator string
	Left     Node
	Right    Node
}

func (be *BinaryExpression) Kind() Kind            { return KindBinary }
func (be *BinaryExpression) node()                 {}
func (be *BinaryExpression) GetToken() token.Token { return be.Token }

// PrefixExpression represents 'op right', e.g. 'not x' or '-x'.
type PrefixExpression struct {
	Token    token.Token
	Operator string
	Right    Node
}

func (pe *PrefixExpression) Kind() Kind            { return KindPrefix }
func (pe *PrefixExpression) node()                 {}
func (pe *PrefixExpression) GetToken() token.Token { return pe.Token }

// CallExpression represents a function call, e.g. f(a, b)
type CallExpression struct {
	Token     token.Token // The '(' token
	Function  Node
	Arguments []Node
}

func (ce *CallExpression) Kind() Kind            { return KindCall }
func (ce *CallExpression) node()                 {}
func (ce *CallExpression) GetToken() token.Token { return ce.Token }

// DotExpression represents member access, e.g. owner.referenced
type DotExpression struct {
	Token      token.Token // The '.' token
	Owner      Node
	Referenced Node
}

func (de *DotExpression) Kind() Kind            { return KindDot }
func (de *DotExpression) node()                 {}
func (de *DotExpression) GetToken() token.Token { return de.Token }
