package prettyprinter

import (
	"bytes"
	"strings"

	"github.com/funvibe/peregrine/internal/ast"
)

// --- Code Printer (Output looks like Peregrine source code) ---

// Operator precedence (higher = binds tighter)
var operatorPrecedence = map[string]int{
	"or":  1,
	"and": 2,
	"==":  3,
	"!=":  3,
	"<":   4,
	">":   4,
	"<=":  4,
	">=":  4,
	"|":   5,
	"^":   5,
	"&":   5,
	"<<":  6,
	">>":  6,
	"+":   7,
	"-":   7,
	"*":   8,
	"/":   8,
	"//":  8,
	"%":   8,
	"**":  9, // Power (right-assoc)
}

// prefixPrecedence binds tighter than every binary operator but power.
const prefixPrecedence = 9

func getPrecedence(op string) int {
	if p, ok := operatorPrecedence[op]; ok {
		return p
	}
	return 10 // Default high precedence for unknown ops
}

// Right-associative operators
var rightAssoc = map[string]bool{
	"**": true,
}

// CodePrinter renders an AST back to Peregrine source.
type CodePrinter struct {
	buf    bytes.Buffer
	indent int
}

func NewCodePrinter() *CodePrinter {
	return &CodePrinter{}
}

// Print renders a whole program.
func Print(prog *ast.Program) string {
	p := NewCodePrinter()
	p.printStatements(prog.Statements)
	return p.String()
}

func (p *CodePrinter) String() string {
	return p.buf.String()
}

func (p *CodePrinter) writeIndent() {
	for i := 0; i < p.indent; i++ {
		p.buf.WriteString("    ")
	}
}

func (p *CodePrinter) write(s string) {
	p.buf.WriteString(s)
}

func (p *CodePrinter) writeln() {
	p.buf.WriteString("\n")
}

func (p *CodePrinter) printStatements(stmts []ast.Node) {
	for _, stmt := range stmts {
		p.writeIndent()
		p.printStatement(stmt)
		p.writeln()
	}
}

// printBlock prints an indented suite. An empty suite prints as pass.
func (p *CodePrinter) printBlock(block *ast.BlockStatement) {
	p.write(":")
	p.writeln()
	p.indent++
	if block == nil || len(block.Statements) == 0 {
		p.writeIndent()
		p.write("pass")
		p.writeln()
	} else {
		p.printStatements(block.Statements)
	}
	p.indent--
}

// printStatement prints one statement without its trailing newline.
func (p *CodePrinter) printStatement(n ast.Node) {
	switch n := n.(type) {
	case *ast.ImportStatement:
		if len(n.Symbols) > 0 {
			p.write("from " + n.Module + " import ")
			for i, s := range n.Symbols {
				if i > 0 {
					p.write(", ")
				}
				p.write(s.Value)
			}
			return
		}
		p.write("import " + n.Module)
		if n.Alias != nil {
			p.write(" as " + n.Alias.Value)
		}
	case *ast.FunctionDefinition:
		p.printFunction(n)
	case *ast.DecoratorStatement:
		for _, d := range n.Decorators {
			p.write("@")
			p.printExpr(d, 0, false)
			p.writeln()
			p.writeIndent()
		}
		p.printStatement(n.Body)
	case *ast.VariableStatement:
		if !ast.IsAbsent(n.Type) {
			p.printExpr(n.Type, 0, false)
			p.write(" ")
		}
		p.printExpr(n.Name, 0, false)
		if !ast.IsAbsent(n.Value) {
			p.write(" = ")
			p.printExpr(n.Value, 0, false)
		}
	case *ast.ConstDeclaration:
		p.write("const ")
		if !ast.IsAbsent(n.Type) {
			p.printExpr(n.Type, 0, false)
			p.write(" ")
		}
		p.writeName(n.Name)
		p.write(" = ")
		p.printExpr(n.Value, 0, false)
	case *ast.TypeDefinition:
		p.write("type ")
		p.writeName(n.Name)
		p.write(" = ")
		p.printExpr(n.Base, 0, false)
	case *ast.PassStatement:
		p.write("pass")
	case *ast.IfStatement:
		p.write("if ")
		p.printExpr(n.Condition, 0, false)
		p.printBlock(n.Body)
		for _, elif := range n.Elifs {
			p.writeIndent()
			p.write("elif ")
			p.printExpr(elif.Condition, 0, false)
			p.printBlock(elif.Body)
		}
		if n.Else != nil {
			p.writeIndent()
			p.write("else")
			p.printBlock(n.Else)
		}
		p.trimNewline()
	case *ast.WhileStatement:
		p.write("while ")
		p.printExpr(n.Condition, 0, false)
		p.printBlock(n.Body)
		p.trimNewline()
	case *ast.ForStatement:
		p.write("for ")
		for i, v := range n.Variables {
			if i > 0 {
				p.write(", ")
			}
			p.write(v.Value)
		}
		p.write(" in ")
		p.printExpr(n.Sequence, 0, false)
		p.printBlock(n.Body)
		p.trimNewline()
	case *ast.MatchStatement:
		p.printMatch(n)
	case *ast.ScopeStatement:
		p.write("scope")
		p.printBlock(n.Body)
		p.trimNewline()
	case *ast.CppStatement:
		p.write(`Cpp"` + n.Value + `"`)
	case *ast.ReturnStatement:
		p.write("return")
		if !ast.IsAbsent(n.Value) {
			p.write(" ")
			p.printExpr(n.Value, 0, false)
		}
	case *ast.ContinueStatement:
		p.write("continue")
	case *ast.BreakStatement:
		p.write("break")
	case *ast.AssertStatement:
		p.write("assert ")
		p.printExpr(n.Condition, 0, false)
	case *ast.StaticStatement:
		p.write("static ")
		p.printStatement(n.Body)
	case *ast.InlineStatement:
		p.write("inline ")
		p.printStatement(n.Body)
	case *ast.RaiseStatement:
		p.write("raise ")
		p.printExpr(n.Value, 0, false)
	case *ast.UnionLiteral:
		p.write("union ")
		p.writeName(n.Name)
		p.write(":")
		p.indent++
		for _, f := range n.Fields {
			p.writeln()
			p.writeIndent()
			p.printExpr(f.Type, 0, false)
			p.write(" ")
			p.writeName(f.Name)
		}
		p.indent--
	case *ast.EnumLiteral:
		p.write("enum ")
		p.writeName(n.Name)
		p.write(":")
		p.indent++
		for i, f := range n.Fields {
			if i > 0 {
				p.write(",")
			}
			p.writeln()
			p.writeIndent()
			p.writeName(f.Name)
			if !ast.IsAbsent(f.Value) {
				p.write(" = ")
				p.printExpr(f.Value, 0, false)
			}
		}
		p.indent--
	case *ast.Program:
		p.write("<program>")
	case *ast.BlockStatement:
		p.write("scope")
		p.printBlock(n)
		p.trimNewline()
	default:
		p.printExpr(n, 0, false)
	}
}

// trimNewline drops the newline a trailing block left, since the caller
// ends the statement.
func (p *CodePrinter) trimNewline() {
	if b := p.buf.Bytes(); len(b) > 0 && b[len(b)-1] == '\n' {
		p.buf.Truncate(len(b) - 1)
	}
}

func (p *CodePrinter) writeName(id *ast.Identifier) {
	if id == nil {
		p.write("<???>")
		return
	}
	p.write(id.Value)
}

func (p *CodePrinter) printFunction(n *ast.FunctionDefinition) {
	p.write("def ")
	p.writeName(n.Name)
	p.write("(")
	for i, param := range n.Parameters {
		if i > 0 {
			p.write(", ")
		}
		p.printExpr(param.Type, 0, false)
		p.write(" ")
		p.writeName(param.Name)
	}
	p.write(")")
	if !ast.IsAbsent(n.ReturnType) {
		p.write(" -> ")
		p.printExpr(n.ReturnType, 0, false)
	}
	p.printBlock(n.Body)
	p.trimNewline()
}

func (p *CodePrinter) printMatch(n *ast.MatchStatement) {
	p.write("match ")
	p.printExpr(n.Subject, 0, false)
	p.write(":")
	p.writeln()
	p.indent++
	for _, c := range n.Cases {
		p.writeIndent()
		p.write("case ")
		for i, pattern := range c.Patterns {
			if i > 0 {
				p.write(", ")
			}
			p.printExpr(pattern, 0, false)
		}
		p.printBlock(c.Body)
	}
	if n.Default != nil {
		p.writeIndent()
		p.write("default")
		p.printBlock(n.Default)
	}
	p.indent--
	p.trimNewline()
}

// printExpr prints an expression, adding parentheses only if needed
func (p *CodePrinter) printExpr(expr ast.Node, parentPrec int, isRight bool) {
	if expr == nil {
		p.write("<???>")
		return
	}
	switch e := expr.(type) {
	case *ast.BinaryExpression:
		prec := getPrecedence(e.Operator)
		needParens := prec < parentPrec
		// For same precedence, check associativity
		if prec == parentPrec {
			if isRight && !rightAssoc[e.Operator] {
				needParens = true
			} else if !isRight && rightAssoc[e.Operator] {
				needParens = true
			}
		}
		if needParens {
			p.write("(")
		}
		p.printExpr(e.Left, prec, false)
		p.write(" " + e.Operator + " ")
		p.printExpr(e.Right, prec, true)
		if needParens {
			p.write(")")
		}
	case *ast.PrefixExpression:
		p.write(e.Operator)
		if isWordOperator(e.Operator) {
			p.write(" ")
		}
		p.printExpr(e.Right, prefixPrecedence+1, false)
	case *ast.CallExpression:
		p.printExpr(e.Function, 100, false)
		p.write("(")
		p.printList(e.Arguments)
		p.write(")")
	case *ast.IndexExpression:
		p.printExpr(e.Container, 100, false)
		p.write("[")
		p.printExpr(e.Key, 0, false)
		p.write("]")
	case *ast.DotExpression:
		p.printExpr(e.Owner, 100, false)
		p.write(".")
		p.printExpr(e.Referenced, 100, false)
	case *ast.ListLiteral:
		p.write("[")
		p.printList(e.Elements)
		p.write("]")
	case *ast.DictLiteral:
		p.write("{")
		for i, pair := range e.Pairs {
			if i > 0 {
				p.write(", ")
			}
			p.printExpr(pair.Key, 0, false)
			p.write(": ")
			p.printExpr(pair.Value, 0, false)
		}
		p.write("}")
	case *ast.Identifier:
		p.write(e.Value)
	case *ast.TypeExpression:
		p.write(e.Value)
	case *ast.ListType:
		p.write("[")
		p.printExpr(e.Element, 0, false)
		p.write("]")
	case *ast.DictType:
		p.write("dict[")
		p.printExpr(e.Key, 0, false)
		p.write(", ")
		p.printExpr(e.Value, 0, false)
		p.write("]")
	case *ast.FunctionType:
		p.write("def(")
		p.printList(e.Arguments)
		p.write(")")
		if len(e.Returns) > 0 {
			p.write(" -> ")
			p.printList(e.Returns)
		}
	case *ast.IntegerLiteral:
		p.write(e.Value)
	case *ast.DecimalLiteral:
		p.write(e.Value)
	case *ast.StringLiteral:
		p.write(`"` + e.Value + `"`)
	case *ast.BoolLiteral:
		p.write(e.Value)
	case *ast.NoneLiteral:
		p.write("None")
	case *ast.NoLiteral:
		p.write("_")
	default:
		// Statements in expression position
		p.printStatement(expr)
	}
}

func (p *CodePrinter) printList(nodes []ast.Node) {
	for i, n := range nodes {
		if i > 0 {
			p.write(", ")
		}
		p.printExpr(n, 0, false)
	}
}

func isWordOperator(op string) bool {
	return strings.IndexFunc(op, func(r rune) bool {
		return r < 'a' || r > 'z'
	}) < 0
}
