package prettyprinter

import (
	"testing"

	"github.com/funvibe/peregrine/internal/ast"
)

func id(name string) *ast.Identifier { return &ast.Identifier{Value: name} }

func num(v string) *ast.IntegerLiteral { return &ast.IntegerLiteral{Value: v} }

func bin(op string, l, r ast.Node) *ast.BinaryExpression {
	return &ast.BinaryExpression{Operator: op, Left: l, Right: r}
}

func TestPrintExpressionParens(t *testing.T) {
	tests := []struct {
		name string
		expr ast.Node
		want string
	}{
		{"no parens needed", bin("+", id("a"), bin("*", id("b"), id("c"))), "a + b * c"},
		{"lower precedence inside", bin("*", bin("+", id("a"), id("b")), id("c")), "(a + b) * c"},
		{"left associative", bin("-", id("a"), bin("-", id("b"), id("c"))), "a - (b - c)"},
		{"left chain", bin("-", bin("-", id("a"), id("b")), id("c")), "a - b - c"},
		{"power is right associative", bin("**", id("a"), bin("**", id("b"), id("c"))), "a ** b ** c"},
		{"power on the left", bin("**", bin("**", id("a"), id("b")), id("c")), "(a ** b) ** c"},
		{"word prefix", &ast.PrefixExpression{Operator: "not", Right: id("ok")}, "not ok"},
		{"prefix over binary", &ast.PrefixExpression{Operator: "-", Right: bin("+", id("a"), num("1"))}, "-(a + 1)"},
		{"call and member", &ast.CallExpression{
			Function:  &ast.DotExpression{Owner: id("v"), Referenced: id("push")},
			Arguments: []ast.Node{num("1"), &ast.StringLiteral{Value: "x"}},
		}, `v.push(1, "x")`},
		{"index", &ast.IndexExpression{Container: id("xs"), Key: num("0")}, "xs[0]"},
		{"function type", &ast.FunctionType{
			Arguments: []ast.Node{&ast.TypeExpression{Value: "int"}},
			Returns:   []ast.Node{&ast.TypeExpression{Value: "bool"}},
		}, "def(int) -> bool"},
		{"none", &ast.NoneLiteral{}, "None"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewCodePrinter()
			p.printExpr(tt.expr, 0, false)
			if got := p.String(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPrintProgram(t *testing.T) {
	prog := &ast.Program{Statements: []ast.Node{
		&ast.ImportStatement{Module: "math"},
		&ast.EnumLiteral{Name: id("Color"), Fields: []ast.EnumField{
			{Name: id("Red")},
			{Name: id("Green"), Value: num("4")},
		}},
		&ast.DecoratorStatement{
			Decorators: []ast.Node{id("logged")},
			Body: &ast.FunctionDefinition{
				Name:       id("area"),
				Parameters: []ast.Parameter{{Type: &ast.TypeExpression{Value: "int"}, Name: id("w")}},
				ReturnType: &ast.TypeExpression{Value: "int"},
				Body: &ast.BlockStatement{Statements: []ast.Node{
					&ast.MatchStatement{
						Subject: id("w"),
						Cases: []ast.MatchCase{
							{Patterns: []ast.Node{num("1"), num("2")}, Body: &ast.BlockStatement{Statements: []ast.Node{
								&ast.ReturnStatement{Value: num("0")},
							}}},
							{Patterns: []ast.Node{&ast.NoLiteral{}}, Body: &ast.BlockStatement{}},
						},
					},
					&ast.ReturnStatement{Value: bin("*", id("w"), id("w"))},
				}},
			},
		},
		&ast.FunctionDefinition{
			Name: id("main"),
			Body: &ast.BlockStatement{Statements: []ast.Node{
				&ast.IfStatement{
					Condition: bin(">", id("x"), num("0")),
					Body:      &ast.BlockStatement{Statements: []ast.Node{&ast.PassStatement{}}},
					Else:      &ast.BlockStatement{Statements: []ast.Node{&ast.BreakStatement{}}},
				},
				&ast.AssertStatement{Condition: id("ok")},
			}},
		},
	}}

	want := `import math
enum Color:
    Red,
    Green = 4
@logged
def area(int w) -> int:
    match w:
        case 1, 2:
            return 0
        case _:
            pass
    return w * w
def main():
    if x > 0:
        pass
    else:
        break
    assert ok
`
	if got := Print(prog); got != want {
		t.Errorf("Print() =\n%s\nwant\n%s", got, want)
	}
}
