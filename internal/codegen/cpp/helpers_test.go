package cpp

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/funvibe/peregrine/internal/ast"
	"github.com/funvibe/peregrine/internal/config"
)

const testFile = "demo.pe"

func ident(name string) *ast.Identifier { return &ast.Identifier{Value: name} }

func num(v string) *ast.IntegerLiteral { return &ast.IntegerLiteral{Value: v} }

func str(v string) *ast.StringLiteral { return &ast.StringLiteral{Value: v} }

func typeName(name string) *ast.TypeExpression { return &ast.TypeExpression{Value: name} }

func binary(op string, left, right ast.Node) *ast.BinaryExpression {
	return &ast.BinaryExpression{Operator: op, Left: left, Right: right}
}

func call(fn ast.Node, args ...ast.Node) *ast.CallExpression {
	return &ast.CallExpression{Function: fn, Arguments: args}
}

func dot(owner, member ast.Node) *ast.DotExpression {
	return &ast.DotExpression{Owner: owner, Referenced: member}
}

func ret(v ast.Node) *ast.ReturnStatement { return &ast.ReturnStatement{Value: v} }

func block(stmts ...ast.Node) *ast.BlockStatement {
	return &ast.BlockStatement{Statements: stmts}
}

func param(typ, name string) ast.Parameter {
	return ast.Parameter{Type: typeName(typ), Name: ident(name)}
}

// function builds a definition; a nil ret leaves the return type out.
func function(name string, ret ast.Node, params []ast.Parameter, body ...ast.Node) *ast.FunctionDefinition {
	return &ast.FunctionDefinition{Name: ident(name), ReturnType: ret, Parameters: params, Body: block(body...)}
}

func params(ps ...ast.Parameter) []ast.Parameter { return ps }

// lowerBody lowers stmts as a program and returns the text after the
// preamble.
func lowerBody(t *testing.T, stmts ...ast.Node) string {
	t.Helper()
	var out strings.Builder
	err := Lower(&out, &ast.Program{File: testFile, Statements: stmts}, testFile)
	require.NoError(t, err)
	text := out.String()
	require.True(t, strings.HasPrefix(text, config.Preamble), "output does not start with the preamble")
	return strings.TrimPrefix(text, config.Preamble)
}

// lowerErr lowers stmts as a program and returns the error.
func lowerErr(t *testing.T, stmts ...ast.Node) error {
	t.Helper()
	err := Lower(&strings.Builder{}, &ast.Program{File: testFile, Statements: stmts}, testFile)
	require.Error(t, err)
	return err
}
