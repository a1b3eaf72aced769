package cpp

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funvibe/peregrine/internal/ast"
	"github.com/funvibe/peregrine/internal/config"
	"github.com/funvibe/peregrine/internal/token"
)

func TestLowerEmitsPreamble(t *testing.T) {
	var out strings.Builder
	require.NoError(t, Lower(&out, &ast.Program{}, testFile))
	assert.Equal(t, config.Preamble, out.String())
}

func TestLowerIsRepeatable(t *testing.T) {
	prog := &ast.Program{File: testFile, Statements: []ast.Node{
		dot(ident("Color"), ident("Red")),
		&ast.EnumLiteral{Name: ident("Color"), Fields: []ast.EnumField{{Name: ident("Red")}}},
		&ast.DecoratorStatement{
			Decorators: []ast.Node{ident("A")},
			Body:       function("f", nil, nil, &ast.PassStatement{}),
		},
		function("main", nil, nil, &ast.AssertStatement{
			Token:     token.Token{Line: 3, Statement: "assert Color.Red == 0"},
			Condition: binary("==", dot(ident("Color"), ident("Red")), num("0")),
		}),
	}}

	var first, second strings.Builder
	require.NoError(t, Lower(&first, prog, testFile))
	require.NoError(t, Lower(&second, prog, testFile))
	assert.Equal(t, first.String(), second.String())
	// Enums declared by the first pass are not known at the start of the second.
	assert.Contains(t, second.String(), "Color.Red;\n")
}

func TestLowerErrors(t *testing.T) {
	tests := []struct {
		name   string
		stmt   ast.Node
		target error
		kind   ast.Kind
		line   int
	}{
		{
			name:   "for loop",
			stmt:   &ast.ForStatement{Token: token.Token{Line: 4}, Sequence: ident("xs"), Body: block()},
			target: ErrUnsupported,
			kind:   ast.KindFor,
			line:   4,
		},
		{
			name: "list literal deep in a function",
			stmt: function("main", nil, nil, &ast.VariableStatement{
				Name:  ident("xs"),
				Value: &ast.ListLiteral{Token: token.Token{Line: 9}},
			}),
			target: ErrUnsupported,
			kind:   ast.KindListLiteral,
			line:   9,
		},
		{
			name: "dict type",
			stmt: &ast.VariableStatement{
				Type: &ast.DictType{Key: typeName("str"), Value: typeName("int")},
				Name: ident("d"),
			},
			target: ErrUnsupported,
			kind:   ast.KindDictType,
		},
		{
			name: "decorator on a variable",
			stmt: &ast.DecoratorStatement{
				Token:      token.Token{Line: 2},
				Decorators: []ast.Node{ident("A")},
				Body:       &ast.VariableStatement{Name: ident("x")},
			},
			target: ErrMalformedDecorator,
			kind:   ast.KindDecorator,
			line:   2,
		},
		{
			name:   "decorator without body",
			stmt:   &ast.DecoratorStatement{Decorators: []ast.Node{ident("A")}},
			target: ErrMalformedDecorator,
			kind:   ast.KindDecorator,
		},
		{
			name:   "binary without operand",
			stmt:   binary("+", ident("a"), nil),
			target: ErrMissingChild,
			kind:   ast.KindBinary,
		},
		{
			name:   "function without body",
			stmt:   &ast.FunctionDefinition{Name: ident("f")},
			target: ErrMissingChild,
			kind:   ast.KindFunctionDef,
		},
		{
			name:   "nested program",
			stmt:   &ast.Program{},
			target: ErrUnexpectedNode,
			kind:   ast.KindProgram,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := lowerErr(t, tt.stmt)
			assert.ErrorIs(t, err, tt.target)

			var le *LowerError
			require.ErrorAs(t, err, &le)
			assert.Equal(t, tt.kind, le.Kind)
			assert.Equal(t, tt.line, le.Token.Line)
		})
	}
}

func TestLowerErrorMessage(t *testing.T) {
	err := lowerErr(t, &ast.ForStatement{Token: token.Token{Line: 4}, Sequence: ident("xs"), Body: block()})
	assert.Equal(t, "line 4: lowering for: construct is not supported by the C++ backend", err.Error())
}

func TestLowerNilProgram(t *testing.T) {
	err := Lower(&strings.Builder{}, nil, testFile)
	assert.ErrorIs(t, err, ErrMissingChild)
}

func TestFailedDecoratorClosesCapture(t *testing.T) {
	var out strings.Builder
	e := newEngine(&out, testFile)
	err := e.lowerProgram(&ast.Program{Statements: []ast.Node{
		&ast.DecoratorStatement{
			Decorators: []ast.Node{ident("A")},
			Body:       function("f", nil, nil, &ast.ForStatement{Sequence: ident("xs"), Body: block()}),
		},
	}})

	require.ErrorIs(t, err, ErrUnsupported)
	assert.Equal(t, 0, e.sink.Depth())
	assert.NotContains(t, out.String(), "auto f")
}

func TestLowerReportsWriteFailure(t *testing.T) {
	err := Lower(&failingWriter{}, &ast.Program{}, testFile)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "writing output")
}

// sampleNodes holds a well-formed node of every kind.
func sampleNodes() map[ast.Kind]ast.Node {
	return map[ast.Kind]ast.Node{
		ast.KindProgram:     &ast.Program{},
		ast.KindBlock:       block(),
		ast.KindImport:      &ast.ImportStatement{Module: "m"},
		ast.KindFunctionDef: function("f", nil, nil),
		ast.KindVariable:    &ast.VariableStatement{Name: ident("x")},
		ast.KindConst:       &ast.ConstDeclaration{Name: ident("c"), Value: num("1")},
		ast.KindTypeDef:     &ast.TypeDefinition{Name: ident("T"), Base: typeName("int")},
		ast.KindPass:        &ast.PassStatement{},
		ast.KindIf:          &ast.IfStatement{Condition: ident("c"), Body: block()},
		ast.KindWhile:       &ast.WhileStatement{Condition: ident("c"), Body: block()},
		ast.KindFor:         &ast.ForStatement{Sequence: ident("xs"), Body: block()},
		ast.KindMatch: &ast.MatchStatement{Subject: ident("x"), Cases: []ast.MatchCase{
			{Patterns: patterns(num("1")), Body: block()},
		}},
		ast.KindScope:        &ast.ScopeStatement{Body: block()},
		ast.KindCpp:          &ast.CppStatement{Value: "x;"},
		ast.KindReturn:       &ast.ReturnStatement{},
		ast.KindContinue:     &ast.ContinueStatement{},
		ast.KindBreak:        &ast.BreakStatement{},
		ast.KindDecorator:    &ast.DecoratorStatement{Decorators: []ast.Node{ident("d")}, Body: function("g", nil, nil)},
		ast.KindAssert:       &ast.AssertStatement{Condition: ident("c")},
		ast.KindStatic:       &ast.StaticStatement{Body: &ast.VariableStatement{Name: ident("x")}},
		ast.KindInline:       &ast.InlineStatement{Body: function("h", nil, nil)},
		ast.KindRaise:        &ast.RaiseStatement{Value: ident("e")},
		ast.KindListLiteral:  &ast.ListLiteral{},
		ast.KindDictLiteral:  &ast.DictLiteral{},
		ast.KindIndex:        &ast.IndexExpression{Container: ident("a"), Key: num("0")},
		ast.KindBinary:       binary("+", num("1"), num("2")),
		ast.KindPrefix:       &ast.PrefixExpression{Operator: "!", Right: ident("b")},
		ast.KindCall:         call(ident("f")),
		ast.KindDot:          dot(ident("a"), ident("b")),
		ast.KindIdentifier:   ident("a"),
		ast.KindType:         typeName("int"),
		ast.KindListType:     &ast.ListType{Element: typeName("int")},
		ast.KindDictType:     &ast.DictType{Key: typeName("int"), Value: typeName("int")},
		ast.KindFunctionType: &ast.FunctionType{},
		ast.KindNoLiteral:    &ast.NoLiteral{},
		ast.KindInteger:      num("1"),
		ast.KindDecimal:      &ast.DecimalLiteral{Value: "1.0"},
		ast.KindString:       str("s"),
		ast.KindBool:         &ast.BoolLiteral{Value: "True"},
		ast.KindNone:         &ast.NoneLiteral{},
		ast.KindUnion:        &ast.UnionLiteral{Name: ident("U")},
		ast.KindEnum:         &ast.EnumLiteral{Name: ident("E")},
	}
}

func TestEveryKindHasALoweringRule(t *testing.T) {
	unsupported := map[ast.Kind]bool{
		ast.KindFor:         true,
		ast.KindListLiteral: true,
		ast.KindDictLiteral: true,
		ast.KindListType:    true,
		ast.KindDictType:    true,
	}
	samples := sampleNodes()

	for _, kind := range ast.Kinds() {
		t.Run(kind.String(), func(t *testing.T) {
			n, ok := samples[kind]
			require.True(t, ok, "no sample node for %s", kind)
			require.Equal(t, kind, n.Kind())

			e := newEngine(&strings.Builder{}, testFile)
			_, err := e.lower(scope{funcDepth: 1}, n)

			switch {
			case kind == ast.KindProgram:
				assert.ErrorIs(t, err, ErrUnexpectedNode)
			case unsupported[kind]:
				assert.ErrorIs(t, err, ErrUnsupported)
			default:
				assert.NoError(t, err)
			}
			if err != nil {
				assert.False(t, kind != ast.KindProgram && errors.Is(err, ErrUnexpectedNode),
					"%s fell through to the default case", kind)
			}
			assert.Equal(t, 0, e.sink.Depth())
		})
	}
}
