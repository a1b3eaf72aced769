package cpp

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/funvibe/peregrine/internal/ast"
)

func TestLowerFunctions(t *testing.T) {
	tests := []struct {
		name string
		stmt ast.Node
		want string
	}{
		{
			name: "top-level function",
			stmt: function("add", typeName("int"), params(param("int", "a"), param("int", "b")),
				ret(binary("+", ident("a"), ident("b")))),
			want: "int add(int a, int b) {\nreturn (a + b);\n\n}\n",
		},
		{
			name: "missing return type is void",
			stmt: function("log", nil, nil),
			want: "void log() {\n\n}\n",
		},
		{
			name: "main returns zero",
			stmt: function("main", nil, nil, call(ident("run"))),
			want: "int main () {\nrun();\nreturn 0;\n}\n",
		},
		{
			name: "main with parameters",
			stmt: function("main", nil, params(param("int", "argc"))),
			want: "int main (int argc) {\nreturn 0;\n}\n",
		},
		{
			name: "closure inside main",
			stmt: function("main", nil, nil,
				function("outer", typeName("int"), nil,
					function("inner", typeName("int"), params(param("int", "x")), ret(ident("x"))),
					ret(call(ident("inner"), num("1"))))),
			want: "int main () {\n" +
				"auto outer = [=]()mutable->int {\n" +
				"auto inner = [=](int x)mutable->int {\n" +
				"return x;\n" +
				"\n};\n" +
				"return inner(1);\n" +
				"\n};\n" +
				"return 0;\n}\n",
		},
		{
			name: "closures three levels deep",
			stmt: function("a", nil, nil,
				function("b", nil, nil,
					function("c", nil, nil, &ast.PassStatement{}))),
			want: "void a() {\n" +
				"auto b = [=]()mutable->void {\n" +
				"auto c = [=]()mutable->void {\n" +
				"//pass\n" +
				"\n};\n" +
				"\n};\n" +
				"\n}\n",
		},
		{
			name: "closures four levels deep",
			stmt: function("a", nil, nil,
				function("b", nil, nil,
					function("c", nil, nil,
						function("d", nil, nil, &ast.PassStatement{}),
						call(ident("d"))))),
			want: "void a() {\n" +
				"auto b = [=]()mutable->void {\n" +
				"auto c = [=]()mutable->void {\n" +
				"auto d = [=]()mutable->void {\n" +
				"//pass\n" +
				"\n};\n" +
				"d();\n" +
				"\n};\n" +
				"\n};\n" +
				"\n}\n",
		},
		{
			name: "static function",
			stmt: &ast.StaticStatement{Body: function("one", typeName("int"), nil, ret(num("1")))},
			want: "static int one() {\nreturn 1;\n\n}\n",
		},
		{
			name: "inline function",
			stmt: &ast.InlineStatement{Body: function("one", typeName("int"), nil, ret(num("1")))},
			want: "inline int one() {\nreturn 1;\n\n}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, lowerBody(t, tt.stmt))
		})
	}
}

func TestLowerDecorators(t *testing.T) {
	identity := func() *ast.FunctionDefinition {
		return function("f", typeName("int"), params(param("int", "x")), ret(ident("x")))
	}
	closure := "[](int x)mutable->int {\nreturn x;\n\n}"

	tests := []struct {
		name string
		stmt ast.Node
		want string
	}{
		{
			name: "applied innermost last",
			stmt: &ast.DecoratorStatement{
				Decorators: []ast.Node{ident("A"), ident("B")},
				Body:       identity(),
			},
			want: "auto f = A(B(" + closure + "));\n",
		},
		{
			name: "static",
			stmt: &ast.DecoratorStatement{
				Decorators: []ast.Node{ident("A"), ident("B")},
				Body:       &ast.StaticStatement{Body: identity()},
			},
			want: "static auto f = A(B(" + closure + "));\n",
		},
		{
			name: "decorator expression",
			stmt: &ast.DecoratorStatement{
				Decorators: []ast.Node{call(ident("cache"), num("8"))},
				Body:       identity(),
			},
			want: "auto f = cache(8)(" + closure + ");\n",
		},
		{
			name: "inside a function",
			stmt: function("main", nil, nil, &ast.DecoratorStatement{
				Decorators: []ast.Node{ident("A")},
				Body:       function("g", nil, nil, &ast.PassStatement{}),
			}),
			want: "int main () {\n" +
				"auto g = A([=]()mutable->void {\n//pass\n\n});\n" +
				"return 0;\n}\n",
		},
		{
			name: "decorated function inside decorated function",
			stmt: &ast.DecoratorStatement{
				Decorators: []ast.Node{ident("D")},
				Body: function("f", nil, nil, &ast.DecoratorStatement{
					Decorators: []ast.Node{ident("E")},
					Body:       function("g", nil, nil, &ast.PassStatement{}),
				}),
			},
			want: "auto f = D([]()mutable->void {\n" +
				"auto g = E([=]()mutable->void {\n//pass\n\n});\n" +
				"\n});\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, lowerBody(t, tt.stmt))
		})
	}
}
