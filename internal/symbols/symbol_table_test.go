package symbols

import (
	"testing"

	"github.com/funvibe/peregrine/internal/ast"
)

func TestSymbolTable_FindWalksOuterScopes(t *testing.T) {
	global := NewEmptySymbolTable()
	global.Define("Color", EnumSymbol, &ast.EnumLiteral{})

	fn := NewEnclosedSymbolTable(global, ScopeFunction)
	fn.Define("x", VariableSymbol, nil)

	if !fn.IsKind("Color", EnumSymbol) {
		t.Errorf("expected Color to resolve to an enum from the inner scope")
	}
	if _, ok := global.Find("x"); ok {
		t.Errorf("inner definition leaked into the outer scope")
	}
	if _, ok := fn.FindLocal("Color"); ok {
		t.Errorf("FindLocal should not consult outer scopes")
	}
	if fn.IsGlobalScope() || !global.IsGlobalScope() {
		t.Errorf("unexpected scope types")
	}
	if fn.Outer() != global {
		t.Errorf("Outer() = %p, want %p", fn.Outer(), global)
	}
}

func TestSymbolTable_Shadowing(t *testing.T) {
	global := NewEmptySymbolTable()
	global.Define("Shape", EnumSymbol, nil)
	block := NewEnclosedSymbolTable(global, ScopeBlock)
	block.Define("Shape", VariableSymbol, nil)

	if block.IsKind("Shape", EnumSymbol) {
		t.Errorf("local variable should shadow the enum")
	}
	if !global.IsKind("Shape", EnumSymbol) {
		t.Errorf("global enum should be unaffected")
	}
}

func TestSymbolTable_NamesKeepDefinitionOrder(t *testing.T) {
	s := NewEmptySymbolTable()
	s.Define("b", EnumSymbol, nil)
	s.Define("a", UnionSymbol, nil)
	s.Define("b", TypeSymbol, nil)

	names := s.Names()
	if len(names) != 2 || names[0] != "b" || names[1] != "a" {
		t.Fatalf("Names() = %v, want [b a]", names)
	}
	if sym, _ := s.Find("b"); sym.Kind != TypeSymbol {
		t.Errorf("redefinition kind = %s, want type", sym.Kind)
	}
}
