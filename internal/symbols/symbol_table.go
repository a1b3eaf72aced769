// Package symbols provides the scoped name table used while lowering.
package symbols

import (
	"github.com/funvibe/peregrine/internal/ast"
)

type SymbolKind int

type ScopeType int

const (
	ScopeGlobal ScopeType = iota // Program top-level
	ScopeFunction
	ScopeBlock
)

const (
	VariableSymbol SymbolKind = iota
	FunctionSymbol
	TypeSymbol
	EnumSymbol
	UnionSymbol
)

func (k SymbolKind) String() string {
	switch k {
	case VariableSymbol:
		return "variable"
	case FunctionSymbol:
		return "function"
	case TypeSymbol:
		return "type"
	case EnumSymbol:
		return "enum"
	case UnionSymbol:
		return "union"
	}
	return "unknown"
}

type Symbol struct {
	Name           string
	Kind           SymbolKind
	DefinitionNode ast.Node // The AST node where this symbol was defined
}

// SymbolTable maps names to symbols within one scope and chains to its
// enclosing scope for lookups.
type SymbolTable struct {
	store     map[string]Symbol
	order     []string // definition order, for deterministic iteration
	outer     *SymbolTable
	scopeType ScopeType
}

func NewEmptySymbolTable() *SymbolTable {
	return &SymbolTable{
		store:     make(map[string]Symbol),
		scopeType: ScopeGlobal,
	}
}

func NewEnclosedSymbolTable(outer *SymbolTable, scopeType ScopeType) *SymbolTable {
	s := NewEmptySymbolTable()
	s.outer = outer
	s.scopeType = scopeType
	return s
}

func (s *SymbolTable) Outer() *SymbolTable {
	return s.outer
}

func (s *SymbolTable) IsGlobalScope() bool {
	return s.scopeType == ScopeGlobal
}

// Define binds name in this scope. Redefinition replaces the earlier symbol
// but keeps its original position in Names.
func (s *SymbolTable) Define(name string, kind SymbolKind, node ast.Node) {
	if _, exists := s.store[name]; !exists {
		s.order = append(s.order, name)
	}
	s.store[name] = Symbol{Name: name, Kind: kind, DefinitionNode: node}
}

// Find looks name up in this scope and then in each enclosing scope.
func (s *SymbolTable) Find(name string) (Symbol, bool) {
	for scope := s; scope != nil; scope = scope.outer {
		if sym, ok := scope.store[name]; ok {
			return sym, true
		}
	}
	return Symbol{}, false
}

// FindLocal looks name up in this scope only.
func (s *SymbolTable) FindLocal(name string) (Symbol, bool) {
	sym, ok := s.store[name]
	return sym, ok
}

// IsKind reports whether name resolves to a symbol of the given kind.
func (s *SymbolTable) IsKind(name string, kind SymbolKind) bool {
	sym, ok := s.Find(name)
	return ok && sym.Kind == kind
}

// Names returns the names defined in this scope in definition order.
func (s *SymbolTable) Names() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}
