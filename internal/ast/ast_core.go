package ast

import (
	"github.com/funvibe/peregrine/internal/token"
)

// Node is the base interface for all AST nodes.
// The set of node types is closed: only types in this package implement it.
type Node interface {
	Kind() Kind
	GetToken() token.Token
	node()
}

// Kind identifies the concrete type of a Node.
type Kind int

const (
	KindProgram Kind = iota
	KindBlock
	KindImport
	KindFunctionDef
	KindVariable
	KindConst
	KindTypeDef
	KindPass
	KindIf
	KindWhile
	KindFor
	KindMatch
	KindScope
	KindCpp
	KindReturn
	KindContinue
	KindBreak
	KindDecorator
	KindAssert
	KindStatic
	KindInline
	KindRaise
	KindListLiteral
	KindDictLiteral
	KindIndex
	KindBinary
	KindPrefix
	KindCall
	KindDot
	KindIdentifier
	KindType
	KindListType
	KindDictType
	KindFunctionType
	KindNoLiteral
	KindInteger
	KindDecimal
	KindString
	KindBool
	KindNone
	KindUnion
	KindEnum

	kindCount
)

var kindNames = [...]string{
	KindProgram:      "program",
	KindBlock:        "block",
	KindImport:       "import",
	KindFunctionDef:  "function",
	KindVariable:     "var",
	KindConst:        "const",
	KindTypeDef:      "typedef",
	KindPass:         "pass",
	KindIf:           "if",
	KindWhile:        "while",
	KindFor:          "for",
	KindMatch:        "match",
	KindScope:        "scope",
	KindCpp:          "cpp",
	KindReturn:       "return",
	KindContinue:     "continue",
	KindBreak:        "break",
	KindDecorator:    "decorator",
	KindAssert:       "assert",
	KindStatic:       "static",
	KindInline:       "inline",
	KindRaise:        "raise",
	KindListLiteral:  "list",
	KindDictLiteral:  "dict",
	KindIndex:        "index",
	KindBinary:       "binary",
	KindPrefix:       "prefix",
	KindCall:         "call",
	KindDot:          "dot",
	KindIdentifier:   "ident",
	KindType:         "type",
	KindListType:     "listtype",
	KindDictType:     "dicttype",
	KindFunctionType: "functype",
	KindNoLiteral:    "nothing",
	KindInteger:      "int",
	KindDecimal:      "decimal",
	KindString:       "string",
	KindBool:         "bool",
	KindNone:         "none",
	KindUnion:        "union",
	KindEnum:         "enum",
}

func (k Kind) String() string {
	if k >= 0 && k < kindCount {
		return kindNames[k]
	}
	return "unknown"
}

// Kinds returns every node kind in declaration order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, kindCount)
	for k := Kind(0); k < kindCount; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// KindByName is the inverse of Kind.String.
func KindByName(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return Kind(k), true
		}
	}
	return 0, false
}

// IsAbsent reports whether an optional child is missing. Optional children
// are either nil or an explicit NoLiteral placeholder.
func IsAbsent(n Node) bool {
	if n == nil {
		return true
	}
	_, ok := n.(*NoLiteral)
	return ok
}

// Program is the root node of a translation unit.
type Program struct {
	File       string // Source file path
	Statements []Node
}

func (p *Program) Kind() Kind { return KindProgram }
func (p *Program) node()      {}
func (p *Program) GetToken() token.Token {
	if p == nil || len(p.Statements) == 0 {
		return token.Token{}
	}
	return p.Statements[0].GetToken()
}

// BlockStatement is an indented suite of statements.
type BlockStatement struct {
	Token      token.Token
	Statements []Node
}

func (bs *BlockStatement) Kind() Kind            { return KindBlock }
func (bs *BlockStatement) node()                 {}
func (bs *BlockStatement) GetToken() token.Token { return bs.Token }

// ImportStatement represents an import declaration.
// import path.to.module [as alias]
type ImportStatement struct {
	Token   token.Token // The 'import' token
	Module  string      // Dotted module path as written
	Alias   *Identifier // Optional
	Symbols []*Identifier
}

func (is *ImportStatement) Kind() Kind            { return KindImport }
func (is *ImportStatement) node()                 {}
func (is *ImportStatement) GetToken() token.Token { return is.Token }

// Parameter is a single typed function parameter.
type Parameter struct {
	Type Node
	Name *Identifier
}

// FunctionDefinition represents a function definition.
// def name(type a, type b) -> ret: body
type FunctionDefinition struct {
	Token      token.Token // The 'def' token
	Name       *Identifier
	Parameters []Parameter
	ReturnType Node // Optional
	Body       *BlockStatement
}

func (fd *FunctionDefinition) Kind() Kind { return KindFunctionDef }
func (fd *FunctionDefinition) node()      {}
func (fd *FunctionDefinition) GetToken() token.Token {
	if fd == nil {
		return token.Token{}
	}
	return fd.Token
}

// VariableStatement declares or assigns a variable.
// A missing Type means plain assignment to an existing binding.
type VariableStatement struct {
	Token token.Token
	Type  Node // Optional
	Name  Node
	Value Node // Optional
}

func (vs *VariableStatement) Kind() Kind            { return KindVariable }
func (vs *VariableStatement) node()                 {}
func (vs *VariableStatement) GetToken() token.Token { return vs.Token }

// ConstDeclaration declares an immutable binding.
type ConstDeclaration struct {
	Token token.Token
	Type  Node // Optional
	Name  *Identifier
	Value Node
}

func (cd *ConstDeclaration) Kind() Kind            { return KindConst }
func (cd *ConstDeclaration) node()                 {}
func (cd *ConstDeclaration) GetToken() token.Token { return cd.Token }

// TypeDefinition introduces a type alias.
// type Name = Base
type TypeDefinition struct {
	Token token.Token
	Name  *Identifier
	Base  Node
}

func (td *TypeDefinition) Kind() Kind            { return KindTypeDef }
func (td *TypeDefinition) node()                 {}
func (td *TypeDefinition) GetToken() token.Token { return td.Token }

type PassStatement struct {
	Token token.Token
}

func (ps *PassStatement) Kind() Kind            { return KindPass }
func (ps *PassStatement) node()                 {}
func (ps *PassStatement) GetToken() token.Token { return ps.Token }

// ElifClause is one 'elif cond: body' branch.
type ElifClause struct {
	Condition Node
	Body      *BlockStatement
}

type IfStatement struct {
	Token     token.Token
	Condition Node
	Body      *BlockStatement
	Elifs     []ElifClause
	Else      *BlockStatement // Optional
}

func (is *IfStatement) Kind() Kind            { return KindIf }
func (is *IfStatement) node()                 {}
func (is *IfStatement) GetToken() token.Token { return is.Token }

type WhileStatement struct {
	Token     token.Token
	Condition Node
	Body      *BlockStatement
}

func (ws *WhileStatement) Kind() Kind            { return KindWhile }
func (ws *WhileStatement) node()                 {}
func (ws *WhileStatement) GetToken() token.Token { return ws.Token }

// ForStatement represents 'for a, b in sequence: body'.
type ForStatement struct {
	Token     token.Token
	Variables []*Identifier
	Sequence  Node
	Body      *BlockStatement
}

func (fs *ForStatement) Kind() Kind            { return KindFor }
func (fs *ForStatement) node()                 {}
func (fs *ForStatement) GetToken() token.Token { return fs.Token }

// MatchCase is a single 'case p1, p2: body' arm.
// A case whose only pattern is a NoLiteral is the wildcard case.
type MatchCase struct {
	Patterns []Node
	Body     *BlockStatement
}

// IsWildcard reports whether the case matches unconditionally.
func (mc MatchCase) IsWildcard() bool {
	if len(mc.Patterns) != 1 {
		return false
	}
	_, ok := mc.Patterns[0].(*NoLiteral)
	return ok
}

type MatchStatement struct {
	Token   token.Token
	Subject Node
	Cases   []MatchCase
	Default *BlockStatement // Optional
}

func (ms *MatchStatement) Kind() Kind            { return KindMatch }
func (ms *MatchStatement) node()                 {}
func (ms *MatchStatement) GetToken() token.Token { return ms.Token }

// ScopeStatement is an explicit nested scope.
type ScopeStatement struct {
	Token token.Token
	Body  *BlockStatement
}

func (ss *ScopeStatement) Kind() Kind            { return KindScope }
func (ss *ScopeStatement) node()                 {}
func (ss *ScopeStatement) GetToken() token.Token { return ss.Token }

// CppStatement carries raw target code that is copied to the output as is.
type CppStatement struct {
	Token token.Token
	Value string
}

func (cs *CppStatement) Kind() Kind            { return KindCpp }
func (cs *CppStatement) node()                 {}
func (cs *CppStatement) GetToken() token.Token { return cs.Token }

type ReturnStatement struct {
	Token token.Token
	Value Node // Optional
}

func (rs *ReturnStatement) Kind() Kind            { return KindReturn }
func (rs *ReturnStatement) node()                 {}
func (rs *ReturnStatement) GetToken() token.Token { return rs.Token }

type ContinueStatement struct {
	Token token.Token
}

func (cs *ContinueStatement) Kind() Kind            { return KindContinue }
func (cs *ContinueStatement) node()                 {}
func (cs *ContinueStatement) GetToken() token.Token { return cs.Token }

type BreakStatement struct {
	Token token.Token
}

func (bs *BreakStatement) Kind() Kind            { return KindBreak }
func (bs *BreakStatement) node()                 {}
func (bs *BreakStatement) GetToken() token.Token { return bs.Token }

// DecoratorStatement wraps a function definition with decorators.
// Decorators are listed outermost first, as written in the source.
//
//	@A
//	@B
//	def f(): ...
type DecoratorStatement struct {
	Token      token.Token
	Decorators []Node
	Body       Node // *FunctionDefinition or *StaticStatement around one
}

func (ds *DecoratorStatement) Kind() Kind            { return KindDecorator }
func (ds *DecoratorStatement) node()                 {}
func (ds *DecoratorStatement) GetToken() token.Token { return ds.Token }

// AssertStatement checks a condition at run time.
// Token.Line and Token.Statement are quoted in the failure message.
type AssertStatement struct {
	Token     token.Token
	Condition Node
}

func (as *AssertStatement) Kind() Kind            { return KindAssert }
func (as *AssertStatement) node()                 {}
func (as *AssertStatement) GetToken() token.Token { return as.Token }

type StaticStatement struct {
	Token token.Token
	Body  Node
}

func (ss *StaticStatement) Kind() Kind            { return KindStatic }
func (ss *StaticStatement) node()                 {}
func (ss *StaticStatement) GetToken() token.Token { return ss.Token }

type InlineStatement struct {
	Token token.Token
	Body  Node
}

func (is *InlineStatement) Kind() Kind            { return KindInline }
func (is *InlineStatement) node()                 {}
func (is *InlineStatement) GetToken() token.Token { return is.Token }

type RaiseStatement struct {
	Token token.Token
	Value Node
}

func (rs *RaiseStatement) Kind() Kind            { return KindRaise }
func (rs *RaiseStatement) node()                 {}
func (rs *RaiseStatement) GetToken() token.Token { return rs.Token }

// UnionField is one 'type name' member of a union.
type UnionField struct {
	Type Node
	Name *Identifier
}

type UnionLiteral struct {
	Token  token.Token
	Name   *Identifier
	Fields []UnionField
}

func (ul *UnionLiteral) Kind() Kind            { return KindUnion }
func (ul *UnionLiteral) node()                 {}
func (ul *UnionLiteral) GetToken() token.Token { return ul.Token }

// EnumField is one enum member with an optional initializer.
type EnumField struct {
	Name  *Identifier
	Value Node // Optional
}

type EnumLiteral struct {
	Token  token.Token
	Name   *Identifier
	Fields []EnumField
}

func (el *EnumLiteral) Kind() Kind            { return KindEnum }
func (el *EnumLiteral) node()                 {}
func (el *EnumLiteral) GetToken() token.Token { return el.Token }
