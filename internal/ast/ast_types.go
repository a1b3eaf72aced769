package ast

import (
	"github.com/funvibe/peregrine/internal/token"
)

// --- Type Nodes ---

// TypeExpression is a named type like 'int' or 'MyStruct'.
type TypeExpression struct {
	Token token.Token
	Value string
}

func (te *TypeExpression) Kind() Kind            { return KindType }
func (te *TypeExpression) node()                 {}
func (te *TypeExpression) GetToken() token.Token { return te.Token }

// ListType is '[T]'.
type ListType struct {
	Token   token.Token
	Element Node
}

func (lt *ListType) Kind() Kind            { return KindListType }
func (lt *ListType) node()                 {}
func (lt *ListType) GetToken() token.Token { return lt.Token }

// DictType is '{K: V}'.
type DictType struct {
	Token token.Token
	Key   Node
	Value Node
}

func (dt *DictType) Kind() Kind            { return KindDictType }
func (dt *DictType) node()                 {}
func (dt *DictType) GetToken() token.Token { return dt.Token }

// FunctionType is 'def(A, B) -> R'. Only the first return type is used by
// the backend; an empty Returns list means no return value.
type FunctionType struct {
	Token     token.Token
	Arguments []Node
	Returns   []Node
}

func (ft *FunctionType) Kind() Kind            { return KindFunctionType }
func (ft *FunctionType) node()                 {}
func (ft *FunctionType) GetToken() token.Token { return ft.Token }
