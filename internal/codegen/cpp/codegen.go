// Package cpp lowers a Peregrine AST to C++ source text.
//
// Lowering is a single depth-first pass that streams text to the output as
// it walks the tree. The only buffering happens for decorated functions,
// whose closure is rendered into a capture region so the decorators can be
// wrapped around it before the binding is emitted.
package cpp

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/funvibe/peregrine/internal/ast"
	"github.com/funvibe/peregrine/internal/config"
	"github.com/funvibe/peregrine/internal/symbols"
	"github.com/funvibe/peregrine/internal/token"
)

var (
	// ErrUnsupported is returned for node kinds the backend has no lowering for.
	ErrUnsupported = errors.New("construct is not supported by the C++ backend")
	// ErrMalformedDecorator is returned when a decorator does not wrap a function.
	ErrMalformedDecorator = errors.New("decorator target must be a function definition")
	// ErrMissingChild is returned when a required child node is absent.
	ErrMissingChild = errors.New("required child node is missing")
	// ErrUnexpectedNode is returned for a node kind that cannot appear where it was found.
	ErrUnexpectedNode = errors.New("unexpected node")
)

// LowerError reports the node a lowering failure happened at.
type LowerError struct {
	Kind  ast.Kind
	Token token.Token
	Err   error
}

func (e *LowerError) Error() string {
	if e.Token.Line > 0 {
		return fmt.Sprintf("line %d: lowering %s: %v", e.Token.Line, e.Kind, e.Err)
	}
	return fmt.Sprintf("lowering %s: %v", e.Kind, e.Err)
}

func (e *LowerError) Unwrap() error { return e.Err }

// Engine holds the state of one lowering pass.
type Engine struct {
	sink     *Sink
	fileName string
	// globals holds the enum names declared so far. Other declarations are
	// not recorded, so a later function or type never shadows an enum.
	globals *symbols.SymbolTable
}

// scope is the contextual state threaded through the traversal by value,
// so every change is undone when the lowering call that made it returns.
type scope struct {
	// funcDepth counts the function bodies enclosing the node; 0 is top level.
	funcDepth int
	// enum is the innermost enum whose member initializer is being lowered,
	// or "" outside of one. Bare identifiers are qualified with it.
	enum string
}

// term says how a lowered statement ended.
type term int

const (
	// needsSemicolon: the statement must be followed by a terminator.
	needsSemicolon term = iota
	// selfTerminated: the construct closed itself, e.g. with a brace.
	selfTerminated
	// emitsNothing: no text was produced for the statement.
	emitsNothing
)

// Lower writes the C++ translation of prog to w. fileName is quoted in
// assertion failure messages.
//
// On error the text already written to w is incomplete and must be
// discarded by the caller.
func Lower(w io.Writer, prog *ast.Program, fileName string) error {
	if prog == nil {
		return &LowerError{Kind: ast.KindProgram, Err: ErrMissingChild}
	}
	bw := bufio.NewWriter(w)
	e := newEngine(bw, fileName)
	if err := e.lowerProgram(prog); err != nil {
		return err
	}
	if err := e.sink.Err(); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

func newEngine(w io.Writer, fileName string) *Engine {
	e := &Engine{
		sink:     NewSink(w),
		fileName: fileName,
		globals:  symbols.NewEmptySymbolTable(),
	}
	// The preamble declares the runtime error enum.
	e.globals.Define(config.ErrorEnumName, symbols.EnumSymbol, nil)
	return e
}

func (e *Engine) emit(text string) {
	e.sink.Emit(text)
}

func (e *Engine) lowerProgram(prog *ast.Program) error {
	e.emit(config.Preamble)
	return e.lowerStatements(scope{}, prog.Statements)
}

// lowerStatements lowers a statement list, terminating every statement that
// did not terminate itself.
func (e *Engine) lowerStatements(sc scope, stmts []ast.Node) error {
	for _, stmt := range stmts {
		t, err := e.lower(sc, stmt)
		if err != nil {
			return err
		}
		switch t {
		case needsSemicolon:
			e.emit(";\n")
		case selfTerminated:
			e.emit("\n")
		}
	}
	return nil
}

func (e *Engine) lowerBlock(sc scope, block *ast.BlockStatement) error {
	if block == nil {
		return nil
	}
	return e.lowerStatements(sc, block.Statements)
}

// expr lowers a node in expression position.
func (e *Engine) expr(sc scope, n ast.Node) error {
	_, err := e.lower(sc, n)
	return err
}

// lower dispatches on the node kind. Every ast.Kind has a case here.
func (e *Engine) lower(sc scope, n ast.Node) (term, error) {
	if n == nil {
		return 0, fmt.Errorf("%w: nil node", ErrUnexpectedNode)
	}

	var err error
	t := needsSemicolon

	switch n := n.(type) {
	// Statements
	case *ast.BlockStatement:
		t, err = emitsNothing, e.lowerBlock(sc, n)
	case *ast.ImportStatement:
		t = emitsNothing
	case *ast.FunctionDefinition:
		t, err = e.lowerFunction(sc, n)
	case *ast.DecoratorStatement:
		t, err = selfTerminated, e.lowerDecorator(sc, n)
	case *ast.VariableStatement:
		err = e.lowerVariable(sc, n)
	case *ast.ConstDeclaration:
		err = e.lowerConst(sc, n)
	case *ast.TypeDefinition:
		err = e.lowerTypeDefinition(sc, n)
	case *ast.PassStatement:
		// A comment keeps the statement from needing a terminator.
		t = selfTerminated
		e.emit("//pass")
	case *ast.IfStatement:
		t, err = selfTerminated, e.lowerIf(sc, n)
	case *ast.WhileStatement:
		t, err = selfTerminated, e.lowerWhile(sc, n)
	case *ast.ForStatement:
		err = ErrUnsupported
	case *ast.MatchStatement:
		t, err = selfTerminated, e.lowerMatch(sc, n)
	case *ast.ScopeStatement:
		t, err = selfTerminated, e.lowerScope(sc, n)
	case *ast.CppStatement:
		t = selfTerminated
		e.emit(n.Value)
	case *ast.ReturnStatement:
		e.emit("return")
		if !ast.IsAbsent(n.Value) {
			e.emit(" ")
			err = e.expr(sc, n.Value)
		}
	case *ast.ContinueStatement:
		e.emit("continue")
	case *ast.BreakStatement:
		e.emit("break")
	case *ast.AssertStatement:
		t, err = selfTerminated, e.lowerAssert(sc, n)
	case *ast.StaticStatement:
		t, err = e.lowerQualified(sc, "static ", n.Body)
	case *ast.InlineStatement:
		t, err = e.lowerQualified(sc, "inline ", n.Body)
	case *ast.RaiseStatement:
		e.emit("throw ")
		err = e.required(sc, n.Value)
	case *ast.UnionLiteral:
		err = e.lowerUnion(sc, n)
	case *ast.EnumLiteral:
		err = e.lowerEnum(sc, n)

	// Expressions
	case *ast.BinaryExpression:
		err = e.lowerBinary(sc, n)
	case *ast.PrefixExpression:
		err = e.lowerPrefix(sc, n)
	case *ast.CallExpression:
		err = e.lowerCall(sc, n)
	case *ast.DotExpression:
		err = e.lowerDot(sc, n)
	case *ast.IndexExpression:
		err = e.lowerIndex(sc, n)
	case *ast.Identifier:
		e.lowerIdentifier(sc, n)
	case *ast.IntegerLiteral:
		e.emit(n.Value)
	case *ast.DecimalLiteral:
		e.emit(n.Value)
	case *ast.StringLiteral:
		e.emit(`"` + n.Value + `"`)
	case *ast.BoolLiteral:
		if n.Value == "True" {
			e.emit("true")
		} else {
			e.emit("false")
		}
	case *ast.NoneLiteral:
		e.emit("NULL")
	case *ast.NoLiteral:
		t = emitsNothing
	case *ast.ListLiteral, *ast.DictLiteral:
		err = ErrUnsupported

	// Types
	case *ast.TypeExpression:
		e.emit(n.Value)
	case *ast.FunctionType:
		err = e.lowerFunctionType(sc, n)
	case *ast.ListType, *ast.DictType:
		err = ErrUnsupported

	case *ast.Program:
		err = fmt.Errorf("%w: nested program", ErrUnexpectedNode)
	default:
		err = fmt.Errorf("%w: no lowering rule for %T", ErrUnexpectedNode, n)
	}

	if err != nil {
		var le *LowerError
		if errors.As(err, &le) {
			return 0, err
		}
		return 0, &LowerError{Kind: n.Kind(), Token: n.GetToken(), Err: err}
	}
	return t, nil
}

// required lowers a child that must be present.
func (e *Engine) required(sc scope, n ast.Node) error {
	if ast.IsAbsent(n) {
		return ErrMissingChild
	}
	return e.expr(sc, n)
}

// lowerQualified prefixes a declaration with a storage or inline specifier.
func (e *Engine) lowerQualified(sc scope, qualifier string, body ast.Node) (term, error) {
	if ast.IsAbsent(body) {
		return 0, ErrMissingChild
	}
	e.emit(qualifier)
	return e.lower(sc, body)
}
