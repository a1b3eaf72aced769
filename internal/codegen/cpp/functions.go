package cpp

import (
	"fmt"

	"github.com/funvibe/peregrine/internal/ast"
	"github.com/funvibe/peregrine/internal/config"
)

// Lambda capture lists. A lambda at namespace scope may not have a capture
// default, so top-level closures capture nothing.
const (
	captureNone  = "[]"
	captureValue = "[=]"
)

// lowerFunction lowers a function definition. At top level it becomes a
// named function; inside another function it becomes a mutable closure
// bound to the function's name in the enclosing scope.
func (e *Engine) lowerFunction(sc scope, fn *ast.FunctionDefinition) (term, error) {
	if err := checkFunction(fn); err != nil {
		return 0, err
	}
	name := fn.Name.Value

	if sc.funcDepth > 0 {
		e.emit("auto " + name + " = ")
		return needsSemicolon, e.lowerClosure(sc, fn, captureValue)
	}

	body := sc
	body.funcDepth++

	if name == config.EntryPointFunctionName {
		// main always reports success once its body has run.
		e.emit("int main (")
		if err := e.lowerParams(sc, fn.Parameters); err != nil {
			return 0, err
		}
		e.emit(") {\n")
		if err := e.lowerBlock(body, fn.Body); err != nil {
			return 0, err
		}
		e.emit("return 0;\n}")
		return selfTerminated, nil
	}

	if err := e.lowerReturnType(sc, fn.ReturnType); err != nil {
		return 0, err
	}
	e.emit(" " + name + "(")
	if err := e.lowerParams(sc, fn.Parameters); err != nil {
		return 0, err
	}
	e.emit(") {\n")
	if err := e.lowerBlock(body, fn.Body); err != nil {
		return 0, err
	}
	e.emit("\n}")
	return selfTerminated, nil
}

// lowerClosure emits fn as an anonymous lambda with the given capture list.
// The body is lowered one function level deeper than sc.
func (e *Engine) lowerClosure(sc scope, fn *ast.FunctionDefinition, capture string) error {
	e.emit(capture + "(")
	if err := e.lowerParams(sc, fn.Parameters); err != nil {
		return err
	}
	e.emit(")mutable->")
	if err := e.lowerReturnType(sc, fn.ReturnType); err != nil {
		return err
	}
	e.emit(" {\n")

	body := sc
	body.funcDepth++
	if err := e.lowerBlock(body, fn.Body); err != nil {
		return err
	}
	e.emit("\n}")
	return nil
}

// lowerParams emits '<type> <name>' pairs separated by commas.
func (e *Engine) lowerParams(sc scope, params []ast.Parameter) error {
	for i, p := range params {
		if ast.IsAbsent(p.Type) || p.Name == nil {
			return fmt.Errorf("%w: parameter %d", ErrMissingChild, i)
		}
		if i > 0 {
			e.emit(", ")
		}
		if err := e.expr(sc, p.Type); err != nil {
			return err
		}
		e.emit(" " + p.Name.Value)
	}
	return nil
}

func (e *Engine) lowerReturnType(sc scope, ret ast.Node) error {
	if ast.IsAbsent(ret) {
		e.emit("void")
		return nil
	}
	return e.expr(sc, ret)
}

func checkFunction(fn *ast.FunctionDefinition) error {
	if fn == nil || fn.Name == nil {
		return fmt.Errorf("%w: function name", ErrMissingChild)
	}
	if fn.Body == nil {
		return fmt.Errorf("%w: body of %s", ErrMissingChild, fn.Name.Value)
	}
	return nil
}

// lowerDecorator binds a decorated function:
//
//	[static ]auto name = d0(d1(...(closure)));
//
// Decorators are listed outermost first, so the last one listed is applied
// to the closure first. The closure and each decorator expression are
// rendered in capture regions; the finished statement goes to whatever
// region (or the output) was active before, after any text already there.
func (e *Engine) lowerDecorator(sc scope, n *ast.DecoratorStatement) error {
	fn, static, err := decoratedFunction(n.Body)
	if err != nil {
		return err
	}

	capture := captureValue
	if sc.funcDepth == 0 {
		capture = captureNone
	}

	wrapped, err := e.sink.Capture(func() error {
		return e.lowerClosure(sc, fn, capture)
	})
	if err != nil {
		return err
	}

	for i := len(n.Decorators) - 1; i >= 0; i-- {
		wrapped, err = e.wrap(sc, n.Decorators[i], wrapped)
		if err != nil {
			return err
		}
	}

	if static {
		e.emit("static ")
	}
	e.emit("auto " + fn.Name.Value + " = " + wrapped + ";")
	return nil
}

// wrap applies a decorator expression to an already lowered expression.
func (e *Engine) wrap(sc scope, decorator ast.Node, inner string) (string, error) {
	if ast.IsAbsent(decorator) {
		return "", fmt.Errorf("%w: empty decorator", ErrMalformedDecorator)
	}
	callee, err := e.sink.Capture(func() error {
		return e.expr(sc, decorator)
	})
	if err != nil {
		return "", err
	}
	return callee + "(" + inner + ")", nil
}

// decoratedFunction unpacks the function a decorator applies to, which may
// be wrapped in a static modifier.
func decoratedFunction(body ast.Node) (*ast.FunctionDefinition, bool, error) {
	static := false
	if s, ok := body.(*ast.StaticStatement); ok {
		static = true
		body = s.Body
	}
	fn, ok := body.(*ast.FunctionDefinition)
	if !ok {
		kind := "nothing"
		if body != nil {
			kind = body.Kind().String()
		}
		return nil, false, fmt.Errorf("%w, got %s", ErrMalformedDecorator, kind)
	}
	if err := checkFunction(fn); err != nil {
		return nil, false, err
	}
	return fn, static, nil
}
