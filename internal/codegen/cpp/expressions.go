package cpp

import (
	"github.com/funvibe/peregrine/internal/ast"
	"github.com/funvibe/peregrine/internal/config"
	"github.com/funvibe/peregrine/internal/symbols"
)

// lowerBinary emits '(left op right)'. Power and floor division have no C++
// operator and become calls to runtime helpers.
func (e *Engine) lowerBinary(sc scope, n *ast.BinaryExpression) error {
	open, sep, end := "(", " "+n.Operator+" ", ")"
	switch n.Operator {
	case "**":
		open, sep = config.PowerHelper+"(", ","
	case "//":
		open, sep = config.FloorHelper+"(", "/"
	}

	e.emit(open)
	if err := e.required(sc, n.Left); err != nil {
		return err
	}
	e.emit(sep)
	if err := e.required(sc, n.Right); err != nil {
		return err
	}
	e.emit(end)
	return nil
}

func (e *Engine) lowerPrefix(sc scope, n *ast.PrefixExpression) error {
	e.emit("(" + n.Operator + " ")
	if err := e.required(sc, n.Right); err != nil {
		return err
	}
	e.emit(")")
	return nil
}

func (e *Engine) lowerCall(sc scope, n *ast.CallExpression) error {
	if err := e.required(sc, n.Function); err != nil {
		return err
	}
	return e.lowerArgs(sc, n.Arguments)
}

func (e *Engine) lowerArgs(sc scope, args []ast.Node) error {
	e.emit("(")
	for i, arg := range args {
		if i > 0 {
			e.emit(", ")
		}
		if err := e.required(sc, arg); err != nil {
			return err
		}
	}
	e.emit(")")
	return nil
}

func (e *Engine) lowerIndex(sc scope, n *ast.IndexExpression) error {
	if err := e.required(sc, n.Container); err != nil {
		return err
	}
	e.emit("[")
	if err := e.required(sc, n.Key); err != nil {
		return err
	}
	e.emit("]")
	return nil
}

// lowerIdentifier qualifies bare names inside an enum member initializer
// with the enclosing enum, so members can refer to earlier members.
func (e *Engine) lowerIdentifier(sc scope, n *ast.Identifier) {
	if sc.enum != "" {
		e.emit(config.Mangle(sc.enum, n.Value))
		return
	}
	e.emit(n.Value)
}

// lowerDot lowers member access. 'E.M' where E names a known enum becomes
// the flat identifier E___M; everything else stays a dotted access. Only the
// outermost access of a chain is checked against the enum names.
func (e *Engine) lowerDot(sc scope, n *ast.DotExpression) error {
	if ast.IsAbsent(n.Owner) || ast.IsAbsent(n.Referenced) {
		return ErrMissingChild
	}
	if owner, ok := n.Owner.(*ast.Identifier); ok && e.isEnum(owner.Value) {
		e.emit(owner.Value + config.MangleSeparator)
		return e.lowerMember(sc, n.Referenced)
	}
	if err := e.lowerLink(sc, n.Owner); err != nil {
		return err
	}
	e.emit(".")
	return e.lowerMember(sc, n.Referenced)
}

// lowerLink lowers one side of a member access. Nested member accesses are
// emitted as plain dotted chains.
func (e *Engine) lowerLink(sc scope, n ast.Node) error {
	d, ok := n.(*ast.DotExpression)
	if !ok {
		return e.expr(sc, n)
	}
	if ast.IsAbsent(d.Owner) || ast.IsAbsent(d.Referenced) {
		return ErrMissingChild
	}
	if err := e.lowerLink(sc, d.Owner); err != nil {
		return err
	}
	e.emit(".")
	return e.lowerMember(sc, d.Referenced)
}

// lowerMember lowers the right side of a member access. The member name
// itself is never enum-qualified, but call arguments and index keys are
// ordinary expressions and follow the enclosing scope.
func (e *Engine) lowerMember(sc scope, n ast.Node) error {
	switch m := n.(type) {
	case *ast.Identifier:
		e.emit(m.Value)
		return nil
	case *ast.CallExpression:
		if ast.IsAbsent(m.Function) {
			return ErrMissingChild
		}
		if err := e.lowerMember(sc, m.Function); err != nil {
			return err
		}
		return e.lowerArgs(sc, m.Arguments)
	case *ast.IndexExpression:
		if ast.IsAbsent(m.Container) {
			return ErrMissingChild
		}
		if err := e.lowerMember(sc, m.Container); err != nil {
			return err
		}
		e.emit("[")
		if err := e.required(sc, m.Key); err != nil {
			return err
		}
		e.emit("]")
		return nil
	}
	return e.lowerLink(sc, n)
}

func (e *Engine) isEnum(name string) bool {
	return e.globals.IsKind(name, symbols.EnumSymbol)
}
