package cpp

import (
	"fmt"

	"github.com/funvibe/peregrine/internal/ast"
	"github.com/funvibe/peregrine/internal/config"
	"github.com/funvibe/peregrine/internal/symbols"
)

// lowerVariable emits '[type ]name[ = value]'. Without a type the statement
// assigns to an existing binding.
func (e *Engine) lowerVariable(sc scope, n *ast.VariableStatement) error {
	if !ast.IsAbsent(n.Type) {
		if err := e.expr(sc, n.Type); err != nil {
			return err
		}
		e.emit(" ")
	}
	if err := e.required(sc, n.Name); err != nil {
		return err
	}
	if !ast.IsAbsent(n.Value) {
		e.emit(" = ")
		return e.expr(sc, n.Value)
	}
	return nil
}

// lowerConst emits 'const <type> name = value'; an untyped constant is
// declared with auto.
func (e *Engine) lowerConst(sc scope, n *ast.ConstDeclaration) error {
	if n.Name == nil {
		return fmt.Errorf("%w: constant name", ErrMissingChild)
	}
	e.emit("const ")
	if ast.IsAbsent(n.Type) {
		e.emit("auto")
	} else if err := e.expr(sc, n.Type); err != nil {
		return err
	}
	e.emit(" " + n.Name.Value + " = ")
	return e.required(sc, n.Value)
}

func (e *Engine) lowerTypeDefinition(sc scope, n *ast.TypeDefinition) error {
	if n.Name == nil {
		return fmt.Errorf("%w: type name", ErrMissingChild)
	}
	e.emit("typedef ")
	if err := e.required(sc, n.Base); err != nil {
		return err
	}
	e.emit(" " + n.Name.Value)
	return nil
}

// lowerEnum emits a flat C enumeration whose members are named
// <Enum>___<Member>. The enum is known from here on, so later accesses
// Enum.Member lower to the same flat names.
func (e *Engine) lowerEnum(sc scope, n *ast.EnumLiteral) error {
	if n.Name == nil {
		return fmt.Errorf("%w: enum name", ErrMissingChild)
	}
	name := n.Name.Value
	e.globals.Define(name, symbols.EnumSymbol, n)

	inner := sc
	inner.enum = name

	e.emit("typedef enum{\n")
	for i, f := range n.Fields {
		if f.Name == nil {
			return fmt.Errorf("%w: member %d of %s", ErrMissingChild, i, name)
		}
		if i > 0 {
			e.emit(",\n")
		}
		e.emit(config.Mangle(name, f.Name.Value))
		if !ast.IsAbsent(f.Value) {
			e.emit(" = ")
			if err := e.expr(inner, f.Value); err != nil {
				return err
			}
		}
	}
	e.emit("\n}" + name)
	return nil
}

func (e *Engine) lowerUnion(sc scope, n *ast.UnionLiteral) error {
	if n.Name == nil {
		return fmt.Errorf("%w: union name", ErrMissingChild)
	}

	e.emit("typedef union{\n")
	for i, f := range n.Fields {
		if ast.IsAbsent(f.Type) || f.Name == nil {
			return fmt.Errorf("%w: member %d of %s", ErrMissingChild, i, n.Name.Value)
		}
		if err := e.expr(sc, f.Type); err != nil {
			return err
		}
		e.emit(" " + f.Name.Value + ";\n")
	}
	e.emit("}" + n.Name.Value)
	return nil
}

// lowerFunctionType emits std::function<ret(args)>. Only the first return
// type is representable.
func (e *Engine) lowerFunctionType(sc scope, n *ast.FunctionType) error {
	e.emit("std::function<")
	if len(n.Returns) == 0 {
		e.emit("void")
	} else if err := e.required(sc, n.Returns[0]); err != nil {
		return err
	}
	e.emit("(")
	for i, arg := range n.Arguments {
		if i > 0 {
			e.emit(",")
		}
		if err := e.required(sc, arg); err != nil {
			return err
		}
	}
	e.emit(")>")
	return nil
}
