package cpp

import (
	"fmt"
	"strings"

	"github.com/funvibe/peregrine/internal/ast"
	"github.com/funvibe/peregrine/internal/config"
)

func (e *Engine) lowerIf(sc scope, n *ast.IfStatement) error {
	if n.Body == nil {
		return fmt.Errorf("%w: if body", ErrMissingChild)
	}
	if err := e.lowerGuarded(sc, "if (", n.Condition, n.Body); err != nil {
		return err
	}
	for _, elif := range n.Elifs {
		if elif.Body == nil {
			return fmt.Errorf("%w: elif body", ErrMissingChild)
		}
		if err := e.lowerGuarded(sc, "\nelse if (", elif.Condition, elif.Body); err != nil {
			return err
		}
	}
	if n.Else != nil {
		e.emit("\nelse {\n")
		if err := e.lowerBlock(sc, n.Else); err != nil {
			return err
		}
		e.emit("}")
	}
	return nil
}

// lowerGuarded emits '<open><cond>) {\n<body>}'.
func (e *Engine) lowerGuarded(sc scope, open string, cond ast.Node, body *ast.BlockStatement) error {
	e.emit(open)
	if err := e.required(sc, cond); err != nil {
		return err
	}
	e.emit(") {\n")
	if err := e.lowerBlock(sc, body); err != nil {
		return err
	}
	e.emit("}")
	return nil
}

func (e *Engine) lowerWhile(sc scope, n *ast.WhileStatement) error {
	if n.Body == nil {
		return fmt.Errorf("%w: while body", ErrMissingChild)
	}
	return e.lowerGuarded(sc, "while (", n.Condition, n.Body)
}

func (e *Engine) lowerScope(sc scope, n *ast.ScopeStatement) error {
	e.emit("{\n")
	if err := e.lowerBlock(sc, n.Body); err != nil {
		return err
	}
	e.emit("}")
	return nil
}

// lowerMatch lowers a match statement into a loop that runs exactly once:
//
//	while (true) {
//	if (s == 1) {
//	...
//	}
//	else if ((s == 2) || (s == 3)) {
//	...
//	}
//	else {
//	...
//	}
//	<default body>
//	break;
//	}
//
// A wildcard case in first position is emitted without a guard. The first
// wildcard case ends the chain; cases after it can never be selected and
// are not emitted. The default body, when present, follows the chain.
func (e *Engine) lowerMatch(sc scope, n *ast.MatchStatement) error {
	if ast.IsAbsent(n.Subject) {
		return fmt.Errorf("%w: match subject", ErrMissingChild)
	}
	e.emit("while (true) {\n")

	for i, c := range n.Cases {
		if c.Body == nil {
			return fmt.Errorf("%w: body of case %d", ErrMissingChild, i)
		}
		if c.IsWildcard() {
			if i > 0 {
				e.emit("else {\n")
			}
			if err := e.lowerBlock(sc, c.Body); err != nil {
				return err
			}
			if i > 0 {
				e.emit("}\n")
			}
			break
		}

		if i == 0 {
			e.emit("if (")
		} else {
			e.emit("else if (")
		}
		if err := e.lowerPatterns(sc, n.Subject, c.Patterns); err != nil {
			return err
		}
		e.emit(") {\n")
		if err := e.lowerBlock(sc, c.Body); err != nil {
			return err
		}
		e.emit("}\n")
	}

	if n.Default != nil {
		if err := e.lowerBlock(sc, n.Default); err != nil {
			return err
		}
	}
	e.emit("break;\n}")
	return nil
}

// lowerPatterns emits the disjunction 'subject == p' over all patterns of a
// case. Each comparison is parenthesized when there is more than one.
func (e *Engine) lowerPatterns(sc scope, subject ast.Node, patterns []ast.Node) error {
	if len(patterns) == 0 {
		return fmt.Errorf("%w: case patterns", ErrMissingChild)
	}
	multi := len(patterns) > 1
	for i, p := range patterns {
		if i > 0 {
			e.emit(" || ")
		}
		if multi {
			e.emit("(")
		}
		if err := e.expr(sc, subject); err != nil {
			return err
		}
		e.emit(" == ")
		if err := e.required(sc, p); err != nil {
			return err
		}
		if multi {
			e.emit(")")
		}
	}
	return nil
}

// cStringEscaper makes text safe inside a C string literal used as a printf
// format.
var cStringEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\t", `\t`,
	"%", "%%",
)

// lowerAssert emits a check that prints the failing statement and throws
// error___AssertionError:
//
//	AssertionError : in line <N> in file <path>
//	   <statement>
func (e *Engine) lowerAssert(sc scope, n *ast.AssertStatement) error {
	e.emit("if(! ")
	if err := e.required(sc, n.Condition); err != nil {
		return err
	}
	e.emit("){\n")

	header := fmt.Sprintf("%s : in line %d in file %s", config.AssertionErrorName, n.Token.Line, e.fileName)
	e.emit(`printf("` + cStringEscaper.Replace(header) + `\n   ` +
		cStringEscaper.Replace(n.Token.Statement) + `\n");fflush(stdout);throw ` +
		config.Mangle(config.ErrorEnumName, config.AssertionErrorName) + ";")
	e.emit("\n}")
	return nil
}
