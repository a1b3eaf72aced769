package diagnostics

import (
	"fmt"

	"github.com/funvibe/peregrine/internal/token"
)

// ErrorCode classifies a diagnostic by the stage that produced it.
type ErrorCode string

const (
	ErrL001 ErrorCode = "L001" // AST document could not be loaded
	ErrM001 ErrorCode = "M001" // imported module not found
	ErrC001 ErrorCode = "C001" // lowering failed
	ErrW001 ErrorCode = "W001" // output could not be written
)

// DiagnosticError is a compile-time error tied to a source position.
type DiagnosticError struct {
	Code  ErrorCode
	Token token.Token
	File  string
	Msg   string
	Cause error
}

func NewError(code ErrorCode, tok token.Token, msg string) *DiagnosticError {
	return &DiagnosticError{Code: code, Token: tok, Msg: msg}
}

// Wrap builds a diagnostic from err, keeping it for errors.Is/As.
func Wrap(code ErrorCode, tok token.Token, err error) *DiagnosticError {
	return &DiagnosticError{Code: code, Token: tok, Msg: err.Error(), Cause: err}
}

func (e *DiagnosticError) Error() string {
	loc := e.File
	if e.Token.Line > 0 {
		if loc != "" {
			loc += ":"
		}
		loc += e.Token.Pos()
	}
	if loc == "" {
		return fmt.Sprintf("[%s] %s", e.Code, e.Msg)
	}
	return fmt.Sprintf("%s: [%s] %s", loc, e.Code, e.Msg)
}

func (e *DiagnosticError) Unwrap() error { return e.Cause }
