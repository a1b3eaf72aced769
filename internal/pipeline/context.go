package pipeline

import (
	"bytes"

	"github.com/funvibe/peregrine/internal/ast"
	"github.com/funvibe/peregrine/internal/diagnostics"
)

// ResolvedImport records where an import statement was found on disk.
type ResolvedImport struct {
	Module string // Module path as written in the import
	Path   string // File the module resolved to
	Line   int
}

// PipelineContext carries one translation unit through the stages.
type PipelineContext struct {
	// FilePath is the AST document (or source file) being compiled.
	FilePath string
	// SourceName is the name quoted in generated diagnostics; defaults to
	// the program's own file name.
	SourceName string
	// SearchRoot is the directory imports are resolved in.
	SearchRoot string

	AstRoot *ast.Program
	Imports []ResolvedImport
	Output  bytes.Buffer

	Errors []*diagnostics.DiagnosticError
}

func NewPipelineContext(filePath, searchRoot string) *PipelineContext {
	return &PipelineContext{FilePath: filePath, SearchRoot: searchRoot}
}

// AddError records a diagnostic, filling in the file when it is missing.
func (ctx *PipelineContext) AddError(err *diagnostics.DiagnosticError) {
	if err.File == "" {
		err.File = ctx.FilePath
	}
	ctx.Errors = append(ctx.Errors, err)
}

// Failed reports whether any stage recorded an error.
func (ctx *PipelineContext) Failed() bool {
	return len(ctx.Errors) > 0
}
