package modules

import (
	"github.com/funvibe/peregrine/internal/ast"
	"github.com/funvibe/peregrine/internal/diagnostics"
	"github.com/funvibe/peregrine/internal/pipeline"
)

// ResolveProcessor is the pipeline stage that locates every top-level
// import of the program under ctx.SearchRoot.
type ResolveProcessor struct{}

func (p *ResolveProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.AstRoot == nil {
		return ctx
	}

	for _, stmt := range ctx.AstRoot.Statements {
		imp, ok := stmt.(*ast.ImportStatement)
		if !ok {
			continue
		}
		path, err := Resolve(ctx.SearchRoot, imp.Module)
		if err != nil {
			ctx.AddError(diagnostics.Wrap(diagnostics.ErrM001, imp.Token, err))
			continue
		}
		ctx.Imports = append(ctx.Imports, pipeline.ResolvedImport{
			Module: imp.Module,
			Path:   path,
			Line:   imp.Token.Line,
		})
	}
	return ctx
}
