package astyaml

import (
	"github.com/funvibe/peregrine/internal/diagnostics"
	"github.com/funvibe/peregrine/internal/pipeline"
	"github.com/funvibe/peregrine/internal/token"
)

// LoadProcessor is the pipeline stage that reads ctx.FilePath into
// ctx.AstRoot.
type LoadProcessor struct{}

func (p *LoadProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.AstRoot != nil {
		return ctx
	}
	prog, err := LoadFile(ctx.FilePath)
	if err != nil {
		ctx.AddError(diagnostics.Wrap(diagnostics.ErrL001, token.Token{}, err))
		return ctx
	}
	ctx.AstRoot = prog
	return ctx
}
