package cpp

import (
	"errors"
	"fmt"

	"github.com/funvibe/peregrine/internal/diagnostics"
	"github.com/funvibe/peregrine/internal/pipeline"
	"github.com/funvibe/peregrine/internal/token"
)

// Processor is the pipeline stage that lowers ctx.AstRoot into ctx.Output.
type Processor struct{}

func (p *Processor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	// If previous steps failed, don't lower
	if ctx.AstRoot == nil || ctx.Failed() {
		return ctx
	}

	name := ctx.SourceName
	if name == "" {
		name = ctx.AstRoot.File
	}

	ctx.Output.Reset()
	if err := Lower(&ctx.Output, ctx.AstRoot, name); err != nil {
		// Partial output is never valid.
		ctx.Output.Reset()
		diag := diagnostics.Wrap(diagnostics.ErrC001, token.Token{}, err)
		var le *LowerError
		if errors.As(err, &le) {
			// The diagnostic carries the position itself.
			diag.Token = le.Token
			diag.Msg = fmt.Sprintf("lowering %s: %v", le.Kind, le.Err)
		}
		ctx.AddError(diag)
	}
	return ctx
}
