package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/funvibe/peregrine/internal/astyaml"
	"github.com/funvibe/peregrine/internal/codegen/cpp"
	"github.com/funvibe/peregrine/internal/diagnostics"
	"github.com/funvibe/peregrine/internal/manifest"
	"github.com/funvibe/peregrine/internal/modules"
	"github.com/funvibe/peregrine/internal/pipeline"
	"github.com/funvibe/peregrine/internal/prettyprinter"
	"github.com/funvibe/peregrine/internal/token"
	"github.com/funvibe/peregrine/internal/utils"
)

// Sentinel errors
var (
	ErrCompilationFailed = errors.New("compilation failed")
)

// stdoutPath selects standard output as the emit destination.
const stdoutPath = "-"

// EmitCmd represents the emit command
type EmitCmd struct {
	Input      string `arg:"" help:"AST document (.yaml or .json)" type:"existingfile"`
	Output     string `short:"o" help:"Output file, '-' for standard output (default: <output_dir>/<name>.cpp)"`
	SourceName string `help:"File name quoted in assertion failure messages (default: the document's file)"`
	SearchRoot string `help:"Directory imports are resolved in (overrides configuration)" type:"path"`
	Manifest   bool   `help:"Also write <output>.manifest.yaml"`
}

// Run executes the emit command
func (cmd *EmitCmd) Run(ctx *Context) error {
	input, err := filepath.Abs(cmd.Input)
	if err != nil {
		return fmt.Errorf("failed to resolve input path: %w", err)
	}

	cfg, err := ctx.loadConfig(filepath.Dir(input))
	if err != nil {
		return err
	}

	searchRoot := cfg.SearchRoot
	if cmd.SearchRoot != "" {
		searchRoot = cmd.SearchRoot
	}

	pctx := pipeline.NewPipelineContext(input, searchRoot)
	pctx.SourceName = cmd.SourceName

	ctx.infof("Generating C++ from %s", input)
	ctx.infof("Search root: %s", searchRoot)

	result := pipeline.New(
		&astyaml.LoadProcessor{},
		&modules.ResolveProcessor{},
		&cpp.Processor{},
	).Run(pctx)

	if result.Failed() {
		for _, diag := range result.Errors {
			ctx.failf("%v", diag)
		}
		return fmt.Errorf("%w: %d error(s)", ErrCompilationFailed, len(result.Errors))
	}

	for _, imp := range result.Imports {
		ctx.infof("Import %s: %s", imp.Module, imp.Path)
	}

	if cmd.Output == stdoutPath {
		if cmd.Manifest {
			ctx.warnf("No manifest is written for standard output")
		}
		_, err := ctx.Stdout.Write(result.Output.Bytes())
		return err
	}

	output := cmd.Output
	if output == "" {
		output = utils.OutputPath(input, cfg.OutputDir)
	}
	if err := utils.WriteFileAtomic(output, result.Output.Bytes()); err != nil {
		diag := diagnostics.Wrap(diagnostics.ErrW001, token.Token{}, err)
		diag.File = output
		return diag
	}
	ctx.successf("Generated: %s", output)

	if cmd.Manifest || cfg.Manifest {
		path, err := manifest.New(result, output).Write()
		if err != nil {
			return err
		}
		ctx.infof("Manifest: %s", path)
	}
	return nil
}

// FindCmd represents the find command
type FindCmd struct {
	Module string `arg:"" help:"Module path, e.g. net.http"`
	Root   string `help:"Search root (default: from configuration)" type:"path"`
}

// Run executes the find command
func (cmd *FindCmd) Run(ctx *Context) error {
	root := cmd.Root
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get current directory: %w", err)
		}
		cfg, err := ctx.loadConfig(wd)
		if err != nil {
			return err
		}
		root = cfg.SearchRoot
	}

	ctx.infof("Searching %s", root)
	path, err := modules.Resolve(root, cmd.Module)
	if err != nil {
		return err
	}
	fmt.Fprintln(ctx.Stdout, path)
	return nil
}

// FmtCmd represents the fmt command
type FmtCmd struct {
	Input string `arg:"" help:"AST document (.yaml or .json)" type:"existingfile"`
}

// Run executes the fmt command
func (cmd *FmtCmd) Run(ctx *Context) error {
	prog, err := astyaml.LoadFile(cmd.Input)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(ctx.Stdout, prettyprinter.Print(prog))
	return err
}
