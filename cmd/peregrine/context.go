package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/funvibe/peregrine/internal/config"
)

var (
	infoColor    = color.New(color.FgBlue)
	successColor = color.New(color.FgGreen)
	warnColor    = color.New(color.FgYellow)
	failColor    = color.New(color.FgRed)
)

// Context represents the global context for commands
type Context struct {
	Config  string
	Verbose bool
	Quiet   bool

	// Stdout receives command results, Stderr status messages.
	Stdout io.Writer
	Stderr io.Writer
}

func newContext(cli CLI) *Context {
	return &Context{
		Config:  cli.Config,
		Verbose: cli.Verbose,
		Quiet:   cli.Quiet,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	}
}

// configureColor applies the --color mode. In auto mode colors are used
// only when out is a terminal.
func configureColor(mode string, out *os.File) {
	switch mode {
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	default:
		fd := out.Fd()
		color.NoColor = !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd)
	}
}

// loadConfig returns the configuration named by --config, or the one
// governing dir.
func (ctx *Context) loadConfig(dir string) (*config.Config, error) {
	if ctx.Config == "" {
		cfg, err := config.Resolve(dir)
		if err != nil {
			return nil, fmt.Errorf("failed to load configuration: %w", err)
		}
		return cfg, nil
	}

	cfg, err := config.LoadConfig(ctx.Config)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if ctx.Verbose {
		ctx.infof("Using configuration file: %s", filepath.Clean(ctx.Config))
	}
	return cfg, nil
}

func (ctx *Context) infof(format string, args ...any) {
	if ctx.Verbose && !ctx.Quiet {
		infoColor.Fprintf(ctx.Stderr, format+"\n", args...)
	}
}

func (ctx *Context) successf(format string, args ...any) {
	if !ctx.Quiet {
		successColor.Fprintf(ctx.Stderr, format+"\n", args...)
	}
}

func (ctx *Context) warnf(format string, args ...any) {
	if !ctx.Quiet {
		warnColor.Fprintf(ctx.Stderr, format+"\n", args...)
	}
}

// failf is never silenced.
func (ctx *Context) failf(format string, args ...any) {
	failColor.Fprintf(ctx.Stderr, format+"\n", args...)
}
