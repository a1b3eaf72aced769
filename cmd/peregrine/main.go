// Command peregrine lowers Peregrine AST documents to C++ source files.
package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
)

// Version is set at build time using: -ldflags "-X main.Version=v1.2.3"
var Version = "v0.1.0"

// CLI represents the command-line interface
type CLI struct {
	Config  string `help:"Configuration file path (default: nearest peregrine.yaml)" type:"path"`
	Verbose bool   `help:"Enable verbose output" short:"v"`
	Quiet   bool   `help:"Suppress output" short:"q"`
	Color   string `help:"Colorize output" enum:"auto,always,never" default:"auto"`

	Emit    EmitCmd    `cmd:"" help:"Generate C++ from an AST document"`
	Find    FindCmd    `cmd:"" help:"Locate a module under the search root"`
	Fmt     FmtCmd     `cmd:"" help:"Print an AST document as Peregrine source"`
	Version VersionCmd `cmd:"" help:"Show version information"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("peregrine"),
		kong.Description("Peregrine to C++ code generator"),
		kong.UsageOnError(),
	)

	appCtx := newContext(cli)
	configureColor(cli.Color, os.Stderr)

	if err := ctx.Run(appCtx); err != nil {
		appCtx.failf("Error: %v", err)
		os.Exit(1)
	}
}

// VersionCmd represents the version command
type VersionCmd struct{}

// Run executes the version command
func (cmd *VersionCmd) Run(ctx *Context) error {
	fmt.Fprintf(ctx.Stdout, "peregrine %s\n", Version)
	return nil
}
