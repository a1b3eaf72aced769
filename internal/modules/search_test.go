package modules

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/funvibe/peregrine/internal/ast"
	"github.com/funvibe/peregrine/internal/diagnostics"
	"github.com/funvibe/peregrine/internal/pipeline"
	"github.com/funvibe/peregrine/internal/token"
)

// layout creates files (relative paths) under a fresh temp directory.
func layout(t *testing.T, files ...string) string {
	t.Helper()
	root := t.TempDir()
	for _, f := range files {
		path := filepath.Join(root, f)
		assert.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		assert.NoError(t, os.WriteFile(path, []byte("# "+f+"\n"), 0o644))
	}
	return root
}

func TestSearch_FindsFileInRoot(t *testing.T) {
	root := layout(t, "math.pe", "other.pe")

	path, err := Search(root, "math")
	assert.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "math.pe"), path)
}

func TestSearch_ExactNameMatches(t *testing.T) {
	root := layout(t, "math")

	path, err := Search(root, "math")
	assert.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "math"), path)
}

func TestSearch_PrefersFilesOverSubdirectories(t *testing.T) {
	// "a/util.pe" sorts before "util.pe" but files in the directory win.
	root := layout(t, "a/util.pe", "util.pe")

	path, err := Search(root, "util")
	assert.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "util.pe"), path)
}

func TestSearch_Recurses(t *testing.T) {
	root := layout(t, "lib/deep/er/strings.pe", "lib/x.pe")

	path, err := Search(root, "strings")
	assert.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "lib", "deep", "er", "strings.pe"), path)
}

func TestSearch_FirstSubdirectoryInNameOrderWins(t *testing.T) {
	root := layout(t, "b/io.pe", "a/io.pe")

	path, err := Search(root, "io")
	assert.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "a", "io.pe"), path)
}

func TestSearch_SkipsHiddenDirectories(t *testing.T) {
	root := layout(t, ".cache/net.pe")

	_, err := Search(root, "net")
	assert.IsError(t, err, ErrModuleNotFound)
}

func TestSearch_NotFound(t *testing.T) {
	root := layout(t, "a/b.pe")

	_, err := Search(root, "missing")
	assert.IsError(t, err, ErrModuleNotFound)
}

func TestSearch_MissingRoot(t *testing.T) {
	_, err := Search(filepath.Join(t.TempDir(), "nope"), "x")
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrModuleNotFound))
}

func TestResolve_DottedPath(t *testing.T) {
	root := layout(t, "net/http.pe", "http.pe")

	path, err := Resolve(root, "net.http")
	assert.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "net", "http.pe"), path)

	// Without a matching directory the last component is searched everywhere.
	path, err = Resolve(root, "web.http")
	assert.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "http.pe"), path)
}

func TestResolveProcessor(t *testing.T) {
	root := layout(t, "math.pe")
	ctx := pipeline.NewPipelineContext("main.pe.yaml", root)
	ctx.AstRoot = &ast.Program{Statements: []ast.Node{
		&ast.ImportStatement{Token: token.Token{Line: 1}, Module: "math"},
		&ast.PassStatement{},
		&ast.ImportStatement{Token: token.Token{Line: 2}, Module: "graphics"},
	}}

	ctx = (&ResolveProcessor{}).Process(ctx)

	assert.Equal(t, []pipeline.ResolvedImport{
		{Module: "math", Path: filepath.Join(root, "math.pe"), Line: 1},
	}, ctx.Imports)
	assert.Equal(t, 1, len(ctx.Errors))
	assert.Equal(t, diagnostics.ErrM001, ctx.Errors[0].Code)
	assert.Equal(t, "main.pe.yaml", ctx.Errors[0].File)
	assert.IsError(t, ctx.Errors[0], ErrModuleNotFound)
}
