// Package manifest describes one generated translation unit: where it came
// from, where it went and which modules it imports.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/funvibe/peregrine/internal/config"
	"github.com/funvibe/peregrine/internal/pipeline"
	"github.com/funvibe/peregrine/internal/utils"
)

// Manifest is written next to a generated file as <output>.manifest.yaml.
type Manifest struct {
	// UnitID identifies the translation unit. It is derived from the
	// source and output paths, so rebuilding the same unit keeps its id.
	UnitID  string   `yaml:"unit_id"`
	Source  string   `yaml:"source"`
	Output  string   `yaml:"output"`
	Imports []Import `yaml:"imports,omitempty"`
}

// Import is one resolved import of the unit.
type Import struct {
	Module string `yaml:"module"`
	Path   string `yaml:"path"`
	Line   int    `yaml:"line,omitempty"`
}

// UnitID returns the stable id of the unit translating source into output.
func UnitID(source, output string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("peregrine:"+filepath.ToSlash(source)+"->"+filepath.ToSlash(output)))
}

// New builds the manifest for a finished pipeline run.
func New(ctx *pipeline.PipelineContext, output string) *Manifest {
	source := ctx.FilePath
	if ctx.AstRoot != nil && ctx.AstRoot.File != "" {
		source = ctx.AstRoot.File
	}
	m := &Manifest{
		UnitID: UnitID(source, output).String(),
		Source: source,
		Output: output,
	}
	for _, imp := range ctx.Imports {
		m.Imports = append(m.Imports, Import{Module: imp.Module, Path: imp.Path, Line: imp.Line})
	}
	return m
}

// Path returns where the manifest for output is written.
func Path(output string) string {
	return output + config.ManifestSuffix
}

// Write stores m next to its output file.
func (m *Manifest) Write() (string, error) {
	data, err := yaml.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("encoding manifest: %w", err)
	}
	path := Path(m.Output)
	if err := utils.WriteFileAtomic(path, data); err != nil {
		return "", err
	}
	return path, nil
}

// Load reads a manifest written by Write.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	return &m, nil
}
