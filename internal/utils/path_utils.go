package utils

import (
	"path/filepath"
	"strings"

	"github.com/funvibe/peregrine/internal/config"
)

// documentExtensions are the serializations an AST document may use.
var documentExtensions = []string{".yaml", ".yml", ".json"}

// SplitModulePath splits a dotted import path into the directory it names
// relative to the search root and the module's own name.
// "net.http.client" -> ("net/http", "client").
func SplitModulePath(module string) (dir, name string) {
	parts := strings.Split(module, ".")
	name = parts[len(parts)-1]
	if len(parts) > 1 {
		dir = filepath.Join(parts[:len(parts)-1]...)
	}
	return dir, name
}

// ExtractModuleName derives a module name from a file path.
// It takes the base filename and removes a document extension and then any
// recognized source extension: "src/app.pe.yaml" -> "app".
func ExtractModuleName(path string) string {
	name := filepath.Base(path)
	for _, ext := range documentExtensions {
		if strings.HasSuffix(name, ext) {
			name = strings.TrimSuffix(name, ext)
			break
		}
	}
	return config.TrimSourceExt(name)
}

// OutputPath returns where the translation of input goes inside outDir.
func OutputPath(input, outDir string) string {
	return filepath.Join(outDir, ExtractModuleName(input)+config.OutputExt)
}
