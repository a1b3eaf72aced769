package modules

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/funvibe/peregrine/internal/config"
	"github.com/funvibe/peregrine/internal/utils"
)

var ErrModuleNotFound = errors.New("module not found")

// Search looks for the module file called name below root.
//
// A directory's regular files are checked before any of its subdirectories
// are entered, subdirectories are visited in name order, and the first match
// wins. A file matches when its name is name itself or name with the source
// extension. Hidden directories are skipped.
func Search(root, name string) (string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", root, err)
	}

	for _, entry := range entries {
		if entry.Type().IsRegular() && matchesModule(entry.Name(), name) {
			return filepath.Join(root, entry.Name()), nil
		}
	}

	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		path, err := Search(filepath.Join(root, entry.Name()), name)
		if err == nil {
			return path, nil
		}
		if !errors.Is(err, ErrModuleNotFound) {
			return "", err
		}
	}

	return "", fmt.Errorf("%w: %s in %s", ErrModuleNotFound, name, root)
}

// Resolve finds the file for a dotted import path. Leading components
// select a directory under root; when that directory does not exist the
// whole root is searched for the last component.
func Resolve(root, module string) (string, error) {
	dir, name := utils.SplitModulePath(module)
	if dir != "" {
		scoped := filepath.Join(root, dir)
		if info, err := os.Stat(scoped); err == nil && info.IsDir() {
			return Search(scoped, name)
		}
	}
	return Search(root, name)
}

func matchesModule(fileName, name string) bool {
	return fileName == name || fileName == name+config.SourceFileExt
}
