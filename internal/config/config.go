// Package config holds compiler-wide constants and the peregrine.yaml
// project configuration.
//
// A project file is optional. When present it is found by walking up from
// the input file's directory:
//
//	search_root: lib        # where imported modules are looked up
//	output_dir: build       # where generated .cpp files go
//	manifest: true          # also write <out>.manifest.yaml
//
// Relative paths are resolved against the directory holding the file.
// PEREGRINE_PATH, from the environment or a .env file next to the config,
// overrides search_root.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

var ErrSearchRootNotDir = errors.New("search_root is not a directory")

// Config represents a peregrine.yaml file.
type Config struct {
	// SearchRoot is the directory imports are resolved in.
	SearchRoot string `yaml:"search_root,omitempty"`

	// OutputDir receives generated files when no explicit output is given.
	OutputDir string `yaml:"output_dir,omitempty"`

	// Manifest enables writing a build manifest next to each output.
	Manifest bool `yaml:"manifest,omitempty"`

	// Dir is the directory the configuration was loaded from.
	Dir string `yaml:"-"`
}

// Default returns the configuration used when no project file exists.
func Default(dir string) *Config {
	cfg := &Config{Dir: dir}
	cfg.setDefaults()
	return cfg
}

// LoadConfig reads and parses a peregrine.yaml file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return ParseConfig(data, path)
}

// ParseConfig parses peregrine.yaml content from bytes.
// The path argument locates relative entries and names the file in errors.
func ParseConfig(data []byte, path string) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	cfg.Dir = filepath.Dir(path)
	cfg.setDefaults()
	if err := cfg.validate(path); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// FindConfig searches for peregrine.yaml starting from dir and walking up
// to parent directories.
// Returns the path to the config file, or an empty string if none exists.
func FindConfig(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}

	for {
		for _, name := range []string{ConfigFileName, ConfigFileNameAlt} {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// Resolve finds and loads the configuration governing files in dir, falling
// back to defaults rooted at dir, then applies the environment override.
func Resolve(dir string) (*Config, error) {
	path, err := FindConfig(dir)
	if err != nil {
		return nil, err
	}

	var cfg *Config
	if path == "" {
		cfg = Default(dir)
	} else if cfg, err = LoadConfig(path); err != nil {
		return nil, err
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv loads a .env file next to the configuration if one exists and
// applies PEREGRINE_PATH. Variables already set in the process win.
func (c *Config) ApplyEnv() error {
	envFile := filepath.Join(c.Dir, ".env")
	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Load(envFile); err != nil {
			return fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}
	if root := os.Getenv(SearchPathEnv); root != "" {
		c.SearchRoot = root
	}
	return nil
}

func (c *Config) setDefaults() {
	if c.SearchRoot == "" {
		c.SearchRoot = c.Dir
	} else if !filepath.IsAbs(c.SearchRoot) {
		c.SearchRoot = filepath.Join(c.Dir, c.SearchRoot)
	}
	if c.OutputDir == "" {
		c.OutputDir = DefaultOutputDir
	}
	if !filepath.IsAbs(c.OutputDir) {
		c.OutputDir = filepath.Join(c.Dir, c.OutputDir)
	}
}

// validate checks the configuration for errors.
func (c *Config) validate(path string) error {
	info, err := os.Stat(c.SearchRoot)
	if err != nil {
		return fmt.Errorf("%s: search_root %q: %w", path, c.SearchRoot, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s: %w: %q", path, ErrSearchRootNotDir, c.SearchRoot)
	}
	return nil
}
