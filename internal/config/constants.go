package config

import "strings"

const SourceFileExt = ".pe"

// SourceFileExtensions are all recognized source file extensions
var SourceFileExtensions = []string{".pe"}

// HasSourceExt reports whether path ends in a recognized source extension.
func HasSourceExt(path string) bool {
	for _, ext := range SourceFileExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

// TrimSourceExt removes a recognized source extension from name.
func TrimSourceExt(name string) string {
	for _, ext := range SourceFileExtensions {
		if strings.HasSuffix(name, ext) {
			return strings.TrimSuffix(name, ext)
		}
	}
	return name
}

// Name mangling
const (
	// MangleSeparator joins an owner name and a member name into a single
	// flat target identifier: Color + Red -> Color___Red.
	MangleSeparator = "___"
)

// Mangle returns the flat identifier for member of owner.
func Mangle(owner, member string) string {
	return owner + MangleSeparator + member
}

// Runtime helper names called by generated code
const (
	PowerHelper = "_PEREGRINE_POWER"
	FloorHelper = "_PEREGRINE_FLOOR"
)

// Built-in error kinds known to the generated program
const (
	ErrorEnumName          = "error"
	AssertionErrorName     = "AssertionError"
	ZeroDivisionErrorName  = "ZeroDivisionError"
	EntryPointFunctionName = "main"
)

// Preamble is written at the top of every generated translation unit.
var Preamble = "#include <cstdio>\n#include <functional>\ntypedef enum{" +
	Mangle(ErrorEnumName, AssertionErrorName) + "," +
	Mangle(ErrorEnumName, ZeroDivisionErrorName) + "} " + ErrorEnumName + ";\n"

// Project configuration
const (
	ConfigFileName    = "peregrine.yaml"
	ConfigFileNameAlt = "peregrine.yml"
	// SearchPathEnv overrides the module search root.
	SearchPathEnv    = "PEREGRINE_PATH"
	OutputExt        = ".cpp"
	ManifestSuffix   = ".manifest.yaml"
	DefaultOutputDir = "."
)
