package astyaml

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/funvibe/peregrine/internal/ast"
)

// number rewrites a numeric literal into a spelling C++ accepts. YAML allows
// integer forms C++ does not (0o17, 1_000), so integers are re-emitted in
// decimal. Decimals only lose digit separators; infinities and NaN have no
// literal form and are rejected.
func number(kind ast.Kind, text string) (string, error) {
	if kind == ast.KindDecimal {
		return decimal(text)
	}
	return integer(text)
}

func integer(text string) (string, error) {
	s := strings.TrimPrefix(strings.TrimSpace(text), "+")
	if v, err := strconv.ParseInt(s, 0, 64); err == nil {
		return strconv.FormatInt(v, 10), nil
	}
	if v, err := strconv.ParseUint(s, 0, 64); err == nil {
		return strconv.FormatUint(v, 10), nil
	}
	return "", fmt.Errorf("invalid integer %q", text)
}

func decimal(text string) (string, error) {
	s := strings.ReplaceAll(strings.TrimSpace(text), "_", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return "", fmt.Errorf("invalid decimal %q", text)
	}
	return s, nil
}
