package domain

import (
	"fmt"
	"strings"
)

// Result is the outcome of a build. Values are ordered from worst to best so
// that a plain integer comparison answers "better or equal".
type Result int

const (
	ResultAborted Result = iota
	ResultNotBuilt
	ResultFailure
	ResultUnstable
	ResultSuccess
)

var resultNames = map[Result]string{
	ResultAborted:  "ABORTED",
	ResultNotBuilt: "NOT_BUILT",
	ResultFailure:  "FAILURE",
	ResultUnstable: "UNSTABLE",
	ResultSuccess:  "SUCCESS",
}

// String returns the upper-case name used in tag names.
func (r Result) String() string {
	if name, ok := resultNames[r]; ok {
		return name
	}
	return fmt.Sprintf("Result(%d)", int(r))
}

// IsBetterOrEqualTo reports whether r ranks at least as high as other.
func (r Result) IsBetterOrEqualTo(other Result) bool {
	return r >= other
}

// IsWorseThan reports whether r ranks strictly below other.
func (r Result) IsWorseThan(other Result) bool {
	return r < other
}

// Compare returns -1, 0 or 1.
func (r Result) Compare(other Result) int {
	switch {
	case r < other:
		return -1
	case r > other:
		return 1
	default:
		return 0
	}
}

// Valid reports whether r is one of the known results.
func (r Result) Valid() bool {
	_, ok := resultNames[r]
	return ok
}

// ParseResult parses a result name case-insensitively. Dashes are accepted in
// place of underscores.
func ParseResult(s string) (Result, error) {
	normalized := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), "-", "_"))
	for r, name := range resultNames {
		if name == normalized {
			return r, nil
		}
	}
	return ResultFailure, fmt.Errorf("unknown build result: %q", s)
}
