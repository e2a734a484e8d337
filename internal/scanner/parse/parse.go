// Package parse implements the tiered per-file parsing pipeline shared
// by scanners: a precise structural parse first, a regex-based fallback
// when the structural tier is unavailable or rejects the file.
package parse

import "fmt"

// Error marks a structural parse failure (malformed or unsupported
// syntax for the parser's grammar). Distinguished from I/O errors so the
// pipeline falls back instead of counting a hard failure.
type Error struct {
	Path   string
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("parse %s: %s", e.Path, e.Reason)
}

// NewError creates a structural parse error for a file
func NewError(path, format string, args ...any) *Error {
	return &Error{Path: path, Reason: fmt.Sprintf(format, args...)}
}

// StructuralParser is the precise (tier-1) parser for one language or
// format. Implementations return *Error for malformed input; any other
// error is treated as an I/O failure.
type StructuralParser[T any] interface {
	// Language names the grammar this parser understands
	Language() string

	// Available reports whether the parser can run at all. An
	// unavailable parser sends every file straight to the fallback
	// tier.
	Available() bool

	// ParseFile parses one file and returns the extracted constructs.
	// A successful parse with no constructs is still a structural
	// success.
	ParseFile(path string, content []byte) ([]T, error)
}

// FallbackFunc is the tier-2 extractor: best-effort line/regex matching
// over raw file text. Must be defensive and never panic; an empty slice
// means "no match".
type FallbackFunc[T any] func(path, content string) []T

// PreFilterFunc can cheaply rule a file out before either tier runs
// (e.g. the file doesn't import the target framework). Returning false
// skips the file entirely.
type PreFilterFunc func(path, content string) bool
