package trellis

import (
	"fmt"
	"strings"
)

// Error codes for validation failures.
const (
	ErrCodeRequired  = "required"
	ErrCodeWrongKind = "wrong_kind"
	ErrCodeOneOf     = "oneof"
	ErrCodeMin       = "min"
	ErrCodeMax       = "max"
)

// ValidationError aggregates every schema violation found in one pass,
// so a caller can fix all of them before re-running.
type ValidationError struct {
	FieldErrors []FieldError
}

// Error formats validation errors as a multi-line message.
func (e *ValidationError) Error() string {
	if len(e.FieldErrors) == 0 {
		return "manifest validation failed: no errors"
	}

	var b strings.Builder
	if len(e.FieldErrors) == 1 {
		b.WriteString("manifest validation failed: 1 error\n")
	} else {
		fmt.Fprintf(&b, "manifest validation failed: %d errors\n", len(e.FieldErrors))
	}

	for _, fe := range e.FieldErrors {
		fmt.Fprintf(&b, "  - %s: %s (%s)\n", fe.FieldPath, fe.Code, fe.Message)
	}

	return strings.TrimRight(b.String(), "\n")
}

// FieldError represents a single schema violation.
type FieldError struct {
	FieldPath string // Dot notation (e.g., "model.name")
	Code      string // Error code (e.g., "required", "oneof")
	Message   string // Human-readable description
}

// ParseError reports a malformed configuration document. The underlying
// decoder error is available via Unwrap.
type ParseError struct {
	Source string // File path or source name
	Format string // "yaml", "json" or "toml"
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s document %s: %v", e.Format, e.Source, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
