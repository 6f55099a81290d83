// Package common provides the error taxonomy and shared utilities used
// across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Configuration errors.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// SchemaError reports a required column missing from an input file.
// Schema errors are fatal and abort the run before matching begins.
type SchemaError struct {
	File   string
	Column string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: required column %q is missing", e.File, e.Column)
}

// TypeCoercionError reports a cell that could not be converted to its
// declared type, with enough context to find the offending value.
type TypeCoercionError struct {
	Err    error
	File   string
	Column string
	Row    int // 1-based data row
}

func (e *TypeCoercionError) Error() string {
	return fmt.Sprintf("%s: row %d, column %q: %v", e.File, e.Row, e.Column, e.Err)
}

func (e *TypeCoercionError) Unwrap() error {
	return e.Err
}

// DegenerateInputError reports input too small for the requested
// computation, such as a zero-contact campaign whose response rate
// would be undefined.
type DegenerateInputError struct {
	Reason string
}

func (e *DegenerateInputError) Error() string {
	return fmt.Sprintf("degenerate input: %s", e.Reason)
}

// Warning is a non-fatal data quality finding. Warnings accumulate
// during a run and surface alongside successful output; they never
// halt the pipeline.
type Warning string

// Warningf builds a Warning from a format string.
func Warningf(format string, args ...any) Warning {
	return Warning(fmt.Sprintf(format, args...))
}
