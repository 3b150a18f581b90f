// Package csv provides the error values returned by conversion.
package csv

import (
	"errors"
	"fmt"
)

// Conversion errors. Every error is terminal: a failed conversion returns no
// Document and no partial records.
var (
	// ErrEmptyInput indicates the input is empty or only whitespace.
	ErrEmptyInput = errors.New("csv is empty")

	// ErrNoData indicates line splitting produced no lines.
	ErrNoData = errors.New("csv has no data")

	// ErrNoHeaders indicates the header line produced no fields.
	ErrNoHeaders = errors.New("no headers found in csv")

	// ErrColumnCount indicates a data line has a different number of fields
	// than the header line. Returned wrapped in a *ColumnCountError.
	ErrColumnCount = errors.New("wrong number of columns")
)

// ColumnCountError reports a data line whose field count does not match the
// header.
type ColumnCountError struct {
	// Line is the 1-indexed position of the offending line among the
	// non-blank lines of the input. The header is line 1.
	Line int
	// Expected is the number of header fields.
	Expected int
	// Actual is the number of fields found on the line.
	Actual int
}

// Error returns a formatted error message with position information.
func (e *ColumnCountError) Error() string {
	return fmt.Sprintf("invalid csv format at line %d: expected %d columns, got %d",
		e.Line, e.Expected, e.Actual)
}

// Unwrap returns ErrColumnCount so callers can use errors.Is.
func (e *ColumnCountError) Unwrap() error {
	return ErrColumnCount
}
