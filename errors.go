package csv2sql

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors returned by the conversion pipeline. Input shape problems
// wrap one of these so callers can branch with errors.Is.
var (
	// ErrEmptyFile indicates the input file contains no rows at all (not even a header)
	ErrEmptyFile = errors.New("csv2sql: empty input file")

	// ErrNoDataRows indicates the input has a header but zero data rows,
	// which neither render mode can represent as valid SQL
	ErrNoDataRows = errors.New("csv2sql: no data rows")

	// ErrDuplicateColumnName is returned when the header contains duplicate column names
	ErrDuplicateColumnName = errors.New("csv2sql: duplicate column name")

	// ErrRaggedRow indicates a data row whose cell count differs from the header
	ErrRaggedRow = errors.New("csv2sql: row field count does not match header")

	// ErrUnsupportedFormat indicates an input file with an unsupported extension
	ErrUnsupportedFormat = errors.New("csv2sql: unsupported file format")

	// ErrInvalidMethod indicates an unknown render method name
	ErrInvalidMethod = errors.New("csv2sql: invalid render method")
)

// FormatError is a malformed-input error with optional row/column context.
// Row is 1-based and counts the header as row 1, matching encoding/csv.
type FormatError struct {
	Err    error
	Path   string
	Row    int
	Column string
}

// Error implements the error interface
func (e *FormatError) Error() string {
	var parts []string
	parts = append(parts, e.Err.Error())
	if e.Path != "" {
		parts = append(parts, "file: "+e.Path)
	}
	if e.Row > 0 {
		parts = append(parts, fmt.Sprintf("row: %d", e.Row))
	}
	if e.Column != "" {
		parts = append(parts, "column: "+e.Column)
	}
	return strings.Join(parts, ", ")
}

// Unwrap exposes the sentinel for errors.Is checks
func (e *FormatError) Unwrap() error {
	return e.Err
}

// newFormatError creates a FormatError without positional context
func newFormatError(err error, path string) *FormatError {
	return &FormatError{Err: err, Path: path}
}
