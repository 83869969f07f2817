package csv2sql

import (
	"fmt"
	"strings"
)

// Character validation constants
const (
	// firstDigitChar represents the first numeric character
	firstDigitChar = '0'
	// lastDigitChar represents the last numeric character
	lastDigitChar = '9'
	// firstLowerChar represents the first lowercase letter
	firstLowerChar = 'a'
	// lastLowerChar represents the last lowercase letter
	lastLowerChar = 'z'
	// firstUpperChar represents the first uppercase letter
	firstUpperChar = 'A'
	// lastUpperChar represents the last uppercase letter
	lastUpperChar = 'Z'
	// underscoreChar represents the underscore character
	underscoreChar = '_'
)

// File format delimiters
const (
	// csvDelimiter is the delimiter for CSV files
	csvDelimiter = ','
	// tsvDelimiter is the delimiter for TSV files
	tsvDelimiter = '\t'
)

// header is the ordered list of column names taken from the first input row.
type header []string

// newHeader create new header.
func newHeader(h []string) header {
	return header(h)
}

// equal compare header.
func (h header) equal(h2 header) bool {
	if len(h) != len(h2) {
		return false
	}
	for i, v := range h {
		if v != h2[i] {
			return false
		}
	}
	return true
}

// Record represents one data row as a slice of raw string cells.
type Record []string

// newRecord create new record.
func newRecord(r []string) Record {
	return Record(r)
}

// equal compare record.
func (r Record) equal(r2 Record) bool {
	if len(r) != len(r2) {
		return false
	}
	for i, v := range r {
		if v != r2[i] {
			return false
		}
	}
	return true
}

// columnType is the semantic type inferred for a whole column.
// A column has exactly one type, computed before any cell is rendered.
type columnType int

const (
	// columnTypeString is the default type; cells render single-quoted
	columnTypeString columnType = iota
	// columnTypeInteger marks columns whose non-empty cells are all whole numbers
	columnTypeInteger
	// columnTypeFloat marks columns whose non-empty cells are all decimal numbers
	columnTypeFloat
	// columnTypeBoolean marks columns whose non-empty cells are all boolean tokens
	columnTypeBoolean
	// columnTypeNull marks columns with zero non-empty cells
	columnTypeNull
)

// String returns the type name
func (ct columnType) String() string {
	switch ct {
	case columnTypeInteger:
		return "INTEGER"
	case columnTypeFloat:
		return "FLOAT"
	case columnTypeBoolean:
		return "BOOLEAN"
	case columnTypeNull:
		return "NULL"
	default:
		return "STRING"
	}
}

// columnInfo pairs a column name with its inferred type
type columnInfo struct {
	Name string
	Type columnType
}

// TableName represents a table name with validation
type TableName struct {
	value string
}

// NewTableName creates a new TableName with validation
func NewTableName(name string) TableName {
	if strings.TrimSpace(name) == "" {
		return TableName{value: defaultTableName}
	}
	return TableName{value: strings.TrimSpace(name)}
}

// String returns the string representation of TableName
func (tn TableName) String() string {
	return tn.value
}

// Sanitize returns a TableName reduced to a safe SQL identifier
func (tn TableName) Sanitize() TableName {
	return TableName{value: sanitizeIdentifier(tn.value, defaultTableName)}
}

// defaultTableName is used when no usable identifier can be derived
const defaultTableName = "csv_data"

// sanitizeIdentifier reduces a raw name to a safe SQL identifier.
// Rule: spaces, hyphens, and dots become underscores; every other rune
// outside [A-Za-z0-9_] is dropped; a leading digit gets the fallback as
// prefix; an empty result becomes the fallback. The same rule applies to
// the table name and to every column name derived from header text.
func sanitizeIdentifier(name, fallback string) string {
	result := strings.ReplaceAll(name, " ", "_")
	result = strings.ReplaceAll(result, "-", "_")
	result = strings.ReplaceAll(result, ".", "_")

	var sanitized strings.Builder
	for _, r := range result {
		if (r >= firstLowerChar && r <= lastLowerChar) ||
			(r >= firstUpperChar && r <= lastUpperChar) ||
			(r >= firstDigitChar && r <= lastDigitChar) ||
			r == underscoreChar {
			sanitized.WriteRune(r)
		}
	}

	finalResult := sanitized.String()

	if len(finalResult) > 0 && finalResult[0] >= firstDigitChar && finalResult[0] <= lastDigitChar {
		finalResult = fallback + "_" + finalResult
	}

	if finalResult == "" {
		finalResult = fallback
	}

	return finalResult
}

// validateColumnNames checks for duplicate column names and returns error if found.
// Column name comparison is case-sensitive.
func validateColumnNames(columns []string) error {
	columnsSeen := make(map[string]bool)
	for _, col := range columns {
		trimmedCol := strings.TrimSpace(col)
		if columnsSeen[trimmedCol] {
			return fmt.Errorf("%w: %s", ErrDuplicateColumnName, col)
		}
		columnsSeen[trimmedCol] = true
	}
	return nil
}
