package csv2sql

import (
	"strconv"
	"strings"
)

// booleanTokens is the fixed set of values recognized as booleans,
// matched case-insensitively. A column is Boolean only if every non-empty
// cell is one of these.
var booleanTokens = map[string]bool{
	"true":  true,
	"false": false,
	"t":     true,
	"f":     false,
	"yes":   true,
	"no":    false,
}

// isInteger checks if a value is a whole number (optional sign, digits only)
func isInteger(value string) bool {
	if len(value) == 0 {
		return false
	}
	first := value[0]
	if first != '+' && first != '-' && (first < firstDigitChar || first > lastDigitChar) {
		return false
	}

	_, err := strconv.ParseInt(value, 10, 64)
	return err == nil
}

// isFloat checks if a value is a decimal number, including scientific
// notation. The digit pre-check rejects "NaN" and "Inf", which ParseFloat
// would otherwise accept.
func isFloat(value string) bool {
	hasDigit := false
	for _, r := range value {
		if r >= firstDigitChar && r <= lastDigitChar {
			hasDigit = true
			break
		}
	}
	if !hasDigit {
		return false
	}

	_, err := strconv.ParseFloat(value, 64)
	return err == nil
}

// isBoolean checks if a value is one of the fixed boolean tokens
func isBoolean(value string) bool {
	_, ok := booleanTokens[strings.ToLower(value)]
	return ok
}

// inferColumnType infers the semantic type for one column from all its raw
// string values. Empty (or whitespace-only) cells are NULL candidates and
// never disqualify a classification; they are skipped.
//
// Precedence is fixed: Integer, then Float, then Boolean, then String.
// The first classification every non-empty cell satisfies wins, so a column
// of {"0","1"} is Integer, never Boolean. A column with zero non-empty
// cells is Null. Inference always succeeds.
func inferColumnType(values []string) columnType {
	allInteger := true
	allFloat := true
	allBoolean := true
	nonEmptyCount := 0

	for _, value := range values {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		nonEmptyCount++

		if allInteger && !isInteger(value) {
			allInteger = false
		}
		if allFloat && !isFloat(value) {
			allFloat = false
		}
		if allBoolean && !isBoolean(value) {
			allBoolean = false
		}
		if !allInteger && !allFloat && !allBoolean {
			// Nothing left to rule out; the column is String.
			break
		}
	}

	if nonEmptyCount == 0 {
		return columnTypeNull
	}

	switch {
	case allInteger:
		return columnTypeInteger
	case allFloat:
		return columnTypeFloat
	case allBoolean:
		return columnTypeBoolean
	default:
		return columnTypeString
	}
}

// inferColumnsInfo infers column information from header and data records.
// Each column's type is computed once, from the union of all its values.
func inferColumnsInfo(header header, records []Record) []columnInfo {
	columnCount := len(header)
	if columnCount == 0 {
		return nil
	}

	columns := make([]columnInfo, columnCount)
	for i := range columnCount {
		var values []string
		for _, record := range records {
			if i < len(record) {
				values = append(values, record[i])
			}
		}

		columns[i] = columnInfo{
			Name: header[i],
			Type: inferColumnType(values),
		}
	}

	return columns
}
