package csv2sql

import (
	"fmt"
	"strings"
)

// RenderMethod selects the SQL layout for the generated statement.
type RenderMethod int

const (
	// MethodValues renders a VALUES list wrapped in SELECT * FROM
	MethodValues RenderMethod = iota
	// MethodCTE renders UNION ALL-chained SELECTs wrapped in a CTE
	MethodCTE
)

// Render method names as accepted on the command line
const (
	methodValuesStr = "values"
	methodCTEStr    = "cte"
)

// String returns the method name
func (m RenderMethod) String() string {
	if m == MethodCTE {
		return methodCTEStr
	}
	return methodValuesStr
}

// ParseRenderMethod parses a method name into a RenderMethod
func ParseRenderMethod(s string) (RenderMethod, error) {
	switch s {
	case methodValuesStr:
		return MethodValues, nil
	case methodCTEStr:
		return MethodCTE, nil
	default:
		return MethodValues, fmt.Errorf("%w: %q (want %q or %q)", ErrInvalidMethod, s, methodValuesStr, methodCTEStr)
	}
}

// quoteString renders a single-quoted SQL string literal. Embedded single
// quotes are escaped by doubling; all other characters pass through.
func quoteString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// formatCell renders one raw cell as a SQL literal according to its
// column's inferred type.
//
// Empty (or whitespace-only) cells render as unquoted NULL regardless of
// the column type. Numeric cells are emitted verbatim, unquoted, so the
// original text is preserved exactly ("2" in a Float column stays "2").
// Boolean cells normalize to TRUE/FALSE. A cell in a numeric or boolean
// column that fails to parse falls back to quoted-string rendering; given
// column-wide inference this should never happen, but a quoted string is
// still valid SQL while a bare word is not.
func formatCell(value string, ct columnType) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "NULL"
	}

	switch ct {
	case columnTypeNull:
		return "NULL"
	case columnTypeInteger:
		if isInteger(trimmed) {
			return trimmed
		}
	case columnTypeFloat:
		if isFloat(trimmed) {
			return trimmed
		}
	case columnTypeBoolean:
		if truthy, ok := booleanTokens[strings.ToLower(trimmed)]; ok {
			if truthy {
				return "TRUE"
			}
			return "FALSE"
		}
	}

	return quoteString(value)
}

// renderSQL assembles the complete SQL text for a parsed table. It is a pure
// function of (rows, header, inferred types, name, method): it mutates
// nothing and identical inputs produce byte-identical output.
func renderSQL(t *table, method RenderMethod) (string, error) {
	if len(t.getRecords()) == 0 {
		return "", newFormatError(ErrNoDataRows, t.getName())
	}

	tableName := NewTableName(t.getName()).Sanitize().String()
	columns := make([]string, len(t.getHeader()))
	for i, name := range t.getHeader() {
		columns[i] = sanitizeIdentifier(name, fmt.Sprintf("column_%d", i+1))
	}
	// Distinct raw names can sanitize to the same identifier ("a b" and
	// "a-b" both become "a_b"), so the duplicate check runs again here.
	if err := validateColumnNames(columns); err != nil {
		return "", err
	}

	if method == MethodCTE {
		return renderCTE(t, tableName, columns), nil
	}
	return renderValues(t, tableName, columns), nil
}

// renderValues emits the VALUES layout:
//
//	SELECT * FROM VALUES
//	  (cell, cell, ...),
//	  ...
//	AS table_name(col, col, ...);
//
// Rows keep input order; no dedup, no sort.
func renderValues(t *table, tableName string, columns []string) string {
	var sb strings.Builder
	sb.WriteString("SELECT * FROM VALUES\n")

	for i, record := range t.getRecords() {
		sb.WriteString("  (")
		sb.WriteString(renderRow(record, t.columnInfo))
		sb.WriteString(")")
		if i < len(t.getRecords())-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}

	sb.WriteString("AS ")
	sb.WriteString(tableName)
	sb.WriteString("(")
	sb.WriteString(strings.Join(columns, ", "))
	sb.WriteString(");")
	return sb.String()
}

// renderCTE emits the CTE layout:
//
//	WITH table_name AS (
//	  SELECT cell AS col, cell AS col, ...
//	  UNION ALL
//	  SELECT cell, cell, ...
//	)
//	SELECT * FROM table_name;
//
// Only the first SELECT carries column aliases; later UNION ALL branches
// take their column names from the first branch.
func renderCTE(t *table, tableName string, columns []string) string {
	var sb strings.Builder
	sb.WriteString("WITH ")
	sb.WriteString(tableName)
	sb.WriteString(" AS (\n")

	for i, record := range t.getRecords() {
		if i > 0 {
			sb.WriteString("  UNION ALL\n")
		}
		sb.WriteString("  SELECT ")
		if i == 0 {
			sb.WriteString(renderAliasedRow(record, t.columnInfo, columns))
		} else {
			sb.WriteString(renderRow(record, t.columnInfo))
		}
		sb.WriteString("\n")
	}

	sb.WriteString(")\nSELECT * FROM ")
	sb.WriteString(tableName)
	sb.WriteString(";")
	return sb.String()
}

// renderRow formats every cell of a record, comma-joined. Cells beyond the
// known column count are dropped; missing cells render as NULL.
func renderRow(record Record, columnInfo []columnInfo) string {
	cells := make([]string, len(columnInfo))
	for i, info := range columnInfo {
		if i < len(record) {
			cells[i] = formatCell(record[i], info.Type)
		} else {
			cells[i] = "NULL"
		}
	}
	return strings.Join(cells, ", ")
}

// renderAliasedRow formats a record with per-cell AS aliases, used for the
// first SELECT of a CTE.
func renderAliasedRow(record Record, columnInfo []columnInfo, columns []string) string {
	cells := make([]string, len(columnInfo))
	for i, info := range columnInfo {
		cell := "NULL"
		if i < len(record) {
			cell = formatCell(record[i], info.Type)
		}
		cells[i] = cell + " AS " + columns[i]
	}
	return strings.Join(cells, ", ")
}
