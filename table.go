package csv2sql

import (
	"path/filepath"
	"strings"
)

// table holds one parsed input file: header, ordered data rows, and one
// inferred type per column.
type table struct {
	// name is the table/alias name, derived from the file path by default
	name string
	// header is the ordered column names from the first row
	header header
	// records is the ordered data rows
	records []Record
	// columnInfo contains the inferred type for each column
	columnInfo []columnInfo
}

// newTable creates a table and infers all column types up front.
func newTable(name string, header header, records []Record) *table {
	return &table{
		name:       name,
		header:     header,
		records:    records,
		columnInfo: inferColumnsInfo(header, records),
	}
}

// getName return table name.
func (t *table) getName() string {
	return t.name
}

// getHeader return table header.
func (t *table) getHeader() header {
	return t.header
}

// getRecords return table records.
func (t *table) getRecords() []Record {
	return t.records
}

// equal compare table.
func (t *table) equal(t2 *table) bool {
	if t.getName() != t2.getName() {
		return false
	}
	if !t.header.equal(t2.header) {
		return false
	}
	if len(t.getRecords()) != len(t2.getRecords()) {
		return false
	}
	for i, record := range t.getRecords() {
		if !record.equal(t2.getRecords()[i]) {
			return false
		}
	}
	return true
}

// tableFromFilePath derives a table name from a file path: base name with
// the compression extension and then the format extension stripped.
// Extensions match case-insensitively, like detectFileType; the base name
// keeps its original casing.
func tableFromFilePath(filePath string) string {
	fileName := filepath.Base(filePath)
	for _, ext := range []string{extGZ, extBZ2, extXZ, extZSTD} {
		if strings.HasSuffix(strings.ToLower(fileName), ext) {
			fileName = fileName[:len(fileName)-len(ext)]
			break
		}
	}
	return strings.TrimSuffix(fileName, filepath.Ext(fileName))
}
