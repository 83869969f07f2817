package csv2sql

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewTable(t *testing.T) {
	t.Parallel()

	header := newHeader([]string{"name", "age"})
	records := []Record{
		newRecord([]string{"John", "25"}),
		newRecord([]string{"Jane", "30"}),
	}

	tbl := newTable("people", header, records)

	assert.Equal(t, "people", tbl.getName())
	assert.True(t, tbl.getHeader().equal(header))
	assert.Len(t, tbl.getRecords(), 2)

	// Types are inferred once, at construction.
	assert.Equal(t, columnTypeString, tbl.columnInfo[0].Type)
	assert.Equal(t, columnTypeInteger, tbl.columnInfo[1].Type)
}

func TestTable_Equal(t *testing.T) {
	t.Parallel()

	header := newHeader([]string{"a"})
	records := []Record{newRecord([]string{"1"})}

	t1 := newTable("t", header, records)
	t2 := newTable("t", header, records)
	t3 := newTable("other", header, records)

	assert.True(t, t1.equal(t2))
	assert.False(t, t1.equal(t3))
}

func TestTableFromFilePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path     string
		expected string
	}{
		{"employees.csv", "employees"},
		{"data.tsv", "data"},
		{"data.csv.gz", "data"},
		{"data.csv.bz2", "data"},
		{"data.tsv.xz", "data"},
		{"/path/to/sales.csv.zst", "sales"},
		{"report.xlsx", "report"},
		{"metrics.parquet", "metrics"},
		{"Data.CSV.GZ", "Data"},
		{"sales.csv.ZST", "sales"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, tableFromFilePath(tt.path))
		})
	}
}
