package csv2sql

import (
	"compress/gzip"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/apache/arrow/go/v18/arrow"
	"github.com/apache/arrow/go/v18/arrow/array"
	"github.com/apache/arrow/go/v18/arrow/memory"
	"github.com/apache/arrow/go/v18/parquet"
	"github.com/apache/arrow/go/v18/parquet/pqarrow"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulikunitz/xz"
	"github.com/xuri/excelize/v2"
)

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestDetectFileType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path     string
		expected FileType
	}{
		{"data.csv", FileTypeCSV},
		{"data.CSV", FileTypeCSV},
		{"data.tsv", FileTypeTSV},
		{"data.xlsx", FileTypeXLSX},
		{"data.parquet", FileTypeParquet},
		{"data.csv.gz", FileTypeCSV},
		{"data.csv.bz2", FileTypeCSV},
		{"data.tsv.xz", FileTypeTSV},
		{"data.parquet.zst", FileTypeParquet},
		{"data.txt", FileTypeUnsupported},
		{"data.csv.txt", FileTypeUnsupported},
		{"data", FileTypeUnsupported},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, detectFileType(tt.path))
		})
	}
}

func TestIsSupportedFile(t *testing.T) {
	t.Parallel()

	assert.True(t, isSupportedFile("a.csv"))
	assert.True(t, isSupportedFile("a.tsv.zst"))
	assert.False(t, isSupportedFile("a.ltsv"))
	assert.False(t, isSupportedFile("a.json"))
}

func TestParseDelimited_CSV(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "people.csv")
	writeTestFile(t, path, "name,age,role\nJohn,25,Engineer\nJane,30,Manager\n")

	tbl, err := newFile(path).toTable(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "people", tbl.getName())
	assert.True(t, tbl.getHeader().equal(newHeader([]string{"name", "age", "role"})))
	require.Len(t, tbl.getRecords(), 2)
	assert.True(t, tbl.getRecords()[0].equal(newRecord([]string{"John", "25", "Engineer"})))
}

func TestParseDelimited_Quoting(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "quoted.csv")
	// Quoted fields: embedded delimiter, embedded newline, doubled quote.
	writeTestFile(t, path, "name,bio\n\"Smith, John\",\"line one\nline two\"\n\"O\"\"Brien\",plain\n")

	tbl, err := newFile(path).toTable(context.Background())
	require.NoError(t, err)

	require.Len(t, tbl.getRecords(), 2)
	assert.Equal(t, "Smith, John", tbl.getRecords()[0][0])
	assert.Equal(t, "line one\nline two", tbl.getRecords()[0][1])
	assert.Equal(t, `O"Brien`, tbl.getRecords()[1][0])
}

func TestParseDelimited_TSV(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "data.tsv")
	writeTestFile(t, path, "a\tb\n1\t2\n")

	tbl, err := newFile(path).toTable(context.Background())
	require.NoError(t, err)

	require.Len(t, tbl.getRecords(), 1)
	assert.True(t, tbl.getRecords()[0].equal(newRecord([]string{"1", "2"})))
}

func TestParseDelimited_CustomDelimiter(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "data.csv")
	writeTestFile(t, path, "a;b\n1;2\n")

	f := newFile(path)
	f.delimiter = ';'
	tbl, err := f.toTable(context.Background())
	require.NoError(t, err)

	assert.True(t, tbl.getHeader().equal(newHeader([]string{"a", "b"})))
	require.Len(t, tbl.getRecords(), 1)
}

func TestParseDelimited_EmptyFile(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "empty.csv")
	writeTestFile(t, path, "")

	_, err := newFile(path).toTable(context.Background())
	assert.ErrorIs(t, err, ErrEmptyFile)
}

func TestParseDelimited_HeaderOnly(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "header.csv")
	writeTestFile(t, path, "a,b\n")

	// A header-only file parses; the zero-row condition is reported by the
	// renderer, which cannot represent it.
	tbl, err := newFile(path).toTable(context.Background())
	require.NoError(t, err)
	assert.Empty(t, tbl.getRecords())
}

func TestParseDelimited_RaggedRow(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "ragged.csv")
	writeTestFile(t, path, "a,b,c\n1,2,3\n4,5\n")

	_, err := newFile(path).toTable(context.Background())
	require.ErrorIs(t, err, ErrRaggedRow)

	var formatErr *FormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Equal(t, 3, formatErr.Row)
}

func TestParseDelimited_DuplicateColumns(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "dup.csv")
	writeTestFile(t, path, "id,id\n1,2\n")

	_, err := newFile(path).toTable(context.Background())
	assert.ErrorIs(t, err, ErrDuplicateColumnName)
}

func TestParse_UnsupportedFormat(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "data.json")
	writeTestFile(t, path, "{}")

	_, err := newFile(path).toTable(context.Background())
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestParse_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := newFile(filepath.Join(t.TempDir(), "nope.csv")).toTable(context.Background())
	assert.Error(t, err)
	assert.True(t, os.IsNotExist(err))
}

func TestParseDelimited_Compressed(t *testing.T) {
	t.Parallel()

	const content = "name,age\nAlice,30\nBob,25\n"

	t.Run("gzip", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "data.csv.gz")
		f, err := os.Create(path)
		require.NoError(t, err)
		gzWriter := gzip.NewWriter(f)
		_, err = gzWriter.Write([]byte(content))
		require.NoError(t, err)
		require.NoError(t, gzWriter.Close())
		require.NoError(t, f.Close())

		tbl, err := newFile(path).toTable(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "data", tbl.getName())
		assert.Len(t, tbl.getRecords(), 2)
	})

	t.Run("xz", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "data.csv.xz")
		f, err := os.Create(path)
		require.NoError(t, err)
		xzWriter, err := xz.NewWriter(f)
		require.NoError(t, err)
		_, err = xzWriter.Write([]byte(content))
		require.NoError(t, err)
		require.NoError(t, xzWriter.Close())
		require.NoError(t, f.Close())

		tbl, err := newFile(path).toTable(context.Background())
		require.NoError(t, err)
		assert.Len(t, tbl.getRecords(), 2)
	})

	t.Run("zstd", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "data.csv.zst")
		f, err := os.Create(path)
		require.NoError(t, err)
		zstdWriter, err := zstd.NewWriter(f)
		require.NoError(t, err)
		_, err = zstdWriter.Write([]byte(content))
		require.NoError(t, err)
		require.NoError(t, zstdWriter.Close())
		require.NoError(t, f.Close())

		tbl, err := newFile(path).toTable(context.Background())
		require.NoError(t, err)
		assert.Len(t, tbl.getRecords(), 2)
	})

	t.Run("gzip uppercase suffix", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "data.CSV.GZ")
		f, err := os.Create(path)
		require.NoError(t, err)
		gzWriter := gzip.NewWriter(f)
		_, err = gzWriter.Write([]byte(content))
		require.NoError(t, err)
		require.NoError(t, gzWriter.Close())
		require.NoError(t, f.Close())

		tbl, err := newFile(path).toTable(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "data", tbl.getName())
		assert.True(t, tbl.getHeader().equal(newHeader([]string{"name", "age"})))
		assert.Len(t, tbl.getRecords(), 2)
	})

	// bzip2 has no writer in the standard library, so only type detection
	// is covered for .bz2 (TestDetectFileType).
}

func TestParseDelimited_UTF8BOM(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "bom.csv")
	writeTestFile(t, path, "\ufeffid,name\n1,test\n")

	tbl, err := newFile(path).toTable(context.Background())
	require.NoError(t, err)

	assert.True(t, tbl.getHeader().equal(newHeader([]string{"id", "name"})))

	sql, err := renderSQL(tbl, MethodValues)
	require.NoError(t, err)
	assert.Contains(t, sql, "AS bom(id, name);")
}

func TestParseXLSX(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "report.xlsx")

	xlsxFile := excelize.NewFile()
	require.NoError(t, xlsxFile.SetSheetRow("Sheet1", "A1", &[]any{"name", "age", "note"}))
	require.NoError(t, xlsxFile.SetSheetRow("Sheet1", "A2", &[]any{"Alice", 30, "x"}))
	// Short row: the iterator omits trailing empty cells; parsing pads it.
	require.NoError(t, xlsxFile.SetSheetRow("Sheet1", "A3", &[]any{"Bob", 25}))
	require.NoError(t, xlsxFile.SaveAs(path))
	require.NoError(t, xlsxFile.Close())

	tbl, err := newFile(path).toTable(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "report", tbl.getName())
	assert.True(t, tbl.getHeader().equal(newHeader([]string{"name", "age", "note"})))
	require.Len(t, tbl.getRecords(), 2)
	assert.True(t, tbl.getRecords()[0].equal(newRecord([]string{"Alice", "30", "x"})))
	assert.True(t, tbl.getRecords()[1].equal(newRecord([]string{"Bob", "25", ""})))
}

func TestParseParquet(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "metrics.parquet")
	writeParquetFixture(t, path)

	tbl, err := newFile(path).toTable(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "metrics", tbl.getName())
	assert.True(t, tbl.getHeader().equal(newHeader([]string{"id", "name", "score"})))
	require.Len(t, tbl.getRecords(), 2)
	assert.True(t, tbl.getRecords()[0].equal(newRecord([]string{"1", "Alice", "97.5"})))
	// Parquet null becomes an empty cell, i.e. SQL NULL downstream.
	assert.Equal(t, "", tbl.getRecords()[1][2])
}

// writeParquetFixture writes a small parquet file with an int64, a string,
// and a nullable float64 column.
func writeParquetFixture(t *testing.T, path string) {
	t.Helper()

	pool := memory.NewGoAllocator()
	schema := arrow.NewSchema([]arrow.Field{
		{Name: "id", Type: arrow.PrimitiveTypes.Int64},
		{Name: "name", Type: arrow.BinaryTypes.String},
		{Name: "score", Type: arrow.PrimitiveTypes.Float64, Nullable: true},
	}, nil)

	builder := array.NewRecordBuilder(pool, schema)
	defer builder.Release()

	builder.Field(0).(*array.Int64Builder).AppendValues([]int64{1, 2}, nil)
	builder.Field(1).(*array.StringBuilder).AppendValues([]string{"Alice", "Bob"}, nil)
	scoreBuilder := builder.Field(2).(*array.Float64Builder)
	scoreBuilder.Append(97.5)
	scoreBuilder.AppendNull()

	rec := builder.NewRecord()
	defer rec.Release()

	arrowTable := array.NewTableFromRecords(schema, []arrow.Record{rec})
	defer arrowTable.Release()

	f, err := os.Create(path)
	require.NoError(t, err)
	// pqarrow.WriteTable closes f itself; closing again returns os.ErrClosed.
	require.NoError(t, pqarrow.WriteTable(arrowTable, f, 1024, parquet.NewWriterProperties(), pqarrow.DefaultWriterProps()))
}
