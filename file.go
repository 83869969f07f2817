package csv2sql

import (
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/apache/arrow/go/v18/arrow/array"
	pqfile "github.com/apache/arrow/go/v18/parquet/file"
	"github.com/apache/arrow/go/v18/parquet/pqarrow"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
	"github.com/xuri/excelize/v2"
)

// FileType represents the base input format, without compression.
type FileType int

const (
	// FileTypeCSV represents comma-separated text
	FileTypeCSV FileType = iota
	// FileTypeTSV represents tab-separated text
	FileTypeTSV
	// FileTypeXLSX represents Excel XLSX workbooks (first sheet only)
	FileTypeXLSX
	// FileTypeParquet represents Apache Parquet files
	FileTypeParquet
	// FileTypeUnsupported represents anything else
	FileTypeUnsupported
)

// File extensions
const (
	// extCSV is the CSV file extension
	extCSV = ".csv"
	// extTSV is the TSV file extension
	extTSV = ".tsv"
	// extXLSX is the Excel XLSX file extension
	extXLSX = ".xlsx"
	// extParquet is the Parquet file extension
	extParquet = ".parquet"
	// extGZ is the gzip compression extension
	extGZ = ".gz"
	// extBZ2 is the bzip2 compression extension
	extBZ2 = ".bz2"
	// extXZ is the xz compression extension
	extXZ = ".xz"
	// extZSTD is the zstd compression extension
	extZSTD = ".zst"
)

// file represents one input file to convert
type file struct {
	path     string
	fileType FileType
	// delimiter overrides the extension default when non-zero
	delimiter rune
}

// newFile creates a new file
func newFile(path string) *file {
	return &file{
		path:     path,
		fileType: detectFileType(path),
	}
}

// detectFileType detects the base format from the extension, ignoring a
// trailing compression extension.
func detectFileType(path string) FileType {
	basePath := strings.ToLower(path)
	for _, ext := range []string{extGZ, extBZ2, extXZ, extZSTD} {
		if strings.HasSuffix(basePath, ext) {
			basePath = strings.TrimSuffix(basePath, ext)
			break
		}
	}

	switch filepath.Ext(basePath) {
	case extCSV:
		return FileTypeCSV
	case extTSV:
		return FileTypeTSV
	case extXLSX:
		return FileTypeXLSX
	case extParquet:
		return FileTypeParquet
	default:
		return FileTypeUnsupported
	}
}

// isSupportedFile checks if the file has a supported extension
func isSupportedFile(fileName string) bool {
	return detectFileType(fileName) != FileTypeUnsupported
}

// isGZ returns true if file is gzip compressed
func (f *file) isGZ() bool {
	return strings.HasSuffix(strings.ToLower(f.path), extGZ)
}

// isBZ2 returns true if file is bzip2 compressed
func (f *file) isBZ2() bool {
	return strings.HasSuffix(strings.ToLower(f.path), extBZ2)
}

// isXZ returns true if file is xz compressed
func (f *file) isXZ() bool {
	return strings.HasSuffix(strings.ToLower(f.path), extXZ)
}

// isZSTD returns true if file is zstd compressed
func (f *file) isZSTD() bool {
	return strings.HasSuffix(strings.ToLower(f.path), extZSTD)
}

// effectiveDelimiter returns the delimiter override when set, otherwise the
// extension default.
func (f *file) effectiveDelimiter() rune {
	if f.delimiter != 0 {
		return f.delimiter
	}
	if f.fileType == FileTypeTSV {
		return tsvDelimiter
	}
	return csvDelimiter
}

// openReader opens the file and returns a reader that handles compression.
// The returned closer releases every acquired resource and must be called
// on all exit paths.
func (f *file) openReader() (io.Reader, func() error, error) {
	osFile, err := os.Open(f.path)
	if err != nil {
		return nil, nil, err
	}

	var reader io.Reader = osFile
	closer := osFile.Close

	if f.isGZ() {
		gzReader, err := gzip.NewReader(osFile)
		if err != nil {
			_ = osFile.Close()
			return nil, nil, err
		}
		reader = gzReader
		closer = func() error {
			_ = gzReader.Close()
			return osFile.Close()
		}
	} else if f.isBZ2() {
		reader = bzip2.NewReader(osFile)
		closer = osFile.Close
	} else if f.isXZ() {
		xzReader, err := xz.NewReader(osFile)
		if err != nil {
			_ = osFile.Close()
			return nil, nil, err
		}
		reader = xzReader
		closer = osFile.Close
	} else if f.isZSTD() {
		decoder, err := zstd.NewReader(osFile)
		if err != nil {
			_ = osFile.Close()
			return nil, nil, err
		}
		reader = decoder
		closer = func() error {
			decoder.Close()
			return osFile.Close()
		}
	}

	return reader, closer, nil
}

// toTable parses the file into a table according to its format.
func (f *file) toTable(ctx context.Context) (*table, error) {
	switch f.fileType {
	case FileTypeCSV, FileTypeTSV:
		return f.parseDelimited()
	case FileTypeXLSX:
		return f.parseXLSX()
	case FileTypeParquet:
		return f.parseParquet(ctx)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, f.path)
	}
}

// parseDelimited parses CSV or TSV input. Quoted fields may contain the
// delimiter, embedded newlines, and doubled quote characters (RFC 4180).
// Rows whose cell count differs from the header are rejected.
func (f *file) parseDelimited() (*table, error) {
	reader, closer, err := f.openReader()
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = closer()
	}()

	csvReader := csv.NewReader(reader)
	csvReader.Comma = f.effectiveDelimiter()
	records, err := csvReader.ReadAll()
	if err != nil {
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) && errors.Is(parseErr.Err, csv.ErrFieldCount) {
			return nil, &FormatError{Err: ErrRaggedRow, Path: f.path, Row: parseErr.Line}
		}
		return nil, fmt.Errorf("csv2sql: failed to parse %s: %w", f.path, err)
	}

	if len(records) == 0 {
		return nil, newFormatError(ErrEmptyFile, f.path)
	}

	// A UTF-8 BOM is part of the first header cell as far as encoding/csv
	// is concerned; strip it so the column name is clean.
	records[0][0] = strings.TrimPrefix(records[0][0], "\ufeff")

	if err := validateColumnNames(records[0]); err != nil {
		return nil, err
	}
	header := newHeader(records[0])

	tableRecords := make([]Record, 0, len(records)-1)
	for i := 1; i < len(records); i++ {
		tableRecords = append(tableRecords, newRecord(records[i]))
	}

	return newTable(tableFromFilePath(f.path), header, tableRecords), nil
}

// parseXLSX parses the first sheet of an XLSX workbook. The xlsx row
// iterator omits trailing empty cells, so short rows are padded to header
// width rather than rejected.
func (f *file) parseXLSX() (*table, error) {
	reader, closer, err := f.openReader()
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = closer()
	}()

	xlsxFile, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, fmt.Errorf("csv2sql: failed to open XLSX file %s: %w", f.path, err)
	}
	defer func() {
		_ = xlsxFile.Close()
	}()

	sheetNames := xlsxFile.GetSheetList()
	if len(sheetNames) == 0 {
		return nil, newFormatError(ErrEmptyFile, f.path)
	}

	rows, err := xlsxFile.GetRows(sheetNames[0])
	if err != nil {
		return nil, fmt.Errorf("csv2sql: failed to read sheet %s: %w", sheetNames[0], err)
	}
	if len(rows) == 0 {
		return nil, newFormatError(ErrEmptyFile, f.path)
	}

	if err := validateColumnNames(rows[0]); err != nil {
		return nil, err
	}

	headers := make(header, len(rows[0]))
	copy(headers, rows[0])

	records := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		record := make(Record, len(headers))
		for j := range headers {
			if j < len(row) {
				record[j] = row[j]
			}
		}
		records = append(records, record)
	}

	return newTable(tableFromFilePath(f.path), headers, records), nil
}

// parseParquet parses a Parquet file. Parquet requires random access, so the
// (decompressed) content is read fully into memory first. Every value is
// stringified and runs through the same inference and rendering pipeline as
// delimited text; Parquet nulls become empty cells.
func (f *file) parseParquet(ctx context.Context) (*table, error) {
	reader, closer, err := f.openReader()
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = closer()
	}()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("csv2sql: failed to read parquet data: %w", err)
	}
	if len(data) == 0 {
		return nil, newFormatError(ErrEmptyFile, f.path)
	}

	pqReader, err := pqfile.NewParquetReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("csv2sql: failed to open parquet file %s: %w", f.path, err)
	}
	defer pqReader.Close()

	arrowReader, err := pqarrow.NewFileReader(pqReader, pqarrow.ArrowReadProperties{}, nil)
	if err != nil {
		return nil, fmt.Errorf("csv2sql: failed to create arrow reader: %w", err)
	}

	arrowTable, err := arrowReader.ReadTable(ctx)
	if err != nil {
		return nil, fmt.Errorf("csv2sql: failed to read parquet table: %w", err)
	}
	defer arrowTable.Release()

	schema := arrowTable.Schema()
	headers := make(header, schema.NumFields())
	for i, field := range schema.Fields() {
		headers[i] = field.Name
	}
	if err := validateColumnNames(headers); err != nil {
		return nil, err
	}

	tableReader := array.NewTableReader(arrowTable, 0)
	defer tableReader.Release()

	var records []Record
	for tableReader.Next() {
		batch := tableReader.Record()
		numRows := batch.NumRows()
		for i := range numRows {
			row := make(Record, batch.NumCols())
			for j, col := range batch.Columns() {
				if col.IsNull(int(i)) {
					continue
				}
				row[j] = col.ValueStr(int(i))
			}
			records = append(records, row)
		}
	}
	if err := tableReader.Err(); err != nil {
		return nil, fmt.Errorf("csv2sql: error reading parquet records: %w", err)
	}

	return newTable(tableFromFilePath(f.path), headers, records), nil
}
