// Package csv2sql converts tabular data files into inline SQL statements.
package csv2sql

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// ConvertOptions configures a conversion run.
//
// Example:
//
//	opts := csv2sql.NewConvertOptions().
//		WithMethod(csv2sql.MethodCTE).
//		WithTableName("employees")
//
//	sql, err := csv2sql.Convert("employees.csv", opts)
type ConvertOptions struct {
	// Method selects the SQL layout (VALUES list or CTE)
	Method RenderMethod
	// TableName overrides the table/alias name; empty means derive it
	// from the input file's base name
	TableName string
	// Delimiter overrides the field delimiter for delimited text input;
	// zero means use the extension default (comma for .csv, tab for .tsv)
	Delimiter rune
}

// NewConvertOptions creates default conversion options (VALUES layout,
// table name derived from the input path, delimiter by extension).
func NewConvertOptions() ConvertOptions {
	return ConvertOptions{
		Method: MethodValues,
	}
}

// WithMethod sets the SQL layout.
func (o ConvertOptions) WithMethod(method RenderMethod) ConvertOptions {
	o.Method = method
	return o
}

// WithTableName sets the table/alias name used in the generated SQL.
// The name is sanitized to a safe SQL identifier before use.
func (o ConvertOptions) WithTableName(name string) ConvertOptions {
	o.TableName = name
	return o
}

// WithDelimiter sets the field delimiter for delimited text input.
func (o ConvertOptions) WithDelimiter(delimiter rune) ConvertOptions {
	o.Delimiter = delimiter
	return o
}

// Convert reads the input file and returns the complete SQL statement as a
// string. See ConvertContext.
func Convert(path string, opts ConvertOptions) (string, error) {
	return ConvertContext(context.Background(), path, opts)
}

// ConvertContext reads the input file, infers one type per column, and
// renders the data as a single SQL statement.
//
// The whole conversion is one synchronous pipeline: the file is read into
// memory, column types are inferred from all values, and every cell is
// formatted as a SQL literal in the selected layout. The input resource is
// released before ConvertContext returns, on success and on failure.
func ConvertContext(ctx context.Context, path string, opts ConvertOptions) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	f := newFile(path)
	if opts.Delimiter != 0 {
		f.delimiter = opts.Delimiter
	}

	t, err := f.toTable(ctx)
	if err != nil {
		return "", err
	}

	if opts.TableName != "" {
		t.name = opts.TableName
	}

	return renderSQL(t, opts.Method)
}

// ConvertFile converts inputPath and writes the SQL statement to
// outputPath, replacing any existing file.
//
// The output is all-or-nothing: the statement is rendered fully in memory,
// written to a temporary file in the destination directory, and renamed
// over the target only on success. A failed conversion never leaves a
// truncated or partial SQL file behind.
func ConvertFile(ctx context.Context, inputPath, outputPath string, opts ConvertOptions) error {
	if opts.TableName == "" {
		opts.TableName = tableFromFilePath(inputPath)
	}

	sqlText, err := ConvertContext(ctx, inputPath, opts)
	if err != nil {
		return err
	}

	return writeFileAtomic(outputPath, []byte(sqlText+"\n"))
}

// writeFileAtomic writes data to path via a temp file in the same
// directory plus rename, so the target is either fully written or absent.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmpFile, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("csv2sql: failed to create temporary output file: %w", err)
	}
	tmpPath := tmpFile.Name()

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("csv2sql: failed to write output: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("csv2sql: failed to close output file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("csv2sql: failed to finalize output file: %w", err)
	}
	return nil
}
