// Package csv2sql converts tabular data files into a single SQL statement
// that embeds the data as inline literal rows, usable as a drop-in subquery
// in any SQL engine. No database connection is involved: the input is text
// (or a columnar file), the output is text.
//
// # Supported inputs
//
//   - CSV and TSV files, with RFC 4180 quoting (embedded delimiters,
//     newlines, and doubled quotes inside quoted fields)
//   - gzip, bzip2, xz, and zstandard compressed variants (.gz, .bz2,
//     .xz, .zst)
//   - Excel XLSX workbooks (first sheet)
//   - Apache Parquet files
//
// # Type inference
//
// Each column gets exactly one type, inferred from every value it holds.
// Empty cells are NULL candidates and never influence the classification.
// The precedence is fixed: Integer, then Float, then Boolean, then String;
// a column with no non-empty values at all is Null-typed. So a column of
// {"0", "1"} is Integer, never Boolean, and a column of {"1.5", "2"} is
// Float.
//
// # Output layouts
//
// VALUES (the default):
//
//	SELECT * FROM VALUES
//	  ('John', 25, 'Engineer'),
//	  ('Jane', 30, 'Manager')
//	AS employees(name, age, role);
//
// CTE:
//
//	WITH employees AS (
//	  SELECT 'John' AS name, 25 AS age, 'Engineer' AS role
//	  UNION ALL
//	  SELECT 'Jane', 30, 'Manager'
//	)
//	SELECT * FROM employees;
//
// Integer and Float cells are emitted verbatim and unquoted, preserving the
// original text exactly. Boolean cells normalize to TRUE/FALSE. String
// cells are single-quoted with embedded quotes doubled. Empty cells render
// as unquoted NULL in both layouts.
//
// # Basic usage
//
//	sql, err := csv2sql.Convert("employees.csv", csv2sql.NewConvertOptions())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(sql)
//
// To write the statement to a file atomically (the target file appears only
// if the whole conversion succeeds):
//
//	opts := csv2sql.NewConvertOptions().WithMethod(csv2sql.MethodCTE)
//	if err := csv2sql.ConvertFile(ctx, "employees.csv", "employees.sql", opts); err != nil {
//	    log.Fatal(err)
//	}
//
// # Table and column naming
//
// The table/alias name defaults to the input file's base name with format
// and compression extensions stripped: "employees.csv.gz" becomes
// "employees". Table and column names are sanitized to safe SQL
// identifiers: spaces, hyphens, and dots become underscores, other
// non-alphanumeric characters are dropped, and a leading digit is prefixed.
package csv2sql
