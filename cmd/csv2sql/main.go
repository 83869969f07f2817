// Command csv2sql converts a tabular data file into a SQL statement that
// embeds the data as inline literal rows.
package main

import (
	"context"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"

	"github.com/nao1215/csv2sql"
)

// CLI declares the command-line surface
var CLI struct {
	Input     string `arg:"" help:"Input data file (CSV, TSV, XLSX, or Parquet; .gz/.bz2/.xz/.zst accepted)" type:"existingfile"`
	Output    string `arg:"" help:"Output SQL file (overwritten if it exists)"`
	Method    string `help:"SQL layout: VALUES list or UNION ALL CTE" default:"values" enum:"values,cte"`
	TableName string `help:"Table/CTE alias name (default: derived from input file name)"`
	Delimiter string `help:"Field delimiter for delimited text input (default: by extension)"`
	Verbose   bool   `short:"v" help:"Enable verbose output"`
}

func main() {
	kctx := kong.Parse(&CLI,
		kong.Name("csv2sql"),
		kong.Description("Convert a tabular data file to a SQL statement with inline literal rows."),
	)

	if err := run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		kctx.Exit(1)
	}
}

func run(ctx context.Context) error {
	method, err := csv2sql.ParseRenderMethod(CLI.Method)
	if err != nil {
		return err
	}

	opts := csv2sql.NewConvertOptions().
		WithMethod(method).
		WithTableName(CLI.TableName)

	if CLI.Delimiter != "" {
		delimiter, err := parseDelimiter(CLI.Delimiter)
		if err != nil {
			return err
		}
		opts = opts.WithDelimiter(delimiter)
	}

	if CLI.Verbose {
		color.Blue("Converting %s (method: %s)", CLI.Input, method)
	}

	if err := csv2sql.ConvertFile(ctx, CLI.Input, CLI.Output, opts); err != nil {
		return err
	}

	if CLI.Verbose {
		color.Green("Wrote %s", CLI.Output)
	}
	return nil
}

// parseDelimiter converts the --delimiter argument to a rune. The literal
// two-character escape "\t" is accepted because a real tab is awkward to
// type in most shells.
func parseDelimiter(s string) (rune, error) {
	if s == `\t` {
		return '\t', nil
	}
	r, size := utf8.DecodeRuneInString(s)
	if size != len(s) || r == utf8.RuneError {
		return 0, fmt.Errorf("csv2sql: delimiter must be a single character, got %q", s)
	}
	return r, nil
}
