// Package output provides formatters for query results.
//
// This package defines the Formatter interface and provides implementations
// for a console table, CSV and JSON Lines. All formatters work with
// *query.RowSet and keep the result's column order.
//
// # Supported Formats
//
//   - Table: aligned columns for interactive use, Null shown as NULL
//   - CSV: comma-separated values with header row, Null as an empty field
//   - JSON Lines: one JSON object per line, Null as null
//
// # Basic Usage
//
//	formatter, err := output.New("table", os.Stdout)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := formatter.Format(rs); err != nil {
//	    log.Fatal(err)
//	}
//
// # Writing to Different Destinations
//
//	var buf bytes.Buffer
//	formatter := output.NewCSVFormatter(os.Stdout)
//	formatter.SetOutput(&buf)
package output
