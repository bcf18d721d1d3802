package output

import (
	"fmt"
	"io"

	"github.com/vegasq/csvsql/query"
)

// Formatter defines the interface for output formatters.
//
// Implementers must provide Format to write a result set in the target
// format and SetOutput to change the output destination.
type Formatter interface {
	// Format writes rows in the formatter's specific format
	Format(rs *query.RowSet) error

	// SetOutput changes the output writer
	SetOutput(w io.Writer)
}

// Supported format names
const (
	FormatTable = "table"
	FormatCSV   = "csv"
	FormatJSON  = "json"
	FormatJSONL = "jsonl"
)

// New returns the formatter registered under name
func New(name string, w io.Writer) (Formatter, error) {
	switch name {
	case FormatTable:
		return NewTableFormatter(w), nil
	case FormatCSV:
		return NewCSVFormatter(w), nil
	case FormatJSON, FormatJSONL:
		return NewJSONFormatter(w), nil
	default:
		return nil, fmt.Errorf("unsupported format '%s' (supported: table, csv, json, jsonl)", name)
	}
}
