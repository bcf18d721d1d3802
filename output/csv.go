package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/vegasq/csvsql/query"
)

// CSVFormatter outputs rows as CSV format
type CSVFormatter struct {
	writer io.Writer
}

// NewCSVFormatter creates a new CSV formatter
func NewCSVFormatter(w io.Writer) *CSVFormatter {
	return &CSVFormatter{writer: w}
}

// SetOutput sets the output writer
func (c *CSVFormatter) SetOutput(w io.Writer) {
	c.writer = w
}

// Format writes a header record followed by one record per row, in result
// column order. Null values are written as empty fields.
func (c *CSVFormatter) Format(rs *query.RowSet) error {
	csvWriter := csv.NewWriter(c.writer)

	if len(rs.Rows) == 0 {
		csvWriter.Flush()
		if err := csvWriter.Error(); err != nil {
			return fmt.Errorf("failed to flush CSV writer: %w", err)
		}
		return nil
	}

	if err := csvWriter.Write(rs.Columns); err != nil {
		return err
	}

	for _, row := range rs.Rows {
		record := make([]string, len(row.Values))
		for i, v := range row.Values {
			record[i] = formatValue(v)
		}
		if err := csvWriter.Write(record); err != nil {
			return err
		}
	}

	// Flush and check for errors
	csvWriter.Flush()
	if err := csvWriter.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV writer: %w", err)
	}

	return nil
}

// formatValue converts a value to string for CSV output
func formatValue(v query.Value) string {
	if v.Kind() != query.KindText {
		return v.String()
	}

	s := v.Str()
	// Sanitize against CSV injection by prefixing characters that could
	// trigger formula execution in spreadsheet applications
	if len(s) > 0 {
		switch s[0] {
		case '=', '+', '-', '@', '\t', '\r', '\n', '|':
			return "'" + strings.ReplaceAll(s, "'", "''")
		}
	}
	return s
}
