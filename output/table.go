package output

import (
	"fmt"
	"io"

	"github.com/mattn/go-runewidth"
	"github.com/olekukonko/tablewriter"

	"github.com/vegasq/csvsql/query"
)

// NullText is how the table formatter shows Null values
const NullText = "NULL"

// TableFormatter renders rows as an aligned console table
type TableFormatter struct {
	writer   io.Writer
	maxWidth int
}

// NewTableFormatter creates a new table formatter
func NewTableFormatter(w io.Writer) *TableFormatter {
	return &TableFormatter{writer: w}
}

// SetOutput sets the output writer
func (t *TableFormatter) SetOutput(w io.Writer) {
	t.writer = w
}

// SetMaxWidth truncates cells wider than width display columns.
// Zero disables truncation.
func (t *TableFormatter) SetMaxWidth(width int) {
	t.maxWidth = width
}

// Format writes the result as a table, or "(no rows)" when it is empty
func (t *TableFormatter) Format(rs *query.RowSet) error {
	if len(rs.Rows) == 0 {
		_, err := fmt.Fprintln(t.writer, "(no rows)")
		return err
	}

	table := tablewriter.NewWriter(t.writer)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeader(t.cells(rs.Columns))

	for _, row := range rs.Rows {
		record := make([]string, len(row.Values))
		for i, v := range row.Values {
			record[i] = displayValue(v)
		}
		table.Append(t.cells(record))
	}

	table.Render()
	_, err := fmt.Fprintf(t.writer, "(%d %s)\n", len(rs.Rows), plural(len(rs.Rows), "row", "rows"))
	return err
}

func (t *TableFormatter) cells(values []string) []string {
	if t.maxWidth <= 0 {
		return values
	}
	out := make([]string, len(values))
	for i, s := range values {
		if runewidth.StringWidth(s) > t.maxWidth {
			s = runewidth.Truncate(s, t.maxWidth, "...")
		}
		out[i] = s
	}
	return out
}

func displayValue(v query.Value) string {
	if v.IsNull() {
		return NullText
	}
	return v.String()
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
