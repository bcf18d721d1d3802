package reader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vegasq/csvsql/query"
)

// CSVOptions controls how delimited text is turned into a table
type CSVOptions struct {
	Name      string       // table name recorded on the result
	Delimiter rune         // field separator; zero means ','
	Encoding  string       // source character encoding; "" means UTF-8
	Logger    *slog.Logger // receives warnings about malformed records
}

// ReadCSV loads delimited text with a header record into a table.
//
// Every cell is typed independently with query.InferValue. Records shorter
// than the header are padded with Null; surplus fields are dropped. When a
// header name repeats, the column keeps its first position and takes the
// value of the last field with that name.
func ReadCSV(r io.Reader, opts CSVOptions) (*query.Table, error) {
	text, err := decodeText(r, opts.Encoding)
	if err != nil {
		return nil, err
	}

	cr := csv.NewReader(text)
	if opts.Delimiter != 0 {
		cr.Comma = opts.Delimiter
	}
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	table := &query.Table{Name: opts.Name, Columns: []string{}, Rows: []query.Row{}}

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return table, nil
		}
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	columns, positions := headerLayout(header)
	table.Columns = columns

	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	for {
		record, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to read record %d: %w", len(table.Rows)+1, err)
		}

		if len(record) > len(header) {
			line, _ := cr.FieldPos(0)
			log.Warn("record has more fields than header; extra fields dropped",
				"table", opts.Name, "line", line, "fields", len(record), "header", len(header))
		}

		values := make([]query.Value, len(columns))
		for i, pos := range positions {
			if pos < len(record) {
				values[i] = query.InferValue(record[pos])
			}
		}
		table.Rows = append(table.Rows, query.NewRow(columns, values))
	}

	return table, nil
}

// headerLayout returns the unique column names in first-seen order and, for
// each, the record position its value is read from.
func headerLayout(header []string) ([]string, []int) {
	columns := make([]string, 0, len(header))
	positions := make([]int, 0, len(header))
	seen := make(map[string]int, len(header))

	for pos, raw := range header {
		name := strings.TrimSpace(raw)
		if i, dup := seen[name]; dup {
			positions[i] = pos
			continue
		}
		seen[name] = len(columns)
		columns = append(columns, name)
		positions = append(positions, pos)
	}

	return columns, positions
}
