package reader

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/segmentio/parquet-go"

	"github.com/vegasq/csvsql/query"
)

// parquetBatchSize is the number of rows read from a parquet file per call
const parquetBatchSize = 128

// ParquetReader reads parquet files into tables.
//
// It maintains both an OS file handle and a parquet file handle to enable
// proper resource cleanup.
type ParquetReader struct {
	file   *os.File
	pqFile *parquet.File
}

// NewParquetReader opens path and validates it as a parquet file.
//
// Example:
//
//	r, err := NewParquetReader("data/people.parquet")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
func NewParquetReader(path string) (*ParquetReader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	stat, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	pqFile, err := parquet.OpenFile(file, stat.Size())
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}

	return &ParquetReader{
		file:   file,
		pqFile: pqFile,
	}, nil
}

// Columns returns the leaf column names in file order. Nested fields use
// dot notation (e.g., "address.street").
func (r *ParquetReader) Columns() []string {
	paths := r.pqFile.Schema().Columns()
	columns := make([]string, len(paths))
	for i, path := range paths {
		columns[i] = strings.Join(path, ".")
	}
	return columns
}

// ReadAll reads every row of the file into a table named name.
//
// Values keep their parquet types: integer columns become Integer, floating
// point columns Float, byte arrays Text and booleans the Text "true" or
// "false". Null values stay Null. For repeated columns the first value is kept.
func (r *ParquetReader) ReadAll(name string) (*query.Table, error) {
	columns := r.Columns()
	table := &query.Table{Name: name, Columns: columns, Rows: []query.Row{}}

	reader := parquet.NewReader(r.pqFile)
	defer func() { _ = reader.Close() }()

	buf := make([]parquet.Row, parquetBatchSize)
	for {
		n, err := reader.ReadRows(buf)
		for _, row := range buf[:n] {
			table.Rows = append(table.Rows, convertParquetRow(row, columns))
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to read row: %w", err)
		}
		if n == 0 {
			break
		}
	}

	return table, nil
}

// Schema returns the parquet file schema
func (r *ParquetReader) Schema() *parquet.Schema {
	return r.pqFile.Schema()
}

// Close closes the underlying file. It is safe to call Close multiple times.
func (r *ParquetReader) Close() error {
	if r.file != nil {
		err := r.file.Close()
		r.file = nil
		return err
	}
	return nil
}

func convertParquetRow(row parquet.Row, columns []string) query.Row {
	values := make([]query.Value, len(columns))
	set := make([]bool, len(columns))
	for _, v := range row {
		col := v.Column()
		if col < 0 || col >= len(columns) || set[col] {
			continue
		}
		values[col] = parquetValue(v)
		set[col] = true
	}
	return query.NewRow(columns, values)
}

// parquetValue maps a physical parquet value onto a query value
func parquetValue(v parquet.Value) query.Value {
	if v.IsNull() {
		return query.Null()
	}
	switch v.Kind() {
	case parquet.Boolean:
		return query.Text(strconv.FormatBool(v.Boolean()))
	case parquet.Int32:
		return query.Integer(int64(v.Int32()))
	case parquet.Int64:
		return query.Integer(v.Int64())
	case parquet.Float:
		return query.Float(float64(v.Float()))
	case parquet.Double:
		return query.Float(v.Double())
	case parquet.ByteArray, parquet.FixedLenByteArray:
		return query.Text(string(v.ByteArray()))
	default:
		return query.Text(v.String())
	}
}
