package reader

import (
	"fmt"
	"sort"
	"strings"

	"github.com/segmentio/parquet-go"

	"github.com/vegasq/csvsql/query"
)

// ColumnInfo describes one column of a table.
//
// Text files carry no schema, so for them Type summarises the kinds the
// cells were inferred as: a single kind name, or "mixed(integer,text)" when
// cells of one column were typed differently. Parquet columns report their
// declared type and physical type.
type ColumnInfo struct {
	Name         string `json:"name"`
	Type         string `json:"type"`
	PhysicalType string `json:"physical_type,omitempty"`
	LogicalType  string `json:"logical_type,omitempty"`
	Nulls        int    `json:"nulls"`
}

// Describe returns the columns of a table
func (c *Catalog) Describe(ref query.TableRef) ([]ColumnInfo, error) {
	loc, err := c.Resolve(ref)
	if err != nil {
		return nil, err
	}

	table, err := c.Load(ref)
	if err != nil {
		return nil, err
	}
	infos := inferColumnInfo(table)

	if loc.Extension == extParquet {
		declared, err := parquetColumnInfo(loc.Path)
		if err != nil {
			return nil, err
		}
		for i := range infos {
			if d, ok := declared[infos[i].Name]; ok {
				infos[i].Type = d.Type
				infos[i].PhysicalType = d.PhysicalType
				infos[i].LogicalType = d.LogicalType
			}
		}
	}

	return infos, nil
}

// inferColumnInfo summarises the value kinds found in each column
func inferColumnInfo(table *query.Table) []ColumnInfo {
	infos := make([]ColumnInfo, len(table.Columns))
	kinds := make([]map[query.Kind]bool, len(table.Columns))
	for i, name := range table.Columns {
		infos[i].Name = name
		kinds[i] = make(map[query.Kind]bool)
	}

	for _, row := range table.Rows {
		for i := range table.Columns {
			if i >= len(row.Values) {
				infos[i].Nulls++
				continue
			}
			v := row.Values[i]
			if v.IsNull() {
				infos[i].Nulls++
				continue
			}
			kinds[i][v.Kind()] = true
		}
	}

	for i := range infos {
		infos[i].Type = kindSummary(kinds[i])
	}
	return infos
}

func kindSummary(kinds map[query.Kind]bool) string {
	if len(kinds) == 0 {
		return query.KindNull.String()
	}
	names := make([]string, 0, len(kinds))
	for k := range kinds {
		names = append(names, k.String())
	}
	sort.Strings(names)
	if len(names) == 1 {
		return names[0]
	}
	return "mixed(" + strings.Join(names, ",") + ")"
}

// parquetColumnInfo extracts declared types keyed by dotted column name
func parquetColumnInfo(path string) (map[string]ColumnInfo, error) {
	r, err := NewParquetReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer func() { _ = r.Close() }()

	infos := make(map[string]ColumnInfo)
	for _, field := range r.Schema().Fields() {
		collectFieldInfo(field, "", infos)
	}
	return infos, nil
}

// collectFieldInfo recursively records leaf fields. The prefix is used to
// build dot-notation names for nested fields.
func collectFieldInfo(field parquet.Field, prefix string, infos map[string]ColumnInfo) {
	name := field.Name()
	if prefix != "" {
		name = prefix + "." + name
	}

	if children := field.Fields(); len(children) > 0 {
		for _, child := range children {
			collectFieldInfo(child, name, infos)
		}
		return
	}

	infos[name] = ColumnInfo{
		Name:         name,
		Type:         userFriendlyType(field),
		PhysicalType: physicalType(field),
		LogicalType:  logicalType(field),
	}
}

// physicalType returns the physical type name of a Parquet field
func physicalType(field parquet.Field) string {
	if field.Type() == nil {
		return "GROUP"
	}

	switch field.Type().Kind() {
	case parquet.Boolean:
		return "BOOLEAN"
	case parquet.Int32:
		return "INT32"
	case parquet.Int64:
		return "INT64"
	case parquet.Int96:
		return "INT96"
	case parquet.Float:
		return "FLOAT"
	case parquet.Double:
		return "DOUBLE"
	case parquet.ByteArray:
		return "BYTE_ARRAY"
	case parquet.FixedLenByteArray:
		return "FIXED_LEN_BYTE_ARRAY"
	default:
		return "UNKNOWN"
	}
}

// logicalType returns the logical type name of a Parquet field
func logicalType(field parquet.Field) string {
	if field.Type() == nil {
		return ""
	}
	lt := field.Type().LogicalType()
	if lt == nil {
		return ""
	}
	return lt.String()
}

// userFriendlyType maps a Parquet field onto the query value kind its
// cells are loaded as.
func userFriendlyType(field parquet.Field) string {
	if field.Type() == nil {
		return "group"
	}
	switch field.Type().Kind() {
	case parquet.Int32, parquet.Int64:
		return query.KindInteger.String()
	case parquet.Float, parquet.Double:
		return query.KindFloat.String()
	default:
		return query.KindText.String()
	}
}
