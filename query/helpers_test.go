package query

import (
	"fmt"
)

// newTable builds a table whose rows share the header slice, as the readers do
func newTable(name string, columns []string, rows ...[]Value) *Table {
	t := &Table{Name: name, Columns: columns}
	for _, values := range rows {
		t.Rows = append(t.Rows, NewRow(columns, values))
	}
	return t
}

// memSource serves tables from memory
type memSource struct {
	tables map[string]*Table
	loads  []TableRef
	err    error
}

func newMemSource(tables ...*Table) *memSource {
	src := &memSource{tables: make(map[string]*Table)}
	for _, t := range tables {
		src.tables[t.Name] = t
	}
	return src
}

func (m *memSource) Load(ref TableRef) (*Table, error) {
	m.loads = append(m.loads, ref)
	if m.err != nil {
		return nil, m.err
	}
	t, ok := m.tables[ref.Name]
	if !ok {
		return nil, fmt.Errorf("%w: %s.csv", ErrTableNotFound, ref.Name)
	}
	return t, nil
}

// people is a table with heterogeneous cells in the age column
func people() *Table {
	return newTable("people", []string{"name", "age", "City"},
		[]Value{Text("Ann"), Integer(30), Text("Lagos")},
		[]Value{Text("Bob"), Null(), Text("Accra")},
		[]Value{Text("Cid"), Float(41.5), Text("Lagos")},
		[]Value{Text("Dee"), Integer(19), Null()},
		[]Value{Text(""), Integer(25), Text("Paris")},
	)
}

func columnValues(rs *RowSet, column string) []Value {
	var out []Value
	for _, r := range rs.Rows {
		v, _ := r.Get(column)
		out = append(out, v)
	}
	return out
}
