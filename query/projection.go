package query

// project builds the result rows for a non-aggregate select list.
//
// A lone * returns rows unchanged. Otherwise each output row holds the
// requested columns, in requested order, under the names as written in the
// query. A name requested twice appears once, at its first position. In a
// list of several items * is not a column and fails to resolve.
func project(rows []Row, table *Table, items []SelectItem) (*RowSet, error) {
	if len(items) == 1 && items[0].Kind == SelectWildcard {
		return &RowSet{Columns: table.Columns, Rows: rows}, nil
	}

	idx := newColumnIndex(table.Columns)
	names := make([]string, 0, len(items))
	positions := make([]int, 0, len(items))
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		switch item.Kind {
		case SelectWildcard:
			return nil, columnNotFound("*", table)
		case SelectColumn:
			i, ok := idx.resolve(item.Column)
			if !ok {
				return nil, columnNotFound(item.Column, table)
			}
			if seen[item.Column] {
				continue
			}
			seen[item.Column] = true
			names = append(names, item.Column)
			positions = append(positions, i)
		default:
			return nil, execErrorf(ErrMixedAggregate, "%v", ErrMixedAggregate)
		}
	}

	result := make([]Row, len(rows))
	for r, row := range rows {
		values := make([]Value, len(positions))
		for j, i := range positions {
			values[j] = lookup(row, table.Columns, i)
		}
		result[r] = NewRow(names, values)
	}

	return &RowSet{Columns: names, Rows: result}, nil
}
