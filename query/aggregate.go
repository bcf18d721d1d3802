package query

// CountColumn is the name of the single column an aggregate result carries
const CountColumn = "COUNT"

// validateSelectList enforces that an aggregate is the only select item
func validateSelectList(items []SelectItem) error {
	if len(items) == 0 {
		return execErrorf(ErrInvalidSyntax, "empty SELECT list")
	}
	for _, item := range items {
		if item.IsAggregate() && len(items) != 1 {
			return execErrorf(ErrMixedAggregate, "%v (e.g., SELECT COUNT(*) FROM table WHERE ...)", ErrMixedAggregate)
		}
	}
	return nil
}

// hasAggregate reports whether any select item is an aggregate token
func hasAggregate(items []SelectItem) bool {
	for _, item := range items {
		if item.IsAggregate() {
			return true
		}
	}
	return false
}

// evaluateCount computes COUNT(*) or COUNT(col) over rows.
//
// COUNT(*) counts every row. COUNT(col) skips Null values and empty text.
func evaluateCount(rows []Row, columns []string, item SelectItem) (*RowSet, error) {
	if item.Kind != SelectCount || item.Column == "" {
		return nil, execErrorf(ErrInvalidAggregate, "%v: %s", ErrInvalidAggregate, item)
	}

	count := int64(0)
	if item.Column == "*" {
		count = int64(len(rows))
	} else {
		i, ok := newColumnIndex(columns).resolve(item.Column)
		if !ok {
			return nil, execErrorf(ErrColumnNotFound, "column '%s' not found in table", item.Column)
		}
		for _, row := range rows {
			v := lookup(row, columns, i)
			if v.IsNull() || (v.Kind() == KindText && v.Str() == "") {
				continue
			}
			count++
		}
	}

	header := []string{CountColumn}
	return &RowSet{
		Columns: header,
		Rows:    []Row{NewRow(header, []Value{Integer(count)})},
	}, nil
}
