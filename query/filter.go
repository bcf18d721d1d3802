package query

import (
	"math"
	"strings"
)

// columnIndex resolves column names against a table header: exact match
// first, then case-insensitive. WHERE and projection both resolve through it.
// When several headers differ only in case, the case-insensitive match is the
// last of them.
type columnIndex struct {
	exact map[string]int
	lower map[string]int
}

func newColumnIndex(columns []string) *columnIndex {
	idx := &columnIndex{
		exact: make(map[string]int, len(columns)),
		lower: make(map[string]int, len(columns)),
	}
	for i, c := range columns {
		if _, dup := idx.exact[c]; !dup {
			idx.exact[c] = i
		}
		idx.lower[strings.ToLower(c)] = i
	}
	return idx
}

// resolve returns the header position of name
func (idx *columnIndex) resolve(name string) (int, bool) {
	if i, ok := idx.exact[name]; ok {
		return i, true
	}
	i, ok := idx.lower[strings.ToLower(name)]
	return i, ok
}

// lookup returns the row's value for the resolved header column.
// Rows carry the table header, so a position lookup is normally enough;
// rows built elsewhere fall back to a name lookup.
func lookup(row Row, columns []string, i int) Value {
	if i < len(row.Columns) && row.Columns[i] == columns[i] {
		return row.Values[i]
	}
	v, _ := row.Get(columns[i])
	return v
}

// compare evaluates left <op> right for a row value and a literal.
//
// A Null row value never matches. Two numbers compare numerically and two
// texts compare with the collator; a number and a text cannot be compared.
func compare(left Value, operator TokenType, right Value, collator Collator) (bool, error) {
	if left.IsNull() || right.IsNull() {
		return false, nil
	}

	if left.IsNumeric() && right.IsNumeric() {
		return compareNumbers(left, operator, right), nil
	}

	if left.IsNumeric() != right.IsNumeric() {
		return false, execErrorf(ErrUnsupportedComparison, "%v: %s and %s (%s %s %s)",
			ErrUnsupportedComparison, left.Kind(), right.Kind(), left, operator, right)
	}

	return compareOrdering(collator.Compare(left.String(), right.String()), operator), nil
}

// compareNumbers compares two numbers exactly. Integers compare as int64,
// floats as float64, and an Integer against a Float without rounding the
// integer. NaN only satisfies !=.
func compareNumbers(left Value, operator TokenType, right Value) bool {
	switch {
	case left.Kind() == KindInteger && right.Kind() == KindInteger:
		return compareOrdering(compareInts(left.Int(), right.Int()), operator)
	case left.Kind() == KindFloat && right.Kind() == KindFloat:
		a, b := left.Float64(), right.Float64()
		if math.IsNaN(a) || math.IsNaN(b) {
			return operator == TokenNotEqual
		}
		return compareOrdering(compareFloats(a, b), operator)
	case left.Kind() == KindInteger:
		if math.IsNaN(right.Float64()) {
			return operator == TokenNotEqual
		}
		return compareOrdering(compareIntFloat(left.Int(), right.Float64()), operator)
	default:
		if math.IsNaN(left.Float64()) {
			return operator == TokenNotEqual
		}
		return compareOrdering(-compareIntFloat(right.Int(), left.Float64()), operator)
	}
}

func compareInts(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareFloats(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// int64Bound is 2^63, the first float64 above every int64
const int64Bound = float64(1 << 63)

// compareIntFloat orders an int64 against a non-NaN float64 exactly
func compareIntFloat(i int64, f float64) int {
	switch {
	case f >= int64Bound:
		return -1
	case f < -int64Bound:
		return 1
	}
	floor := math.Floor(f)
	n := int64(floor)
	switch {
	case i < n:
		return -1
	case i > n:
		return 1
	case f > floor:
		return -1
	default:
		return 0
	}
}

// compareOrdering applies operator to a three-way comparison result
func compareOrdering(cmp int, operator TokenType) bool {
	switch operator {
	case TokenEqual:
		return cmp == 0
	case TokenNotEqual:
		return cmp != 0
	case TokenLess:
		return cmp < 0
	case TokenGreater:
		return cmp > 0
	case TokenLessEqual:
		return cmp <= 0
	case TokenGreaterEqual:
		return cmp >= 0
	default:
		return false
	}
}

// ApplyFilter returns the rows of table satisfying where, in order.
// A nil where returns all rows.
func ApplyFilter(table *Table, where *WhereClause, collator Collator) ([]Row, error) {
	if where == nil {
		return table.Rows, nil
	}
	if collator == nil {
		collator = BinaryCollator{}
	}

	i, ok := newColumnIndex(table.Columns).resolve(where.Column)
	if !ok {
		return nil, columnNotFound(where.Column, table)
	}

	filtered := make([]Row, 0)
	for _, row := range table.Rows {
		match, err := compare(lookup(row, table.Columns, i), where.Operator, where.Value, collator)
		if err != nil {
			return nil, err
		}
		if match {
			filtered = append(filtered, row)
		}
	}

	return filtered, nil
}

func columnNotFound(column string, table *Table) *ExecutionError {
	return execErrorf(ErrColumnNotFound, "column '%s' not found in table '%s' (available: %s)",
		column, table.Name, strings.Join(table.Columns, ", "))
}
