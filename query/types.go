package query

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/segmentio/encoding/json"
)

// TokenType represents the type of a token
type TokenType int

const (
	// Keywords
	TokenSelect TokenType = iota
	TokenFrom
	TokenWhere

	// Operators
	TokenEqual        // =
	TokenNotEqual     // != or <>
	TokenLess         // <
	TokenGreater      // >
	TokenLessEqual    // <=
	TokenGreaterEqual // >=

	// Literals
	TokenString
	TokenWord

	// Delimiters
	TokenComma      // ,
	TokenLeftParen  // (
	TokenRightParen // )
	TokenStar       // *
	TokenSemicolon  // ;

	// Special
	TokenEOF
	TokenError
)

var tokenNames = map[TokenType]string{
	TokenSelect:       "SELECT",
	TokenFrom:         "FROM",
	TokenWhere:        "WHERE",
	TokenEqual:        "=",
	TokenNotEqual:     "!=",
	TokenLess:         "<",
	TokenGreater:      ">",
	TokenLessEqual:    "<=",
	TokenGreaterEqual: ">=",
	TokenString:       "string",
	TokenWord:         "word",
	TokenComma:        ",",
	TokenLeftParen:    "(",
	TokenRightParen:   ")",
	TokenStar:         "*",
	TokenSemicolon:    ";",
	TokenEOF:          "end of input",
	TokenError:        "invalid character",
}

// String returns the token type as it appears in messages
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// IsComparison reports whether t is one of the comparison operators
func (t TokenType) IsComparison() bool {
	switch t {
	case TokenEqual, TokenNotEqual, TokenLess, TokenGreater, TokenLessEqual, TokenGreaterEqual:
		return true
	}
	return false
}

// Token represents a lexical token.
//
// Pos and End are byte offsets into the statement so the parser can
// recover the raw text a token or token run was written as.
type Token struct {
	Type  TokenType
	Value string
	Pos   int
	End   int
}

// SelectKind distinguishes the forms a select item can take
type SelectKind int

const (
	SelectWildcard SelectKind = iota // *
	SelectColumn                     // plain column
	SelectCount                      // COUNT(*) or COUNT(col)
)

// SelectItem is one entry of the SELECT list.
//
// For SelectCount, Column is "*" or the counted column.
type SelectItem struct {
	Kind   SelectKind
	Column string
}

// String returns the canonical token: *, col, COUNT(*) or COUNT(col)
func (s SelectItem) String() string {
	switch s.Kind {
	case SelectWildcard:
		return "*"
	case SelectCount:
		return "COUNT(" + s.Column + ")"
	default:
		return s.Column
	}
}

// IsAggregate reports whether the item is an aggregate token
func (s SelectItem) IsAggregate() bool { return s.Kind == SelectCount }

// WhereClause is the single optional filter condition
type WhereClause struct {
	Column   string
	Operator TokenType
	Value    Value
}

// String renders the condition back as SQL
func (w WhereClause) String() string {
	lit := w.Value.String()
	if w.Value.Kind() == KindText {
		lit = "'" + lit + "'"
	}
	return fmt.Sprintf("%s %s %s", w.Column, w.Operator, lit)
}

// Query represents a parsed SELECT statement
type Query struct {
	Select    []SelectItem
	FromTable string       // table name with any file extension removed
	Extension string       // stripped extension, lower-cased, without the leading dot
	Where     *WhereClause // nil when the statement has no WHERE
}

// TableRef returns the reference a Source resolves
func (q *Query) TableRef() TableRef {
	return TableRef{Name: q.FromTable, Extension: q.Extension}
}

// String renders the query in canonical form
func (q *Query) String() string {
	items := make([]string, len(q.Select))
	for i, item := range q.Select {
		items[i] = item.String()
	}
	s := "SELECT " + strings.Join(items, ", ") + " FROM " + q.FromTable
	if q.Where != nil {
		s += " WHERE " + q.Where.String()
	}
	return s
}

// TableRef names a table to load
type TableRef struct {
	Name      string
	Extension string // "" lets the source pick any supported file
}

// String returns the table reference as written, with its extension
func (r TableRef) String() string {
	if r.Extension == "" {
		return r.Name
	}
	return r.Name + "." + r.Extension
}

// Source loads tables by name. Implementations must return an error wrapping
// ErrTableNotFound when the table does not exist.
type Source interface {
	Load(ref TableRef) (*Table, error)
}

// Row is an ordered mapping from column name to Value
type Row struct {
	Columns []string
	Values  []Value
}

// NewRow builds a row. columns and values must have the same length.
func NewRow(columns []string, values []Value) Row {
	return Row{Columns: columns, Values: values}
}

// Len returns the number of columns in the row
func (r Row) Len() int { return len(r.Columns) }

// Get returns the value stored under the exact column name
func (r Row) Get(column string) (Value, bool) {
	for i, c := range r.Columns {
		if c == column {
			return r.Values[i], true
		}
	}
	return Null(), false
}

// MarshalJSON encodes the row as an object with keys in column order
func (r Row) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range r.Columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(c)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := r.Values[i].MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Table is the loaded content of one data source
type Table struct {
	Name    string
	Columns []string
	Rows    []Row
}

// RowSet is the result of executing a query
type RowSet struct {
	Columns []string
	Rows    []Row
}

// Len returns the number of rows
func (rs *RowSet) Len() int { return len(rs.Rows) }
