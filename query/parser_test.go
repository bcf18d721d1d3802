package query

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestParse_SelectList(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []SelectItem
	}{
		{
			name:  "wildcard",
			query: "SELECT * FROM people",
			want:  []SelectItem{{Kind: SelectWildcard, Column: "*"}},
		},
		{
			name:  "columns in order",
			query: "select name, age ,city from people;",
			want: []SelectItem{
				{Kind: SelectColumn, Column: "name"},
				{Kind: SelectColumn, Column: "age"},
				{Kind: SelectColumn, Column: "city"},
			},
		},
		{
			name:  "count star",
			query: "SELECT COUNT(*) FROM people",
			want:  []SelectItem{{Kind: SelectCount, Column: "*"}},
		},
		{
			name:  "count column with spaces",
			query: "SELECT COUNT( name ) FROM people",
			want:  []SelectItem{{Kind: SelectCount, Column: "name"}},
		},
		{
			name:  "count lower case",
			query: "SELECT count (age) FROM people",
			want:  []SelectItem{{Kind: SelectCount, Column: "age"}},
		},
		{
			name:  "count mixed with column parses",
			query: "SELECT COUNT(*), name FROM people",
			want: []SelectItem{
				{Kind: SelectCount, Column: "*"},
				{Kind: SelectColumn, Column: "name"},
			},
		},
		{
			name:  "count of keyword column",
			query: "SELECT COUNT(from) FROM t",
			want:  []SelectItem{{Kind: SelectCount, Column: "from"}},
		},
		{
			name:  "count of keyword column upper case",
			query: "SELECT count( WHERE ) FROM t WHERE a = 1",
			want:  []SelectItem{{Kind: SelectCount, Column: "WHERE"}},
		},
		{
			name:  "underscore identifiers",
			query: "SELECT _id, first_name2 FROM people",
			want: []SelectItem{
				{Kind: SelectColumn, Column: "_id"},
				{Kind: SelectColumn, Column: "first_name2"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := Parse(tt.query)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if !reflect.DeepEqual(q.Select, tt.want) {
				t.Errorf("Parse() select = %v, want %v", q.Select, tt.want)
			}
		})
	}
}

func TestParse_CountNormalization(t *testing.T) {
	for _, stmt := range []string{
		"SELECT COUNT( name ) FROM t",
		"SELECT count(name) FROM t",
		"SELECT Count (name) FROM t",
	} {
		q, err := Parse(stmt)
		if err != nil {
			t.Fatalf("Parse(%q) error = %v", stmt, err)
		}
		if got := q.Select[0].String(); got != "COUNT(name)" {
			t.Errorf("Parse(%q) canonical token = %q, want COUNT(name)", stmt, got)
		}
	}

	q, err := Parse("SELECT COUNT(NAME) FROM t")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got := q.Select[0].String(); got != "COUNT(NAME)" {
		t.Errorf("canonical token = %q, want COUNT(NAME)", got)
	}
	if !strings.EqualFold(q.Select[0].String(), "COUNT(name)") {
		t.Errorf("COUNT(NAME) should match COUNT(name) ignoring case")
	}
}

func TestParse_Table(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		wantName string
		wantExt  string
	}{
		{"plain", "SELECT * FROM people", "people", ""},
		{"csv suffix", "SELECT * FROM people.csv", "people", "csv"},
		{"upper case suffix", "SELECT * FROM People.CSV;", "People", "csv"},
		{"tsv suffix", "SELECT * FROM sales.tsv", "sales", "tsv"},
		{"compressed", "SELECT * FROM logs.csv.gz", "logs", "csv.gz"},
		{"parquet", "SELECT * FROM events.parquet", "events", "parquet"},
		{"dashes and digits", "SELECT * FROM sales-2024_q1", "sales-2024_q1", ""},
		{"semicolon attached", "SELECT * FROM people;", "people", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := Parse(tt.query)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if q.FromTable != tt.wantName {
				t.Errorf("Parse() table = %q, want %q", q.FromTable, tt.wantName)
			}
			if q.Extension != tt.wantExt {
				t.Errorf("Parse() extension = %q, want %q", q.Extension, tt.wantExt)
			}
		})
	}
}

func TestParse_Where(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		column string
		op     TokenType
		value  Value
	}{
		{"integer", "SELECT * FROM t WHERE age > 30", "age", TokenGreater, Integer(30)},
		{"negative integer", "SELECT * FROM t WHERE delta < -5", "delta", TokenLess, Integer(-5)},
		{"float", "SELECT * FROM t WHERE score >= 3.5", "score", TokenGreaterEqual, Float(3.5)},
		{"single quoted", "SELECT * FROM t WHERE country = 'USA'", "country", TokenEqual, Text("USA")},
		{"double quoted", `SELECT * FROM t WHERE city = "New York";`, "city", TokenEqual, Text("New York")},
		{"quoted number stays text", "SELECT * FROM t WHERE zip = '01234'", "zip", TokenEqual, Text("01234")},
		{"bare word", "SELECT * FROM t WHERE status != active", "status", TokenNotEqual, Text("active")},
		{"bare words with space", "SELECT * FROM t WHERE name = John Smith", "name", TokenEqual, Text("John Smith")},
		{"angle not equal normalized", "SELECT * FROM t WHERE a <> 1", "a", TokenNotEqual, Integer(1)},
		{"no spaces", "SELECT * FROM t WHERE a<=2", "a", TokenLessEqual, Integer(2)},
		{"bad float is text", "SELECT * FROM t WHERE v = 1.2.3", "v", TokenEqual, Text("1.2.3")},
		{"empty quotes", "SELECT * FROM t WHERE v = ''", "v", TokenEqual, Text("")},
		{"no escape processing", `SELECT * FROM t WHERE v = 'a\'`, "v", TokenEqual, Text(`a\`)},
		{"unterminated quote is text", "SELECT * FROM t WHERE v = 'abc", "v", TokenEqual, Text("'abc")},
		{"semicolon inside quotes", "SELECT * FROM t WHERE v = 'a;b';", "v", TokenEqual, Text("a;b")},
		{"digit leading column", "SELECT * FROM t WHERE 2024 = 1", "2024", TokenEqual, Integer(1)},
		{"keyword column where", "SELECT * FROM t WHERE where = 1", "where", TokenEqual, Integer(1)},
		{"keyword column from", "SELECT * FROM t WHERE FROM != x", "FROM", TokenNotEqual, Text("x")},
		{"keyword column select", "SELECT * FROM t WHERE select >= 2.5;", "select", TokenGreaterEqual, Float(2.5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := Parse(tt.query)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if q.Where == nil {
				t.Fatal("Parse() where = nil")
			}
			if q.Where.Column != tt.column {
				t.Errorf("column = %q, want %q", q.Where.Column, tt.column)
			}
			if q.Where.Operator != tt.op {
				t.Errorf("operator = %v, want %v", q.Where.Operator, tt.op)
			}
			if q.Where.Value != tt.value {
				t.Errorf("value = %#v, want %#v", q.Where.Value, tt.value)
			}
		})
	}
}

func TestParse_NoWhere(t *testing.T) {
	q, err := Parse("  SELECT name FROM people  ")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if q.Where != nil {
		t.Errorf("Parse() where = %v, want nil", q.Where)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		wantErr error
	}{
		{"empty", "", ErrInvalidSyntax},
		{"missing SELECT", "name FROM people", ErrInvalidSyntax},
		{"missing FROM", "SELECT name people", ErrInvalidSyntax},
		{"missing select list", "SELECT FROM people", ErrInvalidSyntax},
		{"missing table", "SELECT * FROM", ErrInvalidSyntax},
		{"missing table before where", "SELECT * FROM WHERE a = 1", ErrInvalidSyntax},
		{"trailing tokens", "SELECT * FROM people ORDER BY name", ErrInvalidSyntax},
		{"two statements", "SELECT * FROM a; SELECT * FROM b", ErrInvalidSyntax},
		{"double semicolon", "SELECT * FROM people;;", ErrInvalidSyntax},
		{"column with dash", "SELECT first-name FROM people", ErrInvalidColumn},
		{"column leading digit", "SELECT 1abc FROM people", ErrInvalidColumn},
		{"qualified column", "SELECT p.name FROM people", ErrInvalidColumn},
		{"empty item", "SELECT name,,age FROM people", ErrInvalidColumn},
		{"trailing comma", "SELECT name, FROM people", ErrInvalidColumn},
		{"two words", "SELECT name age FROM people", ErrInvalidColumn},
		{"function other than count", "SELECT SUM(age) FROM people", ErrInvalidColumn},
		{"count of two columns", "SELECT COUNT(a, b) FROM people", ErrInvalidColumn},
		{"count of expression", "SELECT COUNT(1abc) FROM people", ErrInvalidColumn},
		{"table with path", "SELECT * FROM data/people", ErrInvalidTable},
		{"table with other extension", "SELECT * FROM people.txt", ErrInvalidTable},
		{"table with parens", "SELECT * FROM t(1)", ErrInvalidTable},
		{"quoted table", `SELECT * FROM "people"`, ErrInvalidTable},
		{"only extension", "SELECT * FROM .csv", ErrInvalidTable},
		{"where without condition", "SELECT * FROM t WHERE", ErrInvalidWhere},
		{"where without value", "SELECT * FROM t WHERE age >", ErrInvalidWhere},
		{"where without operator", "SELECT * FROM t WHERE age 30", ErrInvalidWhere},
		{"where without column", "SELECT * FROM t WHERE > 30", ErrInvalidWhere},
		{"where bang operator", "SELECT * FROM t WHERE age ! 30", ErrInvalidWhere},
		{"where quoted column", "SELECT * FROM t WHERE 'age' = 30", ErrInvalidWhere},
		{"where semicolon only", "SELECT * FROM t WHERE ;", ErrInvalidWhere},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := Parse(tt.query)
			if err == nil {
				t.Fatalf("Parse() expected error, got %v", q)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Parse() error = %v, want %v", err, tt.wantErr)
			}
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Errorf("Parse() error type = %T, want *ParseError", err)
			}
		})
	}
}

func TestParse_ErrorMessages(t *testing.T) {
	_, err := Parse("SELECT first-name FROM people")
	if err == nil || err.Error() != "invalid column token in SELECT: 'first-name'" {
		t.Errorf("unexpected message: %v", err)
	}

	_, err = Parse("SELECT * FROM people.txt")
	if err == nil || err.Error() != "invalid table name: 'people.txt'" {
		t.Errorf("unexpected message: %v", err)
	}

	_, err = Parse("SELECT * FROM t WHERE age")
	if err == nil || !strings.Contains(err.Error(), "Expected format: column op value") {
		t.Errorf("WHERE error should name the expected shape: %v", err)
	}
}

func TestParse_Limits(t *testing.T) {
	long := "SELECT * FROM t WHERE a = '" + strings.Repeat("x", MaxQueryLength) + "'"
	if _, err := Parse(long); !errors.Is(err, ErrQueryTooLong) {
		t.Errorf("Parse() error = %v, want ErrQueryTooLong", err)
	}

	many := "SELECT " + strings.Repeat("a, ", MaxTokens) + "a FROM t"
	if _, err := Parse(many); !errors.Is(err, ErrTooManyTokens) {
		t.Errorf("Parse() error = %v, want ErrTooManyTokens", err)
	}

	wide := "SELECT " + strings.Repeat("c", MaxColumnNameLength+1) + " FROM t"
	if _, err := Parse(wide); !errors.Is(err, ErrColumnNameTooLong) {
		t.Errorf("Parse() error = %v, want ErrColumnNameTooLong", err)
	}
}

func TestParse_Deterministic(t *testing.T) {
	stmt := "SELECT name, COUNT ( * ) FROM people.csv WHERE age >= 21.5;"
	first, err := Parse(stmt)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := Parse(stmt)
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("Parse() not deterministic: %v vs %v", first, again)
		}
	}
}

func TestQuery_String(t *testing.T) {
	q, err := Parse("select name, count(*) from people.csv where city = Lagos")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	want := "SELECT name, COUNT(*) FROM people WHERE city = 'Lagos'"
	if got := q.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
