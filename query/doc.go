// Package query parses and executes single-table SELECT statements over
// delimited text tables.
//
// The supported language is deliberately small:
//
//	SELECT <*|col[, col...]|COUNT(*)|COUNT(col)> FROM <table>[.csv] [WHERE col op value];
//
// where op is one of =, !=, <>, >, <, >=, <=. There is no AND/OR, no JOIN,
// no GROUP BY, ORDER BY or LIMIT.
//
// # Basic Usage
//
//	q, err := query.Parse("SELECT name FROM people WHERE age > 30;")
//	if err != nil {
//	    log.Fatal(err) // *query.ParseError
//	}
//
//	rs, err := query.Execute(q, reader.NewCatalog("sample_data"))
//	if err != nil {
//	    log.Fatal(err) // *query.ExecutionError
//	}
//
//	for _, row := range rs.Rows {
//	    fmt.Println(row.Values)
//	}
//
// # Values
//
// Every cell is typed on its own when the table is loaded: an empty cell is
// Null, digits without a decimal point are an Integer, digits with one are a
// Float and anything else is Text. Two rows can therefore hold different kinds
// for the same column.
//
// WHERE literals follow the same rule, except that quoted literals are always
// Text.
//
// # Comparison Rules
//
//   - a Null row value never satisfies a condition
//   - Integer and Float compare numerically
//   - Text and Text compare byte-wise and case-sensitively (see Collator)
//   - a number compared with Text is an error (ErrUnsupportedComparison)
//
// # Column Names
//
// Column references in WHERE and SELECT resolve by exact name first and
// case-insensitively second. Projected columns keep the spelling used in the
// query.
//
// # Errors
//
// Parse only returns *ParseError and Execute only returns *ExecutionError.
// Both wrap a sentinel such as ErrInvalidWhere or ErrColumnNotFound for use
// with errors.Is.
package query
