package query

import (
	"strings"
)

const (
	syntaxHint = "Make sure it matches: SELECT ... FROM <table> [WHERE ...];"
	whereHint  = "Expected format: column op value (e.g. age > 30 or country = 'USA')."
)

// Parser parses SQL statements into a Query
type Parser struct {
	input  string
	tokens []Token
	pos    int
}

// NewParser creates a new parser over the tokens of input
func NewParser(input string, tokens []Token) *Parser {
	return &Parser{
		input:  input,
		tokens: tokens,
		pos:    0,
	}
}

// current returns the current token
func (p *Parser) current() Token {
	if p.pos >= len(p.tokens) {
		return Token{Type: TokenEOF, Pos: len(p.input), End: len(p.input)}
	}
	return p.tokens[p.pos]
}

// advance moves to the next token
func (p *Parser) advance() {
	p.pos++
}

// text returns the raw statement text covered by toks
func (p *Parser) text(toks []Token) string {
	if len(toks) == 0 {
		return ""
	}
	return p.input[toks[0].Pos:toks[len(toks)-1].End]
}

// Parse parses a SELECT statement.
//
// The returned error is always a *ParseError.
func Parse(query string) (*Query, error) {
	if err := ValidateQuery(query); err != nil {
		return nil, err
	}

	tokens := Tokenize(query)
	if err := ValidateTokens(tokens); err != nil {
		return nil, err
	}

	parser := NewParser(query, tokens)
	return parser.parseQuery()
}

// statement holds the token runs of each clause before they are validated
type statement struct {
	selectList []Token
	table      []Token
	where      []Token
	hasWhere   bool
}

// parseQuery parses: SELECT list FROM table [WHERE condition] [;]
func (p *Parser) parseQuery() (*Query, error) {
	stmt, err := p.parseStatement()
	if err != nil {
		return nil, err
	}

	items, err := p.parseSelectList(stmt.selectList)
	if err != nil {
		return nil, err
	}

	name, ext, err := SplitTableName(p.text(stmt.table))
	if err != nil {
		return nil, err
	}

	q := &Query{
		Select:    items,
		FromTable: name,
		Extension: ext,
	}

	if stmt.hasWhere {
		where, err := p.parseCondition(stmt.where)
		if err != nil {
			return nil, err
		}
		q.Where = where
	}

	return q, nil
}

// parseStatement splits the token stream into clauses. Only the overall
// shape is checked here; the clause contents are validated afterwards.
func (p *Parser) parseStatement() (*statement, error) {
	if p.current().Type != TokenSelect {
		return nil, syntaxError()
	}
	p.advance()

	stmt := &statement{}

	// Select list runs to the first FROM outside parentheses
	start := p.pos
	depth := 0
	for {
		tok := p.current()
		if tok.Type == TokenEOF {
			return nil, syntaxError()
		}
		if tok.Type == TokenFrom && depth == 0 {
			break
		}
		switch tok.Type {
		case TokenLeftParen:
			depth++
		case TokenRightParen:
			if depth > 0 {
				depth--
			}
		}
		p.advance()
	}
	stmt.selectList = p.tokens[start:p.pos]
	if len(stmt.selectList) == 0 {
		return nil, syntaxError()
	}
	p.advance() // FROM

	// Table reference is one run of adjacent tokens so that
	// "my.table" or "t(1)" is reported as a bad table name
	switch p.current().Type {
	case TokenEOF, TokenSemicolon, TokenWhere:
		return nil, syntaxError()
	}
	start = p.pos
	p.advance()
	for {
		tok := p.current()
		if tok.Type == TokenEOF || tok.Type == TokenSemicolon || tok.Pos != p.tokens[p.pos-1].End {
			break
		}
		p.advance()
	}
	stmt.table = p.tokens[start:p.pos]

	if p.current().Type == TokenWhere {
		p.advance()
		stmt.hasWhere = true
		start = p.pos
		end := len(p.tokens) - 1 // EOF
		if end > start && p.tokens[end-1].Type == TokenSemicolon {
			end--
		}
		stmt.where = p.tokens[start:end]
		p.pos = len(p.tokens) - 1
		return stmt, nil
	}

	if p.current().Type == TokenSemicolon {
		p.advance()
	}
	if p.current().Type != TokenEOF {
		return nil, syntaxError()
	}
	return stmt, nil
}

// parseSelectList splits the select list on commas outside parentheses
// and classifies each item.
func (p *Parser) parseSelectList(toks []Token) ([]SelectItem, error) {
	var items []SelectItem
	depth := 0
	start := 0
	for i, tok := range toks {
		switch tok.Type {
		case TokenLeftParen:
			depth++
		case TokenRightParen:
			if depth > 0 {
				depth--
			}
		case TokenComma:
			if depth == 0 {
				item, err := p.parseSelectItem(toks[start:i])
				if err != nil {
					return nil, err
				}
				items = append(items, item)
				start = i + 1
			}
		}
	}
	item, err := p.parseSelectItem(toks[start:])
	if err != nil {
		return nil, err
	}
	return append(items, item), nil
}

// parseSelectItem recognises *, COUNT(*), COUNT(col) and plain columns
func (p *Parser) parseSelectItem(toks []Token) (SelectItem, error) {
	if len(toks) == 1 && toks[0].Type == TokenStar {
		return SelectItem{Kind: SelectWildcard, Column: "*"}, nil
	}

	if col, ok := countArgument(toks); ok {
		return SelectItem{Kind: SelectCount, Column: col}, nil
	}

	raw := p.text(toks)
	if len(toks) != 1 || !IsIdentifier(raw) {
		return SelectItem{}, parseErrorf(ErrInvalidColumn, "%v: '%s'", ErrInvalidColumn, raw)
	}
	if err := ValidateColumnName(raw); err != nil {
		return SelectItem{}, err
	}
	return SelectItem{Kind: SelectColumn, Column: raw}, nil
}

// countArgument matches COUNT ( * | identifier ) in any case and spacing
func countArgument(toks []Token) (string, bool) {
	if len(toks) != 4 {
		return "", false
	}
	if toks[0].Type != TokenWord || !strings.EqualFold(toks[0].Value, "COUNT") {
		return "", false
	}
	if toks[1].Type != TokenLeftParen || toks[3].Type != TokenRightParen {
		return "", false
	}
	arg := toks[2]
	switch {
	case arg.Type == TokenStar:
		return "*", true
	case isNameToken(arg) && IsIdentifier(arg.Value) && len(arg.Value) <= MaxColumnNameLength:
		return arg.Value, true
	}
	return "", false
}

// parseCondition parses: column comparator literal.
//
// The literal is everything after the comparator, so unquoted values may
// contain spaces.
func (p *Parser) parseCondition(toks []Token) (*WhereClause, error) {
	if len(toks) < 3 {
		return nil, whereError()
	}

	column := toks[0]
	if !isNameToken(column) || !isWord(column.Value) {
		return nil, whereError()
	}
	if len(column.Value) > MaxColumnNameLength {
		return nil, parseErrorf(ErrColumnNameTooLong, "%v: %d chars (max %d)", ErrColumnNameTooLong, len(column.Value), MaxColumnNameLength)
	}

	operator := toks[1]
	if !operator.Type.IsComparison() {
		return nil, whereError()
	}

	raw := strings.TrimSpace(p.text(toks[2:]))
	if raw == "" {
		return nil, whereError()
	}

	return &WhereClause{
		Column:   column.Value,
		Operator: operator.Type,
		Value:    ParseLiteral(raw),
	}, nil
}

// isNameToken reports whether tok can name a column. Keywords count, so a
// column called "from" or "where" stays addressable.
func isNameToken(tok Token) bool {
	switch tok.Type {
	case TokenWord, TokenSelect, TokenFrom, TokenWhere:
		return true
	}
	return false
}

func syntaxError() *ParseError {
	return parseErrorf(ErrInvalidSyntax, "%v. %s", ErrInvalidSyntax, syntaxHint)
}

func whereError() *ParseError {
	return parseErrorf(ErrInvalidWhere, "%v. %s", ErrInvalidWhere, whereHint)
}
