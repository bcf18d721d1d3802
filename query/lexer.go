package query

import (
	"strings"
)

// Lexer tokenizes SQL statements.
//
// Anything that is not whitespace, a quote, an operator or a delimiter is
// collected into a word token; the parser decides whether a word is a valid
// identifier, table name or literal.
type Lexer struct {
	input string
	pos   int // offset of ch
	next  int // offset after ch
	ch    byte
}

// NewLexer creates a new lexer
func NewLexer(input string) *Lexer {
	l := &Lexer{input: input}
	l.readChar()
	return l
}

// readChar reads the next character
func (l *Lexer) readChar() {
	l.pos = l.next
	if l.next >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.next]
	}
	l.next++
}

// peekChar looks at the next character without advancing
func (l *Lexer) peekChar() byte {
	if l.next >= len(l.input) {
		return 0
	}
	return l.input[l.next]
}

// skipWhitespace skips whitespace characters
func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.readChar()
	}
}

// readString reads a quoted string. Backslashes have no special meaning.
func (l *Lexer) readString(quote byte) (string, bool) {
	l.readChar() // skip opening quote
	start := l.pos
	for l.ch != quote && l.pos < len(l.input) {
		l.readChar()
	}
	value := l.input[start:l.pos]
	if l.ch != quote {
		return value, false
	}
	l.readChar() // skip closing quote
	return value, true
}

// readWord reads a run of word characters
func (l *Lexer) readWord() string {
	start := l.pos
	for l.pos < len(l.input) && isWordChar(l.ch) {
		l.readChar()
	}
	return l.input[start:l.pos]
}

func isWordChar(ch byte) bool {
	switch ch {
	case ' ', '\t', '\n', '\r', '\'', '"', ',', '(', ')', '*', ';', '=', '!', '<', '>':
		return false
	}
	return true
}

// NextToken returns the next token
func (l *Lexer) NextToken() Token {
	l.skipWhitespace()

	start := l.pos
	var tok Token

	if l.pos >= len(l.input) {
		return Token{Type: TokenEOF, Pos: len(l.input), End: len(l.input)}
	}

	switch l.ch {
	case '=':
		tok = Token{Type: TokenEqual, Value: "="}
		l.readChar()
	case '!':
		if l.peekChar() == '=' {
			l.readChar()
			tok = Token{Type: TokenNotEqual, Value: "!="}
			l.readChar()
		} else {
			tok = Token{Type: TokenError, Value: "!"}
			l.readChar()
		}
	case '<':
		switch l.peekChar() {
		case '=':
			l.readChar()
			tok = Token{Type: TokenLessEqual, Value: "<="}
			l.readChar()
		case '>':
			// <> is an alias of !=
			l.readChar()
			tok = Token{Type: TokenNotEqual, Value: "<>"}
			l.readChar()
		default:
			tok = Token{Type: TokenLess, Value: "<"}
			l.readChar()
		}
	case '>':
		if l.peekChar() == '=' {
			l.readChar()
			tok = Token{Type: TokenGreaterEqual, Value: ">="}
			l.readChar()
		} else {
			tok = Token{Type: TokenGreater, Value: ">"}
			l.readChar()
		}
	case '\'', '"':
		value, closed := l.readString(l.ch)
		if closed {
			tok = Token{Type: TokenString, Value: value}
		} else {
			tok = Token{Type: TokenError, Value: value}
		}
	case ',':
		tok = Token{Type: TokenComma, Value: ","}
		l.readChar()
	case '(':
		tok = Token{Type: TokenLeftParen, Value: "("}
		l.readChar()
	case ')':
		tok = Token{Type: TokenRightParen, Value: ")"}
		l.readChar()
	case '*':
		tok = Token{Type: TokenStar, Value: "*"}
		l.readChar()
	case ';':
		tok = Token{Type: TokenSemicolon, Value: ";"}
		l.readChar()
	default:
		value := l.readWord()
		tok = Token{Type: wordType(value), Value: value}
	}

	tok.Pos = start
	tok.End = l.pos
	return tok
}

var keywords = map[string]TokenType{
	"SELECT": TokenSelect,
	"FROM":   TokenFrom,
	"WHERE":  TokenWhere,
}

// wordType determines if a word is a keyword
func wordType(word string) TokenType {
	if tokType, ok := keywords[strings.ToUpper(word)]; ok {
		return tokType
	}
	return TokenWord
}

// Tokenize returns all tokens from the input, ending with TokenEOF.
// Lexing continues past TokenError so the parser can quote the offending text.
func Tokenize(input string) []Token {
	lexer := NewLexer(input)
	var tokens []Token

	for {
		tok := lexer.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			break
		}
	}

	return tokens
}
