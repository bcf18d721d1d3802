package query

import (
	"testing"
)

func TestLexer_Tokens(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Token
	}{
		{
			name:  "case insensitive keywords",
			input: "select FROM Where",
			expected: []Token{
				{Type: TokenSelect, Value: "select"},
				{Type: TokenFrom, Value: "FROM"},
				{Type: TokenWhere, Value: "Where"},
				{Type: TokenEOF, Value: ""},
			},
		},
		{
			name:  "operators",
			input: "= != <> < > <= >=",
			expected: []Token{
				{Type: TokenEqual, Value: "="},
				{Type: TokenNotEqual, Value: "!="},
				{Type: TokenNotEqual, Value: "<>"},
				{Type: TokenLess, Value: "<"},
				{Type: TokenGreater, Value: ">"},
				{Type: TokenLessEqual, Value: "<="},
				{Type: TokenGreaterEqual, Value: ">="},
				{Type: TokenEOF, Value: ""},
			},
		},
		{
			name:  "delimiters",
			input: "COUNT( * ), a;",
			expected: []Token{
				{Type: TokenWord, Value: "COUNT"},
				{Type: TokenLeftParen, Value: "("},
				{Type: TokenStar, Value: "*"},
				{Type: TokenRightParen, Value: ")"},
				{Type: TokenComma, Value: ","},
				{Type: TokenWord, Value: "a"},
				{Type: TokenSemicolon, Value: ";"},
				{Type: TokenEOF, Value: ""},
			},
		},
		{
			name:  "words keep dots and dashes",
			input: "people.csv -3.5 my-table",
			expected: []Token{
				{Type: TokenWord, Value: "people.csv"},
				{Type: TokenWord, Value: "-3.5"},
				{Type: TokenWord, Value: "my-table"},
				{Type: TokenEOF, Value: ""},
			},
		},
		{
			name:  "quoted strings without escapes",
			input: `'it\' "a b"`,
			expected: []Token{
				{Type: TokenString, Value: `it\`},
				{Type: TokenString, Value: "a b"},
				{Type: TokenEOF, Value: ""},
			},
		},
		{
			name:  "operator without spaces",
			input: "age>=30",
			expected: []Token{
				{Type: TokenWord, Value: "age"},
				{Type: TokenGreaterEqual, Value: ">="},
				{Type: TokenWord, Value: "30"},
				{Type: TokenEOF, Value: ""},
			},
		},
		{
			name:  "lone bang",
			input: "a ! b",
			expected: []Token{
				{Type: TokenWord, Value: "a"},
				{Type: TokenError, Value: "!"},
				{Type: TokenWord, Value: "b"},
				{Type: TokenEOF, Value: ""},
			},
		},
		{
			name:  "unterminated string",
			input: "'abc",
			expected: []Token{
				{Type: TokenError, Value: "abc"},
				{Type: TokenEOF, Value: ""},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := Tokenize(tt.input)
			if len(tokens) != len(tt.expected) {
				t.Fatalf("expected %d tokens, got %d: %v", len(tt.expected), len(tokens), tokens)
			}
			for i, tok := range tokens {
				if tok.Type != tt.expected[i].Type {
					t.Errorf("token %d: expected type %v, got %v", i, tt.expected[i].Type, tok.Type)
				}
				if tok.Value != tt.expected[i].Value {
					t.Errorf("token %d: expected value %q, got %q", i, tt.expected[i].Value, tok.Value)
				}
			}
		})
	}
}

func TestLexer_Positions(t *testing.T) {
	input := "SELECT  name, 'x y'"
	tokens := Tokenize(input)

	want := []string{"SELECT", "name", ",", "'x y'", ""}
	if len(tokens) != len(want) {
		t.Fatalf("expected %d tokens, got %d", len(want), len(tokens))
	}
	for i, tok := range tokens {
		if got := input[tok.Pos:tok.End]; got != want[i] {
			t.Errorf("token %d spans %q, want %q", i, got, want[i])
		}
	}
}
