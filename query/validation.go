package query

import (
	"errors"
	"strings"
)

// Validation constants to prevent resource exhaustion
const (
	// MaxQueryLength is the maximum allowed statement length (1MB)
	MaxQueryLength = 1024 * 1024

	// MaxTokens is the maximum number of tokens in a statement
	MaxTokens = 1000

	// MaxColumnNameLength is the maximum length for a column name
	MaxColumnNameLength = 256

	// MaxTableNameLength is the maximum length for a table name
	MaxTableNameLength = 255
)

var (
	// ErrQueryTooLong is returned when a statement exceeds MaxQueryLength
	ErrQueryTooLong = errors.New("query too long")

	// ErrTooManyTokens is returned when a statement has too many tokens
	ErrTooManyTokens = errors.New("too many tokens in query")

	// ErrColumnNameTooLong is returned when a column name is too long
	ErrColumnNameTooLong = errors.New("column name too long")

	// ErrTableNameTooLong is returned when a table name is too long
	ErrTableNameTooLong = errors.New("table name too long")
)

// tableExtensions are the file suffixes a table reference may carry.
// Longer suffixes come first so ".csv.gz" is not mistaken for ".gz".
var tableExtensions = []string{
	".csv.gz",
	".csv.zst",
	".csv.lz4",
	".csv.br",
	".parquet",
	".csv",
	".tsv",
}

// ValidateQuery rejects statements over MaxQueryLength
func ValidateQuery(query string) error {
	if len(query) > MaxQueryLength {
		return parseErrorf(ErrQueryTooLong, "%v: %d bytes (max %d)", ErrQueryTooLong, len(query), MaxQueryLength)
	}
	return nil
}

// ValidateTokens rejects statements with more than MaxTokens tokens
func ValidateTokens(tokens []Token) error {
	if len(tokens) > MaxTokens {
		return parseErrorf(ErrTooManyTokens, "%v: %d tokens (max %d)", ErrTooManyTokens, len(tokens), MaxTokens)
	}
	return nil
}

// ValidateColumnName checks a column name is an identifier of acceptable length
func ValidateColumnName(name string) error {
	if len(name) > MaxColumnNameLength {
		return parseErrorf(ErrColumnNameTooLong, "%v: %d chars (max %d)", ErrColumnNameTooLong, len(name), MaxColumnNameLength)
	}
	if !IsIdentifier(name) {
		return parseErrorf(ErrInvalidColumn, "%v: '%s'", ErrInvalidColumn, name)
	}
	return nil
}

// SplitTableName strips a recognised file extension from a table reference
// and validates what remains. The extension is returned lower-cased without
// the leading dot.
func SplitTableName(raw string) (name, ext string, err error) {
	name = raw
	lower := strings.ToLower(raw)
	for _, suffix := range tableExtensions {
		if strings.HasSuffix(lower, suffix) && len(raw) > len(suffix) {
			name = raw[:len(raw)-len(suffix)]
			ext = suffix[1:]
			break
		}
	}

	if len(name) > MaxTableNameLength {
		return "", "", parseErrorf(ErrTableNameTooLong, "%v: %d chars (max %d)", ErrTableNameTooLong, len(name), MaxTableNameLength)
	}
	if !isTableName(name) {
		return "", "", parseErrorf(ErrInvalidTable, "%v: '%s'", ErrInvalidTable, raw)
	}
	return name, ext, nil
}

// IsIdentifier reports whether s matches [A-Za-z_]\w*
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '_', c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z':
		case c >= '0' && c <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

// isWord reports whether s matches \w+
func isWord(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !(c == '_' || c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z' || c >= '0' && c <= '9') {
			return false
		}
	}
	return true
}

// isTableName reports whether s matches [A-Za-z0-9_-]+
func isTableName(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !(c == '_' || c == '-' || c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z' || c >= '0' && c <= '9') {
			return false
		}
	}
	return true
}
