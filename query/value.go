package query

import (
	"math"
	"strconv"
	"strings"

	"github.com/segmentio/encoding/json"
)

// Kind identifies which variant a Value holds
type Kind uint8

const (
	KindNull Kind = iota
	KindInteger
	KindFloat
	KindText
)

// String returns the kind name
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindText:
		return "text"
	default:
		return "unknown"
	}
}

// Value is a single cell or literal: Null, Integer, Float or Text.
//
// The zero Value is Null.
type Value struct {
	kind Kind
	i    int64
	f    float64
	s    string
}

// Null returns the Null value
func Null() Value { return Value{} }

// Integer returns an Integer value
func Integer(i int64) Value { return Value{kind: KindInteger, i: i} }

// Float returns a Float value
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// Text returns a Text value
func Text(s string) Value { return Value{kind: KindText, s: s} }

// Kind returns the variant held by v
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is Null
func (v Value) IsNull() bool { return v.kind == KindNull }

// IsNumeric reports whether v is an Integer or a Float
func (v Value) IsNumeric() bool { return v.kind == KindInteger || v.kind == KindFloat }

// Int returns the integer payload. Only meaningful for KindInteger.
func (v Value) Int() int64 { return v.i }

// Float64 returns the numeric payload as float64
func (v Value) Float64() float64 {
	if v.kind == KindInteger {
		return float64(v.i)
	}
	return v.f
}

// Str returns the text payload. Only meaningful for KindText.
func (v Value) Str() string { return v.s }

// String returns the textual representation used for text comparison and display.
// Null renders as the empty string.
func (v Value) String() string {
	switch v.kind {
	case KindInteger:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return formatFloat(v.f)
	case KindText:
		return v.s
	default:
		return ""
	}
}

// Interface returns the Go value held by v (nil, int64, float64 or string)
func (v Value) Interface() interface{} {
	switch v.kind {
	case KindInteger:
		return v.i
	case KindFloat:
		return v.f
	case KindText:
		return v.s
	default:
		return nil
	}
}

// MarshalJSON encodes Null as null, numbers as JSON numbers and Text as a string
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindInteger:
		return []byte(strconv.FormatInt(v.i, 10)), nil
	case KindFloat:
		// JSON has no representation for NaN or infinities
		if math.IsNaN(v.f) || math.IsInf(v.f, 0) {
			return json.Marshal(formatFloat(v.f))
		}
		return []byte(formatFloat(v.f)), nil
	case KindText:
		return json.Marshal(v.s)
	default:
		return []byte("null"), nil
	}
}

// formatFloat always keeps a fractional part so floats stay distinguishable from integers
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// InferValue types a raw table cell.
//
// The cell is trimmed; an empty cell is Null. A cell without a decimal point is
// tried as Integer, a cell with one as Float. Anything that fails to parse is
// kept as trimmed Text.
func InferValue(raw string) Value {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Null()
	}
	if v, ok := parseNumber(s); ok {
		return v
	}
	return Text(s)
}

// ParseLiteral types the right-hand side of a WHERE condition.
//
// Values wrapped in matching single or double quotes become Text with the quotes
// removed; no escape processing is done. Unquoted tokens are typed like table
// cells, falling back to Text verbatim.
func ParseLiteral(raw string) Value {
	s := strings.TrimSpace(raw)
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if (first == '\'' || first == '"') && first == last {
			return Text(s[1 : len(s)-1])
		}
	}
	if v, ok := parseNumber(s); ok {
		return v
	}
	return Text(s)
}

// parseNumber applies the decimal point rule: with a '.' the text must be a
// float, without one an integer.
func parseNumber(s string) (Value, bool) {
	if strings.Contains(s, ".") {
		if !isDecimal(s) {
			return Value{}, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Value{}, false
		}
		return Float(f), true
	}
	i, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return Value{}, false
	}
	return Integer(i), true
}

// isDecimal rejects forms strconv accepts but plain decimal text does not
// use, such as hex floats, underscores and inf/nan spellings.
func isDecimal(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9', c == '.', c == '+', c == '-', c == 'e', c == 'E':
		default:
			return false
		}
	}
	return true
}
