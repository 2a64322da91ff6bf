package property

import (
	"strconv"
	"strings"
)

// Parse reads a text literal as a value of type dt. It returns Unknown when
// the literal does not fit dt; it never fails otherwise.
//
// Booleans are exactly "true" or "false". A char is exactly one byte.
// Numbers use Go's decimal syntax with no surrounding space allowed. String
// and date literals are taken verbatim, and bytes are the literal's bytes.
// Lists are comma separated with no brackets; the empty literal is the empty
// list, and a single bad item makes the whole list Unknown. Bytes lists have
// no text form.
func Parse(text string, dt DataType) Property {
	switch dt {
	case TypeBool:
		switch text {
		case "true":
			return Bool(true)
		case "false":
			return Bool(false)
		}
	case TypeChar:
		if len(text) == 1 {
			return Char(text[0])
		}
	case TypeShort:
		if v, err := strconv.ParseInt(text, 10, 16); err == nil {
			return Short(v)
		}
	case TypeInt:
		if v, err := strconv.ParseInt(text, 10, 32); err == nil {
			return Int(v)
		}
	case TypeLong:
		if v, err := strconv.ParseInt(text, 10, 64); err == nil {
			return Long(v)
		}
	case TypeFloat:
		if v, err := strconv.ParseFloat(text, 32); err == nil {
			return Float(v)
		}
	case TypeDouble:
		if v, err := strconv.ParseFloat(text, 64); err == nil {
			return Double(v)
		}
	case TypeBytes:
		return Bytes(text)
	case TypeString:
		return String(text)
	case TypeDate:
		return Date(text)
	case TypeListInt:
		if v, ok := parseList(text, func(s string) (int32, error) {
			n, err := strconv.ParseInt(s, 10, 32)
			return int32(n), err
		}); ok {
			return ListInt(v)
		}
	case TypeListLong:
		if v, ok := parseList(text, func(s string) (int64, error) {
			return strconv.ParseInt(s, 10, 64)
		}); ok {
			return ListLong(v)
		}
	case TypeListFloat:
		if v, ok := parseList(text, func(s string) (float32, error) {
			f, err := strconv.ParseFloat(s, 32)
			return float32(f), err
		}); ok {
			return ListFloat(v)
		}
	case TypeListDouble:
		if v, ok := parseList(text, func(s string) (float64, error) {
			return strconv.ParseFloat(s, 64)
		}); ok {
			return ListDouble(v)
		}
	case TypeListString:
		if text == "" {
			return ListString{}
		}
		return ListString(strings.Split(text, ","))
	}
	return Unknown{}
}

func parseList[T any](text string, item func(string) (T, error)) ([]T, bool) {
	if text == "" {
		return []T{}, true
	}
	parts := strings.Split(text, ",")
	out := make([]T, len(parts))
	for i, s := range parts {
		v, err := item(s)
		if err != nil {
			return nil, false
		}
		out[i] = v
	}
	return out, true
}
