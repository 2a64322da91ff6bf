package property

import (
	"strconv"
	"strings"
)

// Render decodes transport-layout bytes of type dt into display text.
// Strings and dates are double-quoted as is, chars single-quoted, booleans
// are True or False, and numbers use the shortest decimal form without an
// exponent. Lists are bracketed and comma separated, with string elements
// quoted and escaped. The output is for people; Parse does not read it back.
func Render(data []byte, dt DataType) (string, error) {
	p, err := DecodeTransport(dt, data)
	if err != nil {
		return "", err
	}
	switch v := p.(type) {
	case String:
		return `"` + string(v) + `"`, nil
	case Date:
		return `"` + string(v) + `"`, nil
	case Char:
		return "'" + string(rune(v)) + "'", nil
	case Bool:
		if v {
			return "True", nil
		}
		return "False", nil
	case Short:
		return strconv.FormatInt(int64(v), 10), nil
	case Int:
		return strconv.FormatInt(int64(v), 10), nil
	case Long:
		return strconv.FormatInt(int64(v), 10), nil
	case Float:
		return formatFloat(float64(v), 32), nil
	case Double:
		return formatFloat(float64(v), 64), nil
	case Bytes:
		return renderList(v, func(b byte) string { return strconv.Itoa(int(b)) }), nil
	case ListInt:
		return renderList(v, func(x int32) string { return strconv.FormatInt(int64(x), 10) }), nil
	case ListLong:
		return renderList(v, func(x int64) string { return strconv.FormatInt(x, 10) }), nil
	case ListFloat:
		return renderList(v, func(x float32) string { return formatFloat(float64(x), 32) }), nil
	case ListDouble:
		return renderList(v, func(x float64) string { return formatFloat(x, 64) }), nil
	case ListString:
		return renderList(v, strconv.Quote), nil
	case ListBytes:
		return renderList(v, func(b []byte) string {
			return renderList(b, func(x byte) string { return strconv.Itoa(int(x)) })
		}), nil
	}
	return "", newError(ErrCodeUnsupported, "Render", "no text form for %s", dt)
}

func formatFloat(x float64, bits int) string {
	return strconv.FormatFloat(x, 'f', -1, bits)
}

func renderList[T any](items []T, item func(T) string) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, x := range items {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(item(x))
	}
	sb.WriteByte(']')
	return sb.String()
}
