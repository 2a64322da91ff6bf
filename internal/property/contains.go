package property

import (
	"bytes"
	"slices"
	"strings"
)

// Contains reports whether the list p holds rhs, or whether the string p
// holds rhs as a substring. rhs is read with the getter matching the list's
// element type, so ListLong accepts Short, Int and Long operands. Any other
// receiver fails with UNSUPPORTED; an operand of the wrong variant fails with
// TYPE_MISMATCH.
func Contains(p, rhs Property) (bool, error) {
	switch list := p.(type) {
	case ListBytes:
		b, err := GetBytes(rhs)
		if err != nil {
			return false, err
		}
		return slices.ContainsFunc(list, func(e []byte) bool { return bytes.Equal(e, b) }), nil
	case ListInt:
		x, err := GetInt(rhs)
		if err != nil {
			return false, err
		}
		return slices.Contains(list, x), nil
	case ListLong:
		x, err := GetLong(rhs)
		if err != nil {
			return false, err
		}
		return slices.Contains(list, x), nil
	case ListFloat:
		x, err := GetFloat(rhs)
		if err != nil {
			return false, err
		}
		return slices.Contains(list, x), nil
	case ListDouble:
		x, err := GetDouble(rhs)
		if err != nil {
			return false, err
		}
		return slices.Contains(list, x), nil
	case ListString:
		s, err := GetString(rhs)
		if err != nil {
			return false, err
		}
		return slices.Contains(list, s), nil
	case String:
		s, err := GetString(rhs)
		if err != nil {
			return false, err
		}
		return strings.Contains(string(list), s), nil
	default:
		return false, newError(ErrCodeUnsupported, "Contains", "contains is not defined for %s", Format(p))
	}
}

// StartsWith reports whether the string p begins with the string rhs.
func StartsWith(p, rhs Property) (bool, error) {
	s, prefix, err := stringOperands("StartsWith", p, rhs)
	if err != nil {
		return false, err
	}
	return strings.HasPrefix(s, prefix), nil
}

// EndsWith reports whether the string p ends with the string rhs.
func EndsWith(p, rhs Property) (bool, error) {
	s, suffix, err := stringOperands("EndsWith", p, rhs)
	if err != nil {
		return false, err
	}
	return strings.HasSuffix(s, suffix), nil
}

func stringOperands(op string, p, rhs Property) (string, string, error) {
	l, lok := p.(String)
	r, rok := rhs.(String)
	if !lok || !rok {
		return "", "", newError(ErrCodeUnsupported, op, "%s is only defined for strings, got %s and %s", op, Format(p), Format(rhs))
	}
	return string(l), string(r), nil
}
