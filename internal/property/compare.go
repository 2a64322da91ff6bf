package property

import (
	"bytes"
	"cmp"
	"math"
	"slices"
)

// Compare orders two properties. The boolean is false when the pair is
// unordered.
//
// Same-variant pairs compare natively. A numeric scalar against another
// numeric scalar of a different variant is compared after widening both to
// float64 when either side is Float or Double, and to int64 otherwise. Numeric
// lists widen element-wise by the same rule and compare lexicographically.
// Any other mix, including Char or Bool against a number, is unordered. NaN
// is unordered. Null equals Null.
func Compare(a, b Property) (int, bool) {
	if c, ok, same := compareSame(a, b); same {
		return c, ok
	}
	switch {
	case isNumeric(a) || isNumeric(b):
		if isFloat(a) || isFloat(b) {
			x, err := GetDouble(a)
			if err != nil {
				return 0, false
			}
			y, err := GetDouble(b)
			if err != nil {
				return 0, false
			}
			return compareFloat(x, y)
		}
		x, err := GetLong(a)
		if err != nil {
			return 0, false
		}
		y, err := GetLong(b)
		if err != nil {
			return 0, false
		}
		return cmp.Compare(x, y), true
	case isNumericList(a) || isNumericList(b):
		if isFloatList(a) || isFloatList(b) {
			x, err := castDoubleList(a)
			if err != nil {
				return 0, false
			}
			y, err := castDoubleList(b)
			if err != nil {
				return 0, false
			}
			return compareFloatLists(x, y)
		}
		x, err := castLongList(a)
		if err != nil {
			return 0, false
		}
		y, err := castLongList(b)
		if err != nil {
			return 0, false
		}
		return slices.Compare(x, y), true
	}
	return 0, false
}

// Equal reports whether a and b are ordered and compare equal.
func Equal(a, b Property) bool {
	c, ok := Compare(a, b)
	return ok && c == 0
}

// compareSame handles pairs of the same variant; same is false otherwise.
func compareSame(a, b Property) (c int, ok, same bool) {
	switch x := a.(type) {
	case Bool:
		if y, is := b.(Bool); is {
			return compareBool(bool(x), bool(y)), true, true
		}
	case Char:
		if y, is := b.(Char); is {
			return cmp.Compare(x, y), true, true
		}
	case Short:
		if y, is := b.(Short); is {
			return cmp.Compare(x, y), true, true
		}
	case Int:
		if y, is := b.(Int); is {
			return cmp.Compare(x, y), true, true
		}
	case Long:
		if y, is := b.(Long); is {
			return cmp.Compare(x, y), true, true
		}
	case Float:
		if y, is := b.(Float); is {
			c, ok := compareFloat(float64(x), float64(y))
			return c, ok, true
		}
	case Double:
		if y, is := b.(Double); is {
			c, ok := compareFloat(float64(x), float64(y))
			return c, ok, true
		}
	case Bytes:
		if y, is := b.(Bytes); is {
			return bytes.Compare(x, y), true, true
		}
	case String:
		if y, is := b.(String); is {
			return cmp.Compare(x, y), true, true
		}
	case Date:
		if y, is := b.(Date); is {
			return cmp.Compare(x, y), true, true
		}
	case ListInt:
		if y, is := b.(ListInt); is {
			return slices.Compare(x, y), true, true
		}
	case ListLong:
		if y, is := b.(ListLong); is {
			return slices.Compare(x, y), true, true
		}
	case ListFloat:
		if y, is := b.(ListFloat); is {
			c, ok := compareFloatLists(widen(x), widen(y))
			return c, ok, true
		}
	case ListDouble:
		if y, is := b.(ListDouble); is {
			c, ok := compareFloatLists(x, y)
			return c, ok, true
		}
	case ListString:
		if y, is := b.(ListString); is {
			return slices.Compare(x, y), true, true
		}
	case ListBytes:
		if y, is := b.(ListBytes); is {
			return slices.CompareFunc(x, y, bytes.Compare), true, true
		}
	case Null:
		if _, is := b.(Null); is {
			return 0, true, true
		}
	case Unknown:
		if _, is := b.(Unknown); is {
			return 0, false, true
		}
	}
	return 0, false, false
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case a:
		return 1
	default:
		return -1
	}
}

func compareFloat(a, b float64) (int, bool) {
	if math.IsNaN(a) || math.IsNaN(b) {
		return 0, false
	}
	return cmp.Compare(a, b), true
}

func compareFloatLists(a, b []float64) (int, bool) {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		c, ok := compareFloat(a[i], b[i])
		if !ok {
			return 0, false
		}
		if c != 0 {
			return c, true
		}
	}
	return cmp.Compare(len(a), len(b)), true
}
