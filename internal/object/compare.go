package object

import (
	"bytes"
	"math"
	"strings"
)

// Compare returns the ordering of a and b. The boolean is false when the pair
// is unordered: different kinds, or a NaN anywhere along the comparison.
func Compare(a, b Object) (int, bool) {
	if a == nil {
		a = None{}
	}
	if b == nil {
		b = None{}
	}
	if a.Kind() != b.Kind() {
		return 0, false
	}
	switch av := a.(type) {
	case None:
		return 0, true
	case Primitive:
		return comparePrimitive(av, b.(Primitive))
	case String:
		return strings.Compare(string(av), string(b.(String))), true
	case Blob:
		return bytes.Compare(av, b.(Blob)), true
	case Vector:
		return compareVectors(av, b.(Vector))
	case *KV:
		return compareKVs(av, b.(*KV))
	default:
		return 0, false
	}
}

// Equal reports whether a and b are ordered and compare equal.
func Equal(a, b Object) bool {
	c, ok := Compare(a, b)
	return ok && c == 0
}

func compareVectors(a, b Vector) (int, bool) {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		c, ok := Compare(a[i], b[i])
		if !ok {
			return 0, false
		}
		if c != 0 {
			return c, true
		}
	}
	return cmpOrdered(int64(len(a)), int64(len(b))), true
}

func compareKVs(a, b *KV) (int, bool) {
	ap, bp := a.Pairs(), b.Pairs()
	n := min(len(ap), len(bp))
	for i := 0; i < n; i++ {
		c, ok := Compare(ap[i].Key, bp[i].Key)
		if !ok {
			return 0, false
		}
		if c != 0 {
			return c, true
		}
		c, ok = Compare(ap[i].Value, bp[i].Value)
		if !ok {
			return 0, false
		}
		if c != 0 {
			return c, true
		}
	}
	return cmpOrdered(int64(len(ap)), int64(len(bp))), true
}

// totalCompare extends Compare to a total order for map keys: kinds are
// ranked by their Kind value and NaN sorts before every other number.
func totalCompare(a, b Object) int {
	if a == nil {
		a = None{}
	}
	if b == nil {
		b = None{}
	}
	if a.Kind() != b.Kind() {
		return cmpOrdered(int64(a.Kind()), int64(b.Kind()))
	}
	switch av := a.(type) {
	case Primitive:
		bv := b.(Primitive)
		if c, ok := comparePrimitive(av, bv); ok {
			return c
		}
		an := av.IsFloat() && math.IsNaN(av.f)
		bn := bv.IsFloat() && math.IsNaN(bv.f)
		switch {
		case an && bn:
			return 0
		case an:
			return -1
		default:
			return 1
		}
	case Vector:
		bv := b.(Vector)
		n := min(len(av), len(bv))
		for i := 0; i < n; i++ {
			if c := totalCompare(av[i], bv[i]); c != 0 {
				return c
			}
		}
		return cmpOrdered(int64(len(av)), int64(len(bv)))
	case *KV:
		ap, bp := av.Pairs(), b.(*KV).Pairs()
		n := min(len(ap), len(bp))
		for i := 0; i < n; i++ {
			if c := totalCompare(ap[i].Key, bp[i].Key); c != 0 {
				return c
			}
			if c := totalCompare(ap[i].Value, bp[i].Value); c != 0 {
				return c
			}
		}
		return cmpOrdered(int64(len(ap)), int64(len(bp)))
	default:
		c, _ := Compare(a, b)
		return c
	}
}
