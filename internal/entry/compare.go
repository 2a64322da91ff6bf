package entry

import (
	"cmp"

	"github.com/cespare/xxhash/v2"

	"github.com/roach88/gvalue/internal/graph"
	"github.com/roach88/gvalue/internal/object"
)

// Compare orders two entries of the same tag. The boolean is false when a and
// b carry different tags, or when the values themselves are unordered (for
// example objects of different kinds). Two null entries compare equal.
func Compare(a, b Handle) (int, bool) {
	if a.Tag() != b.Tag() {
		return 0, false
	}
	switch a.Tag() {
	case TagVertex:
		return a.v.(*graph.Vertex).Compare(b.v.(*graph.Vertex)), true
	case TagEdge:
		return a.v.(*graph.Edge).Compare(b.v.(*graph.Edge)), true
	case TagPath:
		return a.v.(*graph.Path).Compare(b.v.(*graph.Path)), true
	case TagObject:
		return object.Compare(a.v.(object.Object), b.v.(object.Object))
	case TagPair:
		return comparePairs(a.v.(*Pair), b.v.(*Pair))
	case TagCollection:
		return compareCollections(a.v.(*Collection), b.v.(*Collection))
	case TagIntersection:
		return a.v.(*Intersection).Compare(b.v.(*Intersection)), true
	case TagGeneralIntersection:
		return a.v.(*GeneralIntersection).Compare(b.v.(*GeneralIntersection)), true
	default:
		return 0, true
	}
}

// Equal reports whether a and b have the same tag and compare equal.
func Equal(a, b Handle) bool {
	c, ok := Compare(a, b)
	return ok && c == 0
}

// Less is a sort helper: unordered pairs report false.
func Less(a, b Handle) bool {
	c, ok := Compare(a, b)
	return ok && c < 0
}

func comparePairs(a, b *Pair) (int, bool) {
	c, ok := Compare(a.left, b.left)
	if !ok || c != 0 {
		return c, ok
	}
	return Compare(a.right, b.right)
}

func compareCollections(a, b *Collection) (int, bool) {
	n := min(len(a.elems), len(b.elems))
	for i := 0; i < n; i++ {
		c, ok := Compare(a.elems[i], b.elems[i])
		if !ok || c != 0 {
			return c, ok
		}
	}
	return cmp.Compare(len(a.elems), len(b.elems)), true
}

// Hash returns a hash of h consistent with Equal.
func Hash(h Handle) uint64 {
	d := xxhash.New()
	HashTo(d, h)
	return d.Sum64()
}

// HashTo feeds h into d. The tag is hashed first so that equal payloads of
// different tags do not collide systematically.
func HashTo(d *xxhash.Digest, h Handle) {
	tag := h.Tag()
	d.Write([]byte{byte(tag)})
	switch tag {
	case TagVertex:
		h.v.(*graph.Vertex).HashTo(d)
	case TagEdge:
		h.v.(*graph.Edge).HashTo(d)
	case TagPath:
		h.v.(*graph.Path).HashTo(d)
	case TagObject:
		object.HashTo(d, h.v.(object.Object))
	case TagPair:
		p := h.v.(*Pair)
		HashTo(d, p.left)
		HashTo(d, p.right)
	case TagCollection:
		c := h.v.(*Collection)
		var n [4]byte
		l := len(c.elems)
		n[0], n[1], n[2], n[3] = byte(l>>24), byte(l>>16), byte(l>>8), byte(l)
		d.Write(n[:])
		for _, e := range c.elems {
			HashTo(d, e)
		}
	case TagIntersection:
		h.v.(*Intersection).HashTo(d)
	case TagGeneralIntersection:
		h.v.(*GeneralIntersection).HashTo(d)
	}
}
