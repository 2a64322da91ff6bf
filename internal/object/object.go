// Package object provides the generic scalar value carried by query entries.
//
// Object is a sealed interface: only None, Primitive, String, Blob, Vector and
// KV implement it. Values are immutable once built and safe to share across
// goroutines.
//
// Ordering is partial. Numeric primitives compare exactly across widths,
// including integers against floats; values of different kinds are
// incomparable. Hash is consistent with Equal, so numerically equal primitives
// of different widths hash identically.
package object

import (
	"fmt"
	"strings"
)

// Kind identifies the variant of an Object.
type Kind uint8

const (
	KindNone Kind = iota
	KindPrimitive
	KindString
	KindBlob
	KindVector
	KindKV
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindPrimitive:
		return "primitive"
	case KindString:
		return "string"
	case KindBlob:
		return "blob"
	case KindVector:
		return "vector"
	case KindKV:
		return "kv"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Object is a sealed interface over the scalar variants.
type Object interface {
	Kind() Kind
	object()
}

// None is the absent value.
type None struct{}

func (None) Kind() Kind { return KindNone }
func (None) object()    {}

// String is a UTF-8 string value.
type String string

func (String) Kind() Kind { return KindString }
func (String) object()    {}

// Blob is an opaque byte string.
type Blob []byte

func (Blob) Kind() Kind { return KindBlob }
func (Blob) object()    {}

// Vector is an ordered list of objects.
type Vector []Object

func (Vector) Kind() Kind { return KindVector }
func (Vector) object()    {}

func (Primitive) Kind() Kind { return KindPrimitive }
func (Primitive) object()    {}

func (*KV) Kind() Kind { return KindKV }
func (*KV) object()    {}

// IsNone reports whether o is nil or None.
func IsNone(o Object) bool {
	if o == nil {
		return true
	}
	_, ok := o.(None)
	return ok
}

// Len returns the logical length of o: zero for None, the element count for
// vectors and maps, and one for every other scalar.
func Len(o Object) int {
	switch v := o.(type) {
	case nil, None:
		return 0
	case Vector:
		return len(v)
	case *KV:
		return v.Len()
	default:
		return 1
	}
}

// Format renders o for display. It is not a parseable format.
func Format(o Object) string {
	var sb strings.Builder
	format(&sb, o)
	return sb.String()
}

func format(sb *strings.Builder, o Object) {
	switch v := o.(type) {
	case nil, None:
		sb.WriteString("None")
	case Primitive:
		sb.WriteString(v.String())
	case String:
		fmt.Fprintf(sb, "%q", string(v))
	case Blob:
		sb.WriteString("b[")
		for i, b := range v {
			if i > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(sb, "%d", b)
		}
		sb.WriteByte(']')
	case Vector:
		sb.WriteByte('[')
		for i, e := range v {
			if i > 0 {
				sb.WriteString(", ")
			}
			format(sb, e)
		}
		sb.WriteByte(']')
	case *KV:
		sb.WriteByte('{')
		i := 0
		v.Scan(func(key, val Object) bool {
			if i > 0 {
				sb.WriteString(", ")
			}
			format(sb, key)
			sb.WriteString(": ")
			format(sb, val)
			i++
			return true
		})
		sb.WriteByte('}')
	}
}
