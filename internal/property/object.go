package property

import (
	"math"

	"github.com/roach88/gvalue/internal/object"
)

// FromObject converts a query-side scalar to a property. Unsigned integers
// map to their signed counterparts: a UInteger wraps into Int, and a ULong
// above the int64 range fails. A Vector becomes the list type matching its
// first element, and every element must convert to that type.
func FromObject(o object.Object) (Property, error) {
	switch v := o.(type) {
	case object.Primitive:
		return fromPrimitive(v)
	case object.String:
		return String(v), nil
	case object.Blob:
		return Bytes(append([]byte(nil), v...)), nil
	case object.Vector:
		return fromVector(v)
	default:
		return nil, newError(ErrCodeUnsupported, "FromObject", "no property for %s", object.Format(o))
	}
}

func fromPrimitive(p object.Primitive) (Property, error) {
	switch p.NumKind() {
	case object.Byte:
		n, _ := p.AsI64()
		return Char(uint8(int8(n))), nil
	case object.Integer:
		n, _ := p.AsI32()
		return Int(n), nil
	case object.UInteger:
		n, _ := p.AsU64()
		return Int(int32(uint32(n))), nil
	case object.Long:
		n, _ := p.AsI64()
		return Long(n), nil
	case object.ULong:
		n, _ := p.AsU64()
		if n > math.MaxInt64 {
			return nil, newError(ErrCodeDataError, "FromObject", "%d is too large for long", n)
		}
		return Long(int64(n)), nil
	case object.Float:
		return Float(p.AsF32()), nil
	case object.Double:
		return Double(p.AsF64()), nil
	}
	return nil, newError(ErrCodeUnsupported, "FromObject", "no property for %s", p)
}

func fromVector(v object.Vector) (Property, error) {
	if len(v) == 0 {
		return nil, newError(ErrCodeUnsupported, "FromObject", "empty vector has no element type")
	}
	switch first := v[0].(type) {
	case object.Blob:
		return vectorOf(v, func(o object.Object) ([]byte, bool) {
			b, ok := o.(object.Blob)
			return append([]byte(nil), b...), ok
		}, func(xs [][]byte) Property { return ListBytes(xs) })
	case object.String:
		return vectorOf(v, func(o object.Object) (string, bool) {
			s, ok := o.(object.String)
			return string(s), ok
		}, func(xs []string) Property { return ListString(xs) })
	case object.Primitive:
		switch first.NumKind() {
		case object.Integer:
			return vectorOf(v, func(o object.Object) (int32, bool) {
				p, ok := o.(object.Primitive)
				if !ok {
					return 0, false
				}
				n, err := p.AsI32()
				return n, err == nil
			}, func(xs []int32) Property { return ListInt(xs) })
		case object.Long, object.ULong:
			return vectorOf(v, func(o object.Object) (int64, bool) {
				p, ok := o.(object.Primitive)
				if !ok {
					return 0, false
				}
				n, err := p.AsI64()
				return n, err == nil
			}, func(xs []int64) Property { return ListLong(xs) })
		case object.Float, object.Double:
			return vectorOf(v, func(o object.Object) (float64, bool) {
				p, ok := o.(object.Primitive)
				return p.AsF64(), ok
			}, func(xs []float64) Property { return ListDouble(xs) })
		}
	}
	return nil, newError(ErrCodeUnsupported, "FromObject", "no list property for elements like %s", object.Format(v[0]))
}

func vectorOf[T any](v object.Vector, item func(object.Object) (T, bool), wrap func([]T) Property) (Property, error) {
	out := make([]T, len(v))
	for i, o := range v {
		x, ok := item(o)
		if !ok {
			return nil, newError(ErrCodeTypeMismatch, "FromObject", "vector element %d is %s, not like element 0", i, object.Format(o))
		}
		out[i] = x
	}
	return wrap(out), nil
}

// ToObject converts a property to a query-side scalar. Bool becomes a 0 or 1
// byte and Char a byte of the same bits. Dates become strings. Null and
// Unknown become None.
func ToObject(p Property) object.Object {
	switch v := p.(type) {
	case Bool:
		if v {
			return object.NewByte(1)
		}
		return object.NewByte(0)
	case Char:
		return object.NewByte(int8(v))
	case Short:
		return object.NewInteger(int32(v))
	case Int:
		return object.NewInteger(int32(v))
	case Long:
		return object.NewLong(int64(v))
	case Float:
		return object.NewFloat(float32(v))
	case Double:
		return object.NewDouble(float64(v))
	case Bytes:
		return object.Blob(append([]byte(nil), v...))
	case String:
		return object.String(v)
	case Date:
		return object.String(v)
	case ListInt:
		return vectorFrom(v, func(x int32) object.Object { return object.NewInteger(x) })
	case ListLong:
		return vectorFrom(v, func(x int64) object.Object { return object.NewLong(x) })
	case ListFloat:
		return vectorFrom(v, func(x float32) object.Object { return object.NewFloat(x) })
	case ListDouble:
		return vectorFrom(v, func(x float64) object.Object { return object.NewDouble(x) })
	case ListString:
		return vectorFrom(v, func(x string) object.Object { return object.String(x) })
	case ListBytes:
		return vectorFrom(v, func(x []byte) object.Object { return object.Blob(append([]byte(nil), x...)) })
	default:
		return object.None{}
	}
}

func vectorFrom[T any](xs []T, conv func(T) object.Object) object.Vector {
	out := make(object.Vector, len(xs))
	for i, x := range xs {
		out[i] = conv(x)
	}
	return out
}
