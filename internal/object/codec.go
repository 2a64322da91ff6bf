package object

import (
	"errors"
	"fmt"

	"github.com/roach88/gvalue/internal/wire"
)

// ErrUnknownKind indicates an encoded object carries an unrecognized kind or
// numeric kind byte.
var ErrUnknownKind = errors.New("object: unknown kind")

// Encode writes o as a kind byte followed by its payload. Vectors and maps
// carry a 4-byte element count.
func Encode(w *wire.Writer, o Object) {
	if o == nil {
		o = None{}
	}
	w.WriteU8(uint8(o.Kind()))
	switch v := o.(type) {
	case None:
	case Primitive:
		w.WriteU8(uint8(v.kind))
		switch v.kind {
		case Byte:
			w.WriteI8(int8(v.i))
		case Integer:
			w.WriteI32(int32(v.i))
		case UInteger:
			w.WriteU32(uint32(v.u))
		case Long:
			w.WriteI64(v.i)
		case ULong:
			w.WriteU64(v.u)
		case Float:
			w.WriteF32(float32(v.f))
		case Double:
			w.WriteF64(v.f)
		}
	case String:
		w.WriteString(string(v))
	case Blob:
		w.WriteBytes(v)
	case Vector:
		w.WriteU32(uint32(len(v)))
		for _, e := range v {
			Encode(w, e)
		}
	case *KV:
		w.WriteU32(uint32(v.Len()))
		v.Scan(func(key, val Object) bool {
			Encode(w, key)
			Encode(w, val)
			return true
		})
	}
}

// Decode reads one object written by Encode. maxLen bounds vector and map
// element counts; zero means unbounded.
func Decode(r *wire.Reader, maxLen int) (Object, error) {
	k, err := r.ReadU8()
	if err != nil {
		return nil, err
	}
	switch Kind(k) {
	case KindNone:
		return None{}, nil
	case KindPrimitive:
		return decodePrimitive(r)
	case KindString:
		s, err := r.ReadString()
		if err != nil {
			return nil, err
		}
		return String(s), nil
	case KindBlob:
		b, err := r.ReadBytes()
		if err != nil {
			return nil, err
		}
		return Blob(b), nil
	case KindVector:
		n, err := r.ReadLen(maxLen)
		if err != nil {
			return nil, err
		}
		vec := make(Vector, 0, min(n, r.Remaining()))
		for i := 0; i < n; i++ {
			e, err := Decode(r, maxLen)
			if err != nil {
				return nil, fmt.Errorf("vector[%d]: %w", i, err)
			}
			vec = append(vec, e)
		}
		return vec, nil
	case KindKV:
		n, err := r.ReadLen(maxLen)
		if err != nil {
			return nil, err
		}
		pairs := make([]Pair, 0, min(n, r.Remaining()))
		for i := 0; i < n; i++ {
			key, err := Decode(r, maxLen)
			if err != nil {
				return nil, fmt.Errorf("kv[%d] key: %w", i, err)
			}
			val, err := Decode(r, maxLen)
			if err != nil {
				return nil, fmt.Errorf("kv[%d] value: %w", i, err)
			}
			pairs = append(pairs, Pair{Key: key, Value: val})
		}
		return NewKV(pairs...), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, k)
	}
}

func decodePrimitive(r *wire.Reader) (Object, error) {
	nk, err := r.ReadU8()
	if err != nil {
		return nil, err
	}
	switch NumKind(nk) {
	case Byte:
		v, err := r.ReadI8()
		return NewByte(v), err
	case Integer:
		v, err := r.ReadI32()
		return NewInteger(v), err
	case UInteger:
		v, err := r.ReadU32()
		return NewUInteger(v), err
	case Long:
		v, err := r.ReadI64()
		return NewLong(v), err
	case ULong:
		v, err := r.ReadU64()
		return NewULong(v), err
	case Float:
		v, err := r.ReadF32()
		return NewFloat(v), err
	case Double:
		v, err := r.ReadF64()
		return NewDouble(v), err
	default:
		return nil, fmt.Errorf("%w: numeric kind %d", ErrUnknownKind, nk)
	}
}
