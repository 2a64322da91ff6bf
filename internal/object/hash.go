package object

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

const (
	hashInt   = 'i'
	hashFloat = 'f'
)

// Hash returns a 64-bit hash of o consistent with Equal.
func Hash(o Object) uint64 {
	d := xxhash.New()
	HashTo(d, o)
	return d.Sum64()
}

// HashTo feeds o into d. Composite hashers (entries, graph elements) call this
// to hash nested objects without allocating a digest per value.
func HashTo(d *xxhash.Digest, o Object) {
	var buf [9]byte
	switch v := o.(type) {
	case nil, None:
		d.Write([]byte{byte(KindNone)})
	case Primitive:
		d.Write([]byte{byte(KindPrimitive)})
		hashPrimitive(d, v, &buf)
	case String:
		d.Write([]byte{byte(KindString)})
		binary.BigEndian.PutUint32(buf[:4], uint32(len(v)))
		d.Write(buf[:4])
		d.WriteString(string(v))
	case Blob:
		d.Write([]byte{byte(KindBlob)})
		binary.BigEndian.PutUint32(buf[:4], uint32(len(v)))
		d.Write(buf[:4])
		d.Write(v)
	case Vector:
		d.Write([]byte{byte(KindVector)})
		binary.BigEndian.PutUint32(buf[:4], uint32(len(v)))
		d.Write(buf[:4])
		for _, e := range v {
			HashTo(d, e)
		}
	case *KV:
		d.Write([]byte{byte(KindKV)})
		binary.BigEndian.PutUint32(buf[:4], uint32(v.Len()))
		d.Write(buf[:4])
		v.Scan(func(key, val Object) bool {
			HashTo(d, key)
			HashTo(d, val)
			return true
		})
	}
}

// hashPrimitive hashes numbers by value rather than by width: every integral
// value in [-2^63, 2^64) is hashed as a sign and magnitude, whatever kind
// holds it, so Integer(1), ULong(1) and Double(1.0) collide as Equal requires.
func hashPrimitive(d *xxhash.Digest, p Primitive, buf *[9]byte) {
	neg, mag, ok := integral(p)
	if !ok {
		buf[0] = hashFloat
		binary.BigEndian.PutUint64(buf[1:], math.Float64bits(p.f))
		d.Write(buf[:])
		return
	}
	buf[0] = hashInt
	d.Write(buf[:1])
	if neg {
		buf[0] = 1
	} else {
		buf[0] = 0
	}
	binary.BigEndian.PutUint64(buf[1:], mag)
	d.Write(buf[:])
}

func integral(p Primitive) (neg bool, mag uint64, ok bool) {
	switch {
	case p.isUnsigned():
		return false, p.u, true
	case !p.IsFloat():
		if p.i < 0 {
			return true, uint64(-(p.i + 1)) + 1, true
		}
		return false, uint64(p.i), true
	}
	f := p.f
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return false, 0, false
	}
	switch {
	case f < -(1 << 63) || f >= (1<<64):
		return false, 0, false
	case f < 0:
		return true, uint64(-f), true
	default:
		return false, uint64(f), true
	}
}
