package object

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
)

// NumKind identifies the width and signedness of a Primitive.
type NumKind uint8

const (
	Byte NumKind = iota + 1
	Integer
	UInteger
	Long
	ULong
	Float
	Double
)

func (k NumKind) String() string {
	switch k {
	case Byte:
		return "byte"
	case Integer:
		return "integer"
	case UInteger:
		return "uinteger"
	case Long:
		return "long"
	case ULong:
		return "ulong"
	case Float:
		return "float"
	case Double:
		return "double"
	default:
		return fmt.Sprintf("numkind(%d)", uint8(k))
	}
}

// Primitive is a numeric scalar. Signed kinds keep their value in i, unsigned
// kinds in u and floating kinds in f; a Float keeps the exact float64 widening
// of its float32 value.
type Primitive struct {
	kind NumKind
	i    int64
	u    uint64
	f    float64
}

func NewByte(v int8) Primitive       { return Primitive{kind: Byte, i: int64(v)} }
func NewInteger(v int32) Primitive   { return Primitive{kind: Integer, i: int64(v)} }
func NewUInteger(v uint32) Primitive { return Primitive{kind: UInteger, u: uint64(v)} }
func NewLong(v int64) Primitive      { return Primitive{kind: Long, i: v} }
func NewULong(v uint64) Primitive    { return Primitive{kind: ULong, u: v} }
func NewFloat(v float32) Primitive   { return Primitive{kind: Float, f: float64(v)} }
func NewDouble(v float64) Primitive  { return Primitive{kind: Double, f: v} }

// NumKind returns the primitive's width/signedness.
func (p Primitive) NumKind() NumKind {
	return p.kind
}

// IsFloat reports whether p holds a floating point value.
func (p Primitive) IsFloat() bool {
	return p.kind == Float || p.kind == Double
}

func (p Primitive) isUnsigned() bool {
	return p.kind == UInteger || p.kind == ULong
}

// AsI32 returns p as an int32 when the value is an integer that fits.
func (p Primitive) AsI32() (int32, error) {
	v, err := p.AsI64()
	if err != nil {
		return 0, err
	}
	if v < math.MinInt32 || v > math.MaxInt32 {
		return 0, fmt.Errorf("%s %s overflows int32", p.kind, p)
	}
	return int32(v), nil
}

// AsI64 returns p as an int64 when the value is an integer that fits.
func (p Primitive) AsI64() (int64, error) {
	switch {
	case p.IsFloat():
		return 0, fmt.Errorf("%s %s is not an integer", p.kind, p)
	case p.isUnsigned():
		if p.u > math.MaxInt64 {
			return 0, fmt.Errorf("%s %s overflows int64", p.kind, p)
		}
		return int64(p.u), nil
	default:
		return p.i, nil
	}
}

// AsU64 returns p as a uint64 when the value is a non-negative integer.
func (p Primitive) AsU64() (uint64, error) {
	switch {
	case p.IsFloat():
		return 0, fmt.Errorf("%s %s is not an integer", p.kind, p)
	case p.isUnsigned():
		return p.u, nil
	default:
		if p.i < 0 {
			return 0, fmt.Errorf("%s %s is negative", p.kind, p)
		}
		return uint64(p.i), nil
	}
}

// AsF32 returns p narrowed to float32.
func (p Primitive) AsF32() float32 {
	return float32(p.AsF64())
}

// AsF64 returns p widened to float64. Integers beyond 2^53 lose precision.
func (p Primitive) AsF64() float64 {
	switch {
	case p.IsFloat():
		return p.f
	case p.isUnsigned():
		return float64(p.u)
	default:
		return float64(p.i)
	}
}

func (p Primitive) String() string {
	switch {
	case p.kind == Float:
		return strconv.FormatFloat(p.f, 'f', -1, 32)
	case p.kind == Double:
		return strconv.FormatFloat(p.f, 'f', -1, 64)
	case p.isUnsigned():
		return strconv.FormatUint(p.u, 10)
	default:
		return strconv.FormatInt(p.i, 10)
	}
}

// comparePrimitive orders two primitives exactly. Integers are compared
// without widening to float, and integer/float pairs are compared through
// big.Float so that no precision is lost. NaN is unordered.
func comparePrimitive(a, b Primitive) (int, bool) {
	switch {
	case a.IsFloat() && b.IsFloat():
		if math.IsNaN(a.f) || math.IsNaN(b.f) {
			return 0, false
		}
		return cmpOrdered(a.f, b.f), true
	case !a.IsFloat() && !b.IsFloat():
		return compareIntegers(a, b), true
	}

	var ip, fp Primitive
	sign := 1
	if a.IsFloat() {
		fp, ip, sign = a, b, -1
	} else {
		ip, fp = a, b
	}
	if math.IsNaN(fp.f) {
		return 0, false
	}
	bi := new(big.Float)
	if ip.isUnsigned() {
		bi.SetUint64(ip.u)
	} else {
		bi.SetInt64(ip.i)
	}
	bf := new(big.Float).SetFloat64(fp.f)
	return sign * bi.Cmp(bf), true
}

func compareIntegers(a, b Primitive) int {
	switch {
	case a.isUnsigned() && b.isUnsigned():
		return cmpOrdered(a.u, b.u)
	case !a.isUnsigned() && !b.isUnsigned():
		return cmpOrdered(a.i, b.i)
	case a.isUnsigned():
		if b.i < 0 {
			return 1
		}
		return cmpOrdered(a.u, uint64(b.i))
	default:
		if a.i < 0 {
			return -1
		}
		return cmpOrdered(uint64(a.i), b.u)
	}
}

func cmpOrdered[T int64 | uint64 | float64](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
