package property

import (
	"math"
)

// Transform converts p to the storage layout of the declared type dt.
func Transform(p Property, dt DataType) ([]byte, error) {
	q, err := Coerce(p, dt)
	if err != nil {
		return nil, err
	}
	return ToVec(q), nil
}

// Coerce converts p to a property of type dt. A property that already has
// type dt is returned unchanged. Otherwise Bool, Char, Short, Int and Long
// widen to int64 and Float and Double widen to float64, and the widened
// value is range-checked into dt. Values that do not fit, and every other
// combination, fail with DATA_ERROR.
func Coerce(p Property, dt DataType) (Property, error) {
	if t, ok := TypeOf(p); ok && t == dt {
		return p, nil
	}
	switch v := p.(type) {
	case Bool:
		if v {
			return longTo(1, dt)
		}
		return longTo(0, dt)
	case Char:
		return longTo(int64(v), dt)
	case Short:
		return longTo(int64(v), dt)
	case Int:
		return longTo(int64(v), dt)
	case Long:
		return longTo(int64(v), dt)
	case Float:
		return doubleTo(float64(v), dt)
	case Double:
		return doubleTo(float64(v), dt)
	default:
		return nil, newError(ErrCodeDataError, "Coerce", "%s cannot be transformed to %s", Format(p), dt)
	}
}

func longTo(x int64, dt DataType) (Property, error) {
	switch dt {
	case TypeBool:
		return Bool(x != 0), nil
	case TypeChar:
		if x < 0 || x > math.MaxUint8 {
			return nil, newError(ErrCodeDataError, "Coerce", "%d cannot be transformed to char", x)
		}
		return Char(x), nil
	case TypeShort:
		if x < math.MinInt16 || x > math.MaxInt16 {
			return nil, newError(ErrCodeDataError, "Coerce", "%d cannot be transformed to short", x)
		}
		return Short(x), nil
	case TypeInt:
		if x < math.MinInt32 || x > math.MaxInt32 {
			return nil, newError(ErrCodeDataError, "Coerce", "%d cannot be transformed to int", x)
		}
		return Int(x), nil
	case TypeLong:
		return Long(x), nil
	case TypeFloat:
		return Float(x), nil
	case TypeDouble:
		return Double(x), nil
	default:
		return nil, newError(ErrCodeDataError, "Coerce", "%d cannot be transformed to %s", x, dt)
	}
}

// doubleTo truncates toward zero for integer targets. NaN never fits an
// integer type, and the int64 range check is exclusive at 2^63 since that
// bound is not representable as int64.
func doubleTo(x float64, dt DataType) (Property, error) {
	integral := func(name string, lo, hi float64) error {
		if math.IsNaN(x) || x < lo || x > hi {
			return newError(ErrCodeDataError, "Coerce", "%v cannot be transformed to %s", x, name)
		}
		return nil
	}
	switch dt {
	case TypeBool:
		return Bool(x != 0), nil
	case TypeChar:
		if err := integral("char", 0, math.MaxUint8); err != nil {
			return nil, err
		}
		return Char(x), nil
	case TypeShort:
		if err := integral("short", math.MinInt16, math.MaxInt16); err != nil {
			return nil, err
		}
		return Short(x), nil
	case TypeInt:
		if err := integral("int", math.MinInt32, math.MaxInt32); err != nil {
			return nil, err
		}
		return Int(x), nil
	case TypeLong:
		if math.IsNaN(x) || x < math.MinInt64 || x >= math.MaxInt64 {
			return nil, newError(ErrCodeDataError, "Coerce", "%v cannot be transformed to long", x)
		}
		return Long(x), nil
	case TypeFloat:
		return Float(x), nil
	case TypeDouble:
		return Double(x), nil
	default:
		return nil, newError(ErrCodeDataError, "Coerce", "%v cannot be transformed to %s", x, dt)
	}
}
