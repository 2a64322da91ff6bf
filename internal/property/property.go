// Package property implements typed graph property values: the closed set
// of scalar and list variants a schema can declare, their cross-variant
// numeric comparison, coercion between declared types, containment checks,
// and the two binary layouts used for transport and for storage.
//
// Property values are never modified after construction. Null and Unknown
// are sentinels: Null is an absent value and Unknown is the result of a
// failed parse. Neither has a binary layout.
package property

import (
	"fmt"
	"strings"
)

// DataType is a schema-declared property type.
type DataType uint8

const (
	TypeUnknown DataType = iota
	TypeBool
	TypeChar
	TypeShort
	TypeInt
	TypeLong
	TypeFloat
	TypeDouble
	TypeBytes
	TypeString
	TypeDate
	TypeListInt
	TypeListLong
	TypeListFloat
	TypeListDouble
	TypeListString
	TypeListBytes
)

var typeNames = [...]string{
	TypeUnknown:    "unknown",
	TypeBool:       "bool",
	TypeChar:       "char",
	TypeShort:      "short",
	TypeInt:        "int",
	TypeLong:       "long",
	TypeFloat:      "float",
	TypeDouble:     "double",
	TypeBytes:      "bytes",
	TypeString:     "string",
	TypeDate:       "date",
	TypeListInt:    "list_int",
	TypeListLong:   "list_long",
	TypeListFloat:  "list_float",
	TypeListDouble: "list_double",
	TypeListString: "list_string",
	TypeListBytes:  "list_bytes",
}

func (t DataType) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return fmt.Sprintf("datatype(%d)", uint8(t))
}

// ParseDataType resolves a type name as printed by String. Matching is case
// insensitive.
func ParseDataType(s string) (DataType, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range typeNames {
		if n == name && DataType(i) != TypeUnknown {
			return DataType(i), nil
		}
	}
	return TypeUnknown, fmt.Errorf("unknown data type %q", s)
}

// DataTypes lists every declarable type.
func DataTypes() []DataType {
	out := make([]DataType, 0, len(typeNames)-1)
	for i := range typeNames {
		if DataType(i) != TypeUnknown {
			out = append(out, DataType(i))
		}
	}
	return out
}

// IsList reports whether t is one of the list types.
func (t DataType) IsList() bool {
	return t >= TypeListInt && t <= TypeListBytes
}

// Property is a sealed sum over the property variants below.
type Property interface {
	isProperty()
}

type (
	Bool       bool
	Char       uint8
	Short      int16
	Int        int32
	Long       int64
	Float      float32
	Double     float64
	Bytes      []byte
	String     string
	Date       string
	ListInt    []int32
	ListLong   []int64
	ListFloat  []float32
	ListDouble []float64
	ListString []string
	ListBytes  [][]byte

	// Null is an absent property value.
	Null struct{}
	// Unknown is the result of parsing a literal that does not fit its
	// declared type. Callers must check for it before use.
	Unknown struct{}
)

func (Bool) isProperty()       {}
func (Char) isProperty()       {}
func (Short) isProperty()      {}
func (Int) isProperty()        {}
func (Long) isProperty()       {}
func (Float) isProperty()      {}
func (Double) isProperty()     {}
func (Bytes) isProperty()      {}
func (String) isProperty()     {}
func (Date) isProperty()       {}
func (ListInt) isProperty()    {}
func (ListLong) isProperty()   {}
func (ListFloat) isProperty()  {}
func (ListDouble) isProperty() {}
func (ListString) isProperty() {}
func (ListBytes) isProperty()  {}
func (Null) isProperty()       {}
func (Unknown) isProperty()    {}

// TypeOf returns the data type of p. It reports false for Null, Unknown and
// nil.
func TypeOf(p Property) (DataType, bool) {
	switch p.(type) {
	case Bool:
		return TypeBool, true
	case Char:
		return TypeChar, true
	case Short:
		return TypeShort, true
	case Int:
		return TypeInt, true
	case Long:
		return TypeLong, true
	case Float:
		return TypeFloat, true
	case Double:
		return TypeDouble, true
	case Bytes:
		return TypeBytes, true
	case String:
		return TypeString, true
	case Date:
		return TypeDate, true
	case ListInt:
		return TypeListInt, true
	case ListLong:
		return TypeListLong, true
	case ListFloat:
		return TypeListFloat, true
	case ListDouble:
		return TypeListDouble, true
	case ListString:
		return TypeListString, true
	case ListBytes:
		return TypeListBytes, true
	default:
		return TypeUnknown, false
	}
}

// IsNull reports whether p is Null.
func IsNull(p Property) bool {
	_, ok := p.(Null)
	return ok
}

// IsUnknown reports whether p is Unknown.
func IsUnknown(p Property) bool {
	_, ok := p.(Unknown)
	return ok
}

// Format returns a debug rendering such as int(7) or list_string["a"].
func Format(p Property) string {
	switch v := p.(type) {
	case nil:
		return "<nil>"
	case Null:
		return "null"
	case Unknown:
		return "unknown"
	case String:
		return fmt.Sprintf("string(%q)", string(v))
	case Date:
		return fmt.Sprintf("date(%q)", string(v))
	case Char:
		return fmt.Sprintf("char(%q)", rune(v))
	case ListString:
		return fmt.Sprintf("list_string%q", []string(v))
	default:
		dt, _ := TypeOf(p)
		return fmt.Sprintf("%s(%v)", dt, v)
	}
}

func isNumeric(p Property) bool {
	switch p.(type) {
	case Short, Int, Long, Float, Double:
		return true
	}
	return false
}

func isFloat(p Property) bool {
	switch p.(type) {
	case Float, Double:
		return true
	}
	return false
}

func isNumericList(p Property) bool {
	switch p.(type) {
	case ListInt, ListLong, ListFloat, ListDouble:
		return true
	}
	return false
}

func isFloatList(p Property) bool {
	switch p.(type) {
	case ListFloat, ListDouble:
		return true
	}
	return false
}

// ElemType returns the element type of a list property.
func ElemType(p Property) (DataType, error) {
	switch p.(type) {
	case ListInt:
		return TypeInt, nil
	case ListLong:
		return TypeLong, nil
	case ListFloat:
		return TypeFloat, nil
	case ListDouble:
		return TypeDouble, nil
	case ListString:
		return TypeString, nil
	case ListBytes:
		return TypeBytes, nil
	default:
		return TypeUnknown, mismatch("ElemType", "list", p)
	}
}
