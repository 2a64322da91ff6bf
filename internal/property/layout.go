package property

import (
	"fmt"

	"github.com/roach88/gvalue/internal/wire"
)

// ToBytes encodes p in the transport layout: big-endian fixed-width scalars;
// Bytes, String and Date behind a 4-byte length; lists behind a 4-byte
// element count, with every ListString and ListBytes element carrying its own
// 4-byte length. It panics on Null and Unknown.
func ToBytes(p Property) []byte {
	w := wire.NewWriter(16)
	switch v := p.(type) {
	case Bytes:
		w.WriteBytes(v)
	case String:
		w.WriteString(string(v))
	case Date:
		w.WriteString(string(v))
	case ListString:
		w.WriteU32(uint32(len(v)))
		for _, s := range v {
			w.WriteString(s)
		}
	case ListBytes:
		w.WriteU32(uint32(len(v)))
		for _, b := range v {
			w.WriteBytes(b)
		}
	default:
		writeFixed(w, "ToBytes", p)
	}
	return w.Bytes()
}

// ToVec encodes p in the storage layout: big-endian fixed-width scalars with
// no framing; String, Date and Bytes as raw bytes whose length the store
// tracks; numeric lists as a 4-byte count followed by the elements; string
// and bytes lists as a 4-byte count, one 4-byte cumulative end offset per
// element, then the concatenated element bytes. It panics on Null and
// Unknown.
func ToVec(p Property) []byte {
	w := wire.NewWriter(16)
	switch v := p.(type) {
	case Bytes:
		w.WriteRaw(v)
	case String:
		w.WriteRaw([]byte(v))
	case Date:
		w.WriteRaw([]byte(v))
	case ListString:
		w.WriteU32(uint32(len(v)))
		end := 0
		for _, s := range v {
			end += len(s)
			w.WriteU32(uint32(end))
		}
		for _, s := range v {
			w.WriteRaw([]byte(s))
		}
	case ListBytes:
		w.WriteU32(uint32(len(v)))
		end := 0
		for _, b := range v {
			end += len(b)
			w.WriteU32(uint32(end))
		}
		for _, b := range v {
			w.WriteRaw(b)
		}
	default:
		writeFixed(w, "ToVec", p)
	}
	return w.Bytes()
}

// writeFixed writes the variants whose encoding is the same in both layouts.
func writeFixed(w *wire.Writer, op string, p Property) {
	switch v := p.(type) {
	case Bool:
		w.WriteBool(bool(v))
	case Char:
		w.WriteU8(uint8(v))
	case Short:
		w.WriteI16(int16(v))
	case Int:
		w.WriteI32(int32(v))
	case Long:
		w.WriteI64(int64(v))
	case Float:
		w.WriteF32(float32(v))
	case Double:
		w.WriteF64(float64(v))
	case ListInt:
		w.WriteU32(uint32(len(v)))
		for _, x := range v {
			w.WriteI32(x)
		}
	case ListLong:
		w.WriteU32(uint32(len(v)))
		for _, x := range v {
			w.WriteI64(x)
		}
	case ListFloat:
		w.WriteU32(uint32(len(v)))
		for _, x := range v {
			w.WriteF32(x)
		}
	case ListDouble:
		w.WriteU32(uint32(len(v)))
		for _, x := range v {
			w.WriteF64(x)
		}
	default:
		panic(fmt.Sprintf("property: %s of %s", op, Format(p)))
	}
}

// DecodeTransport decodes transport-layout bytes of type dt. The whole input
// must be consumed.
func DecodeTransport(dt DataType, data []byte) (Property, error) {
	r := wire.NewReader(data)
	var p Property
	var err error
	switch dt {
	case TypeBytes:
		var b []byte
		b, err = r.ReadBytes()
		p = Bytes(b)
	case TypeString, TypeDate:
		var s string
		s, err = r.ReadString()
		if dt == TypeDate {
			p = Date(s)
		} else {
			p = String(s)
		}
	case TypeListString:
		var n int
		if n, err = readCount(r, 4); err == nil {
			list := make(ListString, 0, n)
			for i := 0; i < n && err == nil; i++ {
				var s string
				s, err = r.ReadString()
				list = append(list, s)
			}
			p = list
		}
	case TypeListBytes:
		var n int
		if n, err = readCount(r, 4); err == nil {
			list := make(ListBytes, 0, n)
			for i := 0; i < n && err == nil; i++ {
				var b []byte
				b, err = r.ReadBytes()
				list = append(list, b)
			}
			p = list
		}
	default:
		p, err = readFixed(r, dt)
	}
	if err != nil {
		return nil, malformed("DecodeTransport", dt, err)
	}
	if r.Remaining() != 0 {
		return nil, newError(ErrCodeMalformed, "DecodeTransport", "%d trailing bytes after %s", r.Remaining(), dt)
	}
	return p, nil
}

// DecodeStorage decodes storage-layout bytes of type dt. For String, Date
// and Bytes the input length is the value length.
func DecodeStorage(dt DataType, data []byte) (Property, error) {
	switch dt {
	case TypeBytes:
		return Bytes(append([]byte(nil), data...)), nil
	case TypeString:
		return String(data), nil
	case TypeDate:
		return Date(data), nil
	case TypeListString, TypeListBytes:
		v, err := NewListView(data)
		if err != nil {
			return nil, err
		}
		if dt == TypeListString {
			out := make(ListString, v.Len())
			for i := range out {
				b, err := v.At(i)
				if err != nil {
					return nil, err
				}
				out[i] = string(b)
			}
			return out, nil
		}
		out := make(ListBytes, v.Len())
		for i := range out {
			b, err := v.At(i)
			if err != nil {
				return nil, err
			}
			out[i] = append([]byte(nil), b...)
		}
		return out, nil
	}
	r := wire.NewReader(data)
	p, err := readFixed(r, dt)
	if err != nil {
		return nil, malformed("DecodeStorage", dt, err)
	}
	if r.Remaining() != 0 {
		return nil, newError(ErrCodeMalformed, "DecodeStorage", "%d trailing bytes after %s", r.Remaining(), dt)
	}
	return p, nil
}

func readFixed(r *wire.Reader, dt DataType) (Property, error) {
	switch dt {
	case TypeBool:
		v, err := r.ReadBool()
		return Bool(v), err
	case TypeChar:
		v, err := r.ReadU8()
		return Char(v), err
	case TypeShort:
		v, err := r.ReadI16()
		return Short(v), err
	case TypeInt:
		v, err := r.ReadI32()
		return Int(v), err
	case TypeLong:
		v, err := r.ReadI64()
		return Long(v), err
	case TypeFloat:
		v, err := r.ReadF32()
		return Float(v), err
	case TypeDouble:
		v, err := r.ReadF64()
		return Double(v), err
	case TypeListInt:
		n, err := readCount(r, 4)
		if err != nil {
			return nil, err
		}
		out := make(ListInt, n)
		for i := range out {
			out[i], _ = r.ReadI32()
		}
		return out, nil
	case TypeListLong:
		n, err := readCount(r, 8)
		if err != nil {
			return nil, err
		}
		out := make(ListLong, n)
		for i := range out {
			out[i], _ = r.ReadI64()
		}
		return out, nil
	case TypeListFloat:
		n, err := readCount(r, 4)
		if err != nil {
			return nil, err
		}
		out := make(ListFloat, n)
		for i := range out {
			out[i], _ = r.ReadF32()
		}
		return out, nil
	case TypeListDouble:
		n, err := readCount(r, 8)
		if err != nil {
			return nil, err
		}
		out := make(ListDouble, n)
		for i := range out {
			out[i], _ = r.ReadF64()
		}
		return out, nil
	default:
		return nil, fmt.Errorf("no layout for %s", dt)
	}
}

// readCount reads an element count and checks that n elements of at least
// minSize bytes fit in the remaining input, so the element reads that follow
// cannot run short.
func readCount(r *wire.Reader, minSize int) (int, error) {
	n, err := r.ReadU32()
	if err != nil {
		return 0, err
	}
	if int64(n)*int64(minSize) > int64(r.Remaining()) {
		return 0, fmt.Errorf("count %d exceeds remaining %d bytes: %w", n, r.Remaining(), wire.ErrShortBuffer)
	}
	return int(n), nil
}

func malformed(op string, dt DataType, err error) *Error {
	return newError(ErrCodeMalformed, op, "%s: %v", dt, err)
}

// ListView reads single elements of a storage-layout string or bytes list
// without decoding the others.
type ListView struct {
	data    []byte
	n       int
	payload int
}

// NewListView checks the list header and returns a view over data. data is
// retained, not copied.
func NewListView(data []byte) (*ListView, error) {
	r := wire.NewReader(data)
	n, err := readCount(r, 4)
	if err != nil {
		return nil, newError(ErrCodeMalformed, "NewListView", "%v", err)
	}
	v := &ListView{data: data, n: n, payload: 4 + 4*n}
	if n > 0 {
		if last := v.offset(n - 1); last != len(data)-v.payload {
			return nil, newError(ErrCodeMalformed, "NewListView", "last offset %d, payload is %d bytes", last, len(data)-v.payload)
		}
	} else if len(data) != 4 {
		return nil, newError(ErrCodeMalformed, "NewListView", "%d trailing bytes after empty list", len(data)-4)
	}
	return v, nil
}

// Len returns the element count.
func (v *ListView) Len() int { return v.n }

func (v *ListView) offset(i int) int {
	at := 4 + 4*i
	return int(uint32(v.data[at])<<24 | uint32(v.data[at+1])<<16 | uint32(v.data[at+2])<<8 | uint32(v.data[at+3]))
}

// At returns the bytes of element i, aliasing the view's data. It panics if
// i is out of range.
func (v *ListView) At(i int) ([]byte, error) {
	if i < 0 || i >= v.n {
		panic(fmt.Sprintf("property: list index %d out of range [0, %d)", i, v.n))
	}
	start := 0
	if i > 0 {
		start = v.offset(i - 1)
	}
	end := v.offset(i)
	if start > end || v.payload+end > len(v.data) {
		return nil, newError(ErrCodeMalformed, "ListView.At", "element %d spans [%d, %d)", i, start, end)
	}
	return v.data[v.payload+start : v.payload+end], nil
}
