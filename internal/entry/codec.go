package entry

import (
	"errors"
	"fmt"

	"github.com/roach88/gvalue/internal/graph"
	"github.com/roach88/gvalue/internal/object"
	"github.com/roach88/gvalue/internal/wire"
)

// DefaultMaxLen bounds every decoded element count unless a Codec overrides it.
const DefaultMaxLen = 1 << 24

// ProtocolErrorCode categorizes decode failures.
type ProtocolErrorCode string

const (
	// ErrCodeUnknownTag indicates a tag byte outside 1..9. The stream is
	// corrupt or was written by an incompatible peer.
	ErrCodeUnknownTag ProtocolErrorCode = "UNKNOWN_TAG"

	// ErrCodeTruncated indicates the stream ended inside an entry.
	ErrCodeTruncated ProtocolErrorCode = "TRUNCATED"

	// ErrCodeLimitExceeded indicates an element count above the codec limit.
	ErrCodeLimitExceeded ProtocolErrorCode = "LIMIT_EXCEEDED"

	// ErrCodeMalformed indicates an invalid payload behind a valid tag.
	ErrCodeMalformed ProtocolErrorCode = "MALFORMED"
)

// ProtocolError reports a stream that cannot be decoded. Decoding stops at
// the first error.
type ProtocolError struct {
	Code   ProtocolErrorCode
	Offset int
	Err    error
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("%s at offset %d: %v", e.Code, e.Offset, e.Err)
}

func (e *ProtocolError) Unwrap() error { return e.Err }

// IsProtocolError returns true if err is a ProtocolError with the given code.
func IsProtocolError(err error, code ProtocolErrorCode) bool {
	var pe *ProtocolError
	if errors.As(err, &pe) {
		return pe.Code == code
	}
	return false
}

var errUnknownTag = errors.New("unknown entry tag")

// Observer receives codec events. Implementations must be safe for
// concurrent use.
type Observer interface {
	Encoded(t Type)
	Decoded(t Type)
	DecodeFailed(code ProtocolErrorCode)
}

// Codec encodes and decodes entries. The zero Codec uses DefaultMaxLen and
// reports to no observer.
type Codec struct {
	// MaxLen bounds collection, property and list lengths while decoding.
	MaxLen int
	// Observer, if set, is notified once per top-level entry.
	Observer Observer
}

func (c Codec) maxLen() int {
	if c.MaxLen > 0 {
		return c.MaxLen
	}
	return DefaultMaxLen
}

// Encode appends the encoding of h to w: the tag byte followed by the
// variant payload.
func (c Codec) Encode(w *wire.Writer, h Handle) {
	encode(w, h)
	if c.Observer != nil {
		c.Observer.Encoded(h.Type())
	}
}

// Marshal returns the encoding of h.
func (c Codec) Marshal(h Handle) []byte {
	w := wire.NewWriter(32)
	c.Encode(w, h)
	return w.Bytes()
}

// Decode reads one entry from r.
func (c Codec) Decode(r *wire.Reader) (Handle, error) {
	start := r.Offset()
	h, err := decode(r, c.maxLen())
	if err != nil {
		pe := classify(err, start)
		if c.Observer != nil {
			c.Observer.DecodeFailed(pe.Code)
		}
		return Handle{}, pe
	}
	if c.Observer != nil {
		c.Observer.Decoded(h.Type())
	}
	return h, nil
}

// Unmarshal decodes a single entry that must span all of data.
func (c Codec) Unmarshal(data []byte) (Handle, error) {
	r := wire.NewReader(data)
	h, err := c.Decode(r)
	if err != nil {
		return Handle{}, err
	}
	if r.Remaining() != 0 {
		pe := &ProtocolError{Code: ErrCodeMalformed, Offset: r.Offset(), Err: fmt.Errorf("%d trailing bytes", r.Remaining())}
		if c.Observer != nil {
			c.Observer.DecodeFailed(pe.Code)
		}
		return Handle{}, pe
	}
	return h, nil
}

// Encode appends h to w with the default codec.
func Encode(w *wire.Writer, h Handle) { Codec{}.Encode(w, h) }

// Decode reads one entry with the default codec.
func Decode(r *wire.Reader) (Handle, error) { return Codec{}.Decode(r) }

func classify(err error, start int) *ProtocolError {
	var pe *ProtocolError
	if errors.As(err, &pe) {
		return pe
	}
	code := ErrCodeMalformed
	switch {
	case errors.Is(err, errUnknownTag):
		code = ErrCodeUnknownTag
	case errors.Is(err, wire.ErrShortBuffer):
		code = ErrCodeTruncated
	case errors.Is(err, wire.ErrLimitExceeded):
		code = ErrCodeLimitExceeded
	}
	return &ProtocolError{Code: code, Offset: start, Err: err}
}

func encode(w *wire.Writer, h Handle) {
	tag := h.Tag()
	w.WriteU8(uint8(tag))
	switch tag {
	case TagVertex:
		graph.EncodeVertex(w, h.v.(*graph.Vertex))
	case TagEdge:
		graph.EncodeEdge(w, h.v.(*graph.Edge))
	case TagPath:
		graph.EncodePath(w, h.v.(*graph.Path))
	case TagObject:
		object.Encode(w, h.v.(object.Object))
	case TagIntersection:
		h.v.(*Intersection).encode(w)
	case TagCollection:
		coll := h.v.(*Collection)
		w.WriteU32(uint32(len(coll.elems)))
		for _, e := range coll.elems {
			encode(w, e)
		}
	case TagPair:
		p := h.v.(*Pair)
		encode(w, p.left)
		encode(w, p.right)
	case TagGeneralIntersection:
		h.v.(*GeneralIntersection).encode(w)
	case TagNull:
	}
}

func decode(r *wire.Reader, maxLen int) (Handle, error) {
	start := r.Offset()
	b, err := r.ReadU8()
	if err != nil {
		return Handle{}, err
	}
	switch Tag(b) {
	case TagVertex:
		v, err := graph.DecodeVertex(r, maxLen)
		if err != nil {
			return Handle{}, err
		}
		return NewVertex(v), nil
	case TagEdge:
		e, err := graph.DecodeEdge(r, maxLen)
		if err != nil {
			return Handle{}, err
		}
		return NewEdge(e), nil
	case TagPath:
		p, err := graph.DecodePath(r, maxLen)
		if err != nil {
			return Handle{}, err
		}
		return NewPath(p), nil
	case TagObject:
		o, err := object.Decode(r, maxLen)
		if err != nil {
			return Handle{}, err
		}
		return NewObject(o), nil
	case TagIntersection:
		x, err := decodeIntersection(r, maxLen)
		if err != nil {
			return Handle{}, err
		}
		return NewIntersection(x), nil
	case TagCollection:
		n, err := r.ReadLen(maxLen)
		if err != nil {
			return Handle{}, err
		}
		elems := make([]Handle, 0, min(n, r.Remaining()))
		for i := 0; i < n; i++ {
			e, err := decode(r, maxLen)
			if err != nil {
				return Handle{}, fmt.Errorf("collection[%d]: %w", i, err)
			}
			elems = append(elems, e)
		}
		return NewCollection(elems), nil
	case TagPair:
		left, err := decode(r, maxLen)
		if err != nil {
			return Handle{}, fmt.Errorf("pair left: %w", err)
		}
		right, err := decode(r, maxLen)
		if err != nil {
			return Handle{}, fmt.Errorf("pair right: %w", err)
		}
		return NewPair(left, right), nil
	case TagGeneralIntersection:
		x, err := decodeGeneralIntersection(r, maxLen)
		if err != nil {
			return Handle{}, err
		}
		return NewGeneralIntersection(x), nil
	case TagNull:
		return Null(), nil
	default:
		return Handle{}, &ProtocolError{
			Code:   ErrCodeUnknownTag,
			Offset: start,
			Err:    fmt.Errorf("%w %d", errUnknownTag, b),
		}
	}
}
