package graph

import (
	"errors"
	"fmt"

	"github.com/roach88/gvalue/internal/object"
	"github.com/roach88/gvalue/internal/wire"
)

// ErrMalformed indicates an encoded graph element carries an invalid
// discriminator byte.
var ErrMalformed = errors.New("graph: malformed element")

const (
	keyID   = 0
	keyName = 1

	elemVertex = 1
	elemEdge   = 2
)

func encodeLabel(w *wire.Writer, l Label) {
	w.WriteBool(l.Valid)
	if l.Valid {
		w.WriteI32(l.ID)
	}
}

func decodeLabel(r *wire.Reader) (Label, error) {
	ok, err := r.ReadBool()
	if err != nil || !ok {
		return NoLabel, err
	}
	id, err := r.ReadI32()
	if err != nil {
		return NoLabel, err
	}
	return LabelOf(id), nil
}

func encodeProps(w *wire.Writer, p Properties) {
	w.WriteU32(uint32(len(p)))
	for _, k := range p.Keys() {
		if k.isName {
			w.WriteU8(keyName)
			w.WriteString(k.name)
		} else {
			w.WriteU8(keyID)
			w.WriteI32(k.id)
		}
		object.Encode(w, p[k])
	}
}

func decodeProps(r *wire.Reader, maxLen int) (Properties, error) {
	n, err := r.ReadLen(maxLen)
	if err != nil || n == 0 {
		return nil, err
	}
	props := make(Properties, min(n, r.Remaining()))
	for i := 0; i < n; i++ {
		kind, err := r.ReadU8()
		if err != nil {
			return nil, err
		}
		var key NameOrID
		switch kind {
		case keyID:
			id, err := r.ReadI32()
			if err != nil {
				return nil, err
			}
			key = PropID(id)
		case keyName:
			s, err := r.ReadString()
			if err != nil {
				return nil, err
			}
			key = Name(s)
		default:
			return nil, fmt.Errorf("%w: property key kind %d", ErrMalformed, kind)
		}
		val, err := object.Decode(r, maxLen)
		if err != nil {
			return nil, fmt.Errorf("property %s: %w", key, err)
		}
		props[key] = val
	}
	return props, nil
}

// EncodeVertex writes id, label and properties.
func EncodeVertex(w *wire.Writer, v *Vertex) {
	w.WriteU64(v.id)
	encodeLabel(w, v.label)
	encodeProps(w, v.props)
}

// DecodeVertex reads a vertex written by EncodeVertex.
func DecodeVertex(r *wire.Reader, maxLen int) (*Vertex, error) {
	id, err := r.ReadU64()
	if err != nil {
		return nil, err
	}
	label, err := decodeLabel(r)
	if err != nil {
		return nil, err
	}
	props, err := decodeProps(r, maxLen)
	if err != nil {
		return nil, fmt.Errorf("vertex %d: %w", id, err)
	}
	return NewVertex(id, label, props), nil
}

// EncodeEdge writes id, label, both endpoints and properties.
func EncodeEdge(w *wire.Writer, e *Edge) {
	w.WriteU64(e.id)
	encodeLabel(w, e.label)
	w.WriteU64(e.src)
	encodeLabel(w, e.srcLabel)
	w.WriteU64(e.dst)
	encodeLabel(w, e.dstLabel)
	encodeProps(w, e.props)
}

// DecodeEdge reads an edge written by EncodeEdge.
func DecodeEdge(r *wire.Reader, maxLen int) (*Edge, error) {
	id, err := r.ReadU64()
	if err != nil {
		return nil, err
	}
	label, err := decodeLabel(r)
	if err != nil {
		return nil, err
	}
	var ends EdgeEnds
	if ends.Src, err = r.ReadU64(); err != nil {
		return nil, err
	}
	if ends.SrcLabel, err = decodeLabel(r); err != nil {
		return nil, err
	}
	if ends.Dst, err = r.ReadU64(); err != nil {
		return nil, err
	}
	if ends.DstLabel, err = decodeLabel(r); err != nil {
		return nil, err
	}
	props, err := decodeProps(r, maxLen)
	if err != nil {
		return nil, fmt.Errorf("edge %d: %w", id, err)
	}
	return NewEdge(id, label, ends, props), nil
}

func encodeVertexOrEdge(w *wire.Writer, x VertexOrEdge) {
	if x.v != nil {
		w.WriteU8(elemVertex)
		EncodeVertex(w, x.v)
		return
	}
	w.WriteU8(elemEdge)
	EncodeEdge(w, x.e)
}

func decodeVertexOrEdge(r *wire.Reader, maxLen int) (VertexOrEdge, error) {
	kind, err := r.ReadU8()
	if err != nil {
		return VertexOrEdge{}, err
	}
	switch kind {
	case elemVertex:
		v, err := DecodeVertex(r, maxLen)
		if err != nil {
			return VertexOrEdge{}, err
		}
		return V(v), nil
	case elemEdge:
		e, err := DecodeEdge(r, maxLen)
		if err != nil {
			return VertexOrEdge{}, err
		}
		return E(e), nil
	default:
		return VertexOrEdge{}, fmt.Errorf("%w: path element kind %d", ErrMalformed, kind)
	}
}

// EncodePath writes the mode, the reported length and the retained elements.
func EncodePath(w *wire.Writer, p *Path) {
	w.WriteU8(uint8(p.mode))
	w.WriteU64(uint64(p.length))
	w.WriteU32(uint32(len(p.elems)))
	for _, e := range p.elems {
		encodeVertexOrEdge(w, e)
	}
}

// DecodePath reads a path written by EncodePath.
func DecodePath(r *wire.Reader, maxLen int) (*Path, error) {
	mode, err := r.ReadU8()
	if err != nil {
		return nil, err
	}
	if PathMode(mode) != WholePath && PathMode(mode) != EndOnly {
		return nil, fmt.Errorf("%w: path mode %d", ErrMalformed, mode)
	}
	length, err := r.ReadU64()
	if err != nil {
		return nil, err
	}
	n, err := r.ReadLen(maxLen)
	if err != nil {
		return nil, err
	}
	if n == 0 || (PathMode(mode) == EndOnly && n != 1) || (PathMode(mode) == WholePath && uint64(n) != length) {
		return nil, fmt.Errorf("%w: %s path with %d elements and length %d", ErrMalformed, PathMode(mode), n, length)
	}
	elems := make([]VertexOrEdge, 0, min(n, r.Remaining()))
	for i := 0; i < n; i++ {
		e, err := decodeVertexOrEdge(r, maxLen)
		if err != nil {
			return nil, fmt.Errorf("path[%d]: %w", i, err)
		}
		elems = append(elems, e)
	}
	return &Path{mode: PathMode(mode), elems: elems, length: int(length)}, nil
}
