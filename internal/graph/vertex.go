package graph

import (
	"cmp"
	"fmt"

	"github.com/cespare/xxhash/v2"

	"github.com/roach88/gvalue/internal/object"
)

// Vertex is a graph vertex. It is immutable after construction.
type Vertex struct {
	id    ID
	label Label
	props Properties
}

// NewVertex creates a vertex. props is retained, not copied.
func NewVertex(id ID, label Label, props Properties) *Vertex {
	return &Vertex{id: id, label: label, props: props}
}

func (v *Vertex) ID() ID       { return v.id }
func (v *Vertex) Label() Label { return v.label }

func (v *Vertex) Property(key NameOrID) (object.Object, bool) {
	o, ok := v.props[key]
	return o, ok
}

func (v *Vertex) Properties() Properties {
	if len(v.props) == 0 {
		return nil
	}
	return v.props
}

// Compare orders vertices by id.
func (v *Vertex) Compare(o *Vertex) int {
	return cmp.Compare(v.id, o.id)
}

// Equal reports whether v and o have the same id.
func (v *Vertex) Equal(o *Vertex) bool {
	return v.id == o.id
}

// HashTo feeds the vertex id into d.
func (v *Vertex) HashTo(d *xxhash.Digest) {
	hashID(d, v.id)
}

func (v *Vertex) String() string {
	return fmt.Sprintf("v[%d:%s]%s", v.id, v.label, formatProps(v.props))
}

func hashID(d *xxhash.Digest, id ID) {
	var buf [8]byte
	for i := 7; i >= 0; i-- {
		buf[i] = byte(id)
		id >>= 8
	}
	d.Write(buf[:])
}
