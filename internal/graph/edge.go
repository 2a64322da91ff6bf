package graph

import (
	"cmp"
	"fmt"

	"github.com/cespare/xxhash/v2"

	"github.com/roach88/gvalue/internal/object"
)

// Edge is a directed graph edge. It is immutable after construction.
type Edge struct {
	id       ID
	label    Label
	src      ID
	dst      ID
	srcLabel Label
	dstLabel Label
	props    Properties
}

// EdgeEnds names the endpoints of an edge.
type EdgeEnds struct {
	Src      ID
	Dst      ID
	SrcLabel Label
	DstLabel Label
}

// NewEdge creates an edge. props is retained, not copied.
func NewEdge(id ID, label Label, ends EdgeEnds, props Properties) *Edge {
	return &Edge{
		id:       id,
		label:    label,
		src:      ends.Src,
		dst:      ends.Dst,
		srcLabel: ends.SrcLabel,
		dstLabel: ends.DstLabel,
		props:    props,
	}
}

func (e *Edge) ID() ID          { return e.id }
func (e *Edge) Label() Label    { return e.label }
func (e *Edge) Src() ID         { return e.src }
func (e *Edge) Dst() ID         { return e.dst }
func (e *Edge) SrcLabel() Label { return e.srcLabel }
func (e *Edge) DstLabel() Label { return e.dstLabel }

// Ends returns the endpoints of e.
func (e *Edge) Ends() EdgeEnds {
	return EdgeEnds{Src: e.src, Dst: e.dst, SrcLabel: e.srcLabel, DstLabel: e.dstLabel}
}

func (e *Edge) Property(key NameOrID) (object.Object, bool) {
	o, ok := e.props[key]
	return o, ok
}

func (e *Edge) Properties() Properties {
	if len(e.props) == 0 {
		return nil
	}
	return e.props
}

// Compare orders edges by id.
func (e *Edge) Compare(o *Edge) int {
	return cmp.Compare(e.id, o.id)
}

// Equal reports whether e and o have the same id.
func (e *Edge) Equal(o *Edge) bool {
	return e.id == o.id
}

// HashTo feeds the edge id into d.
func (e *Edge) HashTo(d *xxhash.Digest) {
	hashID(d, e.id)
}

func (e *Edge) String() string {
	return fmt.Sprintf("e[%d:%s](%d->%d)%s", e.id, e.label, e.src, e.dst, formatProps(e.props))
}
