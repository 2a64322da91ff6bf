package graph

import (
	"cmp"
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/roach88/gvalue/internal/object"
)

// VertexOrEdge holds exactly one of a vertex or an edge.
type VertexOrEdge struct {
	v *Vertex
	e *Edge
}

// V wraps a vertex.
func V(v *Vertex) VertexOrEdge {
	if v == nil {
		panic("graph: V called with nil vertex")
	}
	return VertexOrEdge{v: v}
}

// E wraps an edge.
func E(e *Edge) VertexOrEdge {
	if e == nil {
		panic("graph: E called with nil edge")
	}
	return VertexOrEdge{e: e}
}

func (x VertexOrEdge) IsVertex() bool { return x.v != nil }

func (x VertexOrEdge) Vertex() (*Vertex, bool) { return x.v, x.v != nil }
func (x VertexOrEdge) Edge() (*Edge, bool)     { return x.e, x.e != nil }

func (x VertexOrEdge) element() Element {
	if x.v != nil {
		return x.v
	}
	return x.e
}

func (x VertexOrEdge) ID() ID       { return x.element().ID() }
func (x VertexOrEdge) Label() Label { return x.element().Label() }

func (x VertexOrEdge) Property(key NameOrID) (object.Object, bool) {
	return x.element().Property(key)
}

func (x VertexOrEdge) Properties() Properties {
	return x.element().Properties()
}

// Compare orders vertices before edges, then by id.
func (x VertexOrEdge) Compare(o VertexOrEdge) int {
	if x.IsVertex() != o.IsVertex() {
		if x.IsVertex() {
			return -1
		}
		return 1
	}
	return cmp.Compare(x.ID(), o.ID())
}

func (x VertexOrEdge) HashTo(d *xxhash.Digest) {
	if x.IsVertex() {
		d.Write([]byte{'v'})
	} else {
		d.Write([]byte{'e'})
	}
	hashID(d, x.ID())
}

func (x VertexOrEdge) String() string {
	if x.v != nil {
		return x.v.String()
	}
	return x.e.String()
}

// PathMode selects what a path retains as it is extended.
type PathMode uint8

const (
	// WholePath keeps every traversed element.
	WholePath PathMode = iota
	// EndOnly keeps only the last element and the number of hops.
	EndOnly
)

func (m PathMode) String() string {
	if m == EndOnly {
		return "end"
	}
	return "whole"
}

// Path is a traversal result. Extending a path returns a new path; the
// receiver is never modified.
type Path struct {
	mode   PathMode
	elems  []VertexOrEdge
	length int
}

// NewPath starts a path at start.
func NewPath(mode PathMode, start VertexOrEdge) *Path {
	return &Path{mode: mode, elems: []VertexOrEdge{start}, length: 1}
}

// NewWholePath builds a whole path from its elements. It panics on an empty
// element list.
func NewWholePath(elems ...VertexOrEdge) *Path {
	if len(elems) == 0 {
		panic("graph: empty path")
	}
	return &Path{mode: WholePath, elems: append([]VertexOrEdge(nil), elems...), length: len(elems)}
}

// NewEndPath builds an end-only path reporting the given length.
func NewEndPath(end VertexOrEdge, length int) *Path {
	if length < 1 {
		panic(fmt.Sprintf("graph: invalid path length %d", length))
	}
	return &Path{mode: EndOnly, elems: []VertexOrEdge{end}, length: length}
}

// Extend returns p with next appended.
func (p *Path) Extend(next VertexOrEdge) *Path {
	if p.mode == EndOnly {
		return &Path{mode: EndOnly, elems: []VertexOrEdge{next}, length: p.length + 1}
	}
	elems := make([]VertexOrEdge, len(p.elems), len(p.elems)+1)
	copy(elems, p.elems)
	return &Path{mode: WholePath, elems: append(elems, next), length: p.length + 1}
}

func (p *Path) Mode() PathMode { return p.mode }

// Len returns the number of elements traversed.
func (p *Path) Len() int { return p.length }

// Elements returns the retained elements. For EndOnly paths that is the last
// element alone. The slice must not be modified.
func (p *Path) Elements() []VertexOrEdge { return p.elems }

// End returns the last element of the path.
func (p *Path) End() VertexOrEdge { return p.elems[len(p.elems)-1] }

// A path presents its end element as its graph element view.
func (p *Path) ID() ID       { return p.End().ID() }
func (p *Path) Label() Label { return p.End().Label() }

func (p *Path) Property(key NameOrID) (object.Object, bool) {
	return p.End().Property(key)
}

func (p *Path) Properties() Properties {
	return p.End().Properties()
}

// Compare orders paths by mode, then element by element, then by length.
func (p *Path) Compare(o *Path) int {
	if c := cmp.Compare(p.mode, o.mode); c != 0 {
		return c
	}
	n := min(len(p.elems), len(o.elems))
	for i := 0; i < n; i++ {
		if c := p.elems[i].Compare(o.elems[i]); c != 0 {
			return c
		}
	}
	if c := cmp.Compare(len(p.elems), len(o.elems)); c != 0 {
		return c
	}
	return cmp.Compare(p.length, o.length)
}

func (p *Path) Equal(o *Path) bool {
	return p.Compare(o) == 0
}

func (p *Path) HashTo(d *xxhash.Digest) {
	d.Write([]byte{byte(p.mode)})
	hashID(d, uint64(p.length))
	for _, e := range p.elems {
		e.HashTo(d)
	}
}

func (p *Path) String() string {
	parts := make([]string, len(p.elems))
	for i, e := range p.elems {
		parts[i] = e.String()
	}
	if p.mode == EndOnly {
		return fmt.Sprintf("path(end, len=%d)[%s]", p.length, strings.Join(parts, ", "))
	}
	return "path[" + strings.Join(parts, ", ") + "]"
}
