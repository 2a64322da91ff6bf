// Package entry implements the runtime values that flow through a query
// pipeline: vertices, edges, paths, scalar objects, pairs, collections,
// intersection results and the null element.
//
// Every value is passed around as a Handle. A Handle carries its wire tag
// next to a pointer to the concrete value, so type queries are a field read
// and every polymorphic operation (codec, comparison, hashing) switches on the
// tag. Handles are immutable: values are completed before a Handle is built,
// and copying a Handle copies two words and shares the value. Handles may be
// read from any number of goroutines without synchronization.
package entry

import (
	"fmt"

	"github.com/roach88/gvalue/internal/graph"
	"github.com/roach88/gvalue/internal/object"
)

// Type is the logical kind of an entry.
type Type uint8

const (
	TypeVertex Type = iota + 1
	TypeEdge
	TypePath
	TypeObject
	TypePair
	TypeIntersection
	TypeCollection
	TypeNull
)

func (t Type) String() string {
	switch t {
	case TypeVertex:
		return "vertex"
	case TypeEdge:
		return "edge"
	case TypePath:
		return "path"
	case TypeObject:
		return "object"
	case TypePair:
		return "pair"
	case TypeIntersection:
		return "intersection"
	case TypeCollection:
		return "collection"
	case TypeNull:
		return "null"
	default:
		return fmt.Sprintf("type(%d)", uint8(t))
	}
}

// Tag is the wire discriminator written before every encoded entry. Both
// intersection forms report TypeIntersection but keep distinct tags.
type Tag uint8

const (
	TagVertex              Tag = 1
	TagEdge                Tag = 2
	TagPath                Tag = 3
	TagObject              Tag = 4
	TagIntersection        Tag = 5
	TagCollection          Tag = 6
	TagPair                Tag = 7
	TagGeneralIntersection Tag = 8
	TagNull                Tag = 9
)

// Valid reports whether t is a known tag.
func (t Tag) Valid() bool {
	return t >= TagVertex && t <= TagNull
}

// Type maps a tag to its entry type. It panics on an unknown tag.
func (t Tag) Type() Type {
	switch t {
	case TagVertex:
		return TypeVertex
	case TagEdge:
		return TypeEdge
	case TagPath:
		return TypePath
	case TagObject:
		return TypeObject
	case TagIntersection, TagGeneralIntersection:
		return TypeIntersection
	case TagCollection:
		return TypeCollection
	case TagPair:
		return TypePair
	case TagNull:
		return TypeNull
	default:
		panic(fmt.Sprintf("entry: unknown tag %d", uint8(t)))
	}
}

// Handle is a shared, immutable reference to an entry value.
//
// The zero Handle is the null entry.
type Handle struct {
	tag Tag
	v   any
}

// Null returns the null entry: an absent graph element.
func Null() Handle {
	return Handle{tag: TagNull}
}

// NewVertex wraps v.
func NewVertex(v *graph.Vertex) Handle {
	if v == nil {
		panic("entry: nil vertex")
	}
	return Handle{tag: TagVertex, v: v}
}

// NewEdge wraps e.
func NewEdge(e *graph.Edge) Handle {
	if e == nil {
		panic("entry: nil edge")
	}
	return Handle{tag: TagEdge, v: e}
}

// NewVertexOrEdge wraps whichever element x holds.
func NewVertexOrEdge(x graph.VertexOrEdge) Handle {
	if v, ok := x.Vertex(); ok {
		return NewVertex(v)
	}
	e, _ := x.Edge()
	return NewEdge(e)
}

// NewPath wraps p.
func NewPath(p *graph.Path) Handle {
	if p == nil {
		panic("entry: nil path")
	}
	return Handle{tag: TagPath, v: p}
}

// NewObject wraps a scalar. A nil object is stored as object.None.
func NewObject(o object.Object) Handle {
	if o == nil {
		o = object.None{}
	}
	return Handle{tag: TagObject, v: o}
}

// NewPair wraps a pair of entries.
func NewPair(left, right Handle) Handle {
	return Handle{tag: TagPair, v: &Pair{left: left, right: right}}
}

// NewCollection wraps an ordered list of entries. elems is retained; the
// caller must not modify it afterwards.
func NewCollection(elems []Handle) Handle {
	return Handle{tag: TagCollection, v: &Collection{elems: elems}}
}

// NewIntersection wraps a compact intersection result.
func NewIntersection(x *Intersection) Handle {
	if x == nil {
		panic("entry: nil intersection")
	}
	return Handle{tag: TagIntersection, v: x}
}

// NewGeneralIntersection wraps a general intersection result.
func NewGeneralIntersection(x *GeneralIntersection) Handle {
	if x == nil {
		panic("entry: nil general intersection")
	}
	return Handle{tag: TagGeneralIntersection, v: x}
}

// Tag returns the wire tag of h.
func (h Handle) Tag() Tag {
	if h.tag == 0 {
		return TagNull
	}
	return h.tag
}

// Type returns the entry type of h.
func (h Handle) Type() Type {
	return h.Tag().Type()
}

func (h Handle) AsVertex() (*graph.Vertex, bool) {
	v, ok := h.v.(*graph.Vertex)
	return v, ok
}

func (h Handle) AsEdge() (*graph.Edge, bool) {
	e, ok := h.v.(*graph.Edge)
	return e, ok
}

func (h Handle) AsPath() (*graph.Path, bool) {
	p, ok := h.v.(*graph.Path)
	return p, ok
}

func (h Handle) AsObject() (object.Object, bool) {
	if h.tag != TagObject {
		return nil, false
	}
	return h.v.(object.Object), true
}

func (h Handle) AsPair() (*Pair, bool) {
	p, ok := h.v.(*Pair)
	return p, ok
}

func (h Handle) AsCollection() (*Collection, bool) {
	c, ok := h.v.(*Collection)
	return c, ok
}

func (h Handle) AsIntersection() (*Intersection, bool) {
	x, ok := h.v.(*Intersection)
	return x, ok
}

func (h Handle) AsGeneralIntersection() (*GeneralIntersection, bool) {
	x, ok := h.v.(*GeneralIntersection)
	return x, ok
}

// IsNone reports whether h is the null entry or an object holding None.
func (h Handle) IsNone() bool {
	switch h.Tag() {
	case TagNull:
		return true
	case TagObject:
		return object.IsNone(h.v.(object.Object))
	default:
		return false
	}
}

func (h Handle) String() string {
	switch h.Tag() {
	case TagNull:
		return "null"
	case TagObject:
		return object.Format(h.v.(object.Object))
	default:
		return fmt.Sprint(h.v)
	}
}
