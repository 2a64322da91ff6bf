package entry

import (
	"fmt"

	"github.com/roach88/gvalue/internal/graph"
	"github.com/roach88/gvalue/internal/object"
)

// nullElement is the graph element view of the null entry.
type nullElement struct{}

func (nullElement) ID() graph.ID       { return graph.NullID }
func (nullElement) Label() graph.Label { return graph.NoLabel }

func (nullElement) Property(graph.NameOrID) (object.Object, bool) { return nil, false }
func (nullElement) Properties() graph.Properties                  { return nil }

// AsElement returns the graph element view of vertices, edges, paths and the
// null entry.
func (h Handle) AsElement() (graph.Element, bool) {
	switch h.Tag() {
	case TagVertex, TagEdge, TagPath:
		return h.v.(graph.Element), true
	case TagNull:
		return nullElement{}, true
	default:
		return nil, false
	}
}

func (h Handle) mustElement(op string) graph.Element {
	el, ok := h.AsElement()
	if !ok {
		panic(fmt.Sprintf("entry: %s on %s entry", op, h.Type()))
	}
	return el
}

// ID returns the element id. It panics unless h has a graph element view.
func (h Handle) ID() graph.ID {
	return h.mustElement("ID").ID()
}

// Label returns the element label. It panics unless h has a graph element view.
func (h Handle) Label() graph.Label {
	return h.mustElement("Label").Label()
}

// Property returns one element property. It panics unless h has a graph
// element view.
func (h Handle) Property(key graph.NameOrID) (object.Object, bool) {
	return h.mustElement("Property").Property(key)
}

// Properties returns all element properties. It panics unless h has a graph
// element view.
func (h Handle) Properties() graph.Properties {
	return h.mustElement("Properties").Properties()
}

// Len returns the logical length of h: the element count of a collection, the
// number of hops of a path, the match count of an intersection and the
// scalar length of an object. Null has length zero.
func (h Handle) Len() int {
	switch h.Tag() {
	case TagVertex, TagEdge, TagPair:
		return 1
	case TagPath:
		return h.v.(*graph.Path).Len()
	case TagObject:
		return object.Len(h.v.(object.Object))
	case TagCollection:
		return h.v.(*Collection).Len()
	case TagIntersection:
		return h.v.(*Intersection).Len()
	case TagGeneralIntersection:
		return h.v.(*GeneralIntersection).Len()
	default:
		return 0
	}
}

// Scalar returns the scalar view of h: the object itself, the id of a vertex
// or edge, and None for every other entry.
func (h Handle) Scalar() object.Object {
	switch h.Tag() {
	case TagObject:
		return h.v.(object.Object)
	case TagVertex, TagEdge:
		return object.NewULong(h.v.(graph.Element).ID())
	default:
		return object.None{}
	}
}
