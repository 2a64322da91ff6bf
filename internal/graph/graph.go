// Package graph defines the graph primitives carried by query entries:
// vertices, edges and paths, together with the Element view (id, label,
// properties) that operators use to read them uniformly.
//
// Identity is by id. Two vertices with the same id are equal regardless of
// label or properties, and they hash identically.
package graph

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strconv"

	"github.com/roach88/gvalue/internal/object"
)

// ID is a globally unique vertex or edge identifier.
type ID = uint64

// NullID is the id reported by an absent graph element.
const NullID ID = math.MaxUint64

// Label is an optional label id.
type Label struct {
	ID    int32
	Valid bool
}

// NoLabel is the label of an unlabeled element.
var NoLabel = Label{}

// LabelOf returns a present label.
func LabelOf(id int32) Label {
	return Label{ID: id, Valid: true}
}

func (l Label) String() string {
	if !l.Valid {
		return "-"
	}
	return strconv.FormatInt(int64(l.ID), 10)
}

// NameOrID keys a property either by name or by numeric property id.
type NameOrID struct {
	name   string
	id     int32
	isName bool
}

// Name returns a name key.
func Name(s string) NameOrID {
	return NameOrID{name: s, isName: true}
}

// PropID returns a numeric key.
func PropID(id int32) NameOrID {
	return NameOrID{id: id}
}

// IsName reports whether k is a name key.
func (k NameOrID) IsName() bool { return k.isName }

// Name returns the key's name; empty for numeric keys.
func (k NameOrID) Name() string { return k.name }

// ID returns the key's numeric id; zero for name keys.
func (k NameOrID) ID() int32 { return k.id }

func (k NameOrID) String() string {
	if k.isName {
		return k.name
	}
	return "#" + strconv.FormatInt(int64(k.id), 10)
}

// compareKeys orders numeric keys before names.
func compareKeys(a, b NameOrID) int {
	switch {
	case a.isName != b.isName:
		if a.isName {
			return 1
		}
		return -1
	case a.isName:
		return cmp.Compare(a.name, b.name)
	default:
		return cmp.Compare(a.id, b.id)
	}
}

// Properties maps property keys to values.
type Properties map[NameOrID]object.Object

// Keys returns the property keys in a deterministic order: numeric ids
// ascending, then names.
func (p Properties) Keys() []NameOrID {
	keys := make([]NameOrID, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareKeys)
	return keys
}

// Clone returns a shallow copy of p, or nil when p is empty.
func (p Properties) Clone() Properties {
	if len(p) == 0 {
		return nil
	}
	out := make(Properties, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Element is the graph element view shared by vertices, edges, paths and the
// null entry.
type Element interface {
	ID() ID
	Label() Label
	// Property returns the value stored under key.
	Property(key NameOrID) (object.Object, bool)
	// Properties returns all properties, or nil when the element carries none.
	Properties() Properties
}

func formatProps(p Properties) string {
	if len(p) == 0 {
		return "{}"
	}
	s := "{"
	for i, k := range p.Keys() {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprintf("%s: %s", k, object.Format(p[k]))
	}
	return s + "}"
}
