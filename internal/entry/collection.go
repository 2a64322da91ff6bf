package entry

import (
	"strings"
)

// Pair is an ordered 2-tuple of entries.
type Pair struct {
	left  Handle
	right Handle
}

func (p *Pair) Left() Handle  { return p.left }
func (p *Pair) Right() Handle { return p.right }

func (p *Pair) String() string {
	return "(" + p.left.String() + ", " + p.right.String() + ")"
}

// Collection is an ordered list of entries.
type Collection struct {
	elems []Handle
}

func (c *Collection) Len() int { return len(c.elems) }

// At returns the i-th element.
func (c *Collection) At(i int) Handle { return c.elems[i] }

// Elements returns the elements. The slice must not be modified.
func (c *Collection) Elements() []Handle { return c.elems }

func (c *Collection) String() string {
	parts := make([]string, len(c.elems))
	for i, e := range c.elems {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// CollectionBuilder accumulates entries for a collection. The builder is
// owned by a single producer; Build publishes the result and resets the
// builder.
type CollectionBuilder struct {
	elems []Handle
}

// NewCollectionBuilder creates a builder with room for n elements.
func NewCollectionBuilder(n int) *CollectionBuilder {
	return &CollectionBuilder{elems: make([]Handle, 0, n)}
}

// Add appends entries to the collection under construction.
func (b *CollectionBuilder) Add(hs ...Handle) *CollectionBuilder {
	b.elems = append(b.elems, hs...)
	return b
}

// Len returns the number of entries added so far.
func (b *CollectionBuilder) Len() int { return len(b.elems) }

// Build returns the collection handle. Later calls to Add start a new
// collection.
func (b *CollectionBuilder) Build() Handle {
	h := NewCollection(b.elems)
	b.elems = nil
	return h
}
