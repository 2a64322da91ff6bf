package object

import (
	"github.com/tidwall/btree"
)

// Pair is one key/value entry of a KV map.
type Pair struct {
	Key   Object
	Value Object
}

// KV is an ordered map from Object keys to Object values. Keys are ordered by
// a total order that agrees with Compare wherever Compare is defined; keys
// that are numerically equal occupy the same slot.
//
// A KV is built once with NewKV and never mutated afterwards.
type KV struct {
	tree *btree.BTreeG[Pair]
}

func pairLess(a, b Pair) bool {
	return totalCompare(a.Key, b.Key) < 0
}

// NewKV builds a map from pairs. Later pairs overwrite earlier ones with an
// equal key.
func NewKV(pairs ...Pair) *KV {
	tree := btree.NewBTreeG[Pair](pairLess)
	for _, p := range pairs {
		if p.Key == nil {
			p.Key = None{}
		}
		if p.Value == nil {
			p.Value = None{}
		}
		tree.Set(p)
	}
	return &KV{tree: tree}
}

// Len returns the number of entries.
func (m *KV) Len() int {
	if m == nil || m.tree == nil {
		return 0
	}
	return m.tree.Len()
}

// Get returns the value stored under key.
func (m *KV) Get(key Object) (Object, bool) {
	if m.Len() == 0 {
		return nil, false
	}
	p, ok := m.tree.Get(Pair{Key: key})
	if !ok {
		return nil, false
	}
	return p.Value, true
}

// Scan calls fn for every entry in key order until fn returns false.
func (m *KV) Scan(fn func(key, value Object) bool) {
	if m.Len() == 0 {
		return
	}
	m.tree.Scan(func(p Pair) bool {
		return fn(p.Key, p.Value)
	})
}

// Pairs returns the entries in key order.
func (m *KV) Pairs() []Pair {
	if m.Len() == 0 {
		return nil
	}
	return m.tree.Items()
}
