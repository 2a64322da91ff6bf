package entry

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/cespare/xxhash/v2"

	"github.com/roach88/gvalue/internal/graph"
	"github.com/roach88/gvalue/internal/wire"
)

// Intersection is the compact result of intersecting adjacency lists: the
// surviving vertex ids in ascending order, each with the number of ways it
// was reached.
type Intersection struct {
	ids    []graph.ID
	counts []uint32
}

// NewIntersectionOf builds an intersection seeded with one adjacency list.
// Repeated ids accumulate multiplicity.
func NewIntersectionOf(ids []graph.ID) *Intersection {
	sorted := slices.Clone(ids)
	slices.Sort(sorted)
	x := &Intersection{}
	for _, id := range sorted {
		if n := len(x.ids); n > 0 && x.ids[n-1] == id {
			x.counts[n-1]++
			continue
		}
		x.ids = append(x.ids, id)
		x.counts = append(x.counts, 1)
	}
	return x
}

// Intersect returns the ids of x that also appear in seeker. Each surviving
// count is multiplied by the number of occurrences in seeker.
func (x *Intersection) Intersect(seeker []graph.ID) *Intersection {
	hits := make(map[graph.ID]uint32, len(seeker))
	for _, id := range seeker {
		hits[id]++
	}
	out := &Intersection{}
	for i, id := range x.ids {
		if n := hits[id]; n > 0 {
			out.ids = append(out.ids, id)
			out.counts = append(out.counts, x.counts[i]*n)
		}
	}
	return out
}

// Len returns the total multiplicity.
func (x *Intersection) Len() int {
	n := 0
	for _, c := range x.counts {
		n += int(c)
	}
	return n
}

// IsEmpty reports whether no vertex survived.
func (x *Intersection) IsEmpty() bool { return len(x.ids) == 0 }

// IDs returns the distinct surviving ids. The slice must not be modified.
func (x *Intersection) IDs() []graph.ID { return x.ids }

// Count returns the multiplicity of the i-th id.
func (x *Intersection) Count(i int) uint32 { return x.counts[i] }

// Expand lists every id as many times as it was matched.
func (x *Intersection) Expand() []graph.ID {
	out := make([]graph.ID, 0, x.Len())
	for i, id := range x.ids {
		for c := uint32(0); c < x.counts[i]; c++ {
			out = append(out, id)
		}
	}
	return out
}

func (x *Intersection) Compare(o *Intersection) int {
	n := min(len(x.ids), len(o.ids))
	for i := 0; i < n; i++ {
		if c := cmp.Compare(x.ids[i], o.ids[i]); c != 0 {
			return c
		}
		if c := cmp.Compare(x.counts[i], o.counts[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(x.ids), len(o.ids))
}

func (x *Intersection) HashTo(d *xxhash.Digest) {
	w := wire.NewWriter(4 + 12*len(x.ids))
	x.encode(w)
	d.Write(w.Bytes())
}

func (x *Intersection) String() string {
	return fmt.Sprintf("intersect%v", x.Expand())
}

func (x *Intersection) encode(w *wire.Writer) {
	w.WriteU32(uint32(len(x.ids)))
	for i, id := range x.ids {
		w.WriteU64(id)
		w.WriteU32(x.counts[i])
	}
}

func decodeIntersection(r *wire.Reader, maxLen int) (*Intersection, error) {
	n, err := r.ReadLen(maxLen)
	if err != nil {
		return nil, err
	}
	x := &Intersection{
		ids:    make([]graph.ID, 0, min(n, r.Remaining())),
		counts: make([]uint32, 0, min(n, r.Remaining())),
	}
	for i := 0; i < n; i++ {
		id, err := r.ReadU64()
		if err != nil {
			return nil, err
		}
		c, err := r.ReadU32()
		if err != nil {
			return nil, err
		}
		x.ids = append(x.ids, id)
		x.counts = append(x.counts, c)
	}
	return x, nil
}

// GeneralIntersection is the intersection result that keeps, for every
// surviving vertex, the edges it was reached through: one group of edge ids
// per intersected adjacency.
type GeneralIntersection struct {
	ids    []graph.ID
	groups [][][]graph.ID
}

// Adjacency maps a neighbor vertex to the edges leading to it.
type Adjacency map[graph.ID][]graph.ID

// NewGeneralIntersectionOf builds an intersection seeded with one adjacency.
func NewGeneralIntersectionOf(adj Adjacency) *GeneralIntersection {
	x := &GeneralIntersection{}
	for _, id := range sortedKeys(adj) {
		x.ids = append(x.ids, id)
		x.groups = append(x.groups, [][]graph.ID{slices.Clone(adj[id])})
	}
	return x
}

// Intersect keeps the vertices of x present in adj, appending their edges
// from adj as a new group.
func (x *GeneralIntersection) Intersect(adj Adjacency) *GeneralIntersection {
	out := &GeneralIntersection{}
	for i, id := range x.ids {
		edges, ok := adj[id]
		if !ok {
			continue
		}
		groups := make([][]graph.ID, len(x.groups[i]), len(x.groups[i])+1)
		copy(groups, x.groups[i])
		out.ids = append(out.ids, id)
		out.groups = append(out.groups, append(groups, slices.Clone(edges)))
	}
	return out
}

// Len returns the number of surviving vertices.
func (x *GeneralIntersection) Len() int { return len(x.ids) }

// IDs returns the surviving vertex ids in ascending order.
func (x *GeneralIntersection) IDs() []graph.ID { return x.ids }

// Groups returns the edge groups recorded for the i-th vertex.
func (x *GeneralIntersection) Groups(i int) [][]graph.ID { return x.groups[i] }

func (x *GeneralIntersection) Compare(o *GeneralIntersection) int {
	n := min(len(x.ids), len(o.ids))
	for i := 0; i < n; i++ {
		if c := cmp.Compare(x.ids[i], o.ids[i]); c != 0 {
			return c
		}
		if c := slices.CompareFunc(x.groups[i], o.groups[i], compareGroup); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(x.ids), len(o.ids))
}

func (x *GeneralIntersection) HashTo(d *xxhash.Digest) {
	w := wire.NewWriter(64)
	x.encode(w)
	d.Write(w.Bytes())
}

func (x *GeneralIntersection) String() string {
	return fmt.Sprintf("general_intersect%v", x.ids)
}

func (x *GeneralIntersection) encode(w *wire.Writer) {
	w.WriteU32(uint32(len(x.ids)))
	for i, id := range x.ids {
		w.WriteU64(id)
		w.WriteU32(uint32(len(x.groups[i])))
		for _, g := range x.groups[i] {
			w.WriteU32(uint32(len(g)))
			for _, e := range g {
				w.WriteU64(e)
			}
		}
	}
}

func decodeGeneralIntersection(r *wire.Reader, maxLen int) (*GeneralIntersection, error) {
	n, err := r.ReadLen(maxLen)
	if err != nil {
		return nil, err
	}
	x := &GeneralIntersection{}
	for i := 0; i < n; i++ {
		id, err := r.ReadU64()
		if err != nil {
			return nil, err
		}
		ng, err := r.ReadLen(maxLen)
		if err != nil {
			return nil, err
		}
		groups := make([][]graph.ID, 0, min(ng, r.Remaining()))
		for j := 0; j < ng; j++ {
			ne, err := r.ReadLen(maxLen)
			if err != nil {
				return nil, err
			}
			g := make([]graph.ID, 0, min(ne, r.Remaining()))
			for k := 0; k < ne; k++ {
				e, err := r.ReadU64()
				if err != nil {
					return nil, err
				}
				g = append(g, e)
			}
			groups = append(groups, g)
		}
		x.ids = append(x.ids, id)
		x.groups = append(x.groups, groups)
	}
	return x, nil
}

func compareGroup(a, b []graph.ID) int {
	return slices.Compare(a, b)
}

func sortedKeys(adj Adjacency) []graph.ID {
	keys := make([]graph.ID, 0, len(adj))
	for k := range adj {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
