package entry

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/gvalue/internal/graph"
	"github.com/roach88/gvalue/internal/object"
	"github.com/roach88/gvalue/internal/wire"
)

func vertex(id graph.ID) Handle {
	return NewVertex(graph.NewVertex(id, graph.LabelOf(0), graph.Properties{
		graph.Name("name"): object.String("v"),
	}))
}

func edge(id graph.ID) Handle {
	return NewEdge(graph.NewEdge(id, graph.LabelOf(1), graph.EdgeEnds{Src: 1, Dst: 2}, nil))
}

// samples returns one value per tag, plus nested composites.
func samples() []Handle {
	v1 := graph.NewVertex(1, graph.LabelOf(0), nil)
	e2 := graph.NewEdge(2, graph.NoLabel, graph.EdgeEnds{Src: 1, Dst: 3}, nil)
	return []Handle{
		vertex(1),
		edge(2),
		NewPath(graph.NewWholePath(graph.V(v1), graph.E(e2))),
		NewPath(graph.NewEndPath(graph.E(e2), 5)),
		NewObject(object.NewInteger(7)),
		NewObject(object.None{}),
		NewObject(object.NewKV(object.Pair{Key: object.String("k"), Value: object.Vector{object.NewDouble(1.5)}})),
		NewIntersection(NewIntersectionOf([]graph.ID{3, 1, 3})),
		NewCollection([]Handle{vertex(1), NewObject(object.String("x")), Null()}),
		NewCollection(nil),
		NewPair(vertex(1), NewPair(edge(2), NewObject(object.NewLong(-1)))),
		NewGeneralIntersection(NewGeneralIntersectionOf(Adjacency{4: {40, 41}, 2: {20}})),
		Null(),
	}
}

func TestTagTypeMapping(t *testing.T) {
	want := map[Tag]Type{
		1: TypeVertex, 2: TypeEdge, 3: TypePath, 4: TypeObject, 5: TypeIntersection,
		6: TypeCollection, 7: TypePair, 8: TypeIntersection, 9: TypeNull,
	}
	for tag, typ := range want {
		assert.True(t, tag.Valid())
		assert.Equal(t, typ, tag.Type(), "tag %d", tag)
	}
	assert.False(t, Tag(0).Valid())
	assert.False(t, Tag(10).Valid())
	assert.Panics(t, func() { _ = Tag(10).Type() })
}

func TestHandleTypesAndNarrowing(t *testing.T) {
	h := vertex(1)
	assert.Equal(t, TypeVertex, h.Type())
	v, ok := h.AsVertex()
	require.True(t, ok)
	assert.Equal(t, graph.ID(1), v.ID())
	_, ok = h.AsEdge()
	assert.False(t, ok)
	_, ok = h.AsObject()
	assert.False(t, ok)

	o, ok := NewObject(object.NewInteger(3)).AsObject()
	require.True(t, ok)
	assert.True(t, object.Equal(object.NewLong(3), o))

	var zero Handle
	assert.Equal(t, TypeNull, zero.Type())
	assert.True(t, Equal(zero, Null()))

	gi := NewGeneralIntersection(NewGeneralIntersectionOf(Adjacency{1: {2}}))
	assert.Equal(t, TypeIntersection, gi.Type())
	assert.Equal(t, TagGeneralIntersection, gi.Tag())
}

func TestIsNone(t *testing.T) {
	assert.True(t, Null().IsNone())
	assert.True(t, NewObject(object.None{}).IsNone())
	assert.True(t, NewObject(nil).IsNone())
	assert.False(t, NewObject(object.NewInteger(0)).IsNone())
	assert.False(t, vertex(1).IsNone())
	assert.False(t, NewCollection(nil).IsNone())
}

func TestElementView(t *testing.T) {
	h := vertex(9)
	assert.Equal(t, graph.ID(9), h.ID())
	assert.Equal(t, graph.LabelOf(0), h.Label())
	name, ok := h.Property(graph.Name("name"))
	require.True(t, ok)
	assert.Equal(t, object.String("v"), name)
	assert.Len(t, h.Properties(), 1)

	n := Null()
	assert.Equal(t, graph.NullID, n.ID())
	assert.Equal(t, uint64(math.MaxUint64), n.ID())
	assert.False(t, n.Label().Valid)
	_, ok = n.Property(graph.Name("name"))
	assert.False(t, ok)
	assert.Nil(t, n.Properties())
	assert.Equal(t, 0, n.Len())
	_, ok = n.AsElement()
	assert.True(t, ok)

	p := NewPath(graph.NewWholePath(graph.V(graph.NewVertex(1, graph.NoLabel, nil)), graph.V(graph.NewVertex(5, graph.LabelOf(2), nil))))
	assert.Equal(t, graph.ID(5), p.ID())
	assert.Equal(t, 2, p.Len())
}

func TestElementAccessorOnNonElementPanics(t *testing.T) {
	nonElements := []Handle{
		NewObject(object.NewInteger(1)),
		NewPair(Null(), Null()),
		NewCollection(nil),
		NewIntersection(NewIntersectionOf(nil)),
		NewGeneralIntersection(NewGeneralIntersectionOf(nil)),
	}
	for _, h := range nonElements {
		t.Run(h.Type().String(), func(t *testing.T) {
			_, ok := h.AsElement()
			assert.False(t, ok)
			assert.Panics(t, func() { h.ID() })
			assert.Panics(t, func() { h.Label() })
			assert.Panics(t, func() { h.Property(graph.Name("x")) })
			assert.Panics(t, func() { h.Properties() })
		})
	}
}

func TestLen(t *testing.T) {
	assert.Equal(t, 1, vertex(1).Len())
	assert.Equal(t, 1, NewPair(Null(), Null()).Len())
	assert.Equal(t, 3, NewCollection([]Handle{Null(), Null(), Null()}).Len())
	assert.Equal(t, 2, NewObject(object.Vector{object.None{}, object.None{}}).Len())
	assert.Equal(t, 3, NewIntersection(NewIntersectionOf([]graph.ID{1, 2, 2})).Len())
}

func TestScalar(t *testing.T) {
	assert.True(t, object.Equal(object.NewLong(7), vertex(7).Scalar()))
	assert.True(t, object.Equal(object.String("s"), NewObject(object.String("s")).Scalar()))
	assert.True(t, object.IsNone(NewCollection(nil).Scalar()))
	assert.True(t, object.IsNone(Null().Scalar()))
}

func TestRoundTrip(t *testing.T) {
	for _, h := range samples() {
		t.Run(h.Type().String(), func(t *testing.T) {
			data := Codec{}.Marshal(h)
			assert.Equal(t, byte(h.Tag()), data[0])

			got, err := Codec{}.Unmarshal(data)
			require.NoError(t, err)
			assert.Equal(t, h.Tag(), got.Tag())
			assert.True(t, Equal(h, got), "want %s, got %s", h, got)
			assert.Equal(t, Hash(h), Hash(got))
		})
	}
}

func TestNullEncodesAsSingleByte(t *testing.T) {
	assert.Equal(t, []byte{9}, Codec{}.Marshal(Null()))
}

func TestCrossTagNeverEqualOrOrdered(t *testing.T) {
	all := samples()
	for i, a := range all {
		for j, b := range all {
			if a.Tag() == b.Tag() {
				continue
			}
			_, ok := Compare(a, b)
			assert.False(t, ok, "%d vs %d", i, j)
			assert.False(t, Equal(a, b))
			assert.False(t, Less(a, b))
		}
	}

	// same id, different tag
	assert.False(t, Equal(vertex(1), edge(1)))
	assert.False(t, Equal(NewIntersection(NewIntersectionOf(nil)), NewGeneralIntersection(NewGeneralIntersectionOf(nil))))
}

func TestCompareSameTag(t *testing.T) {
	c, ok := Compare(vertex(1), vertex(2))
	require.True(t, ok)
	assert.Equal(t, -1, c)

	c, ok = Compare(Null(), Null())
	require.True(t, ok)
	assert.Equal(t, 0, c)

	_, ok = Compare(NewObject(object.String("a")), NewObject(object.NewInteger(1)))
	assert.False(t, ok)

	a := NewCollection([]Handle{vertex(1), NewObject(object.NewInteger(1))})
	b := NewCollection([]Handle{vertex(1), NewObject(object.NewInteger(2))})
	c, ok = Compare(a, b)
	require.True(t, ok)
	assert.Equal(t, -1, c)

	// a collection holding mixed tags at the same position is unordered
	_, ok = Compare(NewCollection([]Handle{vertex(1)}), NewCollection([]Handle{edge(1)}))
	assert.False(t, ok)

	p1 := NewPair(NewObject(object.String("k")), vertex(1))
	p2 := NewPair(NewObject(object.String("k")), vertex(3))
	assert.True(t, Less(p1, p2))
	assert.False(t, Less(p2, p1))
}

func TestHashConsistentWithEqual(t *testing.T) {
	pairs := [][2]Handle{
		{vertex(1), NewVertex(graph.NewVertex(1, graph.NoLabel, nil))},
		{edge(2), NewEdge(graph.NewEdge(2, graph.NoLabel, graph.EdgeEnds{}, nil))},
		{NewObject(object.NewInteger(1)), NewObject(object.NewDouble(1))},
		{NewCollection([]Handle{NewObject(object.NewLong(5))}), NewCollection([]Handle{NewObject(object.NewByte(5))})},
		{NewPair(Null(), vertex(1)), NewPair(Handle{}, vertex(1))},
		{Null(), Handle{}},
	}
	for _, p := range pairs {
		require.True(t, Equal(p[0], p[1]), "%s vs %s", p[0], p[1])
		assert.Equal(t, Hash(p[0]), Hash(p[1]), "%s vs %s", p[0], p[1])
	}
}

func TestDecodeUnknownTag(t *testing.T) {
	_, err := Codec{}.Unmarshal([]byte{42})
	require.Error(t, err)
	assert.True(t, IsProtocolError(err, ErrCodeUnknownTag))

	_, err = Codec{}.Unmarshal([]byte{byte(TagCollection), 0, 0, 0, 1, 0})
	assert.True(t, IsProtocolError(err, ErrCodeUnknownTag))
}

func TestDecodeTruncatedAndLimits(t *testing.T) {
	data := Codec{}.Marshal(vertex(1))
	_, err := Codec{}.Unmarshal(data[:len(data)-2])
	assert.True(t, IsProtocolError(err, ErrCodeTruncated))

	coll := Codec{}.Marshal(NewCollection([]Handle{Null(), Null(), Null()}))
	_, err = Codec{MaxLen: 2}.Unmarshal(coll)
	assert.True(t, IsProtocolError(err, ErrCodeLimitExceeded))

	_, err = Codec{}.Unmarshal(append(Codec{}.Marshal(Null()), 0))
	assert.True(t, IsProtocolError(err, ErrCodeMalformed))
}

type countingObserver struct {
	mu       sync.Mutex
	encoded  map[Type]int
	decoded  map[Type]int
	failures map[ProtocolErrorCode]int
}

func newCountingObserver() *countingObserver {
	return &countingObserver{
		encoded:  map[Type]int{},
		decoded:  map[Type]int{},
		failures: map[ProtocolErrorCode]int{},
	}
}

func (o *countingObserver) Encoded(t Type) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.encoded[t]++
}

func (o *countingObserver) Decoded(t Type) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.decoded[t]++
}

func (o *countingObserver) DecodeFailed(code ProtocolErrorCode) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.failures[code]++
}

func TestCodecObserverCountsTopLevelOnly(t *testing.T) {
	obs := newCountingObserver()
	c := Codec{Observer: obs}

	data := c.Marshal(NewCollection([]Handle{vertex(1), vertex(2)}))
	_, err := c.Unmarshal(data)
	require.NoError(t, err)
	_, err = c.Unmarshal([]byte{0})
	require.Error(t, err)

	assert.Equal(t, map[Type]int{TypeCollection: 1}, obs.encoded)
	assert.Equal(t, map[Type]int{TypeCollection: 1}, obs.decoded)
	assert.Equal(t, map[ProtocolErrorCode]int{ErrCodeUnknownTag: 1}, obs.failures)
}

func TestStreamOfEntries(t *testing.T) {
	w := wire.NewWriter(64)
	for _, h := range samples() {
		Encode(w, h)
	}

	r := wire.NewReader(w.Bytes())
	for _, want := range samples() {
		got, err := Decode(r)
		require.NoError(t, err)
		assert.True(t, Equal(want, got))
	}
	assert.Equal(t, 0, r.Remaining())
}

func TestConcurrentReaders(t *testing.T) {
	shared := NewCollection([]Handle{vertex(1), edge(2), NewObject(object.NewInteger(7))})
	want := Hash(shared)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			clone := shared
			got, err := Codec{}.Unmarshal(Codec{}.Marshal(clone))
			assert.NoError(t, err)
			assert.Equal(t, want, Hash(got))
		}()
	}
	wg.Wait()
}

func TestCollectionBuilder(t *testing.T) {
	b := NewCollectionBuilder(2)
	b.Add(vertex(1)).Add(vertex(2), vertex(3))
	assert.Equal(t, 3, b.Len())

	h := b.Build()
	c, ok := h.AsCollection()
	require.True(t, ok)
	assert.Equal(t, 3, c.Len())
	assert.Equal(t, graph.ID(2), c.At(1).ID())

	assert.Equal(t, 0, b.Len())
	next := b.Add(vertex(9)).Build()
	assert.Equal(t, 1, next.Len())
	assert.Equal(t, 3, h.Len())
}

func TestIntersection(t *testing.T) {
	x := NewIntersectionOf([]graph.ID{5, 1, 3, 1})
	assert.Equal(t, []graph.ID{1, 3, 5}, x.IDs())
	assert.Equal(t, uint32(2), x.Count(0))
	assert.Equal(t, 4, x.Len())

	y := x.Intersect([]graph.ID{1, 5, 5, 7})
	assert.Equal(t, []graph.ID{1, 5}, y.IDs())
	assert.Equal(t, []graph.ID{1, 1, 5, 5}, y.Expand())
	assert.Equal(t, 4, y.Len())

	// receiver unchanged
	assert.Equal(t, 4, x.Len())

	assert.True(t, x.Intersect([]graph.ID{99}).IsEmpty())
}

func TestGeneralIntersection(t *testing.T) {
	x := NewGeneralIntersectionOf(Adjacency{3: {30}, 1: {10, 11}, 2: {20}})
	assert.Equal(t, []graph.ID{1, 2, 3}, x.IDs())

	y := x.Intersect(Adjacency{1: {100}, 3: {300, 301}})
	assert.Equal(t, []graph.ID{1, 3}, y.IDs())
	assert.Equal(t, 2, y.Len())
	assert.Equal(t, [][]graph.ID{{10, 11}, {100}}, y.Groups(0))
	assert.Equal(t, [][]graph.ID{{30}, {300, 301}}, y.Groups(1))

	assert.Equal(t, -1, x.Compare(y))
	assert.Len(t, x.Groups(0), 1)
}
