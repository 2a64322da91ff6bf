package store

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/gvalue/internal/graph"
	"github.com/roach88/gvalue/internal/object"
	"github.com/roach88/gvalue/internal/property"
)

func TestWriteProperty_TransformsToDeclaredType(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	key := ElementKey{Label: 1, ID: 10}
	putTestVertex(t, s, key)

	require.NoError(t, s.WriteProperty(ctx, key, 2, property.TypeFloat, property.Int(123)))

	got, err := s.ReadProperty(ctx, key, 2)
	require.NoError(t, err)
	assert.Equal(t, property.Float(123), got)

	var length int
	require.NoError(t, s.db.QueryRow(`SELECT length(value) FROM properties WHERE prop_id = 2`).Scan(&length))
	assert.Equal(t, 4, length)
}

func TestWriteProperty_DataError(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	key := ElementKey{Label: 1, ID: 10}
	putTestVertex(t, s, key)

	err := s.WriteProperty(ctx, key, 1, property.TypeChar, property.Long(300))
	assert.True(t, property.IsDataError(err))

	err = s.WriteProperty(ctx, key, 1, property.TypeInt, property.Null{})
	assert.True(t, property.IsDataError(err))

	_, err = s.ReadProperty(ctx, key, 1)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestWriteProperty_RequiresElement(t *testing.T) {
	s := createTestStore(t)
	err := s.WriteProperty(context.Background(), ElementKey{Label: 1, ID: 99}, 1, property.TypeInt, property.Int(1))
	assert.Error(t, err)
}

func TestWriteProperty_Replaces(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	key := ElementKey{Label: 1, ID: 1}
	putTestVertex(t, s, key)

	require.NoError(t, s.WriteProperty(ctx, key, 1, property.TypeString, property.String("old")))
	require.NoError(t, s.WriteProperty(ctx, key, 1, property.TypeLong, property.Int(5)))

	got, err := s.ReadProperty(ctx, key, 1)
	require.NoError(t, err)
	assert.Equal(t, property.Long(5), got)
}

func TestStorageRoundTrip(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	key := ElementKey{Label: 3, ID: math.MaxUint64 - 1}
	putTestVertex(t, s, key)

	values := []property.Property{
		property.Bool(true),
		property.Char('c'),
		property.Short(-7),
		property.Int(42),
		property.Long(math.MinInt64),
		property.Float(0.25),
		property.Double(1e-9),
		property.Bytes{0, 1, 2},
		property.String("héllo"),
		property.Date("2024-02-29"),
		property.ListInt{1, 2},
		property.ListLong{-1},
		property.ListFloat{1.5},
		property.ListDouble{2.5, 3},
		property.ListString{"a", "", "ccc"},
		property.ListBytes{{9}, {}},
	}
	for i, p := range values {
		dt, _ := property.TypeOf(p)
		require.NoError(t, s.WriteProperty(ctx, key, int32(i), dt, p))
	}

	stored, err := s.ReadProperties(ctx, key)
	require.NoError(t, err)
	require.Len(t, stored, len(values))
	for i, sp := range stored {
		assert.Equal(t, int32(i), sp.PropID)
		assert.True(t, property.Equal(values[i], sp.Value), "%s became %s", property.Format(values[i]), property.Format(sp.Value))
	}
}

func TestListElement(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	key := ElementKey{Label: 1, ID: 1}
	putTestVertex(t, s, key)
	require.NoError(t, s.WriteProperty(ctx, key, 1, property.TypeListString, property.ListString{"ab", "", "c"}))
	require.NoError(t, s.WriteProperty(ctx, key, 2, property.TypeInt, property.Int(1)))

	b, err := s.ListElement(ctx, key, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, "c", string(b))

	b, err = s.ListElement(ctx, key, 1, 1)
	require.NoError(t, err)
	assert.Empty(t, b)

	_, err = s.ListElement(ctx, key, 1, 3)
	assert.Error(t, err)
	_, err = s.ListElement(ctx, key, 2, 0)
	assert.Error(t, err)
	_, err = s.ListElement(ctx, key, 9, 0)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestLoadVertex(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	key := ElementKey{Label: 1, ID: 7}
	putTestVertex(t, s, key)
	require.NoError(t, s.WriteProperty(ctx, key, 1, property.TypeString, property.String("marko")))
	require.NoError(t, s.WriteProperty(ctx, key, 2, property.TypeInt, property.Int(29)))

	v, err := s.LoadVertex(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, graph.ID(7), v.ID())
	assert.Equal(t, graph.LabelOf(1), v.Label())

	name, ok := v.Property(graph.PropID(1))
	require.True(t, ok)
	assert.Equal(t, object.String("marko"), name)
	age, ok := v.Property(graph.PropID(2))
	require.True(t, ok)
	assert.True(t, object.Equal(object.NewInteger(29), age))

	_, err = s.LoadVertex(ctx, ElementKey{Label: 1, ID: 8})
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestLoadEdge(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	src := ElementKey{Label: 1, ID: 1}
	dst := ElementKey{Label: 2, ID: 2}
	key := ElementKey{Label: 5, ID: 100}
	require.NoError(t, s.PutEdge(ctx, key, src, dst))
	require.NoError(t, s.WriteProperty(ctx, key, 4, property.TypeDate, property.Date("2020-01-01")))

	e, err := s.LoadEdge(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, graph.ID(100), e.ID())
	assert.Equal(t, graph.EdgeEnds{Src: 1, Dst: 2, SrcLabel: graph.LabelOf(1), DstLabel: graph.LabelOf(2)}, e.Ends())
	since, ok := e.Property(graph.PropID(4))
	require.True(t, ok)
	assert.Equal(t, object.String("2020-01-01"), since)

	// an edge is not a vertex
	_, err = s.LoadVertex(ctx, key)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestBatch_CommitsAndRollsBack(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	err := s.Batch(ctx, "b1", func(w *Writer) error {
		for id := graph.ID(3); id >= 1; id-- {
			if err := w.PutVertex(ctx, ElementKey{Label: 1, ID: id}); err != nil {
				return err
			}
		}
		_, err := w.RecordBatch(ctx, BatchRecord{ID: "b1", Label: 1, Source: "people.csv", Loaded: 3})
		return err
	})
	require.NoError(t, err)

	boom := errors.New("boom")
	err = s.Batch(ctx, "b2", func(w *Writer) error {
		if err := w.PutVertex(ctx, ElementKey{Label: 1, ID: 4}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	ids, err := s.ElementIDs(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []graph.ID{1, 2, 3}, ids)

	batches, err := s.Batches(ctx)
	require.NoError(t, err)
	require.Len(t, batches, 1)
	assert.Equal(t, BatchRecord{ID: "b1", Seq: 1, Label: 1, Source: "people.csv", Loaded: 3}, batches[0])

	var batchID string
	require.NoError(t, s.db.QueryRow(`SELECT batch_id FROM elements WHERE id = 2`).Scan(&batchID))
	assert.Equal(t, "b1", batchID)
}

func TestElementIDs_UnsignedOrder(t *testing.T) {
	s := createTestStore(t)
	putTestVertex(t, s, ElementKey{Label: 1, ID: math.MaxUint64 - 1})
	putTestVertex(t, s, ElementKey{Label: 1, ID: 5})

	ids, err := s.ElementIDs(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, []graph.ID{5, math.MaxUint64 - 1}, ids)
}
