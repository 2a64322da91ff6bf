package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"

	"github.com/roach88/gvalue/internal/graph"
	"github.com/roach88/gvalue/internal/property"
)

// StoredProperty is one decoded property row.
type StoredProperty struct {
	PropID int32
	Type   property.DataType
	Value  property.Property
}

// ReadProperty returns the property propID of the element key, decoded from
// the storage layout of its declared type.
func (s *Store) ReadProperty(ctx context.Context, key ElementKey, propID int32) (property.Property, error) {
	dt, data, err := s.readRaw(ctx, key, propID)
	if err != nil {
		return nil, err
	}
	p, err := property.DecodeStorage(dt, data)
	if err != nil {
		return nil, fmt.Errorf("read property %s/%d: %w", key, propID, err)
	}
	return p, nil
}

// ListElement returns element i of a stored string or bytes list without
// decoding the other elements. An index out of range is an error.
func (s *Store) ListElement(ctx context.Context, key ElementKey, propID int32, i int) ([]byte, error) {
	dt, data, err := s.readRaw(ctx, key, propID)
	if err != nil {
		return nil, err
	}
	if dt != property.TypeListString && dt != property.TypeListBytes {
		return nil, fmt.Errorf("list element %s/%d: declared %s is not a string or bytes list", key, propID, dt)
	}
	v, err := property.NewListView(data)
	if err != nil {
		return nil, fmt.Errorf("list element %s/%d: %w", key, propID, err)
	}
	if i < 0 || i >= v.Len() {
		return nil, fmt.Errorf("list element %s/%d: index %d out of range [0, %d)", key, propID, i, v.Len())
	}
	b, err := v.At(i)
	if err != nil {
		return nil, fmt.Errorf("list element %s/%d: %w", key, propID, err)
	}
	return b, nil
}

func (s *Store) readRaw(ctx context.Context, key ElementKey, propID int32) (property.DataType, []byte, error) {
	var dt int
	var data []byte
	err := s.db.QueryRowContext(ctx, `
		SELECT data_type, value FROM properties
		WHERE label_id = ? AND element_id = ? AND prop_id = ?
	`, key.Label, int64(key.ID), propID).Scan(&dt, &data)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil, fmt.Errorf("property %s/%d: %w", key, propID, ErrNotFound)
	}
	if err != nil {
		return 0, nil, fmt.Errorf("query property %s/%d: %w", key, propID, err)
	}
	return property.DataType(dt), data, nil
}

// ReadProperties returns every property of the element key ordered by
// prop id. An element with no properties yields an empty slice.
func (s *Store) ReadProperties(ctx context.Context, key ElementKey) ([]StoredProperty, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT prop_id, data_type, value FROM properties
		WHERE label_id = ? AND element_id = ?
		ORDER BY prop_id ASC
	`, key.Label, int64(key.ID))
	if err != nil {
		return nil, fmt.Errorf("query properties %s: %w", key, err)
	}
	defer rows.Close()

	props := []StoredProperty{}
	for rows.Next() {
		var sp StoredProperty
		var dt int
		var data []byte
		if err := rows.Scan(&sp.PropID, &dt, &data); err != nil {
			return nil, fmt.Errorf("scan property %s: %w", key, err)
		}
		sp.Type = property.DataType(dt)
		if sp.Value, err = property.DecodeStorage(sp.Type, data); err != nil {
			return nil, fmt.Errorf("decode property %s/%d: %w", key, sp.PropID, err)
		}
		props = append(props, sp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate properties %s: %w", key, err)
	}
	return props, nil
}

// LoadVertex materializes a stored vertex with its properties keyed by
// property id.
func (s *Store) LoadVertex(ctx context.Context, key ElementKey) (*graph.Vertex, error) {
	var kind int
	err := s.db.QueryRowContext(ctx, `
		SELECT kind FROM elements WHERE label_id = ? AND id = ?
	`, key.Label, int64(key.ID)).Scan(&kind)
	if errors.Is(err, sql.ErrNoRows) || (err == nil && kind != kindVertex) {
		return nil, fmt.Errorf("vertex %s: %w", key, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query vertex %s: %w", key, err)
	}
	props, err := s.objectProperties(ctx, key)
	if err != nil {
		return nil, err
	}
	return graph.NewVertex(key.ID, graph.LabelOf(key.Label), props), nil
}

// LoadEdge materializes a stored edge with its endpoints and properties.
func (s *Store) LoadEdge(ctx context.Context, key ElementKey) (*graph.Edge, error) {
	var kind int
	var srcLabel, dstLabel sql.NullInt32
	var srcID, dstID sql.NullInt64
	err := s.db.QueryRowContext(ctx, `
		SELECT kind, src_label, src_id, dst_label, dst_id FROM elements
		WHERE label_id = ? AND id = ?
	`, key.Label, int64(key.ID)).Scan(&kind, &srcLabel, &srcID, &dstLabel, &dstID)
	if errors.Is(err, sql.ErrNoRows) || (err == nil && kind != kindEdge) {
		return nil, fmt.Errorf("edge %s: %w", key, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query edge %s: %w", key, err)
	}
	props, err := s.objectProperties(ctx, key)
	if err != nil {
		return nil, err
	}
	ends := graph.EdgeEnds{
		Src:      graph.ID(srcID.Int64),
		Dst:      graph.ID(dstID.Int64),
		SrcLabel: nullLabel(srcLabel),
		DstLabel: nullLabel(dstLabel),
	}
	return graph.NewEdge(key.ID, graph.LabelOf(key.Label), ends, props), nil
}

func nullLabel(l sql.NullInt32) graph.Label {
	if !l.Valid {
		return graph.NoLabel
	}
	return graph.LabelOf(l.Int32)
}

func (s *Store) objectProperties(ctx context.Context, key ElementKey) (graph.Properties, error) {
	stored, err := s.ReadProperties(ctx, key)
	if err != nil {
		return nil, err
	}
	if len(stored) == 0 {
		return nil, nil
	}
	props := make(graph.Properties, len(stored))
	for _, sp := range stored {
		props[graph.PropID(sp.PropID)] = property.ToObject(sp.Value)
	}
	return props, nil
}

// ElementIDs returns the ids of every element with the given label in
// ascending id order.
func (s *Store) ElementIDs(ctx context.Context, label int32) ([]graph.ID, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM elements WHERE label_id = ?`, label)
	if err != nil {
		return nil, fmt.Errorf("query elements of label %d: %w", label, err)
	}
	defer rows.Close()

	ids := []graph.ID{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan element id: %w", err)
		}
		ids = append(ids, graph.ID(id))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate elements of label %d: %w", label, err)
	}
	// ids are stored as signed integers, so SQL order differs above 2^63
	slices.Sort(ids)
	return ids, nil
}

// Batches returns every recorded batch ordered by seq.
func (s *Store) Batches(ctx context.Context) ([]BatchRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, seq, label_id, source, rows_loaded, rows_skipped
		FROM batches ORDER BY seq ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query batches: %w", err)
	}
	defer rows.Close()

	batches := []BatchRecord{}
	for rows.Next() {
		var b BatchRecord
		if err := rows.Scan(&b.ID, &b.Seq, &b.Label, &b.Source, &b.Loaded, &b.Skipped); err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		batches = append(batches, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate batches: %w", err)
	}
	return batches, nil
}
