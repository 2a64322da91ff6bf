package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/roach88/gvalue/internal/graph"
	"github.com/roach88/gvalue/internal/metrics"
	"github.com/roach88/gvalue/internal/property"
)

const (
	kindVertex = 1
	kindEdge   = 2
)

// ElementKey identifies a stored vertex or edge.
type ElementKey struct {
	Label int32
	ID    graph.ID
}

func (k ElementKey) String() string {
	return fmt.Sprintf("%d:%d", k.Label, k.ID)
}

// Writer writes elements and properties, either directly against the
// database or inside a batch transaction.
type Writer struct {
	ex      execer
	batchID string
}

// Writer returns a Writer that commits each call on its own.
func (s *Store) Writer() *Writer {
	return &Writer{ex: s.db}
}

// Batch runs fn inside one transaction. Elements written through the
// Writer are tagged with batchID. The transaction commits only if fn
// returns nil.
func (s *Store) Batch(ctx context.Context, batchID string, fn func(w *Writer) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("batch %s: begin tx: %w", batchID, err)
	}
	defer tx.Rollback() // No-op if committed

	if err := fn(&Writer{ex: tx, batchID: batchID}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("batch %s: commit: %w", batchID, err)
	}
	return nil
}

// PutVertex inserts a vertex. Writing an existing vertex is a no-op.
func (w *Writer) PutVertex(ctx context.Context, key ElementKey) error {
	_, err := w.ex.ExecContext(ctx, `
		INSERT INTO elements (label_id, id, kind, batch_id)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(label_id, id) DO NOTHING
	`, key.Label, int64(key.ID), kindVertex, w.batchID)
	if err != nil {
		return fmt.Errorf("put vertex %s: %w", key, err)
	}
	return nil
}

// PutEdge inserts an edge between two vertices. The endpoints are recorded
// as given; they need not be stored yet.
func (w *Writer) PutEdge(ctx context.Context, key, src, dst ElementKey) error {
	_, err := w.ex.ExecContext(ctx, `
		INSERT INTO elements (label_id, id, kind, src_label, src_id, dst_label, dst_id, batch_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(label_id, id) DO NOTHING
	`, key.Label, int64(key.ID), kindEdge, src.Label, int64(src.ID), dst.Label, int64(dst.ID), w.batchID)
	if err != nil {
		return fmt.Errorf("put edge %s: %w", key, err)
	}
	return nil
}

// WriteProperty transforms p to the declared type dt and stores its storage
// layout, replacing any previous value. A value that does not fit dt fails
// with a property DATA_ERROR and nothing is written. Null and Unknown are
// rejected as DATA_ERROR as well. The element must exist.
func (w *Writer) WriteProperty(ctx context.Context, key ElementKey, propID int32, dt property.DataType, p property.Property) error {
	data, err := property.Transform(p, dt)
	if err != nil {
		return fmt.Errorf("write property %s/%d: %w", key, propID, err)
	}
	_, err = w.ex.ExecContext(ctx, `
		INSERT INTO properties (label_id, element_id, prop_id, data_type, value)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(label_id, element_id, prop_id)
		DO UPDATE SET data_type = excluded.data_type, value = excluded.value
	`, key.Label, int64(key.ID), propID, int(dt), data)
	if err != nil {
		return fmt.Errorf("write property %s/%d: %w", key, propID, err)
	}
	metrics.PropertiesWritten.WithLabelValues(dt.String()).Inc()
	return nil
}

// PutVertex inserts a vertex outside any batch.
func (s *Store) PutVertex(ctx context.Context, key ElementKey) error {
	return s.Writer().PutVertex(ctx, key)
}

// PutEdge inserts an edge outside any batch.
func (s *Store) PutEdge(ctx context.Context, key, src, dst ElementKey) error {
	return s.Writer().PutEdge(ctx, key, src, dst)
}

// WriteProperty writes one property outside any batch.
func (s *Store) WriteProperty(ctx context.Context, key ElementKey, propID int32, dt property.DataType, p property.Property) error {
	return s.Writer().WriteProperty(ctx, key, propID, dt, p)
}

// BatchRecord summarizes one ingest batch.
type BatchRecord struct {
	ID      string
	Seq     int64
	Label   int32
	Source  string
	Loaded  int
	Skipped int
}

// RecordBatch appends a batch summary. Seq is assigned by the store and
// returned.
func (w *Writer) RecordBatch(ctx context.Context, b BatchRecord) (int64, error) {
	var seq int64
	err := w.ex.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) + 1 FROM batches`).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("record batch %s: next seq: %w", b.ID, err)
	}
	_, err = w.ex.ExecContext(ctx, `
		INSERT INTO batches (id, seq, label_id, source, rows_loaded, rows_skipped)
		VALUES (?, ?, ?, ?, ?, ?)
	`, b.ID, seq, b.Label, b.Source, b.Loaded, b.Skipped)
	if err != nil {
		return 0, fmt.Errorf("record batch %s: %w", b.ID, err)
	}
	return seq, nil
}

var _ execer = (*sql.Tx)(nil)
