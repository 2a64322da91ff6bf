package ingest

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"

	"github.com/roach88/gvalue/internal/graph"
	"github.com/roach88/gvalue/internal/metrics"
	"github.com/roach88/gvalue/internal/property"
	"github.com/roach88/gvalue/internal/schema"
	"github.com/roach88/gvalue/internal/store"
)

const (
	defaultDelimiter = '|'
	defaultBatchSize = 1000
	maxLineBytes     = 16 << 20
)

// Options configure a Loader. Zero values select the defaults.
type Options struct {
	Delimiter    rune
	NormalizeNFC bool
	SkipHeader   bool
	BatchSize    int
	// IDs names batches; UUIDv7Generator when nil.
	IDs BatchIDGenerator
}

// Summary reports the outcome of one Load.
type Summary struct {
	Label   string
	Loaded  int
	Skipped int
	Batches []string
	Errors  []*RowError
}

// Loader bulk-loads delimited text rows into the store.
type Loader struct {
	store  *store.Store
	schema *schema.Schema
	opts   Options
}

// NewLoader returns a loader writing to st under the labels of sc.
func NewLoader(st *store.Store, sc *schema.Schema, opts Options) *Loader {
	if opts.Delimiter == 0 {
		opts.Delimiter = defaultDelimiter
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = defaultBatchSize
	}
	if opts.IDs == nil {
		opts.IDs = UUIDv7Generator{}
	}
	return &Loader{store: st, schema: sc, opts: opts}
}

type cell struct {
	def   schema.PropertyDef
	value property.Property
}

type row struct {
	key      store.ElementKey
	src, dst store.ElementKey
	cells    []cell
}

// Load reads rows for label from r. A vertex row is
//
//	id|prop1|prop2|...
//
// and an edge row is
//
//	id|src|dst|prop1|prop2|...
//
// with properties in the label's declaration order. An empty cell leaves
// the property unset. Rows that do not parse are skipped and reported in
// the summary; store failures abort the load, keeping batches already
// committed.
func (l *Loader) Load(ctx context.Context, label string, r io.Reader, source string) (*Summary, error) {
	lb, ok := l.schema.Label(label)
	if !ok {
		return nil, fmt.Errorf("unknown label %q", label)
	}
	var srcLabel, dstLabel int32
	if lb.Kind == schema.KindEdge {
		src, _ := l.schema.Label(lb.Src)
		dst, _ := l.schema.Label(lb.Dst)
		srcLabel, dstLabel = src.ID, dst.ID
	}

	sum := &Summary{Label: label}
	pending := make([]row, 0, l.opts.BatchSize)
	skipped := 0

	flush := func() error {
		if len(pending) == 0 && skipped == 0 {
			return nil
		}
		id, err := l.commit(ctx, lb, pending, skipped, source)
		if err != nil {
			return err
		}
		sum.Batches = append(sum.Batches, id)
		sum.Loaded += len(pending)
		pending = pending[:0]
		skipped = 0
		return nil
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSuffix(sc.Text(), "\r")
		if (line == 1 && l.opts.SkipHeader) || strings.TrimSpace(text) == "" {
			continue
		}

		rw, rerr := l.parseRow(lb, line, text)
		if rerr != nil {
			slog.Warn("ingest row skipped", "label", label, "line", line, "error", rerr)
			metrics.IngestRows.WithLabelValues(label, "skipped").Inc()
			sum.Errors = append(sum.Errors, rerr)
			sum.Skipped++
			skipped++
			continue
		}
		if lb.Kind == schema.KindEdge {
			rw.src.Label, rw.dst.Label = srcLabel, dstLabel
		}
		pending = append(pending, rw)
		if len(pending) >= l.opts.BatchSize {
			if err := flush(); err != nil {
				return sum, err
			}
		}
	}
	if err := sc.Err(); err != nil {
		return sum, fmt.Errorf("read %s: %w", source, err)
	}
	if err := flush(); err != nil {
		return sum, err
	}

	slog.Info("ingest finished",
		"label", label,
		"source", source,
		"loaded", sum.Loaded,
		"skipped", sum.Skipped,
		"batches", len(sum.Batches))
	return sum, nil
}

func (l *Loader) commit(ctx context.Context, lb *schema.Label, rows []row, skipped int, source string) (string, error) {
	id := l.opts.IDs.Generate()
	start := time.Now()
	err := l.store.Batch(ctx, id, func(w *store.Writer) error {
		for _, rw := range rows {
			var err error
			if lb.Kind == schema.KindEdge {
				err = w.PutEdge(ctx, rw.key, rw.src, rw.dst)
			} else {
				err = w.PutVertex(ctx, rw.key)
			}
			if err != nil {
				return err
			}
			for _, c := range rw.cells {
				if err := w.WriteProperty(ctx, rw.key, c.def.ID, c.def.Type, c.value); err != nil {
					return err
				}
			}
		}
		_, err := w.RecordBatch(ctx, store.BatchRecord{
			ID:      id,
			Label:   lb.ID,
			Source:  source,
			Loaded:  len(rows),
			Skipped: skipped,
		})
		return err
	})
	if err != nil {
		return "", fmt.Errorf("ingest %s batch %s: %w", lb.Name, id, err)
	}
	metrics.IngestBatchDuration.Observe(time.Since(start).Seconds())
	metrics.IngestRows.WithLabelValues(lb.Name, "ok").Add(float64(len(rows)))
	slog.Info("ingest batch committed", "label", lb.Name, "batch", id, "rows", len(rows), "skipped", skipped)
	return id, nil
}

func (l *Loader) parseRow(lb *schema.Label, line int, text string) (row, *RowError) {
	cols := strings.Split(text, string(l.opts.Delimiter))
	lead := 1
	if lb.Kind == schema.KindEdge {
		lead = 3
	}
	if want := lead + len(lb.Properties); len(cols) != want {
		return row{}, &RowError{Line: line, Message: fmt.Sprintf("expected %d columns, got %d", want, len(cols))}
	}

	var rw row
	var err *RowError
	if rw.key.ID, err = parseID(line, 1, "id", cols[0]); err != nil {
		return row{}, err
	}
	rw.key.Label = lb.ID
	if lb.Kind == schema.KindEdge {
		if rw.src.ID, err = parseID(line, 2, "src", cols[1]); err != nil {
			return row{}, err
		}
		if rw.dst.ID, err = parseID(line, 3, "dst", cols[2]); err != nil {
			return row{}, err
		}
	}

	for i, def := range lb.Properties {
		text := cols[lead+i]
		if text == "" {
			continue
		}
		if l.opts.NormalizeNFC {
			text = norm.NFC.String(text)
		}
		v := property.Parse(text, def.Type)
		if property.IsUnknown(v) {
			return row{}, &RowError{
				Line:    line,
				Column:  lead + i + 1,
				Field:   def.Name,
				Message: fmt.Sprintf("%q is not a valid %s", text, def.Type),
			}
		}
		rw.cells = append(rw.cells, cell{def: def, value: v})
	}
	return rw, nil
}

func parseID(line, col int, field, text string) (graph.ID, *RowError) {
	id, err := strconv.ParseUint(text, 10, 64)
	if err != nil || id == graph.NullID {
		return 0, &RowError{Line: line, Column: col, Field: field, Message: fmt.Sprintf("%q is not a valid element id", text)}
	}
	return id, nil
}
