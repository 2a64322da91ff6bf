// Package metrics exports Prometheus counters and histograms for the entry
// codec, the property store and the bulk loader. Collectors register with
// the default registry on package load.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/roach88/gvalue/internal/entry"
)

var (
	// EntriesEncoded counts top-level entries written, by entry type.
	EntriesEncoded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gvalue_entry_encoded_total",
			Help: "Total number of entries encoded",
		},
		[]string{"type"},
	)

	// EntriesDecoded counts top-level entries read, by entry type.
	EntriesDecoded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gvalue_entry_decoded_total",
			Help: "Total number of entries decoded",
		},
		[]string{"type"},
	)

	// DecodeErrors counts rejected entry streams by protocol error code.
	DecodeErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gvalue_entry_decode_errors_total",
			Help: "Total number of entry decode failures",
		},
		[]string{"code"},
	)

	// PropertiesWritten counts properties persisted, by declared type.
	PropertiesWritten = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gvalue_store_properties_written_total",
			Help: "Total number of properties written to the store",
		},
		[]string{"type"},
	)

	// IngestRows counts loaded rows by label and outcome (ok, skipped).
	IngestRows = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gvalue_ingest_rows_total",
			Help: "Total number of ingest rows processed",
		},
		[]string{"label", "status"},
	)

	// IngestBatchDuration measures the time to commit one ingest batch.
	IngestBatchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "gvalue_ingest_batch_duration_seconds",
			Help:    "Duration of ingest batch commits in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
	)
)

// CodecObserver feeds entry codec activity into the counters above.
type CodecObserver struct{}

var _ entry.Observer = CodecObserver{}

func (CodecObserver) Encoded(t entry.Type) {
	EntriesEncoded.WithLabelValues(t.String()).Inc()
}

func (CodecObserver) Decoded(t entry.Type) {
	EntriesDecoded.WithLabelValues(t.String()).Inc()
}

func (CodecObserver) DecodeFailed(code entry.ProtocolErrorCode) {
	DecodeErrors.WithLabelValues(string(code)).Inc()
}
