// Package ingest bulk-loads delimited text files into the property store.
//
// Each cell is optionally NFC-normalized and parsed with property.Parse
// against the type the schema declares for its column. Cells that parse to
// property.Unknown cause their row to be skipped and reported as a
// RowError; such values are never stored. Accepted rows are committed in
// batches, each in one transaction under a UUIDv7 batch id that is recorded
// in the store with the batch's loaded and skipped counts.
package ingest
