// Package store provides the SQLite-backed property store.
//
// Every property is persisted in the storage layout of its schema-declared
// type, produced by property.Transform, together with that type. The store
// tracks value lengths itself: a value's length is its BLOB length, so
// string, date and bytes values carry no length prefix. Reads decode with
// property.DecodeStorage, and single elements of string and bytes lists are
// sliced out through property.ListView without decoding the rest.
//
// # Tables
//
//   - elements: one row per vertex or edge, keyed by (label_id, id)
//   - properties: one row per (element, prop_id)
//   - batches: one row per ingest batch, ordered by seq
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Properties require their element
package store
