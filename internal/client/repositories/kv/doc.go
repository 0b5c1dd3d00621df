// Package kv is the durable key-value store GoMate keeps its local state in.
//
// # Overview
//
// Values are opaque byte slices (JSON documents in practice) addressed by a
// string key. Repository is the plain contract (Get/Set/Delete/List/Clear);
// Store adds Update, which runs several operations atomically.
//
// Three implementations are provided:
//
//   - SQLiteStore, backed by the kv table of the local SQLite database
//     (see internal/client/localdb).
//   - PostgresStore, the same table on a shared Postgres server.
//   - MemoryStore, a process-local map used in tests and when no data
//     directory is configured.
//
// # Contract
//
// Get returns (nil, nil) for an absent key. Delete of an absent key is not
// an error. Errors are wrapped with the failing operation and key.
//
// GetJSON and SetJSON encode values with encoding/json on top of any
// Repository.
package kv
