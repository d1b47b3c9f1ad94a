// Package store provides SQLite-backed durable storage for engine state.
//
// The engine persists four logical entries (the daily challenge set, its
// date, the streak count, and the last completion date) as string-keyed
// records in a single table. The shape mirrors the key-value layout the
// state originally lived in, which keeps the engine's persistence interface
// a plain Get/Set pair.
//
// Atomicity: every public engine operation is a read-modify-write of the
// full state. Update runs its callback inside one SQLite transaction so two
// interleaved operations never observe a torn intermediate state.
//
// Database configuration:
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON: enforce referential integrity
package store
