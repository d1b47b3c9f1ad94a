// Package engine implements the daily challenge lifecycle and streak engine.
//
// The engine decides which challenges are active on a given calendar date,
// records reported outcomes, awards points, and maintains the day-over-day
// completion streak. It does not implement any mini-game: games are opaque
// scorable activities that report a normalized 0-100 outcome back.
//
// ARCHITECTURE:
//
// Single Logical Actor:
// The engine is invoked from one control thread at a time. Every public
// operation is an atomic read-modify-write of the full persisted state,
// executed inside one store transaction, so interleaved operations never
// observe a torn intermediate state. A mutex serializes operations within
// the process as well.
//
// Operation flow:
//  1. Load state (daily set + streak) inside a transaction
//  2. Self-heal: discard corrupt records, apply streak decay
//  3. Apply the operation's transition
//  4. Write the full state back and commit
//  5. Emit events (after commit, never inside the transaction)
//
// Injected collaborators:
//   - Clock: the date source. Never read ambient time; streak-decay logic
//     must be deterministic in tests across day boundaries.
//   - random.Source: the game picker. Seedable so generation and refresh
//     are reproducible.
//   - store.Store: the persistence layer (four string-keyed records).
//
// Idempotent daily generation:
// A daily set, once generated for a date, is reused for the remainder of
// that date. The engine never overwrites a same-date set implicitly; only
// RegenerateAll replaces it, as an explicit user action.
package engine
