// Package challenge defines the challenge data model and the pure functions
// that derive challenges from catalog games: the factory, the scoring table,
// and requirement label generation.
//
// Everything in this package is deterministic. Randomness (which games get
// picked) and time (which date a set belongs to) live in the engine; given
// the same game, type, and creation time, Build always produces the same
// challenge.
package challenge
