// Package catalog defines the immutable set of games the daily selector
// draws from.
//
// The catalog is configuration data, not code: it is loaded once at startup
// from a YAML file (or the embedded default) and validated against a CUE
// schema before the engine ever sees it. After loading, a Catalog is
// read-only for the life of the process.
//
// Validation catches the problems that would otherwise surface as runtime
// errors deep inside the engine: duplicate game IDs, unknown categories or
// difficulties, and non-positive requirements.
package catalog
