// Package harness provides a conformance testing framework for the daily
// challenge engine.
//
// Scenarios are YAML files describing a flow of engine operations (generate,
// report, refresh, advance_days, ...) executed against a real engine backed
// by a fresh in-memory store. A fixed clock and a scripted game picker make
// every run deterministic: the same scenario always produces the same
// challenge IDs, the same game assignments, and the same trace.
//
// Each executed step is recorded as a trace event, and ChallengeCompleted
// events emitted by the engine are interleaved into the trace at the point
// they fired. After the flow runs, assertions validate the trace
// (trace_contains, trace_order, trace_count) and the final engine state
// (final_state), and the whole trace can be compared against a golden file
// with RunWithGolden.
//
// Day-boundary behavior is first-class: the advance_days step moves the
// fixed clock across calendar dates, so scenarios can exercise generation
// idempotency, stale-set replacement, and streak decay directly.
package harness
