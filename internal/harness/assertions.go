package harness

import (
	"fmt"
	"reflect"
	"strings"
)

// AssertionError is returned when an assertion fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Type     string       // Assertion type for categorization
	Expected string       // Human-readable expected outcome
	Actual   string       // Human-readable actual outcome
	Trace    []TraceEvent // Full trace for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	fmt.Fprintf(&buf, "\nFull trace:\n")
	for i, event := range e.Trace {
		fmt.Fprintf(&buf, "  [%d] %s %s\n", i+1, event.Op, event.ChallengeID)
	}

	return buf.String()
}

// assertTraceContains checks if the trace contains an event matching the
// specified op and fields (subset match).
func assertTraceContains(trace []TraceEvent, assertion Assertion) error {
	for _, event := range trace {
		if event.Op == assertion.Op && matchFields(eventFields(event), assertion.With) {
			return nil
		}
	}

	return &AssertionError{
		Type:     AssertTraceContains,
		Expected: fmt.Sprintf("op %s with fields %v", assertion.Op, assertion.With),
		Actual:   "not found in trace",
		Trace:    trace,
	}
}

// assertTraceOrder checks if ops appear in the specified order.
// Ops don't need to be consecutive (intervening events are allowed).
func assertTraceOrder(trace []TraceEvent, assertion Assertion) error {
	positions := make(map[string]int)
	for i, event := range trace {
		for _, expected := range assertion.Ops {
			if event.Op == expected && positions[expected] == 0 {
				positions[expected] = i + 1 // 1-indexed for readability
			}
		}
	}

	for _, op := range assertion.Ops {
		if positions[op] == 0 {
			return &AssertionError{
				Type:     AssertTraceOrder,
				Expected: fmt.Sprintf("all ops present: %v", assertion.Ops),
				Actual:   fmt.Sprintf("missing op: %s", op),
				Trace:    trace,
			}
		}
	}

	for i := 1; i < len(assertion.Ops); i++ {
		prev := assertion.Ops[i-1]
		curr := assertion.Ops[i]
		if positions[prev] >= positions[curr] {
			return &AssertionError{
				Type:     AssertTraceOrder,
				Expected: fmt.Sprintf("ops in order: %v", assertion.Ops),
				Actual: fmt.Sprintf("%s (pos %d) should be before %s (pos %d)",
					prev, positions[prev], curr, positions[curr]),
				Trace: trace,
			}
		}
	}

	return nil
}

// assertTraceCount checks if the op appears exactly the specified number of times.
func assertTraceCount(trace []TraceEvent, assertion Assertion) error {
	count := 0
	for _, event := range trace {
		if event.Op == assertion.Op {
			count++
		}
	}

	if count != assertion.Count {
		return &AssertionError{
			Type:     AssertTraceCount,
			Expected: fmt.Sprintf("%d occurrences of %s", assertion.Count, assertion.Op),
			Actual:   fmt.Sprintf("%d occurrences", count),
			Trace:    trace,
		}
	}

	return nil
}

// assertFinalState checks expected values against the final state snapshot
// using subset semantics.
func assertFinalState(final StateSnapshot, assertion Assertion, trace []TraceEvent) error {
	actual := final.fields()
	for key, expected := range assertion.Expect {
		value, exists := actual[key]
		if !exists {
			return &AssertionError{
				Type:     AssertFinalState,
				Expected: fmt.Sprintf("field %q to exist", key),
				Actual:   fmt.Sprintf("unknown final state field %q", key),
				Trace:    trace,
			}
		}
		if !valuesEqual(value, expected) {
			return &AssertionError{
				Type:     AssertFinalState,
				Expected: fmt.Sprintf("field %q = %v (type %T)", key, expected, expected),
				Actual:   fmt.Sprintf("field %q = %v (type %T)", key, value, value),
				Trace:    trace,
			}
		}
	}
	return nil
}

// eventFields exposes a trace event as a map for subset matching.
// Zero-valued fields are omitted, mirroring the JSON encoding.
func eventFields(ev TraceEvent) map[string]interface{} {
	m := map[string]interface{}{"op": ev.Op}
	if ev.ChallengeID != "" {
		m["challenge_id"] = ev.ChallengeID
	}
	if ev.Game != "" {
		m["game"] = ev.Game
	}
	if ev.GameName != "" {
		m["game_name"] = ev.GameName
	}
	if ev.Type != "" {
		m["type"] = ev.Type
	}
	if ev.Outcome != 0 {
		m["outcome"] = ev.Outcome
	}
	if ev.Points != 0 {
		m["points"] = ev.Points
	}
	if ev.Count != 0 {
		m["count"] = ev.Count
	}
	if ev.Date != "" {
		m["date"] = ev.Date
	}
	if ev.Error != "" {
		m["error"] = ev.Error
	}
	return m
}

// matchFields checks if actual fields contain all expected fields (subset
// match). Extra keys in actual are ignored.
func matchFields(actual map[string]interface{}, expected map[string]interface{}) bool {
	for key, expectedVal := range expected {
		actualVal, exists := actual[key]
		if !exists {
			return false
		}
		if !valuesEqual(actualVal, expectedVal) {
			return false
		}
	}
	return true
}

// valuesEqual compares an actual value against an expected one, coercing
// across the integer widths YAML and Go produce for the same number.
func valuesEqual(actual, expected interface{}) bool {
	if actual == nil || expected == nil {
		return actual == expected
	}

	av, aok := toInt64(actual)
	ev, eok := toInt64(expected)
	if aok && eok {
		return av == ev
	}
	if aok != eok {
		return false
	}

	return reflect.DeepEqual(actual, expected)
}

// toInt64 normalizes integer-like values to int64.
func toInt64(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		if n == float64(int64(n)) {
			return int64(n), true
		}
	}
	return 0, false
}

// EvaluateAssertions evaluates all assertions against the result.
// Returns a slice of error messages for failed assertions.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var errors []string

	for i, assertion := range assertions {
		var err error

		switch assertion.Type {
		case AssertTraceContains:
			err = assertTraceContains(result.Trace, assertion)
		case AssertTraceOrder:
			err = assertTraceOrder(result.Trace, assertion)
		case AssertTraceCount:
			err = assertTraceCount(result.Trace, assertion)
		case AssertFinalState:
			err = assertFinalState(result.Final, assertion, result.Trace)
		default:
			err = fmt.Errorf("assertion[%d]: unknown assertion type %q", i, assertion.Type)
		}

		if err != nil {
			errors = append(errors, err.Error())
		}
	}

	return errors
}
