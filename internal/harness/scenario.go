package harness

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/roach88/dailymind/internal/challenge"
)

// Scenario defines a conformance test scenario: a starting moment, an
// optional picker script, a flow of engine operations, and assertions over
// the resulting trace and final state.
type Scenario struct {
	// Name uniquely identifies this scenario. Golden files are stored
	// under this name.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Start is the RFC 3339 moment the fixed clock begins at.
	// Defaults to DefaultStart when empty.
	Start string `yaml:"start,omitempty"`

	// Picks scripts the game picker: listed game IDs are preferred in
	// order, remaining slots fill in catalog order. An empty script
	// picks in catalog order, which is already deterministic.
	Picks []string `yaml:"picks,omitempty"`

	// Steps is the flow of engine operations to execute in order.
	Steps []Step `yaml:"steps"`

	// Assertions validate the trace and final state after the flow.
	// Supported types: trace_contains, trace_order, trace_count, final_state.
	Assertions []Assertion `yaml:"assertions"`
}

// Step is one operation in a scenario flow.
type Step struct {
	// Op names the operation: generate, start, report, refresh,
	// regenerate, streak, or advance_days.
	Op string `yaml:"op"`

	// Slot selects a challenge by position (0-based) for the start,
	// report and refresh ops.
	Slot int `yaml:"slot,omitempty"`

	// Outcome is the reported 0-100 figure for the report op.
	Outcome int `yaml:"outcome,omitempty"`

	// Days moves the clock forward for the advance_days op.
	Days int `yaml:"days,omitempty"`

	// Expect names the engine error code the step must fail with.
	// Absent means the step must succeed.
	Expect *ExpectClause `yaml:"expect,omitempty"`
}

// ExpectClause specifies the expected failure for a step.
type ExpectClause struct {
	// Error is the expected engine error code (e.g. "ALREADY_COMPLETED").
	Error string `yaml:"error"`
}

// Step op constants.
const (
	OpGenerate    = "generate"
	OpStart       = "start"
	OpReport      = "report"
	OpRefresh     = "refresh"
	OpRegenerate  = "regenerate"
	OpStreak      = "streak"
	OpAdvanceDays = "advance_days"
)

// Assertion validates the trace or the final state.
type Assertion struct {
	// Type specifies the assertion type:
	// - "trace_contains": check an event with the given op and fields exists
	// - "trace_order": check ops appear in order
	// - "trace_count": check an op appears exactly N times
	// - "final_state": check final state fields (subset match)
	Type string `yaml:"type"`

	// Op is the trace event op (used by trace_contains, trace_count).
	Op string `yaml:"op,omitempty"`

	// With holds expected event fields (used by trace_contains).
	// Subset match - only specified fields are validated.
	With map[string]interface{} `yaml:"with,omitempty"`

	// Ops is the expected op order (used by trace_order).
	Ops []string `yaml:"ops,omitempty"`

	// Count is the expected number of occurrences (used by trace_count).
	Count int `yaml:"count,omitempty"`

	// Expect holds expected final state fields (used by final_state).
	// Keys: date, streak_count, last_completed, completed_count,
	// progress_percent. Subset match.
	Expect map[string]interface{} `yaml:"expect,omitempty"`
}

// Assertion type constants.
const (
	AssertTraceContains = "trace_contains"
	AssertTraceOrder    = "trace_order"
	AssertTraceCount    = "trace_count"
	AssertFinalState    = "final_state"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed, contains
// unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Strict field validation catches typos like "assertion:" vs "assertions:".
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if s.Start != "" {
		if _, err := time.Parse(time.RFC3339, s.Start); err != nil {
			return fmt.Errorf("start: not an RFC 3339 timestamp: %w", err)
		}
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}
	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for i, step := range s.Steps {
		if err := validateStep(i, &step); err != nil {
			return err
		}
	}
	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}
	return nil
}

// validateStep validates a single step based on its op.
func validateStep(index int, step *Step) error {
	switch step.Op {
	case OpGenerate, OpRegenerate, OpStreak:
		// No arguments.
	case OpStart, OpRefresh:
		if step.Slot < 0 || step.Slot >= challenge.Size {
			return fmt.Errorf("steps[%d]: slot %d out of range [0,%d)", index, step.Slot, challenge.Size)
		}
	case OpReport:
		if step.Slot < 0 || step.Slot >= challenge.Size {
			return fmt.Errorf("steps[%d]: slot %d out of range [0,%d)", index, step.Slot, challenge.Size)
		}
	case OpAdvanceDays:
		if step.Days < 1 {
			return fmt.Errorf("steps[%d]: advance_days requires days >= 1", index)
		}
	case "":
		return fmt.Errorf("steps[%d]: op is required", index)
	default:
		return fmt.Errorf("steps[%d]: unknown op %q", index, step.Op)
	}

	if step.Expect != nil && step.Expect.Error == "" {
		return fmt.Errorf("steps[%d].expect: error is required", index)
	}
	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	switch a.Type {
	case AssertTraceContains:
		if a.Op == "" {
			return fmt.Errorf("assertions[%d]: op is required for trace_contains", index)
		}
	case AssertTraceOrder:
		if len(a.Ops) == 0 {
			return fmt.Errorf("assertions[%d]: ops list is required for trace_order", index)
		}
	case AssertTraceCount:
		if a.Op == "" {
			return fmt.Errorf("assertions[%d]: op is required for trace_count", index)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for trace_count", index)
		}
	case AssertFinalState:
		if len(a.Expect) == 0 {
			return fmt.Errorf("assertions[%d]: expect is required for final_state", index)
		}
	case "":
		return fmt.Errorf("assertions[%d]: type is required", index)
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	return nil
}
