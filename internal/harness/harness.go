package harness

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/roach88/dailymind/internal/catalog"
	"github.com/roach88/dailymind/internal/challenge"
	"github.com/roach88/dailymind/internal/engine"
	"github.com/roach88/dailymind/internal/store"
	"github.com/roach88/dailymind/internal/testutil"
)

// DefaultStart is the moment scenarios begin at unless they specify one.
const DefaultStart = "2025-03-10T09:00:00Z"

// Harness executes one scenario against a real engine.
//
// The engine runs over a fresh in-memory store with a fixed clock and a
// scripted picker, so every run of the same scenario is byte-identical.
// The harness tracks the latest daily set it has seen so that steps can
// address challenges by slot position rather than by generated id.
type Harness struct {
	engine  *engine.Engine
	clock   *testutil.FixedClock
	set     *challenge.DailySet
	pending []engine.ChallengeCompleted
}

// Run executes a test scenario and returns the result.
//
// Each scenario runs in a fresh in-memory database for isolation.
// Execution flow:
//  1. Open an in-memory store and build an engine with deterministic helpers
//  2. Execute the steps in order, validating expect clauses
//  3. Snapshot the final engine state
//  4. Evaluate assertions against the trace and snapshot
//
// Returns an error only for scenario-level faults (bad start time, slot
// step before any set exists). Step and assertion failures are recorded
// on the result instead.
func Run(scenario *Scenario) (*Result, error) {
	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	startStr := scenario.Start
	if startStr == "" {
		startStr = DefaultStart
	}
	start, err := time.Parse(time.RFC3339, startStr)
	if err != nil {
		return nil, fmt.Errorf("invalid start %q: %w", startStr, err)
	}

	clock := testutil.NewFixedClock(start)
	eng := engine.New(st, catalog.Default(),
		engine.WithClock(clock),
		engine.WithRandom(testutil.NewScriptedPicker(scenario.Picks...)),
		engine.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)

	h := &Harness{engine: eng, clock: clock}
	eng.Subscribe(func(ev engine.ChallengeCompleted) {
		h.pending = append(h.pending, ev)
	})

	ctx := context.Background()
	result := NewResult()
	for i, step := range scenario.Steps {
		if err := h.executeStep(ctx, i, step, result); err != nil {
			return nil, err
		}
	}

	if err := h.snapshotFinal(ctx, result); err != nil {
		return nil, err
	}

	for _, msg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(msg)
	}
	return result, nil
}

// executeStep runs one step and records its trace event.
func (h *Harness) executeStep(ctx context.Context, i int, step Step, result *Result) error {
	switch step.Op {
	case OpAdvanceDays:
		h.clock.AdvanceDays(step.Days)
		result.Trace = append(result.Trace, TraceEvent{
			Op:   OpAdvanceDays,
			Date: engine.DateOf(h.clock.Now()),
		})
		return nil

	case OpGenerate:
		set, err := h.engine.ActiveChallenges(ctx)
		ev := TraceEvent{Op: OpGenerate}
		if err == nil {
			h.set = &set
			ev.Date = set.Date
		}
		h.finish(i, step, ev, err, result)
		return nil

	case OpRegenerate:
		set, err := h.engine.RegenerateAll(ctx)
		ev := TraceEvent{Op: OpRegenerate}
		if err == nil {
			h.set = &set
			ev.Date = set.Date
		}
		h.finish(i, step, ev, err, result)
		return nil

	case OpStreak:
		s, err := h.engine.Streak(ctx)
		ev := TraceEvent{Op: OpStreak}
		if err == nil {
			ev.Count = s.Count
		}
		h.finish(i, step, ev, err, result)
		return nil

	case OpStart, OpReport, OpRefresh:
		return h.executeSlotStep(ctx, i, step, result)

	default:
		return fmt.Errorf("step %d: unknown op %q", i, step.Op)
	}
}

// executeSlotStep runs an op addressing a challenge by slot position.
func (h *Harness) executeSlotStep(ctx context.Context, i int, step Step, result *Result) error {
	if h.set == nil {
		return fmt.Errorf("step %d: %s needs an active set; add a generate step first", i, step.Op)
	}
	if step.Slot < 0 || step.Slot >= len(h.set.Challenges) {
		return fmt.Errorf("step %d: slot %d out of range", i, step.Slot)
	}
	target := h.set.Challenges[step.Slot]

	switch step.Op {
	case OpStart:
		c, err := h.engine.StartChallenge(ctx, target.ID)
		ev := TraceEvent{Op: OpStart, ChallengeID: target.ID}
		if err == nil {
			ev.Game = c.Game.ID
			ev.Type = string(c.Type)
		}
		h.finish(i, step, ev, err, result)

	case OpReport:
		c, err := h.engine.ReportOutcome(ctx, target.ID, step.Outcome)
		ev := TraceEvent{Op: OpReport, ChallengeID: target.ID, Outcome: step.Outcome}
		if err == nil {
			h.set.Challenges[step.Slot] = c
			ev.Game = c.Game.ID
			ev.Points = c.Points
		}
		h.finish(i, step, ev, err, result)

	case OpRefresh:
		set, err := h.engine.Refresh(ctx, target.ID)
		ev := TraceEvent{Op: OpRefresh, ChallengeID: target.ID}
		if err == nil {
			*h.set = set
			replacement := set.Challenges[step.Slot]
			ev.Game = replacement.Game.ID
			ev.Type = string(replacement.Type)
		}
		h.finish(i, step, ev, err, result)
	}
	return nil
}

// finish records the step's trace event, interleaves any engine events that
// fired during it, and validates the expect clause.
func (h *Harness) finish(i int, step Step, ev TraceEvent, err error, result *Result) {
	if err != nil {
		ev.Error = errorCode(err)
	}
	result.Trace = append(result.Trace, ev)
	h.flushEvents(result)

	want := ""
	if step.Expect != nil {
		want = step.Expect.Error
	}
	switch {
	case want == ev.Error:
		// Step behaved as the scenario demands.
	case want == "":
		result.AddError(fmt.Sprintf("step %d (%s): unexpected error %s", i, step.Op, ev.Error))
	case ev.Error == "":
		result.AddError(fmt.Sprintf("step %d (%s): expected error %s, step succeeded", i, step.Op, want))
	default:
		result.AddError(fmt.Sprintf("step %d (%s): expected error %s, got %s", i, step.Op, want, ev.Error))
	}
}

// flushEvents appends buffered ChallengeCompleted events to the trace.
// Buffering keeps the ordering stable: the step's own event always precedes
// the engine events it caused.
func (h *Harness) flushEvents(result *Result) {
	for _, ev := range h.pending {
		result.Trace = append(result.Trace, TraceEvent{
			Op:          EventChallengeCompleted,
			ChallengeID: ev.ChallengeID,
			GameName:    ev.GameName,
			Points:      ev.Points,
			Date:        ev.Date,
		})
	}
	h.pending = h.pending[:0]
}

// snapshotFinal captures the engine state after the last step. Reading the
// streak through the engine applies decay for the clock's final date.
func (h *Harness) snapshotFinal(ctx context.Context, result *Result) error {
	streak, err := h.engine.Streak(ctx)
	if err != nil {
		return fmt.Errorf("failed to read final streak: %w", err)
	}
	percent, err := h.engine.DailyProgressPercent(ctx)
	if err != nil {
		return fmt.Errorf("failed to read final progress: %w", err)
	}

	snap := StateSnapshot{
		StreakCount:     streak.Count,
		LastCompleted:   streak.LastCompleted,
		ProgressPercent: percent,
	}
	if h.set != nil {
		snap.Date = h.set.Date
		snap.CompletedCount = h.set.CompletedCount()
		for _, c := range h.set.Challenges {
			snap.Challenges = append(snap.Challenges, ChallengeSnapshot{
				ID:          c.ID,
				Game:        c.Game.ID,
				Type:        string(c.Type),
				Requirement: c.Requirement,
				Points:      c.Points,
				Completed:   c.Completed,
				Progress:    c.Progress,
			})
		}
	}
	result.Final = snap
	return nil
}

// errorCode extracts the engine error code, or "UNKNOWN" for other errors.
func errorCode(err error) string {
	var e *engine.Error
	if errors.As(err, &e) {
		return string(e.Code)
	}
	return "UNKNOWN"
}
