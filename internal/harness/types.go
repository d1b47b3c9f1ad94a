package harness

// EventChallengeCompleted is the trace op recorded for a ChallengeCompleted
// engine event. The event's UUID is excluded from the trace so runs stay
// byte-identical for golden comparison.
const EventChallengeCompleted = "challenge_completed"

// TraceEvent records one executed step or engine event, in order.
// Fields are populated per op; unused fields are omitted from JSON.
type TraceEvent struct {
	Op          string `json:"op"`
	ChallengeID string `json:"challenge_id,omitempty"`
	Game        string `json:"game,omitempty"`
	GameName    string `json:"game_name,omitempty"`
	Type        string `json:"type,omitempty"`
	Outcome     int    `json:"outcome,omitempty"`
	Points      int    `json:"points,omitempty"`
	Count       int    `json:"count,omitempty"`
	Date        string `json:"date,omitempty"`
	Error       string `json:"error,omitempty"`
}

// ChallengeSnapshot captures one challenge of the final set.
type ChallengeSnapshot struct {
	ID          string `json:"id"`
	Game        string `json:"game"`
	Type        string `json:"type"`
	Requirement int    `json:"requirement"`
	Points      int    `json:"points"`
	Completed   bool   `json:"completed"`
	Progress    int    `json:"progress"`
}

// StateSnapshot captures the engine state after the flow finished.
// The streak is read through the engine, so decay for the final date has
// been applied.
type StateSnapshot struct {
	Date            string              `json:"date,omitempty"`
	Challenges      []ChallengeSnapshot `json:"challenges,omitempty"`
	StreakCount     int                 `json:"streak_count"`
	LastCompleted   string              `json:"last_completed,omitempty"`
	CompletedCount  int                 `json:"completed_count"`
	ProgressPercent int                 `json:"progress_percent"`
}

// fields exposes the snapshot as a map for final_state assertions.
func (s StateSnapshot) fields() map[string]interface{} {
	return map[string]interface{}{
		"date":             s.Date,
		"streak_count":     s.StreakCount,
		"last_completed":   s.LastCompleted,
		"completed_count":  s.CompletedCount,
		"progress_percent": s.ProgressPercent,
	}
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall success: every step matched its expect
	// clause and every assertion held.
	Pass bool `json:"pass"`

	// Trace contains all executed steps and emitted events in order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains validation error messages. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// Final is the engine state after the last step.
	Final StateSnapshot `json:"final"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:  true,
		Trace: []TraceEvent{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
