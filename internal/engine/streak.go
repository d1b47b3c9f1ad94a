package engine

// StreakState tracks consecutive days with at least one completed challenge.
//
// LastCompleted is a YYYY-MM-DD date, empty when no challenge has ever been
// completed. Count is unbounded and persists across process restarts.
type StreakState struct {
	// Count is the number of consecutive days with a completion.
	Count int `json:"count"`

	// LastCompleted is the date of the most recent completion, or "".
	LastCompleted string `json:"lastCompleted,omitempty"`
}

// Decay resets the count when a day was skipped: the most recent completion
// is strictly earlier than the date one calendar day before now. A streak
// last fed exactly yesterday or today survives.
//
// Dates in YYYY-MM-DD form compare lexicographically in chronological
// order, so plain string comparison is exact here.
//
// Returns true when the state changed.
func (s *StreakState) Decay(yesterday string) bool {
	if s.LastCompleted == "" || s.Count == 0 {
		return false
	}
	if s.LastCompleted < yesterday {
		s.Count = 0
		return true
	}
	return false
}

// RecordCompletion advances the streak for a completion on today.
// The count increments at most once per calendar date: repeat completions
// on a date already recorded leave the state untouched.
//
// Returns true when the count advanced.
func (s *StreakState) RecordCompletion(today string) bool {
	if s.LastCompleted == today {
		return false
	}
	s.Count++
	s.LastCompleted = today
	return true
}
