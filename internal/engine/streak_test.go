package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStreak_DecayAfterSkippedDay(t *testing.T) {
	s := StreakState{Count: 5, LastCompleted: "2025-03-09"}

	changed := s.Decay("2025-03-09") // now is 2025-03-10
	assert.False(t, changed, "exactly yesterday must not reset")
	assert.Equal(t, 5, s.Count)

	changed = s.Decay("2025-03-10") // now is 2025-03-11, a day was skipped
	assert.True(t, changed)
	assert.Equal(t, 0, s.Count)
	assert.Equal(t, "2025-03-09", s.LastCompleted, "decay keeps the completion date")
}

func TestStreak_DecayToday(t *testing.T) {
	s := StreakState{Count: 3, LastCompleted: "2025-03-10"}

	assert.False(t, s.Decay("2025-03-09"))
	assert.Equal(t, 3, s.Count)
}

func TestStreak_DecayNeverCompleted(t *testing.T) {
	s := StreakState{}
	assert.False(t, s.Decay("2025-03-09"))
}

func TestStreak_DecayAcrossMonthBoundary(t *testing.T) {
	// Lexicographic comparison must agree with chronology at boundaries.
	s := StreakState{Count: 2, LastCompleted: "2025-02-28"}
	assert.False(t, s.Decay("2025-02-28"), "completed exactly yesterday")

	s = StreakState{Count: 2, LastCompleted: "2025-01-31"}
	assert.True(t, s.Decay("2025-02-28"))
	assert.Equal(t, 0, s.Count)
}

func TestStreak_RecordCompletion_FirstOfDay(t *testing.T) {
	s := StreakState{Count: 2, LastCompleted: "2025-03-09"}

	advanced := s.RecordCompletion("2025-03-10")
	assert.True(t, advanced)
	assert.Equal(t, 3, s.Count)
	assert.Equal(t, "2025-03-10", s.LastCompleted)
}

func TestStreak_RecordCompletion_SameDayNoIncrement(t *testing.T) {
	s := StreakState{Count: 3, LastCompleted: "2025-03-10"}

	advanced := s.RecordCompletion("2025-03-10")
	assert.False(t, advanced)
	assert.Equal(t, 3, s.Count)
}

func TestStreak_RecordCompletion_FromZero(t *testing.T) {
	s := StreakState{}

	advanced := s.RecordCompletion("2025-03-10")
	assert.True(t, advanced)
	assert.Equal(t, 1, s.Count)
	assert.Equal(t, "2025-03-10", s.LastCompleted)
}
