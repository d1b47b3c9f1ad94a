package engine

import "github.com/google/uuid"

// ChallengeCompleted is emitted once per successful outcome report, after
// the state change has committed. The rendering layer consumes it for the
// transient celebration display; the engine itself has no timing behavior.
type ChallengeCompleted struct {
	// ID is a UUIDv7 event identifier, sortable by emission time.
	ID string `json:"id"`

	// ChallengeID identifies the completed challenge.
	ChallengeID string `json:"challengeId"`

	// GameName names the game the challenge was built from.
	GameName string `json:"gameName"`

	// Points is the award fixed at the challenge's creation.
	Points int `json:"points"`

	// Date is the calendar date of completion.
	Date string `json:"date"`
}

// Listener receives completion events. Listeners run synchronously on the
// operation's goroutine; keep them fast and never call back into the engine.
type Listener func(ChallengeCompleted)

// Subscribe registers a listener for completion events.
func (e *Engine) Subscribe(l Listener) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.listeners = append(e.listeners, l)
}

func (e *Engine) emitCompleted(challengeID, gameName string, points int, date string) {
	ev := ChallengeCompleted{
		ID:          uuid.Must(uuid.NewV7()).String(),
		ChallengeID: challengeID,
		GameName:    gameName,
		Points:      points,
		Date:        date,
	}
	for _, l := range e.listeners {
		l(ev)
	}
}
