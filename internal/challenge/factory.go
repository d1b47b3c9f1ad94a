package challenge

import (
	"fmt"
	"time"

	"github.com/roach88/dailymind/internal/catalog"
)

// Build derives a fresh challenge from a game and type.
//
// The requirement is copied verbatim from the game's default; the label and
// point award are derived from the (type, requirement) and (difficulty, type)
// pairs. The id embeds now in milliseconds plus the position index; callers
// minting a replacement must pass a stamp strictly later than the one the
// displaced challenge was built with, or the id would be reused.
func Build(game catalog.Game, t Type, index int, now time.Time) Challenge {
	requirement := game.DefaultRequirement
	return Challenge{
		ID:               fmt.Sprintf("challenge-%d-%d", now.UnixMilli(), index),
		Game:             game,
		Type:             t,
		Requirement:      requirement,
		RequirementLabel: RequirementLabel(t, requirement),
		Completed:        false,
		Progress:         0,
		Points:           Points(game.Difficulty, t),
	}
}

// IDMillis extracts the creation stamp embedded in a challenge id.
// Returns false for ids not in the challenge-{millis}-{index} form.
func IDMillis(id string) (int64, bool) {
	var ms int64
	var index int
	if _, err := fmt.Sscanf(id, "challenge-%d-%d", &ms, &index); err != nil {
		return 0, false
	}
	return ms, true
}
