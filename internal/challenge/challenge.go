package challenge

import (
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/roach88/dailymind/internal/catalog"
)

// Type determines how a challenge's requirement is interpreted, how its
// label is phrased, and which type multiplier applies to scoring.
type Type string

const (
	TypeScore  Type = "score"
	TypeTime   Type = "time"
	TypeStreak Type = "streak"
)

// Types lists the challenge types in role-assignment order: the daily
// selector assigns Types[i mod 3] to the challenge at position i.
var Types = []Type{TypeScore, TypeTime, TypeStreak}

var titleCaser = cases.Title(language.English)

// DisplayName returns the type name for presentation ("score" -> "Score").
func (t Type) DisplayName() string {
	return titleCaser.String(string(t))
}

// RequirementLabel phrases a requirement as human-readable text.
// Unknown types fall back to the score phrasing.
func RequirementLabel(t Type, requirement int) string {
	switch t {
	case TypeTime:
		return fmt.Sprintf("Complete in %d seconds", requirement)
	case TypeStreak:
		return fmt.Sprintf("Achieve a %dx streak", requirement)
	case TypeScore:
		return fmt.Sprintf("Score %d points", requirement)
	default:
		return fmt.Sprintf("Score %d points", requirement)
	}
}

// Challenge is one active daily challenge.
//
// Game is a copy of the catalog entry taken at creation time, so a loaded
// state remains coherent even if the catalog file changes between runs.
//
// Completed is a one-way transition: once true it never goes back, and the
// engine rejects further outcome reports for the challenge.
type Challenge struct {
	ID               string       `json:"id"`
	Game             catalog.Game `json:"game"`
	Type             Type         `json:"type"`
	Requirement      int          `json:"requirement"`
	RequirementLabel string       `json:"requirementLabel"`
	Completed        bool         `json:"completed"`
	Progress         int          `json:"progress"`
	Points           int          `json:"points"`
}

// DailySet is the ordered challenge set generated for one calendar date.
type DailySet struct {
	// Date is the YYYY-MM-DD date the set was generated for.
	Date string `json:"date"`

	// Challenges holds exactly Size challenges with pairwise-distinct games.
	Challenges []Challenge `json:"challenges"`
}

// Size is the number of challenges in a daily set.
const Size = 3

// Find returns the index of the challenge with the given id, or -1.
func (s *DailySet) Find(id string) int {
	for i := range s.Challenges {
		if s.Challenges[i].ID == id {
			return i
		}
	}
	return -1
}

// GameIDs returns the set of game IDs currently active in the set.
func (s *DailySet) GameIDs() map[string]bool {
	ids := make(map[string]bool, len(s.Challenges))
	for i := range s.Challenges {
		ids[s.Challenges[i].Game.ID] = true
	}
	return ids
}

// CompletedCount returns the number of completed challenges in the set.
func (s *DailySet) CompletedCount() int {
	n := 0
	for i := range s.Challenges {
		if s.Challenges[i].Completed {
			n++
		}
	}
	return n
}

// ProgressPercent returns the rounded percentage of completed challenges.
func (s *DailySet) ProgressPercent() int {
	if len(s.Challenges) == 0 {
		return 0
	}
	return roundRatio(s.CompletedCount(), len(s.Challenges))
}

// Validate checks the structural invariants of a persisted set: exactly Size
// challenges, pairwise-distinct games, known types, and a well-formed date.
// It is the schema check applied when loading persisted state.
func (s *DailySet) Validate() error {
	if len(s.Date) != len("2006-01-02") {
		return fmt.Errorf("daily set: malformed date %q", s.Date)
	}
	if len(s.Challenges) != Size {
		return fmt.Errorf("daily set: expected %d challenges, got %d", Size, len(s.Challenges))
	}
	seen := make(map[string]bool, Size)
	for i := range s.Challenges {
		c := &s.Challenges[i]
		if c.ID == "" {
			return fmt.Errorf("daily set: challenge %d has empty id", i)
		}
		if c.Game.ID == "" {
			return fmt.Errorf("daily set: challenge %q has empty game id", c.ID)
		}
		if seen[c.Game.ID] {
			return fmt.Errorf("daily set: duplicate game %q", c.Game.ID)
		}
		seen[c.Game.ID] = true
		switch c.Type {
		case TypeScore, TypeTime, TypeStreak:
		default:
			return fmt.Errorf("daily set: challenge %q has unknown type %q", c.ID, c.Type)
		}
		if c.Progress < 0 || c.Progress > 100 {
			return fmt.Errorf("daily set: challenge %q has progress %d out of range", c.ID, c.Progress)
		}
	}
	return nil
}

// roundRatio returns round(100 * num / den) with half-up rounding.
func roundRatio(num, den int) int {
	return (200*num + den) / (2 * den)
}
