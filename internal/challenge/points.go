package challenge

import (
	"math"

	"github.com/roach88/dailymind/internal/catalog"
)

// BasePoints is the point award before multipliers.
const BasePoints = 100

// difficultyMultipliers scales points by how hard the game is.
var difficultyMultipliers = map[catalog.Difficulty]float64{
	catalog.DifficultyEasy:   1,
	catalog.DifficultyMedium: 1.5,
	catalog.DifficultyHard:   2,
}

// typeMultipliers scales points by challenge type. Streak challenges pay the
// most because they demand sustained performance within a single game run.
var typeMultipliers = map[Type]float64{
	TypeScore:  1,
	TypeTime:   1.2,
	TypeStreak: 1.5,
}

// Points computes the point award for a difficulty/type pair:
// round(BasePoints * difficultyMultiplier * typeMultiplier), half away
// from zero. Unknown difficulties or types multiply by 1.
//
// The table must stay reproducible bit-for-bit; persisted challenges carry
// the award computed at creation time and golden traces pin these values
// (e.g. Medium+time = 180, Hard+streak = 300).
func Points(difficulty catalog.Difficulty, t Type) int {
	dm, ok := difficultyMultipliers[difficulty]
	if !ok {
		dm = 1
	}
	tm, ok := typeMultipliers[t]
	if !ok {
		tm = 1
	}
	return int(math.Round(BasePoints * dm * tm))
}
