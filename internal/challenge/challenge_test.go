package challenge

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/dailymind/internal/catalog"
)

func testGame(id string, difficulty catalog.Difficulty, requirement int) catalog.Game {
	return catalog.Game{
		ID:                 id,
		Name:               "Game " + id,
		Category:           catalog.CategoryMemory,
		Difficulty:         difficulty,
		DefaultRequirement: requirement,
	}
}

func testSet(date string) DailySet {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	return DailySet{
		Date: date,
		Challenges: []Challenge{
			Build(testGame("g1", catalog.DifficultyEasy, 500), TypeScore, 0, now),
			Build(testGame("g2", catalog.DifficultyMedium, 45), TypeTime, 1, now),
			Build(testGame("g3", catalog.DifficultyHard, 3), TypeStreak, 2, now),
		},
	}
}

func TestRequirementLabel(t *testing.T) {
	assert.Equal(t, "Score 500 points", RequirementLabel(TypeScore, 500))
	assert.Equal(t, "Complete in 45 seconds", RequirementLabel(TypeTime, 45))
	assert.Equal(t, "Achieve a 3x streak", RequirementLabel(TypeStreak, 3))
}

func TestRequirementLabel_UnknownTypeFallsBack(t *testing.T) {
	assert.Equal(t, "Score 500 points", RequirementLabel("marathon", 500))
}

func TestTypeDisplayName(t *testing.T) {
	assert.Equal(t, "Score", TypeScore.DisplayName())
	assert.Equal(t, "Time", TypeTime.DisplayName())
	assert.Equal(t, "Streak", TypeStreak.DisplayName())
}

func TestBuild(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	game := testGame("g2", catalog.DifficultyMedium, 45)

	c := Build(game, TypeTime, 1, now)

	assert.Equal(t, "challenge-1741597200000-1", c.ID)
	assert.Equal(t, game, c.Game)
	assert.Equal(t, TypeTime, c.Type)
	assert.Equal(t, 45, c.Requirement)
	assert.Equal(t, "Complete in 45 seconds", c.RequirementLabel)
	assert.False(t, c.Completed)
	assert.Equal(t, 0, c.Progress)
	assert.Equal(t, 180, c.Points)
}

func TestFind(t *testing.T) {
	set := testSet("2025-03-10")

	assert.Equal(t, 1, set.Find(set.Challenges[1].ID))
	assert.Equal(t, -1, set.Find("challenge-0-0"))
}

func TestGameIDs(t *testing.T) {
	set := testSet("2025-03-10")
	assert.Equal(t, map[string]bool{"g1": true, "g2": true, "g3": true}, set.GameIDs())
}

func TestProgressPercent(t *testing.T) {
	set := testSet("2025-03-10")
	assert.Equal(t, 0, set.ProgressPercent())

	set.Challenges[0].Completed = true
	assert.Equal(t, 33, set.ProgressPercent())

	set.Challenges[1].Completed = true
	assert.Equal(t, 67, set.ProgressPercent())

	set.Challenges[2].Completed = true
	assert.Equal(t, 100, set.ProgressPercent())
}

func TestValidate_OK(t *testing.T) {
	set := testSet("2025-03-10")
	assert.NoError(t, set.Validate())
}

func TestValidate_WrongSize(t *testing.T) {
	set := testSet("2025-03-10")
	set.Challenges = set.Challenges[:2]
	assert.ErrorContains(t, set.Validate(), "expected 3 challenges")
}

func TestValidate_DuplicateGame(t *testing.T) {
	set := testSet("2025-03-10")
	set.Challenges[2].Game.ID = "g1"
	assert.ErrorContains(t, set.Validate(), `duplicate game "g1"`)
}

func TestValidate_MalformedDate(t *testing.T) {
	set := testSet("yesterday")
	assert.ErrorContains(t, set.Validate(), "malformed date")
}

func TestValidate_UnknownType(t *testing.T) {
	set := testSet("2025-03-10")
	set.Challenges[0].Type = "marathon"
	assert.ErrorContains(t, set.Validate(), "unknown type")
}

func TestValidate_ProgressOutOfRange(t *testing.T) {
	set := testSet("2025-03-10")
	set.Challenges[0].Progress = 120
	assert.ErrorContains(t, set.Validate(), "out of range")
}

func TestValidate_EmptyID(t *testing.T) {
	set := testSet("2025-03-10")
	set.Challenges[1].ID = ""
	require.Error(t, set.Validate())
}
