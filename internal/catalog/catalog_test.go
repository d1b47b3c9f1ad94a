package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validGames() []Game {
	return []Game{
		{ID: "g1", Name: "Memory Match", Category: CategoryMemory, Difficulty: DifficultyEasy, DefaultRequirement: 500},
		{ID: "g2", Name: "Focus Filter", Category: CategoryAttention, Difficulty: DifficultyMedium, DefaultRequirement: 45},
		{ID: "g3", Name: "Logic Puzzles", Category: CategoryReasoning, Difficulty: DifficultyHard, DefaultRequirement: 3},
	}
}

func TestNew_Valid(t *testing.T) {
	c, err := New(validGames())
	require.NoError(t, err)
	assert.Equal(t, 3, c.Len())
}

func TestNew_DuplicateID(t *testing.T) {
	games := validGames()
	games[2].ID = "g1"

	_, err := New(games)
	assert.ErrorContains(t, err, `duplicate game id "g1"`)
}

func TestNew_UnknownCategory(t *testing.T) {
	games := validGames()
	games[0].Category = "telepathy"

	_, err := New(games)
	assert.ErrorContains(t, err, "unknown category")
}

func TestNew_UnknownDifficulty(t *testing.T) {
	games := validGames()
	games[1].Difficulty = "Brutal"

	_, err := New(games)
	assert.ErrorContains(t, err, "unknown difficulty")
}

func TestNew_NonPositiveRequirement(t *testing.T) {
	games := validGames()
	games[0].DefaultRequirement = 0

	_, err := New(games)
	assert.ErrorContains(t, err, "non-positive requirement")
}

func TestNew_CopiesInput(t *testing.T) {
	games := validGames()
	c, err := New(games)
	require.NoError(t, err)

	// Mutating the caller's slice must not affect the catalog.
	games[0].Name = "mutated"
	g, ok := c.Get("g1")
	require.True(t, ok)
	assert.Equal(t, "Memory Match", g.Name)
}

func TestGet(t *testing.T) {
	c, err := New(validGames())
	require.NoError(t, err)

	g, ok := c.Get("g2")
	require.True(t, ok)
	assert.Equal(t, "Focus Filter", g.Name)

	_, ok = c.Get("missing")
	assert.False(t, ok)
}

func TestExcluding(t *testing.T) {
	c, err := New(validGames())
	require.NoError(t, err)

	remaining := c.Excluding(map[string]bool{"g1": true, "g3": true})
	require.Len(t, remaining, 1)
	assert.Equal(t, "g2", remaining[0].ID)
}

func TestExcluding_All(t *testing.T) {
	c, err := New(validGames())
	require.NoError(t, err)

	remaining := c.Excluding(map[string]bool{"g1": true, "g2": true, "g3": true})
	assert.Empty(t, remaining)
}

func TestGames_ReturnsCopy(t *testing.T) {
	c, err := New(validGames())
	require.NoError(t, err)

	games := c.Games()
	games[0].ID = "mutated"

	g, ok := c.Get("g1")
	require.True(t, ok)
	assert.Equal(t, "g1", g.ID)
}
