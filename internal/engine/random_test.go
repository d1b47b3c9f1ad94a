package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/dailymind/internal/catalog"
)

func sourceGames() []catalog.Game {
	return []catalog.Game{
		{ID: "g1"}, {ID: "g2"}, {ID: "g3"}, {ID: "g4"}, {ID: "g5"}, {ID: "g6"},
	}
}

func TestSeededSource_PickDistinct(t *testing.T) {
	s := NewSeededSource(42)

	picked := s.PickDistinct(sourceGames(), 3)
	require.Len(t, picked, 3)

	seen := map[string]bool{}
	for _, g := range picked {
		assert.False(t, seen[g.ID], "game %s picked twice", g.ID)
		seen[g.ID] = true
	}
}

func TestSeededSource_Reproducible(t *testing.T) {
	a := NewSeededSource(7)
	b := NewSeededSource(7)

	assert.Equal(t, a.PickDistinct(sourceGames(), 3), b.PickDistinct(sourceGames(), 3))
	assert.Equal(t, a.Pick(sourceGames()).ID, b.Pick(sourceGames()).ID)
}

func TestSeededSource_DoesNotMutateInput(t *testing.T) {
	games := sourceGames()
	s := NewSeededSource(1)
	s.PickDistinct(games, 3)

	assert.Equal(t, sourceGames(), games, "input slice must not be shuffled in place")
}

func TestSeededSource_NLargerThanGames(t *testing.T) {
	s := NewSeededSource(1)
	picked := s.PickDistinct(sourceGames()[:2], 3)
	assert.Len(t, picked, 2)
}

func TestSeededSource_PickCoversAll(t *testing.T) {
	s := NewSeededSource(3)
	games := sourceGames()

	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		seen[s.Pick(games).ID] = true
	}
	assert.Len(t, seen, len(games), "every game should be reachable")
}
