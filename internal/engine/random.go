package engine

import (
	"math/rand"
	"sync"

	"github.com/roach88/dailymind/internal/catalog"
)

// RandomSource picks games for generation and refresh.
// Implemented by SeededSource (production) and testutil.ScriptedPicker (tests).
type RandomSource interface {
	// PickDistinct returns n distinct games chosen from games.
	// When len(games) < n it returns all of them; the engine checks catalog
	// size before calling.
	PickDistinct(games []catalog.Game, n int) []catalog.Game

	// Pick returns one game from games. games is never empty.
	Pick(games []catalog.Game) catalog.Game
}

// SeededSource is a math/rand backed picker. Constructing it from a fixed
// seed makes generation and refresh reproducible.
//
// Thread-safety: guarded by a mutex; rand.Rand itself is not safe for
// concurrent use.
type SeededSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSeededSource creates a picker seeded with the given value.
func NewSeededSource(seed int64) *SeededSource {
	return &SeededSource{rng: rand.New(rand.NewSource(seed))}
}

// PickDistinct shuffles a copy of games and takes the first n.
// Selection is without replacement.
func (s *SeededSource) PickDistinct(games []catalog.Game, n int) []catalog.Game {
	s.mu.Lock()
	defer s.mu.Unlock()

	shuffled := make([]catalog.Game, len(games))
	copy(shuffled, games)
	s.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	if n > len(shuffled) {
		n = len(shuffled)
	}
	return shuffled[:n]
}

// Pick returns a uniformly random element of games.
func (s *SeededSource) Pick(games []catalog.Game) catalog.Game {
	s.mu.Lock()
	defer s.mu.Unlock()
	return games[s.rng.Intn(len(games))]
}
