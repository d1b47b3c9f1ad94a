package testutil

import (
	"sync"

	"github.com/roach88/dailymind/internal/catalog"
)

// ScriptedPicker is a deterministic engine.RandomSource for tests.
//
// With no script it picks games in catalog order, which keeps golden files
// stable without depending on any RNG implementation. With a script it
// prefers the listed game IDs in order, falling back to catalog order for
// any remaining slots.
type ScriptedPicker struct {
	mu    sync.Mutex
	order []string
}

// NewScriptedPicker creates a picker preferring the given game IDs in order.
func NewScriptedPicker(ids ...string) *ScriptedPicker {
	return &ScriptedPicker{order: ids}
}

// PickDistinct returns up to n distinct games: scripted IDs first (those
// present in games), then the rest in the order given.
func (p *ScriptedPicker) PickDistinct(games []catalog.Game, n int) []catalog.Game {
	p.mu.Lock()
	defer p.mu.Unlock()

	if n > len(games) {
		n = len(games)
	}

	byID := make(map[string]catalog.Game, len(games))
	for _, g := range games {
		byID[g.ID] = g
	}

	picked := make([]catalog.Game, 0, n)
	taken := make(map[string]bool, n)
	for _, id := range p.order {
		if len(picked) == n {
			break
		}
		if g, ok := byID[id]; ok && !taken[id] {
			picked = append(picked, g)
			taken[id] = true
		}
	}
	for _, g := range games {
		if len(picked) == n {
			break
		}
		if !taken[g.ID] {
			picked = append(picked, g)
			taken[g.ID] = true
		}
	}
	return picked
}

// Pick returns the first scripted game present in games, or the first game.
func (p *ScriptedPicker) Pick(games []catalog.Game) catalog.Game {
	p.mu.Lock()
	defer p.mu.Unlock()

	byID := make(map[string]catalog.Game, len(games))
	for _, g := range games {
		byID[g.ID] = g
	}
	for _, id := range p.order {
		if g, ok := byID[id]; ok {
			return g
		}
	}
	return games[0]
}
