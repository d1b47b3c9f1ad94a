package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/roach88/dailymind/internal/catalog"
	"github.com/roach88/dailymind/internal/challenge"
	"github.com/roach88/dailymind/internal/store"
)

// Engine is the daily challenge lifecycle engine.
//
// All public operations are atomic: each one loads the full persisted state,
// applies its transition, and writes the state back inside one store
// transaction. A mutex additionally serializes operations in-process, so
// the engine behaves as the single logical actor the state model assumes.
//
// INVARIANTS:
//   - An active set holds exactly challenge.Size challenges with
//     pairwise-distinct game IDs.
//   - Challenge type by position is fixed: score, time, streak.
//   - Completed is a one-way transition; repeat reports are rejected.
//   - The streak count advances at most once per calendar date.
type Engine struct {
	store   *store.Store
	catalog *catalog.Catalog
	clock   Clock
	random  RandomSource
	logger  *slog.Logger

	mu         sync.Mutex
	listeners  []Listener
	lastMillis int64
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock injects the date source. Tests use a fixed clock to cross day
// boundaries deterministically.
func WithClock(c Clock) Option {
	return func(e *Engine) { e.clock = c }
}

// WithRandom injects the game picker. Tests use a scripted picker.
func WithRandom(r RandomSource) Option {
	return func(e *Engine) { e.random = r }
}

// WithLogger injects the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// New creates an Engine over the given store and catalog.
//
// Defaults: the system clock, a picker seeded from wall time, and the
// default slog logger. Production callers usually accept all three;
// tests override them through options.
func New(st *store.Store, cat *catalog.Catalog, opts ...Option) *Engine {
	e := &Engine{
		store:   st,
		catalog: cat,
		clock:   SystemClock{},
		random:  NewSeededSource(time.Now().UnixNano()),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ActiveChallenges returns the daily set for today, generating one when no
// same-date set exists. An existing set for today is returned untouched:
// generation is idempotent within a calendar date.
//
// Fails with an INSUFFICIENT_CATALOG error when the catalog holds fewer
// than challenge.Size games.
func (e *Engine) ActiveChallenges(ctx context.Context) (challenge.DailySet, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.clock.Now()
	today := DateOf(now)

	var out challenge.DailySet
	err := e.store.Update(ctx, func(kv store.KV) error {
		st, err := loadState(ctx, kv, now, e.logger)
		if err != nil {
			return err
		}
		if st.set == nil || st.set.Date != today {
			set, err := e.generate(now, st.set)
			if err != nil {
				return err
			}
			st.set = set
			e.logger.Info("generated daily set", "date", today)
		}
		out = cloneSet(st.set)
		return saveState(ctx, kv, st)
	})
	if err != nil {
		return challenge.DailySet{}, err
	}
	return out, nil
}

// HasSetFor reports whether a daily set already exists for the given
// YYYY-MM-DD date. Callers use this before deciding to regenerate.
func (e *Engine) HasSetFor(ctx context.Context, date string) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.clock.Now()
	var exists bool
	err := e.store.Update(ctx, func(kv store.KV) error {
		st, err := loadState(ctx, kv, now, e.logger)
		if err != nil {
			return err
		}
		exists = st.set != nil && st.set.Date == date
		return saveState(ctx, kv, st)
	})
	if err != nil {
		return false, err
	}
	return exists, nil
}

// StartChallenge validates that a challenge can be attempted and returns it.
//
// A completed challenge cannot be restarted; the ALREADY_COMPLETED error
// tells the caller to show the results view instead. An unknown id, or an
// id from a prior date's set, yields NOT_FOUND and the caller should
// re-sync its view of the active set.
func (e *Engine) StartChallenge(ctx context.Context, challengeID string) (challenge.Challenge, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.clock.Now()
	today := DateOf(now)

	var out challenge.Challenge
	err := e.store.Update(ctx, func(kv store.KV) error {
		st, err := loadState(ctx, kv, now, e.logger)
		if err != nil {
			return err
		}
		c, err := findChallenge(st, challengeID, today)
		if err != nil {
			return err
		}
		if c.Completed {
			return NewAlreadyCompletedError(challengeID)
		}
		out = *c
		return saveState(ctx, kv, st)
	})
	if err != nil {
		return challenge.Challenge{}, err
	}
	return out, nil
}

// ReportOutcome records a mini-game outcome against a challenge.
//
// The outcome is the game's normalized 0-100 progress figure; the engine
// trusts it (clamping to the valid range) and does not re-derive it from
// the requirement. Completion is one-way: a repeat report fails with
// ALREADY_COMPLETED and leaves progress unchanged.
//
// Only today's set accepts reports: a challenge from a stale prior-date
// set fails with NOT_FOUND, keeping this consistent with
// DailyProgressPercent, which counts a stale set as zero progress.
//
// The first completion of a calendar date advances the streak. The
// ChallengeCompleted event is emitted after the state change commits.
func (e *Engine) ReportOutcome(ctx context.Context, challengeID string, outcome int) (challenge.Challenge, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.clock.Now()
	today := DateOf(now)

	var out challenge.Challenge
	err := e.store.Update(ctx, func(kv store.KV) error {
		st, err := loadState(ctx, kv, now, e.logger)
		if err != nil {
			return err
		}
		c, err := findChallenge(st, challengeID, today)
		if err != nil {
			return err
		}
		if c.Completed {
			return NewAlreadyCompletedError(challengeID)
		}

		c.Progress = clampProgress(outcome)
		c.Completed = true

		if st.streak.RecordCompletion(today) {
			e.logger.Info("streak advanced", "count", st.streak.Count, "date", today)
		}

		out = *c
		return saveState(ctx, kv, st)
	})
	if err != nil {
		return challenge.Challenge{}, err
	}

	e.emitCompleted(out.ID, out.Game.Name, out.Points, today)
	return out, nil
}

// Refresh substitutes the challenge's game with one drawn from the catalog
// minus the games already active, preserving the challenge's type and
// position. The replacement starts uncompleted with zero progress and a
// point award recomputed for the new game's difficulty.
//
// Fails with NO_GAMES_AVAILABLE (a no-op) when every catalog game is
// already active, and with NOT_FOUND when the id is unknown or belongs to
// a stale prior-date set.
func (e *Engine) Refresh(ctx context.Context, challengeID string) (challenge.DailySet, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.clock.Now()
	today := DateOf(now)

	var out challenge.DailySet
	err := e.store.Update(ctx, func(kv store.KV) error {
		st, err := loadState(ctx, kv, now, e.logger)
		if err != nil {
			return err
		}
		idx := -1
		if st.set != nil && st.set.Date == today {
			idx = st.set.Find(challengeID)
		}
		if idx < 0 {
			return NewNotFoundError(challengeID)
		}

		available := e.catalog.Excluding(st.set.GameIDs())
		if len(available) == 0 {
			return NewNoGamesAvailableError(challengeID)
		}

		old := st.set.Challenges[idx]
		game := e.random.Pick(available)
		st.set.Challenges[idx] = challenge.Build(game, old.Type, idx, e.mintStamp(now, st.set))
		e.logger.Info("refreshed challenge",
			"old", old.ID, "new", st.set.Challenges[idx].ID, "game", game.ID)

		out = cloneSet(st.set)
		return saveState(ctx, kv, st)
	})
	if err != nil {
		return challenge.DailySet{}, err
	}
	return out, nil
}

// RegenerateAll discards the current daily set and generates a fresh one
// for today. This is an explicit user action: it is the only way an
// existing same-date set gets replaced. The streak is untouched.
func (e *Engine) RegenerateAll(ctx context.Context) (challenge.DailySet, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.clock.Now()
	var out challenge.DailySet
	err := e.store.Update(ctx, func(kv store.KV) error {
		st, err := loadState(ctx, kv, now, e.logger)
		if err != nil {
			return err
		}
		set, err := e.generate(now, st.set)
		if err != nil {
			return err
		}
		st.set = set
		e.logger.Info("regenerated daily set", "date", set.Date)

		out = cloneSet(st.set)
		return saveState(ctx, kv, st)
	})
	if err != nil {
		return challenge.DailySet{}, err
	}
	return out, nil
}

// Streak returns the current streak state, with decay for today applied
// and persisted.
func (e *Engine) Streak(ctx context.Context) (StreakState, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.clock.Now()
	var out StreakState
	err := e.store.Update(ctx, func(kv store.KV) error {
		st, err := loadState(ctx, kv, now, e.logger)
		if err != nil {
			return err
		}
		out = st.streak
		return saveState(ctx, kv, st)
	})
	if err != nil {
		return StreakState{}, err
	}
	return out, nil
}

// DailyProgressPercent returns the rounded percentage of today's challenges
// that are completed. A missing or stale set counts as zero progress; the
// method never generates a set as a side effect.
func (e *Engine) DailyProgressPercent(ctx context.Context) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.clock.Now()
	today := DateOf(now)

	var percent int
	err := e.store.Update(ctx, func(kv store.KV) error {
		st, err := loadState(ctx, kv, now, e.logger)
		if err != nil {
			return err
		}
		if st.set != nil && st.set.Date == today {
			percent = st.set.ProgressPercent()
		}
		return saveState(ctx, kv, st)
	})
	if err != nil {
		return 0, err
	}
	return percent, nil
}

// generate builds a fresh daily set for the date of now: challenge.Size
// distinct random games, with the type for position i fixed by
// challenge.Types[i mod 3]. Only the game choice is random. The set being
// replaced, if any, is passed so none of its ids get re-minted.
func (e *Engine) generate(now time.Time, prev *challenge.DailySet) (*challenge.DailySet, error) {
	if e.catalog.Len() < challenge.Size {
		return nil, NewInsufficientCatalogError(e.catalog.Len(), challenge.Size)
	}

	games := e.random.PickDistinct(e.catalog.Games(), challenge.Size)
	if len(games) < challenge.Size {
		return nil, NewInsufficientCatalogError(len(games), challenge.Size)
	}

	set := &challenge.DailySet{
		Date:       DateOf(now),
		Challenges: make([]challenge.Challenge, challenge.Size),
	}
	stamp := e.mintStamp(now, prev)
	for i, game := range games {
		t := challenge.Types[i%len(challenge.Types)]
		set.Challenges[i] = challenge.Build(game, t, i, stamp)
	}

	if err := set.Validate(); err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}
	return set, nil
}

// mintStamp returns a creation stamp for challenge ids that is strictly
// later, in milliseconds, than any stamp this engine minted before and any
// stamp embedded in the loaded set's ids. Two operations landing on the
// same wall-clock millisecond would otherwise produce colliding ids: a
// refresh would mint the exact id it displaces, and a same-millisecond
// regenerate (possibly from a fresh engine over the same store) would
// re-mint the whole set. Callers must hold e.mu.
func (e *Engine) mintStamp(now time.Time, set *challenge.DailySet) time.Time {
	ms := now.UnixMilli()
	if ms <= e.lastMillis {
		ms = e.lastMillis + 1
	}
	if set != nil {
		for i := range set.Challenges {
			if m, ok := challenge.IDMillis(set.Challenges[i].ID); ok && ms <= m {
				ms = m + 1
			}
		}
	}
	e.lastMillis = ms
	return time.UnixMilli(ms)
}

// findChallenge locates a challenge by id in today's set. A set persisted
// for an earlier date is inert: its challenges cannot be started, reported,
// or refreshed, matching DailyProgressPercent treating it as zero progress.
func findChallenge(st *state, challengeID, today string) (*challenge.Challenge, error) {
	if st.set == nil || st.set.Date != today {
		return nil, NewNotFoundError(challengeID)
	}
	idx := st.set.Find(challengeID)
	if idx < 0 {
		return nil, NewNotFoundError(challengeID)
	}
	return &st.set.Challenges[idx], nil
}

// cloneSet returns a copy whose challenge slice is independent of the
// engine's state, so callers can hold results across operations.
func cloneSet(set *challenge.DailySet) challenge.DailySet {
	out := challenge.DailySet{
		Date:       set.Date,
		Challenges: make([]challenge.Challenge, len(set.Challenges)),
	}
	copy(out.Challenges, set.Challenges)
	return out
}

// clampProgress bounds a reported outcome to the valid 0-100 range.
func clampProgress(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
