package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/roach88/dailymind/internal/challenge"
	"github.com/roach88/dailymind/internal/store"
)

// Persisted state keys. The layout is four string-keyed records: the daily
// set (JSON array of challenges), its date, the streak count, and the last
// completion date.
const (
	KeyDailyChallenges        = "dailyChallenges"
	KeyDailyChallengesDate    = "dailyChallengesDate"
	KeyChallengeStreak        = "challengeStreak"
	KeyLastChallengeCompleted = "lastChallengeCompleted"
)

// state is the engine's full persisted state, loaded and written as a unit.
type state struct {
	// set is today's (or a stale prior date's) daily set, nil when absent
	// or discarded as corrupt.
	set *challenge.DailySet

	// streak is the current streak state, already decayed for now.
	streak StreakState
}

// loadState reads and repairs the persisted state.
//
// Corrupt records never propagate: a daily set that fails to parse or fails
// schema validation is discarded (the caller regenerates a fresh one for
// today), a malformed streak count resets to 0, and a malformed completion
// date is treated as absent. Streak decay for now is applied before return.
func loadState(ctx context.Context, kv store.KV, now time.Time, logger *slog.Logger) (*state, error) {
	st := &state{}

	rawSet, okSet, err := kv.Get(ctx, KeyDailyChallenges)
	if err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}
	setDate, okDate, err := kv.Get(ctx, KeyDailyChallengesDate)
	if err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}
	if okSet && okDate {
		var challenges []challenge.Challenge
		if err := json.Unmarshal([]byte(rawSet), &challenges); err != nil {
			logger.Warn("discarding corrupt daily set", "error", err)
		} else {
			set := &challenge.DailySet{Date: setDate, Challenges: challenges}
			if err := set.Validate(); err != nil {
				logger.Warn("discarding invalid daily set", "error", err)
			} else {
				st.set = set
			}
		}
	}

	rawStreak, ok, err := kv.Get(ctx, KeyChallengeStreak)
	if err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}
	if ok {
		count, err := strconv.Atoi(rawStreak)
		if err != nil || count < 0 {
			logger.Warn("discarding corrupt streak count", "value", rawStreak)
		} else {
			st.streak.Count = count
		}
	}

	last, ok, err := kv.Get(ctx, KeyLastChallengeCompleted)
	if err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}
	if ok {
		if _, err := time.Parse(DateLayout, last); err != nil {
			logger.Warn("discarding corrupt completion date", "value", last)
		} else {
			st.streak.LastCompleted = last
		}
	}

	if st.streak.Decay(YesterdayOf(now)) {
		logger.Info("streak reset after skipped day", "lastCompleted", st.streak.LastCompleted)
	}

	return st, nil
}

// saveState writes the full state back. Absent values clear their keys so a
// later load sees the same shape.
func saveState(ctx context.Context, kv store.KV, st *state) error {
	if st.set != nil {
		data, err := json.Marshal(st.set.Challenges)
		if err != nil {
			return fmt.Errorf("save state: marshal daily set: %w", err)
		}
		if err := kv.Set(ctx, KeyDailyChallenges, string(data)); err != nil {
			return fmt.Errorf("save state: %w", err)
		}
		if err := kv.Set(ctx, KeyDailyChallengesDate, st.set.Date); err != nil {
			return fmt.Errorf("save state: %w", err)
		}
	} else {
		if err := kv.Delete(ctx, KeyDailyChallenges); err != nil {
			return fmt.Errorf("save state: %w", err)
		}
		if err := kv.Delete(ctx, KeyDailyChallengesDate); err != nil {
			return fmt.Errorf("save state: %w", err)
		}
	}

	if err := kv.Set(ctx, KeyChallengeStreak, strconv.Itoa(st.streak.Count)); err != nil {
		return fmt.Errorf("save state: %w", err)
	}

	if st.streak.LastCompleted != "" {
		if err := kv.Set(ctx, KeyLastChallengeCompleted, st.streak.LastCompleted); err != nil {
			return fmt.Errorf("save state: %w", err)
		}
	} else {
		if err := kv.Delete(ctx, KeyLastChallengeCompleted); err != nil {
			return fmt.Errorf("save state: %w", err)
		}
	}

	return nil
}
