package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/dailymind/internal/catalog"
	"github.com/roach88/dailymind/internal/store"
	"github.com/roach88/dailymind/internal/testutil"
)

// newSeededStore opens an in-memory store pre-populated with raw records.
func newSeededStore(t *testing.T, records map[string]string) *store.Store {
	t.Helper()
	st, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	ctx := context.Background()
	for k, v := range records {
		require.NoError(t, st.Set(ctx, k, v))
	}
	return st
}

func engineOver(st *store.Store) *Engine {
	return New(st, catalog.Default(),
		WithClock(testutil.NewFixedClock(testStart)),
		WithRandom(testutil.NewScriptedPicker()),
		WithLogger(discardLogger()),
	)
}

func TestCorruptDailySet_RegeneratesFresh(t *testing.T) {
	st := newSeededStore(t, map[string]string{
		KeyDailyChallenges:     "{not json",
		KeyDailyChallengesDate: "2025-03-10",
	})
	eng := engineOver(st)

	set, err := eng.ActiveChallenges(context.Background())
	require.NoError(t, err, "corrupt state must self-heal, not crash")
	assert.Equal(t, "2025-03-10", set.Date)
	require.Len(t, set.Challenges, 3)
	assert.NoError(t, set.Validate())
}

func TestInvalidDailySet_FailsSchema_RegeneratesFresh(t *testing.T) {
	// Parses as JSON but violates the set invariants (only one challenge).
	st := newSeededStore(t, map[string]string{
		KeyDailyChallenges:     `[{"id":"challenge-1-0","game":{"id":"game-1","name":"Memory Match","category":"memory","difficulty":"Easy","defaultRequirement":500},"type":"score","requirement":500,"requirementLabel":"Score 500 points","completed":false,"progress":0,"points":100}]`,
		KeyDailyChallengesDate: "2025-03-10",
	})
	eng := engineOver(st)

	set, err := eng.ActiveChallenges(context.Background())
	require.NoError(t, err)
	require.Len(t, set.Challenges, 3)
}

func TestCorruptStreakCount_ResetsToZero(t *testing.T) {
	st := newSeededStore(t, map[string]string{
		KeyChallengeStreak:        "eleven",
		KeyLastChallengeCompleted: "2025-03-09",
	})
	eng := engineOver(st)

	streak, err := eng.Streak(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, streak.Count)
	assert.Equal(t, "2025-03-09", streak.LastCompleted)
}

func TestNegativeStreakCount_ResetsToZero(t *testing.T) {
	st := newSeededStore(t, map[string]string{
		KeyChallengeStreak: "-3",
	})
	eng := engineOver(st)

	streak, err := eng.Streak(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, streak.Count)
}

func TestCorruptCompletionDate_TreatedAsAbsent(t *testing.T) {
	st := newSeededStore(t, map[string]string{
		KeyChallengeStreak:        "4",
		KeyLastChallengeCompleted: "last tuesday",
	})
	eng := engineOver(st)

	streak, err := eng.Streak(context.Background())
	require.NoError(t, err)
	assert.Empty(t, streak.LastCompleted)
}

func TestStalePriorDaySet_ReplacedOnNewDay(t *testing.T) {
	// A valid set persisted for an earlier date must not leak into today.
	st, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	clock := testutil.NewFixedClock(testStart)
	eng := New(st, catalog.Default(),
		WithClock(clock),
		WithRandom(testutil.NewScriptedPicker()),
		WithLogger(discardLogger()),
	)
	ctx := context.Background()

	old, err := eng.ActiveChallenges(ctx)
	require.NoError(t, err)

	clock.AdvanceDays(3)
	fresh, err := eng.ActiveChallenges(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-13", fresh.Date)
	assert.NotEqual(t, old.Challenges[0].ID, fresh.Challenges[0].ID)
}

func TestStatePersistsAcrossEngines(t *testing.T) {
	st, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	ctx := context.Background()
	clock := testutil.NewFixedClock(testStart)

	first := New(st, catalog.Default(),
		WithClock(clock),
		WithRandom(testutil.NewScriptedPicker()),
		WithLogger(discardLogger()),
	)
	set, err := first.ActiveChallenges(ctx)
	require.NoError(t, err)
	_, err = first.ReportOutcome(ctx, set.Challenges[0].ID, 88)
	require.NoError(t, err)

	// A second engine over the same store sees the identical state, as a
	// process restart would.
	second := New(st, catalog.Default(),
		WithClock(clock),
		WithRandom(testutil.NewScriptedPicker()),
		WithLogger(discardLogger()),
	)
	reloaded, err := second.ActiveChallenges(ctx)
	require.NoError(t, err)
	assert.Equal(t, set.Date, reloaded.Date)
	assert.True(t, reloaded.Challenges[0].Completed)
	assert.Equal(t, 88, reloaded.Challenges[0].Progress)

	streak, err := second.Streak(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, streak.Count)
}
