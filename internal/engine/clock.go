package engine

import "time"

// DateLayout is the calendar date format used for all persisted dates.
// YYYY-MM-DD sorts lexicographically in chronological order, which the
// streak decay comparison relies on.
const DateLayout = "2006-01-02"

// Clock is the injected time source. The engine never reads wall-clock time
// directly; everything date-sensitive flows through this interface so streak
// decay and generation idempotency are deterministic in tests.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the real wall clock in the local time zone.
type SystemClock struct{}

// Now returns the current local time.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// DateOf formats a moment as its calendar date in that moment's location.
func DateOf(t time.Time) string {
	return t.Format(DateLayout)
}

// YesterdayOf returns the calendar date one day before the given moment.
func YesterdayOf(t time.Time) string {
	return DateOf(t.AddDate(0, 0, -1))
}
