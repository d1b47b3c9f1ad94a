package testutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFixedClock_Now(t *testing.T) {
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	c := NewFixedClock(start)

	assert.Equal(t, start, c.Now())
	assert.Equal(t, start, c.Now(), "reading must not advance the clock")
}

func TestFixedClock_Set(t *testing.T) {
	c := NewFixedClock(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))
	later := time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)

	c.Set(later)
	assert.Equal(t, later, c.Now())
}

func TestFixedClock_Advance(t *testing.T) {
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	c := NewFixedClock(start)

	c.Advance(90 * time.Minute)
	assert.Equal(t, start.Add(90*time.Minute), c.Now())
}

func TestFixedClock_AdvanceDays(t *testing.T) {
	c := NewFixedClock(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))

	c.AdvanceDays(2)
	assert.Equal(t, time.Date(2025, 3, 12, 9, 0, 0, 0, time.UTC), c.Now())
}
