package engine

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_Message(t *testing.T) {
	err := NewAlreadyCompletedError("challenge-1-0")
	assert.Equal(t, "ALREADY_COMPLETED: challenge is already completed (challenge=challenge-1-0)", err.Error())

	catErr := NewInsufficientCatalogError(2, 3)
	assert.Equal(t, "INSUFFICIENT_CATALOG: catalog has 2 games, need 3", catErr.Error())
	assert.Equal(t, "2", catErr.Details["have"])
	assert.Equal(t, "3", catErr.Details["need"])
}

func TestErrorPredicates(t *testing.T) {
	assert.True(t, IsInsufficientCatalog(NewInsufficientCatalogError(1, 3)))
	assert.True(t, IsAlreadyCompleted(NewAlreadyCompletedError("c")))
	assert.True(t, IsNoGamesAvailable(NewNoGamesAvailableError("c")))
	assert.True(t, IsNotFound(NewNotFoundError("c")))

	assert.False(t, IsNotFound(NewAlreadyCompletedError("c")))
	assert.False(t, IsAlreadyCompleted(errors.New("plain")))
	assert.False(t, IsNoGamesAvailable(nil))
}

func TestErrorPredicates_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("report outcome: %w", NewAlreadyCompletedError("c"))
	assert.True(t, IsAlreadyCompleted(wrapped))
}
