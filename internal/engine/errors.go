package engine

import (
	"errors"
	"fmt"
)

// Error represents a failed engine operation.
//
// Engine errors are explicit result values, not faults: every code except
// ErrCodeInsufficientCatalog is recoverable by the caller (redirect to a
// results view, show a notice, re-sync state). Corrupt persisted state never
// surfaces as an Error at all; the engine discards and regenerates instead.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// ChallengeID identifies the affected challenge, when there is one.
	ChallengeID string

	// Details contains additional context.
	Details map[string]string
}

// ErrorCode categorizes engine errors.
type ErrorCode string

const (
	// ErrCodeInsufficientCatalog indicates the catalog has fewer usable
	// games than a daily set needs. Fatal to generation.
	ErrCodeInsufficientCatalog ErrorCode = "INSUFFICIENT_CATALOG"

	// ErrCodeAlreadyCompleted indicates an outcome was reported for a
	// finished challenge. The caller should show results instead.
	ErrCodeAlreadyCompleted ErrorCode = "ALREADY_COMPLETED"

	// ErrCodeNoGamesAvailable indicates a refresh found no substitute game.
	// The operation is a no-op.
	ErrCodeNoGamesAvailable ErrorCode = "NO_GAMES_AVAILABLE"

	// ErrCodeNotFound indicates an unknown challenge id. The caller should
	// re-sync its view of the active set.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
)

// Error implements the error interface.
func (e *Error) Error() string {
	if e.ChallengeID != "" {
		return fmt.Sprintf("%s: %s (challenge=%s)", e.Code, e.Message, e.ChallengeID)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsInsufficientCatalog reports whether err is an insufficient-catalog error.
// Uses errors.As to handle wrapped errors.
func IsInsufficientCatalog(err error) bool {
	return hasCode(err, ErrCodeInsufficientCatalog)
}

// IsAlreadyCompleted reports whether err is an already-completed error.
func IsAlreadyCompleted(err error) bool {
	return hasCode(err, ErrCodeAlreadyCompleted)
}

// IsNoGamesAvailable reports whether err is a no-games-available error.
func IsNoGamesAvailable(err error) bool {
	return hasCode(err, ErrCodeNoGamesAvailable)
}

// IsNotFound reports whether err is an unknown-challenge error.
func IsNotFound(err error) bool {
	return hasCode(err, ErrCodeNotFound)
}

func hasCode(err error, code ErrorCode) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// NewInsufficientCatalogError creates an Error for a catalog too small to
// generate a daily set from.
func NewInsufficientCatalogError(have, need int) *Error {
	return &Error{
		Code:    ErrCodeInsufficientCatalog,
		Message: fmt.Sprintf("catalog has %d games, need %d", have, need),
		Details: map[string]string{
			"have": fmt.Sprintf("%d", have),
			"need": fmt.Sprintf("%d", need),
		},
	}
}

// NewAlreadyCompletedError creates an Error for a repeat outcome report.
func NewAlreadyCompletedError(challengeID string) *Error {
	return &Error{
		Code:        ErrCodeAlreadyCompleted,
		Message:     "challenge is already completed",
		ChallengeID: challengeID,
	}
}

// NewNoGamesAvailableError creates an Error for a refresh with no substitute.
func NewNoGamesAvailableError(challengeID string) *Error {
	return &Error{
		Code:        ErrCodeNoGamesAvailable,
		Message:     "no games available to refresh with",
		ChallengeID: challengeID,
	}
}

// NewNotFoundError creates an Error for an unknown challenge id.
func NewNotFoundError(challengeID string) *Error {
	return &Error{
		Code:        ErrCodeNotFound,
		Message:     "no active challenge with this id",
		ChallengeID: challengeID,
	}
}
