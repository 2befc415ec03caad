package gauntletservice

import "errors"

// Sentinel errors for state conflicts the HTTP layer maps to 4xx
// responses. Anything else that comes out of the service is an
// infrastructure failure.
var (
	// ErrNotAcceptingMatches indicates a match was submitted to a
	// gauntlet whose status does not accept matches.
	ErrNotAcceptingMatches = errors.New("gauntlet is not accepting matches")

	// ErrInvalidTransition indicates a status change the lifecycle state
	// machine does not allow.
	ErrInvalidTransition = errors.New("status transition not allowed")

	// ErrNotInSetup indicates a seeding attempt on a gauntlet past setup.
	ErrNotInSetup = errors.New("gauntlet is not in setup")

	// ErrAlreadySeeded indicates a seeding attempt on a non-empty ladder.
	ErrAlreadySeeded = errors.New("gauntlet ladder is not empty")

	// ErrRankOutOfRange indicates a manual adjustment outside
	// [1, position count].
	ErrRankOutOfRange = errors.New("rank out of range")
)
