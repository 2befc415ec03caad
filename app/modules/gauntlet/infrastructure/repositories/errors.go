package gauntletdb

import "errors"

// Sentinel errors for the repository layer. These represent
// infrastructure-level conditions callers may want to handle specially
// (not business-domain errors).
var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicatePosition indicates a position already exists for the
	// (gauntlet, lineup) pair. Under correct locking this means a caller
	// bug; without it, a bootstrap race.
	ErrDuplicatePosition = errors.New("position already exists for lineup in gauntlet")

	// ErrPositionNotFound indicates an update matched no position row.
	ErrPositionNotFound = errors.New("position not found")
)
