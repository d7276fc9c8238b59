package repositories

import "errors"

// Sentinel errors shared by all repository implementations so callers can
// branch without matching on driver error strings.
var (
	// ErrNotFound is returned when a lookup matches no document.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate is returned when an insert violates a unique index,
	// e.g. a second like for the same (post, author) pair.
	ErrDuplicate = errors.New("record already exists")
)
