package repositories

import "errors"

var (
	// ErrNotFound is returned when no record matches the lookup.
	ErrNotFound = errors.New("record not found")

	// ErrInvalidID is returned when an id does not have the store's id format.
	ErrInvalidID = errors.New("invalid id")

	// ErrDuplicateKey is returned when a write violates a unique index (users.email).
	ErrDuplicateKey = errors.New("duplicate key")
)
