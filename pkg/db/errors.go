package db

import "errors"

var (
	// ErrMissing: requested record is not found.
	ErrMissing = errors.New("missing")

	// ErrConflict: a unique column already holds the given value.
	ErrConflict = errors.New("conflict")
)
