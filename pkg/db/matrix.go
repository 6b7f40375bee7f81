package db

import (
	"context"
	"time"
)

// Matrix is the index row of a stored confusion matrix.
//
// It only records identity and ownership; the matrix content lives in the
// file store under the same uid. A row should exist if and only if its
// object file does.
type Matrix struct {
	Uid       string
	OwnerId   int
	CreatedAt time.Time
}

type MatrixInterface interface {
	// Register inserts the index row of a freshly stored matrix.
	//
	// When the uid is taken, it returns error wrapping ErrConflict.
	Register(ctx context.Context, uid string, ownerId int) (*Matrix, error)

	// Get finds the row by uid.
	//
	// When no row matches, it returns error wrapping ErrMissing.
	Get(ctx context.Context, uid string) (*Matrix, error)

	// Find lists rows in insertion order.
	Find(ctx context.Context, skip int, limit int) ([]Matrix, error)

	// Delete removes the row by uid.
	//
	// When no row matches, it returns error wrapping ErrMissing.
	Delete(ctx context.Context, uid string) error
}
