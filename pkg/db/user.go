package db

import "context"

// User is an account row.
//
// ApiKey is the bearer credential of every non-admin endpoint. MatrixUids
// holds the uids of confusion matrices owned by this user.
type User struct {
	Id             int
	Email          string
	HashedPassword string
	ApiKey         string
	Credit         int
	IsActive       bool
	MatrixUids     []string
}

// UserSpec is the payload of a new account.
type UserSpec struct {
	Email          string
	HashedPassword string
	ApiKey         string
	Credit         int
}

type UserInterface interface {
	// Register inserts a new active user.
	//
	// When the email is already registered, it returns error wrapping
	// ErrConflict.
	Register(ctx context.Context, spec UserSpec) (*User, error)

	// GetByEmail finds a user by email.
	//
	// When no user matches, it returns error wrapping ErrMissing.
	GetByEmail(ctx context.Context, email string) (*User, error)

	// GetByApiKey finds an active user by API key.
	//
	// When no active user matches, it returns error wrapping ErrMissing.
	GetByApiKey(ctx context.Context, apiKey string) (*User, error)

	// Find lists users in insertion order.
	Find(ctx context.Context, skip int, limit int) ([]User, error)

	// SpendCredit decrements the user's credit balance, not below zero.
	SpendCredit(ctx context.Context, userId int, amount int) error
}
