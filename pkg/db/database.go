package db

// Database vends the per-table store interfaces.
type Database interface {
	Users() UserInterface
	Matrices() MatrixInterface
	Close() error
}
