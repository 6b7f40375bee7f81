package errors

import (
	"errors"
	"fmt"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgerrcode"
	kdb "github.com/openscilab/pycm-api/pkg/db"
)

// requested record is missing.
type Missing struct {
	Table    string
	Identity string
}

var _ error = Missing{}

func (m Missing) Error() string {
	return fmt.Sprintf("%s is not found in %s", m.Identity, m.Table)
}

func (m Missing) Unwrap() error {
	return kdb.ErrMissing
}

// a unique column already holds the value.
type Conflict struct {
	Table    string
	Identity string
}

var _ error = Conflict{}

func (c Conflict) Error() string {
	return fmt.Sprintf("%s is already registered in %s", c.Identity, c.Table)
}

func (c Conflict) Unwrap() error {
	return kdb.ErrConflict
}

// AsConflict translates a postgres unique-violation into Conflict.
//
// Other errors pass through unchanged.
func AsConflict(err error, table string, identity string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return Conflict{Table: table, Identity: identity}
	}
	return err
}
