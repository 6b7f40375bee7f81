package postgres

import (
	"context"
	"database/sql"

	"github.com/jackc/pgx/v4/pgxpool"
	_ "github.com/jackc/pgx/v4/stdlib"
	"github.com/pressly/goose/v3"

	kpool "github.com/openscilab/pycm-api/pkg/conn/db/postgres/pool"
	kdb "github.com/openscilab/pycm-api/pkg/db"
	kpgmatrix "github.com/openscilab/pycm-api/pkg/db/postgres/matrix"
	"github.com/openscilab/pycm-api/pkg/db/postgres/migrations"
	kpgusers "github.com/openscilab/pycm-api/pkg/db/postgres/users"
	xe "github.com/openscilab/pycm-api/pkg/errors"
)

type pycmDBPostgres struct {
	pool     kpool.Pool
	users    kdb.UserInterface
	matrices kdb.MatrixInterface
}

// New connects to postgres and vends the store interfaces over a shared
// pool.
func New(ctx context.Context, url string) (kdb.Database, error) {
	pgpool, err := pgxpool.Connect(ctx, url)
	if err != nil {
		return nil, xe.Wrap(err)
	}

	p := kpool.Wrap(pgpool)
	return &pycmDBPostgres{
		pool:     p,
		users:    kpgusers.New(p),
		matrices: kpgmatrix.New(p),
	}, nil
}

func (d *pycmDBPostgres) Users() kdb.UserInterface {
	return d.users
}

func (d *pycmDBPostgres) Matrices() kdb.MatrixInterface {
	return d.matrices
}

func (d *pycmDBPostgres) Close() error {
	d.pool.Close()
	return nil
}

// Migrate brings the schema up to date with the embedded goose migrations.
func Migrate(ctx context.Context, url string) error {
	conn, err := sql.Open("pgx", url)
	if err != nil {
		return xe.Wrap(err)
	}
	defer conn.Close()

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return xe.Wrap(err)
	}
	if err := goose.UpContext(ctx, conn, "."); err != nil {
		return xe.Wrap(err)
	}
	return nil
}
