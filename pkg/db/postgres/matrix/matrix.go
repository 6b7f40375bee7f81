package matrix

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4"
	kpool "github.com/openscilab/pycm-api/pkg/conn/db/postgres/pool"
	kdb "github.com/openscilab/pycm-api/pkg/db"
	kpgerr "github.com/openscilab/pycm-api/pkg/db/postgres/errors"
	xe "github.com/openscilab/pycm-api/pkg/errors"
)

type pgMatrix struct {
	pool kpool.Pool
}

func New(pool kpool.Pool) kdb.MatrixInterface {
	return &pgMatrix{pool: pool}
}

func (m *pgMatrix) Register(ctx context.Context, uid string, ownerId int) (*kdb.Matrix, error) {
	row := kdb.Matrix{Uid: uid, OwnerId: ownerId}
	err := m.pool.QueryRow(
		ctx,
		`
		insert into "cms" ("uid", "owner_id") values ($1, $2)
		returning "created_at";
		`,
		uid, ownerId,
	).Scan(&row.CreatedAt)
	if err != nil {
		return nil, xe.Wrap(kpgerr.AsConflict(err, "cms", uid))
	}
	return &row, nil
}

func (m *pgMatrix) Get(ctx context.Context, uid string) (*kdb.Matrix, error) {
	row := kdb.Matrix{}
	err := m.pool.QueryRow(
		ctx,
		`select "uid", "owner_id", "created_at" from "cms" where "uid" = $1;`,
		uid,
	).Scan(&row.Uid, &row.OwnerId, &row.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, kpgerr.Missing{Table: "cms", Identity: uid}
	} else if err != nil {
		return nil, xe.Wrap(err)
	}
	return &row, nil
}

func (m *pgMatrix) Find(ctx context.Context, skip int, limit int) ([]kdb.Matrix, error) {
	rows, err := m.pool.Query(
		ctx,
		`
		select "uid", "owner_id", "created_at" from "cms"
		order by "id" offset $1 limit $2;
		`,
		skip, limit,
	)
	if err != nil {
		return nil, xe.Wrap(err)
	}
	defer rows.Close()

	found := []kdb.Matrix{}
	for rows.Next() {
		row := kdb.Matrix{}
		if err := rows.Scan(&row.Uid, &row.OwnerId, &row.CreatedAt); err != nil {
			return nil, xe.Wrap(err)
		}
		found = append(found, row)
	}
	if err := rows.Err(); err != nil {
		return nil, xe.Wrap(err)
	}
	return found, nil
}

func (m *pgMatrix) Delete(ctx context.Context, uid string) error {
	tag, err := m.pool.Exec(ctx, `delete from "cms" where "uid" = $1;`, uid)
	if err != nil {
		return xe.Wrap(err)
	}
	if tag.RowsAffected() == 0 {
		return kpgerr.Missing{Table: "cms", Identity: uid}
	}
	return nil
}
