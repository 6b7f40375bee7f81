package users

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4"
	kpool "github.com/openscilab/pycm-api/pkg/conn/db/postgres/pool"
	kdb "github.com/openscilab/pycm-api/pkg/db"
	kpgerr "github.com/openscilab/pycm-api/pkg/db/postgres/errors"
	xe "github.com/openscilab/pycm-api/pkg/errors"
)

type pgUsers struct {
	pool kpool.Pool
}

func New(pool kpool.Pool) kdb.UserInterface {
	return &pgUsers{pool: pool}
}

func (u *pgUsers) Register(ctx context.Context, spec kdb.UserSpec) (*kdb.User, error) {
	var id int
	err := u.pool.QueryRow(
		ctx,
		`
		insert into "users" ("email", "hashed_password", "api_key", "credit", "is_active")
		values ($1, $2, $3, $4, true)
		returning "id";
		`,
		spec.Email, spec.HashedPassword, spec.ApiKey, spec.Credit,
	).Scan(&id)
	if err != nil {
		return nil, xe.Wrap(kpgerr.AsConflict(err, "users", spec.Email))
	}

	return &kdb.User{
		Id:             id,
		Email:          spec.Email,
		HashedPassword: spec.HashedPassword,
		ApiKey:         spec.ApiKey,
		Credit:         spec.Credit,
		IsActive:       true,
		MatrixUids:     []string{},
	}, nil
}

func (u *pgUsers) GetByEmail(ctx context.Context, email string) (*kdb.User, error) {
	return u.getBy(ctx, `where "email" = $1`, email)
}

func (u *pgUsers) GetByApiKey(ctx context.Context, apiKey string) (*kdb.User, error) {
	return u.getBy(ctx, `where "api_key" = $1 and "is_active"`, apiKey)
}

func (u *pgUsers) getBy(ctx context.Context, where string, arg interface{}) (*kdb.User, error) {
	tx, err := u.pool.Begin(ctx)
	if err != nil {
		return nil, xe.Wrap(err)
	}
	defer tx.Rollback(ctx)

	user := kdb.User{MatrixUids: []string{}}
	err = tx.QueryRow(
		ctx,
		`
		select "id", "email", "hashed_password", "api_key", "credit", "is_active"
		from "users" `+where+`;
		`,
		arg,
	).Scan(
		&user.Id, &user.Email, &user.HashedPassword,
		&user.ApiKey, &user.Credit, &user.IsActive,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, kpgerr.Missing{Table: "users", Identity: "(requested user)"}
	} else if err != nil {
		return nil, xe.Wrap(err)
	}

	rows, err := tx.Query(
		ctx,
		`select "uid" from "cms" where "owner_id" = $1 order by "id";`,
		user.Id,
	)
	if err != nil {
		return nil, xe.Wrap(err)
	}
	defer rows.Close()
	for rows.Next() {
		var uid string
		if err := rows.Scan(&uid); err != nil {
			return nil, xe.Wrap(err)
		}
		user.MatrixUids = append(user.MatrixUids, uid)
	}
	if err := rows.Err(); err != nil {
		return nil, xe.Wrap(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, xe.Wrap(err)
	}
	return &user, nil
}

func (u *pgUsers) Find(ctx context.Context, skip int, limit int) ([]kdb.User, error) {
	tx, err := u.pool.Begin(ctx)
	if err != nil {
		return nil, xe.Wrap(err)
	}
	defer tx.Rollback(ctx)

	rows, err := tx.Query(
		ctx,
		`
		select "id", "email", "hashed_password", "api_key", "credit", "is_active"
		from "users" order by "id" offset $1 limit $2;
		`,
		skip, limit,
	)
	if err != nil {
		return nil, xe.Wrap(err)
	}

	users := []kdb.User{}
	index := map[int]int{}
	ids := []int64{}
	for rows.Next() {
		user := kdb.User{MatrixUids: []string{}}
		if err := rows.Scan(
			&user.Id, &user.Email, &user.HashedPassword,
			&user.ApiKey, &user.Credit, &user.IsActive,
		); err != nil {
			rows.Close()
			return nil, xe.Wrap(err)
		}
		index[user.Id] = len(users)
		ids = append(ids, int64(user.Id))
		users = append(users, user)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, xe.Wrap(err)
	}

	if len(ids) != 0 {
		cms, err := tx.Query(
			ctx,
			`select "owner_id", "uid" from "cms" where "owner_id" = any($1) order by "id";`,
			ids,
		)
		if err != nil {
			return nil, xe.Wrap(err)
		}
		defer cms.Close()
		for cms.Next() {
			var ownerId int
			var uid string
			if err := cms.Scan(&ownerId, &uid); err != nil {
				return nil, xe.Wrap(err)
			}
			if i, ok := index[ownerId]; ok {
				users[i].MatrixUids = append(users[i].MatrixUids, uid)
			}
		}
		if err := cms.Err(); err != nil {
			return nil, xe.Wrap(err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, xe.Wrap(err)
	}
	return users, nil
}

func (u *pgUsers) SpendCredit(ctx context.Context, userId int, amount int) error {
	tag, err := u.pool.Exec(
		ctx,
		`update "users" set "credit" = greatest("credit" - $2, 0) where "id" = $1;`,
		userId, amount,
	)
	if err != nil {
		return xe.Wrap(err)
	}
	if tag.RowsAffected() == 0 {
		return kpgerr.Missing{Table: "users", Identity: "(requested user)"}
	}
	return nil
}
