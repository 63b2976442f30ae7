package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/BuzzLyutic/task-tracker/internal/model"
	"github.com/BuzzLyutic/task-tracker/internal/repo"
)

const userColumns = `id, username, hashed_password, is_active, created_at`

type UserRepo struct {
	db  *sql.DB
	now func() time.Time
}

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db, now: time.Now}
}

func (r *UserRepo) Create(ctx context.Context, u model.User) (model.User, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO "user" (username, hashed_password, is_active, created_at)
		VALUES (?, ?, ?, ?)`,
		u.Username, u.HashedPassword, u.IsActive, r.now().UTC(),
	)
	if err != nil {
		return u, mapError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return u, err
	}
	return r.GetByID(ctx, id)
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (model.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM "user" WHERE username = ?`, username)
}

func (r *UserRepo) GetByID(ctx context.Context, id int64) (model.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM "user" WHERE id = ?`, id)
}

func (r *UserRepo) getOne(ctx context.Context, query string, arg any) (model.User, error) {
	var u model.User
	err := r.db.QueryRowContext(ctx, query, arg).
		Scan(&u.ID, &u.Username, &u.HashedPassword, &u.IsActive, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return u, repo.ErrorNotFound
	}
	return u, err
}
