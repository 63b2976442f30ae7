package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/BuzzLyutic/task-tracker/internal/model"
	"github.com/BuzzLyutic/task-tracker/internal/repo"
)

const taskColumns = `id, title, description, is_done, owner_id, created_at`

type TaskRepo struct {
	db  *sql.DB
	now func() time.Time
}

func NewTaskRepo(db *sql.DB) *TaskRepo {
	return &TaskRepo{db: db, now: time.Now}
}

func (r *TaskRepo) Create(ctx context.Context, t model.Task) (model.Task, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO task (title, description, is_done, owner_id, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		t.Title, t.Description, t.IsDone, t.OwnerID, r.now().UTC(),
	)
	if err != nil {
		return t, mapError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return t, err
	}
	return r.Get(ctx, id)
}

func (r *TaskRepo) Get(ctx context.Context, id int64) (model.Task, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM task WHERE id = ?`, id)
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return t, repo.ErrorNotFound
	}
	return t, err
}

func (r *TaskRepo) List(ctx context.Context, filter model.TaskFilter) ([]model.Task, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+taskColumns+`
		FROM task
		WHERE (?1 IS NULL OR owner_id = ?1)
		  AND (?2 = '' OR title LIKE ?2 ESCAPE '\' OR description LIKE ?2 ESCAPE '\')
		ORDER BY created_at DESC, id DESC`,
		filter.OwnerID, repo.LikePattern(filter.Query),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := make([]model.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *TaskRepo) Update(ctx context.Context, id int64, patch model.TaskPatch) (model.Task, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE task
		SET title       = COALESCE(?, title),
		    description = CASE WHEN ? THEN ? ELSE description END,
		    is_done     = COALESCE(?, is_done)
		WHERE id = ?`,
		patch.Title, patch.DescriptionSet, patch.Description, patch.IsDone, id,
	)
	if err != nil {
		return model.Task{}, mapError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return model.Task{}, err
	}
	if n == 0 {
		return model.Task{}, repo.ErrorNotFound
	}
	return r.Get(ctx, id)
}

func (r *TaskRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM task WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repo.ErrorNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(row scanner) (model.Task, error) {
	var t model.Task
	err := row.Scan(&t.ID, &t.Title, &t.Description, &t.IsDone, &t.OwnerID, &t.CreatedAt)
	return t, err
}
