package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/oksasatya/go-ddd-task-manager/internal/domain/entity"
	"github.com/oksasatya/go-ddd-task-manager/internal/domain/repository"
)

const taskColumns = `id, title, description, completed, priority, user_id, created_at, updated_at, completed_at`

type TaskRepository struct {
	db DBTX
}

func NewTaskRepository(db DBTX) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) FindAll(ctx context.Context) ([]*entity.Task, error) {
	return r.list(ctx, `SELECT `+taskColumns+` FROM tasks ORDER BY created_at DESC`)
}

func (r *TaskRepository) FindByUserID(ctx context.Context, userID string) ([]*entity.Task, error) {
	return r.list(ctx, `SELECT `+taskColumns+` FROM tasks WHERE user_id = $1 ORDER BY created_at DESC`, userID)
}

func (r *TaskRepository) FindByID(ctx context.Context, id string) (*entity.Task, error) {
	return r.findOne(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id)
}

func (r *TaskRepository) FindByIDAndUserID(ctx context.Context, id, userID string) (*entity.Task, error) {
	return r.findOne(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1 AND user_id = $2`, id, userID)
}

func (r *TaskRepository) Save(ctx context.Context, t *entity.Task) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO tasks (`+taskColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, t.ID(), t.Title(), t.Description(), t.Completed(), t.Priority().String(), t.UserID(),
		t.CreatedAt(), t.UpdatedAt(), t.CompletedAt())
	if err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

func (r *TaskRepository) Update(ctx context.Context, t *entity.Task) error {
	res, err := r.db.Exec(ctx, `
		UPDATE tasks
		SET title = $1, description = $2, completed = $3, priority = $4, updated_at = $5, completed_at = $6
		WHERE id = $7
	`, t.Title(), t.Description(), t.Completed(), t.Priority().String(), t.UpdatedAt(), t.CompletedAt(), t.ID())
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	if res.RowsAffected() == 0 {
		return fmt.Errorf("update task %s: no rows affected", t.ID())
	}
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, id string) (bool, error) {
	return r.exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
}

func (r *TaskRepository) DeleteByIDAndUserID(ctx context.Context, id, userID string) (bool, error) {
	return r.exec(ctx, `DELETE FROM tasks WHERE id = $1 AND user_id = $2`, id, userID)
}

func (r *TaskRepository) exec(ctx context.Context, query string, args ...any) (bool, error) {
	res, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("delete task: %w", err)
	}
	return res.RowsAffected() > 0, nil
}

func (r *TaskRepository) findOne(ctx context.Context, query string, args ...any) (*entity.Task, error) {
	t, err := scanTask(r.db.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select task: %w", err)
	}
	return t, nil
}

func (r *TaskRepository) list(ctx context.Context, query string, args ...any) ([]*entity.Task, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]*entity.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

func scanTask(row pgx.Row) (*entity.Task, error) {
	var p entity.TaskProps
	if err := row.Scan(&p.ID, &p.Title, &p.Description, &p.Completed, &p.Priority, &p.UserID,
		&p.CreatedAt, &p.UpdatedAt, &p.CompletedAt); err != nil {
		return nil, err
	}
	return entity.ReconstituteTask(p)
}

var _ repository.TaskRepository = (*TaskRepository)(nil)
