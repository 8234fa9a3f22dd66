package repository

import (
	"context"

	"github.com/oksasatya/go-ddd-task-manager/internal/domain/entity"
)

// TaskRepository abstracts persistence for tasks. Lookups return (nil, nil)
// when nothing matches; listings are newest first.
type TaskRepository interface {
	FindAll(ctx context.Context) ([]*entity.Task, error)
	FindByID(ctx context.Context, id string) (*entity.Task, error)
	FindByUserID(ctx context.Context, userID string) ([]*entity.Task, error)
	FindByIDAndUserID(ctx context.Context, id, userID string) (*entity.Task, error)
	Save(ctx context.Context, t *entity.Task) error
	Update(ctx context.Context, t *entity.Task) error
	Delete(ctx context.Context, id string) (bool, error)
	DeleteByIDAndUserID(ctx context.Context, id, userID string) (bool, error)
}
