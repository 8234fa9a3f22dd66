package repository

import (
	"context"

	"github.com/oksasatya/go-ddd-task-manager/internal/domain/entity"
)

// UserRepository abstracts persistence for users. Lookups return (nil, nil)
// when no user matches. Create assigns ID when it is empty and returns
// apperror.ErrUserAlreadyExists on a duplicate username or email.
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	Create(ctx context.Context, u *entity.User) error
	Update(ctx context.Context, u *entity.User) error
	Delete(ctx context.Context, id string) (bool, error)
}
