package cache

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-task-manager/internal/domain/entity"
	repo "github.com/oksasatya/go-ddd-task-manager/internal/domain/repository"
)

// CachedUserRepository decorates a UserRepository. Cache failures are logged
// and the wrapped repository answers instead.
type CachedUserRepository struct {
	next   repo.UserRepository
	store  Store
	logger *logrus.Logger
}

func NewCachedUserRepository(next repo.UserRepository, store Store, logger *logrus.Logger) *CachedUserRepository {
	return &CachedUserRepository{next: next, store: store, logger: logger}
}

func (r *CachedUserRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	u, ok, err := r.store.Get(ctx, id)
	if err != nil {
		r.logger.WithError(err).WithField("user_id", id).Warn("user cache read failed")
	}
	if ok {
		return u, nil
	}

	u, err = r.next.FindByID(ctx, id)
	if err != nil || u == nil {
		return u, err
	}
	if err := r.store.Set(ctx, u); err != nil {
		r.logger.WithError(err).WithField("user_id", id).Warn("user cache write failed")
	}
	return u, nil
}

func (r *CachedUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.next.FindByEmail(ctx, email)
}

func (r *CachedUserRepository) Create(ctx context.Context, u *entity.User) error {
	return r.next.Create(ctx, u)
}

func (r *CachedUserRepository) Update(ctx context.Context, u *entity.User) error {
	if err := r.next.Update(ctx, u); err != nil {
		return err
	}
	r.invalidate(ctx, u.ID)
	return nil
}

func (r *CachedUserRepository) Delete(ctx context.Context, id string) (bool, error) {
	ok, err := r.next.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	r.invalidate(ctx, id)
	return ok, nil
}

func (r *CachedUserRepository) invalidate(ctx context.Context, id string) {
	if err := r.store.Delete(ctx, id); err != nil {
		r.logger.WithError(err).WithField("user_id", id).Warn("user cache invalidation failed")
	}
}

var _ repo.UserRepository = (*CachedUserRepository)(nil)
