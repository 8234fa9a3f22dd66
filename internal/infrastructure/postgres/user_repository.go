package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/oksasatya/go-ddd-task-manager/internal/domain/apperror"
	"github.com/oksasatya/go-ddd-task-manager/internal/domain/entity"
	"github.com/oksasatya/go-ddd-task-manager/internal/domain/repository"
)

const userColumns = `id, username, email, password_hash, role, is_active, created_at, updated_at`

type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO users (username, email, password_hash, role, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`, u.Username, u.Email, u.Password, u.Role.String(), u.IsActive, u.CreatedAt, u.UpdatedAt)

	if err := row.Scan(&u.ID); err != nil {
		if isUniqueViolation(err) {
			return apperror.ErrUserAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	u.UpdatedAt = time.Now().UTC()

	res, err := r.db.Exec(ctx, `
		UPDATE users
		SET username = $1, email = $2, password_hash = $3, role = $4, is_active = $5, updated_at = $6
		WHERE id = $7
	`, u.Username, u.Email, u.Password, u.Role.String(), u.IsActive, u.UpdatedAt, u.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.ErrUserAlreadyExists
		}
		return fmt.Errorf("update user: %w", err)
	}
	if res.RowsAffected() == 0 {
		return apperror.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete user: %w", err)
	}
	return res.RowsAffected() > 0, nil
}

func (r *UserRepository) findOne(ctx context.Context, query string, arg string) (*entity.User, error) {
	var p entity.UserProps
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&p.ID, &p.Username, &p.Email, &p.PasswordHash, &p.Role, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select user: %w", err)
	}
	return entity.ReconstituteUser(p)
}

var _ repository.UserRepository = (*UserRepository)(nil)
