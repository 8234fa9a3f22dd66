package entity

import (
	"errors"
	"strings"
	"time"

	"github.com/oksasatya/go-ddd-task-manager/internal/domain/valueobject"
	"github.com/oksasatya/go-ddd-task-manager/pkg/helpers"
)

var ErrMissingUserFields = errors.New("Username, email, and password are required")

// User is the aggregate root for accounts.
// Password holds the bcrypt hash and is never serialised.
type User struct {
	ID        string
	Username  string
	Email     string
	Password  string
	Role      valueobject.Role
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewUser hashes the plain password and normalises the email. An empty role
// defaults to RoleUser. ID is left empty for the store to assign.
func NewUser(username, email, password string, role valueobject.Role) (*User, error) {
	if username == "" || email == "" || password == "" {
		return nil, ErrMissingUserFields
	}
	if role == "" {
		role = valueobject.RoleUser
	}
	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return &User{
		Username:  username,
		Email:     NormalizeEmail(email),
		Password:  hash,
		Role:      role,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// UserProps are the persisted fields of a user.
type UserProps struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Role         string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func ReconstituteUser(p UserProps) (*User, error) {
	role, err := valueobject.ParseRole(p.Role)
	if err != nil {
		return nil, err
	}
	return &User{
		ID:        p.ID,
		Username:  p.Username,
		Email:     p.Email,
		Password:  p.PasswordHash,
		Role:      role,
		IsActive:  p.IsActive,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}, nil
}

func (u *User) ValidatePassword(candidate string) bool {
	return helpers.CompareHashAndPassword(u.Password, candidate)
}

func (u *User) IsAdmin() bool { return u.Role == valueobject.RoleAdmin }

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
