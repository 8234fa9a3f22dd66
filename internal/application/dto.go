package application

import (
	"time"

	"github.com/oksasatya/go-ddd-task-manager/internal/domain/entity"
	"github.com/oksasatya/go-ddd-task-manager/internal/domain/valueobject"
)

// Actor is the authenticated caller a use case runs on behalf of.
type Actor struct {
	UserID string
	Role   valueobject.Role
}

func (a Actor) IsAdmin() bool { return a.Role == valueobject.RoleAdmin }

type CreateTaskInput struct {
	Title       string
	Description string
	Completed   *bool
	Priority    string
	UserID      string
}

// UpdateTaskInput carries only the fields the caller supplied.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Completed   *bool
	Priority    *string
}

const (
	TaskStatusCompleted = "completed"
	TaskStatusPending   = "pending"
)

type TaskResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	UserID      string     `json:"userId"`
	Username    string     `json:"username"`
}

func NewTaskResponse(t *entity.Task, username string) TaskResponse {
	status := TaskStatusPending
	if t.Completed() {
		status = TaskStatusCompleted
	}
	return TaskResponse{
		ID:          t.ID(),
		Title:       t.Title(),
		Description: t.Description(),
		Status:      status,
		Priority:    t.Priority().String(),
		CreatedAt:   t.CreatedAt(),
		UpdatedAt:   t.UpdatedAt(),
		CompletedAt: t.CompletedAt(),
		UserID:      t.UserID(),
		Username:    username,
	}
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

type CreateAdminInput struct {
	Username string
	Email    string
	Password string
}

type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

func NewUserResponse(u *entity.User) UserResponse {
	return UserResponse{ID: u.ID, Username: u.Username, Email: u.Email, Role: u.Role.String()}
}

type AuthResult struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}
