package application

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"unicode"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-task-manager/internal/domain/apperror"
	"github.com/oksasatya/go-ddd-task-manager/internal/domain/entity"
	repo "github.com/oksasatya/go-ddd-task-manager/internal/domain/repository"
	"github.com/oksasatya/go-ddd-task-manager/internal/domain/valueobject"
)

const (
	minUsernameLength = 3
	minPasswordLength = 6
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// TokenIssuer signs access tokens for authenticated users.
type TokenIssuer interface {
	Generate(userID, email, role string) (string, error)
}

// WelcomeNotifier is told about each newly registered user.
type WelcomeNotifier interface {
	NotifyWelcome(ctx context.Context, u *entity.User) error
}

type AuthService struct {
	Users    repo.UserRepository
	Tokens   TokenIssuer
	Notifier WelcomeNotifier // optional
	Logger   *logrus.Logger
}

func NewAuthService(users repo.UserRepository, tokens TokenIssuer, notifier WelcomeNotifier, logger *logrus.Logger) *AuthService {
	return &AuthService{Users: users, Tokens: tokens, Notifier: notifier, Logger: logger}
}

func (s *AuthService) RegisterUser(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	username := strings.TrimSpace(in.Username)
	if len(username) < minUsernameLength {
		return nil, apperror.Validation("Username must be at least 3 characters long")
	}
	if !IsValidEmail(in.Email) {
		return nil, apperror.Validation("Invalid email format")
	}
	if !IsStrongPassword(in.Password) {
		return nil, apperror.Validation("Password must be at least 6 characters long and contain at least one letter and one number")
	}

	u, err := s.createUser(ctx, username, in.Email, in.Password, valueobject.RoleUser,
		apperror.ErrUserAlreadyExists.WithMessage("User with this email already exists"),
		apperror.ErrUserAlreadyExists.WithMessage("User with this email or username already exists"))
	if err != nil {
		return nil, err
	}

	if s.Notifier != nil {
		if err := s.Notifier.NotifyWelcome(ctx, u); err != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Warn("welcome notification failed")
		}
	}
	return s.issue(u)
}

func (s *AuthService) LoginUser(ctx context.Context, in LoginInput) (*AuthResult, error) {
	if !IsValidEmail(in.Email) {
		return nil, apperror.Validation("Invalid email format")
	}
	if in.Password == "" {
		return nil, apperror.Validation("Password is required")
	}

	u, err := s.Users.FindByEmail(ctx, entity.NormalizeEmail(in.Email))
	if err != nil {
		return nil, apperror.Internal("Failed to load user", err)
	}
	if u == nil || !u.IsActive || !u.ValidatePassword(in.Password) {
		return nil, apperror.ErrInvalidCredentials
	}
	return s.issue(u)
}

// CreateAdmin provisions an administrator and signs them in. The password
// rule is length only.
func (s *AuthService) CreateAdmin(ctx context.Context, in CreateAdminInput) (*AuthResult, error) {
	username := strings.TrimSpace(in.Username)
	if len(username) < minUsernameLength {
		return nil, apperror.Validation("Username must be at least 3 characters long")
	}
	if !IsValidEmail(in.Email) {
		return nil, apperror.Validation("Invalid email format")
	}
	if len(in.Password) < minPasswordLength {
		return nil, apperror.Validation("Password must be at least 6 characters long")
	}

	u, err := s.createUser(ctx, username, in.Email, in.Password, valueobject.RoleAdmin,
		apperror.ErrAdminExists,
		apperror.ErrAdminExists.WithMessage("User with this email or username already exists"))
	if err != nil {
		return nil, err
	}
	s.Logger.WithField("user_id", u.ID).Info("admin user created")
	return s.issue(u)
}

func (s *AuthService) createUser(ctx context.Context, username, email, password string, role valueobject.Role, emailTaken, conflict *apperror.Error) (*entity.User, error) {
	existing, err := s.Users.FindByEmail(ctx, entity.NormalizeEmail(email))
	if err != nil {
		return nil, apperror.Internal("Failed to load user", err)
	}
	if existing != nil {
		return nil, emailTaken
	}

	u, err := entity.NewUser(username, email, password, role)
	if err != nil {
		return nil, apperror.Validation(err.Error())
	}
	if err := s.Users.Create(ctx, u); err != nil {
		// a concurrent registration or a taken username trips the unique index
		if errors.Is(err, apperror.ErrUserAlreadyExists) {
			return nil, conflict
		}
		return nil, apperror.Internal("Failed to create user", err)
	}
	return u, nil
}

func (s *AuthService) issue(u *entity.User) (*AuthResult, error) {
	token, err := s.Tokens.Generate(u.ID, u.Email, u.Role.String())
	if err != nil {
		return nil, apperror.Internal("Failed to issue token", err)
	}
	return &AuthResult{User: NewUserResponse(u), Token: token}, nil
}

func IsValidEmail(email string) bool {
	return emailPattern.MatchString(strings.TrimSpace(email))
}

// IsStrongPassword requires the minimum length plus at least one letter and one digit.
func IsStrongPassword(pw string) bool {
	if len(pw) < minPasswordLength {
		return false
	}
	var letter, digit bool
	for _, r := range pw {
		switch {
		case unicode.IsLetter(r):
			letter = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return letter && digit
}
