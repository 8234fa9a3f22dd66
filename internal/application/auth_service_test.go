package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-ddd-task-manager/internal/domain/apperror"
	"github.com/oksasatya/go-ddd-task-manager/internal/domain/entity"
	"github.com/oksasatya/go-ddd-task-manager/internal/domain/valueobject"
)

func newAuthServiceWithMocks() (*AuthService, *MockUserRepo, *MockTokens, *MockNotifier) {
	users, tokens, notifier := new(MockUserRepo), new(MockTokens), new(MockNotifier)
	return NewAuthService(users, tokens, notifier, quietLogger()), users, tokens, notifier
}

func assignID(id string) func(mock.Arguments) {
	return func(args mock.Arguments) { args.Get(1).(*entity.User).ID = id }
}

func TestAuthService_RegisterUser(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		svc, users, tokens, notifier := newAuthServiceWithMocks()
		users.On("FindByEmail", ctx, "alice@example.com").Return(nil, nil)
		users.On("Create", ctx, mock.AnythingOfType("*entity.User")).Run(assignID("u1")).Return(nil)
		tokens.On("Generate", "u1", "alice@example.com", "user").Return("tok", nil)
		notifier.On("NotifyWelcome", ctx, mock.Anything).Return(nil)

		res, err := svc.RegisterUser(ctx, RegisterInput{Username: "alice", Email: "Alice@Example.com", Password: "secret1"})
		require.NoError(t, err)

		assert.Equal(t, "tok", res.Token)
		assert.Equal(t, UserResponse{ID: "u1", Username: "alice", Email: "alice@example.com", Role: "user"}, res.User)
		notifier.AssertExpectations(t)
	})

	t.Run("notification failure does not fail registration", func(t *testing.T) {
		svc, users, tokens, notifier := newAuthServiceWithMocks()
		users.On("FindByEmail", ctx, mock.Anything).Return(nil, nil)
		users.On("Create", ctx, mock.Anything).Run(assignID("u1")).Return(nil)
		tokens.On("Generate", "u1", mock.Anything, "user").Return("tok", nil)
		notifier.On("NotifyWelcome", ctx, mock.Anything).Return(errors.New("broker down"))

		_, err := svc.RegisterUser(ctx, RegisterInput{Username: "alice", Email: "a@b.co", Password: "secret1"})
		assert.NoError(t, err)
	})

	t.Run("duplicate email", func(t *testing.T) {
		svc, users, _, _ := newAuthServiceWithMocks()
		users.On("FindByEmail", ctx, "a@b.co").Return(testUser("u1", "alice", valueobject.RoleUser), nil)

		_, err := svc.RegisterUser(ctx, RegisterInput{Username: "alice", Email: "a@b.co", Password: "secret1"})
		assert.ErrorIs(t, err, apperror.ErrUserAlreadyExists)
		users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("duplicate username from store", func(t *testing.T) {
		svc, users, _, _ := newAuthServiceWithMocks()
		users.On("FindByEmail", ctx, mock.Anything).Return(nil, nil)
		users.On("Create", ctx, mock.Anything).Return(apperror.ErrUserAlreadyExists)

		_, err := svc.RegisterUser(ctx, RegisterInput{Username: "alice", Email: "a@b.co", Password: "secret1"})
		assert.ErrorIs(t, err, apperror.ErrUserAlreadyExists)
	})

	for name, in := range map[string]RegisterInput{
		"short username": {Username: " ab ", Email: "a@b.co", Password: "secret1"},
		"bad email":      {Username: "alice", Email: "not-an-email", Password: "secret1"},
		"no digit":       {Username: "alice", Email: "a@b.co", Password: "secretpw"},
		"too short":      {Username: "alice", Email: "a@b.co", Password: "a1"},
	} {
		t.Run(name, func(t *testing.T) {
			svc, _, _, _ := newAuthServiceWithMocks()
			_, err := svc.RegisterUser(ctx, in)
			assert.ErrorIs(t, err, apperror.ErrValidation)
		})
	}
}

func TestAuthService_RegisterUser_StoreConflict(t *testing.T) {
	ctx := context.Background()
	svc, users, _, _ := newAuthServiceWithMocks()
	users.On("FindByEmail", ctx, "new@example.com").Return(nil, nil)
	users.On("Create", ctx, mock.Anything).Return(apperror.ErrUserAlreadyExists)

	_, err := svc.RegisterUser(ctx, RegisterInput{Username: "alice", Email: "new@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, apperror.ErrUserAlreadyExists)
	assert.EqualError(t, err, "User with this email or username already exists")
}

func TestAuthService_LoginUser(t *testing.T) {
	ctx := context.Background()
	stored, err := entity.NewUser("alice", "a@b.co", "secret1", valueobject.RoleUser)
	require.NoError(t, err)
	stored.ID = "u1"

	t.Run("success", func(t *testing.T) {
		svc, users, tokens, _ := newAuthServiceWithMocks()
		users.On("FindByEmail", ctx, "a@b.co").Return(stored, nil)
		tokens.On("Generate", "u1", "a@b.co", "user").Return("tok", nil)

		res, err := svc.LoginUser(ctx, LoginInput{Email: "A@B.co", Password: "secret1"})
		require.NoError(t, err)
		assert.Equal(t, "tok", res.Token)
	})

	t.Run("wrong password and unknown email look the same", func(t *testing.T) {
		svc, users, _, _ := newAuthServiceWithMocks()
		users.On("FindByEmail", ctx, "a@b.co").Return(stored, nil)
		users.On("FindByEmail", ctx, "x@b.co").Return(nil, nil)

		_, err1 := svc.LoginUser(ctx, LoginInput{Email: "a@b.co", Password: "wrong1"})
		_, err2 := svc.LoginUser(ctx, LoginInput{Email: "x@b.co", Password: "secret1"})
		assert.ErrorIs(t, err1, apperror.ErrInvalidCredentials)
		assert.Equal(t, err1.Error(), err2.Error())
	})

	t.Run("inactive account", func(t *testing.T) {
		svc, users, _, _ := newAuthServiceWithMocks()
		inactive := *stored
		inactive.IsActive = false
		users.On("FindByEmail", ctx, "a@b.co").Return(&inactive, nil)

		_, err := svc.LoginUser(ctx, LoginInput{Email: "a@b.co", Password: "secret1"})
		assert.ErrorIs(t, err, apperror.ErrInvalidCredentials)
	})

	t.Run("input validation", func(t *testing.T) {
		svc, _, _, _ := newAuthServiceWithMocks()
		_, err := svc.LoginUser(ctx, LoginInput{Email: "nope", Password: "x"})
		assert.EqualError(t, err, "Invalid email format")
		_, err = svc.LoginUser(ctx, LoginInput{Email: "a@b.co"})
		assert.EqualError(t, err, "Password is required")
	})
}

func TestAuthService_CreateAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("creates admin with length-only password rule", func(t *testing.T) {
		svc, users, tokens, notifier := newAuthServiceWithMocks()
		users.On("FindByEmail", ctx, "admin@system.com").Return(nil, nil)
		users.On("Create", ctx, mock.MatchedBy(func(u *entity.User) bool { return u.IsAdmin() })).Run(assignID("a1")).Return(nil)
		tokens.On("Generate", "a1", "admin@system.com", "admin").Return("admin-tok", nil)

		res, err := svc.CreateAdmin(ctx, CreateAdminInput{Username: "Administrator", Email: "admin@system.com", Password: "admin123"})
		require.NoError(t, err)
		assert.Equal(t, "admin", res.User.Role)
		assert.Equal(t, "a1", res.User.ID)
		assert.Equal(t, "admin-tok", res.Token)
		tokens.AssertExpectations(t)
		notifier.AssertNotCalled(t, "NotifyWelcome", mock.Anything, mock.Anything)
	})

	t.Run("username taken at the store", func(t *testing.T) {
		svc, users, _, _ := newAuthServiceWithMocks()
		users.On("FindByEmail", ctx, "root@example.com").Return(nil, nil)
		users.On("Create", ctx, mock.Anything).Return(apperror.ErrUserAlreadyExists)

		_, err := svc.CreateAdmin(ctx, CreateAdminInput{Username: "Administrator", Email: "root@example.com", Password: "admin123"})
		assert.ErrorIs(t, err, apperror.ErrAdminExists)
		assert.EqualError(t, err, "User with this email or username already exists")
	})

	t.Run("existing email", func(t *testing.T) {
		svc, users, _, _ := newAuthServiceWithMocks()
		users.On("FindByEmail", ctx, "admin@system.com").Return(testUser("a1", "admin", valueobject.RoleAdmin), nil)

		_, err := svc.CreateAdmin(ctx, CreateAdminInput{Username: "Administrator", Email: "admin@system.com", Password: "admin123"})
		assert.ErrorIs(t, err, apperror.ErrAdminExists)
	})

	t.Run("short password", func(t *testing.T) {
		svc, _, _, _ := newAuthServiceWithMocks()
		_, err := svc.CreateAdmin(ctx, CreateAdminInput{Username: "root", Email: "r@x.io", Password: "abc"})
		assert.ErrorIs(t, err, apperror.ErrValidation)
	})
}

func TestIsStrongPassword(t *testing.T) {
	assert.True(t, IsStrongPassword("abc123"))
	assert.False(t, IsStrongPassword("abcdef"))
	assert.False(t, IsStrongPassword("123456"))
	assert.False(t, IsStrongPassword("a1"))
}
