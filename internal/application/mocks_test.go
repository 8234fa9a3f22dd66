package application

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/oksasatya/go-ddd-task-manager/internal/domain/entity"
	repo "github.com/oksasatya/go-ddd-task-manager/internal/domain/repository"
)

type MockTaskRepo struct{ mock.Mock }

var _ repo.TaskRepository = (*MockTaskRepo)(nil)

func (m *MockTaskRepo) FindAll(ctx context.Context) ([]*entity.Task, error) {
	args := m.Called(ctx)
	tasks, _ := args.Get(0).([]*entity.Task)
	return tasks, args.Error(1)
}

func (m *MockTaskRepo) FindByID(ctx context.Context, id string) (*entity.Task, error) {
	args := m.Called(ctx, id)
	t, _ := args.Get(0).(*entity.Task)
	return t, args.Error(1)
}

func (m *MockTaskRepo) FindByUserID(ctx context.Context, userID string) ([]*entity.Task, error) {
	args := m.Called(ctx, userID)
	tasks, _ := args.Get(0).([]*entity.Task)
	return tasks, args.Error(1)
}

func (m *MockTaskRepo) FindByIDAndUserID(ctx context.Context, id, userID string) (*entity.Task, error) {
	args := m.Called(ctx, id, userID)
	t, _ := args.Get(0).(*entity.Task)
	return t, args.Error(1)
}

func (m *MockTaskRepo) Save(ctx context.Context, t *entity.Task) error {
	return m.Called(ctx, t).Error(0)
}

func (m *MockTaskRepo) Update(ctx context.Context, t *entity.Task) error {
	return m.Called(ctx, t).Error(0)
}

func (m *MockTaskRepo) Delete(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockTaskRepo) DeleteByIDAndUserID(ctx context.Context, id, userID string) (bool, error) {
	args := m.Called(ctx, id, userID)
	return args.Bool(0), args.Error(1)
}

type MockUserRepo struct{ mock.Mock }

var _ repo.UserRepository = (*MockUserRepo)(nil)

func (m *MockUserRepo) FindByID(ctx context.Context, id string) (*entity.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*entity.User)
	return u, args.Error(1)
}

func (m *MockUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*entity.User)
	return u, args.Error(1)
}

func (m *MockUserRepo) Create(ctx context.Context, u *entity.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *MockUserRepo) Update(ctx context.Context, u *entity.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *MockUserRepo) Delete(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type MockTokens struct{ mock.Mock }

func (m *MockTokens) Generate(userID, email, role string) (string, error) {
	args := m.Called(userID, email, role)
	return args.String(0), args.Error(1)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) NotifyWelcome(ctx context.Context, u *entity.User) error {
	return m.Called(ctx, u).Error(0)
}
