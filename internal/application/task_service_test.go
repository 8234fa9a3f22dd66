package application

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-ddd-task-manager/internal/domain/apperror"
	"github.com/oksasatya/go-ddd-task-manager/internal/domain/entity"
	"github.com/oksasatya/go-ddd-task-manager/internal/domain/valueobject"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func ptr[T any](v T) *T { return &v }

func testUser(id, username string, role valueobject.Role) *entity.User {
	return &entity.User{ID: id, Username: username, Email: username + "@example.com", Role: role, IsActive: true}
}

func testTask(t *testing.T, userID string, completed bool) *entity.Task {
	t.Helper()
	task, err := entity.NewTask(entity.NewTaskParams{Title: "task", Description: "d", UserID: userID, Completed: &completed})
	require.NoError(t, err)
	return task
}

var (
	alice = Actor{UserID: "u1", Role: valueobject.RoleUser}
	admin = Actor{UserID: "a1", Role: valueobject.RoleAdmin}
)

func newTaskServiceWithMocks() (*TaskService, *MockTaskRepo, *MockUserRepo) {
	tasks, users := new(MockTaskRepo), new(MockUserRepo)
	return NewTaskService(tasks, users, quietLogger()), tasks, users
}

func TestTaskService_CreateTask(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		svc, tasks, users := newTaskServiceWithMocks()
		users.On("FindByID", ctx, "u1").Return(testUser("u1", "alice", valueobject.RoleUser), nil)
		tasks.On("Save", ctx, mock.AnythingOfType("*entity.Task")).Return(nil)

		resp, err := svc.CreateTask(ctx, CreateTaskInput{Title: " Buy milk ", Description: "2L", UserID: "u1", Completed: ptr(false)})
		require.NoError(t, err)

		assert.Equal(t, "Buy milk", resp.Title)
		assert.Equal(t, TaskStatusPending, resp.Status)
		assert.Equal(t, "MEDIUM", resp.Priority)
		assert.Equal(t, "alice", resp.Username)
		assert.Nil(t, resp.CompletedAt)
		tasks.AssertExpectations(t)
	})

	t.Run("owner missing", func(t *testing.T) {
		svc, tasks, users := newTaskServiceWithMocks()
		users.On("FindByID", ctx, "ghost").Return(nil, nil)

		_, err := svc.CreateTask(ctx, CreateTaskInput{Title: "x", UserID: "ghost"})
		assert.ErrorIs(t, err, apperror.ErrInvalidTaskData)
		assert.EqualError(t, err, "User not found")
		tasks.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("invalid title", func(t *testing.T) {
		svc, _, users := newTaskServiceWithMocks()
		users.On("FindByID", ctx, "u1").Return(testUser("u1", "alice", valueobject.RoleUser), nil)

		_, err := svc.CreateTask(ctx, CreateTaskInput{Title: strings.Repeat("a", 101), UserID: "u1"})
		assert.ErrorIs(t, err, apperror.ErrInvalidTaskData)
		assert.Contains(t, err.Error(), "100 characters")
	})

	t.Run("save failure is internal", func(t *testing.T) {
		svc, tasks, users := newTaskServiceWithMocks()
		users.On("FindByID", ctx, "u1").Return(testUser("u1", "alice", valueobject.RoleUser), nil)
		tasks.On("Save", ctx, mock.Anything).Return(errors.New("conn reset"))

		_, err := svc.CreateTask(ctx, CreateTaskInput{Title: "x", UserID: "u1"})
		assert.Equal(t, apperror.KindInternal, apperror.KindOf(err))
	})
}

func TestTaskService_GetTaskByID(t *testing.T) {
	ctx := context.Background()

	t.Run("user scoped lookup hides foreign tasks", func(t *testing.T) {
		svc, tasks, _ := newTaskServiceWithMocks()
		tasks.On("FindByIDAndUserID", ctx, "t1", "u1").Return(nil, nil)

		_, err := svc.GetTaskByID(ctx, alice, "t1")
		assert.ErrorIs(t, err, apperror.ErrTaskNotFound)
		tasks.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("admin reads any task", func(t *testing.T) {
		svc, tasks, users := newTaskServiceWithMocks()
		task := testTask(t, "u2", true)
		tasks.On("FindByID", ctx, task.ID()).Return(task, nil)
		users.On("FindByID", ctx, "u2").Return(testUser("u2", "bob", valueobject.RoleUser), nil)

		resp, err := svc.GetTaskByID(ctx, admin, task.ID())
		require.NoError(t, err)
		assert.Equal(t, "bob", resp.Username)
		assert.Equal(t, TaskStatusCompleted, resp.Status)
		assert.NotNil(t, resp.CompletedAt)
	})
}

func TestTaskService_GetUserTasks(t *testing.T) {
	ctx := context.Background()

	t.Run("user sees own tasks with owners resolved once", func(t *testing.T) {
		svc, tasks, users := newTaskServiceWithMocks()
		list := []*entity.Task{testTask(t, "u1", false), testTask(t, "u1", true)}
		tasks.On("FindByUserID", ctx, "u1").Return(list, nil)
		users.On("FindByID", mock.Anything, "u1").Return(testUser("u1", "alice", valueobject.RoleUser), nil).Once()

		got, err := svc.GetUserTasks(ctx, alice)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, list[0].ID(), got[0].ID)
		assert.Equal(t, "alice", got[1].Username)
		users.AssertExpectations(t)
	})

	t.Run("admin sees everything", func(t *testing.T) {
		svc, tasks, users := newTaskServiceWithMocks()
		list := []*entity.Task{testTask(t, "u1", false), testTask(t, "u2", false)}
		tasks.On("FindAll", ctx).Return(list, nil)
		users.On("FindByID", mock.Anything, "u1").Return(testUser("u1", "alice", valueobject.RoleUser), nil)
		users.On("FindByID", mock.Anything, "u2").Return(testUser("u2", "bob", valueobject.RoleUser), nil)

		got, err := svc.GetUserTasks(ctx, admin)
		require.NoError(t, err)
		assert.Equal(t, "alice", got[0].Username)
		assert.Equal(t, "bob", got[1].Username)
	})

	t.Run("missing owner fails the listing", func(t *testing.T) {
		svc, tasks, users := newTaskServiceWithMocks()
		tasks.On("FindAll", ctx).Return([]*entity.Task{testTask(t, "gone", false)}, nil)
		users.On("FindByID", mock.Anything, "gone").Return(nil, nil)

		_, err := svc.GetTasks(ctx)
		assert.Equal(t, apperror.KindInternal, apperror.KindOf(err))
	})

	t.Run("empty", func(t *testing.T) {
		svc, tasks, _ := newTaskServiceWithMocks()
		tasks.On("FindByUserID", ctx, "u1").Return([]*entity.Task{}, nil)

		got, err := svc.GetUserTasks(ctx, alice)
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestTaskService_UpdateTask(t *testing.T) {
	ctx := context.Background()

	t.Run("partial update completes task", func(t *testing.T) {
		svc, tasks, users := newTaskServiceWithMocks()
		task := testTask(t, "u1", false)
		tasks.On("FindByIDAndUserID", ctx, task.ID(), "u1").Return(task, nil)
		tasks.On("Update", ctx, task).Return(nil)
		users.On("FindByID", ctx, "u1").Return(testUser("u1", "alice", valueobject.RoleUser), nil)

		resp, err := svc.UpdateTask(ctx, alice, task.ID(), UpdateTaskInput{Completed: ptr(true)})
		require.NoError(t, err)

		assert.Equal(t, TaskStatusCompleted, resp.Status)
		assert.NotNil(t, resp.CompletedAt)
		assert.Equal(t, "task", resp.Title)
		assert.Equal(t, "d", resp.Description)
	})

	t.Run("reopening clears completion time", func(t *testing.T) {
		svc, tasks, users := newTaskServiceWithMocks()
		task := testTask(t, "u1", true)
		tasks.On("FindByIDAndUserID", ctx, task.ID(), "u1").Return(task, nil)
		tasks.On("Update", ctx, task).Return(nil)
		users.On("FindByID", ctx, "u1").Return(testUser("u1", "alice", valueobject.RoleUser), nil)

		resp, err := svc.UpdateTask(ctx, alice, task.ID(), UpdateTaskInput{Completed: ptr(false), Priority: ptr("HIGH")})
		require.NoError(t, err)
		assert.Nil(t, resp.CompletedAt)
		assert.Equal(t, "HIGH", resp.Priority)
	})

	t.Run("invalid title rejected before persisting", func(t *testing.T) {
		svc, tasks, _ := newTaskServiceWithMocks()
		task := testTask(t, "u1", false)
		tasks.On("FindByIDAndUserID", ctx, task.ID(), "u1").Return(task, nil)

		_, err := svc.UpdateTask(ctx, alice, task.ID(), UpdateTaskInput{Title: ptr("  ")})
		assert.ErrorIs(t, err, apperror.ErrInvalidTaskData)
		tasks.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("not found", func(t *testing.T) {
		svc, tasks, _ := newTaskServiceWithMocks()
		tasks.On("FindByIDAndUserID", ctx, "t9", "u1").Return(nil, nil)

		_, err := svc.UpdateTask(ctx, alice, "t9", UpdateTaskInput{Title: ptr("x")})
		assert.ErrorIs(t, err, apperror.ErrTaskNotFound)
	})
}

func TestTaskService_DeleteTask(t *testing.T) {
	ctx := context.Background()

	t.Run("owner deletes", func(t *testing.T) {
		svc, tasks, _ := newTaskServiceWithMocks()
		tasks.On("DeleteByIDAndUserID", ctx, "t1", "u1").Return(true, nil)
		assert.NoError(t, svc.DeleteTask(ctx, alice, "t1"))
	})

	t.Run("foreign task is not found", func(t *testing.T) {
		svc, tasks, _ := newTaskServiceWithMocks()
		tasks.On("DeleteByIDAndUserID", ctx, "t1", "u1").Return(false, nil)
		assert.ErrorIs(t, svc.DeleteTask(ctx, alice, "t1"), apperror.ErrTaskNotFound)
	})

	t.Run("admin deletes any", func(t *testing.T) {
		svc, tasks, _ := newTaskServiceWithMocks()
		tasks.On("Delete", ctx, "t1").Return(true, nil)
		assert.NoError(t, svc.DeleteTask(ctx, admin, "t1"))
		tasks.AssertNotCalled(t, "DeleteByIDAndUserID", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestTaskService_GetTaskStats(t *testing.T) {
	ctx := context.Background()
	svc, tasks, _ := newTaskServiceWithMocks()
	tasks.On("FindByUserID", ctx, "u1").Return([]*entity.Task{testTask(t, "u1", true), testTask(t, "u1", false)}, nil)

	stats, err := svc.GetTaskStats(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 50.0, stats.CompletionRate)
}
