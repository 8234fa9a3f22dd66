package application

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/oksasatya/go-ddd-task-manager/internal/domain/apperror"
	"github.com/oksasatya/go-ddd-task-manager/internal/domain/entity"
	repo "github.com/oksasatya/go-ddd-task-manager/internal/domain/repository"
	"github.com/oksasatya/go-ddd-task-manager/internal/domain/service"
	"github.com/oksasatya/go-ddd-task-manager/internal/domain/valueobject"
)

const ownerLookupConcurrency = 8

type TaskService struct {
	Tasks  repo.TaskRepository
	Users  repo.UserRepository
	Domain *service.TaskDomainService
	Logger *logrus.Logger
}

func NewTaskService(tasks repo.TaskRepository, users repo.UserRepository, logger *logrus.Logger) *TaskService {
	return &TaskService{
		Tasks:  tasks,
		Users:  users,
		Domain: service.NewTaskDomainService(),
		Logger: logger,
	}
}

func (s *TaskService) CreateTask(ctx context.Context, in CreateTaskInput) (*TaskResponse, error) {
	owner, err := s.Users.FindByID(ctx, in.UserID)
	if err != nil {
		return nil, apperror.Internal("Failed to load task owner", err)
	}
	if owner == nil {
		return nil, apperror.InvalidTaskData("User not found")
	}

	task, err := entity.NewTask(entity.NewTaskParams{
		Title:       in.Title,
		Description: in.Description,
		UserID:      in.UserID,
		Priority:    in.Priority,
		Completed:   in.Completed,
	})
	if err != nil {
		return nil, apperror.InvalidTaskData(err.Error())
	}
	if err := s.Tasks.Save(ctx, task); err != nil {
		return nil, apperror.Internal("Failed to save task", err)
	}

	s.Logger.WithFields(logrus.Fields{"task_id": task.ID(), "user_id": in.UserID}).Info("task created")
	resp := NewTaskResponse(task, owner.Username)
	return &resp, nil
}

func (s *TaskService) GetTaskByID(ctx context.Context, actor Actor, id string) (*TaskResponse, error) {
	task, err := s.findScoped(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	owner, err := s.ownerOf(ctx, task)
	if err != nil {
		return nil, err
	}
	resp := NewTaskResponse(task, owner.Username)
	return &resp, nil
}

// GetTasks lists every task regardless of owner.
func (s *TaskService) GetTasks(ctx context.Context) ([]TaskResponse, error) {
	tasks, err := s.Tasks.FindAll(ctx)
	if err != nil {
		return nil, apperror.Internal("Failed to list tasks", err)
	}
	return s.toResponses(ctx, tasks)
}

// GetUserTasks lists the tasks visible to actor: all of them for an admin,
// otherwise only the actor's own.
func (s *TaskService) GetUserTasks(ctx context.Context, actor Actor) ([]TaskResponse, error) {
	tasks, err := s.visibleTasks(ctx, actor)
	if err != nil {
		return nil, err
	}
	return s.toResponses(ctx, tasks)
}

func (s *TaskService) UpdateTask(ctx context.Context, actor Actor, id string, in UpdateTaskInput) (*TaskResponse, error) {
	task, err := s.findScoped(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		if err := task.UpdateTitle(*in.Title); err != nil {
			return nil, apperror.InvalidTaskData(err.Error())
		}
	}
	if in.Description != nil {
		task.UpdateDescription(*in.Description)
	}
	if in.Completed != nil && *in.Completed != task.Completed() {
		next := valueobject.StatusFromCompleted(*in.Completed)
		if !s.Domain.ValidateTaskTransition(task.Status(), next) {
			return nil, apperror.InvalidTaskData(fmt.Sprintf("Invalid status transition from %s to %s", task.Status(), next))
		}
		task.UpdateCompleted(*in.Completed)
	}
	if in.Priority != nil {
		if err := task.UpdatePriority(*in.Priority); err != nil {
			return nil, apperror.InvalidTaskData(err.Error())
		}
	}

	if err := s.Tasks.Update(ctx, task); err != nil {
		return nil, apperror.Internal("Failed to update task", err)
	}

	owner, err := s.ownerOf(ctx, task)
	if err != nil {
		return nil, err
	}
	resp := NewTaskResponse(task, owner.Username)
	return &resp, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, actor Actor, id string) error {
	var (
		deleted bool
		err     error
	)
	if actor.IsAdmin() {
		deleted, err = s.Tasks.Delete(ctx, id)
	} else {
		deleted, err = s.Tasks.DeleteByIDAndUserID(ctx, id, actor.UserID)
	}
	if err != nil {
		return apperror.Internal("Failed to delete task", err)
	}
	if !deleted {
		return apperror.ErrTaskNotFound
	}
	s.Logger.WithFields(logrus.Fields{"task_id": id, "user_id": actor.UserID}).Info("task deleted")
	return nil
}

// GetTaskStats summarises the tasks visible to actor.
func (s *TaskService) GetTaskStats(ctx context.Context, actor Actor) (service.TaskStats, error) {
	tasks, err := s.visibleTasks(ctx, actor)
	if err != nil {
		return service.TaskStats{}, err
	}
	return s.Domain.CalculateTaskCompletionStats(tasks), nil
}

func (s *TaskService) visibleTasks(ctx context.Context, actor Actor) ([]*entity.Task, error) {
	var (
		tasks []*entity.Task
		err   error
	)
	if actor.IsAdmin() {
		tasks, err = s.Tasks.FindAll(ctx)
	} else {
		tasks, err = s.Tasks.FindByUserID(ctx, actor.UserID)
	}
	if err != nil {
		return nil, apperror.Internal("Failed to list tasks", err)
	}
	return tasks, nil
}

// findScoped hides tasks owned by someone else behind ErrTaskNotFound.
func (s *TaskService) findScoped(ctx context.Context, actor Actor, id string) (*entity.Task, error) {
	var (
		task *entity.Task
		err  error
	)
	if actor.IsAdmin() {
		task, err = s.Tasks.FindByID(ctx, id)
	} else {
		task, err = s.Tasks.FindByIDAndUserID(ctx, id, actor.UserID)
	}
	if err != nil {
		return nil, apperror.Internal("Failed to load task", err)
	}
	if task == nil {
		return nil, apperror.ErrTaskNotFound
	}
	return task, nil
}

func (s *TaskService) ownerOf(ctx context.Context, task *entity.Task) (*entity.User, error) {
	owner, err := s.Users.FindByID(ctx, task.UserID())
	if err != nil {
		return nil, apperror.Internal("Failed to load task owner", err)
	}
	if owner == nil {
		return nil, apperror.Internal("Task owner not found", fmt.Errorf("user %s", task.UserID()))
	}
	return owner, nil
}

// toResponses resolves each distinct owner once, concurrently. A missing
// owner fails the whole listing.
func (s *TaskService) toResponses(ctx context.Context, tasks []*entity.Task) ([]TaskResponse, error) {
	ids := make([]string, 0, len(tasks))
	seen := make(map[string]struct{}, len(tasks))
	for _, t := range tasks {
		if _, ok := seen[t.UserID()]; ok {
			continue
		}
		seen[t.UserID()] = struct{}{}
		ids = append(ids, t.UserID())
	}

	owners := make(map[string]string, len(ids))
	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(ownerLookupConcurrency)
	for _, id := range ids {
		id := id
		g.Go(func() error {
			u, err := s.Users.FindByID(gctx, id)
			if err != nil {
				return err
			}
			if u == nil {
				return fmt.Errorf("owner %s not found", id)
			}
			mu.Lock()
			owners[id] = u.Username
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, apperror.Internal("Failed to resolve task owners", err)
	}

	out := make([]TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, NewTaskResponse(t, owners[t.UserID()]))
	}
	return out, nil
}
