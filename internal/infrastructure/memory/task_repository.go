// Package memory keeps tasks and users in process memory. It backs
// STORE_DRIVER=memory for local runs and the HTTP end-to-end tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/oksasatya/go-ddd-task-manager/internal/domain/entity"
	"github.com/oksasatya/go-ddd-task-manager/internal/domain/repository"
)

func errTaskMissing(id string) error { return fmt.Errorf("task %s not stored", id) }

type storedTask struct {
	task entity.Task
	seq  int
}

type TaskRepository struct {
	mu    sync.RWMutex
	tasks map[string]storedTask
	seq   int
}

func NewTaskRepository() *TaskRepository {
	return &TaskRepository{tasks: make(map[string]storedTask)}
}

func (r *TaskRepository) FindAll(_ context.Context) ([]*entity.Task, error) {
	return r.filter(func(*entity.Task) bool { return true }), nil
}

func (r *TaskRepository) FindByUserID(_ context.Context, userID string) ([]*entity.Task, error) {
	return r.filter(func(t *entity.Task) bool { return t.UserID() == userID }), nil
}

func (r *TaskRepository) FindByID(_ context.Context, id string) (*entity.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.tasks[id]
	if !ok {
		return nil, nil
	}
	t := s.task
	return &t, nil
}

func (r *TaskRepository) FindByIDAndUserID(ctx context.Context, id, userID string) (*entity.Task, error) {
	t, err := r.FindByID(ctx, id)
	if err != nil || t == nil || t.UserID() != userID {
		return nil, err
	}
	return t, nil
}

func (r *TaskRepository) Save(_ context.Context, t *entity.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	r.tasks[t.ID()] = storedTask{task: *t, seq: r.seq}
	return nil
}

func (r *TaskRepository) Update(_ context.Context, t *entity.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.tasks[t.ID()]
	if !ok {
		return errTaskMissing(t.ID())
	}
	s.task = *t
	r.tasks[t.ID()] = s
	return nil
}

func (r *TaskRepository) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tasks[id]; !ok {
		return false, nil
	}
	delete(r.tasks, id)
	return true, nil
}

func (r *TaskRepository) DeleteByIDAndUserID(_ context.Context, id, userID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.tasks[id]
	if !ok || s.task.UserID() != userID {
		return false, nil
	}
	delete(r.tasks, id)
	return true, nil
}

// filter returns copies ordered newest first; insertion order breaks ties.
func (r *TaskRepository) filter(keep func(*entity.Task) bool) []*entity.Task {
	r.mu.RLock()
	matched := make([]storedTask, 0, len(r.tasks))
	for _, s := range r.tasks {
		if keep(&s.task) {
			matched = append(matched, s)
		}
	}
	r.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if !a.task.CreatedAt().Equal(b.task.CreatedAt()) {
			return a.task.CreatedAt().After(b.task.CreatedAt())
		}
		return a.seq > b.seq
	})
	out := make([]*entity.Task, len(matched))
	for i := range matched {
		t := matched[i].task
		out[i] = &t
	}
	return out
}

var _ repository.TaskRepository = (*TaskRepository)(nil)
