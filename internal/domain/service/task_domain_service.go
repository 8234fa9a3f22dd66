// Package service holds stateless domain rules that span several tasks.
package service

import (
	"math"

	"github.com/oksasatya/go-ddd-task-manager/internal/domain/entity"
	"github.com/oksasatya/go-ddd-task-manager/internal/domain/valueobject"
)

type TaskStats struct {
	Total          int                              `json:"total"`
	Completed      int                              `json:"completed"`
	InProgress     int                              `json:"inProgress"`
	Pending        int                              `json:"pending"`
	CompletionRate float64                          `json:"completionRate"`
	ByPriority     map[valueobject.TaskPriority]int `json:"byPriority"`
}

type TaskDomainService struct{}

func NewTaskDomainService() *TaskDomainService { return &TaskDomainService{} }

var allowedTransitions = map[valueobject.TaskStatus][]valueobject.TaskStatus{
	valueobject.StatusTodo:       {valueobject.StatusInProgress, valueobject.StatusDone},
	valueobject.StatusInProgress: {valueobject.StatusTodo, valueobject.StatusDone},
	valueobject.StatusDone:       {valueobject.StatusTodo, valueobject.StatusInProgress},
}

// ValidateTaskTransition reports whether a task may move from current to next.
// Staying in the same status is not a transition.
func (s *TaskDomainService) ValidateTaskTransition(current, next valueobject.TaskStatus) bool {
	for _, st := range allowedTransitions[current] {
		if st == next {
			return true
		}
	}
	return false
}

// CalculateTaskCompletionStats summarises tasks. InProgress is always zero
// because tasks only carry a completion flag. CompletionRate is a percentage
// rounded to two decimals, zero for an empty list.
func (s *TaskDomainService) CalculateTaskCompletionStats(tasks []*entity.Task) TaskStats {
	stats := TaskStats{Total: len(tasks), ByPriority: make(map[valueobject.TaskPriority]int, len(valueobject.TaskPriorities))}
	for _, t := range tasks {
		if t.Completed() {
			stats.Completed++
		}
	}
	stats.Pending = stats.Total - stats.Completed
	if stats.Total > 0 {
		stats.CompletionRate = math.Round(float64(stats.Completed)/float64(stats.Total)*10000) / 100
	}
	for _, p := range valueobject.TaskPriorities {
		stats.ByPriority[p] = len(s.GetPriorityTasks(tasks, p))
	}
	return stats
}

func (s *TaskDomainService) GetPriorityTasks(tasks []*entity.Task, priority valueobject.TaskPriority) []*entity.Task {
	out := make([]*entity.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Priority() == priority {
			out = append(out, t)
		}
	}
	return out
}
