package entity

import (
	"time"

	"github.com/oksasatya/go-ddd-task-manager/internal/domain/valueobject"
)

// Task is the aggregate root for to-do items. Fields are only reachable
// through the constructors and Update* methods so that completedAt stays set
// exactly when the task is completed.
type Task struct {
	id          valueobject.TaskID
	title       valueobject.TaskTitle
	description string
	completed   valueobject.TaskCompleted
	priority    valueobject.TaskPriority
	userID      string
	createdAt   time.Time
	updatedAt   time.Time
	completedAt *time.Time
}

type NewTaskParams struct {
	ID          string // optional; generated when empty
	Title       string
	Description string
	UserID      string
	Priority    string // optional; MEDIUM when empty
	Completed   *bool  // optional; false when nil
}

func NewTask(p NewTaskParams) (*Task, error) {
	title, err := valueobject.NewTaskTitle(p.Title)
	if err != nil {
		return nil, err
	}
	id := valueobject.NewTaskID()
	if p.ID != "" {
		if id, err = valueobject.TaskIDFromExisting(p.ID); err != nil {
			return nil, err
		}
	}
	priority := valueobject.DefaultTaskPriority()
	if p.Priority != "" {
		if priority, err = valueobject.ParseTaskPriority(p.Priority); err != nil {
			return nil, err
		}
	}
	completed := valueobject.DefaultTaskCompleted()
	if p.Completed != nil {
		completed = valueobject.NewTaskCompleted(*p.Completed)
	}

	now := time.Now().UTC()
	t := &Task{
		id:          id,
		title:       title,
		description: p.Description,
		completed:   completed,
		priority:    priority,
		userID:      p.UserID,
		createdAt:   now,
		updatedAt:   now,
	}
	if completed.Bool() {
		t.completedAt = &now
	}
	return t, nil
}

// TaskProps are the persisted fields of a task.
type TaskProps struct {
	ID          string
	Title       string
	Description string
	Completed   bool
	Priority    string
	UserID      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	CompletedAt *time.Time
}

// ReconstituteTask rebuilds a task from storage, revalidating every value.
// A stored completion time is dropped for an incomplete task, and an absent one
// is backfilled from UpdatedAt for a completed task.
func ReconstituteTask(p TaskProps) (*Task, error) {
	id, err := valueobject.TaskIDFromExisting(p.ID)
	if err != nil {
		return nil, err
	}
	title, err := valueobject.NewTaskTitle(p.Title)
	if err != nil {
		return nil, err
	}
	priority, err := valueobject.ParseTaskPriority(p.Priority)
	if err != nil {
		return nil, err
	}
	t := &Task{
		id:          id,
		title:       title,
		description: p.Description,
		completed:   valueobject.NewTaskCompleted(p.Completed),
		priority:    priority,
		userID:      p.UserID,
		createdAt:   p.CreatedAt,
		updatedAt:   p.UpdatedAt,
	}
	if p.Completed {
		at := p.UpdatedAt
		if p.CompletedAt != nil {
			at = *p.CompletedAt
		}
		t.completedAt = &at
	}
	return t, nil
}

func (t *Task) ID() string                         { return t.id.String() }
func (t *Task) Title() string                      { return t.title.String() }
func (t *Task) Description() string                { return t.description }
func (t *Task) Completed() bool                    { return t.completed.Bool() }
func (t *Task) Priority() valueobject.TaskPriority { return t.priority }
func (t *Task) UserID() string                     { return t.userID }
func (t *Task) CreatedAt() time.Time               { return t.createdAt }
func (t *Task) UpdatedAt() time.Time               { return t.updatedAt }

func (t *Task) CompletedAt() *time.Time {
	if t.completedAt == nil {
		return nil
	}
	at := *t.completedAt
	return &at
}

func (t *Task) Status() valueobject.TaskStatus {
	return valueobject.StatusFromCompleted(t.Completed())
}

func (t *Task) UpdateTitle(s string) error {
	title, err := valueobject.NewTaskTitle(s)
	if err != nil {
		return err
	}
	t.title = title
	t.touch()
	return nil
}

func (t *Task) UpdateDescription(s string) {
	t.description = s
	t.touch()
}

func (t *Task) UpdateCompleted(completed bool) {
	was := t.completed.Bool()
	t.completed = valueobject.NewTaskCompleted(completed)
	now := t.touch()
	switch {
	case completed && !was:
		t.completedAt = &now
	case !completed && was:
		t.completedAt = nil
	}
}

func (t *Task) UpdatePriority(s string) error {
	p, err := valueobject.ParseTaskPriority(s)
	if err != nil {
		return err
	}
	t.priority = p
	t.touch()
	return nil
}

func (t *Task) touch() time.Time {
	now := time.Now().UTC()
	t.updatedAt = now
	return now
}
