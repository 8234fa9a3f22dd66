// Package valueobject holds the immutable, self-validating values the task
// entities are built from.
package valueobject

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

const MaxTaskTitleLength = 100

var (
	ErrEmptyTaskTitle   = errors.New("Task title cannot be empty")
	ErrTaskTitleTooLong = fmt.Errorf("Task title cannot be longer than %d characters", MaxTaskTitleLength)
	ErrEmptyTaskID      = errors.New("Task ID cannot be empty")
)

type TaskTitle struct{ value string }

// NewTaskTitle rejects blank titles and titles longer than MaxTaskTitleLength
// characters. The length check runs on the raw input; the stored value is trimmed.
func NewTaskTitle(s string) (TaskTitle, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return TaskTitle{}, ErrEmptyTaskTitle
	}
	if utf8.RuneCountInString(s) > MaxTaskTitleLength {
		return TaskTitle{}, ErrTaskTitleTooLong
	}
	return TaskTitle{value: trimmed}, nil
}

func (t TaskTitle) String() string { return t.value }

type TaskCompleted struct{ value bool }

func NewTaskCompleted(b bool) TaskCompleted { return TaskCompleted{value: b} }

func DefaultTaskCompleted() TaskCompleted { return TaskCompleted{} }

func (c TaskCompleted) Bool() bool { return c.value }

type TaskPriority string

const (
	PriorityLow    TaskPriority = "LOW"
	PriorityMedium TaskPriority = "MEDIUM"
	PriorityHigh   TaskPriority = "HIGH"
)

var TaskPriorities = []TaskPriority{PriorityLow, PriorityMedium, PriorityHigh}

func ParseTaskPriority(s string) (TaskPriority, error) {
	switch p := TaskPriority(s); p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return p, nil
	}
	return "", fmt.Errorf("Invalid task priority: %s", s)
}

func DefaultTaskPriority() TaskPriority { return PriorityMedium }

func (p TaskPriority) String() string { return string(p) }

type TaskID struct{ value string }

func NewTaskID() TaskID { return TaskID{value: uuid.NewString()} }

func TaskIDFromExisting(s string) (TaskID, error) {
	if s == "" {
		return TaskID{}, ErrEmptyTaskID
	}
	return TaskID{value: s}, nil
}

func (id TaskID) String() string { return id.value }

// TaskStatus is the workflow state used by the transition rules.
type TaskStatus string

const (
	StatusTodo       TaskStatus = "TODO"
	StatusInProgress TaskStatus = "IN_PROGRESS"
	StatusDone       TaskStatus = "DONE"
)

// StatusFromCompleted projects the boolean completion flag onto the workflow.
func StatusFromCompleted(completed bool) TaskStatus {
	if completed {
		return StatusDone
	}
	return StatusTodo
}
