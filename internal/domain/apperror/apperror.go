// Package apperror defines the error kinds shared by the domain, application
// and interface layers.
package apperror

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindAuthentication
	KindForbidden
	KindNotFound
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuthentication:
		return "authentication"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	default:
		return "internal"
	}
}

// Error is a classified failure. Two errors match under errors.Is when their
// codes are equal, so a sentinel with a default message also matches an
// instance carrying a more specific one.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// WithMessage returns a copy of e carrying msg.
func (e *Error) WithMessage(msg string) *Error {
	cp := *e
	cp.Message = msg
	return &cp
}

// Wrap returns a copy of e with cause attached.
func (e *Error) Wrap(cause error) *Error {
	cp := *e
	cp.Err = cause
	return &cp
}

var (
	ErrTaskNotFound       = &Error{Kind: KindNotFound, Code: "TASK_NOT_FOUND", Message: "Task not found"}
	ErrInvalidTaskData    = &Error{Kind: KindValidation, Code: "INVALID_TASK_DATA", Message: "Invalid task data"}
	ErrUserAlreadyExists  = &Error{Kind: KindConflict, Code: "USER_ALREADY_EXISTS", Message: "User already exists"}
	ErrInvalidCredentials = &Error{Kind: KindAuthentication, Code: "INVALID_CREDENTIALS", Message: "Invalid email or password"}
	ErrUserNotFound       = &Error{Kind: KindNotFound, Code: "USER_NOT_FOUND", Message: "User not found"}
	ErrValidation         = &Error{Kind: KindValidation, Code: "VALIDATION_ERROR", Message: "Validation failed"}
	ErrForbidden          = &Error{Kind: KindForbidden, Code: "FORBIDDEN", Message: "Insufficient permissions"}
	ErrAdminExists        = &Error{Kind: KindConflict, Code: "ADMIN_EXISTS", Message: "Admin with this email already exists"}
)

func InvalidTaskData(msg string) *Error { return ErrInvalidTaskData.WithMessage(msg) }

func Validation(msg string) *Error { return ErrValidation.WithMessage(msg) }

// Internal wraps an unclassified failure.
func Internal(msg string, cause error) *Error {
	return &Error{Kind: KindInternal, Code: "INTERNAL_ERROR", Message: msg, Err: cause}
}

// KindOf reports the kind of the first *Error in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
