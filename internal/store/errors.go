package store

import (
	"fmt"
	"net/http"
	"strings"
)

// Error is a domain error with an HTTP status code.
type Error struct {
	Code    int    // HTTP status code
	Message string // User-facing message
	Err     error  // Underlying error (optional)
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// HTTPCode returns the HTTP status code associated with this error.
func (e *Error) HTTPCode() int { return e.Code }

// WithMessage returns a new error with a custom message.
func (e *Error) WithMessage(msg string) *Error {
	return &Error{
		Code:    e.Code,
		Message: msg,
		Err:     e.Err,
	}
}

// WithCause wraps an underlying error.
func (e *Error) WithCause(err error) *Error {
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Err:     err,
	}
}

// Is makes sentinel comparison work through WithMessage/WithCause copies.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Sentinel errors.
var (
	ErrNotFound = &Error{
		Code:    http.StatusNotFound,
		Message: "resource not found",
	}

	ErrAlreadyExists = &Error{
		Code:    http.StatusConflict,
		Message: "resource already exists",
	}

	ErrInvalidInput = &Error{
		Code:    http.StatusBadRequest,
		Message: "invalid input",
	}

	ErrUnauthorized = &Error{
		Code:    http.StatusUnauthorized,
		Message: "unauthorized",
	}

	ErrPartialFailure = &Error{
		Code:    http.StatusInternalServerError,
		Message: "operation partially applied",
	}

	ErrStorageUnavailable = &Error{
		Code:    http.StatusServiceUnavailable,
		Message: "storage unavailable",
	}
)

// PartialFailure records which sub-steps of a multi-step operation committed
// and which did not. No compensation is attempted: every multi-step write in
// this store is idempotent, so the caller's recovery path is to retry the
// whole operation.
type PartialFailure struct {
	Completed []string
	Failed    []string
}

func (p *PartialFailure) Error() string {
	return fmt.Sprintf("completed [%s], failed [%s]",
		strings.Join(p.Completed, ", "), strings.Join(p.Failed, ", "))
}

// NewPartialFailure wraps a PartialFailure detail in the sentinel error so
// callers can match with errors.Is(err, ErrPartialFailure) and recover the
// detail with errors.As.
func NewPartialFailure(completed, failed []string) *Error {
	return ErrPartialFailure.WithCause(&PartialFailure{
		Completed: completed,
		Failed:    failed,
	})
}
