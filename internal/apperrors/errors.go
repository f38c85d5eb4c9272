package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrConflict indicates the operation conflicts with the current state of the
// resource (e.g. a session already open, connections remaining at close).
// Retrying the same request will not succeed; the caller must change approach.
var ErrConflict = errors.New("state conflict")

// ErrApprovalRequired indicates a close discrepancy exceeded the employee's
// threshold and must be re-submitted through the manager approval flow.
var ErrApprovalRequired = errors.New("manager approval required")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates the authenticated user lacks the required role.
var ErrForbidden = errors.New("forbidden")

// ErrStoreClosed indicates the enclosing store session is not open; all
// mutating drawer operations are rejected until the store reopens.
var ErrStoreClosed = errors.New("store session is not open")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// AppError carries an HTTP-ish status code alongside a wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError wrapping the given cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
