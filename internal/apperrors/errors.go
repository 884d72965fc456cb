package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInvalidToken covers bad signatures, expired tokens, wrong token kinds
// and refresh tokens that no longer match the persisted session.
var ErrInvalidToken = errors.New("invalid or expired token")

// ErrInvalidCredentials indicates a failed email/password check.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ErrForbidden indicates the actor does not own the resource or lacks the required role.
var ErrForbidden = errors.New("forbidden")

// ErrInvalidParent indicates the referenced parent comment does not exist.
var ErrInvalidParent = errors.New("invalid parent comment")

// ErrDepthExceeded indicates a reply would nest deeper than the configured maximum.
var ErrDepthExceeded = errors.New("comment depth limit exceeded")

// ErrUnavailable indicates an optional collaborator (cache, blob storage) is not configured.
var ErrUnavailable = errors.New("service unavailable")

// AppError carries a status-like code alongside a wrapped persistence or infrastructure error.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError builds an AppError wrapping err.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}
