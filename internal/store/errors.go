package store

import (
	"fmt"
	"net/http"
)

// Error is a persistence error that knows its HTTP status.
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

// Is matches any store error with the same status, so a custom message
// still satisfies errors.Is(err, ErrNotFound).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// HTTPStatus returns the HTTP status code associated with this error.
func (e *Error) HTTPStatus() int { return e.Code }

// PublicMessage returns the client-facing message.
func (e *Error) PublicMessage() string { return e.Message }

// WithMessage returns a new error with a custom message.
func (e *Error) WithMessage(msg string) *Error {
	return &Error{Code: e.Code, Message: msg, Err: e.Err}
}

// WithCause wraps an underlying error.
func (e *Error) WithCause(err error) *Error {
	return &Error{Code: e.Code, Message: e.Message, Err: err}
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

	ErrUserNotFound  = ErrNotFound.WithMessage("user not found")
	ErrGameNotFound  = ErrNotFound.WithMessage("game not found")
	ErrUsernameTaken = ErrAlreadyExists.WithMessage("username already taken")
)
