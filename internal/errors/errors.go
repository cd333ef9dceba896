// Package errors provides coded domain errors for the Vault API.
//
// Every error that can reach a client carries a Code, and every Code knows
// its HTTP status. The API layer does not switch on concrete error types; it
// asks for a StatusMapper and uses whatever status and message it reports.
//
//	// In services
//	if user == nil {
//	    return errors.NotFound("user not found")
//	}
//
//	// In handlers
//	var mapper errors.StatusMapper
//	if errors.As(err, &mapper) {
//	    status, msg := mapper.HTTPStatus(), mapper.PublicMessage()
//	}
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Re-export standard library functions for convenience.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	Join   = errors.Join
	New    = errors.New
)

// StatusMapper is implemented by errors that know how they should be
// presented over HTTP.
type StatusMapper interface {
	error
	HTTPStatus() int
	PublicMessage() string
}

// Code represents a machine-readable error code.
type Code string

// Error codes used throughout the application.
const (
	CodeWrongCredentials   Code = "WRONG_CREDENTIALS"
	CodeMissingCredentials Code = "MISSING_CREDENTIALS"
	CodeTokenCreation      Code = "TOKEN_CREATION"
	CodeUnauthorized       Code = "UNAUTHORIZED"
	CodeNotFound           Code = "NOT_FOUND"
	CodeAlreadyExists      Code = "ALREADY_EXISTS"
	CodeValidation         Code = "VALIDATION"
	CodeInternal           Code = "INTERNAL"
)

// InternalMessage is the only message a client ever sees for a 5xx.
const InternalMessage = "internal server error"

// HTTPStatus returns the appropriate HTTP status code for an error code.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeWrongCredentials, CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeMissingCredentials, CodeValidation:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeAlreadyExists:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Error is a domain error with a code, a client-facing message and an
// optional cause.
type Error struct {
	Code    Code
	Message string
	cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports whether target is an *Error with the same Code.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// HTTPStatus returns the HTTP status code for this error.
func (e *Error) HTTPStatus() int {
	return e.Code.HTTPStatus()
}

// PublicMessage returns the message safe to show a client.
// Server errors never expose their message.
func (e *Error) PublicMessage() string {
	if e.HTTPStatus() >= http.StatusInternalServerError {
		return InternalMessage
	}
	return e.Message
}

// WithCause wraps an underlying error.
func (e *Error) WithCause(err error) *Error {
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		cause:   err,
	}
}

// Sentinel errors for use with errors.Is().
var (
	ErrWrongCredentials   = &Error{Code: CodeWrongCredentials, Message: "Wrong credentials"}
	ErrMissingCredentials = &Error{Code: CodeMissingCredentials, Message: "Missing credentials"}
	ErrTokenCreation      = &Error{Code: CodeTokenCreation, Message: "Access token creation failed"}
	ErrUnauthorized       = &Error{Code: CodeUnauthorized, Message: "unauthorized"}
	ErrNotFound           = &Error{Code: CodeNotFound, Message: "not found"}
	ErrAlreadyExists      = &Error{Code: CodeAlreadyExists, Message: "already exists"}
	ErrValidation         = &Error{Code: CodeValidation, Message: "validation error"}
	ErrInternal           = &Error{Code: CodeInternal, Message: InternalMessage}
)

// NotFound creates a not found error.
func NotFound(msg string) *Error {
	return &Error{Code: CodeNotFound, Message: msg}
}

// NotFoundf creates a not found error with formatted message.
func NotFoundf(format string, args ...any) *Error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

// AlreadyExists creates an already exists error.
func AlreadyExists(msg string) *Error {
	return &Error{Code: CodeAlreadyExists, Message: msg}
}

// Unauthorized creates an unauthorized error.
func Unauthorized(msg string) *Error {
	return &Error{Code: CodeUnauthorized, Message: msg}
}

// Validation creates a validation error.
func Validation(msg string) *Error {
	return &Error{Code: CodeValidation, Message: msg}
}

// Validationf creates a validation error with formatted message.
func Validationf(format string, args ...any) *Error {
	return &Error{Code: CodeValidation, Message: fmt.Sprintf(format, args...)}
}

// Internal wraps err as an internal error. The cause is kept for logging.
func Internal(msg string, err error) *Error {
	return &Error{Code: CodeInternal, Message: msg, cause: err}
}

// Wrap wraps an error with a code and message.
func Wrap(err error, code Code, msg string) *Error {
	return &Error{Code: code, Message: msg, cause: err}
}
