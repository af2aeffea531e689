package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates missing or invalid credentials or tokens.
var ErrUnauthorized = errors.New("unauthorized")

// ErrNoCopiesAvailable indicates a borrow attempt against a book with no available copies.
var ErrNoCopiesAvailable = errors.New("no copies available")

// ErrNotBorrowed indicates a return attempt for a book the user has not borrowed.
var ErrNotBorrowed = errors.New("book not borrowed")

// ErrInternal indicates an invariant violation or an unexpected persistence failure.
var ErrInternal = errors.New("internal error")

// APIError is the single structured error type surfaced by the core services.
// It carries the HTTP status code the transport layer should use, a
// client-safe message, and an optional list of detail strings. The wrapped
// kind error (one of the sentinels above) makes errors.Is checks work.
type APIError struct {
	StatusCode int
	Message    string
	Details    []string
	Err        error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

func newAPIError(statusCode int, kind error, message string, details ...string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		Message:    message,
		Details:    details,
		Err:        kind,
	}
}

// NewValidation builds a 400 validation error.
func NewValidation(message string, details ...string) *APIError {
	return newAPIError(http.StatusBadRequest, ErrValidation, message, details...)
}

// NewDuplicate builds a 409 duplicate-resource error.
func NewDuplicate(message string) *APIError {
	return newAPIError(http.StatusConflict, ErrDuplicate, message)
}

// NewUnauthorized builds a 401 authentication error.
func NewUnauthorized(message string) *APIError {
	return newAPIError(http.StatusUnauthorized, ErrUnauthorized, message)
}

// NewNotFound builds a 404 lookup-miss error.
func NewNotFound(message string) *APIError {
	return newAPIError(http.StatusNotFound, ErrNotFound, message)
}

// NewNoCopiesAvailable builds a 409 error for a borrow attempt with no copies left.
func NewNoCopiesAvailable(message string) *APIError {
	return newAPIError(http.StatusConflict, ErrNoCopiesAvailable, message)
}

// NewNotBorrowed builds a 400 error for a return attempt without a matching borrow.
func NewNotBorrowed(message string) *APIError {
	return newAPIError(http.StatusBadRequest, ErrNotBorrowed, message)
}

// NewInternal builds a 500 error wrapping an unexpected underlying failure.
// The underlying cause stays out of the client-facing message.
func NewInternal(message string, cause error) *APIError {
	e := newAPIError(http.StatusInternalServerError, ErrInternal, message)
	if cause != nil {
		e.Err = fmt.Errorf("%w: %w", ErrInternal, cause)
	}
	return e
}

// From converts any error into an *APIError. Errors that are not already
// an APIError come back as a generic 500 so persistence internals never
// leak to clients.
func From(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return NewInternal("something went wrong", err)
}
