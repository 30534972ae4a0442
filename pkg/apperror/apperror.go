package apperror

import (
	"errors"
	"net/http"
)

// Sentinel kinds. Every error that crosses an application boundary wraps
// exactly one of these; handlers map the kind to an HTTP status and the
// underlying cause stays in the logs.
var (
	ErrForbidden    = errors.New("forbidden")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrBadRequest   = errors.New("bad request")
	ErrInternal     = errors.New("internal error")
)

type AppError struct {
	Kind    error  // one of the sentinel kinds above
	Cause   error  // underlying error, logged but never serialized
	Message string // stable, user-visible message
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Kind
}

func New(kind error, message string) *AppError {
	return &AppError{Kind: kind, Message: message}
}

// Wrap attaches a cause to a kinded error. The cause is reachable for
// logging via CauseOf, not via errors.Is, so callers can only match kinds.
func Wrap(kind error, cause error, message string) *AppError {
	return &AppError{Kind: kind, Cause: cause, Message: message}
}

func Forbidden(message string) *AppError    { return New(ErrForbidden, message) }
func Unauthorized(message string) *AppError { return New(ErrUnauthorized, message) }
func NotFound(message string) *AppError     { return New(ErrNotFound, message) }
func BadRequest(message string) *AppError   { return New(ErrBadRequest, message) }

func Internal(cause error) *AppError {
	return Wrap(ErrInternal, cause, "internal server error")
}

// CauseOf returns the wrapped cause when err is an AppError, else err itself.
func CauseOf(err error) error {
	var ae *AppError
	if errors.As(err, &ae) && ae.Cause != nil {
		return ae.Cause
	}
	return err
}

// Status maps an error to its HTTP status code. Unknown errors are
// treated as internal.
func Status(err error) int {
	switch {
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
