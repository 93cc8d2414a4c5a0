// Package apperror defines the error kinds surfaced to API clients.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for the HTTP layer.
type Kind int

const (
	KindServer Kind = iota
	KindNotFound
	KindConflict
	KindUnauthorized
	KindForbidden
	KindBadRequest
	KindInvalidID
)

// Error is a client-facing failure with a kind and a message safe to return.
type Error struct {
	Kind    Kind
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

// StatusCode maps the kind to its HTTP status.
func (e *Error) StatusCode() int {
	switch e.Kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindBadRequest, KindInvalidID:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// NotFound reports a missing resource (404).
func NotFound(format string, args ...any) *Error { return newf(KindNotFound, format, args...) }

// Conflict reports a clash with existing state (409).
func Conflict(format string, args ...any) *Error { return newf(KindConflict, format, args...) }

// Unauthorized reports missing or bad credentials (401).
func Unauthorized(format string, args ...any) *Error { return newf(KindUnauthorized, format, args...) }

// Forbidden reports a request the caller may not perform in the current state (403).
func Forbidden(format string, args ...any) *Error { return newf(KindForbidden, format, args...) }

// BadRequest reports invalid input (400).
func BadRequest(format string, args ...any) *Error { return newf(KindBadRequest, format, args...) }

// InvalidID reports an identifier the store cannot parse (400).
func InvalidID(format string, args ...any) *Error { return newf(KindInvalidID, format, args...) }

// Internal wraps an unexpected failure. The cause is logged, never returned to clients.
func Internal(err error) *Error {
	return &Error{Kind: KindServer, Message: "Server error.", Err: err}
}

// As extracts an *Error from err's chain.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	appErr, ok := As(err)
	return ok && appErr.Kind == kind
}
