// Package apperr defines the error taxonomy shared by services and the HTTP
// layer. Services return *Error values (usually package-level sentinels); the
// HTTP layer maps Kind to a status code and Key to a localized message.
package apperr

import (
	"errors"
	"net/http"
)

// Kind classifies an error for transport mapping.
type Kind string

const (
	KindValidation    Kind = "validation"
	KindNotFound      Kind = "not_found"
	KindConflict      Kind = "conflict"
	KindUnauthorized  Kind = "unauthorized"
	KindForbidden     Kind = "forbidden"
	KindUnprocessable Kind = "unprocessable"
	KindRateLimited   Kind = "rate_limited"
	KindUnavailable   Kind = "unavailable"
	KindInternal      Kind = "internal"
)

// HTTPStatus returns the status code a Kind is rendered with.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindUnprocessable:
		return http.StatusUnprocessableEntity
	case KindRateLimited:
		return http.StatusTooManyRequests
	case KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Error is a classified domain error.
type Error struct {
	Kind Kind

	// Key is the stable message key, e.g. "auth.email_taken". It doubles as
	// the catalog key for localized messages.
	Key string

	// Message is the internal English description used in logs.
	Message string

	// Fields maps request field names to message keys for validation errors.
	Fields map[string]string

	Cause error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Cause }

// Is matches on Kind and Key so wrapped copies of a sentinel still compare
// equal.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind && t.Key == e.Key
}

// New creates an error without a cause.
func New(kind Kind, key, message string) *Error {
	return &Error{Kind: kind, Key: key, Message: message}
}

// Wrap returns a copy of e carrying cause.
func (e *Error) Wrap(cause error) *Error {
	cp := *e
	cp.Cause = cause
	return &cp
}

// Validation reports malformed input. fields maps field names to message
// keys.
func Validation(fields map[string]string) *Error {
	return &Error{
		Kind:    KindValidation,
		Key:     KeyValidation,
		Message: "request validation failed",
		Fields:  fields,
	}
}

// Message keys of the generic errors.
const (
	KeyValidation  = "validation.failed"
	KeyInternal    = "internal"
	KeyRateLimited = "rate_limited"
)

// Internal wraps an unexpected failure.
func Internal(cause error) *Error {
	return &Error{Kind: KindInternal, Key: KeyInternal, Message: "internal error", Cause: cause}
}

// As extracts the *Error in err's chain, converting anything else into an
// internal error.
func As(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Internal(err)
}

// KindOf returns the Kind of err (KindInternal for unclassified errors).
func KindOf(err error) Kind {
	return As(err).Kind
}
