// Package apierror defines the error taxonomy surfaced by the API.
// Validation and cursor errors carry a client-safe message and map to 400;
// storage and internal errors map to 500 with a generic client message.
package apierror

import (
	"fmt"
	"net/http"
)

// Kind classifies an API error
type Kind int

const (
	KindInvalidParameter Kind = iota + 1
	KindInvalidCursor
	KindCursorMismatch
	KindStorage
	KindInternal
)

// Error is a classified API error
type Error struct {
	Kind    Kind
	Message string
	Err     error // underlying cause, logged but never sent to clients
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// HTTPStatus maps the error kind to an HTTP status code
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindInvalidParameter, KindInvalidCursor, KindCursorMismatch:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// ClientMessage returns the message safe to include in a response body
func (e *Error) ClientMessage() string {
	switch e.Kind {
	case KindStorage, KindInternal:
		return "Internal server error"
	default:
		return e.Message
	}
}

// InvalidParameter reports a malformed or out-of-range request parameter
func InvalidParameter(format string, args ...interface{}) *Error {
	return &Error{Kind: KindInvalidParameter, Message: fmt.Sprintf(format, args...)}
}

// InvalidCursor reports a cursor that fails decoding or shape validation
func InvalidCursor(format string, args ...interface{}) *Error {
	return &Error{Kind: KindInvalidCursor, Message: fmt.Sprintf(format, args...)}
}

// CursorMismatch reports a cursor whose sort field disagrees with the request
func CursorMismatch(format string, args ...interface{}) *Error {
	return &Error{Kind: KindCursorMismatch, Message: fmt.Sprintf(format, args...)}
}

// Storage wraps an underlying storage failure
func Storage(err error) *Error {
	return &Error{Kind: KindStorage, Message: "contract data query failed", Err: err}
}

// Internal wraps a programming invariant violation
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "internal error", Err: err}
}
