package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failure so handlers can map it to an HTTP status
// without inspecting driver or SDK error types.
type Kind string

const (
	KindValidation  Kind = "validation"
	KindNotFound    Kind = "not_found"
	KindUpload      Kind = "upload"
	KindPersistence Kind = "persistence"
	KindUnexpected  Kind = "unexpected"
)

// Error is a tagged application error. Message is safe to show to clients;
// Err carries the underlying cause for logs and errors.Is/As chains.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func Upload(message string, err error) *Error {
	return &Error{Kind: KindUpload, Message: message, Err: err}
}

func Persistence(message string, err error) *Error {
	return &Error{Kind: KindPersistence, Message: message, Err: err}
}

func Unexpected(message string, err error) *Error {
	return &Error{Kind: KindUnexpected, Message: message, Err: err}
}

// KindOf returns the kind of a tagged error, or KindUnexpected for anything
// untagged.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnexpected
}

// HTTPStatus maps an error to the response status code.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// ClientMessage returns the message safe to put in a response body. Untagged
// errors get a generic message so internal error text never leaks.
func ClientMessage(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "internal server error"
}
