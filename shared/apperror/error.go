// Package apperror is the user-facing error taxonomy of the organization API.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error by how it is reported to the caller
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindAuthorization
	KindNotFound
	KindConflict
	KindBadRequest
)

// Fixed messages shared by all handlers
const (
	MessageInvalidData          = "The given data was invalid."
	MessageUnauthorized         = "You are not authorized to access this resource."
	MessageOrganizationNotFound = "This organization does not exist"
	MessageUserNotFound         = "This user does not exist."
	MessageInternal             = "Something went wrong."
)

// Error is returned by handlers and rendered into the response envelope
type Error struct {
	Kind    Kind
	Message string
	Fields  map[string][]string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s", e.Message, e.Err.Error())
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Status maps the error kind to an HTTP status code
func (e *Error) Status() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusUnprocessableEntity
	case KindAuthorization:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict, KindBadRequest:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func Validation(fields map[string][]string) *Error {
	return &Error{Kind: KindValidation, Message: MessageInvalidData, Fields: fields}
}

func Unauthorized() *Error {
	return &Error{Kind: KindAuthorization, Message: MessageUnauthorized}
}

// Forbidden is an authorization failure with a specific message
func Forbidden(message string) *Error {
	return &Error{Kind: KindAuthorization, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

func BadRequest(message string) *Error {
	return &Error{Kind: KindBadRequest, Message: message}
}

// Internal wraps an unexpected failure. The cause is logged, never rendered.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: MessageInternal, Err: err}
}

// From converts any error into an *Error, treating unknown errors as internal
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal(err)
}
