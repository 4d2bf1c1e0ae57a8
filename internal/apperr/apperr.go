package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Category identifies a class of failure. It is rendered verbatim in the
// response envelope and drives the HTTP status code.
type Category string

const (
	CategoryValidation        Category = "validation"
	CategoryMissingCredential Category = "missing_credential"
	CategoryInvalidCredential Category = "invalid_credential"
	CategoryAuthentication    Category = "authentication_failed"
	CategoryNotFound          Category = "not_found"
	CategoryInternal          Category = "internal"
	CategoryStorage           Category = "storage"
	CategoryAIUnavailable     Category = "ai_unavailable"
)

// Error is the application failure type recovered at the request boundary.
// Message is safe for clients; cause stays server-side.
type Error struct {
	Category Category
	Message  string
	cause    error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Category, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Category, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// StatusCode maps the category to an HTTP status.
func (e *Error) StatusCode() int {
	switch e.Category {
	case CategoryValidation:
		return http.StatusBadRequest
	case CategoryMissingCredential, CategoryInvalidCredential, CategoryAuthentication:
		return http.StatusUnauthorized
	case CategoryNotFound:
		return http.StatusNotFound
	case CategoryAIUnavailable:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// ClientMessage returns the text exposed to the caller. Internal and storage
// failures always collapse to a generic message regardless of cause.
func (e *Error) ClientMessage() string {
	switch e.Category {
	case CategoryInternal, CategoryStorage:
		return "internal server error"
	case CategoryAIUnavailable:
		return "analysis service unavailable"
	default:
		return e.Message
	}
}

func Validation(msg string) *Error {
	return &Error{Category: CategoryValidation, Message: msg}
}

func MissingCredential(msg string) *Error {
	return &Error{Category: CategoryMissingCredential, Message: msg}
}

func InvalidCredential(msg string) *Error {
	return &Error{Category: CategoryInvalidCredential, Message: msg}
}

// Authentication reports a failed login. The message must not reveal whether
// the email or the password was wrong.
func Authentication() *Error {
	return &Error{Category: CategoryAuthentication, Message: "invalid email or password"}
}

func NotFound(resource string) *Error {
	return &Error{Category: CategoryNotFound, Message: resource + " not found"}
}

func Internal(msg string, cause error) *Error {
	return &Error{Category: CategoryInternal, Message: msg, cause: cause}
}

func Storage(msg string, cause error) *Error {
	return &Error{Category: CategoryStorage, Message: msg, cause: cause}
}

func AIUnavailable(cause error) *Error {
	return &Error{Category: CategoryAIUnavailable, Message: "analysis request failed", cause: cause}
}

// As extracts an *Error from an error chain.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
