package errors

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Kind classifies a domain error for transport mapping.
type Kind int

const (
	// KindNotFound means a referenced entity is absent.
	KindNotFound Kind = iota
	// KindForbidden means the principal lacks access to the target entity.
	KindForbidden
	// KindBadRequest means the request failed validation.
	KindBadRequest
	// KindDuplication means a uniqueness constraint was violated.
	KindDuplication
	// KindUnauthenticated means the credentials are bad or missing.
	KindUnauthenticated
	// KindInternal is everything else.
	KindInternal
)

// Error is a domain error carrying a kind and a human-readable message.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// ForbiddenMessage is the fixed message carried by every access denial.
const ForbiddenMessage = "access to the requested resource is denied"

// NewNotFound reports an absent entity by name and id.
func NewNotFound(entityName string, id uint) *Error {
	return &Error{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("%s with id %d does not exist", entityName, id),
	}
}

// NewForbidden reports an access denial. The message is deliberately fixed
// and carries no structured reason.
func NewForbidden() *Error {
	return &Error{Kind: KindForbidden, Message: ForbiddenMessage}
}

// NewBadRequest reports a validation failure.
func NewBadRequest(message string) *Error {
	return &Error{Kind: KindBadRequest, Message: message}
}

// NewDuplication reports a uniqueness violation.
func NewDuplication(message string) *Error {
	return &Error{Kind: KindDuplication, Message: message}
}

// NewUnauthenticated reports bad credentials.
func NewUnauthenticated(message string) *Error {
	return &Error{Kind: KindUnauthenticated, Message: message}
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error     string    `json:"error"`
	Status    int       `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error:     e.Message,
		Status:    e.StatusCode,
		Timestamp: time.Now().UTC(),
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Wrapped domain
// errors keep their mapping.
func MapErrorToHTTP(err error) *HTTPError {
	var domainErr *Error
	if !errors.As(err, &domainErr) {
		return NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	switch domainErr.Kind {
	case KindNotFound:
		return NewHTTPError(http.StatusNotFound, domainErr.Message)
	case KindForbidden:
		return NewHTTPError(http.StatusForbidden, domainErr.Message)
	case KindBadRequest:
		return NewHTTPError(http.StatusBadRequest, domainErr.Message)
	case KindDuplication:
		return NewHTTPError(http.StatusConflict, domainErr.Message)
	case KindUnauthenticated:
		return NewHTTPError(http.StatusUnauthorized, domainErr.Message)
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
}
