package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrInvalidIdentifier is returned when an id string is not a valid document id.
	ErrInvalidIdentifier = errors.New("invalid identifier")
	// ErrNotFound is returned when a well-formed id matches no document.
	ErrNotFound = errors.New("not found")
	// ErrStoreUnavailable is returned when the document store is unreachable or was never initialized.
	ErrStoreUnavailable = errors.New("document store unavailable")
	// ErrDuplicate is returned when an insert violates a unique index.
	ErrDuplicate = errors.New("duplicate document")
)

// InvalidEntityDataError reports a field that failed entity validation.
type InvalidEntityDataError struct {
	Field   string
	Reason  string
	Allowed []string
}

func (e *InvalidEntityDataError) Error() string {
	if len(e.Allowed) > 0 {
		return fmt.Sprintf("invalid %s: must be one of [%s]", e.Field, strings.Join(e.Allowed, ", "))
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NewInvalidEntityData creates a validation error for a single field.
func NewInvalidEntityData(field, reason string, allowed ...string) *InvalidEntityDataError {
	return &InvalidEntityDataError{Field: field, Reason: reason, Allowed: allowed}
}

// NotFoundError tags ErrNotFound with the entity kind that was looked up.
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return e.Entity + " not found"
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// NotFound returns ErrNotFound tagged with the entity kind.
func NotFound(entity string) error {
	return &NotFoundError{Entity: entity}
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error   string   `json:"error"`
	Code    string   `json:"code"`
	Field   string   `json:"field,omitempty"`
	Allowed []string `json:"allowed,omitempty"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
	Field      string
	Allowed    []string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error:   e.Message,
		Code:    e.Code,
		Field:   e.Field,
		Allowed: e.Allowed,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	var invalid *InvalidEntityDataError
	if errors.As(err, &invalid) {
		httpErr := NewHTTPError(http.StatusUnprocessableEntity, invalid.Error(), "INVALID_ENTITY_DATA")
		httpErr.Field = invalid.Field
		httpErr.Allowed = invalid.Allowed
		return httpErr
	}

	var notFound *NotFoundError
	switch {
	case errors.Is(err, ErrInvalidIdentifier):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_ID")
	case errors.As(err, &notFound):
		code := strings.ToUpper(notFound.Entity) + "_NOT_FOUND"
		return NewHTTPError(http.StatusNotFound, capitalize(notFound.Error()), code)
	case errors.Is(err, ErrNotFound):
		return NewHTTPError(http.StatusNotFound, "not found", "NOT_FOUND")
	case errors.Is(err, ErrStoreUnavailable):
		return NewHTTPError(http.StatusServiceUnavailable, ErrStoreUnavailable.Error(), "STORE_UNAVAILABLE")
	case errors.Is(err, ErrDuplicate):
		return NewHTTPError(http.StatusConflict, err.Error(), "DUPLICATE")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
