package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrTodoNotFound is returned when a todo is not found.
	ErrTodoNotFound = errors.New("todo not found")
	// ErrForbidden is returned when a user acts on a todo they do not own.
	ErrForbidden = errors.New("not allowed to access this todo")
	// ErrInvalidTitle is returned when a todo title is empty or too long.
	ErrInvalidTitle = errors.New("todo title must be between 1 and 200 characters")
	// ErrInvalidAction is returned when a mark action is neither DONE nor UNDONE.
	ErrInvalidAction = errors.New("action must be DONE or UNDONE")
)

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
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

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrTodoNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "TODO_NOT_FOUND")
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, err.Error(), "FORBIDDEN")
	case errors.Is(err, ErrInvalidTitle):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_TITLE")
	case errors.Is(err, ErrInvalidAction):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_ACTION")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
