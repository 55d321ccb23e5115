// Package apperr holds the failure taxonomy shared by the persistence, service
// and http layers, and translates failures into http responses.
package apperr

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/pkg/errors"
)

const (
	NOT_FOUND_MSG   = "resource not found"
	BAD_REQUEST_MSG = "invalid request body"
	UNEXPECTED_MSG  = "An unexpected error occurred on the server."
)

var (
	// ErrNotFound is returned when a get/update/delete references an absent record
	ErrNotFound = errors.New(NOT_FOUND_MSG)

	// ErrBadRequest is returned when a request body can't be decoded
	ErrBadRequest = errors.New(BAD_REQUEST_MSG)
)

// ValidationError lists every field error found in a request, in rule order.
type ValidationError struct {
	Fields []string
}

func NewValidationError(fields ...string) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Fields, ", ")
}

// ConflictError is returned when a write violates a uniqueness constraint.
// Field is empty when the offending column could not be determined.
type ConflictError struct {
	Field string
	Err   error
}

func (e *ConflictError) Error() string {
	field := e.Field
	if field == "" {
		field = "value"
	}
	return fmt.Sprintf("The %s you entered is already in use.", field)
}

func (e *ConflictError) Unwrap() error {
	return e.Err
}

// Translate maps err to the status code & message sent to the client.
// Anything outside the taxonomy is an unexpected error, and its detail is not exposed.
func Translate(err error) (int, string) {
	var validationErr *ValidationError
	var conflictErr *ConflictError

	switch {
	case err == nil:
		return http.StatusOK, ""
	case errors.As(err, &validationErr):
		return http.StatusUnprocessableEntity, validationErr.Error()
	case errors.As(err, &conflictErr):
		return http.StatusConflict, conflictErr.Error()
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound, NOT_FOUND_MSG
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest, BAD_REQUEST_MSG
	default:
		return http.StatusInternalServerError, UNEXPECTED_MSG
	}
}
