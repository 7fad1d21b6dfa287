// Package apperr defines the error kinds the API distinguishes: validation
// failures (nothing persisted, client can correct and resubmit), unknown
// identifiers, and a transient unavailable state for the spatial index.
package apperr

import (
	"errors"
	"fmt"

	"github.com/scoutalina/scout-backend-go/internal/spatial"
)

// ValidationError reports malformed or empty input, rejected before any
// persistence happened.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NotFoundError reports an identifier unknown to the caller.
type NotFoundError struct {
	Resource string
	ID       any
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %v not found", e.Resource, e.ID)
}

// Validation creates a validation error.
func Validation(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// NotFound creates a not-found error.
func NotFound(resource string, id any) error {
	return &NotFoundError{Resource: resource, ID: id}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsIndexUnavailable reports whether err is the spatial index's transient
// not-built error. Matching must surface this instead of returning partial
// results.
func IsIndexUnavailable(err error) bool {
	return errors.Is(err, spatial.ErrIndexUnavailable)
}
