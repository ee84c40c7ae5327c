package models

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across repositories and controllers. Controllers map
// them onto HTTP status codes; nothing in the domain layer is fatal.
var (
	// ErrNotFound signals an unknown product, order or user id.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateReview signals a second review from the same user on the
	// same product.
	ErrDuplicateReview = errors.New("product already reviewed")

	// ErrConflict signals a concurrent-update collision that the caller can
	// resolve by refetching and retrying.
	ErrConflict = errors.New("conflict")
)

// ValidationError describes a recoverable bad-input condition (invalid
// quantity, out-of-range rating, malformed selection, stock exceeded). The
// message is safe to return to the caller.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError builds a ValidationError with a formatted message.
func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
