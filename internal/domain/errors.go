package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for operations that reference missing records.
// Repositories wrap their driver-level errors with these so callers can
// branch with errors.Is without knowing about the storage layer.
var (
	// ErrPositionNotFound is returned when an operation references a
	// position id absent from the open set.
	ErrPositionNotFound = errors.New("position not found")

	// ErrNoAssets is returned by analysis operations that require at least
	// one open position.
	ErrNoAssets = errors.New("no assets found in portfolio")
)

// ValidationError reports malformed numeric input (non-finite, negative
// where disallowed). It is raised synchronously before any mutation, so a
// failed call leaves state unchanged.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NewValidationError creates a validation error for a named input field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
