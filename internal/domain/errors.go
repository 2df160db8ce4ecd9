package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals a missing extraction.
	ErrNotFound = errors.New("extraction not found")
	// ErrTradeIdeaNotFound signals a missing nested trade idea.
	ErrTradeIdeaNotFound = errors.New("trade idea not found")
	// ErrTagNotFound signals a missing catalog tag.
	ErrTagNotFound = errors.New("tag not found")
	// ErrDuplicateTag signals a (name, category) collision in the catalog.
	ErrDuplicateTag = errors.New("duplicate tag")
	// ErrValidation signals malformed input, rejected before any write.
	ErrValidation = errors.New("validation failed")
	// ErrInvalidCategory signals an unsupported breakdown category.
	ErrInvalidCategory = errors.New("invalid category")
)

// ValidationError wraps ErrValidation with the offending field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: field %q: %s", ErrValidation.Error(), e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a field-level validation error.
func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
