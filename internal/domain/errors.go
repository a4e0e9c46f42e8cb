package domain

import (
	"errors"
	"fmt"
)

// User-facing error kinds. Adapters fold provider failures into one of these
// so that driver or SDK codes never reach the views.
var (
	ErrAlreadyExists      = errors.New("already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotFound           = errors.New("not found")
	ErrValidation         = errors.New("validation failed")
	ErrUnavailable        = errors.New("unavailable")
	ErrUnknown            = errors.New("unknown error")
)

// ValidationError names the offending input. It matches ErrValidation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Invalid builds a ValidationError.
func Invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
