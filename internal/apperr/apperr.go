// Package apperr defines the three error kinds the core distinguishes:
// validation failures, transition guard violations and missing (or
// foreign-owned) entities. Everything else is a generic failure.
package apperr

import (
	"errors"
	"fmt"
)

// ErrNotFound covers both missing entities and entities owned by
// someone else, so existence is never leaked to non-owners.
var ErrNotFound = errors.New("not found")

// ErrStateConflict means a transition guard was violated. The entity
// is left exactly as it was.
var ErrStateConflict = errors.New("state conflict")

// ValidationError reports malformed input. Nothing was mutated.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// Validationf builds a ValidationError from a format string.
func Validationf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
