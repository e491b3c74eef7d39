package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across services, repositories and handlers.
var (
	ErrNotFound = errors.New("not found")

	// Token problems.
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenInvalid   = errors.New("token invalid")
	ErrDomainMismatch = errors.New("token issued for another domain")

	// ErrAlreadyUsedOrInvalid covers both a rotated token and a token that was
	// never stored. Callers must not tell the two apart.
	ErrAlreadyUsedOrInvalid = errors.New("link already used or invalid")

	ErrDuplicateVote    = errors.New("ballot already submitted for this number")
	ErrDuplicateMessage = errors.New("message already processed")

	ErrMissingField            = errors.New("missing required field")
	ErrMissingConditionalField = errors.New("missing conditionally required field")
	ErrInvalidField            = errors.New("invalid field value")

	ErrUnauthorized = errors.New("unauthorized")
)

// IsTokenError reports whether err came from link token validation.
func IsTokenError(err error) bool {
	return errors.Is(err, ErrTokenInvalid) ||
		errors.Is(err, ErrTokenExpired) ||
		errors.Is(err, ErrDomainMismatch)
}

// FieldError names the form field a validation error refers to.
// It unwraps to one of ErrMissingField, ErrMissingConditionalField or ErrInvalidField.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Err, e.Field)
}

func (e *FieldError) Unwrap() error { return e.Err }

// NewFieldError returns a FieldError for field wrapping err.
func NewFieldError(field string, err error) *FieldError {
	return &FieldError{Field: field, Err: err}
}
