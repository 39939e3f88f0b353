package service

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized is returned when the caller does not own the entity
	// the operation targets.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrSessionOwnership is returned when a payment session's metadata
	// names a different user than the authenticated caller.
	ErrSessionOwnership = errors.New("payment session belongs to a different user")

	ErrInvalidCredentials = errors.New("invalid email or password")
)

// ValidationError is a client-caused input error; nothing was mutated.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// InsufficientCreditsError carries the amounts the client needs to prompt
// a top-up.
type InsufficientCreditsError struct {
	Required int32
	Current  int32
}

func (e *InsufficientCreditsError) Error() string {
	return fmt.Sprintf("insufficient credits: required %d, current %d", e.Required, e.Current)
}
