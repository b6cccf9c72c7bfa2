package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound          = errors.New("resource not found")
	ErrDuplicateEmail    = errors.New("email already registered")
	ErrInvalidTransition = errors.New("status transition not allowed")
	ErrValidation        = errors.New("validation failed")

	ErrInvalidRequest = errors.New("invalid request body")
	ErrUnauthorized   = errors.New("no active session")
)

type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s '%s' not found", e.Kind, e.ID)
}
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

type DuplicateEmailError struct{ Email string }

func (e *DuplicateEmailError) Error() string {
	return fmt.Sprintf("account with email '%s' already exists", e.Email)
}
func (e *DuplicateEmailError) Is(target error) bool { return target == ErrDuplicateEmail }

// InvalidTransitionError reports a status change rejected by a lifecycle.
// Entity is the record kind ("swap request", "report", "swap").
type InvalidTransitionError struct {
	Entity string
	From   string
	To     string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s cannot move from '%s' to '%s'", e.Entity, e.From, e.To)
}
func (e *InvalidTransitionError) Is(target error) bool { return target == ErrInvalidTransition }
