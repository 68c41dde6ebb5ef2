package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrProductNotFound  = errors.New("product not found")
	ErrImageNotFound    = errors.New("image not found")

	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUnknownRole is returned when a role set contains no recognized role.
	ErrUnknownRole = errors.New("unknown role")
	// ErrRoleNotFound is returned for a role level selector outside the table.
	ErrRoleNotFound = errors.New("role not found")

	// ErrDenied is the base of all authorization failures. Match with
	// errors.Is; use DeniedError for the reason.
	ErrDenied = errors.New("access forbidden")
)

// ValidationError reports a missing or malformed field in a mutation payload.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NewValidationError builds a ValidationError for the given field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// DeniedError carries the reason an authorization guard rejected an operation.
type DeniedError struct {
	Reason string
}

func (e *DeniedError) Error() string {
	return "access forbidden: " + e.Reason
}

// Unwrap makes every DeniedError match errors.Is(err, ErrDenied).
func (e *DeniedError) Unwrap() error {
	return ErrDenied
}

// Denial reasons attached to DeniedError.
const (
	DenialInsufficientRank = "insufficient rank"
	DenialPeerProtection   = "admin cannot modify another admin"
)
