// Package domain holds the error taxonomy shared by every layer of the
// banking core. Services classify failures with these sentinels so that
// callers can branch on errors.Is without inspecting message text.
package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a requested resource does not exist.
	ErrNotFound = errors.New("resource not found")
	// ErrValidation is returned when input validation fails. Never retried.
	ErrValidation = errors.New("validation error")
	// ErrForbidden is returned when the acting user is not allowed to perform
	// an action. The wrapped message carries the policy reason.
	ErrForbidden = errors.New("forbidden")
	// ErrConflict signals an optimistic-concurrency conflict: the row version
	// observed at read time no longer matches at write time.
	ErrConflict = errors.New("concurrent update conflict")
	// ErrInvalidState is returned when an entity exists but cannot take part
	// in the operation (inactive account or user, insufficient funds,
	// inactive currency). Terminal, never retried.
	ErrInvalidState = errors.New("invalid state")
)

// Forbiddenf wraps ErrForbidden with a stable, human-readable policy reason.
func Forbiddenf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrForbidden, fmt.Sprintf(format, args...))
}

// Validationf wraps ErrValidation with a description of the rejected input.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// InvalidStatef wraps ErrInvalidState with the offending condition.
func InvalidStatef(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidState, fmt.Sprintf(format, args...))
}
