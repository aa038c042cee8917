package errors

import (
	"errors"
	"fmt"
)

// Common error types used across the taskflow library

var (
	// ErrClosed indicates that an operation was attempted on a closed resource
	ErrClosed = errors.New("resource is closed")

	// ErrTimeout indicates that an operation timed out
	ErrTimeout = errors.New("operation timed out")

	// ErrCapacityExceeded indicates that a capacity limit was exceeded
	ErrCapacityExceeded = errors.New("capacity exceeded")

	// ErrInvalidConfiguration indicates invalid configuration parameters
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrShuttingDown indicates that work was submitted to a pool that has
	// begun shutting down; the work was rejected, not queued
	ErrShuttingDown = errors.New("pool is shutting down")

	// ErrAlreadySet indicates a second completion attempt on a one-shot promise
	ErrAlreadySet = errors.New("result already set")

	// ErrAlreadyConsumed indicates a second Get on a single-consumer future
	ErrAlreadyConsumed = errors.New("result already consumed")

	// ErrNeverRan indicates a task that was queued but abandoned at shutdown
	// before any worker claimed it
	ErrNeverRan = errors.New("task never ran")
)

// IsRetryable returns true if the error indicates a condition that might
// be resolved by retrying the operation
func IsRetryable(err error) bool {
	return errors.Is(err, ErrTimeout) || errors.Is(err, ErrCapacityExceeded)
}

// IsTemporary returns true if the error indicates a temporary condition
func IsTemporary(err error) bool {
	return errors.Is(err, ErrTimeout) || errors.Is(err, ErrCapacityExceeded)
}

// IsContractViolation returns true if the error indicates misuse of a
// one-shot promise or future rather than a runtime condition
func IsContractViolation(err error) bool {
	return errors.Is(err, ErrAlreadySet) || errors.Is(err, ErrAlreadyConsumed)
}

// ValidationError describes an invalid configuration value with enough
// context to correct it.
type ValidationError struct {
	Module string
	Field  string
	Value  interface{}
	Reason string
	Hint   string
}

// NewValidationError creates a ValidationError without a hint.
func NewValidationError(module, field string, value interface{}, reason string) *ValidationError {
	return &ValidationError{
		Module: module,
		Field:  field,
		Value:  value,
		Reason: reason,
	}
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("%s: invalid %s=%v (%s)", e.Module, e.Field, e.Value, e.Reason)
	if e.Hint != "" {
		msg += " - " + e.Hint
	}
	return msg
}

// Unwrap allows errors.Is(err, ErrInvalidConfiguration) to match.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidConfiguration
}
