// Package util provides utility functions and types shared by the
// classifier, its middleware and the command line tool.
//
// # Error Conventions
//
// This project follows a standardized error pattern across all packages:
//
//   - Sentinel errors (errors.New) for well-known, stable conditions
//     that callers check with errors.Is(). Example: ErrConfigInvalid.
//   - Structured error types for context-rich errors that carry
//     additional fields (e.g., ConfigError, BodyTooLargeError, InputError). Each type
//     implements Error(), Unwrap() (if wrapping), and Is().
//   - fmt.Errorf with %w for ad-hoc wrapping that adds context to an
//     existing error without introducing a new type.
package util

import (
	"errors"
	"fmt"
)

// Common sentinel errors.
var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrConfigInvalid = errors.New("invalid configuration")
	ErrBodyTooLarge  = errors.New("request body too large")
)

// ConfigError represents a configuration-related error.
type ConfigError struct {
	Field   string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	msg := "config error: " + e.Message
	if e.Field != "" {
		msg = fmt.Sprintf("config error at %s: %s", e.Field, e.Message)
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is checks if the error matches the target.
func (e *ConfigError) Is(target error) bool {
	if target == ErrConfigInvalid {
		return true
	}
	_, ok := target.(*ConfigError)
	return ok || errors.Is(e.Cause, target)
}

// NewConfigErrorWithCause creates a new ConfigError with a cause.
func NewConfigErrorWithCause(field, message string, cause error) *ConfigError {
	return &ConfigError{Field: field, Message: message, Cause: cause}
}

// BodyTooLargeError reports a request body that exceeds the buffering
// limit used for correlation.
type BodyTooLargeError struct {
	Limit int64
}

// Error implements the error interface.
func (e *BodyTooLargeError) Error() string {
	return fmt.Sprintf("request body exceeds %d bytes", e.Limit)
}

// Is checks if the error matches the target.
func (e *BodyTooLargeError) Is(target error) bool {
	if target == ErrBodyTooLarge {
		return true
	}
	_, ok := target.(*BodyTooLargeError)
	return ok
}

// NewBodyTooLargeError creates a new BodyTooLargeError.
func NewBodyTooLargeError(limit int64) *BodyTooLargeError {
	return &BodyTooLargeError{Limit: limit}
}

// InputError reports a value rejected by one of the Validate helpers.
// It matches ErrInvalidInput.
type InputError struct {
	Message string
}

// Error implements the error interface.
func (e *InputError) Error() string {
	return e.Message
}

// Is checks if the error matches the target.
func (e *InputError) Is(target error) bool {
	return target == ErrInvalidInput
}

func invalidf(format string, args ...any) error {
	return &InputError{Message: fmt.Sprintf(format, args...)}
}
