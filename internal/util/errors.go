// Package util provides shared error types for the route matching engine.
//
// # Error Conventions
//
// This project follows a standardized error pattern across all packages:
//
//   - Sentinel errors (errors.New) for well-known, stable conditions
//     that callers check with errors.Is(). Example: ErrNotFound.
//   - Structured error types for context-rich errors that carry
//     additional fields (e.g., ParseError, PatternError). Each type
//     implements Error(), Unwrap() (if wrapping), and Is().
//   - fmt.Errorf with %w for ad-hoc wrapping that adds context to an
//     existing error without introducing a new type.
//
// All custom error types must implement:
//
//	Error() string           – human-readable message
//	Unwrap() error           – if the type wraps another error
//	Is(target error) bool    – for errors.Is() compatibility
package util

import (
	"errors"
	"fmt"
)

// Common sentinel errors.
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrParse           = errors.New("malformed route template")
	ErrPattern         = errors.New("invalid route pattern")
	ErrConfigInvalid   = errors.New("invalid configuration")
)

// ConfigError represents a configuration-related error.
type ConfigError struct {
	Field   string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("config error at %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("config error: %s", e.Message)
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

// NewConfigError creates a new ConfigError.
func NewConfigError(field, message string) *ConfigError {
	return &ConfigError{Field: field, Message: message}
}

// NewConfigErrorWithCause creates a new ConfigError with a cause.
func NewConfigErrorWithCause(field, message string, cause error) *ConfigError {
	return &ConfigError{Field: field, Message: message, Cause: cause}
}

// ParseError reports a malformed route template.
// Offset is the byte position in Template where the problem was detected.
type ParseError struct {
	Template string
	Offset   int
	Message  string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error in %q at offset %d: %s", e.Template, e.Offset, e.Message)
}

// Is checks if the error matches the target.
func (e *ParseError) Is(target error) bool {
	if target == ErrParse {
		return true
	}
	_, ok := target.(*ParseError)
	return ok
}

// NewParseError creates a new ParseError.
func NewParseError(template string, offset int, message string) *ParseError {
	return &ParseError{Template: template, Offset: offset, Message: message}
}

// InvalidArgumentError reports an argument rejected at registration time,
// such as an unsupported route key type or an out-of-range method mask.
type InvalidArgumentError struct {
	Argument string
	Value    any
	Message  string
}

// Error implements the error interface.
func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid argument %s (%v): %s", e.Argument, e.Value, e.Message)
}

// Is checks if the error matches the target.
func (e *InvalidArgumentError) Is(target error) bool {
	if target == ErrInvalidArgument {
		return true
	}
	_, ok := target.(*InvalidArgumentError)
	return ok
}

// NewInvalidArgumentError creates a new InvalidArgumentError.
func NewInvalidArgumentError(argument string, value any, message string) *InvalidArgumentError {
	return &InvalidArgumentError{Argument: argument, Value: value, Message: message}
}

// RouteNotFoundError is returned when a route is looked up by a name
// that was never registered. It is unrelated to a failed match.
type RouteNotFoundError struct {
	Name string
}

// Error implements the error interface.
func (e *RouteNotFoundError) Error() string {
	return fmt.Sprintf("route %q not found", e.Name)
}

// Is checks if the error matches the target.
func (e *RouteNotFoundError) Is(target error) bool {
	if target == ErrNotFound {
		return true
	}
	_, ok := target.(*RouteNotFoundError)
	return ok
}

// NewRouteNotFoundError creates a new RouteNotFoundError.
func NewRouteNotFoundError(name string) *RouteNotFoundError {
	return &RouteNotFoundError{Name: name}
}

// PatternError wraps a regular expression engine failure for a route.
// It is raised the first time the offending route is exercised.
type PatternError struct {
	Path    string
	Pattern string
	Cause   error
}

// Error implements the error interface.
func (e *PatternError) Error() string {
	return fmt.Sprintf("route %s: cannot compile pattern %q: %v", e.Path, e.Pattern, e.Cause)
}

// Unwrap returns the underlying error.
func (e *PatternError) Unwrap() error {
	return e.Cause
}

// Is checks if the error matches the target.
func (e *PatternError) Is(target error) bool {
	if target == ErrPattern {
		return true
	}
	_, ok := target.(*PatternError)
	return ok || errors.Is(e.Cause, target)
}

// NewPatternError creates a new PatternError.
func NewPatternError(path, pattern string, cause error) *PatternError {
	return &PatternError{Path: path, Pattern: pattern, Cause: cause}
}

// WrapError wraps an error with additional context.
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// IsRegistrationError returns true if the error should abort route
// registration: a malformed template or a rejected argument.
func IsRegistrationError(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, ErrParse) || errors.Is(err, ErrInvalidArgument)
}
