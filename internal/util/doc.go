// Package util provides shared error types for the route matching engine.
//
// # Error Types
//
// Structured error types for consistent error handling:
//
//   - ParseError: malformed route templates (unbalanced braces, empty names)
//   - InvalidArgumentError: rejected registration arguments
//   - RouteNotFoundError: named route lookups that miss
//   - PatternError: regular expressions that fail to compile on first use
//   - ConfigError: configuration validation errors
//
// Each type matches its sentinel with errors.Is:
//
//	if errors.Is(err, util.ErrNotFound) {
//	    // unknown route name
//	}
//
// A request path that matches no route is not an error and never
// produces one of these values.
package util
