package util

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		field          string
		message        string
		cause          error
		expectedString string
	}{
		{
			name:           "with field",
			field:          "routes[0].path",
			message:        "path is required",
			cause:          nil,
			expectedString: "config error at routes[0].path: path is required",
		},
		{
			name:           "without field",
			field:          "",
			message:        "invalid configuration",
			cause:          nil,
			expectedString: "config error: invalid configuration",
		},
		{
			name:           "with cause",
			field:          "logging.level",
			message:        "invalid level",
			cause:          errors.New("unknown level"),
			expectedString: "config error at logging.level: invalid level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var err *ConfigError
			if tt.cause != nil {
				err = NewConfigErrorWithCause(tt.field, tt.message, tt.cause)
			} else {
				err = NewConfigError(tt.field, tt.message)
			}

			assert.Equal(t, tt.expectedString, err.Error())
			assert.Equal(t, tt.field, err.Field)
			assert.Equal(t, tt.message, err.Message)
			assert.Equal(t, tt.cause, err.Unwrap())
			assert.True(t, errors.Is(err, ErrConfigInvalid))
		})
	}
}

func TestParseError(t *testing.T) {
	t.Parallel()

	err := NewParseError("/users/{id", 7, "unbalanced braces")

	assert.Equal(t, `parse error in "/users/{id" at offset 7: unbalanced braces`, err.Error())
	assert.True(t, errors.Is(err, ErrParse))
	assert.False(t, errors.Is(err, ErrInvalidArgument))

	wrapped := fmt.Errorf("register route: %w", err)
	var parseErr *ParseError
	assert.True(t, errors.As(wrapped, &parseErr))
	assert.Equal(t, 7, parseErr.Offset)
}

func TestInvalidArgumentError(t *testing.T) {
	t.Parallel()

	err := NewInvalidArgumentError("key", 1.5, "route key must be a string, an integer or nil")

	assert.Contains(t, err.Error(), "invalid argument key (1.5)")
	assert.True(t, errors.Is(err, ErrInvalidArgument))
	assert.True(t, errors.Is(err, &InvalidArgumentError{}))
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestRouteNotFoundError(t *testing.T) {
	t.Parallel()

	err := NewRouteNotFoundError("user.show")

	assert.Equal(t, `route "user.show" not found`, err.Error())
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.True(t, errors.Is(err, &RouteNotFoundError{}))
}

func TestPatternError(t *testing.T) {
	t.Parallel()

	cause := errors.New("missing closing ]")
	err := NewPatternError("/files/{name:[a-z}", "/files/(?P<p0>[a-z)", cause)

	assert.Contains(t, err.Error(), "cannot compile pattern")
	assert.True(t, errors.Is(err, ErrPattern))
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, cause, errors.Unwrap(err))
}

func TestWrapError(t *testing.T) {
	t.Parallel()

	assert.Nil(t, WrapError(nil, "context"))

	base := errors.New("boom")
	wrapped := WrapError(base, "loading routes")
	assert.Equal(t, "loading routes: boom", wrapped.Error())
	assert.True(t, errors.Is(wrapped, base))
}

func TestIsRegistrationError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{name: "nil", err: nil, expected: false},
		{name: "parse error", err: NewParseError("/{", 1, "unbalanced braces"), expected: true},
		{name: "invalid argument", err: NewInvalidArgumentError("methods", 0, "empty mask"), expected: true},
		{name: "wrapped parse error", err: WrapError(NewParseError("/{}", 1, "empty name"), "route"), expected: true},
		{name: "not found", err: NewRouteNotFoundError("x"), expected: false},
		{name: "pattern error", err: NewPatternError("/", "(", errors.New("x")), expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, IsRegistrationError(tt.err))
		})
	}
}
