package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		config    *RouterConfig
		wantPaths []string
	}{
		{
			name:      "nil config",
			config:    nil,
			wantPaths: []string{""},
		},
		{
			name: "valid config",
			config: &RouterConfig{
				Logging: LoggingConfig{Level: "info", Format: "json"},
				Routes: RouteTable{
					{Key: "home", Route: RouteSpec{Path: "/", Methods: []string{"get", "HEAD"}}},
					{Key: nil, Route: RouteSpec{Path: "/users/{id}", Patterns: map[string]string{"id": `\d+`}}},
				},
			},
		},
		{
			name: "invalid logging",
			config: &RouterConfig{
				Logging: LoggingConfig{Level: "loud", Format: "xml"},
			},
			wantPaths: []string{"logging.level", "logging.format"},
		},
		{
			name: "invalid sampling rate",
			config: &RouterConfig{
				Tracing: TracingConfig{Enabled: true, SamplingRate: 1.5},
			},
			wantPaths: []string{"tracing.samplingRate"},
		},
		{
			name: "invalid routes",
			config: &RouterConfig{
				Routes: RouteTable{
					{Key: "empty", Route: RouteSpec{}},
					{Key: 3, Route: RouteSpec{Path: "/x", Methods: []string{"PATCH"}}},
					{Key: nil, Route: RouteSpec{Path: "/y/{id}", Patterns: map[string]string{"id": ""}}},
				},
			},
			wantPaths: []string{"routes[empty].path", "routes[1].methods[0]", "routes[2].patterns.id"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateConfig(tt.config)
			if len(tt.wantPaths) == 0 {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			var verrs ValidationErrors
			require.True(t, errors.As(err, &verrs))

			paths := make([]string, 0, len(verrs))
			for _, e := range verrs {
				paths = append(paths, e.Path)
			}
			assert.ElementsMatch(t, tt.wantPaths, paths)
		})
	}
}

func TestValidationErrors_Error(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "no validation errors", ValidationErrors{}.Error())

	single := ValidationErrors{{Path: "routes[0].path", Message: "path is required"}}
	assert.Equal(t, "routes[0].path: path is required", single.Error())

	multi := ValidationErrors{
		{Path: "a", Message: "first"},
		{Message: "second"},
	}
	assert.Equal(t, "2 validation errors:\n  1. a: first\n  2. second\n", multi.Error())
	assert.True(t, multi.HasErrors())
}
