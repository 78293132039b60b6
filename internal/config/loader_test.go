package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleRoutesYAML = `
defaultPattern: "[^/]+"
eagerCompile: true
logging:
  level: debug
  format: console
routes:
  - name: user.show
    path: /users/{id:\d+}
    methods: [GET]
    defaults:
      controller: users
      action: show
  - path: /about
`

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "routes.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleRoutesYAML), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "[^/]+", cfg.DefaultPattern)
	assert.True(t, cfg.EagerCompile)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	require.Len(t, cfg.Routes, 2)
	assert.Equal(t, "user.show", cfg.Routes[0].Key)
	assert.Equal(t, "/about", cfg.Routes[1].Route.Path)
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	badYAML := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(badYAML, []byte("routes: [\n"), 0o600))

	tests := []struct {
		name    string
		path    string
		message string
	}{
		{name: "missing file", path: filepath.Join(dir, "missing.yaml"), message: "failed to stat"},
		{name: "directory", path: dir, message: "is a directory"},
		{name: "invalid yaml", path: badYAML, message: "failed to parse YAML"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg, err := LoadConfig(tt.path)
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestLoadConfigFromReader(t *testing.T) {
	t.Parallel()

	cfg, err := LoadConfigFromReader(strings.NewReader(sampleRoutesYAML))
	require.NoError(t, err)
	assert.Len(t, cfg.Routes, 2)
}

func TestParseConfig_AppliesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := ParseConfig([]byte("routes: []"))
	require.NoError(t, err)

	assert.Equal(t, DefaultLogLevel, cfg.Logging.Level)
	assert.Equal(t, DefaultLogFormat, cfg.Logging.Format)
}

func TestSubstituteEnvVars(t *testing.T) {
	t.Setenv("AVAROUTE_TEST_PREFIX", "/api")

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "set variable", input: "path: ${AVAROUTE_TEST_PREFIX}/users", expected: "path: /api/users"},
		{name: "default used", input: "level: ${AVAROUTE_TEST_UNSET:-warn}", expected: "level: warn"},
		{name: "unset without default", input: "x: ${AVAROUTE_TEST_UNSET}", expected: "x: "},
		{name: "escaped dollar", input: "pattern: '^a$$'", expected: "pattern: '^a$'"},
		{name: "placeholder untouched", input: "path: /users/{id}", expected: "path: /users/{id}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, substituteEnvVars(tt.input))
		})
	}
}

func TestParseConfig_EnvSubstitution(t *testing.T) {
	t.Setenv("AVAROUTE_TEST_LEVEL", "error")

	cfg, err := ParseConfig([]byte("logging:\n  level: ${AVAROUTE_TEST_LEVEL}\n"))
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.Logging.Level)
}
