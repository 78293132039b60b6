// Package config provides configuration loading for the route matching engine.
package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Default configuration values.
const (
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "json"
	DefaultSamplingRate = 1.0
)

// RouterConfig is the root of a routes file.
type RouterConfig struct {
	// DefaultPattern is used for placeholders written without a pattern.
	// Empty selects the router default, a single path segment.
	DefaultPattern string `yaml:"defaultPattern,omitempty" json:"defaultPattern,omitempty"`

	// EagerCompile compiles every route pattern while loading instead of
	// on first use, so a bad pattern fails the load.
	EagerCompile bool `yaml:"eagerCompile,omitempty" json:"eagerCompile,omitempty"`

	Logging LoggingConfig `yaml:"logging,omitempty" json:"logging,omitempty"`
	Tracing TracingConfig `yaml:"tracing,omitempty" json:"tracing,omitempty"`
	Routes  RouteTable    `yaml:"routes,omitempty" json:"routes,omitempty"`
}

// LoggingConfig configures the logger.
type LoggingConfig struct {
	Level  string `yaml:"level,omitempty" json:"level,omitempty"`
	Format string `yaml:"format,omitempty" json:"format,omitempty"`
}

// TracingConfig configures OpenTelemetry tracing.
type TracingConfig struct {
	Enabled      bool    `yaml:"enabled,omitempty" json:"enabled,omitempty"`
	ServiceName  string  `yaml:"serviceName,omitempty" json:"serviceName,omitempty"`
	OTLPEndpoint string  `yaml:"otlpEndpoint,omitempty" json:"otlpEndpoint,omitempty"`
	SamplingRate float64 `yaml:"samplingRate,omitempty" json:"samplingRate,omitempty"`
}

// RouteSpec describes one route to register.
type RouteSpec struct {
	Name     string            `yaml:"name,omitempty" json:"name,omitempty"`
	Path     string            `yaml:"path" json:"path"`
	Methods  []string          `yaml:"methods,omitempty" json:"methods,omitempty"`
	Defaults map[string]string `yaml:"defaults,omitempty" json:"defaults,omitempty"`

	// Patterns sets the pattern of placeholders written as {name}.
	Patterns map[string]string `yaml:"patterns,omitempty" json:"patterns,omitempty"`
}

// RouteEntry is a route and the key it is registered under. Key is a
// string name, an integer, nil, or whatever scalar the file used; the
// registry decides which key types it accepts.
type RouteEntry struct {
	Key   any
	Route RouteSpec
}

// RouteTable is the ordered list of routes of a routes file. In YAML it is
// either a sequence of routes, named by their name field, or a mapping
// from key to route.
type RouteTable []RouteEntry

// UnmarshalYAML implements yaml.Unmarshaler.
func (t *RouteTable) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		table := make(RouteTable, 0, len(node.Content))
		for _, item := range node.Content {
			var spec RouteSpec
			if err := item.Decode(&spec); err != nil {
				return err
			}
			var key any
			if spec.Name != "" {
				key = spec.Name
			}
			table = append(table, RouteEntry{Key: key, Route: spec})
		}
		*t = table

	case yaml.MappingNode:
		table := make(RouteTable, 0, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			var key any
			if err := node.Content[i].Decode(&key); err != nil {
				return err
			}
			var spec RouteSpec
			if err := node.Content[i+1].Decode(&spec); err != nil {
				return err
			}
			if name, ok := key.(string); ok {
				spec.Name = name
			}
			table = append(table, RouteEntry{Key: key, Route: spec})
		}
		*t = table

	case yaml.ScalarNode:
		if node.Tag != "!!null" {
			return fmt.Errorf("line %d: routes must be a sequence or a mapping", node.Line)
		}
		*t = nil

	default:
		return fmt.Errorf("line %d: routes must be a sequence or a mapping", node.Line)
	}

	return nil
}

// DefaultConfig returns a configuration with no routes.
func DefaultConfig() *RouterConfig {
	cfg := &RouterConfig{}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills unset logging and tracing fields.
func (c *RouterConfig) ApplyDefaults() {
	if c.Logging.Level == "" {
		c.Logging.Level = DefaultLogLevel
	}
	if c.Logging.Format == "" {
		c.Logging.Format = DefaultLogFormat
	}
	if c.Tracing.Enabled && c.Tracing.SamplingRate == 0 {
		c.Tracing.SamplingRate = DefaultSamplingRate
	}
}
