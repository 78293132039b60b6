package config

import (
	"fmt"
	"strings"

	"github.com/vyrodovalexey/avaroute/internal/observability"
)

// knownMethods are the method names a route may list.
var knownMethods = map[string]bool{
	"GET":    true,
	"HEAD":   true,
	"POST":   true,
	"PUT":    true,
	"DELETE": true,
	"ALL":    true,
	"*":      true,
}

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Path    string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	return e.Message
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d validation errors:\n", len(e))
	for i, err := range e {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, err.Error())
	}
	return sb.String()
}

// HasErrors returns true if there are validation errors.
func (e ValidationErrors) HasErrors() bool {
	return len(e) > 0
}

// Validator validates router configuration.
type Validator struct {
	errors ValidationErrors
}

// NewValidator creates a new configuration validator.
func NewValidator() *Validator {
	return &Validator{
		errors: make(ValidationErrors, 0),
	}
}

// ValidateConfig validates a router configuration.
func ValidateConfig(cfg *RouterConfig) error {
	return NewValidator().Validate(cfg)
}

// Validate validates the configuration and returns any errors.
// Template syntax is checked when routes are registered, not here.
func (v *Validator) Validate(cfg *RouterConfig) error {
	v.errors = make(ValidationErrors, 0)

	if cfg == nil {
		v.addError("", "configuration is nil")
		return v.errors
	}

	v.validateLogging(&cfg.Logging)
	v.validateTracing(&cfg.Tracing)
	v.validateRoutes(cfg.Routes)

	if v.errors.HasErrors() {
		return v.errors
	}
	return nil
}

func (v *Validator) validateLogging(logging *LoggingConfig) {
	if logging.Level != "" && !observability.ValidLevel(logging.Level) {
		v.addError("logging.level", fmt.Sprintf("unknown log level %q", logging.Level))
	}
	switch logging.Format {
	case "", "json", "console":
	default:
		v.addError("logging.format", "format must be json or console")
	}
}

func (v *Validator) validateTracing(tracing *TracingConfig) {
	if tracing.SamplingRate < 0 || tracing.SamplingRate > 1 {
		v.addError("tracing.samplingRate", "sampling rate must be between 0 and 1")
	}
}

func (v *Validator) validateRoutes(routes RouteTable) {
	for i, entry := range routes {
		path := fmt.Sprintf("routes[%d]", i)
		if name, ok := entry.Key.(string); ok && name != "" {
			path = fmt.Sprintf("routes[%s]", name)
		}

		if entry.Route.Path == "" {
			v.addError(path+".path", "path is required")
		}

		for j, method := range entry.Route.Methods {
			if !knownMethods[strings.ToUpper(strings.TrimSpace(method))] {
				v.addError(fmt.Sprintf("%s.methods[%d]", path, j),
					fmt.Sprintf("unsupported method %q", method))
			}
		}

		for name, pattern := range entry.Route.Patterns {
			if pattern == "" {
				v.addError(path+".patterns."+name, "pattern must not be empty")
			}
		}
	}
}

func (v *Validator) addError(path, message string) {
	v.errors = append(v.errors, ValidationError{Path: path, Message: message})
}
