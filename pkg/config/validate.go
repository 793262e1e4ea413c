package config

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/kishan-gau/recruitiq-sub007/pkg/formula/ast"
)

// FieldError represents a validation error for a specific configuration field.
type FieldError struct {
	// Field is the dotted path to the configuration field (e.g., "engine.max_depth").
	Field string

	// Message is a human-readable error message.
	Message string
}

// Error returns the error message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError represents one or more validation errors in a configuration.
// It implements the error interface and provides access to all field errors.
type ValidationError struct {
	// Errors contains all validation errors found in the configuration.
	Errors []FieldError
}

// Error returns a formatted string containing all validation errors.
func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("configuration validation failed with %d errors:\n", len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

// Upper bounds that keep a misconfigured engine from accepting pathological
// formulas.
const (
	maxDepthLimit        = 256
	maxSourceLengthLimit = 1 << 20
)

var (
	identifierRe   = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	metricNameRe   = regexp.MustCompile(`^[a-zA-Z_:][a-zA-Z0-9_:]*$`)
	validLevels    = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	validLogFormat = map[string]bool{"json": true, "text": true}
	validSamplers  = map[string]bool{"always": true, "never": true, "ratio": true}
)

// Validate validates the entire configuration and returns a ValidationError
// if any validation rules fail. It returns nil if the configuration is valid.
// All validation errors are collected and returned together.
func Validate(cfg *Config) error {
	var errs []FieldError

	errs = append(errs, validateEngine(&cfg.Engine)...)
	errs = append(errs, validateLibrary(&cfg.Library)...)
	errs = append(errs, validateTelemetry(&cfg.Telemetry)...)

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}

	return nil
}

// validateEngine validates engine configuration.
func validateEngine(cfg *EngineConfig) []FieldError {
	var errs []FieldError

	if cfg.MaxDepth <= 0 || cfg.MaxDepth > maxDepthLimit {
		errs = append(errs, FieldError{
			Field:   "engine.max_depth",
			Message: fmt.Sprintf("max depth must be between 1 and %d", maxDepthLimit),
		})
	}
	if cfg.MaxComplexity <= 0 {
		errs = append(errs, FieldError{
			Field:   "engine.max_complexity",
			Message: "max complexity must be positive",
		})
	}
	if cfg.MaxSourceLength <= 0 || cfg.MaxSourceLength > maxSourceLengthLimit {
		errs = append(errs, FieldError{
			Field:   "engine.max_source_length",
			Message: fmt.Sprintf("max source length must be between 1 and %d bytes", maxSourceLengthLimit),
		})
	}

	for i, name := range cfg.ExtraVariables {
		if msg := checkVariableName(name); msg != "" {
			errs = append(errs, FieldError{
				Field:   fmt.Sprintf("engine.extra_variables[%d]", i),
				Message: msg,
			})
		}
	}
	for name := range cfg.SampleValues {
		if msg := checkVariableName(name); msg != "" {
			errs = append(errs, FieldError{
				Field:   "engine.sample_values." + name,
				Message: msg,
			})
		}
	}

	return errs
}

// checkVariableName returns a message when name cannot be used as a formula
// variable.
func checkVariableName(name string) string {
	if !identifierRe.MatchString(name) {
		return fmt.Sprintf("invalid variable name %q: must match [A-Za-z_][A-Za-z0-9_]*", name)
	}
	if _, ok := ast.LookupFunction(name); ok {
		return fmt.Sprintf("invalid variable name %q: reserved function name", name)
	}
	switch ast.Operator(name) {
	case ast.OpAnd, ast.OpOr, ast.OpNot:
		return fmt.Sprintf("invalid variable name %q: reserved operator", name)
	}
	return ""
}

// validateLibrary validates formula library configuration.
func validateLibrary(cfg *LibraryConfig) []FieldError {
	var errs []FieldError

	if cfg.Watch && cfg.Path == "" {
		errs = append(errs, FieldError{
			Field:   "library.path",
			Message: "library path is required when watch is enabled",
		})
	}
	if cfg.Debounce < 0 {
		errs = append(errs, FieldError{
			Field:   "library.debounce",
			Message: "debounce must be non-negative",
		})
	}

	return errs
}

// validateTelemetry validates telemetry configuration.
func validateTelemetry(cfg *TelemetryConfig) []FieldError {
	var errs []FieldError

	if cfg.Logging.Level == "" {
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.level",
			Message: "logging level is required",
		})
	} else if !validLevels[cfg.Logging.Level] {
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.level",
			Message: fmt.Sprintf("invalid logging level %q: must be 'debug', 'info', 'warn', or 'error'", cfg.Logging.Level),
		})
	}

	if cfg.Logging.Format == "" {
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.format",
			Message: "logging format is required",
		})
	} else if !validLogFormat[cfg.Logging.Format] {
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.format",
			Message: fmt.Sprintf("invalid logging format %q: must be 'json' or 'text'", cfg.Logging.Format),
		})
	}

	for i, p := range cfg.Logging.RedactPatterns {
		if p.Name == "" {
			errs = append(errs, FieldError{
				Field:   fmt.Sprintf("telemetry.logging.redact_patterns[%d].name", i),
				Message: "pattern name is required",
			})
		}
		if _, err := regexp.Compile(p.Pattern); err != nil || p.Pattern == "" {
			errs = append(errs, FieldError{
				Field:   fmt.Sprintf("telemetry.logging.redact_patterns[%d].pattern", i),
				Message: fmt.Sprintf("invalid regular expression %q", p.Pattern),
			})
		}
	}

	if cfg.Metrics.Enabled {
		if !strings.HasPrefix(cfg.Metrics.Path, "/") {
			errs = append(errs, FieldError{
				Field:   "telemetry.metrics.path",
				Message: "metrics path must start with '/'",
			})
		}
		if !metricNameRe.MatchString(cfg.Metrics.Namespace) {
			errs = append(errs, FieldError{
				Field:   "telemetry.metrics.namespace",
				Message: fmt.Sprintf("invalid metric namespace %q", cfg.Metrics.Namespace),
			})
		}
		if !metricNameRe.MatchString(cfg.Metrics.Subsystem) {
			errs = append(errs, FieldError{
				Field:   "telemetry.metrics.subsystem",
				Message: fmt.Sprintf("invalid metric subsystem %q", cfg.Metrics.Subsystem),
			})
		}
		for i := 1; i < len(cfg.Metrics.DurationBuckets); i++ {
			if cfg.Metrics.DurationBuckets[i] <= cfg.Metrics.DurationBuckets[i-1] {
				errs = append(errs, FieldError{
					Field:   "telemetry.metrics.duration_buckets",
					Message: "buckets must be in strictly increasing order",
				})
				break
			}
		}
	}

	if cfg.Tracing.Enabled {
		if cfg.Tracing.Endpoint == "" {
			errs = append(errs, FieldError{
				Field:   "telemetry.tracing.endpoint",
				Message: "endpoint is required when tracing is enabled",
			})
		}
		if !validSamplers[cfg.Tracing.Sampler] {
			errs = append(errs, FieldError{
				Field:   "telemetry.tracing.sampler",
				Message: fmt.Sprintf("invalid sampler %q: must be 'always', 'never', or 'ratio'", cfg.Tracing.Sampler),
			})
		}
		if cfg.Tracing.SampleRatio < 0 || cfg.Tracing.SampleRatio > 1 {
			errs = append(errs, FieldError{
				Field:   "telemetry.tracing.sample_ratio",
				Message: "sample ratio must be between 0.0 and 1.0",
			})
		}
	}

	return errs
}
