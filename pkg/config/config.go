package config

import "time"

// Config is the root configuration structure for the formula engine.
// It contains the engine limits, the formula library location and the
// telemetry settings.
type Config struct {
	// Engine contains the parser and validator limits and the variable
	// whitelist extensions.
	Engine EngineConfig `yaml:"engine"`

	// Library contains the location of the YAML formula catalog and the
	// settings for watching it.
	Library LibraryConfig `yaml:"library"`

	// Telemetry contains logging, metrics and tracing configuration.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// EngineConfig contains configuration for the formula engine.
type EngineConfig struct {
	// MaxDepth is the deepest formula tree accepted by the validator.
	// Default: 50
	MaxDepth int `yaml:"max_depth"`

	// MaxComplexity is the weighted size above which the validator warns.
	// Default: 100
	MaxComplexity int `yaml:"max_complexity"`

	// Strict enables warnings for division by runtime values.
	// Default: false
	Strict bool `yaml:"strict"`

	// MaxSourceLength is the longest formula text accepted, in bytes.
	// Default: 4096
	MaxSourceLength int `yaml:"max_source_length"`

	// ExtraVariables are added to the built-in payroll variable whitelist.
	ExtraVariables []string `yaml:"extra_variables"`

	// SampleValues override or extend the sample bindings used for
	// scenario previews.
	SampleValues map[string]float64 `yaml:"sample_values"`
}

// LibraryConfig contains configuration for the formula library.
type LibraryConfig struct {
	// Path is a catalog file or a directory of catalog files.
	// Default: "./formulas"
	Path string `yaml:"path"`

	// Watch enables reloading the library when files change.
	// Default: false
	Watch bool `yaml:"watch"`

	// Debounce delays reloads until changes settle.
	// Default: 100ms
	Debounce time.Duration `yaml:"debounce"`
}

// TelemetryConfig contains configuration for observability.
type TelemetryConfig struct {
	// Logging contains logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains metrics collection configuration.
	Metrics MetricsConfig `yaml:"metrics"`

	// Tracing contains OpenTelemetry tracing configuration.
	Tracing TracingConfig `yaml:"tracing"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level to emit.
	// Options: "debug", "info", "warn", "error"
	// Default: "info"
	Level string `yaml:"level"`

	// Format controls the log output format.
	// Options: "json", "text"
	// Default: "json"
	Format string `yaml:"format"`

	// AddSource includes file and line number in log entries.
	// Default: false
	AddSource bool `yaml:"add_source"`

	// RedactValues masks payroll amounts in log fields.
	// Default: true
	RedactValues bool `yaml:"redact_values"`

	// SensitiveKeys are extra log keys whose values are always masked.
	SensitiveKeys []string `yaml:"sensitive_keys"`

	// RedactPatterns contains custom redaction patterns for string values.
	RedactPatterns []RedactPattern `yaml:"redact_patterns"`
}

// RedactPattern defines a custom redaction pattern.
type RedactPattern struct {
	// Name is a descriptive name for the pattern.
	Name string `yaml:"name"`

	// Pattern is the regular expression to match.
	Pattern string `yaml:"pattern"`

	// Replacement is the string to replace matches with.
	Replacement string `yaml:"replacement"`
}

// MetricsConfig contains metrics collection configuration.
type MetricsConfig struct {
	// Enabled controls whether metrics collection is active.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// Path is the HTTP path for the Prometheus metrics endpoint.
	// Default: "/metrics"
	Path string `yaml:"path"`

	// Namespace is the metric name prefix.
	// Default: "payroll"
	Namespace string `yaml:"namespace"`

	// Subsystem is the metric subsystem name.
	// Default: "formula"
	Subsystem string `yaml:"subsystem"`

	// DurationBuckets are the histogram buckets for execution duration,
	// in seconds.
	DurationBuckets []float64 `yaml:"duration_buckets"`
}

// TracingConfig contains OpenTelemetry tracing configuration.
type TracingConfig struct {
	// Enabled controls whether spans are exported.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// ServiceName is reported as the service.name resource attribute.
	// Default: "payroll-formula"
	ServiceName string `yaml:"service_name"`

	// Endpoint is the OTLP gRPC collector address.
	// Default: "localhost:4317"
	Endpoint string `yaml:"endpoint"`

	// Sampler is the sampling strategy.
	// Options: "always", "never", "ratio"
	// Default: "always"
	Sampler string `yaml:"sampler"`

	// SampleRatio is the fraction of traces sampled by the "ratio" sampler.
	// Default: 1.0
	SampleRatio float64 `yaml:"sample_ratio"`

	// Insecure disables TLS to the collector.
	// Default: false
	Insecure bool `yaml:"insecure"`

	// Timeout bounds each export call.
	// Default: 10s
	Timeout time.Duration `yaml:"timeout"`
}
