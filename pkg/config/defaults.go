package config

import "time"

// Default values for configuration fields.
const (
	// Engine defaults
	DefaultMaxDepth        = 50
	DefaultMaxComplexity   = 100
	DefaultStrict          = false
	DefaultMaxSourceLength = 4096

	// Library defaults
	DefaultLibraryPath     = "./formulas"
	DefaultLibraryWatch    = false
	DefaultLibraryDebounce = 100 * time.Millisecond

	// Logging defaults
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "json"
	DefaultRedactValues = true

	// Metrics defaults
	DefaultMetricsEnabled   = true
	DefaultMetricsPath      = "/metrics"
	DefaultMetricsNamespace = "payroll"
	DefaultMetricsSubsystem = "formula"

	// Tracing defaults
	DefaultTracingEnabled     = false
	DefaultTracingServiceName = "payroll-formula"
	DefaultTracingEndpoint    = "localhost:4317"
	DefaultTracingSampler     = "always"
	DefaultTracingSampleRatio = 1.0
	DefaultTracingTimeout     = 10 * time.Second
)

// DefaultDurationBuckets covers sub-microsecond evaluations up to slow,
// deeply nested formulas.
var DefaultDurationBuckets = []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05}

// NewDefaultConfig returns a configuration with every field set to its
// default. Boolean fields whose default is true can only be expressed this
// way, so loaders decode YAML on top of this value.
func NewDefaultConfig() *Config {
	cfg := &Config{
		Engine: EngineConfig{
			Strict: DefaultStrict,
		},
		Library: LibraryConfig{
			Watch: DefaultLibraryWatch,
		},
		Telemetry: TelemetryConfig{
			Logging: LoggingConfig{
				RedactValues: DefaultRedactValues,
			},
			Metrics: MetricsConfig{
				Enabled: DefaultMetricsEnabled,
			},
			Tracing: TracingConfig{
				Enabled: DefaultTracingEnabled,
			},
		},
	}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults applies default values to a Config struct.
// It sets defaults for any fields that have zero values.
// This function is idempotent and safe to call multiple times.
func ApplyDefaults(cfg *Config) {
	// Engine defaults
	if cfg.Engine.MaxDepth == 0 {
		cfg.Engine.MaxDepth = DefaultMaxDepth
	}
	if cfg.Engine.MaxComplexity == 0 {
		cfg.Engine.MaxComplexity = DefaultMaxComplexity
	}
	if cfg.Engine.MaxSourceLength == 0 {
		cfg.Engine.MaxSourceLength = DefaultMaxSourceLength
	}

	// Library defaults
	if cfg.Library.Path == "" {
		cfg.Library.Path = DefaultLibraryPath
	}
	if cfg.Library.Debounce == 0 {
		cfg.Library.Debounce = DefaultLibraryDebounce
	}

	// Logging defaults
	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLogLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLogFormat
	}

	// Metrics defaults
	if cfg.Telemetry.Metrics.Path == "" {
		cfg.Telemetry.Metrics.Path = DefaultMetricsPath
	}
	if cfg.Telemetry.Metrics.Namespace == "" {
		cfg.Telemetry.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Telemetry.Metrics.Subsystem == "" {
		cfg.Telemetry.Metrics.Subsystem = DefaultMetricsSubsystem
	}
	if len(cfg.Telemetry.Metrics.DurationBuckets) == 0 {
		cfg.Telemetry.Metrics.DurationBuckets = append([]float64(nil), DefaultDurationBuckets...)
	}

	// Tracing defaults
	if cfg.Telemetry.Tracing.ServiceName == "" {
		cfg.Telemetry.Tracing.ServiceName = DefaultTracingServiceName
	}
	if cfg.Telemetry.Tracing.Endpoint == "" {
		cfg.Telemetry.Tracing.Endpoint = DefaultTracingEndpoint
	}
	if cfg.Telemetry.Tracing.Sampler == "" {
		cfg.Telemetry.Tracing.Sampler = DefaultTracingSampler
	}
	if cfg.Telemetry.Tracing.SampleRatio == 0 {
		cfg.Telemetry.Tracing.SampleRatio = DefaultTracingSampleRatio
	}
	if cfg.Telemetry.Tracing.Timeout == 0 {
		cfg.Telemetry.Tracing.Timeout = DefaultTracingTimeout
	}
}
