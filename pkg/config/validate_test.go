package config

import (
	"errors"
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(*Config)
		wantField string
	}{
		{
			name:   "defaults are valid",
			modify: func(*Config) {},
		},
		{
			name:      "zero max depth",
			modify:    func(c *Config) { c.Engine.MaxDepth = 0 },
			wantField: "engine.max_depth",
		},
		{
			name:      "max depth above parser limit",
			modify:    func(c *Config) { c.Engine.MaxDepth = 1000 },
			wantField: "engine.max_depth",
		},
		{
			name:      "negative complexity",
			modify:    func(c *Config) { c.Engine.MaxComplexity = -5 },
			wantField: "engine.max_complexity",
		},
		{
			name:      "huge source length",
			modify:    func(c *Config) { c.Engine.MaxSourceLength = 1 << 30 },
			wantField: "engine.max_source_length",
		},
		{
			name:      "extra variable with dash",
			modify:    func(c *Config) { c.Engine.ExtraVariables = []string{"shift-premium"} },
			wantField: "engine.extra_variables[0]",
		},
		{
			name:      "extra variable shadows function",
			modify:    func(c *Config) { c.Engine.ExtraVariables = []string{"ok_name", "ROUND"} },
			wantField: "engine.extra_variables[1]",
		},
		{
			name:      "extra variable shadows operator",
			modify:    func(c *Config) { c.Engine.ExtraVariables = []string{"AND"} },
			wantField: "engine.extra_variables[0]",
		},
		{
			name:      "sample value with invalid name",
			modify:    func(c *Config) { c.Engine.SampleValues = map[string]float64{"2x": 1} },
			wantField: "engine.sample_values.2x",
		},
		{
			name: "watch without path",
			modify: func(c *Config) {
				c.Library.Watch = true
				c.Library.Path = ""
			},
			wantField: "library.path",
		},
		{
			name:      "negative debounce",
			modify:    func(c *Config) { c.Library.Debounce = -1 },
			wantField: "library.debounce",
		},
		{
			name:      "invalid level",
			modify:    func(c *Config) { c.Telemetry.Logging.Level = "trace" },
			wantField: "telemetry.logging.level",
		},
		{
			name:      "invalid format",
			modify:    func(c *Config) { c.Telemetry.Logging.Format = "console" },
			wantField: "telemetry.logging.format",
		},
		{
			name: "invalid redact pattern",
			modify: func(c *Config) {
				c.Telemetry.Logging.RedactPatterns = []RedactPattern{{Name: "iban", Pattern: "[A-Z"}}
			},
			wantField: "telemetry.logging.redact_patterns[0].pattern",
		},
		{
			name:      "metrics path without slash",
			modify:    func(c *Config) { c.Telemetry.Metrics.Path = "metrics" },
			wantField: "telemetry.metrics.path",
		},
		{
			name:      "invalid namespace",
			modify:    func(c *Config) { c.Telemetry.Metrics.Namespace = "pay-roll" },
			wantField: "telemetry.metrics.namespace",
		},
		{
			name:      "unsorted buckets",
			modify:    func(c *Config) { c.Telemetry.Metrics.DurationBuckets = []float64{0.1, 0.01} },
			wantField: "telemetry.metrics.duration_buckets",
		},
		{
			name: "unknown tracing sampler",
			modify: func(c *Config) {
				c.Telemetry.Tracing.Enabled = true
				c.Telemetry.Tracing.Sampler = "sometimes"
			},
			wantField: "telemetry.tracing.sampler",
		},
		{
			name: "tracing ratio out of range",
			modify: func(c *Config) {
				c.Telemetry.Tracing.Enabled = true
				c.Telemetry.Tracing.Sampler = "ratio"
				c.Telemetry.Tracing.SampleRatio = 1.5
			},
			wantField: "telemetry.tracing.sample_ratio",
		},
		{
			name: "tracing settings ignored when disabled",
			modify: func(c *Config) {
				c.Telemetry.Tracing.Sampler = "sometimes"
			},
		},
		{
			name: "metrics settings ignored when disabled",
			modify: func(c *Config) {
				c.Telemetry.Metrics.Enabled = false
				c.Telemetry.Metrics.Namespace = "pay-roll"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefaultConfig()
			tt.modify(cfg)

			err := Validate(cfg)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("expected valid config, got %v", err)
				}
				return
			}

			var verr ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			found := false
			for _, fe := range verr.Errors {
				if fe.Field == tt.wantField {
					found = true
				}
			}
			if !found {
				t.Errorf("expected error for %s, got %v", tt.wantField, verr.Errors)
			}
		})
	}
}

func TestValidationError_Error(t *testing.T) {
	single := ValidationError{Errors: []FieldError{{Field: "engine.max_depth", Message: "bad"}}}
	if got := single.Error(); got != "configuration validation failed: engine.max_depth: bad" {
		t.Errorf("unexpected message: %q", got)
	}

	multi := ValidationError{Errors: []FieldError{
		{Field: "a", Message: "x"},
		{Field: "b", Message: "y"},
	}}
	got := multi.Error()
	if !strings.Contains(got, "with 2 errors") || !strings.Contains(got, "  - b: y") {
		t.Errorf("unexpected message: %q", got)
	}
}

func TestApplyDefaults_Idempotent(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)
	first := *cfg
	ApplyDefaults(cfg)

	if cfg.Engine.MaxDepth != first.Engine.MaxDepth ||
		cfg.Engine.MaxSourceLength != first.Engine.MaxSourceLength ||
		cfg.Library != first.Library ||
		len(cfg.Telemetry.Metrics.DurationBuckets) != len(first.Telemetry.Metrics.DurationBuckets) {
		t.Error("ApplyDefaults is not idempotent")
	}
	if cfg.Engine.MaxDepth != DefaultMaxDepth || cfg.Telemetry.Metrics.Path != DefaultMetricsPath {
		t.Errorf("defaults not applied: %+v", cfg)
	}
	// Boolean defaults of true are not expressible on a zero Config
	if cfg.Telemetry.Metrics.Enabled {
		t.Error("ApplyDefaults must not flip booleans")
	}
}
