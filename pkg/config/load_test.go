package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "formula.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestLoadConfig_ValidFile(t *testing.T) {
	path := writeConfig(t, `
engine:
  max_depth: 30
  max_complexity: 80
  strict: true
  extra_variables: [shift_premium, night_hours]
  sample_values:
    shift_premium: 2.5
library:
  path: ./catalogs
  watch: true
  debounce: 250ms
telemetry:
  logging:
    level: debug
    format: text
    redact_values: false
  metrics:
    enabled: false
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Engine.MaxDepth != 30 {
		t.Errorf("expected max depth 30, got %d", cfg.Engine.MaxDepth)
	}
	if cfg.Engine.MaxComplexity != 80 {
		t.Errorf("expected max complexity 80, got %d", cfg.Engine.MaxComplexity)
	}
	if !cfg.Engine.Strict {
		t.Error("expected strict mode")
	}
	if got := strings.Join(cfg.Engine.ExtraVariables, ","); got != "shift_premium,night_hours" {
		t.Errorf("expected extra variables, got %q", got)
	}
	if cfg.Engine.SampleValues["shift_premium"] != 2.5 {
		t.Errorf("expected sample value 2.5, got %v", cfg.Engine.SampleValues["shift_premium"])
	}
	if cfg.Library.Path != "./catalogs" || !cfg.Library.Watch {
		t.Errorf("unexpected library config: %+v", cfg.Library)
	}
	if cfg.Library.Debounce != 250*time.Millisecond {
		t.Errorf("expected debounce 250ms, got %v", cfg.Library.Debounce)
	}
	if cfg.Telemetry.Logging.Level != "debug" || cfg.Telemetry.Logging.Format != "text" {
		t.Errorf("unexpected logging config: %+v", cfg.Telemetry.Logging)
	}
	if cfg.Telemetry.Logging.RedactValues {
		t.Error("expected redact_values false to be respected")
	}
	if cfg.Telemetry.Metrics.Enabled {
		t.Error("expected metrics disabled")
	}

	// Defaults fill what the file leaves out
	if cfg.Engine.MaxSourceLength != DefaultMaxSourceLength {
		t.Errorf("expected default max source length, got %d", cfg.Engine.MaxSourceLength)
	}
	if cfg.Telemetry.Metrics.Namespace != DefaultMetricsNamespace {
		t.Errorf("expected default namespace, got %q", cfg.Telemetry.Metrics.Namespace)
	}
}

func TestLoadConfig_EmptyFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, ""))
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Engine.MaxDepth != DefaultMaxDepth {
		t.Errorf("expected max depth %d, got %d", DefaultMaxDepth, cfg.Engine.MaxDepth)
	}
	if !cfg.Telemetry.Logging.RedactValues {
		t.Error("expected redact_values to default to true")
	}
	if !cfg.Telemetry.Metrics.Enabled {
		t.Error("expected metrics to default to enabled")
	}
	if cfg.Library.Debounce != DefaultLibraryDebounce {
		t.Errorf("expected debounce %v, got %v", DefaultLibraryDebounce, cfg.Library.Debounce)
	}
	if cfg.Telemetry.Tracing.Enabled {
		t.Error("expected tracing to default to disabled")
	}
	if cfg.Telemetry.Tracing.Sampler != DefaultTracingSampler || cfg.Telemetry.Tracing.SampleRatio != DefaultTracingSampleRatio {
		t.Errorf("unexpected tracing sampler defaults: %+v", cfg.Telemetry.Tracing)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
		if err == nil || !strings.Contains(err.Error(), "failed to read configuration file") {
			t.Errorf("expected read error, got %v", err)
		}
	})

	t.Run("invalid yaml", func(t *testing.T) {
		_, err := LoadConfig(writeConfig(t, "engine: [unclosed"))
		if err == nil || !strings.Contains(err.Error(), "failed to parse configuration") {
			t.Errorf("expected parse error, got %v", err)
		}
	})

	t.Run("validation failure", func(t *testing.T) {
		_, err := LoadConfig(writeConfig(t, "engine:\n  max_depth: -1\n"))
		var verr ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if verr.Errors[0].Field != "engine.max_depth" {
			t.Errorf("expected engine.max_depth error, got %v", verr.Errors)
		}
	})
}

func TestLoadConfigWithEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
engine:
  max_depth: 30
library:
  path: ./catalogs
`)

	t.Setenv("FORMULA_ENGINE_MAX_DEPTH", "40")
	t.Setenv("FORMULA_ENGINE_STRICT", "true")
	t.Setenv("FORMULA_ENGINE_EXTRA_VARIABLES", "shift_premium, ,night_hours")
	t.Setenv("FORMULA_LIBRARY_DEBOUNCE", "2s")
	t.Setenv("FORMULA_TELEMETRY_LOGGING_LEVEL", "warn")
	t.Setenv("FORMULA_TELEMETRY_METRICS_ENABLED", "false")
	t.Setenv("FORMULA_ENGINE_MAX_COMPLEXITY", "not-a-number")

	cfg, err := LoadConfigWithEnvOverrides(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Engine.MaxDepth != 40 {
		t.Errorf("expected env max depth 40, got %d", cfg.Engine.MaxDepth)
	}
	if !cfg.Engine.Strict {
		t.Error("expected env strict mode")
	}
	if got := strings.Join(cfg.Engine.ExtraVariables, ","); got != "shift_premium,night_hours" {
		t.Errorf("expected env extra variables, got %q", got)
	}
	if cfg.Library.Path != "./catalogs" {
		t.Errorf("expected file library path, got %q", cfg.Library.Path)
	}
	if cfg.Library.Debounce != 2*time.Second {
		t.Errorf("expected env debounce 2s, got %v", cfg.Library.Debounce)
	}
	if cfg.Telemetry.Logging.Level != "warn" {
		t.Errorf("expected env level warn, got %q", cfg.Telemetry.Logging.Level)
	}
	if cfg.Telemetry.Metrics.Enabled {
		t.Error("expected env to disable metrics")
	}
	if cfg.Engine.MaxComplexity != DefaultMaxComplexity {
		t.Errorf("expected malformed env value to be ignored, got %d", cfg.Engine.MaxComplexity)
	}
}

func TestLoadConfigWithEnvOverrides_NoFile(t *testing.T) {
	t.Setenv("FORMULA_LIBRARY_PATH", "/srv/formulas")

	cfg, err := LoadConfigWithEnvOverrides("")
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Library.Path != "/srv/formulas" {
		t.Errorf("expected env library path, got %q", cfg.Library.Path)
	}
}

func TestLoadConfigWithEnvOverrides_InvalidOverride(t *testing.T) {
	t.Setenv("FORMULA_TELEMETRY_LOGGING_FORMAT", "xml")

	_, err := LoadConfigWithEnvOverrides("")
	if err == nil || !strings.Contains(err.Error(), "after environment overrides") {
		t.Errorf("expected validation error after overrides, got %v", err)
	}
}
