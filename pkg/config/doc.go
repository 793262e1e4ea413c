// Package config provides configuration management for the formula engine
// and its tooling.
//
// This package handles loading, validating, and managing configuration from
// YAML files with environment variable overrides.
//
// # Configuration Loading
//
// Configuration can be loaded in two ways:
//
//  1. From a YAML file only:
//     cfg, err := config.LoadConfig("formula.yaml")
//
//  2. From a YAML file with environment variable overrides:
//     cfg, err := config.LoadConfigWithEnvOverrides("formula.yaml")
//
// # Environment Variable Overrides
//
// Environment variables follow the naming convention FORMULA_SECTION_FIELD.
// For example:
//
//   - FORMULA_ENGINE_MAX_DEPTH overrides engine.max_depth
//   - FORMULA_ENGINE_EXTRA_VARIABLES overrides engine.extra_variables (comma-separated)
//   - FORMULA_LIBRARY_PATH overrides library.path
//   - FORMULA_TELEMETRY_LOGGING_LEVEL overrides telemetry.logging.level
//
// Environment variables always take precedence over file-based configuration.
//
// # Configuration Precedence
//
// Configuration values are applied in the following order (later overrides earlier):
//
//  1. Default values (NewDefaultConfig)
//  2. YAML file values
//  3. Environment variable overrides
//
// # Example
//
//	engine:
//	  max_depth: 50
//	  max_complexity: 100
//	  strict: false
//	  extra_variables: [shift_premium]
//	library:
//	  path: ./formulas
//	  watch: true
//	  debounce: 100ms
//	telemetry:
//	  logging:
//	    level: info
//	    format: json
//	    redact_values: true
//	  metrics:
//	    enabled: true
//	    namespace: payroll
//	    subsystem: formula
//
// # Global Configuration
//
// Publish stores the configuration the CLI loaded so that the shared engine
// in package formula picks it up; Published reads it back. Prefer passing a
// *Config explicitly where possible.
package config
