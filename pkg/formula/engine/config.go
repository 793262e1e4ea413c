package engine

import (
	"errors"
	"fmt"

	"github.com/kishan-gau/recruitiq-sub007/pkg/config"
	"github.com/kishan-gau/recruitiq-sub007/pkg/formula/parser"
	"github.com/kishan-gau/recruitiq-sub007/pkg/formula/validator"
	"github.com/kishan-gau/recruitiq-sub007/pkg/formula/variables"
)

// ErrInvalidConfig is returned by New for an unusable configuration.
var ErrInvalidConfig = errors.New("invalid engine configuration")

// DefaultSampleValue binds whitelisted variables that have no sample value
// when building preview scenarios.
const DefaultSampleValue = 1

// Config contains configuration for an Engine.
type Config struct {
	// Whitelist is the set of variables formulas may reference.
	// Default: variables.Default().
	Whitelist *variables.Whitelist

	// SampleValues override the built-in sample bindings used by Test.
	SampleValues map[string]float64

	// Validation holds the validator limits applied by Validate (when no
	// options are passed), Execute, Calculate and Test.
	Validation validator.Options

	// MaxSourceLength is the longest formula text accepted, in bytes.
	// Default: parser.DefaultMaxSourceLength.
	MaxSourceLength int
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() *Config {
	return &Config{
		Whitelist:       variables.Default(),
		Validation:      validator.DefaultOptions(),
		MaxSourceLength: parser.DefaultMaxSourceLength,
	}
}

// FromConfig builds an engine configuration from the application config.
func FromConfig(cfg config.EngineConfig) *Config {
	c := DefaultConfig()
	if len(cfg.ExtraVariables) > 0 {
		c.Whitelist = c.Whitelist.Extend(cfg.ExtraVariables...)
	}
	if len(cfg.SampleValues) > 0 {
		c.SampleValues = make(map[string]float64, len(cfg.SampleValues))
		for k, v := range cfg.SampleValues {
			c.SampleValues[k] = v
		}
	}
	c.Validation.Strict = cfg.Strict
	if cfg.MaxDepth > 0 {
		c.Validation.MaxDepth = cfg.MaxDepth
	}
	if cfg.MaxComplexity > 0 {
		c.Validation.MaxComplexity = cfg.MaxComplexity
	}
	if cfg.MaxSourceLength > 0 {
		c.MaxSourceLength = cfg.MaxSourceLength
	}
	return c
}

// Validate validates the engine configuration.
func (c *Config) Validate() error {
	if c.MaxSourceLength < 0 {
		return fmt.Errorf("%w: max source length must not be negative", ErrInvalidConfig)
	}
	if c.Validation.MaxDepth < 0 {
		return fmt.Errorf("%w: max depth must not be negative", ErrInvalidConfig)
	}
	if c.Validation.MaxComplexity < 0 {
		return fmt.Errorf("%w: max complexity must not be negative", ErrInvalidConfig)
	}

	whitelist := c.whitelist()
	for name := range c.SampleValues {
		if !whitelist.Contains(name) {
			return fmt.Errorf("%w: sample value for unknown variable %q", ErrInvalidConfig, name)
		}
	}
	return nil
}

// WithWhitelist sets the variable whitelist.
func (c *Config) WithWhitelist(w *variables.Whitelist) *Config {
	c.Whitelist = w
	return c
}

// WithStrict enables or disables strict validation.
func (c *Config) WithStrict(strict bool) *Config {
	c.Validation.Strict = strict
	return c
}

// WithMaxDepth sets the maximum tree depth.
func (c *Config) WithMaxDepth(max int) *Config {
	c.Validation.MaxDepth = max
	return c
}

// WithMaxComplexity sets the complexity warning threshold.
func (c *Config) WithMaxComplexity(max int) *Config {
	c.Validation.MaxComplexity = max
	return c
}

// WithSampleValues sets the sample bindings used by Test. The map is copied.
func (c *Config) WithSampleValues(values map[string]float64) *Config {
	c.SampleValues = make(map[string]float64, len(values))
	for k, v := range values {
		c.SampleValues[k] = v
	}
	return c
}

func (c *Config) whitelist() *variables.Whitelist {
	if c.Whitelist == nil {
		return variables.Default()
	}
	return c.Whitelist
}

// samples returns the preview bindings: built-in samples, then configured
// overrides, then DefaultSampleValue for any whitelisted name still unbound.
func (c *Config) samples() map[string]float64 {
	whitelist := c.whitelist()
	out := make(map[string]float64, whitelist.Len())

	builtin := variables.SampleValues()
	for _, name := range whitelist.Names() {
		if v, ok := builtin[name]; ok {
			out[name] = v
		} else {
			out[name] = DefaultSampleValue
		}
	}
	for name, v := range c.SampleValues {
		out[name] = v
	}
	return out
}
