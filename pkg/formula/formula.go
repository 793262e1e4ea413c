// Package formula evaluates payroll formulas such as
// "ROUND(base_salary / 260, 2)" against variable bindings.
//
// The functions here use a shared engine. It takes its limits and variable
// whitelist from the configuration published with config.Publish before its
// first use, and the defaults otherwise. Build an engine.Engine directly for
// custom whitelists, logging or metrics.
package formula

import (
	"sync"

	"github.com/kishan-gau/recruitiq-sub007/pkg/config"
	"github.com/kishan-gau/recruitiq-sub007/pkg/formula/ast"
	"github.com/kishan-gau/recruitiq-sub007/pkg/formula/engine"
)

var (
	defaultEngine     *engine.Engine
	defaultEngineErr  error
	defaultEngineOnce sync.Once
)

// Default returns the shared engine, building it on first use.
func Default() (*engine.Engine, error) {
	defaultEngineOnce.Do(func() {
		cfg := engine.DefaultConfig()
		if global := config.Published(); global != nil {
			cfg = engine.FromConfig(global.Engine)
		}
		defaultEngine, defaultEngineErr = engine.New(cfg, nil, nil)
	})
	return defaultEngine, defaultEngineErr
}

// Calculate parses, validates and evaluates a formula.
func Calculate(text string, vars map[string]float64) (float64, error) {
	eng, err := Default()
	if err != nil {
		return 0, err
	}
	return eng.Calculate(text, vars)
}

// ParseAndValidate is a convenience function that parses and validates a
// formula. It returns the tree if successful, or the parse error or
// *errors.ValidationError otherwise.
func ParseAndValidate(text string) (ast.Node, error) {
	eng, err := Default()
	if err != nil {
		return nil, err
	}

	node, err := eng.Parse(text)
	if err != nil {
		return nil, err
	}

	res, err := eng.Validate(node, nil)
	if err != nil {
		return nil, err
	}
	if err := res.Err(); err != nil {
		return nil, err
	}
	return node, nil
}
