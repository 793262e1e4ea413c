// Package engine is the entry point for working with payroll formulas.
//
// An Engine bundles a parser, a validator bound to a variable whitelist, the
// evaluator, a logger and an optional metrics collector. Every operation that
// takes a formula accepts one of:
//
//   - string: formula text, tokenized and parsed on each call
//   - []byte: a tree serialized with the codec package
//   - ast.Node: an already built tree
//
// Execute and Calculate always validate before evaluating, so a formula that
// passes Validate never fails at runtime for a structural reason. Runtime
// failures (division by a zero-valued variable, missing bindings) are reported
// as *errors.ExecutionError.
//
// An Engine holds no mutable state after New returns and is safe for
// concurrent use.
//
// # Usage
//
//	eng, err := engine.New(nil, logger, collector)
//	if err != nil {
//	    return err
//	}
//
//	pay, err := eng.Calculate("ROUND(base_salary / 260, 2)", map[string]float64{
//	    "base_salary": 60000,
//	})
package engine
