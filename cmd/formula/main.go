// Formula is the command-line front end of the payroll formula engine.
//
// It parses, validates and evaluates payroll formulas, and manages YAML
// formula catalogs:
//   - Inspecting formulas (AST JSON, variables, complexity statistics)
//   - Evaluating formulas against variable bindings
//   - Previewing low/base/high scenarios
//   - Linting and testing formula catalogs
//   - Watching a catalog directory and serving Prometheus metrics
//
// Usage:
//
//	# Evaluate a formula
//	formula calc "gross_pay * 0.1" --var gross_pay=5000
//
//	# Validate with strict division checks
//	formula validate "base_salary / working_days" --strict
//
//	# Lint a catalog directory
//	formula lint --dir formulas/
//
//	# Run the tests embedded in a catalog
//	formula test --file formulas/earnings.yaml
//
//	# Watch the library and expose metrics
//	formula watch --path formulas/ --metrics-addr :9090
package main

import "os"

func main() {
	os.Exit(Execute())
}
