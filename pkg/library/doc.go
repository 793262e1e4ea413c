// Package library loads, checks and serves named payroll formulas authored
// as YAML catalogs.
//
// # Catalog Format
//
//	name: acme-pay-components
//	version: 1.0.0
//	formulas:
//	  - name: overtime_pay
//	    description: Overtime above 160 hours
//	    expression: "hours_worked > 160 ? (hours_worked - 160) * overtime_rate : 0"
//	    tests:
//	      - name: no overtime
//	        variables: {hours_worked: 150, overtime_rate: 40}
//	        expect: 0
//
// Each expression is parsed and validated by an engine.Engine when loaded.
// A formula that fails to parse or validate is kept in the Library with its
// findings but is never registered. Valid formulas carry their serialized
// tree, which is what a caller persists.
//
// # Components
//
//   - Loader: reads a catalog file or a directory of catalogs
//   - Registry: thread-safe name to formula map, replaced atomically
//   - Runner: executes the test cases embedded in catalogs
//   - Watcher: reloads the registry when catalog files change
//
// # Usage
//
//	loader := library.NewLoader(eng, nil)
//	lib, err := loader.Load("./formulas")
//
//	registry := library.NewRegistry(collector)
//	if err := registry.Replace(lib.ValidFormulas()); err != nil {
//	    return err
//	}
//
//	pay, err := registry.Calculate(ctx, eng, "overtime_pay", vars)
package library
