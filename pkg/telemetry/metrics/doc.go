// Package metrics provides Prometheus metrics for the formula engine and the
// formula library.
//
// # Metrics
//
//   - Formula Metrics: parse and validation outcomes, execution count and
//     duration by status
//   - Library Metrics: loaded formula count, reload outcomes and embedded
//     test results
//
// # Usage
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//
//	collector.RecordParse(metrics.ResultOK)
//	collector.RecordExecution(metrics.StatusSuccess, 40*time.Microsecond)
//	collector.SetLibraryFormulas(12)
//
//	http.Handle("/metrics", collector.Handler())
//
// A nil *Collector is valid and records nothing, so the engine can be built
// without metrics.
//
// # Prometheus Endpoint
//
//	# HELP payroll_formula_executions_total Total number of formula executions
//	# TYPE payroll_formula_executions_total counter
//	payroll_formula_executions_total{status="success"} 1234
//
// # Cardinality Management
//
// Only library test results carry a formula name label. The collector caps
// the number of distinct names and folds the rest into "other".
package metrics
