// Package telemetry groups the observability packages used by the formula
// engine, the library watcher and the CLI.
//
// # Components
//
//   - logging: slog construction from configuration, execution IDs carried
//     in the context and masking of payroll amounts
//   - metrics: Prometheus counters, histograms and gauges for parsing,
//     validation, execution and library reloads
//   - tracing: OpenTelemetry spans exported over OTLP gRPC
//   - health: liveness and readiness probes served by "formula watch"
//
// Every component is optional. A nil metrics collector records nothing, a
// disabled tracer leaves spans as no-ops and the engine logs to a discarding
// logger when none is given.
package telemetry
