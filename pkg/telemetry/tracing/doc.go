// Package tracing provides OpenTelemetry tracing for formula execution.
//
// # Overview
//
// New installs a global tracer provider that exports spans to an OTLP gRPC
// collector. Code that records spans calls the package-level Start, which
// resolves the global provider on every call, so packages such as the
// engine need no tracer handle and record nothing until a provider is
// installed.
//
// # Spans
//
//   - formula.execute: one per Engine.ExecuteContext call, with the
//     execution ID, the outcome status, node count and complexity
//   - http.request: one per request served through HTTPMiddleware
//
// # Sampling
//
// Three sampling strategies are supported, each wrapped in ParentBased so an
// incoming sampled trace stays sampled:
//
//   - always: sample every trace
//   - never: sample nothing
//   - ratio: sample the configured fraction of trace IDs
//
// # Usage
//
//	tracer, err := tracing.New(&cfg.Telemetry.Tracing, version)
//	if err != nil {
//	    return err
//	}
//	defer tracer.Shutdown(context.Background())
//
//	ctx, span := tracing.Start(ctx, "formula.execute")
//	defer span.End()
package tracing
