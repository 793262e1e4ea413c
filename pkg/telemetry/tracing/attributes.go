package tracing

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Span attribute keys. Formula attributes use the "formula.*" namespace.
const (
	AttrExecutionID = "formula.execution_id"
	AttrStatus      = "formula.status"
	AttrNodeCount   = "formula.node_count"
	AttrComplexity  = "formula.complexity"
	AttrVariables   = "formula.variables"

	AttrHTTPMethod = "http.method"
	AttrHTTPRoute  = "http.route"
	AttrHTTPStatus = "http.status_code"

	AttrErrorMessage = "error.message"
)

// SetFormulaAttributes records the size of an executed formula.
func SetFormulaAttributes(span trace.Span, nodeCount, complexity int, vars []string) {
	span.SetAttributes(
		attribute.Int(AttrNodeCount, nodeCount),
		attribute.Int(AttrComplexity, complexity),
		attribute.StringSlice(AttrVariables, vars),
	)
}
