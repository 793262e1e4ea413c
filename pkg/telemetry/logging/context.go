package logging

import (
	"context"
	"log/slog"
)

// Context keys for common log fields.
type contextKey string

const (
	// ExecutionIDKey is the context key for formula execution IDs.
	ExecutionIDKey contextKey = "execution_id"

	// FormulaKey is the context key for formula names.
	FormulaKey contextKey = "formula"

	// TenantKey is the context key for tenant identifiers.
	TenantKey contextKey = "tenant"
)

// WithExecutionID adds an execution ID to the context.
func WithExecutionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ExecutionIDKey, id)
}

// GetExecutionID retrieves the execution ID from the context.
func GetExecutionID(ctx context.Context) string {
	if id, ok := ctx.Value(ExecutionIDKey).(string); ok {
		return id
	}
	return ""
}

// WithFormula adds a formula name to the context.
func WithFormula(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, FormulaKey, name)
}

// GetFormula retrieves the formula name from the context.
func GetFormula(ctx context.Context) string {
	if name, ok := ctx.Value(FormulaKey).(string); ok {
		return name
	}
	return ""
}

// WithTenant adds a tenant identifier to the context.
func WithTenant(ctx context.Context, tenant string) context.Context {
	return context.WithValue(ctx, TenantKey, tenant)
}

// GetTenant retrieves the tenant identifier from the context.
func GetTenant(ctx context.Context) string {
	if tenant, ok := ctx.Value(TenantKey).(string); ok {
		return tenant
	}
	return ""
}

// contextAttrs extracts the common fields from the context.
func contextAttrs(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}

	var attrs []slog.Attr
	if id := GetExecutionID(ctx); id != "" {
		attrs = append(attrs, slog.String(string(ExecutionIDKey), id))
	}
	if name := GetFormula(ctx); name != "" {
		attrs = append(attrs, slog.String(string(FormulaKey), name))
	}
	if tenant := GetTenant(ctx); tenant != "" {
		attrs = append(attrs, slog.String(string(TenantKey), tenant))
	}
	return attrs
}
