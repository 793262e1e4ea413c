// Package logging builds the structured loggers used by the formula engine
// and its tools.
//
// # Overview
//
// The logging package wraps Go's standard log/slog package to provide:
//   - Structured logging with JSON and text formats
//   - Redaction of payroll amounts and other sensitive values
//   - Context-aware logging with execution IDs, formula names and tenants
//   - Configurable log levels (debug, info, warn, error)
//
// # Usage
//
//	logger, err := logging.New(logging.Config{
//	    Level:        "info",
//	    Format:       "json",
//	    RedactValues: true,
//	})
//
//	ctx := logging.WithExecutionID(ctx, id)
//	logger.InfoContext(ctx, "formula executed",
//	    "formula", "overtime_pay",
//	    "gross_pay", 5230.50, // Redacted
//	)
//
// # Redaction
//
// When RedactValues is enabled, the value of any attribute whose key names a
// pay amount (gross_pay, base_salary, bonus_amount, amount, ...) is replaced
// by "***". String values are additionally scrubbed of e-mail addresses,
// national identifiers and bank account numbers.
package logging
