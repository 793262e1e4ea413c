package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/kishan-gau/recruitiq-sub007/pkg/formula/ast"
	"github.com/kishan-gau/recruitiq-sub007/pkg/formula/codec"
	formulaErrors "github.com/kishan-gau/recruitiq-sub007/pkg/formula/errors"
	"github.com/kishan-gau/recruitiq-sub007/pkg/formula/evaluator"
	"github.com/kishan-gau/recruitiq-sub007/pkg/formula/parser"
	"github.com/kishan-gau/recruitiq-sub007/pkg/formula/validator"
	"github.com/kishan-gau/recruitiq-sub007/pkg/formula/variables"
	"github.com/kishan-gau/recruitiq-sub007/pkg/telemetry/logging"
	"github.com/kishan-gau/recruitiq-sub007/pkg/telemetry/metrics"
	"github.com/kishan-gau/recruitiq-sub007/pkg/telemetry/tracing"
)

// ErrUnsupportedInput is returned when a formula argument is neither text,
// serialized JSON nor a tree.
var ErrUnsupportedInput = errors.New("unsupported formula input")

// Engine parses, validates and executes payroll formulas.
type Engine struct {
	// validation holds the limits applied when no options are passed
	validation validator.Options

	// parser enforces the source length limit
	parser *parser.Parser

	// validator checks trees against the whitelist
	validator *validator.Validator

	// whitelist is the set of recognized variables
	whitelist *variables.Whitelist

	// samples are the bindings used for preview scenarios
	samples map[string]float64

	// logger for structured logging
	logger *slog.Logger

	// metrics records operation outcomes; nil disables recording
	metrics *metrics.Collector
}

// New creates an engine. A nil cfg selects DefaultConfig, a nil logger
// discards all output and a nil collector disables metrics. The engine
// copies what it needs from cfg; later changes to cfg have no effect.
func New(cfg *Config, logger *slog.Logger, collector *metrics.Collector) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if logger == nil {
		logger = logging.Nop()
	}

	maxSource := cfg.MaxSourceLength
	if maxSource == 0 {
		maxSource = parser.DefaultMaxSourceLength
	}

	whitelist := cfg.whitelist()
	return &Engine{
		validation: cfg.Validation,
		parser:     parser.NewParser().WithMaxSourceLength(maxSource),
		validator:  validator.New(whitelist),
		whitelist:  whitelist,
		samples:    cfg.samples(),
		logger:     logger,
		metrics:    collector,
	}, nil
}

// Whitelist returns the variables formulas may reference.
func (e *Engine) Whitelist() *variables.Whitelist {
	return e.whitelist
}

// Parse parses formula text into a tree.
func (e *Engine) Parse(text string) (ast.Node, error) {
	node, err := e.parser.ParseString(text)
	if err != nil {
		e.metrics.RecordParse(metrics.ResultError)
		return nil, err
	}
	e.metrics.RecordParse(metrics.ResultOK)
	return node, nil
}

// resolve turns a formula argument into a tree.
func (e *Engine) resolve(src any) (ast.Node, error) {
	switch v := src.(type) {
	case string:
		return e.Parse(v)
	case []byte:
		node, err := codec.Unmarshal(v)
		if err != nil {
			return nil, err
		}
		return node, nil
	case ast.Node:
		return v, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedInput, src)
	}
}

// Validate checks a formula without executing it. A nil opts selects the
// engine's configured limits. The returned error is non-nil only when src
// cannot be resolved to a tree; an invalid formula is reported through the
// result.
func (e *Engine) Validate(src any, opts *validator.Options) (*validator.Result, error) {
	node, err := e.resolve(src)
	if err != nil {
		return nil, err
	}
	return e.validate(context.Background(), node, opts), nil
}

func (e *Engine) validate(ctx context.Context, node ast.Node, opts *validator.Options) *validator.Result {
	if opts == nil {
		o := e.validation
		opts = &o
	}

	res := e.validator.Validate(node, opts)
	switch {
	case !res.Valid:
		e.metrics.RecordValidation(metrics.ResultError)
		e.logger.WarnContext(ctx, "formula failed validation",
			"errors", len(res.Errors),
			"first_error", res.Errors[0].Message,
		)
	case len(res.Warnings) > 0:
		e.metrics.RecordValidation(metrics.ResultWarning)
	default:
		e.metrics.RecordValidation(metrics.ResultOK)
	}
	return res
}

// Execute validates and evaluates a formula against the given bindings.
// It returns a *errors.ValidationError when validation fails and a
// *errors.ExecutionError when evaluation fails.
func (e *Engine) Execute(src any, vars map[string]float64) (*Result, error) {
	return e.ExecuteContext(context.Background(), src, vars)
}

// ExecuteContext is Execute with a context carrying log fields such as the
// formula name or tenant. The execution ID is added to the context.
func (e *Engine) ExecuteContext(ctx context.Context, src any, vars map[string]float64) (*Result, error) {
	start := time.Now()
	id := uuid.New()
	ctx = logging.WithExecutionID(ctx, id.String())

	ctx, span := tracing.Start(ctx, "formula.execute",
		trace.WithAttributes(attribute.String(tracing.AttrExecutionID, id.String())),
	)
	defer span.End()

	node, err := e.resolve(src)
	if err != nil {
		e.finish(ctx, span, metrics.StatusParseError, start, err)
		return nil, err
	}
	tracing.SetFormulaAttributes(span, ast.Count(node), ast.Complexity(node), ast.Variables(node))

	res := e.validate(ctx, node, nil)
	if !res.Valid {
		err := res.Err()
		e.finish(ctx, span, metrics.StatusInvalid, start, err)
		return nil, err
	}

	value, err := evaluator.Evaluate(node, vars)
	if err != nil {
		e.finish(ctx, span, metrics.StatusError, start, err)
		return nil, err
	}

	duration := e.finish(ctx, span, metrics.StatusSuccess, start, nil)
	return &Result{
		Value: value,
		Metadata: Metadata{
			ExecutionID: id,
			Variables:   ast.Variables(node),
			NodeCount:   ast.Count(node),
			Complexity:  ast.Complexity(node),
			Warnings:    res.Warnings,
			Duration:    duration,
		},
	}, nil
}

// finish records the outcome of an execution on the metrics, the span and
// the log, and returns its duration.
func (e *Engine) finish(ctx context.Context, span trace.Span, status string, start time.Time, err error) time.Duration {
	duration := time.Since(start)
	e.metrics.RecordExecution(status, duration)

	span.SetAttributes(attribute.String(tracing.AttrStatus, status))
	tracing.SetError(span, err)

	args := []any{"status", status, "duration", duration}
	if err != nil && status == metrics.StatusError {
		args = append(args, "error", err.Error())
	}
	e.logger.DebugContext(ctx, "formula execution finished", args...)
	return duration
}

// Calculate is Execute returning only the value.
func (e *Engine) Calculate(src any, vars map[string]float64) (float64, error) {
	res, err := e.Execute(src, vars)
	if err != nil {
		return 0, err
	}
	return res.Value, nil
}

// Test runs a formula against three preview scenarios built from the sample
// bindings. The first variable the formula references (gross_pay when it
// references none) is scaled by 0.5, 1 and 2. A runtime failure in one
// scenario is recorded in that scenario and does not stop the others; an
// invalid formula returns a *errors.ValidationError.
func (e *Engine) Test(src any) ([]Scenario, error) {
	node, err := e.resolve(src)
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	res := e.validate(ctx, node, nil)
	if !res.Valid {
		return nil, res.Err()
	}

	varied := variables.GrossPay
	if refs := ast.Variables(node); len(refs) > 0 {
		varied = refs[0]
	}
	base, ok := e.samples[varied]
	if !ok {
		base = DefaultSampleValue
	}

	scenarios := make([]Scenario, 0, len(scenarioScales))
	for _, s := range scenarioScales {
		bindings := make(map[string]float64, len(e.samples)+1)
		for k, v := range e.samples {
			bindings[k] = v
		}
		bindings[varied] = base * s.scale

		scenario := Scenario{Name: s.name, Variables: bindings}
		value, err := evaluator.Evaluate(node, bindings)
		if err != nil {
			scenario.Error = err.Error()
		} else {
			scenario.Result = value
		}
		scenarios = append(scenarios, scenario)
	}

	e.logger.DebugContext(ctx, "formula scenarios evaluated",
		"varied", varied,
		"scenarios", len(scenarios),
	)
	return scenarios, nil
}

// ExtractVariables returns the variables a formula references, without
// duplicates, in the order they first appear.
func (e *Engine) ExtractVariables(src any) ([]string, error) {
	node, err := e.resolve(src)
	if err != nil {
		return nil, err
	}
	return ast.Variables(node), nil
}

// GetStats summarizes a formula's shape. The formula is not validated.
func (e *Engine) GetStats(src any) (*Stats, error) {
	node, err := e.resolve(src)
	if err != nil {
		return nil, err
	}
	return &Stats{
		Variables:  ast.Variables(node),
		NodeCount:  ast.Count(node),
		Complexity: ast.Complexity(node),
		Depth:      ast.Depth(node),
	}, nil
}

// IsInputError reports whether err came from resolving a formula argument
// rather than from validation or evaluation.
func IsInputError(err error) bool {
	return formulaErrors.IsParseError(err) ||
		errors.Is(err, codec.ErrInvalidTree) ||
		errors.Is(err, ErrUnsupportedInput)
}
