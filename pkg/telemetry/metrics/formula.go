package metrics

import (
	"time"

	"github.com/kishan-gau/recruitiq-sub007/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// Result label values for parse and validation metrics.
const (
	ResultOK      = "ok"
	ResultError   = "error"
	ResultWarning = "warning"
)

// Status label values for execution metrics.
const (
	StatusSuccess    = "success"
	StatusInvalid    = "invalid"
	StatusParseError = "parse_error"
	StatusError      = "error"
)

// FormulaMetrics tracks engine operations.
//
// Metrics:
//   - payroll_formula_parse_total: Parse attempts by result
//   - payroll_formula_validations_total: Validations by result
//   - payroll_formula_executions_total: Executions by status
//   - payroll_formula_execution_duration_seconds: Execution duration by status
type FormulaMetrics struct {
	parseTotal *prometheus.CounterVec

	validationsTotal *prometheus.CounterVec

	executionsTotal *prometheus.CounterVec

	executionDuration *prometheus.HistogramVec
}

// NewFormulaMetrics creates and registers formula metrics with the provided registry.
func NewFormulaMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *FormulaMetrics {
	fm := &FormulaMetrics{
		parseTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "parse_total",
				Help:      "Total number of formula parse attempts",
			},
			[]string{"result"},
		),

		validationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "validations_total",
				Help:      "Total number of formula validations",
			},
			[]string{"result"},
		),

		executionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "executions_total",
				Help:      "Total number of formula executions",
			},
			[]string{"status"},
		),

		executionDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "execution_duration_seconds",
				Help:      "Duration of formula execution in seconds, including validation",
				Buckets:   cfg.DurationBuckets,
			},
			[]string{"status"},
		),
	}

	registry.MustRegister(
		fm.parseTotal,
		fm.validationsTotal,
		fm.executionsTotal,
		fm.executionDuration,
	)

	return fm
}

// RecordParse records a parse attempt.
func (fm *FormulaMetrics) RecordParse(result string) {
	fm.parseTotal.WithLabelValues(result).Inc()
}

// RecordValidation records a validation. A valid formula that produced
// warnings is recorded as ResultWarning.
func (fm *FormulaMetrics) RecordValidation(result string) {
	fm.validationsTotal.WithLabelValues(result).Inc()
}

// RecordExecution records an execution and its duration.
func (fm *FormulaMetrics) RecordExecution(status string, duration time.Duration) {
	fm.executionsTotal.WithLabelValues(status).Inc()
	fm.executionDuration.WithLabelValues(status).Observe(duration.Seconds())
}
