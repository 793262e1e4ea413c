package metrics

import (
	"github.com/kishan-gau/recruitiq-sub007/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// LibraryMetrics tracks the formula library.
//
// Metrics:
//   - payroll_formula_library_formulas: Formulas currently loaded
//   - payroll_formula_library_reloads_total: Library reloads by result
//   - payroll_formula_library_tests_total: Embedded test results by formula
type LibraryMetrics struct {
	formulas prometheus.Gauge

	reloadsTotal *prometheus.CounterVec

	testsTotal *prometheus.CounterVec
}

// NewLibraryMetrics creates and registers library metrics with the provided registry.
func NewLibraryMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *LibraryMetrics {
	lm := &LibraryMetrics{
		formulas: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "library_formulas",
				Help:      "Number of formulas currently loaded from the library",
			},
		),

		reloadsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "library_reloads_total",
				Help:      "Total number of formula library reloads",
			},
			[]string{"result"},
		),

		testsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "library_tests_total",
				Help:      "Total number of embedded formula test results",
			},
			[]string{"formula", "result"},
		),
	}

	registry.MustRegister(
		lm.formulas,
		lm.reloadsTotal,
		lm.testsTotal,
	)

	return lm
}

// SetFormulas sets the number of loaded formulas.
func (lm *LibraryMetrics) SetFormulas(n int) {
	lm.formulas.Set(float64(n))
}

// RecordReload records a library reload.
func (lm *LibraryMetrics) RecordReload(result string) {
	lm.reloadsTotal.WithLabelValues(result).Inc()
}

// RecordTest records an embedded test result ("pass" or "fail").
func (lm *LibraryMetrics) RecordTest(formula, result string) {
	lm.testsTotal.WithLabelValues(formula, result).Inc()
}
