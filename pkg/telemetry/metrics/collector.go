package metrics

import (
	"sync"
	"time"

	"github.com/kishan-gau/recruitiq-sub007/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// DefaultMaxFormulaLabels caps the distinct formula names used as label values.
const DefaultMaxFormulaLabels = 1000

// OtherLabel replaces formula names once the cardinality cap is reached.
const OtherLabel = "other"

// Collector owns the Prometheus registry and every metric the formula engine
// and library record. All methods are safe on a nil receiver and when
// metrics are disabled.
type Collector struct {
	config   config.MetricsConfig
	registry *prometheus.Registry

	formulaMetrics *FormulaMetrics

	libraryMetrics *LibraryMetrics

	cardinalityLimiter *CardinalityLimiter
}

// NewCollector creates a new metrics collector with the specified configuration
// and Prometheus registry. If registry is nil, a fresh registry is created.
// Empty namespace, subsystem and buckets fall back to the config defaults.
//
// Example:
//
//	collector := metrics.NewCollector(&config.MetricsConfig{Enabled: true}, nil)
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	c := &Collector{registry: registry}
	if cfg != nil {
		c.config = *cfg
	}
	if c.config.Namespace == "" {
		c.config.Namespace = config.DefaultMetricsNamespace
	}
	if c.config.Subsystem == "" {
		c.config.Subsystem = config.DefaultMetricsSubsystem
	}
	if len(c.config.DurationBuckets) == 0 {
		c.config.DurationBuckets = append([]float64(nil), config.DefaultDurationBuckets...)
	}

	c.cardinalityLimiter = NewCardinalityLimiter(DefaultMaxFormulaLabels)
	c.formulaMetrics = NewFormulaMetrics(&c.config, registry)
	c.libraryMetrics = NewLibraryMetrics(&c.config, registry)

	return c
}

func (c *Collector) enabled() bool {
	return c != nil && c.config.Enabled
}

// RecordParse records a parse attempt with ResultOK or ResultError.
func (c *Collector) RecordParse(result string) {
	if !c.enabled() {
		return
	}
	c.formulaMetrics.RecordParse(result)
}

// RecordValidation records a validation with ResultOK, ResultWarning or
// ResultError.
func (c *Collector) RecordValidation(result string) {
	if !c.enabled() {
		return
	}
	c.formulaMetrics.RecordValidation(result)
}

// RecordExecution records an execution.
//
// Parameters:
//   - status: StatusSuccess, StatusInvalid, StatusParseError or StatusError
//   - duration: Time from input resolution to result
//
// Example:
//
//	collector.RecordExecution(metrics.StatusSuccess, 35*time.Microsecond)
func (c *Collector) RecordExecution(status string, duration time.Duration) {
	if !c.enabled() {
		return
	}
	c.formulaMetrics.RecordExecution(status, duration)
}

// SetLibraryFormulas updates the loaded formula gauge.
func (c *Collector) SetLibraryFormulas(n int) {
	if !c.enabled() {
		return
	}
	c.libraryMetrics.SetFormulas(n)
}

// RecordLibraryReload records a reload with ResultOK or ResultError.
func (c *Collector) RecordLibraryReload(result string) {
	if !c.enabled() {
		return
	}
	c.libraryMetrics.RecordReload(result)
}

// RecordLibraryTest records an embedded test result for a formula.
func (c *Collector) RecordLibraryTest(formula string, passed bool) {
	if !c.enabled() {
		return
	}

	if !c.cardinalityLimiter.Allow(formula) {
		formula = OtherLabel
	}

	result := "pass"
	if !passed {
		result = "fail"
	}
	c.libraryMetrics.RecordTest(formula, result)
}

// Registry returns the Prometheus registry used by this collector.
func (c *Collector) Registry() *prometheus.Registry {
	if c == nil {
		return nil
	}
	return c.registry
}

// Path returns the HTTP path metrics should be served on.
func (c *Collector) Path() string {
	if c == nil || c.config.Path == "" {
		return config.DefaultMetricsPath
	}
	return c.config.Path
}

// CardinalityLimiter prevents metric cardinality explosion by limiting
// the number of unique label values.
type CardinalityLimiter struct {
	maxCardinality int
	current        map[string]struct{}
	mu             sync.RWMutex
}

// NewCardinalityLimiter creates a new cardinality limiter with the specified
// maximum cardinality.
func NewCardinalityLimiter(maxCardinality int) *CardinalityLimiter {
	return &CardinalityLimiter{
		maxCardinality: maxCardinality,
		current:        make(map[string]struct{}),
	}
}

// Allow reports whether a label value may be used. Values already seen are
// always allowed; new ones only while under the limit.
func (cl *CardinalityLimiter) Allow(label string) bool {
	cl.mu.RLock()
	if _, exists := cl.current[label]; exists {
		cl.mu.RUnlock()
		return true
	}
	cl.mu.RUnlock()

	cl.mu.Lock()
	defer cl.mu.Unlock()

	if _, exists := cl.current[label]; exists {
		return true
	}

	if len(cl.current) >= cl.maxCardinality {
		return false
	}

	cl.current[label] = struct{}{}
	return true
}

// Count returns the current cardinality.
func (cl *CardinalityLimiter) Count() int {
	cl.mu.RLock()
	defer cl.mu.RUnlock()
	return len(cl.current)
}
