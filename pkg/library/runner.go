package library

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/kishan-gau/recruitiq-sub007/pkg/formula/engine"
	"github.com/kishan-gau/recruitiq-sub007/pkg/telemetry/logging"
	"github.com/kishan-gau/recruitiq-sub007/pkg/telemetry/metrics"
)

// Tolerance is the relative tolerance used to compare test results.
// Expected values with a magnitude below 1 are compared absolutely.
const Tolerance = 1e-9

// TestResult is the outcome of one embedded test case.
type TestResult struct {
	Formula string  `json:"formula"`
	Test    string  `json:"test"`
	Passed  bool    `json:"passed"`
	Got     float64 `json:"got,omitempty"`
	Message string  `json:"message,omitempty"`
}

// Report summarizes a test run.
type Report struct {
	Results []TestResult `json:"results"`
	Passed  int          `json:"passed"`
	Failed  int          `json:"failed"`
}

// OK reports whether every test passed.
func (r *Report) OK() bool {
	return r.Failed == 0
}

// Failures returns the failed results.
func (r *Report) Failures() []TestResult {
	var out []TestResult
	for _, res := range r.Results {
		if !res.Passed {
			out = append(out, res)
		}
	}
	return out
}

// Runner executes the test cases embedded in catalogs.
type Runner struct {
	engine  *engine.Engine
	logger  *slog.Logger
	metrics *metrics.Collector
}

// NewRunner creates a runner. logger and collector may be nil.
func NewRunner(eng *engine.Engine, logger *slog.Logger, collector *metrics.Collector) *Runner {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Runner{engine: eng, logger: logger, metrics: collector}
}

// Run executes every test of every formula in lib, in load order. Tests of
// formulas that fail to parse or validate still run: they pass only when
// they expect that error.
func (r *Runner) Run(ctx context.Context, lib *Library) *Report {
	report := &Report{}

	for _, f := range lib.Formulas {
		fctx := logging.WithFormula(ctx, f.Name)
		for i, tc := range f.Tests {
			res := r.runCase(fctx, f, tc)
			if res.Test == "" {
				res.Test = fmt.Sprintf("test %d", i+1)
			}

			if res.Passed {
				report.Passed++
			} else {
				report.Failed++
				r.logger.WarnContext(fctx, "formula test failed",
					"test", res.Test,
					"reason", res.Message,
				)
			}
			r.metrics.RecordLibraryTest(f.Name, res.Passed)
			report.Results = append(report.Results, res)
		}
	}

	return report
}

func (r *Runner) runCase(ctx context.Context, f *Formula, tc TestCase) TestResult {
	res := TestResult{Formula: f.Name, Test: tc.Name}

	var (
		value float64
		err   error
	)
	if f.Valid() {
		var out *engine.Result
		if out, err = r.engine.ExecuteContext(ctx, f.Tree, tc.Variables); err == nil {
			value = out.Value
		}
	} else {
		err = f.Err()
	}

	if tc.ExpectError != "" {
		switch {
		case err == nil:
			res.Got = value
			res.Message = fmt.Sprintf("expected error containing %q, got %v", tc.ExpectError, value)
		case !strings.Contains(strings.ToLower(err.Error()), strings.ToLower(tc.ExpectError)):
			res.Message = fmt.Sprintf("expected error containing %q, got %q", tc.ExpectError, err.Error())
		default:
			res.Passed = true
		}
		return res
	}

	if err != nil {
		res.Message = fmt.Sprintf("unexpected error: %v", err)
		return res
	}

	res.Got = value
	want := 0.0
	if tc.Expect != nil {
		want = *tc.Expect
	}
	if !withinTolerance(value, want) {
		res.Message = fmt.Sprintf("expected %v, got %v", want, value)
		return res
	}

	res.Passed = true
	return res
}

func withinTolerance(got, want float64) bool {
	if math.IsNaN(got) || math.IsNaN(want) {
		return math.IsNaN(got) && math.IsNaN(want)
	}
	if got == want {
		return true
	}
	return math.Abs(got-want) <= Tolerance*math.Max(1, math.Abs(want))
}

// RunTests runs the embedded tests of lib without logging or metrics.
func RunTests(eng *engine.Engine, lib *Library) *Report {
	return NewRunner(eng, nil, nil).Run(context.Background(), lib)
}
