package engine

import (
	"time"

	"github.com/google/uuid"

	formulaErrors "github.com/kishan-gau/recruitiq-sub007/pkg/formula/errors"
)

// Result is the outcome of a successful execution.
type Result struct {
	Value    float64  `json:"value"`
	Metadata Metadata `json:"metadata"`
}

// Metadata describes an execution.
type Metadata struct {
	// ExecutionID identifies this execution in logs.
	ExecutionID uuid.UUID `json:"execution_id"`

	// Variables are the variables the formula references, in first-seen order.
	Variables []string `json:"variables"`

	NodeCount  int `json:"node_count"`
	Complexity int `json:"complexity"`

	// Warnings are the non-blocking validation findings.
	Warnings []formulaErrors.Finding `json:"warnings,omitempty"`

	// Duration covers input resolution, validation and evaluation.
	Duration time.Duration `json:"duration"`
}

// Scenario is one preview run produced by Test.
type Scenario struct {
	Name      string             `json:"name"`
	Variables map[string]float64 `json:"variables"`
	Result    float64            `json:"result"`
	Error     string             `json:"error,omitempty"`
}

// Stats summarizes the shape of a formula.
type Stats struct {
	Variables  []string `json:"variables"`
	NodeCount  int      `json:"node_count"`
	Complexity int      `json:"complexity"`
	Depth      int      `json:"depth"`
}

// scenarioScales are the multipliers applied to the varied variable.
var scenarioScales = []struct {
	name  string
	scale float64
}{
	{"low", 0.5},
	{"base", 1},
	{"high", 2},
}
