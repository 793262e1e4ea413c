package formula

import (
	"math"
	"testing"

	formulaErrors "github.com/kishan-gau/recruitiq-sub007/pkg/formula/errors"
)

// TestCalculate tests the high-level API
func TestCalculate(t *testing.T) {
	got, err := Calculate("ROUND(base_salary / 260, 2)", map[string]float64{"base_salary": 60000})
	if err != nil {
		t.Fatalf("Calculate() failed: %v", err)
	}
	if math.Abs(got-230.77) > 1e-9 {
		t.Errorf("Calculate() = %v, want 230.77", got)
	}
}

// TestParseAndValidate tests parsing plus validation
func TestParseAndValidate(t *testing.T) {
	node, err := ParseAndValidate("gross_pay * 0.10")
	if err != nil {
		t.Fatalf("ParseAndValidate() failed: %v", err)
	}
	if node.String() != "(gross_pay * 0.1)" {
		t.Errorf("tree = %s, want (gross_pay * 0.1)", node)
	}

	if _, err := ParseAndValidate("gross_pay *"); !formulaErrors.IsParseError(err) {
		t.Errorf("ParseAndValidate() syntax error = %v, want ParseError", err)
	}
	if _, err := ParseAndValidate("MAX(1)"); !formulaErrors.IsValidationError(err) {
		t.Errorf("ParseAndValidate() arity error = %v, want ValidationError", err)
	}
}

// TestDefault tests that the shared engine is built once
func TestDefault(t *testing.T) {
	a, err := Default()
	if err != nil {
		t.Fatalf("Default() failed: %v", err)
	}
	b, _ := Default()
	if a != b {
		t.Error("Default() returned different engines")
	}
}
