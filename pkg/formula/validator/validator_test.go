package validator

import (
	"errors"
	"strings"
	"testing"

	"github.com/kishan-gau/recruitiq-sub007/pkg/formula/ast"
	formulaErrors "github.com/kishan-gau/recruitiq-sub007/pkg/formula/errors"
	"github.com/kishan-gau/recruitiq-sub007/pkg/formula/parser"
	"github.com/kishan-gau/recruitiq-sub007/pkg/formula/variables"
)

func mustParse(t *testing.T, source string) ast.Node {
	t.Helper()
	node, err := parser.ParseString(source)
	if err != nil {
		t.Fatalf("ParseString(%q) failed: %v", source, err)
	}
	return node
}

func messages(findings []formulaErrors.Finding) []string {
	out := make([]string, len(findings))
	for i, f := range findings {
		out[i] = f.Message
	}
	return out
}

func TestValidator_Validate(t *testing.T) {
	tests := []struct {
		name      string
		source    string
		opts      *Options
		wantValid bool
		wantErrs  []string // Substrings, in order
		wantWarns []string
	}{
		{
			name:      "simple percentage",
			source:    "gross_pay * 0.1",
			wantValid: true,
		},
		{
			name:      "overtime formula",
			source:    "hours_worked > 160 ? (hours_worked - 160) * overtime_rate : 0",
			wantValid: true,
		},
		{
			name:      "unknown variable",
			source:    "salary * 2",
			wantValid: false,
			wantErrs:  []string{"Unknown variable: salary"},
		},
		{
			name:      "unknown variable reported once",
			source:    "foo + foo * bar",
			wantValid: false,
			wantErrs:  []string{"Unknown variable: foo", "Unknown variable: bar"},
		},
		{
			name:      "MIN with one argument",
			source:    "MIN(10)",
			wantValid: false,
			wantErrs:  []string{"MIN requires 2 arguments"},
		},
		{
			name:      "MIN with two arguments",
			source:    "MIN(10, 20)",
			wantValid: true,
		},
		{
			name:      "FLOOR with two arguments",
			source:    "FLOOR(1, 2)",
			wantValid: false,
			wantErrs:  []string{"FLOOR requires 1 argument"},
		},
		{
			name:      "IF with two arguments",
			source:    "IF(gross_pay > 0, 1)",
			wantValid: false,
			wantErrs:  []string{"IF requires 3 arguments"},
		},
		{
			name:      "division by literal zero",
			source:    "10 / 0",
			wantValid: false,
			wantErrs:  []string{"Division by zero"},
		},
		{
			name:      "modulo by literal zero",
			source:    "gross_pay % 0",
			wantValid: false,
			wantErrs:  []string{"Modulo by zero"},
		},
		{
			name:      "division by negative zero",
			source:    "10 / -0.0",
			wantValid: false,
			wantErrs:  []string{"Division by zero"},
		},
		{
			name:      "division by variable is not an error",
			source:    "gross_pay / hours_worked",
			wantValid: true,
		},
		{
			name:      "strict mode warns on variable divisor",
			source:    "gross_pay / hours_worked",
			opts:      &Options{Strict: true},
			wantValid: true,
			wantWarns: []string{"Divisor hours_worked may evaluate to zero"},
		},
		{
			name:      "strict mode ignores constant divisor",
			source:    "gross_pay / -12",
			opts:      &Options{Strict: true},
			wantValid: true,
		},
		{
			name:      "computed zero divisor is only a strict warning",
			source:    "10 / (2 - 2)",
			opts:      &Options{Strict: true},
			wantValid: true,
			wantWarns: []string{"may evaluate to zero"},
		},
		{
			name:      "independent findings are all reported",
			source:    "foo / 0 + MIN(1)",
			wantValid: false,
			wantErrs:  []string{"Division by zero", "Unknown variable: foo", "MIN requires 2 arguments"},
		},
		{
			name:      "max depth exceeded",
			source:    "1 + 2 * (3 - 4)",
			opts:      &Options{MaxDepth: 3},
			wantValid: false,
			wantErrs:  []string{"too deeply nested"},
		},
		{
			name:      "max depth respected",
			source:    "1 + 2 * 3",
			opts:      &Options{MaxDepth: 3},
			wantValid: true,
		},
		{
			name:      "default max depth",
			source:    strings.Repeat("-", 60) + "1",
			wantValid: false,
			wantErrs:  []string{"too deeply nested (depth 61 exceeds maximum of 50)"},
		},
		{
			name:      "complexity is only a warning",
			source:    "gross_pay + gross_pay + gross_pay + gross_pay",
			opts:      &Options{MaxComplexity: 5},
			wantValid: true,
			wantWarns: []string{"Formula is too complex (complexity 10 exceeds maximum of 5)"},
		},
	}

	v := New(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := v.Validate(mustParse(t, tt.source), tt.opts)

			if result.Valid != tt.wantValid {
				t.Errorf("Valid = %v, want %v (errors: %v)", result.Valid, tt.wantValid, messages(result.Errors))
			}
			checkMessages(t, "errors", result.Errors, tt.wantErrs)
			checkMessages(t, "warnings", result.Warnings, tt.wantWarns)
		})
	}
}

func checkMessages(t *testing.T, kind string, got []formulaErrors.Finding, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s = %v, want %d entries %v", kind, messages(got), len(want), want)
	}
	for i, w := range want {
		if !strings.Contains(got[i].Message, w) {
			t.Errorf("%s[%d] = %q, want it to contain %q", kind, i, got[i].Message, w)
		}
	}
}

func TestValidator_Suggestions(t *testing.T) {
	v := New(nil)

	result := v.Validate(mustParse(t, "gros_pay * 2"), nil)
	if len(result.Errors) != 1 {
		t.Fatalf("errors = %v, want 1", messages(result.Errors))
	}
	f := result.Errors[0]
	if f.Code != formulaErrors.CodeUnknownVariable {
		t.Errorf("Code = %q, want %q", f.Code, formulaErrors.CodeUnknownVariable)
	}
	if f.Suggestion != "Did you mean 'gross_pay'?" {
		t.Errorf("Suggestion = %q", f.Suggestion)
	}
	if name := f.Node.(*ast.Variable).Name; name != "gros_pay" {
		t.Errorf("Node = %q, want gros_pay", name)
	}

	result = v.Validate(mustParse(t, "ROUND(gross_pay)"), nil)
	if len(result.Errors) != 1 {
		t.Fatalf("errors = %v, want 1", messages(result.Errors))
	}
	if got, want := result.Errors[0].Suggestion, "Call it as ROUND(arg1, arg2)"; got != want {
		t.Errorf("Suggestion = %q, want %q", got, want)
	}
}

func TestValidator_CustomWhitelist(t *testing.T) {
	v := New(variables.NewWhitelist("shift_premium"))

	if result := v.Validate(mustParse(t, "shift_premium * 2"), nil); !result.Valid {
		t.Errorf("shift_premium rejected: %v", messages(result.Errors))
	}
	result := v.Validate(mustParse(t, "gross_pay * 2"), nil)
	if result.Valid {
		t.Error("gross_pay accepted by custom whitelist")
	}
}

func TestValidator_MalformedTrees(t *testing.T) {
	v := New(nil)

	tests := []struct {
		name     string
		node     ast.Node
		wantCode formulaErrors.Code
		wantMsg  string
	}{
		{
			name:     "nil root",
			node:     nil,
			wantCode: formulaErrors.CodeMalformed,
			wantMsg:  "empty tree",
		},
		{
			name:     "missing right operand",
			node:     &ast.BinaryOp{Op: ast.OpAdd, Left: &ast.Literal{Value: 1}},
			wantCode: formulaErrors.CodeMalformed,
			wantMsg:  "BinaryOp is missing its right operand",
		},
		{
			name:     "comparison operator in BinaryOp",
			node:     &ast.BinaryOp{Op: ast.OpGreater, Left: &ast.Literal{Value: 1}, Right: &ast.Literal{Value: 2}},
			wantCode: formulaErrors.CodeInvalidOperator,
			wantMsg:  "Invalid operator '>' in BinaryOp",
		},
		{
			name:     "arithmetic operator in Logical",
			node:     &ast.Logical{Op: ast.OpAdd, Left: &ast.Literal{Value: 1}, Right: &ast.Literal{Value: 2}},
			wantCode: formulaErrors.CodeInvalidOperator,
			wantMsg:  "Invalid operator '+' in Logical",
		},
		{
			name:     "typed nil consequent",
			node:     &ast.Conditional{Condition: &ast.Literal{Value: 1}, Consequent: (*ast.Literal)(nil), Alternate: &ast.Literal{Value: 2}},
			wantCode: formulaErrors.CodeMalformed,
			wantMsg:  "Conditional is missing its consequent",
		},
		{
			name:     "unknown function",
			node:     &ast.FunctionCall{Name: "SQRT", Args: []ast.Node{&ast.Literal{Value: 4}}},
			wantCode: formulaErrors.CodeUnknownFunction,
			wantMsg:  "Unknown function: SQRT",
		},
		{
			name:     "nil argument",
			node:     &ast.FunctionCall{Name: ast.FuncAbs, Args: []ast.Node{nil}},
			wantCode: formulaErrors.CodeMalformed,
			wantMsg:  "argument 1 of ABS is missing",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := v.Validate(tt.node, nil)
			if result.Valid {
				t.Fatal("Valid = true, want false")
			}

			found := false
			for _, f := range result.Errors {
				if f.Code == tt.wantCode && strings.Contains(f.Message, tt.wantMsg) {
					found = true
				}
			}
			if !found {
				t.Errorf("errors = %v, want %s finding containing %q", messages(result.Errors), tt.wantCode, tt.wantMsg)
			}
		})
	}
}

func TestValidator_DoesNotMutate(t *testing.T) {
	node := mustParse(t, "MIN(gross_pay / 0, foo)")
	before := node.String()

	New(nil).Validate(node, &Options{Strict: true})

	if after := node.String(); after != before {
		t.Errorf("tree changed: %s -> %s", before, after)
	}
}

func TestResult_Err(t *testing.T) {
	v := New(nil)

	valid := v.Validate(mustParse(t, "gross_pay"), nil)
	if err := valid.Err(); err != nil {
		t.Errorf("Err() = %v, want nil", err)
	}

	invalid := v.Validate(mustParse(t, "foo / 0"), nil)
	err := invalid.Err()
	var verr *formulaErrors.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Err() = %T, want *ValidationError", err)
	}
	if len(verr.Findings) != 2 {
		t.Errorf("len(Findings) = %d, want 2", len(verr.Findings))
	}
	if !strings.Contains(err.Error(), "2 errors") {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestOptions_Defaults(t *testing.T) {
	var nilOpts *Options
	got := nilOpts.withDefaults()
	if got.MaxDepth != DefaultMaxDepth || got.MaxComplexity != DefaultMaxComplexity || got.Strict {
		t.Errorf("nil options = %+v", got)
	}

	got = (&Options{Strict: true, MaxComplexity: 7}).withDefaults()
	if !got.Strict || got.MaxDepth != DefaultMaxDepth || got.MaxComplexity != 7 {
		t.Errorf("partial options = %+v", got)
	}
}
