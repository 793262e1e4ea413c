package validator

import (
	"fmt"

	"github.com/kishan-gau/recruitiq-sub007/pkg/formula/ast"
	formulaErrors "github.com/kishan-gau/recruitiq-sub007/pkg/formula/errors"
	"github.com/kishan-gau/recruitiq-sub007/pkg/formula/variables"
)

// SemanticValidator checks what a well-formed tree means: that it only
// references known variables and functions, calls functions with the right
// number of arguments, and never divides by a literal zero.
type SemanticValidator struct {
	whitelist *variables.Whitelist
	names     []string // Whitelist names, for suggestions
}

// NewSemanticValidator creates a semantic validator over a whitelist.
func NewSemanticValidator(whitelist *variables.Whitelist) *SemanticValidator {
	return &SemanticValidator{
		whitelist: whitelist,
		names:     whitelist.Names(),
	}
}

// Validate appends semantic findings for node.
func (s *SemanticValidator) Validate(node ast.Node, opts Options, errs, warnings *formulaErrors.FindingList) {
	reported := make(map[string]bool)

	ast.Walk(node, func(n ast.Node) bool {
		switch v := n.(type) {
		case *ast.Variable:
			if v.Name != "" && !s.whitelist.Contains(v.Name) && !reported[v.Name] {
				reported[v.Name] = true
				errs.AddFindingWithSuggestion(
					formulaErrors.CodeUnknownVariable,
					"Unknown variable: "+v.Name,
					v,
					formulaErrors.SuggestName(v.Name, s.names),
				)
			}

		case *ast.FunctionCall:
			s.validateCall(v, errs)

		case *ast.BinaryOp:
			s.validateDivisor(v, opts, errs, warnings)
		}
		return true
	})
}

func (s *SemanticValidator) validateCall(call *ast.FunctionCall, errs *formulaErrors.FindingList) {
	sig, ok := ast.LookupFunction(string(call.Name))
	if !ok {
		errs.AddFindingWithSuggestion(
			formulaErrors.CodeUnknownFunction,
			fmt.Sprintf("Unknown function: %s", call.Name),
			call,
			fmt.Sprintf("Valid functions: %s", functionNames()),
		)
		return
	}

	if len(call.Args) != sig.Arity {
		errs.AddFindingWithSuggestion(
			formulaErrors.CodeArity,
			fmt.Sprintf("%s requires %d arguments", sig.Name, sig.Arity),
			call,
			formulaErrors.SuggestArity(string(sig.Name), sig.Arity),
		)
	}
}

func (s *SemanticValidator) validateDivisor(op *ast.BinaryOp, opts Options, errs, warnings *formulaErrors.FindingList) {
	if op.Op != ast.OpDiv && op.Op != ast.OpMod {
		return
	}
	if ast.IsNil(op.Right) {
		return
	}

	if isLiteralZero(op.Right) {
		code, msg := formulaErrors.CodeDivisionByZero, "Division by zero"
		if op.Op == ast.OpMod {
			code, msg = formulaErrors.CodeModuloByZero, "Modulo by zero"
		}
		errs.AddFinding(code, msg, op)
		return
	}

	if opts.Strict && !isConstant(op.Right) {
		warnings.AddFindingWithSuggestion(
			formulaErrors.CodeVariableDivisor,
			fmt.Sprintf("Divisor %s may evaluate to zero at runtime", op.Right),
			op,
			"Guard the divisor, e.g. x > 0 ? y / x : 0",
		)
	}
}

// isLiteralZero reports whether n is the literal 0 or -0, possibly wrapped in
// unary minus.
func isLiteralZero(n ast.Node) bool {
	switch v := n.(type) {
	case *ast.Literal:
		return v != nil && v.Value == 0
	case *ast.UnaryOp:
		return v != nil && v.Op == ast.OpSub && isLiteralZero(v.Operand)
	}
	return false
}

// isConstant reports whether n is a literal, possibly wrapped in unary minus.
func isConstant(n ast.Node) bool {
	switch v := n.(type) {
	case *ast.Literal:
		return v != nil
	case *ast.UnaryOp:
		return v != nil && v.Op == ast.OpSub && isConstant(v.Operand)
	}
	return false
}

func functionNames() string {
	out := ""
	for i, sig := range ast.Functions() {
		if i > 0 {
			out += ", "
		}
		out += string(sig.Name)
	}
	return out
}
