package validator

import (
	"fmt"

	"github.com/kishan-gau/recruitiq-sub007/pkg/formula/ast"
	formulaErrors "github.com/kishan-gau/recruitiq-sub007/pkg/formula/errors"
)

// StructuralValidator checks the shape of a tree: every node is complete,
// operators belong to the right family, and the tree stays within the depth
// and complexity limits.
type StructuralValidator struct{}

// NewStructuralValidator creates a structural validator.
func NewStructuralValidator() *StructuralValidator {
	return &StructuralValidator{}
}

// Validate appends structural findings for node.
func (s *StructuralValidator) Validate(node ast.Node, opts Options, errs, warnings *formulaErrors.FindingList) {
	if ast.IsNil(node) {
		errs.AddFinding(formulaErrors.CodeMalformed, "Malformed formula: empty tree", nil)
		return
	}

	ast.Walk(node, func(n ast.Node) bool {
		s.validateNode(n, errs)
		return true
	})

	if depth := ast.Depth(node); depth > opts.MaxDepth {
		errs.AddFindingWithSuggestion(
			formulaErrors.CodeMaxDepth,
			fmt.Sprintf("Formula is too deeply nested (depth %d exceeds maximum of %d)", depth, opts.MaxDepth),
			node,
			"Split the formula into smaller pay components",
		)
	}

	if complexity := ast.Complexity(node); complexity > opts.MaxComplexity {
		warnings.AddFindingWithSuggestion(
			formulaErrors.CodeComplexity,
			fmt.Sprintf("Formula is too complex (complexity %d exceeds maximum of %d)", complexity, opts.MaxComplexity),
			node,
			"Consider simplifying the formula",
		)
	}
}

func (s *StructuralValidator) validateNode(n ast.Node, errs *formulaErrors.FindingList) {
	switch v := n.(type) {
	case *ast.BinaryOp:
		if !v.Op.IsArithmetic() {
			s.invalidOperator(errs, v, v.Op)
		}
		s.requireChildren(errs, v, child{"left operand", v.Left}, child{"right operand", v.Right})

	case *ast.UnaryOp:
		if !v.Op.IsUnary() {
			s.invalidOperator(errs, v, v.Op)
		}
		s.requireChildren(errs, v, child{"operand", v.Operand})

	case *ast.Comparison:
		if !v.Op.IsComparison() {
			s.invalidOperator(errs, v, v.Op)
		}
		s.requireChildren(errs, v, child{"left operand", v.Left}, child{"right operand", v.Right})

	case *ast.Logical:
		if !v.Op.IsLogical() {
			s.invalidOperator(errs, v, v.Op)
		}
		s.requireChildren(errs, v, child{"left operand", v.Left}, child{"right operand", v.Right})

	case *ast.Conditional:
		s.requireChildren(errs, v, child{"condition", v.Condition}, child{"consequent", v.Consequent}, child{"alternate", v.Alternate})

	case *ast.FunctionCall:
		for i, arg := range v.Args {
			if ast.IsNil(arg) {
				errs.AddFinding(formulaErrors.CodeMalformed,
					fmt.Sprintf("Malformed formula: argument %d of %s is missing", i+1, v.Name), v)
			}
		}

	case *ast.Variable:
		if v.Name == "" {
			errs.AddFinding(formulaErrors.CodeMalformed, "Malformed formula: variable without a name", v)
		}
	}
}

func (s *StructuralValidator) invalidOperator(errs *formulaErrors.FindingList, n ast.Node, op ast.Operator) {
	errs.AddFinding(formulaErrors.CodeInvalidOperator,
		fmt.Sprintf("Invalid operator '%s' in %s", op, n.Type()), n)
}

type child struct {
	label string
	node  ast.Node
}

func (s *StructuralValidator) requireChildren(errs *formulaErrors.FindingList, n ast.Node, children ...child) {
	for _, c := range children {
		if ast.IsNil(c.node) {
			errs.AddFinding(formulaErrors.CodeMalformed,
				fmt.Sprintf("Malformed formula: %s is missing its %s", n.Type(), c.label), n)
		}
	}
}
