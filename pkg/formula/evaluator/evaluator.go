// Package evaluator computes the value of a formula syntax tree.
//
// Evaluation is a structural recursion over the tree with float64
// arithmetic. Comparisons and logical operators yield 1 or 0, and any
// non-zero value is true. AND, OR, the ternary operator and IF evaluate
// lazily, so an untaken branch never fails.
//
// The evaluator does not consult the variable whitelist. Run the validator
// first; the evaluator only rejects what it cannot compute.
package evaluator

import (
	"math"

	"github.com/kishan-gau/recruitiq-sub007/pkg/formula/ast"
	formulaErrors "github.com/kishan-gau/recruitiq-sub007/pkg/formula/errors"
)

// Evaluate computes node with the given variable bindings. Runtime failures
// are returned as *errors.ExecutionError.
func Evaluate(node ast.Node, vars map[string]float64) (float64, error) {
	value, err := eval(node, vars)
	if err != nil {
		return 0, err
	}
	return value, nil
}

func eval(node ast.Node, vars map[string]float64) (float64, *formulaErrors.ExecutionError) {
	if ast.IsNil(node) {
		return 0, formulaErrors.NewMalformed("Malformed formula: missing node")
	}

	switch n := node.(type) {
	case *ast.Literal:
		return n.Value, nil

	case *ast.Variable:
		value, ok := vars[n.Name]
		if !ok {
			return 0, formulaErrors.NewMissingVariable(n.Name)
		}
		return value, nil

	case *ast.BinaryOp:
		return evalBinary(n, vars)

	case *ast.UnaryOp:
		operand, err := eval(n.Operand, vars)
		if err != nil {
			return 0, err
		}
		switch n.Op {
		case ast.OpSub:
			return -operand, nil
		case ast.OpNot:
			return boolean(!truthy(operand)), nil
		}
		return 0, formulaErrors.NewMalformed("Malformed formula: invalid unary operator '%s'", n.Op)

	case *ast.Comparison:
		return evalComparison(n, vars)

	case *ast.Logical:
		return evalLogical(n, vars)

	case *ast.Conditional:
		return evalConditional(n.Condition, n.Consequent, n.Alternate, vars)

	case *ast.FunctionCall:
		return evalCall(n, vars)
	}

	return 0, formulaErrors.NewMalformed("Malformed formula: unsupported node %T", node)
}

func evalBinary(n *ast.BinaryOp, vars map[string]float64) (float64, *formulaErrors.ExecutionError) {
	left, err := eval(n.Left, vars)
	if err != nil {
		return 0, err
	}
	right, err := eval(n.Right, vars)
	if err != nil {
		return 0, err
	}

	switch n.Op {
	case ast.OpAdd:
		return left + right, nil
	case ast.OpSub:
		return left - right, nil
	case ast.OpMul:
		return left * right, nil
	case ast.OpDiv:
		if right == 0 {
			return 0, formulaErrors.NewDivisionByZero()
		}
		return left / right, nil
	case ast.OpMod:
		if right == 0 {
			return 0, formulaErrors.NewModuloByZero()
		}
		return math.Mod(left, right), nil
	}
	return 0, formulaErrors.NewMalformed("Malformed formula: invalid arithmetic operator '%s'", n.Op)
}

func evalComparison(n *ast.Comparison, vars map[string]float64) (float64, *formulaErrors.ExecutionError) {
	left, err := eval(n.Left, vars)
	if err != nil {
		return 0, err
	}
	right, err := eval(n.Right, vars)
	if err != nil {
		return 0, err
	}

	switch n.Op {
	case ast.OpGreater:
		return boolean(left > right), nil
	case ast.OpLess:
		return boolean(left < right), nil
	case ast.OpGreaterEqual:
		return boolean(left >= right), nil
	case ast.OpLessEqual:
		return boolean(left <= right), nil
	case ast.OpEqual:
		return boolean(left == right), nil
	case ast.OpNotEqual:
		return boolean(left != right), nil
	}
	return 0, formulaErrors.NewMalformed("Malformed formula: invalid comparison operator '%s'", n.Op)
}

func evalLogical(n *ast.Logical, vars map[string]float64) (float64, *formulaErrors.ExecutionError) {
	if !n.Op.IsLogical() {
		return 0, formulaErrors.NewMalformed("Malformed formula: invalid logical operator '%s'", n.Op)
	}

	left, err := eval(n.Left, vars)
	if err != nil {
		return 0, err
	}
	// Short-circuit: the right operand is skipped when the left decides.
	if n.Op == ast.OpAnd && !truthy(left) {
		return 0, nil
	}
	if n.Op == ast.OpOr && truthy(left) {
		return 1, nil
	}

	right, err := eval(n.Right, vars)
	if err != nil {
		return 0, err
	}
	return boolean(truthy(right)), nil
}

func evalConditional(cond, consequent, alternate ast.Node, vars map[string]float64) (float64, *formulaErrors.ExecutionError) {
	test, err := eval(cond, vars)
	if err != nil {
		return 0, err
	}
	if truthy(test) {
		return eval(consequent, vars)
	}
	return eval(alternate, vars)
}

func truthy(v float64) bool {
	return v != 0
}

func boolean(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
