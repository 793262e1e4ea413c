package codec

import (
	"fmt"
	"math"

	"github.com/kishan-gau/recruitiq-sub007/pkg/formula/ast"
)

func encode(node ast.Node, path string) (*jsonNode, error) {
	if ast.IsNil(node) {
		return nil, invalid(path, "missing node")
	}

	switch n := node.(type) {
	case *ast.Literal:
		if math.IsNaN(n.Value) || math.IsInf(n.Value, 0) {
			return nil, invalid(path, "literal %v is not a finite number", n.Value)
		}
		value := n.Value
		return &jsonNode{Type: ast.TypeLiteral, Value: &value}, nil

	case *ast.Variable:
		return &jsonNode{Type: ast.TypeVariable, Name: n.Name}, nil

	case *ast.BinaryOp:
		left, right, err := encodePair(n.Left, n.Right, path)
		if err != nil {
			return nil, err
		}
		return &jsonNode{Type: ast.TypeBinaryOp, Operator: n.Op, Left: left, Right: right}, nil

	case *ast.UnaryOp:
		operand, err := encode(n.Operand, path+".operand")
		if err != nil {
			return nil, err
		}
		return &jsonNode{Type: ast.TypeUnaryOp, Operator: n.Op, Operand: operand}, nil

	case *ast.Comparison:
		left, right, err := encodePair(n.Left, n.Right, path)
		if err != nil {
			return nil, err
		}
		return &jsonNode{Type: ast.TypeComparison, Operator: n.Op, Left: left, Right: right}, nil

	case *ast.Logical:
		left, right, err := encodePair(n.Left, n.Right, path)
		if err != nil {
			return nil, err
		}
		return &jsonNode{Type: ast.TypeLogical, Operator: n.Op, Left: left, Right: right}, nil

	case *ast.Conditional:
		cond, err := encode(n.Condition, path+".condition")
		if err != nil {
			return nil, err
		}
		consequent, err := encode(n.Consequent, path+".consequent")
		if err != nil {
			return nil, err
		}
		alternate, err := encode(n.Alternate, path+".alternate")
		if err != nil {
			return nil, err
		}
		return &jsonNode{Type: ast.TypeConditional, Condition: cond, Consequent: consequent, Alternate: alternate}, nil

	case *ast.FunctionCall:
		if len(n.Args) == 0 {
			return nil, invalid(path, "function %s has no arguments", n.Name)
		}
		args := make([]*jsonNode, len(n.Args))
		for i, arg := range n.Args {
			wire, err := encode(arg, fmt.Sprintf("%s.args[%d]", path, i))
			if err != nil {
				return nil, err
			}
			args[i] = wire
		}
		return &jsonNode{Type: ast.TypeFunctionCall, Name: string(n.Name), Args: args}, nil
	}

	return nil, invalid(path, "unsupported node %T", node)
}

func encodePair(left, right ast.Node, path string) (*jsonNode, *jsonNode, error) {
	l, err := encode(left, path+".left")
	if err != nil {
		return nil, nil, err
	}
	r, err := encode(right, path+".right")
	if err != nil {
		return nil, nil, err
	}
	return l, r, nil
}
