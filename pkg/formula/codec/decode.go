package codec

import (
	"fmt"

	"github.com/kishan-gau/recruitiq-sub007/pkg/formula/ast"
)

func decode(w *jsonNode, path string) (ast.Node, error) {
	if w == nil {
		return nil, invalid(path, "missing node")
	}

	switch w.Type {
	case ast.TypeLiteral:
		if w.Value == nil {
			return nil, invalid(path, "Literal requires a value")
		}
		return &ast.Literal{Value: *w.Value}, nil

	case ast.TypeVariable:
		if w.Name == "" {
			return nil, invalid(path, "Variable requires a name")
		}
		return &ast.Variable{Name: w.Name}, nil

	case ast.TypeBinaryOp:
		if !w.Operator.IsArithmetic() {
			return nil, invalid(path, "invalid BinaryOp operator %q", w.Operator)
		}
		left, right, err := decodePair(w, path)
		if err != nil {
			return nil, err
		}
		return &ast.BinaryOp{Op: w.Operator, Left: left, Right: right}, nil

	case ast.TypeUnaryOp:
		if !w.Operator.IsUnary() {
			return nil, invalid(path, "invalid UnaryOp operator %q", w.Operator)
		}
		operand, err := decode(w.Operand, path+".operand")
		if err != nil {
			return nil, err
		}
		return &ast.UnaryOp{Op: w.Operator, Operand: operand}, nil

	case ast.TypeComparison:
		if !w.Operator.IsComparison() {
			return nil, invalid(path, "invalid Comparison operator %q", w.Operator)
		}
		left, right, err := decodePair(w, path)
		if err != nil {
			return nil, err
		}
		return &ast.Comparison{Op: w.Operator, Left: left, Right: right}, nil

	case ast.TypeLogical:
		if !w.Operator.IsLogical() {
			return nil, invalid(path, "invalid Logical operator %q", w.Operator)
		}
		left, right, err := decodePair(w, path)
		if err != nil {
			return nil, err
		}
		return &ast.Logical{Op: w.Operator, Left: left, Right: right}, nil

	case ast.TypeConditional:
		cond, err := decode(w.Condition, path+".condition")
		if err != nil {
			return nil, err
		}
		consequent, err := decode(w.Consequent, path+".consequent")
		if err != nil {
			return nil, err
		}
		alternate, err := decode(w.Alternate, path+".alternate")
		if err != nil {
			return nil, err
		}
		return &ast.Conditional{Condition: cond, Consequent: consequent, Alternate: alternate}, nil

	case ast.TypeFunctionCall:
		if _, ok := ast.LookupFunction(w.Name); !ok {
			return nil, invalid(path, "unknown function %q", w.Name)
		}
		if len(w.Args) == 0 {
			return nil, invalid(path, "FunctionCall requires args")
		}
		call := &ast.FunctionCall{Name: ast.Function(w.Name), Args: make([]ast.Node, len(w.Args))}
		for i, arg := range w.Args {
			node, err := decode(arg, fmt.Sprintf("%s.args[%d]", path, i))
			if err != nil {
				return nil, err
			}
			call.Args[i] = node
		}
		return call, nil

	case "":
		return nil, invalid(path, "missing type")
	}

	return nil, invalid(path, "unknown node type %q", w.Type)
}

func decodePair(w *jsonNode, path string) (ast.Node, ast.Node, error) {
	left, err := decode(w.Left, path+".left")
	if err != nil {
		return nil, nil, err
	}
	right, err := decode(w.Right, path+".right")
	if err != nil {
		return nil, nil, err
	}
	return left, right, nil
}
