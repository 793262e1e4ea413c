package ast

import (
	"strconv"
	"strings"
)

// NodeType is the variant tag of an AST node.
// It is also the "type" discriminator used by the JSON codec.
type NodeType string

const (
	TypeLiteral      NodeType = "Literal"
	TypeVariable     NodeType = "Variable"
	TypeBinaryOp     NodeType = "BinaryOp"
	TypeUnaryOp      NodeType = "UnaryOp"
	TypeComparison   NodeType = "Comparison"
	TypeLogical      NodeType = "Logical"
	TypeConditional  NodeType = "Conditional"
	TypeFunctionCall NodeType = "FunctionCall"
)

// Node is implemented by every AST node.
type Node interface {
	// Type returns the variant tag of the node.
	Type() NodeType

	// String renders the node back to formula text. The output is fully
	// parenthesized so it parses to an equivalent tree.
	String() string

	node()
}

// Literal is a numeric constant.
type Literal struct {
	Value float64
}

// Variable references a payroll variable by name.
type Variable struct {
	Name string
}

// BinaryOp is an arithmetic operation.
type BinaryOp struct {
	Op    Operator // one of + - * / %
	Left  Node
	Right Node
}

// UnaryOp is a negation or logical NOT.
type UnaryOp struct {
	Op      Operator // - or NOT
	Operand Node
}

// Comparison compares two numeric operands and yields 1 or 0.
type Comparison struct {
	Op    Operator // one of > < == != >= <=
	Left  Node
	Right Node
}

// Logical combines two operands with AND / OR.
type Logical struct {
	Op    Operator // AND or OR
	Left  Node
	Right Node
}

// Conditional is the ternary expression condition ? consequent : alternate.
type Conditional struct {
	Condition  Node
	Consequent Node
	Alternate  Node
}

// FunctionCall is a call to one of the built-in functions.
type FunctionCall struct {
	Name Function
	Args []Node
}

func (*Literal) Type() NodeType      { return TypeLiteral }
func (*Variable) Type() NodeType     { return TypeVariable }
func (*BinaryOp) Type() NodeType     { return TypeBinaryOp }
func (*UnaryOp) Type() NodeType      { return TypeUnaryOp }
func (*Comparison) Type() NodeType   { return TypeComparison }
func (*Logical) Type() NodeType      { return TypeLogical }
func (*Conditional) Type() NodeType  { return TypeConditional }
func (*FunctionCall) Type() NodeType { return TypeFunctionCall }

func (*Literal) node()      {}
func (*Variable) node()     {}
func (*BinaryOp) node()     {}
func (*UnaryOp) node()      {}
func (*Comparison) node()   {}
func (*Logical) node()      {}
func (*Conditional) node()  {}
func (*FunctionCall) node() {}

// String returns the shortest decimal form of the value.
func (n *Literal) String() string {
	return strconv.FormatFloat(n.Value, 'f', -1, 64)
}

func (n *Variable) String() string {
	return n.Name
}

func (n *BinaryOp) String() string {
	return "(" + str(n.Left) + " " + string(n.Op) + " " + str(n.Right) + ")"
}

func (n *UnaryOp) String() string {
	if n.Op == OpNot {
		return "(NOT " + str(n.Operand) + ")"
	}
	return "(" + string(n.Op) + str(n.Operand) + ")"
}

func (n *Comparison) String() string {
	return "(" + str(n.Left) + " " + string(n.Op) + " " + str(n.Right) + ")"
}

func (n *Logical) String() string {
	return "(" + str(n.Left) + " " + string(n.Op) + " " + str(n.Right) + ")"
}

func (n *Conditional) String() string {
	return "(" + str(n.Condition) + " ? " + str(n.Consequent) + " : " + str(n.Alternate) + ")"
}

func (n *FunctionCall) String() string {
	args := make([]string, len(n.Args))
	for i, arg := range n.Args {
		args[i] = str(arg)
	}
	return string(n.Name) + "(" + strings.Join(args, ", ") + ")"
}

// str renders a child, tolerating nil children in hand-built trees.
func str(n Node) string {
	if IsNil(n) {
		return "<nil>"
	}
	return n.String()
}

// IsNil reports whether n is nil or a typed nil pointer.
func IsNil(n Node) bool {
	switch v := n.(type) {
	case nil:
		return true
	case *Literal:
		return v == nil
	case *Variable:
		return v == nil
	case *BinaryOp:
		return v == nil
	case *UnaryOp:
		return v == nil
	case *Comparison:
		return v == nil
	case *Logical:
		return v == nil
	case *Conditional:
		return v == nil
	case *FunctionCall:
		return v == nil
	default:
		return false
	}
}
