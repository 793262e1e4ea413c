package ast

// Operator is an operator symbol or keyword as written in a formula.
type Operator string

const (
	OpAdd Operator = "+"
	OpSub Operator = "-" // binary subtraction and unary negation
	OpMul Operator = "*"
	OpDiv Operator = "/"
	OpMod Operator = "%"

	OpGreater      Operator = ">"
	OpLess         Operator = "<"
	OpEqual        Operator = "=="
	OpNotEqual     Operator = "!="
	OpGreaterEqual Operator = ">="
	OpLessEqual    Operator = "<="

	OpAnd Operator = "AND"
	OpOr  Operator = "OR"
	OpNot Operator = "NOT"
)

// IsArithmetic returns true for operators valid in a BinaryOp.
func (o Operator) IsArithmetic() bool {
	switch o {
	case OpAdd, OpSub, OpMul, OpDiv, OpMod:
		return true
	}
	return false
}

// IsComparison returns true for operators valid in a Comparison.
func (o Operator) IsComparison() bool {
	switch o {
	case OpGreater, OpLess, OpEqual, OpNotEqual, OpGreaterEqual, OpLessEqual:
		return true
	}
	return false
}

// IsLogical returns true for operators valid in a Logical node.
func (o Operator) IsLogical() bool {
	return o == OpAnd || o == OpOr
}

// IsUnary returns true for operators valid in a UnaryOp.
func (o Operator) IsUnary() bool {
	return o == OpSub || o == OpNot
}
