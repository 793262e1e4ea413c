// Package ast provides the Abstract Syntax Tree (AST) for payroll formulas.
//
// A formula such as
//
//	hours_worked > 160 ? (hours_worked - 160) * overtime_rate : 0
//
// is represented as a tree of nodes. The node set is closed: every node is one
// of the pointer types declared in this package, and the unexported marker
// method on Node prevents other packages from adding variants. Consumers switch
// on the concrete type (or on Node.Type) to walk the tree.
//
// # Core Types
//
// Literal: numeric constant
//
// Variable: reference to a whitelisted payroll variable
//
// BinaryOp: arithmetic (+ - * / %)
//
// UnaryOp: negation (-) or logical NOT
//
// Comparison: > < == != >= <=
//
// Logical: AND / OR
//
// Conditional: ternary (a ? b : c)
//
// FunctionCall: MIN, MAX, ROUND, FLOOR, CEIL, ABS, IF
//
// # Ownership
//
// Each node exclusively owns its children. The parser never shares a node
// between two parents, so a parsed tree is acyclic. Trees should be treated as
// immutable after construction: the validator, evaluator and serializer only
// read them.
//
// # Traversal
//
// Walk visits nodes in pre-order:
//
//	ast.Walk(root, func(n ast.Node) bool {
//	    if v, ok := n.(*ast.Variable); ok {
//	        fmt.Println(v.Name)
//	    }
//	    return true
//	})
//
// Count, Depth, Complexity and Variables compute the structural statistics
// used by the validator's limits and the engine's GetStats.
package ast
