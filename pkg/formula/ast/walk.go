package ast

// Children returns the direct children of a node in evaluation order.
// Nil children of hand-built trees are skipped.
func Children(n Node) []Node {
	var out []Node
	add := func(children ...Node) {
		for _, c := range children {
			if !IsNil(c) {
				out = append(out, c)
			}
		}
	}

	switch v := n.(type) {
	case *BinaryOp:
		add(v.Left, v.Right)
	case *UnaryOp:
		add(v.Operand)
	case *Comparison:
		add(v.Left, v.Right)
	case *Logical:
		add(v.Left, v.Right)
	case *Conditional:
		add(v.Condition, v.Consequent, v.Alternate)
	case *FunctionCall:
		add(v.Args...)
	}
	return out
}

// Walk traverses the tree rooted at n in pre-order. If fn returns false the
// children of that node are skipped.
func Walk(n Node, fn func(Node) bool) {
	if IsNil(n) {
		return
	}
	if !fn(n) {
		return
	}
	for _, child := range Children(n) {
		Walk(child, fn)
	}
}

// Count returns the number of nodes in the tree.
func Count(n Node) int {
	count := 0
	Walk(n, func(Node) bool {
		count++
		return true
	})
	return count
}

// Depth returns the height of the tree. A single leaf has depth 1.
func Depth(n Node) int {
	if IsNil(n) {
		return 0
	}
	deepest := 0
	for _, child := range Children(n) {
		if d := Depth(child); d > deepest {
			deepest = d
		}
	}
	return deepest + 1
}

// Node weights used by Complexity. Branching constructs and calls cost more
// than plain arithmetic.
const (
	weightLeaf        = 1
	weightUnary       = 1
	weightOperator    = 2
	weightConditional = 3
	weightCall        = 3
)

// Complexity returns a weighted node count of the tree.
func Complexity(n Node) int {
	total := 0
	Walk(n, func(node Node) bool {
		switch node.(type) {
		case *Literal, *Variable:
			total += weightLeaf
		case *UnaryOp:
			total += weightUnary
		case *BinaryOp, *Comparison, *Logical:
			total += weightOperator
		case *Conditional:
			total += weightConditional
		case *FunctionCall:
			total += weightCall
		}
		return true
	})
	return total
}

// Variables returns the distinct variable names referenced by the tree in the
// order they are first encountered.
func Variables(n Node) []string {
	seen := make(map[string]bool)
	names := make([]string, 0)
	Walk(n, func(node Node) bool {
		if v, ok := node.(*Variable); ok && !seen[v.Name] {
			seen[v.Name] = true
			names = append(names, v.Name)
		}
		return true
	})
	return names
}
