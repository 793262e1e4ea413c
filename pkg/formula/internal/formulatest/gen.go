// Package formulatest provides rapid generators for formula syntax trees.
package formulatest

import (
	"pgregory.net/rapid"

	"github.com/kishan-gau/recruitiq-sub007/pkg/formula/ast"
)

var (
	arithmeticOps = []ast.Operator{ast.OpAdd, ast.OpSub, ast.OpMul, ast.OpDiv, ast.OpMod}
	comparisonOps = []ast.Operator{ast.OpGreater, ast.OpLess, ast.OpEqual, ast.OpNotEqual, ast.OpGreaterEqual, ast.OpLessEqual}
	logicalOps    = []ast.Operator{ast.OpAnd, ast.OpOr}
	unaryOps      = []ast.Operator{ast.OpSub, ast.OpNot}
)

// Generator draws random trees. The zero value draws trees over the names
// x, y and z with well-formed function calls.
type Generator struct {
	Names    []string // Variable names to draw from
	MaxDepth int      // Maximum tree depth (default 5)

	// WrongArity lets function calls draw one argument too many or too few.
	WrongArity bool

	// UnknownNames mixes names outside Names into variable references.
	UnknownNames bool
}

// Node draws a tree. Literals are non-negative so that the printed form of
// every generated tree parses back to the same tree.
func (g Generator) Node(t *rapid.T) ast.Node {
	depth := g.MaxDepth
	if depth <= 0 {
		depth = 5
	}
	return g.node(t, depth)
}

func (g Generator) names() []string {
	if len(g.Names) == 0 {
		return []string{"x", "y", "z"}
	}
	return g.Names
}

func (g Generator) node(t *rapid.T, depth int) ast.Node {
	if depth <= 1 {
		return g.leaf(t)
	}

	switch rapid.IntRange(0, 7).Draw(t, "kind") {
	case 0:
		return g.leaf(t)
	case 1:
		return &ast.BinaryOp{
			Op:    rapid.SampledFrom(arithmeticOps).Draw(t, "arith"),
			Left:  g.node(t, depth-1),
			Right: g.node(t, depth-1),
		}
	case 2:
		return &ast.UnaryOp{
			Op:      rapid.SampledFrom(unaryOps).Draw(t, "unary"),
			Operand: g.node(t, depth-1),
		}
	case 3:
		return &ast.Comparison{
			Op:    rapid.SampledFrom(comparisonOps).Draw(t, "cmp"),
			Left:  g.node(t, depth-1),
			Right: g.node(t, depth-1),
		}
	case 4:
		return &ast.Logical{
			Op:    rapid.SampledFrom(logicalOps).Draw(t, "logical"),
			Left:  g.node(t, depth-1),
			Right: g.node(t, depth-1),
		}
	case 5:
		return &ast.Conditional{
			Condition:  g.node(t, depth-1),
			Consequent: g.node(t, depth-1),
			Alternate:  g.node(t, depth-1),
		}
	default:
		return g.call(t, depth)
	}
}

func (g Generator) call(t *rapid.T, depth int) ast.Node {
	sig := rapid.SampledFrom(ast.Functions()).Draw(t, "func")
	arity := sig.Arity
	if g.WrongArity && rapid.IntRange(0, 3).Draw(t, "wrongArity") == 0 {
		arity += rapid.SampledFrom([]int{-1, 1}).Draw(t, "arityDelta")
		if arity < 1 {
			arity = 2
		}
	}

	call := &ast.FunctionCall{Name: sig.Name, Args: make([]ast.Node, arity)}
	for i := range call.Args {
		call.Args[i] = g.node(t, depth-1)
	}
	return call
}

func (g Generator) leaf(t *rapid.T) ast.Node {
	if rapid.Bool().Draw(t, "isLiteral") {
		return &ast.Literal{Value: g.literal(t)}
	}
	if g.UnknownNames && rapid.IntRange(0, 4).Draw(t, "unknown") == 0 {
		return &ast.Variable{Name: rapid.StringMatching(`unknown_[a-z]{1,4}`).Draw(t, "unknownName")}
	}
	return &ast.Variable{Name: rapid.SampledFrom(g.names()).Draw(t, "name")}
}

func (g Generator) literal(t *rapid.T) float64 {
	switch rapid.IntRange(0, 3).Draw(t, "literalKind") {
	case 0:
		return 0
	case 1:
		return float64(rapid.IntRange(0, 1000).Draw(t, "int"))
	default:
		return float64(rapid.IntRange(0, 100_000_000).Draw(t, "cents")) / 100
	}
}

// Bindings draws a value for every name. Zero is drawn often so that runtime
// division by zero is exercised.
func Bindings(t *rapid.T, names []string) map[string]float64 {
	out := make(map[string]float64, len(names))
	for _, name := range names {
		if rapid.IntRange(0, 4).Draw(t, "zero_"+name) == 0 {
			out[name] = 0
			continue
		}
		out[name] = rapid.Float64Range(-1e4, 1e4).Draw(t, "value_"+name)
	}
	return out
}
