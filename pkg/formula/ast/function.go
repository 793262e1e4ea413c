package ast

// Function is the name of a built-in function.
type Function string

const (
	FuncMin   Function = "MIN"
	FuncMax   Function = "MAX"
	FuncRound Function = "ROUND"
	FuncFloor Function = "FLOOR"
	FuncCeil  Function = "CEIL"
	FuncAbs   Function = "ABS"
	FuncIf    Function = "IF"
)

// FunctionSignature describes a built-in function.
type FunctionSignature struct {
	Name        Function
	Arity       int
	Description string
}

var functions = map[Function]FunctionSignature{
	FuncMin:   {Name: FuncMin, Arity: 2, Description: "Smaller of two values"},
	FuncMax:   {Name: FuncMax, Arity: 2, Description: "Larger of two values"},
	FuncRound: {Name: FuncRound, Arity: 2, Description: "Round half away from zero to N decimals"},
	FuncFloor: {Name: FuncFloor, Arity: 1, Description: "Largest integer not greater than the value"},
	FuncCeil:  {Name: FuncCeil, Arity: 1, Description: "Smallest integer not less than the value"},
	FuncAbs:   {Name: FuncAbs, Arity: 1, Description: "Absolute value"},
	FuncIf:    {Name: FuncIf, Arity: 3, Description: "IF(condition, then, else)"},
}

// functionOrder keeps listings stable for help output and suggestions.
var functionOrder = []Function{FuncMin, FuncMax, FuncRound, FuncFloor, FuncCeil, FuncAbs, FuncIf}

// LookupFunction returns the signature of a built-in function.
func LookupFunction(name string) (FunctionSignature, bool) {
	sig, ok := functions[Function(name)]
	return sig, ok
}

// Functions returns the signatures of all built-in functions in a stable order.
func Functions() []FunctionSignature {
	out := make([]FunctionSignature, 0, len(functionOrder))
	for _, name := range functionOrder {
		out = append(out, functions[name])
	}
	return out
}
