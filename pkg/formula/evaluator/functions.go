package evaluator

import (
	"math"
	"strconv"
	"strings"

	"github.com/kishan-gau/recruitiq-sub007/pkg/formula/ast"
	formulaErrors "github.com/kishan-gau/recruitiq-sub007/pkg/formula/errors"
)

// maxRoundPlaces clamps ROUND's decimal count to the float64 exponent range.
const maxRoundPlaces = 308

func evalCall(call *ast.FunctionCall, vars map[string]float64) (float64, *formulaErrors.ExecutionError) {
	sig, ok := ast.LookupFunction(string(call.Name))
	if !ok {
		return 0, formulaErrors.NewMalformed("Unknown function: %s", call.Name)
	}
	if len(call.Args) != sig.Arity {
		return 0, formulaErrors.NewMalformed("%s requires %d arguments", sig.Name, sig.Arity)
	}

	// IF is lazy; only the selected branch is evaluated.
	if sig.Name == ast.FuncIf {
		return evalConditional(call.Args[0], call.Args[1], call.Args[2], vars)
	}

	args := make([]float64, len(call.Args))
	for i, arg := range call.Args {
		v, err := eval(arg, vars)
		if err != nil {
			return 0, err
		}
		args[i] = v
	}

	switch sig.Name {
	case ast.FuncMin:
		return math.Min(args[0], args[1]), nil
	case ast.FuncMax:
		return math.Max(args[0], args[1]), nil
	case ast.FuncRound:
		return Round(args[0], args[1]), nil
	case ast.FuncFloor:
		return math.Floor(args[0]), nil
	case ast.FuncCeil:
		return math.Ceil(args[0]), nil
	case ast.FuncAbs:
		return math.Abs(args[0]), nil
	}
	return 0, formulaErrors.NewMalformed("Unknown function: %s", call.Name)
}

// Round rounds x half away from zero to the given number of decimals.
// decimals is truncated to an integer; a negative count rounds to tens,
// hundreds and so on. Rounding to decimals works on the shortest decimal
// form of x, so ROUND(1.005, 2) is 1.01 as written, not 1.00 as stored.
func Round(x, decimals float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	if math.IsNaN(decimals) {
		decimals = 0
	}
	places := int(math.Max(-maxRoundPlaces, math.Min(maxRoundPlaces, math.Trunc(decimals))))

	if places < 0 {
		scale := math.Pow10(-places)
		return zeroSign(math.Round(x/scale) * scale)
	}
	return roundDecimal(x, places)
}

func roundDecimal(x float64, places int) float64 {
	s := strconv.FormatFloat(math.Abs(x), 'f', -1, 64)
	dot := strings.IndexByte(s, '.')
	if dot < 0 || len(s)-dot-1 <= places {
		return x
	}

	cut := dot + 1 + places
	digits := []byte(s[:cut])
	if s[cut] >= '5' {
		i := len(digits) - 1
		for ; i >= 0; i-- {
			if digits[i] == '.' {
				continue
			}
			if digits[i] == '9' {
				digits[i] = '0'
				continue
			}
			digits[i]++
			break
		}
		if i < 0 {
			digits = append([]byte{'1'}, digits...)
		}
	}

	v, err := strconv.ParseFloat(strings.TrimSuffix(string(digits), "."), 64)
	if err != nil {
		return x
	}
	return zeroSign(math.Copysign(v, x))
}

// zeroSign normalizes -0 to 0.
func zeroSign(v float64) float64 {
	if v == 0 {
		return 0
	}
	return v
}
