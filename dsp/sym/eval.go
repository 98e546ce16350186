package sym

import (
	"fmt"
	"math"
)

// Eval computes the numeric value of e with variables bound by env. It
// returns an error for a variable missing from env.
func Eval(e Expr, env map[string]float64) (float64, error) {
	switch n := e.(type) {
	case NumExpr:
		return n.Value, nil
	case VarExpr:
		v, ok := env[n.Name]
		if !ok {
			return 0, fmt.Errorf("sym: unbound variable %q", n.Name)
		}

		return v, nil
	case AddExpr:
		return evalBinary(n.L, n.R, env, func(l, r float64) float64 { return l + r })
	case SubExpr:
		return evalBinary(n.L, n.R, env, func(l, r float64) float64 { return l - r })
	case MulExpr:
		return evalBinary(n.L, n.R, env, func(l, r float64) float64 { return l * r })
	case DivExpr:
		return evalBinary(n.L, n.R, env, func(l, r float64) float64 { return l / r })
	case NegExpr:
		v, err := Eval(n.X, env)
		return -v, err
	case PowExpr:
		v, err := Eval(n.Base, env)
		if err != nil {
			return 0, err
		}

		out := 1.0
		for range n.N {
			out *= v
		}

		return out, nil
	case CallExpr:
		v, err := Eval(n.Arg, env)
		if err != nil {
			return 0, err
		}

		return evalFunc(n.Fn, v), nil
	default:
		panic("sym: unknown expression node")
	}
}

func evalBinary(l, r Expr, env map[string]float64, op func(l, r float64) float64) (float64, error) {
	lv, err := Eval(l, env)
	if err != nil {
		return 0, err
	}

	rv, err := Eval(r, env)
	if err != nil {
		return 0, err
	}

	return op(lv, rv), nil
}

func evalFunc(fn Func, v float64) float64 {
	switch fn {
	case FuncTanh:
		return math.Tanh(v)
	case FuncAsinh:
		return math.Asinh(v)
	case FuncSinh:
		return math.Sinh(v)
	case FuncCosh:
		return math.Cosh(v)
	case FuncExp:
		return math.Exp(v)
	case FuncLog:
		return math.Log(v)
	case FuncSqrt:
		return math.Sqrt(v)
	default:
		panic("sym: unknown function")
	}
}
