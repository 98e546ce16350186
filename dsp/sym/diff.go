package sym

// Diff returns the analytic derivative of e with respect to the named
// variable. Differentiation is total over the supported node set; the result
// is built through the simplifying constructors.
func Diff(e Expr, name string) Expr {
	switch n := e.(type) {
	case NumExpr:
		return Num(0)
	case VarExpr:
		if n.Name == name {
			return Num(1)
		}

		return Num(0)
	case AddExpr:
		return Add(Diff(n.L, name), Diff(n.R, name))
	case SubExpr:
		return Sub(Diff(n.L, name), Diff(n.R, name))
	case MulExpr:
		return Add(Mul(Diff(n.L, name), n.R), Mul(n.L, Diff(n.R, name)))
	case DivExpr:
		return Div(
			Sub(Mul(Diff(n.L, name), n.R), Mul(n.L, Diff(n.R, name))),
			PowI(n.R, 2),
		)
	case NegExpr:
		return Neg(Diff(n.X, name))
	case PowExpr:
		// d(u^n) = n * u^(n-1) * u'
		return Mul(Mul(Num(float64(n.N)), PowI(n.Base, n.N-1)), Diff(n.Base, name))
	case CallExpr:
		return Mul(diffCall(n), Diff(n.Arg, name))
	default:
		panic("sym: unknown expression node")
	}
}

// diffCall returns the derivative of fn(u) with respect to u.
func diffCall(c CallExpr) Expr {
	u := c.Arg

	switch c.Fn {
	case FuncTanh:
		return Sub(Num(1), PowI(Tanh(u), 2))
	case FuncAsinh:
		return Div(Num(1), Sqrt(Add(PowI(u, 2), Num(1))))
	case FuncSinh:
		return Cosh(u)
	case FuncCosh:
		return Sinh(u)
	case FuncExp:
		return Exp(u)
	case FuncLog:
		return Div(Num(1), u)
	case FuncSqrt:
		return Div(Num(1), Mul(Num(2), Sqrt(u)))
	default:
		panic("sym: unknown function")
	}
}
