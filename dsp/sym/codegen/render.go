package codegen

import (
	"strconv"

	"github.com/cwbudde/algo-va/dsp/sym"
)

// funcNames maps symbolic functions to their dsp/scalar counterparts.
var funcNames = map[sym.Func]string{
	sym.FuncTanh:  "scalar.Tanh",
	sym.FuncAsinh: "scalar.Asinh",
	sym.FuncSinh:  "scalar.Sinh",
	sym.FuncCosh:  "scalar.Cosh",
	sym.FuncExp:   "scalar.Exp",
	sym.FuncLog:   "scalar.Log",
	sym.FuncSqrt:  "scalar.Sqrt",
}

// render emits e as a Go expression. Composite nodes are wrapped in exactly
// one pair of parentheses so that nesting never depends on operator
// precedence; renderTop strips the outermost pair where the context makes
// it redundant.
func render(e sym.Expr) string {
	switch n := e.(type) {
	case sym.NumExpr:
		return strconv.FormatFloat(n.Value, 'g', -1, 64)
	case sym.VarExpr:
		return n.Name
	case sym.AddExpr:
		return "(" + render(n.L) + " + " + render(n.R) + ")"
	case sym.SubExpr:
		return "(" + render(n.L) + " - " + render(n.R) + ")"
	case sym.MulExpr:
		return "(" + render(n.L) + " * " + render(n.R) + ")"
	case sym.DivExpr:
		return "(" + render(n.L) + " / " + render(n.R) + ")"
	case sym.NegExpr:
		return "(-" + render(n.X) + ")"
	case sym.PowExpr:
		// Integer powers become repeated multiplication; exponents are
		// small in practice and this keeps the generated code free of a
		// math.Pow call that cannot carry the generic type.
		base := render(n.Base)

		out := "(" + base + " * " + base + ")"
		for i := 2; i < n.N; i++ {
			out = "(" + out + " * " + base + ")"
		}

		return out
	case sym.CallExpr:
		return funcNames[n.Fn] + "(" + renderTop(n.Arg) + ")"
	default:
		panic("codegen: unknown expression node")
	}
}

// renderTop renders e for a position that needs no outer parentheses, such
// as the right-hand side of an assignment or a call argument.
func renderTop(e sym.Expr) string {
	s := render(e)

	switch e.(type) {
	case sym.AddExpr, sym.SubExpr, sym.MulExpr, sym.DivExpr, sym.NegExpr, sym.PowExpr:
		return s[1 : len(s)-1]
	default:
		return s
	}
}
