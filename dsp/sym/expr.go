package sym

import (
	"sort"
	"strconv"
)

// Expr is a node in an immutable expression tree. Expressions are built
// through the package constructors, which simplify eagerly; two structurally
// equal expressions always render to the same String.
type Expr interface {
	// String renders the canonical prefix form of the expression.
	String() string
}

// NumExpr is a floating-point constant.
type NumExpr struct{ Value float64 }

// VarExpr is a named variable.
type VarExpr struct{ Name string }

// AddExpr is the sum l + r.
type AddExpr struct{ L, R Expr }

// SubExpr is the difference l - r.
type SubExpr struct{ L, R Expr }

// MulExpr is the product l * r.
type MulExpr struct{ L, R Expr }

// DivExpr is the quotient l / r.
type DivExpr struct{ L, R Expr }

// NegExpr is the negation -x.
type NegExpr struct{ X Expr }

// PowExpr is x raised to a fixed positive integer exponent.
type PowExpr struct {
	Base Expr
	N    int
}

// CallExpr applies one of the supported unary functions.
type CallExpr struct {
	Fn  Func
	Arg Expr
}

// Func identifies a supported unary function.
type Func int

// Supported unary functions. All of them are smooth on their domain, so
// differentiation is total.
const (
	FuncTanh Func = iota
	FuncAsinh
	FuncSinh
	FuncCosh
	FuncExp
	FuncLog
	FuncSqrt

	numFuncs
)

// EnumCount reports the number of supported functions.
func (f Func) EnumCount() int { return int(numFuncs) }

func (f Func) String() string {
	switch f {
	case FuncTanh:
		return "tanh"
	case FuncAsinh:
		return "asinh"
	case FuncSinh:
		return "sinh"
	case FuncCosh:
		return "cosh"
	case FuncExp:
		return "exp"
	case FuncLog:
		return "log"
	case FuncSqrt:
		return "sqrt"
	default:
		return "unknown"
	}
}

// Num returns a constant expression.
func Num(v float64) Expr { return NumExpr{Value: v} }

// Var returns a variable expression.
func Var(name string) Expr { return VarExpr{Name: name} }

func numValue(e Expr) (float64, bool) {
	n, ok := e.(NumExpr)
	return n.Value, ok
}

func isNum(e Expr, v float64) bool {
	n, ok := e.(NumExpr)
	return ok && n.Value == v
}

// Add returns l + r with constants folded and zero terms dropped.
func Add(l, r Expr) Expr {
	if lv, ok := numValue(l); ok {
		if rv, ok := numValue(r); ok {
			return Num(lv + rv)
		}
	}

	if isNum(l, 0) {
		return r
	}

	if isNum(r, 0) {
		return l
	}

	return AddExpr{L: l, R: r}
}

// Sub returns l - r with constants folded and zero terms dropped.
func Sub(l, r Expr) Expr {
	if lv, ok := numValue(l); ok {
		if rv, ok := numValue(r); ok {
			return Num(lv - rv)
		}
	}

	if isNum(r, 0) {
		return l
	}

	if isNum(l, 0) {
		return Neg(r)
	}

	if l.String() == r.String() {
		return Num(0)
	}

	return SubExpr{L: l, R: r}
}

// Mul returns l * r with constants folded and unit factors dropped.
func Mul(l, r Expr) Expr {
	if lv, ok := numValue(l); ok {
		if rv, ok := numValue(r); ok {
			return Num(lv * rv)
		}
	}

	if isNum(l, 0) || isNum(r, 0) {
		return Num(0)
	}

	if isNum(l, 1) {
		return r
	}

	if isNum(r, 1) {
		return l
	}

	if isNum(l, -1) {
		return Neg(r)
	}

	if isNum(r, -1) {
		return Neg(l)
	}

	return MulExpr{L: l, R: r}
}

// Div returns l / r with constants folded and unit denominators dropped.
// Division by the constant zero panics: equations are authored offline, and
// a structurally zero denominator is an authoring bug.
func Div(l, r Expr) Expr {
	if isNum(r, 0) {
		panic("sym: division by constant zero")
	}

	if lv, ok := numValue(l); ok {
		if rv, ok := numValue(r); ok {
			return Num(lv / rv)
		}
	}

	if isNum(l, 0) {
		return Num(0)
	}

	if isNum(r, 1) {
		return l
	}

	return DivExpr{L: l, R: r}
}

// Neg returns -x, folding constants and double negation.
func Neg(x Expr) Expr {
	if v, ok := numValue(x); ok {
		return Num(-v)
	}

	if n, ok := x.(NegExpr); ok {
		return n.X
	}

	return NegExpr{X: x}
}

// PowI returns base**n for a positive integer exponent. Exponent 0 yields 1
// and exponent 1 yields the base itself.
func PowI(base Expr, n int) Expr {
	if n < 0 {
		panic("sym: negative exponent, use Div")
	}

	if n == 0 {
		return Num(1)
	}

	if n == 1 {
		return base
	}

	if v, ok := numValue(base); ok {
		out := 1.0
		for range n {
			out *= v
		}

		return Num(out)
	}

	return PowExpr{Base: base, N: n}
}

// Call applies fn to arg.
func Call(fn Func, arg Expr) Expr { return CallExpr{Fn: fn, Arg: arg} }

// Tanh returns tanh(x).
func Tanh(x Expr) Expr { return Call(FuncTanh, x) }

// Asinh returns asinh(x).
func Asinh(x Expr) Expr { return Call(FuncAsinh, x) }

// Sinh returns sinh(x).
func Sinh(x Expr) Expr { return Call(FuncSinh, x) }

// Cosh returns cosh(x).
func Cosh(x Expr) Expr { return Call(FuncCosh, x) }

// Exp returns e**x.
func Exp(x Expr) Expr { return Call(FuncExp, x) }

// Log returns the natural logarithm of x.
func Log(x Expr) Expr { return Call(FuncLog, x) }

// Sqrt returns the square root of x.
func Sqrt(x Expr) Expr { return Call(FuncSqrt, x) }

func (e NumExpr) String() string {
	return strconv.FormatFloat(e.Value, 'g', -1, 64)
}

func (e VarExpr) String() string { return e.Name }

func (e AddExpr) String() string { return "(+ " + e.L.String() + " " + e.R.String() + ")" }

func (e SubExpr) String() string { return "(- " + e.L.String() + " " + e.R.String() + ")" }

func (e MulExpr) String() string { return "(* " + e.L.String() + " " + e.R.String() + ")" }

func (e DivExpr) String() string { return "(/ " + e.L.String() + " " + e.R.String() + ")" }

func (e NegExpr) String() string { return "(neg " + e.X.String() + ")" }

func (e PowExpr) String() string {
	return "(pow " + e.Base.String() + " " + strconv.Itoa(e.N) + ")"
}

func (e CallExpr) String() string {
	return "(" + e.Fn.String() + " " + e.Arg.String() + ")"
}

// children returns the direct subexpressions of e, nil for leaves.
func children(e Expr) []Expr {
	switch n := e.(type) {
	case AddExpr:
		return []Expr{n.L, n.R}
	case SubExpr:
		return []Expr{n.L, n.R}
	case MulExpr:
		return []Expr{n.L, n.R}
	case DivExpr:
		return []Expr{n.L, n.R}
	case NegExpr:
		return []Expr{n.X}
	case PowExpr:
		return []Expr{n.Base}
	case CallExpr:
		return []Expr{n.Arg}
	default:
		return nil
	}
}

// rebuild reconstructs e with replacement children, bypassing constructor
// simplification so that CSE substitution preserves tree shape.
func rebuild(e Expr, ch []Expr) Expr {
	switch n := e.(type) {
	case AddExpr:
		return AddExpr{L: ch[0], R: ch[1]}
	case SubExpr:
		return SubExpr{L: ch[0], R: ch[1]}
	case MulExpr:
		return MulExpr{L: ch[0], R: ch[1]}
	case DivExpr:
		return DivExpr{L: ch[0], R: ch[1]}
	case NegExpr:
		return NegExpr{X: ch[0]}
	case PowExpr:
		return PowExpr{Base: ch[0], N: n.N}
	case CallExpr:
		return CallExpr{Fn: n.Fn, Arg: ch[0]}
	default:
		return e
	}
}

// Vars returns the free variables of the expressions, sorted by name.
func Vars(exprs ...Expr) []string {
	seen := make(map[string]bool)

	var walk func(Expr)
	walk = func(e Expr) {
		if v, ok := e.(VarExpr); ok {
			seen[v.Name] = true
			return
		}

		for _, c := range children(e) {
			walk(c)
		}
	}

	for _, e := range exprs {
		walk(e)
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// DependsOn reports whether e references the named variable.
func DependsOn(e Expr, name string) bool {
	if v, ok := e.(VarExpr); ok {
		return v.Name == name
	}

	for _, c := range children(e) {
		if DependsOn(c, name) {
			return true
		}
	}

	return false
}

// IsZero reports whether e is the constant zero.
func IsZero(e Expr) bool { return isNum(e, 0) }

// isComposite reports whether e has subexpressions worth sharing.
func isComposite(e Expr) bool {
	switch e.(type) {
	case NumExpr, VarExpr:
		return false
	default:
		return true
	}
}
