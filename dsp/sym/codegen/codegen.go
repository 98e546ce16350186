package codegen

import (
	"fmt"
	"strings"

	"github.com/cwbudde/algo-va/dsp/sym"
)

const modulePath = "github.com/cwbudde/algo-va"

// Equation describes one generation unit: a named system of residuals
// solved for the listed unknowns. Params are the remaining free symbols in
// declared order; their order fixes the order of the generated struct
// fields. One unknown produces a Differentiable unit, three a
// MultiDifferentiable3 unit.
type Equation struct {
	Name      string
	Unknowns  []string
	Params    []string
	Residuals []sym.Expr
}

// reserved are identifiers the generated method bodies use themselves.
var reserved = map[string]bool{
	"e": true, "u": true, "f": true, "df": true,
	"j": true, "inv": true, "ok": true, "n": true, "T": true,
}

func validIdent(s string) bool {
	if s == "" {
		return false
	}

	for i, r := range s {
		letter := r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		if !letter && (i == 0 || r < '0' || r > '9') {
			return false
		}
	}

	return true
}

// isBindingName matches the t0, t1, ... names CSE hands out.
func isBindingName(s string) bool {
	if len(s) < 2 || s[0] != 't' {
		return false
	}

	for _, r := range s[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}

func fieldName(sym string) string {
	return strings.ToUpper(sym[:1]) + sym[1:]
}

func (eq Equation) validate() error {
	if eq.Name == "" {
		return fmt.Errorf("codegen: equation without a name")
	}

	if !validIdent(eq.Name) {
		return fmt.Errorf("codegen: equation name %q is not a valid identifier", eq.Name)
	}

	if len(eq.Residuals) != len(eq.Unknowns) {
		return fmt.Errorf("codegen: equation %q has %d residuals for %d unknowns",
			eq.Name, len(eq.Residuals), len(eq.Unknowns))
	}

	seen := make(map[string]bool)

	for _, s := range append(append([]string(nil), eq.Unknowns...), eq.Params...) {
		if !validIdent(s) {
			return fmt.Errorf("codegen: equation %q: symbol %q is not a valid identifier", eq.Name, s)
		}

		if reserved[s] || isBindingName(s) {
			return fmt.Errorf("codegen: equation %q: symbol %q collides with a generated identifier", eq.Name, s)
		}

		if seen[s] {
			return fmt.Errorf("codegen: equation %q: duplicate symbol %q", eq.Name, s)
		}

		seen[s] = true
	}

	for _, v := range sym.Vars(eq.Residuals...) {
		if !seen[v] {
			return fmt.Errorf("codegen: equation %q references unbound symbol %q", eq.Name, v)
		}
	}

	return nil
}

// usedSymbols reports which unknowns and parameters occur in the given
// expressions. Unused parameters still become struct fields but get no
// local binding, which keeps the generated method compilable.
func usedSymbols(exprs ...sym.Expr) map[string]bool {
	used := make(map[string]bool)
	for _, v := range sym.Vars(exprs...) {
		used[v] = true
	}

	return used
}

func writeStruct(b *strings.Builder, eq Equation) {
	if len(eq.Params) == 0 {
		fmt.Fprintf(b, "type %s[T scalar.Real] struct{}\n\n", eq.Name)
		return
	}

	fmt.Fprintf(b, "type %s[T scalar.Real] struct {\n", eq.Name)

	width := 0
	for _, p := range eq.Params {
		if len(p) > width {
			width = len(p)
		}
	}

	for _, p := range eq.Params {
		fmt.Fprintf(b, "\t%-*s T\n", width, fieldName(p))
	}

	b.WriteString("}\n\n")
}

func writeParamBindings(b *strings.Builder, eq Equation, used map[string]bool) {
	for _, p := range eq.Params {
		if used[p] {
			fmt.Fprintf(b, "\t%s := e.%s\n", p, fieldName(p))
		}
	}
}

// GenerateDifferentiable emits one scalar unit: a parameter struct and an
// EvalWithDerivative method computing the residual and its analytic
// derivative with respect to the unknown. Shared subexpressions of the
// pair are bound once.
func GenerateDifferentiable(eq Equation) (string, error) {
	if len(eq.Unknowns) != 1 {
		return "", fmt.Errorf("codegen: equation %q has %d unknowns, want 1", eq.Name, len(eq.Unknowns))
	}

	if err := eq.validate(); err != nil {
		return "", err
	}

	unknown := eq.Unknowns[0]
	res := eq.Residuals[0]

	if !sym.DependsOn(res, unknown) {
		return "", fmt.Errorf("codegen: residual of %q does not depend on unknown %q", eq.Name, unknown)
	}

	df := sym.Diff(res, unknown)
	bindings, outs := sym.CSE("t", res, df)
	used := usedSymbols(res, df)

	var b strings.Builder

	writeStruct(&b, eq)
	fmt.Fprintf(&b, "func (e %s[T]) EvalWithDerivative(%s T) (T, T) {\n", eq.Name, unknown)
	writeParamBindings(&b, eq, used)

	for _, bd := range bindings {
		fmt.Fprintf(&b, "\t%s := %s\n", bd.Name, renderTop(bd.Expr))
	}

	fmt.Fprintf(&b, "\tf := %s\n", renderTop(outs[0]))
	fmt.Fprintf(&b, "\tdf := %s\n", renderTop(outs[1]))
	b.WriteString("\treturn f, df\n}\n")

	return b.String(), nil
}

// GenerateMultiDifferentiable3 emits one three-dimensional unit: a
// parameter struct and an EvalWithInvJacobian method computing the
// residual vector and the inverse of the analytic Jacobian. Residuals and
// all nine Jacobian entries share one binding sequence; the inverse is
// taken numerically at run time, with a NaN matrix signalling a singular
// Jacobian to the solver. A Jacobian whose determinant simplifies to zero
// for every parameter value is rejected at generation time.
func GenerateMultiDifferentiable3(eq Equation) (string, error) {
	if len(eq.Unknowns) != 3 {
		return "", fmt.Errorf("codegen: equation %q has %d unknowns, want 3", eq.Name, len(eq.Unknowns))
	}

	if err := eq.validate(); err != nil {
		return "", err
	}

	for i, r := range eq.Residuals {
		ok := false
		for _, u := range eq.Unknowns {
			if sym.DependsOn(r, u) {
				ok = true
				break
			}
		}

		if !ok {
			return "", fmt.Errorf("codegen: residual %d of %q does not depend on any unknown", i, eq.Name)
		}
	}

	jm := sym.Jacobian(eq.Residuals, eq.Unknowns)

	det, err := jm.Det()
	if err != nil {
		return "", fmt.Errorf("codegen: equation %q: %v", eq.Name, err)
	}

	if sym.IsZero(det) {
		return "", fmt.Errorf("codegen: jacobian of %q is symbolically singular", eq.Name)
	}

	exprs := make([]sym.Expr, 0, 12)
	exprs = append(exprs, eq.Residuals...)

	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			exprs = append(exprs, jm.At(i, j))
		}
	}

	bindings, outs := sym.CSE("t", exprs...)
	used := usedSymbols(exprs...)

	var b strings.Builder

	writeStruct(&b, eq)
	fmt.Fprintf(&b, "func (e %s[T]) EvalWithInvJacobian(u linalg.Vec3[T]) (linalg.Vec3[T], linalg.Mat3[T]) {\n", eq.Name)

	for i, name := range eq.Unknowns {
		if used[name] {
			fmt.Fprintf(&b, "\t%s := u[%d]\n", name, i)
		}
	}

	writeParamBindings(&b, eq, used)

	for _, bd := range bindings {
		fmt.Fprintf(&b, "\t%s := %s\n", bd.Name, renderTop(bd.Expr))
	}

	b.WriteString("\tf := linalg.Vec3[T]{\n")

	for i := 0; i < 3; i++ {
		fmt.Fprintf(&b, "\t\t%s,\n", renderTop(outs[i]))
	}

	b.WriteString("\t}\n\tj := linalg.Mat3[T]{\n")

	for i := 0; i < 3; i++ {
		fmt.Fprintf(&b, "\t\t{%s, %s, %s},\n",
			renderTop(outs[3+i*3]), renderTop(outs[3+i*3+1]), renderTop(outs[3+i*3+2]))
	}

	b.WriteString("\t}\n")
	b.WriteString("\tinv, ok := j.Inverse()\n")
	b.WriteString("\tif !ok {\n")
	b.WriteString("\t\tn := scalar.NaN[T]()\n")
	b.WriteString("\t\tinv = linalg.Mat3[T]{{n, n, n}, {n, n, n}, {n, n, n}}\n")
	b.WriteString("\t}\n")
	b.WriteString("\treturn f, inv\n}\n")

	return b.String(), nil
}

// GenerateFile emits a complete source file for pkg containing the given
// units in order. The output is gofmt-shaped and byte-identical across
// runs for identical input.
func GenerateFile(pkg string, eqs ...Equation) (string, error) {
	if len(eqs) == 0 {
		return "", fmt.Errorf("codegen: no equations for package %q", pkg)
	}

	units := make([]string, len(eqs))
	needLinalg := false

	for i, eq := range eqs {
		var (
			src string
			err error
		)

		switch len(eq.Unknowns) {
		case 1:
			src, err = GenerateDifferentiable(eq)
		case 3:
			src, err = GenerateMultiDifferentiable3(eq)
			needLinalg = true
		default:
			err = fmt.Errorf("codegen: equation %q has %d unknowns, want 1 or 3", eq.Name, len(eq.Unknowns))
		}

		if err != nil {
			return "", err
		}

		units[i] = src
	}

	var b strings.Builder

	b.WriteString("// Code generated by vagen. DO NOT EDIT.\n\n")
	fmt.Fprintf(&b, "package %s\n\n", pkg)

	if needLinalg {
		fmt.Fprintf(&b, "import (\n\t%q\n\t%q\n)\n\n", modulePath+"/dsp/linalg", modulePath+"/dsp/scalar")
	} else {
		fmt.Fprintf(&b, "import %q\n\n", modulePath+"/dsp/scalar")
	}

	b.WriteString(strings.Join(units, "\n"))

	return b.String(), nil
}
