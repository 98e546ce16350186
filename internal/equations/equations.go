// Package equations defines the built-in virtual-analog equation systems.
// cmd/vagen renders them into the checked-in gen_*.go files and the filter
// packages' golden tests regenerate them to detect drift.
package equations

import (
	"github.com/cwbudde/algo-va/dsp/sym"
	"github.com/cwbudde/algo-va/dsp/sym/codegen"
)

// DiodeClipper is the implicit node equation of a series resistor feeding
// an antiparallel diode pair, discretized with the trapezoidal rule:
//
//	(v - vp) - (c1*(x - v) - c2*sinh(v/vt)) = 0
//
// with v the capacitor voltage to solve for, vp its previous value, x the
// input sample, c1 the resistor/timestep coefficient, c2 the diode
// saturation coefficient and vt the thermal voltage.
func DiodeClipper() codegen.Equation {
	v, vp := sym.Var("v"), sym.Var("vp")
	c1, c2 := sym.Var("c1"), sym.Var("c2")
	vt, x := sym.Var("vt"), sym.Var("x")

	return codegen.Equation{
		Name:     "diodeClipper",
		Unknowns: []string{"v"},
		Params:   []string{"c1", "c2", "vt", "x", "vp"},
		Residuals: []sym.Expr{
			sym.Sub(
				sym.Sub(v, vp),
				sym.Sub(
					sym.Mul(c1, sym.Sub(x, v)),
					sym.Mul(c2, sym.Sinh(sym.Div(v, vt))),
				),
			),
		},
	}
}

// svfSystem builds the implicit trapezoidal state-variable filter system
// for one integrator nonlinearity. The unknowns are the three simultaneous
// outputs (lp, bp, hp); g is the integrator gain, r the damping, x the
// input sample and s1, s2 the integrator states:
//
//	g*sat(bp) + s2 - lp          = 0
//	g*sat(hp) + s1 - bp          = 0
//	x - lp - 2*r*bp - hp         = 0
func svfSystem(name string, params []string, sat func(sym.Expr) sym.Expr) codegen.Equation {
	lp, bp, hp := sym.Var("lp"), sym.Var("bp"), sym.Var("hp")
	g, r := sym.Var("g"), sym.Var("r")
	x, s1, s2 := sym.Var("x"), sym.Var("s1"), sym.Var("s2")

	return codegen.Equation{
		Name:     name,
		Unknowns: []string{"lp", "bp", "hp"},
		Params:   params,
		Residuals: []sym.Expr{
			sym.Sub(sym.Add(sym.Mul(g, sat(bp)), s2), lp),
			sym.Sub(sym.Add(sym.Mul(g, sat(hp)), s1), bp),
			sym.Sub(sym.Sub(sym.Sub(x, lp), sym.Mul(sym.Mul(sym.Num(2), r), bp)), hp),
		},
	}
}

// SVFTanh is the state-variable filter with tanh integrator saturation,
// sat(v) = tanh(k*v)/k, where k is the drive.
func SVFTanh() codegen.Equation {
	k := sym.Var("k")

	return svfSystem("svfTanh", []string{"g", "r", "k", "x", "s1", "s2"}, func(v sym.Expr) sym.Expr {
		return sym.Div(sym.Tanh(sym.Mul(k, v)), k)
	})
}

// SVFAsinh is the state-variable filter with asinh integrator saturation,
// sat(v) = asinh(k*v)/k, a softer curve than tanh.
func SVFAsinh() codegen.Equation {
	k := sym.Var("k")

	return svfSystem("svfAsinh", []string{"g", "r", "k", "x", "s1", "s2"}, func(v sym.Expr) sym.Expr {
		return sym.Div(sym.Asinh(sym.Mul(k, v)), k)
	})
}

// SVFLinear is the undriven state-variable filter, sat(v) = v. The system
// is linear, so the solver converges in a single step.
func SVFLinear() codegen.Equation {
	return svfSystem("svfLinear", []string{"g", "r", "x", "s1", "s2"}, func(v sym.Expr) sym.Expr {
		return v
	})
}

// ClipperFile renders the diode clipper source file.
func ClipperFile() (string, error) {
	return codegen.GenerateFile("clipper", DiodeClipper())
}

// SVFFile renders the state-variable filter source file with all three
// saturation variants.
func SVFFile() (string, error) {
	return codegen.GenerateFile("svf", SVFTanh(), SVFAsinh(), SVFLinear())
}

// Target is one generated file cmd/vagen maintains.
type Target struct {
	Name     string
	Path     string
	Generate func() (string, error)
}

// Targets lists every built-in generation target. Paths are relative to
// the module root.
func Targets() []Target {
	return []Target{
		{Name: "clipper", Path: "dsp/filter/clipper/gen_clipper.go", Generate: ClipperFile},
		{Name: "svf", Path: "dsp/filter/svf/gen_svf.go", Generate: SVFFile},
	}
}
