package solve

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-va/dsp/linalg"
	"github.com/cwbudde/algo-va/dsp/scalar"
)

// ErrMaxIterations is returned when a solve does not converge within the
// configured iteration cap. Callers decide the recovery policy, typically
// holding the previous sample's state.
var ErrMaxIterations = errors.New("solve: maximum iterations exceeded")

// Differentiable is an equation with a scalar unknown. EvalWithDerivative
// returns the residual f(x) and its derivative f'(x) at the candidate x.
type Differentiable[T scalar.Real] interface {
	EvalWithDerivative(x T) (fx, dfx T)
}

// MultiDifferentiable3 is an equation with a three-component unknown.
// EvalWithInvJacobian returns the residual vector and the inverse of the
// Jacobian at the candidate, so the Newton update is a plain
// matrix-vector product rather than a linear solve.
type MultiDifferentiable3[T scalar.Real] interface {
	EvalWithInvJacobian(x linalg.Vec3[T]) (linalg.Vec3[T], linalg.Mat3[T])
}

// NewtonRaphson holds solver configuration. Tolerance is the absolute and
// RelTolerance the relative part of the stopping rule
// |dx| <= Tolerance + RelTolerance*|x|, applied per component in the
// three-dimensional case.
type NewtonRaphson[T scalar.Real] struct {
	// MaxIterations bounds the work per solve. Must be >= 1; tens of
	// iterations at most for real-time use.
	MaxIterations int
	// Tolerance is the absolute convergence tolerance. Must be > 0.
	Tolerance T
	// RelTolerance is the relative convergence tolerance. May be zero.
	RelTolerance T
}

// New returns a solver configuration with the given iteration cap and
// absolute tolerance, and no relative tolerance.
func New[T scalar.Real](maxIterations int, tolerance T) NewtonRaphson[T] {
	return NewtonRaphson[T]{MaxIterations: maxIterations, Tolerance: tolerance}
}

// Result is the outcome of a scalar solve.
type Result[T scalar.Real] struct {
	// Value is the converged candidate.
	Value T
	// Delta is the last Newton step taken.
	Delta T
	// Iterations is the number of iterations used.
	Iterations int
}

// Result3 is the outcome of a three-dimensional solve.
type Result3[T scalar.Real] struct {
	Value      linalg.Vec3[T]
	Delta      linalg.Vec3[T]
	Iterations int
}

// Solve runs Newton-Raphson iteration on a scalar equation starting from
// initialGuess. Seeding with the previous sample's converged value makes
// reconvergence fast for smoothly varying audio signals.
//
// It returns ErrMaxIterations (wrapped) when the iteration cap is reached,
// when the derivative is exactly zero, or when the update is non-finite.
func Solve[T scalar.Real, E Differentiable[T]](nr NewtonRaphson[T], eq E, initialGuess T) (Result[T], error) {
	x := initialGuess

	for i := 1; i <= nr.MaxIterations; i++ {
		fx, dfx := eq.EvalWithDerivative(x)
		if dfx == 0 {
			return Result[T]{Value: x, Iterations: i},
				fmt.Errorf("solve: zero derivative at iteration %d: %w", i, ErrMaxIterations)
		}

		delta := fx / dfx
		x -= delta

		if !scalar.IsFinite(x) {
			return Result[T]{Value: x, Delta: delta, Iterations: i},
				fmt.Errorf("solve: non-finite update at iteration %d: %w", i, ErrMaxIterations)
		}

		if scalar.Abs(delta) <= nr.Tolerance+nr.RelTolerance*scalar.Abs(x) {
			return Result[T]{Value: x, Delta: delta, Iterations: i}, nil
		}
	}

	return Result[T]{Value: x, Iterations: nr.MaxIterations},
		fmt.Errorf("solve: no convergence after %d iterations: %w", nr.MaxIterations, ErrMaxIterations)
}

// Solve3 runs Newton-Raphson iteration on a three-dimensional equation
// starting from initialGuess. Convergence requires every component of the
// Newton step to satisfy the tolerance rule.
func Solve3[T scalar.Real, E MultiDifferentiable3[T]](nr NewtonRaphson[T], eq E, initialGuess linalg.Vec3[T]) (Result3[T], error) {
	x := initialGuess

	for i := 1; i <= nr.MaxIterations; i++ {
		fx, invJ := eq.EvalWithInvJacobian(x)

		delta := invJ.MulVec(fx)
		if !delta.IsFinite() {
			return Result3[T]{Value: x, Iterations: i},
				fmt.Errorf("solve: non-finite update at iteration %d: %w", i, ErrMaxIterations)
		}

		x = x.Sub(delta)

		if converged3(nr, delta, x) {
			return Result3[T]{Value: x, Delta: delta, Iterations: i}, nil
		}
	}

	return Result3[T]{Value: x, Iterations: nr.MaxIterations},
		fmt.Errorf("solve: no convergence after %d iterations: %w", nr.MaxIterations, ErrMaxIterations)
}

func converged3[T scalar.Real](nr NewtonRaphson[T], delta, x linalg.Vec3[T]) bool {
	for i := range 3 {
		if scalar.Abs(delta[i]) > nr.Tolerance+nr.RelTolerance*scalar.Abs(x[i]) {
			return false
		}
	}

	return true
}
