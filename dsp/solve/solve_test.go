package solve

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-va/dsp/linalg"
)

// quadratic: f(x) = x^2 - 4, roots at +-2.
type quadratic struct{}

func (quadratic) EvalWithDerivative(x float64) (float64, float64) {
	return x*x - 4, 2 * x
}

// cubic: f(x) = x^3 - 2x^2 - 11x + 12, roots at -3, 1, 4.
type cubic struct{}

func (cubic) EvalWithDerivative(x float64) (float64, float64) {
	return x*x*x - 2*x*x - 11*x + 12, 3*x*x - 4*x - 11
}

// sine: f(x) = sin(x), roots at k*pi.
type sine struct{}

func (sine) EvalWithDerivative(x float64) (float64, float64) {
	s, c := math.Sincos(x)
	return s, c
}

// tanhShift solves tanh(y) = c.
type tanhShift struct{ c float64 }

func (e tanhShift) EvalWithDerivative(y float64) (float64, float64) {
	t := math.Tanh(y)
	return t - e.c, 1 - t*t
}

// tanhHalf: f(x) = tanh(x) - x/2, roots at 0 and +-1.91501...
type tanhHalf struct{}

func (tanhHalf) EvalWithDerivative(x float64) (float64, float64) {
	t := math.Tanh(x)
	return t - x/2, 1 - t*t - 0.5
}

type zeroDerivative struct{}

func (zeroDerivative) EvalWithDerivative(float64) (float64, float64) { return 1, 0 }

type infResidual struct{}

func (infResidual) EvalWithDerivative(float64) (float64, float64) { return math.Inf(1), 1 }

func TestSolveQuadratic(t *testing.T) {
	nr := New(100, 1e-10)

	res, err := Solve(nr, quadratic{}, 3.0)
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}

	if math.Abs(res.Value-2) > 1e-10 {
		t.Fatalf("root = %v, want 2", res.Value)
	}

	res, err = Solve(nr, quadratic{}, -3.0)
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}

	if math.Abs(res.Value+2) > 1e-10 {
		t.Fatalf("root = %v, want -2", res.Value)
	}
}

func TestSolveCubicRootSelection(t *testing.T) {
	nr := New(100, 1e-10)

	tests := []struct {
		guess float64
		want  float64
	}{
		{guess: -4, want: -3},
		{guess: 0.5, want: 1},
		{guess: 3, want: 4},
	}

	for _, tc := range tests {
		res, err := Solve(nr, cubic{}, tc.guess)
		if err != nil {
			t.Fatalf("Solve(guess=%v) error = %v", tc.guess, err)
		}

		if math.Abs(res.Value-tc.want) > 1e-10 {
			t.Fatalf("Solve(guess=%v) = %v, want %v", tc.guess, res.Value, tc.want)
		}
	}
}

func TestSolveSine(t *testing.T) {
	nr := New(100, 1e-12)

	res, err := Solve(nr, sine{}, 3.0)
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}

	if math.Abs(res.Value-math.Pi) > 1e-10 {
		t.Fatalf("root = %v, want pi", res.Value)
	}
}

func TestSolveTanhShift(t *testing.T) {
	nr := New(100, 1e-12)

	res, err := Solve(nr, tanhShift{c: 0.5}, 0.0)
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}

	want := math.Atanh(0.5)
	if math.Abs(res.Value-want) > 1e-10 {
		t.Fatalf("root = %v, want %v", res.Value, want)
	}
}

func TestSolveTanhFeedbackRoot(t *testing.T) {
	nr := New(50, 1e-12)

	// The zero root of tanh(x) - x/2, reached from a nearby guess.
	res, err := Solve(nr, tanhHalf{}, 0.5)
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}

	if math.Abs(res.Value) > 1e-10 {
		t.Fatalf("root = %v, want 0", res.Value)
	}

	if res.Iterations >= 20 {
		t.Fatalf("took %d iterations, want a small count", res.Iterations)
	}

	fx, _ := tanhHalf{}.EvalWithDerivative(res.Value)
	if math.Abs(fx) > 1e-10 {
		t.Fatalf("residual at root = %v", fx)
	}

	// A guess past the inflection region walks to the outer root instead.
	res, err = Solve(nr, tanhHalf{}, 1.0)
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}

	fx, _ = tanhHalf{}.EvalWithDerivative(res.Value)
	if math.Abs(fx) > 1e-10 {
		t.Fatalf("residual at outer root = %v (value %v)", fx, res.Value)
	}
}

func TestSolveIterationLimit(t *testing.T) {
	nr := New(2, 1e-10)

	if _, err := Solve(nr, cubic{}, 5.0); !errors.Is(err, ErrMaxIterations) {
		t.Fatalf("error = %v, want ErrMaxIterations", err)
	}

	nr = New(100, 1e-10)

	res, err := Solve(nr, cubic{}, 5.0)
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}

	if math.Abs(res.Value-4) > 1e-10 {
		t.Fatalf("root = %v, want 4", res.Value)
	}
}

func TestSolveToleranceOrdering(t *testing.T) {
	loose := New(100, 1e-3)
	strict := New(100, 1e-12)

	resLoose, err := Solve(loose, quadratic{}, 3.0)
	if err != nil {
		t.Fatalf("loose Solve() error = %v", err)
	}

	resStrict, err := Solve(strict, quadratic{}, 3.0)
	if err != nil {
		t.Fatalf("strict Solve() error = %v", err)
	}

	if resStrict.Iterations < resLoose.Iterations {
		t.Fatalf("strict took %d iterations, loose %d", resStrict.Iterations, resLoose.Iterations)
	}

	if math.Abs(resStrict.Value-2) > 1e-12 {
		t.Fatalf("strict root = %v", resStrict.Value)
	}
}

func TestSolveRelativeTolerance(t *testing.T) {
	nr := NewtonRaphson[float64]{MaxIterations: 100, Tolerance: 0, RelTolerance: 1e-12}

	res, err := Solve(nr, quadratic{}, 3.0)
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}

	if math.Abs(res.Value-2) > 1e-10 {
		t.Fatalf("root = %v, want 2", res.Value)
	}
}

func TestSolveZeroDerivative(t *testing.T) {
	nr := New(100, 1e-10)

	_, err := Solve(nr, zeroDerivative{}, 1.0)
	if !errors.Is(err, ErrMaxIterations) {
		t.Fatalf("error = %v, want ErrMaxIterations", err)
	}
}

func TestSolveNonFiniteUpdate(t *testing.T) {
	nr := New(100, 1e-10)

	res, err := Solve(nr, infResidual{}, 1.0)
	if !errors.Is(err, ErrMaxIterations) {
		t.Fatalf("error = %v, want ErrMaxIterations", err)
	}

	// The failure must be reported at the first iteration, not after the cap.
	if res.Iterations != 1 {
		t.Fatalf("failed at iteration %d, want 1", res.Iterations)
	}
}

func TestSolveFloat32(t *testing.T) {
	nr := New[float32](100, 1e-5)

	res, err := Solve(nr, quadratic32{}, 3.0)
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}

	if math.Abs(float64(res.Value)-2) > 1e-4 {
		t.Fatalf("root = %v, want 2", res.Value)
	}
}

type quadratic32 struct{}

func (quadratic32) EvalWithDerivative(x float32) (float32, float32) {
	return x*x - 4, 2 * x
}

// diagonal is the linear system A*x = b with diagonal A, expressed as the
// residual f(x) = A*x - b with a constant inverse Jacobian.
type diagonal struct {
	a linalg.Vec3[float64]
	b linalg.Vec3[float64]
}

func (e diagonal) EvalWithInvJacobian(x linalg.Vec3[float64]) (linalg.Vec3[float64], linalg.Mat3[float64]) {
	f := linalg.Vec3[float64]{
		e.a[0]*x[0] - e.b[0],
		e.a[1]*x[1] - e.b[1],
		e.a[2]*x[2] - e.b[2],
	}
	inv := linalg.Mat3[float64]{
		{1 / e.a[0], 0, 0},
		{0, 1 / e.a[1], 0},
		{0, 0, 1 / e.a[2]},
	}

	return f, inv
}

type singular3 struct{}

func (singular3) EvalWithInvJacobian(x linalg.Vec3[float64]) (linalg.Vec3[float64], linalg.Mat3[float64]) {
	inf := math.Inf(1)
	return linalg.Vec3[float64]{1, 1, 1}, linalg.Mat3[float64]{
		{inf, 0, 0},
		{0, inf, 0},
		{0, 0, inf},
	}
}

func TestSolve3Linear(t *testing.T) {
	nr := New(10, 1e-12)
	eq := diagonal{a: linalg.Vec3[float64]{2, 3, 4}, b: linalg.Vec3[float64]{2, 3, 4}}

	res, err := Solve3(nr, eq, linalg.Vec3[float64]{})
	if err != nil {
		t.Fatalf("Solve3() error = %v", err)
	}

	want := linalg.Vec3[float64]{1, 1, 1}
	for i := range 3 {
		if math.Abs(res.Value[i]-want[i]) > 1e-12 {
			t.Fatalf("component %d = %v, want 1", i, res.Value[i])
		}
	}

	// A linear system converges on the second iteration: the first step
	// lands exactly, the second observes a zero delta.
	if res.Iterations > 2 {
		t.Fatalf("linear system took %d iterations", res.Iterations)
	}
}

func TestSolve3SingularJacobian(t *testing.T) {
	nr := New(10, 1e-12)

	res, err := Solve3(nr, singular3{}, linalg.Vec3[float64]{})
	if !errors.Is(err, ErrMaxIterations) {
		t.Fatalf("error = %v, want ErrMaxIterations", err)
	}

	if res.Iterations != 1 {
		t.Fatalf("failed at iteration %d, want 1", res.Iterations)
	}

	if !res.Value.IsFinite() {
		t.Fatalf("candidate contaminated with non-finite values: %v", res.Value)
	}
}
