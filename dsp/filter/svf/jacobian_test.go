//go:build !fastmath

package svf

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-va/dsp/linalg"
)

// Central differences of the residual only agree with the analytic
// Jacobian when tanh/exp are exact, so this check is limited to the
// default build.
func TestGeneratedInverseJacobianMatchesFiniteDifferences(t *testing.T) {
	const h = 1e-6

	type system interface {
		EvalWithInvJacobian(linalg.Vec3[float64]) (linalg.Vec3[float64], linalg.Mat3[float64])
	}

	systems := map[string]system{
		"tanh":   svfTanh[float64]{G: 0.12, R: 0.4, K: 3, X: 0.7, S1: 0.05, S2: -0.1},
		"asinh":  svfAsinh[float64]{G: 0.12, R: 0.4, K: 3, X: 0.7, S1: 0.05, S2: -0.1},
		"linear": svfLinear[float64]{G: 0.12, R: 0.4, X: 0.7, S1: 0.05, S2: -0.1},
	}

	at := linalg.Vec3[float64]{0.3, -0.2, 0.5}

	for name, eq := range systems {
		t.Run(name, func(t *testing.T) {
			_, inv := eq.EvalWithInvJacobian(at)

			var jfd linalg.Mat3[float64]

			for col := 0; col < 3; col++ {
				up, down := at, at
				up[col] += h
				down[col] -= h

				fUp, _ := eq.EvalWithInvJacobian(up)
				fDown, _ := eq.EvalWithInvJacobian(down)

				for row := 0; row < 3; row++ {
					jfd[row][col] = (fUp[row] - fDown[row]) / (2 * h)
				}
			}

			prod := inv.Mul(jfd)
			want := linalg.Identity3[float64]()

			for i := 0; i < 3; i++ {
				for j := 0; j < 3; j++ {
					if math.Abs(prod[i][j]-want[i][j]) > 1e-4 {
						t.Fatalf("inv*J[%d][%d] = %v, want %v", i, j, prod[i][j], want[i][j])
					}
				}
			}
		})
	}
}
