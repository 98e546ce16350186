//go:build fastmath

package scalar

import (
	"github.com/meko-christian/algo-approx"
)

// Tanh computes the hyperbolic tangent of x using a fast exp approximation.
// Uses the identity: tanh(x) = 1 - 2/(e^(2x) + 1)
func Tanh[T Real](x T) T {
	return T(1 - 2/(approx.FastExp(2*float64(x))+1))
}

// Exp computes e**x using a fast approximation.
func Exp[T Real](x T) T {
	return T(approx.FastExp(float64(x)))
}
