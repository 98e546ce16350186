//go:build !fastmath

package scalar

import "math"

// Tanh computes the hyperbolic tangent of x.
func Tanh[T Real](x T) T {
	return T(math.Tanh(float64(x)))
}

// Exp computes e**x.
func Exp[T Real](x T) T {
	return T(math.Exp(float64(x)))
}
