package scalar

import "math"

// Real is the scalar constraint shared by the solvers and generated code.
type Real interface {
	~float32 | ~float64
}

// Asinh computes the inverse hyperbolic sine of x.
func Asinh[T Real](x T) T {
	return T(math.Asinh(float64(x)))
}

// Sinh computes the hyperbolic sine of x.
func Sinh[T Real](x T) T {
	return T(math.Sinh(float64(x)))
}

// Cosh computes the hyperbolic cosine of x.
func Cosh[T Real](x T) T {
	return T(math.Cosh(float64(x)))
}

// Log computes the natural logarithm of x.
func Log[T Real](x T) T {
	return T(math.Log(float64(x)))
}

// Sqrt computes the square root of x.
func Sqrt[T Real](x T) T {
	return T(math.Sqrt(float64(x)))
}

// Abs returns the absolute value of x.
func Abs[T Real](x T) T {
	if x < 0 {
		return -x
	}

	return x
}

// NaN returns a quiet NaN of type T.
func NaN[T Real]() T {
	return T(math.NaN())
}

// IsFinite reports whether x is neither NaN nor infinite.
func IsFinite[T Real](x T) bool {
	f := float64(x)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Clamp limits value to the inclusive range [min, max].
func Clamp[T Real](value, min, max T) T {
	if min > max {
		min, max = max, min
	}

	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// NearlyEqual reports whether a and b agree within eps, absolutely for
// small magnitudes and relatively otherwise.
func NearlyEqual[T Real](a, b, eps T) bool {
	diff := Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := Abs(a)
	if ab := Abs(b); ab > largest {
		largest = ab
	}

	if largest == 0 {
		return diff <= eps
	}

	return diff/largest <= eps
}
