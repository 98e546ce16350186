// Package linalg provides fixed-size vector and matrix value types for the
// multi-dimensional root solver. Storage is plain arrays, so instances live
// on the stack of the caller; no operation allocates.
package linalg

import "github.com/cwbudde/algo-va/dsp/scalar"

// Vec3 is a three-component column vector.
type Vec3[T scalar.Real] [3]T

// Add returns v + w.
func (v Vec3[T]) Add(w Vec3[T]) Vec3[T] {
	return Vec3[T]{v[0] + w[0], v[1] + w[1], v[2] + w[2]}
}

// Sub returns v - w.
func (v Vec3[T]) Sub(w Vec3[T]) Vec3[T] {
	return Vec3[T]{v[0] - w[0], v[1] - w[1], v[2] - w[2]}
}

// Scale returns k * v.
func (v Vec3[T]) Scale(k T) Vec3[T] {
	return Vec3[T]{k * v[0], k * v[1], k * v[2]}
}

// AbsMax returns the largest absolute component.
func (v Vec3[T]) AbsMax() T {
	m := scalar.Abs(v[0])
	if a := scalar.Abs(v[1]); a > m {
		m = a
	}

	if a := scalar.Abs(v[2]); a > m {
		m = a
	}

	return m
}

// IsFinite reports whether every component is finite.
func (v Vec3[T]) IsFinite() bool {
	return scalar.IsFinite(v[0]) && scalar.IsFinite(v[1]) && scalar.IsFinite(v[2])
}

// Mat3 is a row-major 3x3 matrix.
type Mat3[T scalar.Real] [3][3]T

// Identity3 returns the 3x3 identity matrix.
func Identity3[T scalar.Real]() Mat3[T] {
	return Mat3[T]{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
}

// MulVec returns m * v.
func (m Mat3[T]) MulVec(v Vec3[T]) Vec3[T] {
	return Vec3[T]{
		m[0][0]*v[0] + m[0][1]*v[1] + m[0][2]*v[2],
		m[1][0]*v[0] + m[1][1]*v[1] + m[1][2]*v[2],
		m[2][0]*v[0] + m[2][1]*v[1] + m[2][2]*v[2],
	}
}

// Mul returns the matrix product m * n.
func (m Mat3[T]) Mul(n Mat3[T]) Mat3[T] {
	var out Mat3[T]

	for i := range 3 {
		for j := range 3 {
			out[i][j] = m[i][0]*n[0][j] + m[i][1]*n[1][j] + m[i][2]*n[2][j]
		}
	}

	return out
}

// Det returns the determinant of m.
func (m Mat3[T]) Det() T {
	return m[0][0]*(m[1][1]*m[2][2]-m[1][2]*m[2][1]) -
		m[0][1]*(m[1][0]*m[2][2]-m[1][2]*m[2][0]) +
		m[0][2]*(m[1][0]*m[2][1]-m[1][1]*m[2][0])
}

// Inverse returns the inverse of m via the adjugate and reports whether the
// matrix is invertible. A singular matrix returns ok == false.
func (m Mat3[T]) Inverse() (Mat3[T], bool) {
	det := m.Det()
	if det == 0 || !scalar.IsFinite(det) {
		return Mat3[T]{}, false
	}

	inv := Mat3[T]{
		{
			m[1][1]*m[2][2] - m[1][2]*m[2][1],
			m[0][2]*m[2][1] - m[0][1]*m[2][2],
			m[0][1]*m[1][2] - m[0][2]*m[1][1],
		},
		{
			m[1][2]*m[2][0] - m[1][0]*m[2][2],
			m[0][0]*m[2][2] - m[0][2]*m[2][0],
			m[0][2]*m[1][0] - m[0][0]*m[1][2],
		},
		{
			m[1][0]*m[2][1] - m[1][1]*m[2][0],
			m[0][1]*m[2][0] - m[0][0]*m[2][1],
			m[0][0]*m[1][1] - m[0][1]*m[1][0],
		},
	}

	r := 1 / det
	for i := range 3 {
		for j := range 3 {
			inv[i][j] *= r
		}
	}

	return inv, true
}

// IsFinite reports whether every entry is finite.
func (m Mat3[T]) IsFinite() bool {
	for i := range 3 {
		for j := range 3 {
			if !scalar.IsFinite(m[i][j]) {
				return false
			}
		}
	}

	return true
}
