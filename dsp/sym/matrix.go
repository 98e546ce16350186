package sym

import "fmt"

// Matrix is a small dense matrix of expressions, used for Jacobians and
// their symbolic inverses. Dimensions up to 3x3 are supported for
// inversion, matching the equation sizes virtual-analog filters need.
type Matrix struct {
	rows, cols int
	elems      []Expr
}

// NewMatrix returns a rows x cols matrix initialized to the constant zero.
func NewMatrix(rows, cols int) Matrix {
	elems := make([]Expr, rows*cols)
	for i := range elems {
		elems[i] = Num(0)
	}

	return Matrix{rows: rows, cols: cols, elems: elems}
}

// Rows returns the row count.
func (m Matrix) Rows() int { return m.rows }

// Cols returns the column count.
func (m Matrix) Cols() int { return m.cols }

// At returns the element at row i, column j.
func (m Matrix) At(i, j int) Expr { return m.elems[i*m.cols+j] }

// Set replaces the element at row i, column j.
func (m Matrix) Set(i, j int, e Expr) { m.elems[i*m.cols+j] = e }

// Jacobian returns the matrix of partial derivatives of the residuals with
// respect to the unknowns: row i holds d residuals[i] / d unknowns[j].
func Jacobian(residuals []Expr, unknowns []string) Matrix {
	m := NewMatrix(len(residuals), len(unknowns))

	for i, r := range residuals {
		for j, u := range unknowns {
			m.Set(i, j, Diff(r, u))
		}
	}

	return m
}

// Det returns the symbolic determinant. Only square matrices up to 3x3 are
// supported.
func (m Matrix) Det() (Expr, error) {
	if m.rows != m.cols {
		return nil, fmt.Errorf("sym: determinant of non-square %dx%d matrix", m.rows, m.cols)
	}

	switch m.rows {
	case 1:
		return m.At(0, 0), nil
	case 2:
		return det2(m.At(0, 0), m.At(0, 1), m.At(1, 0), m.At(1, 1)), nil
	case 3:
		return Add(
			Sub(
				Mul(m.At(0, 0), det2(m.At(1, 1), m.At(1, 2), m.At(2, 1), m.At(2, 2))),
				Mul(m.At(0, 1), det2(m.At(1, 0), m.At(1, 2), m.At(2, 0), m.At(2, 2))),
			),
			Mul(m.At(0, 2), det2(m.At(1, 0), m.At(1, 1), m.At(2, 0), m.At(2, 1))),
		), nil
	default:
		return nil, fmt.Errorf("sym: determinant of %dx%d matrix not supported", m.rows, m.cols)
	}
}

func det2(a, b, c, d Expr) Expr {
	return Sub(Mul(a, d), Mul(b, c))
}

// Inverse returns the symbolic inverse via the adjugate and determinant. A
// determinant that simplifies to the constant zero means the matrix is
// singular for every parameter value, which is an authoring error and is
// reported as such.
func (m Matrix) Inverse() (Matrix, error) {
	det, err := m.Det()
	if err != nil {
		return Matrix{}, err
	}

	if IsZero(det) {
		return Matrix{}, fmt.Errorf("sym: matrix is symbolically singular")
	}

	inv := NewMatrix(m.rows, m.cols)

	switch m.rows {
	case 1:
		inv.Set(0, 0, Div(Num(1), m.At(0, 0)))
	case 2:
		inv.Set(0, 0, Div(m.At(1, 1), det))
		inv.Set(0, 1, Div(Neg(m.At(0, 1)), det))
		inv.Set(1, 0, Div(Neg(m.At(1, 0)), det))
		inv.Set(1, 1, Div(m.At(0, 0), det))
	case 3:
		for i := range 3 {
			for j := range 3 {
				// adj[i][j] is the cofactor of element (j, i).
				inv.Set(i, j, Div(cofactor3(m, j, i), det))
			}
		}
	}

	return inv, nil
}

func cofactor3(m Matrix, i, j int) Expr {
	var minor [4]Expr

	k := 0
	for r := range 3 {
		if r == i {
			continue
		}

		for c := range 3 {
			if c == j {
				continue
			}

			minor[k] = m.At(r, c)
			k++
		}
	}

	d := det2(minor[0], minor[1], minor[2], minor[3])
	if (i+j)%2 == 1 {
		return Neg(d)
	}

	return d
}
