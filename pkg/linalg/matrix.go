// Package linalg provides dense matrix operations over row-major
// [][]float64 values.
package linalg

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

var (
	ErrEmpty             = errors.New("empty matrix")
	ErrDimensionMismatch = errors.New("matrix dimensions do not match")
	ErrNotSquare         = errors.New("matrix is not square")
	ErrSingular          = errors.New("matrix is singular")
)

// dense converts rows into a gonum matrix. Every row must have the same
// non-zero length.
func dense(rows [][]float64) (*mat.Dense, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmpty
	}
	c := len(rows[0])
	data := make([]float64, 0, len(rows)*c)
	for i, row := range rows {
		if len(row) != c {
			return nil, fmt.Errorf("row %d has %d columns, want %d: %w", i, len(row), c, ErrDimensionMismatch)
		}
		data = append(data, row...)
	}
	return mat.NewDense(len(rows), c, data), nil
}

// toRows copies m back into row-major form.
func toRows(m mat.Matrix) [][]float64 {
	r, c := m.Dims()
	out := make([][]float64, r)
	for i := range out {
		out[i] = make([]float64, c)
		for j := range out[i] {
			out[i][j] = m.At(i, j)
		}
	}
	return out
}

func pair(a, b [][]float64) (*mat.Dense, *mat.Dense, error) {
	ma, err := dense(a)
	if err != nil {
		return nil, nil, err
	}
	mb, err := dense(b)
	if err != nil {
		return nil, nil, err
	}
	return ma, mb, nil
}

// Add returns a + b.
func Add(a, b [][]float64) ([][]float64, error) {
	ma, mb, err := pair(a, b)
	if err != nil {
		return nil, err
	}
	if err := sameShape(ma, mb); err != nil {
		return nil, err
	}
	var out mat.Dense
	out.Add(ma, mb)
	return toRows(&out), nil
}

// Subtract returns a - b.
func Subtract(a, b [][]float64) ([][]float64, error) {
	ma, mb, err := pair(a, b)
	if err != nil {
		return nil, err
	}
	if err := sameShape(ma, mb); err != nil {
		return nil, err
	}
	var out mat.Dense
	out.Sub(ma, mb)
	return toRows(&out), nil
}

// Multiply returns the matrix product a·b.
func Multiply(a, b [][]float64) ([][]float64, error) {
	ma, mb, err := pair(a, b)
	if err != nil {
		return nil, err
	}
	_, ac := ma.Dims()
	br, _ := mb.Dims()
	if ac != br {
		return nil, fmt.Errorf("%d columns times %d rows: %w", ac, br, ErrDimensionMismatch)
	}
	var out mat.Dense
	out.Mul(ma, mb)
	return toRows(&out), nil
}

// Transpose returns the transpose of a.
func Transpose(a [][]float64) ([][]float64, error) {
	m, err := dense(a)
	if err != nil {
		return nil, err
	}
	return toRows(m.T()), nil
}

// Determinant returns det(a) for a square matrix.
func Determinant(a [][]float64) (float64, error) {
	m, err := square(a)
	if err != nil {
		return 0, err
	}
	return mat.Det(m), nil
}

// Inverse returns a⁻¹. Matrices whose inverse cannot be computed to
// working precision are reported as singular.
func Inverse(a [][]float64) ([][]float64, error) {
	m, err := square(a)
	if err != nil {
		return nil, err
	}
	var inv mat.Dense
	if err := inv.Inverse(m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSingular, err)
	}
	return toRows(&inv), nil
}

func square(a [][]float64) (*mat.Dense, error) {
	m, err := dense(a)
	if err != nil {
		return nil, err
	}
	if r, c := m.Dims(); r != c {
		return nil, fmt.Errorf("%dx%d: %w", r, c, ErrNotSquare)
	}
	return m, nil
}

func sameShape(a, b *mat.Dense) error {
	ar, ac := a.Dims()
	br, bc := b.Dims()
	if ar != br || ac != bc {
		return fmt.Errorf("%dx%d and %dx%d: %w", ar, ac, br, bc, ErrDimensionMismatch)
	}
	return nil
}
