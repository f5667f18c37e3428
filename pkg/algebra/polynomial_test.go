package algebra

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolynomialDegree(t *testing.T) {
	assert.Equal(t, -1, NewPolynomial().Degree())
	assert.Equal(t, -1, NewPolynomial(0, 0).Degree())
	assert.Equal(t, 0, NewPolynomial(5).Degree())
	assert.Equal(t, 2, NewPolynomial(1, 0, -2, 0).Degree())
	assert.Equal(t, []float64{1, 0, -2}, NewPolynomial(1, 0, -2, 0).Coefficients())
}

func TestPolynomialArithmetic(t *testing.T) {
	p := NewPolynomial(1, 2, 3)
	q := NewPolynomial(0, 1)

	assert.Equal(t, []float64{1, 3, 3}, p.Add(q).Coefficients())
	assert.Equal(t, []float64{1, 1, 3}, p.Subtract(q).Coefficients())
	assert.Equal(t, []float64{0, 1, 2, 3}, p.Multiply(q).Coefficients())
	assert.True(t, p.Subtract(p).IsZero(), "cancellation lowers the degree")
	assert.Equal(t, []float64{2, 4, 6}, p.Scale(2).Coefficients())
	assert.True(t, p.Multiply(NewPolynomial()).IsZero())
}

func TestPolynomialDivideExample(t *testing.T) {
	p := NewPolynomial(1, 0, -2)
	d := NewPolynomial(1, -1)

	q, r, err := p.Divide(d)
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 2}, q.Coefficients())
	assert.Equal(t, []float64{-1}, r.Coefficients())
	assert.Equal(t, 0, r.Degree())
}

func TestPolynomialDivideByZero(t *testing.T) {
	_, _, err := NewPolynomial(1, 2).Divide(NewPolynomial(0, 0))
	assert.ErrorIs(t, err, ErrZeroDivisor)
}

func TestPolynomialDivideLowerDegree(t *testing.T) {
	p := NewPolynomial(3, 1)
	q, r, err := p.Divide(NewPolynomial(1, 0, 1))
	require.NoError(t, err)
	assert.True(t, q.IsZero())
	assert.Equal(t, p.Coefficients(), r.Coefficients())
}

func randomPolynomial(rng *rand.Rand, maxDegree int) Polynomial {
	n := rng.Intn(maxDegree+1) + 1
	c := make([]float64, n)
	for i := range c {
		c[i] = float64(rng.Intn(21) - 10)
	}
	return NewPolynomial(c...)
}

func TestPolynomialDivisionIdentity(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 200; i++ {
		p := randomPolynomial(rng, 6)
		d := randomPolynomial(rng, 3)
		if d.IsZero() {
			continue
		}
		q, r, err := p.Divide(d)
		require.NoError(t, err)
		assert.Less(t, r.Degree(), d.Degree(), "deg(r) < deg(d) for %s / %s", p, d)
		back := q.Multiply(d).Add(r)
		assert.True(t, back.EqualApprox(p, 1e-6), "%s != (%s)(%s) + %s", p, q, d, r)
	}
}

func TestPolynomialDerivativeOfIntegral(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 100; i++ {
		p := randomPolynomial(rng, 6)
		c := float64(rng.Intn(100) - 50)
		got := p.Integrate(c).Derivative()
		assert.True(t, got.EqualApprox(p, 1e-9), "d/dx ∫%s = %s", p, got)
	}
}

func TestPolynomialDerivativeAndIntegrate(t *testing.T) {
	p := NewPolynomial(5, 3, 0, 4)
	assert.Equal(t, []float64{3, 0, 12}, p.Derivative().Coefficients())
	assert.True(t, NewPolynomial(7).Derivative().IsZero())
	assert.Equal(t, []float64{2, 1, 1}, NewPolynomial(1, 2).Integrate(2).Coefficients())
}

func TestPolynomialEvaluate(t *testing.T) {
	p := NewPolynomial(1, -3, 0, 2)
	tests := []struct {
		x, want float64
	}{
		{0, 1},
		{1, 0},
		{2, 11},
		{-1, 2},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, p.Evaluate(tt.x), "p(%v)", tt.x)
	}
	assert.Equal(t, 0.0, NewPolynomial().Evaluate(3))
}

func TestPolynomialString(t *testing.T) {
	tests := []struct {
		coeffs []float64
		want   string
	}{
		{nil, "0"},
		{[]float64{1, 0, -2}, "-2x² + 1"},
		{[]float64{0, 1}, "x"},
		{[]float64{-1, -1}, "-x - 1"},
		{[]float64{3, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0.5}, "0.5x¹⁰ + 3"},
		{[]float64{0, 0, 1, 2.5}, "2.5x³ + x²"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, NewPolynomial(tt.coeffs...).String())
		})
	}
}
