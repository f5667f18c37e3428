package algebra

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComplexMagnitude(t *testing.T) {
	assert.Equal(t, 5.0, NewComplex(3, 4).Magnitude())
}

func TestComplexArithmetic(t *testing.T) {
	z := NewComplex(1, 2)
	w := NewComplex(3, -1)

	assert.Equal(t, NewComplex(4, 1), z.Add(w))
	assert.Equal(t, NewComplex(-2, 3), z.Subtract(w))
	assert.Equal(t, NewComplex(5, 5), z.Multiply(w))
	assert.Equal(t, NewComplex(1, -2), z.Conjugate())
	assert.InDelta(t, math.Pi/2, NewComplex(0, 1).Phase(), 1e-15)
	assert.InDelta(t, math.Pi, NewComplex(-1, 0).Phase(), 1e-15)

	q, err := z.Divide(w)
	require.NoError(t, err)
	assert.InDelta(t, 0.1, q.Real, 1e-15)
	assert.InDelta(t, 0.7, q.Imag, 1e-15)
}

func TestComplexDivideByZero(t *testing.T) {
	_, err := NewComplex(1, 1).Divide(NewComplex(0, 0))
	assert.ErrorIs(t, err, ErrZeroDivisor)
}

func TestComplexFromReal(t *testing.T) {
	assert.Equal(t, NewComplex(2.5, 0), FromReal(2.5))
	assert.Equal(t, NewComplex(3.5, 4), NewComplex(1, 4).Add(FromReal(2.5)))
}

func TestComplexDivideThenMultiply(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 200; i++ {
		z := NewComplex(rng.NormFloat64()*10, rng.NormFloat64()*10)
		w := NewComplex(rng.NormFloat64()*10, rng.NormFloat64()*10)
		if w.Magnitude() < 1e-3 {
			continue
		}
		q, err := z.Divide(w)
		require.NoError(t, err)
		back := q.Multiply(w)
		assert.InDelta(t, z.Real, back.Real, 1e-9*(1+z.Magnitude()))
		assert.InDelta(t, z.Imag, back.Imag, 1e-9*(1+z.Magnitude()))
	}
}

func TestComplexString(t *testing.T) {
	assert.Equal(t, "(3 + 4i)", NewComplex(3, 4).String())
	assert.Equal(t, "(3 - 4i)", NewComplex(3, -4).String())
	assert.Equal(t, "(0.5 + 0i)", FromReal(0.5).String())
}
