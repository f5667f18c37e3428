package quadrature

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/integrate"
	"gonum.org/v1/gonum/integrate/quad"
)

func init() {
	Register("simpson", func() Method { return &Simpson{} })
	Register("trapezoid", func() Method { return &Trapezoid{} })
	Register("romberg", func() Method { return &Romberg{} })
	Register("legendre", func() Method { return &Legendre{} })
}

// Simpson applies composite Simpson's rule on an even number of
// subintervals.
type Simpson struct{}

func (s *Simpson) Name() string { return "simpson" }

func (s *Simpson) Integrate(f Func, a, b float64, n int) (float64, error) {
	n = clampSteps(n, 2)
	if n%2 == 1 {
		n++
	}
	return oriented(a, b, func(lo, hi float64) (float64, error) {
		xs, ys, err := sample(f, lo, hi, n)
		if err != nil {
			return 0, err
		}
		return integrate.Simpsons(xs, ys), nil
	})
}

// Trapezoid applies the composite trapezoidal rule.
type Trapezoid struct{}

func (t *Trapezoid) Name() string { return "trapezoid" }

func (t *Trapezoid) Integrate(f Func, a, b float64, n int) (float64, error) {
	n = clampSteps(n, 1)
	return oriented(a, b, func(lo, hi float64) (float64, error) {
		xs, ys, err := sample(f, lo, hi, n)
		if err != nil {
			return 0, err
		}
		return integrate.Trapezoidal(xs, ys), nil
	})
}

// Romberg applies Romberg extrapolation. The subinterval count is rounded
// up to a power of two.
type Romberg struct{}

func (r *Romberg) Name() string { return "romberg" }

func (r *Romberg) Integrate(f Func, a, b float64, n int) (float64, error) {
	n = clampSteps(n, 2)
	pow := 1 << uint(math.Ceil(math.Log2(float64(n))))
	if pow > MaxSteps {
		pow = MaxSteps
	}
	return oriented(a, b, func(lo, hi float64) (float64, error) {
		_, ys, err := sample(f, lo, hi, pow)
		if err != nil {
			return 0, err
		}
		return integrate.Romberg(ys, (hi-lo)/float64(pow)), nil
	})
}

// Legendre applies Gauss-Legendre quadrature with n nodes. The nodes are
// interior, so integrable endpoint singularities are tolerated.
type Legendre struct{}

func (l *Legendre) Name() string { return "legendre" }

func (l *Legendre) Integrate(f Func, a, b float64, n int) (float64, error) {
	n = clampSteps(n, 1)
	return oriented(a, b, func(lo, hi float64) (float64, error) {
		var firstErr error
		g := func(x float64) float64 {
			y, err := f(x)
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				return 0
			}
			return y
		}
		v := quad.Fixed(g, lo, hi, n, quad.Legendre{}, 1)
		if firstErr != nil {
			return 0, fmt.Errorf("%w: %v", ErrNonFinite, firstErr)
		}
		return v, nil
	})
}
