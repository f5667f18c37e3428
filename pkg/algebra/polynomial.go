package algebra

import (
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// Polynomial is Σ c[i]·x^i with float64 coefficients, index = degree.
// Values are immutable; every operation returns a new Polynomial.
type Polynomial struct {
	coeffs []float64
}

// NewPolynomial builds a polynomial from coefficients ordered by degree.
// Trailing zeros are dropped.
func NewPolynomial(coeffs ...float64) Polynomial {
	out := make([]float64, len(coeffs))
	copy(out, coeffs)
	return Polynomial{coeffs: out}.trim()
}

func (p Polynomial) trim() Polynomial {
	i := len(p.coeffs)
	for i > 0 && p.coeffs[i-1] == 0 {
		i--
	}
	return Polynomial{coeffs: p.coeffs[:i:i]}
}

// Coefficients returns a copy of the coefficients, lowest degree first.
// The zero polynomial has no coefficients.
func (p Polynomial) Coefficients() []float64 {
	out := make([]float64, len(p.coeffs))
	copy(out, p.coeffs)
	return out
}

// Coeff returns the coefficient of x^i, zero beyond the degree.
func (p Polynomial) Coeff(i int) float64 {
	if i < 0 || i >= len(p.coeffs) {
		return 0
	}
	return p.coeffs[i]
}

// Degree returns the highest power with a nonzero coefficient, or -1 for
// the zero polynomial.
func (p Polynomial) Degree() int {
	for i := len(p.coeffs) - 1; i >= 0; i-- {
		if p.coeffs[i] != 0 {
			return i
		}
	}
	return -1
}

// IsZero reports whether p is the zero polynomial.
func (p Polynomial) IsZero() bool { return p.Degree() < 0 }

// Add returns p + q.
func (p Polynomial) Add(q Polynomial) Polynomial {
	n := max(len(p.coeffs), len(q.coeffs))
	out := make([]float64, n)
	for i := range out {
		out[i] = p.Coeff(i) + q.Coeff(i)
	}
	return Polynomial{coeffs: out}.trim()
}

// Subtract returns p - q.
func (p Polynomial) Subtract(q Polynomial) Polynomial {
	n := max(len(p.coeffs), len(q.coeffs))
	out := make([]float64, n)
	for i := range out {
		out[i] = p.Coeff(i) - q.Coeff(i)
	}
	return Polynomial{coeffs: out}.trim()
}

// Scale returns k·p.
func (p Polynomial) Scale(k float64) Polynomial {
	out := make([]float64, len(p.coeffs))
	floats.ScaleTo(out, k, p.coeffs)
	return Polynomial{coeffs: out}.trim()
}

// Multiply returns p·q by full convolution.
func (p Polynomial) Multiply(q Polynomial) Polynomial {
	if p.IsZero() || q.IsZero() {
		return Polynomial{}
	}
	out := make([]float64, len(p.coeffs)+len(q.coeffs)-1)
	for i, a := range p.coeffs {
		for j, b := range q.coeffs {
			out[i+j] += a * b
		}
	}
	return Polynomial{coeffs: out}.trim()
}

// Divide performs long division, returning quotient and remainder with
// p = quotient·divisor + remainder and deg(remainder) < deg(divisor).
func (p Polynomial) Divide(divisor Polynomial) (Polynomial, Polynomial, error) {
	dd := divisor.Degree()
	if dd < 0 {
		return Polynomial{}, Polynomial{}, ErrZeroDivisor
	}
	pd := p.Degree()
	if pd < dd {
		return Polynomial{}, p, nil
	}

	rem := make([]float64, pd+1)
	copy(rem, p.coeffs)
	quot := make([]float64, pd-dd+1)
	lead := divisor.coeffs[dd]

	for i := pd; i >= dd; i-- {
		c := rem[i] / lead
		quot[i-dd] = c
		for j := 0; j < dd; j++ {
			rem[i-dd+j] -= c * divisor.coeffs[j]
		}
		// The leading term cancels exactly by construction.
		rem[i] = 0
	}
	return Polynomial{coeffs: quot}.trim(), Polynomial{coeffs: rem[:dd]}.trim(), nil
}

// Derivative returns dp/dx.
func (p Polynomial) Derivative() Polynomial {
	if len(p.coeffs) <= 1 {
		return Polynomial{}
	}
	out := make([]float64, len(p.coeffs)-1)
	for i := 1; i < len(p.coeffs); i++ {
		out[i-1] = float64(i) * p.coeffs[i]
	}
	return Polynomial{coeffs: out}.trim()
}

// Integrate returns the antiderivative with the given constant term.
func (p Polynomial) Integrate(constant float64) Polynomial {
	out := make([]float64, len(p.coeffs)+1)
	out[0] = constant
	for i, c := range p.coeffs {
		out[i+1] = c / float64(i+1)
	}
	return Polynomial{coeffs: out}.trim()
}

// Evaluate computes p(x) with Horner's method.
func (p Polynomial) Evaluate(x float64) float64 {
	if len(p.coeffs) == 0 {
		return 0
	}
	v := p.coeffs[len(p.coeffs)-1]
	for i := len(p.coeffs) - 2; i >= 0; i-- {
		v = v*x + p.coeffs[i]
	}
	return v
}

// EqualApprox reports whether p and q agree coefficient-wise within tol.
func (p Polynomial) EqualApprox(q Polynomial, tol float64) bool {
	n := max(len(p.coeffs), len(q.coeffs))
	a := make([]float64, n)
	b := make([]float64, n)
	copy(a, p.coeffs)
	copy(b, q.coeffs)
	return floats.EqualApprox(a, b, tol)
}

var superscripts = []rune("⁰¹²³⁴⁵⁶⁷⁸⁹")

func superscript(n int) string {
	digits := strconv.Itoa(n)
	var sb strings.Builder
	for _, d := range digits {
		sb.WriteRune(superscripts[d-'0'])
	}
	return sb.String()
}

// String renders the polynomial highest degree first, e.g. "-2x² + 1",
// omitting zero terms. The zero polynomial renders as "0".
func (p Polynomial) String() string {
	var sb strings.Builder
	for i := len(p.coeffs) - 1; i >= 0; i-- {
		c := p.coeffs[i]
		if c == 0 {
			continue
		}
		if sb.Len() == 0 {
			if c < 0 {
				sb.WriteString("-")
			}
		} else if c < 0 {
			sb.WriteString(" - ")
		} else {
			sb.WriteString(" + ")
		}
		mag := c
		if mag < 0 {
			mag = -mag
		}
		if mag != 1 || i == 0 {
			sb.WriteString(strconv.FormatFloat(mag, 'g', -1, 64))
		}
		switch {
		case i == 1:
			sb.WriteString("x")
		case i > 1:
			sb.WriteString("x" + superscript(i))
		}
	}
	if sb.Len() == 0 {
		return "0"
	}
	return sb.String()
}
