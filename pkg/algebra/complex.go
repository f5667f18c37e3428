package algebra

import (
	"fmt"
	"math"
	"strconv"
)

// Complex is an immutable complex number.
type Complex struct {
	Real float64 `json:"real"`
	Imag float64 `json:"imag"`
}

// NewComplex returns real + imag·i.
func NewComplex(real, imag float64) Complex {
	return Complex{Real: real, Imag: imag}
}

// FromReal lifts a real number to the complex plane.
func FromReal(v float64) Complex {
	return Complex{Real: v}
}

// Add returns z + w.
func (z Complex) Add(w Complex) Complex {
	return Complex{Real: z.Real + w.Real, Imag: z.Imag + w.Imag}
}

// Subtract returns z - w.
func (z Complex) Subtract(w Complex) Complex {
	return Complex{Real: z.Real - w.Real, Imag: z.Imag - w.Imag}
}

// Multiply returns z·w.
func (z Complex) Multiply(w Complex) Complex {
	return Complex{
		Real: z.Real*w.Real - z.Imag*w.Imag,
		Imag: z.Real*w.Imag + z.Imag*w.Real,
	}
}

// Divide returns z / w, or ErrZeroDivisor when w is (0, 0).
func (z Complex) Divide(w Complex) (Complex, error) {
	den := w.Real*w.Real + w.Imag*w.Imag
	if den == 0 {
		return Complex{}, ErrZeroDivisor
	}
	return Complex{
		Real: (z.Real*w.Real + z.Imag*w.Imag) / den,
		Imag: (z.Imag*w.Real - z.Real*w.Imag) / den,
	}, nil
}

// Magnitude returns |z|.
func (z Complex) Magnitude() float64 {
	return math.Hypot(z.Real, z.Imag)
}

// Conjugate returns the complex conjugate.
func (z Complex) Conjugate() Complex {
	return Complex{Real: z.Real, Imag: -z.Imag}
}

// Phase returns the argument of z in radians, in (-π, π].
func (z Complex) Phase() float64 {
	return math.Atan2(z.Imag, z.Real)
}

func (z Complex) String() string {
	re := strconv.FormatFloat(z.Real, 'g', -1, 64)
	if math.Signbit(z.Imag) {
		return fmt.Sprintf("(%s - %si)", re, strconv.FormatFloat(-z.Imag, 'g', -1, 64))
	}
	return fmt.Sprintf("(%s + %si)", re, strconv.FormatFloat(z.Imag, 'g', -1, 64))
}
