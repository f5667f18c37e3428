// Package algebra provides dense single-variable polynomials and complex
// numbers as immutable values.
package algebra

import "errors"

// ErrZeroDivisor is returned when dividing by the zero polynomial or by
// the complex number (0, 0).
var ErrZeroDivisor = errors.New("division by zero")
