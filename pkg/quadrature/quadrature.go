// Package quadrature provides fixed-step numeric integration methods. Every
// method performs a bounded number of integrand evaluations.
package quadrature

import (
	"errors"
	"fmt"
	"sort"
)

// ErrNonFinite is returned when the integrand cannot be evaluated at a
// sample point.
var ErrNonFinite = errors.New("integrand not finite on interval")

// DefaultSteps is the subinterval count used when none is given.
const DefaultSteps = 1000

// MaxSteps caps the subinterval count.
const MaxSteps = 1 << 20

// Func is an integrand that may fail outside its domain.
type Func func(x float64) (float64, error)

// Method approximates ∫_a^b f with n subintervals.
type Method interface {
	Name() string
	Integrate(f Func, a, b float64, n int) (float64, error)
}

var registry = map[string]func() Method{}

// Register adds a method constructor to the registry.
func Register(name string, constructor func() Method) {
	registry[name] = constructor
}

// Get returns a method by name.
func Get(name string) (Method, error) {
	ctor, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown quadrature method: %s", name)
	}
	return ctor(), nil
}

// Names returns all registered method names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for k := range registry {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// clampSteps bounds n to [min, MaxSteps], substituting DefaultSteps for
// non-positive values.
func clampSteps(n, min int) int {
	if n <= 0 {
		n = DefaultSteps
	}
	if n < min {
		n = min
	}
	if n > MaxSteps {
		n = MaxSteps
	}
	return n
}

// sample evaluates f on n+1 evenly spaced points from a to b.
func sample(f Func, a, b float64, n int) ([]float64, []float64, error) {
	xs := make([]float64, n+1)
	ys := make([]float64, n+1)
	h := (b - a) / float64(n)
	for i := range xs {
		x := a + float64(i)*h
		if i == n {
			x = b
		}
		y, err := f(x)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: at %g: %v", ErrNonFinite, x, err)
		}
		xs[i] = x
		ys[i] = y
	}
	return xs, ys, nil
}

// oriented integrates over [min(a,b), max(a,b)] and restores the sign.
func oriented(a, b float64, integrate func(lo, hi float64) (float64, error)) (float64, error) {
	if a == b {
		return 0, nil
	}
	if a > b {
		v, err := integrate(b, a)
		return -v, err
	}
	return integrate(a, b)
}
