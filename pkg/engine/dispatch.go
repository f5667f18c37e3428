package engine

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/Kritika75/LambdaCalc/pkg/algebra"
	"github.com/Kritika75/LambdaCalc/pkg/calculus"
	"github.com/Kritika75/LambdaCalc/pkg/linalg"
	"github.com/Kritika75/LambdaCalc/pkg/numtheory"
	"github.com/Kritika75/LambdaCalc/pkg/stats"
)

// outcome is what a handler produces besides its error.
type outcome struct {
	value       any
	approximate bool
	method      string
}

type handler func(k *Kernel, req Request) (outcome, error)

var handlers = map[string]handler{}

func register(op string, h handler) {
	handlers[op] = h
}

// Ops returns every operation name Dispatch accepts, sorted.
func Ops() []string {
	names := make([]string, 0, len(handlers))
	for k := range handlers {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Dispatch runs one request. Failures are reported in the Result.
func (k *Kernel) Dispatch(ctx context.Context, req Request) Result {
	res := Result{ID: req.ID, Operation: req.Operation}
	start := time.Now()
	out, err := k.dispatch(ctx, req)
	res.Elapsed = time.Since(start)
	if err != nil {
		res.err = err
		res.Error = err.Error()
		return res
	}
	res.Value = out.value
	res.Approximate = out.approximate
	res.Method = out.method
	return res
}

func (k *Kernel) dispatch(ctx context.Context, req Request) (outcome, error) {
	if err := ctx.Err(); err != nil {
		return outcome{}, err
	}
	h, ok := handlers[req.Operation]
	if !ok {
		return outcome{}, fmt.Errorf("%w: %q", ErrUnknownOp, req.Operation)
	}
	out, err := h(k, req)
	if err != nil {
		return outcome{}, err
	}
	if !finite(out.value) {
		return outcome{}, fmt.Errorf("%w: %s", ErrNonFinite, req.Operation)
	}
	return out, nil
}

// finite reports whether every float in a result value is finite. JSON
// cannot carry Inf or NaN.
func finite(v any) bool {
	isFinite := func(f float64) bool { return !math.IsInf(f, 0) && !math.IsNaN(f) }
	allFinite := func(fs []float64) bool {
		for _, f := range fs {
			if !isFinite(f) {
				return false
			}
		}
		return true
	}
	switch x := v.(type) {
	case float64:
		return isFinite(x)
	case algebra.Complex:
		return isFinite(x.Real) && isFinite(x.Imag)
	case PolyValue:
		return allFinite(x.Coefficients)
	case DivisionValue:
		return allFinite(x.Quotient.Coefficients) && allFinite(x.Remainder.Coefficients)
	case [][]float64:
		for _, row := range x {
			if !allFinite(row) {
				return false
			}
		}
	}
	return true
}

func value(v any) outcome { return outcome{value: v} }

func function(req Request) (string, error) {
	if req.Function == "" {
		return "", fmt.Errorf("%w: function", ErrMissingField)
	}
	return req.Function, nil
}

func init() {
	register("calculate", func(k *Kernel, req Request) (outcome, error) {
		f, err := function(req)
		if err != nil {
			return outcome{}, err
		}
		v, err := k.Evaluate(f, req.Variable, req.X)
		return value(v), err
	})
	register("differentiate", func(k *Kernel, req Request) (outcome, error) {
		f, err := function(req)
		if err != nil {
			return outcome{}, err
		}
		s, err := k.ParseAndDifferentiate(f, req.Variable)
		return value(s), err
	})
	register("integrate", func(k *Kernel, req Request) (outcome, error) {
		f, err := function(req)
		if err != nil {
			return outcome{}, err
		}
		s, err := k.ParseAndIntegrateIndefinite(f, req.Variable)
		return value(s), err
	})
	register("definite_integral", func(k *Kernel, req Request) (outcome, error) {
		f, err := function(req)
		if err != nil {
			return outcome{}, err
		}
		a, err := required("a", req.A)
		if err != nil {
			return outcome{}, err
		}
		b, err := required("b", req.B)
		if err != nil {
			return outcome{}, err
		}
		r, err := k.DefiniteIntegral(f, req.Variable, a, b)
		if err != nil {
			return outcome{}, err
		}
		return outcome{value: r.Value, approximate: r.Approximate, method: r.Method}, nil
	})
	register("limit", func(k *Kernel, req Request) (outcome, error) {
		f, err := function(req)
		if err != nil {
			return outcome{}, err
		}
		p, err := required("point", req.Point)
		if err != nil {
			return outcome{}, err
		}
		v, err := k.ComputeLimit(f, req.Variable, p, req.Direction)
		if errors.Is(err, calculus.ErrDoesNotExist) {
			return value(DoesNotExist), nil
		}
		return value(v), err
	})

	registerPolynomial()
	registerComplex()
	registerMatrix()
	registerNumbers()
}

func polyValue(p algebra.Polynomial) PolyValue {
	return PolyValue{Coefficients: p.Coefficients(), Text: p.String()}
}

func polyOperands(req Request, binary bool) (algebra.Polynomial, algebra.Polynomial, error) {
	if req.CoefficientsA == nil {
		return algebra.Polynomial{}, algebra.Polynomial{}, fmt.Errorf("%w: coefficientsA", ErrMissingField)
	}
	p := algebra.NewPolynomial(req.CoefficientsA...)
	if !binary {
		return p, algebra.Polynomial{}, nil
	}
	if req.CoefficientsB == nil {
		return algebra.Polynomial{}, algebra.Polynomial{}, fmt.Errorf("%w: coefficientsB", ErrMissingField)
	}
	return p, algebra.NewPolynomial(req.CoefficientsB...), nil
}

func registerPolynomial() {
	binary := map[string]func(p, q algebra.Polynomial) algebra.Polynomial{
		"poly.add":      algebra.Polynomial.Add,
		"poly.subtract": algebra.Polynomial.Subtract,
		"poly.multiply": algebra.Polynomial.Multiply,
	}
	for op, fn := range binary {
		register(op, func(_ *Kernel, req Request) (outcome, error) {
			p, q, err := polyOperands(req, true)
			if err != nil {
				return outcome{}, err
			}
			return value(polyValue(fn(p, q))), nil
		})
	}

	register("poly.divide", func(_ *Kernel, req Request) (outcome, error) {
		p, q, err := polyOperands(req, true)
		if err != nil {
			return outcome{}, err
		}
		quo, rem, err := p.Divide(q)
		if err != nil {
			return outcome{}, err
		}
		return value(DivisionValue{Quotient: polyValue(quo), Remainder: polyValue(rem)}), nil
	})
	register("poly.derivative", func(_ *Kernel, req Request) (outcome, error) {
		p, _, err := polyOperands(req, false)
		if err != nil {
			return outcome{}, err
		}
		return value(polyValue(p.Derivative())), nil
	})
	register("poly.integrate", func(_ *Kernel, req Request) (outcome, error) {
		p, _, err := polyOperands(req, false)
		if err != nil {
			return outcome{}, err
		}
		return value(polyValue(p.Integrate(req.Constant))), nil
	})
	register("poly.evaluate", func(_ *Kernel, req Request) (outcome, error) {
		p, _, err := polyOperands(req, false)
		if err != nil {
			return outcome{}, err
		}
		x, err := required("x", req.X)
		if err != nil {
			return outcome{}, err
		}
		return value(p.Evaluate(x)), nil
	})
}

func registerComplex() {
	operands := func(req Request) (algebra.Complex, algebra.Complex) {
		return algebra.NewComplex(req.RealA, req.ImagA), algebra.NewComplex(req.RealB, req.ImagB)
	}
	register("complex.add", func(_ *Kernel, req Request) (outcome, error) {
		z, w := operands(req)
		return value(z.Add(w)), nil
	})
	register("complex.subtract", func(_ *Kernel, req Request) (outcome, error) {
		z, w := operands(req)
		return value(z.Subtract(w)), nil
	})
	register("complex.multiply", func(_ *Kernel, req Request) (outcome, error) {
		z, w := operands(req)
		return value(z.Multiply(w)), nil
	})
	register("complex.divide", func(_ *Kernel, req Request) (outcome, error) {
		z, w := operands(req)
		q, err := z.Divide(w)
		return value(q), err
	})
	register("complex.magnitude", func(_ *Kernel, req Request) (outcome, error) {
		z, _ := operands(req)
		return value(z.Magnitude()), nil
	})
	register("complex.conjugate", func(_ *Kernel, req Request) (outcome, error) {
		z, _ := operands(req)
		return value(z.Conjugate()), nil
	})
	register("complex.phase", func(_ *Kernel, req Request) (outcome, error) {
		z, _ := operands(req)
		return value(z.Phase()), nil
	})
}

func registerMatrix() {
	binary := map[string]func(a, b [][]float64) ([][]float64, error){
		"matrix.add":      linalg.Add,
		"matrix.subtract": linalg.Subtract,
		"matrix.multiply": linalg.Multiply,
	}
	for op, fn := range binary {
		register(op, func(_ *Kernel, req Request) (outcome, error) {
			if req.MatrixA == nil || req.MatrixB == nil {
				return outcome{}, fmt.Errorf("%w: matrixA and matrixB", ErrMissingField)
			}
			m, err := fn(req.MatrixA, req.MatrixB)
			return value(m), err
		})
	}

	unary := map[string]func(a [][]float64) (any, error){
		"matrix.transpose": func(a [][]float64) (any, error) { return linalg.Transpose(a) },
		"matrix.inverse":   func(a [][]float64) (any, error) { return linalg.Inverse(a) },
		"matrix.determinant": func(a [][]float64) (any, error) {
			return linalg.Determinant(a)
		},
	}
	for op, fn := range unary {
		register(op, func(_ *Kernel, req Request) (outcome, error) {
			if req.MatrixA == nil {
				return outcome{}, fmt.Errorf("%w: matrixA", ErrMissingField)
			}
			v, err := fn(req.MatrixA)
			if err != nil {
				return outcome{}, err
			}
			return value(v), nil
		})
	}
}

func integerPair(req Request) (int64, int64, error) {
	a, err := requiredInt("a", req.A)
	if err != nil {
		return 0, 0, err
	}
	b, err := requiredInt("b", req.B)
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}

func registerNumbers() {
	register("gcd", func(_ *Kernel, req Request) (outcome, error) {
		a, b, err := integerPair(req)
		if err != nil {
			return outcome{}, err
		}
		return value(numtheory.GCD(a, b)), nil
	})
	register("lcm", func(_ *Kernel, req Request) (outcome, error) {
		a, b, err := integerPair(req)
		if err != nil {
			return outcome{}, err
		}
		l, err := numtheory.LCM(a, b)
		return value(l), err
	})
	register("is_prime", func(_ *Kernel, req Request) (outcome, error) {
		n, err := requiredInt("a", req.A)
		if err != nil {
			return outcome{}, err
		}
		return value(numtheory.IsPrime(n)), nil
	})
	register("primes", func(_ *Kernel, req Request) (outcome, error) {
		lo, hi, err := integerPair(req)
		if err != nil {
			return outcome{}, err
		}
		ps, err := numtheory.Primes(lo, hi)
		return value(ps), err
	})

	sample := map[string]func([]float64) (float64, error){
		"mean":     stats.Mean,
		"stddev":   stats.StdDev,
		"variance": stats.Variance,
	}
	for op, fn := range sample {
		register(op, func(_ *Kernel, req Request) (outcome, error) {
			v, err := fn(req.Numbers)
			return value(v), err
		})
	}
}
