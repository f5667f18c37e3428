package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kritika75/LambdaCalc/pkg/algebra"
	"github.com/Kritika75/LambdaCalc/pkg/calculus"
	"github.com/Kritika75/LambdaCalc/pkg/expr"
	"github.com/Kritika75/LambdaCalc/pkg/linalg"
)

func newKernel() *Kernel { return NewKernel(DefaultConfig()) }

func f64(v float64) *float64 { return &v }

func TestParseAndDifferentiate(t *testing.T) {
	k := newKernel()
	got, err := k.ParseAndDifferentiate("x**2 + 3*x", "x")
	require.NoError(t, err)

	d, err := expr.Parse(got, "x")
	require.NoError(t, err, "derivative %q must re-parse", got)
	for _, x := range []float64{0, 1, 5} {
		v, err := expr.EvalAt(d, "x", x)
		require.NoError(t, err)
		assert.InDelta(t, 2*x+3, v, 1e-12)
	}

	_, err = k.ParseAndDifferentiate("x +", "x")
	var pe *expr.ParseError
	assert.ErrorAs(t, err, &pe)
}

func TestParseAndDifferentiateDefaultVariable(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Variable = "t"
	got, err := NewKernel(cfg).ParseAndDifferentiate("t^3", "")
	require.NoError(t, err)
	d := expr.MustParse(got, "t")
	v, err := expr.EvalAt(d, "t", 2)
	require.NoError(t, err)
	assert.InDelta(t, 12, v, 1e-12)
}

func TestParseAndIntegrateIndefinite(t *testing.T) {
	k := newKernel()
	got, err := k.ParseAndIntegrateIndefinite("cos(x) + 2*x", "x")
	require.NoError(t, err)

	f := expr.MustParse(got, "x")
	for _, x := range []float64{0, 0.5, 2} {
		v, err := expr.EvalAt(f, "x", x)
		require.NoError(t, err)
		assert.InDelta(t, 0.0, v-(sinOf(x)+x*x), 1e-12)
	}

	_, err = k.ParseAndIntegrateIndefinite("x*sin(x)", "x")
	assert.ErrorIs(t, err, calculus.ErrUnsupported)
}

func sinOf(x float64) float64 {
	v, _ := expr.ApplyFunc(expr.FnSin, x)
	return v
}

func TestDefiniteIntegral(t *testing.T) {
	k := newKernel()
	r, err := k.DefiniteIntegral("x**2", "x", 0, 1)
	require.NoError(t, err)
	assert.InDelta(t, 1.0/3, r.Value, 1e-12)
	assert.False(t, r.Approximate)
	assert.Equal(t, calculus.MethodExact, r.Method)

	r, err = k.DefiniteIntegral("x*sin(x)", "x", 0, 1)
	require.NoError(t, err)
	assert.True(t, r.Approximate)
	assert.Equal(t, "simpson", r.Method)
	assert.InDelta(t, 0.30116867893975674, r.Value, 1e-9)
}

func TestComputeLimit(t *testing.T) {
	k := newKernel()
	v, err := k.ComputeLimit("sin(x)/x", "x", 0, "both")
	require.NoError(t, err)
	assert.Equal(t, 1.0, v)

	s, err := FormatLimit(k.ComputeLimit("1/x", "x", 0, ""))
	require.NoError(t, err)
	assert.Equal(t, DoesNotExist, s)

	s, err = FormatLimit(k.ComputeLimit("abs(x)/x", "x", 0, "left"))
	require.NoError(t, err)
	assert.Equal(t, "-1", s)

	_, err = k.ComputeLimit("x", "x", 0, "sideways")
	assert.Error(t, err)

	_, err = FormatLimit(k.ComputeLimit("x +", "x", 0, ""))
	assert.Error(t, err)
}

func TestDispatchCalculus(t *testing.T) {
	k := newKernel()
	ctx := context.Background()

	r := k.Dispatch(ctx, Request{Operation: "limit", Function: "1/x", Point: f64(0)})
	require.True(t, r.OK(), r.Error)
	assert.Equal(t, DoesNotExist, r.Value)

	r = k.Dispatch(ctx, Request{Operation: "definite_integral", Function: "x*sin(x)", A: f64(0), B: f64(1)})
	require.True(t, r.OK(), r.Error)
	assert.True(t, r.Approximate)
	assert.Equal(t, "simpson", r.Method)

	r = k.Dispatch(ctx, Request{Operation: "limit", Function: "x"})
	assert.ErrorIs(t, r.Err(), ErrMissingField)

	r = k.Dispatch(ctx, Request{Operation: "differentiate"})
	assert.ErrorIs(t, r.Err(), ErrMissingField)

	r = k.Dispatch(ctx, Request{Operation: "integrate", Function: "x*exp(x)"})
	assert.ErrorIs(t, r.Err(), calculus.ErrUnsupported)

	r = k.Dispatch(ctx, Request{Operation: "solve", Function: "x"})
	assert.ErrorIs(t, r.Err(), ErrUnknownOp)
}

func TestDispatchPolynomial(t *testing.T) {
	k := newKernel()
	ctx := context.Background()

	r := k.Dispatch(ctx, Request{Operation: "poly.divide", CoefficientsA: []float64{1, 0, -2}, CoefficientsB: []float64{1, -1}})
	require.True(t, r.OK(), r.Error)
	div, ok := r.Value.(DivisionValue)
	require.True(t, ok)
	assert.InDeltaSlice(t, []float64{2, 2}, div.Quotient.Coefficients, 1e-12)
	assert.InDeltaSlice(t, []float64{-1}, div.Remainder.Coefficients, 1e-12)

	r = k.Dispatch(ctx, Request{Operation: "poly.evaluate", CoefficientsA: []float64{1, 2, 3}, X: f64(2)})
	require.True(t, r.OK(), r.Error)
	assert.Equal(t, 17.0, r.Value)

	r = k.Dispatch(ctx, Request{Operation: "poly.multiply", CoefficientsA: []float64{1, 1}, CoefficientsB: []float64{-1, 1}})
	require.True(t, r.OK(), r.Error)
	assert.InDeltaSlice(t, []float64{-1, 0, 1}, r.Value.(PolyValue).Coefficients, 1e-12)

	r = k.Dispatch(ctx, Request{Operation: "poly.divide", CoefficientsA: []float64{1}, CoefficientsB: []float64{0}})
	assert.ErrorIs(t, r.Err(), algebra.ErrZeroDivisor)

	r = k.Dispatch(ctx, Request{Operation: "poly.add", CoefficientsA: []float64{1}})
	assert.ErrorIs(t, r.Err(), ErrMissingField)
}

func TestDispatchComplexAndMatrix(t *testing.T) {
	k := newKernel()
	ctx := context.Background()

	r := k.Dispatch(ctx, Request{Operation: "complex.magnitude", RealA: 3, ImagA: 4})
	require.True(t, r.OK(), r.Error)
	assert.Equal(t, 5.0, r.Value)

	r = k.Dispatch(ctx, Request{Operation: "complex.multiply", RealA: 1, ImagA: 2, RealB: 3, ImagB: -1})
	require.True(t, r.OK(), r.Error)
	assert.Equal(t, algebra.NewComplex(5, 5), r.Value)

	r = k.Dispatch(ctx, Request{Operation: "complex.divide", RealA: 1})
	assert.ErrorIs(t, r.Err(), algebra.ErrZeroDivisor)

	r = k.Dispatch(ctx, Request{Operation: "matrix.determinant", MatrixA: [][]float64{{1, 2}, {3, 4}}})
	require.True(t, r.OK(), r.Error)
	assert.InDelta(t, -2, r.Value.(float64), 1e-12)

	r = k.Dispatch(ctx, Request{Operation: "matrix.inverse", MatrixA: [][]float64{{1, 2}, {2, 4}}})
	assert.ErrorIs(t, r.Err(), linalg.ErrSingular)

	r = k.Dispatch(ctx, Request{Operation: "matrix.multiply", MatrixA: [][]float64{{1, 2}}})
	assert.ErrorIs(t, r.Err(), ErrMissingField)
}

func TestDispatchNumbers(t *testing.T) {
	k := newKernel()
	ctx := context.Background()

	r := k.Dispatch(ctx, Request{Operation: "gcd", A: f64(84), B: f64(36)})
	require.True(t, r.OK(), r.Error)
	assert.Equal(t, int64(12), r.Value)

	r = k.Dispatch(ctx, Request{Operation: "primes", A: f64(1), B: f64(12)})
	require.True(t, r.OK(), r.Error)
	assert.Equal(t, []int64{2, 3, 5, 7, 11}, r.Value)

	r = k.Dispatch(ctx, Request{Operation: "is_prime", A: f64(2.5)})
	assert.ErrorIs(t, r.Err(), ErrInvalidField)

	r = k.Dispatch(ctx, Request{Operation: "stddev", Numbers: []float64{2, 4, 4, 4, 5, 5, 7, 9}})
	require.True(t, r.OK(), r.Error)
	assert.InDelta(t, 2.138089935299395, r.Value.(float64), 1e-12)

	r = k.Dispatch(ctx, Request{Operation: "mean"})
	assert.Error(t, r.Err())
}

func TestDispatchCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := newKernel().Dispatch(ctx, Request{Operation: "gcd", A: f64(1), B: f64(1)})
	assert.ErrorIs(t, r.Err(), context.Canceled)
}

func TestOpsCoversFamilies(t *testing.T) {
	ops := Ops()
	for _, op := range []string{
		"calculate", "differentiate", "integrate", "definite_integral", "limit",
		"poly.add", "poly.subtract", "poly.multiply", "poly.divide",
		"poly.derivative", "poly.integrate", "poly.evaluate",
		"complex.add", "complex.subtract", "complex.multiply", "complex.divide",
		"complex.magnitude", "complex.conjugate", "complex.phase",
		"matrix.add", "matrix.subtract", "matrix.multiply",
		"matrix.transpose", "matrix.determinant", "matrix.inverse",
		"gcd", "lcm", "is_prime", "primes", "mean", "stddev", "variance",
	} {
		assert.Contains(t, ops, op)
	}
}

func TestNthDerivative(t *testing.T) {
	k := newKernel()
	d, err := k.NthDerivative("sin(x)", "x", 4)
	require.NoError(t, err)
	v, err := expr.EvalAt(d, "x", 1)
	require.NoError(t, err)
	assert.InDelta(t, sinOf(1), v, 1e-12)

	_, err = k.NthDerivative("x", "x", -1)
	assert.ErrorIs(t, err, ErrInvalidField)
}

func TestEvaluate(t *testing.T) {
	k := newKernel()
	v, err := k.Evaluate("2 + 3*4^2", "", nil)
	require.NoError(t, err)
	assert.Equal(t, 50.0, v)

	v, err = k.Evaluate("sin(pi/2) + x", "x", f64(1.5))
	require.NoError(t, err)
	assert.InDelta(t, 2.5, v, 1e-12)

	_, err = k.Evaluate("ln(0)", "", nil)
	assert.ErrorIs(t, err, expr.ErrDomain)

	_, err = k.Evaluate("x + 1", "x", nil)
	assert.ErrorIs(t, err, expr.ErrDomain)
}

func TestDispatchCalculate(t *testing.T) {
	k := newKernel()
	ctx := context.Background()

	r := k.Dispatch(ctx, Request{Operation: "calculate", Function: "(1 + 2) * 3"})
	require.True(t, r.OK(), r.Error)
	assert.Equal(t, 9.0, r.Value)

	r = k.Dispatch(ctx, Request{Operation: "calculate", Function: "t^2", Variable: "t", X: f64(3)})
	require.True(t, r.OK(), r.Error)
	assert.Equal(t, 9.0, r.Value)

	r = k.Dispatch(ctx, Request{Operation: "calculate", Function: "1/0"})
	var de *expr.DomainError
	assert.ErrorAs(t, r.Err(), &de)

	r = k.Dispatch(ctx, Request{Operation: "calculate"})
	assert.ErrorIs(t, r.Err(), ErrMissingField)
}
