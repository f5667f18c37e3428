package calculus

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kritika75/LambdaCalc/pkg/expr"
	"github.com/Kritika75/LambdaCalc/pkg/quadrature"
)

func TestDefiniteIntegralExact(t *testing.T) {
	tests := []struct {
		input string
		a, b  float64
		want  float64
	}{
		{"x**2", 0, 1, 1.0 / 3},
		{"sin(x)", 0, math.Pi, 2},
		{"1/x", 1, math.E, 1},
		{"exp(x)", 0, 1, math.E - 1},
		{"3*x^2 + 2*x", 1, 2, 10},
		{"x**2", 1, 0, -1.0 / 3},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			r, err := DefiniteIntegral(expr.MustParse(tt.input, "x"), "x", tt.a, tt.b, DefaultDefiniteConfig())
			require.NoError(t, err)
			assert.InDelta(t, tt.want, r.Value, 1e-12)
			assert.False(t, r.Approximate)
			assert.Equal(t, MethodExact, r.Method)
		})
	}
}

func TestDefiniteIntegralEmptyInterval(t *testing.T) {
	r, err := DefiniteIntegral(expr.MustParse("sin(x)/x", "x"), "x", 2, 2, DefaultDefiniteConfig())
	require.NoError(t, err)
	assert.Equal(t, 0.0, r.Value)
	assert.False(t, r.Approximate)
}

func TestDefiniteIntegralFallsBackToQuadrature(t *testing.T) {
	node := expr.MustParse("x*sin(x)", "x")
	_, err := Integrate(node, "x")
	require.ErrorIs(t, err, ErrUnsupported)

	for _, method := range quadrature.Names() {
		t.Run(method, func(t *testing.T) {
			cfg := DefiniteConfig{Method: method, Steps: 1000}
			r, err := DefiniteIntegral(node, "x", 0, math.Pi, cfg)
			require.NoError(t, err)
			assert.True(t, r.Approximate)
			assert.Equal(t, method, r.Method)
			assert.InDelta(t, math.Pi, r.Value, 1e-4)
		})
	}
}

func TestDefiniteIntegralGaussian(t *testing.T) {
	r, err := DefiniteIntegral(expr.MustParse("exp(-(x^2))", "x"), "x", -6, 6, DefaultDefiniteConfig())
	require.NoError(t, err)
	assert.True(t, r.Approximate)
	assert.InDelta(t, math.Sqrt(math.Pi), r.Value, 1e-8)
}

func TestDefiniteIntegralPoleInInterval(t *testing.T) {
	for _, input := range []string{"1/x", "1/(x - 0.5)^2", "tan(x)"} {
		t.Run(input, func(t *testing.T) {
			_, err := DefiniteIntegral(expr.MustParse(input, "x"), "x", -1, 2, DefaultDefiniteConfig())
			assert.True(t, errors.Is(err, ErrImproper), "got %v", err)
		})
	}
}

func TestDefiniteIntegralRemovableSingularity(t *testing.T) {
	const si1 = 0.946083070367183 // Si(1)
	tests := []struct {
		input string
		a, b  float64
		want  float64
	}{
		{"sin(x)/x", 0, 1, si1},
		{"sin(x)/x", 1, 0, -si1},
		{"sin(x)/x", -1, 1, 2 * si1},
		{"(x^2 - 1)/(x - 1)", 0, 3, 7.5},
		{"(1 - cos(x))/x^2", -2, 2, 1.7946791170582476},
	}
	for _, tt := range tests {
		for _, method := range quadrature.Names() {
			t.Run(tt.input+"/"+method, func(t *testing.T) {
				cfg := DefiniteConfig{Method: method, Steps: 1000}
				r, err := DefiniteIntegral(expr.MustParse(tt.input, "x"), "x", tt.a, tt.b, cfg)
				require.NoError(t, err)
				assert.True(t, r.Approximate)
				assert.Equal(t, method, r.Method)
				assert.InDelta(t, tt.want, r.Value, 1e-6)
			})
		}
	}
}

func TestDefiniteIntegralSingularWithoutLimit(t *testing.T) {
	for _, input := range []string{"sin(1/x)", "1/sqrt(x)", "1/x"} {
		t.Run(input, func(t *testing.T) {
			_, err := DefiniteIntegral(expr.MustParse(input, "x"), "x", 0, 1, DefaultDefiniteConfig())
			assert.ErrorIs(t, err, ErrImproper)
		})
	}
}

func TestDefiniteIntegralUnknownMethod(t *testing.T) {
	_, err := DefiniteIntegral(expr.MustParse("sin(x)/x", "x"), "x", 1, 2, DefiniteConfig{Method: "guess"})
	assert.Error(t, err)
}
