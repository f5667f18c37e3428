package calculus

import (
	"errors"
	"fmt"
	"math"

	"github.com/Kritika75/LambdaCalc/pkg/expr"
	"github.com/Kritika75/LambdaCalc/pkg/quadrature"
)

// MethodExact names results obtained from an antiderivative.
const MethodExact = "antiderivative"

// DefiniteConfig selects the numeric fallback used when no antiderivative
// is found.
type DefiniteConfig struct {
	Method string
	Steps  int
}

// DefaultDefiniteConfig returns Simpson's rule with quadrature.DefaultSteps.
func DefaultDefiniteConfig() DefiniteConfig {
	return DefiniteConfig{Method: "simpson", Steps: quadrature.DefaultSteps}
}

// DefiniteResult is the value of a definite integral. Approximate is set
// when the value came from numeric quadrature rather than F(b) - F(a).
type DefiniteResult struct {
	Value       float64 `json:"value"`
	Approximate bool    `json:"approximate"`
	Method      string  `json:"method"`
}

// DefiniteIntegral computes ∫_a^b node d(variable) as F(b) - F(a). When
// the integrator cannot find F, or F cannot be evaluated at a bound, it
// falls back to the configured quadrature and marks the result approximate.
// A point where the integrand is undefined but has a finite limit is
// integrated through by quadrature; a pole is ErrImproper.
func DefiniteIntegral(node expr.ExprNode, variable string, a, b float64, cfg DefiniteConfig) (DefiniteResult, error) {
	if a == b {
		return DefiniteResult{Value: 0, Method: MethodExact}, nil
	}
	lo, hi := math.Min(a, b), math.Max(a, b)
	points := findSingularities(node, variable, lo, hi)
	if len(points) > 0 {
		patch := make(map[float64]float64, len(points))
		for _, at := range points {
			v, err := removableValue(node, variable, at, lo, hi)
			if err != nil {
				return DefiniteResult{}, fmt.Errorf("%w: pole of %s near %g", ErrImproper, node, at)
			}
			patch[at] = v
		}
		return quadratureWith(node, variable, a, b, cfg, patch)
	}

	if anti, err := Integrate(node, variable); err == nil {
		fb, errB := expr.EvalAt(anti, variable, b)
		fa, errA := expr.EvalAt(anti, variable, a)
		if errA == nil && errB == nil {
			return DefiniteResult{Value: fb - fa, Method: MethodExact}, nil
		}
	} else if !errors.Is(err, ErrUnsupported) {
		return DefiniteResult{}, err
	}

	return Quadrature(node, variable, a, b, cfg)
}

// Quadrature integrates node numerically. The result is always approximate.
func Quadrature(node expr.ExprNode, variable string, a, b float64, cfg DefiniteConfig) (DefiniteResult, error) {
	return quadratureWith(node, variable, a, b, cfg, nil)
}

// quadratureWith integrates node, substituting patch values for samples
// that fail to evaluate at a removable singularity.
func quadratureWith(node expr.ExprNode, variable string, a, b float64, cfg DefiniteConfig, patch map[float64]float64) (DefiniteResult, error) {
	if cfg.Method == "" {
		cfg.Method = DefaultDefiniteConfig().Method
	}
	m, err := quadrature.Get(cfg.Method)
	if err != nil {
		return DefiniteResult{}, err
	}
	f := func(x float64) (float64, error) {
		v, err := expr.EvalAt(node, variable, x)
		if err == nil {
			return v, nil
		}
		for at, lim := range patch {
			if math.Abs(x-at) <= samePointTol*math.Max(1, math.Abs(at)) {
				return lim, nil
			}
		}
		return 0, err
	}
	v, err := m.Integrate(f, a, b, cfg.Steps)
	if err != nil {
		return DefiniteResult{}, fmt.Errorf("integrating %s over [%g, %g]: %w", node, a, b, err)
	}
	return DefiniteResult{Value: v, Approximate: true, Method: m.Name()}, nil
}

const (
	// poleScanSamples is the grid used to look for denominators changing sign.
	poleScanSamples = 256
	// samePointTol is the relative distance under which two abscissae are
	// the same singular point.
	samePointTol = 1e-9
	// poleGrowth is the factor by which |f| must grow between the far and
	// near samples for a point to count as a pole.
	poleGrowth = 10
)

// removableValue returns the limit of node at a singular point when the
// integrand stays bounded around it, approaching from inside [lo, hi].
func removableValue(node expr.ExprNode, variable string, at, lo, hi float64) (float64, error) {
	w := math.Min(hi-lo, math.Max(1, math.Abs(at)))
	far, near := 1e-3*w, 1e-7*w
	checked := false
	for _, sign := range []float64{1, -1} {
		if x := at + sign*far; x < lo || x > hi {
			continue
		}
		checked = true
		fv, errF := expr.EvalAt(node, variable, at+sign*far)
		nv, errN := expr.EvalAt(node, variable, at+sign*near)
		if errF != nil || errN != nil || math.Abs(nv) > poleGrowth*(1+math.Abs(fv)) {
			return 0, ErrImproper
		}
	}
	if !checked {
		return 0, ErrImproper
	}

	dir := Both
	switch {
	case at-far < lo:
		dir = Right
	case at+far > hi:
		dir = Left
	}
	return Limit(node, variable, at, dir)
}

// findSingularities returns the points of [lo, hi] where a denominator,
// negative-power base or tangent vanishes or changes sign. Sign changes
// are narrowed to the crossing by bisection.
func findSingularities(node expr.ExprNode, variable string, lo, hi float64) []float64 {
	var dens []expr.ExprNode
	// Factors of a denominator vanish wherever it does; scanning them
	// separately catches even powers that touch zero without a sign change.
	var addDen func(expr.ExprNode)
	addDen = func(d expr.ExprNode) {
		dens = append(dens, d)
		switch d := d.(type) {
		case *expr.UnaryNode:
			addDen(d.Child)
		case *expr.BinaryNode:
			switch d.Op {
			case expr.OpMul:
				addDen(d.Left)
				addDen(d.Right)
			case expr.OpPow:
				if k, ok := constValue(d.Right, variable); ok && k > 0 {
					addDen(d.Left)
				}
			}
		}
	}
	var walk func(expr.ExprNode)
	walk = func(n expr.ExprNode) {
		switch n := n.(type) {
		case *expr.UnaryNode:
			walk(n.Child)
		case *expr.BinaryNode:
			switch n.Op {
			case expr.OpDiv:
				addDen(n.Right)
			case expr.OpPow:
				if k, ok := constValue(n.Right, variable); ok && k < 0 {
					addDen(n.Left)
				}
			}
			walk(n.Left)
			walk(n.Right)
		case *expr.CallNode:
			if n.Fn == expr.FnTan {
				addDen(expr.Call(expr.FnCos, n.Arg))
			}
			walk(n.Arg)
		}
	}
	walk(node)

	var points []float64
	add := func(x float64) {
		for _, p := range points {
			if math.Abs(x-p) <= samePointTol*math.Max(1, math.Abs(p)) {
				return
			}
		}
		points = append(points, x)
	}
	for _, den := range dens {
		if !expr.ContainsVar(den, variable) {
			continue
		}
		prevX, prev, prevOK := 0.0, 0.0, false
		for i := 0; i <= poleScanSamples; i++ {
			x := lo + (hi-lo)*float64(i)/poleScanSamples
			v, err := expr.EvalAt(den, variable, x)
			if err != nil {
				prevOK = false
				continue
			}
			switch {
			case v == 0:
				add(x)
			case prevOK && prev != 0 && (v < 0) != (prev < 0):
				add(bisect(den, variable, prevX, x, prev))
			}
			prevX, prev, prevOK = x, v, true
		}
	}
	return points
}

// bisect narrows a sign change of den on [l, r], where fl = den(l).
func bisect(den expr.ExprNode, variable string, l, r, fl float64) float64 {
	for i := 0; i < 200; i++ {
		m := l + (r-l)/2
		if m == l || m == r {
			break
		}
		v, err := expr.EvalAt(den, variable, m)
		if err != nil || v == 0 {
			return m
		}
		if (v < 0) == (fl < 0) {
			l, fl = m, v
		} else {
			r = m
		}
	}
	return l + (r-l)/2
}
