package calculus

import (
	"fmt"
	"math"
	"strings"

	"github.com/Kritika75/LambdaCalc/pkg/expr"
)

// Direction selects which side a limit is approached from.
type Direction int

const (
	Both Direction = iota
	Left
	Right
)

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "both"
	}
}

// ParseDirection accepts "both" or "", "left" or "-", "right" or "+".
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "both", "+-", "-+":
		return Both, nil
	case "left", "-":
		return Left, nil
	case "right", "+":
		return Right, nil
	default:
		return Both, fmt.Errorf("unknown limit direction %q", s)
	}
}

// LimitConfig bounds the work done by the limit evaluator.
type LimitConfig struct {
	MaxLHopital int     // derivative-ratio rounds
	Steps       int     // numeric approach samples at point ± 10^-k, k = 1..Steps
	Tolerance   float64 // relative agreement for convergence and sidedness
}

// DefaultLimitConfig returns the standard bounds.
func DefaultLimitConfig() LimitConfig {
	return LimitConfig{MaxLHopital: 5, Steps: 12, Tolerance: 1e-6}
}

// zeroTol is the magnitude under which an evaluated value counts as zero
// when classifying indeterminate forms.
const zeroTol = 1e-12

// A substituted value is accepted only if node stays within jumpTol of it
// at point ± sideStep·max(1, |point|) on every approached side.
const (
	sideStep = 1e-8
	jumpTol  = 1e-3
)

// Limit evaluates the limit of node as variable approaches point from dir,
// using DefaultLimitConfig. A limit that diverges or whose sides disagree
// returns ErrDoesNotExist.
func Limit(node expr.ExprNode, variable string, point float64, dir Direction) (float64, error) {
	return LimitWithConfig(node, variable, point, dir, DefaultLimitConfig())
}

// LimitWithConfig resolves the limit by, in order: direct substitution,
// limit laws over sub-expressions, derivative ratios for 0/0, ∞/∞ and 0·∞
// forms, and a bounded numeric approach.
func LimitWithConfig(node expr.ExprNode, variable string, point float64, dir Direction, cfg LimitConfig) (float64, error) {
	l := &limiter{variable: variable, point: point, dir: dir, cfg: cfg}
	return l.limit(node)
}

type limiter struct {
	variable string
	point    float64
	dir      Direction
	cfg      LimitConfig
}

func (l *limiter) eval(node expr.ExprNode) (float64, error) {
	return expr.EvalAt(node, l.variable, l.point)
}

func (l *limiter) limit(node expr.ExprNode) (float64, error) {
	near, ok := l.nearby(node)
	if !ok {
		// Undefined on an approached side; only sampling can decide.
		return l.approach(node)
	}
	if v, err := l.eval(node); err == nil && holds(v, near) {
		return v, nil
	}
	if v, ok := l.byParts(node); ok {
		return v, nil
	}
	if num, den, ok := l.indeterminateQuotient(node); ok {
		if v, ok := l.lhopital(num, den); ok {
			return v, nil
		}
	}
	return l.approach(node)
}

// nearby evaluates node just off the point on each approached side. It
// fails when any of those sides is outside the domain.
func (l *limiter) nearby(node expr.ExprNode) ([]float64, bool) {
	scale := math.Max(1, math.Abs(l.point))
	var out []float64
	for _, sign := range l.signs() {
		v, err := expr.EvalAt(node, l.variable, l.point+sign*sideStep*scale)
		if err != nil {
			return nil, false
		}
		out = append(out, v)
	}
	return out, true
}

// holds reports whether v agrees with every neighbouring value, ruling out
// jumps and poles that happen to evaluate at the point itself.
func holds(v float64, near []float64) bool {
	for _, n := range near {
		if math.Abs(n-v) > jumpTol*(1+math.Abs(v)) {
			return false
		}
	}
	return true
}

// byParts applies the sum, product, quotient and composition laws when
// every sub-limit exists.
func (l *limiter) byParts(node expr.ExprNode) (float64, bool) {
	switch n := node.(type) {
	case *expr.UnaryNode:
		if n.Op == expr.OpNeg {
			v, err := l.limit(n.Child)
			return -v, err == nil
		}
	case *expr.CallNode:
		if !continuousFunc(n.Fn) {
			return 0, false
		}
		arg, err := l.limit(n.Arg)
		if err != nil {
			return 0, false
		}
		v, err := expr.ApplyFunc(n.Fn, arg)
		return v, err == nil
	case *expr.BinaryNode:
		left, errL := l.limit(n.Left)
		right, errR := l.limit(n.Right)
		if errL != nil || errR != nil {
			return 0, false
		}
		switch n.Op {
		case expr.OpAdd:
			return left + right, true
		case expr.OpSub:
			return left - right, true
		case expr.OpMul:
			return left * right, true
		case expr.OpDiv:
			if math.Abs(right) <= zeroTol {
				return 0, false
			}
			return left / right, true
		case expr.OpPow:
			v, err := expr.Eval(&expr.BinaryNode{Op: expr.OpPow, Left: expr.Const(left), Right: expr.Const(right)}, nil)
			return v, err == nil
		}
	}
	return 0, false
}

// continuousFunc reports whether fn is continuous on its whole domain, so
// lim fn(u) = fn(lim u) whenever the right side evaluates.
func continuousFunc(fn expr.Func) bool {
	return fn != expr.FnTan
}

// indeterminateQuotient rewrites node as num/den when it is a 0/0 or ∞/∞
// quotient, or a 0·∞ product.
func (l *limiter) indeterminateQuotient(node expr.ExprNode) (expr.ExprNode, expr.ExprNode, bool) {
	n, ok := node.(*expr.BinaryNode)
	if !ok {
		return nil, nil, false
	}
	switch n.Op {
	case expr.OpDiv:
		if (l.vanishes(n.Left) && l.vanishes(n.Right)) || (l.blowsUp(n.Left) && l.blowsUp(n.Right)) {
			return n.Left, n.Right, true
		}
	case expr.OpMul:
		// Put the unbounded factor on top: f·g = g / (1/f).
		if l.vanishes(n.Left) && l.blowsUp(n.Right) {
			return n.Right, expr.Div(expr.Const(1), n.Left), true
		}
		if l.vanishes(n.Right) && l.blowsUp(n.Left) {
			return n.Left, expr.Div(expr.Const(1), n.Right), true
		}
	}
	return nil, nil, false
}

func (l *limiter) vanishes(node expr.ExprNode) bool {
	v, err := l.eval(node)
	return err == nil && math.Abs(v) <= zeroTol
}

// blowsUp reports whether node fails at the point and grows in magnitude
// as the point is approached from an allowed side.
func (l *limiter) blowsUp(node expr.ExprNode) bool {
	if _, err := l.eval(node); err == nil {
		return false
	}
	scale := math.Max(1, math.Abs(l.point))
	for _, sign := range l.signs() {
		near, errN := expr.EvalAt(node, l.variable, l.point+sign*1e-9*scale)
		far, errF := expr.EvalAt(node, l.variable, l.point+sign*1e-3*scale)
		if errN == nil && errF == nil && math.Abs(near) > 1 && math.Abs(near) > 2*math.Abs(far) {
			return true
		}
	}
	return false
}

func (l *limiter) signs() []float64 {
	switch l.dir {
	case Left:
		return []float64{-1}
	case Right:
		return []float64{1}
	default:
		return []float64{1, -1}
	}
}

// lhopital differentiates numerator and denominator until the ratio is
// determinate, at most cfg.MaxLHopital times.
func (l *limiter) lhopital(num, den expr.ExprNode) (float64, bool) {
	for i := 0; i < l.cfg.MaxLHopital; i++ {
		num = expr.Simplify(Differentiate(num, l.variable))
		den = expr.Simplify(Differentiate(den, l.variable))

		nv, errN := l.eval(num)
		dv, errD := l.eval(den)
		switch {
		case errN == nil && errD == nil:
			if math.Abs(dv) > zeroTol {
				r := nv / dv
				return r, !math.IsInf(r, 0) && !math.IsNaN(r)
			}
			if math.Abs(nv) > zeroTol {
				return 0, false // c/0 is not indeterminate
			}
		case errN != nil && errD != nil:
			if !l.blowsUp(num) || !l.blowsUp(den) {
				return 0, false
			}
		default:
			return 0, false
		}
	}
	return 0, false
}

// approach samples node at point ± 10^-k·max(1, |point|) and checks the
// sequence converges; for Both the two sides must agree.
func (l *limiter) approach(node expr.ExprNode) (float64, error) {
	var vals []float64
	for _, sign := range l.signs() {
		v, err := l.approachSide(node, sign)
		if err != nil {
			return 0, err
		}
		vals = append(vals, v)
	}
	if len(vals) == 2 {
		if !sameValue(vals[0], vals[1], l.cfg.Tolerance) {
			return 0, fmt.Errorf("%w: one-sided limits %g and %g differ", ErrDoesNotExist, vals[1], vals[0])
		}
		return (vals[0] + vals[1]) / 2, nil
	}
	return vals[0], nil
}

func (l *limiter) approachSide(node expr.ExprNode, sign float64) (float64, error) {
	scale := math.Max(1, math.Abs(l.point))
	var samples []float64
	for k := 1; k <= l.cfg.Steps; k++ {
		x := l.point + sign*math.Pow(10, -float64(k))*scale
		if x == l.point {
			break
		}
		v, err := expr.EvalAt(node, l.variable, x)
		if err != nil {
			continue
		}
		samples = append(samples, v)
	}
	v, rate, ok := analyzeConvergence(samples, l.cfg.Tolerance)
	if !ok || rate >= 1 {
		side := "right"
		if sign < 0 {
			side = "left"
		}
		return 0, fmt.Errorf("%w: no convergence from the %s", ErrDoesNotExist, side)
	}
	// A value that is negligible against the sampled magnitudes is zero.
	var peak float64
	for _, s := range samples {
		peak = math.Max(peak, math.Abs(s))
	}
	if math.Abs(v) <= l.cfg.Tolerance*peak {
		v = 0
	}
	return v, nil
}
