package calculus

import (
	"math"

	"github.com/Kritika75/LambdaCalc/pkg/algebra"
	"github.com/Kritika75/LambdaCalc/pkg/expr"
)

// maxPolyDegree bounds expansion of integer powers.
const maxPolyDegree = 64

// ToPolynomial converts node to a polynomial in variable when it is built
// only from constants, the variable, + - * and non-negative integer powers,
// and division by constants.
func ToPolynomial(node expr.ExprNode, variable string) (algebra.Polynomial, bool) {
	if v, ok := constValue(node, variable); ok {
		return algebra.NewPolynomial(v), true
	}
	switch n := node.(type) {
	case *expr.VarNode:
		if n.Name == variable {
			return algebra.NewPolynomial(0, 1), true
		}
	case *expr.UnaryNode:
		if n.Op == expr.OpNeg {
			p, ok := ToPolynomial(n.Child, variable)
			return p.Scale(-1), ok
		}
	case *expr.BinaryNode:
		switch n.Op {
		case expr.OpAdd, expr.OpSub, expr.OpMul:
			a, okA := ToPolynomial(n.Left, variable)
			b, okB := ToPolynomial(n.Right, variable)
			if !okA || !okB {
				return algebra.Polynomial{}, false
			}
			switch n.Op {
			case expr.OpAdd:
				return a.Add(b), true
			case expr.OpSub:
				return a.Subtract(b), true
			default:
				return a.Multiply(b), true
			}
		case expr.OpDiv:
			k, ok := constValue(n.Right, variable)
			if !ok || k == 0 {
				return algebra.Polynomial{}, false
			}
			a, ok := ToPolynomial(n.Left, variable)
			return a.Scale(1 / k), ok
		case expr.OpPow:
			e, ok := constValue(n.Right, variable)
			if !ok || e < 0 || e != math.Trunc(e) || e > maxPolyDegree {
				return algebra.Polynomial{}, false
			}
			base, ok := ToPolynomial(n.Left, variable)
			if !ok || base.Degree()*int(e) > maxPolyDegree {
				return algebra.Polynomial{}, false
			}
			result := algebra.NewPolynomial(1)
			for i := 0; i < int(e); i++ {
				result = result.Multiply(base)
			}
			return result, true
		}
	}
	return algebra.Polynomial{}, false
}

// FromPolynomial renders p as a sum of terms, highest degree first.
func FromPolynomial(p algebra.Polynomial, variable string) expr.ExprNode {
	x := expr.Var(variable)
	var out expr.ExprNode
	for i := p.Degree(); i >= 0; i-- {
		c := p.Coeff(i)
		if c == 0 {
			continue
		}
		term := expr.Mul(expr.Const(math.Abs(c)), expr.Pow(x, expr.Const(float64(i))))
		switch {
		case out == nil && c < 0:
			out = expr.Neg(term)
		case out == nil:
			out = term
		case c < 0:
			out = expr.Sub(out, term)
		default:
			out = expr.Add(out, term)
		}
	}
	if out == nil {
		return expr.Const(0)
	}
	return out
}

// linear reports node = a*variable + b with a != 0.
func linear(node expr.ExprNode, variable string) (a, b float64, ok bool) {
	p, ok := ToPolynomial(node, variable)
	if !ok || p.Degree() != 1 {
		return 0, 0, false
	}
	return p.Coeff(1), p.Coeff(0), true
}

// constValue evaluates node when it does not depend on variable.
func constValue(node expr.ExprNode, variable string) (float64, bool) {
	if c, ok := node.(*expr.ConstNode); ok {
		return c.Val, true
	}
	if expr.ContainsVar(node, variable) {
		return 0, false
	}
	v, err := expr.Eval(node, expr.Vars{})
	return v, err == nil
}
