package calculus

import "github.com/Kritika75/LambdaCalc/pkg/expr"

// Integrate returns an antiderivative of node with respect to variable,
// without a constant of integration. It matches a fixed table of forms and
// returns an error wrapping ErrUnsupported when none applies; it never
// guesses.
func Integrate(node expr.ExprNode, variable string) (expr.ExprNode, error) {
	x := expr.Var(variable)
	if !expr.ContainsVar(node, variable) {
		return expr.Mul(node, x), nil
	}

	switch n := node.(type) {
	case *expr.VarNode:
		return expr.Div(expr.Pow(x, expr.Const(2)), expr.Const(2)), nil

	case *expr.UnaryNode:
		if n.Op == expr.OpNeg {
			inner, err := Integrate(n.Child, variable)
			if err != nil {
				return nil, err
			}
			return expr.Neg(inner), nil
		}

	case *expr.BinaryNode:
		if result, ok, err := integrateBinary(n, variable); ok || err != nil {
			return result, err
		}

	case *expr.CallNode:
		if a, _, ok := linear(n.Arg, variable); ok {
			if anti, ok := funcAntiderivative(n.Fn, n.Arg); ok {
				return expr.Div(anti, expr.Const(a)), nil
			}
		}
	}

	if p, ok := ToPolynomial(node, variable); ok {
		return FromPolynomial(p.Integrate(0), variable), nil
	}
	return nil, unsupported(node)
}

// integrateBinary reports ok=false when no rule for the operator applies,
// letting the caller try the polynomial path.
func integrateBinary(n *expr.BinaryNode, variable string) (expr.ExprNode, bool, error) {
	f, g := n.Left, n.Right
	fConst := !expr.ContainsVar(f, variable)
	gConst := !expr.ContainsVar(g, variable)

	switch n.Op {
	case expr.OpAdd, expr.OpSub:
		F, err := Integrate(f, variable)
		if err != nil {
			return nil, false, err
		}
		G, err := Integrate(g, variable)
		if err != nil {
			return nil, false, err
		}
		if n.Op == expr.OpAdd {
			return expr.Add(F, G), true, nil
		}
		return expr.Sub(F, G), true, nil

	case expr.OpMul:
		switch {
		case fConst:
			G, err := Integrate(g, variable)
			if err != nil {
				return nil, false, err
			}
			return expr.Mul(f, G), true, nil
		case gConst:
			F, err := Integrate(f, variable)
			if err != nil {
				return nil, false, err
			}
			return expr.Mul(g, F), true, nil
		}

	case expr.OpDiv:
		if gConst {
			F, err := Integrate(f, variable)
			if err != nil {
				return nil, false, err
			}
			return expr.Div(F, g), true, nil
		}
		if fConst {
			// c / (a x + b) = (c/a) ln|a x + b|
			if a, _, ok := linear(g, variable); ok {
				return expr.Mul(expr.Div(f, expr.Const(a)), lnAbs(g)), true, nil
			}
			// c / u^k = c * u^(-k)
			if p, ok := g.(*expr.BinaryNode); ok && p.Op == expr.OpPow {
				if k, ok := constValue(p.Right, variable); ok {
					rewritten := expr.Pow(p.Left, expr.Const(-k))
					if r, ok := integratePower(rewritten, variable); ok {
						return expr.Mul(f, r), true, nil
					}
				}
			}
		}

	case expr.OpPow:
		r, ok := integratePower(n, variable)
		return r, ok, nil
	}
	return nil, false, nil
}

// integratePower handles (a x + b)^n for constant n and c^(a x + b) for
// constant c.
func integratePower(node expr.ExprNode, variable string) (expr.ExprNode, bool) {
	n, ok := node.(*expr.BinaryNode)
	if !ok || n.Op != expr.OpPow {
		return nil, false
	}
	base, exp := n.Left, n.Right

	if k, ok := constValue(exp, variable); ok {
		a, _, ok := linear(base, variable)
		if !ok {
			return nil, false
		}
		if k == -1 {
			return expr.Div(lnAbs(base), expr.Const(a)), true
		}
		return expr.Div(expr.Pow(base, expr.Const(k+1)), expr.Const((k+1)*a)), true
	}

	if c, ok := constValue(base, variable); ok {
		a, _, ok := linear(exp, variable)
		if !ok || c <= 0 || c == 1 {
			return nil, false
		}
		lnc := expr.Call(expr.FnLn, base)
		return expr.Div(n, expr.Mul(lnc, expr.Const(a))), true
	}
	return nil, false
}

// funcAntiderivative returns F(u) with F' = f, to be divided by du/dx.
func funcAntiderivative(fn expr.Func, u expr.ExprNode) (expr.ExprNode, bool) {
	one := expr.Const(1)
	two := expr.Const(2)
	switch fn {
	case expr.FnSin:
		return expr.Neg(expr.Call(expr.FnCos, u)), true
	case expr.FnCos:
		return expr.Call(expr.FnSin, u), true
	case expr.FnTan:
		return expr.Neg(lnAbs(expr.Call(expr.FnCos, u))), true
	case expr.FnExp:
		return expr.Call(expr.FnExp, u), true
	case expr.FnLn:
		return expr.Sub(expr.Mul(u, expr.Call(expr.FnLn, u)), u), true
	case expr.FnSqrt:
		return expr.Mul(expr.Div(two, expr.Const(3)), expr.Pow(u, expr.Const(1.5))), true
	case expr.FnSinh:
		return expr.Call(expr.FnCosh, u), true
	case expr.FnCosh:
		return expr.Call(expr.FnSinh, u), true
	case expr.FnTanh:
		return expr.Call(expr.FnLn, expr.Call(expr.FnCosh, u)), true
	case expr.FnAtan:
		return expr.Sub(
			expr.Mul(u, expr.Call(expr.FnAtan, u)),
			expr.Div(expr.Call(expr.FnLn, expr.Add(one, expr.Pow(u, two))), two),
		), true
	case expr.FnAsin:
		return expr.Add(
			expr.Mul(u, expr.Call(expr.FnAsin, u)),
			expr.Call(expr.FnSqrt, expr.Sub(one, expr.Pow(u, two))),
		), true
	case expr.FnAcos:
		return expr.Sub(
			expr.Mul(u, expr.Call(expr.FnAcos, u)),
			expr.Call(expr.FnSqrt, expr.Sub(one, expr.Pow(u, two))),
		), true
	case expr.FnAbs:
		return expr.Div(expr.Mul(u, expr.Call(expr.FnAbs, u)), two), true
	}
	return nil, false
}

func lnAbs(u expr.ExprNode) expr.ExprNode {
	return expr.Call(expr.FnLn, expr.Call(expr.FnAbs, u))
}
