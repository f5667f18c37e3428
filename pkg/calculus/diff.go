package calculus

import (
	"fmt"

	"github.com/Kritika75/LambdaCalc/pkg/expr"
)

// Differentiate returns d(node)/d(variable). It is total over the node
// variants; the result is algebraically correct but not normalized.
func Differentiate(node expr.ExprNode, variable string) expr.ExprNode {
	switch n := node.(type) {
	case *expr.ConstNode:
		return expr.Const(0)

	case *expr.VarNode:
		if n.Name == variable {
			return expr.Const(1)
		}
		return expr.Const(0)

	case *expr.UnaryNode:
		switch n.Op {
		case expr.OpNeg:
			return expr.Neg(Differentiate(n.Child, variable))
		}

	case *expr.BinaryNode:
		return diffBinary(n, variable)

	case *expr.CallNode:
		du := Differentiate(n.Arg, variable)
		if isZero(du) {
			return expr.Const(0)
		}
		return expr.Mul(funcDerivative(n.Fn, n.Arg), du)
	}
	panic(fmt.Sprintf("calculus: unhandled node %T", node))
}

func diffBinary(n *expr.BinaryNode, variable string) expr.ExprNode {
	f, g := n.Left, n.Right
	df := Differentiate(f, variable)
	dg := Differentiate(g, variable)

	switch n.Op {
	case expr.OpAdd:
		return expr.Add(df, dg)

	case expr.OpSub:
		return expr.Sub(df, dg)

	case expr.OpMul:
		return expr.Add(expr.Mul(df, g), expr.Mul(f, dg))

	case expr.OpDiv:
		if !expr.ContainsVar(g, variable) {
			return expr.Div(df, g)
		}
		num := expr.Sub(expr.Mul(df, g), expr.Mul(f, dg))
		return expr.Div(num, expr.Pow(g, expr.Const(2)))

	case expr.OpPow:
		if !expr.ContainsVar(g, variable) {
			// d(f^c) = c * f^(c-1) * df
			var lowered expr.ExprNode
			if c, ok := g.(*expr.ConstNode); ok {
				lowered = expr.Const(c.Val - 1)
			} else {
				lowered = expr.Sub(g, expr.Const(1))
			}
			return expr.Mul(expr.Mul(g, expr.Pow(f, lowered)), df)
		}
		if !expr.ContainsVar(f, variable) {
			// d(a^g) = a^g * ln(a) * dg
			return expr.Mul(expr.Mul(n, expr.Call(expr.FnLn, f)), dg)
		}
		// f^g = exp(g ln f), so d(f^g) = f^g * (dg ln f + g df / f)
		inner := expr.Add(
			expr.Mul(dg, expr.Call(expr.FnLn, f)),
			expr.Div(expr.Mul(g, df), f),
		)
		return expr.Mul(n, inner)
	}
	panic(fmt.Sprintf("calculus: unhandled binary op %d", n.Op))
}

// funcDerivative returns f'(u) for a named function f.
func funcDerivative(fn expr.Func, u expr.ExprNode) expr.ExprNode {
	one := expr.Const(1)
	two := expr.Const(2)
	switch fn {
	case expr.FnSin:
		return expr.Call(expr.FnCos, u)
	case expr.FnCos:
		return expr.Neg(expr.Call(expr.FnSin, u))
	case expr.FnTan:
		// sec^2 u
		return expr.Div(one, expr.Pow(expr.Call(expr.FnCos, u), two))
	case expr.FnAsin:
		return expr.Div(one, expr.Call(expr.FnSqrt, expr.Sub(one, expr.Pow(u, two))))
	case expr.FnAcos:
		return expr.Neg(expr.Div(one, expr.Call(expr.FnSqrt, expr.Sub(one, expr.Pow(u, two)))))
	case expr.FnAtan:
		return expr.Div(one, expr.Add(one, expr.Pow(u, two)))
	case expr.FnSinh:
		return expr.Call(expr.FnCosh, u)
	case expr.FnCosh:
		return expr.Call(expr.FnSinh, u)
	case expr.FnTanh:
		return expr.Sub(one, expr.Pow(expr.Call(expr.FnTanh, u), two))
	case expr.FnExp:
		return expr.Call(expr.FnExp, u)
	case expr.FnLn:
		return expr.Div(one, u)
	case expr.FnSqrt:
		return expr.Div(one, expr.Mul(two, expr.Call(expr.FnSqrt, u)))
	case expr.FnAbs:
		return expr.Div(u, expr.Call(expr.FnAbs, u))
	}
	panic(fmt.Sprintf("calculus: unhandled function %s", fn))
}

// NthDerivative applies Differentiate n times.
func NthDerivative(node expr.ExprNode, variable string, n int) expr.ExprNode {
	for i := 0; i < n; i++ {
		node = Differentiate(node, variable)
	}
	return node
}

func isZero(node expr.ExprNode) bool {
	c, ok := node.(*expr.ConstNode)
	return ok && c.Val == 0
}
