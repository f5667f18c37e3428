package expr

import "math"

// The constructors below build nodes while eliding identities that would
// otherwise clutter derived trees: x+0, x*1, x*0, x^1, x^0, --x, and
// arithmetic on two constants.

// Const returns a constant node.
func Const(v float64) ExprNode { return &ConstNode{Val: v} }

// Var returns a variable node.
func Var(name string) ExprNode { return &VarNode{Name: name} }

// Add returns l + r.
func Add(l, r ExprNode) ExprNode {
	lc, lok := l.(*ConstNode)
	rc, rok := r.(*ConstNode)
	switch {
	case lok && rok:
		return Const(lc.Val + rc.Val)
	case lok && lc.Val == 0:
		return r
	case rok && rc.Val == 0:
		return l
	case rok && rc.Val < 0:
		return &BinaryNode{Op: OpSub, Left: l, Right: Const(-rc.Val)}
	}
	if ru, ok := r.(*UnaryNode); ok && ru.Op == OpNeg {
		return Sub(l, ru.Child)
	}
	return &BinaryNode{Op: OpAdd, Left: l, Right: r}
}

// Sub returns l - r.
func Sub(l, r ExprNode) ExprNode {
	lc, lok := l.(*ConstNode)
	rc, rok := r.(*ConstNode)
	switch {
	case lok && rok:
		return Const(lc.Val - rc.Val)
	case rok && rc.Val == 0:
		return l
	case lok && lc.Val == 0:
		return Neg(r)
	case rok && rc.Val < 0:
		return &BinaryNode{Op: OpAdd, Left: l, Right: Const(-rc.Val)}
	}
	if ru, ok := r.(*UnaryNode); ok && ru.Op == OpNeg {
		return Add(l, ru.Child)
	}
	if Equal(l, r) {
		return Const(0)
	}
	return &BinaryNode{Op: OpSub, Left: l, Right: r}
}

// Mul returns l * r. A lone constant factor is moved to the left.
func Mul(l, r ExprNode) ExprNode {
	lc, lok := l.(*ConstNode)
	rc, rok := r.(*ConstNode)
	switch {
	case lok && rok:
		return Const(lc.Val * rc.Val)
	case (lok && lc.Val == 0) || (rok && rc.Val == 0):
		return Const(0)
	case lok && lc.Val == 1:
		return r
	case rok && rc.Val == 1:
		return l
	case lok && lc.Val == -1:
		return Neg(r)
	case rok && rc.Val == -1:
		return Neg(l)
	case rok:
		return Mul(r, l)
	}
	if lok {
		// c1 * (c2 * x) = (c1*c2) * x
		if rb, ok := r.(*BinaryNode); ok && rb.Op == OpMul {
			if inner, ok := rb.Left.(*ConstNode); ok {
				return Mul(Const(lc.Val*inner.Val), rb.Right)
			}
		}
	}
	if lu, ok := l.(*UnaryNode); ok && lu.Op == OpNeg {
		return Neg(Mul(lu.Child, r))
	}
	if ru, ok := r.(*UnaryNode); ok && ru.Op == OpNeg {
		return Neg(Mul(l, ru.Child))
	}
	return &BinaryNode{Op: OpMul, Left: l, Right: r}
}

// Div returns l / r. Division by a literal zero is kept as written so that
// evaluation reports it.
func Div(l, r ExprNode) ExprNode {
	lc, lok := l.(*ConstNode)
	rc, rok := r.(*ConstNode)
	switch {
	case rok && rc.Val == 0:
		return &BinaryNode{Op: OpDiv, Left: l, Right: r}
	case lok && rok:
		return Const(lc.Val / rc.Val)
	case lok && lc.Val == 0:
		return Const(0)
	case rok && rc.Val == 1:
		return l
	case rok && rc.Val == -1:
		return Neg(l)
	}
	if lu, ok := l.(*UnaryNode); ok && lu.Op == OpNeg {
		return Neg(Div(lu.Child, r))
	}
	return &BinaryNode{Op: OpDiv, Left: l, Right: r}
}

// Pow returns base ^ exp.
func Pow(base, exp ExprNode) ExprNode {
	bc, bok := base.(*ConstNode)
	ec, eok := exp.(*ConstNode)
	if bok && eok {
		if v, err := powF64(bc.Val, ec.Val); err == nil {
			return Const(v)
		}
	}
	switch {
	case eok && ec.Val == 0:
		return Const(1)
	case eok && ec.Val == 1:
		return base
	case bok && bc.Val == 1:
		return Const(1)
	}
	return &BinaryNode{Op: OpPow, Left: base, Right: exp}
}

// Neg returns -x.
func Neg(x ExprNode) ExprNode {
	switch n := x.(type) {
	case *ConstNode:
		return Const(-n.Val)
	case *UnaryNode:
		if n.Op == OpNeg {
			return n.Child
		}
	}
	return &UnaryNode{Op: OpNeg, Child: x}
}

// Call returns fn(arg). Constant arguments are folded only when the result
// is an integer, so exact values such as ln(1) or cos(0) collapse while
// ln(2) stays symbolic.
func Call(fn Func, arg ExprNode) ExprNode {
	if c, ok := arg.(*ConstNode); ok {
		if v, err := ApplyFunc(fn, c.Val); err == nil && v == math.Trunc(v) {
			return Const(v)
		}
	}
	return &CallNode{Fn: fn, Arg: arg}
}
