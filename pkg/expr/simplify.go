package expr

// Simplify rebuilds a tree bottom-up through the eliding constructors until
// the printed form stops changing. It never produces a canonical form; it
// only removes identities.
func Simplify(node ExprNode) ExprNode {
	for i := 0; i < 20; i++ { // cap iterations
		next := simplifyOnce(node)
		if Equal(next, node) {
			return next
		}
		node = next
	}
	return node
}

func simplifyOnce(node ExprNode) ExprNode {
	switch n := node.(type) {
	case *ConstNode, *VarNode:
		return node
	case *UnaryNode:
		child := simplifyOnce(n.Child)
		if n.Op == OpNeg {
			return Neg(child)
		}
		return &UnaryNode{Op: n.Op, Child: child}
	case *BinaryNode:
		return Binary(n.Op, simplifyOnce(n.Left), simplifyOnce(n.Right))
	case *CallNode:
		return Call(n.Fn, simplifyOnce(n.Arg))
	default:
		return node
	}
}

// Binary dispatches to the constructor for op.
func Binary(op BinaryOp, l, r ExprNode) ExprNode {
	switch op {
	case OpAdd:
		return Add(l, r)
	case OpSub:
		return Sub(l, r)
	case OpMul:
		return Mul(l, r)
	case OpDiv:
		return Div(l, r)
	case OpPow:
		return Pow(l, r)
	default:
		return &BinaryNode{Op: op, Left: l, Right: r}
	}
}
