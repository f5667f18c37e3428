package expr

// Equal reports whether a and b are structurally identical trees.
func Equal(a, b ExprNode) bool {
	switch x := a.(type) {
	case *ConstNode:
		y, ok := b.(*ConstNode)
		return ok && x.Val == y.Val
	case *VarNode:
		y, ok := b.(*VarNode)
		return ok && x.Name == y.Name
	case *UnaryNode:
		y, ok := b.(*UnaryNode)
		return ok && x.Op == y.Op && Equal(x.Child, y.Child)
	case *BinaryNode:
		y, ok := b.(*BinaryNode)
		return ok && x.Op == y.Op && Equal(x.Left, y.Left) && Equal(x.Right, y.Right)
	case *CallNode:
		y, ok := b.(*CallNode)
		return ok && x.Fn == y.Fn && Equal(x.Arg, y.Arg)
	default:
		return false
	}
}
