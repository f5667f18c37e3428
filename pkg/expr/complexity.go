package expr

func (c *ConstNode) NodeCount() int { return 1 }
func (v *VarNode) NodeCount() int   { return 1 }
func (u *UnaryNode) NodeCount() int { return 1 + u.Child.NodeCount() }
func (c *CallNode) NodeCount() int  { return 1 + c.Arg.NodeCount() }
func (b *BinaryNode) NodeCount() int {
	return 1 + b.Left.NodeCount() + b.Right.NodeCount()
}

func (c *ConstNode) Depth() int { return 1 }
func (v *VarNode) Depth() int   { return 1 }
func (u *UnaryNode) Depth() int { return 1 + u.Child.Depth() }
func (c *CallNode) Depth() int  { return 1 + c.Arg.Depth() }
func (b *BinaryNode) Depth() int {
	ld := b.Left.Depth()
	rd := b.Right.Depth()
	if ld > rd {
		return 1 + ld
	}
	return 1 + rd
}

// ContainsVar reports whether the tree references the named variable.
func ContainsVar(node ExprNode, name string) bool {
	switch n := node.(type) {
	case *ConstNode:
		return false
	case *VarNode:
		return n.Name == name
	case *UnaryNode:
		return ContainsVar(n.Child, name)
	case *BinaryNode:
		return ContainsVar(n.Left, name) || ContainsVar(n.Right, name)
	case *CallNode:
		return ContainsVar(n.Arg, name)
	default:
		return false
	}
}

// FreeVars returns the distinct variable names in the tree, in first-seen order.
func FreeVars(node ExprNode) []string {
	var names []string
	seen := map[string]bool{}
	var walk func(ExprNode)
	walk = func(n ExprNode) {
		switch n := n.(type) {
		case *VarNode:
			if !seen[n.Name] {
				seen[n.Name] = true
				names = append(names, n.Name)
			}
		case *UnaryNode:
			walk(n.Child)
		case *BinaryNode:
			walk(n.Left)
			walk(n.Right)
		case *CallNode:
			walk(n.Arg)
		}
	}
	walk(node)
	return names
}
