package expr

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Binding strength used to decide where parentheses are required. Unary
// minus binds tighter than ^, so -x^2 reads as (-x)^2.
const (
	precSum = iota + 1
	precProduct
	precPower
	precUnary
	precAtom
)

var binaryOpSymbols = map[BinaryOp]string{
	OpAdd: "+",
	OpSub: "-",
	OpMul: "*",
	OpDiv: "/",
	OpPow: "^",
}

func precedence(node ExprNode) int {
	switch n := node.(type) {
	case *ConstNode:
		if math.Signbit(n.Val) {
			return precUnary
		}
		return precAtom
	case *UnaryNode:
		return precUnary
	case *BinaryNode:
		switch n.Op {
		case OpAdd, OpSub:
			return precSum
		case OpMul, OpDiv:
			return precProduct
		default:
			return precPower
		}
	default:
		return precAtom
	}
}

// needsParens reports whether child must be wrapped when printed as an
// operand of op. Output re-parses to the same tree.
func needsParens(op BinaryOp, child ExprNode, right bool) bool {
	p := precedence(child)
	if p == precUnary {
		return op == OpPow || right
	}
	switch op {
	case OpPow:
		if right {
			return p < precPower
		}
		return p <= precPower
	case OpMul, OpDiv:
		if right {
			return p <= precProduct
		}
		return p < precProduct
	default:
		if right {
			return p <= precSum
		}
		return false
	}
}

func formatConst(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// String methods

func (c *ConstNode) String() string {
	return formatConst(c.Val)
}

func (v *VarNode) String() string {
	return v.Name
}

func (u *UnaryNode) String() string {
	child := u.Child.String()
	if _, ok := u.Child.(*ConstNode); ok || precedence(u.Child) < precAtom {
		child = "(" + child + ")"
	}
	return "-" + child
}

func (b *BinaryNode) String() string {
	left := b.Left.String()
	if needsParens(b.Op, b.Left, false) {
		left = "(" + left + ")"
	}
	right := b.Right.String()
	if needsParens(b.Op, b.Right, true) {
		right = "(" + right + ")"
	}
	if b.Op == OpPow {
		return left + "^" + right
	}
	return fmt.Sprintf("%s %s %s", left, binaryOpSymbols[b.Op], right)
}

func (c *CallNode) String() string {
	return fmt.Sprintf("%s(%s)", c.Fn, c.Arg.String())
}

// LaTeX methods

func (c *ConstNode) LaTeX() string {
	s := formatConst(c.Val)
	if mant, exp, ok := splitExponent(s); ok {
		return fmt.Sprintf("%s \\times 10^{%s}", mant, exp)
	}
	return s
}

func (v *VarNode) LaTeX() string {
	return v.Name
}

func (u *UnaryNode) LaTeX() string {
	child := u.Child.LaTeX()
	if precedence(u.Child) < precAtom {
		child = "\\left(" + child + "\\right)"
	}
	return "-" + child
}

func (b *BinaryNode) LaTeX() string {
	left := b.Left.LaTeX()
	right := b.Right.LaTeX()
	switch b.Op {
	case OpDiv:
		return fmt.Sprintf("\\frac{%s}{%s}", left, right)
	case OpPow:
		if needsParens(OpPow, b.Left, false) {
			left = "\\left(" + left + "\\right)"
		}
		return fmt.Sprintf("{%s}^{%s}", left, right)
	}
	if needsParens(b.Op, b.Left, false) {
		left = "\\left(" + left + "\\right)"
	}
	if needsParens(b.Op, b.Right, true) {
		right = "\\left(" + right + "\\right)"
	}
	switch b.Op {
	case OpAdd:
		return fmt.Sprintf("%s + %s", left, right)
	case OpSub:
		return fmt.Sprintf("%s - %s", left, right)
	case OpMul:
		return fmt.Sprintf("%s \\cdot %s", left, right)
	default:
		return ""
	}
}

func (c *CallNode) LaTeX() string {
	arg := c.Arg.LaTeX()
	switch c.Fn {
	case FnSqrt:
		return fmt.Sprintf("\\sqrt{%s}", arg)
	case FnAbs:
		return fmt.Sprintf("\\left|%s\\right|", arg)
	case FnExp:
		return fmt.Sprintf("e^{%s}", arg)
	case FnAsin, FnAcos, FnAtan:
		return fmt.Sprintf("\\operatorname{%s}\\left(%s\\right)", c.Fn, arg)
	default:
		return fmt.Sprintf("\\%s\\left(%s\\right)", c.Fn, arg)
	}
}

// splitExponent splits "1.5e+06" into "1.5" and "6".
func splitExponent(s string) (string, string, bool) {
	i := strings.IndexByte(s, 'e')
	if i < 0 {
		return "", "", false
	}
	exp, err := strconv.Atoi(s[i+1:])
	if err != nil {
		return "", "", false
	}
	return s[:i], strconv.Itoa(exp), true
}
