package expr

import "math"

// Eval evaluates node with the given variable bindings.
func Eval(node ExprNode, vars Vars) (float64, error) {
	return node.EvalF64(vars)
}

// EvalAt evaluates node with a single variable bound to x.
func EvalAt(node ExprNode, variable string, x float64) (float64, error) {
	return node.EvalF64(Vars{variable: x})
}

// EvalF64 for ConstNode returns the constant value.
func (c *ConstNode) EvalF64(vars Vars) (float64, error) {
	return c.Val, nil
}

// EvalF64 for VarNode looks the name up in vars.
func (v *VarNode) EvalF64(vars Vars) (float64, error) {
	x, ok := vars[v.Name]
	if !ok {
		return 0, domainErr(v.Name, 0, "unbound variable")
	}
	return x, nil
}

// EvalF64 for UnaryNode dispatches on op.
func (u *UnaryNode) EvalF64(vars Vars) (float64, error) {
	child, err := u.Child.EvalF64(vars)
	if err != nil {
		return 0, err
	}
	switch u.Op {
	case OpNeg:
		return -child, nil
	default:
		return 0, domainErr("unary", child, "unknown operator")
	}
}

// EvalF64 for BinaryNode dispatches on op.
func (b *BinaryNode) EvalF64(vars Vars) (float64, error) {
	left, err := b.Left.EvalF64(vars)
	if err != nil {
		return 0, err
	}
	right, err := b.Right.EvalF64(vars)
	if err != nil {
		return 0, err
	}

	var r float64
	switch b.Op {
	case OpAdd:
		r = left + right
	case OpSub:
		r = left - right
	case OpMul:
		r = left * right
	case OpDiv:
		if right == 0 {
			return 0, domainErr("/", left, "division by zero")
		}
		r = left / right
	case OpPow:
		return powF64(left, right)
	default:
		return 0, domainErr("binary", left, "unknown operator")
	}
	return finite("arithmetic", left, r)
}

// EvalF64 for CallNode applies the named function.
func (c *CallNode) EvalF64(vars Vars) (float64, error) {
	x, err := c.Arg.EvalF64(vars)
	if err != nil {
		return 0, err
	}
	return ApplyFunc(c.Fn, x)
}

// ApplyFunc evaluates a single named function at x.
func ApplyFunc(fn Func, x float64) (float64, error) {
	name := fn.String()
	var r float64
	switch fn {
	case FnSin:
		r = math.Sin(x)
	case FnCos:
		r = math.Cos(x)
	case FnTan:
		if math.Cos(x) == 0 {
			return 0, domainErr(name, x, "pole")
		}
		r = math.Tan(x)
	case FnAsin:
		if x < -1 || x > 1 {
			return 0, domainErr(name, x, "argument outside [-1, 1]")
		}
		r = math.Asin(x)
	case FnAcos:
		if x < -1 || x > 1 {
			return 0, domainErr(name, x, "argument outside [-1, 1]")
		}
		r = math.Acos(x)
	case FnAtan:
		r = math.Atan(x)
	case FnSinh:
		r = math.Sinh(x)
	case FnCosh:
		r = math.Cosh(x)
	case FnTanh:
		r = math.Tanh(x)
	case FnExp:
		r = math.Exp(x)
	case FnLn:
		if x <= 0 {
			return 0, domainErr(name, x, "non-positive argument")
		}
		r = math.Log(x)
	case FnSqrt:
		if x < 0 {
			return 0, domainErr(name, x, "negative argument")
		}
		r = math.Sqrt(x)
	case FnAbs:
		r = math.Abs(x)
	default:
		return 0, domainErr(name, x, "unknown function")
	}
	return finite(name, x, r)
}

// powF64 computes base^exp in float64.
func powF64(base, exp float64) (float64, error) {
	if base == 0 && exp < 0 {
		return 0, domainErr("^", base, "division by zero")
	}
	// Integer exponents go through repeated squaring for precision.
	ei := int64(exp)
	if exp == float64(ei) && ei >= -64 && ei <= 64 {
		if ei < 0 {
			pos, err := intPowF64(base, -ei)
			if err != nil {
				return 0, err
			}
			return finite("^", base, 1.0/pos)
		}
		return intPowF64(base, ei)
	}
	if base < 0 && exp != math.Trunc(exp) {
		return 0, domainErr("^", base, "negative base with fractional exponent")
	}
	return finite("^", base, math.Pow(base, exp))
}

// intPowF64 computes base^exp using binary exponentiation, exp >= 0.
func intPowF64(base float64, exp int64) (float64, error) {
	result := 1.0
	b := base
	e := exp
	for e > 0 {
		if e%2 == 1 {
			result *= b
		}
		b *= b
		e /= 2
	}
	return finite("^", base, result)
}

func finite(op string, arg, r float64) (float64, error) {
	if math.IsInf(r, 0) || math.IsNaN(r) {
		return 0, domainErr(op, arg, "non-finite result")
	}
	return r, nil
}
