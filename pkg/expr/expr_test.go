package expr

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertEvalAt(t *testing.T, node ExprNode, x, expected, tol float64) {
	t.Helper()
	got, err := EvalAt(node, "x", x)
	require.NoError(t, err, "EvalAt(%s, x=%v)", node, x)
	assert.InDelta(t, expected, got, tol, "EvalAt(%s, x=%v)", node, x)
}

func TestVarNode(t *testing.T) {
	v := Var("x")
	assertEvalAt(t, v, 5, 5, 0)
	assert.Equal(t, "x", v.String())
	assert.Equal(t, 1, v.NodeCount())

	_, err := v.EvalF64(Vars{"y": 1})
	assert.ErrorIs(t, err, ErrDomain)
}

func TestConstNode(t *testing.T) {
	c := Const(7)
	assertEvalAt(t, c, 99, 7, 0)
	assert.Equal(t, "7", c.String())
	assert.Equal(t, "0.5", Const(0.5).String())
	assert.Equal(t, "1e+06", Const(1e6).String())
}

func TestEvalDomainErrors(t *testing.T) {
	tests := []struct {
		name string
		node ExprNode
		x    float64
	}{
		{"ln zero", &CallNode{Fn: FnLn, Arg: Var("x")}, 0},
		{"ln negative", &CallNode{Fn: FnLn, Arg: Var("x")}, -1},
		{"sqrt negative", &CallNode{Fn: FnSqrt, Arg: Var("x")}, -4},
		{"div by zero", &BinaryNode{Op: OpDiv, Left: Const(1), Right: Var("x")}, 0},
		{"asin out of range", &CallNode{Fn: FnAsin, Arg: Var("x")}, 2},
		{"negative base fractional exp", &BinaryNode{Op: OpPow, Left: Var("x"), Right: Const(0.5)}, -2},
		{"zero to negative power", &BinaryNode{Op: OpPow, Left: Var("x"), Right: Const(-1)}, 0},
		{"exp overflow", &CallNode{Fn: FnExp, Arg: Var("x")}, 1000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := EvalAt(tt.node, "x", tt.x)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrDomain))
			var de *DomainError
			assert.True(t, errors.As(err, &de))
		})
	}
}

func TestEvalFunctions(t *testing.T) {
	x := Var("x")
	tests := []struct {
		fn   Func
		at   float64
		want float64
	}{
		{FnSin, math.Pi / 2, 1},
		{FnCos, 0, 1},
		{FnTan, math.Pi / 4, 1},
		{FnExp, 1, math.E},
		{FnLn, math.E, 1},
		{FnSqrt, 9, 3},
		{FnAbs, -2.5, 2.5},
		{FnAtan, 1, math.Pi / 4},
		{FnSinh, 0, 0},
		{FnCosh, 0, 1},
		{FnTanh, 0, 0},
		{FnAsin, 1, math.Pi / 2},
		{FnAcos, 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.fn.String(), func(t *testing.T) {
			assertEvalAt(t, &CallNode{Fn: tt.fn, Arg: x}, tt.at, tt.want, 1e-12)
		})
	}
}

func TestIntegerPowerPrecision(t *testing.T) {
	node := &BinaryNode{Op: OpPow, Left: Var("x"), Right: Const(-3)}
	assertEvalAt(t, node, 2, 0.125, 0)
	node = &BinaryNode{Op: OpPow, Left: Var("x"), Right: Const(3)}
	assertEvalAt(t, node, -2, -8, 0)
}

func TestConstructorsElide(t *testing.T) {
	x := Var("x")
	tests := []struct {
		name string
		got  ExprNode
		want string
	}{
		{"x+0", Add(x, Const(0)), "x"},
		{"0+x", Add(Const(0), x), "x"},
		{"x*1", Mul(x, Const(1)), "x"},
		{"x*0", Mul(x, Const(0)), "0"},
		{"x^1", Pow(x, Const(1)), "x"},
		{"x^0", Pow(x, Const(0)), "1"},
		{"--x", Neg(Neg(x)), "x"},
		{"2+3", Add(Const(2), Const(3)), "5"},
		{"x*3 moves const", Mul(x, Const(3)), "3 * x"},
		{"2*(3*x)", Mul(Const(2), Mul(Const(3), x)), "6 * x"},
		{"x-x", Sub(x, x), "0"},
		{"x+(-y)", Add(x, Neg(Var("y"))), "x - y"},
		{"x/1", Div(x, Const(1)), "x"},
		{"ln(1)", Call(FnLn, Const(1)), "0"},
		{"ln(2) stays", Call(FnLn, Const(2)), "ln(2)"},
		{"x/0 kept", Div(x, Const(0)), "x / 0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got.String())
		})
	}
}

func TestSimplify(t *testing.T) {
	raw := MustParse("(x + 0) * 1 + 0 * sin(x)", "x")
	assert.Equal(t, "x", Simplify(raw).String())

	raw = MustParse("2 * 3 * x^1", "x")
	assert.Equal(t, "6 * x", Simplify(raw).String())
}

func TestPrintMinimalParens(t *testing.T) {
	x := Var("x")
	y := Var("y")
	tests := []struct {
		name string
		node ExprNode
		want string
	}{
		{"sum in product", &BinaryNode{Op: OpMul, Left: &BinaryNode{Op: OpAdd, Left: x, Right: Const(1)}, Right: y}, "(x + 1) * y"},
		{"product in sum", &BinaryNode{Op: OpAdd, Left: &BinaryNode{Op: OpMul, Left: x, Right: y}, Right: Const(1)}, "x * y + 1"},
		{"right sub", &BinaryNode{Op: OpSub, Left: x, Right: &BinaryNode{Op: OpSub, Left: y, Right: Const(1)}}, "x - (y - 1)"},
		{"left sub", &BinaryNode{Op: OpSub, Left: &BinaryNode{Op: OpSub, Left: x, Right: y}, Right: Const(1)}, "x - y - 1"},
		{"pow right assoc", &BinaryNode{Op: OpPow, Left: x, Right: &BinaryNode{Op: OpPow, Left: y, Right: Const(2)}}, "x^y^2"},
		{"pow left nested", &BinaryNode{Op: OpPow, Left: &BinaryNode{Op: OpPow, Left: x, Right: y}, Right: Const(2)}, "(x^y)^2"},
		{"neg base", &BinaryNode{Op: OpPow, Left: &UnaryNode{Op: OpNeg, Child: x}, Right: Const(2)}, "(-x)^2"},
		{"neg of pow", &UnaryNode{Op: OpNeg, Child: &BinaryNode{Op: OpPow, Left: x, Right: Const(2)}}, "-(x^2)"},
		{"negative exponent", &BinaryNode{Op: OpPow, Left: x, Right: Const(-1)}, "x^(-1)"},
		{"call", &CallNode{Fn: FnSin, Arg: &BinaryNode{Op: OpMul, Left: Const(2), Right: x}}, "sin(2 * x)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.node.String())
		})
	}
}

func TestLaTeX(t *testing.T) {
	assert.Equal(t, "\\frac{x}{2}", MustParse("x/2", "x").LaTeX())
	assert.Equal(t, "{x}^{2} + 1", MustParse("x^2 + 1", "x").LaTeX())
	assert.Equal(t, "\\sin\\left(x\\right)", MustParse("sin(x)", "x").LaTeX())
	assert.Equal(t, "\\sqrt{x}", MustParse("sqrt(x)", "x").LaTeX())
	assert.Equal(t, "1 \\times 10^{-7}", Const(1e-7).LaTeX())
}

func TestNodeCountAndDepth(t *testing.T) {
	node := MustParse("sin(x) + x^2", "x")
	assert.Equal(t, 6, node.NodeCount())
	assert.Equal(t, 3, node.Depth())
}

func TestContainsVar(t *testing.T) {
	node := MustParse("sin(x) + 2", "x")
	assert.True(t, ContainsVar(node, "x"))
	assert.False(t, ContainsVar(node, "y"))
	assert.False(t, ContainsVar(MustParse("pi * 2", "x"), "x"))
	assert.Equal(t, []string{"x"}, FreeVars(MustParse("x * x + 1", "x")))
}

func TestEqual(t *testing.T) {
	a := MustParse("x^2 + sin(x)", "x")
	b := MustParse("x ** 2 + sin(x)", "x")
	assert.True(t, Equal(a, b))
	assert.False(t, Equal(a, MustParse("x^2 + cos(x)", "x")))
}
