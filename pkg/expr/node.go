// Package expr defines the expression tree shared by the parser, the
// evaluator and the calculus routines. Trees are immutable: every operation
// builds new nodes and never rewrites an existing one.
package expr

// ExprNode is the interface for all expression tree nodes. The set of
// implementations is closed; algorithms switch exhaustively over
// *ConstNode, *VarNode, *UnaryNode, *BinaryNode and *CallNode.
type ExprNode interface {
	EvalF64(vars Vars) (float64, error)
	String() string
	LaTeX() string
	NodeCount() int
	Depth() int
	isExpr()
}

// Vars binds variable names to values during evaluation.
type Vars map[string]float64

// UnaryOp identifies a unary operation.
type UnaryOp int

const (
	OpNeg UnaryOp = iota
)

// BinaryOp identifies a binary operation.
type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpPow
)

// Func identifies a named function applied with call syntax.
type Func int

const (
	FnSin Func = iota
	FnCos
	FnTan
	FnAsin
	FnAcos
	FnAtan
	FnSinh
	FnCosh
	FnTanh
	FnExp
	FnLn
	FnSqrt
	FnAbs
)

var funcNames = map[Func]string{
	FnSin:  "sin",
	FnCos:  "cos",
	FnTan:  "tan",
	FnAsin: "asin",
	FnAcos: "acos",
	FnAtan: "atan",
	FnSinh: "sinh",
	FnCosh: "cosh",
	FnTanh: "tanh",
	FnExp:  "exp",
	FnLn:   "ln",
	FnSqrt: "sqrt",
	FnAbs:  "abs",
}

var funcByName = map[string]Func{
	"log": FnLn,
}

func init() {
	for fn, name := range funcNames {
		funcByName[name] = fn
	}
}

// String returns the call-syntax name of the function.
func (f Func) String() string {
	if name, ok := funcNames[f]; ok {
		return name
	}
	return "?"
}

// LookupFunc resolves a function name. "log" is accepted as natural log.
func LookupFunc(name string) (Func, bool) {
	fn, ok := funcByName[name]
	return fn, ok
}

// Funcs returns every supported function in declaration order.
func Funcs() []Func {
	fns := make([]Func, 0, len(funcNames))
	for f := FnSin; f <= FnAbs; f++ {
		fns = append(fns, f)
	}
	return fns
}

// ConstNode represents a numeric literal.
type ConstNode struct {
	Val float64
}

// VarNode represents a named variable.
type VarNode struct {
	Name string
}

// UnaryNode applies a unary operation to a child expression.
type UnaryNode struct {
	Op    UnaryOp
	Child ExprNode
}

// BinaryNode applies a binary operation to two child expressions.
type BinaryNode struct {
	Op          BinaryOp
	Left, Right ExprNode
}

// CallNode applies a named function to a single argument.
type CallNode struct {
	Fn  Func
	Arg ExprNode
}

func (*ConstNode) isExpr()  {}
func (*VarNode) isExpr()    {}
func (*UnaryNode) isExpr()  {}
func (*BinaryNode) isExpr() {}
func (*CallNode) isExpr()   {}
