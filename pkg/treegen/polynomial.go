package treegen

import (
	"math/rand"

	"github.com/Kritika75/LambdaCalc/pkg/expr"
)

func init() {
	Register("polynomial", func() Generator { return &PolynomialGenerator{} })
}

// PolynomialGenerator produces polynomials: the variable, small integers,
// + - * and small integer powers.
type PolynomialGenerator struct{}

func (g *PolynomialGenerator) Name() string { return "polynomial" }

func (g *PolynomialGenerator) RandomLeaf(rng *rand.Rand, variable string) expr.ExprNode {
	if rng.Float64() < 0.5 {
		return &expr.VarNode{Name: variable}
	}
	return randomInt(rng, -5, 9)
}

func (g *PolynomialGenerator) RandomFunc(rng *rand.Rand) (expr.Func, bool) {
	return 0, false
}

var polynomialBinary = []expr.BinaryOp{
	expr.OpAdd,
	expr.OpSub,
	expr.OpMul,
	expr.OpPow,
}

func (g *PolynomialGenerator) RandomBinary(rng *rand.Rand) expr.BinaryOp {
	return polynomialBinary[rng.Intn(len(polynomialBinary))]
}

func (g *PolynomialGenerator) RandomTree(rng *rand.Rand, variable string, maxDepth int) expr.ExprNode {
	return randomTree(g, rng, variable, maxDepth)
}
