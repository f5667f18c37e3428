package treegen

import (
	"math/rand"

	"github.com/Kritika75/LambdaCalc/pkg/expr"
)

func init() {
	Register("rational", func() Generator { return &RationalGenerator{} })
}

// RationalGenerator extends polynomial with division and fractional
// constants.
type RationalGenerator struct{}

func (g *RationalGenerator) Name() string { return "rational" }

func (g *RationalGenerator) RandomLeaf(rng *rand.Rand, variable string) expr.ExprNode {
	r := rng.Float64()
	switch {
	case r < 0.45:
		return &expr.VarNode{Name: variable}
	case r < 0.85:
		return randomInt(rng, 1, 9)
	default:
		halves := []float64{0.5, 1.5, 2.5}
		return &expr.ConstNode{Val: halves[rng.Intn(len(halves))]}
	}
}

func (g *RationalGenerator) RandomFunc(rng *rand.Rand) (expr.Func, bool) {
	return 0, false
}

var rationalBinary = []expr.BinaryOp{
	expr.OpAdd,
	expr.OpSub,
	expr.OpMul,
	expr.OpDiv,
	expr.OpPow,
}

func (g *RationalGenerator) RandomBinary(rng *rand.Rand) expr.BinaryOp {
	return rationalBinary[rng.Intn(len(rationalBinary))]
}

func (g *RationalGenerator) RandomTree(rng *rand.Rand, variable string, maxDepth int) expr.ExprNode {
	return randomTree(g, rng, variable, maxDepth)
}
