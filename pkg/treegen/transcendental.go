package treegen

import (
	"math/rand"

	"github.com/Kritika75/LambdaCalc/pkg/expr"
)

func init() {
	Register("transcendental", func() Generator { return &TranscendentalGenerator{} })
}

// TranscendentalGenerator extends rational with every supported function.
type TranscendentalGenerator struct{}

func (g *TranscendentalGenerator) Name() string { return "transcendental" }

func (g *TranscendentalGenerator) RandomLeaf(rng *rand.Rand, variable string) expr.ExprNode {
	if rng.Float64() < 0.5 {
		return &expr.VarNode{Name: variable}
	}
	return randomInt(rng, 1, 5)
}

func (g *TranscendentalGenerator) RandomFunc(rng *rand.Rand) (expr.Func, bool) {
	fns := expr.Funcs()
	return fns[rng.Intn(len(fns))], true
}

var transcendentalBinary = []expr.BinaryOp{
	expr.OpAdd,
	expr.OpSub,
	expr.OpMul,
	expr.OpDiv,
	expr.OpPow,
}

func (g *TranscendentalGenerator) RandomBinary(rng *rand.Rand) expr.BinaryOp {
	return transcendentalBinary[rng.Intn(len(transcendentalBinary))]
}

func (g *TranscendentalGenerator) RandomTree(rng *rand.Rand, variable string, maxDepth int) expr.ExprNode {
	return randomTree(g, rng, variable, maxDepth)
}
