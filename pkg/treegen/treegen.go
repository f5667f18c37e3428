// Package treegen generates random expression trees over subsets of the
// grammar. Property tests use it to exercise the parser, printer and
// calculus routines on inputs nobody wrote by hand.
package treegen

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/Kritika75/LambdaCalc/pkg/expr"
)

// Generator provides random building blocks for expression trees.
type Generator interface {
	Name() string
	RandomLeaf(rng *rand.Rand, variable string) expr.ExprNode
	// RandomFunc returns false when the generator has no function calls.
	RandomFunc(rng *rand.Rand) (expr.Func, bool)
	RandomBinary(rng *rand.Rand) expr.BinaryOp
	RandomTree(rng *rand.Rand, variable string, maxDepth int) expr.ExprNode
}

var registry = map[string]func() Generator{}

// Register adds a generator constructor to the registry.
func Register(name string, constructor func() Generator) {
	registry[name] = constructor
}

// Get returns a generator by name.
func Get(name string) (Generator, error) {
	ctor, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown generator: %s", name)
	}
	return ctor(), nil
}

// Names returns all registered generator names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for k := range registry {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// randomTree is a shared helper for building random trees. Exponents are
// always small integer constants so that trees stay evaluable.
func randomTree(g Generator, rng *rand.Rand, variable string, maxDepth int) expr.ExprNode {
	if maxDepth <= 1 {
		return g.RandomLeaf(rng, variable)
	}
	// Bias toward leaves at shallow depths to keep trees small
	r := rng.Float64()
	switch {
	case r < 0.3:
		return g.RandomLeaf(rng, variable)
	case r < 0.4:
		return &expr.UnaryNode{Op: expr.OpNeg, Child: randomTree(g, rng, variable, maxDepth-1)}
	case r < 0.6:
		if fn, ok := g.RandomFunc(rng); ok {
			return &expr.CallNode{Fn: fn, Arg: randomTree(g, rng, variable, maxDepth-1)}
		}
	}
	op := g.RandomBinary(rng)
	if op == expr.OpPow {
		return &expr.BinaryNode{
			Op:    op,
			Left:  randomTree(g, rng, variable, maxDepth-1),
			Right: &expr.ConstNode{Val: float64(rng.Intn(3) + 2)},
		}
	}
	return &expr.BinaryNode{
		Op:    op,
		Left:  randomTree(g, rng, variable, maxDepth-1),
		Right: randomTree(g, rng, variable, maxDepth-1),
	}
}

func randomInt(rng *rand.Rand, lo, hi int) expr.ExprNode {
	return &expr.ConstNode{Val: float64(rng.Intn(hi-lo+1) + lo)}
}
