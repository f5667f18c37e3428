// Package engine is the string-in, string-out facade over the math
// packages, plus a dispatch table and a parallel batch runner for
// operation requests.
package engine

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/Kritika75/LambdaCalc/pkg/calculus"
	"github.com/Kritika75/LambdaCalc/pkg/expr"
)

// DoesNotExist is the rendering of a limit that has no finite value.
const DoesNotExist = "does not exist"

// Kernel parses text and applies the calculus operations. It holds only
// immutable settings and is safe for concurrent use.
type Kernel struct {
	variable string
	limit    calculus.LimitConfig
	definite calculus.DefiniteConfig
}

// NewKernel returns a kernel using cfg's variable and numeric bounds.
func NewKernel(cfg Config) *Kernel {
	v := cfg.Variable
	if v == "" {
		v = expr.DefaultVariable
	}
	return &Kernel{
		variable: v,
		limit:    cfg.LimitConfig(),
		definite: cfg.DefiniteConfig(),
	}
}

func (k *Kernel) parse(text, variable string) (expr.ExprNode, string, error) {
	if variable == "" {
		variable = k.variable
	}
	node, err := expr.Parse(text, variable)
	if err != nil {
		return nil, variable, err
	}
	return node, variable, nil
}

// Derivative parses text and returns its simplified derivative tree.
func (k *Kernel) Derivative(text, variable string) (expr.ExprNode, error) {
	return k.NthDerivative(text, variable, 1)
}

// NthDerivative parses text and differentiates it n times.
func (k *Kernel) NthDerivative(text, variable string, n int) (expr.ExprNode, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: derivative order %d", ErrInvalidField, n)
	}
	node, variable, err := k.parse(text, variable)
	if err != nil {
		return nil, err
	}
	return expr.Simplify(calculus.NthDerivative(node, variable, n)), nil
}

// Antiderivative parses text and returns an antiderivative tree, or an
// error matching calculus.ErrUnsupported.
func (k *Kernel) Antiderivative(text, variable string) (expr.ExprNode, error) {
	node, variable, err := k.parse(text, variable)
	if err != nil {
		return nil, err
	}
	f, err := calculus.Integrate(node, variable)
	if err != nil {
		return nil, fmt.Errorf("integrate %s: %w", text, err)
	}
	return expr.Simplify(f), nil
}

// ParseAndDifferentiate returns the derivative of text as text.
func (k *Kernel) ParseAndDifferentiate(text, variable string) (string, error) {
	d, err := k.Derivative(text, variable)
	if err != nil {
		return "", err
	}
	return d.String(), nil
}

// ParseAndIntegrateIndefinite returns an antiderivative of text as text.
func (k *Kernel) ParseAndIntegrateIndefinite(text, variable string) (string, error) {
	f, err := k.Antiderivative(text, variable)
	if err != nil {
		return "", err
	}
	return f.String(), nil
}

// Evaluate parses text and evaluates it, binding variable to x when x is
// non-nil. Failures such as ln(0) or an unbound variable match
// expr.ErrDomain.
func (k *Kernel) Evaluate(text, variable string, x *float64) (float64, error) {
	node, variable, err := k.parse(text, variable)
	if err != nil {
		return 0, err
	}
	vars := expr.Vars{}
	if x != nil {
		vars[variable] = *x
	}
	return expr.Eval(node, vars)
}

// DefiniteIntegral integrates text over [a, b], falling back to the
// configured quadrature when no antiderivative applies.
func (k *Kernel) DefiniteIntegral(text, variable string, a, b float64) (calculus.DefiniteResult, error) {
	node, variable, err := k.parse(text, variable)
	if err != nil {
		return calculus.DefiniteResult{}, err
	}
	return calculus.DefiniteIntegral(node, variable, a, b, k.definite)
}

// ComputeLimit evaluates the limit of text as variable approaches point
// from direction ("both", "left", "right"; empty means both).
func (k *Kernel) ComputeLimit(text, variable string, point float64, direction string) (float64, error) {
	dir, err := calculus.ParseDirection(direction)
	if err != nil {
		return 0, err
	}
	node, variable, err := k.parse(text, variable)
	if err != nil {
		return 0, err
	}
	return calculus.LimitWithConfig(node, variable, point, dir, k.limit)
}

// FormatLimit renders a ComputeLimit outcome. A limit that does not
// exist is a value, not a failure; other errors pass through.
func FormatLimit(v float64, err error) (string, error) {
	switch {
	case errors.Is(err, calculus.ErrDoesNotExist):
		return DoesNotExist, nil
	case err != nil:
		return "", err
	}
	return strconv.FormatFloat(v, 'g', -1, 64), nil
}
