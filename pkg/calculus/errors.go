// Package calculus differentiates, integrates and takes limits of
// expression trees in a single variable.
package calculus

import (
	"errors"
	"fmt"

	"github.com/Kritika75/LambdaCalc/pkg/expr"
)

var (
	// ErrUnsupported is returned when no integration rule matches.
	ErrUnsupported = errors.New("integration unsupported")
	// ErrDoesNotExist is returned when a limit diverges or its one-sided
	// values disagree.
	ErrDoesNotExist = errors.New("limit does not exist")
	// ErrImproper is returned for definite integrals whose integrand has a
	// pole inside the interval.
	ErrImproper = errors.New("improper integral")
)

// UnsupportedError names the sub-expression that defeated the integrator.
type UnsupportedError struct {
	Node expr.ExprNode
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("cannot integrate %s", e.Node)
}

// Is makes errors.Is(err, ErrUnsupported) succeed.
func (e *UnsupportedError) Is(target error) bool {
	return target == ErrUnsupported
}

func unsupported(node expr.ExprNode) error {
	return &UnsupportedError{Node: node}
}
