package expr

import (
	"errors"
	"fmt"
)

// ErrDomain is matched by every DomainError.
var ErrDomain = errors.New("domain error")

// ParseError reports malformed expression text.
type ParseError struct {
	Input string
	Pos   int
	Msg   string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at position %d: %s", e.Pos, e.Msg)
}

// DomainError reports a numeric evaluation outside an operation's domain,
// such as ln of a non-positive number or division by zero.
type DomainError struct {
	Op     string
	Arg    float64
	Reason string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: %s (argument %g)", e.Op, e.Reason, e.Arg)
}

// Is makes errors.Is(err, ErrDomain) succeed.
func (e *DomainError) Is(target error) bool {
	return target == ErrDomain
}

func domainErr(op string, arg float64, reason string) error {
	return &DomainError{Op: op, Arg: arg, Reason: reason}
}
