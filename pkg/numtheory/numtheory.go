// Package numtheory implements integer helpers: gcd, lcm, primality
// and prime enumeration.
package numtheory

import (
	"errors"
	"fmt"
	"math/big"
)

var ErrInvalidArgument = errors.New("invalid argument")

// MaxPrimeRange bounds the width of a Primes query.
const MaxPrimeRange = 10_000_000

// GCD returns the non-negative greatest common divisor. GCD(0, 0) is 0.
func GCD(a, b int64) int64 {
	a, b = abs(a), abs(b)
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// LCM returns the non-negative least common multiple. A zero operand
// yields 0; a result that does not fit in int64 is an error.
func LCM(a, b int64) (int64, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	g := GCD(a, b)
	l := new(big.Int).Mul(big.NewInt(abs(a/g)), big.NewInt(abs(b)))
	if !l.IsInt64() {
		return 0, fmt.Errorf("lcm(%d, %d) overflows int64: %w", a, b, ErrInvalidArgument)
	}
	return l.Int64(), nil
}

// IsPrime reports whether n is prime. The Baillie-PSW test behind
// ProbablyPrime(0) is exact for all 64-bit inputs.
func IsPrime(n int64) bool {
	if n < 2 {
		return false
	}
	return big.NewInt(n).ProbablyPrime(0)
}

// Primes returns the primes p with lo <= p <= hi in ascending order.
func Primes(lo, hi int64) ([]int64, error) {
	if hi < lo {
		return nil, fmt.Errorf("empty range [%d, %d]: %w", lo, hi, ErrInvalidArgument)
	}
	if lo < 2 {
		lo = 2
	}
	if hi < 2 {
		return []int64{}, nil
	}
	if hi-lo > MaxPrimeRange {
		return nil, fmt.Errorf("range width %d exceeds %d: %w", hi-lo, MaxPrimeRange, ErrInvalidArgument)
	}
	if hi <= MaxPrimeRange {
		return sieve(lo, hi), nil
	}

	var out []int64
	for n := lo; n <= hi; n++ {
		if IsPrime(n) {
			out = append(out, n)
		}
	}
	if out == nil {
		out = []int64{}
	}
	return out, nil
}

// sieve runs Eratosthenes over [0, hi] and keeps the primes >= lo.
func sieve(lo, hi int64) []int64 {
	composite := make([]bool, hi+1)
	out := []int64{}
	for i := int64(2); i <= hi; i++ {
		if composite[i] {
			continue
		}
		if i >= lo {
			out = append(out, i)
		}
		for j := i * i; j <= hi; j += i {
			composite[j] = true
		}
	}
	return out
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}
