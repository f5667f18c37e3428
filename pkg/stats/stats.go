// Package stats provides descriptive statistics backed by gonum/stat.
package stats

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/stat"
)

var ErrEmpty = errors.New("no values")

// Mean returns the arithmetic mean.
func Mean(xs []float64) (float64, error) {
	if len(xs) == 0 {
		return 0, ErrEmpty
	}
	return stat.Mean(xs, nil), nil
}

// Variance returns the unbiased sample variance. Fewer than two values
// have zero spread.
func Variance(xs []float64) (float64, error) {
	if len(xs) == 0 {
		return 0, ErrEmpty
	}
	if len(xs) < 2 {
		return 0, nil
	}
	return stat.Variance(xs, nil), nil
}

// StdDev returns the sample standard deviation.
func StdDev(xs []float64) (float64, error) {
	v, err := Variance(xs)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(v), nil
}
