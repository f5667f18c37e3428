package calculus

import "math"

// analyzeConvergence inspects a sequence of approximations taken at
// shrinking step sizes. It reports the first value at which two
// consecutive differences fall under tol relative to the value, and the
// average ratio between successive differences up to that point.
func analyzeConvergence(values []float64, tol float64) (float64, float64, bool) {
	if len(values) < 3 {
		return 0, 0, false
	}

	var totalRatio float64
	var validRatios int
	small := 0
	prevDiff := -1.0

	for i := 1; i < len(values); i++ {
		v := values[i]
		if math.Abs(v) > divergenceBound {
			return 0, 0, false
		}
		diff := math.Abs(v - values[i-1])
		if prevDiff > 0 {
			totalRatio += diff / prevDiff
			validRatios++
		}
		prevDiff = diff

		if diff <= tol*(1+math.Abs(v)) {
			small++
		} else {
			small = 0
		}
		if small >= 2 {
			rate := 0.0
			if validRatios > 0 {
				rate = totalRatio / float64(validRatios)
			}
			return v, rate, true
		}
	}
	return 0, 0, false
}

// divergenceBound is the magnitude past which a sample is treated as
// unbounded.
const divergenceBound = 1e12

// sameValue compares two finite floats within a relative tolerance.
func sameValue(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol*(1+math.Max(math.Abs(a), math.Abs(b)))
}
