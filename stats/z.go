package stats

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// ZVal returns the two-tailed Z-value associated with a specific confidence interval.
// The interval is a number from 0 to 100 percent.
func ZVal(confidenceInterval float64) float64 {
	dist := distuv.Normal{
		Mu:    0,
		Sigma: 1,
	}
	area := (1 + (confidenceInterval / 100)) / 2
	return dist.Quantile(area)
}

// WilsonInterval returns the Wilson score interval for a proportion of
// successes out of n trials, at the given confidence (0 to 100 percent).
// With no trials it returns the whole [0, 1] range.
func WilsonInterval(successes, n int, confidenceInterval float64) (lo, hi float64) {
	if n <= 0 {
		return 0, 1
	}
	z := ZVal(confidenceInterval)
	fn := float64(n)
	p := float64(successes) / fn
	z2 := z * z
	denom := 1 + z2/fn
	center := (p + z2/(2*fn)) / denom
	half := z * math.Sqrt(p*(1-p)/fn+z2/(4*fn*fn)) / denom
	return math.Max(0, center-half), math.Min(1, center+half)
}
