// Package stats provides the descriptive statistics used across the
// dataset pipeline: per-sample and per-day means with error bars.
package stats

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// z-critical value for a 95% confidence interval, normal approximation.
// Small-sample day averages keep this simplification deliberately; a
// t-distribution would be more precise for n=3 wells.
const Z95 = 1.96

// Summary holds descriptive statistics for one group of measurements.
type Summary struct {
	N    int
	Mean float64
	SD   float64
	SEM  float64
	Min  float64
	Max  float64
}

// Describe computes a Summary over vals. SD is the sample standard
// deviation and is 0 when fewer than two values are present.
func Describe(vals []float64) Summary {
	n := len(vals)
	if n == 0 {
		return Summary{}
	}

	s := Summary{
		N:    n,
		Mean: stat.Mean(vals, nil),
		Min:  floats.Min(vals),
		Max:  floats.Max(vals),
	}
	if n >= 2 {
		s.SD = stat.StdDev(vals, nil)
	}
	if s.N > 0 {
		s.SEM = s.SD / math.Sqrt(float64(n))
	}
	return s
}

// CI95 returns the margin, lower, and upper bound of the 95% confidence
// interval around the mean using the normal approximation.
func (s Summary) CI95() (margin, lower, upper float64) {
	margin = Z95 * s.SEM
	return margin, s.Mean - margin, s.Mean + margin
}

// Round truncates v to the given number of decimal places.
func Round(v float64, decimals int) float64 {
	scale := math.Pow10(decimals)
	return math.Round(v*scale) / scale
}
