package ensemble

import (
	"gonum.org/v1/gonum/stat"
)

// Curve holds per-timestep statistics across ensemble members.
type Curve struct {
	Times []float64
	Mean  []float64
	SD    []float64
}

// Aggregate computes the mean and SD of the first state component across
// members at every timestep. Members are expected to share a time base
// (fixed-step runs with identical configs); the curve is truncated to the
// shortest member.
func Aggregate(results []MemberResult) Curve {
	steps := -1
	for _, r := range results {
		if r.Result == nil {
			continue
		}
		if steps < 0 || len(r.Result.Times) < steps {
			steps = len(r.Result.Times)
		}
	}
	if steps <= 0 {
		return Curve{}
	}

	curve := Curve{
		Times: make([]float64, steps),
		Mean:  make([]float64, steps),
		SD:    make([]float64, steps),
	}

	for _, r := range results {
		if r.Result != nil {
			copy(curve.Times, r.Result.Times[:steps])
			break
		}
	}

	ParallelFor(steps, 256, 0, func(start, end int) {
		vals := make([]float64, 0, len(results))
		for i := start; i < end; i++ {
			vals = vals[:0]
			for _, r := range results {
				if r.Result == nil || i >= len(r.Result.States) {
					continue
				}
				vals = append(vals, r.Result.States[i][0])
			}
			if len(vals) == 0 {
				continue
			}
			curve.Mean[i] = stat.Mean(vals, nil)
			if len(vals) >= 2 {
				curve.SD[i] = stat.StdDev(vals, nil)
			}
		}
	})

	return curve
}
