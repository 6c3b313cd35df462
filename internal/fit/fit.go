// Package fit estimates growth model parameters from observed day-average
// data by exhaustive grid search over parameter ranges.
package fit

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/kadinelbak/CancerGrowthDynamics/internal/dataset"
	"github.com/kadinelbak/CancerGrowthDynamics/internal/sim"
)

// Observations are the measured mean cell counts per acquisition day.
type Observations struct {
	Days  []float64
	Means []float64
}

// observation column names accepted in day-average files, newest first.
var obsColumns = []string{"Mean Cells", "Mean Area µm^2", "Mean_Cells", "Average_Cells"}

// LoadObservations reads a day-averages CSV produced by the pipeline.
func LoadObservations(path string) (*Observations, error) {
	table, err := dataset.Read(path)
	if err != nil {
		return nil, err
	}

	dayIdx := table.ColumnIndex("Day")
	if dayIdx < 0 {
		return nil, fmt.Errorf("no Day column in %s", path)
	}
	meanIdx := -1
	for _, name := range obsColumns {
		if idx := table.ColumnIndex(name); idx >= 0 {
			meanIdx = idx
			break
		}
	}
	if meanIdx < 0 {
		return nil, fmt.Errorf("no mean cells column in %s", path)
	}

	obs := &Observations{}
	for _, row := range table.Rows {
		if dayIdx >= len(row) || meanIdx >= len(row) {
			continue
		}
		day, err := strconv.ParseFloat(strings.TrimSpace(row[dayIdx]), 64)
		if err != nil {
			continue
		}
		mean, err := strconv.ParseFloat(strings.TrimSpace(row[meanIdx]), 64)
		if err != nil {
			continue
		}
		obs.Days = append(obs.Days, day)
		obs.Means = append(obs.Means, mean)
	}

	if len(obs.Days) == 0 {
		return nil, fmt.Errorf("no usable observations in %s", path)
	}
	return obs, nil
}

// SSE is the sum of squared errors between a simulated trajectory and the
// observations, sampling the trajectory at each observed day.
func SSE(result *sim.Result, obs *Observations) float64 {
	sse := 0.0
	for i, day := range obs.Days {
		simulated := sampleAt(result, day)
		diff := simulated - obs.Means[i]
		sse += diff * diff
	}
	return sse
}

// sampleAt returns the state value at time t by nearest-sample lookup.
func sampleAt(result *sim.Result, t float64) float64 {
	if len(result.Times) == 0 {
		return math.NaN()
	}
	bestIdx := 0
	bestDist := math.Abs(result.Times[0] - t)
	for i, rt := range result.Times {
		if d := math.Abs(rt - t); d < bestDist {
			bestDist = d
			bestIdx = i
		}
	}
	return result.States[bestIdx][0]
}

// GridSearch walks the cartesian product of parameter ranges.
type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Objective evaluates one parameter combination, returning its cost.
type Objective func(params map[string]float64) (float64, error)

// Search returns the parameter combination minimizing the objective and
// its cost. Combinations whose evaluation fails are ignored.
func (g *GridSearch) Search(ctx context.Context, objective Objective) (map[string]float64, float64, error) {
	best := math.Inf(1)
	var bestParams map[string]float64

	err := g.searchRecursive(ctx, 0, make(map[string]float64), objective, &best, &bestParams)
	if err != nil {
		return bestParams, best, err
	}
	if bestParams == nil {
		return nil, best, fmt.Errorf("no parameter combination could be evaluated")
	}
	return bestParams, best, nil
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	objective Objective,
	best *float64,
	bestParams *map[string]float64,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if depth == len(g.paramNames) {
		val, err := objective(current)
		if err != nil {
			return nil
		}
		if val < *best {
			*best = val
			snapshot := make(map[string]float64, len(current))
			for k, v := range current {
				snapshot[k] = v
			}
			*bestParams = snapshot
		}
		return nil
	}

	name := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		current[name] = val
		if err := g.searchRecursive(ctx, depth+1, current, objective, best, bestParams); err != nil {
			return err
		}
	}
	delete(current, name)
	return nil
}

// Range builds an inclusive linearly spaced parameter range.
func Range(from, to float64, steps int) []float64 {
	if steps < 2 {
		return []float64{from}
	}
	vals := make([]float64, steps)
	delta := (to - from) / float64(steps-1)
	for i := range vals {
		vals[i] = from + float64(i)*delta
	}
	return vals
}
