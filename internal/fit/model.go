package fit

import (
	"context"
	"fmt"

	"github.com/kadinelbak/CancerGrowthDynamics/internal/growth"
	"github.com/kadinelbak/CancerGrowthDynamics/internal/integrators"
	"github.com/kadinelbak/CancerGrowthDynamics/internal/sim"
)

// ModelFit describes a fitting problem: which model to fit, which
// parameters to sweep, and the observations to fit against.
type ModelFit struct {
	Model      string
	Integrator string
	Params     []string
	Ranges     [][]float64
	Obs        *Observations
	Config     sim.Config
}

// Result is the best parameter combination found and its cost.
type Result struct {
	Params map[string]float64
	SSE    float64
	Evals  int
}

// Run fits the model by grid search. The initial count is taken from the
// first observation so the simulated curve starts where the data does.
func (f *ModelFit) Run(ctx context.Context) (*Result, error) {
	if f.Obs == nil || len(f.Obs.Days) == 0 {
		return nil, fmt.Errorf("no observations to fit against")
	}
	if len(f.Params) != len(f.Ranges) {
		return nil, fmt.Errorf("got %d params but %d ranges", len(f.Params), len(f.Ranges))
	}
	if _, err := growth.New(f.Model); err != nil {
		return nil, err
	}
	if f.Integrator == "" {
		f.Integrator = "rk4"
	}

	cfg := f.Config
	if cfg.Duration <= 0 {
		cfg.Duration = f.Obs.Days[len(f.Obs.Days)-1]
	}
	if cfg.Dt <= 0 {
		cfg.Dt = sim.DefaultConfig().Dt
	}

	x0 := sim.State{f.Obs.Means[0]}

	evals := 0
	objective := func(params map[string]float64) (float64, error) {
		evals++
		model, err := growth.New(f.Model)
		if err != nil {
			return 0, err
		}
		for name, value := range params {
			if err := model.SetParam(name, value); err != nil {
				return 0, err
			}
		}
		integ, err := integrators.New(f.Integrator)
		if err != nil {
			return 0, err
		}
		result, err := sim.New(model, integ).Run(ctx, x0.Clone(), cfg)
		if err != nil {
			return 0, err
		}
		return SSE(result, f.Obs), nil
	}

	best, cost, err := NewGridSearch(f.Params, f.Ranges).Search(ctx, objective)
	if err != nil {
		return nil, err
	}
	return &Result{Params: best, SSE: cost, Evals: evals}, nil
}
