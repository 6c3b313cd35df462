package growth

import (
	"fmt"

	"github.com/kadinelbak/CancerGrowthDynamics/internal/sim"
)

// Exponential is unconstrained growth dN/dt = r*N.
type Exponential struct {
	Rate float64
}

func NewExponential() *Exponential {
	return &Exponential{Rate: 0.35}
}

func (e *Exponential) StateDim() int { return 1 }

func (e *Exponential) Derivative(x sim.State, t float64) sim.State {
	return sim.State{e.Rate * x[0]}
}

func (e *Exponential) DefaultState() sim.State { return sim.State{20000} }

func (e *Exponential) GetParams() map[string]float64 {
	return map[string]float64{"r": e.Rate}
}

func (e *Exponential) SetParam(name string, value float64) error {
	switch name {
	case "r":
		e.Rate = value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return nil
}
