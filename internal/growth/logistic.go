package growth

import (
	"fmt"

	"github.com/kadinelbak/CancerGrowthDynamics/internal/sim"
)

// Logistic is density-limited growth dN/dt = r*N*(1 - N/K).
type Logistic struct {
	Rate     float64
	Capacity float64
}

func NewLogistic() *Logistic {
	return &Logistic{Rate: 0.45, Capacity: 150000}
}

func (l *Logistic) StateDim() int { return 1 }

func (l *Logistic) Derivative(x sim.State, t float64) sim.State {
	n := x[0]
	return sim.State{l.Rate * n * (1 - n/l.Capacity)}
}

func (l *Logistic) DefaultState() sim.State { return sim.State{20000} }

func (l *Logistic) GetParams() map[string]float64 {
	return map[string]float64{"r": l.Rate, "k": l.Capacity}
}

func (l *Logistic) SetParam(name string, value float64) error {
	switch name {
	case "r":
		l.Rate = value
	case "k":
		if value <= 0 {
			return fmt.Errorf("%w: carrying capacity must be positive", sim.ErrParameterBounds)
		}
		l.Capacity = value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return nil
}
