package growth

import (
	"fmt"
	"math"

	"github.com/kadinelbak/CancerGrowthDynamics/internal/sim"
)

// Gompertz is dN/dt = r*N*ln(K/N), the classic tumor growth law with
// growth slowing earlier than logistic as N approaches K.
type Gompertz struct {
	Rate     float64
	Capacity float64
}

func NewGompertz() *Gompertz {
	return &Gompertz{Rate: 0.18, Capacity: 150000}
}

func (g *Gompertz) StateDim() int { return 1 }

func (g *Gompertz) Derivative(x sim.State, t float64) sim.State {
	n := x[0]
	if n <= 0 {
		// ln(K/N) is undefined at N <= 0; an extinct culture stays extinct.
		return sim.State{0}
	}
	return sim.State{g.Rate * n * math.Log(g.Capacity/n)}
}

func (g *Gompertz) DefaultState() sim.State { return sim.State{20000} }

func (g *Gompertz) GetParams() map[string]float64 {
	return map[string]float64{"r": g.Rate, "k": g.Capacity}
}

func (g *Gompertz) SetParam(name string, value float64) error {
	switch name {
	case "r":
		g.Rate = value
	case "k":
		if value <= 0 {
			return fmt.Errorf("%w: carrying capacity must be positive", sim.ErrParameterBounds)
		}
		g.Capacity = value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return nil
}
