package growth

import (
	"fmt"

	"github.com/kadinelbak/CancerGrowthDynamics/internal/sim"
)

// Treated is logistic growth with a dose-dependent kill term:
//
//	dN/dt = r*N*(1 - N/K) - kill*E(t)*N
//
// E(t) is the exposure schedule. With DosePeriod == 0 the drug is applied
// continuously from DoseStart onward (the IC50-treated arm). With a positive
// period, exposure is pulsed: within each period starting at DoseStart the
// drug is present for DoseDuration days (the intermittent arm).
type Treated struct {
	Rate         float64
	Capacity     float64
	Kill         float64
	DoseStart    float64
	DosePeriod   float64
	DoseDuration float64
}

func NewTreated() *Treated {
	return &Treated{
		Rate:         0.45,
		Capacity:     150000,
		Kill:         0.30,
		DoseStart:    2.0,
		DosePeriod:   0,
		DoseDuration: 1.0,
	}
}

func (m *Treated) StateDim() int { return 1 }

// Exposure returns E(t) in [0, 1] for the configured schedule.
func (m *Treated) Exposure(t float64) float64 {
	if t < m.DoseStart {
		return 0
	}
	if m.DosePeriod <= 0 {
		return 1
	}
	elapsed := t - m.DoseStart
	phase := elapsed - float64(int(elapsed/m.DosePeriod))*m.DosePeriod
	if phase < m.DoseDuration {
		return 1
	}
	return 0
}

func (m *Treated) Derivative(x sim.State, t float64) sim.State {
	n := x[0]
	growth := m.Rate * n * (1 - n/m.Capacity)
	kill := m.Kill * m.Exposure(t) * n
	return sim.State{growth - kill}
}

func (m *Treated) DefaultState() sim.State { return sim.State{20000} }

func (m *Treated) GetParams() map[string]float64 {
	return map[string]float64{
		"r":             m.Rate,
		"k":             m.Capacity,
		"kill":          m.Kill,
		"dose_start":    m.DoseStart,
		"dose_period":   m.DosePeriod,
		"dose_duration": m.DoseDuration,
	}
}

func (m *Treated) SetParam(name string, value float64) error {
	switch name {
	case "r":
		m.Rate = value
	case "k":
		if value <= 0 {
			return fmt.Errorf("%w: carrying capacity must be positive", sim.ErrParameterBounds)
		}
		m.Capacity = value
	case "kill":
		if value < 0 {
			return fmt.Errorf("%w: kill rate must be non-negative", sim.ErrParameterBounds)
		}
		m.Kill = value
	case "dose_start":
		m.DoseStart = value
	case "dose_period":
		m.DosePeriod = value
	case "dose_duration":
		m.DoseDuration = value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return nil
}
