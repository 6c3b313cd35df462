package growth

import (
	"math"

	"github.com/kadinelbak/CancerGrowthDynamics/internal/sim"
)

// DoublingTime reports the first time at which the population reaches
// twice its initial value, or NaN if it never does.
type DoublingTime struct {
	n0      float64
	started bool
	doubled float64
	found   bool
}

func NewDoublingTime() *DoublingTime { return &DoublingTime{} }

func (m *DoublingTime) Name() string { return "doubling_time" }

func (m *DoublingTime) Observe(x sim.State, t float64) {
	if !m.started {
		m.n0 = x[0]
		m.started = true
		return
	}
	if !m.found && x[0] >= 2*m.n0 {
		m.doubled = t
		m.found = true
	}
}

func (m *DoublingTime) Value() float64 {
	if !m.found {
		return math.NaN()
	}
	return m.doubled
}

func (m *DoublingTime) Reset() {
	m.n0 = 0
	m.started = false
	m.doubled = 0
	m.found = false
}

// PeakCount tracks the maximum population observed.
type PeakCount struct {
	peak float64
	seen bool
}

func NewPeakCount() *PeakCount { return &PeakCount{} }

func (m *PeakCount) Name() string { return "peak_cells" }

func (m *PeakCount) Observe(x sim.State, t float64) {
	if !m.seen || x[0] > m.peak {
		m.peak = x[0]
		m.seen = true
	}
}

func (m *PeakCount) Value() float64 { return m.peak }
func (m *PeakCount) Reset()         { m.peak = 0; m.seen = false }

// SpecificGrowthRate reports the mean specific growth rate
// (ln N_last - ln N_first) / (t_last - t_first) over the observed run.
type SpecificGrowthRate struct {
	firstN, firstT float64
	lastN, lastT   float64
	started        bool
}

func NewSpecificGrowthRate() *SpecificGrowthRate { return &SpecificGrowthRate{} }

func (m *SpecificGrowthRate) Name() string { return "specific_growth_rate" }

func (m *SpecificGrowthRate) Observe(x sim.State, t float64) {
	if !m.started {
		m.firstN, m.firstT = x[0], t
		m.started = true
	}
	m.lastN, m.lastT = x[0], t
}

func (m *SpecificGrowthRate) Value() float64 {
	if !m.started || m.lastT == m.firstT || m.firstN <= 0 || m.lastN <= 0 {
		return 0
	}
	return (math.Log(m.lastN) - math.Log(m.firstN)) / (m.lastT - m.firstT)
}

func (m *SpecificGrowthRate) Reset() {
	m.firstN, m.firstT = 0, 0
	m.lastN, m.lastT = 0, 0
	m.started = false
}
