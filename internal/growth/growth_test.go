package growth

import (
	"context"
	"math"
	"testing"

	"github.com/kadinelbak/CancerGrowthDynamics/internal/integrators"
	"github.com/kadinelbak/CancerGrowthDynamics/internal/sim"
)

func runModel(t *testing.T, m Model, n0, dt, duration float64) *sim.Result {
	t.Helper()
	s := sim.New(m, integrators.NewRK4())
	result, err := s.Run(context.Background(), sim.State{n0}, sim.Config{Dt: dt, Duration: duration})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	return result
}

func TestExponentialMatchesAnalytic(t *testing.T) {
	m := NewExponential()
	m.Rate = 0.5

	result := runModel(t, m, 1000, 0.01, 4.0)

	exact := 1000 * math.Exp(0.5*4.0)
	final := result.Final()[0]
	if math.Abs(final-exact)/exact > 1e-6 {
		t.Errorf("expected %.2f, got %.2f", exact, final)
	}
}

func TestLogisticMatchesClosedForm(t *testing.T) {
	m := NewLogistic()
	m.Rate = 0.8
	m.Capacity = 100000
	n0 := 5000.0

	result := runModel(t, m, n0, 0.01, 10.0)

	// N(t) = K / (1 + (K/N0 - 1) e^{-rt})
	tEnd := result.Times[len(result.Times)-1]
	exact := m.Capacity / (1 + (m.Capacity/n0-1)*math.Exp(-m.Rate*tEnd))
	final := result.Final()[0]
	if math.Abs(final-exact)/exact > 1e-5 {
		t.Errorf("expected %.2f, got %.2f", exact, final)
	}
}

func TestGompertzApproachesCapacity(t *testing.T) {
	m := NewGompertz()
	m.Rate = 0.5
	m.Capacity = 80000

	result := runModel(t, m, 2000, 0.01, 40.0)

	final := result.Final()[0]
	if math.Abs(final-m.Capacity)/m.Capacity > 0.01 {
		t.Errorf("expected N near K=%.0f, got %.2f", m.Capacity, final)
	}
}

func TestGompertzExtinctStaysExtinct(t *testing.T) {
	m := NewGompertz()
	dx := m.Derivative(sim.State{0}, 0)
	if dx[0] != 0 {
		t.Errorf("expected zero derivative at N=0, got %f", dx[0])
	}
}

func TestTreatedStrongKillShrinksPopulation(t *testing.T) {
	m := NewTreated()
	m.Rate = 0.3
	m.Kill = 2.0
	m.DoseStart = 0

	result := runModel(t, m, 20000, 0.01, 10.0)

	final := result.Final()[0]
	if final >= 20000 {
		t.Errorf("expected population decline under strong kill, got %.2f", final)
	}
}

func TestTreatedExposureSchedule(t *testing.T) {
	m := NewTreated()
	m.DoseStart = 2.0
	m.DosePeriod = 4.0
	m.DoseDuration = 1.0

	tests := []struct {
		t    float64
		want float64
	}{
		{0.0, 0}, // before first dose
		{2.5, 1}, // inside first pulse
		{3.5, 0}, // between pulses
		{6.5, 1}, // inside second pulse
		{7.5, 0},
	}
	for _, tt := range tests {
		if got := m.Exposure(tt.t); got != tt.want {
			t.Errorf("Exposure(%.1f) = %.0f, want %.0f", tt.t, got, tt.want)
		}
	}

	// Continuous dosing: always exposed after dose start.
	m.DosePeriod = 0
	if m.Exposure(100) != 1 {
		t.Error("continuous schedule should stay exposed")
	}
	if m.Exposure(1) != 0 {
		t.Error("no exposure before dose start")
	}
}

func TestSetParamUnknown(t *testing.T) {
	for _, name := range List() {
		m, err := New(name)
		if err != nil {
			t.Fatalf("registry missing %s: %v", name, err)
		}
		if err := m.SetParam("bogus", 1.0); err == nil {
			t.Errorf("%s: expected error for unknown param", name)
		}
	}
}

func TestSetParamBounds(t *testing.T) {
	m := NewLogistic()
	if err := m.SetParam("k", -5); err == nil {
		t.Error("expected bounds error for negative capacity")
	}
	tr := NewTreated()
	if err := tr.SetParam("kill", -1); err == nil {
		t.Error("expected bounds error for negative kill rate")
	}
}

func TestParamRoundTrip(t *testing.T) {
	for _, name := range List() {
		m, _ := New(name)
		for param := range m.GetParams() {
			if err := m.SetParam(param, 1.5); err != nil {
				t.Errorf("%s: SetParam(%q) failed: %v", name, param, err)
			}
		}
		if got := m.GetParams(); got == nil {
			t.Errorf("%s: GetParams returned nil", name)
		}
	}
}

func TestDoublingTimeMetric(t *testing.T) {
	m := NewExponential()
	m.Rate = math.Ln2 // doubles every 1 time unit

	s := sim.New(m, integrators.NewRK4())
	metric := NewDoublingTime()
	s.AddMetric(metric)

	_, err := s.Run(context.Background(), sim.State{1000}, sim.Config{Dt: 0.001, Duration: 3.0})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if math.Abs(metric.Value()-1.0) > 0.01 {
		t.Errorf("expected doubling time ~1.0, got %f", metric.Value())
	}
}

func TestSpecificGrowthRateMetric(t *testing.T) {
	m := NewExponential()
	m.Rate = 0.4

	s := sim.New(m, integrators.NewRK4())
	metric := NewSpecificGrowthRate()
	s.AddMetric(metric)

	if _, err := s.Run(context.Background(), sim.State{1000}, sim.Config{Dt: 0.01, Duration: 5.0}); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if math.Abs(metric.Value()-0.4) > 0.01 {
		t.Errorf("expected rate ~0.4, got %f", metric.Value())
	}
}
