package integrators

import (
	"math"
	"testing"

	"github.com/kadinelbak/CancerGrowthDynamics/internal/sim"
)

// expGrowth is dx/dt = r*x, solution x0 * exp(r*t).
type expGrowth struct{ r float64 }

func (g *expGrowth) Derivative(x sim.State, t float64) sim.State {
	return sim.State{g.r * x[0]}
}
func (g *expGrowth) StateDim() int { return 1 }

func integrate(integ sim.Integrator, dyn sim.Dynamics, x0 sim.State, dt, duration float64) sim.State {
	x := x0.Clone()
	steps := int(duration / dt)
	t := 0.0
	for i := 0; i < steps; i++ {
		x = integ.Step(dyn, x, t, dt)
		t += dt
	}
	return x
}

func TestRK4Accuracy(t *testing.T) {
	dyn := &expGrowth{r: 0.5}
	exact := math.Exp(0.5 * 2.0)

	final := integrate(NewRK4(), dyn, sim.State{1.0}, 0.01, 2.0)

	if math.Abs(final[0]-exact) > 1e-6 {
		t.Errorf("rk4: expected %.8f, got %.8f", exact, final[0])
	}
}

func TestRK4MoreAccurateThanEuler(t *testing.T) {
	dyn := &expGrowth{r: 1.0}
	exact := math.Exp(1.0)

	rk4Final := integrate(NewRK4(), dyn, sim.State{1.0}, 0.1, 1.0)
	eulerFinal := integrate(NewEuler(), dyn, sim.State{1.0}, 0.1, 1.0)

	rk4Err := math.Abs(rk4Final[0] - exact)
	eulerErr := math.Abs(eulerFinal[0] - exact)

	if rk4Err >= eulerErr {
		t.Errorf("rk4 error %.2e not smaller than euler error %.2e", rk4Err, eulerErr)
	}
}

func TestRK45AdaptiveStep(t *testing.T) {
	dyn := &expGrowth{r: 0.5}
	integ := NewRK45()

	newX, dtNew, err := integ.StepAdaptive(dyn, sim.State{1.0}, 0, 0.1, 1e-8)
	if err != nil {
		t.Fatalf("adaptive step failed: %v", err)
	}

	exact := math.Exp(0.5 * 0.1)
	if math.Abs(newX[0]-exact) > 1e-6 {
		t.Errorf("rk45: expected %.8f, got %.8f", exact, newX[0])
	}
	if dtNew <= 0 {
		t.Errorf("expected positive next timestep, got %f", dtNew)
	}
}

// stiff grows fast enough that a loose step must be rejected.
type stiff struct{}

func (s *stiff) Derivative(x sim.State, t float64) sim.State { return sim.State{50 * x[0]} }
func (s *stiff) StateDim() int                               { return 1 }

func TestRK45ShrinksStepOnStiffSystem(t *testing.T) {
	integ := NewRK45()

	_, dtNew, err := integ.StepAdaptive(&stiff{}, sim.State{1.0}, 0, 1.0, 1e-9)
	if err != nil {
		t.Fatalf("adaptive step failed: %v", err)
	}
	if dtNew >= 1.0 {
		t.Errorf("expected step to shrink on stiff system, got %f", dtNew)
	}
}

func TestRegistry(t *testing.T) {
	for _, name := range []string{"euler", "rk4", "rk45"} {
		if _, err := New(name); err != nil {
			t.Errorf("expected integrator %s: %v", name, err)
		}
	}
	if _, err := New("leapfrog"); err == nil {
		t.Error("expected error for unknown integrator")
	}
	if len(List()) != 3 {
		t.Errorf("expected 3 integrators, got %d", len(List()))
	}
}

func BenchmarkRK4(b *testing.B) {
	dyn := &expGrowth{r: 0.3}
	integ := NewRK4()
	x := sim.State{1.0}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = integ.Step(dyn, x, 0, 0.01)
		x[0] = 1.0
	}
}

func BenchmarkRK45(b *testing.B) {
	dyn := &expGrowth{r: 0.3}
	integ := NewRK45()
	x := sim.State{1.0}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		nx, _, _ := integ.StepAdaptive(dyn, x, 0, 0.01, 1e-6)
		_ = nx
	}
}
