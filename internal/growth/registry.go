package growth

import (
	"fmt"
	"sort"

	"github.com/kadinelbak/CancerGrowthDynamics/internal/sim"
)

// Model is the combined contract growth models satisfy: dynamics plus
// named-parameter access and a sensible starting state.
type Model interface {
	sim.Dynamics
	sim.Configurable
	DefaultState() sim.State
}

var factories = map[string]func() Model{
	"exponential": func() Model { return NewExponential() },
	"logistic":    func() Model { return NewLogistic() },
	"gompertz":    func() Model { return NewGompertz() },
	"treated":     func() Model { return NewTreated() },
}

// New returns a fresh model instance by name.
func New(name string) (Model, error) {
	fn, ok := factories[name]
	if !ok {
		return nil, fmt.Errorf("unknown model: %s", name)
	}
	return fn(), nil
}

func List() []string {
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultMetrics returns the metric set recorded for every run.
func DefaultMetrics() []sim.Metric {
	return []sim.Metric{
		NewDoublingTime(),
		NewPeakCount(),
		NewSpecificGrowthRate(),
	}
}
