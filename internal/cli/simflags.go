package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kadinelbak/CancerGrowthDynamics/internal/config"
	"github.com/kadinelbak/CancerGrowthDynamics/internal/growth"
	"github.com/kadinelbak/CancerGrowthDynamics/internal/integrators"
	"github.com/kadinelbak/CancerGrowthDynamics/internal/sim"
)

// simFlags are the simulation settings shared by run, ensemble, and fit.
type simFlags struct {
	model      string
	integrator string
	preset     string
	configPath string
	dt         float64
	duration   float64
	seed       int64
	initCells  float64
	params     []string
}

func (f *simFlags) register(c *cobra.Command) {
	c.Flags().StringVar(&f.model, "model", "logistic", "growth model: "+strings.Join(growth.List(), ", "))
	c.Flags().StringVar(&f.integrator, "integrator", "rk4", "integrator: "+strings.Join(integrators.List(), ", "))
	c.Flags().StringVar(&f.preset, "preset", "", "named preset for the chosen model")
	c.Flags().StringVar(&f.configPath, "config", "", "YAML config file")
	c.Flags().Float64Var(&f.dt, "dt", config.DefaultDt, "time step in days")
	c.Flags().Float64Var(&f.duration, "duration", config.DefaultDuration, "simulated time in days")
	c.Flags().Int64Var(&f.seed, "seed", 0, "random seed recorded with the run")
	c.Flags().Float64Var(&f.initCells, "n0", config.DefaultInitCells, "initial cell count")
	c.Flags().StringArrayVar(&f.params, "param", nil, "model parameter as name=value (repeatable)")
}

// resolve layers config sources: file, then preset, then explicit flags.
func (f *simFlags) resolve(c *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if f.configPath != "" {
		loaded, err := config.Load(f.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if f.preset != "" {
		model := cfg.Model
		if c.Flags().Changed("model") {
			model = f.model
		}
		preset := config.GetPreset(model, f.preset)
		if preset == nil {
			return nil, fmt.Errorf("no preset %q for model %q", f.preset, model)
		}
		preset.Pipeline = cfg.Pipeline
		preset.Ensemble = cfg.Ensemble
		cfg = preset
	}

	flags := c.Flags()
	if flags.Changed("model") {
		cfg.Model = f.model
	}
	if flags.Changed("integrator") {
		cfg.Integrator = f.integrator
	}
	if flags.Changed("dt") {
		cfg.Dt = f.dt
	}
	if flags.Changed("duration") {
		cfg.Duration = f.duration
	}
	if flags.Changed("seed") {
		cfg.Seed = f.seed
	}
	if flags.Changed("n0") {
		cfg.InitCells = f.initCells
	}

	for _, p := range f.params {
		name, value, err := parseParam(p)
		if err != nil {
			return nil, err
		}
		if cfg.Params == nil {
			cfg.Params = make(map[string]float64)
		}
		cfg.Params[name] = value
	}

	return cfg, nil
}

func parseParam(s string) (string, float64, error) {
	name, raw, ok := strings.Cut(s, "=")
	if !ok {
		return "", 0, fmt.Errorf("invalid --param %q, want name=value", s)
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return "", 0, fmt.Errorf("invalid --param %q: %w", s, err)
	}
	return strings.TrimSpace(name), value, nil
}

// buildModel constructs and parameterizes the configured growth model.
func buildModel(cfg *config.Config) (growth.Model, error) {
	model, err := growth.New(cfg.Model)
	if err != nil {
		return nil, err
	}
	for name, value := range cfg.Params {
		if err := model.SetParam(name, value); err != nil {
			return nil, err
		}
	}
	return model, nil
}

// initialState returns the configured starting count, falling back to
// the model's default when the config carries none.
func initialState(cfg *config.Config, model growth.Model) sim.State {
	if cfg.InitCells > 0 {
		return sim.State{cfg.InitCells}
	}
	return model.DefaultState()
}

// simulate runs one trajectory with the default metric set attached.
func simulate(c *cobra.Command, cfg *config.Config) (*sim.Result, error) {
	model, err := buildModel(cfg)
	if err != nil {
		return nil, err
	}
	integ, err := integrators.New(cfg.Integrator)
	if err != nil {
		return nil, err
	}

	s := sim.New(model, integ)
	for _, m := range growth.DefaultMetrics() {
		s.AddMetric(m)
	}

	return s.Run(c.Context(), initialState(cfg, model), cfg.SimConfig())
}

// parseSweep parses a name=from:to:steps range specification.
func parseSweep(s string) (string, []float64, error) {
	name, raw, ok := strings.Cut(s, "=")
	if !ok {
		return "", nil, fmt.Errorf("invalid --sweep %q, want name=from:to:steps", s)
	}
	parts := strings.Split(raw, ":")
	if len(parts) != 3 {
		return "", nil, fmt.Errorf("invalid --sweep %q, want name=from:to:steps", s)
	}
	from, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return "", nil, fmt.Errorf("invalid --sweep %q: %w", s, err)
	}
	to, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return "", nil, fmt.Errorf("invalid --sweep %q: %w", s, err)
	}
	steps, err := strconv.Atoi(parts[2])
	if err != nil || steps < 1 {
		return "", nil, fmt.Errorf("invalid --sweep %q: steps must be a positive integer", s)
	}

	vals := make([]float64, steps)
	if steps == 1 {
		vals[0] = from
	} else {
		delta := (to - from) / float64(steps-1)
		for i := range vals {
			vals[i] = from + float64(i)*delta
		}
	}
	return strings.TrimSpace(name), vals, nil
}
