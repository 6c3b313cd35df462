// Package config holds the YAML configuration for pipeline and
// simulation runs, plus named presets for common experiments.
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kadinelbak/CancerGrowthDynamics/internal/sim"
	"github.com/kadinelbak/CancerGrowthDynamics/internal/well"
)

const (
	DefaultDt        = 0.05
	DefaultDuration  = 14.0
	DefaultInitCells = 20000.0
	DefaultSeedStart = 42
)

type Config struct {
	Model      string             `yaml:"model"`
	Integrator string             `yaml:"integrator"`
	Dt         float64            `yaml:"dt"`
	Duration   float64            `yaml:"duration"`
	Seed       int64              `yaml:"seed"`
	InitCells  float64            `yaml:"init_cells"`
	Params     map[string]float64 `yaml:"params,omitempty"`
	Pipeline   PipelineConfig     `yaml:"pipeline"`
	Ensemble   EnsembleConfig     `yaml:"ensemble"`
}

// PipelineConfig controls CSV processing.
type PipelineConfig struct {
	AreaPerCell   float64            `yaml:"area_per_cell"`
	Workers       int                `yaml:"workers"`
	DensityLayout well.DensityLayout `yaml:"density_layout,omitempty"`
}

// EnsembleConfig controls batch simulation runs. Noise is the relative SD
// of the seeded initial-count perturbation applied to stochastic
// replicates.
type EnsembleConfig struct {
	Replicates int     `yaml:"replicates"`
	SeedStart  int64   `yaml:"seed_start"`
	Workers    int     `yaml:"workers"`
	Noise      float64 `yaml:"noise"`
}

func DefaultConfig() *Config {
	return &Config{
		Model:      "logistic",
		Integrator: "rk4",
		Dt:         DefaultDt,
		Duration:   DefaultDuration,
		InitCells:  DefaultInitCells,
		Pipeline: PipelineConfig{
			AreaPerCell: 144.0,
		},
		Ensemble: EnsembleConfig{
			Replicates: 1,
			SeedStart:  DefaultSeedStart,
			Noise:      0.05,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// SimConfig converts to the simulation-layer config.
func (c *Config) SimConfig() sim.Config {
	cfg := sim.DefaultConfig()
	cfg.Dt = c.Dt
	cfg.Duration = c.Duration
	cfg.Seed = c.Seed
	return cfg
}

// DensityLayout returns the configured plate layout, falling back to the
// default A2780 experiment layout when the config carries none.
func (c *Config) DensityLayout() well.DensityLayout {
	if len(c.Pipeline.DensityLayout) > 0 {
		return c.Pipeline.DensityLayout
	}
	return DefaultDensityLayout()
}

// DefaultDensityLayout maps each measurement file to the wells seeded at
// 20k and 30k cells in the A2780 cisplatin experiment.
func DefaultDensityLayout() well.DensityLayout {
	return well.DensityLayout{
		"A2780cisT.csv": {
			Low:  []string{"C4", "C5", "C6"},
			High: []string{"D4", "D5", "D6"},
		},
		"A2780cisUT.csv": {
			Low:  []string{"A4", "A5", "A6"},
			High: []string{"B4", "B5", "B6"},
		},
		"A2780UT.csv": {
			Low:  []string{"A1", "A2", "A3"},
			High: []string{"B1", "B2", "B3"},
		},
		"A2780T.csv": {
			Low:  []string{"C1", "C2", "C3"},
			High: []string{"D1", "D2", "D3"},
		},
	}
}
