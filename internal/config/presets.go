package config

var Presets = map[string]map[string]*Config{
	"exponential": {
		"naive": {
			Model: "exponential", Integrator: "rk4", Dt: 0.05, Duration: 14.0,
			InitCells: 20000,
			Params:    map[string]float64{"r": 0.35},
		},
		"fast": {
			Model: "exponential", Integrator: "rk45", Dt: 0.05, Duration: 7.0,
			InitCells: 20000,
			Params:    map[string]float64{"r": 0.6},
		},
	},
	"logistic": {
		"20k": {
			Model: "logistic", Integrator: "rk4", Dt: 0.05, Duration: 14.0,
			InitCells: 20000,
			Params:    map[string]float64{"r": 0.45, "k": 150000},
		},
		"30k": {
			Model: "logistic", Integrator: "rk4", Dt: 0.05, Duration: 14.0,
			InitCells: 30000,
			Params:    map[string]float64{"r": 0.45, "k": 150000},
		},
		"confluent": {
			Model: "logistic", Integrator: "rk45", Dt: 0.05, Duration: 21.0,
			InitCells: 100000,
			Params:    map[string]float64{"r": 0.45, "k": 150000},
		},
	},
	"gompertz": {
		"slow": {
			Model: "gompertz", Integrator: "rk4", Dt: 0.05, Duration: 21.0,
			InitCells: 20000,
			Params:    map[string]float64{"r": 0.1, "k": 150000},
		},
		"standard": {
			Model: "gompertz", Integrator: "rk4", Dt: 0.05, Duration: 14.0,
			InitCells: 20000,
			Params:    map[string]float64{"r": 0.25, "k": 150000},
		},
	},
	"treated": {
		"continuous": {
			Model: "treated", Integrator: "rk45", Dt: 0.05, Duration: 14.0,
			InitCells: 20000,
			Params:    map[string]float64{"r": 0.45, "k": 150000, "kill": 0.3, "dose_start": 3.0},
		},
		"pulsed": {
			Model: "treated", Integrator: "rk45", Dt: 0.05, Duration: 14.0,
			InitCells: 20000,
			Params: map[string]float64{
				"r": 0.45, "k": 150000, "kill": 0.5,
				"dose_start": 3.0, "dose_period": 2.0, "dose_duration": 0.5,
			},
		},
	},
}

// GetPreset returns a copy of the named preset, or nil if it does not
// exist. The copy can be mutated by flag overrides without touching the
// preset table.
func GetPreset(model, name string) *Config {
	presets, ok := Presets[model]
	if !ok {
		return nil
	}
	preset, ok := presets[name]
	if !ok {
		return nil
	}

	cp := *preset
	cp.Params = make(map[string]float64, len(preset.Params))
	for k, v := range preset.Params {
		cp.Params[k] = v
	}
	return &cp
}

func ListPresets(model string) []string {
	presets, ok := Presets[model]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	return names
}
