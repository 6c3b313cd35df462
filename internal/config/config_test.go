package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Model != "logistic" {
		t.Errorf("expected model logistic, got %s", cfg.Model)
	}
	if cfg.Dt <= 0 {
		t.Error("dt should be positive")
	}
	if cfg.Duration <= 0 {
		t.Error("duration should be positive")
	}
	if cfg.Pipeline.AreaPerCell != 144.0 {
		t.Errorf("expected 144 µm² per cell, got %f", cfg.Pipeline.AreaPerCell)
	}
}

func TestLoadSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := DefaultConfig()
	cfg.Model = "gompertz"
	cfg.Params = map[string]float64{"r": 0.2, "k": 90000}
	cfg.Pipeline.Workers = 4

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if loaded.Model != "gompertz" {
		t.Errorf("expected model gompertz, got %s", loaded.Model)
	}
	if loaded.Params["k"] != 90000 {
		t.Errorf("expected k 90000, got %f", loaded.Params["k"])
	}
	if loaded.Pipeline.Workers != 4 {
		t.Errorf("expected 4 workers, got %d", loaded.Pipeline.Workers)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("model: treated\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Model != "treated" {
		t.Errorf("expected model treated, got %s", cfg.Model)
	}
	if cfg.Dt != DefaultDt {
		t.Errorf("expected default dt, got %f", cfg.Dt)
	}
	if cfg.InitCells != DefaultInitCells {
		t.Errorf("expected default init cells, got %f", cfg.InitCells)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("logistic", "20k")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.InitCells != 20000 {
		t.Errorf("expected 20000 initial cells, got %f", cfg.InitCells)
	}

	// Mutating the copy must not touch the preset table.
	cfg.Params["r"] = 99
	if Presets["logistic"]["20k"].Params["r"] == 99 {
		t.Error("preset table was mutated through the returned copy")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if GetPreset("logistic", "nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if GetPreset("nonexistent", "20k") != nil {
		t.Error("expected nil for nonexistent model")
	}
}

func TestListPresets(t *testing.T) {
	if len(ListPresets("treated")) == 0 {
		t.Error("expected presets for treated")
	}
	if ListPresets("nonexistent") != nil {
		t.Error("expected nil for nonexistent model")
	}
}

func TestDensityLayoutFallback(t *testing.T) {
	cfg := DefaultConfig()
	layout := cfg.DensityLayout()
	if len(layout) != 4 {
		t.Fatalf("expected 4 files in default layout, got %d", len(layout))
	}
	if got := layout["A2780UT.csv"].Classify("A1"); got != "20k" {
		t.Errorf("expected A1 in A2780UT.csv to be 20k, got %q", got)
	}
	if got := layout["A2780cisT.csv"].Classify("D5"); got != "30k" {
		t.Errorf("expected D5 in A2780cisT.csv to be 30k, got %q", got)
	}
}
