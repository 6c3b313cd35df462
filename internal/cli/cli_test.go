package cli

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"github.com/kadinelbak/CancerGrowthDynamics/internal/config"
	"github.com/kadinelbak/CancerGrowthDynamics/internal/growth"
)

func execute(t *testing.T, args ...string) error {
	t.Helper()
	cmd := newRootCmd()
	cmd.SetArgs(args)
	return cmd.Execute()
}

func TestParseParam(t *testing.T) {
	name, value, err := parseParam("r=0.45")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if name != "r" || value != 0.45 {
		t.Errorf("got %s=%f", name, value)
	}

	if _, _, err := parseParam("r"); err == nil {
		t.Error("expected error for missing value")
	}
	if _, _, err := parseParam("r=abc"); err == nil {
		t.Error("expected error for non-numeric value")
	}
}

func TestParseSweep(t *testing.T) {
	name, vals, err := parseSweep("r=0.1:0.5:5")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if name != "r" || len(vals) != 5 {
		t.Fatalf("got %s with %d values", name, len(vals))
	}
	if math.Abs(vals[0]-0.1) > 1e-12 || math.Abs(vals[4]-0.5) > 1e-12 {
		t.Errorf("unexpected endpoints: %v", vals)
	}

	_, vals, err = parseSweep("k=100:200:1")
	if err != nil || len(vals) != 1 || vals[0] != 100 {
		t.Errorf("single-step sweep should return the start, got %v (%v)", vals, err)
	}

	for _, bad := range []string{"r", "r=1:2", "r=1:2:0", "r=a:2:3"} {
		if _, _, err := parseSweep(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}

func TestResolvePrecedence(t *testing.T) {
	var flags simFlags
	cmd := &cobra.Command{Use: "x"}
	flags.register(cmd)

	if err := cmd.Flags().Set("model", "gompertz"); err != nil {
		t.Fatal(err)
	}
	if err := cmd.Flags().Set("param", "r=0.2"); err != nil {
		t.Fatal(err)
	}

	cfg, err := flags.resolve(cmd)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if cfg.Model != "gompertz" {
		t.Errorf("expected gompertz, got %s", cfg.Model)
	}
	if cfg.Params["r"] != 0.2 {
		t.Errorf("expected r=0.2, got %f", cfg.Params["r"])
	}
}

func TestResolveUnknownPreset(t *testing.T) {
	var flags simFlags
	cmd := &cobra.Command{Use: "x"}
	flags.register(cmd)
	flags.preset = "nope"

	if _, err := flags.resolve(cmd); err == nil {
		t.Fatal("expected error for unknown preset")
	}
}

func TestRunCommandNoSave(t *testing.T) {
	err := execute(t, "run", "--no-save", "--model", "exponential", "--duration", "1", "--dt", "0.1")
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
}

func TestRunCommandSaves(t *testing.T) {
	dir := t.TempDir()
	err := execute(t, "run", "--data-dir", dir, "--model", "logistic", "--preset", "20k", "--duration", "2")
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 stored run, got %d", len(entries))
	}
}

func TestRunPositionalModel(t *testing.T) {
	err := execute(t, "run", "gompertz", "--no-save", "--duration", "1", "--dt", "0.1")
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
}

func TestExportCommand(t *testing.T) {
	dir := t.TempDir()
	if err := execute(t, "run", "--data-dir", dir, "--model", "exponential", "--duration", "1", "--dt", "0.1"); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil || len(entries) != 1 {
		t.Fatalf("expected 1 stored run: %v", err)
	}
	runID := entries[0].Name()

	out := filepath.Join(dir, "out.csv")
	if err := execute(t, "export", "csv", runID, "--data-dir", dir, "--out", out); err != nil {
		t.Fatalf("export csv failed: %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("expected exported file: %v", err)
	}

	if err := execute(t, "export", "xml", runID, "--data-dir", dir); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestProcessCommand(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	csv := "Image,Area µm^2\nplate_Day1_Tile-1_A1.tif,288\n"
	if err := os.WriteFile(filepath.Join(src, "plate.csv"), []byte(csv), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := execute(t, "process", src, dst); err != nil {
		t.Fatalf("process failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dst, "plate.csv")); err != nil {
		t.Errorf("expected output file: %v", err)
	}
}

func TestInitialStateFallback(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.InitCells = 0

	model, err := growth.New(cfg.Model)
	if err != nil {
		t.Fatal(err)
	}
	x0 := initialState(cfg, model)
	if len(x0) != 1 || x0[0] != model.DefaultState()[0] {
		t.Errorf("zero init cells should fall back to the model default, got %v", x0)
	}

	cfg.InitCells = 12345
	if got := initialState(cfg, model); got[0] != 12345 {
		t.Errorf("configured init cells should win, got %v", got)
	}
}

func TestEnsembleZeroInitCells(t *testing.T) {
	err := execute(t, "ensemble",
		"--model", "logistic",
		"--n0", "0",
		"--sweep", "r=0.2:0.4:2",
		"--duration", "1", "--dt", "0.1")
	if err != nil {
		t.Fatalf("ensemble with n0=0 failed: %v", err)
	}
}

func TestEnsembleCommand(t *testing.T) {
	err := execute(t, "ensemble",
		"--model", "logistic",
		"--sweep", "r=0.2:0.4:3",
		"--duration", "2", "--dt", "0.1",
		"--workers", "2")
	if err != nil {
		t.Fatalf("ensemble failed: %v", err)
	}
}

func TestFitCommand(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plate_day_averages.csv")
	content := "Day,N Wells,Mean Cells\n0,6,1000\n1,6,1350\n2,6,1822\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	err := execute(t, "fit", path,
		"--model", "exponential",
		"--sweep", "r=0.1:0.5:5",
		"--dt", "0.01")
	if err != nil {
		t.Fatalf("fit failed: %v", err)
	}
}

func TestFitCommandRequiresSweep(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "avg.csv")
	if err := os.WriteFile(path, []byte("Day,Mean Cells\n0,100\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := execute(t, "fit", path, "--model", "exponential"); err == nil {
		t.Fatal("expected error without --sweep")
	}
}

func TestPresetsCommand(t *testing.T) {
	if err := execute(t, "presets"); err != nil {
		t.Fatalf("presets failed: %v", err)
	}
	if err := execute(t, "presets", "logistic"); err != nil {
		t.Fatalf("presets logistic failed: %v", err)
	}
	if err := execute(t, "presets", "nope"); err == nil {
		t.Fatal("expected error for unknown model")
	}
}

func TestListCommandEmptyStore(t *testing.T) {
	if err := execute(t, "list", "--data-dir", t.TempDir()); err != nil {
		t.Fatalf("list failed: %v", err)
	}
}
