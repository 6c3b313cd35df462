// Package cli wires the cgd command tree: CSV pipeline steps, growth
// model simulation, ensembles, parameter fitting, and run management.
package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/kadinelbak/CancerGrowthDynamics/internal/pipeline"
	"github.com/kadinelbak/CancerGrowthDynamics/internal/viz"
)

var (
	dataDir string
	workers int
)

func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "cgd",
		Short:        "Cancer growth dynamics: plate data pipeline and growth model simulation",
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&dataDir, "data-dir", "runs", "directory for stored simulation runs")
	cmd.PersistentFlags().IntVar(&workers, "workers", envWorkers(), "worker goroutines for batch steps (0 = one per CPU)")

	cmd.AddCommand(
		processCmd(),
		splitCmd(),
		averagesCmd(),
		headersCmd(),
		runCmd(),
		ensembleCmd(),
		fitCmd(),
		listCmd(),
		plotCmd(),
		exportCmd(),
		presetsCmd(),
	)
	return cmd
}

func envWorkers() int {
	if v := os.Getenv("CGD_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return 0
}

// printReport summarizes a batch step's outcome on stdout. Skips and
// failures are listed so a bad plate file never vanishes silently.
func printReport(step string, report *pipeline.Report) error {
	fmt.Printf("%s: %d file(s) processed\n", step, report.Processed)

	for _, path := range report.Skipped {
		fmt.Println(viz.SubtleStyle.Render(fmt.Sprintf("  skipped %s", path)))
	}
	for path, err := range report.Failed {
		fmt.Println(viz.WarnStyle.Render(fmt.Sprintf("  failed %s: %v", path, err)))
	}

	if len(report.Failed) > 0 {
		return fmt.Errorf("%d file(s) failed", len(report.Failed))
	}
	return nil
}
