package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kadinelbak/CancerGrowthDynamics/internal/storage"
	"github.com/kadinelbak/CancerGrowthDynamics/internal/viz"
)

func runCmd() *cobra.Command {
	var flags simFlags
	var noSave bool
	var showPlot bool

	c := &cobra.Command{
		Use:   "run [model]",
		Short: "Simulate one growth trajectory and store the run",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				if err := cmd.Flags().Set("model", args[0]); err != nil {
					return err
				}
			}
			cfg, err := flags.resolve(cmd)
			if err != nil {
				return err
			}

			result, err := simulate(cmd, cfg)
			if err != nil {
				return err
			}

			fmt.Println(viz.KeyValue("model", cfg.Model))
			fmt.Println(viz.KeyValue("integrator", cfg.Integrator))
			fmt.Println(viz.KeyValue("duration", fmt.Sprintf("%.1f days", cfg.Duration)))
			fmt.Println(viz.KeyValue("final cells", fmt.Sprintf("%.0f", result.Final()[0])))
			fmt.Println()
			fmt.Print(viz.MetricsSummary(result.Metrics))

			if showPlot {
				fmt.Println()
				fmt.Println(viz.PlotGrowth(result, "cells over time (days)"))
			}

			if noSave {
				return nil
			}

			store := storage.New(dataDir)
			runID, err := store.Save(cfg.Model, cfg.Integrator, cfg.Dt, cfg.Duration, cfg.Seed, cfg.Params, result)
			if err != nil {
				return err
			}
			fmt.Println()
			fmt.Println(viz.KeyValue("saved", runID))
			return nil
		},
	}

	flags.register(c)
	c.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")
	c.Flags().BoolVar(&showPlot, "plot", false, "render the trajectory as an ASCII chart")
	return c
}
