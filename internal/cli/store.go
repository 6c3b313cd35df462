package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/kadinelbak/CancerGrowthDynamics/internal/sim"
	"github.com/kadinelbak/CancerGrowthDynamics/internal/storage"
	"github.com/kadinelbak/CancerGrowthDynamics/internal/viz"
)

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored simulation runs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			runs, err := storage.New(dataDir).List()
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Println("no stored runs")
				return nil
			}

			sort.Slice(runs, func(i, j int) bool {
				return runs[i].Timestamp.Before(runs[j].Timestamp)
			})

			for _, run := range runs {
				line := fmt.Sprintf("%-28s %-12s %s", run.ID, run.Model,
					run.Timestamp.Format("2006-01-02 15:04:05"))
				fmt.Println(line)
			}
			return nil
		},
	}
}

func plotCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "plot <run-id>",
		Short: "Render a stored run as an ASCII chart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := storage.New(dataDir)

			meta, err := store.Load(args[0])
			if err != nil {
				return err
			}
			states, times, err := store.LoadStates(args[0])
			if err != nil {
				return err
			}
			if len(states) == 0 {
				return fmt.Errorf("run %s has no trajectory data", args[0])
			}

			fmt.Println(viz.KeyValue("run", meta.ID))
			fmt.Println(viz.KeyValue("model", meta.Model))
			fmt.Println(viz.KeyValue("samples", fmt.Sprintf("%d", len(states))))
			fmt.Println()

			result := &sim.Result{States: states, Times: times, Metrics: meta.Metrics}
			fmt.Println(viz.PlotGrowth(result, "cells over time (days)"))
			fmt.Println()
			fmt.Print(viz.MetricsSummary(meta.Metrics))
			return nil
		},
	}
}

func exportCmd() *cobra.Command {
	var outPath string

	c := &cobra.Command{
		Use:   "export <json|csv> <run-id>",
		Short: "Export a stored run as JSON or CSV",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, runID := args[0], args[1]
			store := storage.New(dataDir)

			meta, err := store.Load(runID)
			if err != nil {
				return err
			}
			states, times, err := store.LoadStates(runID)
			if err != nil {
				return err
			}

			result := &sim.Result{States: states, Times: times, Metrics: meta.Metrics}
			switch format {
			case "json":
				if outPath != "" {
					return storage.ExportJSON(outPath, meta.Model, meta.Integrator, meta.Dt, meta.Duration, meta.Params, result)
				}
				return storage.ExportJSONStdout(meta.Model, meta.Integrator, meta.Dt, meta.Duration, meta.Params, result)
			case "csv":
				if outPath != "" {
					return storage.ExportCSV(outPath, result)
				}
				return storage.ExportCSVStdout(result)
			default:
				return fmt.Errorf("unknown export format %q, want json or csv", format)
			}
		},
	}
	c.Flags().StringVarP(&outPath, "out", "o", "", "write JSON to a file instead of stdout")
	return c
}
