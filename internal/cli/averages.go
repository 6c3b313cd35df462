package cli

import (
	"github.com/spf13/cobra"

	"github.com/kadinelbak/CancerGrowthDynamics/internal/pipeline"
)

func averagesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "averages",
		Short: "Compute per-sample, per-day, and per-well statistics",
	}
	cmd.AddCommand(averagesSampleCmd(), averagesDayCmd(), averagesWellCmd())
	return cmd
}

func averagesSampleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sample <dir>",
		Short: "Average tile measurements per day and well",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := pipeline.SampleAverages(cmd.Context(), args[0], workers)
			if err != nil {
				return err
			}
			return printReport("averages sample", report)
		},
	}
}

func averagesDayCmd() *cobra.Command {
	var withCI bool

	c := &cobra.Command{
		Use:   "day <dir>",
		Short: "Average well means per day across the plate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := pipeline.DayAverages(cmd.Context(), args[0], withCI, workers)
			if err != nil {
				return err
			}
			return printReport("averages day", report)
		},
	}
	c.Flags().BoolVar(&withCI, "ci", false, "add 95% confidence interval columns")
	return c
}

func averagesWellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "well <dir>",
		Short: "Summarize each well across all days",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := pipeline.WellSummaries(cmd.Context(), args[0], workers)
			if err != nil {
				return err
			}
			return printReport("averages well", report)
		},
	}
}
