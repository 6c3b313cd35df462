package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kadinelbak/CancerGrowthDynamics/internal/config"
	"github.com/kadinelbak/CancerGrowthDynamics/internal/pipeline"
)

func splitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "split",
		Short: "Split processed plate data by seeding density or cell line",
	}
	cmd.AddCommand(splitDensityCmd(), splitMonocultureCmd())
	return cmd
}

func splitDensityCmd() *cobra.Command {
	var configPath string

	c := &cobra.Command{
		Use:   "density <dir>",
		Short: "Split dataset files into 20k and 30k seeding-density folders",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.DefaultConfig()
			if configPath != "" {
				loaded, err := config.Load(configPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}

			report, err := pipeline.SplitDensity(cmd.Context(), args[0], cfg.DensityLayout(), workers)
			if err != nil {
				return err
			}
			return printReport("split density", report)
		},
	}
	c.Flags().StringVar(&configPath, "config", "", "YAML config with a custom density_layout")
	return c
}

func splitMonocultureCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "monoculture <dir> <out-dir>",
		Short: "Split untreated monoculture wells by seeding density and cell line",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := pipeline.SplitMonoculture(args[0], args[1]); err != nil {
				return err
			}
			fmt.Println("split monoculture: done")
			return nil
		},
	}
}
