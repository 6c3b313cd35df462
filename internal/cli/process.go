package cli

import (
	"github.com/spf13/cobra"

	"github.com/kadinelbak/CancerGrowthDynamics/internal/pipeline"
)

func processCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "process <src-dir> <dst-dir>",
		Short: "Convert measured areas to cell counts (144 µm² per cell)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := pipeline.Normalize(cmd.Context(), args[0], args[1], workers)
			if err != nil {
				return err
			}
			return printReport("process", report)
		},
	}
}
