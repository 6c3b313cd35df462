package cli

import (
	"github.com/spf13/cobra"

	"github.com/kadinelbak/CancerGrowthDynamics/internal/pipeline"
)

func headersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "headers",
		Short: "Repair legacy CSV headers",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "fix <dir>",
		Short: "Rewrite mangled header names in place across a tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := pipeline.FixHeaders(cmd.Context(), args[0], workers)
			if err != nil {
				return err
			}
			return printReport("headers fix", report)
		},
	})
	return cmd
}
