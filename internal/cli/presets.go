package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/kadinelbak/CancerGrowthDynamics/internal/config"
	"github.com/kadinelbak/CancerGrowthDynamics/internal/viz"
)

func presetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets [model]",
		Short: "List available configuration presets",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			models := make([]string, 0, len(config.Presets))
			for model := range config.Presets {
				models = append(models, model)
			}
			sort.Strings(models)

			if len(args) == 1 {
				names := config.ListPresets(args[0])
				if names == nil {
					return fmt.Errorf("no presets for model %q", args[0])
				}
				sort.Strings(names)
				for _, name := range names {
					printPreset(args[0], name)
				}
				return nil
			}

			for _, model := range models {
				names := config.ListPresets(model)
				sort.Strings(names)
				for _, name := range names {
					printPreset(model, name)
				}
			}
			return nil
		},
	}
}

func printPreset(model, name string) {
	preset := config.GetPreset(model, name)
	fmt.Printf("%s  %s\n",
		viz.MetricStyle.Render(fmt.Sprintf("%-14s", model)),
		viz.ValueStyle.Render(fmt.Sprintf("%-12s n0=%.0f duration=%.0fd", name, preset.InitCells, preset.Duration)))
}
