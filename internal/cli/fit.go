package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/kadinelbak/CancerGrowthDynamics/internal/fit"
	"github.com/kadinelbak/CancerGrowthDynamics/internal/viz"
)

func fitCmd() *cobra.Command {
	var flags simFlags
	var sweeps []string

	c := &cobra.Command{
		Use:   "fit [model] <day-averages.csv>",
		Short: "Fit model parameters to observed day averages by grid search",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if len(args) == 2 {
				if err := cmd.Flags().Set("model", args[0]); err != nil {
					return err
				}
				path = args[1]
			}
			cfg, err := flags.resolve(cmd)
			if err != nil {
				return err
			}
			if len(sweeps) == 0 {
				return fmt.Errorf("at least one --sweep range is required")
			}

			obs, err := fit.LoadObservations(path)
			if err != nil {
				return err
			}

			var names []string
			var ranges [][]float64
			for _, s := range sweeps {
				name, vals, err := parseSweep(s)
				if err != nil {
					return err
				}
				names = append(names, name)
				ranges = append(ranges, vals)
			}

			f := &fit.ModelFit{
				Model:      cfg.Model,
				Integrator: cfg.Integrator,
				Params:     names,
				Ranges:     ranges,
				Obs:        obs,
				Config:     cfg.SimConfig(),
			}

			res, err := f.Run(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Println(viz.KeyValue("model", cfg.Model))
			fmt.Println(viz.KeyValue("observations", fmt.Sprintf("%d days", len(obs.Days))))
			fmt.Println(viz.KeyValue("evaluations", fmt.Sprintf("%d", res.Evals)))
			fmt.Println(viz.KeyValue("sse", fmt.Sprintf("%.4g", res.SSE)))
			fmt.Println()

			params := make([]string, 0, len(res.Params))
			for name := range res.Params {
				params = append(params, name)
			}
			sort.Strings(params)
			for _, name := range params {
				fmt.Println(viz.KeyValue(name, viz.MetricStyle.Render(fmt.Sprintf("%.6g", res.Params[name]))))
			}
			return nil
		},
	}

	flags.register(c)
	c.Flags().StringArrayVar(&sweeps, "sweep", nil, "parameter range as name=from:to:steps (repeatable)")
	return c
}
