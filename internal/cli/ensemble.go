package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kadinelbak/CancerGrowthDynamics/internal/ensemble"
	"github.com/kadinelbak/CancerGrowthDynamics/internal/integrators"
	"github.com/kadinelbak/CancerGrowthDynamics/internal/pipeline"
	"github.com/kadinelbak/CancerGrowthDynamics/internal/sim"
	"github.com/kadinelbak/CancerGrowthDynamics/internal/tui"
	"github.com/kadinelbak/CancerGrowthDynamics/internal/viz"
)

func ensembleCmd() *cobra.Command {
	var flags simFlags
	var sweeps []string
	var replicates int
	var noise float64
	var live bool
	var showPlot bool

	c := &cobra.Command{
		Use:   "ensemble [model]",
		Short: "Run a parameter sweep and aggregate the trajectories",
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

			grid := ensemble.Grid{}
			for _, s := range sweeps {
				name, vals, err := parseSweep(s)
				if err != nil {
					return err
				}
				grid.Names = append(grid.Names, name)
				grid.Values = append(grid.Values, vals)
			}

			if replicates < 1 {
				replicates = cfg.Ensemble.Replicates
			}
			if replicates < 1 {
				replicates = 1
			}
			seedStart := cfg.Ensemble.SeedStart
			if cmd.Flags().Changed("seed") {
				seedStart = cfg.Seed
			}
			if !cmd.Flags().Changed("noise") {
				noise = cfg.Ensemble.Noise
			}

			e := &ensemble.Ensemble{
				NewDynamics: func() (sim.Dynamics, error) {
					return buildModel(cfg)
				},
				NewIntegrator: func() (sim.Integrator, error) {
					return integrators.New(cfg.Integrator)
				},
				Grid:       grid,
				Replicates: replicates,
				SeedStart:  seedStart,
				Workers:    pipeline.Workers(workers),
			}
			if replicates > 1 {
				e.InitSD = noise
			}

			model, err := buildModel(cfg)
			if err != nil {
				return err
			}
			x0 := initialState(cfg, model)
			simCfg := cfg.SimConfig()

			var results []ensemble.MemberResult
			if live {
				_, err = tui.Run(func(progress func(done, total int)) (ensemble.Curve, error) {
					e.Progress = progress
					var runErr error
					results, runErr = e.Run(cmd.Context(), x0, simCfg)
					if runErr != nil {
						return ensemble.Curve{}, runErr
					}
					return ensemble.Aggregate(results), nil
				})
			} else {
				results, err = e.Run(cmd.Context(), x0, simCfg)
			}
			if err != nil {
				return err
			}
			curve := ensemble.Aggregate(results)

			fmt.Println(viz.KeyValue("model", cfg.Model))
			fmt.Println(viz.KeyValue("members", fmt.Sprintf("%d", len(results))))
			for _, r := range results {
				if r.Result == nil {
					continue
				}
				fmt.Printf("  member %3d  seed %-6d %v  final %.0f cells\n",
					r.Member.Index, r.Member.Seed, r.Member.Params, r.Result.Final()[0])
			}
			if len(curve.Mean) > 0 {
				last := len(curve.Mean) - 1
				fmt.Println(viz.KeyValue("final mean", fmt.Sprintf("%.0f cells", curve.Mean[last])))
				fmt.Println(viz.KeyValue("final SD", fmt.Sprintf("%.0f cells", curve.SD[last])))
			}

			if showPlot {
				fmt.Println()
				fmt.Println(viz.PlotCurve(curve, "ensemble mean ± SD (cells over days)"))
			}
			return nil
		},
	}

	flags.register(c)
	c.Flags().StringArrayVar(&sweeps, "sweep", nil, "parameter range as name=from:to:steps (repeatable)")
	c.Flags().IntVar(&replicates, "replicates", 0, "stochastic replicates per parameter combination")
	c.Flags().Float64Var(&noise, "noise", 0.05, "relative SD of the seeded initial-count perturbation for replicates")
	c.Flags().BoolVar(&live, "live", false, "show live progress while the ensemble runs")
	c.Flags().BoolVar(&showPlot, "plot", false, "render the aggregated curve as an ASCII chart")
	return c
}
