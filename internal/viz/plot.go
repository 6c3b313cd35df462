// Package viz renders growth curves as terminal plots and provides the
// lipgloss styles shared by the CLI and TUI output.
package viz

import (
	"fmt"
	"sort"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/kadinelbak/CancerGrowthDynamics/internal/ensemble"
	"github.com/kadinelbak/CancerGrowthDynamics/internal/sim"
)

const (
	plotHeight = 10
	plotWidth  = 80
)

// PlotGrowth renders a cell-count trajectory as an ASCII chart.
func PlotGrowth(result *sim.Result, caption string) string {
	if result == nil || len(result.States) == 0 {
		return ""
	}

	data := make([]float64, len(result.States))
	for i, s := range result.States {
		data[i] = s[0]
	}

	return asciigraph.Plot(data,
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.Caption(caption),
	)
}

// PlotCurve renders an ensemble mean with its one-SD band as a
// three-series chart.
func PlotCurve(curve ensemble.Curve, caption string) string {
	if len(curve.Mean) == 0 {
		return ""
	}

	upper := make([]float64, len(curve.Mean))
	lower := make([]float64, len(curve.Mean))
	for i, m := range curve.Mean {
		upper[i] = m + curve.SD[i]
		lower[i] = m - curve.SD[i]
	}

	return asciigraph.PlotMany([][]float64{lower, curve.Mean, upper},
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.Caption(caption),
	)
}

// PlotSeries renders a raw value series, used for observed day averages.
func PlotSeries(values []float64, caption string) string {
	if len(values) == 0 {
		return ""
	}
	return asciigraph.Plot(values,
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.Caption(caption),
	)
}

// MetricsSummary formats run metrics as aligned key/value lines.
func MetricsSummary(metrics map[string]float64) string {
	if len(metrics) == 0 {
		return ""
	}

	var b strings.Builder
	for _, name := range sortedKeys(metrics) {
		b.WriteString(KeyValue(name, MetricStyle.Render(fmt.Sprintf("%.4f", metrics[name]))))
		b.WriteString("\n")
	}
	return b.String()
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
