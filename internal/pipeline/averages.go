package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/kadinelbak/CancerGrowthDynamics/internal/dataset"
	"github.com/kadinelbak/CancerGrowthDynamics/internal/stats"
	"github.com/kadinelbak/CancerGrowthDynamics/internal/well"
)

// AveragesDir is the subfolder holding per-sample and per-day outputs.
const AveragesDir = "Averages"

// sample average file suffixes
const (
	sampleSuffix = "_sample_averages"
	daySuffix    = "_day_averages"
	wellSuffix   = "_well_summary"
)

// valueColumn finds the measurement column: normalized files use "Cells",
// legacy files still carry "Area µm^2".
func valueColumn(t *dataset.Table) int {
	if idx := t.ColumnIndex(dataset.ColumnCells); idx >= 0 {
		return idx
	}
	return t.ColumnIndex(dataset.ColumnArea)
}

// SampleAverages computes per-(Day, Well) statistics over tiles for every
// CSV directly inside dir, writing <name>_sample_averages.csv files into
// an Averages subfolder. Returns the report of the batch.
func SampleAverages(ctx context.Context, dir string, workers int) (*Report, error) {
	files, err := ListCSVs(dir)
	if err != nil {
		return nil, err
	}
	// Do not re-average our own outputs on repeated runs.
	files = excludeDerived(files)

	outDir := filepath.Join(dir, AveragesDir)
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, err
	}

	report := ForEachFile(ctx, files, workers, func(path string) error {
		_, err := sampleAveragesFile(path, outDir)
		return err
	})
	return report, nil
}

func excludeDerived(files []string) []string {
	kept := files[:0]
	for _, f := range files {
		s := stem(f)
		if hasSuffix(s, sampleSuffix) || hasSuffix(s, daySuffix) || hasSuffix(s, wellSuffix) {
			continue
		}
		kept = append(kept, f)
	}
	return kept
}

func hasSuffix(s, suffix string) bool {
	return len(s) >= len(suffix) && s[len(s)-len(suffix):] == suffix
}

type dayWell struct {
	day  int
	well string
}

func sampleAveragesFile(path, outDir string) (int, error) {
	table, err := dataset.Read(path)
	if err != nil {
		return 0, err
	}

	valIdx := valueColumn(table)
	if valIdx < 0 {
		return 0, fmt.Errorf("%w: no measurement column in %s", ErrSkip, path)
	}
	imageIdx := table.ColumnIndex(dataset.ColumnImage)
	if imageIdx < 0 {
		imageIdx = 0
	}

	tiles := make(map[dayWell][]float64)
	for _, row := range table.Rows {
		if imageIdx >= len(row) || valIdx >= len(row) {
			continue
		}
		day, okDay := well.ParseDay(row[imageIdx])
		w, okWell := well.ParseWell(row[imageIdx])
		if !okDay || !okWell {
			continue
		}
		v, err := strconv.ParseFloat(row[valIdx], 64)
		if err != nil {
			continue
		}
		k := dayWell{day, w}
		tiles[k] = append(tiles[k], v)
	}

	keys := make([]dayWell, 0, len(tiles))
	for k := range tiles {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].day != keys[j].day {
			return keys[i].day < keys[j].day
		}
		return well.Less(keys[i].well, keys[j].well)
	})

	out := &dataset.Table{
		Header: []string{"Day", "Well", "N Tiles", "Mean Cells", "SD Cells", "SEM Cells"},
	}
	for _, k := range keys {
		s := stats.Describe(tiles[k])
		out.Rows = append(out.Rows, []string{
			strconv.Itoa(k.day),
			k.well,
			strconv.Itoa(s.N),
			strconv.FormatFloat(s.Mean, 'f', 6, 64),
			strconv.FormatFloat(s.SD, 'f', 6, 64),
			strconv.FormatFloat(s.SEM, 'f', 6, 64),
		})
	}

	outPath := filepath.Join(outDir, stem(path)+sampleSuffix+".csv")
	if err := dataset.Write(outPath, out); err != nil {
		return 0, err
	}
	return len(out.Rows), nil
}

// WellSummaries aggregates every measurement of a well across all days and
// tiles into one row per well, mirroring the intermittent-data summary
// format (values rounded to two decimals).
func WellSummaries(ctx context.Context, dir string, workers int) (*Report, error) {
	files, err := ListCSVs(dir)
	if err != nil {
		return nil, err
	}
	files = excludeDerived(files)

	outDir := filepath.Join(dir, AveragesDir)
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, err
	}

	report := ForEachFile(ctx, files, workers, func(path string) error {
		return wellSummaryFile(path, outDir)
	})
	return report, nil
}

func wellSummaryFile(path, outDir string) error {
	table, err := dataset.Read(path)
	if err != nil {
		return err
	}

	valIdx := valueColumn(table)
	if valIdx < 0 {
		return fmt.Errorf("%w: no measurement column in %s", ErrSkip, path)
	}
	imageIdx := table.ColumnIndex(dataset.ColumnImage)
	if imageIdx < 0 {
		imageIdx = 0
	}

	byWell := make(map[string][]float64)
	for _, row := range table.Rows {
		if imageIdx >= len(row) || valIdx >= len(row) {
			continue
		}
		w, ok := well.ParseWell(row[imageIdx])
		if !ok {
			continue
		}
		v, err := strconv.ParseFloat(row[valIdx], 64)
		if err != nil {
			continue
		}
		byWell[w] = append(byWell[w], v)
	}

	wells := make([]string, 0, len(byWell))
	for w := range byWell {
		wells = append(wells, w)
	}
	sort.Slice(wells, func(i, j int) bool { return well.Less(wells[i], wells[j]) })

	out := &dataset.Table{
		Header: []string{"Well", "Average_Cells", "StdDev_Cells", "Total_Measurements", "Min_Cells", "Max_Cells"},
	}
	for _, w := range wells {
		s := stats.Describe(byWell[w])
		out.Rows = append(out.Rows, []string{
			w,
			strconv.FormatFloat(stats.Round(s.Mean, 2), 'f', 2, 64),
			strconv.FormatFloat(stats.Round(s.SD, 2), 'f', 2, 64),
			strconv.Itoa(s.N),
			strconv.FormatFloat(stats.Round(s.Min, 2), 'f', 2, 64),
			strconv.FormatFloat(stats.Round(s.Max, 2), 'f', 2, 64),
		})
	}

	return dataset.Write(filepath.Join(outDir, stem(path)+wellSuffix+".csv"), out)
}
