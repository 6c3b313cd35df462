package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/kadinelbak/CancerGrowthDynamics/internal/dataset"
	"github.com/kadinelbak/CancerGrowthDynamics/internal/well"
)

// Seeding-density output folder names for the intermittent datasets.
const (
	DensityDirLow  = "20k_seeding_density"
	DensityDirHigh = "30k_seeding_density"
)

// SplitDensity splits each configured dataset in dir into its 20k and 30k
// seeding-density halves by well membership. Files named in the layout but
// absent from dir are reported as skipped. Rows whose well belongs to
// neither arm are dropped.
func SplitDensity(ctx context.Context, dir string, layout well.DensityLayout, workers int) (*Report, error) {
	names := make([]string, 0, len(layout))
	for name := range layout {
		names = append(names, name)
	}
	sort.Strings(names)

	files := make([]string, 0, len(names))
	for _, name := range names {
		files = append(files, filepath.Join(dir, name))
	}

	report := ForEachFile(ctx, files, workers, func(path string) error {
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("%w: %s not found", ErrSkip, path)
		}
		return splitDensityFile(dir, path, layout[filepath.Base(path)])
	})
	return report, nil
}

func splitDensityFile(dir, path string, wells well.DensityWells) error {
	table, err := dataset.Read(path)
	if err != nil {
		return err
	}

	imageIdx := table.ColumnIndex(dataset.ColumnImage)
	if imageIdx < 0 {
		return fmt.Errorf("%w: no %q column in %s", ErrSkip, dataset.ColumnImage, path)
	}

	low := &dataset.Table{Header: table.Header}
	high := &dataset.Table{Header: table.Header}

	for _, row := range table.Rows {
		if imageIdx >= len(row) {
			continue
		}
		w, ok := well.ParseWell(row[imageIdx])
		if !ok {
			continue
		}
		switch wells.Classify(w) {
		case "20k":
			low.Rows = append(low.Rows, row)
		case "30k":
			high.Rows = append(high.Rows, row)
		}
	}

	name := filepath.Base(path)
	for sub, t := range map[string]*dataset.Table{
		DensityDirLow:  low,
		DensityDirHigh: high,
	} {
		outDir := filepath.Join(dir, sub)
		if err := os.MkdirAll(outDir, 0755); err != nil {
			return err
		}
		if err := dataset.Write(filepath.Join(outDir, name), t); err != nil {
			return err
		}
	}
	return nil
}

// SplitMonoculture buckets every row of the CSVs in dir into four outputs
// under outRoot: {20k,30k}/{A2780Naive,A2780cis}.csv. The first non-empty
// header becomes canonical; rows with a different column count or an
// unclassifiable well are dropped. Output rows are sorted by image name
// for determinism.
func SplitMonoculture(dir, outRoot string) error {
	files, err := ListCSVs(dir)
	if err != nil {
		return err
	}

	type key struct{ seeding, line string }
	buckets := map[key][][]string{
		{"20k", well.LineNaive}: {},
		{"20k", well.LineCis}:   {},
		{"30k", well.LineNaive}: {},
		{"30k", well.LineCis}:   {},
	}

	var header []string
	for _, path := range files {
		table, err := dataset.Read(path)
		if err != nil {
			return err
		}
		if len(table.Header) == 0 {
			continue
		}
		if header == nil {
			header = table.Header
		}

		for _, row := range table.Rows {
			if len(row) != len(header) || len(row) == 0 {
				continue
			}
			w, ok := well.ParseWell(row[0])
			if !ok {
				continue
			}
			seeding, line, ok := well.ClassifyMonoculture(w)
			if !ok {
				continue
			}
			k := key{seeding, line}
			buckets[k] = append(buckets[k], row)
		}
	}

	if header == nil {
		return fmt.Errorf("%w: no CSV data found in %s", ErrSkip, dir)
	}

	for k, rows := range buckets {
		sort.Slice(rows, func(i, j int) bool { return rows[i][0] < rows[j][0] })

		outDir := filepath.Join(outRoot, k.seeding)
		if err := os.MkdirAll(outDir, 0755); err != nil {
			return err
		}
		out := &dataset.Table{Header: header, Rows: rows}
		if err := dataset.Write(filepath.Join(outDir, k.line+".csv"), out); err != nil {
			return err
		}
	}
	return nil
}
