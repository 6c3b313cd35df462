package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/kadinelbak/CancerGrowthDynamics/internal/dataset"
	"github.com/kadinelbak/CancerGrowthDynamics/internal/stats"
)

// meanColumns lists accepted per-well mean column names, newest first.
var meanColumns = []string{"Mean Cells", "Mean Area µm^2", "Average_Cells", "Average_Area_um2"}

// DayAverages collapses each *_sample_averages.csv in dir to one row per
// day: the mean across wells with SD, SEM and, when withCI is set, a 95%
// confidence interval (normal approximation).
func DayAverages(ctx context.Context, dir string, withCI bool, workers int) (*Report, error) {
	all, err := ListCSVs(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, f := range all {
		if hasSuffix(stem(f), sampleSuffix) {
			files = append(files, f)
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no sample average files found in %s", dir)
	}

	report := ForEachFile(ctx, files, workers, func(path string) error {
		_, err := dayAveragesFile(path, withCI)
		return err
	})
	return report, nil
}

func dayAveragesFile(path string, withCI bool) (string, error) {
	table, err := dataset.Read(path)
	if err != nil {
		return "", err
	}

	dayIdx := table.ColumnIndex("Day")
	if dayIdx < 0 {
		return "", fmt.Errorf("%w: no Day column in %s", ErrSkip, path)
	}

	meanIdx := -1
	for _, name := range meanColumns {
		if idx := table.ColumnIndex(name); idx >= 0 {
			meanIdx = idx
			break
		}
	}
	if meanIdx < 0 {
		return "", fmt.Errorf("%w: no per-well mean column in %s", ErrSkip, path)
	}

	byDay := make(map[int][]float64)
	for _, row := range table.Rows {
		if dayIdx >= len(row) || meanIdx >= len(row) {
			continue
		}
		day, err := strconv.Atoi(strings.TrimSpace(row[dayIdx]))
		if err != nil {
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(row[meanIdx]), 64)
		if err != nil {
			continue
		}
		byDay[day] = append(byDay[day], v)
	}

	days := make([]int, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Ints(days)

	header := []string{"Day", "N Samples", "Mean Cells", "SD Cells", "SEM Cells"}
	if withCI {
		header = append(header, "CI_95_Margin_Cells", "CI_95_Lower_Cells", "CI_95_Upper_Cells")
	}
	out := &dataset.Table{Header: header}

	for _, day := range days {
		s := stats.Describe(byDay[day])
		row := []string{
			strconv.Itoa(day),
			strconv.Itoa(s.N),
			strconv.FormatFloat(s.Mean, 'f', 6, 64),
			strconv.FormatFloat(s.SD, 'f', 6, 64),
			strconv.FormatFloat(s.SEM, 'f', 6, 64),
		}
		if withCI {
			margin, lower, upper := s.CI95()
			row = append(row,
				strconv.FormatFloat(margin, 'f', 6, 64),
				strconv.FormatFloat(lower, 'f', 6, 64),
				strconv.FormatFloat(upper, 'f', 6, 64),
			)
		}
		out.Rows = append(out.Rows, row)
	}

	outPath := dayAveragesPath(path)
	if err := dataset.Write(outPath, out); err != nil {
		return "", err
	}
	return outPath, nil
}

func dayAveragesPath(samplePath string) string {
	dir := filepath.Dir(samplePath)
	s := stem(samplePath)
	if hasSuffix(s, sampleSuffix) {
		s = s[:len(s)-len(sampleSuffix)]
	}
	return filepath.Join(dir, s+daySuffix+".csv")
}
