package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/kadinelbak/CancerGrowthDynamics/internal/dataset"
)

// AreaPerCell converts a measured area in µm² to an estimated cell count.
// One cell covers roughly a 12x12 µm square on these images.
const AreaPerCell = 144.0

// Normalize walks src for CSVs, divides every "Area µm^2" value by
// AreaPerCell, renames the column to "Cells", and writes each file to the
// same relative path under dst. Files without the area column are skipped.
func Normalize(ctx context.Context, src, dst string, workers int) (*Report, error) {
	files, err := FindCSVs(src)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", src, err)
	}

	report := ForEachFile(ctx, files, workers, func(path string) error {
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		return normalizeFile(path, filepath.Join(dst, rel))
	})
	return report, nil
}

func normalizeFile(path, out string) error {
	table, err := dataset.Read(path)
	if err != nil {
		return err
	}

	idx := table.ColumnIndex(dataset.ColumnArea)
	if idx < 0 {
		return fmt.Errorf("%w: no %q column in %s", ErrSkip, dataset.ColumnArea, path)
	}

	for i, row := range table.Rows {
		if idx >= len(row) {
			continue
		}
		v, err := strconv.ParseFloat(row[idx], 64)
		if err != nil {
			return fmt.Errorf("row %d of %s: %w", i+1, path, err)
		}
		row[idx] = strconv.FormatFloat(v/AreaPerCell, 'g', -1, 64)
	}
	table.Header[idx] = dataset.ColumnCells

	if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
		return err
	}
	return dataset.Write(out, table)
}
