package pipeline

import (
	"context"
	"fmt"

	"github.com/kadinelbak/CancerGrowthDynamics/internal/dataset"
)

// FixHeaders walks root and rewrites, in place, every CSV whose header
// still uses a legacy column name. Files already standardized are left
// untouched and counted as skipped. This is the only step that edits its
// inputs.
func FixHeaders(ctx context.Context, root string, workers int) (*Report, error) {
	files, err := FindCSVs(root)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}

	report := ForEachFile(ctx, files, workers, func(path string) error {
		table, err := dataset.Read(path)
		if err != nil {
			return err
		}
		if len(table.Header) == 0 {
			return fmt.Errorf("%w: empty file %s", ErrSkip, path)
		}

		newHeader, changed := dataset.RenameHeader(table.Header)
		if !changed {
			return fmt.Errorf("%w: headers already standardized in %s", ErrSkip, path)
		}

		table.Header = newHeader
		return dataset.Write(path, table)
	})
	return report, nil
}
