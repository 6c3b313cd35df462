package pipeline

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kadinelbak/CancerGrowthDynamics/internal/dataset"
)

func TestSampleAverages(t *testing.T) {
	dir := t.TempDir()

	writeCSV(t, filepath.Join(dir, "A2780Naive.csv"), &dataset.Table{
		Header: []string{"Image", "Cells"},
		Rows: [][]string{
			{"x_Day5_Tile-0_A2.tif", "100"},
			{"x_Day5_Tile-1_A2.tif", "200"},
			{"x_Day5_Tile-0_A1.tif", "50"},
			{"x_Day3_Tile-0_A1.tif", "10"},
			{"x_Day5_Tile-0_XX.badname", "999"}, // unparseable image dropped
		},
	})

	report, err := SampleAverages(context.Background(), dir, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Processed)

	out := readCSV(t, filepath.Join(dir, AveragesDir, "A2780Naive_sample_averages.csv"))
	assert.Equal(t, []string{"Day", "Well", "N Tiles", "Mean Cells", "SD Cells", "SEM Cells"}, out.Header)
	require.Len(t, out.Rows, 3)

	// Sorted by day, then well.
	assert.Equal(t, []string{"3", "A1", "1", "10.000000", "0.000000", "0.000000"}, out.Rows[0])
	assert.Equal(t, "A1", out.Rows[1][1])
	// (Day 5, A2): mean of 100 and 200, sample SD ~70.71, SEM = SD/sqrt(2) = 50.
	assert.Equal(t, "5", out.Rows[2][0])
	assert.Equal(t, "A2", out.Rows[2][1])
	assert.Equal(t, "2", out.Rows[2][2])
	assert.Equal(t, "150.000000", out.Rows[2][3])
	assert.Equal(t, "70.710678", out.Rows[2][4])
	assert.Equal(t, "50.000000", out.Rows[2][5])
}

func TestSampleAveragesSkipsDerivedFiles(t *testing.T) {
	dir := t.TempDir()

	writeCSV(t, filepath.Join(dir, "x_sample_averages.csv"), &dataset.Table{
		Header: []string{"Day", "Well", "Mean Cells"},
	})

	report, err := SampleAverages(context.Background(), dir, 1)
	require.NoError(t, err)
	assert.Zero(t, report.Processed, "derived files must not be re-averaged")
}

func TestDayAverages(t *testing.T) {
	dir := t.TempDir()

	writeCSV(t, filepath.Join(dir, "A2780cis_sample_averages.csv"), &dataset.Table{
		Header: []string{"Day", "Well", "N Tiles", "Mean Cells", "SD Cells", "SEM Cells"},
		Rows: [][]string{
			{"1", "A1", "6", "10.0", "1", "0.5"},
			{"1", "A2", "6", "20.0", "1", "0.5"},
			{"1", "A3", "6", "30.0", "1", "0.5"},
			{"2", "A1", "6", "40.0", "1", "0.5"},
		},
	})

	report, err := DayAverages(context.Background(), dir, true, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Processed)

	out := readCSV(t, filepath.Join(dir, "A2780cis_day_averages.csv"))
	require.Len(t, out.Header, 8, "CI columns expected")
	require.Len(t, out.Rows, 2)

	// Day 1: mean of {10,20,30} = 20, SD = 10, SEM = 10/sqrt(3).
	assert.Equal(t, "1", out.Rows[0][0])
	assert.Equal(t, "3", out.Rows[0][1])
	assert.Equal(t, "20.000000", out.Rows[0][2])
	assert.Equal(t, "10.000000", out.Rows[0][3])
	assert.Equal(t, "5.773503", out.Rows[0][4])
	// CI margin = 1.96 * SEM.
	assert.Equal(t, "11.316065", out.Rows[0][5])

	// Day 2 has a single well: SD and SEM are zero.
	assert.Equal(t, "40.000000", out.Rows[1][2])
	assert.Equal(t, "0.000000", out.Rows[1][3])
}

func TestDayAveragesLegacyColumn(t *testing.T) {
	dir := t.TempDir()

	writeCSV(t, filepath.Join(dir, "legacy_sample_averages.csv"), &dataset.Table{
		Header: []string{"Day", "Well", "Average_Area_um2"},
		Rows:   [][]string{{"1", "C4", "12.5"}},
	})

	report, err := DayAverages(context.Background(), dir, false, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Processed)

	out := readCSV(t, filepath.Join(dir, "legacy_day_averages.csv"))
	assert.Len(t, out.Header, 5, "no CI columns without withCI")
	require.Len(t, out.Rows, 1)
	assert.Equal(t, "12.500000", out.Rows[0][2])
}

func TestDayAveragesNoInputs(t *testing.T) {
	_, err := DayAverages(context.Background(), t.TempDir(), false, 1)
	require.Error(t, err)
}

func TestWellSummaries(t *testing.T) {
	dir := t.TempDir()

	writeCSV(t, filepath.Join(dir, "A2780UT.csv"), &dataset.Table{
		Header: []string{"Image", "Cells"},
		Rows: [][]string{
			{"x_Day1_Tile-0_C4.tif", "1.25"},
			{"x_Day2_Tile-0_C4.tif", "3.75"},
			{"x_Day1_Tile-0_D4.tif", "7"},
		},
	})

	report, err := WellSummaries(context.Background(), dir, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Processed)

	out := readCSV(t, filepath.Join(dir, AveragesDir, "A2780UT_well_summary.csv"))
	require.Len(t, out.Rows, 2)

	// C4: mean of 1.25 and 3.75 = 2.50, sample SD = sqrt(3.125) ~ 1.77.
	assert.Equal(t, "C4", out.Rows[0][0])
	assert.Equal(t, "2.50", out.Rows[0][1])
	assert.Equal(t, "1.77", out.Rows[0][2])
	assert.Equal(t, "2", out.Rows[0][3])
	assert.Equal(t, "1.25", out.Rows[0][4])
	assert.Equal(t, "3.75", out.Rows[0][5])

	assert.Equal(t, "D4", out.Rows[1][0])
}

func TestFixHeaders(t *testing.T) {
	root := t.TempDir()

	writeCSV(t, filepath.Join(root, "legacy.csv"), &dataset.Table{
		Header: []string{"Image", "Area µm^2"},
		Rows:   [][]string{{"x.tif", "2"}},
	})
	writeCSV(t, filepath.Join(root, "sub", "avg.csv"), &dataset.Table{
		Header: []string{"Day", "Mean Area µm^2", "SD Area µm^2", "SEM Area µm^2"},
		Rows:   [][]string{{"1", "2", "3", "4"}},
	})
	writeCSV(t, filepath.Join(root, "done.csv"), &dataset.Table{
		Header: []string{"Image", "Cells"},
		Rows:   [][]string{{"y.tif", "5"}},
	})

	report, err := FixHeaders(context.Background(), root, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Processed)
	assert.Len(t, report.Skipped, 1, "standardized file untouched")

	legacy := readCSV(t, filepath.Join(root, "legacy.csv"))
	assert.Equal(t, []string{"Image", "Cells"}, legacy.Header)
	assert.Equal(t, "2", legacy.Rows[0][1], "values must not change")

	avg := readCSV(t, filepath.Join(root, "sub", "avg.csv"))
	assert.Equal(t, []string{"Day", "Mean Cells", "SD Cells", "SEM Cells"}, avg.Header)
}
