package dataset

// HeaderRenames maps every legacy column name onto its standardized Cells
// equivalent. Values are assumed to be converted already; renaming never
// touches the numbers.
var HeaderRenames = map[string]string{
	// raw
	"Area µm^2": "Cells",
	// sample/day averages (untreated monoculture)
	"Mean Area µm^2": "Mean Cells",
	"SD Area µm^2":   "SD Cells",
	"SEM Area µm^2":  "SEM Cells",
	// intermittent variants
	"Average_Area_um2": "Average_Cells",
	"StdDev_Area_um2":  "StdDev_Cells",
	"Min_Area_um2":     "Min_Cells",
	"Max_Area_um2":     "Max_Cells",
	"Mean_Area_um2":    "Mean_Cells",
	"Std_Dev_um2":      "Std_Dev_Cells",
	"Std_Error_um2":    "Std_Error_Cells",
	"CI_95_Margin_um2": "CI_95_Margin_Cells",
	"CI_95_Lower_um2":  "CI_95_Lower_Cells",
	"CI_95_Upper_um2":  "CI_95_Upper_Cells",
}

// RenameHeader applies the rename table to a header row, returning the new
// header and whether anything changed.
func RenameHeader(header []string) ([]string, bool) {
	out := make([]string, len(header))
	changed := false
	for i, h := range header {
		if repl, ok := HeaderRenames[h]; ok {
			out[i] = repl
			changed = true
		} else {
			out[i] = h
		}
	}
	return out, changed
}
