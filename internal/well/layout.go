package well

import "strconv"

// DensityWells lists which wells of one dataset belong to each seeding
// density arm.
type DensityWells struct {
	Low  []string `yaml:"20k"`
	High []string `yaml:"30k"`
}

// DensityLayout maps a dataset filename to its well configuration.
type DensityLayout map[string]DensityWells

// Contains reports whether w appears in wells.
func contains(wells []string, w string) bool {
	for _, c := range wells {
		if c == w {
			return true
		}
	}
	return false
}

// Classify returns the seeding-density group ("20k" or "30k") for a well,
// or "" if the well belongs to neither arm.
func (d DensityWells) Classify(w string) string {
	switch {
	case contains(d.Low, w):
		return "20k"
	case contains(d.High, w):
		return "30k"
	default:
		return ""
	}
}

// Monoculture group names.
const (
	LineNaive = "A2780Naive"
	LineCis   = "A2780cis"
)

// ClassifyMonoculture maps an untreated-monoculture well onto its seeding
// density and cell line: row A seeds 20k, row B seeds 30k; columns 1-3 hold
// the naive line and 4-6 the cisplatin-resistant line.
func ClassifyMonoculture(w string) (seeding, line string, ok bool) {
	if len(w) < 2 {
		return "", "", false
	}
	row := w[0]
	col, err := strconv.Atoi(w[1:])
	if err != nil || col < 1 || col > 6 {
		return "", "", false
	}

	switch row {
	case 'A':
		seeding = "20k"
	case 'B':
		seeding = "30k"
	default:
		return "", "", false
	}

	if col <= 3 {
		line = LineNaive
	} else {
		line = LineCis
	}
	return seeding, line, true
}
