// Package well parses acquisition metadata out of microscopy image
// filenames and maps wells onto experimental groups.
//
// Filenames look like
//
//	A2780cis_20and30_IC50treatedF_Day10_25_FITC_Tile-0_C4.tif
//
// where the trailing token before .tif is the plate well (row letter plus
// column number), Day<N> is the acquisition day, and Tile-<N> is the image
// tile within the well.
package well

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	dayRe  = regexp.MustCompile(`(?i)_Day(\d+)_`)
	tileRe = regexp.MustCompile(`(?i)Tile-(\d+)`)
	wellRe = regexp.MustCompile(`(?i)_([A-Z]\d+)\.tif$`)
)

// ParseDay extracts the acquisition day from an image filename.
func ParseDay(image string) (int, bool) {
	m := dayRe.FindStringSubmatch(image)
	if m == nil {
		return 0, false
	}
	day, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return day, true
}

// ParseTile extracts the tile index from an image filename.
func ParseTile(image string) (int, bool) {
	m := tileRe.FindStringSubmatch(image)
	if m == nil {
		return 0, false
	}
	tile, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return tile, true
}

// ParseWell extracts the uppercased well identifier (e.g. "C4") from an
// image filename.
func ParseWell(image string) (string, bool) {
	m := wellRe.FindStringSubmatch(image)
	if m == nil {
		return "", false
	}
	return strings.ToUpper(m[1]), true
}

// Less orders wells by row letter, then numeric column, so that A10 sorts
// after A2 rather than between A1 and A2.
func Less(a, b string) bool {
	if len(a) < 2 || len(b) < 2 {
		return a < b
	}
	if a[0] != b[0] {
		return a[0] < b[0]
	}
	ca, errA := strconv.Atoi(a[1:])
	cb, errB := strconv.Atoi(b[1:])
	if errA != nil || errB != nil {
		return a < b
	}
	return ca < cb
}
