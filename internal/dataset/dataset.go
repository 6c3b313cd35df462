// Package dataset reads and writes the measurement CSVs produced by the
// imaging pipeline. Files from the acquisition software carry a UTF-8 BOM;
// older exports are Latin-1. Readers tolerate both, writers emit UTF-8
// with a BOM so spreadsheet tools keep recognizing the µ in legacy headers.
package dataset

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"unicode/utf8"
)

// Column names used throughout the pipeline.
const (
	ColumnImage = "Image"
	ColumnArea  = "Area µm^2"
	ColumnCells = "Cells"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Table is one CSV file: a header row plus data rows.
type Table struct {
	Header []string
	Rows   [][]string
}

// ColumnIndex returns the index of the named column, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// Read loads a CSV file, stripping a UTF-8 BOM and falling back to a
// Latin-1 interpretation when the bytes are not valid UTF-8.
func Read(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	data = bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(data) {
		data = latin1ToUTF8(data)
	}

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(records) == 0 {
		return &Table{}, nil
	}

	return &Table{Header: records[0], Rows: records[1:]}, nil
}

// Write stores a table as UTF-8 CSV with a BOM, creating the file or
// truncating an existing one.
func Write(path string, t *Table) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.Write(utf8BOM); err != nil {
		return err
	}

	w := csv.NewWriter(f)
	if err := w.Write(t.Header); err != nil {
		return err
	}
	for _, row := range t.Rows {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// latin1ToUTF8 reinterprets bytes as ISO-8859-1 code points. Every byte
// maps directly to the rune of the same value, so this cannot fail.
func latin1ToUTF8(data []byte) []byte {
	var buf bytes.Buffer
	buf.Grow(len(data) + len(data)/8)
	for _, b := range data {
		buf.WriteRune(rune(b))
	}
	return buf.Bytes()
}
