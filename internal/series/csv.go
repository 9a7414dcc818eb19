package series

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/bmatcuk/doublestar/v4"
)

const weightsColumn = "weights"

// LoadCSV reads a profile CSV file into a dataset. The first row is the
// header; every further row must hold one float per column. A column
// named "weights" is promoted to the dataset's timestep weights.
func LoadCSV(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %q: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", path, err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("%s: need a header row and at least one data row", path)
	}

	header := records[0]
	cols := make([]Series, len(header))
	for i := range cols {
		cols[i] = make(Series, 0, len(records)-1)
	}

	for rowIdx, row := range records[1:] {
		for colIdx, cell := range row {
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("%s: row %d column %q: parsing %q: %w",
					path, rowIdx+2, header[colIdx], cell, err)
			}
			cols[colIdx] = append(cols[colIdx], v)
		}
	}

	d := NewDataset()
	for i, name := range header {
		// A column named "weights" carries timestep durations, not a
		// node profile.
		if name == weightsColumn {
			d.Weights = Weights(cols[i])
			continue
		}
		d.Add(name, cols[i])
	}
	return d, nil
}

// WriteCSV writes the dataset's columns to a CSV file with a header row.
func (d *Dataset) WriteCSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %q: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	names := d.Columns()
	header := names
	if d.Weights != nil {
		header = append([]string{weightsColumn}, names...)
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("writing %q: %w", path, err)
	}

	rows := d.Len()
	record := make([]string, 0, len(header))
	for i := 0; i < rows; i++ {
		record = record[:0]
		if d.Weights != nil {
			record = append(record, strconv.FormatFloat(d.Weights.At(i), 'g', -1, 64))
		}
		for _, name := range names {
			record = append(record, strconv.FormatFloat(d.columns[name].At(i), 'g', -1, 64))
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("writing %q: %w", path, err)
		}
	}

	w.Flush()
	return w.Error()
}

// Discover returns data files under baseDir matching any of the glob
// patterns. Results are deduplicated and sorted.
func Discover(baseDir string, patterns []string) ([]string, error) {
	if len(patterns) == 0 {
		return nil, nil
	}

	seen := map[string]bool{}
	var files []string
	fsys := os.DirFS(baseDir)
	for _, pattern := range patterns {
		matches, err := doublestar.Glob(fsys, pattern)
		if err != nil {
			return nil, fmt.Errorf("matching %q: %w", pattern, err)
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				files = append(files, m)
			}
		}
	}

	sort.Strings(files)
	return files, nil
}
