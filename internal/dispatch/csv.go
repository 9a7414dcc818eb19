package dispatch

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/chrwm/OSEMF-Comparison/internal/series"
)

// WriteCSV exports the run's sequences to a CSV file: one row per
// timestep, one column per demand, generation, import and excess series.
// Columns are sorted by name within each group so output is diffable.
func WriteCSV(res *Results, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %q: %w", path, err)
	}
	defer f.Close()

	type column struct {
		name   string
		values series.Series
	}
	var cols []column
	appendGroup := func(prefix string, m map[string]series.Series) {
		names := make([]string, 0, len(m))
		for name := range m {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			cols = append(cols, column{name: prefix + name, values: m[name]})
		}
	}

	appendGroup("demand_", res.Demand)
	appendGroup("gen_", res.Generation)
	appendGroup("import_", res.Imports)
	appendGroup("excess_", res.Excess)

	w := csv.NewWriter(f)
	header := make([]string, 0, len(cols)+2)
	header = append(header, "timestep", "weight")
	for _, c := range cols {
		header = append(header, c.name)
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("writing %q: %w", path, err)
	}

	record := make([]string, len(header))
	for t := 0; t < res.Timesteps; t++ {
		record[0] = strconv.Itoa(t)
		record[1] = strconv.FormatFloat(res.Weights.At(t), 'g', -1, 64)
		for i, c := range cols {
			record[i+2] = strconv.FormatFloat(c.values.At(t), 'g', -1, 64)
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("writing %q: %w", path, err)
		}
	}

	w.Flush()
	return w.Error()
}
