package series

import "fmt"

// Dataset is a set of named time-series columns of equal length, typically
// loaded from a profile CSV file.
type Dataset struct {
	columns map[string]Series
	order   []string

	// Weights optionally carries timestep durations loaded alongside the
	// profiles (section lengths). Nil means uniform hourly weighting.
	Weights Weights
}

// NewDataset returns an empty dataset.
func NewDataset() *Dataset {
	return &Dataset{columns: map[string]Series{}}
}

// Add stores a column under the given name, replacing any existing column
// with that name.
func (d *Dataset) Add(name string, s Series) {
	if _, exists := d.columns[name]; !exists {
		d.order = append(d.order, name)
	}
	d.columns[name] = s
}

// Column returns the named column.
func (d *Dataset) Column(name string) (Series, bool) {
	s, ok := d.columns[name]
	return s, ok
}

// Require returns the named column or an error naming the missing column.
func (d *Dataset) Require(name string) (Series, error) {
	s, ok := d.columns[name]
	if !ok {
		return nil, fmt.Errorf("dataset missing column %q", name)
	}
	return s, nil
}

// Columns returns column names in insertion order.
func (d *Dataset) Columns() []string {
	out := make([]string, len(d.order))
	copy(out, d.order)
	return out
}

// Len returns the row count of the first column, or 0 for an empty dataset.
func (d *Dataset) Len() int {
	if len(d.order) == 0 {
		return 0
	}
	return len(d.columns[d.order[0]])
}
