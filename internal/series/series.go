// Package series provides time-series values, timestep weights and CSV
// datasets for energy-system models.
package series

// Series is a sequence of per-timestep values.
type Series []float64

// Constant returns a series of n identical values.
func Constant(v float64, n int) Series {
	s := make(Series, n)
	for i := range s {
		s[i] = v
	}
	return s
}

// At returns the value at index i, or 0 when i is out of range.
func (s Series) At(i int) float64 {
	if i < 0 || i >= len(s) {
		return 0
	}
	return s[i]
}

// Sum returns the sum of all values.
func (s Series) Sum() float64 {
	var total float64
	for _, v := range s {
		total += v
	}
	return total
}

// Max returns the largest value, or 0 for an empty series.
func (s Series) Max() float64 {
	if len(s) == 0 {
		return 0
	}
	max := s[0]
	for _, v := range s[1:] {
		if v > max {
			max = v
		}
	}
	return max
}

// Min returns the smallest value, or 0 for an empty series.
func (s Series) Min() float64 {
	if len(s) == 0 {
		return 0
	}
	min := s[0]
	for _, v := range s[1:] {
		if v < min {
			min = v
		}
	}
	return min
}

// Scale returns a copy of the series with every value multiplied by f.
func (s Series) Scale(f float64) Series {
	out := make(Series, len(s))
	for i, v := range s {
		out[i] = v * f
	}
	return out
}

// WeightedSum returns the sum of value*weight pairs. Shorter of the two
// slices bounds the iteration.
func (s Series) WeightedSum(w Weights) float64 {
	n := len(s)
	if len(w) < n {
		n = len(w)
	}
	var total float64
	for i := 0; i < n; i++ {
		total += s[i] * w[i]
	}
	return total
}
