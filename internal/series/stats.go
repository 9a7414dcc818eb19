package series

import "gonum.org/v1/gonum/stat"

// Stats summarizes a series.
type Stats struct {
	Count int
	Mean  float64
	Std   float64
	Min   float64
	Max   float64
	Sum   float64
}

// Summary computes summary statistics for a series.
func Summary(s Series) Stats {
	if len(s) == 0 {
		return Stats{}
	}
	mean, std := stat.MeanStdDev(s, nil)
	if len(s) == 1 {
		// MeanStdDev returns NaN for a single sample.
		std = 0
	}
	return Stats{
		Count: len(s),
		Mean:  mean,
		Std:   std,
		Min:   s.Min(),
		Max:   s.Max(),
		Sum:   s.Sum(),
	}
}

// LoadFactor returns mean over peak, the flatness of a profile.
// Returns 0 for empty or all-zero series.
func LoadFactor(s Series) float64 {
	max := s.Max()
	if max == 0 {
		return 0
	}
	return stat.Mean(s, nil) / max
}
