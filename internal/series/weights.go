package series

// HoursPerYear is the hour count of the modelled (leap) year.
const HoursPerYear = 8784

// Weights holds the duration in hours represented by each timestep.
// Hourly models use a weight of 1 per step; aggregated models use section
// lengths that sum to the full year.
type Weights []float64

// Uniform returns n weights of 1 hour each.
func Uniform(n int) Weights {
	w := make(Weights, n)
	for i := range w {
		w[i] = 1
	}
	return w
}

// At returns the weight at index i, or 1 when i is out of range.
func (w Weights) At(i int) float64 {
	if i < 0 || i >= len(w) {
		return 1
	}
	return w[i]
}

// Sum returns the total hours covered by the weights.
func (w Weights) Sum() float64 {
	var total float64
	for _, v := range w {
		total += v
	}
	return total
}

// CoversYear reports whether the weights add up to a full model year.
func (w Weights) CoversYear() bool {
	const tolerance = 1e-6
	diff := w.Sum() - HoursPerYear
	return diff > -tolerance && diff < tolerance
}
