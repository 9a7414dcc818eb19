// Package econ provides investment-cost arithmetic for capacity expansion.
package econ

import (
	"fmt"
	"math"
)

// Annuity converts an overnight capital expenditure into an equivalent
// periodical cost per unit of capacity:
//
//	capex * (wacc * (1+wacc)^n) / ((1+wacc)^n - 1)
//
// where n is the technology lifetime in years and wacc the weighted
// average cost of capital.
func Annuity(capex float64, life int, wacc float64) (float64, error) {
	if life <= 0 {
		return 0, fmt.Errorf("annuity: lifetime must be positive, got %d", life)
	}
	if wacc <= 0 {
		return 0, fmt.Errorf("annuity: wacc must be positive, got %g", wacc)
	}
	growth := math.Pow(1+wacc, float64(life))
	return capex * (wacc * growth) / (growth - 1), nil
}
