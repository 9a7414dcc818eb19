package energy

import "github.com/chrwm/OSEMF-Comparison/internal/series"

// Investment describes an expansion option for a flow. Capacity is decided
// by the optimisation instead of being fixed up front.
type Investment struct {
	// EPCost is the equivalent periodical cost per unit of new capacity,
	// typically an annuity over the technology lifetime.
	EPCost float64

	// Capped limits new capacity to Maximum. A capped investment with
	// Maximum 0 blocks the candidate entirely while keeping it in the
	// model (used for politically excluded builds).
	Capped  bool
	Maximum float64
}

// Flow is a directed connection between a node and a bus.
//
// A flow with a Profile is fixed: its value at timestep t is
// Profile[t] * Nominal. A flow without a profile is free within its
// capacity. A flow with an Investment has no fixed Nominal capacity;
// the capacity itself is a decision variable.
type Flow struct {
	// Bus is the label of the connected bus.
	Bus string

	// Nominal is the installed capacity. Zero means uncapped for free
	// flows and is the required value for investment flows.
	Nominal float64

	// VariableCost is the cost per unit of energy moved by this flow.
	VariableCost float64

	// Profile fixes the flow to a per-timestep fraction of Nominal.
	Profile series.Series

	Invest *Investment
}

// Fixed reports whether the flow is bound to a profile.
func (f Flow) Fixed() bool { return f.Profile != nil }

// Capped reports whether the flow has a finite capacity limit.
// Investment flows are never capped up front.
func (f Flow) Capped() bool { return f.Invest == nil && f.Nominal > 0 }

// ValueAt returns the fixed flow value at timestep t, or 0 for free flows.
func (f Flow) ValueAt(t int) float64 {
	if !f.Fixed() {
		return 0
	}
	return f.Profile.At(t) * f.Nominal
}
