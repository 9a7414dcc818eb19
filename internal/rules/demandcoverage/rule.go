package demandcoverage

import (
	"fmt"

	"github.com/chrwm/OSEMF-Comparison/internal/energy"
	"github.com/chrwm/OSEMF-Comparison/internal/rule"
)

func init() {
	rule.Register(&Rule{BackstopThreshold: 1e6})
}

// Rule checks that a dispatch system can serve its demand without the
// backstop: in every timestep, aggregate non-backstop supply capacity
// (volatile availability plus firm capacity, derated by conversion
// factors along the way to the demand buses) must cover aggregate
// demand. Investment systems are skipped; their capacity is decided by
// the optimisation.
type Rule struct {
	// BackstopThreshold excludes producers at or above this variable
	// cost from the supply stack.
	BackstopThreshold float64
}

// ID implements rule.Rule.
func (r *Rule) ID() string { return "RM008" }

// Name implements rule.Rule.
func (r *Rule) Name() string { return "demand-coverage" }

// Category implements rule.Rule.
func (r *Rule) Category() string { return "data" }

// ApplySettings implements rule.Configurable.
func (r *Rule) ApplySettings(settings map[string]any) error {
	for k, v := range settings {
		switch k {
		case "backstop-threshold":
			f, ok := toFloat(v)
			if !ok {
				return fmt.Errorf("demand-coverage: backstop-threshold must be a number, got %T", v)
			}
			r.BackstopThreshold = f
		default:
			return fmt.Errorf("demand-coverage: unknown setting %q", k)
		}
	}
	return nil
}

// DefaultSettings implements rule.Configurable.
func (r *Rule) DefaultSettings() map[string]any {
	return map[string]any{
		"backstop-threshold": 1e6,
	}
}

// Check implements rule.Rule.
func (r *Rule) Check(s *energy.System) []energy.Diagnostic {
	if s.HasInvestment() {
		return nil
	}

	threshold := r.BackstopThreshold
	if threshold <= 0 {
		threshold = 1e6
	}

	short := 0
	worstStep, worstGap := -1, 0.0
	for t := 0; t < s.Timesteps; t++ {
		supply := supplyAt(s, t, threshold)
		demand := demandAt(s, t)
		if gap := demand - supply; gap > 1e-9 {
			short++
			if gap > worstGap {
				worstGap = gap
				worstStep = t
			}
		}
	}

	if short == 0 {
		return nil
	}
	return []energy.Diagnostic{{
		Model:    s.Label,
		RuleID:   r.ID(),
		RuleName: r.Name(),
		Severity: energy.Warning,
		Message: fmt.Sprintf(
			"demand exceeds non-backstop supply in %d of %d timesteps (worst: timestep %d, gap %.2f)",
			short, s.Timesteps, worstStep, worstGap),
	}}
}

// supplyAt sums the capacity available from sources and converters in
// timestep t, derated by the output conversion factor of any converter
// consuming the target bus downstream. The estimate treats the system as
// a single copper plate, which is optimistic but catches gross shortfalls.
func supplyAt(s *energy.System, t int, threshold float64) float64 {
	// Minimum output factor of converters that pass energy between
	// electricity buses (e.g. transmission losses).
	derate := 1.0
	for _, c := range s.Converters() {
		if len(c.Inputs) == 0 || len(c.Outputs) == 0 {
			continue
		}
		if !demandBus(s, c.Outputs[0].Bus) {
			continue
		}
		if f := c.Factor(c.Outputs[0].Bus); f < derate {
			derate = f
		}
	}

	var total float64
	for _, src := range s.Sources() {
		f := src.Output
		if f.VariableCost >= threshold {
			continue
		}
		cap := f.Nominal
		if f.Fixed() {
			cap = f.ValueAt(t)
		}
		if demandBus(s, f.Bus) {
			total += cap
		} else {
			total += cap * derate
		}
	}
	for _, c := range s.Converters() {
		for _, f := range c.Outputs {
			if f.VariableCost >= threshold || !f.Capped() {
				continue
			}
			// Trade links move existing capacity around; counting them
			// would double-count the exporting region's plants.
			if electricityToElectricity(s, c) {
				continue
			}
			if demandBus(s, f.Bus) {
				total += f.Nominal
			} else {
				total += f.Nominal * derate
			}
		}
	}
	return total
}

func demandAt(s *energy.System, t int) float64 {
	var total float64
	for _, snk := range s.Sinks() {
		if snk.Input.Fixed() {
			total += snk.Input.ValueAt(t)
		}
	}
	return total
}

// demandBus reports whether the bus has a fixed-demand sink attached.
func demandBus(s *energy.System, bus string) bool {
	for _, snk := range s.Sinks() {
		if snk.Input.Bus == bus && snk.Input.Fixed() {
			return true
		}
	}
	return false
}

// electricityToElectricity reports whether the converter only shifts
// energy between buses that both carry converter-produced electricity.
func electricityToElectricity(s *energy.System, c *energy.Converter) bool {
	if len(c.Inputs) == 0 {
		return false
	}
	for _, in := range c.Inputs {
		producedByConverter := false
		for _, other := range s.Converters() {
			if other == c {
				continue
			}
			for _, f := range other.Outputs {
				if f.Bus == in.Bus {
					producedByConverter = true
				}
			}
		}
		if !producedByConverter {
			return false
		}
	}
	return true
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

var _ rule.Configurable = (*Rule)(nil)
