package backstoppricing

import (
	"fmt"

	"github.com/chrwm/OSEMF-Comparison/internal/energy"
	"github.com/chrwm/OSEMF-Comparison/internal/rule"
)

func init() {
	rule.Register(&Rule{Threshold: 1e6})
}

// Rule checks that every demand bus has a backstop: a producer priced at
// or above Threshold so that infeasible demand shows up as expensive
// backstop energy instead of an unsolvable model.
type Rule struct {
	Threshold float64
}

// ID implements rule.Rule.
func (r *Rule) ID() string { return "RM010" }

// Name implements rule.Rule.
func (r *Rule) Name() string { return "backstop-pricing" }

// Category implements rule.Rule.
func (r *Rule) Category() string { return "economics" }

// ApplySettings implements rule.Configurable.
func (r *Rule) ApplySettings(settings map[string]any) error {
	for k, v := range settings {
		switch k {
		case "threshold":
			f, ok := toFloat(v)
			if !ok {
				return fmt.Errorf("backstop-pricing: threshold must be a number, got %T", v)
			}
			if f <= 0 {
				return fmt.Errorf("backstop-pricing: threshold must be positive, got %g", f)
			}
			r.Threshold = f
		default:
			return fmt.Errorf("backstop-pricing: unknown setting %q", k)
		}
	}
	return nil
}

// DefaultSettings implements rule.Configurable.
func (r *Rule) DefaultSettings() map[string]any {
	return map[string]any{
		"threshold": 1e6,
	}
}

// Check implements rule.Rule.
func (r *Rule) Check(s *energy.System) []energy.Diagnostic {
	threshold := r.Threshold
	if threshold <= 0 {
		threshold = 1e6
	}

	var diags []energy.Diagnostic
	for _, snk := range s.Sinks() {
		if !snk.Input.Fixed() {
			continue
		}
		bus := snk.Input.Bus
		if !hasBackstop(s, bus, threshold) {
			diags = append(diags, energy.Diagnostic{
				Model:    s.Label,
				Node:     bus,
				RuleID:   r.ID(),
				RuleName: r.Name(),
				Severity: energy.Warning,
				Message:  fmt.Sprintf("demand bus %q has no backstop producer (variable cost >= %g)", bus, threshold),
			})
		}
	}
	return diags
}

func hasBackstop(s *energy.System, bus string, threshold float64) bool {
	for _, n := range s.Producers(bus) {
		for _, f := range energy.Outputs(n) {
			if f.Bus == bus && f.VariableCost >= threshold {
				return true
			}
		}
	}
	return false
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
