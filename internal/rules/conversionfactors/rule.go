package conversionfactors

import (
	"fmt"

	"github.com/chrwm/OSEMF-Comparison/internal/energy"
	"github.com/chrwm/OSEMF-Comparison/internal/rule"
)

func init() {
	rule.Register(&Rule{MaxOutputFactor: 1.0})
}

// Rule checks converter conversion factors: all factors must be positive,
// factors on output buses must not exceed MaxOutputFactor (no converter
// creates energy), and every factor must reference a connected bus.
// Input-side factors above one are allowed; they model overconsumption.
type Rule struct {
	MaxOutputFactor float64
}

// ID implements rule.Rule.
func (r *Rule) ID() string { return "RM004" }

// Name implements rule.Rule.
func (r *Rule) Name() string { return "conversion-factors" }

// Category implements rule.Rule.
func (r *Rule) Category() string { return "structure" }

// ApplySettings implements rule.Configurable.
func (r *Rule) ApplySettings(settings map[string]any) error {
	for k, v := range settings {
		switch k {
		case "max-output-factor":
			f, ok := toFloat(v)
			if !ok {
				return fmt.Errorf("conversion-factors: max-output-factor must be a number, got %T", v)
			}
			if f <= 0 {
				return fmt.Errorf("conversion-factors: max-output-factor must be positive, got %g", f)
			}
			r.MaxOutputFactor = f
		default:
			return fmt.Errorf("conversion-factors: unknown setting %q", k)
		}
	}
	return nil
}

// DefaultSettings implements rule.Configurable.
func (r *Rule) DefaultSettings() map[string]any {
	return map[string]any{
		"max-output-factor": 1.0,
	}
}

// Check implements rule.Rule.
func (r *Rule) Check(s *energy.System) []energy.Diagnostic {
	max := r.MaxOutputFactor
	if max <= 0 {
		max = 1.0
	}

	var diags []energy.Diagnostic
	for _, c := range s.Converters() {
		outputs := map[string]bool{}
		connected := map[string]bool{}
		for _, f := range c.Outputs {
			outputs[f.Bus] = true
			connected[f.Bus] = true
		}
		for _, f := range c.Inputs {
			connected[f.Bus] = true
		}

		for bus, factor := range c.Conversion {
			if !connected[bus] {
				diags = append(diags, r.diag(s, c.Label,
					fmt.Sprintf("conversion factor for bus %q, but no flow connects it", bus)))
				continue
			}
			if factor <= 0 {
				diags = append(diags, r.diag(s, c.Label,
					fmt.Sprintf("conversion factor for bus %q must be positive, got %g", bus, factor)))
				continue
			}
			if outputs[bus] && factor > max {
				diags = append(diags, r.diag(s, c.Label,
					fmt.Sprintf("output conversion factor for bus %q is %g, exceeds %g", bus, factor, max)))
			}
		}
	}
	return diags
}

func (r *Rule) diag(s *energy.System, node, message string) energy.Diagnostic {
	return energy.Diagnostic{
		Model:    s.Label,
		Node:     node,
		RuleID:   r.ID(),
		RuleName: r.Name(),
		Severity: energy.Error,
		Message:  message,
	}
}

// toFloat converts a value to float64. YAML decodes numbers as int or
// float64 depending on context.
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
