package profilebounds

import (
	"fmt"

	"github.com/chrwm/OSEMF-Comparison/internal/energy"
	"github.com/chrwm/OSEMF-Comparison/internal/rule"
)

func init() {
	rule.Register(&Rule{MaxFactor: 1.0})
}

// Rule checks profile value ranges. Source profiles are availability
// factors and must lie within [0, MaxFactor]; sink profiles are demands
// and must be non-negative.
type Rule struct {
	MaxFactor float64
}

// ID implements rule.Rule.
func (r *Rule) ID() string { return "RM006" }

// Name implements rule.Rule.
func (r *Rule) Name() string { return "profile-bounds" }

// Category implements rule.Rule.
func (r *Rule) Category() string { return "data" }

// ApplySettings implements rule.Configurable.
func (r *Rule) ApplySettings(settings map[string]any) error {
	for k, v := range settings {
		switch k {
		case "max-factor":
			f, ok := toFloat(v)
			if !ok {
				return fmt.Errorf("profile-bounds: max-factor must be a number, got %T", v)
			}
			r.MaxFactor = f
		default:
			return fmt.Errorf("profile-bounds: unknown setting %q", k)
		}
	}
	return nil
}

// DefaultSettings implements rule.Configurable.
func (r *Rule) DefaultSettings() map[string]any {
	return map[string]any{
		"max-factor": 1.0,
	}
}

// Check implements rule.Rule.
func (r *Rule) Check(s *energy.System) []energy.Diagnostic {
	max := r.MaxFactor
	if max <= 0 {
		max = 1.0
	}

	var diags []energy.Diagnostic
	for _, src := range s.Sources() {
		f := src.Output
		if !f.Fixed() {
			continue
		}
		for t, v := range f.Profile {
			if v < 0 || v > max {
				diags = append(diags, r.diag(s, src.Label,
					fmt.Sprintf("availability factor %g at timestep %d outside [0, %g]", v, t, max)))
				break
			}
		}
	}
	for _, snk := range s.Sinks() {
		f := snk.Input
		if !f.Fixed() {
			continue
		}
		for t, v := range f.Profile {
			if v < 0 {
				diags = append(diags, r.diag(s, snk.Label,
					fmt.Sprintf("negative demand %g at timestep %d", v, t)))
				break
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
