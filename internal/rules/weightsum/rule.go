package weightsum

import (
	"fmt"

	"github.com/chrwm/OSEMF-Comparison/internal/energy"
	"github.com/chrwm/OSEMF-Comparison/internal/rule"
	"github.com/chrwm/OSEMF-Comparison/internal/series"
)

func init() {
	rule.Register(&Rule{AllowSingle: true})
}

// Rule checks that timestep weights cover the full model year: one weight
// per timestep, summing to 8784 hours. Single-timestep systems are
// traditionally left unweighted, so they are skipped unless AllowSingle
// is disabled.
type Rule struct {
	AllowSingle bool
}

// ID implements rule.Rule.
func (r *Rule) ID() string { return "RM007" }

// Name implements rule.Rule.
func (r *Rule) Name() string { return "weight-sum" }

// Category implements rule.Rule.
func (r *Rule) Category() string { return "data" }

// ApplySettings implements rule.Configurable.
func (r *Rule) ApplySettings(settings map[string]any) error {
	for k, v := range settings {
		switch k {
		case "allow-single":
			b, ok := v.(bool)
			if !ok {
				return fmt.Errorf("weight-sum: allow-single must be a bool, got %T", v)
			}
			r.AllowSingle = b
		default:
			return fmt.Errorf("weight-sum: unknown setting %q", k)
		}
	}
	return nil
}

// DefaultSettings implements rule.Configurable.
func (r *Rule) DefaultSettings() map[string]any {
	return map[string]any{
		"allow-single": true,
	}
}

// Check implements rule.Rule.
func (r *Rule) Check(s *energy.System) []energy.Diagnostic {
	if s.Timesteps == 1 && r.AllowSingle {
		return nil
	}

	if len(s.Weights) != s.Timesteps {
		return []energy.Diagnostic{r.diag(s,
			fmt.Sprintf("%d weights for %d timesteps", len(s.Weights), s.Timesteps))}
	}

	if !s.Weights.CoversYear() {
		return []energy.Diagnostic{r.diag(s,
			fmt.Sprintf("weights sum to %g hours, want %d", s.Weights.Sum(), series.HoursPerYear))}
	}
	return nil
}

func (r *Rule) diag(s *energy.System, message string) energy.Diagnostic {
	return energy.Diagnostic{
		Model:    s.Label,
		RuleID:   r.ID(),
		RuleName: r.Name(),
		Severity: energy.Warning,
		Message:  message,
	}
}

var _ rule.Configurable = (*Rule)(nil)
