package profilelength

import (
	"fmt"

	"github.com/chrwm/OSEMF-Comparison/internal/energy"
	"github.com/chrwm/OSEMF-Comparison/internal/rule"
)

func init() {
	rule.Register(&Rule{})
}

// Rule checks that every fixed flow carries one profile value per system
// timestep.
type Rule struct{}

// ID implements rule.Rule.
func (r *Rule) ID() string { return "RM005" }

// Name implements rule.Rule.
func (r *Rule) Name() string { return "profile-length" }

// Category implements rule.Rule.
func (r *Rule) Category() string { return "data" }

// Check implements rule.Rule.
func (r *Rule) Check(s *energy.System) []energy.Diagnostic {
	var diags []energy.Diagnostic
	for _, n := range s.Nodes() {
		for _, f := range append(energy.Outputs(n), energy.Inputs(n)...) {
			if !f.Fixed() {
				continue
			}
			if len(f.Profile) != s.Timesteps {
				diags = append(diags, energy.Diagnostic{
					Model:    s.Label,
					Node:     n.NodeLabel(),
					RuleID:   r.ID(),
					RuleName: r.Name(),
					Severity: energy.Error,
					Message: fmt.Sprintf("profile has %d values, system has %d timesteps",
						len(f.Profile), s.Timesteps),
				})
			}
		}
	}
	return diags
}
