package excesssink

import (
	"fmt"

	"github.com/chrwm/OSEMF-Comparison/internal/energy"
	"github.com/chrwm/OSEMF-Comparison/internal/rule"
)

func init() {
	rule.Register(&Rule{})
}

// Rule checks that every bus with a fixed demand also has a free sink to
// absorb overproduction. Without one, fixed renewable feed-in above
// demand makes the balance infeasible.
type Rule struct{}

// ID implements rule.Rule.
func (r *Rule) ID() string { return "RM012" }

// Name implements rule.Rule.
func (r *Rule) Name() string { return "excess-sink" }

// Category implements rule.Rule.
func (r *Rule) Category() string { return "structure" }

// Check implements rule.Rule.
func (r *Rule) Check(s *energy.System) []energy.Diagnostic {
	var diags []energy.Diagnostic
	for _, snk := range s.Sinks() {
		if !snk.Input.Fixed() {
			continue
		}
		bus := snk.Input.Bus
		if !hasFreeSink(s, bus) {
			diags = append(diags, energy.Diagnostic{
				Model:    s.Label,
				Node:     bus,
				RuleID:   r.ID(),
				RuleName: r.Name(),
				Severity: energy.Warning,
				Message:  fmt.Sprintf("demand bus %q has no excess sink for overproduction", bus),
			})
		}
	}
	return diags
}

func hasFreeSink(s *energy.System, bus string) bool {
	for _, snk := range s.Sinks() {
		if snk.Input.Bus == bus && !snk.Input.Fixed() {
			return true
		}
	}
	return false
}
