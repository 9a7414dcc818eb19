package busconnectivity

import (
	"fmt"

	"github.com/chrwm/OSEMF-Comparison/internal/energy"
	"github.com/chrwm/OSEMF-Comparison/internal/rule"
)

func init() {
	rule.Register(&Rule{})
}

// Rule checks that every bus has at least one producer and one consumer.
// A bus without both forces all connected flows to zero.
type Rule struct{}

// ID implements rule.Rule.
func (r *Rule) ID() string { return "RM003" }

// Name implements rule.Rule.
func (r *Rule) Name() string { return "bus-connectivity" }

// Category implements rule.Rule.
func (r *Rule) Category() string { return "structure" }

// Check implements rule.Rule.
func (r *Rule) Check(s *energy.System) []energy.Diagnostic {
	var diags []energy.Diagnostic
	for _, b := range s.Buses() {
		if len(s.Producers(b.Label)) == 0 {
			diags = append(diags, r.diag(s, b.Label,
				fmt.Sprintf("bus %q has no producers", b.Label)))
		}
		if len(s.Consumers(b.Label)) == 0 {
			diags = append(diags, r.diag(s, b.Label,
				fmt.Sprintf("bus %q has no consumers", b.Label)))
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
		Severity: energy.Warning,
		Message:  message,
	}
}
