package uniquelabels

import (
	"fmt"

	"github.com/chrwm/OSEMF-Comparison/internal/energy"
	"github.com/chrwm/OSEMF-Comparison/internal/rule"
)

func init() {
	rule.Register(&Rule{})
}

// Rule checks that every node label in a system is unique. Duplicate
// labels make bus balances and results ambiguous.
type Rule struct{}

// ID implements rule.Rule.
func (r *Rule) ID() string { return "RM001" }

// Name implements rule.Rule.
func (r *Rule) Name() string { return "unique-labels" }

// Category implements rule.Rule.
func (r *Rule) Category() string { return "structure" }

// Check implements rule.Rule.
func (r *Rule) Check(s *energy.System) []energy.Diagnostic {
	seen := map[string]bool{}
	var diags []energy.Diagnostic
	for _, n := range s.Nodes() {
		label := n.NodeLabel()
		if label == "" {
			diags = append(diags, r.diag(s, label, "node has an empty label"))
			continue
		}
		if seen[label] {
			diags = append(diags, r.diag(s, label,
				fmt.Sprintf("duplicate node label %q", label)))
			continue
		}
		seen[label] = true
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
