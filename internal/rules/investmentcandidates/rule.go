package investmentcandidates

import (
	"fmt"

	"github.com/chrwm/OSEMF-Comparison/internal/energy"
	"github.com/chrwm/OSEMF-Comparison/internal/rule"
)

func init() {
	rule.Register(&Rule{})
}

// Rule checks investment options: every flow carrying an Investment must
// start from zero fixed capacity, have a positive equivalent periodical
// cost and a non-negative capacity cap.
type Rule struct{}

// ID implements rule.Rule.
func (r *Rule) ID() string { return "RM009" }

// Name implements rule.Rule.
func (r *Rule) Name() string { return "investment-candidates" }

// Category implements rule.Rule.
func (r *Rule) Category() string { return "structure" }

// Check implements rule.Rule.
func (r *Rule) Check(s *energy.System) []energy.Diagnostic {
	var diags []energy.Diagnostic
	for _, n := range s.Nodes() {
		for _, f := range append(energy.Outputs(n), energy.Inputs(n)...) {
			if f.Invest == nil {
				continue
			}
			if f.Nominal != 0 {
				diags = append(diags, r.diag(s, n.NodeLabel(),
					fmt.Sprintf("investment flow has fixed capacity %g, want 0", f.Nominal)))
			}
			if f.Invest.EPCost <= 0 {
				diags = append(diags, r.diag(s, n.NodeLabel(),
					fmt.Sprintf("investment flow has non-positive periodical cost %g", f.Invest.EPCost)))
			}
			if f.Invest.Capped && f.Invest.Maximum < 0 {
				diags = append(diags, r.diag(s, n.NodeLabel(),
					fmt.Sprintf("investment cap is negative: %g", f.Invest.Maximum)))
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
