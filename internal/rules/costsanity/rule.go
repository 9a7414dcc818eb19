package costsanity

import (
	"fmt"
	"math"

	"github.com/chrwm/OSEMF-Comparison/internal/energy"
	"github.com/chrwm/OSEMF-Comparison/internal/rule"
)

func init() {
	rule.Register(&Rule{})
}

// Rule checks that all cost parameters are finite and non-negative.
type Rule struct{}

// ID implements rule.Rule.
func (r *Rule) ID() string { return "RM011" }

// Name implements rule.Rule.
func (r *Rule) Name() string { return "cost-sanity" }

// Category implements rule.Rule.
func (r *Rule) Category() string { return "economics" }

// Check implements rule.Rule.
func (r *Rule) Check(s *energy.System) []energy.Diagnostic {
	var diags []energy.Diagnostic
	for _, n := range s.Nodes() {
		for _, f := range append(energy.Outputs(n), energy.Inputs(n)...) {
			if bad(f.VariableCost) || f.VariableCost < 0 {
				diags = append(diags, r.diag(s, n.NodeLabel(),
					fmt.Sprintf("invalid variable cost %g", f.VariableCost)))
			}
			if f.Invest != nil && (bad(f.Invest.EPCost) || f.Invest.EPCost < 0) {
				diags = append(diags, r.diag(s, n.NodeLabel(),
					fmt.Sprintf("invalid investment cost %g", f.Invest.EPCost)))
			}
			if bad(f.Nominal) || f.Nominal < 0 {
				diags = append(diags, r.diag(s, n.NodeLabel(),
					fmt.Sprintf("invalid nominal capacity %g", f.Nominal)))
			}
		}
	}
	return diags
}

func bad(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0)
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
