package flowendpoints

import (
	"fmt"

	"github.com/chrwm/OSEMF-Comparison/internal/energy"
	"github.com/chrwm/OSEMF-Comparison/internal/rule"
)

func init() {
	rule.Register(&Rule{})
}

// Rule checks that every flow connects to an existing bus and that
// converters have at least one input and one output.
type Rule struct{}

// ID implements rule.Rule.
func (r *Rule) ID() string { return "RM002" }

// Name implements rule.Rule.
func (r *Rule) Name() string { return "flow-endpoints" }

// Category implements rule.Rule.
func (r *Rule) Category() string { return "structure" }

// Check implements rule.Rule.
func (r *Rule) Check(s *energy.System) []energy.Diagnostic {
	buses := map[string]bool{}
	for _, b := range s.Buses() {
		buses[b.Label] = true
	}

	var diags []energy.Diagnostic
	for _, n := range s.Nodes() {
		if _, ok := n.(*energy.Bus); ok {
			continue
		}

		if c, ok := n.(*energy.Converter); ok {
			if len(c.Inputs) == 0 {
				diags = append(diags, r.diag(s, c.Label, "converter has no input flows"))
			}
			if len(c.Outputs) == 0 {
				diags = append(diags, r.diag(s, c.Label, "converter has no output flows"))
			}
		}

		for _, f := range energy.Outputs(n) {
			if !buses[f.Bus] {
				diags = append(diags, r.diag(s, n.NodeLabel(),
					fmt.Sprintf("output flow references unknown bus %q", f.Bus)))
			}
		}
		for _, f := range energy.Inputs(n) {
			if !buses[f.Bus] {
				diags = append(diags, r.diag(s, n.NodeLabel(),
					fmt.Sprintf("input flow references unknown bus %q", f.Bus)))
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
