package costsanity

import (
	"math"
	"strings"
	"testing"

	"github.com/chrwm/OSEMF-Comparison/internal/energy"
)

func TestCheck_SaneCosts(t *testing.T) {
	s := energy.New("test", 1)
	s.Add(
		&energy.Bus{Label: "el"},
		&energy.Source{Label: "plant", Output: energy.Flow{
			Bus: "el", Nominal: 100, VariableCost: 19.89,
		}},
		&energy.Source{Label: "wind", Output: energy.Flow{
			Bus: "el", Invest: &energy.Investment{EPCost: 107000},
		}},
	)

	r := &Rule{}
	if diags := r.Check(s); len(diags) != 0 {
		t.Errorf("expected no diagnostics, got %v", diags)
	}
}

func TestCheck_NegativeVariableCostReports(t *testing.T) {
	s := energy.New("test", 1)
	s.Add(
		&energy.Bus{Label: "el"},
		&energy.Source{Label: "plant", Output: energy.Flow{
			Bus: "el", VariableCost: -5,
		}},
	)

	r := &Rule{}
	diags := r.Check(s)
	if len(diags) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", len(diags))
	}
	if diags[0].RuleID != "RM011" {
		t.Errorf("rule ID = %s, want RM011", diags[0].RuleID)
	}
	if !strings.Contains(diags[0].Message, "variable cost") {
		t.Errorf("message = %q", diags[0].Message)
	}
}

func TestCheck_NaNAndInfReport(t *testing.T) {
	s := energy.New("test", 1)
	s.Add(
		&energy.Bus{Label: "el"},
		&energy.Source{Label: "a", Output: energy.Flow{
			Bus: "el", VariableCost: math.NaN(),
		}},
		&energy.Source{Label: "b", Output: energy.Flow{
			Bus: "el", Nominal: math.Inf(1),
		}},
	)

	r := &Rule{}
	if diags := r.Check(s); len(diags) != 2 {
		t.Errorf("expected 2 diagnostics, got %d", len(diags))
	}
}

func TestCheck_BadInvestmentCostReports(t *testing.T) {
	s := energy.New("test", 1)
	s.Add(
		&energy.Bus{Label: "el"},
		&energy.Source{Label: "wind", Output: energy.Flow{
			Bus: "el", Invest: &energy.Investment{EPCost: -1},
		}},
	)

	r := &Rule{}
	diags := r.Check(s)
	if len(diags) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", len(diags))
	}
	if !strings.Contains(diags[0].Message, "investment cost") {
		t.Errorf("message = %q", diags[0].Message)
	}
}
