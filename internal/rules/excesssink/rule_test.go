package excesssink

import (
	"strings"
	"testing"

	"github.com/chrwm/OSEMF-Comparison/internal/energy"
	"github.com/chrwm/OSEMF-Comparison/internal/series"
)

func TestCheck_DemandBusWithExcessSink(t *testing.T) {
	s := energy.New("test", 1)
	s.Add(
		&energy.Bus{Label: "el"},
		&energy.Sink{Label: "demand", Input: energy.Flow{
			Bus: "el", Nominal: 1, Profile: series.Constant(100, 1),
		}},
		&energy.Sink{Label: "excess", Input: energy.Flow{Bus: "el"}},
	)

	r := &Rule{}
	if diags := r.Check(s); len(diags) != 0 {
		t.Errorf("expected no diagnostics, got %v", diags)
	}
}

func TestCheck_MissingExcessSinkWarns(t *testing.T) {
	s := energy.New("test", 1)
	s.Add(
		&energy.Bus{Label: "el"},
		&energy.Sink{Label: "demand", Input: energy.Flow{
			Bus: "el", Nominal: 1, Profile: series.Constant(100, 1),
		}},
	)

	r := &Rule{}
	diags := r.Check(s)
	if len(diags) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", len(diags))
	}
	if diags[0].RuleID != "RM012" {
		t.Errorf("rule ID = %s, want RM012", diags[0].RuleID)
	}
	if diags[0].Severity != energy.Warning {
		t.Errorf("severity = %s, want warning", diags[0].Severity)
	}
	if !strings.Contains(diags[0].Message, "excess sink") {
		t.Errorf("message = %q", diags[0].Message)
	}
}

func TestCheck_BusWithoutDemandIgnored(t *testing.T) {
	s := energy.New("test", 1)
	s.Add(
		&energy.Bus{Label: "fuel"},
		&energy.Source{Label: "import", Output: energy.Flow{Bus: "fuel"}},
	)

	r := &Rule{}
	if diags := r.Check(s); len(diags) != 0 {
		t.Errorf("expected no diagnostics, got %v", diags)
	}
}
