package busconnectivity

import (
	"testing"

	"github.com/chrwm/OSEMF-Comparison/internal/energy"
)

func TestCheck_ConnectedBus(t *testing.T) {
	s := energy.New("test", 1)
	s.Add(
		&energy.Bus{Label: "el"},
		&energy.Source{Label: "wind", Output: energy.Flow{Bus: "el"}},
		&energy.Sink{Label: "demand", Input: energy.Flow{Bus: "el"}},
	)

	r := &Rule{}
	if diags := r.Check(s); len(diags) != 0 {
		t.Errorf("expected no diagnostics, got %v", diags)
	}
}

func TestCheck_NoConsumers(t *testing.T) {
	s := energy.New("test", 1)
	s.Add(
		&energy.Bus{Label: "el"},
		&energy.Source{Label: "wind", Output: energy.Flow{Bus: "el"}},
	)

	r := &Rule{}
	diags := r.Check(s)
	if len(diags) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", len(diags))
	}
	if diags[0].RuleID != "RM003" {
		t.Errorf("rule ID = %s, want RM003", diags[0].RuleID)
	}
	if diags[0].Severity != energy.Warning {
		t.Errorf("severity = %s, want warning", diags[0].Severity)
	}
}

func TestCheck_IsolatedBusReportsBothSides(t *testing.T) {
	s := energy.New("test", 1)
	s.Add(&energy.Bus{Label: "lonely"})

	r := &Rule{}
	if diags := r.Check(s); len(diags) != 2 {
		t.Errorf("expected 2 diagnostics, got %d", len(diags))
	}
}

func TestCheck_ConverterCountsOnBothBuses(t *testing.T) {
	s := energy.New("test", 1)
	s.Add(
		&energy.Bus{Label: "fuel"},
		&energy.Bus{Label: "el"},
		&energy.Source{Label: "import", Output: energy.Flow{Bus: "fuel"}},
		&energy.Sink{Label: "demand", Input: energy.Flow{Bus: "el"}},
		&energy.Converter{
			Label:   "plant",
			Inputs:  []energy.Flow{{Bus: "fuel"}},
			Outputs: []energy.Flow{{Bus: "el"}},
		},
	)

	r := &Rule{}
	if diags := r.Check(s); len(diags) != 0 {
		t.Errorf("expected converter to satisfy both buses, got %v", diags)
	}
}
