package profilebounds

import (
	"strings"
	"testing"

	"github.com/chrwm/OSEMF-Comparison/internal/energy"
	"github.com/chrwm/OSEMF-Comparison/internal/series"
)

func TestCheck_ValidProfiles(t *testing.T) {
	s := energy.New("test", 2)
	s.Add(
		&energy.Bus{Label: "el"},
		&energy.Source{Label: "wind", Output: energy.Flow{
			Bus: "el", Nominal: 10, Profile: series.Series{0, 1},
		}},
		&energy.Sink{Label: "demand", Input: energy.Flow{
			Bus: "el", Nominal: 1, Profile: series.Series{2110.1, 1477.1},
		}},
	)

	r := &Rule{MaxFactor: 1.0}
	if diags := r.Check(s); len(diags) != 0 {
		t.Errorf("expected no diagnostics, got %v", diags)
	}
}

func TestCheck_AvailabilityAboveMaxReports(t *testing.T) {
	s := energy.New("test", 2)
	s.Add(
		&energy.Bus{Label: "el"},
		&energy.Source{Label: "wind", Output: energy.Flow{
			Bus: "el", Nominal: 10, Profile: series.Series{0.5, 1.4},
		}},
	)

	r := &Rule{MaxFactor: 1.0}
	diags := r.Check(s)
	if len(diags) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", len(diags))
	}
	if diags[0].RuleID != "RM006" {
		t.Errorf("rule ID = %s, want RM006", diags[0].RuleID)
	}
	if !strings.Contains(diags[0].Message, "timestep 1") {
		t.Errorf("message = %q, want it to name the timestep", diags[0].Message)
	}
}

func TestCheck_NegativeAvailabilityReports(t *testing.T) {
	s := energy.New("test", 1)
	s.Add(
		&energy.Bus{Label: "el"},
		&energy.Source{Label: "wind", Output: energy.Flow{
			Bus: "el", Nominal: 10, Profile: series.Series{-0.1},
		}},
	)

	r := &Rule{MaxFactor: 1.0}
	if diags := r.Check(s); len(diags) != 1 {
		t.Errorf("expected 1 diagnostic, got %d", len(diags))
	}
}

func TestCheck_NegativeDemandReports(t *testing.T) {
	s := energy.New("test", 2)
	s.Add(
		&energy.Bus{Label: "el"},
		&energy.Sink{Label: "demand", Input: energy.Flow{
			Bus: "el", Nominal: 1, Profile: series.Series{100, -5},
		}},
	)

	r := &Rule{MaxFactor: 1.0}
	diags := r.Check(s)
	if len(diags) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", len(diags))
	}
	if !strings.Contains(diags[0].Message, "negative demand") {
		t.Errorf("message = %q", diags[0].Message)
	}
}

func TestCheck_DemandAboveOneAllowed(t *testing.T) {
	// Demand profiles carry absolute megawatts, not factors.
	s := energy.New("test", 1)
	s.Add(
		&energy.Bus{Label: "el"},
		&energy.Sink{Label: "demand", Input: energy.Flow{
			Bus: "el", Nominal: 1, Profile: series.Series{3500},
		}},
	)

	r := &Rule{MaxFactor: 1.0}
	if diags := r.Check(s); len(diags) != 0 {
		t.Errorf("expected no diagnostics for absolute demand, got %v", diags)
	}
}

func TestApplySettings(t *testing.T) {
	r := &Rule{MaxFactor: 1.0}
	if err := r.ApplySettings(map[string]any{"max-factor": 1.5}); err != nil {
		t.Fatalf("ApplySettings: %v", err)
	}
	if r.MaxFactor != 1.5 {
		t.Errorf("MaxFactor = %v, want 1.5", r.MaxFactor)
	}

	if err := r.ApplySettings(map[string]any{"max-factor": "big"}); err == nil {
		t.Error("expected error for non-numeric setting")
	}
	if err := r.ApplySettings(map[string]any{"nope": 1}); err == nil {
		t.Error("expected error for unknown setting")
	}
}
