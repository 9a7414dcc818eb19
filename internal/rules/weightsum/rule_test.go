package weightsum

import (
	"strings"
	"testing"

	"github.com/chrwm/OSEMF-Comparison/internal/energy"
	"github.com/chrwm/OSEMF-Comparison/internal/series"
)

func TestCheck_FullYearClean(t *testing.T) {
	s := energy.New("test", 8784)
	s.Weights = series.Uniform(8784)

	r := &Rule{AllowSingle: true}
	if diags := r.Check(s); len(diags) != 0 {
		t.Errorf("expected no diagnostics, got %v", diags)
	}
}

func TestCheck_SectionLengthsClean(t *testing.T) {
	s := energy.New("test", 2)
	s.Weights = series.Weights{384, 8400}

	r := &Rule{AllowSingle: true}
	if diags := r.Check(s); len(diags) != 0 {
		t.Errorf("expected no diagnostics, got %v", diags)
	}
}

func TestCheck_WrongSumWarns(t *testing.T) {
	s := energy.New("test", 2)
	s.Weights = series.Weights{100, 100}

	r := &Rule{AllowSingle: true}
	diags := r.Check(s)
	if len(diags) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", len(diags))
	}
	if diags[0].RuleID != "RM007" {
		t.Errorf("rule ID = %s, want RM007", diags[0].RuleID)
	}
	if diags[0].Severity != energy.Warning {
		t.Errorf("severity = %s, want warning", diags[0].Severity)
	}
	if !strings.Contains(diags[0].Message, "200") {
		t.Errorf("message = %q, want it to report the actual sum", diags[0].Message)
	}
}

func TestCheck_LengthMismatchWarns(t *testing.T) {
	s := energy.New("test", 3)
	s.Weights = series.Weights{8784}

	r := &Rule{AllowSingle: true}
	diags := r.Check(s)
	if len(diags) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", len(diags))
	}
	if !strings.Contains(diags[0].Message, "1 weights for 3 timesteps") {
		t.Errorf("message = %q", diags[0].Message)
	}
}

func TestCheck_SingleTimestepSkipped(t *testing.T) {
	s := energy.New("test", 1)
	s.Weights = series.Uniform(1)

	r := &Rule{AllowSingle: true}
	if diags := r.Check(s); len(diags) != 0 {
		t.Errorf("expected single-timestep system to be skipped, got %v", diags)
	}

	r.AllowSingle = false
	if diags := r.Check(s); len(diags) != 1 {
		t.Errorf("expected 1 diagnostic with allow-single disabled, got %d", len(diags))
	}
}

func TestApplySettings(t *testing.T) {
	r := &Rule{AllowSingle: true}
	if err := r.ApplySettings(map[string]any{"allow-single": false}); err != nil {
		t.Fatalf("ApplySettings: %v", err)
	}
	if r.AllowSingle {
		t.Error("AllowSingle = true, want false")
	}

	if err := r.ApplySettings(map[string]any{"allow-single": "yes"}); err == nil {
		t.Error("expected error for non-bool setting")
	}
	if err := r.ApplySettings(map[string]any{"nope": true}); err == nil {
		t.Error("expected error for unknown setting")
	}
}
