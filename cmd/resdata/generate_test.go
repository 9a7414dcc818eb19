package main

import (
	"testing"

	"github.com/chrwm/OSEMF-Comparison/internal/catalog"
)

func TestGenerate_ColumnsAndLength(t *testing.T) {
	data := Generate(catalog.T16, 1)

	if data.Len() != 16 {
		t.Errorf("Len() = %d, want 16", data.Len())
	}

	for _, col := range catalog.T16.ProfileColumns() {
		if _, ok := data.Column(col); !ok {
			t.Errorf("missing column %q", col)
		}
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	a := Generate(catalog.T16, 7)
	b := Generate(catalog.T16, 7)

	for _, col := range a.Columns() {
		ca, _ := a.Column(col)
		cb, _ := b.Column(col)
		for t16 := range ca {
			if ca[t16] != cb[t16] {
				t.Fatalf("column %q differs at row %d for same seed", col, t16)
			}
		}
	}
}

func TestGenerate_AvailabilityWithinBounds(t *testing.T) {
	data := Generate(catalog.T8784, 3)

	for _, col := range []string{"BBWIND_P", "BBSOLPV_P", "BESOLPV_P"} {
		s, ok := data.Column(col)
		if !ok {
			t.Fatalf("missing column %q", col)
		}
		for i, v := range s {
			if v < 0 || v > 1 {
				t.Fatalf("%s[%d] = %v, want within [0, 1]", col, i, v)
			}
		}
	}
}

func TestGenerate_BuildsVariant(t *testing.T) {
	data := Generate(catalog.T16, 1)

	if _, err := catalog.Build(catalog.T16, data); err != nil {
		t.Fatalf("Build with generated data: %v", err)
	}
}
