// Package catalog defines the reference energy system model variants and
// builds each of them as an in-memory system.
package catalog

import (
	"fmt"
	"strings"
)

// Variant names one of the reference energy system models.
type Variant string

// The model variants. S1 is a single-fuel, single-demand toy system; the
// T variants are the two-region Brandenburg/Berlin system at increasing
// temporal resolution, as dispatch (T) or greenfield investment (TI)
// models.
const (
	S1     Variant = "S1"
	T1     Variant = "T1"
	T16    Variant = "T16"
	T8784  Variant = "T8784"
	TI1    Variant = "TI1"
	TI16   Variant = "TI16"
	TI8784 Variant = "TI8784"
)

// Mode classifies what the optimisation decides for a variant.
type Mode string

// Variant modes.
const (
	// ModeSimplified is the single-region reference system.
	ModeSimplified Mode = "simplified"
	// ModeDispatch operates fixed existing capacity.
	ModeDispatch Mode = "dispatch"
	// ModeInvestment additionally decides new capacity, starting from a
	// system with no existing capacity.
	ModeInvestment Mode = "investment"
)

// All returns every variant in catalog order.
func All() []Variant {
	return []Variant{S1, T1, T16, T8784, TI1, TI16, TI8784}
}

// Parse resolves a user-provided variant name, case-insensitively.
func Parse(name string) (Variant, error) {
	for _, v := range All() {
		if strings.EqualFold(string(v), name) {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown variant %q (available: %s)", name, nameList())
}

// Timesteps returns the number of timesteps per model year.
func (v Variant) Timesteps() int {
	switch v {
	case S1, T1, TI1:
		return 1
	case T16, TI16:
		return 16
	case T8784, TI8784:
		return 8784
	}
	return 0
}

// Mode returns the variant's optimisation mode.
func (v Variant) Mode() Mode {
	switch v {
	case S1:
		return ModeSimplified
	case TI1, TI16, TI8784:
		return ModeInvestment
	default:
		return ModeDispatch
	}
}

// NeedsDataset reports whether building the variant requires profile data.
// Single-timestep variants fall back to built-in constant profiles.
func (v Variant) NeedsDataset() bool {
	return v.Timesteps() > 1
}

// ProfileColumns returns the dataset column names a variant's build
// requires, in catalog order. Single-timestep variants need none.
func (v Variant) ProfileColumns() []string {
	if !v.NeedsDataset() {
		return nil
	}

	var cols []string
	for _, r := range regions {
		for _, vol := range volatiles {
			if _, exists := vol.dispatchCap[r]; exists {
				cols = append(cols, r+vol.suffix)
			}
		}
	}
	for _, r := range regions {
		cols = append(cols, "demand_"+r+"EL_FIN")
	}
	return cols
}

func nameList() string {
	names := make([]string, 0, len(All()))
	for _, v := range All() {
		names = append(names, string(v))
	}
	return strings.Join(names, ", ")
}
