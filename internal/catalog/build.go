package catalog

import (
	"fmt"

	"github.com/chrwm/OSEMF-Comparison/internal/econ"
	"github.com/chrwm/OSEMF-Comparison/internal/energy"
	"github.com/chrwm/OSEMF-Comparison/internal/series"
)

// Build constructs the energy system for a variant. Multi-timestep
// variants require a dataset providing one profile column per volatile
// source and demand sink, named after the node label. Single-timestep
// variants accept a nil dataset and fall back to built-in constants.
func Build(v Variant, data *series.Dataset) (*energy.System, error) {
	steps := v.Timesteps()
	if steps == 0 {
		return nil, fmt.Errorf("unknown variant %q", v)
	}
	if data == nil && v.NeedsDataset() {
		return nil, fmt.Errorf("variant %s needs a dataset with %d rows", v, steps)
	}
	if data != nil && data.Len() != steps {
		return nil, fmt.Errorf("variant %s: dataset has %d rows, want %d", v, data.Len(), steps)
	}

	if v == S1 {
		return buildS1(), nil
	}
	return buildTwoRegion(v, data)
}

// buildS1 constructs the simplified single-fuel, single-demand reference
// system: one gas import, one gas plant, one constant demand.
func buildS1() *energy.System {
	s := energy.New(string(S1), 1)
	s.Weights = series.Uniform(1)

	gas := &energy.Bus{Label: "GAS"}
	el := &energy.Bus{Label: "ELECTRICITY"}
	s.Add(gas, el)

	s.Add(&energy.Source{
		Label:  "GAS_IMPORT",
		Output: energy.Flow{Bus: gas.Label},
	})

	s.Add(&energy.Sink{
		Label: "DEMAND",
		Input: energy.Flow{
			Bus:     el.Label,
			Nominal: 1,
			Profile: series.Constant(s1Demand, 1),
		},
	})

	s.Add(&energy.Converter{
		Label:  "GAS_POWERPLANT",
		Inputs: []energy.Flow{{Bus: gas.Label}},
		Outputs: []energy.Flow{{
			Bus:          el.Label,
			Nominal:      s1PlantCap,
			VariableCost: s1PlantVarCost,
		}},
		Conversion: map[string]float64{
			el.Label:  1,
			gas.Label: s1GasInputFactor,
		},
	})

	return s
}

// buildTwoRegion constructs the Brandenburg/Berlin system for the T and
// TI variants.
func buildTwoRegion(v Variant, data *series.Dataset) (*energy.System, error) {
	steps := v.Timesteps()
	invest := v.Mode() == ModeInvestment

	s := energy.New(string(v), steps)
	switch steps {
	case 16:
		s.Weights = sectionLengths16
	default:
		s.Weights = series.Uniform(steps)
	}
	if data != nil && data.Weights != nil {
		s.Weights = data.Weights
	}

	// Fuel and electricity buses per region.
	for _, r := range regions {
		for _, f := range fuels {
			s.Add(&energy.Bus{Label: r + f.name})
		}
		s.Add(&energy.Bus{Label: r + "EL_SEC"})
		s.Add(&energy.Bus{Label: r + "EL_FIN"})
	}

	// Fuel import sources.
	for _, r := range regions {
		for _, f := range fuels {
			s.Add(&energy.Source{
				Label:  "r" + r + f.code + "_IMPORT",
				Output: energy.Flow{Bus: r + f.name},
			})
		}
	}

	// Volatile renewables with fixed availability profiles.
	for _, r := range regions {
		for _, vol := range volatiles {
			cap, exists := vol.dispatchCap[r]
			if !exists {
				continue
			}
			label := r + vol.suffix
			profile, err := profileFor(data, label, steps, 1)
			if err != nil {
				return nil, fmt.Errorf("variant %s: %w", v, err)
			}

			flow := energy.Flow{Bus: r + "EL_SEC", Profile: profile}
			if invest {
				inv, err := investmentFor(vol.capex[r], vol.life, nil, r)
				if err != nil {
					return nil, fmt.Errorf("variant %s: %s: %w", v, label, err)
				}
				flow.Invest = inv
			} else {
				flow.Nominal = cap
			}
			s.Add(&energy.Source{Label: label, Output: flow})
		}
	}

	// Demand and excess sinks on the final electricity buses.
	for _, r := range regions {
		fin := r + "EL_FIN"
		label := "demand_" + fin
		profile, err := profileFor(data, label, steps, defaultDemand[r])
		if err != nil {
			return nil, fmt.Errorf("variant %s: %w", v, err)
		}
		s.Add(&energy.Sink{
			Label: label,
			Input: energy.Flow{Bus: fin, Nominal: 1, Profile: profile},
		})
		s.Add(&energy.Sink{
			Label: "excess_" + fin,
			Input: energy.Flow{Bus: fin},
		})
	}

	// Thermal plants.
	for _, r := range regions {
		for _, p := range plants {
			label := r + p.suffix
			out := energy.Flow{Bus: r + "EL_SEC", VariableCost: p.varCost}
			if invest {
				inv, err := investmentFor(p.capex[r], p.life, p.blocked, r)
				if err != nil {
					return nil, fmt.Errorf("variant %s: %s: %w", v, label, err)
				}
				out.Invest = inv
			} else {
				out.Nominal = p.dispatchCap[r]
			}
			s.Add(&energy.Converter{
				Label:      label,
				Inputs:     []energy.Flow{{Bus: r + p.fuel}},
				Outputs:    []energy.Flow{out},
				Conversion: map[string]float64{r + "EL_SEC": p.efficiency},
			})
		}
	}

	// Transmission from secondary to final bus, trade links between the
	// regions' secondary buses, and backstops on the final buses.
	for _, r := range regions {
		sec := r + "EL_SEC"
		fin := r + "EL_FIN"
		other := otherRegion(r)

		s.Add(&energy.Converter{
			Label:      r + "TRANS",
			Inputs:     []energy.Flow{{Bus: sec}},
			Outputs:    []energy.Flow{{Bus: fin}},
			Conversion: map[string]float64{fin: transmissionEff},
		})

		s.Add(&energy.Converter{
			Label:  r + "INT",
			Inputs: []energy.Flow{{Bus: other + "EL_SEC"}},
			Outputs: []energy.Flow{{
				Bus:          sec,
				Nominal:      tradeCap,
				VariableCost: tradeFee[r],
			}},
			Conversion: map[string]float64{sec: 1},
		})

		s.Add(&energy.Source{
			Label: r + "BACKSTOP_FIN",
			Output: energy.Flow{
				Bus:          fin,
				Nominal:      backstopCap,
				VariableCost: backstopCost,
			},
		})
	}

	return s, nil
}

// profileFor resolves the profile column for a node. Without a dataset
// (single-timestep variants) it returns a constant fallback.
func profileFor(data *series.Dataset, column string, steps int, fallback float64) (series.Series, error) {
	if data == nil {
		return series.Constant(fallback, steps), nil
	}
	profile, err := data.Require(column)
	if err != nil {
		return nil, err
	}
	return profile, nil
}

// investmentFor computes the annuitized expansion option for one
// technology in one region.
func investmentFor(capex float64, life int, blocked []string, region string) (*energy.Investment, error) {
	ep, err := econ.Annuity(capex, life, wacc)
	if err != nil {
		return nil, err
	}
	inv := &energy.Investment{EPCost: ep}
	for _, b := range blocked {
		if b == region {
			inv.Capped = true
			inv.Maximum = 0
		}
	}
	return inv, nil
}

func otherRegion(r string) string {
	if r == "BB" {
		return "BE"
	}
	return "BB"
}
