// Package dispatch evaluates dispatch-mode systems with a merit-order
// heuristic: volatile feed-in first, then thermal units in ascending
// variable-cost order, then imports, then the backstop. It mirrors what
// the cost minimisation of the full linear program does for the
// reference systems, without requiring a solver.
package dispatch

import (
	"errors"
	"fmt"
	"sort"

	"github.com/chrwm/OSEMF-Comparison/internal/energy"
)

// backstopCostFloor separates backstop producers from regular ones.
const backstopCostFloor = 1e6

// thermalUnit is a dispatchable converter on a region's supply bus.
type thermalUnit struct {
	label   string
	fuelBus string
	// fuelPer is the fuel drawn per unit of electricity produced:
	// input factor over output factor.
	fuelPer float64
	cost    float64
	cap     float64
}

// volatileUnit is a fixed-profile source on a region's supply bus.
type volatileUnit struct {
	src *energy.Source
}

// tradeLink imports energy from another region's supply bus.
type tradeLink struct {
	label string
	from  *region
	cap   float64
	fee   float64
}

// region groups everything serving one demand bus.
type region struct {
	demandBus string
	demand    *energy.Sink
	supplyBus string
	transEff  float64

	backstop     *energy.Source
	backstopCost float64

	volatiles []volatileUnit
	thermals  []thermalUnit
	links     []tradeLink
}

// Run dispatches the system and returns per-timestep results.
// The system must be in dispatch mode (no investment options).
func Run(s *energy.System) (*Results, error) {
	if s.HasInvestment() {
		return nil, errors.New("dispatch: system has investment options; only fixed-capacity systems can be dispatched")
	}

	regions, err := buildRegions(s)
	if err != nil {
		return nil, err
	}

	res := newResults(s.Label, s.Timesteps, s.Weights)
	recordCapacities(res, regions)

	for t := 0; t < s.Timesteps; t++ {
		dispatchStep(res, regions, t)
	}

	finalize(res)
	return res, nil
}

// buildRegions derives the dispatch topology from the system graph: one
// region per fixed-demand sink, with its transmission link, backstop,
// volatile and thermal units, and trade links between regions.
func buildRegions(s *energy.System) ([]*region, error) {
	var regions []*region
	byDemandBus := map[string]*region{}

	for _, snk := range s.Sinks() {
		if !snk.Input.Fixed() {
			continue
		}
		r := &region{
			demandBus: snk.Input.Bus,
			demand:    snk,
			supplyBus: snk.Input.Bus,
			transEff:  1,
		}

		// A transmission converter feeding the demand bus moves the
		// supply side onto its input bus.
		for _, c := range s.Converters() {
			if len(c.Inputs) != 1 || len(c.Outputs) != 1 {
				continue
			}
			out := c.Outputs[0]
			if out.Bus != r.demandBus || out.Capped() || out.VariableCost >= backstopCostFloor {
				continue
			}
			r.supplyBus = c.Inputs[0].Bus
			r.transEff = c.Factor(r.demandBus)
			break
		}

		for _, src := range s.Sources() {
			if src.Output.Bus != r.demandBus || src.Output.VariableCost < backstopCostFloor {
				continue
			}
			r.backstop = src
			r.backstopCost = src.Output.VariableCost
		}

		regions = append(regions, r)
		byDemandBus[r.demandBus] = r
	}
	if len(regions) == 0 {
		return nil, errors.New("dispatch: system has no fixed demand")
	}

	supplyRegion := map[string]*region{}
	for _, r := range regions {
		supplyRegion[r.supplyBus] = r
	}

	for _, r := range regions {
		for _, src := range s.Sources() {
			if src.Output.Bus == r.supplyBus && src.Output.Fixed() {
				r.volatiles = append(r.volatiles, volatileUnit{src: src})
			}
		}

		for _, c := range s.Converters() {
			for _, out := range c.Outputs {
				if out.Bus != r.supplyBus {
					continue
				}
				if len(c.Inputs) != 1 {
					continue
				}
				in := c.Inputs[0].Bus
				if from, ok := supplyRegion[in]; ok {
					// Converter fed from another region's supply bus is
					// a trade link, not a generator.
					if from != r {
						r.links = append(r.links, tradeLink{
							label: c.Label,
							from:  from,
							cap:   out.Nominal,
							fee:   out.VariableCost,
						})
					}
					continue
				}
				if !out.Capped() {
					return nil, fmt.Errorf("dispatch: converter %q has no capacity limit", c.Label)
				}
				r.thermals = append(r.thermals, thermalUnit{
					label:   c.Label,
					fuelBus: in,
					fuelPer: c.Factor(in) / c.Factor(r.supplyBus),
					cost:    out.VariableCost,
					cap:     out.Nominal,
				})
			}
		}

		sort.SliceStable(r.thermals, func(i, j int) bool {
			return r.thermals[i].cost < r.thermals[j].cost
		})
	}

	return regions, nil
}

func recordCapacities(res *Results, regions []*region) {
	for _, r := range regions {
		for _, v := range r.volatiles {
			res.Capacity[v.src.Label] = v.src.Output.Nominal
		}
		for _, u := range r.thermals {
			res.Capacity[u.label] = u.cap
		}
	}
}

// stepState tracks remaining unit capacity within one timestep, shared
// across regions so imports cannot double-allocate exporter capacity.
type stepState struct {
	thermalLeft map[string]float64
	volSurplus  map[*region]float64
}

func dispatchStep(res *Results, regions []*region, t int) {
	st := &stepState{
		thermalLeft: map[string]float64{},
		volSurplus:  map[*region]float64{},
	}
	for _, r := range regions {
		for _, u := range r.thermals {
			st.thermalLeft[u.label] = u.cap
		}
	}

	// Pass 1: volatile feed-in and own thermal units.
	residual := map[*region]float64{}
	for _, r := range regions {
		demand := r.demand.Input.ValueAt(t)
		res.addTo(res.Demand, r.demandBus, t, demand)

		need := demand / r.transEff
		vol := 0.0
		for _, v := range r.volatiles {
			vol += v.src.Output.ValueAt(t)
		}

		used := vol
		if used > need {
			used = need
			st.volSurplus[r] = vol - need
		}
		for _, v := range r.volatiles {
			// Attribute production proportionally to availability.
			avail := v.src.Output.ValueAt(t)
			share := 0.0
			if vol > 0 {
				share = avail / vol * used
			}
			res.addTo(res.Generation, v.src.Label, t, share)
		}

		rem := need - used
		for i := range r.thermals {
			u := &r.thermals[i]
			if rem <= 0 {
				break
			}
			take := st.thermalLeft[u.label]
			if take > rem {
				take = rem
			}
			if take <= 0 {
				continue
			}
			st.thermalLeft[u.label] -= take
			rem -= take
			res.addTo(res.Generation, u.label, t, take)
			res.addTo(res.FuelUse, u.fuelBus, t, take*u.fuelPer)
			res.TotalCost += res.Weights.At(t) * take * u.cost
		}
		residual[r] = rem
	}

	// Pass 2: imports over trade links, exporter surplus first, then
	// exporter thermal spare in merit order.
	for _, r := range regions {
		rem := residual[r]
		for _, link := range r.links {
			if rem <= 0 {
				break
			}
			linkLeft := link.cap

			// Exporter volatile surplus at the trade fee only.
			if surplus := st.volSurplus[link.from]; surplus > 0 && linkLeft > 0 {
				take := min3(surplus, linkLeft, rem)
				st.volSurplus[link.from] -= take
				linkLeft -= take
				rem -= take
				res.addTo(res.Imports, link.label, t, take)
				attributeVolatile(res, link.from, t, take)
				res.TotalCost += res.Weights.At(t) * take * link.fee
			}

			// Exporter thermal spare at generation cost plus fee.
			for i := range link.from.thermals {
				u := &link.from.thermals[i]
				if rem <= 0 || linkLeft <= 0 {
					break
				}
				take := min3(st.thermalLeft[u.label], linkLeft, rem)
				if take <= 0 {
					continue
				}
				st.thermalLeft[u.label] -= take
				linkLeft -= take
				rem -= take
				res.addTo(res.Imports, link.label, t, take)
				res.addTo(res.Generation, u.label, t, take)
				res.addTo(res.FuelUse, u.fuelBus, t, take*u.fuelPer)
				res.TotalCost += res.Weights.At(t) * take * (u.cost + link.fee)
			}
		}
		residual[r] = rem
	}

	// Pass 3: backstop and excess accounting.
	for _, r := range regions {
		if rem := residual[r]; rem > 1e-12 {
			short := rem * r.transEff
			if r.backstop != nil {
				res.addTo(res.Generation, r.backstop.Label, t, short)
				res.TotalCost += res.Weights.At(t) * short * r.backstopCost
			}
			res.BackstopEnergy += res.Weights.At(t) * short
		}
		if surplus := st.volSurplus[r]; surplus > 0 {
			res.addTo(res.Excess, r.demandBus, t, surplus)
			res.ExcessEnergy += res.Weights.At(t) * surplus
		}
	}
}

// attributeVolatile books exported surplus production onto the exporting
// region's volatile sources, proportional to their availability.
func attributeVolatile(res *Results, r *region, t int, amount float64) {
	total := 0.0
	for _, v := range r.volatiles {
		total += v.src.Output.ValueAt(t)
	}
	if total <= 0 {
		return
	}
	for _, v := range r.volatiles {
		share := v.src.Output.ValueAt(t) / total * amount
		res.addTo(res.Generation, v.src.Label, t, share)
	}
}

func finalize(res *Results) {
	for _, d := range res.Demand {
		res.EnergyServed += d.WeightedSum(res.Weights)
	}
}

func min3(a, b, c float64) float64 {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}
