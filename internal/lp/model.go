// Package lp formulates an energy system as a linear program and writes
// it in CPLEX LP text format, ready to be handed to an external solver.
package lp

import (
	"fmt"

	"github.com/chrwm/OSEMF-Comparison/internal/energy"
)

// term is one linear coefficient*variable pair.
type term struct {
	coef float64
	v    string
}

// sense of a constraint row.
const (
	senseEq = "="
	senseLe = "<="
)

// constraint is one named linear constraint row.
type constraint struct {
	name  string
	terms []term
	sense string
	rhs   float64
}

// bound fixes or limits a single variable. Equal means the variable is
// pinned to Upper.
type bound struct {
	v     string
	upper float64
	equal bool
}

// Problem is an LP ready for serialization.
type Problem struct {
	Name        string
	objective   []term
	constraints []constraint
	bounds      []bound
}

// FromSystem formulates the linear program for a system.
//
// Sources and sinks get one flow variable per timestep; converters get
// one activity variable per timestep with per-bus conversion factors.
// Investment flows additionally get a capacity variable. The objective
// minimises timestep-weighted variable costs plus annuitized capacity
// costs.
func FromSystem(s *energy.System) (*Problem, error) {
	p := &Problem{Name: s.Label}

	for _, n := range s.Nodes() {
		switch v := n.(type) {
		case *energy.Bus:
			continue
		case *energy.Source:
			if err := p.addSource(s, v); err != nil {
				return nil, err
			}
		case *energy.Sink:
			p.addSink(s, v)
		case *energy.Converter:
			if err := p.addConverter(s, v); err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("lp: unsupported node type %T", n)
		}
	}

	p.addBalances(s)
	return p, nil
}

func flowVar(label string, t int) string {
	return fmt.Sprintf("f_%s_%d", label, t)
}

func activityVar(label string, t int) string {
	return fmt.Sprintf("a_%s_%d", label, t)
}

func capVar(label string) string {
	return "cap_" + label
}

func (p *Problem) addSource(s *energy.System, src *energy.Source) error {
	f := src.Output
	if f.Invest != nil {
		p.addInvestment(src.Label, f)
	}

	for t := 0; t < s.Timesteps; t++ {
		v := flowVar(src.Label, t)
		if f.VariableCost != 0 {
			p.objective = append(p.objective, term{coef: s.Weights.At(t) * f.VariableCost, v: v})
		}

		switch {
		case f.Fixed() && f.Invest != nil:
			// Flow tracks the invested capacity times availability.
			p.constraints = append(p.constraints, constraint{
				name:  fmt.Sprintf("fix_%s_%d", src.Label, t),
				terms: []term{{1, v}, {-f.Profile.At(t), capVar(src.Label)}},
				sense: senseEq,
			})
		case f.Fixed():
			p.bounds = append(p.bounds, bound{v: v, upper: f.ValueAt(t), equal: true})
		case f.Capped():
			p.bounds = append(p.bounds, bound{v: v, upper: f.Nominal})
		}
	}
	return nil
}

func (p *Problem) addSink(s *energy.System, snk *energy.Sink) {
	f := snk.Input
	for t := 0; t < s.Timesteps; t++ {
		v := flowVar(snk.Label, t)
		if f.VariableCost != 0 {
			p.objective = append(p.objective, term{coef: s.Weights.At(t) * f.VariableCost, v: v})
		}
		if f.Fixed() {
			p.bounds = append(p.bounds, bound{v: v, upper: f.ValueAt(t), equal: true})
		} else if f.Capped() {
			p.bounds = append(p.bounds, bound{v: v, upper: f.Nominal})
		}
	}
}

func (p *Problem) addConverter(s *energy.System, c *energy.Converter) error {
	for _, out := range c.Outputs {
		factor := c.Factor(out.Bus)
		if factor <= 0 {
			return fmt.Errorf("lp: converter %q: non-positive conversion factor for bus %q", c.Label, out.Bus)
		}
		if out.Invest != nil {
			p.addInvestment(c.Label, out)
		}

		for t := 0; t < s.Timesteps; t++ {
			a := activityVar(c.Label, t)
			if out.VariableCost != 0 {
				p.objective = append(p.objective, term{
					coef: s.Weights.At(t) * out.VariableCost * factor,
					v:    a,
				})
			}

			switch {
			case out.Invest != nil:
				p.constraints = append(p.constraints, constraint{
					name:  fmt.Sprintf("cap_%s_%d", c.Label, t),
					terms: []term{{factor, a}, {-1, capVar(c.Label)}},
					sense: senseLe,
				})
			case out.Capped():
				p.constraints = append(p.constraints, constraint{
					name:  fmt.Sprintf("cap_%s_%d", c.Label, t),
					terms: []term{{factor, a}},
					sense: senseLe,
					rhs:   out.Nominal,
				})
			}
		}
	}
	return nil
}

// addInvestment registers the capacity variable of an investment flow:
// its periodical cost in the objective and its upper bound if capped.
func (p *Problem) addInvestment(label string, f energy.Flow) {
	cv := capVar(label)
	p.objective = append(p.objective, term{coef: f.Invest.EPCost, v: cv})
	if f.Invest.Capped {
		p.bounds = append(p.bounds, bound{v: cv, upper: f.Invest.Maximum})
	}
}

// addBalances emits one equality per bus and timestep: everything put on
// the bus equals everything taken off it.
func (p *Problem) addBalances(s *energy.System) {
	for _, b := range s.Buses() {
		for t := 0; t < s.Timesteps; t++ {
			var terms []term

			for _, n := range s.Producers(b.Label) {
				switch v := n.(type) {
				case *energy.Source:
					terms = append(terms, term{1, flowVar(v.Label, t)})
				case *energy.Converter:
					terms = append(terms, term{v.Factor(b.Label), activityVar(v.Label, t)})
				}
			}
			for _, n := range s.Consumers(b.Label) {
				switch v := n.(type) {
				case *energy.Sink:
					terms = append(terms, term{-1, flowVar(v.Label, t)})
				case *energy.Converter:
					terms = append(terms, term{-v.Factor(b.Label), activityVar(v.Label, t)})
				}
			}

			if len(terms) == 0 {
				continue
			}
			p.constraints = append(p.constraints, constraint{
				name:  fmt.Sprintf("balance_%s_%d", b.Label, t),
				terms: terms,
				sense: senseEq,
			})
		}
	}
}
