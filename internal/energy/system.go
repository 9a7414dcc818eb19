package energy

import "github.com/chrwm/OSEMF-Comparison/internal/series"

// System holds a complete energy-system model: buses, sources, sinks and
// converters, plus the temporal resolution they are modelled at.
type System struct {
	// Label identifies the model, e.g. the catalog variant name.
	Label string

	// Timesteps is the number of timesteps per model year.
	Timesteps int

	// Weights holds the duration in hours represented by each timestep.
	Weights series.Weights

	nodes []Node
}

// New returns an empty system with the given label and timestep count.
func New(label string, timesteps int) *System {
	return &System{Label: label, Timesteps: timesteps}
}

// Add appends nodes to the system in order. Duplicate labels are kept;
// validation reports them.
func (s *System) Add(nodes ...Node) {
	s.nodes = append(s.nodes, nodes...)
}

// Nodes returns all nodes in insertion order.
func (s *System) Nodes() []Node {
	result := make([]Node, len(s.nodes))
	copy(result, s.nodes)
	return result
}

// Node returns the first node with the given label, or nil.
func (s *System) Node(label string) Node {
	for _, n := range s.nodes {
		if n.NodeLabel() == label {
			return n
		}
	}
	return nil
}

// Buses returns all buses in insertion order.
func (s *System) Buses() []*Bus {
	var buses []*Bus
	for _, n := range s.nodes {
		if b, ok := n.(*Bus); ok {
			buses = append(buses, b)
		}
	}
	return buses
}

// Bus returns the bus with the given label, or nil.
func (s *System) Bus(label string) *Bus {
	for _, n := range s.nodes {
		if b, ok := n.(*Bus); ok && b.Label == label {
			return b
		}
	}
	return nil
}

// Sources returns all sources in insertion order.
func (s *System) Sources() []*Source {
	var out []*Source
	for _, n := range s.nodes {
		if v, ok := n.(*Source); ok {
			out = append(out, v)
		}
	}
	return out
}

// Sinks returns all sinks in insertion order.
func (s *System) Sinks() []*Sink {
	var out []*Sink
	for _, n := range s.nodes {
		if v, ok := n.(*Sink); ok {
			out = append(out, v)
		}
	}
	return out
}

// Converters returns all converters in insertion order.
func (s *System) Converters() []*Converter {
	var out []*Converter
	for _, n := range s.nodes {
		if v, ok := n.(*Converter); ok {
			out = append(out, v)
		}
	}
	return out
}

// Producers returns the non-bus nodes with an output flow onto the given bus.
func (s *System) Producers(bus string) []Node {
	var out []Node
	for _, n := range s.nodes {
		for _, f := range Outputs(n) {
			if f.Bus == bus {
				out = append(out, n)
				break
			}
		}
	}
	return out
}

// Consumers returns the non-bus nodes with an input flow from the given bus.
func (s *System) Consumers(bus string) []Node {
	var out []Node
	for _, n := range s.nodes {
		for _, f := range Inputs(n) {
			if f.Bus == bus {
				out = append(out, n)
				break
			}
		}
	}
	return out
}

// HasInvestment reports whether any flow in the system carries an
// investment option.
func (s *System) HasInvestment() bool {
	for _, n := range s.nodes {
		for _, f := range Outputs(n) {
			if f.Invest != nil {
				return true
			}
		}
		for _, f := range Inputs(n) {
			if f.Invest != nil {
				return true
			}
		}
	}
	return false
}
