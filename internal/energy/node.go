package energy

// Node is any labelled element of an energy system.
type Node interface {
	NodeLabel() string
}

// Bus is a balance point that connects flows. Every unit of energy put on
// a bus within a timestep must be taken off it in the same timestep.
type Bus struct {
	Label string
}

// NodeLabel implements Node.
func (b *Bus) NodeLabel() string { return b.Label }

// Source feeds energy onto a bus. Fuel imports are free sources; volatile
// renewables are sources with a fixed availability profile.
type Source struct {
	Label  string
	Output Flow
}

// NodeLabel implements Node.
func (s *Source) NodeLabel() string { return s.Label }

// Sink takes energy off a bus. Demands are fixed sinks; excess sinks are
// free and absorb overproduction.
type Sink struct {
	Label string
	Input Flow
}

// NodeLabel implements Node.
func (s *Sink) NodeLabel() string { return s.Label }

// Converter moves energy between buses with per-bus conversion factors.
// Power plants convert a fuel bus into an electricity bus; transmission
// and trade links convert between electricity buses.
//
// The factors relate each connected flow to the converter's activity:
// flow(bus) = Conversion[bus] * activity. An output factor below one is
// an efficiency; an input factor above one models fuel overconsumption.
type Converter struct {
	Label      string
	Inputs     []Flow
	Outputs    []Flow
	Conversion map[string]float64
}

// NodeLabel implements Node.
func (c *Converter) NodeLabel() string { return c.Label }

// Factor returns the conversion factor for the given bus, defaulting to 1
// when none is configured.
func (c *Converter) Factor(bus string) float64 {
	if f, ok := c.Conversion[bus]; ok {
		return f
	}
	return 1
}

// Outputs returns the flows a node feeds into buses.
func Outputs(n Node) []Flow {
	switch v := n.(type) {
	case *Source:
		return []Flow{v.Output}
	case *Converter:
		return v.Outputs
	}
	return nil
}

// Inputs returns the flows a node takes from buses.
func Inputs(n Node) []Flow {
	switch v := n.(type) {
	case *Sink:
		return []Flow{v.Input}
	case *Converter:
		return v.Inputs
	}
	return nil
}
