package dispatch

import (
	"time"

	"github.com/google/uuid"

	"github.com/chrwm/OSEMF-Comparison/internal/series"
)

// Results holds the outcome of a merit-order dispatch run.
type Results struct {
	// RunID uniquely identifies the run in exported artifacts.
	RunID string

	Model     string
	StartedAt time.Time
	Timesteps int
	Weights   series.Weights

	// Generation holds the produced energy per producing node label,
	// one value per timestep. Backstop nodes are included.
	Generation map[string]series.Series

	// Imports holds the energy moved per trade-link label.
	Imports map[string]series.Series

	// Excess holds the surplus absorbed per demand bus.
	Excess map[string]series.Series

	// FuelUse holds the fuel drawn per fuel bus.
	FuelUse map[string]series.Series

	// Capacity holds the installed capacity per producing node label,
	// for capacity-factor reporting.
	Capacity map[string]float64

	// Demand holds the served demand per demand bus.
	Demand map[string]series.Series

	// TotalCost is the weight-adjusted variable cost of the run.
	TotalCost float64

	// BackstopEnergy is the weighted energy served by backstops.
	BackstopEnergy float64

	// ExcessEnergy is the weighted surplus energy.
	ExcessEnergy float64

	// EnergyServed is the weighted total demand.
	EnergyServed float64
}

func newResults(model string, steps int, weights series.Weights) *Results {
	return &Results{
		RunID:      uuid.NewString(),
		Model:      model,
		StartedAt:  time.Now().UTC(),
		Timesteps:  steps,
		Weights:    weights,
		Generation: map[string]series.Series{},
		Imports:    map[string]series.Series{},
		Excess:     map[string]series.Series{},
		FuelUse:    map[string]series.Series{},
		Capacity:   map[string]float64{},
		Demand:     map[string]series.Series{},
	}
}

func (r *Results) addTo(m map[string]series.Series, key string, t int, v float64) {
	s, ok := m[key]
	if !ok {
		s = make(series.Series, r.Timesteps)
		m[key] = s
	}
	s[t] += v
}
