package main

import (
	"math"
	"math/rand"
	"strings"

	"github.com/chrwm/OSEMF-Comparison/internal/catalog"
	"github.com/chrwm/OSEMF-Comparison/internal/series"
)

// Generate synthesizes a plausible profile dataset for a variant. The
// shapes are deterministic for a given seed: solar follows a clipped
// diurnal sine, wind and hydro are autocorrelated noise, demand is a
// base load with a daily swing.
func Generate(v catalog.Variant, seed int64) *series.Dataset {
	rng := rand.New(rand.NewSource(seed))
	steps := v.Timesteps()

	data := series.NewDataset()
	for _, col := range v.ProfileColumns() {
		data.Add(col, generateColumn(rng, col, steps))
	}
	return data
}

func generateColumn(rng *rand.Rand, col string, steps int) series.Series {
	switch {
	case strings.HasPrefix(col, "demand_"):
		base := 2110.1
		if strings.Contains(col, "BE") {
			base = 1477.1
		}
		return demandProfile(rng, base, steps)
	case strings.Contains(col, "SOLPV"):
		return solarProfile(rng, steps)
	default:
		return noiseProfile(rng, 0.35, steps)
	}
}

// demandProfile is a base load with a daily swing of +-15% and a little
// noise on top.
func demandProfile(rng *rand.Rand, base float64, steps int) series.Series {
	s := make(series.Series, steps)
	for t := range s {
		swing := 0.15 * math.Sin(2*math.Pi*float64(t%24)/24)
		noise := 0.02 * rng.NormFloat64()
		s[t] = base * (1 + swing + noise)
		if s[t] < 0 {
			s[t] = 0
		}
	}
	return s
}

// solarProfile is a diurnal sine clipped to daylight hours, scaled by a
// random daily clearness factor.
func solarProfile(rng *rand.Rand, steps int) series.Series {
	s := make(series.Series, steps)
	clearness := 0.4 + 0.6*rng.Float64()
	for t := range s {
		hour := t % 24
		if t%24 == 0 {
			clearness = 0.4 + 0.6*rng.Float64()
		}
		v := math.Sin(math.Pi * float64(hour-6) / 12)
		if hour < 6 || hour > 18 || v < 0 {
			v = 0
		}
		s[t] = clamp01(v * clearness)
	}
	return s
}

// noiseProfile is mean-reverting autocorrelated noise around the given
// mean, clamped to [0, 1]. Used for wind and run-of-river availability.
func noiseProfile(rng *rand.Rand, mean float64, steps int) series.Series {
	s := make(series.Series, steps)
	v := mean
	for t := range s {
		v += 0.3*(mean-v) + 0.08*rng.NormFloat64()
		s[t] = clamp01(v)
	}
	return s
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
