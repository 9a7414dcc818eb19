// Package report computes summary metrics over dispatch results.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/chrwm/OSEMF-Comparison/internal/dispatch"
	"github.com/chrwm/OSEMF-Comparison/internal/series"
)

// Definition describes one result metric.
type Definition struct {
	ID          string
	Name        string
	Description string
	Kind        ValueKind
	Precision   int
	Default     bool
	Compute     func(res *dispatch.Results) (Value, error)
}

var registry = []Definition{
	{
		ID:          "RPT001",
		Name:        "total-cost",
		Description: "Weight-adjusted variable cost of the run.",
		Kind:        KindFloat,
		Precision:   2,
		Default:     true,
		Compute: func(res *dispatch.Results) (Value, error) {
			return AvailableValue(res.TotalCost), nil
		},
	},
	{
		ID:          "RPT002",
		Name:        "energy-served",
		Description: "Weighted total demand served, in MWh.",
		Kind:        KindFloat,
		Precision:   1,
		Default:     true,
		Compute: func(res *dispatch.Results) (Value, error) {
			return AvailableValue(res.EnergyServed), nil
		},
	},
	{
		ID:          "RPT003",
		Name:        "backstop-share",
		Description: "Share of demand served by the backstop.",
		Kind:        KindPercent,
		Precision:   2,
		Default:     true,
		Compute: func(res *dispatch.Results) (Value, error) {
			if res.EnergyServed == 0 {
				return UnavailableValue(), nil
			}
			return AvailableValue(res.BackstopEnergy / res.EnergyServed), nil
		},
	},
	{
		ID:          "RPT004",
		Name:        "excess-energy",
		Description: "Weighted surplus energy absorbed by excess sinks, in MWh.",
		Kind:        KindFloat,
		Precision:   1,
		Default:     true,
		Compute: func(res *dispatch.Results) (Value, error) {
			return AvailableValue(res.ExcessEnergy), nil
		},
	},
	{
		ID:          "RPT005",
		Name:        "mean-capacity-factor",
		Description: "Mean capacity factor over all dispatchable units.",
		Kind:        KindPercent,
		Precision:   1,
		Default:     true,
		Compute: func(res *dispatch.Results) (Value, error) {
			var factors series.Series
			for label, cap := range res.Capacity {
				if cap <= 0 {
					continue
				}
				gen, ok := res.Generation[label]
				if !ok {
					factors = append(factors, 0)
					continue
				}
				hours := res.Weights.Sum()
				if hours == 0 {
					continue
				}
				factors = append(factors, gen.WeightedSum(res.Weights)/(cap*hours))
			}
			if len(factors) == 0 {
				return UnavailableValue(), nil
			}
			return AvailableValue(series.Summary(factors).Mean), nil
		},
	},
	{
		ID:          "RPT006",
		Name:        "import-share",
		Description: "Share of demand served via trade links.",
		Kind:        KindPercent,
		Precision:   2,
		Default:     true,
		Compute: func(res *dispatch.Results) (Value, error) {
			if res.EnergyServed == 0 {
				return UnavailableValue(), nil
			}
			var imported float64
			for _, s := range res.Imports {
				imported += s.WeightedSum(res.Weights)
			}
			return AvailableValue(imported / res.EnergyServed), nil
		},
	},
	{
		ID:          "RPT007",
		Name:        "demand-load-factor",
		Description: "Mean over peak of the aggregate demand profile.",
		Kind:        KindPercent,
		Precision:   1,
		Default:     false,
		Compute: func(res *dispatch.Results) (Value, error) {
			total := make(series.Series, res.Timesteps)
			for _, d := range res.Demand {
				for t := range total {
					total[t] += d.At(t)
				}
			}
			lf := series.LoadFactor(total)
			if lf == 0 {
				return UnavailableValue(), nil
			}
			return AvailableValue(lf), nil
		},
	},
}

// All returns all metrics sorted by ID.
func All() []Definition {
	defs := append([]Definition(nil), registry...)
	sort.Slice(defs, func(i, j int) bool {
		return defs[i].ID < defs[j].ID
	})
	return defs
}

// Defaults returns the default-selected metrics.
func Defaults() []Definition {
	all := All()
	out := make([]Definition, 0, len(all))
	for _, def := range all {
		if def.Default {
			out = append(out, def)
		}
	}
	return out
}

// Lookup searches by metric ID (case-insensitive) or by name.
func Lookup(query string) (Definition, bool) {
	q := strings.TrimSpace(query)
	if q == "" {
		return Definition{}, false
	}
	for _, def := range All() {
		if strings.EqualFold(def.ID, q) || def.Name == strings.ToLower(q) {
			return def, true
		}
	}
	return Definition{}, false
}

// Resolve resolves user-selected metric names/IDs.
// Empty names returns default metrics.
func Resolve(names []string) ([]Definition, error) {
	if len(names) == 0 {
		return Defaults(), nil
	}

	seen := make(map[string]struct{}, len(names))
	defs := make([]Definition, 0, len(names))
	for _, raw := range names {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}

		def, ok := Lookup(name)
		if !ok {
			return nil, fmt.Errorf("unknown metric %q (available: %s)", name, strings.Join(availableNames(), ", "))
		}

		if _, exists := seen[def.ID]; exists {
			continue
		}
		seen[def.ID] = struct{}{}
		defs = append(defs, def)
	}

	if len(defs) == 0 {
		return nil, fmt.Errorf("no metrics selected")
	}
	return defs, nil
}

// SplitList parses comma-separated metric names.
func SplitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func availableNames() []string {
	defs := All()
	names := make([]string, 0, len(defs))
	for _, def := range defs {
		names = append(names, def.Name)
	}
	sort.Strings(names)
	return names
}
