package engine

import (
	"fmt"
	"sort"

	"github.com/gobwas/glob"

	"github.com/chrwm/OSEMF-Comparison/internal/catalog"
	"github.com/chrwm/OSEMF-Comparison/internal/config"
	"github.com/chrwm/OSEMF-Comparison/internal/energy"
	"github.com/chrwm/OSEMF-Comparison/internal/rule"
	"github.com/chrwm/OSEMF-Comparison/internal/series"
)

// Runner drives the validation pipeline: for each variant it builds the
// system (resolving its dataset), determines the effective rule
// configuration, runs enabled rules, and collects diagnostics.
type Runner struct {
	Config *config.Config
	Rules  []rule.Rule

	// Data resolves the dataset for a variant. Nil means all variants
	// are built without profile data (only single-timestep variants
	// succeed then).
	Data func(v catalog.Variant) (*series.Dataset, error)
}

// Result holds the output of a validation run.
type Result struct {
	Diagnostics []energy.Diagnostic
	Errors      []error
}

// Run validates the given variants and returns a Result containing all
// diagnostics (sorted by model, node, rule) and any errors encountered.
func (r *Runner) Run(variants []catalog.Variant) *Result {
	res := &Result{}

	for _, v := range variants {
		if r.isIgnored(string(v)) {
			continue
		}

		var data *series.Dataset
		if r.Data != nil {
			d, err := r.Data(v)
			if err != nil {
				res.Errors = append(res.Errors, fmt.Errorf("loading data for %s: %w", v, err))
				continue
			}
			data = d
		}

		s, err := catalog.Build(v, data)
		if err != nil {
			res.Errors = append(res.Errors, fmt.Errorf("building %s: %w", v, err))
			continue
		}

		effective := config.Effective(r.Config, string(v))
		diags, errs := CheckRules(s, r.Rules, effective)
		res.Diagnostics = append(res.Diagnostics, diags...)
		res.Errors = append(res.Errors, errs...)
	}

	sort.Slice(res.Diagnostics, func(i, j int) bool {
		di, dj := res.Diagnostics[i], res.Diagnostics[j]
		if di.Model != dj.Model {
			return di.Model < dj.Model
		}
		if di.Node != dj.Node {
			return di.Node < dj.Node
		}
		return di.RuleID < dj.RuleID
	})

	return res
}

// isIgnored returns true if the variant matches any of the configured
// ignore patterns.
func (r *Runner) isIgnored(variant string) bool {
	for _, pattern := range r.Config.Ignore {
		g, err := glob.Compile(pattern)
		if err != nil {
			continue
		}
		if g.Match(variant) {
			return true
		}
	}
	return false
}
