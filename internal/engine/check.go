package engine

import (
	"fmt"

	"github.com/chrwm/OSEMF-Comparison/internal/config"
	"github.com/chrwm/OSEMF-Comparison/internal/energy"
	"github.com/chrwm/OSEMF-Comparison/internal/rule"
)

// ConfigureRule clones a rule and applies settings from cfg if the rule
// implements Configurable and cfg has settings. Returns the configured
// rule (or the original if no settings apply) and any error from
// ApplySettings.
func ConfigureRule(rl rule.Rule, cfg config.RuleCfg) (rule.Rule, error) {
	if cfg.Settings == nil {
		return rl, nil
	}
	if _, ok := rl.(rule.Configurable); !ok {
		return rl, nil
	}
	clone := rule.CloneRule(rl)
	if c, ok := clone.(rule.Configurable); ok {
		if err := c.ApplySettings(cfg.Settings); err != nil {
			return nil, fmt.Errorf("applying settings for %s: %w", rl.Name(), err)
		}
	}
	return clone, nil
}

// CheckRules runs all enabled rules against s, cloning and applying
// settings for Configurable rules. It returns the collected diagnostics
// and any settings-application errors.
func CheckRules(s *energy.System, rules []rule.Rule, effective map[string]config.RuleCfg) ([]energy.Diagnostic, []error) {
	var diags []energy.Diagnostic
	var errs []error

	for _, rl := range rules {
		cfg, ok := effective[rl.Name()]
		if !ok || !cfg.Enabled {
			continue
		}

		checkRule, err := ConfigureRule(rl, cfg)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		d := checkRule.Check(s)
		diags = append(diags, d...)
	}

	return diags, errs
}
