package config

import (
	"github.com/gobwas/glob"
)

// Merge merges a loaded config on top of defaults. The loaded config's rules
// override the defaults; any rule not mentioned in loaded keeps its default
// value. Ignore, Overrides and DataDir come from the loaded config only.
func Merge(defaults, loaded *Config) *Config {
	if loaded == nil {
		// No user config: return a copy of defaults.
		rules := make(map[string]RuleCfg, len(defaults.Rules))
		for k, v := range defaults.Rules {
			rules[k] = v
		}
		return &Config{Rules: rules, DataDir: defaults.DataDir}
	}

	rules := make(map[string]RuleCfg, len(defaults.Rules))
	for k, v := range defaults.Rules {
		rules[k] = v
	}

	// Apply loaded rules on top.
	for k, v := range loaded.Rules {
		rules[k] = v
	}

	dataDir := defaults.DataDir
	if loaded.DataDir != "" {
		dataDir = loaded.DataDir
	}

	return &Config{
		Rules:     rules,
		Ignore:    loaded.Ignore,
		Overrides: loaded.Overrides,
		DataDir:   dataDir,
	}
}

// Effective returns the effective rule configuration for a given model
// variant. It starts with the top-level rules and then applies each
// override whose variant patterns match, in order. Later overrides take
// precedence.
func Effective(cfg *Config, variant string) map[string]RuleCfg {
	result := make(map[string]RuleCfg, len(cfg.Rules))
	for k, v := range cfg.Rules {
		result[k] = v
	}

	for _, o := range cfg.Overrides {
		if matchesAny(o.Variants, variant) {
			for k, v := range o.Rules {
				result[k] = v
			}
		}
	}

	return result
}

// matchesAny returns true if the variant matches any of the glob patterns.
func matchesAny(patterns []string, variant string) bool {
	for _, pattern := range patterns {
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
