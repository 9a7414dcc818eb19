package rule

import "github.com/chrwm/OSEMF-Comparison/internal/energy"

// Rule is a single validation rule that checks a built energy system.
type Rule interface {
	ID() string
	Name() string
	Category() string
	Check(s *energy.System) []energy.Diagnostic
}

// Configurable is implemented by rules that have user-tunable settings.
type Configurable interface {
	ApplySettings(settings map[string]any) error
	DefaultSettings() map[string]any
}

// Defaultable is implemented by rules that override the default enabled
// state in generated/runtime configs.
type Defaultable interface {
	EnabledByDefault() bool
}
