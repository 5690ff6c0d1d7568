package domain

import "time"

// MethodFilter scopes a controller-level rule to a subset of the controller's
// actions. A rule is given either keyed lists (Only/Except) or a bare Methods
// list; Only wins when both keyed lists are set.
type MethodFilter struct {
	Only    []string `mapstructure:"only" yaml:"only,omitempty"`
	Except  []string `mapstructure:"except" yaml:"except,omitempty"`
	Methods []string `mapstructure:"methods" yaml:"methods,omitempty"`
}

// AppliesTo reports whether the rule carrying this filter applies to the
// resolved action: include if Only lists it, exclude if Except lists it,
// include if the bare list names it, include otherwise.
func (f MethodFilter) AppliesTo(action string) bool {
	switch {
	case len(f.Only) > 0:
		return containsString(f.Only, action)
	case len(f.Except) > 0:
		return !containsString(f.Except, action)
	case len(f.Methods) > 0:
		return containsString(f.Methods, action)
	}
	return true
}

// ScopeRule attaches scopes to the controller actions its filter selects.
type ScopeRule struct {
	Scopes       []string `mapstructure:"scopes" yaml:"scopes"`
	MethodFilter `mapstructure:",squash" yaml:",inline"`
}

// ProviderRule attaches authentication providers to controller actions.
type ProviderRule struct {
	Providers    []string `mapstructure:"providers" yaml:"providers"`
	MethodFilter `mapstructure:",squash" yaml:",inline"`
}

// LimitRule attaches a rate limit to controller actions. A matching rule
// overrides the route-level limit.
type LimitRule struct {
	Limit        int           `mapstructure:"limit" yaml:"limit"`
	Expiration   time.Duration `mapstructure:"expires" yaml:"expires"`
	MethodFilter `mapstructure:",squash" yaml:",inline"`
}

// ScopeSource is implemented by controllers that contribute scopes to the
// routes resolving to them.
type ScopeSource interface {
	ScopeRules() []ScopeRule
}

// ProviderSource is implemented by controllers that restrict which providers
// may authenticate their routes.
type ProviderSource interface {
	ProviderRules() []ProviderRule
}

// LimitSource is implemented by controllers that rate-limit their routes.
type LimitSource interface {
	LimitRules() []LimitRule
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
