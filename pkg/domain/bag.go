package domain

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Bag is the action bag: key/value metadata attached to a route by its source
// (controller reference, middleware, gateway attributes). Keys the gateway does
// not recognize are ignored so sources can carry their own annotations.
type Bag map[string]any

// Options is the typed view of a Bag. Decoding is weakly typed so a scalar
// ("version: v1") and a list ("version: [v1, v2]") both land in the slice.
type Options struct {
	// Uses references the controller action handling the route, in
	// "controller@Action" form.
	Uses string `mapstructure:"uses" yaml:"uses"`

	// Versions constrains which API versions the route serves.
	// Empty means every version.
	Versions []string `mapstructure:"version" yaml:"version"`

	// Protected marks the route as requiring authentication. A nil pointer
	// means the key was absent and the default (false) applies.
	Protected *bool `mapstructure:"protected" yaml:"protected"`

	// Providers lists the authentication providers allowed to satisfy a
	// protected route, tried in order.
	Providers []string `mapstructure:"providers" yaml:"providers"`

	// Scopes lists OAuth-style permission strings required to access the
	// route. Controller-level rules may add to these.
	Scopes []string `mapstructure:"scopes" yaml:"scopes"`

	// Limit is the number of requests allowed per expiration window.
	// Zero disables rate limiting for the route.
	Limit int `mapstructure:"limit" yaml:"limit"`

	// Expires is the rate-limit window length in seconds.
	Expires int `mapstructure:"expires" yaml:"expires"`

	// Conditional overrides the gateway-wide conditional-request default.
	Conditional *bool `mapstructure:"conditional_request" yaml:"conditional_request"`

	// Middleware carries source-declared middleware names, passed through to
	// the transport layer untouched.
	Middleware []string `mapstructure:"middleware" yaml:"middleware"`
}

// Decode extracts the typed options from the bag. Absent keys leave zero
// values, which are the documented defaults.
func (b Bag) Decode() (Options, error) {
	var opts Options
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &opts,
	})
	if err != nil {
		return opts, fmt.Errorf("build bag decoder: %w", err)
	}
	if err := dec.Decode(map[string]any(b)); err != nil {
		return opts, fmt.Errorf("decode action bag: %w", err)
	}
	return opts, nil
}
