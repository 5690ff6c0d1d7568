package runtime

import "fmt"

// UnknownControllerError is returned when a route's controller reference
// cannot be resolved by the registry.
type UnknownControllerError struct {
	Route string
	Ref   string
	Err   error
}

func (e *UnknownControllerError) Error() string {
	return fmt.Sprintf("route %s: resolve %q: %v", e.Route, e.Ref, e.Err)
}

func (e *UnknownControllerError) Unwrap() error {
	return e.Err
}

// UnknownActionError is returned when the resolved controller has no action
// under the referenced name.
type UnknownActionError struct {
	Route  string
	Ref    string
	Action string
}

func (e *UnknownActionError) Error() string {
	return fmt.Sprintf("route %s: controller %q has no action %q", e.Route, e.Ref, e.Action)
}
