package ports

import (
	"errors"
	"net/http"
)

// ErrMalformedRef is returned for controller references not in
// "controller@Action" form.
var ErrMalformedRef = errors.New("malformed controller reference")

// ErrUnknownController is returned when a reference names a controller the
// registry does not hold.
var ErrUnknownController = errors.New("unknown controller")

// Controller is a registered request controller. Actions are looked up by
// name; the boolean mirrors map access so unknown actions surface as ordinary
// lookup failures at compile time, not at request time.
type Controller interface {
	Action(name string) (http.Handler, bool)
}

// ControllerRegistry resolves a "controller@Action" reference into the
// registered controller and the action name. It is the dependency-injection
// seam: hosts register controllers however they build them.
type ControllerRegistry interface {
	Resolve(ref string) (Controller, string, error)
}
