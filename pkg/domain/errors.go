package domain

import "errors"

// ErrRouteNotFound is returned when a route name cannot be found in a gateway.
var ErrRouteNotFound = errors.New("route not found")

// ErrNoIdentity is returned by enforcement when a protected route is reached
// without any provider producing an identity.
var ErrNoIdentity = errors.New("no authenticated identity")
