/*
Package domain contains the core models of the gatepost routing layer.

It defines the normalized Route, the action Bag attached to upstream route
definitions, and the rule types controllers use to contribute metadata. This
package is kept pure and free of I/O or persistence concerns, following
Hexagonal Architecture principles.

# Key Entities

  - RawRoute: a source-owned route definition (URI, methods, action bag).
  - Route: the normalized model exposing version, scope, provider, rate-limit
    and protection metadata through accessors.
  - MethodFilter: decides whether a controller-level rule applies to the
    action a route resolved to.
  - Identity: the authenticated caller as seen by enforcement.
*/
package domain
