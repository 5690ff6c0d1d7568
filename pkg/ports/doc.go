/*
Package ports defines the interfaces between the gatepost core and its
adapters, following Hexagonal Architecture principles.

Sources produce raw route definitions, the controller registry resolves
"controller@Action" references, counter stores back rate limiting, and auth
providers turn requests into identities. Contract-test helpers let adapter
implementations verify they honor the interface semantics.
*/
package ports
