/*
Package gatepost normalizes API route definitions from multiple upstream
representations into one internal model carrying gateway metadata (API
version constraints, OAuth scopes, authentication providers, rate limits and
protection flags) and enforces that metadata in front of the routes'
handlers.

Route definitions come from a RouteSource: an OpenAPI 3 document
(pkg/adapters/openapi) or a declarative YAML route table
(pkg/adapters/manifest). Each definition carries an action bag whose keys map
onto the normalized model; controllers resolved from "controller@Action"
references can contribute further scopes, providers and limits, filtered per
action with only/except rules.

# Usage

	package main

	import (
		"context"
		"log"
		"net/http"

		"github.com/aretw0/gatepost"
		"github.com/aretw0/gatepost/pkg/adapters/manifest"
		"github.com/aretw0/gatepost/pkg/adapters/memory"
	)

	func main() {
		registry := memory.NewRegistry()
		registry.Register("users", memory.Actions{
			"Show": func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("..."))
			},
		})

		gw, err := gatepost.New(context.Background(),
			manifest.New("routes.yaml"),
			gatepost.WithRegistry(registry),
			gatepost.WithVendor("acme"),
			gatepost.WithDefaultVersion("v1"),
		)
		if err != nil {
			log.Fatal(err)
		}

		http.ListenAndServe(":8080", gw.Handler())
	}

The enforcement chain consumes the compiled metadata per request: version
negotiation via vendor media types, the authentication provider chain, scope
checks, fixed-window rate limiting (in-memory or Redis-backed), and ETag
revalidation for conditional routes.
*/
package gatepost
