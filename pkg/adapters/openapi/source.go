// Package openapi provides a RouteSource reading an OpenAPI 3 document.
//
// Scopes and the protection flag derive from security requirements
// (operation-level security overrides document-level; an explicit empty
// security array marks the operation public). Gateway attributes travel in
// "x-gatepost-*" extensions.
package openapi

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/aretw0/gatepost/pkg/domain"
)

// Extension keys recognized on operations.
const (
	extUses        = "x-gatepost-uses"
	extVersion     = "x-gatepost-version"
	extLimit       = "x-gatepost-limit"
	extExpires     = "x-gatepost-expires"
	extProviders   = "x-gatepost-providers"
	extConditional = "x-gatepost-conditional"
	extProtected   = "x-gatepost-protected"
)

// Source implements ports.RouteSource for OpenAPI 3 documents.
type Source struct {
	path string
	data []byte
}

// New creates a source loading the document at path on each Routes call.
func New(path string) *Source {
	return &Source{path: path}
}

// FromBytes creates a source over an in-memory document.
func FromBytes(data []byte) *Source {
	return &Source{data: data}
}

// Routes loads and validates the document, then flattens every operation into
// a raw route. Output is sorted by path and method so compilation is
// deterministic regardless of map iteration order.
func (s *Source) Routes(ctx context.Context) ([]domain.RawRoute, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx

	var (
		doc *openapi3.T
		err error
	)
	if s.data != nil {
		doc, err = loader.LoadFromData(s.data)
	} else {
		doc, err = loader.LoadFromFile(s.path)
	}
	if err != nil {
		return nil, fmt.Errorf("load openapi document: %w", err)
	}

	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("validate openapi document: %w", err)
	}

	var routes []domain.RawRoute
	if doc.Paths == nil {
		return routes, nil
	}

	for path, item := range doc.Paths.Map() {
		if item == nil {
			continue
		}
		for method, op := range item.Operations() {
			if op == nil {
				continue
			}
			routes = append(routes, domain.RawRoute{
				URI:         path,
				Methods:     []string{method},
				OperationID: op.OperationID,
				Summary:     op.Summary,
				Description: op.Description,
				Action:      bagFromOperation(doc, op),
			})
		}
	}

	sort.Slice(routes, func(i, j int) bool {
		if routes[i].URI != routes[j].URI {
			return routes[i].URI < routes[j].URI
		}
		return routes[i].Methods[0] < routes[j].Methods[0]
	})

	return routes, nil
}

func bagFromOperation(doc *openapi3.T, op *openapi3.Operation) domain.Bag {
	bag := domain.Bag{}

	protected, scopes, providers := securityPolicy(doc, op)
	if protected {
		bag["protected"] = true
	}
	if len(scopes) > 0 {
		bag["scopes"] = scopes
	}
	if len(providers) > 0 {
		bag["providers"] = providers
	}

	for ext, key := range map[string]string{
		extUses:        "uses",
		extVersion:     "version",
		extLimit:       "limit",
		extExpires:     "expires",
		extProviders:   "providers",
		extConditional: "conditional_request",
		extProtected:   "protected",
	} {
		if v, ok := op.Extensions[ext]; ok {
			bag[key] = v
		}
	}

	return bag
}

// securityPolicy resolves the effective security requirements: operation
// security overrides document security when present, and an explicit empty
// requirement list means public.
func securityPolicy(doc *openapi3.T, op *openapi3.Operation) (protected bool, scopes, providers []string) {
	var reqs openapi3.SecurityRequirements
	switch {
	case op.Security != nil:
		reqs = *op.Security
	default:
		reqs = doc.Security
	}

	if len(reqs) == 0 {
		return false, nil, nil
	}

	for _, req := range reqs {
		for scheme, schemeScopes := range req {
			providers = append(providers, strings.ToLower(scheme))
			scopes = append(scopes, schemeScopes...)
		}
	}
	sort.Strings(providers)
	sort.Strings(scopes)

	return true, dedupe(scopes), dedupe(providers)
}

// dedupe removes adjacent duplicates from a sorted slice.
func dedupe(sorted []string) []string {
	out := sorted[:0]
	for i, s := range sorted {
		if i == 0 || s != sorted[i-1] {
			out = append(out, s)
		}
	}
	return out
}
