package ports

import (
	"context"

	"github.com/aretw0/gatepost/pkg/domain"
)

// RouteSource yields raw route definitions from one upstream representation.
// There is one implementation per representation (OpenAPI document, manifest
// table); the core never branches on the concrete source type.
type RouteSource interface {
	Routes(ctx context.Context) ([]domain.RawRoute, error)
}
