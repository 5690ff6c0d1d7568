// Package manifest provides a RouteSource reading a declarative YAML route
// table. Each entry carries the path, methods, and the action bag inline.
package manifest

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/gatepost/pkg/domain"
)

// Source implements ports.RouteSource for manifest files.
type Source struct {
	path string
	data []byte
}

// New creates a source reading the manifest at path on each Routes call.
func New(path string) *Source {
	return &Source{path: path}
}

// FromBytes creates a source over an in-memory manifest.
func FromBytes(data []byte) *Source {
	return &Source{data: data}
}

type manifestFile struct {
	Routes []routeEntry `yaml:"routes"`
}

// routeEntry separates the structural keys from the action bag; every key not
// named here falls into the inline bag.
type routeEntry struct {
	Path        string         `yaml:"path"`
	Methods     []string       `yaml:"methods"`
	OperationID string         `yaml:"operation_id"`
	Name        string         `yaml:"name"`
	Summary     string         `yaml:"summary"`
	Description string         `yaml:"description"`
	Action      map[string]any `yaml:",inline"`
}

// Routes parses the manifest into raw routes.
func (s *Source) Routes(ctx context.Context) ([]domain.RawRoute, error) {
	data := s.data
	if data == nil {
		var err error
		data, err = os.ReadFile(s.path)
		if err != nil {
			return nil, fmt.Errorf("read manifest: %w", err)
		}
	}

	var file manifestFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("unmarshal manifest: %w", err)
	}

	routes := make([]domain.RawRoute, 0, len(file.Routes))
	for i, entry := range file.Routes {
		if entry.Path == "" {
			return nil, fmt.Errorf("manifest route %d: missing path", i)
		}
		if len(entry.Methods) == 0 {
			return nil, fmt.Errorf("manifest route %d (%s): missing methods", i, entry.Path)
		}

		// "name" is the friendlier spelling for hand-written manifests.
		name := entry.OperationID
		if name == "" {
			name = entry.Name
		}

		routes = append(routes, domain.RawRoute{
			URI:         entry.Path,
			Methods:     entry.Methods,
			OperationID: name,
			Summary:     entry.Summary,
			Description: entry.Description,
			Action:      domain.Bag(entry.Action),
		})
	}

	return routes, nil
}
