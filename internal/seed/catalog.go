// Package seed loads the fixed idea catalog shipped with the binary.
package seed

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogFile embed.FS

// CatalogIdea is one seeded catalog entry.
type CatalogIdea struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Category    string   `yaml:"category"`
	Difficulty  string   `yaml:"difficulty"`
	Tools       []string `yaml:"tools"`
	Tags        []string `yaml:"tags"`
	FreeTier    bool     `yaml:"free_tier"`
}

// Catalog loads the embedded idea catalog.
func Catalog() ([]CatalogIdea, error) {
	data, err := catalogFile.ReadFile("catalog.yaml")
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var payload struct {
		Ideas []CatalogIdea `yaml:"ideas"`
	}
	if err := yaml.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("unmarshal catalog: %w", err)
	}
	if len(payload.Ideas) == 0 {
		return nil, fmt.Errorf("catalog is empty")
	}

	return payload.Ideas, nil
}
