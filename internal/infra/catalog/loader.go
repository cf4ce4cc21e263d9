// Package catalog loads stat catalogs from the embedded default or a
// YAML file on disk.
package catalog

import (
	"bytes"
	"fmt"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/ingressstats/agentstats/internal/domain/model/stat"
	appembed "github.com/ingressstats/agentstats/internal/embed"
)

type document struct {
	Stats []stat.StatDefinition `yaml:"stats"`
}

// Load reads a catalog YAML file. An empty path falls back to the
// embedded default.
func Load(fs afero.Fs, path string) (*stat.Catalog, error) {
	if path == "" {
		return LoadDefault()
	}
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}
	c, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog: %s: %w", path, err)
	}
	return c, nil
}

// LoadDefault parses the catalog shipped with the binary
func LoadDefault() (*stat.Catalog, error) {
	return parse(appembed.CatalogYAML)
}

// MustDefault returns the embedded catalog or panics. The embedded
// document is covered by tests; a failure here is a build defect.
func MustDefault() *stat.Catalog {
	c, err := LoadDefault()
	if err != nil {
		panic(err)
	}
	return c
}

func parse(data []byte) (*stat.Catalog, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true) // Fail on unknown fields
	var doc document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	return stat.NewCatalog(doc.Stats)
}
