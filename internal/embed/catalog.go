// Package embed ships the default stat catalog with the binary
package embed

import _ "embed"

// CatalogYAML is the default stat catalog definition
//
//go:embed catalog.yaml
var CatalogYAML []byte
