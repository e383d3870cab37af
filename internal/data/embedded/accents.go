// Package embedded provides access to embedded configuration files.
package embedded

import _ "embed"

// AccentCatalogData contains the embedded accent catalog YAML data.
//
//go:embed accents.yaml
var AccentCatalogData []byte
