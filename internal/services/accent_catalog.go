package services

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"kaya/internal/data/embedded"
	"kaya/internal/logger"
	"kaya/pkg/kayatypes"
)

// FallbackAccent is used when the catalog cannot be loaded at all.
var FallbackAccent = kayatypes.Accent{Name: "green", Primary: "#39FF14", Muted: "#A4FFB2", Border: "#145c2f"}

// AccentCatalog is an ordered, name-indexed set of accents.
type AccentCatalog struct {
	accents []kayatypes.Accent
	index   map[string]int
	def     string
}

// LoadAccentCatalog parses catalog YAML. Accents keep file order; names are
// lower-cased; duplicate or empty names are rejected.
func LoadAccentCatalog(data []byte) (*AccentCatalog, error) {
	var file kayatypes.AccentCatalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse accent catalog: %w", err)
	}
	if len(file.Accents) == 0 {
		return nil, fmt.Errorf("accent catalog is empty")
	}

	c := &AccentCatalog{index: make(map[string]int, len(file.Accents))}
	for _, accent := range file.Accents {
		accent.Name = strings.ToLower(strings.TrimSpace(accent.Name))
		if accent.Name == "" {
			return nil, fmt.Errorf("accent catalog entry %d has no name", len(c.accents))
		}
		if _, dup := c.index[accent.Name]; dup {
			return nil, fmt.Errorf("accent %s defined twice", accent.Name)
		}
		c.index[accent.Name] = len(c.accents)
		c.accents = append(c.accents, accent)
	}

	c.def = strings.ToLower(strings.TrimSpace(file.Default))
	if _, ok := c.index[c.def]; !ok {
		c.def = c.accents[0].Name
	}
	return c, nil
}

// DefaultAccentCatalog loads the embedded catalog, falling back to a
// single-accent catalog if the embedded data is unusable.
func DefaultAccentCatalog() *AccentCatalog {
	c, err := LoadAccentCatalog(embedded.AccentCatalogData)
	if err != nil {
		logger.Error("Failed to load accent catalog", "error", err)
		return &AccentCatalog{
			accents: []kayatypes.Accent{FallbackAccent},
			index:   map[string]int{FallbackAccent.Name: 0},
			def:     FallbackAccent.Name,
		}
	}
	return c
}

// Names returns accent names in catalog order.
func (c *AccentCatalog) Names() []string {
	names := make([]string, len(c.accents))
	for i, a := range c.accents {
		names[i] = a.Name
	}
	return names
}

// Get looks up an accent by exact name.
func (c *AccentCatalog) Get(name string) (kayatypes.Accent, bool) {
	i, ok := c.index[name]
	if !ok {
		return kayatypes.Accent{}, false
	}
	return c.accents[i], true
}

// Has reports catalog membership.
func (c *AccentCatalog) Has(name string) bool {
	_, ok := c.index[name]
	return ok
}

// Default returns the default accent name.
func (c *AccentCatalog) Default() string {
	return c.def
}
