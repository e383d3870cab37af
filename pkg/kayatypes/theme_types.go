package kayatypes

// Accent is a named color palette selectable as the active visual theme.
type Accent struct {
	// Name is the accent identifier used by "theme set"
	Name string `yaml:"name" json:"name"`

	// Primary is the main accent color (prompt, borders when focused)
	Primary string `yaml:"primary" json:"primary"`

	// Muted is the softer accent used for secondary text
	Muted string `yaml:"muted" json:"muted"`

	// Border is the dim color for frames
	Border string `yaml:"border" json:"border"`
}

// AccentCatalogFile is the on-disk layout of the accent catalog. A list keeps
// the registration order.
type AccentCatalogFile struct {
	Default string   `yaml:"default"`
	Accents []Accent `yaml:"accents"`
}

// AccentApplier applies an accent to the live UI. Implementations must be idempotent.
type AccentApplier interface {
	ApplyAccent(accent Accent)
}

// ProjectOpener navigates the host to a project directory.
type ProjectOpener interface {
	OpenProject(dir string) error
}
