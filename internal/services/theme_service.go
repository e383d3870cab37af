package services

import (
	"fmt"
	"strings"
	"sync"

	"kaya/internal/logger"
	"kaya/internal/parser"
	"kaya/pkg/kayatypes"
)

// ThemeServiceName is the registry name of the theme service.
const ThemeServiceName = "theme"

// ThemeService selects the active accent, applies it through the host's
// applier and remembers it in the accent store.
type ThemeService struct {
	mu      sync.Mutex
	catalog *AccentCatalog
	store   *AccentStore
	applier kayatypes.AccentApplier
	current string
}

// NewThemeService creates a theme service. A nil catalog uses the embedded one;
// a nil applier discards applications until SetApplier is called.
func NewThemeService(catalog *AccentCatalog, store *AccentStore, applier kayatypes.AccentApplier) *ThemeService {
	if catalog == nil {
		catalog = DefaultAccentCatalog()
	}
	return &ThemeService{
		catalog: catalog,
		store:   store,
		applier: applier,
	}
}

// Name returns the service name.
func (t *ThemeService) Name() string {
	return ThemeServiceName
}

// Initialize applies the saved accent, or the default one.
func (t *ThemeService) Initialize() error {
	name := t.ApplySavedOrDefault()
	logger.Debug("Theme service initialized", "accent", name)
	return nil
}

// SetApplier replaces the UI apply hook. Hosts call this once their view exists.
func (t *ThemeService) SetApplier(applier kayatypes.AccentApplier) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.applier = applier
}

// Names returns accent names in catalog order.
func (t *ThemeService) Names() []string {
	return t.catalog.Names()
}

// Has reports whether name is a known accent.
func (t *ThemeService) Has(name string) bool {
	return t.catalog.Has(name)
}

// Current returns the most recently applied accent name.
func (t *ThemeService) Current() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current
}

// CurrentAccent returns the palette of the most recently applied accent.
func (t *ThemeService) CurrentAccent() kayatypes.Accent {
	t.mu.Lock()
	name := t.current
	t.mu.Unlock()
	if accent, ok := t.catalog.Get(name); ok {
		return accent
	}
	accent, _ := t.catalog.Get(t.catalog.Default())
	return accent
}

// ApplySavedOrDefault applies the stored accent, or the catalog default when
// nothing usable is stored. The store is not rewritten.
func (t *ThemeService) ApplySavedOrDefault() string {
	name := t.loadSaved()
	if name == "" {
		name = t.catalog.Default()
	}
	t.apply(name)
	return name
}

// Handle runs a theme sub-command and returns the user-facing response.
// Validation failures are responses, not errors.
func (t *ThemeService) Handle(params kayatypes.Params) string {
	sub, name := parser.Normalize(params)

	switch sub {
	case "list":
		return "Themes: " + t.joinedNames()
	case "set":
		if name == "" {
			return "Usage: theme set <name>\nThemes: " + t.joinedNames()
		}
		if !t.catalog.Has(name) {
			return fmt.Sprintf("Unknown theme '%s'. Available: %s", name, t.joinedNames())
		}
		t.apply(name)
		t.save(name)
		return "Theme set to: " + name
	case "reset":
		def := t.catalog.Default()
		t.apply(def)
		t.save(def)
		return "Theme reset to: " + def
	default:
		return "theme commands: list | set <name> | reset"
	}
}

func (t *ThemeService) apply(name string) {
	accent, ok := t.catalog.Get(name)
	if !ok {
		accent, _ = t.catalog.Get(t.catalog.Default())
	}

	t.mu.Lock()
	t.current = accent.Name
	applier := t.applier
	t.mu.Unlock()

	logger.ServiceOperation(ThemeServiceName, "apply", "accent", accent.Name)

	if applier != nil {
		applier.ApplyAccent(accent)
	}
}

// loadSaved reads the store, treating every failure and unknown name as "nothing saved".
func (t *ThemeService) loadSaved() string {
	if t.store == nil {
		return ""
	}
	name, err := t.store.Load()
	if err != nil {
		logger.Debug("Ignoring unreadable accent store", "path", t.store.Path(), "error", err)
		return ""
	}
	name = strings.ToLower(name)
	if name != "" && !t.catalog.Has(name) {
		logger.Debug("Ignoring unknown saved accent", "accent", name)
		return ""
	}
	return name
}

func (t *ThemeService) save(name string) {
	if t.store == nil {
		return
	}
	if err := t.store.Save(name); err != nil {
		logger.Debug("Ignoring accent store write failure", "path", t.store.Path(), "error", err)
	}
}

func (t *ThemeService) joinedNames() string {
	return strings.Join(t.catalog.Names(), ", ")
}
