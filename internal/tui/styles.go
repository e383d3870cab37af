package tui

import (
	"path/filepath"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"kaya/pkg/kayatypes"
)

// Styles are the accent-dependent styles of the view.
type Styles struct {
	Title   lipgloss.Style
	Project lipgloss.Style
	Frame   lipgloss.Style
	Prompt  lipgloss.Style
	Text    lipgloss.Style
	Hint    lipgloss.Style
}

// NewStyles derives the view styles from an accent palette.
func NewStyles(accent kayatypes.Accent) Styles {
	primary := lipgloss.Color(accent.Primary)
	muted := lipgloss.Color(accent.Muted)
	border := lipgloss.Color(accent.Border)

	return Styles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(primary),
		Project: lipgloss.NewStyle().Foreground(muted),
		Frame:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(border).Padding(0, 1),
		Prompt:  lipgloss.NewStyle().Bold(true).Foreground(primary),
		Text:    lipgloss.NewStyle().Foreground(muted),
		Hint:    lipgloss.NewStyle().Faint(true),
	}
}

// Host is the TUI's side of the pipeline: it restyles the view when an accent
// is applied and shows the active project in the header.
type Host struct {
	mu      sync.Mutex
	accent  kayatypes.Accent
	styles  Styles
	project string
}

// NewHost creates a host styled with the fallback accent until one is applied.
func NewHost(initial kayatypes.Accent) *Host {
	return &Host{accent: initial, styles: NewStyles(initial)}
}

// ApplyAccent implements kayatypes.AccentApplier.
func (h *Host) ApplyAccent(accent kayatypes.Accent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.accent = accent
	h.styles = NewStyles(accent)
}

// OpenProject implements kayatypes.ProjectOpener.
func (h *Host) OpenProject(dir string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.project = dir
	return nil
}

// Accent returns the applied accent.
func (h *Host) Accent() kayatypes.Accent {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.accent
}

// Styles returns the current styles.
func (h *Host) Styles() Styles {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.styles
}

// ProjectName returns the base name of the active project, or "".
func (h *Host) ProjectName() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.project == "" {
		return ""
	}
	return filepath.Base(h.project)
}
