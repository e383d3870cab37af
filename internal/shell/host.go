package shell

import (
	"path/filepath"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"kaya/pkg/kayatypes"
)

const promptName = "kaya"

// Host is the line-mode side of the pipeline. Accents recolor the prompt and
// the open project is shown in it.
type Host struct {
	mu       sync.Mutex
	accent   kayatypes.Accent
	project  string
	onPrompt func(prompt string)
}

// NewHost creates a host with the given starting accent.
func NewHost(initial kayatypes.Accent) *Host {
	return &Host{accent: initial}
}

// OnPromptChange registers fn to receive the prompt after every change.
func (h *Host) OnPromptChange(fn func(prompt string)) {
	h.mu.Lock()
	h.onPrompt = fn
	h.mu.Unlock()
	h.notify()
}

// ApplyAccent implements kayatypes.AccentApplier.
func (h *Host) ApplyAccent(accent kayatypes.Accent) {
	h.mu.Lock()
	h.accent = accent
	h.mu.Unlock()
	h.notify()
}

// OpenProject implements kayatypes.ProjectOpener.
func (h *Host) OpenProject(dir string) error {
	h.mu.Lock()
	h.project = dir
	h.mu.Unlock()
	h.notify()
	return nil
}

// Accent returns the applied accent.
func (h *Host) Accent() kayatypes.Accent {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.accent
}

// Prompt renders the prompt, e.g. "kaya:atlas> ". Colors are dropped on
// terminals without color support.
func (h *Host) Prompt() string {
	h.mu.Lock()
	accent, project := h.accent, h.project
	h.mu.Unlock()

	label := promptName
	if project != "" {
		label += ":" + filepath.Base(project)
	}
	if lipgloss.ColorProfile() == termenv.Ascii || accent.Primary == "" {
		return label + "> "
	}
	style := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(accent.Primary))
	return style.Render(label) + "> "
}

func (h *Host) notify() {
	h.mu.Lock()
	fn := h.onPrompt
	h.mu.Unlock()
	if fn != nil {
		fn(h.Prompt())
	}
}
