package terminal

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// StatusLines follow the greeting on startup.
var StatusLines = []string{
	"Booting…",
	"[OK] Core modules loaded",
	"[OK] File system online",
	"[OK] Interface theme active",
}

// Banner renders the welcome box.
func Banner(version string) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		Padding(0, 2).
		Render(fmt.Sprintf("K.A.Y.A  ·  Personal Assistant  v%s", version))
}

// Boot queues the banner, the greeting and the status lines, ending with a
// blank line so the first command starts below them.
func (s *Session) Boot(version, greeting string) {
	s.env.Write(Banner(version) + "\n\n")
	if greeting != "" {
		s.env.Log(greeting)
	}
	for _, line := range StatusLines {
		s.env.Log(line)
	}
	s.env.Write("Ready.\n\n")
}
