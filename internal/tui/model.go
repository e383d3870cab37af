// Package tui is the full-screen Kaya host: an animated output pane above a
// single command line.
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"kaya/internal/terminal"
	"kaya/internal/typewriter"
)

const (
	placeholder = `theme set blue | project.open notes | help`
	hintText    = "enter run · esc skip · pgup/pgdn scroll · ctrl+c quit"
	// header, frame border, input and hint lines
	chromeHeight = 5
	chromeWidth  = 4
)

// Model is the bubbletea model of the TUI host.
type Model struct {
	session *terminal.Session
	writer  *typewriter.Writer
	sched   *LoopScheduler
	out     *OutputBuffer
	host    *Host

	viewport viewport.Model
	input    textinput.Model

	seen        int
	tickPending bool
	width       int
	quitting    bool
}

// New creates a model rendering out and driving writer ticks through sched.
// Attach must be called before the program starts.
func New(sched *LoopScheduler, out *OutputBuffer, host *Host) *Model {
	ti := textinput.New()
	ti.Prompt = "kaya> "
	ti.Placeholder = placeholder
	ti.CharLimit = 512
	ti.Focus()

	return &Model{
		sched:    sched,
		out:      out,
		host:     host,
		viewport: viewport.New(80, 20),
		input:    ti,
		width:    80,
	}
}

// Attach binds the session and the writer it queues on.
func (m *Model) Attach(session *terminal.Session, writer *typewriter.Writer) {
	m.session = session
	m.writer = writer
}

// ClearInput empties the command line. The session calls it after each submission.
func (m *Model) ClearInput() {
	m.input.Reset()
}

// Init starts the cursor blink and any animation queued before the program ran.
func (m *Model) Init() tea.Cmd {
	m.refresh()
	return tea.Batch(textinput.Blink, m.schedule())
}

// Update handles keys, resizes and writer ticks.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

	case typewriterTickMsg:
		m.tickPending = false
		m.sched.Fire()

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyEsc:
			m.writer.Skip()
		case tea.KeyEnter:
			line := strings.TrimSpace(m.input.Value())
			if line == "exit" || line == "quit" {
				m.quitting = true
				return m, tea.Quit
			}
			if line == "" {
				m.input.Reset()
				break
			}
			m.session.Submit(line)
		case tea.KeyPgUp, tea.KeyPgDown:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			cmds = append(cmds, cmd)
		default:
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			cmds = append(cmds, cmd)
		}

	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}

	m.refresh()
	cmds = append(cmds, m.schedule())
	return m, tea.Batch(cmds...)
}

// View renders header, output frame, command line and key hints.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	styles := m.host.Styles()

	project := m.host.ProjectName()
	if project == "" {
		project = "no project"
	}
	header := styles.Title.Render("K.A.Y.A") + "  " + styles.Project.Render(project)

	frame := styles.Frame.Width(max(m.width-2, 1)).Render(m.viewport.View())

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		frame,
		m.input.View(),
		styles.Hint.Render(hintText),
	)
}

// Output returns everything revealed so far.
func (m *Model) Output() string {
	return m.out.String()
}

// schedule requests the next writer tick unless one is already in flight.
func (m *Model) schedule() tea.Cmd {
	if m.tickPending || !m.sched.Active() {
		return nil
	}
	m.tickPending = true
	return m.sched.Next()
}

func (m *Model) refresh() {
	styles := m.host.Styles()
	m.input.PromptStyle = styles.Prompt
	m.input.TextStyle = styles.Text

	if v := m.out.Version(); v != m.seen {
		m.seen = v
		m.viewport.SetContent(m.out.String())
		m.viewport.GotoBottom()
	}
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.viewport.Width = max(width-chromeWidth, 1)
	m.viewport.Height = max(height-chromeHeight, 1)
	m.input.Width = max(width-len(m.input.Prompt)-1, 1)
	m.viewport.GotoBottom()
}

// Run starts the program on the alternate screen and blocks until it quits.
func Run(m *Model, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)
	_, err := tea.NewProgram(m, opts...).Run()
	return err
}
