package builtin

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss/list"

	"kaya/internal/commands"
	"kaya/pkg/kayatypes"
)

// HelpCommand lists the registered commands, or shows one command's usage.
type HelpCommand struct {
	registry *commands.Registry
}

// NewHelpCommand creates a help command reading from reg.
func NewHelpCommand(reg *commands.Registry) *HelpCommand {
	return &HelpCommand{registry: reg}
}

// Name returns the command name "help" for registration and lookup.
func (c *HelpCommand) Name() string {
	return "help"
}

// Description returns a brief description of what the help command does.
func (c *HelpCommand) Description() string {
	return "Show command help"
}

// Usage returns the syntax of the help command.
func (c *HelpCommand) Usage() string {
	return "help [command]"
}

// Execute renders the command list, or the help of the named command.
func (c *HelpCommand) Execute(_ kayatypes.Context, params kayatypes.Params) (string, error) {
	if tokens := params.Tokens(); len(tokens) > 0 {
		return c.commandHelp(strings.ToLower(tokens[0])), nil
	}
	return c.allCommands(), nil
}

func (c *HelpCommand) allCommands() string {
	cmds := c.registry.All()

	width := 0
	for _, cmd := range cmds {
		if n := len(cmd.Name()); n > width {
			width = n
		}
	}

	l := list.New().Enumerator(list.Dash)
	for _, cmd := range cmds {
		l.Item(fmt.Sprintf("%-*s  %s", width, cmd.Name(), cmd.Description()))
	}

	return "Commands:\n" + l.String() + "\n\nType \"help <command>\" for usage."
}

func (c *HelpCommand) commandHelp(name string) string {
	if !c.registry.IsValidCommand(name) {
		return "Unknown command: " + name
	}
	cmd, _ := c.registry.Get(name)

	info := kayatypes.HelpInfo{
		Command:     cmd.Name(),
		Description: cmd.Description(),
		Usage:       cmd.Usage(),
	}
	if provider, ok := cmd.(kayatypes.HelpProvider); ok {
		info = provider.HelpInfo()
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s\nUsage: %s", info.Command, info.Description, info.Usage)
	if len(info.Examples) > 0 {
		b.WriteString("\nExamples:\n")
		b.WriteString(list.New().Enumerator(list.Dash).Items(toAny(info.Examples)...).String())
	}
	return b.String()
}

func toAny(items []string) []any {
	out := make([]any, len(items))
	for i, s := range items {
		out[i] = s
	}
	return out
}
