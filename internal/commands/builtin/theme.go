package builtin

import (
	"kaya/internal/services"
	"kaya/pkg/kayatypes"
)

// ThemeCommand implements "theme" and its dotted aliases. An alias fixes
// the sub-command and passes the remaining tokens through.
type ThemeCommand struct {
	name    string
	sub     string
	service *services.ThemeService
}

// NewThemeCommand creates the "theme list|set <name>|reset" command.
func NewThemeCommand(service *services.ThemeService) *ThemeCommand {
	return &ThemeCommand{name: "theme", service: service}
}

// NewThemeAlias creates "theme.<sub>", e.g. "theme.set blue".
func NewThemeAlias(sub string, service *services.ThemeService) *ThemeCommand {
	return &ThemeCommand{name: "theme." + sub, sub: sub, service: service}
}

// Name returns the registered command name.
func (c *ThemeCommand) Name() string {
	return c.name
}

// Description returns a brief description of what the command does.
func (c *ThemeCommand) Description() string {
	switch c.sub {
	case "list":
		return "List accent themes"
	case "set":
		return "Switch to an accent theme"
	case "reset":
		return "Restore the default accent theme"
	default:
		return "List, set or reset the accent theme"
	}
}

// Usage returns the command syntax.
func (c *ThemeCommand) Usage() string {
	switch c.sub {
	case "":
		return "theme list | theme set <name> | theme reset"
	case "set":
		return "theme.set <name>"
	default:
		return c.name
	}
}

// HelpInfo returns structured help for the command.
func (c *ThemeCommand) HelpInfo() kayatypes.HelpInfo {
	info := kayatypes.HelpInfo{
		Command:     c.Name(),
		Description: c.Description(),
		Usage:       c.Usage(),
	}
	if c.sub == "" {
		info.Examples = []string{"theme list", "theme set blue", "theme set name=amber", "theme reset"}
	}
	return info
}

// Execute applies the sub-command and returns the theme service's response.
func (c *ThemeCommand) Execute(_ kayatypes.Context, params kayatypes.Params) (string, error) {
	if c.sub != "" {
		params = params.Prepend(c.sub)
	}
	return c.service.Handle(params), nil
}
