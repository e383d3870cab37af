// Package builtin provides the commands every Kaya host registers by default.
// This file wires them into a registry together with their dependencies.
package builtin

import (
	"fmt"

	"github.com/spf13/afero"

	"kaya/internal/commands"
	"kaya/internal/services"
	"kaya/pkg/kayatypes"
)

// Dependencies are the collaborators builtin commands need from the host.
type Dependencies struct {
	Theme       *services.ThemeService
	Opener      kayatypes.ProjectOpener
	Fs          afero.Fs
	ProjectsDir string
}

// Commands builds the builtin command set for deps.
func Commands(reg *commands.Registry, deps Dependencies) []kayatypes.Command {
	fs := deps.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}

	cmds := []kayatypes.Command{
		NewHelpCommand(reg),
		&EchoCommand{},
		&VersionCommand{},
	}

	if deps.Theme != nil {
		cmds = append(cmds,
			NewThemeCommand(deps.Theme),
			NewThemeAlias("list", deps.Theme),
			NewThemeAlias("set", deps.Theme),
			NewThemeAlias("reset", deps.Theme),
		)
	}

	if deps.Opener != nil {
		cmds = append(cmds,
			NewProjectOpenCommand(ProjectOpenName, fs, deps.ProjectsDir, deps.Opener),
			NewProjectOpenCommand(ProjectOpenAlias, fs, deps.ProjectsDir, deps.Opener),
		)
	}

	return cmds
}

// RegisterAll registers the builtin commands into reg. A registration
// failure means two builtins share a name.
func RegisterAll(reg *commands.Registry, deps Dependencies) error {
	for _, cmd := range Commands(reg, deps) {
		if err := reg.Register(cmd); err != nil {
			return fmt.Errorf("failed to register %s command: %w", cmd.Name(), err)
		}
	}
	return nil
}
