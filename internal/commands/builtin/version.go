package builtin

import (
	"kaya/internal/version"
	"kaya/pkg/kayatypes"
)

// VersionCommand reports the running build.
type VersionCommand struct{}

// Name returns "version".
func (c *VersionCommand) Name() string {
	return "version"
}

// Description returns a brief description of what the version command does.
func (c *VersionCommand) Description() string {
	return "Show the Kaya version"
}

// Usage returns the syntax of the version command.
func (c *VersionCommand) Usage() string {
	return "version [detailed]"
}

// Execute returns the formatted version, or the build report for "version detailed".
func (c *VersionCommand) Execute(_ kayatypes.Context, params kayatypes.Params) (string, error) {
	if tokens := params.Tokens(); len(tokens) > 0 && tokens[0] == "detailed" {
		return version.GetDetailedVersion(), nil
	}
	return version.GetFormattedVersion(), nil
}
