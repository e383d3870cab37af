package builtin

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"kaya/internal/logger"
	"kaya/pkg/kayatypes"
)

const (
	// ProjectOpenName is the primary name of the project navigation command.
	ProjectOpenName = "project.open"
	// ProjectOpenAlias is the name used by older scripts.
	ProjectOpenAlias = "ui.project_open"
)

// ProjectOpenCommand navigates the host to a project directory. A file path
// opens its parent directory; relative paths resolve against the projects root.
type ProjectOpenCommand struct {
	name        string
	fs          afero.Fs
	projectsDir string
	opener      kayatypes.ProjectOpener
}

// NewProjectOpenCommand creates the command under name.
func NewProjectOpenCommand(name string, fs afero.Fs, projectsDir string, opener kayatypes.ProjectOpener) *ProjectOpenCommand {
	return &ProjectOpenCommand{name: name, fs: fs, projectsDir: projectsDir, opener: opener}
}

// Name returns the registered command name.
func (c *ProjectOpenCommand) Name() string {
	return c.name
}

// Description returns a brief description of what the command does.
func (c *ProjectOpenCommand) Description() string {
	return "Open a project directory"
}

// Usage returns the command syntax.
func (c *ProjectOpenCommand) Usage() string {
	return c.name + " <path> | " + c.name + " path=<path>"
}

// HelpInfo returns structured help for the command.
func (c *ProjectOpenCommand) HelpInfo() kayatypes.HelpInfo {
	return kayatypes.HelpInfo{
		Command:     c.Name(),
		Description: c.Description(),
		Usage:       c.Usage(),
		Examples: []string{
			c.name + " notes",
			c.name + ` path="~/kaya/projects/My Novel"`,
		},
	}
}

// Execute resolves the path and hands it to the opener. Missing paths and
// opener failures are reported as text.
func (c *ProjectOpenCommand) Execute(ctx kayatypes.Context, params kayatypes.Params) (string, error) {
	raw := c.pathArgument(params)
	if raw == "" {
		return "Usage: " + c.Usage(), nil
	}

	dir := c.resolve(raw)
	info, err := c.fs.Stat(dir)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Debug("Project path stat failed", "path", dir, "error", err)
		}
		return "Path not found.", nil
	}
	if !info.IsDir() {
		ctx.Log(fmt.Sprintf("%q is a file, opening its folder.", filepath.Base(dir)))
		dir = filepath.Dir(dir)
	}

	if err := c.opener.OpenProject(dir); err != nil {
		return fmt.Sprintf("Open failed: %v", err), nil
	}
	return fmt.Sprintf("Opened %q in Projects.", filepath.Base(dir)), nil
}

// pathArgument prefers an explicit path= field, then the raw remainder, so
// unquoted paths with spaces still work.
func (c *ProjectOpenCommand) pathArgument(params kayatypes.Params) string {
	if v, ok := params.Field("path"); ok {
		if s := strings.TrimSpace(kayatypes.Stringify(v)); s != "" {
			return s
		}
	}
	raw := strings.TrimSpace(params.Raw())
	if tokens := params.Tokens(); len(tokens) == 1 {
		raw = tokens[0]
	}
	return raw
}

func (c *ProjectOpenCommand) resolve(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	if !filepath.IsAbs(p) && c.projectsDir != "" {
		p = filepath.Join(c.projectsDir, p)
	}
	return filepath.Clean(p)
}
