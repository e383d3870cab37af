// Package orchestration assembles the Kaya pipeline for a host: writer,
// handler environment, command registry, services and session.
package orchestration

import (
	"fmt"

	"github.com/spf13/afero"

	"kaya/internal/commands"
	"kaya/internal/commands/builtin"
	"kaya/internal/config"
	"kaya/internal/logger"
	"kaya/internal/services"
	"kaya/internal/terminal"
	"kaya/internal/typewriter"
	"kaya/internal/version"
	"kaya/pkg/kayatypes"
)

// Host is the front-end the pipeline drives.
type Host interface {
	kayatypes.AccentApplier
	kayatypes.ProjectOpener
}

// Runtime is one fully wired pipeline.
type Runtime struct {
	Config   *config.Config
	Writer   *typewriter.Writer
	Env      *terminal.Env
	Commands *commands.Registry
	Services *services.Registry
	Session  *terminal.Session
}

// Options carries the host-specific parts of a Runtime.
type Options struct {
	Fs        afero.Fs
	Sink      typewriter.Sink
	Scheduler typewriter.Scheduler
	Host      Host
	Session   []terminal.SessionOption
	Writer    []typewriter.Option
}

// Build wires a runtime from cfg. Nothing is shown or applied until Start.
func Build(cfg *config.Config, opts Options) (*Runtime, error) {
	fs := opts.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if opts.Host == nil {
		opts.Host = NewHeadlessHost()
	}

	writerOpts := []typewriter.Option{
		typewriter.WithInterval(cfg.Interval),
		typewriter.WithChunkSize(cfg.ChunkSize),
	}
	if opts.Scheduler != nil {
		writerOpts = append(writerOpts, typewriter.WithScheduler(opts.Scheduler))
	}
	writer := typewriter.New(opts.Sink, append(writerOpts, opts.Writer...)...)

	env := terminal.NewEnv(writer, cfg.TestMode)
	rt := &Runtime{
		Config:   cfg,
		Writer:   writer,
		Env:      env,
		Commands: commands.NewRegistry(env),
		Services: services.NewRegistry(),
	}

	for _, svc := range []kayatypes.Service{
		services.NewThemeService(nil, services.NewAccentStore(fs, cfg.AccentStore), opts.Host),
		services.NewGreetingService(cfg.GreetingTimezone, cfg.GreetingName),
	} {
		if err := rt.Services.RegisterService(svc); err != nil {
			return nil, err
		}
	}

	theme, err := rt.Services.Theme()
	if err != nil {
		return nil, err
	}
	if err := builtin.RegisterAll(rt.Commands, builtin.Dependencies{
		Theme:       theme,
		Opener:      opts.Host,
		Fs:          fs,
		ProjectsDir: cfg.ProjectsDir,
	}); err != nil {
		return nil, fmt.Errorf("failed to register builtin commands: %w", err)
	}

	rt.Session = terminal.NewSession(env, rt.Commands, opts.Session...)
	logger.Debug("Runtime built", "session", env.SessionID(), "commands", len(rt.Commands.Names()))
	return rt, nil
}

// Start initializes services, which applies the saved accent, and queues the
// boot sequence when boot is set.
func (r *Runtime) Start(boot bool) error {
	if err := r.Services.InitializeAll(); err != nil {
		return err
	}
	theme, err := r.Services.Theme()
	if err != nil {
		return err
	}
	logger.Info("Kaya started", "session", r.Env.SessionID(), "accent", theme.Current())
	if boot {
		greeting, err := r.Services.Greeting()
		if err != nil {
			return err
		}
		r.Session.Boot(version.GetVersion(), greeting.Greeting())
	}
	return nil
}

// HeadlessHost serves hosts without a live view: accents are recorded and
// opened projects remembered.
type HeadlessHost struct {
	accent  kayatypes.Accent
	project string
}

// NewHeadlessHost creates a host with nothing applied.
func NewHeadlessHost() *HeadlessHost {
	return &HeadlessHost{}
}

// ApplyAccent records the accent.
func (h *HeadlessHost) ApplyAccent(accent kayatypes.Accent) {
	h.accent = accent
	logger.Debug("Accent applied", "accent", accent.Name)
}

// OpenProject remembers dir as the active project.
func (h *HeadlessHost) OpenProject(dir string) error {
	h.project = dir
	logger.Debug("Project opened", "dir", dir)
	return nil
}

// Accent returns the last applied accent.
func (h *HeadlessHost) Accent() kayatypes.Accent {
	return h.accent
}

// Project returns the last opened project directory.
func (h *HeadlessHost) Project() string {
	return h.project
}
