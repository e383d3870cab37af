// Package main provides the Kaya CLI entry point.
// Kaya is a personal terminal assistant: commands typed at a prompt are
// dispatched to handlers and their replies are revealed with a typewriter effect.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"kaya/internal/config"
	"kaya/internal/logger"
	"kaya/internal/orchestration"
	"kaya/internal/services"
	"kaya/internal/shell"
	"kaya/internal/terminal"
	"kaya/internal/tui"
	"kaya/internal/version"
)

var (
	logLevel   string
	logFile    string
	configFile string
	testMode   bool
	detailed   bool

	cfg *config.Config
	fs  = afero.NewOsFs()
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "kaya",
	Short: "Kaya - personal terminal assistant",
	Long: `Kaya is a personal terminal assistant with an animated command line.
Type "help" at the prompt for the available commands.`,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		return initConfig()
	},
	RunE: runTUI,
}

// replCmd runs Kaya as a plain line-mode shell
var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start the line-mode shell",
	Long:  `Start Kaya in the current terminal without the full-screen interface.`,
	RunE:  runREPL,
}

// runCmd executes a script without animation
var runCmd = &cobra.Command{
	Use:   "run <script.kaya>",
	Short: "Execute a .kaya script file",
	Long: `Execute every line of a .kaya script as if typed at the prompt.
Blank lines and lines starting with "#" are skipped. Output is printed without animation.`,
	Args: cobra.ExactArgs(1),
	RunE: runScript,
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(_ *cobra.Command, _ []string) {
		if detailed {
			fmt.Println(version.GetDetailedVersion())
			return
		}
		fmt.Println(version.GetFormattedVersion())
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&logLevel, "log-level", "", "Set log level (debug|info|warn|error) [default: info]")
	flags.StringVar(&logFile, "log-file", "", "Write logs to file instead of stderr")
	flags.StringVar(&configFile, "config", "", "Read configuration from this YAML file")
	flags.BoolVar(&testMode, "test-mode", false, "Run in deterministic test mode")

	for _, key := range []string{config.KeyLogLevel, config.KeyLogFile, config.KeyConfigFile, config.KeyTestMode} {
		if err := viper.BindPFlag(key, flags.Lookup(key)); err != nil {
			fmt.Fprintf(os.Stderr, "Error binding %s flag: %v\n", key, err)
			os.Exit(1)
		}
	}

	versionCmd.Flags().BoolVar(&detailed, "detailed", false, "Include build details")

	rootCmd.AddCommand(replCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() error {
	loaded, err := config.Load(viper.GetViper(), fs)
	if err != nil {
		return err
	}
	cfg = loaded

	if err := logger.Configure(cfg.LogLevel, cfg.LogFile, cfg.TestMode); err != nil {
		return fmt.Errorf("failed to configure logger: %w", err)
	}
	if err := version.ValidateVersion(); err != nil {
		logger.Warn("Build version is not semantic", "error", err)
	}
	return nil
}

func runTUI(_ *cobra.Command, _ []string) error {
	// the full-screen view owns the terminal, so logs go to a file
	if cfg.LogFile == "" {
		cfg.LogFile = filepath.Join(os.TempDir(), "kaya.log")
		if err := logger.Configure(cfg.LogLevel, cfg.LogFile, cfg.TestMode); err != nil {
			return fmt.Errorf("failed to configure logger: %w", err)
		}
	}

	sched := tui.NewLoopScheduler()
	out := tui.NewOutputBuffer()
	host := tui.NewHost(services.FallbackAccent)
	model := tui.New(sched, out, host)

	rt, err := orchestration.Build(cfg, orchestration.Options{
		Fs:        fs,
		Sink:      out,
		Scheduler: sched,
		Host:      host,
		Session:   []terminal.SessionOption{terminal.WithClearInput(model.ClearInput)},
	})
	if err != nil {
		return err
	}
	model.Attach(rt.Session, rt.Writer)

	if err := rt.Start(true); err != nil {
		return err
	}
	logger.Info("Starting Kaya", "version", version.GetVersion(), "host", "tui")
	return tui.Run(model)
}

func runREPL(_ *cobra.Command, _ []string) error {
	host := shell.NewHost(services.FallbackAccent)
	rt, err := orchestration.Build(cfg, orchestration.Options{
		Fs:   fs,
		Sink: shell.Sink(os.Stdout),
		Host: host,
	})
	if err != nil {
		return err
	}

	if err := rt.Start(true); err != nil {
		return err
	}
	logger.Info("Starting Kaya", "version", version.GetVersion(), "host", "repl")
	shell.New(rt.Session, rt.Writer, host).Run()
	return nil
}

func runScript(_ *cobra.Command, args []string) error {
	scriptPath := args[0]
	logger.Info("Starting Kaya batch mode", "version", version.GetVersion(), "script", scriptPath)

	if err := orchestration.ValidateScriptFile(fs, scriptPath); err != nil {
		return err
	}

	rt, err := orchestration.Build(cfg, orchestration.Options{
		Fs:   fs,
		Sink: shell.Sink(os.Stdout),
	})
	if err != nil {
		return err
	}
	if err := rt.Start(false); err != nil {
		return err
	}

	if err := orchestration.ExecuteScript(fs, scriptPath, rt); err != nil {
		return fmt.Errorf("script execution failed: %w", err)
	}
	logger.Info("Script executed successfully", "script", scriptPath)
	return nil
}
