// Package logger provides centralized logging functionality for Kaya.
// It configures structured logging with support for different output destinations and log levels.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"kaya/pkg/kayatypes"
)

// Logger is the global logger instance used throughout Kaya.
var Logger *log.Logger

// output is where the global logger writes; component loggers share it.
var output io.Writer = os.Stderr

func init() {
	Logger = log.New(output)
	Logger.SetTimeFormat("")
	Logger.SetLevel(log.InfoLevel)
}

// Configure sets up the logger based on CLI flags and environment variables.
// CLI flags take precedence over environment variables.
func Configure(logLevel string, logFile string, testMode bool) error {
	level := logLevel
	if level == "" {
		level = strings.ToLower(os.Getenv("KAYA_LOG_LEVEL"))
	}
	if level == "" {
		level = "info"
	}

	var out io.Writer = os.Stderr
	if logFile != "" {
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return err
		}
		out = file
	}

	output = out
	Logger = log.New(output)
	Logger.SetTimeFormat("")
	Logger.SetLevel(parseLogLevel(level))

	if testMode {
		// deterministic output
		Logger.SetTimeFormat("")
		Logger.SetLevel(log.InfoLevel)
	}

	return nil
}

// parseLogLevel converts string to log level
func parseLogLevel(level string) log.Level {
	switch strings.ToLower(level) {
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "warn":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	case "fatal":
		return log.FatalLevel
	default:
		return log.InfoLevel
	}
}

// Debug logs a debug message with optional key-value pairs.
func Debug(msg interface{}, keyvals ...interface{}) {
	Logger.Debug(msg, keyvals...)
}

// Info logs an info message with optional key-value pairs.
func Info(msg interface{}, keyvals ...interface{}) {
	Logger.Info(msg, keyvals...)
}

// Warn logs a warning message with optional key-value pairs.
func Warn(msg interface{}, keyvals ...interface{}) {
	Logger.Warn(msg, keyvals...)
}

// Error logs an error message with optional key-value pairs.
func Error(msg interface{}, keyvals ...interface{}) {
	Logger.Error(msg, keyvals...)
}

// CommandExecution logs command dispatch details for debugging.
func CommandExecution(command string, params kayatypes.Params) {
	Debug("Executing command", "command", command, "params", params.String())
}

// ServiceOperation logs service operation details for debugging.
func ServiceOperation(service string, operation string, details ...interface{}) {
	Debug("Service operation", "service", service, "operation", operation, "details", details)
}

// levelColors are the badge backgrounds of component loggers.
var levelColors = map[log.Level]string{
	log.DebugLevel: "240",
	log.InfoLevel:  "33",
	log.WarnLevel:  "214",
	log.ErrorLevel: "196",
}

// NewStyledLogger creates a new logger with custom styles and prefix for component-specific logging.
// The prefix parameter names the component (e.g., "Writer", "Session").
func NewStyledLogger(prefix string) *log.Logger {
	styles := log.DefaultStyles()

	for level, bg := range levelColors {
		styles.Levels[level] = lipgloss.NewStyle().
			SetString(strings.ToUpper(level.String())).
			Padding(0, 1, 0, 1).
			Background(lipgloss.Color(bg)).
			Foreground(lipgloss.Color("15"))
	}

	styles.Keys["session"] = lipgloss.NewStyle().Foreground(lipgloss.Color("99"))
	styles.Keys["line"] = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	styles.Keys["queued"] = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	styles.Keys["error"] = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	styles.Keys["command"] = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	styles.Keys["accent"] = lipgloss.NewStyle().Foreground(lipgloss.Color("51"))

	styles.Values["error"] = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))

	componentLogger := log.NewWithOptions(output, log.Options{
		Prefix: prefix + " ",
	})
	componentLogger.SetStyles(styles)
	componentLogger.SetLevel(Logger.GetLevel())

	return componentLogger
}
