// Package config loads Kaya settings from defaults, an optional YAML file,
// .env files and KAYA_* environment variables, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/afero"
	"github.com/spf13/cast"
	"github.com/spf13/viper"

	"kaya/internal/logger"
	"kaya/internal/services"
	"kaya/internal/typewriter"
)

// Keys understood by Load.
const (
	KeyConfigFile       = "config"
	KeyAccentStore      = "accent_store"
	KeyInterval         = "typewriter.interval"
	KeyChunkSize        = "typewriter.chunk"
	KeyGreetingTimezone = "greeting.timezone"
	KeyGreetingName     = "greeting.name"
	KeyProjectsDir      = "projects_dir"
	KeyLogLevel         = "log-level"
	KeyLogFile          = "log-file"
	KeyTestMode         = "test-mode"
)

// EnvPrefix prefixes every environment override, e.g. KAYA_TYPEWRITER_CHUNK.
const EnvPrefix = "KAYA"

// Config is the resolved configuration.
type Config struct {
	AccentStore      string
	Interval         time.Duration
	ChunkSize        int
	GreetingTimezone string
	GreetingName     string
	ProjectsDir      string
	LogLevel         string
	LogFile          string
	TestMode         bool

	// ConfigFile is the YAML file that was read, empty when none was found.
	ConfigFile string
	// EnvFiles lists the .env files that were loaded.
	EnvFiles []string
}

// ConfigDir returns ~/.config/kaya.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, ".config", "kaya"), nil
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	v.SetDefault(KeyAccentStore, services.DefaultAccentStorePath())
	v.SetDefault(KeyInterval, typewriter.DefaultInterval.String())
	v.SetDefault(KeyChunkSize, typewriter.DefaultChunkSize)
	v.SetDefault(KeyGreetingTimezone, "Europe/Istanbul")
	v.SetDefault(KeyGreetingName, "")
	v.SetDefault(KeyProjectsDir, filepath.Join(home, "kaya", "projects"))
	v.SetDefault(KeyLogLevel, "")
	v.SetDefault(KeyLogFile, "")
	v.SetDefault(KeyTestMode, false)
}

// Load resolves configuration on v, reading files through fs. Flags must be
// bound to v before calling Load.
func Load(v *viper.Viper, fs afero.Fs) (*Config, error) {
	SetDefaults(v)
	v.SetFs(fs)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	cfg := &Config{}

	if !v.GetBool(KeyTestMode) {
		cfg.EnvFiles = loadDotEnvFiles(fs)
	}

	if err := readConfigFile(v); err != nil {
		return nil, err
	}
	cfg.ConfigFile = v.ConfigFileUsed()

	interval, err := parseInterval(v.Get(KeyInterval))
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", KeyInterval, err)
	}
	chunk, err := cast.ToIntE(v.Get(KeyChunkSize))
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", KeyChunkSize, err)
	}

	cfg.AccentStore = expandHome(v.GetString(KeyAccentStore))
	cfg.Interval = max(interval, time.Millisecond)
	cfg.ChunkSize = max(chunk, 1)
	cfg.GreetingTimezone = v.GetString(KeyGreetingTimezone)
	cfg.GreetingName = v.GetString(KeyGreetingName)
	cfg.ProjectsDir = expandHome(v.GetString(KeyProjectsDir))
	cfg.LogLevel = v.GetString(KeyLogLevel)
	cfg.LogFile = v.GetString(KeyLogFile)
	cfg.TestMode = v.GetBool(KeyTestMode)

	logger.Debug("Configuration loaded", "file", cfg.ConfigFile, "env_files", cfg.EnvFiles)
	return cfg, nil
}

// readConfigFile reads an explicit --config file, or config.yaml from the
// config directory when present.
func readConfigFile(v *viper.Viper) error {
	if explicit := v.GetString(KeyConfigFile); explicit != "" {
		v.SetConfigFile(expandHome(explicit))
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file %s: %w", explicit, err)
		}
		return nil
	}

	dir, err := ConfigDir()
	if err != nil {
		return nil
	}
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return nil
}

// loadDotEnvFiles exports variables from ./.env and then ~/.config/kaya/.env.
// Variables already in the environment are never overridden, so the local
// file wins over the config-directory file.
func loadDotEnvFiles(fs afero.Fs) []string {
	var paths []string
	if wd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(wd, ".env"))
	}
	if dir, err := ConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, ".env"))
	}

	var loaded []string
	for _, path := range paths {
		ok, err := loadDotEnv(fs, path)
		if err != nil {
			logger.Warn("Skipping unreadable .env file", "path", path, "error", err)
			continue
		}
		if ok {
			loaded = append(loaded, path)
		}
	}
	return loaded
}

func loadDotEnv(fs afero.Fs, path string) (bool, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read .env file %s: %w", path, err)
	}

	envMap, err := godotenv.Unmarshal(string(data))
	if err != nil {
		return false, fmt.Errorf("failed to parse .env file %s: %w", path, err)
	}

	for key, value := range envMap {
		if _, exists := os.LookupEnv(key); exists {
			continue
		}
		if err := os.Setenv(key, value); err != nil {
			return false, fmt.Errorf("failed to export %s: %w", key, err)
		}
	}
	return true, nil
}

// parseInterval accepts a duration ("20ms") or a bare number of milliseconds.
func parseInterval(raw any) (time.Duration, error) {
	if n, err := cast.ToIntE(raw); err == nil {
		return time.Duration(n) * time.Millisecond, nil
	}
	return cast.ToDurationE(raw)
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
