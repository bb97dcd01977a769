// internal/config/config.go
//
// This package handles configuration and the .weekendly directory structure.
// Every user gets a .weekendly/ folder in their home directory (or wherever
// WEEKENDLY_HOME points).

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

const (
	// HomeDirName is the directory created under the user's home.
	HomeDirName = ".weekendly"

	// envPrefix scopes environment overrides, e.g. WEEKENDLY_HOME.
	envPrefix = "WEEKENDLY"

	// StorageSQLite persists the plan in a SQLite key-value table.
	StorageSQLite = "sqlite"
	// StorageMemory keeps the plan for the session only.
	StorageMemory = "memory"

	defaultStorage  = StorageSQLite
	defaultLogLevel = "info"
	defaultDay      = "saturday"
)

const defaultSettingsYAML = `# weekendly configuration
version: 1

# Storage backend for the plan snapshot: sqlite (durable) or memory (session only).
storage: sqlite

# Day new items target when none is chosen in the UI.
default_day: saturday

# Log level for logs/weekendly.log: debug, info, warn, error.
log_level: info

# Where plan exports are written. Relative paths resolve against the home dir.
# export_dir: exports
`

// Settings models config.yaml.
type Settings struct {
	Version    int    `yaml:"version"`
	Storage    string `yaml:"storage"`
	DefaultDay string `yaml:"default_day"`
	LogLevel   string `yaml:"log_level"`
	ExportDir  string `yaml:"export_dir,omitempty"`
}

// envOverrides are applied on top of config.yaml. Variables use the
// WEEKENDLY_ prefix, e.g. WEEKENDLY_STORAGE=memory.
type envOverrides struct {
	Home     string `envconfig:"HOME"`
	Storage  string `envconfig:"STORAGE"`
	LogLevel string `envconfig:"LOG_LEVEL"`
}

// Config holds the runtime configuration for Weekendly.
type Config struct {
	// HomeDir is the .weekendly directory everything lives under.
	HomeDir string

	Settings Settings
}

// InitHomeDir creates the .weekendly directory structure. Called on startup
// before anything opens files.
//
// Structure created:
// .weekendly/
// ├── state/    <- SQLite plan snapshot database
// ├── logs/     <- diagnostics log
// └── exports/  <- plan export files
func InitHomeDir(homeDir string) error {
	dirs := []string{
		filepath.Join(homeDir, "state"),
		filepath.Join(homeDir, "logs"),
		filepath.Join(homeDir, "exports"),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return ensureSettingsFile(filepath.Join(homeDir, "config.yaml"))
}

// New resolves the home directory, loads config.yaml, and applies
// environment overrides.
func New() (*Config, error) {
	var env envOverrides
	if err := envconfig.Process(envPrefix, &env); err != nil {
		return nil, fmt.Errorf("config: process environment: %w", err)
	}

	homeDir := strings.TrimSpace(env.Home)
	if homeDir == "" {
		userHome, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("config: resolve home directory: %w", err)
		}
		homeDir = filepath.Join(userHome, HomeDirName)
	}

	cfg := &Config{
		HomeDir:  filepath.Clean(homeDir),
		Settings: defaultSettings(),
	}
	if err := cfg.loadSettings(); err != nil {
		return nil, err
	}
	cfg.applyEnv(env)
	if err := cfg.Settings.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// SettingsPath returns the on-disk location of config.yaml.
func (c *Config) SettingsPath() string {
	return filepath.Join(c.HomeDir, "config.yaml")
}

// StateDir returns the directory holding the plan snapshot database.
func (c *Config) StateDir() string {
	return filepath.Join(c.HomeDir, "state")
}

// DatabasePath returns the SQLite file for the plan snapshot.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.StateDir(), "weekendly.db")
}

// LogsDir returns the diagnostics log directory.
func (c *Config) LogsDir() string {
	return filepath.Join(c.HomeDir, "logs")
}

// LogPath returns the diagnostics log file.
func (c *Config) LogPath() string {
	return filepath.Join(c.LogsDir(), "weekendly.log")
}

// JournalPath returns the plan activity journal file.
func (c *Config) JournalPath() string {
	return filepath.Join(c.HomeDir, "journal.log")
}

// ExportsDir returns where plan export files are written.
func (c *Config) ExportsDir() string {
	dir := strings.TrimSpace(c.Settings.ExportDir)
	if dir == "" {
		return filepath.Join(c.HomeDir, "exports")
	}
	if filepath.IsAbs(dir) {
		return filepath.Clean(dir)
	}
	return filepath.Clean(filepath.Join(c.HomeDir, dir))
}

func (c *Config) loadSettings() error {
	path := c.SettingsPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	var parsed Settings
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	parsed.applyDefaults()
	c.Settings = parsed
	return nil
}

func (c *Config) applyEnv(env envOverrides) {
	if v := strings.TrimSpace(env.Storage); v != "" {
		c.Settings.Storage = strings.ToLower(v)
	}
	if v := strings.TrimSpace(env.LogLevel); v != "" {
		c.Settings.LogLevel = strings.ToLower(v)
	}
}

func defaultSettings() Settings {
	return Settings{
		Version:    1,
		Storage:    defaultStorage,
		DefaultDay: defaultDay,
		LogLevel:   defaultLogLevel,
	}
}

func (s *Settings) applyDefaults() {
	if s.Version == 0 {
		s.Version = 1
	}
	if strings.TrimSpace(s.Storage) == "" {
		s.Storage = defaultStorage
	}
	if strings.TrimSpace(s.DefaultDay) == "" {
		s.DefaultDay = defaultDay
	}
	if strings.TrimSpace(s.LogLevel) == "" {
		s.LogLevel = defaultLogLevel
	}
	s.Storage = strings.ToLower(strings.TrimSpace(s.Storage))
	s.DefaultDay = strings.ToLower(strings.TrimSpace(s.DefaultDay))
	s.LogLevel = strings.ToLower(strings.TrimSpace(s.LogLevel))
}

func (s Settings) validate() error {
	if s.Version < 1 {
		return fmt.Errorf("version must be >= 1")
	}
	switch s.Storage {
	case StorageSQLite, StorageMemory:
	default:
		return fmt.Errorf("storage must be %q or %q", StorageSQLite, StorageMemory)
	}
	switch s.DefaultDay {
	case "saturday", "sunday":
	default:
		return fmt.Errorf("default_day must be saturday or sunday")
	}
	switch s.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be debug, info, warn, or error")
	}
	return nil
}

func ensureSettingsFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.WriteFile(path, []byte(defaultSettingsYAML), 0o644)
}
