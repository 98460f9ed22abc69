// Package config handles configuration file loading and parsing.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/zachkp/folio/internal/theme"
	"github.com/zachkp/folio/internal/typewriter"
)

// Default configuration values.
const (
	DefaultServeAddr     = ":8080"
	DefaultSummaryLength = 60

	DefaultTypeDelayMs  = 100
	DefaultEraseDelayMs = 50
	DefaultHoldDelayMs  = 2000
	DefaultRestDelayMs  = 500
)

// Config represents the folio configuration.
type Config struct {
	Theme      ThemeConfig      `toml:"theme"`
	Typewriter TypewriterConfig `toml:"typewriter"`
	Filter     FilterConfig     `toml:"filter"`
	TUI        TUIConfig        `toml:"tui"`
	Serve      ServeConfig      `toml:"serve"`
}

// ThemeConfig holds theme settings. The persisted user preference, when
// present, wins over the configured default.
type ThemeConfig struct {
	Default string `toml:"default"` // dark or light
}

// TypewriterConfig holds the header animation settings.
type TypewriterConfig struct {
	Roles        []string `toml:"roles"`
	TypeDelayMs  int      `toml:"type_delay_ms"`
	EraseDelayMs int      `toml:"erase_delay_ms"`
	HoldDelayMs  int      `toml:"hold_delay_ms"`
	RestDelayMs  int      `toml:"rest_delay_ms"`
}

// FilterConfig holds project filter settings.
type FilterConfig struct {
	// Exact switches category matching from substring containment to exact
	// tag membership. Substring is the default for compatibility with the
	// original page behaviour.
	Exact bool `toml:"exact"`
}

// TUIConfig holds TUI-specific settings.
type TUIConfig struct {
	ShowHelp      bool `toml:"show_help"`
	SummaryLength int  `toml:"summary_length"`
}

// ServeConfig holds HTTP server settings.
type ServeConfig struct {
	Addr string `toml:"addr"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Theme: ThemeConfig{
			Default: theme.DefaultName,
		},
		Typewriter: TypewriterConfig{
			Roles:        append([]string(nil), typewriter.DefaultRoles...),
			TypeDelayMs:  DefaultTypeDelayMs,
			EraseDelayMs: DefaultEraseDelayMs,
			HoldDelayMs:  DefaultHoldDelayMs,
			RestDelayMs:  DefaultRestDelayMs,
		},
		Filter: FilterConfig{
			Exact: false,
		},
		TUI: TUIConfig{
			ShowHelp:      true,
			SummaryLength: DefaultSummaryLength,
		},
		Serve: ServeConfig{
			Addr: DefaultServeAddr,
		},
	}
}

// Timing converts the configured delays to a typewriter.Timing.
// Non-positive values fall back to the defaults.
func (c *TypewriterConfig) Timing() typewriter.Timing {
	t := typewriter.DefaultTiming()
	if c.TypeDelayMs > 0 {
		t.Type = time.Duration(c.TypeDelayMs) * time.Millisecond
	}
	if c.EraseDelayMs > 0 {
		t.Erase = time.Duration(c.EraseDelayMs) * time.Millisecond
	}
	if c.HoldDelayMs > 0 {
		t.Hold = time.Duration(c.HoldDelayMs) * time.Millisecond
	}
	if c.RestDelayMs > 0 {
		t.Rest = time.Duration(c.RestDelayMs) * time.Millisecond
	}
	return t
}

// ConfigPath returns the path to the config file.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func ConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "folio", "config.toml")
}

// DataPath returns the path to the data directory.
// Uses XDG_DATA_HOME if set, otherwise ~/.local/share.
func DataPath() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "folio")
}

// ProjectsPath returns the path to the projects JSONL file.
func ProjectsPath() string {
	return filepath.Join(DataPath(), "projects.jsonl")
}

// PrefsPath returns the path to the preferences file.
func PrefsPath() string {
	return filepath.Join(DataPath(), "prefs.json")
}

// LoadConfig loads configuration from the specified path.
// If path is empty, uses the default config path.
// Returns default config if file doesn't exist.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the configuration to the specified path.
// Creates parent directories if needed.
func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// EnsureDataDir creates the data directory if it doesn't exist.
func EnsureDataDir() error {
	path := DataPath()
	if path == "" {
		return errors.New("unable to determine data directory")
	}
	return os.MkdirAll(path, 0755)
}
