package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/Iron-Ham/focusgrid/internal/logging"
	"github.com/Iron-Ham/focusgrid/internal/navigate"
	"github.com/Iron-Ham/focusgrid/internal/pick"
	"github.com/Iron-Ham/focusgrid/internal/traverse"
)

// Config represents the complete focusgrid configuration
type Config struct {
	Navigation NavigationConfig `mapstructure:"navigation"`
	Pick       PickConfig       `mapstructure:"pick"`
	TUI        TUIConfig        `mapstructure:"tui"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// NavigationConfig holds the default traversal policy for focus movement
type NavigationConfig struct {
	// Loops lets Next and Previous wrap around the ends of a list or grid
	Loops bool `mapstructure:"loops"`
	// DisabledElementsAreEligibleLocations lets focus land on disabled items
	DisabledElementsAreEligibleLocations bool `mapstructure:"disabled_elements_are_eligible_locations"`
	// Direction is the grid scan direction
	// Options: "horizontal", "vertical"
	Direction string `mapstructure:"direction"`
}

// PickConfig holds the default selection policy
type PickConfig struct {
	// AllowsDuplicates keeps repeated picks of the same location
	AllowsDuplicates bool `mapstructure:"allows_duplicates"`
	// Replace is the replace mode used when a step or key press names none
	// Options: "all", "none", "partial"
	Replace string `mapstructure:"replace"`
}

// TUIConfig controls the demo terminal UI
type TUIConfig struct {
	// Theme is the color theme (default: "default")
	// Options: "default", "monokai", "dracula", "nord"
	Theme string `mapstructure:"theme"`
	// CellWidth is the width of one grid cell in columns (0 means the default)
	CellWidth int `mapstructure:"cell_width"`
	// FuzzyDistance is the largest edit distance the filter still accepts
	FuzzyDistance int `mapstructure:"fuzzy_distance"`
	// Keys rebinds normal-mode commands, e.g. {"pick_all": "ctrl+a"}
	Keys map[string]string `mapstructure:"keys"`
}

// LoggingConfig controls debug logging behavior
type LoggingConfig struct {
	// Enabled turns file logging on
	Enabled bool `mapstructure:"enabled"`
	// Level is the minimum log level
	// Options: "debug", "info", "warn", "error"
	Level string `mapstructure:"level"`
	// Dir is the log directory. Empty means <config dir>/logs.
	Dir string `mapstructure:"dir"`
	// MaxSizeMB rotates the log once it would grow past this size (0 disables rotation)
	MaxSizeMB int `mapstructure:"max_size_mb"`
	// MaxBackups is the number of rotated files to keep
	MaxBackups int `mapstructure:"max_backups"`
}

// ResolveDir returns the log directory with ~ expanded.
func (l *LoggingConfig) ResolveDir() string {
	if l.Dir == "" {
		return filepath.Join(ConfigDir(), "logs")
	}

	path := l.Dir
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = home
		}
	}
	return path
}

// Rotation converts the size settings to a logging.RotationConfig.
func (l *LoggingConfig) Rotation() logging.RotationConfig {
	return logging.RotationConfig{
		MaxSizeMB:  l.MaxSizeMB,
		MaxBackups: l.MaxBackups,
		Compress:   l.MaxBackups > 0,
	}
}

// NavigateOptions returns the navigate options this configuration selects.
// Values are assumed to have passed Validate; unknown directions fall back
// to horizontal.
func (c *Config) NavigateOptions() []navigate.Option {
	dir, err := traverse.ParseDirection(c.Navigation.Direction)
	if err != nil {
		dir = traverse.Horizontal
	}
	return []navigate.Option{navigate.WithPolicy(navigate.Policy{
		Loops:                                c.Navigation.Loops,
		DisabledElementsAreEligibleLocations: c.Navigation.DisabledElementsAreEligibleLocations,
		Direction:                            dir,
	})}
}

// PickOptions returns the pick options this configuration selects. Picking
// shares the navigation traversal settings.
func (c *Config) PickOptions() []pick.Option {
	dir, err := traverse.ParseDirection(c.Navigation.Direction)
	if err != nil {
		dir = traverse.Horizontal
	}
	replace, err := pick.ParseReplace(c.Pick.Replace)
	if err != nil {
		replace = pick.ReplaceAll
	}
	return []pick.Option{pick.WithPolicy(pick.Policy{
		Loops:                                c.Navigation.Loops,
		DisabledElementsAreEligibleLocations: c.Navigation.DisabledElementsAreEligibleLocations,
		Direction:                            dir,
		AllowsDuplicates:                     c.Pick.AllowsDuplicates,
		Replace:                              replace,
	})}
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Navigation: NavigationConfig{
			Loops:                                false,
			DisabledElementsAreEligibleLocations: false,
			Direction:                            string(traverse.Horizontal),
		},
		Pick: PickConfig{
			AllowsDuplicates: false,
			Replace:          string(pick.ReplaceAll),
		},
		TUI: TUIConfig{
			Theme:         "default",
			CellWidth:     12,
			FuzzyDistance: 2,
		},
		Logging: LoggingConfig{
			Enabled:    false,
			Level:      "info",
			Dir:        "", // Empty means <config dir>/logs
			MaxSizeMB:  5,
			MaxBackups: 2,
		},
	}
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	viper.SetDefault("navigation.loops", defaults.Navigation.Loops)
	viper.SetDefault("navigation.disabled_elements_are_eligible_locations", defaults.Navigation.DisabledElementsAreEligibleLocations)
	viper.SetDefault("navigation.direction", defaults.Navigation.Direction)

	viper.SetDefault("pick.allows_duplicates", defaults.Pick.AllowsDuplicates)
	viper.SetDefault("pick.replace", defaults.Pick.Replace)

	viper.SetDefault("tui.theme", defaults.TUI.Theme)
	viper.SetDefault("tui.cell_width", defaults.TUI.CellWidth)
	viper.SetDefault("tui.fuzzy_distance", defaults.TUI.FuzzyDistance)

	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.dir", defaults.Logging.Dir)
	viper.SetDefault("logging.max_size_mb", defaults.Logging.MaxSizeMB)
	viper.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// Get returns the current configuration, falling back to defaults when it
// does not load.
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "focusgrid")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".focusgrid"
	}
	return filepath.Join(home, ".config", "focusgrid")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}
