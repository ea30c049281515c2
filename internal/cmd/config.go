package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/Iron-Ham/focusgrid/internal/config"
	"github.com/Iron-Ham/focusgrid/internal/tui/keymap"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or modify focusgrid configuration",
	Long: `View or modify focusgrid configuration.

Without arguments, displays the current configuration.
Use subcommands to modify settings or create a config file.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value in the user's config file.

Keys use dot notation, e.g.:
  focusgrid config set navigation.loops true
  focusgrid config set pick.replace partial
  focusgrid config set tui.keys.pick_all ctrl+a

Valid keys:
  navigation.loops                     - Wrap around the ends (true/false)
  navigation.disabled_elements_are_eligible_locations
                                       - Let focus land on disabled items (true/false)
  navigation.direction                 - Grid scan direction
                                         Options: horizontal, vertical
  pick.allows_duplicates               - Keep repeated picks (true/false)
  pick.replace                         - Default replace mode
                                         Options: all, none, partial
  tui.theme                            - Color theme
                                         Options: default, monokai, dracula, nord
  tui.cell_width                       - Grid cell width in columns
  tui.fuzzy_distance                   - Largest edit distance the filter accepts
  tui.keys.<command>                   - Key for a normal-mode command
  logging.enabled                      - Write a debug log (true/false)
  logging.level                        - Options: debug, info, warn, error
  logging.dir                          - Log directory
  logging.max_size_mb                  - Rotate the log past this size
  logging.max_backups                  - Rotated logs to keep`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file",
	Long:  `Create a default config file at ~/.config/focusgrid/config.yaml with all available options.`,
	RunE:  runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the config file path",
	RunE:  runConfigPath,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the configuration for invalid values",
	RunE:  runConfigValidate,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configValidateCmd)
}

// configKeyTypes lists the keys config set accepts and how to parse them.
var configKeyTypes = map[string]string{
	"navigation.disabled_elements_are_eligible_locations": "bool",

	"navigation.loops":       "bool",
	"navigation.direction":   "string",
	"pick.allows_duplicates": "bool",
	"pick.replace":           "string",
	"tui.theme":              "string",
	"tui.cell_width":         "int",
	"tui.fuzzy_distance":     "int",
	"logging.enabled":        "bool",
	"logging.level":          "string",
	"logging.dir":            "string",
	"logging.max_size_mb":    "int",
	"logging.max_backups":    "int",
}

// parseConfigValue converts value to the type key expects.
func parseConfigValue(key, value string) (any, error) {
	if cmdName, ok := strings.CutPrefix(key, "tui.keys."); ok {
		if !keymap.IsCommand(keymap.Command(cmdName)) {
			return nil, fmt.Errorf("unknown command %q in %s", cmdName, key)
		}
		if _, err := keymap.ParseKey(value); err != nil {
			return nil, fmt.Errorf("invalid value for %s: %w", key, err)
		}
		return value, nil
	}

	keyType, ok := configKeyTypes[key]
	if !ok {
		return nil, fmt.Errorf("unknown configuration key: %s\nRun 'focusgrid config set --help' to see valid keys", key)
	}

	switch keyType {
	case "bool":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("invalid value for %s: expected true or false", key)
		}
		return b, nil
	case "int":
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("invalid value for %s: expected integer", key)
		}
		return n, nil
	default:
		return value, nil
	}
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	// Show where config is being read from
	if viper.ConfigFileUsed() != "" {
		fmt.Fprintf(out, "# Config file: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Fprintln(out, "# Config file: (none - using defaults)")
	}

	data, err := yaml.Marshal(viper.AllSettings())
	if err != nil {
		return fmt.Errorf("failed to render configuration: %w", err)
	}
	_, err = out.Write(data)
	return err
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	typedValue, err := parseConfigValue(key, value)
	if err != nil {
		return err
	}

	viper.Set(key, typedValue)
	if _, err := config.Load(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Ensure config directory exists
	configDir := config.ConfigDir()
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configFile := viper.ConfigFileUsed()
	if configFile == "" {
		configFile = config.ConfigFile()
	}
	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Set %s = %v\n", key, typedValue)
	fmt.Fprintf(out, "Config saved to %s\n", configFile)
	return nil
}

// configTemplate is the commented file written by config init.
const configTemplate = `# focusgrid configuration

# Focus movement defaults. Fixtures may override each field.
navigation:
  # Wrap around the ends of a list or grid
  loops: false
  # Let focus land on disabled items
  disabled_elements_are_eligible_locations: false
  # Grid scan direction: horizontal or vertical
  direction: horizontal

# Selection defaults
pick:
  # Keep repeated picks of the same item
  allows_duplicates: false
  # Replace mode when none is given: all, none or partial
  replace: all

# Demo terminal UI
tui:
  # Options: default, monokai, dracula, nord
  theme: default
  # Width of one grid cell in columns
  cell_width: 12
  # Largest edit distance the / filter still accepts
  fuzzy_distance: 2
  # Rebind normal-mode commands, e.g.
  # keys:
  #   pick_all: ctrl+a

# Debug logging
logging:
  enabled: false
  # Options: debug, info, warn, error
  level: info
  # Empty means ~/.config/focusgrid/logs
  dir: ""
  max_size_mb: 5
  max_backups: 2
`

func runConfigInit(cmd *cobra.Command, args []string) error {
	configDir := config.ConfigDir()
	configFile := config.ConfigFile()

	// Check if config file already exists
	if _, err := os.Stat(configFile); err == nil {
		return fmt.Errorf("config file already exists at %s\nUse 'focusgrid config set' to modify values", configFile)
	}

	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(configFile, []byte(configTemplate), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created config file at %s\n", configFile)
	fmt.Fprintln(out, "Edit this file to change the navigation and pick defaults.")
	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	configFile := config.ConfigFile()

	if viper.ConfigFileUsed() != "" {
		fmt.Fprintf(out, "Active config: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Fprintf(out, "Default path: %s (not created)\n", configFile)
	}

	// Also show config search paths
	fmt.Fprintln(out, "\nSearch paths:")
	fmt.Fprintf(out, "  1. %s\n", filepath.Join(config.ConfigDir(), "config.yaml"))
	fmt.Fprintln(out, "  2. $HOME/.config/focusgrid/config.yaml")
	fmt.Fprintln(out, "  3. ./config.yaml (current directory)")
	fmt.Fprintln(out, "\nEnvironment variables: FOCUSGRID_* (e.g., FOCUSGRID_NAVIGATION_LOOPS)")
	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	if _, err := config.Load(); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Configuration is valid.")
	return nil
}
