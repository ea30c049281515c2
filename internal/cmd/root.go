package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Iron-Ham/focusgrid/internal/config"
	"github.com/Iron-Ham/focusgrid/internal/errors"
	"github.com/Iron-Ham/focusgrid/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "focusgrid",
	Short: "Focus and selection engine for lists and grids",
	Long: `Focusgrid moves focus and manages picks across lists and grids of
items that can be disabled, grouped into radio sets, or replaced between
render cycles.

Use 'replay' to run a fixture script and print its transcript, or 'demo'
to drive a fixture interactively in the terminal.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		reportError(rootCmd.ErrOrStderr(), err)
	}
	return err
}

// reportError prints err for the user. Malformed fixtures and snapshots
// also get a pointer to the samples, which are known to load.
func reportError(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)
	if errors.IsDomainError(err) {
		fmt.Fprintln(w, "Run 'focusgrid samples' to list fixtures that load, or 'focusgrid replay <sample> --json' to see a working transcript.")
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/focusgrid/config.yaml)")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath("$HOME/.config/focusgrid")
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("FOCUSGRID")
	// e.g., FOCUSGRID_NAVIGATION_LOOPS for navigation.loops
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}

// newLogger returns the file logger the configuration asks for, or a no-op
// logger when logging is disabled.
func newLogger(cfg *config.Config) (*logging.Logger, error) {
	if !cfg.Logging.Enabled {
		return logging.NopLogger(), nil
	}
	logger, err := logging.NewLoggerWithRotation(cfg.Logging.ResolveDir(), cfg.Logging.Level, cfg.Logging.Rotation())
	if err != nil {
		return nil, fmt.Errorf("failed to open log: %w", err)
	}
	return logger, nil
}

// logFailure records err at the level its severity calls for.
func logFailure(logger *logging.Logger, msg string, err error, args ...any) {
	severity := errors.GetSeverity(err)
	args = append(args, "error", err.Error(), "severity", severity.String())
	switch severity {
	case errors.SeverityDebug:
		logger.Debug(msg, args...)
	case errors.SeverityInfo:
		logger.Info(msg, args...)
	case errors.SeverityWarning:
		logger.Warn(msg, args...)
	default:
		logger.Error(msg, args...)
	}
}
