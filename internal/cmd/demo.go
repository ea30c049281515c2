package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/focusgrid/internal/config"
	"github.com/Iron-Ham/focusgrid/internal/tui"
	"github.com/Iron-Ham/focusgrid/internal/tui/styles"
)

// defaultDemoFixture is the sample shown when demo gets no argument.
const defaultDemoFixture = "menu"

var demoCmd = &cobra.Command{
	Use:   "demo [fixture]",
	Short: "Drive a fixture interactively",
	Long: `Open a fixture in the terminal and move focus and picks with the
keyboard. Press ? for the key bindings.

The fixture is a YAML or TOML file, or the name of a built-in sample.
Without an argument the "menu" sample is shown. The picked keys are
printed when the demo exits.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDemo,
}

var demoTheme string

func init() {
	rootCmd.AddCommand(demoCmd)

	demoCmd.Flags().StringVar(&demoTheme, "theme", "", "Color theme (overrides tui.theme)")
}

// demoOptions maps the configuration onto the TUI options.
func demoOptions(cfg *config.Config) tui.Options {
	theme := cfg.TUI.Theme
	if demoTheme != "" {
		theme = demoTheme
	}
	return tui.Options{
		Theme:           theme,
		CellWidth:       cfg.TUI.CellWidth,
		FuzzyDistance:   cfg.TUI.FuzzyDistance,
		Keys:            cfg.TUI.Keys,
		NavigateOptions: cfg.NavigateOptions(),
		PickOptions:     cfg.PickOptions(),
	}
}

func runDemo(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if demoTheme != "" && !styles.IsValidTheme(demoTheme) {
		return fmt.Errorf("unknown theme %q (available: %s)", demoTheme, strings.Join(styles.BuiltinThemes(), ", "))
	}

	name := defaultDemoFixture
	if len(args) == 1 {
		name = args[0]
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Close() }()

	f, err := loadFixture(name)
	if err != nil {
		logFailure(logger, "fixture not loaded", err, "fixture", name)
		return err
	}

	opts := demoOptions(cfg)
	opts.Logger = logger
	app, err := tui.New(f, opts)
	if err != nil {
		logFailure(logger, "demo not started", err, "fixture", f.Path)
		return fmt.Errorf("failed to start demo: %w", err)
	}

	final, err := app.Run(cmd.Context())
	if err != nil {
		return fmt.Errorf("demo error: %w", err)
	}

	picks := final.Picks()
	out := cmd.OutOrStdout()
	if len(picks) == 0 {
		fmt.Fprintln(out, "No picks.")
		return nil
	}
	fmt.Fprintf(out, "Picked %d: %s\n", len(picks), strings.Join(picks, ", "))
	return nil
}
