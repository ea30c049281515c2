package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Iron-Ham/focusgrid/internal/config"
	"github.com/Iron-Ham/focusgrid/internal/errors"
	"github.com/Iron-Ham/focusgrid/internal/fixture"
	"github.com/Iron-Ham/focusgrid/internal/replay"
)

var replayCmd = &cobra.Command{
	Use:   "replay <fixture>",
	Short: "Replay a fixture and print its transcript",
	Long: `Replay every step of a fixture against a fresh navigator and picker,
printing the outcome, focus and picks after each step.

The fixture is a YAML or TOML file, or the name of a built-in sample
(see 'focusgrid samples').

Examples:
  # Replay a fixture file
  focusgrid replay testdata/menu.yaml

  # Replay a built-in sample as JSON
  focusgrid replay board --json`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

var samplesCmd = &cobra.Command{
	Use:   "samples",
	Short: "List the built-in fixtures",
	Args:  cobra.NoArgs,
	RunE:  runSamples,
}

var (
	replayJSON    bool
	replayPlain   bool
	replaySession string
)

func init() {
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(samplesCmd)

	replayCmd.Flags().BoolVar(&replayJSON, "json", false, "Print the transcript as JSON")
	replayCmd.Flags().BoolVar(&replayPlain, "plain", false, "Disable colors even on a terminal")
	replayCmd.Flags().StringVar(&replaySession, "session", "", "Session ID to log under (default: generated)")
}

// loadFixture reads arg as a fixture file, falling back to a built-in sample
// of that name when no such file exists.
func loadFixture(arg string) (*fixture.Fixture, error) {
	if _, err := os.Stat(arg); err == nil {
		return fixture.Load(arg)
	}
	if ext := filepath.Ext(arg); ext != "" {
		return fixture.Load(arg)
	}
	f, err := fixture.Sample(arg)
	if err != nil {
		var nf *errors.NotFoundError
		if errors.As(err, &nf) {
			return nil, fmt.Errorf("no fixture file or sample named %q (samples: %s)", arg, strings.Join(fixture.Samples(), ", "))
		}
		return nil, err
	}
	return f, nil
}

// isTerminal reports whether out is an interactive terminal.
func isTerminal(out any) bool {
	f, ok := out.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func runReplay(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Close() }()

	f, err := loadFixture(args[0])
	if err != nil {
		logFailure(logger, "fixture not loaded", err, "fixture", args[0])
		return err
	}

	opts := []replay.Option{
		replay.WithLogger(logger),
		replay.WithNavigateOptions(cfg.NavigateOptions()...),
		replay.WithPickOptions(cfg.PickOptions()...),
	}
	if replaySession != "" {
		opts = append(opts, replay.WithSession(replaySession))
	}

	t, err := replay.Run(cmd.Context(), f, opts...)
	if err != nil {
		logFailure(logger, "replay failed", err, "fixture", f.Path)
		return err
	}

	out := cmd.OutOrStdout()
	if replayJSON {
		return replay.WriteJSON(out, t)
	}
	return replay.WriteText(out, t, !replayPlain && isTerminal(out))
}

func runSamples(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	for _, name := range fixture.Samples() {
		f, err := fixture.Sample(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%-12s %-6s %d cycles, %d steps\n", name, f.Kind, len(f.Cycles), len(f.Steps))
	}
	return nil
}
