package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/Iron-Ham/focusgrid/internal/config"
	"github.com/Iron-Ham/focusgrid/internal/errors"
	"github.com/Iron-Ham/focusgrid/internal/logging"
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "View debug logs",
	Long: `View and filter the debug log written by replay and demo when
logging.enabled is set. Rotated backups that are not compressed are
merged into the output in timestamp order.

Examples:
  # Show the last 50 entries
  focusgrid logs

  # Show every warning or error from one session
  focusgrid logs -s 5f0c... --level warn -n 0

  # Show pick operations from the last hour
  focusgrid logs --op pick --since 1h

  # Search messages
  focusgrid logs --grep "step"

  # Follow a running demo
  focusgrid logs -f --op navigate`,
	Args: cobra.NoArgs,
	RunE: runLogs,
}

var (
	logsDir       string
	logsSessionID string
	logsSurface   string
	logsOperation string
	logsTail      int
	logsLevel     string
	logsSince     string
	logsGrep      string
	logsFormat    string
	logsFollow    bool
)

func init() {
	rootCmd.AddCommand(logsCmd)

	logsCmd.Flags().StringVar(&logsDir, "dir", "", "Log directory (default: logging.dir)")
	logsCmd.Flags().StringVarP(&logsSessionID, "session", "s", "", "Only show this session")
	logsCmd.Flags().StringVar(&logsSurface, "surface", "", "Only show this surface (list/plane)")
	logsCmd.Flags().StringVar(&logsOperation, "op", "", "Only show operations with this prefix (e.g. pick, navigate.sync)")
	logsCmd.Flags().IntVarP(&logsTail, "tail", "n", 50, "Number of entries to show (0 for all)")
	logsCmd.Flags().StringVar(&logsLevel, "level", "", "Filter by minimum level (debug/info/warn/error)")
	logsCmd.Flags().StringVar(&logsSince, "since", "", "Show logs since duration ago (e.g., 1h, 30m)")
	logsCmd.Flags().StringVar(&logsGrep, "grep", "", "Only show messages containing this text")
	logsCmd.Flags().StringVar(&logsFormat, "format", "text", "Output format (text/json)")
	logsCmd.Flags().BoolVarP(&logsFollow, "follow", "f", false, "Follow log output (like tail -f)")
}

// logFilter builds the filter the flags describe, relative to now.
func logFilter(now time.Time) (logging.LogFilter, error) {
	filter := logging.LogFilter{
		SessionID:       logsSessionID,
		Surface:         logsSurface,
		Operation:       logsOperation,
		MessageContains: logsGrep,
	}
	if logsLevel != "" {
		filter.Level = logging.ParseLevel(logsLevel)
	}
	if logsSince != "" {
		duration, err := time.ParseDuration(logsSince)
		if err != nil {
			return logging.LogFilter{}, fmt.Errorf("invalid duration format: %w", err)
		}
		filter.Since = now.Add(-duration)
	}
	return filter, nil
}

func runLogs(cmd *cobra.Command, args []string) error {
	dir := logsDir
	if dir == "" {
		cfg := config.Get()
		dir = cfg.Logging.ResolveDir()
	}

	filter, err := logFilter(time.Now())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	entries, err := logging.AggregateLogs(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			fmt.Fprintf(out, "No logs found in %s\n", dir)
			fmt.Fprintln(out, "Set logging.enabled to true to record replay and demo sessions.")
			return nil
		}
		return err
	}

	if logsFollow {
		return followLogs(cmd.Context(), out, filepath.Join(dir, logging.FileName), filter)
	}

	entries = logging.FilterLogs(entries, filter)
	if logsTail > 0 && len(entries) > logsTail {
		entries = entries[len(entries)-logsTail:]
	}
	if len(entries) == 0 && logsFormat != "json" {
		fmt.Fprintln(out, "No matching log entries found.")
		return nil
	}
	return logging.WriteEntries(out, entries, logsFormat)
}

// followLogs prints entries appended to path until ctx is done. Rotation
// replaces the file, so the directory is watched and the file reopened
// when it is created again.
func followLogs(ctx context.Context, out io.Writer, path string, filter logging.LogFilter) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to watch logs: %w", err)
	}
	defer func() { _ = watcher.Close() }()
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(path), err)
	}

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer func() { _ = file.Close() }()
	if _, err := file.Seek(0, io.SeekEnd); err != nil {
		return fmt.Errorf("failed to seek to end: %w", err)
	}
	t := &logTail{reader: bufio.NewReader(file), filter: filter}

	fmt.Fprintf(out, "Following %s... (Ctrl+C to stop)\n\n", path)
	for {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watching logs: %w", err)
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(path) {
				continue
			}
			if event.Has(fsnotify.Create) {
				// Rotated: start over on the new file
				_ = file.Close()
				if file, err = os.Open(path); err != nil {
					return fmt.Errorf("failed to reopen log file: %w", err)
				}
				t.reset(file)
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				if err := t.print(out); err != nil {
					return err
				}
			}
		}
	}
}

// logTail prints the lines appended to a log file since the last call.
type logTail struct {
	reader  *bufio.Reader
	filter  logging.LogFilter
	partial string // a line whose newline has not been written yet
}

func (t *logTail) reset(r io.Reader) {
	t.reader.Reset(r)
	t.partial = ""
}

func (t *logTail) print(out io.Writer) error {
	for {
		line, err := t.reader.ReadString('\n')
		if errors.Is(err, io.EOF) {
			t.partial += line
			return nil
		}
		if err != nil {
			return fmt.Errorf("error reading log file: %w", err)
		}
		line = strings.TrimSpace(t.partial + line)
		t.partial = ""
		if line == "" {
			continue
		}
		entry, err := logging.ParseLogEntry(line)
		if err != nil {
			// Not JSON: show it as is
			fmt.Fprintln(out, line)
			continue
		}
		if !t.filter.Matches(entry) {
			continue
		}
		if err := logging.WriteEntries(out, []logging.LogEntry{entry}, "text"); err != nil {
			return err
		}
	}
}
