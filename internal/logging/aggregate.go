package logging

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// LogEntry is one parsed JSON log line.
type LogEntry struct {
	Timestamp time.Time      `json:"time"`
	Level     string         `json:"level"`
	Message   string         `json:"msg"`
	SessionID string         `json:"session_id,omitempty"`
	Surface   string         `json:"surface,omitempty"`
	Operation string         `json:"op,omitempty"`
	Attrs     map[string]any `json:"attrs,omitempty"`
}

// LogFilter selects entries. Zero fields match everything; set fields are
// combined with AND.
type LogFilter struct {
	// Level keeps entries at or above this level.
	Level           string
	Since           time.Time
	SessionID       string
	Surface         string
	Operation       string
	MessageContains string
}

var levelOrder = map[string]int{
	LevelDebug: 0,
	LevelInfo:  1,
	LevelWarn:  2,
	LevelError: 3,
}

// AggregateLogs reads focusgrid.log and any uncompressed rotated backups in
// dir. Entries are returned sorted by timestamp. Lines that are not JSON are
// skipped so a truncated tail does not hide the rest of the file.
func AggregateLogs(dir string) ([]LogEntry, error) {
	live := filepath.Join(dir, FileName)
	if _, err := os.Stat(live); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("no log file found in %s: %w", dir, err)
		}
		return nil, fmt.Errorf("failed to stat log file: %w", err)
	}

	backups, _ := filepath.Glob(live + ".[0-9]*")
	paths := append([]string{live}, backups...)

	var entries []LogEntry
	for _, path := range paths {
		if strings.HasSuffix(path, ".gz") {
			continue
		}
		fileEntries, err := readLogFile(path)
		if err != nil {
			return nil, err
		}
		entries = append(entries, fileEntries...)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp.Before(entries[j].Timestamp)
	})
	return entries, nil
}

func readLogFile(path string) ([]LogEntry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var entries []LogEntry
	scanner := bufio.NewScanner(file)
	const maxLine = 1024 * 1024
	scanner.Buffer(make([]byte, 64*1024), maxLine)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		entry, err := ParseLogEntry(line)
		if err != nil {
			continue
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading %s: %w", path, err)
	}
	return entries, nil
}

// ParseLogEntry decodes one JSON log line.
func ParseLogEntry(line string) (LogEntry, error) {
	var raw map[string]any
	if err := json.Unmarshal([]byte(line), &raw); err != nil {
		return LogEntry{}, fmt.Errorf("invalid JSON: %w", err)
	}

	entry := LogEntry{Attrs: make(map[string]any)}
	str := func(key string) string {
		s, _ := raw[key].(string)
		return s
	}
	if ts, err := time.Parse(time.RFC3339Nano, str("time")); err == nil {
		entry.Timestamp = ts
	}
	entry.Level = str("level")
	entry.Message = str("msg")
	entry.SessionID = str(KeySession)
	entry.Surface = str(KeySurface)
	entry.Operation = str(KeyOperation)

	for k, v := range raw {
		switch k {
		case "time", "level", "msg", KeySession, KeySurface, KeyOperation:
		default:
			entry.Attrs[k] = v
		}
	}
	return entry, nil
}

// FilterLogs returns the entries matching filter.
func FilterLogs(entries []LogEntry, filter LogFilter) []LogEntry {
	if filter == (LogFilter{}) {
		return entries
	}
	var out []LogEntry
	for _, e := range entries {
		if filter.Matches(e) {
			out = append(out, e)
		}
	}
	return out
}

// Matches reports whether e passes every set field of f.
func (f LogFilter) Matches(e LogEntry) bool {
	if f.Level != "" {
		want, okWant := levelOrder[strings.ToUpper(f.Level)]
		got, okGot := levelOrder[e.Level]
		if okWant && okGot && got < want {
			return false
		}
	}
	if !f.Since.IsZero() && e.Timestamp.Before(f.Since) {
		return false
	}
	if f.SessionID != "" && e.SessionID != f.SessionID {
		return false
	}
	if f.Surface != "" && e.Surface != f.Surface {
		return false
	}
	if f.Operation != "" && !strings.HasPrefix(e.Operation, f.Operation) {
		return false
	}
	if f.MessageContains != "" && !strings.Contains(e.Message, f.MessageContains) {
		return false
	}
	return true
}

// WriteEntries renders entries to w as "json" (an indented array) or
// "text" (one line per entry).
func WriteEntries(w io.Writer, entries []LogEntry, format string) error {
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	case "text", "":
		return writeText(w, entries)
	default:
		return fmt.Errorf("unsupported log format: %s (supported: json, text)", format)
	}
}

// writeText formats "[TIME] LEVEL op - message (surface=..., session=...) {attrs}".
func writeText(w io.Writer, entries []LogEntry) error {
	for _, e := range entries {
		parts := []string{
			fmt.Sprintf("[%s]", e.Timestamp.Format("2006-01-02 15:04:05.000")),
			e.Level,
		}
		if e.Operation != "" {
			parts = append(parts, e.Operation)
		}
		parts = append(parts, "-", e.Message)

		var ctx []string
		if e.Surface != "" {
			ctx = append(ctx, "surface="+e.Surface)
		}
		if e.SessionID != "" {
			ctx = append(ctx, "session="+e.SessionID)
		}
		if len(ctx) > 0 {
			parts = append(parts, "("+strings.Join(ctx, ", ")+")")
		}
		if len(e.Attrs) > 0 {
			attrs, _ := json.Marshal(e.Attrs)
			parts = append(parts, string(attrs))
		}
		if _, err := fmt.Fprintln(w, strings.Join(parts, " ")); err != nil {
			return fmt.Errorf("failed to write log entry: %w", err)
		}
	}
	return nil
}
