// Package logging provides structured logging for focusgrid.
//
// It wraps Go's log/slog to write JSON lines carrying persistent context
// (session, surface, operation). Navigate and pick log their reconciliation
// decisions at DEBUG so a replay or demo session can be inspected after the
// fact with `focusgrid logs`.
//
// # Basic Usage
//
//	logger, err := logging.NewLogger(dir, "INFO")
//	if err != nil {
//	    return err
//	}
//	defer logger.Close()
//
//	logger.Info("replay started", "fixture", path)
//
// # Context Propagation
//
//	l := logger.WithSession(id).WithSurface("plane").WithOperation("navigate.sync")
//	l.Debug("clamped focus", "from", "(4,1)", "to", "(2,1)")
//
// Output:
//
//	{"time":"...","level":"DEBUG","msg":"clamped focus","session_id":"...","surface":"plane","op":"navigate.sync","from":"(4,1)","to":"(2,1)"}
//
// # Log Rotation
//
// [NewLoggerWithRotation] writes through a [RotatingWriter]. Rotated files
// are named focusgrid.log.1 (newest) through focusgrid.log.N and are gzipped
// when Compress is set.
//
// # Reading Logs
//
// [AggregateLogs] parses the live file and uncompressed backups, [FilterLogs]
// narrows them, and [WriteEntries] renders them as text or JSON.
//
// # Testing
//
// Use [NopLogger] to discard output, or [NewWriterLogger] over a
// bytes.Buffer to assert on entries.
package logging
