// Package log provides a concurrency-safe simplified logging interface
// based on [log/slog].
//
// # Basic Usage
//
//	logger := log.Make(os.Stderr)
//	logger.Info("registry loaded", slog.Int("enums", n))
//
// # Configuration
//
// Loggers are immutable values configured with functional options:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatText),
//		log.WithTimeLayout("RFC3339Nano"),
//		log.WithCaller(true))
//
// [Logger.Wrap] derives a logger with different options, and [Logger.With]
// attaches attributes to every subsequent message.
//
// # Package-Level Logger
//
// The package-level functions ([Info], [Error], ...) write through a default
// logger that [Config] reconfigures in place. The command-line interface
// calls [Config] while parsing flags so that parse errors are already
// formatted as requested.
//
// # Levels
//
// In addition to the [log/slog] levels the package defines [LevelTrace],
// used by the registry loader for per-entry diagnostics.
//
// # Pretty Output
//
// With [WithPretty] enabled (the default) records are colorized using
// lipgloss styles. Colors are omitted automatically when the output is not a
// terminal.
package log
