package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"learnsubs/internal/config"
)

// NewWithWriter builds a logger that writes to w. Intended for tests and for
// commands that capture log output.
func NewWithWriter(w io.Writer, level, format string) (*slog.Logger, error) {
	levelVar := new(slog.LevelVar)
	levelVar.Set(parseLevel(level))
	return newLogger(w, levelVar, format, false)
}

func newLogger(w io.Writer, levelVar *slog.LevelVar, format string, addSource bool) (*slog.Logger, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = "console"
	}

	var handler slog.Handler
	switch format {
	case "json":
		handler = newJSONHandler(w, levelVar, addSource)
	case "console":
		handler = newPrettyHandler(w, levelVar, addSource)
	default:
		return nil, fmt.Errorf("log format: unsupported value %q", format)
	}
	return slog.New(handler), nil
}

// NewFromConfig creates a logger using application config defaults. Console
// output goes to console (stderr when nil) so command output on stdout stays
// machine readable; a copy is appended to learnsubs.log in the configured log
// directory. The returned close function releases the log file.
func NewFromConfig(cfg *config.Config, console io.Writer) (*slog.Logger, func() error, error) {
	if console == nil {
		console = os.Stderr
	}
	noClose := func() error { return nil }
	if cfg == nil {
		logger, err := NewWithWriter(console, "info", "console")
		return logger, noClose, err
	}

	writer := console
	closeFn := noClose
	if cfg.Paths.LogDir != "" {
		file, err := openLogFile(filepath.Join(cfg.Paths.LogDir, "learnsubs.log"))
		if err != nil {
			return nil, nil, err
		}
		writer = io.MultiWriter(console, file)
		closeFn = file.Close
	}

	levelVar := new(slog.LevelVar)
	levelVar.Set(parseLevel(cfg.Logging.Level))
	logger, err := newLogger(writer, levelVar, cfg.Logging.Format, levelVar.Level() <= slog.LevelDebug)
	if err != nil {
		_ = closeFn()
		return nil, nil, err
	}
	return logger, closeFn, nil
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure log dir: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o664)
	if err != nil {
		return nil, fmt.Errorf("open log file %s: %w", path, err)
	}
	return file, nil
}

func newJSONHandler(w io.Writer, lvl *slog.LevelVar, addSource bool) slog.Handler {
	opts := slog.HandlerOptions{
		Level:     lvl,
		AddSource: addSource,
		ReplaceAttr: func(groups []string, attr slog.Attr) slog.Attr {
			switch attr.Key {
			case slog.TimeKey:
				attr.Key = "ts"
				if attr.Value.Kind() == slog.KindTime {
					attr.Value = slog.StringValue(attr.Value.Time().UTC().Format(time.RFC3339))
				}
			case slog.LevelKey:
				attr.Value = slog.StringValue(strings.ToLower(attr.Value.String()))
			case slog.SourceKey:
				if src, ok := attr.Value.Any().(*slog.Source); ok && src != nil {
					attr.Value = slog.StringValue(fmt.Sprintf("%s:%d", filepath.Base(src.File), src.Line))
				}
			}
			return attr
		},
	}
	return slog.NewJSONHandler(w, &opts)
}
