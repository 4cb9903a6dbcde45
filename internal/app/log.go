package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"fitfocus/internal/config"
	"fitfocus/internal/fitfocus"
)

// runHandler is a custom slog.Handler that formats log records as:
//
//	<timestamp>\t<level>\t<runID>\t<message>\t<key=value ...>
type runHandler struct {
	w     io.Writer
	runID string
	level slog.Level
	attrs []slog.Attr
}

func (h *runHandler) Enabled(_ context.Context, level slog.Level) bool { return level >= h.level }

func (h *runHandler) Handle(_ context.Context, r slog.Record) error {
	ts := r.Time.UTC().Format("2006-01-02T15:04:05Z")
	level := r.Level.String()

	_, err := fmt.Fprintf(h.w, "%s\t%s\t%s\t%s", ts, level, h.runID, r.Message)
	if err != nil {
		return err
	}

	for _, a := range h.attrs {
		fmt.Fprintf(h.w, "\t%s=%v", a.Key, a.Value)
	}

	r.Attrs(func(a slog.Attr) bool {
		fmt.Fprintf(h.w, "\t%s=%v", a.Key, a.Value)
		return true
	})

	_, err = fmt.Fprintln(h.w)
	return err
}

func (h *runHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &runHandler{
		w:     h.w,
		runID: h.runID,
		level: h.level,
		attrs: append(append([]slog.Attr{}, h.attrs...), attrs...),
	}
}

func (h *runHandler) WithGroup(string) slog.Handler { return h }

// parseLevel maps a config level name to a slog level.
func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", s)
	}
}

// logCloser flushes the logger, then closes the log file.
type logCloser struct {
	sync func() error
	f    *os.File
}

func (c *logCloser) Close() error {
	if c.sync != nil {
		// zap reports EINVAL syncing a pipe or terminal; the file write is what matters.
		_ = c.sync()
	}
	return c.f.Close()
}

// newLogger creates the run logger. Lines go to logDir/fitfocus.log and, when
// cfg.Stderr is set, to stderr as well. Format "text" uses runHandler; "zap"
// writes JSON lines through zap. The returned Closer must be closed at exit.
func newLogger(cfg config.LogConfig, logDir, runID string) (fitfocus.Logger, io.Closer, error) {
	level, err := parseLevel(cfg.Level)
	if err != nil {
		return nil, nil, err
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, nil, fmt.Errorf("creating log directory: %w", err)
	}

	logPath := filepath.Join(logDir, "fitfocus.log")
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}

	var w io.Writer = f
	if cfg.Stderr {
		w = io.MultiWriter(f, os.Stderr)
	}

	switch cfg.Format {
	case "", config.DefaultLogFormat:
		handler := &runHandler{w: w, runID: runID, level: level}
		return &slogAdapter{l: slog.New(handler)}, &logCloser{f: f}, nil
	case "zap":
		z := newZapLogger(w, level, runID)
		return &zapAdapter{l: z}, &logCloser{sync: z.Sync, f: f}, nil
	default:
		f.Close()
		return nil, nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}
}

// newZapLogger builds a JSON zap logger writing to w, tagged with the run ID.
func newZapLogger(w io.Writer, level slog.Level, runID string) *zap.SugaredLogger {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), zapcore.AddSync(w), zapLevel(level))
	logger := zap.New(core, zap.AddStacktrace(zapcore.ErrorLevel))
	return logger.With(zap.String("run", runID)).Sugar()
}

func zapLevel(level slog.Level) zapcore.Level {
	switch {
	case level <= slog.LevelDebug:
		return zapcore.DebugLevel
	case level <= slog.LevelInfo:
		return zapcore.InfoLevel
	case level <= slog.LevelWarn:
		return zapcore.WarnLevel
	default:
		return zapcore.ErrorLevel
	}
}

// slogAdapter wraps *slog.Logger to satisfy the fitfocus.Logger interface.
type slogAdapter struct {
	l *slog.Logger
}

func (a *slogAdapter) Debug(msg string, args ...any) { a.l.Debug(msg, args...) }
func (a *slogAdapter) Info(msg string, args ...any)  { a.l.Info(msg, args...) }
func (a *slogAdapter) Warn(msg string, args ...any)  { a.l.Warn(msg, args...) }
func (a *slogAdapter) Error(msg string, args ...any) { a.l.Error(msg, args...) }

// zapAdapter wraps a sugared zap logger. The key/value args map onto zap's *w methods.
type zapAdapter struct {
	l *zap.SugaredLogger
}

func (a *zapAdapter) Debug(msg string, args ...any) { a.l.Debugw(msg, args...) }
func (a *zapAdapter) Info(msg string, args ...any)  { a.l.Infow(msg, args...) }
func (a *zapAdapter) Warn(msg string, args ...any)  { a.l.Warnw(msg, args...) }
func (a *zapAdapter) Error(msg string, args ...any) { a.l.Errorw(msg, args...) }

var (
	_ fitfocus.Logger = (*slogAdapter)(nil)
	_ fitfocus.Logger = (*zapAdapter)(nil)
)
