package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	usecasecontract "github.com/Prakash9019/my-cricket-reg-app/internal/usecase/contract"
)

// SlogLogger adapts a structured slog.Logger to the printf-style IAppLogger.
type SlogLogger struct {
	logger *slog.Logger
}

// NewSlogLogger creates a logger writing to stdout in the given format ("json" or "text").
func NewSlogLogger(level, format string) *SlogLogger {
	return NewSlogLoggerWithWriter(os.Stdout, level, format)
}

// NewSlogLoggerWithWriter creates a logger writing to w.
func NewSlogLoggerWithWriter(w io.Writer, level, format string) *SlogLogger {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}
	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return &SlogLogger{logger: slog.New(handler)}
}

var _ usecasecontract.IAppLogger = (*SlogLogger)(nil)

// Slog exposes the underlying structured logger for HTTP middleware.
func (l *SlogLogger) Slog() *slog.Logger {
	return l.logger
}

// Debugf logs a debug message.
func (l *SlogLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

// Infof logs an info message.
func (l *SlogLogger) Infof(format string, args ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, args...))
}

// Warnf logs a warning message.
func (l *SlogLogger) Warnf(format string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

// Errorf logs an error message.
func (l *SlogLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

// Fatalf logs a fatal message and exits.
func (l *SlogLogger) Fatalf(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...), slog.Bool("fatal", true))
	os.Exit(1)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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
