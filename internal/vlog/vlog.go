// Package vlog wraps charmbracelet/log with the small set of fields this
// module's stages actually need: a stage name and structured key-value
// pairs, so a shutdown summary or a mid-stream device error always names
// which stage it came from.
package vlog

import (
	"os"

	"github.com/charmbracelet/log"
)

// Logger is a stage-scoped structured logger.
type Logger struct {
	inner *log.Logger
}

// New builds the root logger, writing to stderr with the default
// charmbracelet/log text formatter and a timestamp, matching how the
// library is typically wired for a CLI daemon.
func New(debug bool) *Logger {
	l := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.000",
	})
	if debug {
		l.SetLevel(log.DebugLevel)
	} else {
		l.SetLevel(log.InfoLevel)
	}
	return &Logger{inner: l}
}

// Stage returns a child logger that tags every line with the given
// pipeline stage name ("capture", "processor", "playback", ...).
func (l *Logger) Stage(name string) *Logger {
	return &Logger{inner: l.inner.With("stage", name)}
}

func (l *Logger) Debug(msg string, kv ...any) { l.inner.Debug(msg, kv...) }
func (l *Logger) Info(msg string, kv ...any)  { l.inner.Info(msg, kv...) }
func (l *Logger) Warn(msg string, kv ...any)  { l.inner.Warn(msg, kv...) }
func (l *Logger) Error(msg string, kv ...any) { l.inner.Error(msg, kv...) }
