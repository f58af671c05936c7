package logging

import (
	"context"

	charm "github.com/charmbracelet/log"
)

// CharmLogger adapts charmbracelet/log to the Logger interface. It is the
// logger of choice for interactive terminal sessions; charm renders levels
// and key-value pairs in a way that stays readable next to REPL output.
type CharmLogger struct {
	l *charm.Logger
}

func NewCharmLogger(l *charm.Logger) *CharmLogger {
	l.SetTimeFormat("2006-01-02 15:04:05")
	return &CharmLogger{l: l}
}

func (c *CharmLogger) Debug(_ context.Context, msg string, args ...any) {
	c.l.Debug(msg, args...)
}

func (c *CharmLogger) Info(_ context.Context, msg string, args ...any) {
	c.l.Info(msg, args...)
}

func (c *CharmLogger) Warn(_ context.Context, msg string, args ...any) {
	c.l.Warn(msg, args...)
}

func (c *CharmLogger) Error(_ context.Context, msg string, args ...any) {
	c.l.Error(msg, args...)
}

func (c *CharmLogger) With(args ...any) Logger {
	return &CharmLogger{l: c.l.With(args...)}
}
