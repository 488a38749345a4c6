// Package log builds the slog.Logger every vimrs subcommand shares.
//
// The active level comes from EVREMAP_LOG (trace/debug/info/warn/error,
// default info); EVREMAP_LOG_STYLE picks between slog's text handler
// and its JSON handler. Info/debug/trace go to
// stdout, warn/error to stderr, so stderr can be redirected separately
// without losing normal output.
package log

import (
	"context"
	"log/slog"
	"os"
)

// LevelTrace is a custom level below slog.LevelDebug, selected by
// EVREMAP_LOG=trace.
const LevelTrace slog.Level = -8

// ParseLevel maps an EVREMAP_LOG value to a slog.Level.
func ParseLevel(s string) slog.Level {
	switch s {
	case "trace":
		return LevelTrace
	case "debug":
		return slog.LevelDebug
	case "info", "":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// MultiHandler fans a record out to every handler in hs.
type MultiHandler struct{ hs []slog.Handler }

func (m MultiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range m.hs {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (m MultiHandler) Handle(ctx context.Context, r slog.Record) error {
	for _, h := range m.hs {
		_ = h.Handle(ctx, r)
	}
	return nil
}

func (m MultiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make([]slog.Handler, len(m.hs))
	for i, h := range m.hs {
		out[i] = h.WithAttrs(attrs)
	}
	return MultiHandler{hs: out}
}

func (m MultiHandler) WithGroup(name string) slog.Handler {
	out := make([]slog.Handler, len(m.hs))
	for i, h := range m.hs {
		out[i] = h.WithGroup(name)
	}
	return MultiHandler{hs: out}
}

// LevelFilter wraps a handler so it only ever sees records pass admits.
type LevelFilter struct {
	pass func(slog.Level) bool
	h    slog.Handler
}

func (f LevelFilter) Enabled(ctx context.Context, level slog.Level) bool {
	if !f.pass(level) {
		return false
	}
	return f.h.Enabled(ctx, level)
}

func (f LevelFilter) Handle(ctx context.Context, r slog.Record) error {
	if !f.pass(r.Level) {
		return nil
	}
	return f.h.Handle(ctx, r)
}

func (f LevelFilter) WithAttrs(attrs []slog.Attr) slog.Handler {
	return LevelFilter{pass: f.pass, h: f.h.WithAttrs(attrs)}
}

func (f LevelFilter) WithGroup(name string) slog.Handler {
	return LevelFilter{pass: f.pass, h: f.h.WithGroup(name)}
}

// Setup builds the process-wide logger from EVREMAP_LOG / EVREMAP_LOG_STYLE.
// EVREMAP_LOG_STYLE is "auto" (the default, text when stdout is a
// terminal and JSON otherwise), "always" (always text), or "never"
// (always JSON, for log shipping).
func Setup() *slog.Logger {
	level := ParseLevel(os.Getenv("EVREMAP_LOG"))

	var styled bool
	switch os.Getenv("EVREMAP_LOG_STYLE") {
	case "always":
		styled = true
	case "never":
		styled = false
	default:
		styled = isTerminal(os.Stdout)
	}

	newHandler := func(w *os.File, lvl slog.Level) slog.Handler {
		opts := &slog.HandlerOptions{Level: lvl}
		if styled {
			return slog.NewTextHandler(w, opts)
		}
		return slog.NewJSONHandler(w, opts)
	}

	handlers := []slog.Handler{
		LevelFilter{pass: func(l slog.Level) bool { return l < slog.LevelWarn }, h: newHandler(os.Stdout, level)},
		LevelFilter{pass: func(l slog.Level) bool { return l >= slog.LevelWarn }, h: newHandler(os.Stderr, level)},
	}

	return slog.New(MultiHandler{hs: handlers})
}
