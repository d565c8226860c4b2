// SPDX-License-Identifier: EPL-2.0

// Package logger builds the slog logger used by the aupstream command.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// Config selects where and how records are written. An empty Format picks
// JSON in production and the pretty console format otherwise.
type Config struct {
	Writer      io.Writer
	Format      string // "json" or "pretty"
	Environment string
	Level       slog.Level
}

// New creates a logger writing to cfg.Writer, or stderr when it is nil.
func New(cfg Config) *slog.Logger {
	w := cfg.Writer
	if w == nil {
		w = os.Stderr
	}

	format := cfg.Format
	if format == "" && cfg.Environment == "production" {
		format = "json"
	}

	opts := &slog.HandlerOptions{Level: cfg.Level}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(NewPrettyHandler(w, opts))
}

// ParseLevel converts a level name to slog.Level, defaulting to info.
func ParseLevel(level string) slog.Level {
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

var levelTags = map[slog.Level]string{
	slog.LevelDebug: "\033[35mDBG\033[0m",
	slog.LevelInfo:  "\033[32mINF\033[0m",
	slog.LevelWarn:  "\033[33mWRN\033[0m",
	slog.LevelError: "\033[31mERR\033[0m",
}

// PrettyHandler writes one line per record for a terminal:
//
//	15:04:05 INF project loaded project=demo channels=2
//
// Attributes inside groups are written as group.key=value.
type PrettyHandler struct {
	level  slog.Leveler
	mu     *sync.Mutex
	w      io.Writer
	prefix string // open groups, dot terminated
	attrs  string // preformatted WithAttrs output
}

func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	h := &PrettyHandler{level: slog.LevelInfo, mu: &sync.Mutex{}, w: w}
	if opts != nil && opts.Level != nil {
		h.level = opts.Level
	}
	return h
}

func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	var sb strings.Builder

	sb.WriteString(r.Time.Format("15:04:05"))
	sb.WriteByte(' ')
	if tag, ok := levelTags[r.Level]; ok {
		sb.WriteString(tag)
	} else {
		sb.WriteString(r.Level.String())
	}
	sb.WriteByte(' ')
	sb.WriteString(r.Message)
	sb.WriteString(h.attrs)
	r.Attrs(func(a slog.Attr) bool {
		writeAttr(&sb, h.prefix, a)
		return true
	})
	sb.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, sb.String())
	return err
}

func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	var sb strings.Builder
	sb.WriteString(h.attrs)
	for _, a := range attrs {
		writeAttr(&sb, h.prefix, a)
	}

	h2 := *h
	h2.attrs = sb.String()
	return &h2
}

func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	h2 := *h
	h2.prefix = h.prefix + name + "."
	return &h2
}

func writeAttr(sb *strings.Builder, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	if a.Value.Kind() == slog.KindGroup {
		if a.Key != "" {
			prefix += a.Key + "."
		}
		for _, ga := range a.Value.Group() {
			writeAttr(sb, prefix, ga)
		}
		return
	}

	sb.WriteByte(' ')
	sb.WriteString(prefix)
	sb.WriteString(a.Key)
	sb.WriteByte('=')
	sb.WriteString(a.Value.String())
}
