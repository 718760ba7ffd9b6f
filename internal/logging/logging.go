// Package logging holds the slog plumbing shared by the backdrop and its hosts.
//
// Library packages take a *slog.Logger and default to Nop, so nothing is printed
// unless a host installs a real handler.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/fatih/color"
)

type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// Nop returns a logger that discards everything without formatting it.
func Nop() *slog.Logger { return slog.New(nopHandler{}) }

// ParseLevel accepts debug, info, warn, warning and error, case-insensitively.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("logging: unknown level %q", s)
}

var (
	tagDebug = color.New(color.FgHiBlack)
	tagInfo  = color.New(color.FgCyan)
	tagWarn  = color.New(color.FgYellow)
	tagError = color.New(color.FgRed, color.Bold)
	keyColor = color.New(color.FgHiBlack)
)

// Handler writes one line per record: a level tag, the message and key=value attrs.
type Handler struct {
	mu    *sync.Mutex
	w     io.Writer
	level slog.Leveler
	color bool
	attrs []slog.Attr
	group string
}

// NewHandler returns a line handler writing to w. Level tags are colored when useColor
// is set and fatih/color has not disabled color output (NO_COLOR, non-terminal stdout).
func NewHandler(w io.Writer, level slog.Leveler, useColor bool) *Handler {
	if level == nil {
		level = slog.LevelInfo
	}
	return &Handler{mu: new(sync.Mutex), w: w, level: level, color: useColor}
}

// New is shorthand for slog.New(NewHandler(w, level, useColor)).
func New(w io.Writer, level slog.Leveler, useColor bool) *slog.Logger {
	return slog.New(NewHandler(w, level, useColor))
}

func (h *Handler) Enabled(_ context.Context, l slog.Level) bool {
	return l >= h.level.Level()
}

func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder
	b.WriteString(h.tag(r.Level))
	b.WriteByte(' ')
	b.WriteString(r.Message)
	for _, a := range h.attrs {
		h.writeAttr(&b, "", a)
	}
	r.Attrs(func(a slog.Attr) bool {
		h.writeAttr(&b, h.group, a)
		return true
	})
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, b.String())
	return err
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	c := *h
	c.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	c.attrs = append(c.attrs, h.attrs...)
	for _, a := range attrs {
		if h.group != "" {
			a.Key = h.group + "." + a.Key
		}
		c.attrs = append(c.attrs, a)
	}
	return &c
}

func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	c := *h
	if c.group != "" {
		c.group += "." + name
	} else {
		c.group = name
	}
	return &c
}

func (h *Handler) tag(l slog.Level) string {
	var (
		s string
		c *color.Color
	)
	switch {
	case l >= slog.LevelError:
		s, c = "ERR", tagError
	case l >= slog.LevelWarn:
		s, c = "WRN", tagWarn
	case l >= slog.LevelInfo:
		s, c = "INF", tagInfo
	default:
		s, c = "DBG", tagDebug
	}
	if !h.color {
		return s
	}
	return c.Sprint(s)
}

func (h *Handler) writeAttr(b *strings.Builder, group string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	key := a.Key
	if group != "" {
		key = group + "." + key
	}
	if a.Value.Kind() == slog.KindGroup {
		for _, ga := range a.Value.Group() {
			h.writeAttr(b, key, ga)
		}
		return
	}
	b.WriteByte(' ')
	if h.color {
		b.WriteString(keyColor.Sprint(key + "="))
	} else {
		b.WriteString(key)
		b.WriteByte('=')
	}
	v := a.Value.String()
	if strings.ContainsAny(v, " \t\"=") {
		v = fmt.Sprintf("%q", v)
	}
	b.WriteString(v)
}
