package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"go.trai.ch/docullim/internal/ui"
)

// PrettyHandler is a slog.Handler that writes one colored line per record.
type PrettyHandler struct {
	out   *termenv.Output
	level slog.Leveler
	attrs []slog.Attr
	group string
}

// NewPrettyHandler creates a new PrettyHandler writing to the provided writer.
func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	if w == nil {
		w = os.Stderr
	}

	var level slog.Leveler = slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level
	}

	return &PrettyHandler{
		out:   ui.NewOutput(w),
		level: level,
	}
}

// Enabled reports whether the handler handles records at the given level.
func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle formats and outputs the log record.
//
//nolint:gocritic // slog.Handler interface requires slog.Record by value
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	var msg string
	var color lipgloss.Color

	switch {
	case r.Level >= slog.LevelError:
		msg = ui.Cross + " " + r.Message
		color = ui.Red
	case r.Level >= slog.LevelWarn:
		msg = ui.Warning + " " + r.Message
		color = ui.Yellow
	default:
		msg = r.Message
		color = ui.Slate
	}

	attrParts := make([]string, 0, len(h.attrs)+r.NumAttrs())
	for _, attr := range h.attrs {
		attrParts = appendAttr(attrParts, h.group, attr)
	}
	r.Attrs(func(attr slog.Attr) bool {
		attrParts = appendAttr(attrParts, h.group, attr)
		return true
	})

	if len(attrParts) > 0 {
		msg += " " + strings.Join(attrParts, " ")
	}

	_, err := h.out.WriteString(ui.Paint(h.out, color, msg) + "\n")
	return err
}

// WithAttrs returns a new Handler with the given attributes appended.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newAttrs := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	newAttrs = append(newAttrs, h.attrs...)
	newAttrs = append(newAttrs, attrs...)

	return &PrettyHandler{
		out:   h.out,
		level: h.level,
		attrs: newAttrs,
		group: h.group,
	}
}

// WithGroup returns a new Handler with the given group name.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	group := name
	if h.group != "" {
		group = h.group + "." + name
	}
	return &PrettyHandler{
		out:   h.out,
		level: h.level,
		attrs: h.attrs,
		group: group,
	}
}

// appendAttr renders attr as key=value pairs, flattening groups into dotted keys.
func appendAttr(parts []string, group string, attr slog.Attr) []string {
	key := attr.Key
	if group != "" && key != "" {
		key = group + "." + key
	}

	if attr.Value.Kind() == slog.KindGroup {
		prefix := group
		if attr.Key != "" {
			prefix = key
		}
		for _, a := range attr.Value.Group() {
			parts = appendAttr(parts, prefix, a)
		}
		return parts
	}

	return append(parts, key+"="+attr.Value.String())
}
