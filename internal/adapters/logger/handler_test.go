package logger_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/sebdah/goldie/v2"
	"go.trai.ch/docullim/internal/adapters/logger"
)

func TestPrettyHandler_Levels(t *testing.T) {
	tests := []struct {
		name       string
		level      slog.Level
		msg        string
		goldenName string
	}{
		{"info", slog.LevelInfo, "information message", "handler_info"},
		{"warn", slog.LevelWarn, "warning message", "handler_warn"},
		{"error", slog.LevelError, "error message", "handler_error"},
		{"debug filtered", slog.LevelDebug, "debug message", "handler_debug_filtered"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("NO_COLOR", "1")

			buf := &bytes.Buffer{}
			lg := slog.New(logger.NewPrettyHandler(buf, nil))
			lg.Log(t.Context(), tt.level, tt.msg)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestPrettyHandler_Attrs(t *testing.T) {
	tests := []struct {
		name       string
		attrs      []slog.Attr
		goldenName string
	}{
		{
			name:       "single",
			attrs:      []slog.Attr{slog.String("file", "a.py")},
			goldenName: "handler_attrs_single",
		},
		{
			name:       "multiple",
			attrs:      []slog.Attr{slog.String("a", "1"), slog.Int("b", 2)},
			goldenName: "handler_attrs_multiple",
		},
		{
			name:       "group",
			attrs:      []slog.Attr{slog.Group("target", slog.String("name", "Outer.run"))},
			goldenName: "handler_attrs_group",
		},
		{
			name:       "nested group",
			attrs:      []slog.Attr{slog.Group("outer", slog.Group("inner", slog.String("k", "v")))},
			goldenName: "handler_attrs_nested_group",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("NO_COLOR", "1")

			buf := &bytes.Buffer{}
			lg := slog.New(logger.NewPrettyHandler(buf, nil).WithAttrs(tt.attrs))
			lg.Info("msg")

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestPrettyHandler_WithGroup(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	lg := slog.New(logger.NewPrettyHandler(buf, nil)).WithGroup("run")
	lg.Info("done", "files", 3)

	g := goldie.New(t)
	g.Assert(t, "handler_with_group", buf.Bytes())
}
