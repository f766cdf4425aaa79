// Package ui holds the palette, icons and terminal output helpers shared by the
// logger and the CLI report.
package ui

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Palette.
var (
	Iris   = lipgloss.Color("#8B5CF6")
	Slate  = lipgloss.Color("#667085")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Dot     = "●"
)

// ColorProfile returns Ascii when NO_COLOR is set and the detected profile otherwise.
func ColorProfile() termenv.Profile {
	if os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	return termenv.EnvColorProfile()
}

// NewOutput creates a termenv.Output for w, defaulting to stderr.
func NewOutput(w io.Writer, opts ...termenv.OutputOption) *termenv.Output {
	if w == nil {
		w = os.Stderr
	}

	opts = append(opts,
		termenv.WithProfile(ColorProfile()),
		termenv.WithTTY(true),
	)

	return termenv.NewOutput(w, opts...)
}

// Paint renders s in the given palette color.
func Paint(out *termenv.Output, color lipgloss.Color, s string) string {
	return out.String(s).Foreground(termenv.RGBColor(string(color))).String()
}

// ColorizeDiff colors a unified diff line by line.
func ColorizeDiff(out *termenv.Output, diff string) string {
	lines := strings.SplitAfter(diff, "\n")
	var b strings.Builder
	for _, line := range lines {
		if line == "" {
			continue
		}
		body := strings.TrimSuffix(line, "\n")
		nl := line[len(body):]
		switch {
		case strings.HasPrefix(body, "+++"), strings.HasPrefix(body, "---"):
			b.WriteString(out.String(body).Bold().String())
		case strings.HasPrefix(body, "@@"):
			b.WriteString(Paint(out, Iris, body))
		case strings.HasPrefix(body, "+"):
			b.WriteString(Paint(out, Green, body))
		case strings.HasPrefix(body, "-"):
			b.WriteString(Paint(out, Red, body))
		default:
			b.WriteString(body)
		}
		b.WriteString(nl)
	}
	return b.String()
}
