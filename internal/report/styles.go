package report

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Color palette shared by every text report.
const (
	// ColorPrimary is purple, used for file headers.
	ColorPrimary = lipgloss.Color("#7C3AED")

	// ColorMuted is gray, used for rule names and the summary line.
	ColorMuted = lipgloss.Color("#6B7280")

	// ColorSuccess is green, used for files without violations.
	ColorSuccess = lipgloss.Color("#10B981")

	// ColorError is red, used for violation kinds and decode failures.
	ColorError = lipgloss.Color("#EF4444")

	// ColorWarning is amber, used for warnings such as duplicate keys.
	ColorWarning = lipgloss.Color("#F59E0B")

	// ColorHighlight is blue, used for JSON Pointer paths.
	ColorHighlight = lipgloss.Color("#3B82F6")
)

// Styles groups the lipgloss styles a text report renders with.
type Styles struct {
	File    lipgloss.Style
	OK      lipgloss.Style
	Kind    lipgloss.Style
	Warning lipgloss.Style
	Path    lipgloss.Style
	Muted   lipgloss.Style
}

// NewStyles builds styles bound to w. color is "auto", "always" or "never";
// auto defers to terminal detection on w.
func NewStyles(w io.Writer, color string) Styles {
	r := lipgloss.NewRenderer(w)
	switch color {
	case "always":
		r.SetColorProfile(termenv.TrueColor)
	case "never":
		r.SetColorProfile(termenv.Ascii)
	}
	return Styles{
		File: r.NewStyle().
			Bold(true).
			Foreground(ColorPrimary),
		OK: r.NewStyle().
			Foreground(ColorSuccess),
		Kind: r.NewStyle().
			Bold(true).
			Foreground(ColorError),
		Warning: r.NewStyle().
			Foreground(ColorWarning),
		Path: r.NewStyle().
			Foreground(ColorHighlight),
		Muted: r.NewStyle().
			Foreground(ColorMuted),
	}
}
