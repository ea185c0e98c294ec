package cli

import (
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/digestpdf/internal/core/domain"
)

// Theme defines the colour palette for command output.
type Theme struct {
	// Primary is the accent colour for headings.
	Primary lipgloss.Color

	// Muted is for less important text.
	Muted lipgloss.Color

	// Success marks merged files.
	Success lipgloss.Color

	// Warning marks fallback summaries.
	Warning lipgloss.Color

	// Error marks skipped files.
	Error lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Primary: lipgloss.Color("#7C3AED"), // Purple
		Muted:   lipgloss.Color("#6C7086"), // Medium gray
		Success: lipgloss.Color("#A6E3A1"), // Green
		Warning: lipgloss.Color("#F9E2AF"), // Yellow
		Error:   lipgloss.Color("#F38BA8"), // Red
	}
}

// Styles contains pre-configured lipgloss styles bound to one writer.
// Colour is dropped when the writer is not a terminal.
type Styles struct {
	Title   lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
}

// NewStyles creates styles for output written to w.
func NewStyles(w io.Writer, theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}
	r := lipgloss.NewRenderer(w)

	return &Styles{
		Title: r.NewStyle().
			Bold(true).
			Foreground(theme.Primary),
		Muted:   r.NewStyle().Foreground(theme.Muted),
		Success: r.NewStyle().Foreground(theme.Success),
		Warning: r.NewStyle().Foreground(theme.Warning),
		Error:   r.NewStyle().Foreground(theme.Error),
	}
}

// Status renders an outcome label.
func (s *Styles) Status(o domain.FileOutcome) string {
	switch {
	case o.Status == domain.OutcomeSkipped:
		return s.Error.Render("skipped")
	case o.Summary == domain.StageFallback:
		return s.Warning.Render("fallback")
	default:
		return s.Success.Render("merged")
	}
}
