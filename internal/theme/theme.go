package theme

import (
	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Palette entries are hex so they can be blended for fades.
const (
	Foreground = "#e4e4e4"
	Background = "#121212"
	Accent     = "#5fafff"
	Muted      = "#8a8a8a"
	Faint      = "#444444"
	Danger     = "#ff5f5f"
)

// Styles describes reusable Lip Gloss styles shared across the UI.
type Styles struct {
	Header       *lipgloss.Style
	Footer       *lipgloss.Style
	Counter      *lipgloss.Style
	Title        *lipgloss.Style
	Media        *lipgloss.Style
	MediaMissing *lipgloss.Style
	Frame        *lipgloss.Style

	ListItem   *lipgloss.Style
	ListActive *lipgloss.Style
	ListMarker *lipgloss.Style

	Arrow       *lipgloss.Style
	Thumb       *lipgloss.Style
	ThumbActive *lipgloss.Style
	Close       *lipgloss.Style
	Affordance  *lipgloss.Style

	Loading *lipgloss.Style
	Status  *lipgloss.Style
	Error   *lipgloss.Style
	Info    *lipgloss.Style

	Filter            *lipgloss.Style
	FilterPrompt      *lipgloss.Style
	FilterPlaceholder *lipgloss.Style
	FilterMatch       *lipgloss.Style
	SelectedItem      *lipgloss.Style
}

var defaultStyles = Styles{
	Header: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color(Muted)).Bold(true),
	),
	Footer: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color(Muted)),
	),
	Counter: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color(Foreground)).Bold(true),
	),
	Title: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color(Foreground)).Bold(true),
	),
	Media: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color(Accent)),
	),
	MediaMissing: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color(Danger)).Italic(true),
	),
	Frame: ptr(
		lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color(Faint)),
	),
	ListItem: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color(Faint)),
	),
	ListActive: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color(Foreground)).Bold(true),
	),
	ListMarker: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color(Accent)),
	),
	Arrow: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color(Muted)).Padding(0, 1),
	),
	Thumb: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color(Faint)),
	),
	ThumbActive: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color(Accent)).Bold(true),
	),
	Close: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color(Foreground)).Bold(true).Padding(0, 1),
	),
	Affordance: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color(Accent)).Underline(true),
	),
	Loading: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color(Accent)).Italic(true),
	),
	Status: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color(Muted)),
	),
	Error: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color(Danger)).Bold(true),
	),
	Info: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color(Muted)),
	),
	Filter: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color(Foreground)),
	),
	FilterPrompt: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color(Accent)).Bold(true),
	),
	FilterPlaceholder: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color(Faint)),
	),
	FilterMatch: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color(Accent)).Underline(true),
	),
	SelectedItem: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color(Foreground)).Background(lipgloss.Color(Faint)).Bold(true),
	),
}

// Default exposes the standard style set used across the application.
func Default() *Styles {
	return &defaultStyles
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}

// Blend mixes fg toward bg so that opacity 1 yields fg and 0 yields bg. The
// mix happens in Lab space, which keeps mid-fade greys from going muddy.
func Blend(fg, bg string, opacity float64) lipgloss.Color {
	from, err := colorful.Hex(bg)
	if err != nil {
		return lipgloss.Color(fg)
	}
	to, err := colorful.Hex(fg)
	if err != nil {
		return lipgloss.Color(fg)
	}
	switch {
	case opacity <= 0:
		return lipgloss.Color(bg)
	case opacity >= 1:
		return lipgloss.Color(fg)
	}
	return lipgloss.Color(from.BlendLab(to, opacity).Clamped().Hex())
}

// Faded returns a copy of style drawn in fg at the given opacity against the
// default background.
func Faded(style *lipgloss.Style, fg string, opacity float64) lipgloss.Style {
	base := lipgloss.NewStyle()
	if style != nil {
		base = *style
	}
	return base.Foreground(Blend(fg, Background, opacity))
}
