// Package tuistyles holds the lipgloss palette and styles shared by the TUI and its
// components.
package tuistyles

import "github.com/charmbracelet/lipgloss"

// Colors
var (
	ColorPrimary = lipgloss.Color("#3B82F6")
	ColorSuccess = lipgloss.Color("#22C55E")
	ColorDanger  = lipgloss.Color("#EF4444")
	ColorInfo    = lipgloss.Color("#06B6D4")

	ColorForeground = lipgloss.AdaptiveColor{Light: "#111827", Dark: "#F9FAFB"}
	ColorMuted      = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}
	ColorBorder     = lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: "#4B5563"}
)

// Base styles
var (
	AppStyle = lipgloss.NewStyle().Padding(0, 1)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			MarginTop(1)

	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	ActiveBorderStyle = BorderStyle.
				BorderForeground(ColorSuccess)

	FieldLabelStyle = lipgloss.NewStyle().
			Width(26).
			Foreground(ColorForeground)

	FocusedFieldLabelStyle = FieldLabelStyle.
				Bold(true).
				Foreground(ColorPrimary)

	MetricLabelStyle = lipgloss.NewStyle().
				Foreground(ColorMuted)

	metricValueStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorForeground)

	metricPositiveStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorSuccess)

	BadgeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#052E16")).
			Background(ColorSuccess).
			Padding(0, 1)

	BannerStyle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder(), false, false, false, true).
			BorderForeground(ColorPrimary).
			Foreground(ColorForeground).
			Padding(0, 1)

	RedutorStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	NoteStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true)

	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorMuted)

	TableCellStyle = lipgloss.NewStyle().
			Foreground(ColorForeground)

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorDanger)

	InfoStyle = lipgloss.NewStyle().
			Foreground(ColorInfo)
)

// HighlightStyle returns the value style for a best (true) or regular (false) metric
func HighlightStyle(best bool) lipgloss.Style {
	if best {
		return metricPositiveStyle
	}
	return metricValueStyle
}
