package components

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/irrf/internal/tui/tuistyles"
)

// MetricCard displays a single figure with its label and an optional note
type MetricCard struct {
	Label       string
	Value       string
	Description string
	Best        bool
	Width       int
}

// NewMetricCard creates a new metric card
func NewMetricCard(label, value string) *MetricCard {
	return &MetricCard{
		Label: label,
		Value: value,
		Width: 30,
	}
}

// WithDescription adds a note under the value
func (m *MetricCard) WithDescription(desc string) *MetricCard {
	m.Description = desc
	return m
}

// WithBest highlights the card as the winning figure
func (m *MetricCard) WithBest(best bool) *MetricCard {
	m.Best = best
	return m
}

// WithWidth sets the card width
func (m *MetricCard) WithWidth(width int) *MetricCard {
	m.Width = width
	return m
}

// Render returns the styled metric card
func (m *MetricCard) Render() string {
	content := tuistyles.MetricLabelStyle.Render(m.Label) + "\n" +
		tuistyles.HighlightStyle(m.Best).Render(m.Value)
	if m.Description != "" {
		content += "\n" + tuistyles.SubtitleStyle.Render(m.Description)
	}

	var borderColor lipgloss.TerminalColor = tuistyles.ColorBorder
	if m.Best {
		borderColor = tuistyles.ColorSuccess
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(0, 2).
		Width(m.Width).
		Render(content)
}

// RenderCompact returns an inline "label: value" version without border
func (m *MetricCard) RenderCompact() string {
	return tuistyles.MetricLabelStyle.Render(m.Label+":") + " " +
		tuistyles.HighlightStyle(m.Best).Render(m.Value)
}

// MetricGrid renders cards in rows of the given number of columns
func MetricGrid(cards []*MetricCard, columns int) string {
	if len(cards) == 0 || columns <= 0 {
		return ""
	}

	rows := []string{}
	currentRow := []string{}

	for i, card := range cards {
		currentRow = append(currentRow, card.Render())

		if (i+1)%columns == 0 || i == len(cards)-1 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, currentRow...))
			currentRow = []string{}
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
