package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/irrf/internal/tui/tuistyles"
	"github.com/shopspring/decimal"
)

// AllocationBar shows which share of a whole falls in one part, such as the portion
// of a calculation base allocated to a bracket.
type AllocationBar struct {
	Part  decimal.Decimal
	Whole decimal.Decimal
	Width int
}

// NewAllocationBar creates a new allocation bar
func NewAllocationBar(part, whole decimal.Decimal) *AllocationBar {
	return &AllocationBar{
		Part:  part,
		Whole: whole,
		Width: 12,
	}
}

// Fraction returns Part/Whole clamped to [0, 1]; an empty whole gives zero
func (a *AllocationBar) Fraction() decimal.Decimal {
	if !a.Whole.IsPositive() || !a.Part.IsPositive() {
		return decimal.Zero
	}
	return decimal.Min(decimal.NewFromInt(1), a.Part.Div(a.Whole))
}

// Filled returns the number of filled cells
func (a *AllocationBar) Filled() int {
	return int(a.Fraction().Mul(decimal.NewFromInt(int64(a.Width))).Round(0).IntPart())
}

// Render returns the styled bar
func (a *AllocationBar) Render() string {
	filled := a.Filled()
	empty := a.Width - filled

	barStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorPrimary)
	emptyStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorBorder)

	var content strings.Builder
	if filled > 0 {
		content.WriteString(barStyle.Render(strings.Repeat("█", filled)))
	}
	if empty > 0 {
		content.WriteString(emptyStyle.Render(strings.Repeat("░", empty)))
	}
	return content.String()
}
