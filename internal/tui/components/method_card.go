package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/irrf/internal/domain"
	"github.com/rgehrsitz/irrf/internal/output"
	"github.com/rgehrsitz/irrf/internal/tui/tuistyles"
)

// MethodCard displays the full breakdown of one withholding method
type MethodCard struct {
	Detail domain.CalculationDetail
	IsBest bool
	Width  int
}

// NewMethodCard creates a new method card
func NewMethodCard(detail domain.CalculationDetail) *MethodCard {
	return &MethodCard{
		Detail: detail,
		Width:  56,
	}
}

// SetBest marks the card as the recommended method
func (c *MethodCard) SetBest(best bool) *MethodCard {
	c.IsBest = best
	return c
}

// WithWidth sets the card width
func (c *MethodCard) WithWidth(width int) *MethodCard {
	c.Width = width
	return c
}

// Render returns the styled method card
func (c *MethodCard) Render() string {
	d := c.Detail
	var content strings.Builder

	title := tuistyles.TitleStyle.Render(d.Method.Label())
	if c.IsBest {
		title += " " + tuistyles.BadgeStyle.Render("Melhor Opção")
	}
	content.WriteString(title + "\n\n")

	content.WriteString(NewMetricCard("Base de Cálculo", output.FormatCurrency(d.CalculationBase)).RenderCompact() + "\n")
	content.WriteString(NewMetricCard("Deduções Totais", output.FormatCurrency(d.Deductions)).RenderCompact() + "\n")
	if d.Exemption65Value.IsPositive() {
		content.WriteString(tuistyles.NoteStyle.Render(
			fmt.Sprintf("Isenção 65 anos aplicada: %s", output.FormatCurrency(d.Exemption65Value))) + "\n")
	}

	content.WriteString("\n" + tuistyles.TableHeaderStyle.Render(
		fmt.Sprintf("%-6s %-12s %12s", "Faixa", "Alocação", "Imposto")) + "\n")
	for i, b := range d.Brackets {
		bar := NewAllocationBar(b.AllocatedAmount, d.CalculationBase).Render()
		row := fmt.Sprintf("%-6s %s %12s", output.FormatRate(b.Rate), bar, output.FormatCurrency(b.TaxAmount))
		content.WriteString(tuistyles.TableCellStyle.Render(row))
		if i < len(d.Brackets)-1 {
			content.WriteString("\n")
		}
	}

	content.WriteString("\n\n" + NewMetricCard("Imposto Bruto", output.FormatCurrency(d.GrossTax)).RenderCompact() + "\n")
	content.WriteString(tuistyles.RedutorStyle.Render("Redutor: - "+output.FormatCurrency(d.Redutor.Value)) + "\n")
	content.WriteString(tuistyles.NoteStyle.Width(c.Width-4).Render(d.Redutor.Explanation) + "\n\n")

	content.WriteString(NewMetricCard("IRRF a Reter", output.FormatCurrency(d.NetTax)).WithBest(c.IsBest).RenderCompact() + "\n")
	content.WriteString(tuistyles.MetricLabelStyle.Render("Alíquota Efetiva: " + output.FormatPercentage(d.EffectiveRate, 2)))

	style := tuistyles.BorderStyle
	if c.IsBest {
		style = tuistyles.ActiveBorderStyle
	}
	return style.Width(c.Width).Render(content.String())
}

// MethodColumns renders cards side by side
func MethodColumns(cards ...*MethodCard) string {
	rendered := make([]string, len(cards))
	for i, card := range cards {
		rendered[i] = card.Render()
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}
