package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/irrf/internal/output"
	"github.com/rgehrsitz/irrf/internal/tui/components"
)

// View renders the form, the savings banner and both methods best first
func (m Model) View() string {
	sections := []string{
		m.renderTitleBar(),
		m.renderForm(),
		m.renderBanner(),
		m.renderSummary(),
		m.renderMethods(),
	}
	if m.err != nil {
		sections = append(sections, ErrorStyle.Render("Erro: "+m.err.Error()))
	}
	sections = append(sections, StatusBarStyle.Render(m.help.View(m.keys)))

	return AppStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

// renderTitleBar renders the application title and the active table
func (m Model) renderTitleBar() string {
	rules := m.engine.TaxCalc.Rules()
	subtitle := fmt.Sprintf("Tabela %d", rules.Year)
	if rules.Description != "" {
		subtitle = rules.Description
	}
	lines := []string{
		TitleStyle.Render("SIMULADOR IRRF 2026 - COMPLETO x SIMPLIFICADO"),
		SubtitleStyle.Render(subtitle),
	}
	if m.rulesLoaded {
		lines = append(lines, InfoStyle.Render("Tabela carregada de "+m.rulesPath))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// renderForm renders the input fields and the retiree toggle
func (m Model) renderForm() string {
	rows := make([]string, 0, fieldCount)
	for i := 0; i < fieldCount; i++ {
		label := FieldLabelStyle.Render(fieldLabels[i])
		if i == m.focus {
			label = FocusedFieldLabelStyle.Render("▸ " + fieldLabels[i])
		}

		var value string
		if i == fieldRetiree {
			check := "[ ]"
			if m.retiree {
				check = "[x]"
			}
			value = check + " isenção de " + output.FormatCurrency(m.engine.TaxCalc.Rules().Exemption65Plus)
		} else {
			value = m.inputs[i].View()
		}
		rows = append(rows, label+value)
	}
	return BorderStyle.Render(strings.Join(rows, "\n"))
}

// renderBanner renders the savings message
func (m Model) renderBanner() string {
	r := m.result
	if !r.Savings.IsPositive() {
		return BannerStyle.Render("Os dois modelos resultam no mesmo imposto.")
	}
	return BannerStyle.Render(fmt.Sprintf("Economia Mensal: ao optar pelo modelo %s, você economiza %s.",
		strings.ToUpper(shortName(r.BestMethod.Label())), output.FormatCurrency(r.Savings)))
}

// renderSummary renders the headline figures of each method as bordered cards
func (m Model) renderSummary() string {
	r := m.result
	cards := []*components.MetricCard{
		components.NewMetricCard("IRRF Completo", output.FormatCurrency(r.Full.NetTax)).
			WithBest(r.BestMethod == r.Full.Method).
			WithDescription("efetiva " + output.FormatPercentage(r.Full.EffectiveRate, 2)),
		components.NewMetricCard("IRRF Simplificado", output.FormatCurrency(r.Simplified.NetTax)).
			WithBest(r.BestMethod == r.Simplified.Method).
			WithDescription("efetiva " + output.FormatPercentage(r.Simplified.EffectiveRate, 2)),
		components.NewMetricCard("Economia", output.FormatCurrency(r.Savings)),
	}
	if m.width > 0 {
		for _, c := range cards {
			c.WithWidth(max(m.width/len(cards)-2, 24))
		}
	}
	return components.MetricGrid(cards, len(cards))
}

// renderMethods renders both method cards side by side, best first
func (m Model) renderMethods() string {
	width := 56
	if m.width > 0 && m.width/2-2 < width {
		width = max(m.width/2-2, 40)
	}

	ordered := m.result.Ordered()
	cards := make([]*components.MethodCard, len(ordered))
	for i, detail := range ordered {
		cards[i] = components.NewMethodCard(detail).
			SetBest(detail.Method == m.result.BestMethod).
			WithWidth(width)
	}
	return components.MethodColumns(cards...)
}

// shortName turns "Cálculo Simplificado" into "Simplificado"
func shortName(label string) string {
	return strings.TrimPrefix(label, "Cálculo ")
}
