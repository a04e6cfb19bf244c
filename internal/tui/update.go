package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/irrf/internal/calculation"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case RulesLoadedMsg:
		m.engine = calculation.NewCalculationEngineWithRules(msg.Rules)
		m.rulesLoaded = true
		m.err = nil
		m.recompute()
		return m, nil

	case ErrorMsg:
		m.err = msg.Err
		return m, nil
	}

	return m.updateFocusedInput(msg)
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Next):
		return m, m.setFocus((m.focus + 1) % fieldCount)

	case key.Matches(msg, m.keys.Prev):
		return m, m.setFocus((m.focus + fieldCount - 1) % fieldCount)

	case key.Matches(msg, m.keys.Reset):
		for i := range m.inputs {
			m.inputs[i].Reset()
		}
		m.retiree = false
		m.recompute()
		return m, nil

	case m.focus == fieldRetiree && key.Matches(msg, m.keys.Toggle):
		m.retiree = !m.retiree
		m.recompute()
		return m, nil
	}

	return m.updateFocusedInput(msg)
}

// updateFocusedInput forwards msg to the focused text input and recomputes
func (m Model) updateFocusedInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.focus >= len(m.inputs) {
		return m, nil
	}

	var cmd tea.Cmd
	before := m.inputs[m.focus].Value()
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	if m.inputs[m.focus].Value() != before {
		m.recompute()
	}
	return m, cmd
}

// setFocus moves focus to field i
func (m *Model) setFocus(i int) tea.Cmd {
	m.focus = i
	var cmd tea.Cmd
	for j := range m.inputs {
		if j == i {
			cmd = m.inputs[j].Focus()
			continue
		}
		m.inputs[j].Blur()
	}
	return cmd
}
