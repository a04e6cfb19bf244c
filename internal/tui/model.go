package tui

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/irrf/internal/calculation"
	"github.com/rgehrsitz/irrf/internal/config"
	"github.com/rgehrsitz/irrf/internal/domain"
)

// Form fields in focus order. The retiree toggle is the last row and has no text input.
const (
	fieldSalary = iota
	fieldSocialSecurity
	fieldDependents
	fieldAlimony
	fieldOther
	fieldRetiree
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"Salário Bruto (R$)",
	"INSS (R$)",
	"Dependentes",
	"Pensão Alimentícia (R$)",
	"Outras Deduções (R$)",
	"Aposentado 65+",
}

// Model is the simulator state: the form, the engine and the last comparison
type Model struct {
	inputs  []textinput.Model
	retiree bool
	focus   int

	rulesPath   string
	rulesLoaded bool
	engine      *calculation.CalculationEngine
	result      domain.ComparisonResult

	keys keyMap
	help help.Model

	width  int
	height int

	err error
}

// NewModel creates the simulator with the 2026 table; a non-empty rulesPath is loaded
// on Init and replaces it.
func NewModel(rulesPath string) Model {
	placeholders := [fieldRetiree]string{"0,00", "0,00", "0", "0,00", "0,00"}

	inputs := make([]textinput.Model, fieldRetiree)
	for i := range inputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 15
		ti.Width = 18
		ti.Prompt = ""
		inputs[i] = ti
	}
	inputs[fieldDependents].CharLimit = 3
	inputs[fieldSalary].Focus()

	m := Model{
		inputs:    inputs,
		focus:     fieldSalary,
		rulesPath: rulesPath,
		engine:    calculation.NewCalculationEngine(),
		keys:      defaultKeyMap(),
		help:      help.New(),
		width:     120,
		height:    40,
	}
	m.recompute()
	return m
}

// Init starts the cursor blink and loads the rules file when one was given
func (m Model) Init() tea.Cmd {
	if m.rulesPath == "" {
		return textinput.Blink
	}
	return tea.Batch(textinput.Blink, loadRulesCmd(m.rulesPath))
}

// loadRulesCmd returns a command that loads and validates a rules file
func loadRulesCmd(path string) tea.Cmd {
	return func() tea.Msg {
		rules, err := config.NewInputParser().LoadRules(path)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return RulesLoadedMsg{Rules: rules}
	}
}

// Result returns the comparison for the current form values
func (m Model) Result() domain.ComparisonResult {
	return m.result
}

// TaxpayerInput reads the form. Malformed entries count as zero.
func (m Model) TaxpayerInput() domain.TaxpayerInput {
	return domain.TaxpayerInput{
		GrossSalary:     parseAmount(m.inputs[fieldSalary].Value()),
		SocialSecurity:  parseAmount(m.inputs[fieldSocialSecurity].Value()),
		Dependents:      parseCount(m.inputs[fieldDependents].Value()),
		Alimony:         parseAmount(m.inputs[fieldAlimony].Value()),
		OtherDeductions: parseAmount(m.inputs[fieldOther].Value()),
		IsRetiree65Plus: m.retiree,
	}
}

func (m *Model) recompute() {
	m.result = m.engine.Compare(m.TaxpayerInput())
}

// thousandsGrouped matches dot-grouped integers such as "10.000" or "1.234.567"
var thousandsGrouped = regexp.MustCompile(`^\d{1,3}(\.\d{3})+$`)

// parseAmount accepts "8000", "8000.50", "10.000", "8.000,50" and "R$ 8.000,50".
// Without a comma, a dot is a thousands separator only when it groups three digits.
func parseAmount(s string) decimal.Decimal {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "R$"))
	switch {
	case strings.Contains(s, ","):
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	case thousandsGrouped.MatchString(s):
		s = strings.ReplaceAll(s, ".", "")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func parseCount(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}
