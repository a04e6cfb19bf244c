package tui

import "github.com/rgehrsitz/irrf/internal/domain"

// RulesLoadedMsg signals a rules file has been loaded and validated
type RulesLoadedMsg struct {
	Rules domain.TaxRules
}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}
