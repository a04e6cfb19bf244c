package output

import (
	"bytes"
	"fmt"

	"github.com/rgehrsitz/irrf/internal/domain"
)

// FormatRules renders the monthly progressive table and the year constants
func FormatRules(rules domain.TaxRules) string {
	var buf bytes.Buffer
	w := func(format string, args ...any) { fmt.Fprintf(&buf, format, args...) }

	w("TABELA PROGRESSIVA MENSAL %d\n", rules.Year)
	if rules.Description != "" {
		w("%s\n", rules.Description)
	}
	w("\n  %-32s %8s %14s\n", "Base de Cálculo", "Alíquota", "Dedução")
	previous := "R$ 0,00"
	for _, b := range rules.Brackets {
		label := fmt.Sprintf("Acima de %s", previous)
		if !b.IsUnbounded() {
			label = fmt.Sprintf("Até %s", FormatCurrency(*b.Limit))
			previous = FormatCurrency(*b.Limit)
		}
		w("  %-32s %8s %14s\n", label, FormatRate(b.Rate), FormatCurrency(b.Deduction))
	}

	w("\n  Dedução por dependente:        %s\n", FormatCurrency(rules.DependentDeduction))
	w("  Desconto simplificado:         %s\n", FormatCurrency(rules.SimplifiedDeduction))
	w("  Isenção 65 anos:               %s\n", FormatCurrency(rules.Exemption65Plus))
	w("\n  Redutor\n")
	w("    Isenção total até:           %s\n", FormatCurrency(rules.Redutor.FullExemptionCeiling))
	w("    Redução parcial até:         %s\n", FormatCurrency(rules.Redutor.PhaseOutCeiling))
	w("    Fórmula:                     %s - (%s x rendimentos)\n",
		domain.FormatAmount(rules.Redutor.Constant),
		domain.FormatExact(rules.Redutor.Coefficient))
	return buf.String()
}
