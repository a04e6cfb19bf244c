package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rgehrsitz/irrf/internal/domain"
)

// ConsoleVerboseFormatter prints the full itemized breakdown of both methods, best first.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

func (c ConsoleVerboseFormatter) Format(result *domain.ComparisonResult) ([]byte, error) {
	var buf bytes.Buffer
	w := func(format string, args ...any) { fmt.Fprintf(&buf, format, args...) }

	w("=================================================================================\n")
	w("SIMULADOR IRRF 2026 - COMPLETO x SIMPLIFICADO\n")
	w("=================================================================================\n\n")

	if result.Savings.IsPositive() {
		w("Economia Mensal: ao optar pelo modelo %s, você economiza %s.\n\n",
			strings.ToUpper(methodShortName(result.BestMethod)), FormatCurrency(result.Savings))
	} else {
		w("Os dois modelos resultam no mesmo imposto.\n\n")
	}

	for _, detail := range result.Ordered() {
		title := detail.Method.Label()
		if detail.Method == result.BestMethod {
			title += "  [Melhor Opção]"
		}
		w("%s\n", title)
		w("%s\n", strings.Repeat("-", 60))
		w("  Base de Cálculo:         %s\n", FormatCurrency(detail.CalculationBase))
		w("  Deduções Totais:         %s\n", FormatCurrency(detail.Deductions))
		if detail.Exemption65Value.IsPositive() {
			w("  Isenção 65 anos:         %s\n", FormatCurrency(detail.Exemption65Value))
		}
		w("\n  %-32s %8s %15s %12s\n", "Faixa", "Alíquota", "Valor na Faixa", "Imposto")
		for _, b := range detail.Brackets {
			w("  %-32s %8s %15s %12s\n", b.Range, FormatRate(b.Rate), FormatCurrency(b.AllocatedAmount), FormatCurrency(b.TaxAmount))
		}
		w("\n  Imposto Bruto:           %s\n", FormatCurrency(detail.GrossTax))
		w("  Redutor:               - %s\n", FormatCurrency(detail.Redutor.Value))
		w("    %s\n", detail.Redutor.Explanation)
		w("  IRRF a Reter:            %s\n", FormatCurrency(detail.NetTax))
		w("  Alíquota Efetiva:        %s\n\n", FormatPercentage(detail.EffectiveRate, 2))
	}

	return buf.Bytes(), nil
}

func methodShortName(m domain.Method) string {
	switch m {
	case domain.MethodFull:
		return "Completo"
	case domain.MethodSimplified:
		return "Simplificado"
	default:
		return string(m)
	}
}

// ConsoleFormatter prints a compact two-line summary
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) Format(result *domain.ComparisonResult) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("RESUMO IRRF 2026\n")
	for _, detail := range []domain.CalculationDetail{result.Full, result.Simplified} {
		marker := " "
		if detail.Method == result.BestMethod {
			marker = "*"
		}
		fmt.Fprintf(&buf, "%s %-12s base %s  IRRF %s  (%s)\n",
			marker, methodShortName(detail.Method), FormatCurrency(detail.CalculationBase), FormatCurrency(detail.NetTax), FormatPercentage(detail.EffectiveRate, 2))
	}
	fmt.Fprintf(&buf, "Recomendado: %s | Economia %s\n", methodShortName(result.BestMethod), FormatCurrency(result.Savings))
	return buf.Bytes(), nil
}
