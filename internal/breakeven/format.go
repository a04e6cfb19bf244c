package breakeven

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rgehrsitz/irrf/internal/output"
)

// TableFormatter formats solver results as a console table
type TableFormatter struct{}

// Format generates a formatted table for one result
func (tf *TableFormatter) Format(result *Result) string {
	var sb strings.Builder

	sb.WriteString("BREAK-EVEN IRRF 2026\n")
	sb.WriteString(strings.Repeat("=", 60) + "\n")
	sb.WriteString(fmt.Sprintf("Busca:               %s\n", tf.targetLabel(result.Target)))
	sb.WriteString(fmt.Sprintf("Status:              %s\n", tf.formatStatus(result.Success)))
	sb.WriteString(fmt.Sprintf("Iterações:           %d\n", result.Iterations))
	if result.ConvergenceInfo != "" {
		sb.WriteString(fmt.Sprintf("Convergência:        %s\n", result.ConvergenceInfo))
	}
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("Salário Bruto:       %s\n", output.FormatCurrency(result.GrossSalary)))
	sb.WriteString(fmt.Sprintf("IRRF Completo:       %s\n", output.FormatCurrency(result.Comparison.Full.NetTax)))
	sb.WriteString(fmt.Sprintf("IRRF Simplificado:   %s\n", output.FormatCurrency(result.Comparison.Simplified.NetTax)))
	sb.WriteString(fmt.Sprintf("Melhor Opção:        %s\n", result.Comparison.BestMethod.Label()))
	sb.WriteString(fmt.Sprintf("Líquido de IRRF:     %s\n", output.FormatCurrency(result.TakeHome)))

	if result.Request.TargetNetIncome != nil {
		diff := result.TakeHome.Sub(*result.Request.TargetNetIncome)
		sb.WriteString(fmt.Sprintf("Meta Líquida:        %s (diferença %s)\n",
			output.FormatCurrency(*result.Request.TargetNetIncome), output.FormatCurrency(diff)))
	}

	return sb.String()
}

// FormatSummary formats every result of SolveAll followed by the recommendations
func (tf *TableFormatter) FormatSummary(summary *Summary) string {
	var sb strings.Builder
	for i := range summary.Results {
		sb.WriteString(tf.Format(&summary.Results[i]))
		sb.WriteString("\n")
	}

	if len(summary.Recommendations) > 0 {
		sb.WriteString("RECOMENDAÇÕES\n")
		sb.WriteString(strings.Repeat("-", 60) + "\n")
		for _, rec := range summary.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
	}
	return sb.String()
}

// JSONFormatter formats results as JSON
type JSONFormatter struct {
	Pretty bool
}

type jsonResult struct {
	Target          Target                `json:"target"`
	Success         bool                  `json:"success"`
	Iterations      int                   `json:"iterations"`
	ConvergenceInfo string                `json:"convergenceInfo"`
	GrossSalary     json.Number           `json:"grossSalary"`
	TakeHome        json.Number           `json:"takeHome"`
	TargetNetIncome *json.Number          `json:"targetNetIncome,omitempty"`
	Comparison      output.ComparisonJSON `json:"comparison"`
}

type jsonSummary struct {
	Results         []jsonResult `json:"results"`
	Recommendations []string     `json:"recommendations"`
}

func toJSONResult(r *Result) jsonResult {
	view := jsonResult{
		Target:          r.Target,
		Success:         r.Success,
		Iterations:      r.Iterations,
		ConvergenceInfo: r.ConvergenceInfo,
		GrossSalary:     output.JSONAmount(r.GrossSalary),
		TakeHome:        output.JSONAmount(r.TakeHome),
		Comparison:      output.NewComparisonJSON(&r.Comparison),
	}
	if r.Request.TargetNetIncome != nil {
		target := output.JSONAmount(*r.Request.TargetNetIncome)
		view.TargetNetIncome = &target
	}
	return view
}

// FormatSummary generates JSON output for a summary. Amounts are unquoted numbers and
// each comparison uses the same shape as "irrf calculate -f json".
func (jf *JSONFormatter) FormatSummary(summary *Summary) (string, error) {
	view := jsonSummary{
		Results:         make([]jsonResult, len(summary.Results)),
		Recommendations: summary.Recommendations,
	}
	for i := range summary.Results {
		view.Results[i] = toJSONResult(&summary.Results[i])
	}

	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(view, "", "  ")
	} else {
		data, err = json.Marshal(view)
	}

	if err != nil {
		return "", err
	}

	return string(data), nil
}

func (tf *TableFormatter) formatStatus(success bool) string {
	if success {
		return "✓ Convergiu"
	}
	return "⚠ Não convergiu"
}

func (tf *TableFormatter) targetLabel(t Target) string {
	switch t {
	case TargetCrossover:
		return "salário a partir do qual o simplificado vence"
	case TargetNetIncome:
		return "salário bruto para o líquido desejado"
	}
	return string(t)
}
