package breakeven

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/irrf/internal/calculation"
	"github.com/rgehrsitz/irrf/internal/domain"
	"github.com/rgehrsitz/irrf/internal/output"
)

func solvedSummary(t *testing.T) *Summary {
	t.Helper()
	target := dec("8000")
	summary, err := NewDefaultSolver(calculation.NewCalculationEngine()).
		SolveAll(context.Background(), domain.TaxpayerInput{}, &target)
	require.NoError(t, err)
	return summary
}

func TestTableFormatter_FormatSummary(t *testing.T) {
	content := (&TableFormatter{}).FormatSummary(solvedSummary(t))

	assert.Contains(t, content, "BREAK-EVEN IRRF 2026")
	assert.Contains(t, content, "Salário Bruto:       R$ 5.000,01")
	assert.Contains(t, content, "✓ Convergiu")
	assert.Contains(t, content, "Meta Líquida:        R$ 8.000,00")
	assert.Contains(t, content, "RECOMENDAÇÕES")
	assert.Contains(t, content, "Cálculo Simplificado")
}

func TestJSONFormatter_FormatSummary(t *testing.T) {
	content, err := (&JSONFormatter{Pretty: true}).FormatSummary(solvedSummary(t))
	require.NoError(t, err)

	var decoded map[string]any
	decoder := json.NewDecoder(strings.NewReader(content))
	decoder.UseNumber()
	require.NoError(t, decoder.Decode(&decoded))
	results := decoded["results"].([]any)
	require.Len(t, results, 2)

	crossover := results[0].(map[string]any)
	assert.Equal(t, "crossover", crossover["target"])
	assert.Equal(t, json.Number("5000.01"), crossover["grossSalary"], "amounts are unquoted numbers")
	assert.NotContains(t, crossover, "targetNetIncome")

	netIncome := results[1].(map[string]any)
	assert.Equal(t, "net_income", netIncome["target"])
	assert.Equal(t, json.Number("8000"), netIncome["targetNetIncome"])
}

func TestJSONFormatter_ComparisonMatchesCalculateSchema(t *testing.T) {
	summary := solvedSummary(t)
	content, err := (&JSONFormatter{}).FormatSummary(summary)
	require.NoError(t, err)

	var decoded struct {
		Results []struct {
			Comparison map[string]any `json:"comparison"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal([]byte(content), &decoded))

	calculated, err := output.JSONFormatter{}.Format(&summary.Results[0].Comparison)
	require.NoError(t, err)
	var expected map[string]any
	require.NoError(t, json.Unmarshal(calculated, &expected))

	assert.Equal(t, expected, decoded.Results[0].Comparison)
	full := decoded.Results[0].Comparison["full"].(map[string]any)
	assert.Contains(t, full, "baseCalculation")
	assert.Contains(t, full, "reductionValue")
	assert.NotContains(t, full, "calculationBase")
}
