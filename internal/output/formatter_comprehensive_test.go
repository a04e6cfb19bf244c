package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/rgehrsitz/irrf/internal/calculation"
	"github.com/rgehrsitz/irrf/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTestComparison() *domain.ComparisonResult {
	result := calculation.Compare(domain.TaxpayerInput{GrossSalary: decimal.NewFromInt(10000)})
	return &result
}

func buildTieComparison() *domain.ComparisonResult {
	result := calculation.Compare(domain.TaxpayerInput{GrossSalary: decimal.NewFromInt(2000), IsRetiree65Plus: true})
	return &result
}

func TestFormatterFunc_Format(t *testing.T) {
	called := false
	var received *domain.ComparisonResult

	formatter := FormatterFunc{
		ID: "test-formatter",
		F: func(result *domain.ComparisonResult) ([]byte, error) {
			called = true
			received = result
			return []byte("test output"), nil
		},
	}

	testResult := buildTestComparison()
	output, err := formatter.Format(testResult)

	assert.NoError(t, err, "Should not error")
	assert.True(t, called, "Should call the function")
	assert.Equal(t, testResult, received, "Should pass the result")
	assert.Equal(t, []byte("test output"), output, "Should return the function output")
	assert.Equal(t, "test-formatter", formatter.Name(), "Should return the ID")
}

func TestWriteFormatted(t *testing.T) {
	tmpDir := t.TempDir()
	originalDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(tmpDir))
	defer os.Chdir(originalDir)

	formatter := FormatterFunc{
		ID: "test-formatter",
		F: func(result *domain.ComparisonResult) ([]byte, error) {
			return []byte("test output content"), nil
		},
	}

	filename, err := WriteFormatted(formatter, buildTestComparison(), "txt")

	assert.NoError(t, err, "Should not error")
	assert.True(t, strings.HasPrefix(filename, "irrf_report_"), "Should have correct prefix")
	assert.True(t, strings.HasSuffix(filename, ".txt"), "Should have correct extension")

	content, err := os.ReadFile(filename)
	assert.NoError(t, err, "Should be able to read the file")
	assert.Equal(t, "test output content", string(content), "Should have correct content")
}

func TestWriteFormatted_FormatterError(t *testing.T) {
	formatter := FormatterFunc{
		ID: "error-formatter",
		F: func(result *domain.ComparisonResult) ([]byte, error) {
			return nil, fmt.Errorf("formatter error")
		},
	}

	filename, err := WriteFormatted(formatter, buildTestComparison(), "txt")

	assert.Error(t, err, "Should error when formatter fails")
	assert.Empty(t, filename, "Should return empty filename on error")
	assert.Contains(t, err.Error(), "formatter error", "Should propagate formatter error")
}

func TestGetFormatterByName(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"console", "console"},
		{"CONSOLE", "console"},
		{"console-lite", "console-lite"},
		{"csv", "csv"},
		{"csv-brackets", "csv-brackets"},
		{"json", "json"},
		{"html", "html"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := GetFormatterByName(tt.name)
			require.NotNil(t, f)
			assert.Equal(t, tt.expected, f.Name())
		})
	}

	assert.Nil(t, GetFormatterByName("pdf"), "Unknown formats have no formatter")
	assert.Equal(t, []string{"console", "console-lite", "csv", "csv-brackets", "html", "json"}, FormatterNames())
}

func TestConsoleVerboseFormatter_Format(t *testing.T) {
	output, err := ConsoleVerboseFormatter{}.Format(buildTestComparison())
	require.NoError(t, err)

	content := string(output)
	assert.Contains(t, content, "SIMULADOR IRRF 2026")
	assert.Contains(t, content, "ao optar pelo modelo SIMPLIFICADO, você economiza R$ 166,98.")
	assert.Contains(t, content, "Cálculo Simplificado  [Melhor Opção]")
	assert.Contains(t, content, "Acima de R$ 4.664,68")
	assert.Contains(t, content, "27,5%")
	assert.Contains(t, content, "IRRF a Reter:            R$ 1.674,30")
	assert.Contains(t, content, "IRRF a Reter:            R$ 1.841,28")
	assert.Contains(t, content, "Alíquota Efetiva:        18,41%")
	assert.Contains(t, content, "Redutor não aplicável")

	simplifiedAt := strings.Index(content, "Cálculo Simplificado")
	fullAt := strings.Index(content, "Cálculo Completo")
	assert.Less(t, simplifiedAt, fullAt, "Best method should be listed first")
}

func TestConsoleVerboseFormatter_Format_Tie(t *testing.T) {
	output, err := ConsoleVerboseFormatter{}.Format(buildTieComparison())
	require.NoError(t, err)

	content := string(output)
	assert.Contains(t, content, "Os dois modelos resultam no mesmo imposto.")
	assert.NotContains(t, content, "Economia Mensal")
	assert.Contains(t, content, "Isenção 65 anos:         R$ 1.903,98")
	assert.Contains(t, content, "Cálculo Completo  [Melhor Opção]")
}

func TestConsoleFormatter_Format(t *testing.T) {
	output, err := ConsoleFormatter{}.Format(buildTestComparison())
	require.NoError(t, err)

	content := string(output)
	assert.Contains(t, content, "RESUMO IRRF 2026")
	assert.Contains(t, content, "* Simplificado")
	assert.Contains(t, content, "  Completo")
	assert.Contains(t, content, "Recomendado: Simplificado | Economia R$ 166,98")
}

func TestCSVSummarizer_Format(t *testing.T) {
	output, err := CSVSummarizer{}.Format(buildTestComparison())
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(output)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "Method", records[0][0])
	assert.Equal(t, []string{"full", "false", "10000.00", "0.00", "0.00", "1841.28", "0.00", "1841.28", "0.1841", "166.98"}, records[1])
	assert.Equal(t, []string{"simplified", "true", "9392.80", "607.20", "0.00", "1674.30", "0.00", "1674.30", "0.1674", "166.98"}, records[2])
}

func TestCSVBracketFormatter_Format(t *testing.T) {
	output, err := CSVBracketFormatter{}.Format(buildTestComparison())
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(output)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 11, "header plus five brackets per method")

	assert.Equal(t, []string{"full", "1", "De R$ 0,00 a R$ 2.428,80", "0", "2428.80", "0.00"}, records[1])
	assert.Equal(t, []string{"full", "5", "Acima de R$ 4.664,68", "0.275", "5335.32", "1467.21"}, records[5])
	assert.Equal(t, "simplified", records[10][0])
}

func TestJSONFormatter_Format(t *testing.T) {
	output, err := JSONFormatter{Pretty: true}.Format(buildTestComparison())
	require.NoError(t, err)
	assert.Contains(t, string(output), "\n  \"full\"")

	var decoded map[string]any
	d := json.NewDecoder(bytes.NewReader(output))
	d.UseNumber()
	require.NoError(t, d.Decode(&decoded))

	assert.Equal(t, "simplified", decoded["bestMethod"])
	assert.Equal(t, json.Number("166.98"), decoded["savings"])

	full := decoded["full"].(map[string]any)
	assert.Equal(t, "full", full["method"])
	assert.Equal(t, json.Number("1841.2785"), full["netTax"])
	assert.Equal(t, json.Number("10000"), full["baseCalculation"])
	assert.Len(t, full["brackets"], 5)
	assert.Contains(t, full["reductionExplanation"], "não aplicável")
}

func TestJSONFormatter_Compact(t *testing.T) {
	output, err := JSONFormatter{}.Format(buildTieComparison())
	require.NoError(t, err)

	assert.NotContains(t, string(output), "\n")
	assert.Contains(t, string(output), `"exemption65Value":1903.98`)
	assert.Contains(t, string(output), `"bestMethod":"full"`)
}

func TestHTMLFormatter_Format(t *testing.T) {
	output, err := HTMLFormatter{}.Format(buildTestComparison())
	require.NoError(t, err)

	content := string(output)
	assert.Contains(t, content, "<!DOCTYPE html>")
	assert.Contains(t, content, "Melhor Opção")
	assert.Contains(t, content, "R$ 166,98")
	assert.Contains(t, content, "R$ 1.674,30")
	assert.Contains(t, content, "SIMPLIFICADO")
	assert.Equal(t, 1, strings.Count(content, `class="card best"`))
}

func TestHTMLFormatter_Format_Tie(t *testing.T) {
	output, err := HTMLFormatter{}.Format(buildTieComparison())
	require.NoError(t, err)

	content := string(output)
	assert.NotContains(t, content, "Economia Mensal")
	assert.Contains(t, content, "Isenção 65 anos aplicada")
}

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		amount   string
		expected string
	}{
		{"0", "R$ 0,00"},
		{"1234.56", "R$ 1.234,56"},
		{"1841.2785", "R$ 1.841,28"},
		{"1000000", "R$ 1.000.000,00"},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatCurrency(decimal.RequireFromString(tt.amount)))
		})
	}
}

func TestFormatPercentage(t *testing.T) {
	assert.Equal(t, "7,5%", FormatRate(decimal.RequireFromString("0.075")))
	assert.Equal(t, "0,0%", FormatRate(decimal.Zero))
	assert.Equal(t, "18,41%", FormatPercentage(decimal.RequireFromString("0.18412785"), 2))
}

func TestFormatRules(t *testing.T) {
	content := FormatRules(domain.DefaultRules2026())

	assert.Contains(t, content, "TABELA PROGRESSIVA MENSAL 2026")
	assert.Contains(t, content, "Até R$ 2.428,80")
	assert.Contains(t, content, "Acima de R$ 4.664,68")
	assert.Contains(t, content, "R$ 908,72")
	assert.Contains(t, content, "R$ 189,59")
	assert.Contains(t, content, "R$ 607,20")
	assert.Contains(t, content, "R$ 1.903,98")
	assert.Contains(t, content, "978,62 - (0,133145 x rendimentos)")
}
