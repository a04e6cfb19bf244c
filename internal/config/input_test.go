package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFromFile_YAML(t *testing.T) {
	path := writeFile(t, "input.yaml", `
gross_salary: 8000
dependents: 2
alimony: 500.00
social_security: "800"
other_deductions: 100
is_retiree_65_plus: false
`)

	input, err := NewInputParser().LoadFromFile(path)
	require.NoError(t, err)

	assert.True(t, input.GrossSalary.Equal(decimal.NewFromInt(8000)))
	assert.Equal(t, 2, input.Dependents)
	assert.True(t, input.Alimony.Equal(decimal.NewFromInt(500)))
	assert.True(t, input.SocialSecurity.Equal(decimal.NewFromInt(800)))
	assert.True(t, input.OtherDeductions.Equal(decimal.NewFromInt(100)))
	assert.False(t, input.IsRetiree65Plus)
}

func TestLoadFromFile_JSON(t *testing.T) {
	path := writeFile(t, "input.json", `{"gross_salary": 2000, "is_retiree_65_plus": true}`)

	input, err := NewInputParser().LoadFromFile(path)
	require.NoError(t, err)

	assert.True(t, input.GrossSalary.Equal(decimal.NewFromInt(2000)))
	assert.True(t, input.IsRetiree65Plus)
	assert.True(t, input.Alimony.IsZero())
}

func TestLoadFromFile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"negative salary", "gross_salary: -1", "gross salary cannot be negative"},
		{"negative dependents", "gross_salary: 1000\ndependents: -2", "dependents cannot be negative"},
		{"unknown field", "gross_salary: 1000\nsalary: 2", "failed to parse YAML"},
		{"not a number", "gross_salary: abc", "failed to parse YAML"},
		{"empty document", "", "document is empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "input.yaml", tt.content)
			_, err := NewInputParser().LoadFromFile(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadFromFile_MissingFile(t *testing.T) {
	_, err := NewInputParser().LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")
}

const validRules = `
year: 2026
brackets:
  - {limit: 2428.80, rate: 0, deduction: 0}
  - {limit: 2826.65, rate: 0.075, deduction: 182.16}
  - {limit: 3751.05, rate: 0.15, deduction: 394.16}
  - {limit: 4664.68, rate: 0.225, deduction: 675.48}
  - {limit: null, rate: 0.275, deduction: 908.72}
dependent_deduction: 189.59
simplified_deduction: 607.20
exemption_65_plus: 1903.98
redutor:
  full_exemption_ceiling: 5000
  phase_out_ceiling: 7350
  constant: 978.62
  coefficient: 0.133145
`

func TestLoadRulesFromFile(t *testing.T) {
	path := writeFile(t, "rules.yaml", validRules)

	rules, err := NewInputParser().LoadRulesFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, 2026, rules.Year)
	require.Len(t, rules.Brackets, 5)
	assert.Nil(t, rules.Brackets[4].Limit)
	assert.Equal(t, "0.133145", rules.Redutor.Coefficient.String())
	assert.Equal(t, "4664.68", rules.Brackets[3].Limit.String())
}

func TestLoadRulesFromFile_Invalid(t *testing.T) {
	path := writeFile(t, "rules.yaml", `
year: 2026
brackets:
  - {limit: null, rate: 0, deduction: 0}
  - {limit: 3000, rate: 0.1, deduction: 0}
redutor:
  full_exemption_ceiling: 5000
  phase_out_ceiling: 7350
`)

	_, err := NewInputParser().LoadRulesFromFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rules validation failed")
}

func TestLoadRules_DefaultsWhenEmpty(t *testing.T) {
	rules, err := NewInputParser().LoadRules("")
	require.NoError(t, err)

	assert.Equal(t, 2026, rules.Year)
	assert.NoError(t, rules.Validate())
}
