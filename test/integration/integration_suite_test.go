package integration

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/rgehrsitz/irrf/internal/calculation"
	"github.com/rgehrsitz/irrf/internal/config"
	"github.com/rgehrsitz/irrf/internal/domain"
	"github.com/rgehrsitz/irrf/internal/output"
)

const testdata = "../testdata"

// PipelineSuite runs input files through parsing, comparison and every formatter
type PipelineSuite struct {
	suite.Suite
	parser *config.InputParser
	engine *calculation.CalculationEngine
}

func (s *PipelineSuite) SetupTest() {
	s.parser = config.NewInputParser()

	rules, err := s.parser.LoadRules(filepath.Join(testdata, "rules_2026.yaml"))
	s.Require().NoError(err)
	s.engine = calculation.NewCalculationEngineWithRules(rules)
}

func (s *PipelineSuite) compareFile(name string) domain.ComparisonResult {
	input, err := s.parser.LoadFromFile(filepath.Join(testdata, name))
	s.Require().NoError(err)
	return s.engine.Compare(*input)
}

func (s *PipelineSuite) assertDecimal(expected string, actual decimal.Decimal, msg string) {
	s.Truef(decimal.RequireFromString(expected).Equal(actual), "%s: expected %s, got %s", msg, expected, actual)
}

func (s *PipelineSuite) TestRulesFileMatchesDefaults() {
	fromFile, err := s.parser.LoadRules(filepath.Join(testdata, "rules_2026.yaml"))
	s.Require().NoError(err)

	defaults := domain.DefaultRules2026()
	s.Require().Len(fromFile.Brackets, len(defaults.Brackets))
	for i := range defaults.Brackets {
		s.True(fromFile.Brackets[i].Rate.Equal(defaults.Brackets[i].Rate))
		s.True(fromFile.Brackets[i].Deduction.Equal(defaults.Brackets[i].Deduction))
		s.Equal(defaults.Brackets[i].IsUnbounded(), fromFile.Brackets[i].IsUnbounded())
	}
	s.True(fromFile.Redutor.Coefficient.Equal(defaults.Redutor.Coefficient))
	s.Equal(defaults.Description, fromFile.Description)
}

func (s *PipelineSuite) TestItemizedTaxpayer() {
	result := s.compareFile("taxpayer_itemized.yaml")

	s.assertDecimal("6220.82", result.Full.CalculationBase, "full base")
	s.assertDecimal("802.004", result.Full.NetTax, "full net tax")
	s.assertDecimal("1124.2985", result.Simplified.NetTax, "simplified net tax")
	s.Equal(domain.MethodFull, result.BestMethod)
	s.assertDecimal("322.2945", result.Savings, "savings")
}

func (s *PipelineSuite) TestHighIncomeTaxpayer() {
	result := s.compareFile("taxpayer_high_income.yaml")

	s.Equal(domain.MethodSimplified, result.BestMethod)
	s.assertDecimal("166.98", result.Savings, "savings")
	s.True(result.Full.Redutor.Value.IsZero())
}

func (s *PipelineSuite) TestPhaseOutTaxpayer() {
	result := s.compareFile("taxpayer_phase_out.yaml")

	s.assertDecimal("179.75", result.Full.Redutor.Value, "redutor")
	s.Contains(result.Full.Redutor.Explanation, "Fórmula: 978,62 - (0,133145 x 6.000,00) = 179,75.")
	s.Equal(domain.MethodSimplified, result.BestMethod)
}

func (s *PipelineSuite) TestRetireeTaxpayerFromJSON() {
	result := s.compareFile("taxpayer_retiree.json")

	s.assertDecimal("96.02", result.Full.CalculationBase, "full base")
	s.True(result.Simplified.CalculationBase.IsZero())
	s.True(result.Full.NetTax.IsZero())
	s.True(result.Simplified.NetTax.IsZero())
	s.Equal(domain.MethodFull, result.BestMethod)
}

func (s *PipelineSuite) TestInvalidFiles() {
	_, err := s.parser.LoadFromFile(filepath.Join(testdata, "taxpayer_invalid.yaml"))
	s.Require().Error(err)
	s.Contains(err.Error(), "dependents cannot be negative")

	_, err = s.parser.LoadRules(filepath.Join(testdata, "rules_invalid.yaml"))
	s.Require().Error(err)
	s.Contains(err.Error(), "rates must be strictly increasing")
}

func (s *PipelineSuite) TestEveryFormatterRendersBothMethods() {
	result := s.compareFile("taxpayer_itemized.yaml")

	for _, name := range output.FormatterNames() {
		s.Run(name, func() {
			f := output.GetFormatterByName(name)
			s.Require().NotNil(f)

			data, err := f.Format(&result)
			s.Require().NoError(err)
			s.NotEmpty(data)

			content := string(data)
			switch {
			case strings.HasPrefix(name, "csv"):
				records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
				s.Require().NoError(err)
				s.Greater(len(records), 2)
			case name == "json":
				s.True(json.Valid(data))
				s.Contains(content, `"bestMethod": "full"`)
			default:
				s.Contains(content, "R$ 322,29")
			}
			s.True(strings.Contains(content, "full") || strings.Contains(content, "Completo"))
			s.True(strings.Contains(content, "simplified") || strings.Contains(content, "Simplificado"))
		})
	}
}

func (s *PipelineSuite) TestRepeatedRunsAreIdentical() {
	first := s.compareFile("taxpayer_phase_out.yaml")
	for i := 0; i < 5; i++ {
		s.Equal(first, s.compareFile("taxpayer_phase_out.yaml"))
	}
}

func TestPipelineSuite(t *testing.T) {
	suite.Run(t, new(PipelineSuite))
}
