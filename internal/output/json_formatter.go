package output

import (
	"encoding/json"

	"github.com/rgehrsitz/irrf/internal/domain"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// JSONFormatter emits the comparison with monetary values as plain JSON numbers
type JSONFormatter struct {
	Pretty bool // If true, format with indentation
}

func (j JSONFormatter) Name() string { return "json" }

type jsonBracket struct {
	Range           string      `json:"range"`
	Rate            json.Number `json:"rate"`
	AllocatedAmount json.Number `json:"allocatedAmount"`
	TaxAmount       json.Number `json:"taxAmount"`
}

type jsonDetail struct {
	Method               domain.Method `json:"method"`
	BaseCalculation      json.Number   `json:"baseCalculation"`
	Brackets             []jsonBracket `json:"brackets"`
	GrossTax             json.Number   `json:"grossTax"`
	ReductionValue       json.Number   `json:"reductionValue"`
	ReductionExplanation string        `json:"reductionExplanation"`
	NetTax               json.Number   `json:"netTax"`
	EffectiveRate        json.Number   `json:"effectiveRate"`
	Deductions           json.Number   `json:"deductions"`
	Exemption65Value     json.Number   `json:"exemption65Value"`
}

// ComparisonJSON is the JSON shape of a comparison, shared by every command that
// emits one
type ComparisonJSON struct {
	Full       jsonDetail    `json:"full"`
	Simplified jsonDetail    `json:"simplified"`
	BestMethod domain.Method `json:"bestMethod"`
	Savings    json.Number   `json:"savings"`
}

// JSONAmount renders d as an unquoted JSON number with its exact digits
func JSONAmount(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

func toJSONDetail(d domain.CalculationDetail) jsonDetail {
	return jsonDetail{
		Method:          d.Method,
		BaseCalculation: JSONAmount(d.CalculationBase),
		Brackets: lo.Map(d.Brackets, func(b domain.BracketAllocation, _ int) jsonBracket {
			return jsonBracket{
				Range:           b.Range,
				Rate:            JSONAmount(b.Rate),
				AllocatedAmount: JSONAmount(b.AllocatedAmount),
				TaxAmount:       JSONAmount(b.TaxAmount),
			}
		}),
		GrossTax:             JSONAmount(d.GrossTax),
		ReductionValue:       JSONAmount(d.Redutor.Value),
		ReductionExplanation: d.Redutor.Explanation,
		NetTax:               JSONAmount(d.NetTax),
		EffectiveRate:        JSONAmount(d.EffectiveRate),
		Deductions:           JSONAmount(d.Deductions),
		Exemption65Value:     JSONAmount(d.Exemption65Value),
	}
}

// NewComparisonJSON builds the JSON view of result
func NewComparisonJSON(result *domain.ComparisonResult) ComparisonJSON {
	return ComparisonJSON{
		Full:       toJSONDetail(result.Full),
		Simplified: toJSONDetail(result.Simplified),
		BestMethod: result.BestMethod,
		Savings:    JSONAmount(result.Savings),
	}
}

func (j JSONFormatter) Format(result *domain.ComparisonResult) ([]byte, error) {
	view := NewComparisonJSON(result)

	if j.Pretty {
		return json.MarshalIndent(view, "", "  ")
	}
	return json.Marshal(view)
}
