package domain

import "github.com/shopspring/decimal"

// BracketAllocation is the share of a calculation base that falls inside one bracket
type BracketAllocation struct {
	Range           string          `json:"range"`
	Rate            decimal.Decimal `json:"rate"`
	AllocatedAmount decimal.Decimal `json:"allocatedAmount"`
	TaxAmount       decimal.Decimal `json:"taxAmount"`
}

// RedutorResult is the abatement applied to the gross tax and how it was obtained
type RedutorResult struct {
	Value       decimal.Decimal `json:"value"`
	Explanation string          `json:"explanation"`
}

// TaxAssessment is the deduction-agnostic output of the tax engine for one base.
type TaxAssessment struct {
	CalculationBase decimal.Decimal     `json:"calculationBase"`
	Brackets        []BracketAllocation `json:"brackets"`
	GrossTax        decimal.Decimal     `json:"grossTax"`
	Redutor         RedutorResult       `json:"redutor"`
	NetTax          decimal.Decimal     `json:"netTax"`
	EffectiveRate   decimal.Decimal     `json:"effectiveRate"`
}

// CalculationDetail is a TaxAssessment combined with the deduction figures of the
// method that produced its base.
type CalculationDetail struct {
	Method Method `json:"method"`
	TaxAssessment
	Deductions       decimal.Decimal `json:"deductions"`
	Exemption65Value decimal.Decimal `json:"exemption65Value"`
}

// ComparisonResult is the top-level answer: both methods and the cheaper one
type ComparisonResult struct {
	Full       CalculationDetail `json:"full"`
	Simplified CalculationDetail `json:"simplified"`
	BestMethod Method            `json:"bestMethod"`
	Savings    decimal.Decimal   `json:"savings"`
}

// Best returns the detail of the winning method
func (cr ComparisonResult) Best() CalculationDetail {
	if cr.BestMethod == MethodSimplified {
		return cr.Simplified
	}
	return cr.Full
}

// Ordered returns both details with the winning method first
func (cr ComparisonResult) Ordered() []CalculationDetail {
	if cr.BestMethod == MethodSimplified {
		return []CalculationDetail{cr.Simplified, cr.Full}
	}
	return []CalculationDetail{cr.Full, cr.Simplified}
}
