package calculation

import (
	"github.com/rgehrsitz/irrf/internal/domain"
	"github.com/shopspring/decimal"
)

// CalculationEngine orchestrates the full-vs-simplified comparison
type CalculationEngine struct {
	TaxCalc *TaxEngine
	Logger  Logger
	Debug   bool // Enable debug output for detailed calculations
}

// NewCalculationEngine creates a new calculation engine with the 2026 rules
func NewCalculationEngine() *CalculationEngine {
	return NewCalculationEngineWithRules(domain.DefaultRules2026())
}

// NewCalculationEngineWithRules creates a new calculation engine for a custom table
func NewCalculationEngineWithRules(rules domain.TaxRules) *CalculationEngine {
	return &CalculationEngine{
		TaxCalc: NewTaxEngine(rules),
		Logger:  NopLogger{},
	}
}

// SetLogger sets the engine logger; nil restores the no-op logger
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

// Compare computes both withholding methods for the input and picks the cheaper one.
// Ties go to the full method. Negative inputs are clamped at every subtraction step.
func (ce *CalculationEngine) Compare(input domain.TaxpayerInput) domain.ComparisonResult {
	rules := ce.TaxCalc.rules

	exemption65 := decimal.Zero
	if input.IsRetiree65Plus {
		exemption65 = rules.Exemption65Plus
	}

	// Negative deductions and dependent counts are treated as zero
	socialSecurity := nonNegative(input.SocialSecurity)
	otherDeductions := nonNegative(input.OtherDeductions)
	dependents := decimal.NewFromInt(int64(max(input.Dependents, 0)))
	legalDeductions := nonNegative(input.Alimony).Add(dependents.Mul(rules.DependentDeduction))

	// Full method: gross - INSS - others - 65+, then alimony and dependents
	fullBase := nonNegative(input.GrossSalary.Sub(socialSecurity).Sub(otherDeductions).Sub(exemption65))
	fullBase = nonNegative(fullBase.Sub(legalDeductions))
	full := newCalculationDetail(
		domain.MethodFull,
		ce.TaxCalc.ComputeTax(fullBase, nonNegative(input.GrossSalary)),
		legalDeductions.Add(socialSecurity).Add(otherDeductions).Add(exemption65),
		exemption65,
	)

	// Simplified method: the flat discount replaces every itemized deduction
	simplifiedBase := nonNegative(input.GrossSalary.Sub(exemption65))
	simplifiedBase = nonNegative(simplifiedBase.Sub(rules.SimplifiedDeduction))
	simplified := newCalculationDetail(
		domain.MethodSimplified,
		ce.TaxCalc.ComputeTax(simplifiedBase, nonNegative(input.GrossSalary)),
		rules.SimplifiedDeduction.Add(exemption65),
		exemption65,
	)

	best := domain.MethodFull
	if full.NetTax.GreaterThan(simplified.NetTax) {
		best = domain.MethodSimplified
	}

	if ce.Debug {
		ce.Logger.Debugf("full: base=%s gross_tax=%s redutor=%s net=%s",
			full.CalculationBase.StringFixed(2), full.GrossTax.StringFixed(2), full.Redutor.Value.StringFixed(2), full.NetTax.StringFixed(2))
		ce.Logger.Debugf("simplified: base=%s gross_tax=%s redutor=%s net=%s",
			simplified.CalculationBase.StringFixed(2), simplified.GrossTax.StringFixed(2), simplified.Redutor.Value.StringFixed(2), simplified.NetTax.StringFixed(2))
		ce.Logger.Debugf("best method: %s", best)
	}

	return domain.ComparisonResult{
		Full:       full,
		Simplified: simplified,
		BestMethod: best,
		Savings:    full.NetTax.Sub(simplified.NetTax).Abs(),
	}
}

// Compare runs the comparison with the 2026 rules
func Compare(input domain.TaxpayerInput) domain.ComparisonResult {
	return NewCalculationEngine().Compare(input)
}

func newCalculationDetail(method domain.Method, assessment domain.TaxAssessment, deductions, exemption65 decimal.Decimal) domain.CalculationDetail {
	return domain.CalculationDetail{
		Method:           method,
		TaxAssessment:    assessment,
		Deductions:       deductions,
		Exemption65Value: exemption65,
	}
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	return decimal.Max(decimal.Zero, d)
}
