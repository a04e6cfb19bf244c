package calculation

import (
	"fmt"

	"github.com/rgehrsitz/irrf/internal/domain"
	"github.com/shopspring/decimal"
)

// TAX ENGINE ASSUMPTIONS:
//
// 1. Monthly table only: brackets, deductions and the redutor are monthly figures.
//
// 2. The redutor reference income is the gross salary for both methods, not the
//    calculation base. The simplified method therefore gets the same abatement tier
//    as the full method even though its base already nets out the 65+ exemption.
//
// 3. No rounding is applied to intermediate values; display layers round to cents.

// TaxEngine allocates a calculation base across the progressive brackets and applies
// the redutor. It holds no mutable state and is safe for concurrent use.
type TaxEngine struct {
	rules domain.TaxRules
}

// NewTaxEngine creates a tax engine for the given rules
func NewTaxEngine(rules domain.TaxRules) *TaxEngine {
	return &TaxEngine{rules: rules.Clone()}
}

// NewTaxEngine2026 creates a tax engine with the 2026 monthly table
func NewTaxEngine2026() *TaxEngine {
	return NewTaxEngine(domain.DefaultRules2026())
}

// Rules returns a copy of the rules in use
func (te *TaxEngine) Rules() domain.TaxRules {
	return te.rules.Clone()
}

// ComputeTax computes the itemized tax for a calculation base. grossSalary is only
// used for the redutor tier and the effective rate. Callers must clamp both inputs
// at zero.
func (te *TaxEngine) ComputeTax(calculationBase, grossSalary decimal.Decimal) domain.TaxAssessment {
	brackets, grossTax := te.allocateBrackets(calculationBase)

	redutor := te.CalculateRedutor(grossSalary, grossTax)
	netTax := decimal.Max(decimal.Zero, grossTax.Sub(redutor.Value))

	effectiveRate := decimal.Zero
	if grossSalary.GreaterThan(decimal.Zero) {
		effectiveRate = netTax.Div(grossSalary)
	}

	return domain.TaxAssessment{
		CalculationBase: calculationBase,
		Brackets:        brackets,
		GrossTax:        grossTax,
		Redutor:         redutor,
		NetTax:          netTax,
		EffectiveRate:   effectiveRate,
	}
}

// allocateBrackets walks the table once, returning the per-bracket breakdown and the
// gross tax before abatement.
func (te *TaxEngine) allocateBrackets(base decimal.Decimal) ([]domain.BracketAllocation, decimal.Decimal) {
	allocations := make([]domain.BracketAllocation, 0, len(te.rules.Brackets))
	grossTax := decimal.Zero
	previousLimit := decimal.Zero

	for _, bracket := range te.rules.Brackets {
		allocated := decimal.Zero
		if base.GreaterThan(previousLimit) {
			top := base
			if !bracket.IsUnbounded() {
				top = decimal.Min(base, *bracket.Limit)
			}
			allocated = decimal.Max(decimal.Zero, top.Sub(previousLimit))
		}

		taxInBracket := allocated.Mul(bracket.Rate)
		grossTax = grossTax.Add(taxInBracket)

		allocations = append(allocations, domain.BracketAllocation{
			Range:           rangeLabel(previousLimit, bracket),
			Rate:            bracket.Rate,
			AllocatedAmount: allocated,
			TaxAmount:       taxInBracket,
		})

		// the unbounded tier is always last
		if !bracket.IsUnbounded() {
			previousLimit = *bracket.Limit
		}
	}

	return allocations, grossTax
}

func rangeLabel(bottom decimal.Decimal, bracket domain.BracketRule) string {
	if bracket.IsUnbounded() {
		return fmt.Sprintf("Acima de R$ %s", domain.FormatAmount(bottom))
	}
	return fmt.Sprintf("De R$ %s a R$ %s", domain.FormatAmount(bottom), domain.FormatAmount(*bracket.Limit))
}

// CalculateRedutor returns the abatement for a gross salary given the gross tax already
// computed for the base. The result never exceeds grossTax and is never negative.
func (te *TaxEngine) CalculateRedutor(grossSalary, grossTax decimal.Decimal) domain.RedutorResult {
	policy := te.rules.Redutor

	if grossSalary.LessThanOrEqual(policy.FullExemptionCeiling) {
		return domain.RedutorResult{
			Value: decimal.Max(decimal.Zero, grossTax),
			Explanation: fmt.Sprintf("Rendimentos (R$ %s) até R$ %s: Isenção total concedida pelo Redutor.",
				domain.FormatAmount(grossSalary), domain.FormatAmount(policy.FullExemptionCeiling)),
		}
	}

	if grossSalary.LessThanOrEqual(policy.PhaseOutCeiling) {
		formulaValue := policy.Constant.Sub(policy.Coefficient.Mul(grossSalary))
		value := decimal.Min(decimal.Max(formulaValue, decimal.Zero), decimal.Max(decimal.Zero, grossTax))

		note := ""
		if formulaValue.GreaterThan(grossTax) {
			note = " (Limitado ao valor do Imposto Bruto)"
		}
		if formulaValue.IsNegative() {
			note = " (Calculado resultou negativo, assumido zero)"
		}

		return domain.RedutorResult{
			Value: value,
			Explanation: fmt.Sprintf("Fórmula: %s - (%s x %s) = %s%s.",
				domain.FormatAmount(policy.Constant),
				domain.FormatExact(policy.Coefficient),
				domain.FormatAmount(grossSalary),
				domain.FormatAmount(formulaValue),
				note),
		}
	}

	return domain.RedutorResult{
		Value: decimal.Zero,
		Explanation: fmt.Sprintf("Rendimentos (R$ %s) acima de R$ %s: Redutor não aplicável.",
			domain.FormatAmount(grossSalary), domain.FormatAmount(policy.PhaseOutCeiling)),
	}
}

// BracketFor returns the index of the bracket that contains base
func (te *TaxEngine) BracketFor(base decimal.Decimal) int {
	for i, bracket := range te.rules.Brackets {
		if bracket.IsUnbounded() || base.LessThanOrEqual(*bracket.Limit) {
			return i
		}
	}
	return len(te.rules.Brackets) - 1
}

// ClosedFormTax applies the classic "rate x base - deduction" shortcut for the single
// bracket containing base. The published deduction constants are rounded to cents, so
// the result can differ from the itemized gross tax by a fraction of a cent.
func (te *TaxEngine) ClosedFormTax(base decimal.Decimal) decimal.Decimal {
	if base.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	bracket := te.rules.Brackets[te.BracketFor(base)]
	return decimal.Max(decimal.Zero, base.Mul(bracket.Rate).Sub(bracket.Deduction))
}
