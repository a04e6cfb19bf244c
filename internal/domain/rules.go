package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// TaxRules holds every year-specific legal parameter used by the IRRF calculation.
// A TaxRules value is treated as immutable once built; engines copy it on construction.
type TaxRules struct {
	Year                int             `yaml:"year" json:"year"`
	Description         string          `yaml:"description,omitempty" json:"description,omitempty"`
	Brackets            []BracketRule   `yaml:"brackets" json:"brackets"`
	DependentDeduction  decimal.Decimal `yaml:"dependent_deduction" json:"dependent_deduction"`
	SimplifiedDeduction decimal.Decimal `yaml:"simplified_deduction" json:"simplified_deduction"`
	Exemption65Plus     decimal.Decimal `yaml:"exemption_65_plus" json:"exemption_65_plus"`
	Redutor             RedutorPolicy   `yaml:"redutor" json:"redutor"`
}

// BracketRule is one progressive tier of the monthly table. A nil Limit marks the
// unbounded top tier. Deduction is the "parcela a deduzir" for the closed-form shortcut.
type BracketRule struct {
	Limit     *decimal.Decimal `yaml:"limit" json:"limit"`
	Rate      decimal.Decimal  `yaml:"rate" json:"rate"`
	Deduction decimal.Decimal  `yaml:"deduction" json:"deduction"`
}

// IsUnbounded reports whether the bracket has no upper limit
func (b BracketRule) IsUnbounded() bool {
	return b.Limit == nil
}

// RedutorPolicy describes the transitional abatement introduced for 2026.
//
// Income up to FullExemptionCeiling has the whole gross tax abated. Between the two
// ceilings the abatement is Constant - Coefficient*income, floored at zero and capped
// at the gross tax. Above PhaseOutCeiling there is no abatement.
type RedutorPolicy struct {
	FullExemptionCeiling decimal.Decimal `yaml:"full_exemption_ceiling" json:"full_exemption_ceiling"`
	PhaseOutCeiling      decimal.Decimal `yaml:"phase_out_ceiling" json:"phase_out_ceiling"`
	Constant             decimal.Decimal `yaml:"constant" json:"constant"`
	Coefficient          decimal.Decimal `yaml:"coefficient" json:"coefficient"`
}

func mustDecimal(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func limitOf(s string) *decimal.Decimal {
	d := mustDecimal(s)
	return &d
}

// DefaultRules2026 returns the monthly IRRF table and constants in force for 2026
// (Lei nº 15.270/2025, IN RFB nº 2.299/2025).
func DefaultRules2026() TaxRules {
	return TaxRules{
		Year:        2026,
		Description: "IRRF mensal 2026 - Lei nº 15.270/2025 e IN RFB nº 2.299/2025",
		Brackets: []BracketRule{
			{Limit: limitOf("2428.80"), Rate: decimal.Zero, Deduction: decimal.Zero},
			{Limit: limitOf("2826.65"), Rate: mustDecimal("0.075"), Deduction: mustDecimal("182.16")},
			{Limit: limitOf("3751.05"), Rate: mustDecimal("0.15"), Deduction: mustDecimal("394.16")},
			{Limit: limitOf("4664.68"), Rate: mustDecimal("0.225"), Deduction: mustDecimal("675.48")},
			{Limit: nil, Rate: mustDecimal("0.275"), Deduction: mustDecimal("908.72")},
		},
		DependentDeduction:  mustDecimal("189.59"),
		SimplifiedDeduction: mustDecimal("607.20"),
		Exemption65Plus:     mustDecimal("1903.98"),
		Redutor: RedutorPolicy{
			FullExemptionCeiling: mustDecimal("5000.00"),
			PhaseOutCeiling:      mustDecimal("7350.00"),
			Constant:             mustDecimal("978.62"),
			Coefficient:          mustDecimal("0.133145"),
		},
	}
}

// Clone returns a deep copy so callers cannot alias bracket limits.
func (r TaxRules) Clone() TaxRules {
	out := r
	out.Brackets = make([]BracketRule, len(r.Brackets))
	for i, b := range r.Brackets {
		out.Brackets[i] = b
		if b.Limit != nil {
			l := *b.Limit
			out.Brackets[i].Limit = &l
		}
	}
	return out
}

// Validate checks the structural invariants of the table.
func (r TaxRules) Validate() error {
	if len(r.Brackets) == 0 {
		return fmt.Errorf("at least one bracket is required")
	}

	unbounded := 0
	for i, b := range r.Brackets {
		if b.Rate.IsNegative() || b.Rate.GreaterThan(decimal.NewFromInt(1)) {
			return fmt.Errorf("bracket %d: rate must be between 0 and 1", i)
		}
		if b.Deduction.IsNegative() {
			return fmt.Errorf("bracket %d: deduction cannot be negative", i)
		}
		if b.IsUnbounded() {
			unbounded++
			if i != len(r.Brackets)-1 {
				return fmt.Errorf("bracket %d: only the last bracket may be unbounded", i)
			}
		} else if !b.Limit.IsPositive() {
			return fmt.Errorf("bracket %d: limit must be positive", i)
		}
		if i == 0 {
			continue
		}
		prev := r.Brackets[i-1]
		if !b.Rate.GreaterThan(prev.Rate) {
			return fmt.Errorf("bracket %d: rates must be strictly increasing", i)
		}
		if !b.IsUnbounded() && !b.Limit.GreaterThan(*prev.Limit) {
			return fmt.Errorf("bracket %d: limits must be strictly increasing", i)
		}
	}
	if unbounded != 1 {
		return fmt.Errorf("exactly one unbounded bracket is required, found %d", unbounded)
	}

	if r.DependentDeduction.IsNegative() {
		return fmt.Errorf("dependent deduction cannot be negative")
	}
	if r.SimplifiedDeduction.IsNegative() {
		return fmt.Errorf("simplified deduction cannot be negative")
	}
	if r.Exemption65Plus.IsNegative() {
		return fmt.Errorf("65+ exemption cannot be negative")
	}
	if err := r.Redutor.Validate(); err != nil {
		return fmt.Errorf("redutor: %w", err)
	}
	return nil
}

// Validate checks the redutor thresholds and coefficients
func (p RedutorPolicy) Validate() error {
	if p.FullExemptionCeiling.IsNegative() {
		return fmt.Errorf("full exemption ceiling cannot be negative")
	}
	if !p.PhaseOutCeiling.GreaterThan(p.FullExemptionCeiling) {
		return fmt.Errorf("phase-out ceiling must be greater than full exemption ceiling")
	}
	if p.Constant.IsNegative() || p.Coefficient.IsNegative() {
		return fmt.Errorf("constant and coefficient cannot be negative")
	}
	return nil
}
