package domain

import "github.com/shopspring/decimal"

// TaxpayerInput is the monthly income profile supplied by the presentation layer.
// A fresh value is built for every evaluation.
type TaxpayerInput struct {
	GrossSalary     decimal.Decimal `yaml:"gross_salary" json:"gross_salary"`
	Dependents      int             `yaml:"dependents" json:"dependents"`
	Alimony         decimal.Decimal `yaml:"alimony" json:"alimony"`
	SocialSecurity  decimal.Decimal `yaml:"social_security" json:"social_security"`
	OtherDeductions decimal.Decimal `yaml:"other_deductions" json:"other_deductions"`
	IsRetiree65Plus bool            `yaml:"is_retiree_65_plus" json:"is_retiree_65_plus"`
}

// Method identifies one of the two legal withholding methods
type Method string

const (
	// MethodFull uses itemized deductions (INSS, dependents, alimony, others).
	MethodFull Method = "full"
	// MethodSimplified replaces the itemized deductions with a flat monthly discount.
	MethodSimplified Method = "simplified"
)

// Label returns the Portuguese display name of the method
func (m Method) Label() string {
	switch m {
	case MethodFull:
		return "Cálculo Completo"
	case MethodSimplified:
		return "Cálculo Simplificado"
	default:
		return string(m)
	}
}
