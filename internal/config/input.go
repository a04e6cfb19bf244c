package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rgehrsitz/irrf/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of taxpayer input and rules files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a taxpayer input from a YAML or JSON file
func (ip *InputParser) LoadFromFile(filename string) (*domain.TaxpayerInput, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and validates a taxpayer input document
func (ip *InputParser) Parse(data []byte) (*domain.TaxpayerInput, error) {
	var input domain.TaxpayerInput
	if err := decodeStrict(data, &input); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateInput(&input); err != nil {
		return nil, fmt.Errorf("input validation failed: %w", err)
	}

	return &input, nil
}

// LoadRulesFromFile loads a replacement tax table from a YAML or JSON file
func (ip *InputParser) LoadRulesFromFile(filename string) (*domain.TaxRules, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file %s: %w", filename, err)
	}

	var rules domain.TaxRules
	if err := decodeStrict(data, &rules); err != nil {
		return nil, fmt.Errorf("failed to parse rules YAML: %w", err)
	}

	if err := rules.Validate(); err != nil {
		return nil, fmt.Errorf("rules validation failed: %w", err)
	}

	return &rules, nil
}

// LoadRules returns the rules from filename, or the 2026 defaults when filename is empty
func (ip *InputParser) LoadRules(filename string) (domain.TaxRules, error) {
	if filename == "" {
		return domain.DefaultRules2026(), nil
	}
	rules, err := ip.LoadRulesFromFile(filename)
	if err != nil {
		return domain.TaxRules{}, err
	}
	return *rules, nil
}

// ValidateInput rejects values the calculation would otherwise silently clamp
func (ip *InputParser) ValidateInput(input *domain.TaxpayerInput) error {
	amounts := []struct {
		name  string
		value decimal.Decimal
	}{
		{"gross salary", input.GrossSalary},
		{"alimony", input.Alimony},
		{"social security", input.SocialSecurity},
		{"other deductions", input.OtherDeductions},
	}
	for _, a := range amounts {
		if a.value.IsNegative() {
			return fmt.Errorf("%s cannot be negative", a.name)
		}
	}

	if input.Dependents < 0 {
		return fmt.Errorf("dependents cannot be negative")
	}

	return nil
}

func decodeStrict(data []byte, out any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("document is empty")
		}
		return err
	}
	return nil
}
