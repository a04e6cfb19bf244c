// Prints the itemized and closed-form tax at every bracket boundary and at the
// redutor ceilings, so table edits can be eyeballed before release.
package main

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/irrf/internal/calculation"
	"github.com/rgehrsitz/irrf/internal/config"
	"github.com/rgehrsitz/irrf/internal/output"
)

func main() {
	rulesFile := ""
	if len(os.Args) > 1 {
		rulesFile = os.Args[1]
	}

	rules, err := config.NewInputParser().LoadRules(rulesFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	te := calculation.NewTaxEngine(rules)

	cent := decimal.New(1, -2)
	points := []decimal.Decimal{}
	for _, b := range rules.Brackets {
		if b.IsUnbounded() {
			continue
		}
		points = append(points, *b.Limit, b.Limit.Add(cent))
	}

	fmt.Printf("%-16s %-8s %14s %14s %10s\n", "Base", "Faixa", "Itemizado", "Fórmula", "Diferença")
	for _, base := range points {
		itemized := te.ComputeTax(base, base).GrossTax
		closed := te.ClosedFormTax(base)
		fmt.Printf("%-16s %-8d %14s %14s %10s\n",
			output.FormatCurrency(base), te.BracketFor(base)+1,
			itemized.StringFixed(4), closed.StringFixed(4), itemized.Sub(closed).StringFixed(4))
	}

	fmt.Println()
	for _, gross := range []decimal.Decimal{
		rules.Redutor.FullExemptionCeiling,
		rules.Redutor.FullExemptionCeiling.Add(cent),
		rules.Redutor.PhaseOutCeiling,
		rules.Redutor.PhaseOutCeiling.Add(cent),
	} {
		a := te.ComputeTax(gross, gross)
		fmt.Printf("%-16s redutor %s | %s\n", output.FormatCurrency(gross), output.FormatCurrency(a.Redutor.Value), a.Redutor.Explanation)
	}
}
