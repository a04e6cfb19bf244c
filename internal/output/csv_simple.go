package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/rgehrsitz/irrf/internal/domain"
	"github.com/samber/lo"
)

// CSVSummarizer writes one row per method.
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(result *domain.ComparisonResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Method", "Best", "CalculationBase", "Deductions", "Exemption65", "GrossTax", "Redutor", "NetTax", "EffectiveRate", "Savings"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, d := range []domain.CalculationDetail{result.Full, result.Simplified} {
		row := []string{
			string(d.Method),
			strconv.FormatBool(d.Method == result.BestMethod),
			d.CalculationBase.StringFixed(2),
			d.Deductions.StringFixed(2),
			d.Exemption65Value.StringFixed(2),
			d.GrossTax.StringFixed(2),
			d.Redutor.Value.StringFixed(2),
			d.NetTax.StringFixed(2),
			d.EffectiveRate.StringFixed(4),
			result.Savings.StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// CSVBracketFormatter writes the per-bracket allocation of both methods.
type CSVBracketFormatter struct{}

func (c CSVBracketFormatter) Name() string { return "csv-brackets" }

func (c CSVBracketFormatter) Format(result *domain.ComparisonResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"Method", "Bracket", "Range", "Rate", "AllocatedAmount", "TaxAmount"}); err != nil {
		return nil, err
	}

	rows := lo.FlatMap([]domain.CalculationDetail{result.Full, result.Simplified}, func(d domain.CalculationDetail, _ int) [][]string {
		return lo.Map(d.Brackets, func(b domain.BracketAllocation, i int) []string {
			return []string{
				string(d.Method),
				strconv.Itoa(i + 1),
				b.Range,
				b.Rate.String(),
				b.AllocatedAmount.StringFixed(2),
				b.TaxAmount.StringFixed(2),
			}
		})
	})
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
