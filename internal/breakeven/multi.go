package breakeven

import (
	"context"
	"errors"
	"fmt"

	"github.com/rgehrsitz/irrf/internal/domain"
	"github.com/rgehrsitz/irrf/internal/output"
	"github.com/shopspring/decimal"
)

// SolveAll runs the crossover search and, when targetNet is set, the net income
// search for the same deduction profile. Failed searches are skipped.
func (s *Solver) SolveAll(ctx context.Context, base domain.TaxpayerInput, targetNet *decimal.Decimal) (*Summary, error) {
	requests := []Request{{Base: base, Target: TargetCrossover}}
	if targetNet != nil {
		requests = append(requests, Request{Base: base, Target: TargetNetIncome, TargetNetIncome: targetNet})
	}

	summary := &Summary{}
	for _, req := range requests {
		result, err := s.Solve(ctx, req)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil, err
			}
			s.CalcEngine.Logger.Warnf("%s search failed: %v", req.Target, err)
			summary.Recommendations = append(summary.Recommendations, recommendationForFailure(req))
			continue
		}
		summary.Results = append(summary.Results, *result)
		summary.Recommendations = append(summary.Recommendations, recommendationFor(result))
	}

	if len(summary.Results) == 0 {
		return nil, &BreakEvenError{
			Operation: "solve_all",
			Message:   "no successful searches",
		}
	}
	return summary, nil
}

func recommendationFor(r *Result) string {
	switch r.Target {
	case TargetCrossover:
		return fmt.Sprintf("A partir de %s o modelo simplificado passa a reter menos que o completo.",
			output.FormatCurrency(r.GrossSalary))
	case TargetNetIncome:
		return fmt.Sprintf("Um salário bruto de %s resulta em %s líquidos de IRRF pelo modelo %s.",
			output.FormatCurrency(r.GrossSalary), output.FormatCurrency(r.TakeHome), r.Comparison.BestMethod.Label())
	}
	return ""
}

func recommendationForFailure(req Request) string {
	if req.Target == TargetCrossover {
		return "Com estas deduções o modelo completo nunca retém mais que o simplificado."
	}
	return "Não foi possível atingir o rendimento líquido desejado na faixa pesquisada."
}
