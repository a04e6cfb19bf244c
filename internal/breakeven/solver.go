package breakeven

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/irrf/internal/calculation"
	"github.com/rgehrsitz/irrf/internal/domain"
	"github.com/shopspring/decimal"
)

// Solver searches gross salaries with repeated comparisons
type Solver struct {
	CalcEngine *calculation.CalculationEngine
	Options    SolverOptions
}

// NewSolver creates a new break-even solver
func NewSolver(calcEngine *calculation.CalculationEngine, options SolverOptions) *Solver {
	return &Solver{
		CalcEngine: calcEngine,
		Options:    options,
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(calcEngine *calculation.CalculationEngine) *Solver {
	return NewSolver(calcEngine, DefaultSolverOptions())
}

// Solve runs the search described by req
func (s *Solver) Solve(ctx context.Context, req Request) (*Result, error) {
	if req.MinGross.IsZero() && req.MaxGross.IsZero() {
		req.MinGross = s.Options.MinGross
		req.MaxGross = s.Options.MaxGross
	}
	if req.MaxIterations == 0 {
		req.MaxIterations = s.Options.MaxIterations
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var pred func(domain.ComparisonResult, decimal.Decimal) bool
	switch req.Target {
	case TargetCrossover:
		pred = func(r domain.ComparisonResult, _ decimal.Decimal) bool {
			return r.BestMethod == domain.MethodSimplified
		}
	case TargetNetIncome:
		target := *req.TargetNetIncome
		pred = func(r domain.ComparisonResult, gross decimal.Decimal) bool {
			return takeHome(r, gross).GreaterThanOrEqual(target)
		}
	}

	return s.bisect(ctx, req, pred)
}

// bisect finds the smallest salary, at the solver resolution, for which pred holds.
// pred must be false at MinGross and true at MaxGross.
func (s *Solver) bisect(ctx context.Context, req Request, pred func(domain.ComparisonResult, decimal.Decimal) bool) (*Result, error) {
	operation := "solve_" + string(req.Target)
	evaluate := func(gross decimal.Decimal) (domain.ComparisonResult, bool) {
		input := req.Base
		input.GrossSalary = gross
		r := s.CalcEngine.Compare(input)
		return r, pred(r, gross)
	}

	lo, hi := req.MinGross, req.MaxGross
	if r, ok := evaluate(lo); ok {
		return s.newResult(req, lo, r, 0, "condition already holds at the minimum salary"), nil
	}
	hiResult, ok := evaluate(hi)
	if !ok {
		return nil, &BreakEvenError{
			Operation: operation,
			Message:   fmt.Sprintf("condition never holds between %s and %s", lo.StringFixed(2), hi.StringFixed(2)),
		}
	}

	two := decimal.NewFromInt(2)
	places := -s.Options.Resolution.Exponent()
	iterations := 0
	for hi.Sub(lo).GreaterThan(s.Options.Resolution) {
		if iterations >= req.MaxIterations {
			result := s.newResult(req, hi, hiResult, iterations, fmt.Sprintf("Max iterations (%d) reached", req.MaxIterations))
			result.Success = false
			return result, nil
		}
		iterations++

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		mid := lo.Add(hi).Div(two).RoundFloor(places)
		if !mid.GreaterThan(lo) || !mid.LessThan(hi) {
			break
		}
		if r, ok := evaluate(mid); ok {
			hi, hiResult = mid, r
		} else {
			lo = mid
		}
	}

	if s.CalcEngine.Debug {
		s.CalcEngine.Logger.Debugf("%s converged at %s after %d iterations", operation, hi.StringFixed(2), iterations)
	}
	return s.newResult(req, hi, hiResult, iterations, "Binary search converged"), nil
}

func (s *Solver) newResult(req Request, gross decimal.Decimal, r domain.ComparisonResult, iterations int, info string) *Result {
	return &Result{
		Request:         req,
		Target:          req.Target,
		Success:         true,
		Iterations:      iterations,
		ConvergenceInfo: info,
		GrossSalary:     gross,
		TakeHome:        takeHome(r, gross),
		Comparison:      r,
	}
}

// takeHome is the gross salary minus the withholding of the cheaper method
func takeHome(r domain.ComparisonResult, gross decimal.Decimal) decimal.Decimal {
	return gross.Sub(r.Best().NetTax)
}
