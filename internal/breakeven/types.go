package breakeven

import (
	"github.com/rgehrsitz/irrf/internal/domain"
	"github.com/shopspring/decimal"
)

// Target defines what salary the solver searches for
type Target string

const (
	// TargetCrossover is the lowest gross salary at which the simplified method is
	// strictly cheaper than the full method for the given deduction profile.
	TargetCrossover Target = "crossover"
	// TargetNetIncome is the lowest gross salary whose take-home pay (gross minus the
	// withholding of the best method) reaches a target.
	TargetNetIncome Target = "net_income"
)

// Request defines the parameters for one solver run
type Request struct {
	Base            domain.TaxpayerInput // Deduction profile; GrossSalary is ignored
	Target          Target
	TargetNetIncome *decimal.Decimal // Required for TargetNetIncome
	MinGross        decimal.Decimal
	MaxGross        decimal.Decimal
	MaxIterations   int // Zero uses the solver default
}

// Result contains the outcome of a solver run
type Result struct {
	Request         Request                 `json:"-"`
	Target          Target                  `json:"target"`
	Success         bool                    `json:"success"`
	Iterations      int                     `json:"iterations"`
	ConvergenceInfo string                  `json:"convergenceInfo"`
	GrossSalary     decimal.Decimal         `json:"grossSalary"`
	TakeHome        decimal.Decimal         `json:"takeHome"`
	Comparison      domain.ComparisonResult `json:"comparison"`
}

// Summary contains every successful run of SolveAll
type Summary struct {
	Results         []Result `json:"results"`
	Recommendations []string `json:"recommendations"`
}

// SolverOptions configures the search
type SolverOptions struct {
	Resolution    decimal.Decimal // Smallest salary step; the search stops below it
	MaxIterations int
	MinGross      decimal.Decimal // Default lower bound when a request leaves both bounds zero
	MaxGross      decimal.Decimal // Default upper bound
}

// DefaultSolverOptions returns a one-cent search between zero and R$ 100.000,00
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		Resolution:    decimal.New(1, -2),
		MaxIterations: 64,
		MinGross:      decimal.Zero,
		MaxGross:      decimal.NewFromInt(100000),
	}
}

// Validate checks that the request can be searched
func (r *Request) Validate() error {
	switch r.Target {
	case TargetCrossover:
	case TargetNetIncome:
		if r.TargetNetIncome == nil || !r.TargetNetIncome.IsPositive() {
			return &BreakEvenError{
				Operation: "validate_request",
				Message:   "a positive target net income is required",
			}
		}
	default:
		return &BreakEvenError{
			Operation: "validate_request",
			Message:   "unsupported target: " + string(r.Target),
		}
	}

	if r.MinGross.IsNegative() {
		return &BreakEvenError{
			Operation: "validate_request",
			Message:   "minimum gross salary cannot be negative",
		}
	}
	if !r.MaxGross.GreaterThan(r.MinGross) {
		return &BreakEvenError{
			Operation: "validate_request",
			Message:   "maximum gross salary must be greater than the minimum",
		}
	}
	return nil
}

// BreakEvenError represents errors from the break-even solver
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *BreakEvenError) Unwrap() error {
	return e.Cause
}
