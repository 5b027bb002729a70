package breakeven

import (
	"fmt"

	"github.com/rgehrsitz/hpgo/internal/domain"
	"github.com/shopspring/decimal"
)

// SolveTarget names the plan parameter the solver moves
type SolveTarget string

const (
	// SolveHousePrice finds the highest target house price (today's value) affordable in the purchase year
	SolveHousePrice SolveTarget = "house_price"
	// SolveMonthlyIncome finds the lowest primary monthly income that makes the purchase year affordable
	SolveMonthlyIncome SolveTarget = "monthly_income"
	// SolveInitialSavings finds the lowest starting capital that makes the purchase year affordable
	SolveInitialSavings SolveTarget = "initial_savings"
	// SolveLoanTerm finds the shortest bank loan term that makes the purchase year affordable
	SolveLoanTerm SolveTarget = "loan_term"
)

// SolveTargets lists every target in report order
func SolveTargets() []SolveTarget {
	return []SolveTarget{SolveHousePrice, SolveMonthlyIncome, SolveInitialSavings, SolveLoanTerm}
}

// ParseSolveTarget maps a CLI or API name onto a target
func ParseSolveTarget(name string) (SolveTarget, error) {
	for _, t := range SolveTargets() {
		if string(t) == name {
			return t, nil
		}
	}
	return "", &Error{Operation: "parse_target", Message: fmt.Sprintf("unknown solve target %q", name)}
}

// maximizes reports whether the target searches for the largest affordable value
func (t SolveTarget) maximizes() bool {
	return t == SolveHousePrice
}

// Bounds limit the search interval. A nil bound falls back to the target's default.
type Bounds struct {
	Min *decimal.Decimal `json:"min,omitempty" yaml:"min,omitempty"`
	Max *decimal.Decimal `json:"max,omitempty" yaml:"max,omitempty"`
}

// Request defines one solver run
type Request struct {
	Plan   domain.Plan
	Target SolveTarget
	// PurchaseYear is the calendar year that must become affordable; nil means the plan's target year
	PurchaseYear *int
	Bounds       Bounds
}

// Result is the outcome of one solver run
type Result struct {
	Target       SolveTarget     `json:"target" yaml:"target"`
	PurchaseYear int             `json:"purchaseYear" yaml:"purchase_year"`
	BaseValue    decimal.Decimal `json:"baseValue" yaml:"base_value"`
	Value        decimal.Decimal `json:"value" yaml:"value"`
	// Feasible is false when no value inside the bounds makes the purchase year affordable
	Feasible bool `json:"feasible" yaml:"feasible"`
	// AtBound is true when the whole search interval is affordable and Value is the bound itself
	AtBound         bool                `json:"atBound" yaml:"at_bound"`
	Iterations      int                 `json:"iterations" yaml:"iterations"`
	ConvergenceInfo string              `json:"convergenceInfo" yaml:"convergence_info"`
	Summary         *domain.LoanSummary `json:"summary,omitempty" yaml:"summary,omitempty"`
}

// Change returns Value minus BaseValue
func (r Result) Change() decimal.Decimal {
	return r.Value.Sub(r.BaseValue)
}

// MultiResult collects runs for several targets against one plan
type MultiResult struct {
	PlanName        string   `json:"planName" yaml:"plan_name"`
	PurchaseYear    int      `json:"purchaseYear" yaml:"purchase_year"`
	Results         []Result `json:"results" yaml:"results"`
	Recommendations []string `json:"recommendations" yaml:"recommendations"`
}

// SolverOptions configures the search
type SolverOptions struct {
	Tolerance     decimal.Decimal // Width of the final interval for continuous targets
	MaxIterations int
	// MaxExpansions caps how often an open upper bound may double while searching for a bracket
	MaxExpansions int
}

// DefaultSolverOptions returns default solver configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		Tolerance:     decimal.NewFromFloat(0.01),
		MaxIterations: 100,
		MaxExpansions: 40,
	}
}

// Validate checks that the options can drive a search
func (o SolverOptions) Validate() error {
	if !o.Tolerance.IsPositive() {
		return &Error{Operation: "validate_options", Message: fmt.Sprintf("tolerance must be positive, got %s", o.Tolerance)}
	}
	if o.MaxIterations <= 0 {
		return &Error{Operation: "validate_options", Message: fmt.Sprintf("max iterations must be positive, got %d", o.MaxIterations)}
	}
	return nil
}

// Validate checks the bounds against each other
func (b Bounds) Validate() error {
	if b.Min != nil && b.Min.IsNegative() {
		return &Error{Operation: "validate_bounds", Message: fmt.Sprintf("minimum must be non-negative, got %s", b.Min)}
	}
	if b.Min != nil && b.Max != nil && b.Min.GreaterThan(*b.Max) {
		return &Error{Operation: "validate_bounds", Message: fmt.Sprintf("minimum %s exceeds maximum %s", b.Min, b.Max)}
	}
	return nil
}

// Error represents errors from the solver
type Error struct {
	Operation string
	Message   string
	Cause     error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}
