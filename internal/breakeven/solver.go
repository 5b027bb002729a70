package breakeven

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/hpgo/internal/affordability"
	"github.com/rgehrsitz/hpgo/internal/calculation"
	"github.com/rgehrsitz/hpgo/internal/domain"
	"github.com/rgehrsitz/hpgo/internal/transform"
	"github.com/shopspring/decimal"
)

// maxSolveYears caps how far past the base year a purchase year may lie
const maxSolveYears = domain.MaxPlanYears

const (
	defaultMinTerm = 1
	defaultMaxTerm = 40
)

var two = decimal.NewFromInt(2)

// Solver searches for the plan value at which a purchase year becomes affordable.
// Every search relies on affordability being monotone in the moved value: a
// dearer house never helps, more income or capital never hurts, and a longer
// term never raises the first payment.
type Solver struct {
	CalcEngine *calculation.CalculationEngine
	Options    SolverOptions
}

// NewSolver creates a new solver
func NewSolver(calcEngine *calculation.CalculationEngine, options SolverOptions) *Solver {
	if calcEngine == nil {
		calcEngine = calculation.NewCalculationEngine()
	}
	return &Solver{
		CalcEngine: calcEngine,
		Options:    options,
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(calcEngine *calculation.CalculationEngine) *Solver {
	return NewSolver(calcEngine, DefaultSolverOptions())
}

// Solve runs one search
func (s *Solver) Solve(ctx context.Context, req Request) (*Result, error) {
	if err := s.Options.Validate(); err != nil {
		return nil, err
	}
	if err := req.Bounds.Validate(); err != nil {
		return nil, err
	}

	year := req.Plan.TargetYear()
	if req.PurchaseYear != nil {
		year = *req.PurchaseYear
	}
	offset := year - req.Plan.BaseYear
	if offset < 0 || offset > maxSolveYears {
		return nil, &Error{
			Operation: "solve",
			Message:   fmt.Sprintf("purchase year %d is outside %d..%d", year, req.Plan.BaseYear, req.Plan.BaseYear+maxSolveYears),
			Cause:     domain.ErrPurchaseYearOutOfRange,
		}
	}

	p := probe{
		engine:  s.CalcEngine,
		plan:    req.Plan,
		target:  req.Target,
		year:    year,
		horizon: max(req.Plan.Horizon(), offset),
	}

	switch req.Target {
	case SolveHousePrice, SolveMonthlyIncome, SolveInitialSavings:
		return s.solveAmount(ctx, p, req.Bounds)
	case SolveLoanTerm:
		return s.solveTerm(ctx, p, req.Bounds)
	default:
		return nil, &Error{
			Operation: "solve",
			Message:   fmt.Sprintf("unsupported solve target: %s", req.Target),
		}
	}
}

// probe evaluates the purchase-year row of the plan with one value substituted
type probe struct {
	engine  *calculation.CalculationEngine
	plan    domain.Plan
	target  SolveTarget
	year    int
	horizon int
}

func (p probe) baseValue() decimal.Decimal {
	switch p.target {
	case SolveHousePrice:
		return p.plan.TargetHousePrice
	case SolveMonthlyIncome:
		return p.plan.MonthlyIncome
	case SolveInitialSavings:
		return p.plan.InitialSavings
	case SolveLoanTerm:
		return decimal.NewFromInt(int64(p.plan.LoanTermYears))
	}
	return decimal.Zero
}

func (p probe) transformFor(v decimal.Decimal) transform.PlanTransform {
	switch p.target {
	case SolveHousePrice:
		return &transform.SetHousePrice{Price: v}
	case SolveMonthlyIncome:
		return &transform.SetMonthlyIncome{Amount: v}
	case SolveInitialSavings:
		return &transform.SetInitialSavings{Amount: v}
	default:
		return &transform.SetLoanTerm{Years: int(v.IntPart())}
	}
}

func (p probe) evaluate(v decimal.Decimal) (domain.ProjectionRow, error) {
	plan, err := transform.ApplyTransforms(p.plan, []transform.PlanTransform{p.transformFor(v)})
	if err != nil {
		return domain.ProjectionRow{}, &Error{
			Operation: "solve_" + string(p.target),
			Message:   "failed to apply transform",
			Cause:     err,
		}
	}
	row, ok := domain.FindRow(p.engine.Project(plan, p.horizon), p.year)
	if !ok {
		return domain.ProjectionRow{}, &Error{
			Operation: "solve_" + string(p.target),
			Message:   fmt.Sprintf("no projection row for %d", p.year),
			Cause:     domain.ErrPurchaseYearOutOfRange,
		}
	}
	return row, nil
}

func (p probe) result(v decimal.Decimal, row domain.ProjectionRow, iterations int, info string) *Result {
	summary := affordability.SummarizeLoan(row)
	return &Result{
		Target:          p.target,
		PurchaseYear:    p.year,
		BaseValue:       p.baseValue(),
		Value:           v,
		Feasible:        row.IsAffordable,
		Iterations:      iterations,
		ConvergenceInfo: info,
		Summary:         &summary,
	}
}

// solveAmount bisects a continuous value. House price is maximized, the
// other amounts are minimized.
func (s *Solver) solveAmount(ctx context.Context, p probe, bounds Bounds) (*Result, error) {
	maximize := p.target.maximizes()

	lo := decimal.Zero
	if bounds.Min != nil {
		lo = *bounds.Min
	}
	open := bounds.Max == nil
	hi := decimal.Max(p.baseValue().Mul(two), lo.Add(decimal.NewFromInt(1)))
	if !open {
		hi = *bounds.Max
	}

	loRow, err := p.evaluate(lo)
	if err != nil {
		return nil, err
	}
	hiRow, err := p.evaluate(hi)
	if err != nil {
		return nil, err
	}

	if maximize {
		if !loRow.IsAffordable {
			return p.result(lo, loRow, 0, "Not affordable at the lower bound"), nil
		}
		for expansions := 0; open && hiRow.IsAffordable && expansions < s.Options.MaxExpansions; expansions++ {
			lo, loRow = hi, hiRow
			hi = hi.Mul(two)
			if hiRow, err = p.evaluate(hi); err != nil {
				return nil, err
			}
		}
		if hiRow.IsAffordable {
			r := p.result(hi, hiRow, 0, "Affordable across the whole interval")
			r.AtBound = true
			return r, nil
		}
	} else {
		if loRow.IsAffordable {
			r := p.result(lo, loRow, 0, "Already affordable at the lower bound")
			r.AtBound = true
			return r, nil
		}
		for expansions := 0; open && !hiRow.IsAffordable && expansions < s.Options.MaxExpansions; expansions++ {
			lo, loRow = hi, hiRow
			hi = hi.Mul(two)
			if hiRow, err = p.evaluate(hi); err != nil {
				return nil, err
			}
		}
		if !hiRow.IsAffordable {
			return p.result(hi, hiRow, 0, "Not affordable at the upper bound"), nil
		}
	}

	// Bracket holds: the affordable end is lo when maximizing, hi otherwise
	iterations := 0
	info := "Binary search converged"
	for hi.Sub(lo).GreaterThan(s.Options.Tolerance) {
		if iterations >= s.Options.MaxIterations {
			info = fmt.Sprintf("Max iterations (%d) reached", s.Options.MaxIterations)
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		iterations++

		mid := lo.Add(hi).Div(two)
		row, err := p.evaluate(mid)
		if err != nil {
			return nil, err
		}
		if row.IsAffordable == maximize {
			lo, loRow = mid, row
		} else {
			hi, hiRow = mid, row
		}
	}

	if maximize {
		return p.result(lo, loRow, iterations, info), nil
	}
	return p.result(hi, hiRow, iterations, info), nil
}

// solveTerm bisects whole loan-term years for the shortest affordable term
func (s *Solver) solveTerm(ctx context.Context, p probe, bounds Bounds) (*Result, error) {
	lo, hi := int64(defaultMinTerm), int64(defaultMaxTerm)
	if bounds.Min != nil {
		lo = max(bounds.Min.Ceil().IntPart(), defaultMinTerm)
	}
	if bounds.Max != nil {
		hi = bounds.Max.Floor().IntPart()
	}
	if hi < lo {
		return nil, &Error{
			Operation: "solve_loan_term",
			Message:   fmt.Sprintf("no whole term between %d and %d years", lo, hi),
		}
	}

	loRow, err := p.evaluate(decimal.NewFromInt(lo))
	if err != nil {
		return nil, err
	}
	if loRow.IsAffordable {
		r := p.result(decimal.NewFromInt(lo), loRow, 0, "Already affordable at the shortest term")
		r.AtBound = true
		return r, nil
	}
	hiRow, err := p.evaluate(decimal.NewFromInt(hi))
	if err != nil {
		return nil, err
	}
	if !hiRow.IsAffordable {
		return p.result(decimal.NewFromInt(hi), hiRow, 0, "Not affordable at the longest term"), nil
	}

	iterations := 0
	for hi-lo > 1 {
		if iterations >= s.Options.MaxIterations {
			r := p.result(decimal.NewFromInt(hi), hiRow, iterations,
				fmt.Sprintf("Max iterations (%d) reached", s.Options.MaxIterations))
			return r, nil
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		iterations++

		mid := (lo + hi) / 2
		row, err := p.evaluate(decimal.NewFromInt(mid))
		if err != nil {
			return nil, err
		}
		if row.IsAffordable {
			hi, hiRow = mid, row
		} else {
			lo = mid
		}
	}

	return p.result(decimal.NewFromInt(hi), hiRow, iterations, "Binary search converged"), nil
}
