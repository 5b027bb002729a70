package breakeven

import (
	"context"
	"errors"
	"fmt"

	"github.com/rgehrsitz/hpgo/internal/domain"
	"github.com/rgehrsitz/hpgo/internal/output"
)

// SolveAll runs every target (or the given subset) against one plan and
// purchase year, and derives recommendations from the results.
func (s *Solver) SolveAll(ctx context.Context, plan domain.Plan, purchaseYear *int, targets []SolveTarget) (*MultiResult, error) {
	if len(targets) == 0 {
		targets = SolveTargets()
	}

	year := plan.TargetYear()
	if purchaseYear != nil {
		year = *purchaseYear
	}

	multi := &MultiResult{PlanName: plan.Name, PurchaseYear: year}
	for _, target := range targets {
		result, err := s.Solve(ctx, Request{Plan: plan, Target: target, PurchaseYear: &year})
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil, err
			}
			return nil, &Error{
				Operation: "solve_all",
				Message:   fmt.Sprintf("target %s failed", target),
				Cause:     err,
			}
		}
		multi.Results = append(multi.Results, *result)
	}

	multi.Recommendations = recommendations(multi)
	return multi, nil
}

// Find returns the result for target, if it was solved
func (m *MultiResult) Find(target SolveTarget) (Result, bool) {
	for _, r := range m.Results {
		if r.Target == target {
			return r, true
		}
	}
	return Result{}, false
}

func recommendations(m *MultiResult) []string {
	var recs []string

	if r, ok := m.Find(SolveHousePrice); ok {
		switch {
		case !r.Feasible:
			recs = append(recs, fmt.Sprintf("No house is affordable in %d: monthly costs already exceed income", m.PurchaseYear))
		case r.Value.GreaterThanOrEqual(r.BaseValue):
			recs = append(recs, fmt.Sprintf("The target price of %s is affordable in %d with room up to %s",
				output.FormatCurrency(r.BaseValue), m.PurchaseYear, output.FormatCurrency(r.Value)))
		default:
			recs = append(recs, fmt.Sprintf("Lower the target price from %s to %s to buy in %d",
				output.FormatCurrency(r.BaseValue), output.FormatCurrency(r.Value), m.PurchaseYear))
		}
	}

	if r, ok := m.Find(SolveMonthlyIncome); ok && r.Feasible && r.Value.GreaterThan(r.BaseValue) {
		recs = append(recs, fmt.Sprintf("Or raise primary monthly income from %s to %s",
			output.FormatAmount(r.BaseValue), output.FormatAmount(r.Value)))
	}

	if r, ok := m.Find(SolveInitialSavings); ok && r.Feasible && r.Value.GreaterThan(r.BaseValue) {
		recs = append(recs, fmt.Sprintf("Or start with %s saved instead of %s",
			output.FormatCurrency(r.Value), output.FormatCurrency(r.BaseValue)))
	}

	if r, ok := m.Find(SolveLoanTerm); ok {
		switch {
		case !r.Feasible:
			recs = append(recs, "No loan term up to the search limit makes the payment fit")
		case r.Value.GreaterThan(r.BaseValue):
			recs = append(recs, fmt.Sprintf("Or stretch the loan from %s to %s years",
				r.BaseValue.String(), r.Value.String()))
		}
	}

	return recs
}
