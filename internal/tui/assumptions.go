package tui

import (
	"github.com/rgehrsitz/hpgo/internal/domain"
	"github.com/rgehrsitz/hpgo/internal/transform"
	"github.com/rgehrsitz/hpgo/internal/tui/components"
	"github.com/shopspring/decimal"
)

// assumption binds a slider to the plan transform its value produces
type assumption struct {
	slider *components.ParameterSlider
	build  func(v decimal.Decimal) transform.PlanTransform
}

func dec(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

// widen stretches [min, max] so the plan's own value is never clamped
func widen(v, min, max decimal.Decimal) (decimal.Decimal, decimal.Decimal) {
	return decimal.Min(v, min), decimal.Max(v, max)
}

func rateAssumption(plan domain.Plan, label string, field transform.RateField, min, max, step decimal.Decimal, desc string) assumption {
	v, _ := transform.RateValue(plan, field)
	lo, hi := widen(v, min, max)
	return assumption{
		slider: components.NewParameterSlider(label, v, lo, hi, step).WithUnit("%").WithDescription(desc),
		build: func(v decimal.Decimal) transform.PlanTransform {
			return &transform.SetRate{Field: field, Value: v}
		},
	}
}

// newAssumptions returns the explorer's sliders, each starting at the plan's value
func newAssumptions(plan domain.Plan) []assumption {
	growthMin, growthMax, growthStep := dec(-10), dec(30), dec(0.5)

	out := []assumption{
		rateAssumption(plan, "House growth", transform.RateHouseGrowth, growthMin, growthMax, growthStep,
			"Yearly change in the target house price"),
		rateAssumption(plan, "Salary growth", transform.RateSalaryGrowth, growthMin, growthMax, growthStep,
			"Yearly raise on the primary income"),
		rateAssumption(plan, "Expense growth", transform.RateExpenseGrowth, growthMin, growthMax, growthStep,
			"Yearly change in living expenses"),
		rateAssumption(plan, "Investment return", transform.RateInvestmentReturn, growthMin, growthMax, growthStep,
			"Return earned on savings, compounded monthly"),
	}

	loanRate := rateAssumption(plan, "Loan rate", transform.RateLoanInterest, dec(0), dec(30), dec(0.25),
		"Bank loan interest rate")
	loanRate.slider.WithPlaces(2)
	out = append(out, loanRate)

	termLo, termHi := widen(decimal.NewFromInt(int64(plan.LoanTermYears)), dec(1), dec(40))
	out = append(out, assumption{
		slider: components.NewParameterSlider("Loan term", decimal.NewFromInt(int64(plan.LoanTermYears)), termLo, termHi, dec(1)).
			WithUnit("y").WithPlaces(0).WithDescription("Years to repay the bank loan"),
		build: func(v decimal.Decimal) transform.PlanTransform {
			return &transform.SetLoanTerm{Years: int(v.IntPart())}
		},
	})

	base := plan.YearsToPurchase
	yearsLo, yearsHi := widen(decimal.NewFromInt(int64(base)), dec(0), dec(20))
	out = append(out, assumption{
		slider: components.NewParameterSlider("Years to purchase", decimal.NewFromInt(int64(base)), yearsLo, yearsHi, dec(1)).
			WithUnit("y").WithPlaces(0).WithDescription("Target purchase year relative to today"),
		build: func(v decimal.Decimal) transform.PlanTransform {
			return &transform.DelayPurchase{Years: int(v.IntPart()) - base}
		},
	})

	out = append(out, assumption{
		slider: components.NewParameterSlider("Living expenses", decimal.Zero, dec(-50), dec(50), dec(5)).
			WithUnit("%").WithPlaces(0).WithDescription("Change to today's living expenses"),
		build: func(v decimal.Decimal) transform.PlanTransform {
			return &transform.ScaleExpenses{Percent: v}
		},
	})

	return out
}

func transformsFor(assumptions []assumption) []transform.PlanTransform {
	out := make([]transform.PlanTransform, 0, len(assumptions))
	for _, a := range assumptions {
		out = append(out, a.build(a.slider.Value))
	}
	return out
}
