package calculation

import (
	"github.com/shopspring/decimal"
)

// SavingsTranches splits cumulative savings into capital grown from the
// initial balance and capital grown from monthly contributions. Both
// tranches are kept non-negative.
type SavingsTranches struct {
	FromInitial decimal.Decimal
	FromMonthly decimal.Decimal
}

// NewSavingsTranches starts the accumulator from an initial balance
func NewSavingsTranches(initial decimal.Decimal) SavingsTranches {
	return SavingsTranches{FromInitial: maxZero(initial), FromMonthly: decimalZero}
}

// Total returns cumulative savings
func (t SavingsTranches) Total() decimal.Decimal {
	return t.FromInitial.Add(t.FromMonthly)
}

// Deposit adds one uncompounded contribution. A negative amount is a withdrawal.
func (t SavingsTranches) Deposit(amount decimal.Decimal) SavingsTranches {
	t.FromMonthly = t.FromMonthly.Add(amount)
	return t.settle()
}

// Advance moves the accumulator forward twelve months, from one plan
// anniversary to the next. startMonth (1..12) is the calendar month the plan
// was created in: the first 12-startMonth months of the period are still in
// the previous calendar year and are saved at prevContribution per month;
// the remaining startMonth months are saved at contribution per month.
// Contributions land at month end and compound at monthlyRate.
func (t SavingsTranches) Advance(monthlyRate, prevContribution, contribution decimal.Decimal, startMonth int) SavingsTranches {
	if startMonth < 1 {
		startMonth = 1
	}
	if startMonth > 12 {
		startMonth = 12
	}
	carryMonths := 12 - startMonth

	base := decimalOne.Add(monthlyRate)
	yearGrowth := Compound(base, 12)

	priorYear := prevContribution.
		Mul(AnnuityFactor(monthlyRate, carryMonths)).
		Mul(Compound(base, startMonth))
	currentYear := contribution.Mul(AnnuityFactor(monthlyRate, startMonth))

	next := SavingsTranches{
		FromInitial: t.FromInitial.Mul(yearGrowth),
		FromMonthly: t.FromMonthly.Mul(yearGrowth).Add(priorYear).Add(currentYear),
	}
	return next.settle()
}

// settle draws a negative contribution balance from the initial tranche and
// floors both tranches at zero.
func (t SavingsTranches) settle() SavingsTranches {
	if t.FromMonthly.IsNegative() {
		t.FromInitial = t.FromInitial.Add(t.FromMonthly)
		t.FromMonthly = decimalZero
	}
	t.FromInitial = maxZero(t.FromInitial).Round(moneyScale)
	t.FromMonthly = t.FromMonthly.Round(moneyScale)
	return t
}
