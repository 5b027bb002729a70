package calculation

import (
	"github.com/rgehrsitz/hpgo/internal/domain"
	"github.com/shopspring/decimal"
)

// cashFlows holds one projection year's annual income and outflows
type cashFlows struct {
	primary, spouse, other, totalIncome       decimal.Decimal
	living, debt, insurance, child, totalCost decimal.Decimal
	familyRepayment                           decimal.Decimal
	annualSavings                             decimal.Decimal
}

// monthlySurplus is the average monthly amount left over after expenses and family repayments
func (c cashFlows) monthlySurplus() decimal.Decimal {
	return c.annualSavings.Div(decimalTwelve).Round(moneyScale)
}

// Project simulates the plan year by year and returns rows for n = 0..N.
// N is the plan horizon (years to purchase plus lookahead) unless maxYears
// is positive, in which case it replaces the horizon. N never exceeds
// MaxHorizonYears. The plan is not modified.
func (ce *CalculationEngine) Project(plan domain.Plan, maxYears int) []domain.ProjectionRow {
	horizon := plan.Horizon()
	if maxYears > 0 {
		horizon = maxYears
	}
	horizon = min(max(horizon, 0), domain.MaxHorizonYears)

	fs := domain.SupportOrNone(plan.FamilySupport)
	monthlyRate := MonthlyRateFromAnnual(plan.InvestmentReturnRate)
	log := ce.logger()

	rows := make([]domain.ProjectionRow, 0, horizon+1)
	for n := 0; n <= horizon; n++ {
		flows := yearCashFlows(plan, fs, n)

		var tranches SavingsTranches
		if n == 0 {
			// Plan creation is mid-month: year 0 holds the starting capital plus one month of savings
			tranches = NewSavingsTranches(plan.InitialSavings.Add(initialInjection(fs))).
				Deposit(flows.monthlySurplus())
		} else {
			prev := rows[n-1]
			tranches = SavingsTranches{
				FromInitial: prev.CumulativeSavingsFromInitial,
				FromMonthly: prev.CumulativeSavingsFromMonthly,
			}.Advance(monthlyRate, prev.MonthlySurplus, flows.monthlySurplus(), plan.StartMonth)
		}

		row := buildRow(plan, fs, n, flows, tranches)
		if ce.Debug {
			log.Debugf("year %d (n=%d): price=%s savings=%s equity=%s loan=%s payment=%s surplus=%s affordable=%t",
				row.Year, row.N, row.HousePrice.StringFixed(2), row.CumulativeSavings.StringFixed(2),
				row.EquityForPurchase.StringFixed(2), row.LoanAmountNeeded.StringFixed(2),
				row.MonthlyPayment.StringFixed(2), row.MonthlySurplus.StringFixed(2), row.IsAffordable)
		}
		rows = append(rows, row)
	}

	return rows
}

// yearCashFlows computes income, expenses and savings for projection year n
func yearCashFlows(plan domain.Plan, fs domain.FamilySupport, n int) cashFlows {
	salaryFactor := Compound(GrowthFactor(plan.SalaryGrowthRate), n)
	spouseFactor := Compound(GrowthFactor(plan.SpouseSalaryGrowthRate), n)
	expenseFactor := Compound(GrowthFactor(plan.ExpenseGrowthRate), n)

	var c cashFlows
	c.primary = plan.MonthlyIncome.Mul(decimalTwelve).Mul(salaryFactor).Round(moneyScale)
	c.spouse = plan.SpouseMonthlyIncome.Mul(decimalTwelve).Mul(spouseFactor).Round(moneyScale)
	c.other = plan.OtherMonthlyIncome.Mul(decimalTwelve)
	c.totalIncome = c.primary.Add(c.spouse).Add(c.other)

	c.living = plan.MonthlyLivingExpenses.Mul(decimalTwelve).Mul(expenseFactor).Round(moneyScale)
	c.debt = plan.MonthlyDebtPayment.Mul(decimalTwelve)
	c.insurance = plan.AnnualInsurancePremium
	c.child = childExpenses(plan, n)
	c.totalCost = c.living.Add(c.debt).Add(c.insurance).Add(c.child)

	c.familyRepayment = FamilyLoanRepayment(fs, plan.YearsToPurchase, n)
	c.annualSavings = c.totalIncome.Sub(c.totalCost).Sub(c.familyRepayment)
	return c
}

// childExpenses returns the annual child cost for year n. Costs start in the
// birth year and are inflated from the birth year (or year 0 for a child
// already born) at the expense growth rate.
func childExpenses(plan domain.Plan, n int) decimal.Decimal {
	if plan.Child == nil || plan.Child.MonthlyCost.LessThanOrEqual(decimalZero) {
		return decimalZero
	}
	childIndex := plan.Child.BirthYear - plan.BaseYear
	if n < childIndex {
		return decimalZero
	}
	elapsed := n - childIndex
	if childIndex < 0 {
		elapsed = n
	}
	factor := Compound(GrowthFactor(plan.ExpenseGrowthRate), elapsed)
	return plan.Child.MonthlyCost.Mul(decimalTwelve).Mul(factor).Round(moneyScale)
}

func buildRow(plan domain.Plan, fs domain.FamilySupport, n int, flows cashFlows, tranches SavingsTranches) domain.ProjectionRow {
	housePrice := plan.TargetHousePrice.Mul(Compound(GrowthFactor(plan.HouseGrowthRate), n)).Round(moneyScale)
	cumulative := tranches.Total()

	contribution := decimalZero
	if n == plan.YearsToPurchase {
		contribution = purchaseInjection(fs)
	}
	equity := cumulative.Add(contribution)
	loan := maxZero(housePrice.Sub(equity))

	payment := MonthlyPayment(loan, plan.LoanInterestRate, plan.LoanTermYears, plan.PaymentMethod)
	surplus := flows.monthlySurplus()
	buffer := surplus.Sub(payment)

	return domain.ProjectionRow{
		Year:                         plan.BaseYear + n,
		N:                            n,
		HousePrice:                   housePrice,
		PrimaryIncome:                flows.primary,
		SpouseIncome:                 flows.spouse,
		OtherIncome:                  flows.other,
		TotalIncome:                  flows.totalIncome,
		LivingExpenses:               flows.living,
		DebtPayments:                 flows.debt,
		Insurance:                    flows.insurance,
		ChildExpenses:                flows.child,
		TotalExpenses:                flows.totalCost,
		FamilyLoanRepayment:          flows.familyRepayment,
		AnnualSavings:                flows.annualSavings,
		CumulativeSavings:            cumulative,
		CumulativeSavingsFromInitial: tranches.FromInitial,
		CumulativeSavingsFromMonthly: tranches.FromMonthly,
		FamilyContribution:           contribution,
		EquityForPurchase:            equity,
		LoanAmountNeeded:             loan,
		MonthlyPayment:               payment,
		MonthlySurplus:               surplus,
		Buffer:                       buffer,
		IsAffordable:                 !buffer.IsNegative(),
		HouseGrowthRate:              plan.HouseGrowthRate,
		SalaryGrowthRate:             plan.SalaryGrowthRate,
		ExpenseGrowthRate:            plan.ExpenseGrowthRate,
		InvestmentReturnRate:         plan.InvestmentReturnRate,
		LoanInterestRate:             plan.LoanInterestRate,
		LoanTermYears:                plan.LoanTermYears,
		PaymentMethod:                plan.PaymentMethod,
	}
}
