package calculation

import (
	"testing"

	"github.com/rgehrsitz/hpgo/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

// referencePlan is the household used throughout the projection tests:
// 500 saved, 25/month income, 10/month expenses, a 2000 house three years out.
func referencePlan() domain.Plan {
	return domain.Plan{
		Name:                   "reference",
		BaseYear:               2025,
		StartMonth:             1,
		YearsToPurchase:        3,
		LookaheadYears:         5,
		TargetHousePrice:       d(2000),
		HouseGrowthRate:        d(10),
		SalaryGrowthRate:       d(7),
		SpouseSalaryGrowthRate: d(7),
		ExpenseGrowthRate:      d(4),
		InvestmentReturnRate:   d(9),
		MonthlyIncome:          d(25),
		MonthlyLivingExpenses:  d(10),
		InitialSavings:         d(500),
		LoanInterestRate:       d(11),
		LoanTermYears:          25,
		PaymentMethod:          domain.PaymentFixed,
		FamilySupport:          domain.NoSupport{},
	}
}

// flatPlan has every rate at zero so expected values are exact
func flatPlan() domain.Plan {
	return domain.Plan{
		BaseYear:         2030,
		StartMonth:       12,
		YearsToPurchase:  2,
		LookaheadYears:   5,
		TargetHousePrice: d(600),
		MonthlyIncome:    d(10),
		LoanTermYears:    1,
		PaymentMethod:    domain.PaymentFixed,
		FamilySupport:    domain.NoSupport{},
	}
}

func assertRowInvariants(t *testing.T, plan domain.Plan, rows []domain.ProjectionRow) {
	t.Helper()
	for i, r := range rows {
		assert.Equal(t, i, r.N, "rows are contiguous from 0")
		assert.Equal(t, plan.BaseYear+i, r.Year)
		assert.True(t, r.CumulativeSavings.Equal(r.CumulativeSavingsFromInitial.Add(r.CumulativeSavingsFromMonthly)), "n=%d tranche sum", i)
		assert.False(t, r.CumulativeSavingsFromInitial.IsNegative(), "n=%d initial tranche", i)
		assert.False(t, r.CumulativeSavingsFromMonthly.IsNegative(), "n=%d monthly tranche", i)

		expectedLoan := r.HousePrice.Sub(r.EquityForPurchase)
		if expectedLoan.IsNegative() {
			expectedLoan = decimal.Zero
		}
		assert.True(t, r.LoanAmountNeeded.Equal(expectedLoan), "n=%d loan amount", i)
		assert.Equal(t, !r.Buffer.IsNegative(), r.IsAffordable, "n=%d affordability flag", i)
		assert.True(t, r.Buffer.Equal(r.MonthlySurplus.Sub(r.MonthlyPayment)))
	}
}

func TestProject_ReferenceHousehold(t *testing.T) {
	engine := NewCalculationEngine()
	plan := referencePlan()

	rows := engine.Project(plan, 0)

	require.Len(t, rows, 9, "horizon is years to purchase plus lookahead")
	assertRowInvariants(t, plan, rows)

	assert.Equal(t, "2662", rows[3].HousePrice.Round(0).String())
	assert.Equal(t, "2662", rows[3].Rounded().HousePrice.String())
	assert.True(t, rows[3].IsAffordable, "buffer at n=3 is about +6.4")
	assert.Equal(t, "6", rows[3].Buffer.Round(0).String())

	for i := 1; i < len(rows); i++ {
		assert.True(t, rows[i].CumulativeSavings.GreaterThan(rows[i-1].CumulativeSavings), "savings grow at n=%d", i)
	}

	// income and expenses grow at their own rates
	assert.True(t, rows[2].PrimaryIncome.Equal(decimal.RequireFromString("343.47")), "got %s", rows[2].PrimaryIncome)
	assert.True(t, rows[2].LivingExpenses.Equal(decimal.RequireFromString("129.792")), "got %s", rows[2].LivingExpenses)
}

// Year 0 uses the starting capital plus exactly one month of savings before
// sizing the loan. This mirrors the documented year-0 formula and is kept
// intentionally rather than modelling a full first year.
func TestProject_YearZeroUsesOneMonthOfSavings(t *testing.T) {
	rows := NewCalculationEngine().Project(referencePlan(), 0)
	row := rows[0]

	assert.True(t, row.CumulativeSavingsFromInitial.Equal(d(500)))
	assert.True(t, row.CumulativeSavingsFromMonthly.Equal(d(15)))
	assert.True(t, row.CumulativeSavings.Equal(d(515)))
	assert.True(t, row.LoanAmountNeeded.Equal(d(1485)))
	assert.True(t, row.MonthlyPayment.Equal(MonthlyPayment(d(1485), d(11), 25, domain.PaymentFixed)))
	assert.True(t, row.IsAffordable, "year 0 is evaluated on its own")
}

func TestProject_MaxYearsOverridesHorizon(t *testing.T) {
	engine := NewCalculationEngine()

	assert.Len(t, engine.Project(referencePlan(), 2), 3)
	assert.Len(t, engine.Project(referencePlan(), 12), 13)
}

func TestProject_Deterministic(t *testing.T) {
	engine := NewCalculationEngine()
	plan := referencePlan()
	plan.FamilySupport = domain.LoanMonthly{Amount: d(300), InterestRate: d(3), TermYears: 2}

	first := engine.Project(plan, 0)
	second := engine.Project(plan, 0)
	assert.Equal(t, first, second)
}

func TestProject_AffordableOnlyAfterTarget(t *testing.T) {
	rows := NewCalculationEngine().Project(flatPlan(), 0)
	require.Len(t, rows, 8)

	for i, r := range rows {
		expected := d(10 + 120*int64(i))
		assert.True(t, r.CumulativeSavings.Equal(expected), "n=%d savings %s", i, r.CumulativeSavings)
		assert.Equal(t, i >= 4, r.IsAffordable, "n=%d", i)
	}
}

func TestProject_Monotonicity(t *testing.T) {
	plan := referencePlan()
	plan.SpouseMonthlyIncome = d(8)
	plan.SpouseSalaryGrowthRate = d(3)
	plan.FamilySupport = domain.GiftAtPurchase{Amount: d(400)}

	rows := NewCalculationEngine().Project(plan, 0)
	assertRowInvariants(t, plan, rows)
	for i := 1; i < len(rows); i++ {
		assert.True(t, rows[i].CumulativeSavings.GreaterThanOrEqual(rows[i-1].CumulativeSavings))
		assert.True(t, rows[i].CumulativeSavingsFromInitial.GreaterThanOrEqual(rows[i-1].CumulativeSavingsFromInitial))
		assert.True(t, rows[i].CumulativeSavingsFromMonthly.GreaterThanOrEqual(rows[i-1].CumulativeSavingsFromMonthly))
		assert.True(t, rows[i].HousePrice.GreaterThan(rows[i-1].HousePrice))
	}
}

func TestProject_GiftNowFoldedIntoInitialSavings(t *testing.T) {
	plan := referencePlan()
	plan.FamilySupport = domain.GiftNow{Amount: d(200)}

	rows := NewCalculationEngine().Project(plan, 0)

	assert.True(t, rows[0].CumulativeSavingsFromInitial.Equal(d(700)))
	for _, r := range rows {
		assert.True(t, r.FamilyContribution.IsZero())
		assert.True(t, r.FamilyLoanRepayment.IsZero())
	}
}

func TestProject_GiftAtPurchaseOnlyInPurchaseYear(t *testing.T) {
	plan := referencePlan()
	plan.FamilySupport = domain.GiftAtPurchase{Amount: d(400)}

	rows := NewCalculationEngine().Project(plan, 0)
	for _, r := range rows {
		if r.N == plan.YearsToPurchase {
			assert.True(t, r.FamilyContribution.Equal(d(400)))
			assert.True(t, r.EquityForPurchase.Equal(r.CumulativeSavings.Add(d(400))))
		} else {
			assert.True(t, r.FamilyContribution.IsZero(), "n=%d", r.N)
			assert.True(t, r.EquityForPurchase.Equal(r.CumulativeSavings), "n=%d", r.N)
		}
	}
}

func TestProject_FamilyLoanLumpSum(t *testing.T) {
	const amount, term = 300, 2
	base := referencePlan()
	withLoan := referencePlan()
	withLoan.FamilySupport = domain.LoanLumpSum{Amount: d(amount), InterestRate: d(2), TermYears: term}

	engine := NewCalculationEngine()
	baseRows := engine.Project(base, 0)
	loanRows := engine.Project(withLoan, 0)
	require.Equal(t, len(baseRows), len(loanRows))

	for n := range loanRows {
		diff := baseRows[n].AnnualSavings.Sub(loanRows[n].AnnualSavings)
		if n == withLoan.YearsToPurchase+term {
			assert.True(t, diff.Equal(d(amount)), "n=%d savings reduced by principal, got %s", n, diff)
			assert.True(t, loanRows[n].FamilyLoanRepayment.Equal(d(amount)))
		} else {
			assert.True(t, diff.IsZero(), "n=%d savings untouched, got %s", n, diff)
		}
	}
	assert.True(t, loanRows[withLoan.YearsToPurchase].FamilyContribution.Equal(d(amount)))
	assertRowInvariants(t, withLoan, loanRows)
}

func TestProject_FamilyLoanMonthly(t *testing.T) {
	plan := flatPlan()
	plan.FamilySupport = domain.LoanMonthly{Amount: d(120), InterestRate: decimal.Zero, TermYears: 2}

	rows := NewCalculationEngine().Project(plan, 0)
	for _, r := range rows {
		switch {
		case r.N == 2:
			assert.True(t, r.FamilyContribution.Equal(d(120)))
			assert.True(t, r.FamilyLoanRepayment.IsZero(), "no repayment in the purchase year")
		case r.N == 3 || r.N == 4:
			assert.True(t, r.FamilyLoanRepayment.Equal(d(60)), "n=%d got %s", r.N, r.FamilyLoanRepayment)
			assert.True(t, r.AnnualSavings.Equal(d(60)))
		default:
			assert.True(t, r.FamilyLoanRepayment.IsZero(), "n=%d", r.N)
		}
	}
}

func TestFamilyLoanRepayment_WithInterest(t *testing.T) {
	loan := domain.LoanMonthly{Amount: d(1000), InterestRate: d(6), TermYears: 1}
	expected := fixedInstallment(d(1000), MonthlyLoanRate(d(6)), 12).Mul(decimalTwelve)

	assert.True(t, FamilyLoanRepayment(loan, 3, 4).Equal(expected))
	assert.True(t, FamilyLoanRepayment(loan, 3, 3).IsZero())
	assert.True(t, FamilyLoanRepayment(loan, 3, 5).IsZero())
	assert.True(t, FamilyLoanRepayment(domain.NoSupport{}, 3, 4).IsZero())
	assert.True(t, FamilyLoanRepayment(domain.GiftAtPurchase{Amount: d(5)}, 3, 4).IsZero())
}

func TestFamilyLoanRepayment_TermOutOfRange(t *testing.T) {
	loan := domain.LoanMonthly{Amount: d(1000), InterestRate: d(6), TermYears: 1_000_000_000_000_000_000}
	assert.True(t, FamilyLoanRepayment(loan, 3, 4).IsZero())
}

func TestProject_HorizonLimit(t *testing.T) {
	engine := NewCalculationEngine()

	rows := engine.Project(flatPlan(), 1_000_000)
	require.Len(t, rows, domain.MaxHorizonYears+1)

	plan := flatPlan()
	plan.YearsToPurchase = 10_000_000
	plan.LoanTermYears = 1_000_000_000_000_000_000
	rows = engine.Project(plan, 0)
	require.Len(t, rows, domain.MaxHorizonYears+1)
	assertRowInvariants(t, plan, rows)
}

func TestProject_ChildExpenses(t *testing.T) {
	tests := []struct {
		name     string
		birth    int
		expected []int64
	}{
		{"born in year two", 2032, []int64{0, 0, 12, 12, 12}},
		{"born in year zero", 2030, []int64{12, 12, 12, 12, 12}},
		{"already born", 2027, []int64{12, 12, 12, 12, 12}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := flatPlan()
			plan.Child = &domain.ChildPlan{BirthYear: tt.birth, MonthlyCost: d(1)}

			rows := NewCalculationEngine().Project(plan, 4)
			for n, want := range tt.expected {
				assert.True(t, rows[n].ChildExpenses.Equal(d(want)), "n=%d got %s", n, rows[n].ChildExpenses)
			}
		})
	}

	t.Run("inflated from birth year", func(t *testing.T) {
		plan := flatPlan()
		plan.ExpenseGrowthRate = d(10)
		plan.Child = &domain.ChildPlan{BirthYear: 2031, MonthlyCost: d(100)}

		rows := NewCalculationEngine().Project(plan, 3)
		assert.True(t, rows[0].ChildExpenses.IsZero())
		assert.True(t, rows[1].ChildExpenses.Equal(d(1200)))
		assert.True(t, rows[3].ChildExpenses.Equal(d(1452)), "got %s", rows[3].ChildExpenses)
	})
}

func TestProject_NegativeSavingsDrainInitialCapital(t *testing.T) {
	plan := flatPlan()
	plan.InitialSavings = d(100)
	plan.MonthlyIncome = d(0)
	plan.MonthlyLivingExpenses = d(5)

	rows := NewCalculationEngine().Project(plan, 2)
	assertRowInvariants(t, plan, rows)

	assert.True(t, rows[0].CumulativeSavings.Equal(d(95)))
	assert.True(t, rows[1].CumulativeSavings.Equal(d(35)))
	assert.True(t, rows[2].CumulativeSavings.IsZero())
	assert.False(t, rows[2].IsAffordable)
}

func TestProject_DecreasingMethodPaysHighestFirst(t *testing.T) {
	fixed := referencePlan()
	decreasing := referencePlan()
	decreasing.PaymentMethod = domain.PaymentDecreasing

	engine := NewCalculationEngine()
	fr := engine.Project(fixed, 0)
	dr := engine.Project(decreasing, 0)

	assert.True(t, dr[0].MonthlyPayment.GreaterThan(fr[0].MonthlyPayment))
	assert.Equal(t, domain.PaymentDecreasing, dr[0].PaymentMethod)
}

func TestProject_DebugLogging(t *testing.T) {
	engine := NewCalculationEngine()
	rec := &recordingLogger{}
	engine.SetLogger(rec)
	engine.Debug = true

	rows := engine.Project(referencePlan(), 0)
	assert.Len(t, rec.debug, len(rows))
}
