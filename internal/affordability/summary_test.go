package affordability

import (
	"errors"
	"testing"

	"github.com/rgehrsitz/hpgo/internal/calculation"
	"github.com/rgehrsitz/hpgo/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func sampleRow() domain.ProjectionRow {
	return domain.ProjectionRow{
		Year:              2028,
		N:                 3,
		HousePrice:        d(2000),
		TotalIncome:       d(1200),
		EquityForPurchase: d(500),
		LoanAmountNeeded:  d(1500),
		MonthlyPayment:    d(20),
		MonthlySurplus:    d(25),
		Buffer:            d(5),
		IsAffordable:      true,
		LoanInterestRate:  decimal.Zero,
		LoanTermYears:     10,
		PaymentMethod:     domain.PaymentFixed,
	}
}

func TestSummarizeLoan(t *testing.T) {
	summary := SummarizeLoan(sampleRow())

	assert.Equal(t, 2028, summary.Year)
	assert.True(t, summary.LTVRatio.Equal(d(75)), "got %s", summary.LTVRatio)
	assert.True(t, summary.MonthlyIncome.Equal(d(100)))
	assert.True(t, summary.PaymentToIncome.Equal(d(20)), "got %s", summary.PaymentToIncome)
	assert.True(t, summary.BufferPct.Equal(d(25)), "got %s", summary.BufferPct)
	assert.True(t, summary.TotalPayment.Equal(d(1500)), "zero rate repays exactly the loan")
	assert.True(t, summary.TotalInterest.IsZero())
	assert.Equal(t, 10, summary.LoanTermYears)
	assert.True(t, summary.IsAffordable)
}

func TestSummarizeLoan_NoLoanNeeded(t *testing.T) {
	row := sampleRow()
	row.LoanAmountNeeded = decimal.Zero
	row.MonthlyPayment = decimal.Zero
	row.Buffer = row.MonthlySurplus

	summary := SummarizeLoan(row)

	assert.True(t, summary.LTVRatio.IsZero())
	assert.True(t, summary.PaymentToIncome.IsZero())
	assert.True(t, summary.BufferPct.IsZero(), "no payment means no buffer ratio")
	assert.True(t, summary.TotalPayment.IsZero())
}

func TestSummarizeLoan_MatchesAmortization(t *testing.T) {
	row := sampleRow()
	row.LoanInterestRate = d(11)
	row.LoanTermYears = 25

	summary := SummarizeLoan(row)
	schedule := calculation.Amortize(d(1500), d(11), 25, domain.PaymentFixed)

	assert.True(t, summary.TotalInterest.Equal(schedule.Summary.TotalInterest))
	assert.True(t, summary.TotalPayment.Equal(schedule.Summary.TotalPayment))
}

func TestCompareViableYears(t *testing.T) {
	rows := rowsFromFlags(false, false, true, true, false, true, true, true)
	for i := range rows {
		rows[i].HousePrice = d(1000)
		rows[i].LoanTermYears = 5
	}
	first := 2032

	data := CompareViableYears(rows, &first, 2033)

	assert.Equal(t, 2033, data.TargetYear)
	require.NotNil(t, data.Target)
	assert.Equal(t, 2033, data.Target.Year)
	require.Len(t, data.Options, MaxViableYears)

	years := []int{data.Options[0].Year, data.Options[1].Year, data.Options[2].Year}
	assert.Equal(t, []int{2032, 2033, 2035}, years, "unaffordable years are skipped")
	assert.Equal(t, -1, data.Options[0].YearsFromTarget)
	assert.True(t, data.Options[1].IsTarget)
	assert.Equal(t, 2, data.Options[2].YearsFromTarget)
}

func TestCompareViableYearsN(t *testing.T) {
	rows := rowsFromFlags(false, true, true, true, true, true)
	first := 2031

	assert.Len(t, CompareViableYearsN(rows, &first, 2031, 5).Options, 5)
	assert.Len(t, CompareViableYearsN(rows, &first, 2031, 0).Options, MaxViableYears)
}

func TestCompareViableYears_NoViableYear(t *testing.T) {
	rows := rowsFromFlags(false, false, false)

	data := CompareViableYears(rows, nil, 2032)

	assert.Nil(t, data.FirstViableYear)
	assert.NotNil(t, data.Options)
	assert.Empty(t, data.Options)
	require.NotNil(t, data.Target)
	assert.False(t, data.Target.IsAffordable)

	data = CompareViableYears(rows, nil, 2050)
	assert.Nil(t, data.Target, "target beyond the horizon has no summary")
}

func TestSummarizeForPurchaseYear(t *testing.T) {
	rows := rowsFromFlags(false, true, true)

	_, err := SummarizeForPurchaseYear(rows, nil)
	assert.True(t, errors.Is(err, domain.ErrNoPurchaseYear))

	missing := 2040
	_, err = SummarizeForPurchaseYear(rows, &missing)
	assert.True(t, errors.Is(err, domain.ErrPurchaseYearOutOfRange))
	assert.Contains(t, err.Error(), "2040")

	year := 2031
	summary, err := SummarizeForPurchaseYear(rows, &year)
	require.NoError(t, err)
	assert.Equal(t, 2031, summary.Year)
}

func TestAssess(t *testing.T) {
	plan := domain.Plan{
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
	rows := calculation.NewCalculationEngine().Project(plan, 0)

	assessment := Assess(plan, rows, 2)

	assert.True(t, assessment.Result.IsOnTarget())
	require.NotNil(t, assessment.Result.FirstViableYear)
	assert.Equal(t, 2026, *assessment.Result.FirstViableYear)
	assert.Len(t, assessment.Comparison.Options, 2)
	require.NotNil(t, assessment.Comparison.Target)
	assert.Equal(t, 2028, assessment.Comparison.Target.Year)
	assert.Equal(t, "2662", assessment.Comparison.Target.HousePrice.Round(0).String())
}
