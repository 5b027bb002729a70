package affordability

import (
	"fmt"

	"github.com/rgehrsitz/hpgo/internal/calculation"
	"github.com/rgehrsitz/hpgo/internal/domain"
	"github.com/shopspring/decimal"
)

// MaxViableYears is how many purchase-year options CompareViableYears offers by default
const MaxViableYears = 3

const ratioScale int32 = 4

var hundred = decimal.NewFromInt(100)

// SummarizeLoan sizes the purchase described by one projection row. The
// totals come from the full amortization schedule for the row's loan.
func SummarizeLoan(row domain.ProjectionRow) domain.LoanSummary {
	schedule := calculation.Amortize(row.LoanAmountNeeded, row.LoanInterestRate, row.LoanTermYears, row.PaymentMethod)
	monthlyIncome := row.MonthlyIncome()

	return domain.LoanSummary{
		Year:              row.Year,
		HousePrice:        row.HousePrice,
		EquityForPurchase: row.EquityForPurchase,
		LoanAmount:        row.LoanAmountNeeded,
		LTVRatio:          percentOf(row.LoanAmountNeeded, row.HousePrice),
		MonthlyPayment:    row.MonthlyPayment,
		MonthlyIncome:     monthlyIncome,
		PaymentToIncome:   percentOf(row.MonthlyPayment, monthlyIncome),
		MonthlySurplus:    row.MonthlySurplus,
		Buffer:            row.Buffer,
		BufferPct:         percentOf(row.Buffer, row.MonthlyPayment),
		TotalPayment:      schedule.Summary.TotalPayment,
		TotalInterest:     schedule.Summary.TotalInterest,
		LoanTermYears:     row.LoanTermYears,
		IsAffordable:      row.IsAffordable,
	}
}

// CompareViableYears lists up to MaxViableYears affordable purchase years
// starting at firstViableYear, next to the target-year summary.
func CompareViableYears(rows []domain.ProjectionRow, firstViableYear *int, targetYear int) domain.ComparisonData {
	return CompareViableYearsN(rows, firstViableYear, targetYear, MaxViableYears)
}

// CompareViableYearsN is CompareViableYears with an explicit option cap.
// A non-positive limit falls back to MaxViableYears.
func CompareViableYearsN(rows []domain.ProjectionRow, firstViableYear *int, targetYear, limit int) domain.ComparisonData {
	if limit <= 0 {
		limit = MaxViableYears
	}

	data := domain.ComparisonData{
		TargetYear:      targetYear,
		FirstViableYear: firstViableYear,
		Options:         []domain.ViableYearOption{},
	}

	if row, ok := domain.FindRow(rows, targetYear); ok {
		summary := SummarizeLoan(row)
		data.Target = &summary
	}

	if firstViableYear == nil {
		return data
	}

	for _, row := range rows {
		if len(data.Options) >= limit {
			break
		}
		if row.Year < *firstViableYear || !row.IsAffordable {
			continue
		}
		data.Options = append(data.Options, domain.ViableYearOption{
			LoanSummary:     SummarizeLoan(row),
			YearsFromTarget: row.Year - targetYear,
			IsTarget:        row.Year == targetYear,
		})
	}

	return data
}

// SummarizeForPurchaseYear summarizes the row for a year the household has
// committed to. Guessing a year would corrupt the result, so a missing or
// out-of-range year is an error.
func SummarizeForPurchaseYear(rows []domain.ProjectionRow, confirmedYear *int) (domain.LoanSummary, error) {
	if confirmedYear == nil {
		return domain.LoanSummary{}, domain.ErrNoPurchaseYear
	}
	row, ok := domain.FindRow(rows, *confirmedYear)
	if !ok {
		return domain.LoanSummary{}, fmt.Errorf("year %d: %w", *confirmedYear, domain.ErrPurchaseYearOutOfRange)
	}
	return SummarizeLoan(row), nil
}

// Assessment bundles the verdict and the purchase-year options for one projection
type Assessment struct {
	Result     domain.AffordabilityResult `json:"result" yaml:"result"`
	Comparison domain.ComparisonData      `json:"comparison" yaml:"comparison"`
}

// Assess runs the determiner and the viable-year comparison for a plan's rows
func Assess(plan domain.Plan, rows []domain.ProjectionRow, maxViable int) Assessment {
	result := Determine(rows, plan.YearsToPurchase)
	return Assessment{
		Result:     result,
		Comparison: CompareViableYearsN(rows, result.FirstViableYear, plan.TargetYear(), maxViable),
	}
}

// percentOf returns part/whole as a percentage, or zero when whole is zero
func percentOf(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred).Round(ratioScale)
}
