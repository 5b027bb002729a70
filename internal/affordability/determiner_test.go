package affordability

import (
	"testing"

	"github.com/rgehrsitz/hpgo/internal/calculation"
	"github.com/rgehrsitz/hpgo/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rowsFromFlags builds a contiguous row sequence starting at 2030 with the given affordability flags
func rowsFromFlags(flags ...bool) []domain.ProjectionRow {
	rows := make([]domain.ProjectionRow, len(flags))
	for i, ok := range flags {
		rows[i] = domain.ProjectionRow{Year: 2030 + i, N: i, IsAffordable: ok}
	}
	return rows
}

func TestDetermine(t *testing.T) {
	year := func(y int) *int { return &y }

	tests := []struct {
		name            string
		flags           []bool
		yearsToPurchase int
		outcome         domain.Outcome
		firstViable     *int
	}{
		{"affordable at target", []bool{false, false, false, true, true}, 3, domain.OutcomeOnTarget, year(2033)},
		{"affordable before target", []bool{false, true, false, false}, 3, domain.OutcomeOnTarget, year(2031)},
		{"affordable after target", []bool{false, false, false, false, false, true, true}, 3, domain.OutcomeOffTarget, year(2035)},
		{"never affordable", []bool{false, false, false, false}, 2, domain.OutcomeOffTarget, nil},
		{"year zero is not scanned", []bool{true, false, false, false}, 3, domain.OutcomeOffTarget, nil},
		{"year zero skipped then later", []bool{true, false, true}, 1, domain.OutcomeOffTarget, year(2032)},
		{"buy now target scans from year one", []bool{true, true}, 0, domain.OutcomeOffTarget, year(2031)},
		{"empty projection", nil, 3, domain.OutcomeOffTarget, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Determine(rowsFromFlags(tt.flags...), tt.yearsToPurchase)

			assert.Equal(t, tt.outcome, result.Outcome)
			assert.Equal(t, tt.firstViable, result.FirstViableYear)
			assert.Equal(t, tt.outcome == domain.OutcomeOnTarget, result.IsOnTarget())
		})
	}
}

func TestScanPhases(t *testing.T) {
	rows := rowsFromFlags(false, false, true, false, true)

	y, ok := scanWithinTarget(rows, 1)
	assert.False(t, ok)
	assert.Zero(t, y)

	y, ok = scanWithinTarget(rows, 2)
	assert.True(t, ok)
	assert.Equal(t, 2032, y)

	y, ok = scanBeyondTarget(rows, 2)
	assert.True(t, ok)
	assert.Equal(t, 2034, y, "second phase only looks past the target")

	_, ok = scanBeyondTarget(rows, 4)
	assert.False(t, ok)
}

// A flat plan whose savings only cover the loan two years after the target
func TestDetermine_AffordableTwoYearsLate(t *testing.T) {
	plan := domain.Plan{
		BaseYear:         2030,
		StartMonth:       12,
		YearsToPurchase:  2,
		LookaheadYears:   5,
		TargetHousePrice: decimal.NewFromInt(600),
		MonthlyIncome:    decimal.NewFromInt(10),
		LoanTermYears:    1,
		PaymentMethod:    domain.PaymentFixed,
		FamilySupport:    domain.NoSupport{},
	}

	rows := calculation.NewCalculationEngine().Project(plan, 0)
	result := Determine(rows, plan.YearsToPurchase)

	assert.Equal(t, domain.OutcomeOffTarget, result.Outcome)
	require.NotNil(t, result.FirstViableYear)
	assert.Equal(t, plan.BaseYear+plan.YearsToPurchase+2, *result.FirstViableYear)
}
