package compare

import (
	"context"
	"testing"

	"github.com/rgehrsitz/hpgo/internal/calculation"
	"github.com/rgehrsitz/hpgo/internal/domain"
	"github.com/rgehrsitz/hpgo/internal/transform"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flatPlan saves exactly 120 a year with every rate at zero. A 600 house
// becomes affordable in 2034, two years after the 2032 target.
func flatPlan() domain.Plan {
	return domain.Plan{
		Name:             "flat",
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
}

func cheaperHouse() Variant {
	return Variant{
		Name:       "cheaper",
		Transforms: []transform.PlanTransform{&transform.SetHousePrice{Price: decimal.NewFromInt(240)}},
	}
}

func TestCompareEngine_HorizonCap(t *testing.T) {
	engine := NewCompareEngine(calculation.NewCalculationEngine())

	tests := []struct {
		name      string
		options   CompareOptions
		baseRows  int
		delayRows int
	}{
		{"own horizons", CompareOptions{}, 8, 10},
		{"cap above horizons", CompareOptions{HorizonCap: 60}, 8, 10},
		{"cap trims each plan", CompareOptions{HorizonCap: 3}, 4, 4},
		{"explicit years win", CompareOptions{MaxYears: 5, HorizonCap: 3}, 6, 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := tt.options
			opts.Templates = []string{"delay_2yr"}

			compSet, err := engine.Compare(context.Background(), flatPlan(), opts)
			require.NoError(t, err)
			assert.Len(t, compSet.BaseResult.Rows, tt.baseRows)
			require.Len(t, compSet.AlternativeResults, 1)
			assert.Len(t, compSet.AlternativeResults[0].Rows, tt.delayRows)
		})
	}
}

func TestCompareEngine_Compare(t *testing.T) {
	engine := NewCompareEngine(calculation.NewCalculationEngine())

	compSet, err := engine.Compare(context.Background(), flatPlan(), CompareOptions{
		Templates: []string{"delay_2yr"},
		Variants:  []Variant{cheaperHouse()},
		PlanPath:  "plan.yaml",
	})
	require.NoError(t, err)

	assert.Equal(t, "flat", compSet.BaseScenarioName)
	assert.Equal(t, "plan.yaml", compSet.PlanPath)

	base := compSet.BaseResult
	require.NotNil(t, base)
	assert.Equal(t, domain.OutcomeOffTarget, base.Outcome)
	assert.Equal(t, 2032, base.TargetYear)
	require.NotNil(t, base.FirstViableYear)
	assert.Equal(t, 2034, *base.FirstViableYear)
	assert.Equal(t, 2, base.YearsLate)
	assert.False(t, base.TargetAffordable)
	assert.Len(t, base.Rows, 8)

	require.Len(t, compSet.AlternativeResults, 2)

	delayed := compSet.AlternativeResults[0]
	assert.Equal(t, "flat_delay_2yr", delayed.ScenarioName)
	assert.Equal(t, "Buy 2 year(s) later than planned", delayed.Description)
	assert.Equal(t, domain.OutcomeOnTarget, delayed.Outcome)
	assert.Equal(t, 2034, delayed.TargetYear)
	require.NotNil(t, delayed.ViableYearDiff)
	assert.Equal(t, 0, *delayed.ViableYearDiff)
	assert.True(t, delayed.TargetAffordable)

	cheaper := compSet.AlternativeResults[1]
	assert.Equal(t, "flat_cheaper", cheaper.ScenarioName)
	assert.Equal(t, "Target a house priced 240", cheaper.Description)
	require.NotNil(t, cheaper.FirstViableYear)
	assert.Equal(t, 2031, *cheaper.FirstViableYear)
	require.NotNil(t, cheaper.ViableYearDiff)
	assert.Equal(t, -3, *cheaper.ViableYearDiff)
	assert.True(t, cheaper.TargetLoanAmount.IsZero(), "savings cover the whole price by the target year")
	assert.Equal(t, "29.17", cheaper.BufferDiffFromBase.StringFixed(2))

	assert.Contains(t, compSet.Recommendations,
		"Earliest Purchase: flat_cheaper becomes affordable in 2031, 3 year(s) before the base plan")
	assert.Contains(t, compSet.Recommendations, "Back on Target: flat_delay_2yr is affordable by its target year 2034")
	assert.Contains(t, compSet.Recommendations, "Largest Buffer: flat_cheaper leaves 29.17 more per month in the target year")
}

func TestCompareEngine_CompareLeavesPlanUntouched(t *testing.T) {
	engine := NewCompareEngine(calculation.NewCalculationEngine())
	plan := flatPlan()

	_, err := engine.Compare(context.Background(), plan, CompareOptions{
		Templates: []string{"rate_shock", "frugal", "delay_1yr"},
	})
	require.NoError(t, err)

	assert.Equal(t, flatPlan(), plan)
}

func TestCompareEngine_Errors(t *testing.T) {
	engine := NewCompareEngine(calculation.NewCalculationEngine())

	tests := []struct {
		name    string
		ctx     func() context.Context
		options CompareOptions
		errText string
	}{
		{
			name:    "unknown template",
			ctx:     context.Background,
			options: CompareOptions{Templates: []string{"lottery_win"}},
			errText: "template lottery_win not found",
		},
		{
			name: "invalid transform",
			ctx:  context.Background,
			options: CompareOptions{Variants: []Variant{{
				Name:       "impossible",
				Transforms: []transform.PlanTransform{&transform.DelayPurchase{Years: -5}},
			}}},
			errText: "failed to apply impossible",
		},
		{
			name: "cancelled",
			ctx: func() context.Context {
				ctx, cancel := context.WithCancel(context.Background())
				cancel()
				return ctx
			},
			options: CompareOptions{Templates: []string{"frugal"}},
			errText: context.Canceled.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			compSet, err := engine.Compare(tt.ctx(), flatPlan(), tt.options)
			require.Error(t, err)
			assert.Nil(t, compSet)
			assert.Contains(t, err.Error(), tt.errText)
		})
	}
}

func TestCompareEngine_DefaultNames(t *testing.T) {
	engine := &CompareEngine{
		CalcEngine:        calculation.NewCalculationEngine(),
		MetricsCalculator: NewMetricsCalculator(),
	}
	plan := flatPlan()
	plan.Name = ""

	compSet, err := engine.Compare(context.Background(), plan, CompareOptions{
		Variants: []Variant{{Transforms: []transform.PlanTransform{&transform.SetLoanTerm{Years: 2}}}},
	})
	require.NoError(t, err)

	assert.NotNil(t, engine.TemplateRegistry, "registry is created on first use")
	assert.Equal(t, "base", compSet.BaseScenarioName)
	require.Len(t, compSet.AlternativeResults, 1)
	assert.Equal(t, "base_variant_1", compSet.AlternativeResults[0].ScenarioName)
	assert.Equal(t, "Use a 2-year loan", compSet.AlternativeResults[0].Description)
}
