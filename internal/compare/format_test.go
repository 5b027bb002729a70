package compare

import (
	"encoding/csv"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rgehrsitz/hpgo/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleComparisonSet() *ComparisonSet {
	return &ComparisonSet{
		BaseScenarioName: "Starter Home",
		PlanPath:         "/path/to/plan.yaml",
		BaseResult: &ComparisonResult{
			ScenarioName:         "Starter Home",
			Description:          "Plan as entered",
			Outcome:              domain.OutcomeOffTarget,
			TargetYear:           2028,
			FirstViableYear:      year(2030),
			YearsLate:            2,
			TargetHousePrice:     decimal.NewFromInt(2662),
			TargetLoanAmount:     decimal.NewFromInt(1500),
			TargetMonthlyPayment: decimal.NewFromFloat(14.7),
			TargetBuffer:         decimal.NewFromFloat(-1.25),
			TargetTotalInterest:  decimal.NewFromInt(2900),
		},
		AlternativeResults: []ComparisonResult{
			{
				ScenarioName:         "Starter Home_frugal",
				Description:          "Cut living expenses by 10%",
				Outcome:              domain.OutcomeOnTarget,
				TargetYear:           2028,
				FirstViableYear:      year(2027),
				TargetHousePrice:     decimal.NewFromInt(2662),
				TargetLoanAmount:     decimal.NewFromInt(1400),
				TargetMonthlyPayment: decimal.NewFromFloat(13.7),
				TargetBuffer:         decimal.NewFromFloat(1.75),
				TargetTotalInterest:  decimal.NewFromInt(2700),
				ViableYearDiff:       year(-3),
				PaymentDiffFromBase:  decimal.NewFromInt(-1),
				BufferDiffFromBase:   decimal.NewFromInt(3),
				InterestDiffFromBase: decimal.NewFromInt(-200),
			},
		},
		Recommendations: []string{
			"Earliest Purchase: Starter Home_frugal becomes affordable in 2027, 3 year(s) before the base plan",
		},
	}
}

func TestTableFormatter_Format(t *testing.T) {
	formatter := &TableFormatter{}

	result := formatter.Format(sampleComparisonSet())

	assert.Contains(t, result, "HOME PURCHASE SCENARIO COMPARISON")
	assert.Contains(t, result, "Base Plan: Starter Home")
	assert.Contains(t, result, "Plan File: /path/to/plan.yaml")
	assert.Contains(t, result, "Starter Home (base)")
	assert.Contains(t, result, "2030 (+2)")
	assert.Contains(t, result, "off-target")
	assert.Contains(t, result, "2.9K")
	assert.Contains(t, result, "COMPARISON TO BASE")
	assert.Contains(t, result, "Starter Home_frugal: Cut living expenses by 10%")
	assert.Contains(t, result, "First Viable Year: -3 years")
	assert.Contains(t, result, "Monthly Buffer:    +3.0")
	assert.Contains(t, result, "Total Interest:    -200.0")
	assert.Contains(t, result, "RECOMMENDATIONS")
	assert.Contains(t, result, "* Earliest Purchase")
}

func TestTableFormatter_Format_EmptyAlternatives(t *testing.T) {
	compSet := sampleComparisonSet()
	compSet.AlternativeResults = nil
	compSet.Recommendations = nil
	compSet.PlanPath = ""

	result := (&TableFormatter{}).Format(compSet)

	assert.Contains(t, result, "Starter Home (base)")
	assert.NotContains(t, result, "Plan File:")
	assert.NotContains(t, result, "COMPARISON TO BASE")
	assert.NotContains(t, result, "RECOMMENDATIONS")
}

func TestTableFormatter_formatRow(t *testing.T) {
	formatter := &TableFormatter{}

	never := &ComparisonResult{ScenarioName: "A very long scenario name that overflows", Outcome: domain.OutcomeOffTarget}
	row := formatter.formatRow(never, 28, 11, false)

	assert.Contains(t, row, "A very long scenario name...")
	assert.Contains(t, row, "never")
	assert.True(t, strings.HasSuffix(row, "\n"))
}

func TestTableFormatter_formatDecimal(t *testing.T) {
	formatter := &TableFormatter{}

	tests := []struct {
		in   decimal.Decimal
		want string
	}{
		{decimal.NewFromFloat(14.55), "14.6"},
		{decimal.NewFromInt(-1250), "-1.3K"},
		{decimal.NewFromInt(2500000), "2.50M"},
		{decimal.Zero, "0.0"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, formatter.formatDecimal(tt.in))
		})
	}
}

func TestTableFormatter_FormatCompact(t *testing.T) {
	compSet := sampleComparisonSet()
	compSet.AlternativeResults = append(compSet.AlternativeResults, ComparisonResult{ScenarioName: "Never"})

	assert.Equal(t, "Base: Starter Home (2030 (+2)) | Starter Home_frugal: -3y | Never: never",
		(&TableFormatter{}).FormatCompact(compSet))
}

func TestCSVFormatter_Format(t *testing.T) {
	result, err := (&CSVFormatter{}).Format(sampleComparisonSet())
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(result)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "Scenario", records[0][0])
	assert.Equal(t, []string{"Starter Home", "base", "off-target", "2028", "2030", "2"}, records[1][:6])
	assert.Equal(t, "", records[1][11], "base has no viable year diff")
	assert.Equal(t, "alternative", records[2][1])
	assert.Equal(t, "-3", records[2][11])
	assert.Equal(t, "3.00", records[2][13])
}

func TestJSONFormatter_Format(t *testing.T) {
	for _, pretty := range []bool{false, true} {
		result, err := (&JSONFormatter{Pretty: pretty}).Format(sampleComparisonSet())
		require.NoError(t, err)

		var decoded map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(result), &decoded))

		assert.Equal(t, "Starter Home", decoded["baseScenarioName"])
		assert.Contains(t, decoded, "alternativeResults")
		assert.Contains(t, decoded, "recommendations")
		assert.Equal(t, pretty, strings.Contains(result, "\n  "))

		base := decoded["baseResult"].(map[string]interface{})
		assert.Equal(t, "off-target", base["outcome"])
		assert.NotContains(t, base, "Rows")
	}
}
