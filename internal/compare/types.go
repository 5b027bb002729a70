package compare

import (
	"fmt"

	"github.com/rgehrsitz/hpgo/internal/affordability"
	"github.com/rgehrsitz/hpgo/internal/domain"
	"github.com/shopspring/decimal"
)

// ComparisonResult represents one projected plan with its headline metrics
type ComparisonResult struct {
	ScenarioName string `json:"scenarioName"`
	Description  string `json:"description"`

	Plan       domain.Plan              `json:"-"`
	Rows       []domain.ProjectionRow   `json:"-"`
	Assessment affordability.Assessment `json:"-"`

	// Key Metrics
	Outcome         domain.Outcome `json:"outcome"`
	TargetYear      int            `json:"targetYear"`
	FirstViableYear *int           `json:"firstViableYear"`
	YearsLate       int            `json:"yearsLate"` // years past the target; 0 when on target or never viable

	// Target-year purchase, sized from the target year's row
	TargetHousePrice     decimal.Decimal `json:"targetHousePrice"`
	TargetLoanAmount     decimal.Decimal `json:"targetLoanAmount"`
	TargetMonthlyPayment decimal.Decimal `json:"targetMonthlyPayment"`
	TargetBuffer         decimal.Decimal `json:"targetBuffer"`
	TargetTotalInterest  decimal.Decimal `json:"targetTotalInterest"`
	TargetAffordable     bool            `json:"targetAffordable"`

	// Comparison to Base
	ViableYearDiff       *int            `json:"viableYearDiff,omitempty"` // nil unless both plans become viable
	PaymentDiffFromBase  decimal.Decimal `json:"paymentDiffFromBase"`
	BufferDiffFromBase   decimal.Decimal `json:"bufferDiffFromBase"`
	InterestDiffFromBase decimal.Decimal `json:"interestDiffFromBase"`
}

// IsViable reports whether any simulated year is affordable
func (r ComparisonResult) IsViable() bool {
	return r.FirstViableYear != nil
}

// ComparisonSet represents a collection of plan comparisons
type ComparisonSet struct {
	BaseScenarioName   string             `json:"baseScenarioName"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []string           `json:"recommendations"`
	PlanPath           string             `json:"planPath,omitempty"`
}

// MetricsCalculator extracts key metrics from projected plans
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics computes the comparison metrics for one projected plan
func (mc *MetricsCalculator) CalculateMetrics(
	name string,
	plan domain.Plan,
	rows []domain.ProjectionRow,
	assessment affordability.Assessment,
) ComparisonResult {
	result := ComparisonResult{
		ScenarioName:    name,
		Plan:            plan,
		Rows:            rows,
		Assessment:      assessment,
		Outcome:         assessment.Result.Outcome,
		TargetYear:      plan.TargetYear(),
		FirstViableYear: assessment.Result.FirstViableYear,
	}

	if fv := assessment.Result.FirstViableYear; fv != nil && *fv > result.TargetYear {
		result.YearsLate = *fv - result.TargetYear
	}

	if target := assessment.Comparison.Target; target != nil {
		result.TargetHousePrice = target.HousePrice
		result.TargetLoanAmount = target.LoanAmount
		result.TargetMonthlyPayment = target.MonthlyPayment
		result.TargetBuffer = target.Buffer
		result.TargetTotalInterest = target.TotalInterest
		result.TargetAffordable = target.IsAffordable
	}

	return result
}

// CalculateComparison computes deltas between a plan and the base.
// Positive buffer diffs are better; positive payment and interest diffs are worse.
func (mc *MetricsCalculator) CalculateComparison(scenario, base ComparisonResult) ComparisonResult {
	scenario.ViableYearDiff = nil
	if scenario.FirstViableYear != nil && base.FirstViableYear != nil {
		diff := *scenario.FirstViableYear - *base.FirstViableYear
		scenario.ViableYearDiff = &diff
	}

	scenario.PaymentDiffFromBase = scenario.TargetMonthlyPayment.Sub(base.TargetMonthlyPayment)
	scenario.BufferDiffFromBase = scenario.TargetBuffer.Sub(base.TargetBuffer)
	scenario.InterestDiffFromBase = scenario.TargetTotalInterest.Sub(base.TargetTotalInterest)

	return scenario
}

// GenerateRecommendations creates recommendations based on comparison results
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if compSet.BaseResult == nil || len(compSet.AlternativeResults) == 0 {
		return recommendations
	}
	base := compSet.BaseResult

	// Earliest affordable purchase
	earliest := base
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.FirstViableYear == nil {
			continue
		}
		if earliest.FirstViableYear == nil || *alt.FirstViableYear < *earliest.FirstViableYear {
			earliest = alt
		}
	}

	if earliest != base {
		if base.FirstViableYear == nil {
			recommendations = append(recommendations,
				fmt.Sprintf("Earliest Purchase: %s becomes affordable in %d; the base plan never does within the horizon",
					earliest.ScenarioName, *earliest.FirstViableYear))
		} else {
			recommendations = append(recommendations,
				fmt.Sprintf("Earliest Purchase: %s becomes affordable in %d, %d year(s) before the base plan",
					earliest.ScenarioName, *earliest.FirstViableYear, *base.FirstViableYear-*earliest.FirstViableYear))
		}
	}

	// Variants that rescue an off-target plan
	if base.Outcome != domain.OutcomeOnTarget {
		for _, alt := range compSet.AlternativeResults {
			if alt.Outcome == domain.OutcomeOnTarget {
				recommendations = append(recommendations,
					fmt.Sprintf("Back on Target: %s is affordable by its target year %d", alt.ScenarioName, alt.TargetYear))
			}
		}
	}

	// Largest buffer in the target year
	bestBuffer := base
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.TargetBuffer.GreaterThan(bestBuffer.TargetBuffer) {
			bestBuffer = alt
		}
	}

	if bestBuffer != base {
		recommendations = append(recommendations,
			"Largest Buffer: "+bestBuffer.ScenarioName+" leaves "+
				bestBuffer.TargetBuffer.Sub(base.TargetBuffer).StringFixed(2)+
				" more per month in the target year")
	}

	// Lowest lifetime interest on the target-year loan
	lowestInterest := base
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.TargetTotalInterest.LessThan(lowestInterest.TargetTotalInterest) {
			lowestInterest = alt
		}
	}

	if lowestInterest != base {
		recommendations = append(recommendations,
			"Lowest Interest: "+lowestInterest.ScenarioName+" saves "+
				base.TargetTotalInterest.Sub(lowestInterest.TargetTotalInterest).StringFixed(0)+
				" in total loan interest")
	}

	return recommendations
}
