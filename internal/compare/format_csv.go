package compare

import (
	"encoding/csv"
	"strconv"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Scenario",
		"Type",
		"Outcome",
		"Target Year",
		"First Viable Year",
		"Years Late",
		"Target House Price",
		"Target Loan",
		"Target Monthly Payment",
		"Target Buffer",
		"Target Total Interest",
		"Viable Year Diff",
		"Payment Diff from Base",
		"Buffer Diff from Base",
		"Interest Diff from Base",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if compSet.BaseResult != nil {
		if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
			return "", err
		}
	}

	for i := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&compSet.AlternativeResults[i], "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a comparison result as a CSV row
func (cf *CSVFormatter) formatRow(result *ComparisonResult, scenarioType string) []string {
	return []string{
		result.ScenarioName,
		scenarioType,
		string(result.Outcome),
		strconv.Itoa(result.TargetYear),
		formatOptionalInt(result.FirstViableYear),
		strconv.Itoa(result.YearsLate),
		result.TargetHousePrice.StringFixed(2),
		result.TargetLoanAmount.StringFixed(2),
		result.TargetMonthlyPayment.StringFixed(2),
		result.TargetBuffer.StringFixed(2),
		result.TargetTotalInterest.StringFixed(2),
		formatOptionalInt(result.ViableYearDiff),
		result.PaymentDiffFromBase.StringFixed(2),
		result.BufferDiffFromBase.StringFixed(2),
		result.InterestDiffFromBase.StringFixed(2),
	}
}

// formatOptionalInt renders nil as an empty cell
func formatOptionalInt(i *int) string {
	if i == nil {
		return ""
	}
	return strconv.Itoa(*i)
}
