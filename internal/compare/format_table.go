package compare

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing plans
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString("HOME PURCHASE SCENARIO COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 90) + "\n")
	sb.WriteString(fmt.Sprintf("Base Plan: %s\n", compSet.BaseScenarioName))
	if compSet.PlanPath != "" {
		sb.WriteString(fmt.Sprintf("Plan File: %s\n", compSet.PlanPath))
	}
	sb.WriteString("\n")

	nameWidth := 28
	numWidth := 11

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s %*s %*s\n",
		nameWidth, "Scenario",
		numWidth, "Outcome",
		numWidth, "First Year",
		numWidth, "Payment",
		numWidth, "Buffer",
		numWidth, "Interest"))
	sb.WriteString(strings.Repeat("-", 90) + "\n")

	if base := compSet.BaseResult; base != nil {
		sb.WriteString(tf.formatRow(base, nameWidth, numWidth, true))
	}

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString(strings.Repeat("-", 90) + "\n")
		for i := range compSet.AlternativeResults {
			sb.WriteString(tf.formatRow(&compSet.AlternativeResults[i], nameWidth, numWidth, false))
		}
	}

	sb.WriteString(strings.Repeat("=", 90) + "\n")
	sb.WriteString("Payment, buffer and interest are for each plan's own target year.\n")

	// Deltas from base
	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString("\nCOMPARISON TO BASE\n")
		sb.WriteString(strings.Repeat("-", 90) + "\n")

		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(fmt.Sprintf("\n%s: %s\n", alt.ScenarioName, alt.Description))

			switch {
			case alt.ViableYearDiff != nil && *alt.ViableYearDiff != 0:
				sb.WriteString(fmt.Sprintf("  First Viable Year: %+d years\n", *alt.ViableYearDiff))
			case alt.ViableYearDiff == nil && alt.IsViable():
				sb.WriteString("  First Viable Year: becomes affordable\n")
			case alt.ViableYearDiff == nil && compSet.BaseResult != nil && compSet.BaseResult.IsViable():
				sb.WriteString("  First Viable Year: never affordable\n")
			}

			if !alt.PaymentDiffFromBase.IsZero() {
				sb.WriteString(fmt.Sprintf("  Monthly Payment:   %s%s\n",
					tf.deltaSymbol(alt.PaymentDiffFromBase), tf.formatDecimal(alt.PaymentDiffFromBase)))
			}
			if !alt.BufferDiffFromBase.IsZero() {
				sb.WriteString(fmt.Sprintf("  Monthly Buffer:    %s%s\n",
					tf.deltaSymbol(alt.BufferDiffFromBase), tf.formatDecimal(alt.BufferDiffFromBase)))
			}
			if !alt.InterestDiffFromBase.IsZero() {
				sb.WriteString(fmt.Sprintf("  Total Interest:    %s%s\n",
					tf.deltaSymbol(alt.InterestDiffFromBase), tf.formatDecimal(alt.InterestDiffFromBase)))
			}
		}
		sb.WriteString("\n")
	}

	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 90) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("* %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// formatRow formats a single scenario row
func (tf *TableFormatter) formatRow(result *ComparisonResult, nameWidth, numWidth int, isBase bool) string {
	name := result.ScenarioName
	if isBase {
		name += " (base)"
	}

	return fmt.Sprintf("%-*s %*s %*s %*s %*s %*s\n",
		nameWidth, tf.truncate(name, nameWidth),
		numWidth, string(result.Outcome),
		numWidth, viableYearLabel(result),
		numWidth, tf.formatDecimal(result.TargetMonthlyPayment),
		numWidth, tf.formatDecimal(result.TargetBuffer),
		numWidth, tf.formatDecimal(result.TargetTotalInterest))
}

func viableYearLabel(result *ComparisonResult) string {
	if result.FirstViableYear == nil {
		return "never"
	}
	if result.YearsLate > 0 {
		return fmt.Sprintf("%d (+%d)", *result.FirstViableYear, result.YearsLate)
	}
	return fmt.Sprintf("%d", *result.FirstViableYear)
}

// formatDecimal shortens large amounts to K/M and keeps one decimal place for small ones
func (tf *TableFormatter) formatDecimal(d decimal.Decimal) string {
	if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000000)) {
		return d.Div(decimal.NewFromInt(1000000)).StringFixed(2) + "M"
	} else if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000)) {
		return d.Div(decimal.NewFromInt(1000)).StringFixed(1) + "K"
	}
	return d.StringFixed(1)
}

// deltaSymbol returns "+" for positive deltas; negative numbers carry their own sign
func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	}
	return ""
}

// truncate truncates a string to maxLen
func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// FormatCompact creates a compact single-line summary for each scenario
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Base: %s", compSet.BaseScenarioName))
	if compSet.BaseResult != nil {
		sb.WriteString(fmt.Sprintf(" (%s)", viableYearLabel(compSet.BaseResult)))
	}

	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		sb.WriteString(" | ")

		change := "="
		switch {
		case alt.ViableYearDiff != nil && *alt.ViableYearDiff != 0:
			change = fmt.Sprintf("%+dy", *alt.ViableYearDiff)
		case alt.ViableYearDiff == nil:
			change = viableYearLabel(alt)
		}
		sb.WriteString(fmt.Sprintf("%s: %s", alt.ScenarioName, change))
	}

	return sb.String()
}
