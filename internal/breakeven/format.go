package breakeven

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/rgehrsitz/hpgo/internal/output"
	"github.com/shopspring/decimal"
)

// TableFormatter formats solver results as a console table
type TableFormatter struct{}

// Format generates a formatted table for one result
func (tf *TableFormatter) Format(result *Result) string {
	var sb strings.Builder

	sb.WriteString("PURCHASE TARGET SOLVER\n")
	sb.WriteString(strings.Repeat("=", 72) + "\n")
	sb.WriteString(fmt.Sprintf("Target:        %s\n", result.Target))
	sb.WriteString(fmt.Sprintf("Purchase Year: %d\n", result.PurchaseYear))
	sb.WriteString(fmt.Sprintf("Status:        %s\n", tf.formatStatus(*result)))
	sb.WriteString(fmt.Sprintf("Iterations:    %d\n", result.Iterations))
	if result.ConvergenceInfo != "" {
		sb.WriteString(fmt.Sprintf("Convergence:   %s\n", result.ConvergenceInfo))
	}
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("Plan value:    %s\n", formatValue(result.Target, result.BaseValue)))
	sb.WriteString(fmt.Sprintf("Solved value:  %s (%s)\n",
		formatValue(result.Target, result.Value), tf.deltaSymbol(result.Change())+formatValue(result.Target, result.Change().Abs())))

	if s := result.Summary; s != nil {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("PURCHASE IN %d AT THE SOLVED VALUE\n", s.Year))
		sb.WriteString(strings.Repeat("-", 72) + "\n")
		sb.WriteString(fmt.Sprintf("House Price:     %s\n", output.FormatCurrency(s.HousePrice)))
		sb.WriteString(fmt.Sprintf("Equity:          %s\n", output.FormatCurrency(s.EquityForPurchase)))
		sb.WriteString(fmt.Sprintf("Loan:            %s (LTV %s)\n", output.FormatCurrency(s.LoanAmount), output.FormatPercentage(s.LTVRatio)))
		sb.WriteString(fmt.Sprintf("Monthly Payment: %s\n", output.FormatAmount(s.MonthlyPayment)))
		sb.WriteString(fmt.Sprintf("Monthly Surplus: %s\n", output.FormatAmount(s.MonthlySurplus)))
		sb.WriteString(fmt.Sprintf("Buffer:          %s\n", output.FormatAmount(s.Buffer)))
	}

	return sb.String()
}

// FormatMulti generates a comparison table across targets
func (tf *TableFormatter) FormatMulti(result *MultiResult) string {
	var sb strings.Builder

	title := "PURCHASE TARGETS"
	if result.PlanName != "" {
		title += ": " + result.PlanName
	}
	sb.WriteString(title + "\n")
	sb.WriteString(strings.Repeat("=", 72) + "\n")
	sb.WriteString(fmt.Sprintf("Purchase Year: %d\n\n", result.PurchaseYear))

	sb.WriteString(fmt.Sprintf("%-16s %14s %14s %12s  %s\n", "Target", "Plan", "Solved", "Change", "Status"))
	sb.WriteString(strings.Repeat("-", 72) + "\n")
	for _, r := range result.Results {
		sb.WriteString(fmt.Sprintf("%-16s %14s %14s %12s  %s\n",
			r.Target,
			formatValue(r.Target, r.BaseValue),
			formatValue(r.Target, r.Value),
			tf.deltaSymbol(r.Change())+formatValue(r.Target, r.Change().Abs()),
			tf.formatStatus(r)))
	}
	sb.WriteString("\n")

	if len(result.Recommendations) > 0 {
		sb.WriteString("RECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 72) + "\n")
		for _, rec := range result.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
	}

	return sb.String()
}

// JSONFormatter formats results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format generates JSON output for any solver result
func (jf *JSONFormatter) Format(v any) (string, error) {
	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return "", err
	}

	return string(data), nil
}

func formatValue(target SolveTarget, v decimal.Decimal) string {
	if target == SolveLoanTerm {
		return v.String() + "y"
	}
	return output.FormatAmount(v)
}

func (tf *TableFormatter) formatStatus(r Result) string {
	switch {
	case !r.Feasible:
		return "✗ Infeasible"
	case r.AtBound:
		return "✓ At bound"
	default:
		return "✓ Solved"
	}
}

func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsNegative() {
		return "-"
	}
	return "+"
}
