package output

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/rgehrsitz/hpgo/internal/domain"
)

// ConsoleFormatter renders the full projection table, verdict and purchase options
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(report *Report) ([]byte, error) {
	var buf bytes.Buffer

	if len(report.Rows) > 0 {
		fmt.Fprintln(&buf, strings.Repeat("=", 110))
		fmt.Fprintf(&buf, "HOME PURCHASE PROJECTION: %s\n", report.PlanName())
		fmt.Fprintln(&buf, strings.Repeat("=", 110))
		fmt.Fprintln(&buf)

		if len(report.Assumptions) > 0 {
			fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
			for _, a := range report.Assumptions {
				fmt.Fprintf(&buf, "* %s\n", a)
			}
			fmt.Fprintln(&buf)
		}

		writeProjectionTable(&buf, report.Rows)
		fmt.Fprintln(&buf)
		writeVerdict(&buf, report)
	}

	if report.Schedule != nil {
		writeSchedule(&buf, *report.Schedule, report.ScheduleView)
	}

	return buf.Bytes(), nil
}

// ConsoleLiteFormatter prints only the verdict and purchase options
type ConsoleLiteFormatter struct{}

func (c ConsoleLiteFormatter) Name() string { return "console-lite" }

func (c ConsoleLiteFormatter) Format(report *Report) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "HOME PURCHASE SUMMARY: %s\n", report.PlanName())
	if report.Assessment != nil {
		writeVerdict(&buf, report)
	}
	if report.Schedule != nil {
		writeScheduleSummary(&buf, *report.Schedule)
	}
	return buf.Bytes(), nil
}

func writeProjectionTable(w io.Writer, rows []domain.ProjectionRow) {
	fmt.Fprintf(w, "%-6s %3s %9s %9s %9s %9s %9s %9s %9s %9s %9s  %s\n",
		"Year", "n", "House", "Income", "Expenses", "Savings", "Equity", "Loan", "Payment", "Surplus", "Buffer", "Affordable")
	fmt.Fprintln(w, strings.Repeat("-", 110))
	for _, r := range rows {
		flag := "no"
		if r.IsAffordable {
			flag = "yes"
		}
		fmt.Fprintf(w, "%-6d %3d %9s %9s %9s %9s %9s %9s %9s %9s %9s  %s\n",
			r.Year, r.N,
			FormatCurrency(r.HousePrice),
			FormatCurrency(r.TotalIncome),
			FormatCurrency(r.TotalExpenses),
			FormatCurrency(r.CumulativeSavings),
			FormatCurrency(r.EquityForPurchase),
			FormatCurrency(r.LoanAmountNeeded),
			FormatCurrency(r.MonthlyPayment),
			FormatCurrency(r.MonthlySurplus),
			FormatCurrency(r.Buffer),
			flag)
	}
	fmt.Fprintln(w, "Income, expenses and savings are annual; payment, surplus and buffer are monthly.")
}

func writeVerdict(w io.Writer, report *Report) {
	a := report.Assessment
	if a == nil {
		return
	}

	fmt.Fprintln(w, "AFFORDABILITY")
	fmt.Fprintln(w, strings.Repeat("-", 40))
	fmt.Fprintf(w, "Target Year:        %d\n", a.Comparison.TargetYear)
	fmt.Fprintf(w, "Outcome:            %s\n", a.Result.Outcome)
	fmt.Fprintf(w, "First Viable Year:  %s\n", FormatYear(a.Result.FirstViableYear))

	if t := a.Comparison.Target; t != nil {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "IN THE TARGET YEAR (%d):\n", t.Year)
		writeLoanSummary(w, *t)
	}

	if len(a.Comparison.Options) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "PURCHASE OPTIONS:")
		for _, opt := range a.Comparison.Options {
			label := fmt.Sprintf("%+d vs target", opt.YearsFromTarget)
			if opt.IsTarget {
				label = "target year"
			}
			fmt.Fprintf(w, "  %d (%s): price %s, loan %s (LTV %s), payment %s/month, buffer %s\n",
				opt.Year, label,
				FormatCurrency(opt.HousePrice),
				FormatCurrency(opt.LoanAmount),
				FormatPercentage(opt.LTVRatio),
				FormatAmount(opt.MonthlyPayment),
				FormatAmount(opt.Buffer))
		}
	} else if a.Result.FirstViableYear == nil {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "No simulated year is affordable. Consider a cheaper house, a later purchase or family support.")
	}

	if p := report.Purchase; p != nil {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "CONFIRMED PURCHASE (%d):\n", p.Year)
		writeLoanSummary(w, *p)
	}
	fmt.Fprintln(w)
}

func writeLoanSummary(w io.Writer, s domain.LoanSummary) {
	fmt.Fprintf(w, "  House Price:        %s\n", FormatCurrency(s.HousePrice))
	fmt.Fprintf(w, "  Equity:             %s\n", FormatCurrency(s.EquityForPurchase))
	fmt.Fprintf(w, "  Bank Loan:          %s (LTV %s)\n", FormatCurrency(s.LoanAmount), FormatPercentage(s.LTVRatio))
	fmt.Fprintf(w, "  Monthly Payment:    %s (%s of income)\n", FormatAmount(s.MonthlyPayment), FormatPercentage(s.PaymentToIncome))
	fmt.Fprintf(w, "  Monthly Surplus:    %s\n", FormatAmount(s.MonthlySurplus))
	fmt.Fprintf(w, "  Buffer:             %s (%s of payment)\n", FormatAmount(s.Buffer), FormatPercentage(s.BufferPct))
	fmt.Fprintf(w, "  Total Interest:     %s over %d years\n", FormatCurrency(s.TotalInterest), s.LoanTermYears)
	fmt.Fprintf(w, "  Affordable:         %t\n", s.IsAffordable)
}

func writeScheduleSummary(w io.Writer, s domain.AmortizationScheduleData) {
	fmt.Fprintf(w, "Loan %s at %s over %d years (%s)\n",
		FormatAmount(s.LoanAmount), FormatPercentage(s.AnnualRate), s.TermYears, s.Method)
	if s.IsEmpty() {
		fmt.Fprintln(w, "No loan needed.")
		return
	}
	fmt.Fprintf(w, "First Payment:   %s\n", FormatAmount(s.Summary.FirstMonthPayment))
	if s.Summary.LastMonthPayment != nil {
		fmt.Fprintf(w, "Last Payment:    %s\n", FormatAmount(*s.Summary.LastMonthPayment))
	}
	fmt.Fprintf(w, "Total Payment:   %s\n", FormatAmount(s.Summary.TotalPayment))
	fmt.Fprintf(w, "Total Interest:  %s\n", FormatAmount(s.Summary.TotalInterest))
}

func writeSchedule(w io.Writer, s domain.AmortizationScheduleData, view ScheduleView) {
	fmt.Fprintln(w, "AMORTIZATION SCHEDULE")
	fmt.Fprintln(w, strings.Repeat("=", 72))
	writeScheduleSummary(w, s)
	if s.IsEmpty() {
		return
	}
	fmt.Fprintln(w)

	if view == ScheduleMonthly {
		fmt.Fprintf(w, "%6s %14s %14s %14s %16s\n", "Month", "Payment", "Principal", "Interest", "Balance")
		fmt.Fprintln(w, strings.Repeat("-", 72))
		for _, m := range s.Monthly {
			fmt.Fprintf(w, "%6d %14s %14s %14s %16s\n", m.Month,
				FormatAmount(m.Payment), FormatAmount(m.Principal), FormatAmount(m.Interest), FormatAmount(m.RemainingBalance))
		}
		return
	}

	fmt.Fprintf(w, "%6s %14s %14s %14s %16s\n", "Year", "Payment", "Principal", "Interest", "Balance")
	fmt.Fprintln(w, strings.Repeat("-", 72))
	for _, y := range s.Yearly {
		fmt.Fprintf(w, "%6d %14s %14s %14s %16s\n", y.Year,
			FormatAmount(y.TotalPayment), FormatAmount(y.TotalPrincipal), FormatAmount(y.TotalInterest), FormatAmount(y.RemainingBalance))
	}
}
