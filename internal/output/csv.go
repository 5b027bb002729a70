package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/rgehrsitz/hpgo/internal/domain"
)

// CSVFormatter writes one row per projection year, or one row per schedule
// period for amortization reports.
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(report *Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	var records [][]string
	switch {
	case len(report.Rows) > 0:
		records = projectionRecords(report.Rows)
	case report.Schedule != nil:
		records = scheduleRecords(*report.Schedule, report.ScheduleView)
	}

	if err := w.WriteAll(records); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func projectionRecords(rows []domain.ProjectionRow) [][]string {
	records := [][]string{{
		"Year", "N", "HousePrice",
		"PrimaryIncome", "SpouseIncome", "OtherIncome", "TotalIncome",
		"LivingExpenses", "DebtPayments", "Insurance", "ChildExpenses", "TotalExpenses",
		"FamilyLoanRepayment", "AnnualSavings",
		"CumulativeSavings", "SavingsFromInitial", "SavingsFromMonthly",
		"FamilyContribution", "EquityForPurchase", "LoanAmountNeeded",
		"MonthlyPayment", "MonthlySurplus", "Buffer", "IsAffordable",
	}}

	for _, r := range rows {
		records = append(records, []string{
			strconv.Itoa(r.Year), strconv.Itoa(r.N), r.HousePrice.String(),
			r.PrimaryIncome.String(), r.SpouseIncome.String(), r.OtherIncome.String(), r.TotalIncome.String(),
			r.LivingExpenses.String(), r.DebtPayments.String(), r.Insurance.String(), r.ChildExpenses.String(), r.TotalExpenses.String(),
			r.FamilyLoanRepayment.String(), r.AnnualSavings.String(),
			r.CumulativeSavings.String(), r.CumulativeSavingsFromInitial.String(), r.CumulativeSavingsFromMonthly.String(),
			r.FamilyContribution.String(), r.EquityForPurchase.String(), r.LoanAmountNeeded.String(),
			r.MonthlyPayment.String(), r.MonthlySurplus.String(), r.Buffer.String(), strconv.FormatBool(r.IsAffordable),
		})
	}
	return records
}

func scheduleRecords(s domain.AmortizationScheduleData, view ScheduleView) [][]string {
	if view == ScheduleMonthly {
		records := [][]string{{"Month", "Payment", "Principal", "Interest", "RemainingBalance"}}
		for _, m := range s.Monthly {
			records = append(records, []string{
				strconv.Itoa(m.Month),
				FormatAmount(m.Payment), FormatAmount(m.Principal), FormatAmount(m.Interest), FormatAmount(m.RemainingBalance),
			})
		}
		return records
	}

	records := [][]string{{"Year", "TotalPayment", "TotalPrincipal", "TotalInterest", "RemainingBalance"}}
	for _, y := range s.Yearly {
		records = append(records, []string{
			strconv.Itoa(y.Year),
			FormatAmount(y.TotalPayment), FormatAmount(y.TotalPrincipal), FormatAmount(y.TotalInterest), FormatAmount(y.RemainingBalance),
		})
	}
	return records
}
