package domain

import (
	"github.com/shopspring/decimal"
)

// AmortizationMonth is one installment of a repayment schedule
type AmortizationMonth struct {
	Month            int             `json:"month" yaml:"month"`
	Payment          decimal.Decimal `json:"payment" yaml:"payment"`
	Principal        decimal.Decimal `json:"principal" yaml:"principal"`
	Interest         decimal.Decimal `json:"interest" yaml:"interest"`
	RemainingBalance decimal.Decimal `json:"remainingBalance" yaml:"remaining_balance"`
}

// AmortizationYear rolls up a 12-month block (or the final partial block)
type AmortizationYear struct {
	Year             int             `json:"year" yaml:"year"`
	TotalPayment     decimal.Decimal `json:"totalPayment" yaml:"total_payment"`
	TotalPrincipal   decimal.Decimal `json:"totalPrincipal" yaml:"total_principal"`
	TotalInterest    decimal.Decimal `json:"totalInterest" yaml:"total_interest"`
	RemainingBalance decimal.Decimal `json:"remainingBalance" yaml:"remaining_balance"`
}

// AmortizationSummary holds schedule totals. FirstMonthPayment is the
// representative payment for the fixed method and the highest payment for
// the decreasing method; LastMonthPayment is set for decreasing only.
type AmortizationSummary struct {
	TotalPayment      decimal.Decimal  `json:"totalPayment" yaml:"total_payment"`
	TotalInterest     decimal.Decimal  `json:"totalInterest" yaml:"total_interest"`
	FirstMonthPayment decimal.Decimal  `json:"firstMonthPayment" yaml:"first_month_payment"`
	LastMonthPayment  *decimal.Decimal `json:"lastMonthPayment,omitempty" yaml:"last_month_payment,omitempty"`
}

// AmortizationScheduleData is a full loan repayment schedule
type AmortizationScheduleData struct {
	LoanAmount decimal.Decimal     `json:"loanAmount" yaml:"loan_amount"`
	AnnualRate decimal.Decimal     `json:"annualRate" yaml:"annual_rate"`
	TermYears  int                 `json:"termYears" yaml:"term_years"`
	Method     PaymentMethod       `json:"method" yaml:"method"`
	Monthly    []AmortizationMonth `json:"monthly" yaml:"monthly"`
	Yearly     []AmortizationYear  `json:"yearly" yaml:"yearly"`
	Summary    AmortizationSummary `json:"summary" yaml:"summary"`
}

// IsEmpty reports whether the schedule represents "no loan needed"
func (s AmortizationScheduleData) IsEmpty() bool {
	return len(s.Monthly) == 0
}
