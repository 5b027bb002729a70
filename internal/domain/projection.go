package domain

import (
	"github.com/shopspring/decimal"
)

// ProjectionRow is one year's complete financial snapshot. Income, expense
// and savings figures are annual; surplus, payment and buffer are monthly.
type ProjectionRow struct {
	Year int `json:"year" yaml:"year"`
	N    int `json:"n" yaml:"n"`

	HousePrice decimal.Decimal `json:"housePrice" yaml:"house_price"`

	// Income (annual)
	PrimaryIncome decimal.Decimal `json:"primaryIncome" yaml:"primary_income"`
	SpouseIncome  decimal.Decimal `json:"spouseIncome" yaml:"spouse_income"`
	OtherIncome   decimal.Decimal `json:"otherIncome" yaml:"other_income"`
	TotalIncome   decimal.Decimal `json:"totalIncome" yaml:"total_income"`

	// Expenses (annual)
	LivingExpenses decimal.Decimal `json:"livingExpenses" yaml:"living_expenses"`
	DebtPayments   decimal.Decimal `json:"debtPayments" yaml:"debt_payments"`
	Insurance      decimal.Decimal `json:"insurance" yaml:"insurance"`
	ChildExpenses  decimal.Decimal `json:"childExpenses" yaml:"child_expenses"`
	TotalExpenses  decimal.Decimal `json:"totalExpenses" yaml:"total_expenses"`

	FamilyLoanRepayment decimal.Decimal `json:"familyLoanRepayment" yaml:"family_loan_repayment"`
	AnnualSavings       decimal.Decimal `json:"annualSavings" yaml:"annual_savings"`

	CumulativeSavings            decimal.Decimal `json:"cumulativeSavings" yaml:"cumulative_savings"`
	CumulativeSavingsFromInitial decimal.Decimal `json:"cumulativeSavingsFromInitial" yaml:"cumulative_savings_from_initial"`
	CumulativeSavingsFromMonthly decimal.Decimal `json:"cumulativeSavingsFromMonthly" yaml:"cumulative_savings_from_monthly"`

	FamilyContribution decimal.Decimal `json:"familyContribution" yaml:"family_contribution"` // injected in the purchase year only
	EquityForPurchase  decimal.Decimal `json:"equityForPurchase" yaml:"equity_for_purchase"`
	LoanAmountNeeded   decimal.Decimal `json:"loanAmountNeeded" yaml:"loan_amount_needed"`

	MonthlyPayment decimal.Decimal `json:"monthlyPayment" yaml:"monthly_payment"`
	MonthlySurplus decimal.Decimal `json:"monthlySurplus" yaml:"monthly_surplus"`
	Buffer         decimal.Decimal `json:"buffer" yaml:"buffer"`
	IsAffordable   bool            `json:"isAffordable" yaml:"is_affordable"`

	// Assumptions echoed for downstream reporting
	HouseGrowthRate      decimal.Decimal `json:"houseGrowthRate" yaml:"house_growth_rate"`
	SalaryGrowthRate     decimal.Decimal `json:"salaryGrowthRate" yaml:"salary_growth_rate"`
	ExpenseGrowthRate    decimal.Decimal `json:"expenseGrowthRate" yaml:"expense_growth_rate"`
	InvestmentReturnRate decimal.Decimal `json:"investmentReturnRate" yaml:"investment_return_rate"`
	LoanInterestRate     decimal.Decimal `json:"loanInterestRate" yaml:"loan_interest_rate"`
	LoanTermYears        int             `json:"loanTermYears" yaml:"loan_term_years"`
	PaymentMethod        PaymentMethod   `json:"paymentMethod" yaml:"payment_method"`
}

// MonthlyIncome returns the average monthly gross income for the row's year
func (r ProjectionRow) MonthlyIncome() decimal.Decimal {
	return r.TotalIncome.Div(decimal.NewFromInt(12))
}

// Rounded returns a copy with every money field rounded to whole currency
// units. IsAffordable is carried over unchanged from the exact computation.
func (r ProjectionRow) Rounded() ProjectionRow {
	out := r
	for _, f := range []*decimal.Decimal{
		&out.HousePrice,
		&out.PrimaryIncome, &out.SpouseIncome, &out.OtherIncome, &out.TotalIncome,
		&out.LivingExpenses, &out.DebtPayments, &out.Insurance, &out.ChildExpenses, &out.TotalExpenses,
		&out.FamilyLoanRepayment, &out.AnnualSavings,
		&out.CumulativeSavings, &out.CumulativeSavingsFromInitial, &out.CumulativeSavingsFromMonthly,
		&out.FamilyContribution, &out.EquityForPurchase, &out.LoanAmountNeeded,
		&out.MonthlyPayment, &out.MonthlySurplus, &out.Buffer,
	} {
		*f = f.Round(0)
	}
	return out
}

// FindRow returns the row for a calendar year
func FindRow(rows []ProjectionRow, year int) (ProjectionRow, bool) {
	for _, r := range rows {
		if r.Year == year {
			return r, true
		}
	}
	return ProjectionRow{}, false
}
