package domain

import (
	"github.com/shopspring/decimal"
)

// PaymentMethod selects how a bank loan is amortized
type PaymentMethod string

const (
	// PaymentFixed is a constant-installment annuity
	PaymentFixed PaymentMethod = "fixed"
	// PaymentDecreasing repays a constant principal slice plus interest on the remaining balance
	PaymentDecreasing PaymentMethod = "decreasing"
)

// IsValid reports whether the method is one of the supported amortization methods
func (m PaymentMethod) IsValid() bool {
	return m == PaymentFixed || m == PaymentDecreasing
}

// Year-count limits. Normalize clamps plans into them and the engine never
// projects or amortizes past them.
const (
	MaxLoanTermYears     = 50
	MaxAmortizationYears = 100
	MaxPlanYears         = 100 // years to purchase, and separately the lookahead
	MaxHorizonYears      = 2 * MaxPlanYears
)

// ChildPlan describes an expected child and the monthly cost it adds (today's money)
type ChildPlan struct {
	BirthYear   int             `yaml:"birth_year" json:"birthYear"`
	MonthlyCost decimal.Decimal `yaml:"monthly_cost" json:"monthlyCost"`
}

// Plan is a fully normalized household financial profile at simulation start.
// Rates are plain percentages (10 means 10% per year). Money is in the
// household's single currency unit throughout.
type Plan struct {
	Name string `yaml:"name" json:"name"`

	BaseYear        int `yaml:"base_year" json:"baseYear"`
	StartMonth      int `yaml:"start_month" json:"startMonth"` // 1..12, month the plan was created
	YearsToPurchase int `yaml:"years_to_purchase" json:"yearsToPurchase"`
	LookaheadYears  int `yaml:"lookahead_years" json:"lookaheadYears"`

	TargetHousePrice decimal.Decimal `yaml:"target_house_price" json:"targetHousePrice"`

	HouseGrowthRate        decimal.Decimal `yaml:"house_growth_rate" json:"houseGrowthRate"`
	SalaryGrowthRate       decimal.Decimal `yaml:"salary_growth_rate" json:"salaryGrowthRate"`
	SpouseSalaryGrowthRate decimal.Decimal `yaml:"spouse_salary_growth_rate" json:"spouseSalaryGrowthRate"`
	ExpenseGrowthRate      decimal.Decimal `yaml:"expense_growth_rate" json:"expenseGrowthRate"`
	InvestmentReturnRate   decimal.Decimal `yaml:"investment_return_rate" json:"investmentReturnRate"`

	MonthlyIncome       decimal.Decimal `yaml:"monthly_income" json:"monthlyIncome"`
	SpouseMonthlyIncome decimal.Decimal `yaml:"spouse_monthly_income" json:"spouseMonthlyIncome"`
	OtherMonthlyIncome  decimal.Decimal `yaml:"other_monthly_income" json:"otherMonthlyIncome"`

	MonthlyLivingExpenses  decimal.Decimal `yaml:"monthly_living_expenses" json:"monthlyLivingExpenses"`
	MonthlyDebtPayment     decimal.Decimal `yaml:"monthly_debt_payment" json:"monthlyDebtPayment"`
	AnnualInsurancePremium decimal.Decimal `yaml:"annual_insurance_premium" json:"annualInsurancePremium"`

	InitialSavings decimal.Decimal `yaml:"initial_savings" json:"initialSavings"`

	LoanInterestRate decimal.Decimal `yaml:"loan_interest_rate" json:"loanInterestRate"`
	LoanTermYears    int             `yaml:"loan_term_years" json:"loanTermYears"`
	PaymentMethod    PaymentMethod   `yaml:"payment_method" json:"paymentMethod"`

	Child *ChildPlan `yaml:"child,omitempty" json:"child,omitempty"`

	// FamilySupport is never nil after normalization; NoSupport{} is the empty case.
	FamilySupport FamilySupport `yaml:"-" json:"-"`
}

// TargetYear returns the calendar year the household wants to buy in
func (p Plan) TargetYear() int {
	return p.BaseYear + p.YearsToPurchase
}

// Horizon returns the last projection index simulated for this plan
func (p Plan) Horizon() int {
	return p.YearsToPurchase + p.LookaheadYears
}

// TotalMonthlyIncome returns the sum of all current monthly income sources
func (p Plan) TotalMonthlyIncome() decimal.Decimal {
	return p.MonthlyIncome.Add(p.SpouseMonthlyIncome).Add(p.OtherMonthlyIncome)
}

// ChildInput is the raw child event as it appears in a plan file
type ChildInput struct {
	BirthYear   int             `yaml:"birth_year" json:"birth_year"`
	MonthlyCost decimal.Decimal `yaml:"monthly_cost" json:"monthly_cost"`
}

// FamilySupportInput is the loosely-typed family support record accepted from
// plan files and API bodies. It is decoded into the closed FamilySupport variant.
type FamilySupportInput struct {
	Type          string           `yaml:"type" json:"type"`                                         // GIFT | LOAN
	Timing        string           `yaml:"timing,omitempty" json:"timing,omitempty"`                 // NOW | AT_PURCHASE (gifts)
	Amount        decimal.Decimal  `yaml:"amount" json:"amount"`                                     //
	InterestRate  *decimal.Decimal `yaml:"interest_rate,omitempty" json:"interest_rate,omitempty"`   // loans only
	RepaymentType string           `yaml:"repayment_type,omitempty" json:"repayment_type,omitempty"` // MONTHLY | LUMP_SUM
	TermYears     int              `yaml:"term_years,omitempty" json:"term_years,omitempty"`         // loans only
}

// PlanInput is a partial plan. Nil pointers mean "not supplied" and are
// replaced by defaults during normalization.
type PlanInput struct {
	Name string `yaml:"name" json:"name"`

	BaseYear        *int `yaml:"base_year,omitempty" json:"base_year,omitempty"`
	StartMonth      *int `yaml:"start_month,omitempty" json:"start_month,omitempty"`
	YearsToPurchase *int `yaml:"years_to_purchase,omitempty" json:"years_to_purchase,omitempty"`
	LookaheadYears  *int `yaml:"lookahead_years,omitempty" json:"lookahead_years,omitempty"`

	TargetHousePrice *decimal.Decimal `yaml:"target_house_price,omitempty" json:"target_house_price,omitempty"`

	HouseGrowthRate        *decimal.Decimal `yaml:"house_growth_rate,omitempty" json:"house_growth_rate,omitempty"`
	SalaryGrowthRate       *decimal.Decimal `yaml:"salary_growth_rate,omitempty" json:"salary_growth_rate,omitempty"`
	SpouseSalaryGrowthRate *decimal.Decimal `yaml:"spouse_salary_growth_rate,omitempty" json:"spouse_salary_growth_rate,omitempty"`
	ExpenseGrowthRate      *decimal.Decimal `yaml:"expense_growth_rate,omitempty" json:"expense_growth_rate,omitempty"`
	InvestmentReturnRate   *decimal.Decimal `yaml:"investment_return_rate,omitempty" json:"investment_return_rate,omitempty"`

	MonthlyIncome       *decimal.Decimal `yaml:"monthly_income,omitempty" json:"monthly_income,omitempty"`
	SpouseMonthlyIncome *decimal.Decimal `yaml:"spouse_monthly_income,omitempty" json:"spouse_monthly_income,omitempty"`
	OtherMonthlyIncome  *decimal.Decimal `yaml:"other_monthly_income,omitempty" json:"other_monthly_income,omitempty"`

	MonthlyLivingExpenses  *decimal.Decimal `yaml:"monthly_living_expenses,omitempty" json:"monthly_living_expenses,omitempty"`
	MonthlyDebtPayment     *decimal.Decimal `yaml:"monthly_debt_payment,omitempty" json:"monthly_debt_payment,omitempty"`
	AnnualInsurancePremium *decimal.Decimal `yaml:"annual_insurance_premium,omitempty" json:"annual_insurance_premium,omitempty"`

	InitialSavings *decimal.Decimal `yaml:"initial_savings,omitempty" json:"initial_savings,omitempty"`

	LoanInterestRate *decimal.Decimal `yaml:"loan_interest_rate,omitempty" json:"loan_interest_rate,omitempty"`
	LoanTermYears    *int             `yaml:"loan_term_years,omitempty" json:"loan_term_years,omitempty"`
	PaymentMethod    string           `yaml:"payment_method,omitempty" json:"payment_method,omitempty"`

	Child         *ChildInput         `yaml:"child,omitempty" json:"child,omitempty"`
	FamilySupport *FamilySupportInput `yaml:"family_support,omitempty" json:"family_support,omitempty"`
}

// Clone returns a copy that shares no mutable state with p
func (p Plan) Clone() Plan {
	out := p
	if p.Child != nil {
		child := *p.Child
		out.Child = &child
	}
	out.FamilySupport = SupportOrNone(p.FamilySupport)
	return out
}
