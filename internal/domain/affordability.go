package domain

import (
	"github.com/shopspring/decimal"
)

// Outcome classifies a plan against the household's own target year
type Outcome string

const (
	// OutcomeOnTarget means the household can carry the mortgage at or before the target year
	OutcomeOnTarget Outcome = "on-target"
	// OutcomeOffTarget means affordability arrives later than the target year, or never
	OutcomeOffTarget Outcome = "off-target"
)

// AffordabilityResult is the Determiner's verdict. FirstViableYear is nil
// when no simulated year is affordable.
type AffordabilityResult struct {
	Outcome         Outcome `json:"outcome" yaml:"outcome"`
	FirstViableYear *int    `json:"firstViableYear" yaml:"first_viable_year"`
}

// IsOnTarget reports whether the outcome is on-target
func (a AffordabilityResult) IsOnTarget() bool {
	return a.Outcome == OutcomeOnTarget
}

// LoanSummary is a read-only view of one projection row sized as a purchase
type LoanSummary struct {
	Year              int             `json:"year" yaml:"year"`
	HousePrice        decimal.Decimal `json:"housePrice" yaml:"house_price"`
	EquityForPurchase decimal.Decimal `json:"equityForPurchase" yaml:"equity_for_purchase"`
	LoanAmount        decimal.Decimal `json:"loanAmount" yaml:"loan_amount"`
	LTVRatio          decimal.Decimal `json:"ltvRatio" yaml:"ltv_ratio"` // percent, 0-100
	MonthlyPayment    decimal.Decimal `json:"monthlyPayment" yaml:"monthly_payment"`
	MonthlyIncome     decimal.Decimal `json:"monthlyIncome" yaml:"monthly_income"`
	PaymentToIncome   decimal.Decimal `json:"paymentToIncome" yaml:"payment_to_income"` // percent
	MonthlySurplus    decimal.Decimal `json:"monthlySurplus" yaml:"monthly_surplus"`
	Buffer            decimal.Decimal `json:"buffer" yaml:"buffer"`
	BufferPct         decimal.Decimal `json:"bufferPct" yaml:"buffer_pct"` // percent of payment
	TotalPayment      decimal.Decimal `json:"totalPayment" yaml:"total_payment"`
	TotalInterest     decimal.Decimal `json:"totalInterest" yaml:"total_interest"`
	LoanTermYears     int             `json:"loanTermYears" yaml:"loan_term_years"`
	IsAffordable      bool            `json:"isAffordable" yaml:"is_affordable"`
}

// ViableYearOption is one purchase-year choice offered to the household
type ViableYearOption struct {
	LoanSummary     `yaml:",inline"`
	YearsFromTarget int  `json:"yearsFromTarget" yaml:"years_from_target"`
	IsTarget        bool `json:"isTarget" yaml:"is_target"`
}

// ComparisonData lists affordable purchase years next to the target year
type ComparisonData struct {
	TargetYear      int                `json:"targetYear" yaml:"target_year"`
	FirstViableYear *int               `json:"firstViableYear" yaml:"first_viable_year"`
	Target          *LoanSummary       `json:"target,omitempty" yaml:"target,omitempty"`
	Options         []ViableYearOption `json:"options" yaml:"options"`
}
