package transform

import (
	"fmt"

	"github.com/rgehrsitz/hpgo/internal/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

func scaleBy(v, percent decimal.Decimal) decimal.Decimal {
	return v.Mul(hundred.Add(percent)).Div(hundred)
}

// ScaleExpenses changes monthly living expenses by a percentage (-10 means 10% less).
type ScaleExpenses struct {
	Percent decimal.Decimal
}

func (se *ScaleExpenses) Name() string {
	return "scale_expenses"
}

func (se *ScaleExpenses) Description() string {
	return fmt.Sprintf("Scale living expenses by %s%%", se.Percent.StringFixed(1))
}

func (se *ScaleExpenses) Validate(base domain.Plan) error {
	if se.Percent.LessThan(minGrowth) {
		return NewTransformError(se.Name(), "validate", fmt.Sprintf("percent cannot fall below -100, got %s", se.Percent), nil)
	}
	return nil
}

func (se *ScaleExpenses) Apply(base domain.Plan) (domain.Plan, error) {
	modified := base.Clone()
	modified.MonthlyLivingExpenses = scaleBy(base.MonthlyLivingExpenses, se.Percent)
	return modified, nil
}

// ScaleIncome changes the primary and spouse monthly income by a percentage.
type ScaleIncome struct {
	Percent decimal.Decimal
}

func (si *ScaleIncome) Name() string {
	return "scale_income"
}

func (si *ScaleIncome) Description() string {
	return fmt.Sprintf("Scale salaries by %s%%", si.Percent.StringFixed(1))
}

func (si *ScaleIncome) Validate(base domain.Plan) error {
	if si.Percent.LessThan(minGrowth) {
		return NewTransformError(si.Name(), "validate", fmt.Sprintf("percent cannot fall below -100, got %s", si.Percent), nil)
	}
	return nil
}

func (si *ScaleIncome) Apply(base domain.Plan) (domain.Plan, error) {
	modified := base.Clone()
	modified.MonthlyIncome = scaleBy(base.MonthlyIncome, si.Percent)
	modified.SpouseMonthlyIncome = scaleBy(base.SpouseMonthlyIncome, si.Percent)
	return modified, nil
}

// SetMonthlyIncome replaces the primary earner's monthly income.
type SetMonthlyIncome struct {
	Amount decimal.Decimal
}

func (si *SetMonthlyIncome) Name() string {
	return "set_monthly_income"
}

func (si *SetMonthlyIncome) Description() string {
	return fmt.Sprintf("Primary income of %s/month", si.Amount.StringFixed(2))
}

func (si *SetMonthlyIncome) Validate(base domain.Plan) error {
	if si.Amount.IsNegative() {
		return NewTransformError(si.Name(), "validate", fmt.Sprintf("amount must be non-negative, got %s", si.Amount), nil)
	}
	return nil
}

func (si *SetMonthlyIncome) Apply(base domain.Plan) (domain.Plan, error) {
	modified := base.Clone()
	modified.MonthlyIncome = si.Amount
	return modified, nil
}

// SetInitialSavings replaces the starting capital.
type SetInitialSavings struct {
	Amount decimal.Decimal
}

func (ss *SetInitialSavings) Name() string {
	return "set_initial_savings"
}

func (ss *SetInitialSavings) Description() string {
	return fmt.Sprintf("Start with %s saved", ss.Amount.StringFixed(0))
}

func (ss *SetInitialSavings) Validate(base domain.Plan) error {
	if ss.Amount.IsNegative() {
		return NewTransformError(ss.Name(), "validate", fmt.Sprintf("amount must be non-negative, got %s", ss.Amount), nil)
	}
	return nil
}

func (ss *SetInitialSavings) Apply(base domain.Plan) (domain.Plan, error) {
	modified := base.Clone()
	modified.InitialSavings = ss.Amount
	return modified, nil
}

// SetFamilySupport replaces the plan's family support. A nil Support removes it.
type SetFamilySupport struct {
	Support domain.FamilySupport
}

func (sf *SetFamilySupport) Name() string {
	return "set_family_support"
}

func (sf *SetFamilySupport) Description() string {
	fs := domain.SupportOrNone(sf.Support)
	if fs.Kind() == domain.SupportNone {
		return "Remove family support"
	}
	return fmt.Sprintf("Family support: %s of %s", fs.Kind(), fs.Principal().StringFixed(0))
}

func (sf *SetFamilySupport) Validate(base domain.Plan) error {
	switch v := domain.SupportOrNone(sf.Support).(type) {
	case domain.LoanMonthly:
		if v.TermYears <= 0 || v.TermYears > domain.MaxLoanTermYears {
			return NewTransformError(sf.Name(), "validate", fmt.Sprintf("family loan term must be between 1 and %d years, got %d", domain.MaxLoanTermYears, v.TermYears), nil)
		}
	case domain.LoanLumpSum:
		if v.TermYears <= 0 || v.TermYears > domain.MaxLoanTermYears {
			return NewTransformError(sf.Name(), "validate", fmt.Sprintf("family loan term must be between 1 and %d years, got %d", domain.MaxLoanTermYears, v.TermYears), nil)
		}
	}
	if domain.SupportOrNone(sf.Support).Principal().IsNegative() {
		return NewTransformError(sf.Name(), "validate", "amount must be non-negative", nil)
	}
	return nil
}

func (sf *SetFamilySupport) Apply(base domain.Plan) (domain.Plan, error) {
	modified := base.Clone()
	modified.FamilySupport = domain.SupportOrNone(sf.Support)
	return modified, nil
}

// AddChild sets the expected child event.
type AddChild struct {
	BirthYear   int
	MonthlyCost decimal.Decimal
}

func (ac *AddChild) Name() string {
	return "add_child"
}

func (ac *AddChild) Description() string {
	return fmt.Sprintf("Child in %d costing %s/month", ac.BirthYear, ac.MonthlyCost.StringFixed(1))
}

func (ac *AddChild) Validate(base domain.Plan) error {
	if !ac.MonthlyCost.IsPositive() {
		return NewTransformError(ac.Name(), "validate", fmt.Sprintf("monthly cost must be positive, got %s", ac.MonthlyCost), nil)
	}
	return nil
}

func (ac *AddChild) Apply(base domain.Plan) (domain.Plan, error) {
	modified := base.Clone()
	year := ac.BirthYear
	if year == 0 {
		year = base.BaseYear
	}
	modified.Child = &domain.ChildPlan{BirthYear: year, MonthlyCost: ac.MonthlyCost}
	return modified, nil
}
