package transform

import (
	"fmt"
	"sort"

	"github.com/rgehrsitz/hpgo/internal/domain"
	"github.com/shopspring/decimal"
)

// RateField names a percentage assumption in a plan
type RateField string

const (
	RateHouseGrowth        RateField = "house_growth"
	RateSalaryGrowth       RateField = "salary_growth"
	RateSpouseSalaryGrowth RateField = "spouse_salary_growth"
	RateExpenseGrowth      RateField = "expense_growth"
	RateInvestmentReturn   RateField = "investment_return"
	RateLoanInterest       RateField = "loan_rate"
)

var (
	minGrowth = decimal.NewFromInt(-100)
	maxRate   = decimal.NewFromInt(100)
)

// rateAccessors maps each field to a pointer into a plan
var rateAccessors = map[RateField]func(p *domain.Plan) *decimal.Decimal{
	RateHouseGrowth:        func(p *domain.Plan) *decimal.Decimal { return &p.HouseGrowthRate },
	RateSalaryGrowth:       func(p *domain.Plan) *decimal.Decimal { return &p.SalaryGrowthRate },
	RateSpouseSalaryGrowth: func(p *domain.Plan) *decimal.Decimal { return &p.SpouseSalaryGrowthRate },
	RateExpenseGrowth:      func(p *domain.Plan) *decimal.Decimal { return &p.ExpenseGrowthRate },
	RateInvestmentReturn:   func(p *domain.Plan) *decimal.Decimal { return &p.InvestmentReturnRate },
	RateLoanInterest:       func(p *domain.Plan) *decimal.Decimal { return &p.LoanInterestRate },
}

// RateFields lists the adjustable rate fields in a stable order
func RateFields() []RateField {
	fields := make([]RateField, 0, len(rateAccessors))
	for f := range rateAccessors {
		fields = append(fields, f)
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i] < fields[j] })
	return fields
}

// RateValue reads a rate field from a plan
func RateValue(p domain.Plan, field RateField) (decimal.Decimal, bool) {
	get, ok := rateAccessors[field]
	if !ok {
		return decimal.Zero, false
	}
	return *get(&p), true
}

// validRate checks the bounds Normalize would enforce for a field
func validRate(field RateField, v decimal.Decimal) error {
	if field == RateLoanInterest {
		if v.IsNegative() || v.GreaterThan(maxRate) {
			return fmt.Errorf("loan rate must be between 0 and 100, got %s", v)
		}
		return nil
	}
	if v.LessThan(minGrowth) {
		return fmt.Errorf("%s cannot fall below -100, got %s", field, v)
	}
	return nil
}

// SetRate replaces a rate assumption with an absolute value (percent).
type SetRate struct {
	Field RateField
	Value decimal.Decimal
}

func (sr *SetRate) Name() string {
	return "set_rate"
}

func (sr *SetRate) Description() string {
	return fmt.Sprintf("Set %s to %s%%", sr.Field, sr.Value.StringFixed(2))
}

func (sr *SetRate) Validate(base domain.Plan) error {
	if _, ok := rateAccessors[sr.Field]; !ok {
		return NewTransformError(sr.Name(), "validate", fmt.Sprintf("unknown rate field %q", sr.Field), nil)
	}
	if err := validRate(sr.Field, sr.Value); err != nil {
		return NewTransformError(sr.Name(), "validate", "rate out of range", err)
	}
	return nil
}

func (sr *SetRate) Apply(base domain.Plan) (domain.Plan, error) {
	modified := base.Clone()
	*rateAccessors[sr.Field](&modified) = sr.Value
	return modified, nil
}

// AdjustRate shifts a rate assumption by a number of percentage points.
type AdjustRate struct {
	Field RateField
	Delta decimal.Decimal // percentage points, may be negative
}

func (ar *AdjustRate) Name() string {
	return "adjust_rate"
}

func (ar *AdjustRate) Description() string {
	sign := "+"
	if ar.Delta.IsNegative() {
		sign = ""
	}
	return fmt.Sprintf("Shift %s by %s%s pts", ar.Field, sign, ar.Delta.StringFixed(2))
}

func (ar *AdjustRate) Validate(base domain.Plan) error {
	current, ok := RateValue(base, ar.Field)
	if !ok {
		return NewTransformError(ar.Name(), "validate", fmt.Sprintf("unknown rate field %q", ar.Field), nil)
	}
	if err := validRate(ar.Field, current.Add(ar.Delta)); err != nil {
		return NewTransformError(ar.Name(), "validate", "adjusted rate out of range", err)
	}
	return nil
}

func (ar *AdjustRate) Apply(base domain.Plan) (domain.Plan, error) {
	modified := base.Clone()
	field := rateAccessors[ar.Field](&modified)
	*field = field.Add(ar.Delta)
	return modified, nil
}
