package transform

import (
	"fmt"

	"github.com/rgehrsitz/hpgo/internal/domain"
	"github.com/shopspring/decimal"
)

// DelayPurchase moves the target purchase year. Negative years bring it forward.
type DelayPurchase struct {
	Years int
}

func (dp *DelayPurchase) Name() string {
	return "delay_purchase"
}

func (dp *DelayPurchase) Description() string {
	if dp.Years < 0 {
		return fmt.Sprintf("Buy %d year(s) earlier", -dp.Years)
	}
	return fmt.Sprintf("Delay purchase by %d year(s)", dp.Years)
}

func (dp *DelayPurchase) Validate(base domain.Plan) error {
	if base.YearsToPurchase+dp.Years < 0 {
		return NewTransformError(dp.Name(), "validate",
			fmt.Sprintf("cannot move purchase %d years earlier when it is %d years away", -dp.Years, base.YearsToPurchase), nil)
	}
	if base.YearsToPurchase+dp.Years > domain.MaxPlanYears {
		return NewTransformError(dp.Name(), "validate",
			fmt.Sprintf("purchase cannot be more than %d years away", domain.MaxPlanYears), nil)
	}
	return nil
}

func (dp *DelayPurchase) Apply(base domain.Plan) (domain.Plan, error) {
	modified := base.Clone()
	modified.YearsToPurchase += dp.Years
	return modified, nil
}

// SetHousePrice replaces the target house price (today's value).
type SetHousePrice struct {
	Price decimal.Decimal
}

func (sp *SetHousePrice) Name() string {
	return "set_house_price"
}

func (sp *SetHousePrice) Description() string {
	return fmt.Sprintf("Target a house priced %s", sp.Price.StringFixed(0))
}

func (sp *SetHousePrice) Validate(base domain.Plan) error {
	if sp.Price.IsNegative() {
		return NewTransformError(sp.Name(), "validate", fmt.Sprintf("price must be non-negative, got %s", sp.Price), nil)
	}
	return nil
}

func (sp *SetHousePrice) Apply(base domain.Plan) (domain.Plan, error) {
	modified := base.Clone()
	modified.TargetHousePrice = sp.Price
	return modified, nil
}

// SetLoanTerm replaces the bank loan term.
type SetLoanTerm struct {
	Years int
}

func (st *SetLoanTerm) Name() string {
	return "set_loan_term"
}

func (st *SetLoanTerm) Description() string {
	return fmt.Sprintf("Use a %d-year loan", st.Years)
}

func (st *SetLoanTerm) Validate(base domain.Plan) error {
	if st.Years <= 0 || st.Years > domain.MaxLoanTermYears {
		return NewTransformError(st.Name(), "validate", fmt.Sprintf("loan term must be between 1 and %d years, got %d", domain.MaxLoanTermYears, st.Years), nil)
	}
	return nil
}

func (st *SetLoanTerm) Apply(base domain.Plan) (domain.Plan, error) {
	modified := base.Clone()
	modified.LoanTermYears = st.Years
	return modified, nil
}

// SetPaymentMethod switches between fixed and decreasing amortization.
type SetPaymentMethod struct {
	Method domain.PaymentMethod
}

func (sm *SetPaymentMethod) Name() string {
	return "set_payment_method"
}

func (sm *SetPaymentMethod) Description() string {
	return fmt.Sprintf("Repay with %s payments", sm.Method)
}

func (sm *SetPaymentMethod) Validate(base domain.Plan) error {
	if !sm.Method.IsValid() {
		return NewTransformError(sm.Name(), "validate", fmt.Sprintf("unknown payment method %q", sm.Method), nil)
	}
	return nil
}

func (sm *SetPaymentMethod) Apply(base domain.Plan) (domain.Plan, error) {
	modified := base.Clone()
	modified.PaymentMethod = sm.Method
	return modified, nil
}
