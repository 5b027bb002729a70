package transform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rgehrsitz/hpgo/internal/config"
	"github.com/rgehrsitz/hpgo/internal/domain"
	"github.com/shopspring/decimal"
)

// TransformRegistry provides a central registry for all available transforms.
// It enables creation of transforms from string parameters, useful for CLI
// flags and API requests.
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(params map[string]string) (PlanTransform, error)

// NewTransformRegistry creates a new registry with all built-in transforms registered.
func NewTransformRegistry() *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}

	registry.Register("set_rate", createSetRate)
	registry.Register("adjust_rate", createAdjustRate)
	registry.Register("delay_purchase", createDelayPurchase)
	registry.Register("set_house_price", createSetHousePrice)
	registry.Register("set_loan_term", createSetLoanTerm)
	registry.Register("set_payment_method", createSetPaymentMethod)
	registry.Register("scale_expenses", createScaleExpenses)
	registry.Register("scale_income", createScaleIncome)
	registry.Register("set_monthly_income", createSetMonthlyIncome)
	registry.Register("set_initial_savings", createSetInitialSavings)
	registry.Register("set_family_support", createSetFamilySupport)
	registry.Register("add_child", createAddChild)

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (PlanTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}

	return factory(params)
}

// List returns the names of all registered transforms in sorted order.
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseTransformSpec parses a transform specification string.
// Format: "transform_name:param1=value1,param2=value2"
// Example: "adjust_rate:field=loan_rate,delta=2"
func (r *TransformRegistry) ParseTransformSpec(spec string) (PlanTransform, error) {
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid transform spec format, expected 'name:params', got: %s", spec)
	}

	name := strings.TrimSpace(parts[0])
	paramsStr := strings.TrimSpace(parts[1])

	params := make(map[string]string)
	if paramsStr != "" {
		for _, paramPair := range strings.Split(paramsStr, ",") {
			kv := strings.SplitN(paramPair, "=", 2)
			if len(kv) != 2 {
				return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", paramPair)
			}
			params[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
		}
	}

	return r.Create(name, params)
}

// ParseTransformSpecs parses several specs, e.g. from repeated CLI flags.
func (r *TransformRegistry) ParseTransformSpecs(specs []string) ([]PlanTransform, error) {
	transforms := make([]PlanTransform, 0, len(specs))
	for _, spec := range specs {
		t, err := r.ParseTransformSpec(spec)
		if err != nil {
			return nil, err
		}
		transforms = append(transforms, t)
	}
	return transforms, nil
}

// Factory functions for each transform

func requireParam(transform string, params map[string]string, key string) (string, error) {
	v, ok := params[key]
	if !ok || v == "" {
		return "", fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	return v, nil
}

func decimalParam(transform string, params map[string]string, key string) (decimal.Decimal, error) {
	s, err := requireParam(transform, params, key)
	if err != nil {
		return decimal.Zero, err
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}

func intParam(transform string, params map[string]string, key string) (int, error) {
	s, err := requireParam(transform, params, key)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}

func createSetRate(params map[string]string) (PlanTransform, error) {
	field, err := requireParam("set_rate", params, "field")
	if err != nil {
		return nil, err
	}
	value, err := decimalParam("set_rate", params, "value")
	if err != nil {
		return nil, err
	}
	return &SetRate{Field: RateField(field), Value: value}, nil
}

func createAdjustRate(params map[string]string) (PlanTransform, error) {
	field, err := requireParam("adjust_rate", params, "field")
	if err != nil {
		return nil, err
	}
	delta, err := decimalParam("adjust_rate", params, "delta")
	if err != nil {
		return nil, err
	}
	return &AdjustRate{Field: RateField(field), Delta: delta}, nil
}

func createDelayPurchase(params map[string]string) (PlanTransform, error) {
	years, err := intParam("delay_purchase", params, "years")
	if err != nil {
		return nil, err
	}
	return &DelayPurchase{Years: years}, nil
}

func createSetHousePrice(params map[string]string) (PlanTransform, error) {
	price, err := decimalParam("set_house_price", params, "price")
	if err != nil {
		return nil, err
	}
	return &SetHousePrice{Price: price}, nil
}

func createSetLoanTerm(params map[string]string) (PlanTransform, error) {
	years, err := intParam("set_loan_term", params, "years")
	if err != nil {
		return nil, err
	}
	return &SetLoanTerm{Years: years}, nil
}

func createSetPaymentMethod(params map[string]string) (PlanTransform, error) {
	method, err := requireParam("set_payment_method", params, "method")
	if err != nil {
		return nil, err
	}
	return &SetPaymentMethod{Method: domain.PaymentMethod(strings.ToLower(method))}, nil
}

func createScaleExpenses(params map[string]string) (PlanTransform, error) {
	pct, err := decimalParam("scale_expenses", params, "percent")
	if err != nil {
		return nil, err
	}
	return &ScaleExpenses{Percent: pct}, nil
}

func createScaleIncome(params map[string]string) (PlanTransform, error) {
	pct, err := decimalParam("scale_income", params, "percent")
	if err != nil {
		return nil, err
	}
	return &ScaleIncome{Percent: pct}, nil
}

func createSetMonthlyIncome(params map[string]string) (PlanTransform, error) {
	amount, err := decimalParam("set_monthly_income", params, "amount")
	if err != nil {
		return nil, err
	}
	return &SetMonthlyIncome{Amount: amount}, nil
}

func createSetInitialSavings(params map[string]string) (PlanTransform, error) {
	amount, err := decimalParam("set_initial_savings", params, "amount")
	if err != nil {
		return nil, err
	}
	return &SetInitialSavings{Amount: amount}, nil
}

// createSetFamilySupport accepts the same fields as a plan file's
// family_support block: type, timing, amount, rate, repayment, term.
// type=none removes support.
func createSetFamilySupport(params map[string]string) (PlanTransform, error) {
	kind, err := requireParam("set_family_support", params, "type")
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(kind, "none") {
		return &SetFamilySupport{Support: domain.NoSupport{}}, nil
	}

	amount, err := decimalParam("set_family_support", params, "amount")
	if err != nil {
		return nil, err
	}

	in := &domain.FamilySupportInput{
		Type:          kind,
		Timing:        params["timing"],
		Amount:        amount,
		RepaymentType: params["repayment"],
	}
	if s, ok := params["rate"]; ok {
		rate, err := decimal.NewFromString(s)
		if err != nil {
			return nil, fmt.Errorf("invalid rate value: %w", err)
		}
		in.InterestRate = &rate
	}
	if s, ok := params["term"]; ok {
		term, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("invalid term value: %w", err)
		}
		in.TermYears = term
	}

	if err := config.NewInputParser().ValidatePlanInput(&domain.PlanInput{FamilySupport: in}); err != nil {
		return nil, err
	}
	return &SetFamilySupport{Support: config.DecodeFamilySupport(in)}, nil
}

func createAddChild(params map[string]string) (PlanTransform, error) {
	year, err := intParam("add_child", params, "year")
	if err != nil {
		return nil, err
	}
	cost, err := decimalParam("add_child", params, "cost")
	if err != nil {
		return nil, err
	}
	return &AddChild{BirthYear: year, MonthlyCost: cost}, nil
}
