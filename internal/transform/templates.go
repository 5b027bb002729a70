package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rgehrsitz/hpgo/internal/domain"
	"github.com/shopspring/decimal"
)

// TemplateRegistry manages built-in plan templates
type TemplateRegistry struct {
	templates map[string]Template
}

// Template represents a named collection of transforms
type Template struct {
	Name        string
	Description string
	Transforms  []PlanTransform
}

// NewTemplateRegistry creates an empty template registry
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		templates: make(map[string]Template),
	}
}

// Register adds a template to the registry
func (tr *TemplateRegistry) Register(t Template) {
	tr.templates[strings.ToLower(t.Name)] = t
}

// Get retrieves a template by name (case-insensitive)
func (tr *TemplateRegistry) Get(name string) (Template, bool) {
	t, ok := tr.templates[strings.ToLower(name)]
	return t, ok
}

// List returns all registered template names in sorted order
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func pts(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

// CreateBuiltInTemplates creates a template registry with common what-if plans
func CreateBuiltInTemplates() *TemplateRegistry {
	registry := NewTemplateRegistry()

	// Market assumptions
	registry.Register(Template{
		Name:        "optimistic",
		Description: "Slower house prices, faster raises, better returns",
		Transforms: []PlanTransform{
			&AdjustRate{Field: RateHouseGrowth, Delta: pts(-2)},
			&AdjustRate{Field: RateSalaryGrowth, Delta: pts(2)},
			&AdjustRate{Field: RateInvestmentReturn, Delta: pts(1)},
		},
	})

	registry.Register(Template{
		Name:        "pessimistic",
		Description: "Faster house prices, slower raises, weaker returns",
		Transforms: []PlanTransform{
			&AdjustRate{Field: RateHouseGrowth, Delta: pts(3)},
			&AdjustRate{Field: RateSalaryGrowth, Delta: pts(-2)},
			&AdjustRate{Field: RateInvestmentReturn, Delta: pts(-3)},
		},
	})

	registry.Register(Template{
		Name:        "rate_shock",
		Description: "Bank loan rate 3 points higher",
		Transforms: []PlanTransform{
			&AdjustRate{Field: RateLoanInterest, Delta: pts(3)},
		},
	})

	registry.Register(Template{
		Name:        "rate_relief",
		Description: "Bank loan rate 2 points lower",
		Transforms: []PlanTransform{
			&AdjustRate{Field: RateLoanInterest, Delta: pts(-2)},
		},
	})

	// Loan structure
	registry.Register(Template{
		Name:        "decreasing_payment",
		Description: "Repay with constant principal and decreasing payments",
		Transforms: []PlanTransform{
			&SetPaymentMethod{Method: domain.PaymentDecreasing},
		},
	})

	registry.Register(Template{
		Name:        "longer_term",
		Description: "Stretch the loan to 30 years",
		Transforms: []PlanTransform{
			&SetLoanTerm{Years: 30},
		},
	})

	registry.Register(Template{
		Name:        "shorter_term",
		Description: "Repay the loan in 15 years",
		Transforms: []PlanTransform{
			&SetLoanTerm{Years: 15},
		},
	})

	// Timing and household
	for _, years := range []int{1, 2} {
		registry.Register(Template{
			Name:        fmt.Sprintf("delay_%dyr", years),
			Description: fmt.Sprintf("Buy %d year(s) later than planned", years),
			Transforms: []PlanTransform{
				&DelayPurchase{Years: years},
			},
		})
	}

	registry.Register(Template{
		Name:        "frugal",
		Description: "Cut living expenses by 10%",
		Transforms: []PlanTransform{
			&ScaleExpenses{Percent: pts(-10)},
		},
	})

	registry.Register(Template{
		Name:        "frugal_delay_1yr",
		Description: "Cut living expenses by 10% and buy a year later",
		Transforms: []PlanTransform{
			&ScaleExpenses{Percent: pts(-10)},
			&DelayPurchase{Years: 1},
		},
	})

	return registry
}
