package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rgehrsitz/hpgo/internal/domain"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of plan files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a partial plan from a YAML or JSON file
func (ip *InputParser) LoadFromFile(filename string) (*domain.PlanInput, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	if strings.EqualFold(filepath.Ext(filename), ".json") {
		return ip.ParseJSON(data)
	}
	return ip.ParseYAML(data)
}

// ParseYAML decodes and validates a YAML plan document
func (ip *InputParser) ParseYAML(data []byte) (*domain.PlanInput, error) {
	var input domain.PlanInput
	if err := yaml.Unmarshal(data, &input); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidatePlanInput(&input); err != nil {
		return nil, fmt.Errorf("plan validation failed: %w", err)
	}
	return &input, nil
}

// ParseJSON decodes and validates a JSON plan document. Unknown fields are rejected.
func (ip *InputParser) ParseJSON(data []byte) (*domain.PlanInput, error) {
	var input domain.PlanInput
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&input); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	if err := ip.ValidatePlanInput(&input); err != nil {
		return nil, fmt.Errorf("plan validation failed: %w", err)
	}
	return &input, nil
}

// LoadPlan reads a plan file and returns the normalized plan
func (ip *InputParser) LoadPlan(filename string, asOf time.Time) (domain.Plan, error) {
	input, err := ip.LoadFromFile(filename)
	if err != nil {
		return domain.Plan{}, err
	}
	return Normalize(*input, asOf), nil
}

// ValidatePlanInput rejects values that cannot be interpreted at all.
// Out-of-range numbers are not errors here; Normalize clamps them.
func (ip *InputParser) ValidatePlanInput(input *domain.PlanInput) error {
	if input == nil {
		return fmt.Errorf("plan is required")
	}

	if input.PaymentMethod != "" {
		method := domain.PaymentMethod(strings.ToLower(strings.TrimSpace(input.PaymentMethod)))
		if !method.IsValid() {
			return domain.NewPlanError("payment_method", fmt.Sprintf("unknown payment method %q (want fixed or decreasing)", input.PaymentMethod), nil)
		}
	}

	if input.StartMonth != nil && (*input.StartMonth < 1 || *input.StartMonth > 12) {
		return domain.NewPlanError("start_month", fmt.Sprintf("must be between 1 and 12, got %d", *input.StartMonth), nil)
	}

	for _, f := range []struct {
		field string
		value *int
		limit int
	}{
		{"years_to_purchase", input.YearsToPurchase, domain.MaxPlanYears},
		{"lookahead_years", input.LookaheadYears, domain.MaxPlanYears},
		{"loan_term_years", input.LoanTermYears, domain.MaxLoanTermYears},
	} {
		if f.value != nil && *f.value > f.limit {
			return domain.NewPlanError(f.field, fmt.Sprintf("must be at most %d, got %d", f.limit, *f.value), nil)
		}
	}

	if input.FamilySupport != nil {
		if err := ip.validateFamilySupport(input.FamilySupport); err != nil {
			return fmt.Errorf("family support validation failed: %w", err)
		}
	}

	return nil
}

func (ip *InputParser) validateFamilySupport(fs *domain.FamilySupportInput) error {
	kind := strings.ToUpper(strings.TrimSpace(fs.Type))
	switch kind {
	case "", supportTypeGift, supportTypeLoan:
	default:
		return domain.NewPlanError("family_support.type", fmt.Sprintf("unknown support type %q (want GIFT or LOAN)", fs.Type), nil)
	}

	timing := strings.ToUpper(strings.TrimSpace(fs.Timing))
	switch timing {
	case "", supportTimingNow, supportTimingAtPurchase:
	default:
		return domain.NewPlanError("family_support.timing", fmt.Sprintf("unknown timing %q (want NOW or AT_PURCHASE)", fs.Timing), nil)
	}

	repayment := strings.ToUpper(strings.TrimSpace(fs.RepaymentType))
	switch repayment {
	case "", repaymentMonthly, repaymentLumpSum:
	default:
		return domain.NewPlanError("family_support.repayment_type", fmt.Sprintf("unknown repayment type %q (want MONTHLY or LUMP_SUM)", fs.RepaymentType), nil)
	}

	if fs.TermYears > domain.MaxLoanTermYears {
		return domain.NewPlanError("family_support.term_years", fmt.Sprintf("must be at most %d, got %d", domain.MaxLoanTermYears, fs.TermYears), nil)
	}

	return nil
}
