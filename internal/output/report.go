package output

import (
	"time"

	"github.com/google/uuid"
	"github.com/rgehrsitz/hpgo/internal/affordability"
	"github.com/rgehrsitz/hpgo/internal/config"
	"github.com/rgehrsitz/hpgo/internal/domain"
	"github.com/shopspring/decimal"
)

// ScheduleView selects how much of an amortization schedule a report shows
type ScheduleView string

const (
	ScheduleYearly  ScheduleView = "yearly"
	ScheduleMonthly ScheduleView = "monthly"
)

// Report is everything a formatter renders for one run. Projection rows are
// stored already rounded to whole currency units; the affordability flags
// and assessment come from the exact computation.
type Report struct {
	RunID       uuid.UUID `json:"runId" yaml:"run_id"`
	GeneratedAt time.Time `json:"generatedAt" yaml:"generated_at"`

	Plan        *domain.PlanInput `json:"plan,omitempty" yaml:"plan,omitempty"`
	Assumptions []string          `json:"assumptions,omitempty" yaml:"assumptions,omitempty"`

	Rows       []domain.ProjectionRow    `json:"rows,omitempty" yaml:"rows,omitempty"`
	Assessment *affordability.Assessment `json:"assessment,omitempty" yaml:"assessment,omitempty"`
	// Purchase is the loan for a year the household confirmed, if any
	Purchase *domain.LoanSummary `json:"purchase,omitempty" yaml:"purchase,omitempty"`

	Schedule     *domain.AmortizationScheduleData `json:"schedule,omitempty" yaml:"schedule,omitempty"`
	ScheduleView ScheduleView                     `json:"-" yaml:"-"`
}

// NewProjectionReport builds a report for a projected plan
func NewProjectionReport(plan domain.Plan, rows []domain.ProjectionRow, assessment affordability.Assessment) *Report {
	in := config.ToInput(plan)

	rounded := make([]domain.ProjectionRow, len(rows))
	for i, r := range rows {
		rounded[i] = r.Rounded()
	}

	return &Report{
		RunID:       uuid.New(),
		GeneratedAt: time.Now().UTC(),
		Plan:        &in,
		Assumptions: PlanAssumptions(plan),
		Rows:        rounded,
		Assessment:  &assessment,
	}
}

// NewAmortizationReport builds a report for a single loan schedule
func NewAmortizationReport(schedule domain.AmortizationScheduleData, view ScheduleView) *Report {
	if view != ScheduleMonthly {
		view = ScheduleYearly
	}
	return &Report{
		RunID:        uuid.New(),
		GeneratedAt:  time.Now().UTC(),
		Schedule:     &schedule,
		ScheduleView: view,
	}
}

// PlanName returns the plan's name, or a placeholder for schedule-only reports
func (r *Report) PlanName() string {
	if r.Plan == nil || r.Plan.Name == "" {
		return "unnamed plan"
	}
	return r.Plan.Name
}

// FormatCurrency formats a decimal as a whole currency amount
func FormatCurrency(amount decimal.Decimal) string {
	return amount.StringFixed(0)
}

// FormatAmount formats a decimal with two decimal places
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

// FormatPercentage formats a decimal as percentage
func FormatPercentage(amount decimal.Decimal) string {
	return amount.StringFixed(2) + "%"
}

// FormatYear renders an optional year, "none" when nil
func FormatYear(year *int) string {
	if year == nil {
		return "none"
	}
	return itoa(*year)
}
