package output

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rgehrsitz/hpgo/internal/affordability"
	"github.com/rgehrsitz/hpgo/internal/calculation"
	"github.com/rgehrsitz/hpgo/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func referencePlan() domain.Plan {
	return domain.Plan{
		Name:                   "reference",
		BaseYear:               2025,
		StartMonth:             1,
		YearsToPurchase:        3,
		LookaheadYears:         5,
		TargetHousePrice:       d(2000),
		HouseGrowthRate:        d(10),
		SalaryGrowthRate:       d(7),
		SpouseSalaryGrowthRate: d(7),
		ExpenseGrowthRate:      d(4),
		InvestmentReturnRate:   d(9),
		MonthlyIncome:          d(25),
		MonthlyLivingExpenses:  d(10),
		InitialSavings:         d(500),
		LoanInterestRate:       d(11),
		LoanTermYears:          25,
		PaymentMethod:          domain.PaymentFixed,
		FamilySupport:          domain.NoSupport{},
	}
}

func projectionReport(t *testing.T) *Report {
	t.Helper()
	plan := referencePlan()
	rows := calculation.NewCalculationEngine().Project(plan, 0)
	require.Len(t, rows, 9)
	return NewProjectionReport(plan, rows, affordability.Assess(plan, rows, 3))
}

func scheduleReport(view ScheduleView) *Report {
	return NewAmortizationReport(calculation.Amortize(d(1200), decimal.Zero, 1, domain.PaymentFixed), view)
}

func TestFormatterRegistry(t *testing.T) {
	assert.Equal(t, []string{"console", "console-lite", "csv", "html", "json", "yaml"}, AvailableFormatterNames())

	for _, name := range AvailableFormatterNames() {
		f := GetFormatterByName(name)
		require.NotNil(t, f, name)
		assert.Equal(t, name, f.Name())
	}

	assert.Nil(t, GetFormatterByName("pdf"))
}

func TestFormatterFunc(t *testing.T) {
	var received *Report
	f := FormatterFunc{
		ID: "test-formatter",
		F: func(r *Report) ([]byte, error) {
			received = r
			return []byte("test output"), nil
		},
	}

	report := scheduleReport(ScheduleYearly)
	out, err := f.Format(report)

	require.NoError(t, err)
	assert.Equal(t, "test-formatter", f.Name())
	assert.Same(t, report, received)
	assert.Equal(t, []byte("test output"), out)
}

func TestWriteFormatted(t *testing.T) {
	dir := t.TempDir()
	f := FormatterFunc{ID: "txt", F: func(*Report) ([]byte, error) { return []byte("content"), nil }}

	filename, err := WriteFormatted(f, scheduleReport(ScheduleYearly), dir, "txt")
	require.NoError(t, err)

	assert.Equal(t, dir, filepath.Dir(filename))
	assert.True(t, strings.HasPrefix(filepath.Base(filename), "hpgo_report_"))
	assert.Equal(t, ".txt", filepath.Ext(filename))

	content, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.Equal(t, "content", string(content))

	failing := FormatterFunc{ID: "bad", F: func(*Report) ([]byte, error) { return nil, errors.New("formatter error") }}
	filename, err = WriteFormatted(failing, scheduleReport(ScheduleYearly), dir, "txt")
	assert.Empty(t, filename)
	assert.EqualError(t, err, "formatter error")
}

func TestNewProjectionReport_RoundsRows(t *testing.T) {
	report := projectionReport(t)

	assert.NotEqual(t, uuid.Nil, report.RunID)
	assert.Equal(t, "reference", report.PlanName())
	require.NotNil(t, report.Plan)
	assert.Equal(t, 3, *report.Plan.YearsToPurchase)
	assert.NotEmpty(t, report.Assumptions)

	assert.Equal(t, "2662", report.Rows[3].HousePrice.String())
	for _, r := range report.Rows {
		assert.True(t, r.CumulativeSavings.Equal(r.CumulativeSavings.Round(0)), "year %d is rounded", r.Year)
	}

	// Row 0 buffer is about 0.45; it rounds to 0 but the flag comes from the exact value
	assert.Equal(t, "0", report.Rows[0].Buffer.String())
	assert.True(t, report.Rows[0].IsAffordable)
}

func TestConsoleFormatter_Projection(t *testing.T) {
	out, err := ConsoleFormatter{}.Format(projectionReport(t))
	require.NoError(t, err)
	content := string(out)

	assert.Contains(t, content, "HOME PURCHASE PROJECTION: reference")
	assert.Contains(t, content, "KEY ASSUMPTIONS:")
	assert.Contains(t, content, "* House prices grow 10.00% a year")
	assert.Contains(t, content, "Outcome:            on-target")
	assert.Contains(t, content, "First Viable Year:  2026")
	assert.Contains(t, content, "IN THE TARGET YEAR (2028):")
	assert.Contains(t, content, "PURCHASE OPTIONS:")
	assert.Contains(t, content, "2028 (target year)")
	assert.NotContains(t, content, "AMORTIZATION SCHEDULE")
}

func TestConsoleFormatter_Schedule(t *testing.T) {
	out, err := ConsoleFormatter{}.Format(scheduleReport(ScheduleYearly))
	require.NoError(t, err)
	content := string(out)

	assert.Contains(t, content, "AMORTIZATION SCHEDULE")
	assert.Contains(t, content, "First Payment:   100.00")
	assert.Contains(t, content, "Total Interest:  0.00")
	assert.Contains(t, content, "1200.00")
	assert.NotContains(t, content, "HOME PURCHASE PROJECTION")

	out, err = ConsoleFormatter{}.Format(scheduleReport(ScheduleMonthly))
	require.NoError(t, err)
	assert.Contains(t, string(out), "Month")
	assert.Contains(t, string(out), fmt.Sprintf("%6d %14s %14s %14s %16s\n", 12, "100.00", "100.00", "0.00", "0.00"))

	empty := NewAmortizationReport(calculation.Amortize(decimal.Zero, d(5), 10, domain.PaymentFixed), "")
	out, err = ConsoleFormatter{}.Format(empty)
	require.NoError(t, err)
	assert.Contains(t, string(out), "No loan needed.")
	assert.Equal(t, ScheduleYearly, empty.ScheduleView)
}

func TestConsoleLiteFormatter(t *testing.T) {
	out, err := ConsoleLiteFormatter{}.Format(projectionReport(t))
	require.NoError(t, err)
	content := string(out)

	assert.Contains(t, content, "HOME PURCHASE SUMMARY: reference")
	assert.Contains(t, content, "on-target")
	assert.NotContains(t, content, "KEY ASSUMPTIONS")
}

func TestConsoleLiteFormatter_ConfirmedPurchase(t *testing.T) {
	report := projectionReport(t)
	year := 2026
	summary, err := affordability.SummarizeForPurchaseYear(report.Rows, &year)
	require.NoError(t, err)
	report.Purchase = &summary

	out, err := ConsoleLiteFormatter{}.Format(report)
	require.NoError(t, err)
	assert.Contains(t, string(out), "CONFIRMED PURCHASE (2026):")
	assert.Contains(t, string(out), "Affordable:         true")
}

func TestConsoleFormatter_NeverAffordable(t *testing.T) {
	plan := referencePlan()
	plan.TargetHousePrice = d(1000000)
	rows := calculation.NewCalculationEngine().Project(plan, 0)
	report := NewProjectionReport(plan, rows, affordability.Assess(plan, rows, 3))

	out, err := ConsoleFormatter{}.Format(report)
	require.NoError(t, err)

	assert.Contains(t, string(out), "First Viable Year:  none")
	assert.Contains(t, string(out), "No simulated year is affordable.")
}

func TestCSVFormatter(t *testing.T) {
	out, err := CSVFormatter{}.Format(projectionReport(t))
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(out))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 10)
	assert.Equal(t, "Year", records[0][0])
	assert.Equal(t, "IsAffordable", records[0][len(records[0])-1])
	assert.Equal(t, []string{"2028", "3", "2662"}, records[4][:3])

	out, err = CSVFormatter{}.Format(scheduleReport(ScheduleMonthly))
	require.NoError(t, err)
	records, err = csv.NewReader(strings.NewReader(string(out))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 13)
	assert.Equal(t, []string{"12", "100.00", "100.00", "0.00", "0.00"}, records[12])

	out, err = CSVFormatter{}.Format(scheduleReport(ScheduleYearly))
	require.NoError(t, err)
	assert.Equal(t, "Year,TotalPayment,TotalPrincipal,TotalInterest,RemainingBalance\n1,1200.00,1200.00,0.00,0.00\n", string(out))
}

func TestJSONFormatter(t *testing.T) {
	report := projectionReport(t)
	out, err := JSONFormatter{}.Format(report)
	require.NoError(t, err)

	var decoded struct {
		RunID      string                   `json:"runId"`
		Rows       []map[string]interface{} `json:"rows"`
		Assessment struct {
			Result struct {
				Outcome         string `json:"outcome"`
				FirstViableYear int    `json:"firstViableYear"`
			} `json:"result"`
		} `json:"assessment"`
		Schedule interface{} `json:"schedule"`
	}
	require.NoError(t, json.Unmarshal(out, &decoded))

	assert.Equal(t, report.RunID.String(), decoded.RunID)
	assert.Len(t, decoded.Rows, 9)
	assert.Equal(t, "on-target", decoded.Assessment.Result.Outcome)
	assert.Equal(t, 2026, decoded.Assessment.Result.FirstViableYear)
	assert.Nil(t, decoded.Schedule)
}

func TestYAMLFormatter(t *testing.T) {
	out, err := YAMLFormatter{}.Format(projectionReport(t))
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, yaml.Unmarshal(out, &decoded))

	assert.Contains(t, decoded, "run_id")
	assert.Contains(t, decoded, "assumptions")
	rows, ok := decoded["rows"].([]interface{})
	require.True(t, ok)
	assert.Len(t, rows, 9)
}

func TestHTMLFormatter(t *testing.T) {
	out, err := HTMLFormatter{}.Format(projectionReport(t))
	require.NoError(t, err)
	content := string(out)

	assert.Contains(t, content, "<!DOCTYPE html>")
	assert.Contains(t, content, "<title>Home Purchase Projection - reference</title>")
	assert.Contains(t, content, "on-target")
	assert.Contains(t, content, "<td>2662</td>")

	out, err = HTMLFormatter{}.Format(scheduleReport(ScheduleYearly))
	require.NoError(t, err)
	assert.Contains(t, string(out), "Amortization (fixed)")
	assert.Contains(t, string(out), "unnamed plan")
}

func TestPlanAssumptions(t *testing.T) {
	plan := referencePlan()
	plan.FamilySupport = domain.LoanMonthly{Amount: d(300), InterestRate: d(2), TermYears: 5}
	plan.Child = &domain.ChildPlan{BirthYear: 2027, MonthlyCost: decimal.NewFromFloat(1.5)}

	assumptions := PlanAssumptions(plan)

	assert.Contains(t, assumptions, "Bank loan at 11.00% over 25 years, fixed payments")
	assert.Contains(t, assumptions, "Family loan of 300 at 2.00%, repaid monthly over 5 years")
	assert.Contains(t, assumptions, "Child expected in 2027, costing 1.50 a month in today's money")

	plan.FamilySupport = domain.GiftNow{Amount: d(50)}
	assert.Contains(t, PlanAssumptions(plan), "Family gift of 50 received now")
}
