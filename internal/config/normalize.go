package config

import (
	"strings"
	"time"

	"github.com/rgehrsitz/hpgo/internal/domain"
	"github.com/shopspring/decimal"
)

// Plan defaults applied when a field is missing
const (
	DefaultYearsToPurchase      = 3
	DefaultLookaheadYears       = 5
	DefaultLoanTermYears        = 25
	DefaultFamilyLoanTermYears  = 5
	DefaultPaymentMethod        = domain.PaymentFixed
	DefaultSalaryGrowthRate     = 7
	DefaultHouseGrowthRate      = 10
	DefaultExpenseGrowthRate    = 4
	DefaultInvestmentReturnRate = 9
	DefaultLoanInterestRate     = 11
)

const (
	supportTypeGift         = "GIFT"
	supportTypeLoan         = "LOAN"
	supportTimingNow        = "NOW"
	supportTimingAtPurchase = "AT_PURCHASE"
	repaymentMonthly        = "MONTHLY"
	repaymentLumpSum        = "LUMP_SUM"
)

var minGrowthRate = decimal.NewFromInt(-100)

// Normalize turns a partial plan into a complete one. It never fails:
// missing values take defaults, negative money is clamped to zero,
// growth rates are floored at -100%, and year counts are clamped to the
// domain limits. asOf supplies the base year and the
// creation month when the input omits them.
func Normalize(input domain.PlanInput, asOf time.Time) domain.Plan {
	salaryGrowth := growthOr(input.SalaryGrowthRate, DefaultSalaryGrowthRate)
	spouseGrowth := salaryGrowth
	if input.SpouseSalaryGrowthRate != nil {
		spouseGrowth = clampGrowth(*input.SpouseSalaryGrowthRate)
	}

	plan := domain.Plan{
		Name:                   strings.TrimSpace(input.Name),
		BaseYear:               intOr(input.BaseYear, asOf.Year()),
		StartMonth:             clampMonth(intOr(input.StartMonth, int(asOf.Month()))),
		YearsToPurchase:        clampYears(intOr(input.YearsToPurchase, DefaultYearsToPurchase), domain.MaxPlanYears),
		LookaheadYears:         clampYears(intOr(input.LookaheadYears, DefaultLookaheadYears), domain.MaxPlanYears),
		TargetHousePrice:       moneyOr(input.TargetHousePrice),
		HouseGrowthRate:        growthOr(input.HouseGrowthRate, DefaultHouseGrowthRate),
		SalaryGrowthRate:       salaryGrowth,
		SpouseSalaryGrowthRate: spouseGrowth,
		ExpenseGrowthRate:      growthOr(input.ExpenseGrowthRate, DefaultExpenseGrowthRate),
		InvestmentReturnRate:   growthOr(input.InvestmentReturnRate, DefaultInvestmentReturnRate),
		MonthlyIncome:          moneyOr(input.MonthlyIncome),
		SpouseMonthlyIncome:    moneyOr(input.SpouseMonthlyIncome),
		OtherMonthlyIncome:     moneyOr(input.OtherMonthlyIncome),
		MonthlyLivingExpenses:  moneyOr(input.MonthlyLivingExpenses),
		MonthlyDebtPayment:     moneyOr(input.MonthlyDebtPayment),
		AnnualInsurancePremium: moneyOr(input.AnnualInsurancePremium),
		InitialSavings:         moneyOr(input.InitialSavings),
		LoanInterestRate:       nonNegativeRate(input.LoanInterestRate, DefaultLoanInterestRate),
		LoanTermYears:          min(positiveOr(input.LoanTermYears, DefaultLoanTermYears), domain.MaxLoanTermYears),
		PaymentMethod:          normalizeMethod(input.PaymentMethod),
		FamilySupport:          DecodeFamilySupport(input.FamilySupport),
	}

	if input.Child != nil && input.Child.MonthlyCost.GreaterThan(decimal.Zero) {
		birth := input.Child.BirthYear
		if birth == 0 {
			birth = plan.BaseYear
		}
		plan.Child = &domain.ChildPlan{BirthYear: birth, MonthlyCost: input.Child.MonthlyCost}
	}

	return plan
}

// DecodeFamilySupport maps the loosely-typed record onto the closed variant.
// Type/timing/repayment strings are matched case-insensitively. A missing
// record, unknown type, or non-positive amount decodes to NoSupport.
func DecodeFamilySupport(in *domain.FamilySupportInput) domain.FamilySupport {
	if in == nil || in.Amount.LessThanOrEqual(decimal.Zero) {
		return domain.NoSupport{}
	}

	switch strings.ToUpper(strings.TrimSpace(in.Type)) {
	case supportTypeGift:
		if strings.ToUpper(strings.TrimSpace(in.Timing)) == supportTimingNow {
			return domain.GiftNow{Amount: in.Amount}
		}
		return domain.GiftAtPurchase{Amount: in.Amount}
	case supportTypeLoan:
		rate := decimal.Zero
		if in.InterestRate != nil && in.InterestRate.GreaterThan(decimal.Zero) {
			rate = *in.InterestRate
		}
		term := in.TermYears
		if term <= 0 {
			term = DefaultFamilyLoanTermYears
		}
		term = min(term, domain.MaxLoanTermYears)
		if strings.ToUpper(strings.TrimSpace(in.RepaymentType)) == repaymentLumpSum {
			return domain.LoanLumpSum{Amount: in.Amount, InterestRate: rate, TermYears: term}
		}
		return domain.LoanMonthly{Amount: in.Amount, InterestRate: rate, TermYears: term}
	default:
		return domain.NoSupport{}
	}
}

// EncodeFamilySupport is the inverse of DecodeFamilySupport, used when a
// normalized plan is written back out as an input document.
func EncodeFamilySupport(fs domain.FamilySupport) *domain.FamilySupportInput {
	switch v := domain.SupportOrNone(fs).(type) {
	case domain.GiftNow:
		return &domain.FamilySupportInput{Type: supportTypeGift, Timing: supportTimingNow, Amount: v.Amount}
	case domain.GiftAtPurchase:
		return &domain.FamilySupportInput{Type: supportTypeGift, Timing: supportTimingAtPurchase, Amount: v.Amount}
	case domain.LoanMonthly:
		rate := v.InterestRate
		return &domain.FamilySupportInput{Type: supportTypeLoan, Amount: v.Amount, InterestRate: &rate, RepaymentType: repaymentMonthly, TermYears: v.TermYears}
	case domain.LoanLumpSum:
		rate := v.InterestRate
		return &domain.FamilySupportInput{Type: supportTypeLoan, Amount: v.Amount, InterestRate: &rate, RepaymentType: repaymentLumpSum, TermYears: v.TermYears}
	default:
		return nil
	}
}

// ToInput converts a normalized plan back into a fully specified input
func ToInput(plan domain.Plan) domain.PlanInput {
	in := domain.PlanInput{
		Name:                   plan.Name,
		BaseYear:               intPtr(plan.BaseYear),
		StartMonth:             intPtr(plan.StartMonth),
		YearsToPurchase:        intPtr(plan.YearsToPurchase),
		LookaheadYears:         intPtr(plan.LookaheadYears),
		TargetHousePrice:       decPtr(plan.TargetHousePrice),
		HouseGrowthRate:        decPtr(plan.HouseGrowthRate),
		SalaryGrowthRate:       decPtr(plan.SalaryGrowthRate),
		SpouseSalaryGrowthRate: decPtr(plan.SpouseSalaryGrowthRate),
		ExpenseGrowthRate:      decPtr(plan.ExpenseGrowthRate),
		InvestmentReturnRate:   decPtr(plan.InvestmentReturnRate),
		MonthlyIncome:          decPtr(plan.MonthlyIncome),
		SpouseMonthlyIncome:    decPtr(plan.SpouseMonthlyIncome),
		OtherMonthlyIncome:     decPtr(plan.OtherMonthlyIncome),
		MonthlyLivingExpenses:  decPtr(plan.MonthlyLivingExpenses),
		MonthlyDebtPayment:     decPtr(plan.MonthlyDebtPayment),
		AnnualInsurancePremium: decPtr(plan.AnnualInsurancePremium),
		InitialSavings:         decPtr(plan.InitialSavings),
		LoanInterestRate:       decPtr(plan.LoanInterestRate),
		LoanTermYears:          intPtr(plan.LoanTermYears),
		PaymentMethod:          string(plan.PaymentMethod),
		FamilySupport:          EncodeFamilySupport(plan.FamilySupport),
	}
	if plan.Child != nil {
		in.Child = &domain.ChildInput{BirthYear: plan.Child.BirthYear, MonthlyCost: plan.Child.MonthlyCost}
	}
	return in
}

func normalizeMethod(s string) domain.PaymentMethod {
	m := domain.PaymentMethod(strings.ToLower(strings.TrimSpace(s)))
	if !m.IsValid() {
		return DefaultPaymentMethod
	}
	return m
}

func intOr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}

func positiveOr(v *int, def int) int {
	if v == nil || *v <= 0 {
		return def
	}
	return *v
}

func clampYears(v, limit int) int {
	return min(max(v, 0), limit)
}

func clampMonth(m int) int {
	if m < 1 {
		return 1
	}
	if m > 12 {
		return 12
	}
	return m
}

func moneyOr(v *decimal.Decimal) decimal.Decimal {
	if v == nil || v.IsNegative() {
		return decimal.Zero
	}
	return *v
}

func growthOr(v *decimal.Decimal, def int64) decimal.Decimal {
	if v == nil {
		return decimal.NewFromInt(def)
	}
	return clampGrowth(*v)
}

func clampGrowth(v decimal.Decimal) decimal.Decimal {
	if v.LessThan(minGrowthRate) {
		return minGrowthRate
	}
	return v
}

func nonNegativeRate(v *decimal.Decimal, def int64) decimal.Decimal {
	if v == nil {
		return decimal.NewFromInt(def)
	}
	if v.IsNegative() {
		return decimal.Zero
	}
	return *v
}

func intPtr(v int) *int { return &v }

func decPtr(v decimal.Decimal) *decimal.Decimal { return &v }
