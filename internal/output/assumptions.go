package output

import (
	"fmt"

	"github.com/rgehrsitz/hpgo/internal/domain"
)

// PlanAssumptions lists the modeling assumptions a projection ran with
func PlanAssumptions(plan domain.Plan) []string {
	assumptions := []string{
		fmt.Sprintf("House prices grow %s a year", FormatPercentage(plan.HouseGrowthRate)),
		fmt.Sprintf("Salaries grow %s a year (spouse %s)", FormatPercentage(plan.SalaryGrowthRate), FormatPercentage(plan.SpouseSalaryGrowthRate)),
		fmt.Sprintf("Living costs grow %s a year", FormatPercentage(plan.ExpenseGrowthRate)),
		fmt.Sprintf("Savings earn %s a year, compounded monthly", FormatPercentage(plan.InvestmentReturnRate)),
		fmt.Sprintf("Bank loan at %s over %d years, %s payments", FormatPercentage(plan.LoanInterestRate), plan.LoanTermYears, plan.PaymentMethod),
	}

	switch fs := domain.SupportOrNone(plan.FamilySupport).(type) {
	case domain.GiftNow:
		assumptions = append(assumptions, fmt.Sprintf("Family gift of %s received now", FormatCurrency(fs.Amount)))
	case domain.GiftAtPurchase:
		assumptions = append(assumptions, fmt.Sprintf("Family gift of %s received at purchase", FormatCurrency(fs.Amount)))
	case domain.LoanMonthly:
		assumptions = append(assumptions, fmt.Sprintf("Family loan of %s at %s, repaid monthly over %d years",
			FormatCurrency(fs.Amount), FormatPercentage(fs.InterestRate), fs.TermYears))
	case domain.LoanLumpSum:
		assumptions = append(assumptions, fmt.Sprintf("Family loan of %s, repaid in full after %d years",
			FormatCurrency(fs.Amount), fs.TermYears))
	}

	if plan.Child != nil {
		assumptions = append(assumptions, fmt.Sprintf("Child expected in %d, costing %s a month in today's money",
			plan.Child.BirthYear, FormatAmount(plan.Child.MonthlyCost)))
	}

	return assumptions
}
