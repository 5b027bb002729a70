package calculation

import (
	"github.com/rgehrsitz/hpgo/internal/domain"
	"github.com/shopspring/decimal"
)

// initialInjection is the family money folded into savings before year 0
func initialInjection(fs domain.FamilySupport) decimal.Decimal {
	if g, ok := fs.(domain.GiftNow); ok {
		return maxZero(g.Amount)
	}
	return decimalZero
}

// purchaseInjection is the family money added to equity in the purchase year
func purchaseInjection(fs domain.FamilySupport) decimal.Decimal {
	switch v := fs.(type) {
	case domain.GiftAtPurchase:
		return maxZero(v.Amount)
	case domain.LoanMonthly:
		return maxZero(v.Amount)
	case domain.LoanLumpSum:
		return maxZero(v.Amount)
	default:
		return decimalZero
	}
}

// FamilyLoanRepayment returns the annual amount the household pays back to
// family in projection year n, given the purchase index. Monthly loans are
// repaid as a fixed annuity for purchase < n <= purchase+term: the purchase
// year itself pays nothing and the last payment year is purchase+term, so a
// t-year loan is repaid over exactly t projection years. Lump-sum loans are
// repaid in full at exactly purchase+term.
func FamilyLoanRepayment(fs domain.FamilySupport, purchaseIndex, n int) decimal.Decimal {
	switch v := fs.(type) {
	case domain.LoanMonthly:
		if !termInRange(v.TermYears) || n <= purchaseIndex || n > purchaseIndex+v.TermYears {
			return decimalZero
		}
		installment := fixedInstallment(maxZero(v.Amount), MonthlyLoanRate(v.InterestRate), v.TermYears*12)
		return installment.Mul(decimalTwelve)
	case domain.LoanLumpSum:
		if n != purchaseIndex+v.TermYears {
			return decimalZero
		}
		return maxZero(v.Amount)
	default:
		return decimalZero
	}
}
