package calculation

import (
	"github.com/rgehrsitz/hpgo/internal/domain"
	"github.com/shopspring/decimal"
)

// Amortize builds the month-by-month and year-by-year repayment schedule for
// a loan. A non-positive amount, or a term outside 1..MaxAmortizationYears,
// yields an empty schedule with a zeroed summary. Unknown methods fall back
// to fixed.
func Amortize(loanAmount, annualRatePct decimal.Decimal, termYears int, method domain.PaymentMethod) domain.AmortizationScheduleData {
	if !method.IsValid() {
		method = domain.PaymentFixed
	}

	schedule := domain.AmortizationScheduleData{
		LoanAmount: loanAmount,
		AnnualRate: annualRatePct,
		TermYears:  termYears,
		Method:     method,
		Monthly:    []domain.AmortizationMonth{},
		Yearly:     []domain.AmortizationYear{},
		Summary: domain.AmortizationSummary{
			TotalPayment:      decimalZero,
			TotalInterest:     decimalZero,
			FirstMonthPayment: decimalZero,
		},
	}
	if loanAmount.LessThanOrEqual(decimalZero) || !termInRange(termYears) {
		return schedule
	}

	months := termYears * 12
	rate := MonthlyLoanRate(annualRatePct)
	installment := fixedInstallment(loanAmount, rate, months)
	slice := principalSlice(loanAmount, months)

	schedule.Monthly = make([]domain.AmortizationMonth, 0, months)
	schedule.Yearly = make([]domain.AmortizationYear, 0, termYears)

	balance := loanAmount
	totalPayment := decimalZero
	totalInterest := decimalZero
	block := domain.AmortizationYear{Year: 1}

	for month := 1; month <= months; month++ {
		interest := balance.Mul(rate).Round(moneyScale)

		var principal, payment decimal.Decimal
		if method == domain.PaymentDecreasing {
			principal = slice
			payment = principal.Add(interest)
		} else {
			payment = installment
			principal = payment.Sub(interest)
		}

		// Final month absorbs rounding drift so the balance ends at exactly zero
		if month == months || principal.GreaterThan(balance) {
			principal = balance
			payment = principal.Add(interest)
		}

		balance = balance.Sub(principal)
		totalPayment = totalPayment.Add(payment)
		totalInterest = totalInterest.Add(interest)

		schedule.Monthly = append(schedule.Monthly, domain.AmortizationMonth{
			Month:            month,
			Payment:          payment,
			Principal:        principal,
			Interest:         interest,
			RemainingBalance: balance,
		})

		block.TotalPayment = block.TotalPayment.Add(payment)
		block.TotalPrincipal = block.TotalPrincipal.Add(principal)
		block.TotalInterest = block.TotalInterest.Add(interest)
		if month%12 == 0 || month == months {
			block.RemainingBalance = balance
			schedule.Yearly = append(schedule.Yearly, block)
			block = domain.AmortizationYear{Year: block.Year + 1}
		}
	}

	schedule.Summary.TotalPayment = totalPayment
	schedule.Summary.TotalInterest = totalInterest
	schedule.Summary.FirstMonthPayment = schedule.Monthly[0].Payment
	if method == domain.PaymentDecreasing {
		last := schedule.Monthly[len(schedule.Monthly)-1].Payment
		schedule.Summary.LastMonthPayment = &last
	}

	return schedule
}

// MonthlyPayment returns the first-month payment Amortize would produce
// without building the schedule. This is the representative payment for
// the fixed method and the highest payment for the decreasing method.
func MonthlyPayment(loanAmount, annualRatePct decimal.Decimal, termYears int, method domain.PaymentMethod) decimal.Decimal {
	if loanAmount.LessThanOrEqual(decimalZero) || !termInRange(termYears) {
		return decimalZero
	}
	months := termYears * 12
	rate := MonthlyLoanRate(annualRatePct)
	if method == domain.PaymentDecreasing {
		return principalSlice(loanAmount, months).Add(loanAmount.Mul(rate).Round(moneyScale))
	}
	return fixedInstallment(loanAmount, rate, months)
}

func termInRange(termYears int) bool {
	return termYears > 0 && termYears <= domain.MaxAmortizationYears
}

// fixedInstallment is the annuity payment P*r / (1 - (1+r)^-m), or P/m at a zero rate
func fixedInstallment(principal, rate decimal.Decimal, months int) decimal.Decimal {
	if rate.IsZero() {
		return principalSlice(principal, months)
	}
	f := Compound(decimalOne.Add(rate), months)
	return principal.Mul(rate).Mul(f).Div(f.Sub(decimalOne)).Round(moneyScale)
}

func principalSlice(principal decimal.Decimal, months int) decimal.Decimal {
	return principal.Div(decimal.NewFromInt(int64(months))).Round(moneyScale)
}
