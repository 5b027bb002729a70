package calculation

import (
	"math"

	"github.com/shopspring/decimal"
)

// Precision used for intermediate values. Products are rounded at these
// scales so repeated compounding stays bounded and reproducible.
const (
	moneyScale int32 = 10
	rateScale  int32 = 18
)

var (
	decimalZero    = decimal.Zero
	decimalOne     = decimal.NewFromInt(1)
	decimalTwelve  = decimal.NewFromInt(12)
	decimalHundred = decimal.NewFromInt(100)
)

// GrowthFactor converts an annual percentage into a multiplicative factor (10 -> 1.10)
func GrowthFactor(pct decimal.Decimal) decimal.Decimal {
	return decimalOne.Add(pct.Div(decimalHundred))
}

// Compound returns base^n for n >= 0 using exponentiation by squaring.
// Negative n is treated as 0.
func Compound(base decimal.Decimal, n int) decimal.Decimal {
	result := decimalOne
	b := base
	for n > 0 {
		if n&1 == 1 {
			result = result.Mul(b).Round(rateScale)
		}
		b = b.Mul(b).Round(rateScale)
		n >>= 1
	}
	return result
}

// MonthlyRateFromAnnual returns the effective monthly rate equivalent to an
// annual percentage: (1+annual)^(1/12) - 1.
func MonthlyRateFromAnnual(annualPct decimal.Decimal) decimal.Decimal {
	a := GrowthFactor(annualPct)
	if a.Equal(decimalOne) {
		return decimalZero
	}
	if a.LessThanOrEqual(decimalZero) {
		return decimalOne.Neg()
	}

	// Newton refinement of a float seed keeps the result exact to rateScale
	x := decimal.NewFromFloat(math.Pow(a.InexactFloat64(), 1.0/12.0))
	for i := 0; i < 3; i++ {
		x11 := Compound(x, 11)
		x12 := x11.Mul(x).Round(rateScale)
		x = x.Sub(x12.Sub(a).Div(x11.Mul(decimalTwelve))).Round(rateScale)
	}
	return x.Sub(decimalOne)
}

// MonthlyLoanRate converts an annual loan rate in percent to the nominal monthly rate
func MonthlyLoanRate(annualPct decimal.Decimal) decimal.Decimal {
	return annualPct.Div(decimal.NewFromInt(1200)).Round(rateScale)
}

// AnnuityFactor is the future value of k end-of-month deposits of 1 at monthly rate m
func AnnuityFactor(m decimal.Decimal, k int) decimal.Decimal {
	if k <= 0 {
		return decimalZero
	}
	if m.IsZero() {
		return decimal.NewFromInt(int64(k))
	}
	return Compound(decimalOne.Add(m), k).Sub(decimalOne).Div(m).Round(rateScale)
}

func maxZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimalZero
	}
	return d
}
