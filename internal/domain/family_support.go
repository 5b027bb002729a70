package domain

import (
	"github.com/shopspring/decimal"
)

// SupportKind names the concrete FamilySupport variant
type SupportKind string

const (
	SupportNone           SupportKind = "none"
	SupportGiftNow        SupportKind = "gift_now"
	SupportGiftAtPurchase SupportKind = "gift_at_purchase"
	SupportLoanMonthly    SupportKind = "loan_monthly"
	SupportLoanLumpSum    SupportKind = "loan_lump_sum"
)

// FamilySupport is a closed set of family contributions. The only
// implementations are NoSupport, GiftNow, GiftAtPurchase, LoanMonthly and
// LoanLumpSum.
type FamilySupport interface {
	Kind() SupportKind
	// Principal is the amount the family hands over (zero for NoSupport)
	Principal() decimal.Decimal
	familySupport()
}

// NoSupport means the household buys on its own
type NoSupport struct{}

// GiftNow is a gift received before the simulation starts
type GiftNow struct {
	Amount decimal.Decimal
}

// GiftAtPurchase is a gift received in the purchase year
type GiftAtPurchase struct {
	Amount decimal.Decimal
}

// LoanMonthly is a family loan received in the purchase year and repaid in
// equal monthly installments over TermYears.
type LoanMonthly struct {
	Amount       decimal.Decimal
	InterestRate decimal.Decimal // annual percent
	TermYears    int
}

// LoanLumpSum is a family loan received in the purchase year and repaid in
// full at the end of TermYears.
type LoanLumpSum struct {
	Amount       decimal.Decimal
	InterestRate decimal.Decimal // annual percent, informational
	TermYears    int
}

func (NoSupport) Kind() SupportKind      { return SupportNone }
func (GiftNow) Kind() SupportKind        { return SupportGiftNow }
func (GiftAtPurchase) Kind() SupportKind { return SupportGiftAtPurchase }
func (LoanMonthly) Kind() SupportKind    { return SupportLoanMonthly }
func (LoanLumpSum) Kind() SupportKind    { return SupportLoanLumpSum }

func (NoSupport) Principal() decimal.Decimal        { return decimal.Zero }
func (g GiftNow) Principal() decimal.Decimal        { return g.Amount }
func (g GiftAtPurchase) Principal() decimal.Decimal { return g.Amount }
func (l LoanMonthly) Principal() decimal.Decimal    { return l.Amount }
func (l LoanLumpSum) Principal() decimal.Decimal    { return l.Amount }

func (NoSupport) familySupport()      {}
func (GiftNow) familySupport()        {}
func (GiftAtPurchase) familySupport() {}
func (LoanMonthly) familySupport()    {}
func (LoanLumpSum) familySupport()    {}

// SupportOrNone maps a nil FamilySupport to NoSupport
func SupportOrNone(fs FamilySupport) FamilySupport {
	if fs == nil {
		return NoSupport{}
	}
	return fs
}
