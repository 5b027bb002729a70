package calculation

import (
	"github.com/rgehrsitz/hpgo/internal/domain"
	"github.com/shopspring/decimal"
)

// CalculationEngine runs projections and amortizations. It holds no
// per-plan state, so one engine can serve concurrent callers.
type CalculationEngine struct {
	Logger Logger
	Debug  bool // Enable debug output for each projected year
}

// NewCalculationEngine creates a new calculation engine
func NewCalculationEngine() *CalculationEngine {
	return &CalculationEngine{
		Logger: NopLogger{},
	}
}

// SetLogger replaces the engine logger. A nil logger installs NopLogger.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

func (ce *CalculationEngine) logger() Logger {
	if ce.Logger == nil {
		return NopLogger{}
	}
	return ce.Logger
}

// Amortize builds a repayment schedule for a loan
func (ce *CalculationEngine) Amortize(loanAmount, annualRatePct decimal.Decimal, termYears int, method domain.PaymentMethod) domain.AmortizationScheduleData {
	schedule := Amortize(loanAmount, annualRatePct, termYears, method)
	if ce.Debug {
		ce.logger().Debugf("amortize: loan=%s rate=%s%% term=%dy method=%s months=%d total_interest=%s",
			loanAmount.StringFixed(2), annualRatePct.String(), termYears, schedule.Method,
			len(schedule.Monthly), schedule.Summary.TotalInterest.StringFixed(2))
	}
	return schedule
}
