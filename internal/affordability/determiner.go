package affordability

import (
	"github.com/rgehrsitz/hpgo/internal/domain"
)

// Determine classifies a projection against the household's target.
//
// The first phase scans n = 1..yearsToPurchase; an affordable row there is
// on-target. Otherwise the second phase scans the remaining horizon and
// reports the first affordable year while keeping the outcome off-target.
// Year 0 is the creation-month snapshot and is never scanned. A nil
// FirstViableYear means no simulated year is affordable.
func Determine(rows []domain.ProjectionRow, yearsToPurchase int) domain.AffordabilityResult {
	if year, ok := scanWithinTarget(rows, yearsToPurchase); ok {
		return domain.AffordabilityResult{Outcome: domain.OutcomeOnTarget, FirstViableYear: &year}
	}
	if year, ok := scanBeyondTarget(rows, yearsToPurchase); ok {
		return domain.AffordabilityResult{Outcome: domain.OutcomeOffTarget, FirstViableYear: &year}
	}
	return domain.AffordabilityResult{Outcome: domain.OutcomeOffTarget}
}

// scanWithinTarget returns the year of the first affordable row with 1 <= n <= yearsToPurchase
func scanWithinTarget(rows []domain.ProjectionRow, yearsToPurchase int) (int, bool) {
	for _, r := range rows {
		if r.N < 1 {
			continue
		}
		if r.N > yearsToPurchase {
			break
		}
		if r.IsAffordable {
			return r.Year, true
		}
	}
	return 0, false
}

// scanBeyondTarget returns the year of the first affordable row with n > yearsToPurchase
func scanBeyondTarget(rows []domain.ProjectionRow, yearsToPurchase int) (int, bool) {
	for _, r := range rows {
		if r.N <= yearsToPurchase || r.N < 1 {
			continue
		}
		if r.IsAffordable {
			return r.Year, true
		}
	}
	return 0, false
}
