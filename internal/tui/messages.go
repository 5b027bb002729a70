package tui

import (
	"github.com/rgehrsitz/hpgo/internal/affordability"
	"github.com/rgehrsitz/hpgo/internal/domain"
)

// ErrorMsg reports a failure outside a projection run
type ErrorMsg struct {
	Err error
}

// PlanLoadedMsg carries the normalized plan read at startup
type PlanLoadedMsg struct {
	Plan domain.Plan
}

// ProjectionUpdatedMsg carries the result of one recalculation. Seq
// identifies the slider state that produced it.
type ProjectionUpdatedMsg struct {
	Seq        int
	Plan       domain.Plan
	Rows       []domain.ProjectionRow
	Assessment affordability.Assessment
	Err        error
}
