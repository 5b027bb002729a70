package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNoPurchaseYear is returned when a step needs a confirmed purchase year and none was given
	ErrNoPurchaseYear = errors.New("no confirmed purchase year")
	// ErrPurchaseYearOutOfRange is returned when the confirmed year is outside the simulated horizon
	ErrPurchaseYearOutOfRange = errors.New("purchase year outside projection horizon")
)

// PlanError reports a plan field the domain cannot work with
type PlanError struct {
	Field   string
	Message string
	Err     error
}

func (e *PlanError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("plan field %s: %s: %v", e.Field, e.Message, e.Err)
	}
	return fmt.Sprintf("plan field %s: %s", e.Field, e.Message)
}

func (e *PlanError) Unwrap() error {
	return e.Err
}

// NewPlanError creates a PlanError
func NewPlanError(field, message string, err error) error {
	return &PlanError{Field: field, Message: message, Err: err}
}
