package transform

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/hpgo/internal/domain"
)

// PlanTransform defines the interface for all plan transformations.
// Transforms are composable operations that derive an alternative plan from
// a base plan, enabling scenario comparison and the interactive sliders.
type PlanTransform interface {
	// Apply returns a new modified plan. The base plan is never changed.
	Apply(base domain.Plan) (domain.Plan, error)

	// Name returns a short identifier for this transform (e.g., "delay_purchase").
	Name() string

	// Description returns a human-readable description of what this transform does.
	Description() string

	// Validate checks if the transform parameters are valid without applying it.
	Validate(base domain.Plan) error
}

// ApplyTransforms applies a sequence of transforms to a base plan.
// Each transform receives the output of the previous one.
func ApplyTransforms(base domain.Plan, transforms []PlanTransform) (domain.Plan, error) {
	current := base.Clone()

	for i, transform := range transforms {
		if transform == nil {
			return domain.Plan{}, fmt.Errorf("transform at index %d is nil", i)
		}

		if err := transform.Validate(current); err != nil {
			return domain.Plan{}, fmt.Errorf("transform %s validation failed: %w", transform.Name(), err)
		}

		next, err := transform.Apply(current)
		if err != nil {
			return domain.Plan{}, fmt.Errorf("transform %s failed: %w", transform.Name(), err)
		}

		current = next
	}

	return current, nil
}

// Describe joins the descriptions of a transform chain
func Describe(transforms []PlanTransform) string {
	if len(transforms) == 0 {
		return "Base plan"
	}
	parts := make([]string, len(transforms))
	for i, t := range transforms {
		parts[i] = t.Description()
	}
	return strings.Join(parts, "; ")
}

// TransformError represents an error that occurred during transformation.
type TransformError struct {
	TransformName string
	Operation     string
	Reason        string
	Err           error
}

func (e *TransformError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transform %s (%s): %s: %v", e.TransformName, e.Operation, e.Reason, e.Err)
	}
	return fmt.Sprintf("transform %s (%s): %s", e.TransformName, e.Operation, e.Reason)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}

// NewTransformError creates a new TransformError.
func NewTransformError(transformName, operation, reason string, err error) error {
	return &TransformError{
		TransformName: transformName,
		Operation:     operation,
		Reason:        reason,
		Err:           err,
	}
}
