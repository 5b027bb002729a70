package compare

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/hpgo/internal/affordability"
	"github.com/rgehrsitz/hpgo/internal/calculation"
	"github.com/rgehrsitz/hpgo/internal/domain"
	"github.com/rgehrsitz/hpgo/internal/transform"
	"golang.org/x/sync/errgroup"
)

// CompareEngine orchestrates plan comparison
type CompareEngine struct {
	CalcEngine        *calculation.CalculationEngine
	MetricsCalculator *MetricsCalculator
	TemplateRegistry  *transform.TemplateRegistry
}

// NewCompareEngine creates a new comparison engine with the built-in templates
func NewCompareEngine(calcEngine *calculation.CalculationEngine) *CompareEngine {
	return &CompareEngine{
		CalcEngine:        calcEngine,
		MetricsCalculator: NewMetricsCalculator(),
		TemplateRegistry:  transform.CreateBuiltInTemplates(),
	}
}

// Variant is an ad hoc alternative built from explicit transforms
type Variant struct {
	Name        string
	Description string
	Transforms  []transform.PlanTransform
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	BaseScenarioName string    // Label for the unmodified plan; defaults to the plan name
	Templates        []string  // Built-in template names to apply
	Variants         []Variant // Explicit alternatives, run after the templates
	MaxYears         int       // Projection horizon override; 0 uses each plan's own horizon
	HorizonCap       int       // Ceiling on each plan's own horizon when MaxYears is 0
	MaxViableYears   int       // Purchase-year options kept per scenario; 0 uses the default
	PlanPath         string    // Shown in reports only
}

// Compare projects the base plan and every requested alternative, then
// measures each alternative against the base. Alternatives run concurrently;
// results keep the order in which they were requested.
func (ce *CompareEngine) Compare(
	ctx context.Context,
	plan domain.Plan,
	options CompareOptions,
) (*ComparisonSet, error) {
	if ce.TemplateRegistry == nil {
		ce.TemplateRegistry = transform.CreateBuiltInTemplates()
	}

	variants, err := ce.resolveVariants(options)
	if err != nil {
		return nil, err
	}

	baseName := options.BaseScenarioName
	if baseName == "" {
		baseName = plan.Name
	}
	if baseName == "" {
		baseName = "base"
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	baseResult := ce.run(baseName, "Plan as entered", plan, options)

	alternatives := make([]ComparisonResult, len(variants))

	g, gctx := errgroup.WithContext(ctx)
	for i, v := range variants {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			modified, err := transform.ApplyTransforms(plan, v.Transforms)
			if err != nil {
				return fmt.Errorf("failed to apply %s: %w", v.Name, err)
			}
			modified.Name = baseName + "_" + v.Name

			result := ce.run(modified.Name, v.Description, modified, options)
			alternatives[i] = ce.MetricsCalculator.CalculateComparison(result, baseResult)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	compSet := &ComparisonSet{
		BaseScenarioName:   baseName,
		BaseResult:         &baseResult,
		AlternativeResults: alternatives,
		PlanPath:           options.PlanPath,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}

// resolveVariants looks up templates by name and appends explicit variants
func (ce *CompareEngine) resolveVariants(options CompareOptions) ([]Variant, error) {
	variants := make([]Variant, 0, len(options.Templates)+len(options.Variants))

	for _, name := range options.Templates {
		tmpl, ok := ce.TemplateRegistry.Get(name)
		if !ok {
			return nil, fmt.Errorf("template %s not found", name)
		}
		variants = append(variants, Variant{
			Name:        tmpl.Name,
			Description: tmpl.Description,
			Transforms:  tmpl.Transforms,
		})
	}

	for i, v := range options.Variants {
		if v.Name == "" {
			v.Name = fmt.Sprintf("variant_%d", i+1)
		}
		if v.Description == "" {
			v.Description = transform.Describe(v.Transforms)
		}
		variants = append(variants, v)
	}

	return variants, nil
}

func (ce *CompareEngine) run(name, description string, plan domain.Plan, options CompareOptions) ComparisonResult {
	years := options.MaxYears
	if years == 0 && options.HorizonCap > 0 {
		years = min(plan.Horizon(), options.HorizonCap)
	}
	rows := ce.CalcEngine.Project(plan, years)
	assessment := affordability.Assess(plan, rows, options.MaxViableYears)

	result := ce.MetricsCalculator.CalculateMetrics(name, plan, rows, assessment)
	result.Description = description
	return result
}
