package main

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/hpgo/internal/compare"
	"github.com/rgehrsitz/hpgo/internal/transform"
	"github.com/spf13/cobra"
)

func compareCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [plan-file]",
		Short: "Compare a plan against alternative assumptions",
		Long: `Run a base plan next to built-in templates and ad hoc variants, and
compare first viable year, target-year payment and buffer.

Examples:
  hpgo compare plan.yaml --with delay_1yr,rate_shock
  hpgo compare plan.yaml --variant "cheaper=set_house_price:price=450000"
  hpgo compare plan.yaml --with frugal --format csv
  hpgo compare --list-templates`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if list, _ := cmd.Flags().GetBool("list-templates"); list {
				registry := transform.CreateBuiltInTemplates()
				for _, name := range registry.List() {
					tmpl, _ := registry.Get(name)
					fmt.Fprintf(cmd.OutOrStdout(), "%-22s %s\n", tmpl.Name, tmpl.Description)
				}
				return nil
			}

			if len(args) == 0 {
				return fmt.Errorf("plan file required for comparison (use --list-templates to see available templates)")
			}

			base, _ := cmd.Flags().GetString("base")
			with, _ := cmd.Flags().GetString("with")
			variantSpecs, _ := cmd.Flags().GetStringArray("variant")
			maxYears, _ := cmd.Flags().GetInt("max-years")
			format, _ := cmd.Flags().GetString("format")

			templates := parseList(with)
			variants, err := parseVariants(variantSpecs)
			if err != nil {
				return err
			}
			if len(templates) == 0 && len(variants) == 0 {
				return fmt.Errorf("--with or --variant is required (or use --list-templates)")
			}

			plan, _, err := a.loadPlan(args[0], nil, nil)
			if err != nil {
				return err
			}

			if maxYears > 0 {
				maxYears = a.cfg.Projection.Horizon(plan, maxYears)
			}

			set, err := compare.NewCompareEngine(a.engine).Compare(cmd.Context(), plan, compare.CompareOptions{
				BaseScenarioName: base,
				Templates:        templates,
				Variants:         variants,
				MaxYears:         maxYears,
				HorizonCap:       a.cfg.Projection.MaxYears,
				MaxViableYears:   a.cfg.Comparison.MaxViableYears,
				PlanPath:         args[0],
			})
			if err != nil {
				return fmt.Errorf("comparison failed: %w", err)
			}

			var out string
			switch strings.ToLower(format) {
			case "csv":
				out, err = (&compare.CSVFormatter{}).Format(set)
			case "json":
				out, err = (&compare.JSONFormatter{Pretty: true}).Format(set)
			case "compact":
				out = (&compare.TableFormatter{}).FormatCompact(set)
			case "table", "console", "":
				out = (&compare.TableFormatter{}).Format(set)
			default:
				return fmt.Errorf("unknown output format: %s (valid: table, compact, csv, json)", format)
			}
			if err != nil {
				return fmt.Errorf("failed to format %s: %w", format, err)
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().String("base", "", "Label for the unmodified plan (defaults to the plan name)")
	cmd.Flags().String("with", "", "Comma-separated list of templates to compare")
	cmd.Flags().StringArray("variant", nil, "Ad hoc alternative as name=spec[;spec...] (repeatable)")
	cmd.Flags().Int("max-years", 0, "Projection horizon for every plan (0 uses each plan's own)")
	cmd.Flags().StringP("format", "f", "table", "Output format (table, compact, csv, json)")
	cmd.Flags().Bool("list-templates", false, "List all available templates")
	return cmd
}

func parseList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// parseVariants turns "name=spec;spec" flags into compare variants
func parseVariants(specs []string) ([]compare.Variant, error) {
	registry := transform.NewTransformRegistry()
	variants := make([]compare.Variant, 0, len(specs))
	for _, spec := range specs {
		name, rest, ok := strings.Cut(spec, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" || strings.Contains(name, ":") {
			return nil, fmt.Errorf("invalid variant %q, expected name=transform_spec[;transform_spec...]", spec)
		}

		var parts []string
		for _, p := range strings.Split(rest, ";") {
			if p = strings.TrimSpace(p); p != "" {
				parts = append(parts, p)
			}
		}
		transforms, err := registry.ParseTransformSpecs(parts)
		if err != nil {
			return nil, fmt.Errorf("variant %s: %w", name, err)
		}
		if len(transforms) == 0 {
			return nil, fmt.Errorf("variant %s has no transforms", name)
		}
		variants = append(variants, compare.Variant{
			Name:        name,
			Description: transform.Describe(transforms),
			Transforms:  transforms,
		})
	}
	return variants, nil
}
