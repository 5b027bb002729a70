package main

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/hpgo/internal/breakeven"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func solveCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solve [plan-file]",
		Short: "Find the house price, income, savings or term that makes a purchase year affordable",
		Long: `Search one plan value at a time for the point where the purchase year
becomes affordable: the highest house price, or the lowest primary income,
starting savings or loan term.

Examples:
  hpgo solve plan.yaml
  hpgo solve plan.yaml --target house_price --year 2029
  hpgo solve plan.yaml --target monthly_income --max 20000 --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			templates, _ := cmd.Flags().GetStringSlice("template")
			specs, _ := cmd.Flags().GetStringArray("transform")
			targetName, _ := cmd.Flags().GetString("target")
			format, _ := cmd.Flags().GetString("format")
			tolerance, _ := cmd.Flags().GetString("tolerance")

			plan, _, err := a.loadPlan(args[0], templates, specs)
			if err != nil {
				return err
			}

			opts := breakeven.DefaultSolverOptions()
			if opts.Tolerance, err = decimal.NewFromString(tolerance); err != nil {
				return fmt.Errorf("invalid tolerance %q: %w", tolerance, err)
			}
			opts.MaxIterations, _ = cmd.Flags().GetInt("max-iterations")
			solver := breakeven.NewSolver(a.engine, opts)

			var year *int
			if cmd.Flags().Changed("year") {
				y, _ := cmd.Flags().GetInt("year")
				year = &y
			}

			var result any
			var table string
			if targetName == "all" {
				multi, err := solver.SolveAll(cmd.Context(), plan, year, nil)
				if err != nil {
					return err
				}
				result, table = multi, (&breakeven.TableFormatter{}).FormatMulti(multi)
			} else {
				target, err := breakeven.ParseSolveTarget(targetName)
				if err != nil {
					return err
				}
				bounds, err := boundsFromFlags(cmd)
				if err != nil {
					return err
				}
				single, err := solver.Solve(cmd.Context(), breakeven.Request{
					Plan:         plan,
					Target:       target,
					PurchaseYear: year,
					Bounds:       bounds,
				})
				if err != nil {
					return err
				}
				result, table = single, (&breakeven.TableFormatter{}).Format(single)
			}

			switch strings.ToLower(format) {
			case "json":
				out, err := (&breakeven.JSONFormatter{Pretty: true}).Format(result)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), out)
			case "table", "console", "":
				fmt.Fprint(cmd.OutOrStdout(), table)
			default:
				return fmt.Errorf("unknown output format: %s (valid: table, json)", format)
			}
			return nil
		},
	}

	targets := make([]string, 0, len(breakeven.SolveTargets()))
	for _, t := range breakeven.SolveTargets() {
		targets = append(targets, string(t))
	}
	cmd.Flags().String("target", "all", fmt.Sprintf("Value to solve for (all, %s)", strings.Join(targets, ", ")))
	cmd.Flags().Int("year", 0, "Purchase year that must be affordable (defaults to the plan's target year)")
	cmd.Flags().String("min", "", "Lower search bound (single target only)")
	cmd.Flags().String("max", "", "Upper search bound (single target only)")
	cmd.Flags().String("tolerance", breakeven.DefaultSolverOptions().Tolerance.String(), "Final interval width for amounts")
	cmd.Flags().Int("max-iterations", breakeven.DefaultSolverOptions().MaxIterations, "Bisection step limit")
	cmd.Flags().StringP("format", "f", "table", "Output format (table, json)")
	addAssumptionFlags(cmd)
	return cmd
}

func boundsFromFlags(cmd *cobra.Command) (breakeven.Bounds, error) {
	var bounds breakeven.Bounds
	for _, f := range []struct {
		name string
		dst  **decimal.Decimal
	}{
		{"min", &bounds.Min},
		{"max", &bounds.Max},
	} {
		s, _ := cmd.Flags().GetString(f.name)
		if s == "" {
			continue
		}
		v, err := decimal.NewFromString(s)
		if err != nil {
			return breakeven.Bounds{}, fmt.Errorf("invalid --%s %q: %w", f.name, s, err)
		}
		*f.dst = &v
	}
	return bounds, nil
}
