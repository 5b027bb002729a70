package main

import (
	"github.com/rgehrsitz/hpgo/internal/affordability"
	"github.com/rgehrsitz/hpgo/internal/domain"
	"github.com/rgehrsitz/hpgo/internal/output"
	"github.com/spf13/cobra"
)

func projectCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project [plan-file]",
		Short: "Project savings and mortgage affordability year by year",
		Long: `Project a plan from its base year through the purchase year and the
lookahead years, then report the first year the mortgage payment fits.

Examples:
  hpgo project plan.yaml
  hpgo project plan.yaml --template pessimistic --format csv
  hpgo project plan.yaml -t adjust_rate:field=loan_rate,delta=2 --max-years 15`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			templates, _ := cmd.Flags().GetStringSlice("template")
			specs, _ := cmd.Flags().GetStringArray("transform")
			maxYears, _ := cmd.Flags().GetInt("max-years")
			format, _ := cmd.Flags().GetString("format")
			outputDir, _ := cmd.Flags().GetString("output-dir")

			plan, _, err := a.loadPlan(args[0], templates, specs)
			if err != nil {
				return err
			}

			rows, assessment := a.project(plan, maxYears)
			return a.emit(cmd, output.NewProjectionReport(plan, rows, assessment), format, outputDir)
		},
	}
	cmd.Flags().Int("max-years", 0, "Projection horizon in years (0 uses years to purchase plus lookahead)")
	addAssumptionFlags(cmd)
	addReportFlags(cmd, "console")
	return cmd
}

func affordCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "afford [plan-file]",
		Short: "Show the affordability verdict and purchase-year options",
		Long: `Print the outcome against the target year, the first viable year and
the affordable purchase years that follow it. With --purchase-year the loan
for that confirmed year is summarized as well.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			templates, _ := cmd.Flags().GetStringSlice("template")
			specs, _ := cmd.Flags().GetStringArray("transform")
			format, _ := cmd.Flags().GetString("format")
			outputDir, _ := cmd.Flags().GetString("output-dir")

			plan, _, err := a.loadPlan(args[0], templates, specs)
			if err != nil {
				return err
			}

			rows, assessment := a.project(plan, 0)
			report := output.NewProjectionReport(plan, rows, assessment)

			if cmd.Flags().Changed("purchase-year") {
				year, _ := cmd.Flags().GetInt("purchase-year")
				summary, err := affordability.SummarizeForPurchaseYear(rows, &year)
				if err != nil {
					return err
				}
				report.Purchase = &summary
			}

			return a.emit(cmd, report, format, outputDir)
		},
	}
	cmd.Flags().Int("purchase-year", 0, "Confirmed purchase year to summarize")
	addAssumptionFlags(cmd)
	addReportFlags(cmd, "console-lite")
	return cmd
}

func (a *app) project(plan domain.Plan, maxYears int) ([]domain.ProjectionRow, affordability.Assessment) {
	rows := a.engine.Project(plan, a.cfg.Projection.Horizon(plan, maxYears))
	return rows, affordability.Assess(plan, rows, a.cfg.Comparison.MaxViableYears)
}
