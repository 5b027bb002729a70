package main

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/hpgo/internal/domain"
	"github.com/rgehrsitz/hpgo/internal/output"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func amortizeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "amortize",
		Short: "Print the amortization schedule for a bank loan",
		Long: `Build the month-by-month schedule of a loan and summarize it.

Examples:
  hpgo amortize --amount 350000 --rate 6.5 --term 30
  hpgo amortize --amount 1200 --rate 12 --term 1 --method decreasing --view monthly`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			amountStr, _ := cmd.Flags().GetString("amount")
			rateStr, _ := cmd.Flags().GetString("rate")
			term, _ := cmd.Flags().GetInt("term")
			methodStr, _ := cmd.Flags().GetString("method")
			view, _ := cmd.Flags().GetString("view")
			format, _ := cmd.Flags().GetString("format")
			outputDir, _ := cmd.Flags().GetString("output-dir")

			amount, err := decimal.NewFromString(amountStr)
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", amountStr, err)
			}
			rate, err := decimal.NewFromString(rateStr)
			if err != nil {
				return fmt.Errorf("invalid rate %q: %w", rateStr, err)
			}
			method := domain.PaymentMethod(strings.ToLower(methodStr))
			if !method.IsValid() {
				return domain.NewPlanError("method", fmt.Sprintf("unknown payment method %q (valid: fixed, decreasing)", methodStr), nil)
			}

			schedule := a.engine.Amortize(amount, rate, term, method)
			return a.emit(cmd, output.NewAmortizationReport(schedule, output.ScheduleView(strings.ToLower(view))), format, outputDir)
		},
	}
	cmd.Flags().String("amount", "", "Loan amount")
	cmd.Flags().String("rate", "0", "Annual interest rate in percent")
	cmd.Flags().Int("term", 30, "Loan term in years")
	cmd.Flags().String("method", string(domain.PaymentFixed), "Payment method (fixed, decreasing)")
	cmd.Flags().String("view", string(output.ScheduleYearly), "Schedule detail (yearly, monthly)")
	_ = cmd.MarkFlagRequired("amount")
	addReportFlags(cmd, "console")
	return cmd
}
