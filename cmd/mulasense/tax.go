package main

import (
	"github.com/spf13/cobra"

	"github.com/mulasense/finance-core/internal/domain"
	"github.com/mulasense/finance-core/internal/output"
)

func taxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tax",
		Short: "Business tax breakdowns and estimates",
	}
	cmd.AddCommand(taxBreakdownCmd())
	cmd.AddCommand(taxEstimateCmd("estimate", "Estimate the annual tax bill from annual figures", false))
	cmd.AddCommand(taxEstimateCmd("monthly", "Estimate the annual tax bill from monthly figures", true))
	return cmd
}

func taxBreakdownCmd() *cobra.Command {
	var netProfit, turnover, salaries string

	cmd := &cobra.Command{
		Use:   "breakdown",
		Short: "Corporate tax, VAT and payroll tax from explicit figures",
		Example: `  mulasense tax breakdown --net-profit 10000 --turnover 30000 --salaries 2000`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			np, err := parseAmount("net profit", netProfit)
			if err != nil {
				return err
			}
			to, err := parseAmount("turnover", turnover)
			if err != nil {
				return err
			}
			sal, err := parseAmount("salaries", salaries)
			if err != nil {
				return err
			}
			engine, err := newEngine()
			if err != nil {
				return err
			}
			report := engine.BreakdownReport(np, to, sal)
			report.Assumptions = output.GenerateAssumptions(engine.Rules)
			return emitReport(cmd, report)
		},
	}
	cmd.Flags().StringVar(&netProfit, "net-profit", "0", "annual net profit")
	cmd.Flags().StringVar(&turnover, "turnover", "0", "annual turnover")
	cmd.Flags().StringVar(&salaries, "salaries", "0", "total salaries subject to PAYE")
	return cmd
}

func taxEstimateCmd(use, short string, monthly bool) *cobra.Command {
	var netProfit, revenue, salary string

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var data domain.FinancialData
			var err error
			if data.NetProfit, err = parseAmount("net profit", netProfit); err != nil {
				return err
			}
			if data.AnnualRevenue, err = parseAmount("revenue", revenue); err != nil {
				return err
			}
			if data.GrossSalary, err = parseAmount("gross salary", salary); err != nil {
				return err
			}
			engine, err := newEngine()
			if err != nil {
				return err
			}
			report := engine.EstimateReport(data, monthly)
			report.Assumptions = output.GenerateAssumptions(engine.Rules)
			return emitReport(cmd, report)
		},
	}
	cmd.Flags().StringVar(&netProfit, "net-profit", "0", "net profit")
	cmd.Flags().StringVar(&revenue, "revenue", "0", "revenue")
	cmd.Flags().StringVar(&salary, "salary", "0", "gross salary")
	return cmd
}
