package main

import (
	"github.com/spf13/cobra"

	"github.com/mulasense/finance-core/internal/output"
)

func payeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "paye <gross-monthly-salary>",
		Short: "Calculate PAYE, NSSA and AIDS levy for a monthly salary",
		Example: `  mulasense paye 1100
  mulasense paye 2500.50 --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gross, err := parseAmount("gross salary", args[0])
			if err != nil {
				return err
			}
			engine, err := newEngine()
			if err != nil {
				return err
			}
			report := engine.PAYEReport(gross)
			report.Assumptions = output.GenerateAssumptions(engine.Rules)
			return emitReport(cmd, report)
		},
	}
}
