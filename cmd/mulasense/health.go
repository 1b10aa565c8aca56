package main

import (
	"github.com/spf13/cobra"
)

func healthCmd() *cobra.Command {
	var ledgerFile, loanAmount string
	var months int

	cmd := &cobra.Command{
		Use:   "health",
		Short: "Score the financial health of the ledger",
		Long: `Scores the ledger (from --ledger or the database) out of 100 and shows the
current month against the previous one. With --loan the score is also used to
price a loan request.`,
		Example: `  mulasense health --ledger ledger.yaml
  mulasense health --loan 500 --months 6`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ledger, err := loadLedger(cmd.Context(), ledgerFile)
			if err != nil {
				return err
			}
			engine, err := newEngine()
			if err != nil {
				return err
			}
			if loanAmount == "" {
				return emitReport(cmd, engine.HealthReport(ledger))
			}
			amount, err := parseAmount("loan amount", loanAmount)
			if err != nil {
				return err
			}
			return emitReport(cmd, engine.LoanReport(ledger, amount, months))
		},
	}
	cmd.Flags().StringVar(&ledgerFile, "ledger", "", "ledger YAML/JSON file (default: the database)")
	cmd.Flags().StringVar(&loanAmount, "loan", "", "loan amount to request")
	cmd.Flags().IntVar(&months, "months", 12, "loan duration in months")
	return cmd
}
