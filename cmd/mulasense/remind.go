package main

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mulasense/finance-core/internal/calculation"
	"github.com/mulasense/finance-core/internal/domain"
	"github.com/mulasense/finance-core/internal/reminder"
)

// ledgerDebtors serves the debtors of a ledger that was already loaded.
type ledgerDebtors struct {
	ledger *domain.Ledger
}

func (l ledgerDebtors) LoadDebtors(context.Context) ([]domain.Debtor, error) {
	return l.ledger.Debtors, nil
}

func remindCmd() *cobra.Command {
	var ledgerFile string

	cmd := &cobra.Command{
		Use:   "remind",
		Short: "Compose WhatsApp reminders for debtors due soon or overdue",
		Example: `  mulasense remind --ledger ledger.yaml --phone "+263 77 111 1111"
  mulasense remind --window 7 --format json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ledger, err := loadLedger(cmd.Context(), ledgerFile)
			if err != nil {
				return err
			}
			sweeper := reminder.NewSweeper(ledgerDebtors{ledger}, viper.GetInt("reminders.window_days"), viper.GetString("reminders.user_phone"))
			sweeper.SetLogger(log)

			reminders, err := sweeper.Run(cmd.Context())
			if err != nil {
				return err
			}
			report := &domain.Report{GeneratedAt: calculation.Now(), Reminders: reminders}
			return emitReport(cmd, report)
		},
	}
	cmd.Flags().StringVar(&ledgerFile, "ledger", "", "ledger YAML/JSON file (default: the database)")
	cmd.Flags().Int("window", reminder.DefaultWindowDays, "remind debtors due within this many days")
	cmd.Flags().String("phone", "", "your EcoCash number, quoted in the message")
	_ = viper.BindPFlag("reminders.window_days", cmd.Flags().Lookup("window"))
	_ = viper.BindPFlag("reminders.user_phone", cmd.Flags().Lookup("phone"))
	return cmd
}
