package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mulasense/finance-core/internal/config"
)

func importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <ledger-file>",
		Short: "Import a YAML/JSON ledger into the database",
		Long: `Validates a ledger file and stores its transactions, budgets, debtors and
goals. Records with an existing ID are replaced.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parser := config.NewInputParser()
			ledger, err := parser.LoadLedger(args[0])
			if err != nil {
				return err
			}

			store, err := initStorage(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.SaveLedger(cmd.Context(), ledger); err != nil {
				return fmt.Errorf("failed to import ledger: %w", err)
			}
			log.Infof("imported %s into %s", args[0], store.Path())
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d transactions, %d budgets, %d debtors, %d goals\n",
				len(ledger.Transactions), len(ledger.Budgets), len(ledger.Debtors), len(ledger.Goals))
			return nil
		},
	}
}
