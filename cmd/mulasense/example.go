package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mulasense/finance-core/internal/calculation"
	"github.com/mulasense/finance-core/internal/config"
)

func exampleCmd() *cobra.Command {
	var outFile string

	cmd := &cobra.Command{
		Use:   "example",
		Short: "Write an example ledger dated around today",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ledger := config.NewInputParser().CreateExampleLedger(calculation.Now())
			data, err := yaml.Marshal(ledger)
			if err != nil {
				return fmt.Errorf("failed to encode example ledger: %w", err)
			}
			if outFile == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(outFile, data, 0o600); err != nil {
				return fmt.Errorf("failed to write %s: %w", outFile, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Example ledger written to %s\n", outFile)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outFile, "output", "o", "", "file to write (default: stdout)")
	return cmd
}
