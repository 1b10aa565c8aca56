package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mulasense/finance-core/internal/calculation"
	"github.com/mulasense/finance-core/internal/config"
	"github.com/mulasense/finance-core/internal/domain"
	"github.com/mulasense/finance-core/internal/output"
	"github.com/mulasense/finance-core/internal/storage"
	"github.com/mulasense/finance-core/pkg/decimal"
)

// expandPath resolves a leading ~ and environment variables.
func expandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return os.ExpandEnv(path)
}

// initStorage opens and migrates the configured database.
func initStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	store, err := storage.NewSQLiteStorage(expandPath(viper.GetString("database.path")))
	if err != nil {
		return nil, err
	}
	store.SetLogger(log)

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return store, nil
}

// newEngine builds the calculation engine from tax.rules_file, or the
// built-in rules when none is configured.
func newEngine() (*calculation.CalculationEngine, error) {
	engine := calculation.NewCalculationEngine()
	if path := viper.GetString("tax.rules_file"); path != "" {
		rules, err := config.NewInputParser().LoadTaxRules(expandPath(path))
		if err != nil {
			return nil, err
		}
		engine = calculation.NewCalculationEngineWithRules(*rules)
		log.Debugf("loaded tax rules from %s", path)
	}
	engine.SetLogger(log)
	return engine, nil
}

// loadLedger reads the ledger from a YAML/JSON file when one is given,
// otherwise from the database.
func loadLedger(ctx context.Context, file string) (*domain.Ledger, error) {
	if file != "" {
		return config.NewInputParser().LoadLedger(file)
	}
	store, err := initStorage(ctx)
	if err != nil {
		return nil, err
	}
	defer store.Close()
	return store.LoadLedger(ctx)
}

// emitReport prints the report in the configured format, or writes it to
// output.dir when set.
func emitReport(cmd *cobra.Command, report *domain.Report) error {
	format := viper.GetString("output.format")
	if dir := viper.GetString("output.dir"); dir != "" {
		files, err := output.GenerateReport(report, format, expandPath(dir))
		for _, f := range files {
			fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", f)
		}
		return err
	}
	return output.Print(cmd.OutOrStdout(), report, format)
}

// parseAmount reads a decimal amount argument such as "1250" or "1250.50".
func parseAmount(name, value string) (float64, error) {
	m, err := decimal.NewMoneyFromString(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	return m.Float64(), nil
}
