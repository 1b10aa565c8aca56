package integration

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mulasense/finance-core/internal/calculation"
	"github.com/mulasense/finance-core/internal/config"
	"github.com/mulasense/finance-core/internal/domain"
	"github.com/mulasense/finance-core/internal/reminder"
	"github.com/mulasense/finance-core/internal/storage"
)

var ledgerNow = time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return ledgerNow }

// storedLedger loads the example ledger file into a fresh database.
func storedLedger(t *testing.T) *storage.SQLiteStorage {
	t.Helper()
	ctx := context.Background()

	ledger, err := config.NewInputParser().LoadLedger("../testdata/example_ledger.yaml")
	require.NoError(t, err)

	store, err := storage.NewSQLiteStorage(filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, store.Migrate(ctx))
	require.NoError(t, store.SaveLedger(ctx, ledger))
	return store
}

func newEngine() *calculation.CalculationEngine {
	engine := calculation.NewCalculationEngine()
	engine.Scorer = engine.Scorer.WithNow(clock)
	return engine
}

func TestEndToEndHealth(t *testing.T) {
	store := storedLedger(t)
	ledger, err := store.LoadLedger(context.Background())
	require.NoError(t, err)
	assert.Len(t, ledger.Transactions, 7)
	assert.Len(t, ledger.Budgets, 2)
	assert.Len(t, ledger.Debtors, 2)
	assert.Len(t, ledger.Goals, 1)

	report := newEngine().HealthReport(ledger)
	require.NotNil(t, report.Health)
	h := report.Health
	assert.InDelta(t, 20.0, h.IncomeStability, 1e-9, "equal salary in each of the last three months")
	assert.InDelta(t, 11.25, h.ExpenseRatio, 1e-9)
	assert.InDelta(t, 11.25, h.SavingsRate, 1e-9)
	assert.InDelta(t, 17.5, h.BudgetAdherence, 1e-9, "rent on budget, groceries 25% under")
	assert.Equal(t, 70, h.Total)
	assert.Equal(t, domain.RatingGood, h.Rating)

	d := report.Dashboard
	require.NotNil(t, d)
	assert.InDelta(t, 1000.0, d.MonthlyIncome, 1e-9)
	assert.InDelta(t, 550.0, d.TotalExpenses, 1e-9, "the pending grocery run is excluded")
	assert.Equal(t, 0, d.IncomeChange)
	assert.Equal(t, 83, d.ExpenseChange)
	assert.Equal(t, -36, d.SavingsChange)
}

func TestEndToEndLoanOffer(t *testing.T) {
	store := storedLedger(t)
	ledger, err := store.LoadLedger(context.Background())
	require.NoError(t, err)

	report := newEngine().LoanReport(ledger, 1000, 12)
	require.NotNil(t, report.Loan)
	offer := report.Loan
	assert.Equal(t, domain.LoanApproved, offer.Status)
	assert.InDelta(t, 5.0, offer.InterestRate, 1e-9)
	assert.InDelta(t, 6000.0, offer.LoanLimit, 1e-9, "three months of income at the Good multiplier")
	assert.Greater(t, offer.MonthlyPayment, 1000.0/12)
}

func TestEndToEndReminderSweep(t *testing.T) {
	store := storedLedger(t)

	sweeper := reminder.NewSweeper(store, 3, "+263 77 999 8888").WithNow(clock)
	reminders, err := sweeper.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, reminders, 1, "the settled debtor is skipped")

	r := reminders[0]
	assert.Equal(t, "d1", r.DebtorID)
	assert.InDelta(t, 179.5, r.AmountRemaining, 1e-9)
	assert.Equal(t,
		"Hello Rudo Chikwanha, this is a friendly reminder from Mula Sense regarding your outstanding balance of $179.50. The due date is 3/17/2025. Please kindly make the payment via EcoCash to +263 77 999 8888. Thank you!",
		r.Message)
	assert.Contains(t, r.Link, "https://wa.me/263715550000?text=Hello%20Rudo%20Chikwanha%2C")
}

func TestLedgerValidation(t *testing.T) {
	parser := config.NewInputParser()

	ledger, err := parser.LoadLedger("../testdata/example_ledger.yaml")
	require.NoError(t, err)
	assert.NoError(t, parser.ValidateLedger(ledger))
	assert.Equal(t, domain.TransactionIncome, ledger.Transactions[3].Type, "types are case-insensitive")

	_, err = parser.LoadLedger("../testdata/invalid_ledger.yaml")
	assert.ErrorIs(t, err, config.ErrInvalidLedger)
}
