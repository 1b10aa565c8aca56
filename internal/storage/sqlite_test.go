package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/mulasense/finance-core/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()
	store, err := NewSQLiteStorage(filepath.Join(t.TempDir(), "nested", "ledger.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, store.Migrate(context.Background()))
	return store
}

func TestNewSQLiteStorageRejectsEmptyPath(t *testing.T) {
	_, err := NewSQLiteStorage("  ")
	assert.Error(t, err)
}

func TestMigrateIsIdempotent(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.Migrate(ctx))
	version, err := store.SchemaVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, ExpectedSchemaVersion, version)
}

func TestTransactionsRoundTrip(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	txns := []domain.Transaction{
		{ID: "t2", Amount: 40.25, Type: domain.TransactionExpense, Category: "food",
			Date: time.Date(2025, 3, 2, 10, 0, 0, 0, time.UTC), Status: domain.StatusCompleted, Description: "groceries"},
		{Amount: 1000, Type: domain.TransactionIncome, Category: "salary",
			Date: time.Date(2025, 3, 1, 8, 0, 0, 500, time.UTC), Status: domain.StatusPending},
	}
	require.NoError(t, store.SaveTransactions(ctx, txns))
	require.NotEmpty(t, txns[1].ID, "missing IDs are assigned in place")

	loaded, err := store.LoadTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 2)

	assert.Equal(t, txns[1].ID, loaded[0].ID, "ordered by date")
	assert.True(t, txns[1].Date.Equal(loaded[0].Date))
	assert.Equal(t, domain.StatusPending, loaded[0].Status)
	assert.Equal(t, "t2", loaded[1].ID)
	assert.Equal(t, 40.25, loaded[1].Amount)
	assert.Equal(t, domain.TransactionExpense, loaded[1].Type)
	assert.Equal(t, "groceries", loaded[1].Description)

	txns[0].Status = domain.StatusCancelled
	require.NoError(t, store.SaveTransactions(ctx, txns[:1]))
	loaded, err = store.LoadTransactions(ctx)
	require.NoError(t, err)
	assert.Len(t, loaded, 2, "saving an existing ID replaces it")
	assert.Equal(t, domain.StatusCancelled, loaded[1].Status)
}

func TestDebtorsAndGetDebtor(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	debtors := []domain.Debtor{
		{ID: "d1", Name: "Jane", PhoneNumber: "+263771234567", TotalAmount: 50, AmountPaid: 10,
			DueDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), Status: "pending"},
		{ID: "d2", Name: "Undated", TotalAmount: 5},
	}
	require.NoError(t, store.SaveDebtors(ctx, debtors))

	got, err := store.GetDebtor(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, "Jane", got.Name)
	assert.Equal(t, 40.0, got.AmountRemaining())
	assert.True(t, got.DueDate.Equal(debtors[0].DueDate))

	undated, err := store.GetDebtor(ctx, "d2")
	require.NoError(t, err)
	assert.True(t, undated.DueDate.IsZero())

	_, err = store.GetDebtor(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	all, err := store.LoadDebtors(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestLedgerRoundTrip(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	ledger := &domain.Ledger{
		Transactions: []domain.Transaction{{ID: "t1", Amount: 10, Type: domain.TransactionIncome,
			Date: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), Status: domain.StatusCompleted}},
		Budgets: []domain.Budget{{ID: "b1", Name: "Food", Category: "food", Amount: 200}},
		Debtors: []domain.Debtor{{ID: "d1", Name: "Tendai", TotalAmount: 30}},
		Goals: []domain.Goal{{ID: "g1", Name: "Laptop", TargetAmount: 900, CurrentAmount: 300,
			Deadline: time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)}},
	}
	require.NoError(t, store.SaveLedger(ctx, ledger))

	loaded, err := store.LoadLedger(ctx)
	require.NoError(t, err)
	assert.Len(t, loaded.Transactions, 1)
	assert.Equal(t, ledger.Budgets, loaded.Budgets)
	assert.Equal(t, "Tendai", loaded.Debtors[0].Name)
	require.Len(t, loaded.Goals, 1)
	assert.InDelta(t, 33.333333, loaded.Goals[0].ProgressPercentage(), 1e-5)
}

func TestEmptyLedger(t *testing.T) {
	store := createTestStorage(t)
	loaded, err := store.LoadLedger(context.Background())
	require.NoError(t, err)
	assert.Empty(t, loaded.Transactions)
	assert.Empty(t, loaded.Budgets)
	assert.Empty(t, loaded.Debtors)
	assert.Empty(t, loaded.Goals)
}
