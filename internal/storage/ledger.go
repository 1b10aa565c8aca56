package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mulasense/finance-core/internal/domain"
	"github.com/mulasense/finance-core/pkg/dateutil"
)

// storedTimeLayout is RFC 3339 with a fixed-width fraction so stored values sort chronologically.
const storedTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Times are stored as text in UTC; the zero time is stored as "".
func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(storedTimeLayout)
}

func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return dateutil.ParseDate(s)
}

// ensureID assigns a random UUID to records saved without one.
func ensureID(id *string) {
	if *id == "" {
		*id = uuid.NewString()
	}
}

// SaveTransactions inserts or replaces transactions. Records without an ID
// are given one in place.
func (s *SQLiteStorage) SaveTransactions(ctx context.Context, txns []domain.Transaction) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		return saveTransactionsTx(ctx, tx, txns)
	})
}

func saveTransactionsTx(ctx context.Context, tx *sql.Tx, txns []domain.Transaction) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO transactions (
			id, amount, transaction_type, category, transaction_date, status, description
		) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i := range txns {
		t := &txns[i]
		ensureID(&t.ID)
		if _, err := stmt.ExecContext(ctx, t.ID, t.Amount, string(t.Type), t.Category,
			formatTime(t.Date), string(t.Status), t.Description); err != nil {
			return fmt.Errorf("failed to save transaction %s: %w", t.ID, err)
		}
	}
	return nil
}

// LoadTransactions returns every transaction, oldest first.
func (s *SQLiteStorage) LoadTransactions(ctx context.Context) ([]domain.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, amount, transaction_type, category, transaction_date, status, description
		FROM transactions ORDER BY transaction_date, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var txns []domain.Transaction
	for rows.Next() {
		var t domain.Transaction
		var kind, status, date string
		if err := rows.Scan(&t.ID, &t.Amount, &kind, &t.Category, &date, &status, &t.Description); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		if t.Date, err = parseTime(date); err != nil {
			return nil, fmt.Errorf("transaction %s: %w", t.ID, err)
		}
		t.Type = domain.TransactionType(kind)
		t.Status = domain.TransactionStatus(status)
		txns = append(txns, t)
	}
	return txns, rows.Err()
}

// SaveBudgets inserts or replaces budgets.
func (s *SQLiteStorage) SaveBudgets(ctx context.Context, budgets []domain.Budget) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		return saveBudgetsTx(ctx, tx, budgets)
	})
}

func saveBudgetsTx(ctx context.Context, tx *sql.Tx, budgets []domain.Budget) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO budgets (id, name, category, budgeted_amount) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i := range budgets {
		b := &budgets[i]
		ensureID(&b.ID)
		if _, err := stmt.ExecContext(ctx, b.ID, b.Name, b.Category, b.Amount); err != nil {
			return fmt.Errorf("failed to save budget %s: %w", b.ID, err)
		}
	}
	return nil
}

// LoadBudgets returns every budget ordered by category.
func (s *SQLiteStorage) LoadBudgets(ctx context.Context) ([]domain.Budget, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, category, budgeted_amount FROM budgets ORDER BY category, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query budgets: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var budgets []domain.Budget
	for rows.Next() {
		var b domain.Budget
		if err := rows.Scan(&b.ID, &b.Name, &b.Category, &b.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan budget: %w", err)
		}
		budgets = append(budgets, b)
	}
	return budgets, rows.Err()
}

// SaveDebtors inserts or replaces debtors.
func (s *SQLiteStorage) SaveDebtors(ctx context.Context, debtors []domain.Debtor) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		return saveDebtorsTx(ctx, tx, debtors)
	})
}

func saveDebtorsTx(ctx context.Context, tx *sql.Tx, debtors []domain.Debtor) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO debtors (
			id, name, phone_number, total_amount, amount_paid, due_date, status
		) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i := range debtors {
		d := &debtors[i]
		ensureID(&d.ID)
		if _, err := stmt.ExecContext(ctx, d.ID, d.Name, d.PhoneNumber, d.TotalAmount, d.AmountPaid,
			formatTime(d.DueDate), d.Status); err != nil {
			return fmt.Errorf("failed to save debtor %s: %w", d.ID, err)
		}
	}
	return nil
}

const debtorColumns = `id, name, phone_number, total_amount, amount_paid, due_date, status`

type scanner interface {
	Scan(dest ...any) error
}

func scanDebtor(row scanner) (domain.Debtor, error) {
	var d domain.Debtor
	var due string
	if err := row.Scan(&d.ID, &d.Name, &d.PhoneNumber, &d.TotalAmount, &d.AmountPaid, &due, &d.Status); err != nil {
		return d, err
	}
	var err error
	if d.DueDate, err = parseTime(due); err != nil {
		return d, fmt.Errorf("debtor %s: %w", d.ID, err)
	}
	return d, nil
}

// LoadDebtors returns every debtor, earliest due date first.
func (s *SQLiteStorage) LoadDebtors(ctx context.Context) ([]domain.Debtor, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+debtorColumns+` FROM debtors ORDER BY due_date, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query debtors: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var debtors []domain.Debtor
	for rows.Next() {
		d, err := scanDebtor(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan debtor: %w", err)
		}
		debtors = append(debtors, d)
	}
	return debtors, rows.Err()
}

// GetDebtor returns one debtor by ID, or ErrNotFound.
func (s *SQLiteStorage) GetDebtor(ctx context.Context, id string) (domain.Debtor, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+debtorColumns+` FROM debtors WHERE id = ?`, id)
	d, err := scanDebtor(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Debtor{}, fmt.Errorf("debtor %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return domain.Debtor{}, fmt.Errorf("failed to get debtor: %w", err)
	}
	return d, nil
}

// SaveGoals inserts or replaces goals.
func (s *SQLiteStorage) SaveGoals(ctx context.Context, goals []domain.Goal) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		return saveGoalsTx(ctx, tx, goals)
	})
}

func saveGoalsTx(ctx context.Context, tx *sql.Tx, goals []domain.Goal) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO goals (
			id, name, target_amount, current_amount, deadline, status
		) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i := range goals {
		g := &goals[i]
		ensureID(&g.ID)
		if _, err := stmt.ExecContext(ctx, g.ID, g.Name, g.TargetAmount, g.CurrentAmount,
			formatTime(g.Deadline), g.Status); err != nil {
			return fmt.Errorf("failed to save goal %s: %w", g.ID, err)
		}
	}
	return nil
}

// LoadGoals returns every goal, nearest deadline first.
func (s *SQLiteStorage) LoadGoals(ctx context.Context) ([]domain.Goal, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, target_amount, current_amount, deadline, status FROM goals ORDER BY deadline, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query goals: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var goals []domain.Goal
	for rows.Next() {
		var g domain.Goal
		var deadline string
		if err := rows.Scan(&g.ID, &g.Name, &g.TargetAmount, &g.CurrentAmount, &deadline, &g.Status); err != nil {
			return nil, fmt.Errorf("failed to scan goal: %w", err)
		}
		if g.Deadline, err = parseTime(deadline); err != nil {
			return nil, fmt.Errorf("goal %s: %w", g.ID, err)
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

// SaveLedger writes every section of the ledger in a single transaction.
func (s *SQLiteStorage) SaveLedger(ctx context.Context, ledger *domain.Ledger) error {
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		if err := saveTransactionsTx(ctx, tx, ledger.Transactions); err != nil {
			return err
		}
		if err := saveBudgetsTx(ctx, tx, ledger.Budgets); err != nil {
			return err
		}
		if err := saveDebtorsTx(ctx, tx, ledger.Debtors); err != nil {
			return err
		}
		return saveGoalsTx(ctx, tx, ledger.Goals)
	})
	if err != nil {
		return err
	}
	s.log.Infof("saved ledger: %d transactions, %d budgets, %d debtors, %d goals",
		len(ledger.Transactions), len(ledger.Budgets), len(ledger.Debtors), len(ledger.Goals))
	return nil
}

// LoadLedger reads the whole ledger.
func (s *SQLiteStorage) LoadLedger(ctx context.Context) (*domain.Ledger, error) {
	var (
		ledger domain.Ledger
		err    error
	)
	if ledger.Transactions, err = s.LoadTransactions(ctx); err != nil {
		return nil, err
	}
	if ledger.Budgets, err = s.LoadBudgets(ctx); err != nil {
		return nil, err
	}
	if ledger.Debtors, err = s.LoadDebtors(ctx); err != nil {
		return nil, err
	}
	if ledger.Goals, err = s.LoadGoals(ctx); err != nil {
		return nil, err
	}
	return &ledger, nil
}
