package domain

import (
	"math"
	"time"
)

// TransactionType distinguishes money coming in from money going out.
type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

// TransactionStatus mirrors the backend's transaction lifecycle.
type TransactionStatus string

const (
	StatusPending   TransactionStatus = "pending"
	StatusCompleted TransactionStatus = "completed"
	StatusCancelled TransactionStatus = "cancelled"
)

// Transaction is a single ledger entry. Only completed transactions count
// towards any aggregate.
type Transaction struct {
	ID          string            `json:"id" yaml:"id"`
	Amount      float64           `json:"amount" yaml:"amount"`
	Type        TransactionType   `json:"transaction_type" yaml:"transaction_type"`
	Category    string            `json:"category" yaml:"category"`
	Date        time.Time         `json:"transaction_date" yaml:"transaction_date"`
	Status      TransactionStatus `json:"status" yaml:"status"`
	Description string            `json:"description,omitempty" yaml:"description,omitempty"`
}

// IsCompleted reports whether the transaction participates in aggregates.
func (t Transaction) IsCompleted() bool {
	return t.Status == StatusCompleted
}

// Budget is the planned spend for one category.
type Budget struct {
	ID       string  `json:"id" yaml:"id"`
	Name     string  `json:"name,omitempty" yaml:"name,omitempty"`
	Category string  `json:"category" yaml:"category"`
	Amount   float64 `json:"budgeted_amount" yaml:"budgeted_amount"`
}

// Debtor is a counterparty who owes the user money.
type Debtor struct {
	ID          string    `json:"id" yaml:"id"`
	Name        string    `json:"name" yaml:"name"`
	PhoneNumber string    `json:"phone_number,omitempty" yaml:"phone_number,omitempty"`
	TotalAmount float64   `json:"total_amount" yaml:"total_amount"`
	AmountPaid  float64   `json:"amount_paid" yaml:"amount_paid"`
	DueDate     time.Time `json:"due_date" yaml:"due_date"`
	Status      string    `json:"status,omitempty" yaml:"status,omitempty"`
}

// AmountRemaining is the unpaid balance.
func (d Debtor) AmountRemaining() float64 {
	return d.TotalAmount - d.AmountPaid
}

// PercentagePaid is the share of the total already settled (0 when nothing is owed).
func (d Debtor) PercentagePaid() float64 {
	if d.TotalAmount == 0 {
		return 0
	}
	return d.AmountPaid / d.TotalAmount * 100
}

// Goal is a savings target.
type Goal struct {
	ID            string    `json:"id" yaml:"id"`
	Name          string    `json:"name" yaml:"name"`
	TargetAmount  float64   `json:"target_amount" yaml:"target_amount"`
	CurrentAmount float64   `json:"current_amount" yaml:"current_amount"`
	Deadline      time.Time `json:"deadline" yaml:"deadline"`
	Status        string    `json:"status,omitempty" yaml:"status,omitempty"`
}

// ProgressPercentage returns how far the goal has been funded.
func (g Goal) ProgressPercentage() float64 {
	if g.TargetAmount == 0 {
		return 0
	}
	return g.CurrentAmount / g.TargetAmount * 100
}

// DaysRemaining counts whole days from now until the deadline; negative once it has passed.
func (g Goal) DaysRemaining(now time.Time) int {
	return int(math.Floor(g.Deadline.Sub(now).Hours() / 24))
}

// Ledger groups everything the scorer and reminder sweep read.
type Ledger struct {
	Transactions []Transaction `json:"transactions" yaml:"transactions"`
	Budgets      []Budget      `json:"budgets" yaml:"budgets"`
	Debtors      []Debtor      `json:"debtors" yaml:"debtors"`
	Goals        []Goal        `json:"goals" yaml:"goals"`
}
