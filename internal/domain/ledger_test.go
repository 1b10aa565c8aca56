package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDebtorProjections(t *testing.T) {
	d := Debtor{TotalAmount: 200, AmountPaid: 50}
	assert.Equal(t, 150.0, d.AmountRemaining())
	assert.Equal(t, 25.0, d.PercentagePaid())

	empty := Debtor{}
	assert.Equal(t, 0.0, empty.AmountRemaining())
	assert.Equal(t, 0.0, empty.PercentagePaid())

	overpaid := Debtor{TotalAmount: 100, AmountPaid: 120}
	assert.Equal(t, -20.0, overpaid.AmountRemaining())
}

func TestGoalProgress(t *testing.T) {
	now := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)
	g := Goal{TargetAmount: 400, CurrentAmount: 100, Deadline: time.Date(2025, 3, 25, 12, 0, 0, 0, time.UTC)}

	assert.Equal(t, 25.0, g.ProgressPercentage())
	assert.Equal(t, 10, g.DaysRemaining(now))
	assert.Equal(t, 9, g.DaysRemaining(now.Add(time.Hour)))
	assert.Equal(t, -1, g.DaysRemaining(g.Deadline.Add(time.Hour)))

	assert.Equal(t, 0.0, Goal{CurrentAmount: 10}.ProgressPercentage())
}

func TestTransactionCompletion(t *testing.T) {
	assert.True(t, Transaction{Status: StatusCompleted}.IsCompleted())
	assert.False(t, Transaction{Status: StatusPending}.IsCompleted())
	assert.False(t, Transaction{}.IsCompleted())
}

func TestFinancialDataAnnualized(t *testing.T) {
	f := FinancialData{NetProfit: 1000, AnnualRevenue: 3000, GrossSalary: 500}
	assert.Equal(t, FinancialData{NetProfit: 12000, AnnualRevenue: 36000, GrossSalary: 6000}, f.Annualized())
	assert.Equal(t, 3.0, PAYEResult{PAYE: 2, AIDSLevy: 1}.TotalTax())
}
