package domain

import "time"

// Maximum points for each health sub-score.
const (
	MaxIncomeStability = 20
	MaxExpenseRatio    = 25
	MaxSavingsRate     = 25
	MaxBudgetAdherence = 20
	DebtRatioPoints    = 10
)

// HealthScore is the 0-100 composite financial health metric.
type HealthScore struct {
	IncomeStability float64 `json:"income_stability" yaml:"income_stability"`
	ExpenseRatio    float64 `json:"expense_ratio" yaml:"expense_ratio"`
	SavingsRate     float64 `json:"savings_rate" yaml:"savings_rate"`
	BudgetAdherence float64 `json:"budget_adherence" yaml:"budget_adherence"`
	DebtRatio       float64 `json:"debt_ratio" yaml:"debt_ratio"`
	Total           int     `json:"score" yaml:"score"`
	Rating          Rating  `json:"rating" yaml:"rating"`
}

// Rating is the qualitative band of a health score.
type Rating string

const (
	RatingExcellent Rating = "Excellent"
	RatingGood      Rating = "Good"
	RatingFair      Rating = "Fair"
	RatingPoor      Rating = "Poor"
)

// DashboardMetrics summarises the current month against the previous one.
type DashboardMetrics struct {
	MonthlyIncome     float64 `json:"monthly_income" yaml:"monthly_income"`
	TotalExpenses     float64 `json:"total_expenses" yaml:"total_expenses"`
	NetSavings        float64 `json:"net_savings" yaml:"net_savings"`
	BudgetHealthScore int     `json:"budget_health_score" yaml:"budget_health_score"`
	IncomeChange      int     `json:"income_change" yaml:"income_change"`
	ExpenseChange     int     `json:"expense_change" yaml:"expense_change"`
	SavingsChange     int     `json:"savings_change" yaml:"savings_change"`
}

// LoanStatus is the outcome of a loan application.
type LoanStatus string

const (
	LoanApproved LoanStatus = "approved"
	LoanRejected LoanStatus = "rejected"
)

// LoanOffer is the score-driven answer to a loan request.
type LoanOffer struct {
	AmountRequested float64    `json:"amount_requested" yaml:"amount_requested"`
	AmountApproved  float64    `json:"amount_approved" yaml:"amount_approved"`
	InterestRate    float64    `json:"interest_rate" yaml:"interest_rate"` // annual, in percent
	DurationMonths  int        `json:"duration_months" yaml:"duration_months"`
	MonthlyPayment  float64    `json:"monthly_payment" yaml:"monthly_payment"`
	Status          LoanStatus `json:"status" yaml:"status"`
	HealthScore     int        `json:"health_score" yaml:"health_score"`
	LoanLimit       float64    `json:"loan_limit" yaml:"loan_limit"`
}

// Reminder is a composed payment reminder for one debtor.
type Reminder struct {
	DebtorID        string    `json:"debtor_id" yaml:"debtor_id"`
	DebtorName      string    `json:"debtor_name" yaml:"debtor_name"`
	AmountRemaining float64   `json:"amount_remaining" yaml:"amount_remaining"`
	DueDate         time.Time `json:"due_date" yaml:"due_date"`
	Overdue         bool      `json:"overdue" yaml:"overdue"`
	Message         string    `json:"message" yaml:"message"`
	Link            string    `json:"link" yaml:"link"`
}
