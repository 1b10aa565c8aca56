package domain

import "time"

// Report is everything a single CLI invocation or API call produced, ready for a formatter.
// Nil sections were not requested.
type Report struct {
	GeneratedAt time.Time         `json:"generated_at" yaml:"generated_at"`
	Input       *FinancialData    `json:"input,omitempty" yaml:"input,omitempty"`
	PAYE        *PAYEResult       `json:"paye,omitempty" yaml:"paye,omitempty"`
	Tax         *TaxBreakdown     `json:"tax,omitempty" yaml:"tax,omitempty"`
	Health      *HealthScore      `json:"health,omitempty" yaml:"health,omitempty"`
	Dashboard   *DashboardMetrics `json:"dashboard,omitempty" yaml:"dashboard,omitempty"`
	Loan        *LoanOffer        `json:"loan,omitempty" yaml:"loan,omitempty"`
	Reminders   []Reminder        `json:"reminders,omitempty" yaml:"reminders,omitempty"`
	Assumptions []string          `json:"assumptions,omitempty" yaml:"assumptions,omitempty"`
}
