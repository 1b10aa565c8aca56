package calculation

import (
	"math"
	"time"

	"github.com/mulasense/finance-core/internal/domain"
	"github.com/mulasense/finance-core/pkg/dateutil"
)

// stabilityWindowMonths is how many calendar months (including the current
// one) feed the income stability sub-score.
const stabilityWindowMonths = 3

// HealthScorer computes the composite financial health score from a
// transaction history and the user's budgets.
type HealthScorer struct {
	now    func() time.Time
	Logger Logger
}

// NewHealthScorer creates a scorer that reads the package clock.
func NewHealthScorer() *HealthScorer {
	return &HealthScorer{now: Now, Logger: NopLogger{}}
}

// WithNow returns a copy of the scorer pinned to a different clock.
func (hs *HealthScorer) WithNow(now func() time.Time) *HealthScorer {
	cp := *hs
	cp.now = now
	return &cp
}

// SetLogger sets the logger. If nil is provided, a no-op logger is used.
func (hs *HealthScorer) SetLogger(l Logger) {
	hs.Logger = orNop(l)
}

// Score computes all sub-scores. Only completed transactions participate.
func (hs *HealthScorer) Score(txns []domain.Transaction, budgets []domain.Budget) domain.HealthScore {
	now := hs.now()
	current := MonthTotals(txns, now)

	score := domain.HealthScore{
		IncomeStability: IncomeStabilityScore(MonthlyIncome(txns, now, stabilityWindowMonths)),
		ExpenseRatio:    ExpenseRatioScore(current.Income, current.Expenses),
		SavingsRate:     SavingsRateScore(current.Income, current.Expenses),
		BudgetAdherence: BudgetAdherenceScore(budgets, SpentByCategory(txns, now)),
		DebtRatio:       domain.DebtRatioPoints,
	}
	sum := score.IncomeStability + score.ExpenseRatio + score.SavingsRate + score.BudgetAdherence + score.DebtRatio
	score.Total = roundHalfUp(sum)
	score.Rating = RatingFor(score.Total)

	hs.Logger.Debugf("health score %d: stability=%.2f expense=%.2f savings=%.2f budget=%.2f debt=%.0f",
		score.Total, score.IncomeStability, score.ExpenseRatio, score.SavingsRate, score.BudgetAdherence, score.DebtRatio)
	return score
}

// IncomeStabilityScore scales the coefficient of variation of monthly income
// linearly: no variation earns 20 points, a standard deviation at or above the
// mean earns 0. Population variance is taken over months that had income.
func IncomeStabilityScore(monthly map[int]float64) float64 {
	if len(monthly) == 0 {
		return 0
	}
	months := sortedMonths(monthly)
	total := sumMonths(monthly)
	n := float64(len(months))
	avgIncome := total / n
	if avgIncome <= 0 {
		return 0
	}
	var squares float64
	for _, m := range months {
		d := monthly[m] - avgIncome
		squares += float64(d * d)
	}
	variance := squares / n
	return math.Max(0, domain.MaxIncomeStability-math.Sqrt(variance)/avgIncome*domain.MaxIncomeStability)
}

// ExpenseRatioScore awards up to 25 points for spending less than earned.
// Without income the ratio is taken as 1 (worst case).
func ExpenseRatioScore(income, expenses float64) float64 {
	ratio := 1.0
	if income > 0 {
		ratio = expenses / income
	}
	ratio = math.Min(math.Max(ratio, 0), 1)
	return math.Max(0, domain.MaxExpenseRatio*(1-ratio))
}

// SavingsRateScore awards up to 25 points for the share of income kept.
// Without income the rate is 0.
func SavingsRateScore(income, expenses float64) float64 {
	var rate float64
	if income > 0 {
		rate = (income - expenses) / income
	}
	return math.Max(0, math.Min(domain.MaxSavingsRate, rate*domain.MaxSavingsRate))
}

// BudgetAdherenceScore averages per-budget adherence, max(0, 1 - |spent-budgeted|/budgeted),
// and scales it to 20 points. Budgets without a positive amount count as 0.
// With no budgets the score is 0.
func BudgetAdherenceScore(budgets []domain.Budget, spent map[string]float64) float64 {
	if len(budgets) == 0 {
		return 0
	}
	var adherence float64
	for _, b := range budgets {
		if b.Amount <= 0 {
			continue
		}
		deviation := math.Abs(spent[b.Category]-b.Amount) / b.Amount
		adherence += math.Max(0, 1-deviation)
	}
	return adherence / float64(len(budgets)) * domain.MaxBudgetAdherence
}

// Dashboard summarises the current month against the previous one.
func (hs *HealthScorer) Dashboard(txns []domain.Transaction, budgets []domain.Budget) domain.DashboardMetrics {
	now := hs.now()
	current := MonthTotals(txns, now)
	last := MonthTotals(txns, dateutil.PreviousMonth(now))

	return domain.DashboardMetrics{
		MonthlyIncome:     current.Income,
		TotalExpenses:     current.Expenses,
		NetSavings:        current.NetSavings(),
		BudgetHealthScore: hs.Score(txns, budgets).Total,
		IncomeChange:      PercentChange(current.Income, last.Income),
		ExpenseChange:     PercentChange(current.Expenses, last.Expenses),
		SavingsChange:     SignedPercentChange(current.NetSavings(), last.NetSavings()),
	}
}
