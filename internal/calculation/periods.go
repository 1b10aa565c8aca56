package calculation

import (
	"math"
	"sort"
	"time"

	"github.com/mulasense/finance-core/internal/domain"
	"github.com/mulasense/finance-core/pkg/dateutil"
)

// PeriodTotals is the completed income and expense for one calendar month.
type PeriodTotals struct {
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
}

// NetSavings is income minus expenses; negative when overspent.
func (p PeriodTotals) NetSavings() float64 {
	return p.Income - p.Expenses
}

// MonthTotals sums completed transactions dated in the calendar month that contains month.
func MonthTotals(txns []domain.Transaction, month time.Time) PeriodTotals {
	start := dateutil.MonthStart(month)
	var totals PeriodTotals
	for _, t := range txns {
		if !t.IsCompleted() || !dateutil.InMonth(t.Date, start) {
			continue
		}
		switch t.Type {
		case domain.TransactionIncome:
			totals.Income += t.Amount
		case domain.TransactionExpense:
			totals.Expenses += t.Amount
		}
	}
	return totals
}

// SpentByCategory sums completed expenses per category for the calendar month containing month.
func SpentByCategory(txns []domain.Transaction, month time.Time) map[string]float64 {
	start := dateutil.MonthStart(month)
	spent := make(map[string]float64)
	for _, t := range txns {
		if !t.IsCompleted() || t.Type != domain.TransactionExpense || !dateutil.InMonth(t.Date, start) {
			continue
		}
		spent[t.Category] += t.Amount
	}
	return spent
}

// MonthlyIncome groups completed income by calendar month for the `months`
// months ending with the month containing now. Months without income are
// absent from the result; keys are dateutil.MonthKey values.
func MonthlyIncome(txns []domain.Transaction, now time.Time, months int) map[int]float64 {
	current := dateutil.MonthStart(now)
	first := dateutil.AddMonths(current, -(months - 1))
	end := dateutil.AddMonths(current, 1)

	byMonth := make(map[int]float64)
	for _, t := range txns {
		if !t.IsCompleted() || t.Type != domain.TransactionIncome {
			continue
		}
		d := t.Date.In(now.Location())
		if d.Before(first) || !d.Before(end) {
			continue
		}
		byMonth[dateutil.MonthKey(d)] += t.Amount
	}
	return byMonth
}

// sortedMonths returns the month keys of a MonthlyIncome result in ascending order.
func sortedMonths(monthly map[int]float64) []int {
	months := make([]int, 0, len(monthly))
	for k := range monthly {
		months = append(months, k)
	}
	sort.Ints(months)
	return months
}

// sumMonths totals a MonthlyIncome result in chronological order.
func sumMonths(monthly map[int]float64) float64 {
	var total float64
	for _, m := range sortedMonths(monthly) {
		total += monthly[m]
	}
	return total
}

// PercentChange is the whole-percent change from prior to current. With no
// prior value it reports 100 if anything happened this period, else 0.
func PercentChange(current, prior float64) int {
	if prior > 0 {
		return roundHalfUp((current - prior) / prior * 100)
	}
	if current > 0 {
		return 100
	}
	return 0
}

// SignedPercentChange is PercentChange for quantities that may be negative,
// such as net savings: the change is measured against |prior|.
func SignedPercentChange(current, prior float64) int {
	if prior != 0 {
		return roundHalfUp((current - prior) / math.Abs(prior) * 100)
	}
	if current > 0 {
		return 100
	}
	return 0
}

// roundHalfUp rounds to the nearest integer with halves going towards +Inf
// (-2.5 becomes -2), matching the rounding used for displayed percentages.
func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}
