package calculation

import (
	"github.com/mulasense/finance-core/internal/domain"
)

// TaxEstimator projects a business's figures into an estimated tax bill.
type TaxEstimator struct {
	Breakdown *TaxBreakdownCalculator
	Logger    Logger
}

// NewTaxEstimator wraps a breakdown calculator. A nil calculator selects the 2025 rules.
func NewTaxEstimator(breakdown *TaxBreakdownCalculator) *TaxEstimator {
	if breakdown == nil {
		breakdown = NewTaxBreakdownCalculator2025()
	}
	return &TaxEstimator{Breakdown: breakdown, Logger: NopLogger{}}
}

// SetLogger sets the logger. If nil is provided, a no-op logger is used.
func (te *TaxEstimator) SetLogger(l Logger) {
	te.Logger = orNop(l)
}

// EstimatedTaxBill computes PAYE on the gross salary and hands PAYE plus AIDS
// levy to the breakdown as its salary input. The breakdown then runs PAYE a
// second time on that amount; the two-stage chain is the established
// behaviour of the estimate and is kept for parity.
func (te *TaxEstimator) EstimatedTaxBill(data domain.FinancialData) domain.TaxBreakdown {
	payeResult := te.Breakdown.PAYECalc.Calculate(data.GrossSalary)
	te.Logger.Debugf("estimate: gross salary %.2f yields PAYE %.6f + levy %.6f", data.GrossSalary, payeResult.PAYE, payeResult.AIDSLevy)
	return te.Breakdown.Calculate(data.NetProfit, data.AnnualRevenue, payeResult.PAYE+payeResult.AIDSLevy)
}

// MonthlyTaxLiability annualises monthly figures (x12) and estimates the bill.
func (te *TaxEstimator) MonthlyTaxLiability(monthly domain.FinancialData) domain.TaxBreakdown {
	return te.EstimatedTaxBill(monthly.Annualized())
}

var defaultEstimator = NewTaxEstimator(defaultBreakdown)

// GetEstimatedTaxBill runs the default estimator.
func GetEstimatedTaxBill(data domain.FinancialData) domain.TaxBreakdown {
	return defaultEstimator.EstimatedTaxBill(data)
}

// CalculateMonthlyTaxLiability runs the default estimator on monthly figures.
func CalculateMonthlyTaxLiability(monthly domain.FinancialData) domain.TaxBreakdown {
	return defaultEstimator.MonthlyTaxLiability(monthly)
}
