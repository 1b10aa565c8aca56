package calculation

import (
	"github.com/mulasense/finance-core/internal/domain"
)

// CalculationEngine bundles the calculators behind the CLI and HTTP API and
// packages their results as reports.
type CalculationEngine struct {
	PAYECalc  *PAYECalculator
	TaxCalc   *TaxBreakdownCalculator
	Estimator *TaxEstimator
	Scorer    *HealthScorer
	Logger    Logger

	// Rules are the tax rules in force, with defaults filled in.
	Rules domain.TaxRules
}

// NewCalculationEngine creates a new calculation engine with the 2025 rules.
func NewCalculationEngine() *CalculationEngine {
	return NewCalculationEngineWithRules(DefaultTaxRules())
}

// NewCalculationEngineWithRules creates a calculation engine with configurable tax rules.
func NewCalculationEngineWithRules(rules domain.TaxRules) *CalculationEngine {
	taxCalc := NewTaxBreakdownCalculator(rules)
	return &CalculationEngine{
		PAYECalc:  taxCalc.PAYECalc,
		TaxCalc:   taxCalc,
		Estimator: NewTaxEstimator(taxCalc),
		Scorer:    NewHealthScorer(),
		Logger:    NopLogger{},
		Rules:     withDefaults(rules),
	}
}

// SetLogger sets the logger for the engine and its calculators. If nil is provided, a no-op logger is used.
func (ce *CalculationEngine) SetLogger(l Logger) {
	ce.Logger = orNop(l)
	ce.Estimator.SetLogger(ce.Logger)
	ce.Scorer.SetLogger(ce.Logger)
}

func (ce *CalculationEngine) newReport() *domain.Report {
	return &domain.Report{GeneratedAt: ce.Scorer.now()}
}

// PAYEReport computes PAYE for a monthly gross salary.
func (ce *CalculationEngine) PAYEReport(grossSalary float64) *domain.Report {
	r := ce.newReport()
	res := ce.PAYECalc.Calculate(grossSalary)
	r.PAYE = &res
	ce.Logger.Infof("PAYE for gross %.2f: paye=%.2f levy=%.2f net=%.2f", grossSalary, res.PAYE, res.AIDSLevy, res.NetPay)
	return r
}

// BreakdownReport computes the tax breakdown from explicit figures.
func (ce *CalculationEngine) BreakdownReport(netProfit, annualTurnover, totalSalaries float64) *domain.Report {
	r := ce.newReport()
	b := ce.TaxCalc.Calculate(netProfit, annualTurnover, totalSalaries)
	r.Input = &domain.FinancialData{NetProfit: netProfit, AnnualRevenue: annualTurnover, GrossSalary: totalSalaries}
	r.Tax = &b
	return r
}

// EstimateReport estimates the tax bill. When monthly is set the figures are
// annualised first.
func (ce *CalculationEngine) EstimateReport(data domain.FinancialData, monthly bool) *domain.Report {
	r := ce.newReport()
	var b domain.TaxBreakdown
	if monthly {
		b = ce.Estimator.MonthlyTaxLiability(data)
	} else {
		b = ce.Estimator.EstimatedTaxBill(data)
	}
	r.Input = &data
	r.Tax = &b
	ce.Logger.Infof("estimated tax bill: total=%.2f (corporate=%.2f vat=%.2f paye=%.2f)", b.TotalTax, b.CorporateTax, b.VAT, b.PAYE)
	return r
}

// HealthReport scores a ledger and adds the month-over-month dashboard.
func (ce *CalculationEngine) HealthReport(ledger *domain.Ledger) *domain.Report {
	r := ce.newReport()
	score := ce.Scorer.Score(ledger.Transactions, ledger.Budgets)
	dash := ce.Scorer.Dashboard(ledger.Transactions, ledger.Budgets)
	r.Health = &score
	r.Dashboard = &dash
	return r
}

// LoanReport scores a ledger and prices a loan request against it. The loan
// limit is based on income over the scoring window.
func (ce *CalculationEngine) LoanReport(ledger *domain.Ledger, amount float64, months int) *domain.Report {
	r := ce.HealthReport(ledger)
	windowIncome := sumMonths(MonthlyIncome(ledger.Transactions, r.GeneratedAt, stabilityWindowMonths))
	offer := OfferLoan(r.Health.Total, windowIncome, amount, months)
	r.Loan = &offer
	ce.Logger.Infof("loan request %.2f over %d months: %s at %.1f%%", amount, offer.DurationMonths, offer.Status, offer.InterestRate)
	return r
}
