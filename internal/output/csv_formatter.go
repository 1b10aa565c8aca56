package output

import (
	"bytes"
	"encoding/csv"

	"github.com/mulasense/finance-core/internal/domain"
	"github.com/mulasense/finance-core/pkg/dateutil"
)

// CSVFormatter flattens the report into section,metric,value rows.
type CSVFormatter struct{}

func (c CSVFormatter) Name() string      { return "csv" }
func (c CSVFormatter) Extension() string { return "csv" }

func (c CSVFormatter) Format(report *domain.Report) ([]byte, error) {
	var rows [][]string
	add := func(section, metric, value string) {
		rows = append(rows, []string{section, metric, value})
	}

	if in := report.Input; in != nil {
		add("input", "net_profit", amountString(in.NetProfit))
		add("input", "annual_revenue", amountString(in.AnnualRevenue))
		add("input", "gross_salary", amountString(in.GrossSalary))
	}
	if p := report.PAYE; p != nil {
		add("paye", "gross", amountString(p.Gross))
		add("paye", "nssa", amountString(p.NSSA))
		add("paye", "taxable_income", amountString(p.TaxableIncome))
		add("paye", "paye", amountString(p.PAYE))
		add("paye", "aids_levy", amountString(p.AIDSLevy))
		add("paye", "net_pay", amountString(p.NetPay))
	}
	if tx := report.Tax; tx != nil {
		add("tax", "corporate_tax", amountString(tx.CorporateTax))
		add("tax", "aids_levy", amountString(tx.AIDSLevy))
		add("tax", "vat", amountString(tx.VAT))
		add("tax", "paye", amountString(tx.PAYE))
		add("tax", "total_tax", amountString(tx.TotalTax))
		add("tax", "vat_registered", boolToString(tx.VATRegistered))
	}
	if h := report.Health; h != nil {
		add("health", "income_stability", amountString(h.IncomeStability))
		add("health", "expense_ratio", amountString(h.ExpenseRatio))
		add("health", "savings_rate", amountString(h.SavingsRate))
		add("health", "budget_adherence", amountString(h.BudgetAdherence))
		add("health", "debt_ratio", amountString(h.DebtRatio))
		add("health", "score", intToString(h.Total))
		add("health", "rating", string(h.Rating))
	}
	if d := report.Dashboard; d != nil {
		add("dashboard", "monthly_income", amountString(d.MonthlyIncome))
		add("dashboard", "total_expenses", amountString(d.TotalExpenses))
		add("dashboard", "net_savings", amountString(d.NetSavings))
		add("dashboard", "income_change", intToString(d.IncomeChange))
		add("dashboard", "expense_change", intToString(d.ExpenseChange))
		add("dashboard", "savings_change", intToString(d.SavingsChange))
	}
	if l := report.Loan; l != nil {
		add("loan", "status", string(l.Status))
		add("loan", "amount_requested", amountString(l.AmountRequested))
		add("loan", "amount_approved", amountString(l.AmountApproved))
		add("loan", "interest_rate", amountString(l.InterestRate))
		add("loan", "duration_months", intToString(l.DurationMonths))
		add("loan", "monthly_payment", amountString(l.MonthlyPayment))
		add("loan", "loan_limit", amountString(l.LoanLimit))
	}
	for _, r := range report.Reminders {
		add("reminder", r.DebtorName, amountString(r.AmountRemaining)+" due "+dateutil.FormatShortDate(r.DueDate))
	}

	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"Section", "Metric", "Value"}); err != nil {
		return nil, err
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
