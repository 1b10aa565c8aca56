package output

import (
	"bytes"
	"fmt"

	"github.com/mulasense/finance-core/internal/domain"
	"github.com/mulasense/finance-core/pkg/dateutil"
)

// ConsoleFormatter renders a human-readable summary of every populated report section.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string      { return "console" }
func (c ConsoleFormatter) Extension() string { return "txt" }

func (c ConsoleFormatter) Format(report *domain.Report) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "MULA SENSE FINANCIAL REPORT")
	fmt.Fprintln(&buf, "================================")
	fmt.Fprintf(&buf, "Generated: %s\n", report.GeneratedAt.Format("2006-01-02 15:04"))

	if report.Input != nil {
		section(&buf, "INPUT")
		fmt.Fprintf(&buf, "Net Profit:        %s\n", FormatCurrency(report.Input.NetProfit))
		fmt.Fprintf(&buf, "Annual Revenue:    %s\n", FormatCurrency(report.Input.AnnualRevenue))
		fmt.Fprintf(&buf, "Gross Salary:      %s\n", FormatCurrency(report.Input.GrossSalary))
	}

	if p := report.PAYE; p != nil {
		section(&buf, "PAYE")
		fmt.Fprintf(&buf, "Gross Salary:      %s\n", FormatCurrency(p.Gross))
		fmt.Fprintf(&buf, "NSSA:              %s\n", FormatCurrency(p.NSSA))
		fmt.Fprintf(&buf, "Taxable Income:    %s\n", FormatCurrency(p.TaxableIncome))
		fmt.Fprintf(&buf, "PAYE:              %s\n", FormatCurrency(p.PAYE))
		fmt.Fprintf(&buf, "AIDS Levy:         %s\n", FormatCurrency(p.AIDSLevy))
		fmt.Fprintf(&buf, "Net Pay:           %s\n", FormatCurrency(p.NetPay))
	}

	if tx := report.Tax; tx != nil {
		section(&buf, "TAX BREAKDOWN")
		fmt.Fprintf(&buf, "Corporate Tax:     %s (incl. AIDS levy %s)\n", FormatCurrency(tx.CorporateTax), FormatCurrency(tx.AIDSLevy))
		vatNote := "not registered"
		if tx.VATRegistered {
			vatNote = "registered"
		}
		fmt.Fprintf(&buf, "VAT:               %s (%s)\n", FormatCurrency(tx.VAT), vatNote)
		fmt.Fprintf(&buf, "PAYE:              %s\n", FormatCurrency(tx.PAYE))
		fmt.Fprintf(&buf, "Total Tax:         %s\n", FormatCurrency(tx.TotalTax))
		fmt.Fprintf(&buf, "Effective Corporate Rate: %s\n", FormatPercentage(tx.EffectiveCorporateRate))
	}

	if h := report.Health; h != nil {
		section(&buf, "FINANCIAL HEALTH")
		fmt.Fprintf(&buf, "Score:             %d/100 (%s)\n", h.Total, h.Rating)
		fmt.Fprintf(&buf, "  Income Stability %5.2f / %d\n", h.IncomeStability, domain.MaxIncomeStability)
		fmt.Fprintf(&buf, "  Expense Ratio    %5.2f / %d\n", h.ExpenseRatio, domain.MaxExpenseRatio)
		fmt.Fprintf(&buf, "  Savings Rate     %5.2f / %d\n", h.SavingsRate, domain.MaxSavingsRate)
		fmt.Fprintf(&buf, "  Budget Adherence %5.2f / %d\n", h.BudgetAdherence, domain.MaxBudgetAdherence)
		fmt.Fprintf(&buf, "  Debt             %5.2f / %d\n", h.DebtRatio, domain.DebtRatioPoints)
	}

	if d := report.Dashboard; d != nil {
		section(&buf, "THIS MONTH")
		fmt.Fprintf(&buf, "Income:            %s (%s vs last month)\n", FormatCurrency(d.MonthlyIncome), FormatChange(d.IncomeChange))
		fmt.Fprintf(&buf, "Expenses:          %s (%s)\n", FormatCurrency(d.TotalExpenses), FormatChange(d.ExpenseChange))
		fmt.Fprintf(&buf, "Net Savings:       %s (%s)\n", FormatCurrency(d.NetSavings), FormatChange(d.SavingsChange))
	}

	if l := report.Loan; l != nil {
		section(&buf, "LOAN OFFER")
		fmt.Fprintf(&buf, "Status:            %s (score %d, limit %s)\n", l.Status, l.HealthScore, FormatCurrency(l.LoanLimit))
		fmt.Fprintf(&buf, "Requested:         %s over %d months\n", FormatCurrency(l.AmountRequested), l.DurationMonths)
		fmt.Fprintf(&buf, "Interest Rate:     %s\n", FormatPercentage(l.InterestRate))
		if l.Status == domain.LoanApproved {
			fmt.Fprintf(&buf, "Monthly Payment:   %s\n", FormatCurrency(l.MonthlyPayment))
		}
	}

	if len(report.Reminders) > 0 {
		section(&buf, "PAYMENT REMINDERS")
		for _, r := range report.Reminders {
			flag := ""
			if r.Overdue {
				flag = " OVERDUE"
			}
			fmt.Fprintf(&buf, "%s: %s due %s%s\n", r.DebtorName, FormatCurrency(r.AmountRemaining), dateutil.FormatShortDate(r.DueDate), flag)
			fmt.Fprintf(&buf, "  %s\n", r.Link)
		}
	}

	if len(report.Assumptions) > 0 {
		section(&buf, "ASSUMPTIONS")
		for _, a := range report.Assumptions {
			fmt.Fprintf(&buf, "- %s\n", a)
		}
	}
	return buf.Bytes(), nil
}

func section(buf *bytes.Buffer, title string) {
	fmt.Fprintln(buf)
	fmt.Fprintln(buf, title)
	fmt.Fprintln(buf, "--------------------------------")
}
