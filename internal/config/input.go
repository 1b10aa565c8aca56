package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mulasense/finance-core/internal/domain"
	"github.com/mulasense/finance-core/pkg/dateutil"
	"github.com/mulasense/finance-core/pkg/decimal"
	"gopkg.in/yaml.v3"
)

var (
	// ErrInvalidLedger wraps every ledger validation failure.
	ErrInvalidLedger = errors.New("invalid ledger")
	// ErrInvalidTaxRules wraps every tax rules validation failure.
	ErrInvalidTaxRules = errors.New("invalid tax rules")
)

// InputParser handles parsing of ledger and tax rule files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// transactionRecord is a transaction as exported by the backend: amounts may
// be decimal strings or numbers and dates are ISO strings.
type transactionRecord struct {
	ID          string        `yaml:"id"`
	Amount      decimal.Money `yaml:"amount"`
	Type        string        `yaml:"transaction_type"`
	Category    string        `yaml:"category"`
	Date        string        `yaml:"transaction_date"`
	Status      string        `yaml:"status"`
	Description string        `yaml:"description"`
}

// budgetRecord accepts either "amount" or "budgeted_amount".
type budgetRecord struct {
	ID             string         `yaml:"id"`
	Name           string         `yaml:"name"`
	Category       string         `yaml:"category"`
	Amount         *decimal.Money `yaml:"amount"`
	BudgetedAmount *decimal.Money `yaml:"budgeted_amount"`
}

type debtorRecord struct {
	ID          string        `yaml:"id"`
	Name        string        `yaml:"name"`
	PhoneNumber string        `yaml:"phone_number"`
	TotalAmount decimal.Money `yaml:"total_amount"`
	AmountPaid  decimal.Money `yaml:"amount_paid"`
	DueDate     string        `yaml:"due_date"`
	Status      string        `yaml:"status"`
}

type goalRecord struct {
	ID            string        `yaml:"id"`
	Name          string        `yaml:"name"`
	TargetAmount  decimal.Money `yaml:"target_amount"`
	CurrentAmount decimal.Money `yaml:"current_amount"`
	Deadline      string        `yaml:"deadline"`
	Status        string        `yaml:"status"`
}

type ledgerFile struct {
	Transactions []transactionRecord `yaml:"transactions"`
	Budgets      []budgetRecord      `yaml:"budgets"`
	Debtors      []debtorRecord      `yaml:"debtors"`
	Goals        []goalRecord        `yaml:"goals"`
}

// LoadLedger loads a ledger from a YAML or JSON file
func (ip *InputParser) LoadLedger(filename string) (*domain.Ledger, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.ParseLedger(data)
}

// ParseLedger decodes and validates ledger YAML (or JSON).
func (ip *InputParser) ParseLedger(data []byte) (*domain.Ledger, error) {
	var file ledgerFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	ledger, err := file.toDomain()
	if err != nil {
		return nil, err
	}

	if err := ip.ValidateLedger(ledger); err != nil {
		return nil, fmt.Errorf("ledger validation failed: %w", err)
	}
	return ledger, nil
}

func (f ledgerFile) toDomain() (*domain.Ledger, error) {
	ledger := &domain.Ledger{}
	for i, r := range f.Transactions {
		date, err := parseOptionalDate(r.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: transaction %d: %v", ErrInvalidLedger, i, err)
		}
		ledger.Transactions = append(ledger.Transactions, domain.Transaction{
			ID:          r.ID,
			Amount:      r.Amount.Float64(),
			Type:        domain.TransactionType(strings.ToLower(strings.TrimSpace(r.Type))),
			Category:    r.Category,
			Date:        date,
			Status:      domain.TransactionStatus(strings.ToLower(strings.TrimSpace(r.Status))),
			Description: r.Description,
		})
	}
	for _, r := range f.Budgets {
		amount := decimal.Zero()
		switch {
		case r.BudgetedAmount != nil:
			amount = *r.BudgetedAmount
		case r.Amount != nil:
			amount = *r.Amount
		}
		ledger.Budgets = append(ledger.Budgets, domain.Budget{
			ID:       r.ID,
			Name:     r.Name,
			Category: r.Category,
			Amount:   amount.Float64(),
		})
	}
	for i, r := range f.Debtors {
		due, err := parseOptionalDate(r.DueDate)
		if err != nil {
			return nil, fmt.Errorf("%w: debtor %d: %v", ErrInvalidLedger, i, err)
		}
		ledger.Debtors = append(ledger.Debtors, domain.Debtor{
			ID:          r.ID,
			Name:        r.Name,
			PhoneNumber: r.PhoneNumber,
			TotalAmount: r.TotalAmount.Float64(),
			AmountPaid:  r.AmountPaid.Float64(),
			DueDate:     due,
			Status:      r.Status,
		})
	}
	for i, r := range f.Goals {
		deadline, err := parseOptionalDate(r.Deadline)
		if err != nil {
			return nil, fmt.Errorf("%w: goal %d: %v", ErrInvalidLedger, i, err)
		}
		ledger.Goals = append(ledger.Goals, domain.Goal{
			ID:            r.ID,
			Name:          r.Name,
			TargetAmount:  r.TargetAmount.Float64(),
			CurrentAmount: r.CurrentAmount.Float64(),
			Deadline:      deadline,
			Status:        r.Status,
		})
	}
	return ledger, nil
}

func parseOptionalDate(s string) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return time.Time{}, nil
	}
	return dateutil.ParseDate(s)
}

// ValidateLedger checks the structural rules the calculators rely on. Amounts
// are not range-checked: negative values flow through the formulas.
func (ip *InputParser) ValidateLedger(ledger *domain.Ledger) error {
	for i, t := range ledger.Transactions {
		if t.Type != domain.TransactionIncome && t.Type != domain.TransactionExpense {
			return fmt.Errorf("%w: transaction %d: transaction_type must be 'income' or 'expense', got %q", ErrInvalidLedger, i, t.Type)
		}
		if t.Date.IsZero() {
			return fmt.Errorf("%w: transaction %d: transaction_date is required", ErrInvalidLedger, i)
		}
		switch t.Status {
		case domain.StatusCompleted, domain.StatusPending, domain.StatusCancelled:
		default:
			return fmt.Errorf("%w: transaction %d: unknown status %q", ErrInvalidLedger, i, t.Status)
		}
	}
	for i, b := range ledger.Budgets {
		if b.Category == "" {
			return fmt.Errorf("%w: budget %d: category is required", ErrInvalidLedger, i)
		}
	}
	for i, d := range ledger.Debtors {
		if d.Name == "" {
			return fmt.Errorf("%w: debtor %d: name is required", ErrInvalidLedger, i)
		}
	}
	for i, g := range ledger.Goals {
		if g.Name == "" {
			return fmt.Errorf("%w: goal %d: name is required", ErrInvalidLedger, i)
		}
	}
	return nil
}

// LoadTaxRules loads a tax rule override file. Fields left out keep their
// built-in defaults when the calculators are constructed.
func (ip *InputParser) LoadTaxRules(filename string) (*domain.TaxRules, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var rules domain.TaxRules
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateTaxRules(&rules); err != nil {
		return nil, fmt.Errorf("tax rules validation failed: %w", err)
	}
	return &rules, nil
}

// ValidateTaxRules validates rates and the shape of the PAYE schedule
func (ip *InputParser) ValidateTaxRules(rules *domain.TaxRules) error {
	rates := []struct {
		name  string
		value float64
	}{
		{"nssa_rate", rules.NSSARate},
		{"aids_levy_rate", rules.AIDSLevyRate},
		{"corporate_rate", rules.CorporateRate},
		{"vat_rate", rules.VATRate},
	}
	for _, r := range rates {
		if r.value < 0 || r.value > 1 {
			return fmt.Errorf("%w: %s must be between 0 and 1", ErrInvalidTaxRules, r.name)
		}
	}
	if rules.NSSACeiling < 0 {
		return fmt.Errorf("%w: nssa_ceiling cannot be negative", ErrInvalidTaxRules)
	}
	if rules.VATThreshold < 0 {
		return fmt.Errorf("%w: vat_threshold cannot be negative", ErrInvalidTaxRules)
	}

	prevMax := 0.0
	for i, b := range rules.PAYEBrackets {
		if b.Rate < 0 || b.Rate > 1 {
			return fmt.Errorf("%w: bracket %d: rate must be between 0 and 1", ErrInvalidTaxRules, i)
		}
		if b.Max <= b.Min {
			return fmt.Errorf("%w: bracket %d: max must exceed min", ErrInvalidTaxRules, i)
		}
		if i > 0 && b.Min < prevMax {
			return fmt.Errorf("%w: bracket %d overlaps the previous bracket", ErrInvalidTaxRules, i)
		}
		prevMax = b.Max
	}
	return nil
}

// CreateExampleLedger creates a small ledger dated around now, for the
// example command and for trying the reports.
func (ip *InputParser) CreateExampleLedger(now time.Time) *domain.Ledger {
	month := dateutil.MonthStart(now)
	lastMonth := dateutil.PreviousMonth(now)
	twoMonthsAgo := dateutil.AddMonths(now, -2)

	return &domain.Ledger{
		Transactions: []domain.Transaction{
			{ID: "txn-1", Amount: 1150, Type: domain.TransactionIncome, Category: "salary", Date: twoMonthsAgo.AddDate(0, 0, 24), Status: domain.StatusCompleted},
			{ID: "txn-2", Amount: 1200, Type: domain.TransactionIncome, Category: "salary", Date: lastMonth.AddDate(0, 0, 24), Status: domain.StatusCompleted},
			{ID: "txn-3", Amount: 640, Type: domain.TransactionExpense, Category: "rent", Date: lastMonth.AddDate(0, 0, 1), Status: domain.StatusCompleted},
			{ID: "txn-4", Amount: 1200, Type: domain.TransactionIncome, Category: "salary", Date: month, Status: domain.StatusCompleted},
			{ID: "txn-5", Amount: 450, Type: domain.TransactionExpense, Category: "rent", Date: month.AddDate(0, 0, 1), Status: domain.StatusCompleted},
			{ID: "txn-6", Amount: 180, Type: domain.TransactionExpense, Category: "groceries", Date: month.AddDate(0, 0, 3), Status: domain.StatusCompleted},
			{ID: "txn-7", Amount: 60, Type: domain.TransactionExpense, Category: "transport", Date: month.AddDate(0, 0, 4), Status: domain.StatusPending},
		},
		Budgets: []domain.Budget{
			{ID: "budget-1", Name: "Rent", Category: "rent", Amount: 450},
			{ID: "budget-2", Name: "Groceries", Category: "groceries", Amount: 200},
		},
		Debtors: []domain.Debtor{
			{ID: "debtor-1", Name: "Tendai Moyo", PhoneNumber: "+263 77 123 4567", TotalAmount: 150, AmountPaid: 50, DueDate: time.Date(now.Year(), now.Month(), now.Day()+2, 0, 0, 0, 0, now.Location()), Status: "pending"},
		},
		Goals: []domain.Goal{
			{ID: "goal-1", Name: "Emergency fund", TargetAmount: 1000, CurrentAmount: 250, Deadline: dateutil.AddMonths(now, 6), Status: "active"},
		},
	}
}
