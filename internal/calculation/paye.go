package calculation

import (
	"math"

	"github.com/mulasense/finance-core/internal/domain"
)

// Products below are wrapped in explicit float64 conversions so the compiler
// cannot fuse them into FMA instructions: results must equal plain IEEE-754
// double arithmetic on every architecture.

// PAYECalculator computes NSSA, PAYE and the AIDS levy for a monthly gross salary.
// It holds only read-only configuration and is safe for concurrent use.
type PAYECalculator struct {
	NSSARate     float64
	NSSACeiling  float64
	AIDSLevyRate float64
	Brackets     []domain.TaxBracket
}

// NewPAYECalculator2025 creates a PAYE calculator with the 2025 schedule.
func NewPAYECalculator2025() *PAYECalculator {
	return NewPAYECalculator(DefaultTaxRules())
}

// NewPAYECalculator creates a PAYE calculator from configurable rules, falling
// back to the 2025 defaults for anything left unset.
func NewPAYECalculator(rules domain.TaxRules) *PAYECalculator {
	rules = withDefaults(rules)
	brackets := make([]domain.TaxBracket, len(rules.PAYEBrackets))
	copy(brackets, rules.PAYEBrackets)
	return &PAYECalculator{
		NSSARate:     rules.NSSARate,
		NSSACeiling:  rules.NSSACeiling,
		AIDSLevyRate: rules.AIDSLevyRate,
		Brackets:     brackets,
	}
}

// Calculate produces the payroll breakdown for grossSalary. Negative input is
// not rejected; it flows through the formulas mechanically.
func (pc *PAYECalculator) Calculate(grossSalary float64) domain.PAYEResult {
	nssaBase := math.Min(grossSalary, pc.NSSACeiling)
	nssa := float64(nssaBase * pc.NSSARate)
	taxableIncome := grossSalary - nssa

	paye := pc.BracketTax(taxableIncome)

	aidsLevy := float64(paye * pc.AIDSLevyRate)
	totalTax := paye + aidsLevy
	netPay := grossSalary - nssa - totalTax

	return domain.PAYEResult{
		Gross:         grossSalary,
		NSSA:          nssa,
		TaxableIncome: taxableIncome,
		PAYE:          paye,
		AIDSLevy:      aidsLevy,
		NetPay:        netPay,
	}
}

// BracketTax applies the progressive schedule to taxableIncome. Brackets are
// walked in ascending order and each only taxes the slice of income inside it.
func (pc *PAYECalculator) BracketTax(taxableIncome float64) float64 {
	var paye float64
	for _, bracket := range pc.Brackets {
		if taxableIncome > bracket.Min {
			inBracket := math.Min(taxableIncome, bracket.Max) - bracket.Min
			paye += float64(inBracket * bracket.Rate)
		}
	}
	return paye
}

// BracketContribution is the tax raised inside a single bracket. The bracket
// itself is not serialised: the top band's Max is +Inf.
type BracketContribution struct {
	Bracket  domain.TaxBracket `json:"-"`
	Rate     float64           `json:"rate"`
	Income   float64           `json:"income"`
	Tax      float64           `json:"tax"`
	Marginal bool              `json:"marginal"` // true for the highest bracket reached
}

// Contributions breaks BracketTax down per bracket.
// Summing Tax in order reproduces BracketTax exactly.
func (pc *PAYECalculator) Contributions(taxableIncome float64) []BracketContribution {
	var out []BracketContribution
	for _, bracket := range pc.Brackets {
		if taxableIncome <= bracket.Min {
			continue
		}
		inBracket := math.Min(taxableIncome, bracket.Max) - bracket.Min
		out = append(out, BracketContribution{
			Bracket: bracket,
			Rate:    bracket.Rate,
			Income:  inBracket,
			Tax:     float64(inBracket * bracket.Rate),
		})
	}
	if len(out) > 0 {
		out[len(out)-1].Marginal = true
	}
	return out
}

var defaultPAYE = NewPAYECalculator2025()

// CalculatePAYE runs the default 2025 PAYE calculator.
func CalculatePAYE(grossSalary float64) domain.PAYEResult {
	return defaultPAYE.Calculate(grossSalary)
}
