package calculation

import (
	"math"

	"github.com/mulasense/finance-core/internal/domain"
)

// TAX RULE ASSUMPTIONS:
//
// 1. PAYE: Zimbabwe 2025 monthly USD bands. Each band after the first starts one
//    cent above the previous ceiling (100.01, 300.01, ...) exactly as published;
//    the cent between bands is never taxed.
//
// 2. NSSA: 4.5% employee contribution on earnings capped at 700 per month.
//
// 3. AIDS levy: 3% of computed PAYE or corporate tax.
//
// 4. Corporate tax: 25% base, reported effective rate 25.75% (constant).
//
// 5. VAT: 15% of turnover once annual turnover strictly exceeds 25,000.

// DefaultPAYEBrackets returns the 2025 monthly PAYE schedule.
func DefaultPAYEBrackets() []domain.TaxBracket {
	return []domain.TaxBracket{
		{Min: 0, Max: 100, Rate: 0},
		{Min: 100.01, Max: 300, Rate: 0.20},
		{Min: 300.01, Max: 1000, Rate: 0.25},
		{Min: 1000.01, Max: 2000, Rate: 0.30},
		{Min: 2000.01, Max: 3000, Rate: 0.35},
		{Min: 3000.01, Max: math.Inf(1), Rate: 0.40},
	}
}

// DefaultTaxRules returns the complete 2025 rule set.
func DefaultTaxRules() domain.TaxRules {
	return domain.TaxRules{
		NSSARate:               0.045,
		NSSACeiling:            700,
		AIDSLevyRate:           0.03,
		PAYEBrackets:           DefaultPAYEBrackets(),
		CorporateRate:          0.25,
		EffectiveCorporateRate: 25.75,
		VATRate:                0.15,
		VATThreshold:           25000,
	}
}

// withDefaults fills every zero-valued field of rules from DefaultTaxRules.
// A scalar zero always means "not configured"; only bracket rates can be zero.
func withDefaults(rules domain.TaxRules) domain.TaxRules {
	def := DefaultTaxRules()
	if rules.NSSARate == 0 {
		rules.NSSARate = def.NSSARate
	}
	if rules.NSSACeiling == 0 {
		rules.NSSACeiling = def.NSSACeiling
	}
	if rules.AIDSLevyRate == 0 {
		rules.AIDSLevyRate = def.AIDSLevyRate
	}
	if len(rules.PAYEBrackets) == 0 {
		rules.PAYEBrackets = def.PAYEBrackets
	}
	if rules.CorporateRate == 0 {
		rules.CorporateRate = def.CorporateRate
	}
	if rules.EffectiveCorporateRate == 0 {
		rules.EffectiveCorporateRate = def.EffectiveCorporateRate
	}
	if rules.VATRate == 0 {
		rules.VATRate = def.VATRate
	}
	if rules.VATThreshold == 0 {
		rules.VATThreshold = def.VATThreshold
	}
	return rules
}
