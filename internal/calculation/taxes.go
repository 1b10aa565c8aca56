package calculation

import (
	"github.com/mulasense/finance-core/internal/domain"
)

// TaxBreakdownCalculator combines corporate tax, VAT and payroll tax.
type TaxBreakdownCalculator struct {
	CorporateRate          float64
	AIDSLevyRate           float64
	EffectiveCorporateRate float64
	VATRate                float64
	VATThreshold           float64
	PAYECalc               *PAYECalculator
}

// NewTaxBreakdownCalculator2025 creates a breakdown calculator with the 2025 rules.
func NewTaxBreakdownCalculator2025() *TaxBreakdownCalculator {
	return NewTaxBreakdownCalculator(DefaultTaxRules())
}

// NewTaxBreakdownCalculator creates a breakdown calculator with configurable rules.
func NewTaxBreakdownCalculator(rules domain.TaxRules) *TaxBreakdownCalculator {
	rules = withDefaults(rules)
	return &TaxBreakdownCalculator{
		CorporateRate:          rules.CorporateRate,
		AIDSLevyRate:           rules.AIDSLevyRate,
		EffectiveCorporateRate: rules.EffectiveCorporateRate,
		VATRate:                rules.VATRate,
		VATThreshold:           rules.VATThreshold,
		PAYECalc:               NewPAYECalculator(rules),
	}
}

// CorporateTax returns base corporate tax plus the AIDS levy on that base.
func (tc *TaxBreakdownCalculator) CorporateTax(netProfit float64) float64 {
	effectiveRate := float64(tc.CorporateRate * (1 + tc.AIDSLevyRate))
	return netProfit * effectiveRate
}

// VATRegistered reports whether turnover strictly exceeds the registration threshold.
func (tc *TaxBreakdownCalculator) VATRegistered(annualTurnover float64) bool {
	return annualTurnover > tc.VATThreshold
}

// Calculate builds the full breakdown. totalSalaries is fed to the PAYE
// calculator and the resulting PAYE plus AIDS levy forms the payroll component.
func (tc *TaxBreakdownCalculator) Calculate(netProfit, annualTurnover, totalSalaries float64) domain.TaxBreakdown {
	corporateBase := float64(netProfit * tc.CorporateRate)
	aidsLevy := float64(corporateBase * tc.AIDSLevyRate)
	corporateTax := corporateBase + aidsLevy

	vatRegistered := tc.VATRegistered(annualTurnover)
	var vat float64
	if vatRegistered {
		vat = float64(annualTurnover * tc.VATRate)
	}

	payeResult := tc.PAYECalc.Calculate(totalSalaries)
	paye := payeResult.PAYE + payeResult.AIDSLevy

	return domain.TaxBreakdown{
		CorporateTax:           corporateTax,
		AIDSLevy:               aidsLevy,
		VAT:                    vat,
		PAYE:                   paye,
		TotalTax:               corporateTax + vat + paye,
		EffectiveCorporateRate: tc.EffectiveCorporateRate,
		VATRegistered:          vatRegistered,
	}
}

var defaultBreakdown = NewTaxBreakdownCalculator2025()

// CalculateTaxBreakdown runs the default 2025 breakdown calculator.
func CalculateTaxBreakdown(netProfit, annualTurnover, totalSalaries float64) domain.TaxBreakdown {
	return defaultBreakdown.Calculate(netProfit, annualTurnover, totalSalaries)
}

// CalculateCorporateTax returns netProfit * 0.25 * 1.03.
func CalculateCorporateTax(netProfit float64) float64 {
	return defaultBreakdown.CorporateTax(netProfit)
}

// CheckVATStatus reports whether annualTurnover exceeds 25,000.
func CheckVATStatus(annualTurnover float64) bool {
	return defaultBreakdown.VATRegistered(annualTurnover)
}
