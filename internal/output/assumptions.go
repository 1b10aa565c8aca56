package output

import (
	"fmt"
	"math"

	"github.com/mulasense/finance-core/internal/domain"
)

// DefaultAssumptions lists the standing assumptions behind every report.
var DefaultAssumptions = []string{
	"Amounts are in USD; calculations use double-precision arithmetic and are rounded only for display",
	"Only completed transactions count towards income, expenses and budgets",
	"Debt sub-score is a fixed 10 points",
}

// GenerateAssumptions lists the tax rules in force followed by DefaultAssumptions.
func GenerateAssumptions(rules domain.TaxRules) []string {
	out := []string{
		fmt.Sprintf("NSSA: %s of gross, insurable earnings capped at %s per month", FormatRate(rules.NSSARate), FormatCurrency(rules.NSSACeiling)),
		fmt.Sprintf("AIDS levy: %s of PAYE and of corporate tax", FormatRate(rules.AIDSLevyRate)),
	}
	for _, b := range rules.PAYEBrackets {
		upper := FormatCurrency(b.Max)
		if math.IsInf(b.Max, 1) {
			upper = "and above"
		}
		out = append(out, fmt.Sprintf("PAYE band %s - %s: %s", FormatCurrency(b.Min), upper, FormatRate(b.Rate)))
	}
	out = append(out,
		fmt.Sprintf("Corporate tax: %s plus AIDS levy (reported effective rate %s)", FormatRate(rules.CorporateRate), FormatPercentage(rules.EffectiveCorporateRate)),
		fmt.Sprintf("VAT: %s of turnover once annual turnover exceeds %s", FormatRate(rules.VATRate), FormatCurrency(rules.VATThreshold)),
	)
	return append(out, DefaultAssumptions...)
}
